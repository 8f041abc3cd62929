package steps

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"propdesk/models"
	"propdesk/store"
	"propdesk/utils"
)

// FieldInput describes a custom form field to add or edit.
type FieldInput struct {
	Name         string             `json:"name" validate:"required,max=100"`
	Description  string             `json:"description" validate:"max=500"`
	Type         models.FieldType   `json:"type" validate:"required,oneof=text textarea dropdown checkbox number date file"`
	Requirement  models.Requirement `json:"requirement" validate:"omitempty,oneof=disabled optional required"`
	ServiceTypes []string           `json:"service_types"`
	Options      []string           `json:"options" validate:"dive,required"`
}

// FormFieldsStep is step 5.
type FormFieldsStep struct {
	store *store.Store
}

func NewFormFieldsStep(st *store.Store) *FormFieldsStep {
	return &FormFieldsStep{store: st}
}

func (s *FormFieldsStep) Number() int   { return 5 }
func (s *FormFieldsStep) Title() string { return "Form Fields" }

func (s *FormFieldsStep) Validate(data models.WizardData) []string {
	var problems []string
	for _, f := range data.FormFields {
		if f.Enabled() && f.Type == models.FieldDropdown && len(f.Options) == 0 {
			problems = append(problems, fmt.Sprintf("dropdown %q has no options", f.Name))
		}
	}
	return problems
}

func (s *FormFieldsStep) List() []models.FormField {
	return s.store.Snapshot().FormFields
}

// FieldGroups splits fields the way step 5 renders them.
type FieldGroups struct {
	Core   []models.FormField `json:"core"`
	Custom []models.FormField `json:"custom"`
}

func (s *FormFieldsStep) Groups() FieldGroups {
	out := FieldGroups{Core: []models.FormField{}, Custom: []models.FormField{}}
	for _, f := range s.List() {
		if f.IsCore {
			out.Core = append(out.Core, f)
		} else {
			out.Custom = append(out.Custom, f)
		}
	}
	return out
}

// Add creates a custom field. The slug comes from the name and must not
// collide with an existing field.
func (s *FormFieldsStep) Add(in FieldInput) (models.FormField, error) {
	field, err := buildField(in)
	if err != nil {
		return models.FormField{}, err
	}
	field.ID = uuid.NewString()

	err = s.store.Modify(func(cur models.WizardData) (models.Patch, error) {
		if fieldSlugTaken(cur.FormFields, field.Slug, "") {
			return models.Patch{}, fmt.Errorf("%w: field %q", utils.ErrDuplicateSlug, field.Slug)
		}
		fields := append(cur.FormFields, field)
		return models.Patch{FormFields: &fields}, nil
	})
	if err != nil {
		return models.FormField{}, err
	}
	return field, nil
}

// Edit replaces a field's settings. Core fields keep their name and type.
func (s *FormFieldsStep) Edit(id string, in FieldInput) (models.FormField, error) {
	updated, err := buildField(in)
	if err != nil {
		return models.FormField{}, err
	}

	var out models.FormField
	err = s.store.Modify(func(cur models.WizardData) (models.Patch, error) {
		idx := fieldIndex(cur.FormFields, id)
		if idx < 0 {
			return models.Patch{}, utils.ErrFieldNotFound
		}
		existing := cur.FormFields[idx]
		if existing.IsCore {
			if updated.Name != existing.Name || updated.Type != existing.Type {
				return models.Patch{}, utils.ErrCoreField
			}
			updated.Slug = existing.Slug
		}
		if fieldSlugTaken(cur.FormFields, updated.Slug, id) {
			return models.Patch{}, fmt.Errorf("%w: field %q", utils.ErrDuplicateSlug, updated.Slug)
		}
		updated.ID = existing.ID
		updated.IsCore = existing.IsCore
		cur.FormFields[idx] = updated
		out = updated
		return models.Patch{FormFields: &cur.FormFields}, nil
	})
	return out, err
}

func (s *FormFieldsStep) Remove(id string) error {
	return s.store.Modify(func(cur models.WizardData) (models.Patch, error) {
		idx := fieldIndex(cur.FormFields, id)
		if idx < 0 {
			return models.Patch{}, utils.ErrFieldNotFound
		}
		if cur.FormFields[idx].IsCore {
			return models.Patch{}, utils.ErrCoreField
		}
		fields := append(cur.FormFields[:idx:idx], cur.FormFields[idx+1:]...)
		return models.Patch{FormFields: &fields}, nil
	})
}

// SetRequirement moves a field between disabled, optional and required.
func (s *FormFieldsStep) SetRequirement(id string, req models.Requirement) (models.FormField, error) {
	if !req.Valid() {
		return models.FormField{}, fmt.Errorf("%w: requirement %q", utils.ErrInvalidInput, req)
	}
	var out models.FormField
	err := s.store.Modify(func(cur models.WizardData) (models.Patch, error) {
		idx := fieldIndex(cur.FormFields, id)
		if idx < 0 {
			return models.Patch{}, utils.ErrFieldNotFound
		}
		cur.FormFields[idx].Requirement = req
		out = cur.FormFields[idx]
		return models.Patch{FormFields: &cur.FormFields}, nil
	})
	return out, err
}

func buildField(in FieldInput) (models.FormField, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.FormField{}, utils.ErrEmptyName
	}
	if !in.Type.Valid() {
		return models.FormField{}, fmt.Errorf("%w: %q", utils.ErrInvalidFieldType, in.Type)
	}
	req := in.Requirement
	if req == "" {
		req = models.RequirementOptional
	}
	if !req.Valid() {
		return models.FormField{}, fmt.Errorf("%w: requirement %q", utils.ErrInvalidInput, req)
	}

	serviceTypes := in.ServiceTypes
	if len(serviceTypes) == 0 {
		serviceTypes = []string{models.AllServiceTypes}
	}
	options := []string{}
	if in.Type == models.FieldDropdown {
		options = append(options, in.Options...)
	}

	return models.FormField{
		Slug:         models.Slugify(name),
		Name:         name,
		Description:  strings.TrimSpace(in.Description),
		Type:         in.Type,
		Requirement:  req,
		ServiceTypes: append([]string{}, serviceTypes...),
		Options:      options,
	}, nil
}

func fieldSlugTaken(fields []models.FormField, slug, exceptID string) bool {
	for _, f := range fields {
		if f.ID != exceptID && f.Slug == slug {
			return true
		}
	}
	return false
}

func fieldIndex(fields []models.FormField, id string) int {
	for i, f := range fields {
		if f.ID == id {
			return i
		}
	}
	return -1
}
