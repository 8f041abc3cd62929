package models

type FieldType string

const (
	FieldText     FieldType = "text"
	FieldTextarea FieldType = "textarea"
	FieldDropdown FieldType = "dropdown"
	FieldCheckbox FieldType = "checkbox"
	FieldNumber   FieldType = "number"
	FieldDate     FieldType = "date"
	FieldFile     FieldType = "file"
)

func (t FieldType) Valid() bool {
	switch t {
	case FieldText, FieldTextarea, FieldDropdown, FieldCheckbox, FieldNumber, FieldDate, FieldFile:
		return true
	}
	return false
}

// Requirement folds the enabled and required switches of a form field into
// one value, so a disabled field can never be required.
type Requirement string

const (
	RequirementDisabled Requirement = "disabled"
	RequirementOptional Requirement = "optional"
	RequirementRequired Requirement = "required"
)

func (r Requirement) Valid() bool {
	return r == RequirementDisabled || r == RequirementOptional || r == RequirementRequired
}

// AllServiceTypes in FormField.ServiceTypes applies the field to every
// service type.
const AllServiceTypes = "all"

// Core field ids. Core fields cannot be deleted.
const (
	FieldLocation    = "location"
	FieldDescription = "description"
	FieldAttachments = "attachments"
)

type FormField struct {
	ID           string      `json:"id"`
	Slug         string      `json:"slug"`
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	Type         FieldType   `json:"type"`
	Requirement  Requirement `json:"requirement"`
	ServiceTypes []string    `json:"service_types"`
	IsCore       bool        `json:"is_core"`
	// Options is only kept for dropdown fields.
	Options []string `json:"options"`
}

func (f FormField) Enabled() bool {
	return f.Requirement != RequirementDisabled
}

func (f FormField) Required() bool {
	return f.Requirement == RequirementRequired
}

// AppliesTo reports whether the field is shown for the service type slug.
func (f FormField) AppliesTo(serviceTypeSlug string) bool {
	for _, s := range f.ServiceTypes {
		if s == AllServiceTypes || s == serviceTypeSlug {
			return true
		}
	}
	return false
}

func (f FormField) clone() FormField {
	f.ServiceTypes = append([]string{}, f.ServiceTypes...)
	f.Options = append([]string{}, f.Options...)
	return f
}
