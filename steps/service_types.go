package steps

import (
	"fmt"

	"propdesk/models"
	"propdesk/store"
	"propdesk/utils"
)

// ServiceTypesStep is step 3. Service types are shown grouped under their
// enabled categories.
type ServiceTypesStep struct {
	store *store.Store
}

func NewServiceTypesStep(st *store.Store) *ServiceTypesStep {
	return &ServiceTypesStep{store: st}
}

func (s *ServiceTypesStep) Number() int   { return 3 }
func (s *ServiceTypesStep) Title() string { return "Service Types" }

func (s *ServiceTypesStep) Validate(data models.WizardData) []string {
	var problems []string
	for _, st := range data.ServiceTypes {
		if st.Status && st.AssignedTo == "" {
			problems = append(problems, fmt.Sprintf("%s has no assignee", st.RequestType))
		}
	}
	return problems
}

// Group is one enabled category with its service types.
type Group struct {
	Category     models.Category      `json:"category"`
	ServiceTypes []models.ServiceType `json:"service_types"`
	Summary      Summary              `json:"summary"`
}

// Grouping is what step 3 displays. Service types whose category no longer
// exists are listed in Orphaned. Types under a disabled category appear
// nowhere but are kept.
type Grouping struct {
	Groups   []Group              `json:"groups"`
	Orphaned []models.ServiceType `json:"orphaned"`
}

func (s *ServiceTypesStep) Groups() Grouping {
	data := s.store.Snapshot()
	out := Grouping{Groups: []Group{}, Orphaned: []models.ServiceType{}}

	for _, c := range data.Categories {
		if !c.Status {
			continue
		}
		g := Group{Category: c, ServiceTypes: []models.ServiceType{}}
		for _, st := range data.ServiceTypes {
			if st.CategoryID != c.ID {
				continue
			}
			g.ServiceTypes = append(g.ServiceTypes, st)
			g.Summary.Total++
			if st.Status {
				g.Summary.Selected++
			}
		}
		out.Groups = append(out.Groups, g)
	}
	for _, st := range data.ServiceTypes {
		if _, ok := data.CategoryOf(st); !ok {
			out.Orphaned = append(out.Orphaned, st)
		}
	}
	return out
}

func (s *ServiceTypesStep) List() []models.ServiceType {
	return s.store.Snapshot().ServiceTypes
}

func (s *ServiceTypesStep) Get(id int) (models.ServiceType, error) {
	for _, st := range s.List() {
		if st.ID == id {
			return st, nil
		}
	}
	return models.ServiceType{}, utils.ErrServiceTypeNotFound
}

func (s *ServiceTypesStep) Toggle(id int) (models.ServiceType, error) {
	var out models.ServiceType
	err := s.store.Modify(func(cur models.WizardData) (models.Patch, error) {
		idx := serviceTypeIndex(cur.ServiceTypes, id)
		if idx < 0 {
			return models.Patch{}, utils.ErrServiceTypeNotFound
		}
		cur.ServiceTypes[idx].Status = !cur.ServiceTypes[idx].Status
		out = cur.ServiceTypes[idx]
		return models.Patch{ServiceTypes: &cur.ServiceTypes}, nil
	})
	return out, err
}

// SetCategoryEnabled switches every service type of a category on or off.
func (s *ServiceTypesStep) SetCategoryEnabled(categoryID int, enabled bool) ([]models.ServiceType, error) {
	var out []models.ServiceType
	err := s.store.Modify(func(cur models.WizardData) (models.Patch, error) {
		if _, ok := cur.Category(categoryID); !ok {
			return models.Patch{}, utils.ErrCategoryNotFound
		}
		for i := range cur.ServiceTypes {
			if cur.ServiceTypes[i].CategoryID == categoryID {
				cur.ServiceTypes[i].Status = enabled
				out = append(out, cur.ServiceTypes[i])
			}
		}
		return models.Patch{ServiceTypes: &cur.ServiceTypes}, nil
	})
	return out, err
}

// PromptNeeded reports whether setting policy on a service type should ask
// to apply the change to the rest of its category. It does when approval is
// being switched on or handed to a different approver, and the category has
// other service types.
func (s *ServiceTypesStep) PromptNeeded(id int, policy models.ApprovalPolicy) (bool, error) {
	data := s.store.Snapshot()
	idx := serviceTypeIndex(data.ServiceTypes, id)
	if idx < 0 {
		return false, utils.ErrServiceTypeNotFound
	}
	st := data.ServiceTypes[idx]
	if !policy.Required() || st.Approval.Equal(policy) {
		return false, nil
	}
	return len(siblings(data, st)) > 0, nil
}

// AssigneePromptNeeded is PromptNeeded for the routing assignee.
func (s *ServiceTypesStep) AssigneePromptNeeded(id int, assignee models.Assignee) (bool, error) {
	data := s.store.Snapshot()
	idx := serviceTypeIndex(data.ServiceTypes, id)
	if idx < 0 {
		return false, utils.ErrServiceTypeNotFound
	}
	st := data.ServiceTypes[idx]
	if st.Assignee == assignee {
		return false, nil
	}
	return len(siblings(data, st)) > 0, nil
}

// SetApproval sets the approval policy of a service type. With
// applyToCategory the same policy goes to every service type in its
// category. It returns the records that changed.
func (s *ServiceTypesStep) SetApproval(id int, policy models.ApprovalPolicy, applyToCategory bool) ([]models.ServiceType, error) {
	return s.modifyTargets(id, applyToCategory, func(st *models.ServiceType) bool {
		if st.Approval.Equal(policy) {
			return false
		}
		st.Approval = policy
		return true
	})
}

// SetAssignee routes a service type, and optionally its whole category, to
// a user or team.
func (s *ServiceTypesStep) SetAssignee(id int, assignee models.Assignee, applyToCategory bool) ([]models.ServiceType, error) {
	if !assignee.AssignedToType.Valid() {
		return nil, fmt.Errorf("%w: assignee type must be user or team", utils.ErrInvalidInput)
	}
	return s.modifyTargets(id, applyToCategory, func(st *models.ServiceType) bool {
		if st.Assignee == assignee {
			return false
		}
		st.Assignee = assignee
		return true
	})
}

func (s *ServiceTypesStep) modifyTargets(id int, applyToCategory bool, change func(*models.ServiceType) bool) ([]models.ServiceType, error) {
	changed := []models.ServiceType{}
	err := s.store.Modify(func(cur models.WizardData) (models.Patch, error) {
		idx := serviceTypeIndex(cur.ServiceTypes, id)
		if idx < 0 {
			return models.Patch{}, utils.ErrServiceTypeNotFound
		}
		target := cur.ServiceTypes[idx]
		_, hasCategory := cur.CategoryOf(target)

		for i := range cur.ServiceTypes {
			st := &cur.ServiceTypes[i]
			inScope := i == idx ||
				(applyToCategory && hasCategory && st.CategoryID == target.CategoryID)
			if inScope && change(st) {
				changed = append(changed, *st)
			}
		}
		if len(changed) == 0 {
			return models.Patch{}, nil
		}
		return models.Patch{ServiceTypes: &cur.ServiceTypes}, nil
	})
	if err != nil {
		return nil, err
	}
	return changed, nil
}

func siblings(data models.WizardData, st models.ServiceType) []models.ServiceType {
	if _, ok := data.CategoryOf(st); !ok {
		return nil
	}
	var out []models.ServiceType
	for _, other := range data.ServiceTypes {
		if other.ID != st.ID && other.CategoryID == st.CategoryID {
			out = append(out, other)
		}
	}
	return out
}

func serviceTypeIndex(types []models.ServiceType, id int) int {
	for i, st := range types {
		if st.ID == id {
			return i
		}
	}
	return -1
}
