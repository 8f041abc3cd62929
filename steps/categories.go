package steps

import (
	"strings"

	"propdesk/models"
	"propdesk/store"
	"propdesk/utils"
)

// CategoriesStep is step 2.
type CategoriesStep struct {
	store *store.Store
}

func NewCategoriesStep(st *store.Store) *CategoriesStep {
	return &CategoriesStep{store: st}
}

func (s *CategoriesStep) Number() int   { return 2 }
func (s *CategoriesStep) Title() string { return "Categories" }

func (s *CategoriesStep) Validate(data models.WizardData) []string {
	for _, c := range data.Categories {
		if c.Status {
			return nil
		}
	}
	return []string{"enable at least one category"}
}

func (s *CategoriesStep) List() []models.Category {
	return s.store.Snapshot().Categories
}

func (s *CategoriesStep) Get(id int) (models.Category, error) {
	c, ok := s.store.Snapshot().Category(id)
	if !ok {
		return models.Category{}, utils.ErrCategoryNotFound
	}
	return c, nil
}

// Toggle flips one category. Its service types are left as they are.
func (s *CategoriesStep) Toggle(id int) (models.Category, error) {
	var out models.Category
	err := s.store.Modify(func(cur models.WizardData) (models.Patch, error) {
		idx := categoryIndex(cur.Categories, id)
		if idx < 0 {
			return models.Patch{}, utils.ErrCategoryNotFound
		}
		cur.Categories[idx].Status = !cur.Categories[idx].Status
		out = cur.Categories[idx]
		return models.Patch{Categories: &cur.Categories}, nil
	})
	return out, err
}

func (s *CategoriesStep) SetAll(enabled bool) ([]models.Category, error) {
	var out []models.Category
	err := s.store.Modify(func(cur models.WizardData) (models.Patch, error) {
		for i := range cur.Categories {
			cur.Categories[i].Status = enabled
		}
		out = cur.Categories
		return models.Patch{Categories: &cur.Categories}, nil
	})
	return out, err
}

func (s *CategoriesStep) Summary() Summary {
	cats := s.List()
	sum := Summary{Total: len(cats)}
	for _, c := range cats {
		if c.Status {
			sum.Selected++
		}
	}
	return sum
}

// Add creates an enabled category with the next free id.
func (s *CategoriesStep) Add(name, description string, assignee models.Assignee) (models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Category{}, utils.ErrEmptyName
	}
	if assignee.AssignedTo != "" && !assignee.AssignedToType.Valid() {
		assignee.AssignedToType = models.AssigneeTeam
	}

	var out models.Category
	err := s.store.Modify(func(cur models.WizardData) (models.Patch, error) {
		next := 1
		for _, c := range cur.Categories {
			if strings.EqualFold(c.Name, name) {
				return models.Patch{}, utils.ErrDuplicateSlug
			}
			if c.ID >= next {
				next = c.ID + 1
			}
		}
		out = models.Category{
			ID:          next,
			Name:        name,
			Description: strings.TrimSpace(description),
			Status:      true,
			Assignee:    assignee,
		}
		cats := append(cur.Categories, out)
		return models.Patch{Categories: &cats}, nil
	})
	return out, err
}

// Remove deletes a category. Service types that pointed at it become
// orphaned rather than deleted.
func (s *CategoriesStep) Remove(id int) error {
	return s.store.Modify(func(cur models.WizardData) (models.Patch, error) {
		idx := categoryIndex(cur.Categories, id)
		if idx < 0 {
			return models.Patch{}, utils.ErrCategoryNotFound
		}
		cats := append(cur.Categories[:idx:idx], cur.Categories[idx+1:]...)
		return models.Patch{Categories: &cats}, nil
	})
}

func categoryIndex(cats []models.Category, id int) int {
	for i, c := range cats {
		if c.ID == id {
			return i
		}
	}
	return -1
}
