// Package steps implements the six screens of the service-request setup
// wizard. Each step reads and writes exactly one section of the tenant's
// configuration through its store.
package steps

import (
	"fmt"
	"sync"

	"propdesk/models"
	"propdesk/store"
)

// Step is one page of the setup wizard.
type Step interface {
	Number() int
	Title() string
	// Validate lists what is still missing on this step. An empty result
	// means the step is complete.
	Validate(data models.WizardData) []string
}

// Summary is the "N of M selected" line shown above toggle lists.
type Summary struct {
	Selected int `json:"selected"`
	Total    int `json:"total"`
}

func (s Summary) String() string {
	return fmt.Sprintf("%d of %d selected", s.Selected, s.Total)
}

// Set bundles the six steps bound to one tenant's store.
type Set struct {
	Teams         *TeamsStep
	Categories    *CategoriesStep
	ServiceTypes  *ServiceTypesStep
	Statuses      *StatusesStep
	FormFields    *FormFieldsStep
	Notifications *NotificationsStep
}

func NewSet(st *store.Store, directory []models.TeamMember) *Set {
	return &Set{
		Teams:         NewTeamsStep(st, directory),
		Categories:    NewCategoriesStep(st),
		ServiceTypes:  NewServiceTypesStep(st),
		Statuses:      NewStatusesStep(st),
		FormFields:    NewFormFieldsStep(st),
		Notifications: NewNotificationsStep(st),
	}
}

// Ordered returns the steps in wizard order, 1 through 6.
func (s *Set) Ordered() []Step {
	return []Step{s.Teams, s.Categories, s.ServiceTypes, s.Statuses, s.FormFields, s.Notifications}
}

// Registry keeps one Set per tenant so per-team editing modes survive
// between requests.
type Registry struct {
	stores    *store.Manager
	directory []models.TeamMember

	mu   sync.Mutex
	sets map[string]*Set
}

func NewRegistry(stores *store.Manager, directory []models.TeamMember) *Registry {
	return &Registry{
		stores:    stores,
		directory: directory,
		sets:      make(map[string]*Set),
	}
}

func (r *Registry) For(tenantID string) *Set {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sets[tenantID]; ok {
		return s
	}
	s := NewSet(r.stores.For(tenantID), r.directory)
	r.sets[tenantID] = s
	return s
}
