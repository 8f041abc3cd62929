package wizard

import (
	"sync"
	"time"
)

// Session is one run of the wizard for a tenant.
type Session struct {
	ID         string
	TenantID   string
	Controller *Controller
	CreatedAt  time.Time

	mu       sync.Mutex
	lastSeen time.Time
}

func NewSession(id, tenantID string, c *Controller, now time.Time) *Session {
	return &Session{
		ID:         id,
		TenantID:   tenantID,
		Controller: c,
		CreatedAt:  now,
		lastSeen:   now,
	}
}

func (s *Session) Tenant() string { return s.TenantID }

func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) Touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

// Close is called when the session is dropped from its registry. Wizard
// sessions hold nothing that needs releasing.
func (s *Session) Close() {}

// View is the JSON shape of a session.
type View struct {
	ID         string `json:"id"`
	Step       int    `json:"step"`
	TotalSteps int    `json:"total_steps"`
	State      State  `json:"state"`
}

func (s *Session) View() View {
	return View{
		ID:         s.ID,
		Step:       s.Controller.Step(),
		TotalSteps: TotalSteps,
		State:      s.Controller.State(),
	}
}
