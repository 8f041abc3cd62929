package steps

import (
	"propdesk/models"
	"propdesk/store"
)

// NotificationsStep is step 6: three independent switches.
type NotificationsStep struct {
	store *store.Store
}

func NewNotificationsStep(st *store.Store) *NotificationsStep {
	return &NotificationsStep{store: st}
}

func (s *NotificationsStep) Number() int                         { return 6 }
func (s *NotificationsStep) Title() string                       { return "Notifications" }
func (s *NotificationsStep) Validate(models.WizardData) []string { return nil }

func (s *NotificationsStep) Get() models.NotificationSettings {
	return s.store.Snapshot().Notifications
}

func (s *NotificationsStep) Set(settings models.NotificationSettings) error {
	return s.store.Update(models.Patch{Notifications: &settings})
}
