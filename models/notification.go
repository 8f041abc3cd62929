package models

// NotificationSettings holds three independent notification switches.
type NotificationSettings struct {
	NotifyRequestor       bool `json:"notify_requestor"`
	NotifyAssignedTeam    bool `json:"notify_assigned_team"`
	NotifyOnStatusChanges bool `json:"notify_on_status_changes"`
}
