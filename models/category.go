package models

type AssigneeType string

const (
	AssigneeUser AssigneeType = "user"
	AssigneeTeam AssigneeType = "team"
)

func (t AssigneeType) Valid() bool {
	return t == AssigneeUser || t == AssigneeTeam
}

// Assignee names the user or team a record is routed to.
type Assignee struct {
	AssignedTo     string       `json:"assigned_to"`
	AssignedToType AssigneeType `json:"assigned_to_type"`
}

// Category is a top-level grouping of service types.
type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      bool   `json:"status"`
	Assignee
}
