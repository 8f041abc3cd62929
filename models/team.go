package models

// PropertyTeamID identifies the built-in team that can never be removed.
const PropertyTeamID = "property-team"

// TeamMember is a person from the staff directory.
type TeamMember struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Initials string `json:"initials"`
	Email    string `json:"email"`
}

// Team groups directory members that service requests can be routed to.
type Team struct {
	ID          string       `json:"id"`
	Slug        string       `json:"slug"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Members     []TeamMember `json:"members"`
}

func (t Team) Undeletable() bool {
	return t.ID == PropertyTeamID
}

func (t Team) HasMember(memberID string) bool {
	for _, m := range t.Members {
		if m.ID == memberID {
			return true
		}
	}
	return false
}

func (t Team) clone() Team {
	members := make([]TeamMember, len(t.Members))
	copy(members, t.Members)
	t.Members = members
	return t
}
