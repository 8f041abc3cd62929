package steps

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"propdesk/models"
	"propdesk/store"
	"propdesk/utils"
)

// TeamsStep is step 1. It manages teams and their members.
type TeamsStep struct {
	store     *store.Store
	directory []models.TeamMember

	mu      sync.Mutex
	editing map[string]bool
}

func NewTeamsStep(st *store.Store, directory []models.TeamMember) *TeamsStep {
	return &TeamsStep{
		store:     st,
		directory: directory,
		editing:   make(map[string]bool),
	}
}

func (s *TeamsStep) Number() int   { return 1 }
func (s *TeamsStep) Title() string { return "Teams" }

func (s *TeamsStep) Validate(data models.WizardData) []string {
	var problems []string
	if len(data.Teams) == 0 {
		problems = append(problems, "at least one team is required")
	}
	for _, t := range data.Teams {
		if strings.TrimSpace(t.Name) == "" {
			problems = append(problems, fmt.Sprintf("team %s has no name", t.ID))
		}
	}
	return problems
}

func (s *TeamsStep) List() []models.Team {
	return s.store.Snapshot().Teams
}

// AddTeam creates a team with no members. The id is random and the slug is
// derived from the name.
func (s *TeamsStep) AddTeam(name, description string) (models.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Team{}, utils.ErrEmptyName
	}

	team := models.Team{
		ID:          uuid.NewString(),
		Slug:        models.Slugify(name),
		Name:        name,
		Description: strings.TrimSpace(description),
		Members:     []models.TeamMember{},
	}

	err := s.store.Modify(func(cur models.WizardData) (models.Patch, error) {
		for _, t := range cur.Teams {
			if t.Slug == team.Slug {
				return models.Patch{}, fmt.Errorf("%w: team %q", utils.ErrDuplicateSlug, team.Slug)
			}
		}
		teams := append(cur.Teams, team)
		return models.Patch{Teams: &teams}, nil
	})
	if err != nil {
		return models.Team{}, err
	}
	return team, nil
}

// RemoveTeam deletes a team. The property team is refused and nothing is
// written.
func (s *TeamsStep) RemoveTeam(teamID string) error {
	err := s.store.Modify(func(cur models.WizardData) (models.Patch, error) {
		idx := teamIndex(cur.Teams, teamID)
		if idx < 0 {
			return models.Patch{}, utils.ErrTeamNotFound
		}
		if cur.Teams[idx].Undeletable() {
			return models.Patch{}, utils.ErrTeamUndeletable
		}
		teams := append(cur.Teams[:idx:idx], cur.Teams[idx+1:]...)
		return models.Patch{Teams: &teams}, nil
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.editing, teamID)
	s.mu.Unlock()
	return nil
}

// AddMember adds a directory member to a team. Adding someone who is already
// a member changes nothing.
func (s *TeamsStep) AddMember(teamID, memberID string) (models.Team, error) {
	member, ok := s.lookupMember(memberID)
	if !ok {
		return models.Team{}, utils.ErrMemberNotFound
	}

	var out models.Team
	err := s.store.Modify(func(cur models.WizardData) (models.Patch, error) {
		idx := teamIndex(cur.Teams, teamID)
		if idx < 0 {
			return models.Patch{}, utils.ErrTeamNotFound
		}
		if cur.Teams[idx].HasMember(memberID) {
			out = cur.Teams[idx]
			return models.Patch{}, nil
		}
		cur.Teams[idx].Members = append(cur.Teams[idx].Members, member)
		out = cur.Teams[idx]
		return models.Patch{Teams: &cur.Teams}, nil
	})
	return out, err
}

func (s *TeamsStep) RemoveMember(teamID, memberID string) (models.Team, error) {
	var out models.Team
	err := s.store.Modify(func(cur models.WizardData) (models.Patch, error) {
		idx := teamIndex(cur.Teams, teamID)
		if idx < 0 {
			return models.Patch{}, utils.ErrTeamNotFound
		}
		team := cur.Teams[idx]
		members := make([]models.TeamMember, 0, len(team.Members))
		for _, m := range team.Members {
			if m.ID != memberID {
				members = append(members, m)
			}
		}
		if len(members) == len(team.Members) {
			return models.Patch{}, utils.ErrMemberNotFound
		}
		cur.Teams[idx].Members = members
		out = cur.Teams[idx]
		return models.Patch{Teams: &cur.Teams}, nil
	})
	return out, err
}

// SearchDirectory matches query against name, email and role, ignoring
// case. When teamID names a team, its current members are left out.
func (s *TeamsStep) SearchDirectory(teamID, query string) []models.TeamMember {
	q := strings.ToLower(strings.TrimSpace(query))

	var team models.Team
	if teamID != "" {
		teams := s.List()
		if idx := teamIndex(teams, teamID); idx >= 0 {
			team = teams[idx]
		}
	}

	out := []models.TeamMember{}
	for _, m := range s.directory {
		if team.HasMember(m.ID) {
			continue
		}
		if q == "" ||
			strings.Contains(strings.ToLower(m.Name), q) ||
			strings.Contains(strings.ToLower(m.Email), q) ||
			strings.Contains(strings.ToLower(m.Role), q) {
			out = append(out, m)
		}
	}
	return out
}

func (s *TeamsStep) Directory() []models.TeamMember {
	return append([]models.TeamMember{}, s.directory...)
}

// ToggleEditing flips the member-search mode of a team. It is view state
// and never persisted.
func (s *TeamsStep) ToggleEditing(teamID string) (bool, error) {
	if teamIndex(s.List(), teamID) < 0 {
		return false, utils.ErrTeamNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editing[teamID] = !s.editing[teamID]
	return s.editing[teamID], nil
}

func (s *TeamsStep) Editing(teamID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editing[teamID]
}

func (s *TeamsStep) lookupMember(id string) (models.TeamMember, bool) {
	for _, m := range s.directory {
		if m.ID == id {
			return m, true
		}
	}
	return models.TeamMember{}, false
}

func teamIndex(teams []models.Team, id string) int {
	for i, t := range teams {
		if t.ID == id {
			return i
		}
	}
	return -1
}
