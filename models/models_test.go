package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Work Order #":       "work-order-#",
		"Roof Crew":          "roof-crew",
		"Work  Order":        "work--order",
		"Tab\tName":          "tab\tname",
		"Move-In / Move-Out": "move-in-/-move-out",
		"":                   "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestApprovalPolicy(t *testing.T) {
	t.Run("zero value is no approval", func(t *testing.T) {
		var p ApprovalPolicy
		assert.False(t, p.Required())
		assert.Equal(t, "None", p.Label())
		assert.True(t, p.Equal(NoApproval()))
	})

	t.Run("required defaults approver", func(t *testing.T) {
		p := RequireApproval(Assignee{})
		a, ok := p.Approver()
		require.True(t, ok)
		assert.Equal(t, DefaultApprover, a.AssignedTo)
		assert.Equal(t, AssigneeUser, a.AssignedToType)
	})

	t.Run("json", func(t *testing.T) {
		p := RequireApproval(Assignee{AssignedTo: "Property Team", AssignedToType: AssigneeTeam})
		raw, err := json.Marshal(p)
		require.NoError(t, err)
		assert.JSONEq(t, `{"kind":"required","approver":"Property Team","approver_type":"team"}`, string(raw))

		var back ApprovalPolicy
		require.NoError(t, json.Unmarshal(raw, &back))
		assert.True(t, p.Equal(back))

		require.NoError(t, json.Unmarshal([]byte(`{}`), &back))
		assert.False(t, back.Required())

		assert.Error(t, json.Unmarshal([]byte(`{"kind":"maybe"}`), &back))
	})
}

func TestWizardDataApply(t *testing.T) {
	base := DefaultWizardData()
	teams := []Team{{ID: "x", Slug: "x", Name: "X", Members: []TeamMember{}}}

	out := base.Apply(Patch{Teams: &teams})
	assert.Equal(t, teams, out.Teams)
	assert.Equal(t, base.Categories, out.Categories)
	assert.Equal(t, base.Statuses, out.Statuses)

	teams[0].Name = "mutated"
	assert.Equal(t, "X", out.Teams[0].Name)

	assert.True(t, Patch{}.Empty())
	assert.False(t, Patch{Teams: &teams}.Empty())
}

func TestWizardDataLookups(t *testing.T) {
	d := DefaultWizardData()

	c, ok := d.CategoryOf(d.ServiceTypes[0])
	require.True(t, ok)
	assert.Equal(t, "Maintenance", c.Name)

	orphan := ServiceType{CategoryID: 404}
	_, ok = d.CategoryOf(orphan)
	assert.False(t, ok)

	team, ok := d.TeamByName("Maintenance Team")
	require.True(t, ok)
	assert.Equal(t, "maintenance-team", team.ID)

	_, ok = d.TeamByName("Nobody")
	assert.False(t, ok)
}

func TestFormFieldAppliesTo(t *testing.T) {
	f := FormField{ServiceTypes: []string{"plumbing"}}
	assert.True(t, f.AppliesTo("plumbing"))
	assert.False(t, f.AppliesTo("hvac"))
	assert.True(t, FormField{ServiceTypes: []string{AllServiceTypes}}.AppliesTo("hvac"))
}
