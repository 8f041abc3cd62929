package wizard

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"propdesk/models"
	"propdesk/steps"
	"propdesk/store"
	"propdesk/utils"
)

type stubValidator struct {
	number   int
	problems []string
}

func (s stubValidator) Number() int                         { return s.number }
func (s stubValidator) Validate(models.WizardData) []string { return s.problems }

func TestControllerTransitions(t *testing.T) {
	t.Run("starts at step 1", func(t *testing.T) {
		c := NewController(nil, nil, Options{})
		assert.Equal(t, 1, c.Step())
		assert.Equal(t, StateInProgress, c.State())
	})

	t.Run("next through all steps completes once", func(t *testing.T) {
		completed := 0
		c := NewController(nil, nil, Options{OnComplete: func() { completed++ }})

		for want := 2; want <= TotalSteps; want++ {
			tr, err := c.Next()
			require.NoError(t, err)
			assert.Equal(t, want-1, tr.From)
			assert.Equal(t, want, tr.To)
			assert.True(t, tr.ScrollToTop)
		}
		assert.Equal(t, 0, completed)

		tr, err := c.Next()
		require.NoError(t, err)
		assert.Equal(t, StateCompleted, tr.State)
		assert.Equal(t, TotalSteps, c.Step())
		assert.Equal(t, 1, completed)

		_, err = c.Next()
		assert.ErrorIs(t, err, utils.ErrWizardFinished)
		assert.Equal(t, 1, completed)
	})

	t.Run("back from step 1 closes", func(t *testing.T) {
		closed := 0
		c := NewController(nil, nil, Options{OnClose: func() { closed++ }})

		_, err := c.Next()
		require.NoError(t, err)
		tr, err := c.Back()
		require.NoError(t, err)
		assert.Equal(t, 1, tr.To)
		assert.Equal(t, 0, closed)

		tr, err = c.Back()
		require.NoError(t, err)
		assert.Equal(t, StateClosed, tr.State)
		assert.Equal(t, 1, closed)

		_, err = c.Back()
		assert.ErrorIs(t, err, utils.ErrWizardFinished)
	})

	t.Run("callbacks may call back into the controller", func(t *testing.T) {
		var c *Controller
		var seen State
		c = NewController(nil, nil, Options{OnClose: func() { seen = c.State() }})
		_, err := c.Back()
		require.NoError(t, err)
		assert.Equal(t, StateClosed, seen)
	})
}

func TestControllerValidationGate(t *testing.T) {
	validators := []Validator{stubValidator{number: 1, problems: []string{"at least one team is required"}}}
	snapshot := func() models.WizardData { return models.WizardData{} }

	t.Run("gate off advances anyway", func(t *testing.T) {
		c := NewController(validators, snapshot, Options{})
		tr, err := c.Next()
		require.NoError(t, err)
		assert.Equal(t, 2, tr.To)
	})

	t.Run("gate on blocks", func(t *testing.T) {
		c := NewController(validators, snapshot, Options{ValidateSteps: true})
		_, err := c.Next()
		require.ErrorIs(t, err, utils.ErrStepIncomplete)

		var incomplete *utils.StepIncompleteError
		require.ErrorAs(t, err, &incomplete)
		assert.Equal(t, 1, incomplete.Step)
		assert.Equal(t, []string{"at least one team is required"}, incomplete.Problems)
		assert.Equal(t, 1, c.Step())
	})
}

func TestRoofCrewScenario(t *testing.T) {
	mem := store.NewMemoryStorage()
	st := store.Open(mem, "acme")
	set := steps.NewSet(st, models.DefaultDirectory())

	var validators []Validator
	for _, s := range set.Ordered() {
		validators = append(validators, s)
	}
	completed := false
	c := NewController(validators, st.Snapshot, Options{
		ValidateSteps: true,
		OnComplete:    func() { completed = true },
	})

	_, err := set.Teams.AddTeam("Roof Crew", "")
	require.NoError(t, err)

	for i := 0; i < TotalSteps; i++ {
		_, err := c.Next()
		require.NoError(t, err)
	}
	require.True(t, completed)

	raw, err := mem.Get(st.Key(store.KeyTeams))
	require.NoError(t, err)

	var teams []models.Team
	require.NoError(t, json.Unmarshal(raw, &teams))

	var found *models.Team
	for i := range teams {
		if teams[i].Name == "Roof Crew" {
			found = &teams[i]
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, "roof-crew", found.Slug)
	assert.Empty(t, found.Members)
}
