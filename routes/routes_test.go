package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"propdesk/assistant"
	"propdesk/config"
	"propdesk/messaging"
	"propdesk/models"
	"propdesk/sessions"
	"propdesk/steps"
	"propdesk/store"
	"propdesk/utils"
	"propdesk/wizard"
)

type testEnv struct {
	app     *fiber.App
	mem     *store.MemoryStorage
	stores  *store.Manager
	steps   *steps.Registry
	inboxes *messaging.Registry
	token   string
	wizards *sessions.Registry[*wizard.Session]
}

type envOption func(*Services)

func withDevTokens(svc *Services) { svc.DevTokens = true }

func newTestEnv(t *testing.T, validateSteps bool, opts ...envOption) *testEnv {
	t.Helper()
	config.AppConfig.JWTSecret = "test-secret"

	mem := store.NewMemoryStorage()
	stores := store.NewManager(mem)
	wizards := sessions.NewRegistry[*wizard.Session]()
	assistants := sessions.NewRegistry[*assistant.Session]()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	svc := &Services{
		Ctx:                 ctx,
		Storage:             mem,
		Stores:              stores,
		Steps:               steps.NewRegistry(stores, models.DefaultDirectory()),
		Wizards:             wizards,
		Assistants:          assistants,
		Responder:           assistant.CannedResponder{KB: assistant.DefaultKnowledgeBase},
		Inboxes:             messaging.NewRegistry(),
		ValidateSteps:       validateSteps,
		AssistantReplyDelay: 0,
		AssistantRateLimit:  100,
	}
	for _, opt := range opts {
		opt(svc)
	}

	app := NewApp()
	SetupRoutes(app, svc)

	token, err := utils.GenerateJWTToken("acme", "u-1001", time.Hour)
	require.NoError(t, err)
	return &testEnv{
		app:     app,
		mem:     mem,
		stores:  stores,
		steps:   svc.Steps,
		inboxes: svc.Inboxes,
		token:   token,
		wizards: wizards,
	}
}

type envelope struct {
	Success  bool            `json:"success"`
	Code     string          `json:"code"`
	Error    string          `json:"error"`
	Problems []string        `json:"problems"`
	Data     json.RawMessage `json:"data"`
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.token)

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &env)
	}
	return resp.StatusCode, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestPublicRoutes(t *testing.T) {
	env := newTestEnv(t, false)

	resp, err := env.app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = env.app.Test(httptest.NewRequest("GET", "/api/v1/config", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = env.app.Test(httptest.NewRequest("POST", "/auth/token", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDevTokenRoute(t *testing.T) {
	env := newTestEnv(t, false, withDevTokens)

	req := httptest.NewRequest("POST", "/auth/token", strings.NewReader(`{"tenant_id":"beta","user_id":"u-1"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := env.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	claims, err := utils.ParseJWTToken(body.Data.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "beta", claims.TenantID)
}

func TestStoredRouteParamsSurviveLaterRequests(t *testing.T) {
	env := newTestEnv(t, false)

	status, _ := env.do(t, "POST", "/api/v1/conversations/conv-1/messages", map[string]string{"content": "On my way"})
	require.Equal(t, http.StatusCreated, status)
	status, _ = env.do(t, "POST", "/api/v1/teams/maintenance-team/editing", nil)
	require.Equal(t, http.StatusOK, status)

	filler := "/api/v1/teams/" + strings.Repeat("Q", 40)
	for i := 0; i < 20; i++ {
		env.do(t, "GET", filler, nil)
	}

	msgs, err := env.inboxes.For("acme").Messages("conv-1")
	require.NoError(t, err)
	require.NotEmpty(t, msgs)
	last := msgs[len(msgs)-1]
	assert.Equal(t, "On my way", last.Content)
	assert.Equal(t, "conv-1", last.ConversationID)

	assert.True(t, env.steps.For("acme").Teams.Editing("maintenance-team"))
}

func TestTeamsAPI(t *testing.T) {
	env := newTestEnv(t, false)

	status, res := env.do(t, "POST", "/api/v1/teams", map[string]string{"name": "Roof Crew"})
	require.Equal(t, http.StatusCreated, status)
	team := decode[models.Team](t, res.Data)
	assert.Equal(t, "roof-crew", team.Slug)

	status, res = env.do(t, "POST", "/api/v1/teams", map[string]string{"name": ""})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, res.Success)

	status, res = env.do(t, "DELETE", "/api/v1/teams/"+models.PropertyTeamID, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, utils.ErrCodeForbidden, res.Code)

	status, _ = env.do(t, "POST", "/api/v1/teams/"+team.ID+"/members", map[string]string{"member_id": "u-1005"})
	assert.Equal(t, http.StatusOK, status)

	status, res = env.do(t, "GET", "/api/v1/directory?q=maria&team_id="+team.ID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]models.TeamMember](t, res.Data), 1)

	status, res = env.do(t, "GET", "/api/v1/teams", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]models.Team](t, res.Data), 3)

	status, _ = env.do(t, "DELETE", "/api/v1/teams/"+team.ID, nil)
	assert.Equal(t, http.StatusNoContent, status)
}

func TestCategoriesAndStatusesAPI(t *testing.T) {
	env := newTestEnv(t, false)

	status, res := env.do(t, "POST", "/api/v1/categories/1/toggle", nil)
	require.Equal(t, http.StatusOK, status)
	assert.False(t, decode[models.Category](t, res.Data).Status)

	status, _ = env.do(t, "POST", "/api/v1/categories/abc/toggle", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, res = env.do(t, "PUT", "/api/v1/statuses/bulk", map[string]bool{"enabled": false})
	require.Equal(t, http.StatusOK, status)
	body := decode[struct {
		Statuses []models.Status `json:"statuses"`
		Label    string          `json:"label"`
	}](t, res.Data)
	assert.Equal(t, "0 of 8 selected", body.Label)
	for _, s := range body.Statuses {
		assert.False(t, s.Status)
	}

	status, _ = env.do(t, "PUT", "/api/v1/statuses/bulk", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestServiceTypeApprovalAPI(t *testing.T) {
	env := newTestEnv(t, false)
	approval := map[string]interface{}{
		"requires_approval": true,
		"approver":          "Sarah Johnson",
		"approver_type":     "user",
	}

	status, res := env.do(t, "POST", "/api/v1/service-types/1/approval/prompt", approval)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]bool{"prompt": true}, decode[map[string]bool](t, res.Data))

	approval["apply_to_category"] = true
	status, res = env.do(t, "PUT", "/api/v1/service-types/1/approval", approval)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]models.ServiceType](t, res.Data), 4)

	for _, st := range env.stores.For("acme").Snapshot().ServiceTypes {
		if st.CategoryID == 1 {
			assert.True(t, st.NeedsApproval())
		}
	}

	status, _ = env.do(t, "PUT", "/api/v1/service-types/1/assignee", map[string]string{"assigned_to": "x", "assigned_to_type": "robot"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestFormFieldsAPI(t *testing.T) {
	env := newTestEnv(t, false)

	status, res := env.do(t, "POST", "/api/v1/form-fields", map[string]string{"name": "Work Order #", "type": "text"})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "work-order-#", decode[models.FormField](t, res.Data).Slug)

	status, _ = env.do(t, "POST", "/api/v1/form-fields", map[string]string{"name": "work order #", "type": "number"})
	assert.Equal(t, http.StatusConflict, status)

	status, _ = env.do(t, "DELETE", "/api/v1/form-fields/"+models.FieldLocation, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = env.do(t, "POST", "/api/v1/form-fields", map[string]string{"name": "Color", "type": "color"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestConfigAPI(t *testing.T) {
	env := newTestEnv(t, false)

	status, _ := env.do(t, "PATCH", "/api/v1/config", map[string]interface{}{
		"notifications": map[string]bool{"notify_on_status_changes": true},
	})
	require.Equal(t, http.StatusOK, status)
	assert.True(t, env.stores.For("acme").Snapshot().Notifications.NotifyOnStatusChanges)

	status, _ = env.do(t, "PATCH", "/api/v1/config", map[string]interface{}{
		"teams": []models.Team{{ID: "x", Slug: "x", Name: "X"}},
	})
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = env.do(t, "PATCH", "/api/v1/config", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, status)

	before := env.stores.For("acme").Snapshot()
	property := models.DefaultTeams()[0]
	twice := property.Members[0]
	property.Members = []models.TeamMember{twice, twice}
	categories := models.DefaultCategories()
	categories[1].ID = categories[0].ID
	statuses := models.DefaultStatuses()
	statuses[1].ID = statuses[0].ID
	serviceTypes := models.DefaultServiceTypes()
	serviceTypes[1].ID = serviceTypes[0].ID

	rejected := []struct {
		name  string
		patch map[string]interface{}
	}{
		{"duplicate team member", map[string]interface{}{"teams": []models.Team{property}}},
		{"duplicate category id", map[string]interface{}{"categories": categories}},
		{"duplicate status id", map[string]interface{}{"statuses": statuses}},
		{"duplicate service type id", map[string]interface{}{"service_types": serviceTypes}},
	}
	for _, tt := range rejected {
		t.Run(tt.name, func(t *testing.T) {
			status, res := env.do(t, "PATCH", "/api/v1/config", tt.patch)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, utils.ErrCodeValidation, res.Code)
		})
	}
	assert.Equal(t, before, env.stores.For("acme").Snapshot())
}

func TestWizardAPI(t *testing.T) {
	t.Run("roof crew end to end", func(t *testing.T) {
		env := newTestEnv(t, true)

		status, res := env.do(t, "POST", "/api/v1/wizard", nil)
		require.Equal(t, http.StatusCreated, status)
		started := decode[struct {
			Session wizard.View `json:"session"`
		}](t, res.Data)
		assert.Equal(t, 1, started.Session.Step)
		id := started.Session.ID

		status, _ = env.do(t, "POST", "/api/v1/teams", map[string]string{"name": "Roof Crew"})
		require.Equal(t, http.StatusCreated, status)

		var last wizard.View
		for i := 0; i < wizard.TotalSteps; i++ {
			status, res = env.do(t, "POST", "/api/v1/wizard/"+id+"/next", nil)
			require.Equal(t, http.StatusOK, status)
			last = decode[struct {
				Session wizard.View `json:"session"`
			}](t, res.Data).Session
		}
		assert.Equal(t, wizard.StateCompleted, last.State)

		status, _ = env.do(t, "POST", "/api/v1/wizard/"+id+"/next", nil)
		assert.Equal(t, http.StatusConflict, status)

		raw, err := env.mem.Get(store.TenantPrefix("acme") + store.KeyTeams)
		require.NoError(t, err)
		var teams []models.Team
		require.NoError(t, json.Unmarshal(raw, &teams))
		var found bool
		for _, team := range teams {
			if team.Name == "Roof Crew" {
				found = true
				assert.Equal(t, "roof-crew", team.Slug)
				assert.Empty(t, team.Members)
			}
		}
		assert.True(t, found)
	})

	t.Run("gate reports problems", func(t *testing.T) {
		env := newTestEnv(t, true)
		status, _ := env.do(t, "PUT", "/api/v1/categories/bulk", map[string]bool{"enabled": false})
		require.Equal(t, http.StatusOK, status)

		_, res := env.do(t, "POST", "/api/v1/wizard", nil)
		id := decode[struct {
			Session wizard.View `json:"session"`
		}](t, res.Data).Session.ID

		status, _ = env.do(t, "POST", "/api/v1/wizard/"+id+"/next", nil)
		require.Equal(t, http.StatusOK, status)

		status, res = env.do(t, "POST", "/api/v1/wizard/"+id+"/next", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, status)
		assert.Equal(t, utils.ErrCodeIncomplete, res.Code)
		assert.NotEmpty(t, res.Problems)
	})

	t.Run("back from step 1 closes the session", func(t *testing.T) {
		env := newTestEnv(t, false)
		_, res := env.do(t, "POST", "/api/v1/wizard", nil)
		id := decode[struct {
			Session wizard.View `json:"session"`
		}](t, res.Data).Session.ID

		status, _ := env.do(t, "POST", "/api/v1/wizard/"+id+"/back", nil)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, 0, env.wizards.Len())

		status, _ = env.do(t, "GET", "/api/v1/wizard/"+id, nil)
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestAssistantAPI(t *testing.T) {
	env := newTestEnv(t, false)

	status, res := env.do(t, "POST", "/api/v1/assistant/sessions", nil)
	require.Equal(t, http.StatusCreated, status)
	id := decode[struct {
		ID string `json:"id"`
	}](t, res.Data).ID

	status, _ = env.do(t, "POST", "/api/v1/assistant/sessions/"+id+"/messages", map[string]string{"content": "how do statuses work?"})
	require.Equal(t, http.StatusAccepted, status)

	require.Eventually(t, func() bool {
		_, res := env.do(t, "GET", "/api/v1/assistant/sessions/"+id+"/messages", nil)
		return len(decode[[]assistant.Message](t, res.Data)) == 2
	}, time.Second, 10*time.Millisecond)

	status, _ = env.do(t, "DELETE", "/api/v1/assistant/sessions/"+id, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = env.do(t, "GET", "/api/v1/assistant/sessions/"+id+"/messages", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestMessagingAPI(t *testing.T) {
	env := newTestEnv(t, false)

	status, res := env.do(t, "POST", "/api/v1/conversations/conv-1/service-requests", map[string]string{
		"type":        "Plumbing",
		"description": "Kitchen sink leak",
		"location":    "4B",
	})
	require.Equal(t, http.StatusCreated, status)
	body := decode[struct {
		Message      messaging.Message      `json:"message"`
		Conversation messaging.Conversation `json:"conversation"`
	}](t, res.Data)
	assert.Regexp(t, `^SR-\d{5}$`, body.Conversation.Label)
	assert.Equal(t, body.Message.Card.Ticket, body.Conversation.Label)

	status, _ = env.do(t, "POST", "/api/v1/conversations/conv-1/service-requests", map[string]string{"type": "Plumbing"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = env.do(t, "POST", "/api/v1/conversations/nope/messages", map[string]string{"content": "hi"})
	assert.Equal(t, http.StatusNotFound, status)
}
