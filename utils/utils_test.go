package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"propdesk/config"
)

func TestToAppError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{ErrTeamNotFound, fiber.StatusNotFound, ErrCodeNotFound},
		{fmt.Errorf("load: %w", ErrSessionNotFound), fiber.StatusNotFound, ErrCodeNotFound},
		{ErrTeamUndeletable, fiber.StatusForbidden, ErrCodeForbidden},
		{ErrCoreField, fiber.StatusForbidden, ErrCodeForbidden},
		{ErrDuplicateSlug, fiber.StatusConflict, ErrCodeConflict},
		{ErrWizardFinished, fiber.StatusConflict, ErrCodeConflict},
		{&StepIncompleteError{Step: 2, Problems: []string{"x"}}, fiber.StatusUnprocessableEntity, ErrCodeIncomplete},
		{fmt.Errorf("%w: bad", ErrInvalidInput), fiber.StatusBadRequest, ErrCodeValidation},
		{errors.New("disk on fire"), fiber.StatusInternalServerError, ErrCodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			appErr := ToAppError(tt.err)
			assert.Equal(t, tt.status, appErr.StatusCode)
			assert.Equal(t, tt.code, appErr.Code)
			assert.ErrorIs(t, appErr, tt.err)
		})
	}

	assert.Equal(t, "An unexpected error occurred", ToAppError(errors.New("secret detail")).Message)
}

func TestHandleErrorIncludesProblems(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return HandleError(c, &StepIncompleteError{Step: 4, Problems: []string{"enable at least one status"}})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	raw, _ := io.ReadAll(resp.Body)
	var body struct {
		Success  bool     `json:"success"`
		Code     string   `json:"code"`
		Problems []string `json:"problems"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.False(t, body.Success)
	assert.Equal(t, ErrCodeIncomplete, body.Code)
	assert.Equal(t, []string{"enable at least one status"}, body.Problems)
}

func TestValidateStruct(t *testing.T) {
	type input struct {
		Name string `validate:"required,max=5"`
		Kind string `validate:"omitempty,oneof=user team"`
	}

	assert.NoError(t, ValidateStruct(input{Name: "ok"}))

	err := ValidateStruct(input{Kind: "robot"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), "kind must be one of: user team")

	err = ValidateStruct(input{Name: "too long"})
	assert.Contains(t, err.Error(), "name must be at most 5 characters")
}

func TestJWTRoundTrip(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	token, err := GenerateJWTToken("acme", "u-1", time.Minute)
	require.NoError(t, err)

	claims, err := ParseJWTToken(token)
	require.NoError(t, err)
	assert.Equal(t, "acme", claims.TenantID)
	assert.Equal(t, "u-1", claims.UserID)

	_, err = GenerateJWTToken("", "u-1", time.Minute)
	assert.Error(t, err)

	expired, err := GenerateJWTToken("acme", "u-1", -time.Minute)
	require.NoError(t, err)
	_, err = ParseJWTToken(expired)
	assert.Error(t, err)

	config.AppConfig.JWTSecret = "rotated"
	_, err = ParseJWTToken(token)
	assert.Error(t, err)
}

func TestRenderEmail(t *testing.T) {
	body, err := renderEmail(EmailData{
		Subject:  "Request received",
		Template: "service_request_created",
		Data: map[string]interface{}{
			"Subject":     "Request received",
			"Ticket":      "SR-00042",
			"Type":        "Plumbing",
			"Location":    "4B",
			"Description": "<b>leak</b>",
			"Year":        2026,
		},
	})
	require.NoError(t, err)
	assert.Contains(t, body, "SR-00042")
	assert.Contains(t, body, "&lt;b&gt;leak&lt;/b&gt;")

	_, err = renderEmail(EmailData{Template: "missing"})
	assert.Error(t, err)
}

func TestNewMailerWithoutHostLogs(t *testing.T) {
	m := NewMailer(config.SMTPConfig{})
	require.IsType(t, LogMailer{}, m)

	err := m.Send(EmailData{
		To:       []string{"a@example.com"},
		Template: "service_request_assigned",
		Data: map[string]interface{}{
			"Team": "Maintenance Team", "Ticket": "SR-00001", "Type": "HVAC",
			"Location": "Lobby", "Requestor": "Jane", "Description": "No heat", "Year": 2026,
		},
	})
	assert.NoError(t, err)
	assert.Error(t, m.Send(EmailData{Template: "missing"}))
}

func TestRateLimitKey(t *testing.T) {
	assert.Equal(t, "rl:acme:s1:/x", GenerateRateLimitKey("acme", "s1", "/x"))
}
