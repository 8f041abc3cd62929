package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"propdesk/utils"
)

type IssueTokenRequest struct {
	TenantID string `json:"tenant_id" validate:"required,max=64"`
	UserID   string `json:"user_id" validate:"required,max=64"`
}

type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TenantID    string    `json:"tenant_id"`
	ExpiresAt   time.Time `json:"expires_at"`
}

const devTokenTTL = 24 * time.Hour

// IssueToken mints a token for any tenant without authentication. It is
// only routed when ENABLE_DEV_TOKENS is set, for local setups with no
// identity provider in front of the console.
func IssueToken(c *fiber.Ctx) error {
	var input IssueTokenRequest
	if stop, err := parseAndValidate(c, &input); stop {
		return err
	}

	token, err := utils.GenerateJWTToken(input.TenantID, input.UserID, devTokenTTL)
	if err != nil {
		return utils.HandleError(c, err)
	}

	utils.LogEvent("dev_token_issued", map[string]interface{}{
		"tenant_id": input.TenantID,
		"user_id":   input.UserID,
	})
	return c.JSON(utils.SuccessResponse(TokenResponse{
		AccessToken: token,
		TenantID:    input.TenantID,
		ExpiresAt:   time.Now().Add(devTokenTTL),
	}))
}
