package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"propdesk/utils"
)

// Protected requires a valid tenant token. It reads the Authorization
// header, then the access_token cookie, then the token query parameter
// (browsers cannot set headers on websocket upgrades).
func Protected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var token string
		authHeader := c.Get("Authorization")
		if authHeader != "" {
			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"success": false,
					"code":    utils.ErrCodeUnauthorized,
					"error":   "Invalid authorization format",
				})
			}
			token = tokenParts[1]
		} else {
			token = c.Cookies("access_token")
			if token == "" {
				token = c.Query("token")
			}
			if token == "" {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"success": false,
					"code":    utils.ErrCodeUnauthorized,
					"error":   "Authorization required",
				})
			}
		}

		claims, err := utils.ParseJWTToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"code":    utils.ErrCodeUnauthorized,
				"error":   "Invalid or expired token",
			})
		}

		c.Locals("tenantID", claims.TenantID)
		c.Locals("userID", claims.UserID)

		return c.Next()
	}
}
