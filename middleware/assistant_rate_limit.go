package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"propdesk/utils"
)

// AssistantRateLimiter caps how many questions a tenant can send to one
// assistant session per minute. Counters live in storage so every instance
// shares them when redis or postgres is configured.
func AssistantRateLimiter(storage fiber.Storage, max int) fiber.Handler {
	if max <= 0 {
		max = 30
	}
	return limiter.New(limiter.Config{
		Max:          max,
		Expiration:   1 * time.Minute,
		KeyGenerator: AssistantRateLimitKey,
		LimitReached: func(c *fiber.Ctx) error {
			tenantID, _ := c.Locals("tenantID").(string)
			utils.LogEvent("rate_limit_hit", map[string]interface{}{
				"tenant_id":  tenantID,
				"endpoint":   c.Path(),
				"ip":         c.IP(),
				"user_agent": c.Get("User-Agent"),
			})

			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success":     false,
				"code":        "rate_limited",
				"error":       "Too many messages. Please wait before asking again.",
				"retry_after": "1 minute",
			})
		},
		Storage: storage,
	})
}

// AssistantRateLimitKey combines tenant, session and endpoint.
func AssistantRateLimitKey(c *fiber.Ctx) string {
	tenantID, _ := c.Locals("tenantID").(string)
	return utils.GenerateRateLimitKey(tenantID, c.Params("id"), c.Path())
}
