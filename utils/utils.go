package utils

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// GenerateRateLimitKey creates a unique key for rate limiting
func GenerateRateLimitKey(tenantID, sessionID, path string) string {
	return fmt.Sprintf("rl:%s:%s:%s", tenantID, sessionID, path)
}

// ErrorResponse creates a standardized error response
func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	response := fiber.Map{
		"success": false,
		"error":   message,
	}
	if err != nil {
		response["details"] = err.Error()
	}
	return c.Status(status).JSON(response)
}

// SuccessResponse creates a standardized success response
func SuccessResponse(data interface{}) fiber.Map {
	return fiber.Map{
		"success": true,
		"data":    data,
	}
}

// HandleError writes the response for a domain error. Unexpected errors are
// reported with LogError and hidden from the client.
func HandleError(c *fiber.Ctx, err error) error {
	appErr := ToAppError(err)
	response := fiber.Map{
		"success": false,
		"code":    appErr.Code,
		"error":   appErr.Message,
	}

	if appErr.StatusCode >= fiber.StatusInternalServerError {
		LogError("request_failed", err, map[string]interface{}{
			"method": c.Method(),
			"path":   c.Path(),
		})
	}

	var incomplete *StepIncompleteError
	if errors.As(err, &incomplete) {
		response["problems"] = incomplete.Problems
	}
	return c.Status(appErr.StatusCode).JSON(response)
}
