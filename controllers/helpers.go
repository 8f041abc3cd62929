package controller

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"propdesk/utils"
)

// tenantOf returns the tenant set by middleware.Protected.
func tenantOf(c *fiber.Ctx) string {
	tenantID, _ := c.Locals("tenantID").(string)
	return tenantID
}

func intParam(c *fiber.Ctx, name string) (int, error) {
	v, err := strconv.Atoi(c.Params(name))
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", utils.ErrInvalidInput, name)
	}
	return v, nil
}

// parseAndValidate decodes the JSON body into dst and runs the validator.
// It writes the 400 response itself and reports whether the handler should
// stop.
func parseAndValidate(c *fiber.Ctx, dst interface{}) (bool, error) {
	if err := c.BodyParser(dst); err != nil {
		return true, utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(dst); err != nil {
		return true, utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}
	return false, nil
}
