package controller

import (
	"github.com/gofiber/fiber/v2"
	"propdesk/models"
	"propdesk/utils"
)

func (sc *SettingsController) GetNotifications(c *fiber.Ctx) error {
	return c.JSON(utils.SuccessResponse(sc.set(c).Notifications.Get()))
}

func (sc *SettingsController) UpdateNotifications(c *fiber.Ctx) error {
	var input models.NotificationSettings
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	step := sc.set(c).Notifications
	if err := step.Set(input); err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(utils.SuccessResponse(step.Get()))
}
