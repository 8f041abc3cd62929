package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"propdesk/steps"
	"propdesk/utils"
)

// SettingsController exposes the operations of each wizard step. Every
// handler works on the caller's tenant.
type SettingsController struct {
	steps *steps.Registry
	log   *logrus.Entry
}

func NewSettingsController(stepRegistry *steps.Registry) *SettingsController {
	return &SettingsController{steps: stepRegistry, log: utils.Component("SETTINGS")}
}

func (sc *SettingsController) set(c *fiber.Ctx) *steps.Set {
	return sc.steps.For(tenantOf(c))
}

type bulkToggleRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}
