package controller

import (
	"github.com/gofiber/fiber/v2"
	"propdesk/models"
	"propdesk/steps"
	"propdesk/utils"
)

type statusesResponse struct {
	Statuses []models.Status    `json:"statuses"`
	Groups   []steps.ColorGroup `json:"groups"`
	Summary  steps.Summary      `json:"summary"`
	Label    string             `json:"label"`
}

func (sc *SettingsController) statuses(c *fiber.Ctx) statusesResponse {
	step := sc.set(c).Statuses
	sum := step.Summary()
	return statusesResponse{
		Statuses: step.List(),
		Groups:   step.GroupByColor(),
		Summary:  sum,
		Label:    sum.String(),
	}
}

func (sc *SettingsController) ListStatuses(c *fiber.Ctx) error {
	return c.JSON(utils.SuccessResponse(sc.statuses(c)))
}

func (sc *SettingsController) ToggleStatus(c *fiber.Ctx) error {
	id, err := intParam(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}
	status, err := sc.set(c).Statuses.Toggle(id)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(utils.SuccessResponse(status))
}

func (sc *SettingsController) SetAllStatuses(c *fiber.Ctx) error {
	var input bulkToggleRequest
	if stop, err := parseAndValidate(c, &input); stop {
		return err
	}
	if _, err := sc.set(c).Statuses.SetAll(*input.Enabled); err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(utils.SuccessResponse(sc.statuses(c)))
}
