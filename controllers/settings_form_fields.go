package controller

import (
	"github.com/gofiber/fiber/v2"
	"propdesk/models"
	"propdesk/steps"
	"propdesk/utils"
)

type RequirementRequest struct {
	Requirement models.Requirement `json:"requirement" validate:"required,oneof=disabled optional required"`
}

func (sc *SettingsController) ListFormFields(c *fiber.Ctx) error {
	return c.JSON(utils.SuccessResponse(sc.set(c).FormFields.Groups()))
}

func (sc *SettingsController) CreateFormField(c *fiber.Ctx) error {
	var input steps.FieldInput
	if stop, err := parseAndValidate(c, &input); stop {
		return err
	}
	field, err := sc.set(c).FormFields.Add(input)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(field))
}

func (sc *SettingsController) UpdateFormField(c *fiber.Ctx) error {
	var input steps.FieldInput
	if stop, err := parseAndValidate(c, &input); stop {
		return err
	}
	field, err := sc.set(c).FormFields.Edit(c.Params("id"), input)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(utils.SuccessResponse(field))
}

func (sc *SettingsController) DeleteFormField(c *fiber.Ctx) error {
	if err := sc.set(c).FormFields.Remove(c.Params("id")); err != nil {
		return utils.HandleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (sc *SettingsController) SetFieldRequirement(c *fiber.Ctx) error {
	var input RequirementRequest
	if stop, err := parseAndValidate(c, &input); stop {
		return err
	}
	field, err := sc.set(c).FormFields.SetRequirement(c.Params("id"), input.Requirement)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(utils.SuccessResponse(field))
}
