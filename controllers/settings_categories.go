package controller

import (
	"github.com/gofiber/fiber/v2"
	"propdesk/models"
	"propdesk/steps"
	"propdesk/utils"
)

type CreateCategoryRequest struct {
	Name           string              `json:"name" validate:"required,max=100"`
	Description    string              `json:"description" validate:"max=500"`
	AssignedTo     string              `json:"assigned_to" validate:"max=100"`
	AssignedToType models.AssigneeType `json:"assigned_to_type" validate:"omitempty,oneof=user team"`
}

type categoriesResponse struct {
	Categories []models.Category `json:"categories"`
	Summary    steps.Summary     `json:"summary"`
	Label      string            `json:"label"`
}

func (sc *SettingsController) categories(c *fiber.Ctx) categoriesResponse {
	step := sc.set(c).Categories
	sum := step.Summary()
	return categoriesResponse{Categories: step.List(), Summary: sum, Label: sum.String()}
}

func (sc *SettingsController) ListCategories(c *fiber.Ctx) error {
	return c.JSON(utils.SuccessResponse(sc.categories(c)))
}

func (sc *SettingsController) ToggleCategory(c *fiber.Ctx) error {
	id, err := intParam(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}
	category, err := sc.set(c).Categories.Toggle(id)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(utils.SuccessResponse(category))
}

func (sc *SettingsController) SetAllCategories(c *fiber.Ctx) error {
	var input bulkToggleRequest
	if stop, err := parseAndValidate(c, &input); stop {
		return err
	}
	if _, err := sc.set(c).Categories.SetAll(*input.Enabled); err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(utils.SuccessResponse(sc.categories(c)))
}

func (sc *SettingsController) CreateCategory(c *fiber.Ctx) error {
	var input CreateCategoryRequest
	if stop, err := parseAndValidate(c, &input); stop {
		return err
	}
	category, err := sc.set(c).Categories.Add(input.Name, input.Description, models.Assignee{
		AssignedTo:     input.AssignedTo,
		AssignedToType: input.AssignedToType,
	})
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(category))
}

func (sc *SettingsController) DeleteCategory(c *fiber.Ctx) error {
	id, err := intParam(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}
	if err := sc.set(c).Categories.Remove(id); err != nil {
		return utils.HandleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
