package controller

import (
	"github.com/gofiber/fiber/v2"
	"propdesk/models"
	"propdesk/utils"
)

// ApprovalRequest switches approval on or off. ApplyToCategory is the
// answer to the "apply to the whole category?" prompt.
type ApprovalRequest struct {
	RequiresApproval bool                `json:"requires_approval"`
	Approver         string              `json:"approver" validate:"max=100"`
	ApproverType     models.AssigneeType `json:"approver_type" validate:"omitempty,oneof=user team"`
	ApplyToCategory  bool                `json:"apply_to_category"`
}

func (r ApprovalRequest) policy() models.ApprovalPolicy {
	if !r.RequiresApproval {
		return models.NoApproval()
	}
	return models.RequireApproval(models.Assignee{AssignedTo: r.Approver, AssignedToType: r.ApproverType})
}

type AssigneeRequest struct {
	AssignedTo      string              `json:"assigned_to" validate:"required,max=100"`
	AssignedToType  models.AssigneeType `json:"assigned_to_type" validate:"required,oneof=user team"`
	ApplyToCategory bool                `json:"apply_to_category"`
}

func (sc *SettingsController) ListServiceTypes(c *fiber.Ctx) error {
	return c.JSON(utils.SuccessResponse(sc.set(c).ServiceTypes.Groups()))
}

func (sc *SettingsController) ToggleServiceType(c *fiber.Ctx) error {
	id, err := intParam(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}
	st, err := sc.set(c).ServiceTypes.Toggle(id)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(utils.SuccessResponse(st))
}

func (sc *SettingsController) SetCategoryServiceTypes(c *fiber.Ctx) error {
	categoryID, err := intParam(c, "categoryID")
	if err != nil {
		return utils.HandleError(c, err)
	}
	var input bulkToggleRequest
	if stop, err := parseAndValidate(c, &input); stop {
		return err
	}
	changed, err := sc.set(c).ServiceTypes.SetCategoryEnabled(categoryID, *input.Enabled)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(utils.SuccessResponse(changed))
}

// ApprovalPrompt tells the client whether to ask about applying an approval
// change to the rest of the category before calling SetApproval.
func (sc *SettingsController) ApprovalPrompt(c *fiber.Ctx) error {
	id, err := intParam(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}
	var input ApprovalRequest
	if stop, err := parseAndValidate(c, &input); stop {
		return err
	}
	need, err := sc.set(c).ServiceTypes.PromptNeeded(id, input.policy())
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(utils.SuccessResponse(fiber.Map{"prompt": need}))
}

func (sc *SettingsController) SetApproval(c *fiber.Ctx) error {
	id, err := intParam(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}
	var input ApprovalRequest
	if stop, err := parseAndValidate(c, &input); stop {
		return err
	}
	changed, err := sc.set(c).ServiceTypes.SetApproval(id, input.policy(), input.ApplyToCategory)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(utils.SuccessResponse(changed))
}

func (sc *SettingsController) AssigneePrompt(c *fiber.Ctx) error {
	id, err := intParam(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}
	var input AssigneeRequest
	if stop, err := parseAndValidate(c, &input); stop {
		return err
	}
	need, err := sc.set(c).ServiceTypes.AssigneePromptNeeded(id, models.Assignee{
		AssignedTo:     input.AssignedTo,
		AssignedToType: input.AssignedToType,
	})
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(utils.SuccessResponse(fiber.Map{"prompt": need}))
}

func (sc *SettingsController) SetAssignee(c *fiber.Ctx) error {
	id, err := intParam(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}
	var input AssigneeRequest
	if stop, err := parseAndValidate(c, &input); stop {
		return err
	}
	changed, err := sc.set(c).ServiceTypes.SetAssignee(id, models.Assignee{
		AssignedTo:     input.AssignedTo,
		AssignedToType: input.AssignedToType,
	}, input.ApplyToCategory)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(utils.SuccessResponse(changed))
}
