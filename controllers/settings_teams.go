package controller

import (
	"github.com/gofiber/fiber/v2"
	"propdesk/utils"
)

type CreateTeamRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
}

type AddMemberRequest struct {
	MemberID string `json:"member_id" validate:"required"`
}

func (sc *SettingsController) ListTeams(c *fiber.Ctx) error {
	return c.JSON(utils.SuccessResponse(sc.set(c).Teams.List()))
}

func (sc *SettingsController) CreateTeam(c *fiber.Ctx) error {
	var input CreateTeamRequest
	if stop, err := parseAndValidate(c, &input); stop {
		return err
	}

	team, err := sc.set(c).Teams.AddTeam(input.Name, input.Description)
	if err != nil {
		return utils.HandleError(c, err)
	}
	sc.log.WithField("tenant_id", tenantOf(c)).WithField("team", team.Slug).Info("Team created")
	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(team))
}

func (sc *SettingsController) DeleteTeam(c *fiber.Ctx) error {
	if err := sc.set(c).Teams.RemoveTeam(c.Params("id")); err != nil {
		return utils.HandleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (sc *SettingsController) AddTeamMember(c *fiber.Ctx) error {
	var input AddMemberRequest
	if stop, err := parseAndValidate(c, &input); stop {
		return err
	}

	team, err := sc.set(c).Teams.AddMember(c.Params("id"), input.MemberID)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(utils.SuccessResponse(team))
}

func (sc *SettingsController) RemoveTeamMember(c *fiber.Ctx) error {
	team, err := sc.set(c).Teams.RemoveMember(c.Params("id"), c.Params("memberID"))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(utils.SuccessResponse(team))
}

func (sc *SettingsController) ToggleTeamEditing(c *fiber.Ctx) error {
	editing, err := sc.set(c).Teams.ToggleEditing(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(utils.SuccessResponse(fiber.Map{"editing": editing}))
}

// SearchDirectory handles GET /directory?q=...&team_id=...
func (sc *SettingsController) SearchDirectory(c *fiber.Ctx) error {
	return c.JSON(utils.SuccessResponse(sc.set(c).Teams.SearchDirectory(c.Query("team_id"), c.Query("q"))))
}
