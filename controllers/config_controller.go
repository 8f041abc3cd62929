package controller

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"propdesk/models"
	"propdesk/store"
	"propdesk/utils"
)

// ConfigController reads and patches a tenant's whole configuration.
type ConfigController struct {
	stores *store.Manager
	log    *logrus.Entry
}

func NewConfigController(stores *store.Manager) *ConfigController {
	return &ConfigController{stores: stores, log: utils.Component("CONFIG")}
}

func (cc *ConfigController) GetConfig(c *fiber.Ctx) error {
	return c.JSON(utils.SuccessResponse(cc.stores.For(tenantOf(c)).Snapshot()))
}

// PatchConfig replaces the sections present in the body. Sections left out
// are not touched.
func (cc *ConfigController) PatchConfig(c *fiber.Ctx) error {
	var patch models.Patch
	if err := c.BodyParser(&patch); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if patch.Empty() {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Patch names no section", nil)
	}
	if err := validatePatch(patch); err != nil {
		return utils.HandleError(c, err)
	}

	st := cc.stores.For(tenantOf(c))
	if err := st.Update(patch); err != nil {
		return utils.HandleError(c, err)
	}

	cc.log.WithField("tenant_id", tenantOf(c)).Info("Configuration patched")
	return c.JSON(utils.SuccessResponse(st.Snapshot()))
}

func validatePatch(p models.Patch) error {
	var problems []string
	if p.Teams != nil {
		ids := map[string]bool{}
		slugs := map[string]bool{}
		hasProperty := false
		for _, t := range *p.Teams {
			if strings.TrimSpace(t.Name) == "" || t.ID == "" {
				problems = append(problems, "every team needs an id and a name")
			}
			if ids[t.ID] {
				problems = append(problems, fmt.Sprintf("duplicate team id %q", t.ID))
			}
			ids[t.ID] = true
			if slugs[t.Slug] {
				problems = append(problems, fmt.Sprintf("duplicate team slug %q", t.Slug))
			}
			slugs[t.Slug] = true
			members := map[string]bool{}
			for _, m := range t.Members {
				if members[m.ID] {
					problems = append(problems, fmt.Sprintf("team %q lists member %q twice", t.ID, m.ID))
				}
				members[m.ID] = true
			}
			hasProperty = hasProperty || t.ID == models.PropertyTeamID
		}
		if !hasProperty {
			return utils.ErrTeamUndeletable
		}
	}
	if p.Categories != nil {
		ids := map[int]bool{}
		for _, cat := range *p.Categories {
			if ids[cat.ID] {
				problems = append(problems, fmt.Sprintf("duplicate category id %d", cat.ID))
			}
			ids[cat.ID] = true
			if cat.AssignedTo != "" && !cat.AssignedToType.Valid() {
				problems = append(problems, fmt.Sprintf("category %d has an invalid assignee type", cat.ID))
			}
		}
	}
	if p.ServiceTypes != nil {
		ids := map[int]bool{}
		for _, st := range *p.ServiceTypes {
			if ids[st.ID] {
				problems = append(problems, fmt.Sprintf("duplicate service type id %d", st.ID))
			}
			ids[st.ID] = true
			if st.AssignedTo != "" && !st.AssignedToType.Valid() {
				problems = append(problems, fmt.Sprintf("service type %d has an invalid assignee type", st.ID))
			}
		}
	}
	if p.Statuses != nil {
		ids := map[int]bool{}
		for _, st := range *p.Statuses {
			if ids[st.ID] {
				problems = append(problems, fmt.Sprintf("duplicate status id %d", st.ID))
			}
			ids[st.ID] = true
		}
	}
	if p.FormFields != nil {
		core := map[string]bool{}
		ids := map[string]bool{}
		slugs := map[string]bool{}
		for _, f := range *p.FormFields {
			if ids[f.ID] {
				problems = append(problems, fmt.Sprintf("duplicate field id %q", f.ID))
			}
			ids[f.ID] = true
			if !f.Type.Valid() {
				problems = append(problems, fmt.Sprintf("field %q has an invalid type", f.ID))
			}
			if !f.Requirement.Valid() {
				problems = append(problems, fmt.Sprintf("field %q has an invalid requirement", f.ID))
			}
			if slugs[f.Slug] {
				problems = append(problems, fmt.Sprintf("duplicate field slug %q", f.Slug))
			}
			slugs[f.Slug] = true
			if f.IsCore {
				core[f.ID] = true
			}
		}
		for _, id := range []string{models.FieldLocation, models.FieldDescription, models.FieldAttachments} {
			if !core[id] {
				return utils.ErrCoreField
			}
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", utils.ErrInvalidInput, strings.Join(problems, "; "))
	}
	return nil
}
