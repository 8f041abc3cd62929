package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"propdesk/sessions"
	"propdesk/steps"
	"propdesk/store"
	"propdesk/utils"
	"propdesk/wizard"
)

// WizardController runs setup wizard sessions over HTTP.
type WizardController struct {
	stores        *store.Manager
	steps         *steps.Registry
	sessions      *sessions.Registry[*wizard.Session]
	validateSteps bool
	log           *logrus.Entry
}

func NewWizardController(stores *store.Manager, stepRegistry *steps.Registry, registry *sessions.Registry[*wizard.Session], validateSteps bool) *WizardController {
	return &WizardController{
		stores:        stores,
		steps:         stepRegistry,
		sessions:      registry,
		validateSteps: validateSteps,
		log:           utils.Component("WIZARD"),
	}
}

type stepInfo struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
}

type wizardResponse struct {
	Session    wizard.View        `json:"session"`
	Steps      []stepInfo         `json:"steps,omitempty"`
	Transition *wizard.Transition `json:"transition,omitempty"`
}

// StartWizard opens a new session at step 1.
func (wc *WizardController) StartWizard(c *fiber.Ctx) error {
	tenantID := tenantOf(c)
	id := uuid.NewString()
	st := wc.stores.For(tenantID)
	set := wc.steps.For(tenantID)

	var validators []wizard.Validator
	var infos []stepInfo
	for _, s := range set.Ordered() {
		validators = append(validators, s)
		infos = append(infos, stepInfo{Number: s.Number(), Title: s.Title()})
	}

	log := wc.log.WithFields(logrus.Fields{"tenant_id": tenantID, "session_id": id})
	ctrl := wizard.NewController(validators, st.Snapshot, wizard.Options{
		ValidateSteps: wc.validateSteps,
		OnComplete: func() {
			data := st.Snapshot()
			utils.LogEvent("wizard_completed", map[string]interface{}{
				"tenant_id":     tenantID,
				"session_id":    id,
				"teams":         len(data.Teams),
				"categories":    len(data.Categories),
				"service_types": len(data.ServiceTypes),
				"form_fields":   len(data.FormFields),
			})
		},
		OnClose: func() {
			log.Info("Wizard dismissed")
			wc.sessions.Remove(id)
		},
	})

	session := wizard.NewSession(id, tenantID, ctrl, time.Now())
	wc.sessions.Put(id, session)
	log.Info("Wizard started")

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(wizardResponse{
		Session: session.View(),
		Steps:   infos,
	}))
}

func (wc *WizardController) GetWizard(c *fiber.Ctx) error {
	session, err := wc.sessions.Get(tenantOf(c), c.Params("id"))
	if err != nil {
		return utils.HandleError(c, err)
	}
	session.Touch(time.Now())
	return c.JSON(utils.SuccessResponse(wizardResponse{Session: session.View()}))
}

func (wc *WizardController) NextStep(c *fiber.Ctx) error {
	return wc.move(c, (*wizard.Controller).Next)
}

func (wc *WizardController) PreviousStep(c *fiber.Ctx) error {
	return wc.move(c, (*wizard.Controller).Back)
}

func (wc *WizardController) move(c *fiber.Ctx, step func(*wizard.Controller) (wizard.Transition, error)) error {
	session, err := wc.sessions.Get(tenantOf(c), c.Params("id"))
	if err != nil {
		return utils.HandleError(c, err)
	}
	session.Touch(time.Now())

	tr, err := step(session.Controller)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(utils.SuccessResponse(wizardResponse{
		Session:    session.View(),
		Transition: &tr,
	}))
}
