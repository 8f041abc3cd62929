package controller

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"propdesk/assistant"
	"propdesk/sessions"
	"propdesk/utils"
)

// AssistantController serves the chat assistant widget.
type AssistantController struct {
	ctx       context.Context
	sessions  *sessions.Registry[*assistant.Session]
	responder assistant.Responder
	delay     time.Duration
	log       *logrus.Entry
}

// NewAssistantController binds sessions to ctx, so cancelling it stops every
// pending reply.
func NewAssistantController(ctx context.Context, registry *sessions.Registry[*assistant.Session], responder assistant.Responder, delay time.Duration) *AssistantController {
	return &AssistantController{
		ctx:       ctx,
		sessions:  registry,
		responder: responder,
		delay:     delay,
		log:       utils.Component("ASSISTANT"),
	}
}

type SendMessageRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

type assistantSessionResponse struct {
	ID          string              `json:"id"`
	Messages    []assistant.Message `json:"messages"`
	Suggestions []string            `json:"suggestions"`
}

func (ac *AssistantController) GetSuggestions(c *fiber.Ctx) error {
	return c.JSON(utils.SuccessResponse(assistant.Suggestions))
}

func (ac *AssistantController) CreateSession(c *fiber.Ctx) error {
	tenantID := tenantOf(c)
	id := uuid.NewString()
	session := assistant.NewSession(ac.ctx, id, tenantID, ac.responder, ac.delay)
	ac.sessions.Put(id, session)

	ac.log.WithFields(logrus.Fields{"tenant_id": tenantID, "session_id": id}).Info("Assistant session opened")
	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(assistantSessionResponse{
		ID:          id,
		Messages:    session.Messages(),
		Suggestions: assistant.Suggestions,
	}))
}

func (ac *AssistantController) GetMessages(c *fiber.Ctx) error {
	session, err := ac.sessions.Get(tenantOf(c), c.Params("id"))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(utils.SuccessResponse(session.Messages()))
}

// SendMessage records the question and returns at once. The reply shows up
// in GetMessages or on the websocket after the reply delay.
func (ac *AssistantController) SendMessage(c *fiber.Ctx) error {
	var input SendMessageRequest
	if stop, err := parseAndValidate(c, &input); stop {
		return err
	}
	session, err := ac.sessions.Get(tenantOf(c), c.Params("id"))
	if err != nil {
		return utils.HandleError(c, err)
	}
	msg, err := session.Submit(input.Content)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(utils.SuccessResponse(msg))
}

func (ac *AssistantController) CloseSession(c *fiber.Ctx) error {
	if _, err := ac.sessions.Get(tenantOf(c), c.Params("id")); err != nil {
		return utils.HandleError(c, err)
	}
	ac.sessions.Remove(c.Params("id"))
	return c.SendStatus(fiber.StatusNoContent)
}
