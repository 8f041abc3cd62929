package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"propdesk/messaging"
	"propdesk/store"
	"propdesk/utils"
)

// MessagingController serves the tenant-communications panel.
type MessagingController struct {
	inboxes  *messaging.Registry
	stores   *store.Manager
	notifier *messaging.Notifier
	log      *logrus.Entry
}

func NewMessagingController(inboxes *messaging.Registry, stores *store.Manager, notifier *messaging.Notifier) *MessagingController {
	return &MessagingController{
		inboxes:  inboxes,
		stores:   stores,
		notifier: notifier,
		log:      utils.Component("MESSAGING"),
	}
}

type serviceRequestResponse struct {
	Message      messaging.Message      `json:"message"`
	Conversation messaging.Conversation `json:"conversation"`
}

func (mc *MessagingController) ListConversations(c *fiber.Ctx) error {
	return c.JSON(utils.SuccessResponse(mc.inboxes.For(tenantOf(c)).Conversations()))
}

func (mc *MessagingController) GetConversationMessages(c *fiber.Ctx) error {
	msgs, err := mc.inboxes.For(tenantOf(c)).Messages(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(utils.SuccessResponse(msgs))
}

func (mc *MessagingController) SendConversationMessage(c *fiber.Ctx) error {
	var input SendMessageRequest
	if stop, err := parseAndValidate(c, &input); stop {
		return err
	}
	msg, err := mc.inboxes.For(tenantOf(c)).Send(c.Params("id"), input.Content)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(msg))
}

// CreateServiceRequest files a request from a conversation and sends the
// configured notifications in the background.
func (mc *MessagingController) CreateServiceRequest(c *fiber.Ctx) error {
	var input messaging.ServiceRequestInput
	if stop, err := parseAndValidate(c, &input); stop {
		return err
	}

	tenantID := tenantOf(c)
	msg, conv, err := mc.inboxes.For(tenantID).CreateServiceRequest(c.Params("id"), input)
	if err != nil {
		return utils.HandleError(c, err)
	}

	mc.log.WithFields(logrus.Fields{
		"tenant_id": tenantID,
		"ticket":    msg.Card.Ticket,
	}).Info("Service request created")

	if mc.notifier != nil {
		data := mc.stores.For(tenantID).Snapshot()
		card := *msg.Card
		go func() {
			if err := mc.notifier.ServiceRequestCreated(data, conv, card); err != nil {
				utils.LogError("service_request_notify_failed", err, map[string]interface{}{
					"tenant_id": tenantID,
					"ticket":    card.Ticket,
				})
			}
		}()
	}

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(serviceRequestResponse{
		Message:      msg,
		Conversation: conv,
	}))
}
