package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"propdesk/assistant"
	"propdesk/utils"
)

// UpgradeAssistantWS resolves the session before the upgrade so unknown
// sessions get a normal 404.
func (ac *AssistantController) UpgradeAssistantWS(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	session, err := ac.sessions.Get(tenantOf(c), c.Params("id"))
	if err != nil {
		return utils.HandleError(c, err)
	}
	c.Locals("assistantSession", session)
	return c.Next()
}

// HandleAssistantWS streams session messages to the client and submits
// every {"content": "..."} frame it receives.
func (ac *AssistantController) HandleAssistantWS(c *websocket.Conn) {
	defer c.Close()

	session, ok := c.Locals("assistantSession").(*assistant.Session)
	if !ok {
		return
	}
	log := ac.log.WithField("session_id", session.ID)

	updates, unsubscribe := session.Subscribe()
	defer unsubscribe()

	// Only this goroutine writes to the connection; the reader hands submit
	// failures over on rejected.
	done := make(chan struct{})
	rejected := make(chan *utils.AppError, 4)
	go func() {
		defer close(done)
		for {
			var input SendMessageRequest
			if err := c.ReadJSON(&input); err != nil {
				return
			}
			if _, err := session.Submit(input.Content); err != nil {
				select {
				case rejected <- utils.ToAppError(err):
				default:
				}
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case appErr := <-rejected:
			if err := c.WriteJSON(map[string]string{"error": appErr.Message, "code": appErr.Code}); err != nil {
				return
			}
		case msg, open := <-updates:
			if !open {
				return
			}
			if err := c.WriteJSON(msg); err != nil {
				log.WithError(err).Debug("Websocket write failed")
				return
			}
		}
	}
}
