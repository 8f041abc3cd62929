package routes

import (
	"context"
	"log"
	"time"

	controller "propdesk/controllers"
	"propdesk/assistant"
	"propdesk/messaging"
	"propdesk/middleware"
	"propdesk/sessions"
	"propdesk/steps"
	"propdesk/store"
	"propdesk/utils"
	"propdesk/wizard"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/websocket/v2"
)

// Services carries everything the handlers share. It is built once in main.
type Services struct {
	Ctx        context.Context
	Storage    fiber.Storage
	Stores     *store.Manager
	Steps      *steps.Registry
	Wizards    *sessions.Registry[*wizard.Session]
	Assistants *sessions.Registry[*assistant.Session]
	Responder  assistant.Responder
	Inboxes    *messaging.Registry
	Notifier   *messaging.Notifier

	DevTokens           bool
	ValidateSteps       bool
	AssistantReplyDelay time.Duration
	AssistantRateLimit  int
}

var accessLog = logger.Config{
	Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
}

// NewApp builds the fiber app shared by main and the route tests. Handlers
// keep route params in inboxes and step state, so values must not alias
// fasthttp's reused request buffers.
func NewApp() *fiber.App {
	return fiber.New(fiber.Config{
		AppName:   "propdesk",
		Immutable: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if fe, ok := err.(*fiber.Error); ok {
				return utils.ErrorResponse(c, fe.Code, fe.Message, nil)
			}
			return utils.HandleError(c, err)
		},
	})
}

// SetupAuthRoutes exposes the token route only when ENABLE_DEV_TOKENS is set.
func SetupAuthRoutes(app *fiber.App, svc *Services) {
	if !svc.DevTokens {
		return
	}
	auth := app.Group("/auth", logger.New(accessLog))
	auth.Post("/token", controller.IssueToken)
	log.Println("Development token route enabled")
}

func SetupAPIRoutes(app *fiber.App, svc *Services) {
	configController := controller.NewConfigController(svc.Stores)
	wizardController := controller.NewWizardController(svc.Stores, svc.Steps, svc.Wizards, svc.ValidateSteps)
	settingsController := controller.NewSettingsController(svc.Steps)
	assistantController := controller.NewAssistantController(svc.Ctx, svc.Assistants, svc.Responder, svc.AssistantReplyDelay)
	messagingController := controller.NewMessagingController(svc.Inboxes, svc.Stores, svc.Notifier)

	api := app.Group("/api/v1", middleware.Protected(), logger.New(accessLog))

	// Whole configuration
	api.Get("/config", configController.GetConfig)
	api.Patch("/config", configController.PatchConfig)

	// Wizard sessions
	wiz := api.Group("/wizard")
	wiz.Post("/", wizardController.StartWizard)
	wiz.Get("/:id", wizardController.GetWizard)
	wiz.Post("/:id/next", wizardController.NextStep)
	wiz.Post("/:id/back", wizardController.PreviousStep)

	// Step 1: teams
	teams := api.Group("/teams")
	teams.Get("/", settingsController.ListTeams)
	teams.Post("/", settingsController.CreateTeam)
	teams.Delete("/:id", settingsController.DeleteTeam)
	teams.Post("/:id/members", settingsController.AddTeamMember)
	teams.Delete("/:id/members/:memberID", settingsController.RemoveTeamMember)
	teams.Post("/:id/editing", settingsController.ToggleTeamEditing)
	api.Get("/directory", settingsController.SearchDirectory)

	// Step 2: categories
	categories := api.Group("/categories")
	categories.Get("/", settingsController.ListCategories)
	categories.Post("/", settingsController.CreateCategory)
	categories.Put("/bulk", settingsController.SetAllCategories)
	categories.Post("/:id/toggle", settingsController.ToggleCategory)
	categories.Delete("/:id", settingsController.DeleteCategory)

	// Step 3: service types
	serviceTypes := api.Group("/service-types")
	serviceTypes.Get("/", settingsController.ListServiceTypes)
	serviceTypes.Put("/category/:categoryID", settingsController.SetCategoryServiceTypes)
	serviceTypes.Post("/:id/toggle", settingsController.ToggleServiceType)
	serviceTypes.Post("/:id/approval/prompt", settingsController.ApprovalPrompt)
	serviceTypes.Put("/:id/approval", settingsController.SetApproval)
	serviceTypes.Post("/:id/assignee/prompt", settingsController.AssigneePrompt)
	serviceTypes.Put("/:id/assignee", settingsController.SetAssignee)

	// Step 4: statuses
	statuses := api.Group("/statuses")
	statuses.Get("/", settingsController.ListStatuses)
	statuses.Put("/bulk", settingsController.SetAllStatuses)
	statuses.Post("/:id/toggle", settingsController.ToggleStatus)

	// Step 5: form fields
	fields := api.Group("/form-fields")
	fields.Get("/", settingsController.ListFormFields)
	fields.Post("/", settingsController.CreateFormField)
	fields.Put("/:id", settingsController.UpdateFormField)
	fields.Delete("/:id", settingsController.DeleteFormField)
	fields.Put("/:id/requirement", settingsController.SetFieldRequirement)

	// Step 6: notifications
	api.Get("/notifications", settingsController.GetNotifications)
	api.Put("/notifications", settingsController.UpdateNotifications)

	// Assistant
	chat := api.Group("/assistant")
	chat.Get("/suggestions", assistantController.GetSuggestions)
	chat.Post("/sessions", assistantController.CreateSession)
	chat.Get("/sessions/:id/messages", assistantController.GetMessages)
	chat.Post("/sessions/:id/messages",
		middleware.AssistantRateLimiter(svc.Storage, svc.AssistantRateLimit),
		assistantController.SendMessage)
	chat.Delete("/sessions/:id", assistantController.CloseSession)
	chat.Get("/sessions/:id/ws",
		assistantController.UpgradeAssistantWS,
		websocket.New(assistantController.HandleAssistantWS))

	// Messaging
	conversations := api.Group("/conversations")
	conversations.Get("/", messagingController.ListConversations)
	conversations.Get("/:id/messages", messagingController.GetConversationMessages)
	conversations.Post("/:id/messages", messagingController.SendConversationMessage)
	conversations.Post("/:id/service-requests", messagingController.CreateServiceRequest)

	log.Println("API routes initialized successfully")
}

func SetupRoutes(app *fiber.App, svc *Services) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	SetupAuthRoutes(app, svc)
	SetupAPIRoutes(app, svc)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "Not Found",
			"message": "The requested resource was not found",
		})
	})
}
