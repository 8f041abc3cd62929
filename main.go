package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"propdesk/assistant"
	"propdesk/config"
	"propdesk/messaging"
	"propdesk/middleware"
	"propdesk/models"
	"propdesk/routes"
	"propdesk/sessions"
	"propdesk/steps"
	"propdesk/store"
	"propdesk/utils"
	"propdesk/wizard"
	"propdesk/worker"
)

func main() {
	logger := log.New(os.Stdout, "PROPDESK: ", log.Ldate|log.Ltime|log.Lshortfile)

	if err := config.LoadConfig(); err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}
	cfg := config.AppConfig

	utils.InitLogger("propdesk", cfg.LogLevel)
	if err := utils.InitSentry(cfg.SentryDSN, cfg.Environment); err != nil {
		logger.Printf("Sentry disabled: %v", err)
	}
	defer sentry.Flush(2 * time.Second)

	storage, err := store.NewStorage(cfg)
	if err != nil {
		logger.Fatalf("Failed to open %s storage: %v", cfg.StorageDriver, err)
	}
	defer storage.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	directory := models.DefaultDirectory()
	stores := store.NewManager(storage)
	wizards := sessions.NewRegistry[*wizard.Session]()
	assistants := sessions.NewRegistry[*assistant.Session]()

	responder := assistant.Chain{
		assistant.CannedResponder{KB: assistant.DefaultKnowledgeBase},
		assistant.NewOpenAIResponder(cfg.OpenAIAPIKey),
	}

	reaper := worker.NewSessionReaper(cfg.SessionIdleTimeout, map[string]worker.Pruner{
		"wizard":    wizards,
		"assistant": assistants,
	})
	go reaper.Start(ctx)

	app := routes.NewApp()
	app.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.CORSAllowedOrigins...)))

	routes.SetupRoutes(app, &routes.Services{
		Ctx:        ctx,
		Storage:    storage,
		Stores:     stores,
		Steps:      steps.NewRegistry(stores, directory),
		Wizards:    wizards,
		Assistants: assistants,
		Responder:  responder,
		Inboxes:    messaging.NewRegistry(),
		Notifier:   messaging.NewNotifier(utils.NewMailer(cfg.SMTP), directory),

		DevTokens:           cfg.EnableDevTokens,
		ValidateSteps:       cfg.WizardValidateSteps,
		AssistantReplyDelay: cfg.AssistantReplyDelay,
		AssistantRateLimit:  cfg.AssistantRateLimit,
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		logger.Println("Shutting down...")
		cancel()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Printf("Shutdown error: %v", err)
		}
	}()

	logger.Printf("🚀 Server starting on port %s", cfg.ServerPort)
	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
