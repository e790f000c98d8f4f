// File: washdesk/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"washdesk/config"
	"washdesk/database"
	bookingRepo "washdesk/database/repository/booking"
	contactRepo "washdesk/database/repository/contact"
	conversationRepo "washdesk/database/repository/conversation"
	"washdesk/handlers"
	"washdesk/middleware"
	"washdesk/routes"
	"washdesk/services/booking"
	"washdesk/services/contact"
	ai "washdesk/services/intelligence"
	"washdesk/services/notification"
	"washdesk/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	persona, err := config.LoadPersona(config.AppConfig.PersonaFile)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to load persona: %v", err)
	}

	database.InitDB()
	db := database.Database()

	// repositories.
	turnRepo := conversationRepo.NewMongoConversationRepo(db, config.AppConfig.ChatTransactionalTurns)
	bookRepo := bookingRepo.NewMongoBookingRepo(db)
	contRepo := contactRepo.NewMongoContactRepo(db)

	idxCtx, idxCancel := context.WithTimeout(context.Background(), 10*time.Second)
	for _, ensure := range []func(context.Context) error{
		turnRepo.EnsureIndexes,
		bookRepo.EnsureIndexes,
		contRepo.EnsureIndexes,
	} {
		if err := ensure(idxCtx); err != nil {
			logger.Sugar().Fatalf("main: %v", err)
		}
	}
	idxCancel()

	// services.
	notificationService, err := notification.NewDefaultNotificationService(
		notification.NewWebhookAlertSender(config.AppConfig.WebhookURL, config.AppConfig.NotifyTimeout),
		notification.NewHTTPMailer(
			config.AppConfig.EmailAPIURL,
			config.AppConfig.EmailAPIKey,
			config.AppConfig.EmailFrom,
			config.AppConfig.NotifyTimeout,
		),
		persona,
		config.AppConfig.EmailTo,
		config.AppConfig.NotifyTimeout,
		logger,
	)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}

	bookingService := &booking.DefaultBookingService{
		Repo:     bookRepo,
		Notifier: notificationService,
		Persona:  persona,
		Logger:   logger,
	}

	var redisClients []*redis.Client
	if config.AppConfig.RedisEnabled {
		ledgerClient := utils.GetLedgerClient()
		redisClients = append(redisClients, ledgerClient)
		bookingService.Ledger = booking.NewRedisExtractionLedger(ledgerClient, config.AppConfig.LedgerTTL)
	}

	contactService := &contact.DefaultContactService{
		Repo:     contRepo,
		Notifier: notificationService,
		Logger:   logger,
	}

	model, err := ai.NewModelClient(context.Background(), config.AppConfig)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize model client: %v", err)
	}

	chatService := ai.NewDefaultChatService(
		ai.NewHistoryLoader(turnRepo, config.AppConfig.ChatHistoryLimit),
		turnRepo,
		model,
		bookingService,
		persona,
		ai.ChatOptions{
			MaxTokens:       config.AppConfig.ChatMaxTokens,
			Temperature:     config.AppConfig.ChatTemperature,
			ModelTimeout:    config.AppConfig.ChatModelTimeout,
			MaxMessageChars: config.AppConfig.ChatMaxMessageChars,
		},
		logger,
	)

	healthCron, err := utils.StartHealthMonitor(config.AppConfig.HealthCheckEvery, redisClients, database.MongoClient)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}

	// Create the Gin router.
	utils.RegisterGinValidation()
	router := gin.New()
	router.Use(utils.ErrorHandler(persona.Phone, "/api/chat"))
	router.Use(gin.Logger())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.RateLimitPerMin, config.AppConfig.RateLimitBurst))

	aiHandler := handlers.NewDefaultAIHandler(chatService, persona.Phone)
	bookingHandler := handlers.NewBookingHandler(bookingService, persona.Phone)
	contactHandler := handlers.NewContactHandler(contactService, persona.Phone)
	adminHandler := handlers.NewAdminHandler(bookingService, contactService)

	handlerBundle := &handlers.HandlerBundle{
		AIChatHandler:        aiHandler.HandleAIRequest,
		CreateBookingHandler: bookingHandler.CreateBooking,
		SubmitContactHandler: contactHandler.SubmitContact,
		AdminHandler:         adminHandler,
		AdminJWTSecret:       config.AppConfig.AdminJWTSecret,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	<-healthCron.Stop().Done()
	if err := database.Disconnect(ctx); err != nil {
		logger.Warn("main: mongo disconnect failed", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
