package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apex/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"bedrock-chat/backend/internal/config"
	"bedrock-chat/backend/internal/features/chat/application"
	"bedrock-chat/backend/internal/features/chat/infrastructure"
	chat_http "bedrock-chat/backend/internal/features/chat/presentation/http"
	config_application "bedrock-chat/backend/internal/features/config/application"
	config_http "bedrock-chat/backend/internal/features/config/presentation/http"
	system_http "bedrock-chat/backend/internal/features/system/presentation/http"
	"bedrock-chat/backend/internal/logging"
	"bedrock-chat/backend/internal/metrics"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Invalid configuration")
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)
	metrics.Register()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize model transport
	modelClient, err := newModelClient(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to create model client")
	}

	// Knowledge document is read once and shared read-only by every request
	document := application.LoadKnowledgeDocument(cfg.KnowledgeDocPath)

	// Initialize services
	chatService := application.NewChatService(
		application.NewPromptBuilder(),
		application.NewModelInvoker(modelClient, cfg.Model),
		document,
	)
	configService := config_application.NewConfigService(cfg.Model, !document.Fallback)

	r := gin.Default()
	r.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))
	r.SetHTMLTemplate(chat_http.Templates())

	systemHandler := system_http.NewSystemHandler(system_http.ServiceName)
	r.GET("/health", systemHandler.HealthHandler)
	r.GET("/version", systemHandler.VersionHandler)
	r.GET("/metrics", systemHandler.MetricsHandler())

	// Chat API routes
	chatHandler := chat_http.NewChatHandler(chatService)
	r.GET("/", chatHandler.ChatUIHandler)
	chatGroup := r.Group("/chat")
	{
		chatGroup.POST("/", chatHandler.SendMessageHandler)
		chatGroup.POST("/with-doc", chatHandler.SendMessageWithDocHandler)
	}

	// Config API routes
	configGroup := r.Group("/api/config")
	{
		configGroup.GET("/model", config_http.NewConfigHandler(configService).GetModelConfigHandler)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.WithFields(log.Fields{
			"port":     cfg.Port,
			"model_id": cfg.Model.ModelID,
			"region":   cfg.Model.Region,
			"provider": cfg.Model.Provider,
		}).Info("Starting chat service")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
		os.Exit(1)
	}
	log.Info("Server exited")
}

func newModelClient(ctx context.Context, cfg *config.Config) (infrastructure.ModelClient, error) {
	if cfg.Model.Provider == config.ProviderStub {
		log.Warn("MODEL_PROVIDER=stub, replies are echoed locally")
		return infrastructure.NewStubClient(), nil
	}
	return infrastructure.NewBedrockClient(ctx, cfg.Model.Region)
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
		MaxAge:       12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}
