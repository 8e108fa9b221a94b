package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hitechhomes/internal/config"
	"hitechhomes/internal/handler"
	"hitechhomes/internal/observability"
	"hitechhomes/internal/repository"
	"hitechhomes/internal/service"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := observability.NewLogger(cfg.Logging.Env, cfg.Logging.Level)
	log.Info().Str("version", Version).Str("build_time", BuildTime).Str("git_commit", GitCommit).
		Msg("Hi-Tech Homes chatbot service starting")

	gin.SetMode(cfg.Server.GinMode)

	repo, err := repository.NewPostgresRepository(
		cfg.GetPostgreSQLDSN(),
		cfg.PostgreSQL.MaxConnections,
		cfg.PostgreSQL.MaxIdleConnections,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer repo.Close()
	log.Info().Msg("connected to PostgreSQL")

	var cache repository.Cache = repository.NoopCache{}
	if cfg.Redis.Addr != "" {
		cache = repository.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("recent-listings cache enabled")
	}

	var completionClient service.CompletionClient
	if cfg.OpenAI.Enabled {
		completionClient = service.NewOpenAIClient(&cfg.OpenAI, log)
		log.Info().Str("api_base", cfg.OpenAI.APIBase).Str("model", cfg.OpenAI.Model).
			Msg("completion client initialized")
	} else {
		log.Warn().Msg("OPENAI_API_KEY not set, chatbot replies use deterministic templates")
	}

	// Services
	recent := service.NewRecentLister(repo, cache, cfg.Redis.TTLSec)
	search := service.NewPropertySearch(repo, recent, log, cfg.Chatbot.MaxExactResults)
	suggest := service.NewSuggester(repo, recent, log, cfg.Chatbot.MaxAlternativeResults)

	var composer service.Composer = service.TemplateComposer{}
	if completionClient != nil {
		composer = service.NewCompletionComposer(completionClient, cfg.Chatbot.HistoryTurns, log)
	}

	chatService := service.NewChatService(search, suggest, composer, repo, log)

	// Handlers
	chatHandler := handler.NewChatHandler(chatService, log)
	propertyHandler := handler.NewPropertyHandler(repo, 20, 100)
	enquiryHandler := handler.NewEnquiryHandler(repo)
	statsHandler := handler.NewStatsHandler(repo)

	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.Server.AllowedOrigins, ",")
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"message":   "Server is running",
			"version":   Version,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	reg := observability.InitRegistry()
	router.GET("/metrics", gin.WrapH(observability.MetricsHandler(reg)))

	api := router.Group("/api")
	{
		api.POST("/chatbot/message", chatHandler.HandleMessage)
		api.GET("/properties", propertyHandler.List)
		api.GET("/properties/:id", propertyHandler.Get)
		api.POST("/enquiries", enquiryHandler.Submit)
		api.GET("/admin/chat-stats", statsHandler.ChatStats)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Route not found"})
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
	log.Info().Msg("server stopped")
}
