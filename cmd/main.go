package main

import (
	"api"
	"api/internal/api/handler/endpoints"
	"api/internal/api/models"
	"api/internal/events"
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
)

func main() {
	api.InitConfig(".env")
	cfg := api.GetConfig()

	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		// Schema changes are applied by migrations in release mode.
		err := api.DB.AutoMigrate(
			&models.User{},
			&models.Job{},
			&models.GFWLTeamSubmission{},
			&models.ScrapedData{},
		)
		if err != nil {
			api.Logger.Fatal().Err(err).Msg("Failed to auto-migrate database schema")
		}
	}

	if err := events.Connect(cfg.NatsConfig.URL, cfg.NatsConfig.SubjectPrefix, api.Logger); err != nil {
		api.Logger.Warn().Err(err).Msg("NATS unavailable, job events will not be published")
	}
	defer events.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	router, err := graceful.Default(graceful.WithAddr(fmt.Sprintf(":%s", cfg.ApiPort)))
	if err != nil {
		api.Logger.Fatal().Err(err).Msg("Failed to create server")
	}
	defer router.Close()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	initAPI(router)

	api.Logger.Info().Str("port", cfg.ApiPort).Msg("Starting API server")
	if err := router.RunWithContext(ctx); err != nil && err != context.Canceled {
		api.Logger.Fatal().Err(err).Msg("Server stopped unexpectedly")
	}
}

func initAPI(router *graceful.Graceful) {
	endpoints.UtilsHandler(router)
	endpoints.UserHandler(router)
	endpoints.ResultsHandler(router)
	endpoints.JobHandler(router)
}
