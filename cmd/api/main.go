package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hsm-gustavo/jobboard/internal/api/auth"
	"github.com/hsm-gustavo/jobboard/internal/api/routes"
	"github.com/hsm-gustavo/jobboard/internal/cache"
	"github.com/hsm-gustavo/jobboard/internal/config"
	"github.com/hsm-gustavo/jobboard/internal/db"
	"github.com/hsm-gustavo/jobboard/internal/logger"
	"github.com/hsm-gustavo/jobboard/internal/store/memory"
	mysqlstore "github.com/hsm-gustavo/jobboard/internal/store/mysql"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// @title Job Board API
// @version 1.0
// @description Job board with wallet-address authentication and SPL token tokenization
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init("jobboard", false)
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	logger.Init("jobboard", cfg.Debug)

	ctx := context.Background()
	deps := routes.Deps{CORSOrigins: cfg.Server.CORSOrigins}

	var database *sql.DB
	switch cfg.Storage {
	case config.StorageMemory:
		log.Warn().Msg("Using in-memory storage, data is lost on restart")
		deps.Store = memory.New()
	default:
		database, err = db.Connect(ctx, cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		if cfg.Database.AutoMigrate {
			if err := db.RunMigrations(database, cfg.Database.Name); err != nil {
				log.Fatal().Err(err).Msg("Failed to apply migrations")
			}
		}
		deps.Store = mysqlstore.New(database, cfg.Database.OpTimeout)
		deps.DB = database
	}
	defer closeDatabase(database)

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient, err = cache.Open(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			// caching is optional; lookups go straight to the store
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unavailable, user cache disabled")
		} else {
			deps.UserCache = cache.NewUserCache(redisClient, cfg.Redis.UserTTL)
			defer redisClient.Close()
		}
	}

	deps.Tokens, err = auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to init token service")
	}

	router := routes.SetupRoutes(deps)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// starts server in a goroutine
	go func() {
		log.Info().Int("port", cfg.Server.Port).Str("storage", cfg.Storage).Msg("Server running")
		err := server.ListenAndServe()

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Error starting the server")
		}
	}()

	// channel to capture quit signals (e.g. CTRL+C)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down the server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error on server shutdown")
		return
	}

	log.Info().Msg("Server shut down successfully")
}

func closeDatabase(database *sql.DB) {
	if database == nil {
		return
	}
	if err := database.Close(); err != nil {
		log.Error().Err(err).Msg("Error closing database")
	}
}
