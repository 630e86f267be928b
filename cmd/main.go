package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"HealthRecords/internal/config"
	"HealthRecords/internal/database"
	"HealthRecords/internal/server"
	"HealthRecords/internal/server/handlers"
	"HealthRecords/internal/session"
	"HealthRecords/pkg/sl"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		slog.Error("failed to get CONFIG_PATH env variable")
		os.Exit(1)
	}

	cfg, err := config.Init(configPath)
	if err != nil {
		log.Fatal(err.Error())
	}

	logger := sl.New(cfg.Log.Level)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, &cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", sl.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	logger.Info("successfully connected to database", slog.String("driver", cfg.Database.Driver))

	sessions := session.NewRedisProvider(session.NewRedisClient(&cfg.Redis), cfg.Redis.KeyPrefix)
	defer sessions.Close()

	if err := sessions.Ping(ctx); err != nil {
		logger.Warn("redis is not reachable, every request will be anonymous", sl.Error(err))
	}

	h := handlers.New(sessions, db, time.Now, logger)

	serv := server.New(h, server.Options{
		SessionCookie:   cfg.Session.CookieName,
		ShutdownTimeout: cfg.HTTP.ShutdownTimeout,
		Logger:          logger,
	})

	if err := serv.Run(cfg.HTTP.Port); err != nil {
		logger.Error("server stopped", sl.Error(err))
		os.Exit(1)
	}
}
