package main

import (
	"context"
	"log"

	"github.com/keshav33450/Slot4Law/cmd"
	"github.com/keshav33450/Slot4Law/internal/data/repository"
	"github.com/keshav33450/Slot4Law/internal/queue"
	"github.com/keshav33450/Slot4Law/internal/wire"
	"github.com/keshav33450/Slot4Law/pkg/cache"
	"github.com/keshav33450/Slot4Law/pkg/database"
	"github.com/keshav33450/Slot4Law/pkg/mailer"
	"github.com/keshav33450/Slot4Law/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Availability cache; nil Redis client degrades to a pass-through.
	redisClient := cache.NewRedisClient(config.Redis, logger)
	availability := cache.NewAvailabilityCache(redisClient, config.Availability.CacheTTL, logger)

	// Notification pipeline: publisher on the request path, consumer in
	// the background sending the emails.
	publisher := queue.NewPublisher(config.Queue.URL, logger)
	notifier := mailer.NewMailer(config.Email, logger)
	consumer := queue.NewConsumer(config.Queue.URL, notifier, logger)
	go consumer.Run(context.Background())

	// Wire all dependencies
	app := wire.Wiring(repos, availability, publisher, config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
