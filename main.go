package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pokaque/proyecto-final-backend/api"
	"github.com/pokaque/proyecto-final-backend/config"
	"github.com/pokaque/proyecto-final-backend/database"
	"github.com/pokaque/proyecto-final-backend/services"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	c := config.New()

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  config.PostgresDSN(c),
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt: false,
		Logger:      newLogger,
	})
	if err != nil {
		zlog.Fatal().Err(err).Msg("error connecting to database")
	}

	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error; err != nil {
		zlog.Fatal().Err(err).Msg("error enabling uuid-ossp extension")
	}

	if err := database.Migrate(db); err != nil {
		zlog.Fatal().Err(err).Msg("error running migrations")
	}

	currentDB := database.New(db)

	uploader, err := services.NewS3Uploader(context.Background(),
		config.GetString(c, "S3_BUCKET", ""),
		config.GetString(c, "AWS_REGION", "us-east-1"),
	)
	if err != nil {
		zlog.Fatal().Err(err).Msg("error initializing S3 uploader")
	}

	auth := services.NewAuth(currentDB.UserRepo(),
		config.GetString(c, "JWT_SECRET", ""),
		config.GetString(c, "GOOGLE_CLIENT_ID", ""),
		config.GetString(c, "GOOGLE_CLIENT_SECRET", ""),
		config.GetString(c, "GOOGLE_REDIRECT_URL", ""),
	)

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(currentDB, uploader, auth)
	if err != nil {
		zlog.Fatal().Err(err).Msg("error initializing server")
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	fmt.Printf("Closing server: %v\n", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
