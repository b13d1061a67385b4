package main

import (
	"context"
	"log"

	"github.com/UnyteAfrica/unyte-backoffice/internal/app"
	"github.com/UnyteAfrica/unyte-backoffice/internal/config"
	"github.com/UnyteAfrica/unyte-backoffice/internal/utils/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Logging.Level, cfg.Environment)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer zapLogger.Sync()

	application, err := app.New(context.Background(), cfg, zapLogger)
	if err != nil {
		zapLogger.Sugar().Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		zapLogger.Sugar().Fatalf("application terminated: %v", err)
	}
}
