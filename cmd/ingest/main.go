package main

import (
	"context"

	"go.uber.org/zap"

	"potrack/config"
	"potrack/internal/graph"
	"potrack/internal/repository"
	"potrack/internal/service"
	"potrack/pkg/db"
	"potrack/pkg/logger"
	"potrack/pkg/mq"
)

// Fetches the mailbox once and exits; run from cron or by hand.
func main() {
	cfg := config.Load()

	log := logger.NewLogger()
	defer log.Sync()

	dbConn, err := db.NewConnection(cfg.DB, log)
	if err != nil {
		log.Fatal("DB initialization failed", zap.Error(err))
	}
	defer dbConn.Close()

	publisher, err := mq.NewPublisher(cfg.MQ.URL)
	if err != nil {
		log.Fatal("failed to init publisher", zap.Error(err))
	}
	defer publisher.Close()

	msgRepo := repository.NewMessageRepository(dbConn)
	client := graph.NewClient(cfg.Mailbox, log)

	ingest := service.NewIngestService(msgRepo, client, publisher, log)

	count, err := ingest.Run(context.Background())
	if err != nil {
		log.Fatal("ingest run failed", zap.Int("ingested", count), zap.Error(err))
	}

	log.Info("Ingest finished", zap.Int("ingested", count))
}
