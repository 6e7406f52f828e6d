package main

import (
	"time"

	"go.uber.org/zap"

	"potrack/config"
	internalmq "potrack/internal/mq"
	"potrack/internal/mqhandler"
	"potrack/internal/repository"
	"potrack/internal/util"
	"potrack/pkg/db"
	"potrack/pkg/logger"
	"potrack/pkg/mq"
	redisclient "potrack/pkg/redis"
)

func main() {
	// Load config
	cfg := config.Load()

	log := logger.NewLogger()
	defer log.Sync()

	log.Info("Starting extraction worker...")

	// Init Redis
	rdb := redisclient.NewRedisClient(cfg.Redis)
	defer rdb.Close()

	deduper := util.NewDeduper(rdb, time.Hour, log)

	// Init DB
	dbConn, err := db.NewConnection(cfg.DB, log)
	if err != nil {
		log.Fatal("DB initialization failed", zap.Error(err))
	}
	defer dbConn.Close()

	log.Info("Database connection established")

	// Init Repositories
	msgRepo := repository.NewMessageRepository(dbConn)

	// Init Handler
	fetchedHandler := mqhandler.NewMessageFetchedHandler(msgRepo, deduper, log)

	// DLQ publisher for poison messages
	dlqPublisher, err := mq.NewPublisher(cfg.MQ.URL)
	if err != nil {
		log.Fatal("failed to init DLQ publisher", zap.Error(err))
	}
	defer dlqPublisher.Close()

	// Consumer for extraction
	log.Info("Initializing extraction consumer", zap.String("queue", "message.fetched.extract.q"))
	consumer, err := mq.NewConsumer(cfg.MQ.URL, "message.fetched.extract.q", internalmq.RoutingKeyMessageFetched, log)
	if err != nil {
		log.Fatal("failed to init extraction consumer", zap.Error(err))
	}
	consumer.SetHandler(fetchedHandler.HandleMessageFetched)
	if err := consumer.SetDLQ(dlqPublisher); err != nil {
		log.Fatal("failed to set up DLQ", zap.Error(err))
	}
	go func() {
		log.Info("Starting extraction consumer")
		if err := consumer.StartConsuming(); err != nil {
			log.Fatal("extraction consumer failed", zap.Error(err))
		}
	}()
	defer consumer.Close()

	log.Info("Consumer started, worker is ready to process messages")

	// Keep worker running
	select {}
}
