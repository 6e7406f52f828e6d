package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"potrack/internal/graph"
	"potrack/internal/mq"
	"potrack/internal/repository"
	"potrack/pkg/metrics"
	pkgmq "potrack/pkg/mq"
)

// IngestService pulls the mailbox and hands each message to the worker
// via a message.fetched event. Safe to re-run: the upsert replaces rows
// wholesale and extraction is idempotent downstream.
type IngestService struct {
	msgRepo   *repository.MessageRepository
	client    *graph.Client
	publisher *pkgmq.Publisher
	logger    *zap.Logger
}

func NewIngestService(
	msgRepo *repository.MessageRepository,
	client *graph.Client,
	publisher *pkgmq.Publisher,
	logger *zap.Logger,
) *IngestService {
	return &IngestService{
		msgRepo:   msgRepo,
		client:    client,
		publisher: publisher,
		logger:    logger,
	}
}

// Run fetches every mailbox page, upserts the messages and publishes one
// event per message. Returns the number of messages ingested.
func (s *IngestService) Run(ctx context.Context) (int, error) {
	messages, err := s.client.ListMessages(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for i := range messages {
		m := &messages[i]

		if err := s.msgRepo.UpsertMessage(ctx, m); err != nil {
			s.logger.Error("Failed to upsert message",
				zap.String("message_id", m.ID),
				zap.Error(err),
			)
			return count, err
		}

		payload := mq.MessageFetchedPayload{
			MessageID: m.ID,
			Subject:   m.Subject,
			FetchedAt: time.Now().UTC(),
		}
		if err := s.publisher.Publish(mq.RoutingKeyMessageFetched, payload); err != nil {
			s.logger.Error("Failed to publish message.fetched event",
				zap.String("message_id", m.ID),
				zap.Error(err),
			)
			return count, err
		}

		metrics.IncrementMessagesFetched()
		count++
	}

	s.logger.Info("Ingest run complete", zap.Int("messages", count))
	return count, nil
}
