package mqhandler

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"potrack/internal/extract"
	"potrack/internal/model"
	"potrack/internal/mq"
	"potrack/internal/repository"
	"potrack/pkg/logger"
	"potrack/pkg/metrics"
)

const dedupHandler = "extract"

// MessageStore is the slice of the message repository the handler needs.
type MessageStore interface {
	FindByID(ctx context.Context, id string) (*model.RawMessage, string, error)
	UpdateExtracted(ctx context.Context, id string, fields model.ExtractedFields) error
}

// Deduper guards against duplicate deliveries of the same event.
type Deduper interface {
	AcquireOnce(ctx context.Context, handler, eventID string) bool
	Release(ctx context.Context, handler, eventID string)
}

type MessageFetchedHandler struct {
	msgRepo MessageStore
	deduper Deduper
	logger  *zap.Logger
}

func NewMessageFetchedHandler(
	msgRepo MessageStore,
	deduper Deduper,
	logger *zap.Logger,
) *MessageFetchedHandler {
	return &MessageFetchedHandler{
		msgRepo: msgRepo,
		deduper: deduper,
		logger:  logger,
	}
}

// HandleMessageFetched runs field extraction for one fetched message.
// Idempotent: already-extracted messages and redeliveries of the same
// event are skipped. The dedup key is scoped to the event, not the
// message id, so a re-ingest (which resets the row to fetched) always
// gets re-extracted; the status check is what makes reprocessing cheap.
func (h *MessageFetchedHandler) HandleMessageFetched(ctx context.Context, raw json.RawMessage) error {
	log := logger.WithTrace(ctx, h.logger)

	var p mq.MessageFetchedPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		log.Error("Failed to unmarshal message fetched payload", zap.Error(err))
		return err
	}

	log.Info("Processing message extraction",
		zap.String("message_id", p.MessageID),
		zap.String("subject", p.Subject),
	)

	msg, status, err := h.msgRepo.FindByID(ctx, p.MessageID)
	if err != nil {
		log.Error("Failed to find message",
			zap.String("message_id", p.MessageID),
			zap.Error(err),
		)
		return err
	}

	if status == repository.StatusExtracted {
		log.Debug("Message already extracted, skipping",
			zap.String("message_id", p.MessageID),
		)
		metrics.IncrementMessagesExtracted("skipped")
		return nil
	}

	eventKey := eventDedupKey(p)
	if !h.deduper.AcquireOnce(ctx, dedupHandler, eventKey) {
		metrics.IncrementMessagesExtracted("skipped")
		return nil
	}

	start := time.Now()
	fields := extract.ExtractMessage(*msg)
	metrics.RecordExtractionDuration("success", time.Since(start))

	if err := h.msgRepo.UpdateExtracted(ctx, p.MessageID, fields); err != nil {
		// free the key so the nack-requeued redelivery can retry
		h.deduper.Release(ctx, dedupHandler, eventKey)
		log.Error("Failed to store extracted fields",
			zap.String("message_id", p.MessageID),
			zap.Error(err),
		)
		metrics.IncrementMessagesExtracted("failed")
		return err
	}

	metrics.IncrementMessagesExtracted("success")
	log.Info("Message extracted successfully",
		zap.String("message_id", p.MessageID),
		zap.String("candidate", fields.CandidateName),
	)

	return nil
}

func eventDedupKey(p mq.MessageFetchedPayload) string {
	return fmt.Sprintf("%s:%d", p.MessageID, p.FetchedAt.UTC().UnixNano())
}
