package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"potrack/internal/model"
	"potrack/pkg/metrics"
)

const (
	StatusFetched   = "fetched"
	StatusExtracted = "extracted"
)

type MessageRepository struct {
	db *pgxpool.Pool
}

func NewMessageRepository(db *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{db: db}
}

// UpsertMessage inserts a fetched message or replaces it wholesale when
// the id already exists: extracted fields are reset and the status goes
// back to fetched, so the worker re-extracts after every re-fetch.
func (r *MessageRepository) UpsertMessage(ctx context.Context, m *model.RawMessage) error {
	query := `
        INSERT INTO messages
            (id, subject, sender_name, sender_address, received_at,
             body_preview, web_link, body_html, extracted, status, fetched_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, '{}'::jsonb, $9, NOW())
        ON CONFLICT (id) DO UPDATE SET
            subject        = EXCLUDED.subject,
            sender_name    = EXCLUDED.sender_name,
            sender_address = EXCLUDED.sender_address,
            received_at    = EXCLUDED.received_at,
            body_preview   = EXCLUDED.body_preview,
            web_link       = EXCLUDED.web_link,
            body_html      = EXCLUDED.body_html,
            extracted      = '{}'::jsonb,
            status         = EXCLUDED.status,
            fetched_at     = NOW()
    `
	var senderName, senderAddress string
	if m.From != nil {
		senderName = m.From.Name
		senderAddress = m.From.Address
	}

	start := time.Now()
	_, err := r.db.Exec(ctx, query,
		m.ID,
		m.Subject,
		senderName,
		senderAddress,
		m.ReceivedDateTime,
		m.BodyPreview,
		m.WebLink,
		m.BodyHTML,
		StatusFetched,
	)
	metrics.RecordDBQueryDuration("upsert", "messages", time.Since(start))
	return err
}

// FindByID returns the stored message and its extraction status.
func (r *MessageRepository) FindByID(ctx context.Context, id string) (*model.RawMessage, string, error) {
	query := `
        SELECT id, subject, sender_name, sender_address, received_at,
               body_preview, web_link, body_html, status
        FROM messages
        WHERE id = $1
    `
	var m model.RawMessage
	var senderName, senderAddress, status string
	err := r.db.QueryRow(ctx, query, id).Scan(
		&m.ID,
		&m.Subject,
		&senderName,
		&senderAddress,
		&m.ReceivedDateTime,
		&m.BodyPreview,
		&m.WebLink,
		&m.BodyHTML,
		&status,
	)
	if err != nil {
		return nil, "", err
	}
	if senderName != "" || senderAddress != "" {
		m.From = &model.Sender{Name: senderName, Address: senderAddress}
	}
	return &m, status, nil
}

// UpdateExtracted stores the extraction result and marks the message extracted.
func (r *MessageRepository) UpdateExtracted(ctx context.Context, id string, fields model.ExtractedFields) error {
	payload, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("marshal extracted fields: %w", err)
	}

	query := `
        UPDATE messages
        SET extracted = $1, status = $2
        WHERE id = $3
    `
	start := time.Now()
	_, err = r.db.Exec(ctx, query, payload, StatusExtracted, id)
	metrics.RecordDBQueryDuration("update_extracted", "messages", time.Since(start))
	return err
}

// ListRecords returns every stored message joined with its extracted
// fields, most recently received first.
func (r *MessageRepository) ListRecords(ctx context.Context) ([]model.Record, error) {
	query := `
        SELECT id, subject, sender_name, sender_address, received_at,
               body_preview, web_link, extracted
        FROM messages
        ORDER BY received_at DESC
    `
	start := time.Now()
	rows, err := r.db.Query(ctx, query)
	metrics.RecordDBQueryDuration("list", "messages", time.Since(start))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []model.Record{}

	for rows.Next() {
		var rec model.Record
		var senderName, senderAddress string
		var extracted []byte

		err := rows.Scan(
			&rec.ID,
			&rec.Subject,
			&senderName,
			&senderAddress,
			&rec.ReceivedDateTime,
			&rec.BodyPreview,
			&rec.WebLink,
			&extracted,
		)
		if err != nil {
			return nil, err
		}

		if senderName != "" || senderAddress != "" {
			rec.From = &model.Sender{Name: senderName, Address: senderAddress}
		}
		if len(extracted) > 0 {
			if err := json.Unmarshal(extracted, &rec.Extracted); err != nil {
				return nil, fmt.Errorf("unmarshal extracted fields for %s: %w", rec.ID, err)
			}
		}

		records = append(records, rec)
	}

	return records, rows.Err()
}
