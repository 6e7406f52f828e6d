package mq

import "time"

const RoutingKeyMessageFetched = "message.fetched"

// MessageFetchedPayload announces that a mailbox message has been
// upserted and is ready for field extraction.
type MessageFetchedPayload struct {
	MessageID string    `json:"message_id"`
	Subject   string    `json:"subject"`
	FetchedAt time.Time `json:"fetched_at"`
}
