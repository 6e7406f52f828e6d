package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MailboxPageLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mailbox_page_fetch_latency_ms",
			Help:    "Mailbox API page fetch latency in milliseconds",
			Buckets: prometheus.ExponentialBuckets(10, 2, 10), // 10ms to ~10s
		},
		[]string{"status"},
	)

	ExtractionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "extraction_duration_ms",
			Help:    "Field extraction duration per message in milliseconds",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10), // 1ms to ~1s
		},
		[]string{"status"},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"operation", "table"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	MQConsumeLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mq_consume_latency_ms",
			Help:    "MQ message consumption latency in milliseconds",
			Buckets: prometheus.ExponentialBuckets(10, 2, 10), // 10ms to ~10s
		},
		[]string{"routing_key", "queue"},
	)

	MessagesFetchedCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "messages_fetched_count",
			Help: "Total number of messages fetched from the mailbox API",
		},
	)

	MessagesExtractedCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_extracted_count",
			Help: "Total number of messages run through field extraction",
		},
		[]string{"status"}, // status: success, skipped, failed
	)

	MQEventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mq_events_published_count",
			Help: "Total number of events published to the exchange",
		},
		[]string{"routing_key"},
	)
)

// RecordMailboxPageLatency records one mailbox API page round trip.
func RecordMailboxPageLatency(status string, duration time.Duration) {
	MailboxPageLatency.WithLabelValues(status).Observe(float64(duration.Milliseconds()))
}

// RecordExtractionDuration records one message extraction.
func RecordExtractionDuration(status string, duration time.Duration) {
	ExtractionDuration.WithLabelValues(status).Observe(float64(duration.Milliseconds()))
}

// RecordDBQueryDuration records one database query.
func RecordDBQueryDuration(operation, table string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}

// RecordHTTPRequestDuration records one handled HTTP request.
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordMQConsumeLatency records one consumed MQ message.
func RecordMQConsumeLatency(routingKey, queue string, duration time.Duration) {
	MQConsumeLatency.WithLabelValues(routingKey, queue).Observe(float64(duration.Milliseconds()))
}

// IncrementMessagesFetched bumps the fetched-message counter.
func IncrementMessagesFetched() {
	MessagesFetchedCount.Inc()
}

// IncrementMessagesExtracted bumps the extraction counter for a status.
func IncrementMessagesExtracted(status string) {
	MessagesExtractedCount.WithLabelValues(status).Inc()
}

// IncrementMQEventsPublished bumps the published-event counter.
func IncrementMQEventsPublished(routingKey string) {
	MQEventsPublished.WithLabelValues(routingKey).Inc()
}
