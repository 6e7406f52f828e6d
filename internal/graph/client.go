package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"potrack/config"
	"potrack/internal/model"
	"potrack/pkg/circuitbreaker"
	"potrack/pkg/metrics"
)

// Client pulls messages from a Graph-shaped mailbox REST API. Pages are
// followed via the nextLink the API hands back; every page round trip
// runs under the circuit breaker so a flapping upstream does not hammer.
type Client struct {
	baseURL    string
	mailbox    string
	token      string
	pageSize   int
	httpClient *http.Client
	breaker    *circuitbreaker.CircuitBreaker
	logger     *zap.Logger
}

func NewClient(cfg config.MailboxConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL:  cfg.BaseURL,
		mailbox:  cfg.Mailbox,
		token:    cfg.Token,
		pageSize: cfg.PageSize,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		breaker: circuitbreaker.NewCircuitBreaker(circuitbreaker.DefaultConfig()),
		logger:  logger,
	}
}

// Wire shapes. The API nests the sender and body; the model keeps them flat.
type wireEmailAddress struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

type wireFrom struct {
	EmailAddress wireEmailAddress `json:"emailAddress"`
}

type wireBody struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

type wireMessage struct {
	ID               string    `json:"id"`
	Subject          string    `json:"subject"`
	From             *wireFrom `json:"from"`
	ReceivedDateTime string    `json:"receivedDateTime"`
	BodyPreview      string    `json:"bodyPreview"`
	WebLink          string    `json:"webLink"`
	Body             wireBody  `json:"body"`
}

type messagePage struct {
	Value    []wireMessage `json:"value"`
	NextLink string        `json:"@odata.nextLink"`
}

// ListMessages fetches every page of the mailbox and returns the mapped
// messages in API order.
func (c *Client) ListMessages(ctx context.Context) ([]model.RawMessage, error) {
	next := fmt.Sprintf("%s/users/%s/messages?$top=%s",
		c.baseURL, url.PathEscape(c.mailbox), strconv.Itoa(c.pageSize))

	var out []model.RawMessage
	pages := 0

	for next != "" {
		var page messagePage
		err := c.breaker.Execute(func() error {
			var fetchErr error
			page, fetchErr = c.fetchPage(ctx, next)
			return fetchErr
		})
		if err != nil {
			return nil, fmt.Errorf("fetch page %d: %w", pages+1, err)
		}

		for _, wm := range page.Value {
			out = append(out, mapMessage(wm))
		}
		pages++
		next = page.NextLink
	}

	c.logger.Info("Mailbox listing complete",
		zap.Int("pages", pages),
		zap.Int("messages", len(out)),
	)

	return out, nil
}

func (c *Client) fetchPage(ctx context.Context, pageURL string) (messagePage, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return messagePage{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordMailboxPageLatency("error", time.Since(start))
		return messagePage{}, err
	}
	defer resp.Body.Close()

	metrics.RecordMailboxPageLatency(strconv.Itoa(resp.StatusCode), time.Since(start))

	if resp.StatusCode >= 500 {
		return messagePage{}, fmt.Errorf("mailbox api 5xx: %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return messagePage{}, fmt.Errorf("mailbox api error: %d", resp.StatusCode)
	}

	var page messagePage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return messagePage{}, fmt.Errorf("decode mailbox page: %w", err)
	}
	return page, nil
}

func mapMessage(wm wireMessage) model.RawMessage {
	m := model.RawMessage{
		ID:               wm.ID,
		Subject:          wm.Subject,
		ReceivedDateTime: wm.ReceivedDateTime,
		BodyPreview:      wm.BodyPreview,
		WebLink:          wm.WebLink,
		BodyHTML:         wm.Body.Content,
	}
	if wm.From != nil {
		m.From = &model.Sender{
			Name:    wm.From.EmailAddress.Name,
			Address: wm.From.EmailAddress.Address,
		}
	}
	return m
}
