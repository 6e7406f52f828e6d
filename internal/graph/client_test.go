package graph

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"potrack/config"
)

func newTestClient(baseURL string) *Client {
	return NewClient(config.MailboxConfig{
		BaseURL:        baseURL,
		Mailbox:        "po-alerts@example.com",
		Token:          "test-token",
		PageSize:       2,
		TimeoutSeconds: 2,
	}, zap.NewNop())
}

func TestListMessagesFollowsPagination(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q", got)
		}

		w.Header().Set("Content-Type", "application/json")
		if strings.Contains(r.URL.Path, "page2") {
			fmt.Fprint(w, `{"value":[{"id":"m3","subject":"third"}]}`)
			return
		}
		fmt.Fprintf(w, `{
			"value": [
				{"id":"m1","subject":"first","from":{"emailAddress":{"name":"Recruiting","address":"noreply@example.com"}},"receivedDateTime":"2024-03-05T10:00:00Z","body":{"contentType":"html","content":"<p>hi</p>"}},
				{"id":"m2","subject":"second"}
			],
			"@odata.nextLink": %q
		}`, srv.URL+"/page2")
	}))
	defer srv.Close()

	msgs, err := newTestClient(srv.URL).ListMessages(context.Background())
	if err != nil {
		t.Fatalf("ListMessages: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("got %d messages; want 3", len(msgs))
	}

	if msgs[0].ID != "m1" || msgs[1].ID != "m2" || msgs[2].ID != "m3" {
		t.Errorf("order = %s, %s, %s", msgs[0].ID, msgs[1].ID, msgs[2].ID)
	}
	if msgs[0].From == nil || msgs[0].From.Address != "noreply@example.com" {
		t.Errorf("sender not mapped: %+v", msgs[0].From)
	}
	if msgs[0].BodyHTML != "<p>hi</p>" {
		t.Errorf("body not mapped: %q", msgs[0].BodyHTML)
	}
	if msgs[1].From != nil {
		t.Errorf("missing sender should stay nil, got %+v", msgs[1].From)
	}
}

func TestListMessagesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).ListMessages(context.Background())
	if err == nil {
		t.Fatal("expected error for 5xx response")
	}
	if !strings.Contains(err.Error(), "mailbox api 5xx") {
		t.Errorf("error = %v; want mailbox api 5xx marker", err)
	}
}

func TestListMessagesRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).ListMessages(context.Background())
	if err == nil {
		t.Fatal("expected error for 401 response")
	}
	if !strings.Contains(err.Error(), "mailbox api error: 401") {
		t.Errorf("error = %v; want mailbox api error: 401", err)
	}
}
