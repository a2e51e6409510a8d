package notifications_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tvscrape/internal/config"
	"tvscrape/internal/notifications"
)

func TestNewServiceReturnsNoopWhenDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Notifications.Enabled = false
	cfg.Notifications.NtfyTopic = "http://example.invalid/topic"
	svc := notifications.NewService(&cfg)
	if err := svc.Publish(context.Background(), notifications.EventScrapeSuccess, notifications.Payload{"seriesName": "Example"}); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
}

func TestNewServiceReturnsNoopWhenTopicMissing(t *testing.T) {
	cfg := config.Default()
	cfg.Notifications.Enabled = true
	cfg.Notifications.NtfyTopic = ""
	svc := notifications.NewService(&cfg)
	if err := svc.Publish(context.Background(), notifications.EventScrapeSuccess, notifications.Payload{"seriesName": "Example"}); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
}

func TestNtfyServiceFormatsPayloads(t *testing.T) {
	tests := []struct {
		name           string
		event          notifications.Event
		payload        notifications.Payload
		expectTitle    string
		expectMessage  string
		expectPriority string
		expectTags     string
	}{
		{
			name:  "job completed",
			event: notifications.EventJobCompleted,
			payload: notifications.Payload{
				"scanPath":     "/library/incoming",
				"successCount": 3,
				"errorCount":   1,
				"totalCount":   4,
			},
			expectTitle:   "tvscrape - Job Complete",
			expectMessage: "Scanned /library/incoming\nDispatched 3 of 4 files\nFailed to dispatch: 1",
			expectTags:    "job",
		},
		{
			name:  "scrape success",
			event: notifications.EventScrapeSuccess,
			payload: notifications.Payload{
				"seriesName": "Arrival",
				"destPath":   "/library/Arrival (2016) [tmdbid-329865]",
			},
			expectTitle:   "tvscrape - Scrape Complete",
			expectMessage: "Scraped: Arrival\n/library/Arrival (2016) [tmdbid-329865]",
			expectTags:    "scrape",
		},
		{
			name:  "scrape needs input",
			event: notifications.EventScrapeNeedsInput,
			payload: notifications.Payload{
				"filePath": "/incoming/Show.S01E02.mkv",
				"reason":   "ambiguous match",
			},
			expectTitle:   "tvscrape - Review Needed",
			expectMessage: "Needs selection: /incoming/Show.S01E02.mkv\nReason: ambiguous match",
			expectTags:    "review",
		},
		{
			name:  "scrape conflict",
			event: notifications.EventScrapeConflict,
			payload: notifications.Payload{
				"filePath": "/incoming/Show.S01E02.mkv",
			},
			expectTitle:   "tvscrape - Conflict",
			expectMessage: "Already in library: /incoming/Show.S01E02.mkv",
			expectTags:    "conflict",
		},
		{
			name:  "error",
			event: notifications.EventError,
			payload: notifications.Payload{
				"context": "placement",
				"error":   errors.New("destination already exists"),
			},
			expectTitle:    "tvscrape - Error",
			expectMessage:  "Error in placement: destination already exists",
			expectPriority: "high",
			expectTags:     "error",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var captured struct {
				title    string
				tags     string
				priority string
				body     string
			}

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Fatalf("unexpected method: %s", r.Method)
				}
				captured.title = r.Header.Get("Title")
				captured.tags = r.Header.Get("Tags")
				captured.priority = r.Header.Get("Priority")
				body, err := io.ReadAll(r.Body)
				if err != nil {
					t.Fatalf("read body: %v", err)
				}
				captured.body = string(body)
				_ = r.Body.Close()
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			cfg := config.Default()
			cfg.Notifications.Enabled = true
			cfg.Notifications.NtfyTopic = server.URL
			cfg.Notifications.RequestTimeout = 5
			cfg.Notifications.JobsComplete = true
			cfg.Notifications.Errors = true

			svc := notifications.NewService(&cfg)
			if err := svc.Publish(context.Background(), tc.event, tc.payload); err != nil {
				t.Fatalf("notification returned error: %v", err)
			}

			if captured.title != tc.expectTitle {
				t.Fatalf("expected title %q, got %q", tc.expectTitle, captured.title)
			}
			if captured.body != tc.expectMessage {
				t.Fatalf("expected message %q, got %q", tc.expectMessage, captured.body)
			}
			if strings.TrimSpace(captured.tags) != strings.TrimSpace(tc.expectTags) {
				t.Fatalf("expected tags %q, got %q", tc.expectTags, captured.tags)
			}
			if captured.priority != tc.expectPriority {
				t.Fatalf("expected priority %q, got %q", tc.expectPriority, captured.priority)
			}
		})
	}
}

func TestNtfyServiceIgnoresSuppressedEvents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("unexpected call for suppressed event: %s", r.URL.String())
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.Enabled = true
	cfg.Notifications.NtfyTopic = server.URL
	cfg.Notifications.JobsComplete = false
	cfg.Notifications.Errors = false

	svc := notifications.NewService(&cfg)
	suppressed := []notifications.Event{
		notifications.EventJobStarted,
		notifications.EventJobCompleted,
		notifications.EventError,
	}

	for _, event := range suppressed {
		if err := svc.Publish(context.Background(), event, notifications.Payload{"value": "ignored"}); err != nil {
			t.Fatalf("expected no error for suppressed event %s, got %v", event, err)
		}
	}
}

func TestNtfyServiceDedupesWithinWindow(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.Enabled = true
	cfg.Notifications.NtfyTopic = server.URL

	svc := notifications.NewService(&cfg)
	payload := notifications.Payload{"seriesName": "Arrival"}
	if err := svc.Publish(context.Background(), notifications.EventScrapeSuccess, payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Publish(context.Background(), notifications.EventScrapeSuccess, payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 notification sent due to dedupe, got %d", calls)
	}
}
