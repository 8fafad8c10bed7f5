package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func completionServer(t *testing.T, status int, content string, withChoice bool) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status < 200 || status >= 300 {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"message": "boom", "type": "server_error"},
			})
			return
		}
		choices := []map[string]any{}
		if withChoice {
			choices = append(choices, map[string]any{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": "stop",
			})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "cmpl-test",
			"object":  "chat.completion",
			"model":   "test-deployment",
			"choices": choices,
		})
	}))
}

func testClient(srvURL string) *Client {
	return New(Config{
		Endpoint:   srvURL + "/v1",
		Deployment: "test-deployment",
		APIKey:     "test-key",
		Timeout:    2 * time.Second,
	})
}

func TestCompleteSuccess(t *testing.T) {
	srv := completionServer(t, http.StatusOK, "42", true)
	defer srv.Close()

	got, err := testClient(srv.URL).Complete(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if got.Empty || got.Text != "42" {
		t.Fatalf("unexpected answer: %+v", got)
	}
}

func TestCompleteTrimsWhitespace(t *testing.T) {
	srv := completionServer(t, http.StatusOK, "  42\n", true)
	defer srv.Close()

	got, err := testClient(srv.URL).Complete(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if got.Text != "42" {
		t.Fatalf("expected trimmed text, got %q", got.Text)
	}
}

func TestCompleteEmptyResponseIsNotAnError(t *testing.T) {
	for _, tc := range []struct {
		name       string
		content    string
		withChoice bool
	}{
		{"no choices", "", false},
		{"blank content", "   ", true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			srv := completionServer(t, http.StatusOK, tc.content, tc.withChoice)
			defer srv.Close()

			got, err := testClient(srv.URL).Complete(context.Background(), "prompt")
			if err != nil {
				t.Fatalf("empty response must not be an error, got %v", err)
			}
			if !got.Empty {
				t.Fatalf("expected Empty answer, got %+v", got)
			}
		})
	}
}

func TestCompleteRemoteFailure(t *testing.T) {
	srv := completionServer(t, http.StatusInternalServerError, "", false)
	defer srv.Close()

	_, err := testClient(srv.URL).Complete(context.Background(), "prompt")
	var re *RequestError
	if !errors.As(err, &re) {
		t.Fatalf("expected *RequestError, got %v", err)
	}
	if !strings.Contains(err.Error(), "request failed") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestCompleteTransportFailure(t *testing.T) {
	srv := completionServer(t, http.StatusOK, "x", true)
	srv.Close() // connection refused from here on

	_, err := testClient(srv.URL).Complete(context.Background(), "prompt")
	var re *RequestError
	if !errors.As(err, &re) {
		t.Fatalf("expected *RequestError, got %v", err)
	}
}

func TestAcquireReturnsSameClient(t *testing.T) {
	a := Acquire(Config{Endpoint: "http://localhost:1", Deployment: "d"})
	b := Acquire(Config{Endpoint: "http://localhost:2", Deployment: "other"})
	if a != b {
		t.Fatalf("Acquire must hand out one client per process")
	}
}
