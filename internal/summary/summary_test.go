package summary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewRequiresConfiguration(t *testing.T) {
	if _, err := New(Options{Model: "claude-3-5-haiku-latest"}); err == nil {
		t.Error("expected error without API key")
	}
	if _, err := New(Options{APIKey: "sk-test"}); err == nil {
		t.Error("expected error without model")
	}
}

func TestSummarize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "sk-test" {
			t.Errorf("missing x-api-key header")
		}
		if r.Header.Get("anthropic-version") == "" {
			t.Errorf("missing anthropic-version header")
		}

		var req claudeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if req.MaxTokens != 150 {
			t.Errorf("MaxTokens = %d, want 150", req.MaxTokens)
		}
		if len(req.Messages) != 1 || !strings.Contains(req.Messages[0].Content, "Ask HN: test post") {
			t.Errorf("prompt should contain the story title, got %+v", req.Messages)
		}

		fmt.Fprint(w, `{"content":[{"text":"  A concise summary.  "}]}`)
	}))
	defer srv.Close()

	s, err := New(Options{
		APIKey:   "sk-test",
		Model:    "claude-3-5-haiku-latest",
		Endpoint: srv.URL,
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	got, err := s.Summarize(context.Background(), "Ask HN: test post", "some body text")
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if got != "A concise summary." {
		t.Errorf("Summarize = %q, want trimmed summary", got)
	}
}

func TestSummarizeAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"message":"invalid api key"}}`)
	}))
	defer srv.Close()

	s, err := New(Options{APIKey: "sk-bad", Model: "m", Endpoint: srv.URL})
	if err != nil {
		t.Fatal(err)
	}

	_, err = s.Summarize(context.Background(), "title", "text")
	if err == nil || !strings.Contains(err.Error(), "invalid api key") {
		t.Errorf("expected API error message, got %v", err)
	}
}

func TestSummarizeEmptyContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"content":[]}`)
	}))
	defer srv.Close()

	s, err := New(Options{APIKey: "sk-test", Model: "m", Endpoint: srv.URL})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.Summarize(context.Background(), "title", "text"); err == nil {
		t.Error("expected error on empty content")
	}
}
