package summary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Summarizer produces a short text summary of a story. One blocking
// request/response; callers run it off the UI goroutine.
type Summarizer interface {
	Summarize(ctx context.Context, title, text string) (string, error)
}

const (
	defaultEndpoint = "https://api.anthropic.com/v1/messages"
	apiVersion      = "2023-06-01"
)

const summarizePrompt = `Please summarize this Hacker News post concisely:

Title: %s

%s`

// Options configures the Claude summarizer. Endpoint is overridable for
// tests; Model and MaxTokens come from config.
type Options struct {
	APIKey    string
	Model     string
	MaxTokens int
	Endpoint  string
	Timeout   time.Duration
}

type claudeSummarizer struct {
	apiKey    string
	model     string
	maxTokens int
	endpoint  string
	client    *http.Client
}

// New returns a Claude-backed Summarizer, or an error when no API key is
// configured (the UI greys out the summarize action in that case).
func New(opts Options) (Summarizer, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("summarizer not configured: missing API key")
	}
	if opts.Model == "" {
		return nil, fmt.Errorf("summarizer not configured: missing model")
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 150
	}
	if opts.Endpoint == "" {
		opts.Endpoint = defaultEndpoint
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	return &claudeSummarizer{
		apiKey:    opts.APIKey,
		model:     opts.Model,
		maxTokens: opts.MaxTokens,
		endpoint:  opts.Endpoint,
		client:    &http.Client{Timeout: opts.Timeout},
	}, nil
}

type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	Messages  []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *claudeSummarizer) Summarize(ctx context.Context, title, text string) (string, error) {
	prompt := fmt.Sprintf(summarizePrompt, title, text)

	payload, err := json.Marshal(claudeRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages:  []claudeMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling summarizer: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	var parsed claudeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			return "", fmt.Errorf("summarizer error: %s", parsed.Error.Message)
		}
		return "", fmt.Errorf("summarizer HTTP error: %d", resp.StatusCode)
	}
	if len(parsed.Content) == 0 {
		return "", fmt.Errorf("summarizer returned no content")
	}

	return strings.TrimSpace(parsed.Content[0].Text), nil
}
