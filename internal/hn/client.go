package hn

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"

	"hnterm/internal/debuglog"
)

const (
	// DefaultBaseURL is the public Hacker News Firebase API.
	DefaultBaseURL = "https://hacker-news.firebaseio.com/v0"

	userAgent          = "hnterm/1.0 (Hacker News terminal client)"
	defaultTimeout     = 30 * time.Second
	defaultStoryLimit  = 100
	defaultConcurrency = 8
)

// Client fetches section listings from the Hacker News API. A listing is
// materialized in two phases: the section's ordered ID list, then one item
// request per ID with bounded parallelism. A section either yields its
// full story list or an error; partial lists are never returned.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	limit       int
	concurrency int
}

// ClientOptions configures a Client. Zero values fall back to defaults.
type ClientOptions struct {
	BaseURL     string
	Timeout     time.Duration
	StoryLimit  int
	Concurrency int
}

func NewClient(opts ClientOptions) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.StoryLimit <= 0 {
		opts.StoryLimit = defaultStoryLimit
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}
	return &Client{
		httpClient:  &http.Client{Timeout: opts.Timeout},
		baseURL:     opts.BaseURL,
		limit:       opts.StoryLimit,
		concurrency: opts.Concurrency,
	}
}

// Fetch returns the stories for a section, in listing order.
func (c *Client) Fetch(ctx context.Context, section Section) ([]Story, error) {
	ids, err := c.fetchIDs(ctx, section)
	if err != nil {
		return nil, fmt.Errorf("fetching %s listing: %w", section, err)
	}

	if len(ids) > c.limit {
		ids = ids[:c.limit]
	}

	slots := make([]*Story, len(ids))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, id := range ids {
		g.Go(func() error {
			story, err := c.fetchItem(ctx, id)
			if err != nil {
				return err
			}
			slots[i] = story
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetching %s items: %w", section, err)
	}

	stories := make([]Story, 0, len(slots))
	for _, story := range slots {
		// The API returns null for deleted items; skip them.
		if story == nil || story.ID == 0 {
			continue
		}
		stories = append(stories, *story)
	}

	debuglog.Infof("fetched %d %s stories", len(stories), section)
	return stories, nil
}

func (c *Client) fetchIDs(ctx context.Context, section Section) ([]int, error) {
	var ids []int
	if err := c.getJSON(ctx, fmt.Sprintf("%s/%s", c.baseURL, section.Endpoint()), &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (c *Client) fetchItem(ctx context.Context, id int) (*Story, error) {
	var story *Story
	if err := c.getJSON(ctx, fmt.Sprintf("%s/item/%d.json", c.baseURL, id), &story); err != nil {
		return nil, fmt.Errorf("item %d: %w", id, err)
	}
	return story, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, v any) error {
	if _, err := url.Parse(rawURL); err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
