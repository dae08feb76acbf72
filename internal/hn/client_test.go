package hn

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
)

// newAPIServer serves a minimal Firebase-style API: a listing per section
// endpoint and /item/<id>.json for every story in items.
func newAPIServer(t *testing.T, ids []int, items map[int]*Story) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	for _, section := range Sections() {
		mux.HandleFunc("/"+section.Endpoint(), func(w http.ResponseWriter, r *http.Request) {
			if ua := r.Header.Get("User-Agent"); !strings.HasPrefix(ua, "hnterm/") {
				t.Errorf("unexpected User-Agent %q", ua)
			}
			_ = json.NewEncoder(w).Encode(ids)
		})
	}

	mux.HandleFunc("/item/", func(w http.ResponseWriter, r *http.Request) {
		idStr := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/item/"), ".json")
		id, err := strconv.Atoi(idStr)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		story, ok := items[id]
		if !ok {
			// The real API returns null for missing/deleted items.
			fmt.Fprint(w, "null")
			return
		}
		_ = json.NewEncoder(w).Encode(story)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientFetchOrder(t *testing.T) {
	ids := []int{3, 1, 2}
	items := map[int]*Story{
		1: {ID: 1, Title: "first", By: "alice", Score: 10},
		2: {ID: 2, Title: "second", By: "bob", Score: 20},
		3: {ID: 3, Title: "third", By: "carol", Score: 30},
	}
	srv := newAPIServer(t, ids, items)

	client := NewClient(ClientOptions{BaseURL: srv.URL})
	stories, err := client.Fetch(context.Background(), SectionTop)
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}

	if len(stories) != 3 {
		t.Fatalf("got %d stories, want 3", len(stories))
	}
	// Listing order must be preserved regardless of fetch completion order.
	for i, wantID := range ids {
		if stories[i].ID != wantID {
			t.Errorf("stories[%d].ID = %d, want %d", i, stories[i].ID, wantID)
		}
	}
}

func TestClientFetchSkipsNullItems(t *testing.T) {
	ids := []int{1, 99, 2}
	items := map[int]*Story{
		1: {ID: 1, Title: "kept", By: "alice", Score: 1},
		2: {ID: 2, Title: "also kept", By: "bob", Score: 2},
	}
	srv := newAPIServer(t, ids, items)

	client := NewClient(ClientOptions{BaseURL: srv.URL})
	stories, err := client.Fetch(context.Background(), SectionAsk)
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if len(stories) != 2 {
		t.Fatalf("got %d stories, want 2 (null item skipped)", len(stories))
	}
	if stories[0].ID != 1 || stories[1].ID != 2 {
		t.Errorf("unexpected story order: %v, %v", stories[0].ID, stories[1].ID)
	}
}

func TestClientFetchRespectsLimit(t *testing.T) {
	var itemRequests atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("/"+SectionTop.Endpoint(), func(w http.ResponseWriter, r *http.Request) {
		ids := make([]int, 50)
		for i := range ids {
			ids[i] = i + 1
		}
		_ = json.NewEncoder(w).Encode(ids)
	})
	mux.HandleFunc("/item/", func(w http.ResponseWriter, r *http.Request) {
		itemRequests.Add(1)
		idStr := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/item/"), ".json")
		id, _ := strconv.Atoi(idStr)
		_ = json.NewEncoder(w).Encode(&Story{ID: id, Title: "story", By: "dev", Score: 1})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := NewClient(ClientOptions{BaseURL: srv.URL, StoryLimit: 10})
	stories, err := client.Fetch(context.Background(), SectionTop)
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if len(stories) != 10 {
		t.Errorf("got %d stories, want 10", len(stories))
	}
	if n := itemRequests.Load(); n != 10 {
		t.Errorf("issued %d item requests, want 10", n)
	}
}

func TestClientFetchFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "listing server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "malformed listing payload",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"not": "a listing"}`)
			},
		},
		{
			name: "item decode failure fails whole section",
			handler: func(w http.ResponseWriter, r *http.Request) {
				if strings.HasPrefix(r.URL.Path, "/item/") {
					fmt.Fprint(w, "<html>not json</html>")
					return
				}
				_ = json.NewEncoder(w).Encode([]int{1, 2})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			client := NewClient(ClientOptions{BaseURL: srv.URL})
			if _, err := client.Fetch(context.Background(), SectionShow); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
