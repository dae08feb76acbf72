package store

import (
	"sync"
	"testing"

	"hnterm/internal/hn"
)

func TestCacheGetMiss(t *testing.T) {
	c := NewCache()
	if _, ok := c.Get(hn.SectionTop); ok {
		t.Error("Get on empty cache should report a miss")
	}
	if c.Has(hn.SectionTop) {
		t.Error("Has on empty cache should be false")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func TestCachePutReplacesWholesale(t *testing.T) {
	c := NewCache()
	c.Put(hn.SectionTop, []hn.Story{{ID: 1, Title: "old"}, {ID: 2, Title: "older"}})
	c.Put(hn.SectionTop, []hn.Story{{ID: 3, Title: "new"}})

	stories, ok := c.Get(hn.SectionTop)
	if !ok {
		t.Fatal("expected cached entry")
	}
	if len(stories) != 1 || stories[0].ID != 3 {
		t.Errorf("Put should replace the entry wholesale, got %+v", stories)
	}
}

func TestCacheSectionsCanonicalOrder(t *testing.T) {
	c := NewCache()
	c.Put(hn.SectionJobs, []hn.Story{{ID: 1}})
	c.Put(hn.SectionAsk, []hn.Story{{ID: 2}})

	got := c.Sections()
	want := []hn.Section{hn.SectionAsk, hn.SectionJobs}
	if len(got) != len(want) {
		t.Fatalf("Sections() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Sections()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestCacheConcurrentReaders(t *testing.T) {
	c := NewCache()
	c.Put(hn.SectionTop, []hn.Story{{ID: 1, Title: "a"}})

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				if stories, ok := c.Get(hn.SectionTop); !ok || len(stories) != 1 {
					t.Error("concurrent Get returned wrong entry")
					return
				}
			}
		}()
	}
	wg.Wait()
}
