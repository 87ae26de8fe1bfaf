package search

import (
	"fmt"
	"testing"

	"github.com/absolutekim/FFYYPP/internal/models"
)

func tickingClock() func() int64 {
	var tick int64
	return func() int64 {
		tick++
		return tick
	}
}

func scoredList(id int) []models.ScoredDestination {
	return []models.ScoredDestination{
		{Destination: &models.Destination{ID: id}, Score: 0.5},
	}
}

func TestResultCachePutGet(t *testing.T) {
	c := NewResultCache(10)
	c.clock = tickingClock()

	key := CacheKey("paris", 20)
	if _, ok := c.Get(key); ok {
		t.Fatal("expected miss on empty cache")
	}

	c.Put(key, scoredList(1))
	got, ok := c.Get(key)
	if !ok {
		t.Fatal("expected hit after Put")
	}
	if len(got) != 1 || got[0].Destination.ID != 1 {
		t.Errorf("cached results = %v", got)
	}
}

func TestResultCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewResultCache(2)
	c.clock = tickingClock()

	c.Put("a", scoredList(1))
	c.Put("b", scoredList(2))

	// Touch "a" so "b" becomes the eviction candidate.
	if _, ok := c.Get("a"); !ok {
		t.Fatal("expected hit for a")
	}

	c.Put("c", scoredList(3))

	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("a should have survived eviction")
	}
	if _, ok := c.Get("c"); !ok {
		t.Error("c should be present")
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
}

func TestResultCacheOverwriteDoesNotEvict(t *testing.T) {
	c := NewResultCache(2)
	c.clock = tickingClock()

	c.Put("a", scoredList(1))
	c.Put("b", scoredList(2))
	c.Put("a", scoredList(3))

	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
	got, ok := c.Get("a")
	if !ok || got[0].Destination.ID != 3 {
		t.Errorf("overwrite not applied: %v", got)
	}
}

func TestResultCacheInvalidate(t *testing.T) {
	c := NewResultCache(10)
	c.clock = tickingClock()

	key := CacheKey("tokyo", 5)
	c.Put(key, scoredList(1))
	c.Invalidate(key)

	if _, ok := c.Get(key); ok {
		t.Error("expected miss after Invalidate")
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d, want 0", c.Len())
	}
}

func TestCacheKey(t *testing.T) {
	got := CacheKey("kyoto temples", 15)
	want := fmt.Sprintf("%s:%d", "kyoto temples", 15)
	if got != want {
		t.Errorf("CacheKey = %q, want %q", got, want)
	}
}
