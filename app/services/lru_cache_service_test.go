package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/election-directory/internal/assemble"
	"github.com/election-directory/internal/metrics"
)

func TestLRUCacheService_ConcurrentStats(t *testing.T) {
	cache, err := NewLRUCacheService(8, nil, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if err := cache.Set(ctx, "qh15/e1", &assemble.CandidateView{}); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		key := "qh15/e1"
		if i%2 == 1 {
			key = "qh15/missing"
		}
		wg.Add(1)
		go func(key string) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_, _, _ = cache.Get(ctx, key)
			}
		}(key)
	}
	wg.Wait()

	stats, err := cache.GetStats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalHits != 400 || stats.TotalMiss != 400 {
		t.Errorf("stats = %+v, want 400 hits and 400 misses", stats)
	}
}

func TestLRUCacheService_RecordsTierMetrics(t *testing.T) {
	m := metrics.New()
	cache, err := NewLRUCacheService(8, m, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if _, found, _ := cache.Get(ctx, "qh15/e1"); found {
		t.Fatal("empty cache reported a hit")
	}
	if err := cache.Set(ctx, "qh15/e1", &assemble.CandidateView{}); err != nil {
		t.Fatal(err)
	}
	if _, found, _ := cache.Get(ctx, "qh15/e1"); !found {
		t.Fatal("cache missed after Set")
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	m.Handler()(c)

	body := w.Body.String()
	if !strings.Contains(body, `eldir_cache_hits_total{tier="lru"} 1`) {
		t.Errorf("hit counter missing from scrape:\n%s", body)
	}
	if !strings.Contains(body, `eldir_cache_misses_total{tier="lru"} 1`) {
		t.Errorf("miss counter missing from scrape:\n%s", body)
	}
}
