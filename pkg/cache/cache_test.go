package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/noticegen/pkg/observability"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	calls := 0
	create := func(context.Context) (string, bool) {
		calls++
		return "MIT", true
	}

	for range 2 {
		text, ok := c.GetOrCreate(ctx, KeyTypeURL, "https://example.com", create)
		if !ok || text != "MIT" {
			t.Errorf("GetOrCreate() = (%q, %v), want (MIT, true)", text, ok)
		}
	}
	if calls != 2 {
		t.Errorf("NullCache should run create every time, calls = %d", calls)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func TestMemoryCache_MemoizesOutcomes(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	tests := []struct {
		name  string
		key   string
		text  string
		found bool
	}{
		{"positive", "https://opensource.org/licenses/MIT", "MIT text", true},
		{"negative", "https://unreachable.example/LICENSE", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			create := func(context.Context) (string, bool) {
				calls++
				return tt.text, tt.found
			}
			for range 3 {
				text, found := c.GetOrCreate(ctx, KeyTypeURL, tt.key, create)
				if text != tt.text || found != tt.found {
					t.Errorf("GetOrCreate() = (%q, %v), want (%q, %v)", text, found, tt.text, tt.found)
				}
			}
			if calls != 1 {
				t.Errorf("create calls = %d, want 1", calls)
			}
		})
	}

	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
	c.Close()
	if c.Len() != 0 {
		t.Errorf("Len() after Close = %d, want 0", c.Len())
	}
}

func TestMemoryCache_SharedKeyspace(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	c.GetOrCreate(ctx, KeyTypeURL, "https://github.com/o/r", func(context.Context) (string, bool) {
		return "from license url", true
	})
	text, _ := c.GetOrCreate(ctx, KeyTypeURL, "https://github.com/o/r", func(context.Context) (string, bool) {
		t.Error("second key type must reuse the stored outcome")
		return "", false
	})
	if text != "from license url" {
		t.Errorf("GetOrCreate() = %q, want stored outcome", text)
	}
}

func TestMemoryCache_ConcurrentMissesCreateOnce(t *testing.T) {
	c := NewMemoryCache()
	var calls atomic.Int32
	release := make(chan struct{})

	create := func(context.Context) (string, bool) {
		calls.Add(1)
		<-release
		return "text", true
	}

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if text, ok := c.GetOrCreate(context.Background(), KeyTypeURL, "k", create); !ok || text != "text" {
				t.Errorf("GetOrCreate() = (%q, %v)", text, ok)
			}
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Errorf("create calls = %d, want 1", got)
	}
}

func TestMemoryCache_CancelledOutcomeNotStored(t *testing.T) {
	c := NewMemoryCache()
	ctx, cancel := context.WithCancel(context.Background())

	c.GetOrCreate(ctx, KeyTypeURL, "k", func(context.Context) (string, bool) {
		cancel()
		return "", false
	})
	if c.Len() != 0 {
		t.Fatalf("Len() = %d, want 0 after cancelled create", c.Len())
	}

	text, ok := c.GetOrCreate(context.Background(), KeyTypeURL, "k", func(context.Context) (string, bool) {
		return "fresh", true
	})
	if !ok || text != "fresh" {
		t.Errorf("GetOrCreate() = (%q, %v), want (fresh, true)", text, ok)
	}
}

func TestMemoryCache_Hooks(t *testing.T) {
	hooks := &countingHooks{}
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	c := NewMemoryCache()
	create := func(context.Context) (string, bool) { return "", false }
	c.GetOrCreate(context.Background(), KeyTypeRepository, RepositoryKey("https://github.com/o/r", "abc"), create)
	c.GetOrCreate(context.Background(), KeyTypeRepository, RepositoryKey("https://github.com/o/r", "abc"), create)

	if hooks.miss.Load() != 1 || hooks.hit.Load() != 1 || hooks.set.Load() != 1 {
		t.Errorf("hooks hit/miss/set = %d/%d/%d, want 1/1/1", hooks.hit.Load(), hooks.miss.Load(), hooks.set.Load())
	}
}

func TestRepositoryKey(t *testing.T) {
	if got := RepositoryKey("https://github.com/o/r", "abc123"); got != "https://github.com/o/r/abc123" {
		t.Errorf("RepositoryKey() = %q", got)
	}
}

type countingHooks struct {
	hit, miss, set atomic.Int32
}

func (h *countingHooks) OnCacheHit(context.Context, string)       { h.hit.Add(1) }
func (h *countingHooks) OnCacheMiss(context.Context, string)      { h.miss.Add(1) }
func (h *countingHooks) OnCacheSet(context.Context, string, bool) { h.set.Add(1) }
