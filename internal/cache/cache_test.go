package cache

import (
	"net/http"
	"sync"
	"testing"
	"time"
)

func TestResponseCache_GetSet(t *testing.T) {
	c := New(5*time.Second, 100)

	resp := &CachedResponse{
		StatusCode: http.StatusOK,
		Headers:    http.Header{"Content-Type": []string{"application/json"}},
		Body:       []byte(`{"status":"ok"}`),
	}

	key := MakeKey("GET", "/api/clients", "")
	c.Set(key, resp)

	got, ok := c.Get(key)
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", got.StatusCode)
	}
	if string(got.Body) != `{"status":"ok"}` {
		t.Errorf("unexpected body: %s", got.Body)
	}
	if got.Headers.Get("Content-Type") != "application/json" {
		t.Errorf("unexpected content-type: %s", got.Headers.Get("Content-Type"))
	}
}

func TestResponseCache_Miss(t *testing.T) {
	c := New(5*time.Second, 100)

	_, ok := c.Get("nonexistent")
	if ok {
		t.Error("expected cache miss for nonexistent key")
	}
}

func TestResponseCache_TTLExpiration(t *testing.T) {
	c := New(50*time.Millisecond, 100)

	resp := &CachedResponse{
		StatusCode: http.StatusOK,
		Body:       []byte("data"),
	}

	key := MakeKey("GET", "/api/health", "")
	c.Set(key, resp)

	// Should be found immediately
	if _, ok := c.Get(key); !ok {
		t.Fatal("expected cache hit before expiry")
	}

	// Wait for expiry
	time.Sleep(60 * time.Millisecond)

	if _, ok := c.Get(key); ok {
		t.Error("expected cache miss after TTL expiration")
	}
}

func TestMakeKey_QueryStringSeparatesEntries(t *testing.T) {
	c := New(5*time.Second, 100)

	c.Set(MakeKey("GET", "/api/clients", "search=chen"),
		&CachedResponse{StatusCode: http.StatusOK, Body: []byte(`["chen"]`)})
	c.Set(MakeKey("GET", "/api/clients", "search=webb"),
		&CachedResponse{StatusCode: http.StatusOK, Body: []byte(`["webb"]`)})

	got, ok := c.Get(MakeKey("GET", "/api/clients", "search=chen"))
	if !ok {
		t.Fatal("expected cache hit for search=chen")
	}
	if string(got.Body) != `["chen"]` {
		t.Errorf("query strings share an entry: %s", got.Body)
	}
}

func TestMakeKey(t *testing.T) {
	if key := MakeKey("GET", "/api/clients", ""); key != "GET:/api/clients" {
		t.Errorf("unexpected key %q", key)
	}
	if key := MakeKey("GET", "/api/clients", "search=x"); key != "GET:/api/clients?search=x" {
		t.Errorf("unexpected key %q", key)
	}
}

func TestResponseCache_InvalidatePrefix(t *testing.T) {
	c := New(5*time.Second, 100)

	resp := &CachedResponse{StatusCode: http.StatusOK, Body: []byte("data")}

	c.Set(MakeKey("GET", "/api/clients", ""), resp)
	c.Set(MakeKey("GET", "/api/clients", "search=chen"), resp)
	c.Set(MakeKey("GET", "/api/health", ""), resp)

	c.InvalidatePrefix("/api/clients")

	if _, ok := c.Get(MakeKey("GET", "/api/clients", "")); ok {
		t.Error("expected /api/clients to be invalidated")
	}
	if _, ok := c.Get(MakeKey("GET", "/api/clients", "search=chen")); ok {
		t.Error("expected /api/clients?search=chen to be invalidated")
	}
	if _, ok := c.Get(MakeKey("GET", "/api/health", "")); !ok {
		t.Error("expected /api/health to remain in cache")
	}
}

func TestResponseCache_EmptyPrefixIsNoOp(t *testing.T) {
	c := New(5*time.Second, 100)

	resp := &CachedResponse{StatusCode: http.StatusOK, Body: []byte("data")}
	c.Set(MakeKey("GET", "/api/clients", ""), resp)

	c.InvalidatePrefix("")

	if _, ok := c.Get(MakeKey("GET", "/api/clients", "")); !ok {
		t.Error("empty prefix must not wipe the cache")
	}
}

func TestResponseCache_MaxEntries(t *testing.T) {
	c := New(5*time.Second, 3)

	resp := &CachedResponse{StatusCode: http.StatusOK, Body: []byte("data")}

	c.Set("key1", resp)
	c.Set("key2", resp)
	c.Set("key3", resp)

	// All three should be present
	for _, k := range []string{"key1", "key2", "key3"} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("expected %s to be in cache", k)
		}
	}

	// Adding a 4th should evict the oldest (key1)
	c.Set("key4", resp)

	if _, ok := c.Get("key1"); ok {
		t.Error("expected key1 to be evicted (oldest entry)")
	}
	if _, ok := c.Get("key4"); !ok {
		t.Error("expected key4 to be in cache")
	}
}

func TestResponseCache_OverwriteExistingKey(t *testing.T) {
	c := New(5*time.Second, 100)

	resp1 := &CachedResponse{StatusCode: http.StatusOK, Body: []byte("v1")}
	resp2 := &CachedResponse{StatusCode: http.StatusOK, Body: []byte("v2")}

	c.Set("key", resp1)
	c.Set("key", resp2)

	got, ok := c.Get("key")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if string(got.Body) != "v2" {
		t.Errorf("expected updated body v2, got %s", got.Body)
	}
}

func TestResponseCache_ThreadSafety(t *testing.T) {
	c := New(5*time.Second, 1000)

	resp := &CachedResponse{StatusCode: http.StatusOK, Body: []byte("data")}

	var wg sync.WaitGroup

	// Concurrent writes
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := MakeKey("GET", "/api/test/"+string(rune('A'+n%26)), "")
			c.Set(key, resp)
		}(i)
	}

	// Concurrent reads
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := MakeKey("GET", "/api/test/"+string(rune('A'+n%26)), "")
			c.Get(key)
		}(i)
	}

	// Concurrent invalidations
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.InvalidatePrefix("/api/test")
		}()
	}

	wg.Wait()
	// If we get here without a race condition panic, the test passes
}

// --- Stress tests (devils-advocate) ---

// TestStress_MaxEntriesEvictionUnderLoad verifies that the cache never
// exceeds maxEntries even under concurrent writes from many goroutines.
func TestStress_MaxEntriesEvictionUnderLoad(t *testing.T) {
	maxEntries := 50
	c := New(5*time.Second, maxEntries)

	resp := &CachedResponse{StatusCode: http.StatusOK, Body: []byte("x")}

	var wg sync.WaitGroup
	// 200 goroutines each writing a unique key
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := MakeKey("GET", "/api/item/"+string(rune(n)), "")
			c.Set(key, resp)
		}(i)
	}
	wg.Wait()

	c.mu.RLock()
	count := len(c.items)
	c.mu.RUnlock()

	if count > maxEntries {
		t.Errorf("cache exceeded maxEntries: got %d, max %d", count, maxEntries)
	}
}

// TestStress_ConcurrentGetExpiredAndSet verifies that the lock upgrade in
// Get (RLock -> Lock for lazy expiry removal) does not race with Set.
func TestStress_ConcurrentGetExpiredAndSet(t *testing.T) {
	c := New(1*time.Millisecond, 1000)

	resp := &CachedResponse{StatusCode: http.StatusOK, Body: []byte("data")}

	// Pre-fill cache entries that will all expire immediately
	for i := 0; i < 100; i++ {
		c.Set(MakeKey("GET", "/api/item/"+string(rune(i)), ""), resp)
	}

	// Let them expire
	time.Sleep(5 * time.Millisecond)

	var wg sync.WaitGroup
	// Concurrent Gets (which trigger lazy expiry deletion) + Sets
	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			c.Get(MakeKey("GET", "/api/item/"+string(rune(n)), ""))
		}(i)
		go func(n int) {
			defer wg.Done()
			c.Set(MakeKey("GET", "/api/new/"+string(rune(n)), ""), resp)
		}(i)
	}
	wg.Wait()
	// If we get here without a race panic, concurrency is safe
}

// TestStress_SpecialCharactersInPath verifies cache behaviour with paths
// containing URL-encoded characters, unicode, and unusual byte sequences.
func TestStress_SpecialCharactersInPath(t *testing.T) {
	c := New(5*time.Second, 1000)

	resp := &CachedResponse{StatusCode: http.StatusOK, Body: []byte("data")}

	paths := []string{
		"/api/clients/My%20Client",
		"/api/clients/S&P%20500",
		"/api/clients/café",                          // unicode
		"/api/clients/foo/../bar",                    // path traversal attempt
		"/api/clients/foo%00bar",                     // null byte
		"/api/clients/" + string([]byte{0x80, 0x81}), // invalid UTF-8
	}

	for _, path := range paths {
		key := MakeKey("GET", path, "")
		c.Set(key, resp)
		got, ok := c.Get(key)
		if !ok {
			t.Errorf("cache miss for path %q", path)
			continue
		}
		if string(got.Body) != "data" {
			t.Errorf("wrong data for path %q", path)
		}
	}
}

// TestStress_MaxEntriesZero verifies behaviour when maxEntries is 0 or negative.
func TestStress_MaxEntriesZero(t *testing.T) {
	c := New(5*time.Second, 0)

	resp := &CachedResponse{StatusCode: http.StatusOK, Body: []byte("data")}

	// With maxEntries=0, every Set should trigger eviction
	c.Set("key1", resp)

	c.mu.RLock()
	count := len(c.items)
	c.mu.RUnlock()

	// With maxEntries=0: len(items)=0 >= 0 is true, so evictOldest runs on
	// empty map (no-op), then the item is added. Next Set: len=1 >= 0, evicts
	// the one item, then adds the new one. Cache stays at size 1.
	if count > 1 {
		t.Errorf("with maxEntries=0, expected at most 1 item, got %d", count)
	}
}

func TestResponseCache_SetWithTTLOverridesDefault(t *testing.T) {
	c := New(time.Hour, 100)

	resp := &CachedResponse{StatusCode: http.StatusOK, Body: []byte("data")}

	c.SetWithTTL(MakeKey("GET", "/api/engine-health", ""), resp, 50*time.Millisecond)
	c.Set(MakeKey("GET", "/api/version", ""), resp)

	time.Sleep(60 * time.Millisecond)

	if _, ok := c.Get(MakeKey("GET", "/api/engine-health", "")); ok {
		t.Error("expected miss after explicit TTL expiry")
	}
	if _, ok := c.Get(MakeKey("GET", "/api/version", "")); !ok {
		t.Error("default-TTL entry must still be cached")
	}
}
