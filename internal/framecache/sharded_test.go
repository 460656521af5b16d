package framecache

import (
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/gogpu/gg-gwas"
)

// identity keeps every int key in shard key&15 so eviction is predictable.
func identity(k int) uint64 { return uint64(k) }

func TestShardedCacheGetSet(t *testing.T) {
	c := NewSharded[int, string](4, identity)

	c.Set(1, "one")
	if v, ok := c.Get(1); !ok || v != "one" {
		t.Errorf("Get(1) = %q, %v, want one, true", v, ok)
	}
	if _, ok := c.Get(2); ok {
		t.Error("Get(2) reported a missing key")
	}

	c.Set(1, "uno")
	if v, _ := c.Get(1); v != "uno" {
		t.Errorf("Get(1) after overwrite = %q, want uno", v)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestShardedCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewSharded[int, int](2, identity)

	// Keys 0, 16 and 32 share shard 0.
	c.Set(0, 0)
	c.Set(16, 16)
	c.Get(0)
	c.Set(32, 32)

	if _, ok := c.Get(16); ok {
		t.Error("least recently used key 16 survived eviction")
	}
	for _, k := range []int{0, 32} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("key %d was evicted", k)
		}
	}
	if got := c.Stats().Evictions; got != 1 {
		t.Errorf("Evictions = %d, want 1", got)
	}
}

func TestShardedCacheGetOrCreate(t *testing.T) {
	c := NewSharded[int, string](4, identity)
	calls := 0
	create := func() (string, error) {
		calls++
		return "v" + strconv.Itoa(calls), nil
	}

	for range 3 {
		v, err := c.GetOrCreate(7, create)
		if err != nil || v != "v1" {
			t.Fatalf("GetOrCreate() = %q, %v, want v1", v, err)
		}
	}
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}

	boom := errors.New("boom")
	if _, err := c.GetOrCreate(8, func() (string, error) { return "", boom }); !errors.Is(err, boom) {
		t.Errorf("GetOrCreate() error = %v, want boom", err)
	}
	if _, ok := c.Get(8); ok {
		t.Error("failed creation was cached")
	}

	s := c.Stats()
	if s.Hits != 2 || s.Misses != 3 {
		t.Errorf("Stats() = %+v, want 2 hits, 3 misses", s)
	}
}

func TestShardedCacheClear(t *testing.T) {
	c := NewSharded[int, int](0, identity)
	for i := range 50 {
		c.Set(i, i)
	}
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d", c.Len())
	}
	if got := c.Stats().TotalCapacity; got != DefaultCapacity*ShardCount {
		t.Errorf("TotalCapacity = %d, want %d", got, DefaultCapacity*ShardCount)
	}
}

func TestShardedCacheConcurrent(t *testing.T) {
	c := NewFrames(4)
	var wg sync.WaitGroup
	for w := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 200 {
				k := Key{View: gwas.View{Center: float64(i % 20), Scale: 1, BaseBpWidth: 10}}
				if _, err := c.GetOrCreate(k, func() ([]byte, error) { return []byte{byte(w)}, nil }); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()
	if n := c.Len(); n == 0 || n > 4*ShardCount {
		t.Errorf("Len() = %d, want 1..%d", n, 4*ShardCount)
	}
}

func TestKeyHasher(t *testing.T) {
	a := Key{View: gwas.View{Center: 1, Scale: 2, BaseBpWidth: 3}, Viewport: gwas.ViewportDims{Width: 4, Height: 5}}
	b := a
	if KeyHasher(a) != KeyHasher(b) {
		t.Error("equal keys hash differently")
	}
	b.Viewport.Width = 6
	if KeyHasher(a) == KeyHasher(b) {
		t.Error("viewport change does not affect the hash")
	}
}
