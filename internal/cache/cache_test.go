package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestFetchLoadsOnceUntilInvalidated(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	calls := 0
	load := func(context.Context) ([]string, error) {
		calls++
		return []string{"s1", "s2"}, nil
	}

	for i := 0; i < 3; i++ {
		got, err := Fetch(ctx, c, KeySensors, time.Minute, load)
		if err != nil {
			t.Fatalf("Fetch: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("Fetch()=%v", got)
		}
	}
	if calls != 1 {
		t.Fatalf("load called %d times want 1", calls)
	}

	Invalidate(ctx, c, KeySensors, SensorKey("s1"))
	if _, err := Fetch(ctx, c, KeySensors, time.Minute, load); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if calls != 2 {
		t.Fatalf("load called %d times after invalidate want 2", calls)
	}
}

func TestFetchDropsResultInvalidatedDuringLoad(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	started := make(chan struct{})
	release := make(chan struct{})

	type result struct {
		got []string
		err error
	}
	done := make(chan result)
	go func() {
		got, err := Fetch(ctx, c, KeySensors, time.Minute, func(context.Context) ([]string, error) {
			close(started)
			<-release
			return []string{"s1", "s2"}, nil
		})
		done <- result{got, err}
	}()

	<-started
	// s2 is deleted while the listing above is still loading.
	Invalidate(ctx, c, KeySensors, SensorKey("s2"))
	close(release)
	if r := <-done; r.err != nil || len(r.got) != 2 {
		t.Fatalf("in-flight Fetch()=%v,%v", r.got, r.err)
	}

	got, err := Fetch(ctx, c, KeySensors, time.Minute, func(context.Context) ([]string, error) {
		return []string{"s1"}, nil
	})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(got) != 1 || got[0] != "s1" {
		t.Fatalf("listing after delete=%v want [s1]", got)
	}
}

func TestMemoryCacheGenerations(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	gen, _ := c.Generation(ctx, KeyAlerts)
	if ok, _ := c.SetIfGeneration(ctx, KeyAlerts, []byte(`[]`), time.Minute, gen); !ok {
		t.Fatalf("write at current generation refused")
	}
	if err := c.Delete(ctx, KeyAlerts); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if ok, _ := c.SetIfGeneration(ctx, KeyAlerts, []byte(`[1]`), time.Minute, gen); ok {
		t.Fatalf("write at stale generation accepted")
	}
	if _, ok, _ := c.Get(ctx, KeyAlerts); ok {
		t.Fatalf("stale write is visible")
	}
	if next, _ := c.Generation(ctx, KeyAlerts); next != gen+1 {
		t.Fatalf("generation=%d want %d", next, gen+1)
	}
}

func TestFetchDoesNotCacheErrors(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	boom := errors.New("backend down")

	if _, err := Fetch(ctx, c, KeyAlerts, time.Minute, func(context.Context) (int, error) { return 0, boom }); !errors.Is(err, boom) {
		t.Fatalf("err=%v want %v", err, boom)
	}
	if _, ok, _ := c.Get(ctx, KeyAlerts); ok {
		t.Fatalf("failed load was cached")
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 10, 5, 12, 0, 0, 0, time.UTC)
	c := NewMemoryCache()
	c.now = func() time.Time { return now }

	if err := c.Set(ctx, KeyReadings, []byte(`[1]`), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok, _ := c.Get(ctx, KeyReadings); !ok {
		t.Fatalf("fresh entry missing")
	}
	now = now.Add(time.Minute)
	if _, ok, _ := c.Get(ctx, KeyReadings); ok {
		t.Fatalf("expired entry returned")
	}
}

type failingCache struct{}

func (failingCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("redis down")
}
func (failingCache) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("redis down")
}
func (failingCache) Delete(context.Context, ...string) error { return errors.New("redis down") }
func (failingCache) Generation(context.Context, string) (uint64, error) {
	return 0, errors.New("redis down")
}
func (failingCache) SetIfGeneration(context.Context, string, []byte, time.Duration, uint64) (bool, error) {
	return false, errors.New("redis down")
}

func TestFetchBypassesBrokenCache(t *testing.T) {
	got, err := Fetch(context.Background(), failingCache{}, SensorKey("9"), time.Minute, func(context.Context) (string, error) {
		return "fresh", nil
	})
	if err != nil || got != "fresh" {
		t.Fatalf("Fetch()=%q,%v want fresh", got, err)
	}
}

func TestKeys(t *testing.T) {
	if SensorKey("4") != "sensor:4" || ReadingKey("4") != "reading:4" || AlertKey("4") != "alert:4" {
		t.Fatalf("unexpected key format")
	}
}
