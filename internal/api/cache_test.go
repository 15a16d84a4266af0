package api

import (
	"testing"

	"github.com/atlascommand/atlasfit/pkg/fitscore"
)

func TestProfileCachePutGet(t *testing.T) {
	c := NewProfileCache(2)

	p := &fitscore.DriverProfile{DriverID: "drv-1", HomeBase: "Fresno, CA"}
	c.Put("drv-1", p)

	got := c.Get("drv-1")
	if got == nil {
		t.Fatal("expected cached profile, got nil")
	}
	if got.HomeBase != "Fresno, CA" {
		t.Errorf("home base = %q, want %q", got.HomeBase, "Fresno, CA")
	}

	if c.Get("drv-unknown") != nil {
		t.Error("expected nil for unknown driver")
	}
}

func TestProfileCacheEviction(t *testing.T) {
	c := NewProfileCache(2)

	c.Put("a", &fitscore.DriverProfile{DriverID: "a"})
	c.Put("b", &fitscore.DriverProfile{DriverID: "b"})

	// Touch "a" so "b" becomes the eviction candidate.
	c.Get("a")
	c.Put("c", &fitscore.DriverProfile{DriverID: "c"})

	if c.Get("b") != nil {
		t.Error("expected b to be evicted")
	}
	if c.Get("a") == nil {
		t.Error("expected a to survive eviction")
	}
	if c.Get("c") == nil {
		t.Error("expected c to be cached")
	}
}

func TestProfileCacheRemove(t *testing.T) {
	c := NewProfileCache(2)

	c.Put("a", &fitscore.DriverProfile{DriverID: "a"})
	c.Remove("a")
	if c.Get("a") != nil {
		t.Error("expected a to be removed")
	}

	// Removing an absent entry is a no-op.
	c.Remove("missing")

	// Capacity is freed after removal.
	c.Put("b", &fitscore.DriverProfile{DriverID: "b"})
	c.Put("c", &fitscore.DriverProfile{DriverID: "c"})
	if c.Get("b") == nil || c.Get("c") == nil {
		t.Error("expected b and c to be cached after removal freed capacity")
	}
}

func TestProfileCacheDefaultSize(t *testing.T) {
	c := NewProfileCache(0)
	if c.maxSize != 100 {
		t.Errorf("maxSize = %d, want 100", c.maxSize)
	}
}
