package memo

import (
	"testing"
	"time"
)

func TestGetMissingKey(t *testing.T) {
	c := New[string, int](time.Minute)
	if v, ok := c.Get("absent"); ok {
		t.Errorf("expected miss for absent key, got %d", v)
	}
}

func TestSetThenGet(t *testing.T) {
	c := New[string, int](time.Minute)
	c.Set("members", 42)
	v, ok := c.Get("members")
	if !ok {
		t.Fatal("expected hit immediately after Set")
	}
	if v != 42 {
		t.Errorf("got %d, want 42", v)
	}
}

func TestEntryExpiresAfterTTL(t *testing.T) {
	current := time.Now()
	c := New[string, string](30 * time.Second)
	c.now = func() time.Time { return current }

	c.Set("members", "snapshot")

	// just inside the window
	current = current.Add(29 * time.Second)
	if _, ok := c.Get("members"); !ok {
		t.Fatal("expected hit inside the TTL window")
	}

	// at the boundary the entry is stale
	current = current.Add(time.Second)
	if v, ok := c.Get("members"); ok {
		t.Errorf("expected miss after TTL elapsed, got %q", v)
	}

	// the expired entry was evicted, a fresh Set works as usual
	c.Set("members", "newer")
	if v, ok := c.Get("members"); !ok || v != "newer" {
		t.Errorf("expected %q after re-populating, got %q (hit=%v)", "newer", v, ok)
	}
}

func TestSetOverwrites(t *testing.T) {
	c := New[string, int](time.Minute)
	c.Set("k", 1)
	c.Set("k", 2)
	if v, _ := c.Get("k"); v != 2 {
		t.Errorf("got %d, want the last written value 2", v)
	}
}

func TestDeleteForcesMiss(t *testing.T) {
	c := New[string, int](time.Minute)
	c.Set("k", 1)
	c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Error("expected miss after Delete")
	}
	// deleting an absent key is a no-op
	c.Delete("k")
}
