package cache

import (
	"testing"
	"time"
)

func TestMemoryRoundTrip(t *testing.T) {
	m := NewMemory(time.Hour)

	if !m.Set("k", []byte("hello world")) {
		t.Fatal("Set should always succeed for the memory backend")
	}
	v, ok := m.Get("k")
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if string(v) != "hello world" {
		t.Errorf("got %q, want %q", v, "hello world")
	}
}

func TestMemoryOverwrite(t *testing.T) {
	m := NewMemory(time.Hour)

	m.Set("k", []byte("first"))
	m.Set("k", []byte("second"))

	v, ok := m.Get("k")
	if !ok || string(v) != "second" {
		t.Errorf("got %q, want %q", v, "second")
	}
	if st := m.Stats(); st.Entries != 1 {
		t.Errorf("overwrite should keep one entry, got %d", st.Entries)
	}
}

func TestMemoryTTLExpiration(t *testing.T) {
	m := NewMemory(time.Millisecond)

	m.Set("k", []byte("data"))
	time.Sleep(10 * time.Millisecond)

	if _, ok := m.Get("k"); ok {
		t.Error("expected miss after TTL expiration")
	}
	// The stale entry is removed by the lookup itself.
	if st := m.Stats(); st.Entries != 0 {
		t.Errorf("stale entry should be removed on Get, entries = %d", st.Entries)
	}
}

func TestMemoryZeroAndNegativeTTLNeverExpire(t *testing.T) {
	for _, ttl := range []time.Duration{0, -10 * time.Second} {
		m := NewMemory(ttl)
		m.Set("k", []byte("data"))
		time.Sleep(20 * time.Millisecond)

		v, ok := m.Get("k")
		if !ok {
			t.Errorf("ttl=%v: entry should never expire", ttl)
			continue
		}
		if string(v) != "data" {
			t.Errorf("ttl=%v: got %q, want %q", ttl, v, "data")
		}
	}
}

func TestMemoryDeleteIdempotent(t *testing.T) {
	m := NewMemory(time.Hour)

	if m.Delete("absent") {
		t.Error("deleting an absent key should return false")
	}
	if m.Delete("absent") {
		t.Error("deleting an absent key should return false on repeat")
	}

	m.Set("k", []byte("data"))
	if !m.Delete("k") {
		t.Error("deleting a present key should return true")
	}
	if m.Delete("k") {
		t.Error("second delete of the same key should return false")
	}
}

func TestMemoryStatsAccounting(t *testing.T) {
	m := NewMemory(time.Hour)

	m.Set("k", []byte("data"))
	m.Get("k")       // hit
	m.Get("missing") // miss

	st := m.Stats()
	if st.Hits != 1 {
		t.Errorf("hits = %d, want 1", st.Hits)
	}
	if st.Misses != 1 {
		t.Errorf("misses = %d, want 1", st.Misses)
	}
	if st.Entries != 1 {
		t.Errorf("entries = %d, want 1", st.Entries)
	}
}

func TestMemoryClearKeepsCounters(t *testing.T) {
	m := NewMemory(time.Hour)

	m.Set("a", []byte("1"))
	m.Set("b", []byte("2"))
	m.Get("a")
	m.Get("missing")

	if !m.Clear() {
		t.Fatal("Clear should succeed")
	}

	if _, ok := m.Get("a"); ok {
		t.Error("expected miss after Clear")
	}
	st := m.Stats()
	if st.Entries != 0 {
		t.Errorf("entries = %d, want 0 after Clear", st.Entries)
	}
	if st.Hits != 1 {
		t.Errorf("Clear must not reset hits, got %d", st.Hits)
	}
	// One recorded before Clear, one from the Get above.
	if st.Misses != 2 {
		t.Errorf("misses = %d, want 2", st.Misses)
	}
}

func TestMemoryNotDurable(t *testing.T) {
	m := NewMemory(time.Hour)
	m.Set("k", []byte("data"))

	fresh := NewMemory(time.Hour)
	if _, ok := fresh.Get("k"); ok {
		t.Error("a new memory backend must start empty")
	}
	if st := fresh.Stats(); st.Hits != 0 || st.Misses != 1 {
		t.Errorf("a new memory backend must start with zeroed counters, got %+v", st)
	}
}
