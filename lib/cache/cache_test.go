// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"net/url"
	"testing"
	"time"

	"github.com/cybertiba/sentinel/lib/clock"
)

func testCache(t *testing.T) (*Cache, *clock.FakeClock) {
	t.Helper()
	fake := clock.Fake(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	return New(fake), fake
}

func TestKeyOrderIndependence(t *testing.T) {
	first := url.Values{}
	first.Set("limit", "20")
	first.Set("ordering", "-timestamp")

	second := url.Values{}
	second.Set("ordering", "-timestamp")
	second.Set("limit", "20")

	if Key("/api/monitoring/metrics/", first) != Key("/api/monitoring/metrics/", second) {
		t.Errorf("keys differ for equivalent params: %q vs %q",
			Key("/api/monitoring/metrics/", first), Key("/api/monitoring/metrics/", second))
	}
}

func TestKeyDistinguishesEndpointsAndParams(t *testing.T) {
	params := url.Values{"limit": {"5"}}
	if Key("/api/automation/rules/", params) == Key("/api/monitoring/metrics/", params) {
		t.Error("different endpoints produced the same key")
	}
	other := url.Values{"limit": {"10"}}
	if Key("/api/automation/rules/", params) == Key("/api/automation/rules/", other) {
		t.Error("different params produced the same key")
	}
	if Key("/api/automation/rules/", nil) != "/api/automation/rules/" {
		t.Errorf("nil params key = %q", Key("/api/automation/rules/", nil))
	}
}

func TestGetBeforeAndAfterExpiry(t *testing.T) {
	c, fake := testCache(t)
	c.Set("metrics", []byte(`[{"cpu_usage":85.2}]`), 60*time.Second)

	// Retrievable strictly before the deadline.
	fake.Advance(59 * time.Second)
	value, ok := c.Get("metrics")
	if !ok {
		t.Fatal("entry missing before ttl elapsed")
	}
	if string(value) != `[{"cpu_usage":85.2}]` {
		t.Errorf("unexpected value %q", value)
	}

	// Absent once the deadline is reached.
	fake.Advance(1 * time.Second)
	if _, ok := c.Get("metrics"); ok {
		t.Error("entry still served at its deadline")
	}
	if c.Has("metrics") {
		t.Error("Has reports an expired entry")
	}
}

func TestResetReArmsDeadline(t *testing.T) {
	c, fake := testCache(t)
	c.Set("rules", []byte("first"), 10*time.Second)

	// Re-set with a fresh ttl before the first deadline.
	fake.Advance(8 * time.Second)
	c.Set("rules", []byte("second"), 10*time.Second)

	// Past the first deadline but inside the second window: the entry
	// must still be served — the earlier deadline was cancelled.
	fake.Advance(5 * time.Second)
	value, ok := c.Get("rules")
	if !ok {
		t.Fatal("entry evicted by the superseded deadline")
	}
	if string(value) != "second" {
		t.Errorf("value = %q, want %q", value, "second")
	}

	fake.Advance(5 * time.Second)
	if _, ok := c.Get("rules"); ok {
		t.Error("entry survived the re-armed deadline")
	}
}

func TestClear(t *testing.T) {
	c, _ := testCache(t)
	c.Set("a", []byte("1"), time.Minute)
	c.Set("b", []byte("2"), time.Minute)
	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len after Clear = %d, want 0", c.Len())
	}
	if c.Has("a") || c.Has("b") {
		t.Error("entries survive Clear")
	}
}
