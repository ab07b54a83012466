// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"testing"
	"time"
)

func TestFakeClock(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	fake := Fake(start)

	if !fake.Now().Equal(start) {
		t.Errorf("Now = %v, want %v", fake.Now(), start)
	}

	// Time stands still without an explicit Advance.
	if !fake.Now().Equal(fake.Now()) {
		t.Error("consecutive Now calls disagree")
	}

	fake.Advance(90 * time.Second)
	want := start.Add(90 * time.Second)
	if !fake.Now().Equal(want) {
		t.Errorf("after Advance: Now = %v, want %v", fake.Now(), want)
	}

	fake.Set(start)
	if !fake.Now().Equal(start) {
		t.Errorf("after Set: Now = %v, want %v", fake.Now(), start)
	}
}

func TestRealClock(t *testing.T) {
	before := time.Now()
	now := Real().Now()
	after := time.Now()
	if now.Before(before) || now.After(after) {
		t.Errorf("Real().Now() = %v outside [%v, %v]", now, before, after)
	}
}
