// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock abstracts the current time for testability. Production
// code injects Real(); tests inject Fake() and advance it explicitly,
// which makes time-based behavior (cache expiry, staleness windows)
// deterministic under test.
package clock

import "time"

// Clock provides the current time. Production functions that would
// otherwise call time.Now directly should accept a Clock parameter (or
// be a method on a struct with a Clock field) so tests can control
// what "now" means.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// Real returns a Clock backed by the standard time package.
func Real() Clock { return realClock{} }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }
