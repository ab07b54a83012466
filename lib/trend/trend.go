// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

// Package trend computes the percentage-change figures shown on the
// dashboard stat cards: how far the latest sample moved relative to the
// previous one, and in which direction.
package trend

// Change returns the percentage change from previous to current as a
// whole number, truncated toward zero. A zero or missing previous
// sample yields 0 — there is nothing to compare against.
func Change(current, previous float64) int {
	if previous == 0 {
		return 0
	}
	return int(((current - previous) / previous) * 100)
}

// Direction classifies a percentage change for display.
type Direction int

const (
	// Flat means no measurable change.
	Flat Direction = iota
	// Up means the value increased.
	Up
	// Down means the value decreased.
	Down
)

// Classify returns the Direction for a percentage change.
func Classify(change int) Direction {
	switch {
	case change > 0:
		return Up
	case change < 0:
		return Down
	default:
		return Flat
	}
}

// String returns the lowercase name used in status text.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "flat"
	}
}

// Arrow returns the glyph shown next to the change figure.
func (d Direction) Arrow() string {
	switch d {
	case Up:
		return "↗"
	case Down:
		return "↘"
	default:
		return "→"
	}
}
