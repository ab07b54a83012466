// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package trend

import "testing"

func TestChange(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		previous float64
		want     int
	}{
		{"cpu rising", 85.2, 80.0, 6},
		{"cpu falling", 40.0, 80.0, -50},
		{"no change", 55.0, 55.0, 0},
		{"no previous sample", 85.2, 0, 0},
		{"sub-percent move truncates", 80.5, 80.0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Change(tt.current, tt.previous); got != tt.want {
				t.Errorf("Change(%v, %v) = %d, want %d", tt.current, tt.previous, got, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	if d := Classify(6); d != Up || d.String() != "up" || d.Arrow() != "↗" {
		t.Errorf("Classify(6) = %v (%s %s)", d, d, d.Arrow())
	}
	if d := Classify(-12); d != Down || d.String() != "down" {
		t.Errorf("Classify(-12) = %v", d)
	}
	if d := Classify(0); d != Flat || d.String() != "flat" {
		t.Errorf("Classify(0) = %v", d)
	}
}
