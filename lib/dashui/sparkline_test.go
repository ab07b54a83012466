// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import "testing"

func TestSparkline(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		width  int
		want   string
	}{
		{
			name:   "empty",
			values: nil,
			width:  4,
			want:   "    ",
		},
		{
			name:   "extremes",
			values: []float64{0, 100},
			width:  2,
			want:   "▁█",
		},
		{
			name:   "clamped out of range",
			values: []float64{-10, 250},
			width:  2,
			want:   "▁█",
		},
		{
			name:   "left padded when short",
			values: []float64{100},
			width:  3,
			want:   "  █",
		},
		{
			name:   "keeps most recent when long",
			values: []float64{100, 0, 0},
			width:  2,
			want:   "▁▁",
		},
		{
			name:   "zero width",
			values: []float64{50},
			width:  0,
			want:   "",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := Sparkline(test.values, test.width)
			if got != test.want {
				t.Errorf("Sparkline(%v, %d) = %q, want %q", test.values, test.width, got, test.want)
			}
		})
	}
}

func TestSparkline_MidLevels(t *testing.T) {
	// 50% maps to the middle of the eight levels, not the extremes.
	got := Sparkline([]float64{50}, 1)
	if got == "▁" || got == "█" {
		t.Errorf("Sparkline([50], 1) = %q, want a mid-range level", got)
	}
}
