// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import "strings"

// sparklineRunes are the eight block-element levels, lowest first.
var sparklineRunes = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders values as a fixed-width block-character strip,
// oldest sample on the left. Values are scaled to 0-100 (usage
// percentages); out-of-range values are clamped. When there are more
// values than columns the strip shows the most recent ones; when
// fewer, it is left-padded with spaces so the right edge is always
// "now".
func Sparkline(values []float64, width int) string {
	if width <= 0 {
		return ""
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	var builder strings.Builder
	for i := 0; i < width-len(values); i++ {
		builder.WriteByte(' ')
	}
	for _, value := range values {
		if value < 0 {
			value = 0
		}
		if value > 100 {
			value = 100
		}
		index := int(value / 100 * float64(len(sparklineRunes)-1))
		builder.WriteRune(sparklineRunes[index])
	}
	return builder.String()
}
