// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestPad(t *testing.T) {
	tests := []struct {
		value string
		width int
		want  string
	}{
		{"abc", 5, "abc  "},
		{"abc", 3, "abc"},
		{"abcdef", 4, "abc…"},
		{"", 3, "   "},
	}

	for _, test := range tests {
		got := pad(test.value, test.width)
		if got != test.want {
			t.Errorf("pad(%q, %d) = %q, want %q", test.value, test.width, got, test.want)
		}
		if width := ansi.StringWidth(got); width != test.width {
			t.Errorf("pad(%q, %d) has display width %d", test.value, test.width, width)
		}
	}
}

func TestRenderTable_Window(t *testing.T) {
	columns := []column{{header: "N", width: 3}}
	rows := [][]string{{"r0"}, {"r1"}, {"r2"}, {"r3"}, {"r4"}}

	// Selected row beyond the window scrolls it into view.
	output := ansi.Strip(renderTable(DefaultTheme, columns, rows, 4, 2))
	if strings.Contains(output, "r0") {
		t.Errorf("window should have scrolled past r0:\n%s", output)
	}
	if !strings.Contains(output, "r4") {
		t.Errorf("selected row r4 missing:\n%s", output)
	}

	// Header always present.
	if !strings.Contains(output, "N") {
		t.Errorf("header missing:\n%s", output)
	}
}

func TestRenderTable_ShortRows(t *testing.T) {
	columns := []column{{header: "A", width: 3}, {header: "B", width: 3}}
	rows := [][]string{{"x"}} // missing second cell

	output := ansi.Strip(renderTable(DefaultTheme, columns, rows, -1, 0))
	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want header plus one row:\n%s", len(lines), output)
	}
}
