// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for the dashboard TUI. All colors
// use lipgloss ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Health and status colors.
	Good    lipgloss.Color // healthy, reachable, active
	Warning lipgloss.Color // under pressure, threshold crossed
	Bad     lipgloss.Color // unreachable, errors
	Muted   lipgloss.Color // inactive rules, missing data

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Form fields.
	FieldLabel    lipgloss.Color
	FieldFocused  lipgloss.Color
	NoticeError   lipgloss.Color
	NoticeSuccess lipgloss.Color
}

// UsageColor returns the color for a usage percentage: Good below the
// warning threshold, Warning at or above it.
func (theme Theme) UsageColor(usage float64) lipgloss.Color {
	if usage >= 80 {
		return theme.Warning
	}
	return theme.Good
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	Good:    lipgloss.Color("114"), // green
	Warning: lipgloss.Color("220"), // yellow/amber
	Bad:     lipgloss.Color("196"), // red
	Muted:   lipgloss.Color("240"), // dim gray

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	FieldLabel:    lipgloss.Color("75"), // blue
	FieldFocused:  lipgloss.Color("255"),
	NoticeError:   lipgloss.Color("196"),
	NoticeSuccess: lipgloss.Color("114"),
}
