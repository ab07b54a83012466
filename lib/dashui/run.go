// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the dashboard TUI in the alternate screen and blocks
// until the user quits.
func Run(config Config) error {
	program := tea.NewProgram(New(config), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
