// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the dashboard TUI.
type KeyMap struct {
	// Navigation.
	Up   key.Binding
	Down key.Binding

	// Tab switching.
	TabDashboard  key.Binding
	TabMonitoring key.Binding
	TabAutomation key.Binding
	TabProfile    key.Binding
	NextTab       key.Binding

	// Data actions.
	Refresh key.Binding // Bypass the cache and refetch the visible tab.
	Collect key.Binding // Trigger a metric collection.
	Ping    key.Binding // Open the ping form.

	// Rule actions (Automation tab).
	NewRule    key.Binding
	EditRule   key.Binding
	ToggleRule key.Binding
	DeleteRule key.Binding

	// Profile.
	EditProfile key.Binding

	// Forms.
	Submit    key.Binding
	Cancel    key.Binding
	NextField key.Binding

	Logout key.Binding
	Quit   key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// (j/k) alongside the arrow keys; number keys switch tabs.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	TabDashboard: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "dashboard"),
	),
	TabMonitoring: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "monitoring"),
	),
	TabAutomation: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "automation"),
	),
	TabProfile: key.NewBinding(
		key.WithKeys("4"),
		key.WithHelp("4", "profile"),
	),
	NextTab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next tab"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Collect: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "collect metrics"),
	),
	Ping: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "ping"),
	),
	NewRule: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new rule"),
	),
	EditRule: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit rule"),
	),
	ToggleRule: key.NewBinding(
		key.WithKeys(" ", "t"),
		key.WithHelp("space", "toggle rule"),
	),
	DeleteRule: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete rule"),
	),
	EditProfile: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit profile"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	NextField: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("tab", "next field"),
	),
	Logout: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "log out"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
