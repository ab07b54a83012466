// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

// Package dashboard provides the "dashboard" command that launches
// the interactive TUI. It is a separate package from the other
// command groups so the charmbracelet/bubbletea dependency (and its
// transitive closure: lipgloss, bubbles, cellbuf) is only linked
// through this import.
package dashboard

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"github.com/cybertiba/sentinel/cmd/sentinel/cli"
	"github.com/cybertiba/sentinel/lib/dashui"
)

// Command returns the "dashboard" command.
func Command() *cli.Command {
	var app cli.AppConfig
	var refreshSeconds int

	return &cli.Command{
		Name:    "dashboard",
		Summary: "Launch the interactive dashboard",
		Description: `Launch the full-screen dashboard TUI.

Without a persisted session the TUI opens on the sign-in form; with
one it opens on the Dashboard tab. The visible tab refreshes
periodically through the response cache, and expired sessions drop
back to the sign-in form.`,
		Usage: "sentinel dashboard [--refresh <seconds>]",
		Examples: []cli.Example{
			{
				Description: "Open the dashboard",
				Command:     "sentinel dashboard",
			},
			{
				Description: "Refresh the visible tab every 10 seconds",
				Command:     "sentinel dashboard --refresh 10",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("dashboard", pflag.ContinueOnError)
			app.AddFlags(flagSet)
			flagSet.IntVar(&refreshSeconds, "refresh", 30, "seconds between automatic refreshes of the visible tab")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}
			if refreshSeconds < 1 {
				return fmt.Errorf("--refresh must be at least 1 second")
			}

			a, err := app.Build()
			if err != nil {
				return err
			}

			return dashui.Run(dashui.Config{
				Client:          a.Client,
				Store:           a.Store,
				Logger:          a.Logger,
				RefreshInterval: time.Duration(refreshSeconds) * time.Second,
			})
		},
	}
}
