// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete sentinel CLI command tree.
package commands

import (
	"fmt"

	accountcmd "github.com/cybertiba/sentinel/cmd/sentinel/account"
	authcmd "github.com/cybertiba/sentinel/cmd/sentinel/auth"
	automationcmd "github.com/cybertiba/sentinel/cmd/sentinel/automation"
	"github.com/cybertiba/sentinel/cmd/sentinel/cli"
	dashboardcmd "github.com/cybertiba/sentinel/cmd/sentinel/dashboard"
	monitoringcmd "github.com/cybertiba/sentinel/cmd/sentinel/monitoring"
	"github.com/cybertiba/sentinel/lib/version"
)

// Root builds and returns the complete sentinel CLI command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "sentinel",
		Description: `Sentinel: security monitoring dashboard client.

Browse system metric history, reachability probes, and automation
rules from the terminal, either as one-shot commands or as the
full-screen dashboard TUI. Sessions persist across invocations;
expired access tokens are refreshed transparently.`,
		Subcommands: []*cli.Command{
			authcmd.LoginCommand(),
			authcmd.RegisterCommand(),
			authcmd.LogoutCommand(),
			authcmd.WhoamiCommand(),
			dashboardcmd.Command(),
			monitoringcmd.MetricsCommand(),
			monitoringcmd.PingCommand(),
			automationcmd.RulesCommand(),
			automationcmd.LogsCommand(),
			accountcmd.ProfileCommand(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(args []string) error {
					fmt.Printf("sentinel %s\n", version.Full())
					return nil
				},
			},
		},
	}
}
