// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package monitoring

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"

	"github.com/cybertiba/sentinel/cmd/sentinel/cli"
)

// PingCommand returns the "ping" parent command.
func PingCommand() *cli.Command {
	return &cli.Command{
		Name:    "ping",
		Summary: "List and run reachability probes",
		Description: `Work with ping tests: reachability probes the backend runs against
target IP addresses.

"list" shows past probe results. "run" asks the backend to probe an
address now; the result appears in the list once the probe completes.`,
		Subcommands: []*cli.Command{
			pingListCommand(),
			pingRunCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "Probe a host",
				Command:     "sentinel ping run 10.0.0.7",
			},
			{
				Description: "Show recent probe results",
				Command:     "sentinel ping list --limit 10",
			},
		},
	}
}

func pingListCommand() *cli.Command {
	var app cli.AppConfig
	var (
		limit      int
		jsonOutput bool
	)

	return &cli.Command{
		Name:    "list",
		Summary: "List past probe results",
		Usage:   "sentinel ping list [--limit <n>] [--json]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("ping list", pflag.ContinueOnError)
			app.AddFlags(flagSet)
			flagSet.IntVar(&limit, "limit", 20, "maximum number of results to show (0 for all)")
			flagSet.BoolVar(&jsonOutput, "json", false, "emit JSON instead of a table")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}
			a, err := app.Build()
			if err != nil {
				return err
			}
			if err := a.RequireAuth(); err != nil {
				return err
			}
			ctx, cancel := a.Context()
			defer cancel()

			pings, err := a.Client.Pings(ctx, limit)
			if err != nil {
				return cli.Notice(err)
			}

			if jsonOutput {
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				return encoder.Encode(pings)
			}

			writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "TIMESTAMP\tTARGET\tSTATUS\tLATENCY")
			for _, ping := range pings {
				status := "unreachable"
				latency := "-"
				if ping.Reachable {
					status = "reachable"
					latency = fmt.Sprintf("%.1f ms", ping.Latency)
				}
				fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n",
					ping.Timestamp.Local().Format(time.DateTime),
					ping.TargetIP, status, latency)
			}
			return writer.Flush()
		},
	}
}

func pingRunCommand() *cli.Command {
	var app cli.AppConfig

	return &cli.Command{
		Name:    "run",
		Summary: "Probe a target IP address",
		Usage:   "sentinel ping run <ip>",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("ping run", pflag.ContinueOnError)
			app.AddFlags(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one argument: the target IP address")
			}
			ip := args[0]
			if net.ParseIP(ip) == nil {
				return fmt.Errorf("invalid IP address: %s", ip)
			}

			a, err := app.Build()
			if err != nil {
				return err
			}
			if err := a.RequireAuth(); err != nil {
				return err
			}
			ctx, cancel := a.Context()
			defer cancel()

			message, err := a.Client.RunPing(ctx, ip)
			if err != nil {
				return cli.Notice(err)
			}
			fmt.Println(message)
			return nil
		},
	}
}
