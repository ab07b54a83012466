// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package monitoring

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"

	"github.com/cybertiba/sentinel/api"
	"github.com/cybertiba/sentinel/cmd/sentinel/cli"
)

// MetricsCommand returns the "metrics" parent command.
func MetricsCommand() *cli.Command {
	return &cli.Command{
		Name:    "metrics",
		Summary: "List and collect system resource metrics",
		Description: `Work with the system metric history: CPU, memory, and disk usage
samples collected by the backend.

"list" shows the stored history newest-first. "collect" asks the
backend to take a fresh sample immediately.`,
		Subcommands: []*cli.Command{
			metricsListCommand(),
			metricsCollectCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "Show the ten most recent samples",
				Command:     "sentinel metrics list --limit 10",
			},
			{
				Description: "Trigger an immediate collection",
				Command:     "sentinel metrics collect",
			},
		},
	}
}

func metricsListCommand() *cli.Command {
	var app cli.AppConfig
	var (
		limit      int
		jsonOutput bool
	)

	return &cli.Command{
		Name:    "list",
		Summary: "List collected metric samples",
		Description: `List the metric history, newest sample first. A summary line
reports system health and the change since the previous sample.`,
		Usage: "sentinel metrics list [--limit <n>] [--json]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("metrics list", pflag.ContinueOnError)
			app.AddFlags(flagSet)
			flagSet.IntVar(&limit, "limit", 20, "maximum number of samples to show (0 for all)")
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

			metrics, err := a.Client.Metrics(ctx, limit)
			if err != nil {
				return cli.Notice(err)
			}

			if jsonOutput {
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				return encoder.Encode(metrics)
			}

			if stats := api.ComputeStats(metrics); stats != nil {
				fmt.Printf("Health: %s (cpu %.1f%% %s, mem %.1f%% %s, disk %.1f%% %s)\n\n",
					stats.Health,
					stats.CPUUsage, changeLabel(stats.CPUChange),
					stats.MemoryUsage, changeLabel(stats.MemoryChange),
					stats.DiskUsage, changeLabel(stats.DiskChange))
			}

			writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "TIMESTAMP\tCPU\tMEMORY\tDISK")
			for _, metric := range metrics {
				fmt.Fprintf(writer, "%s\t%.1f%%\t%.1f%%\t%.1f%%\n",
					metric.Timestamp.Local().Format(time.DateTime),
					metric.CPUUsage, metric.MemoryUsage, metric.DiskUsage)
			}
			return writer.Flush()
		},
	}
}

func metricsCollectCommand() *cli.Command {
	var app cli.AppConfig

	return &cli.Command{
		Name:    "collect",
		Summary: "Trigger an immediate metric collection",
		Usage:   "sentinel metrics collect",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("metrics collect", pflag.ContinueOnError)
			app.AddFlags(flagSet)
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

			message, err := a.Client.CollectMetrics(ctx)
			if err != nil {
				return cli.Notice(err)
			}
			fmt.Println(message)
			return nil
		},
	}
}

// changeLabel formats a percentage change as "+6%", "-3%", or "±0%".
func changeLabel(change int) string {
	if change == 0 {
		return "±0%"
	}
	return fmt.Sprintf("%+d%%", change)
}
