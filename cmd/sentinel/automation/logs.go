// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package automation

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"

	"github.com/cybertiba/sentinel/cmd/sentinel/cli"
)

// LogsCommand returns the "logs" parent command.
func LogsCommand() *cli.Command {
	return &cli.Command{
		Name:    "logs",
		Summary: "Review executed automation actions",
		Description: `Review the action log: every time a rule's condition crossed its
threshold, the backend records the condition, the observed value, and
the action it took.`,
		Subcommands: []*cli.Command{
			logsListCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "Show the most recent actions",
				Command:     "sentinel logs list --limit 10",
			},
		},
	}
}

func logsListCommand() *cli.Command {
	var app cli.AppConfig
	var (
		limit      int
		jsonOutput bool
	)

	return &cli.Command{
		Name:    "list",
		Summary: "List executed actions",
		Usage:   "sentinel logs list [--limit <n>] [--json]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("logs list", pflag.ContinueOnError)
			app.AddFlags(flagSet)
			flagSet.IntVar(&limit, "limit", 20, "maximum number of entries to show (0 for all)")
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

			logs, err := a.Client.ActionLogs(ctx, limit)
			if err != nil {
				return cli.Notice(err)
			}

			if jsonOutput {
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				return encoder.Encode(logs)
			}

			writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "TIMESTAMP\tCONDITION\tVALUE\tACTION")
			for _, entry := range logs {
				fmt.Fprintf(writer, "%s\t%s\t%.1f\t%s\n",
					entry.Timestamp.Local().Format(time.DateTime),
					entry.Condition, entry.Value, entry.ActionTaken)
			}
			return writer.Flush()
		},
	}
}
