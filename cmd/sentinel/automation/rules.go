// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package automation

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/cybertiba/sentinel/api"
	"github.com/cybertiba/sentinel/cmd/sentinel/cli"
)

// RulesCommand returns the "rules" parent command.
func RulesCommand() *cli.Command {
	return &cli.Command{
		Name:    "rules",
		Summary: "Manage automation rules",
		Description: `Manage threshold rules: when a watched condition crosses its
threshold, the backend runs the configured action and records it in
the action log.

Conditions: ` + conditionList() + `
Actions: ` + actionList(),
		Subcommands: []*cli.Command{
			rulesListCommand(),
			rulesCreateCommand(),
			rulesUpdateCommand(),
			rulesDeleteCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "Alert by email when CPU passes 90%",
				Command:     "sentinel rules create --condition CPU_HIGH --threshold 90 --action EMAIL_ALERT",
			},
			{
				Description: "Disable a rule without deleting it",
				Command:     "sentinel rules update 3 --active=false",
			},
		},
	}
}

func rulesListCommand() *cli.Command {
	var app cli.AppConfig
	var jsonOutput bool

	return &cli.Command{
		Name:    "list",
		Summary: "List automation rules",
		Usage:   "sentinel rules list [--json]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("rules list", pflag.ContinueOnError)
			app.AddFlags(flagSet)
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

			rules, err := a.Client.Rules(ctx, 0)
			if err != nil {
				return cli.Notice(err)
			}

			if jsonOutput {
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				return encoder.Encode(rules)
			}

			writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "ID\tCONDITION\tTHRESHOLD\tACTION\tACTIVE")
			for _, rule := range rules {
				fmt.Fprintf(writer, "%d\t%s\t%.1f\t%s\t%t\n",
					rule.ID, rule.Condition.Label(), rule.Threshold, rule.Action.Label(), rule.Active)
			}
			return writer.Flush()
		},
	}
}

func rulesCreateCommand() *cli.Command {
	var app cli.AppConfig
	var (
		condition string
		threshold float64
		action    string
		active    bool
	)

	return &cli.Command{
		Name:    "create",
		Summary: "Create an automation rule",
		Usage:   "sentinel rules create --condition <cond> --threshold <value> --action <action> [--active=false]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("rules create", pflag.ContinueOnError)
			app.AddFlags(flagSet)
			flagSet.StringVar(&condition, "condition", "", "condition to watch: "+conditionList())
			flagSet.Float64Var(&threshold, "threshold", 0, "threshold value (usage percentage)")
			flagSet.StringVar(&action, "action", "", "action to take: "+actionList())
			flagSet.BoolVar(&active, "active", true, "whether the rule is enabled")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}
			draft, err := buildDraft(condition, threshold, action, active)
			if err != nil {
				return err
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

			rule, err := a.Client.CreateRule(ctx, draft)
			if err != nil {
				return cli.Notice(err)
			}
			fmt.Printf("Created rule %d: %s over %.1f → %s\n",
				rule.ID, rule.Condition.Label(), rule.Threshold, rule.Action.Label())
			return nil
		},
	}
}

func rulesUpdateCommand() *cli.Command {
	var app cli.AppConfig
	var (
		flagSet   *pflag.FlagSet
		condition string
		threshold float64
		action    string
		active    bool
	)

	return &cli.Command{
		Name:    "update",
		Summary: "Update an automation rule",
		Description: `Replace a rule's fields. Unspecified flags fall back to the rule's
current values, so toggling --active leaves the rest untouched.`,
		Usage: "sentinel rules update <id> [--condition <cond>] [--threshold <value>] [--action <action>] [--active=<bool>]",
		Flags: func() *pflag.FlagSet {
			flagSet = pflag.NewFlagSet("rules update", pflag.ContinueOnError)
			app.AddFlags(flagSet)
			flagSet.StringVar(&condition, "condition", "", "condition to watch: "+conditionList())
			flagSet.Float64Var(&threshold, "threshold", 0, "threshold value (usage percentage)")
			flagSet.StringVar(&action, "action", "", "action to take: "+actionList())
			flagSet.BoolVar(&active, "active", true, "whether the rule is enabled")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one argument: the rule ID")
			}
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid rule ID %q", args[0])
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

			current, err := findRule(ctx, a, id)
			if err != nil {
				return err
			}

			draft := api.RuleDraft{
				Condition: current.Condition,
				Threshold: current.Threshold,
				Action:    current.Action,
				Active:    current.Active,
			}
			if condition != "" {
				draft.Condition, err = parseCondition(condition)
				if err != nil {
					return err
				}
			}
			if flagSet.Changed("threshold") {
				draft.Threshold = threshold
			}
			if action != "" {
				draft.Action, err = parseAction(action)
				if err != nil {
					return err
				}
			}
			if flagSet.Changed("active") {
				draft.Active = active
			}

			rule, err := a.Client.UpdateRule(ctx, id, draft)
			if err != nil {
				return cli.Notice(err)
			}
			fmt.Printf("Updated rule %d: %s over %.1f → %s (active: %t)\n",
				rule.ID, rule.Condition.Label(), rule.Threshold, rule.Action.Label(), rule.Active)
			return nil
		},
	}
}

func rulesDeleteCommand() *cli.Command {
	var app cli.AppConfig

	return &cli.Command{
		Name:    "delete",
		Summary: "Delete an automation rule",
		Usage:   "sentinel rules delete <id>",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("rules delete", pflag.ContinueOnError)
			app.AddFlags(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one argument: the rule ID")
			}
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid rule ID %q", args[0])
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

			if err := a.Client.DeleteRule(ctx, id); err != nil {
				return cli.Notice(err)
			}
			fmt.Printf("Deleted rule %d\n", id)
			return nil
		},
	}
}

// findRule fetches the rule list and returns the rule with the given
// ID. The backend has no single-rule GET, so update reads through the
// list endpoint.
func findRule(ctx context.Context, a *cli.App, id int) (*api.AutomationRule, error) {
	rules, err := a.Client.Rules(ctx, 0)
	if err != nil {
		return nil, cli.Notice(err)
	}
	for i := range rules {
		if rules[i].ID == id {
			return &rules[i], nil
		}
	}
	return nil, fmt.Errorf("no rule with ID %d", id)
}

func buildDraft(condition string, threshold float64, action string, active bool) (api.RuleDraft, error) {
	var draft api.RuleDraft
	var err error
	if condition == "" {
		return draft, fmt.Errorf("--condition is required")
	}
	if action == "" {
		return draft, fmt.Errorf("--action is required")
	}
	draft.Condition, err = parseCondition(condition)
	if err != nil {
		return draft, err
	}
	draft.Action, err = parseAction(action)
	if err != nil {
		return draft, err
	}
	draft.Threshold = threshold
	draft.Active = active
	return draft, nil
}

func parseCondition(value string) (api.RuleCondition, error) {
	for _, condition := range api.Conditions {
		if string(condition) == value {
			return condition, nil
		}
	}
	return "", fmt.Errorf("unknown condition %q (valid: %s)", value, conditionList())
}

func parseAction(value string) (api.RuleAction, error) {
	for _, action := range api.Actions {
		if string(action) == value {
			return action, nil
		}
	}
	return "", fmt.Errorf("unknown action %q (valid: %s)", value, actionList())
}

func conditionList() string {
	names := make([]string, len(api.Conditions))
	for i, condition := range api.Conditions {
		names[i] = string(condition)
	}
	return strings.Join(names, ", ")
}

func actionList() string {
	names := make([]string, len(api.Actions))
	for i, action := range api.Actions {
		names[i] = string(action)
	}
	return strings.Join(names, ", ")
}
