// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string

	root := &Command{
		Name: "sentinel",
		Subcommands: []*Command{
			{
				Name: "version",
				Run: func(args []string) error {
					called = "version"
					return nil
				},
			},
			{
				Name: "metrics",
				Run: func(args []string) error {
					called = "metrics"
					return nil
				},
			},
		},
	}

	if err := root.Execute([]string{"metrics"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "metrics" {
		t.Errorf("dispatched to %q, want %q", called, "metrics")
	}
}

func TestCommand_Execute_NestedSubcommands(t *testing.T) {
	var called string
	var receivedArgs []string

	root := &Command{
		Name: "sentinel",
		Subcommands: []*Command{
			{
				Name: "ping",
				Subcommands: []*Command{
					{
						Name: "run",
						Run: func(args []string) error {
							called = "ping run"
							receivedArgs = args
							return nil
						},
					},
				},
			},
		},
	}

	if err := root.Execute([]string{"ping", "run", "10.0.0.7"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "ping run" {
		t.Errorf("dispatched to %q, want %q", called, "ping run")
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "10.0.0.7" {
		t.Errorf("args = %v, want [10.0.0.7]", receivedArgs)
	}
}

func TestCommand_Execute_FlagParsing(t *testing.T) {
	var limit int
	var target string

	command := &Command{
		Name: "list",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("list", pflag.ContinueOnError)
			flagSet.IntVar(&limit, "limit", 20, "row limit")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				target = args[0]
			}
			return nil
		},
	}

	if err := command.Execute([]string{"--limit", "5", "extra"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if limit != 5 {
		t.Errorf("limit = %d, want 5", limit)
	}
	if target != "extra" {
		t.Errorf("target = %q, want %q", target, "extra")
	}
}

func TestCommand_Execute_UnknownFlagSuggestion(t *testing.T) {
	command := &Command{
		Name: "list",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("list", pflag.ContinueOnError)
			flagSet.Int("limit", 20, "row limit")
			flagSet.Bool("json", false, "JSON output")
			return flagSet
		},
		Run: func(args []string) error { return nil },
	}

	err := command.Execute([]string{"--limti"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown flag")
	}
	errStr := err.Error()
	if !strings.Contains(errStr, "did you mean --limit") {
		t.Errorf("error = %q, want suggestion for '--limit'", errStr)
	}
	if !strings.Contains(errStr, "limti") {
		t.Errorf("error = %q, should mention the bad flag", errStr)
	}
	if !strings.Contains(errStr, "--help") {
		t.Errorf("error = %q, should point to --help", errStr)
	}
}

func TestCommand_Execute_UnknownFlagNoSuggestion(t *testing.T) {
	command := &Command{
		Name: "list",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("list", pflag.ContinueOnError)
			flagSet.Int("limit", 20, "row limit")
			return flagSet
		},
		Run: func(args []string) error { return nil },
	}

	err := command.Execute([]string{"--zzzzzzzzz"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown flag")
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %q, should not suggest for distant flag", err.Error())
	}
}

func TestCommand_Execute_UnknownSubcommandSuggestion(t *testing.T) {
	root := &Command{
		Name: "sentinel",
		Subcommands: []*Command{
			{Name: "metrics"},
			{Name: "rules"},
			{Name: "dashboard"},
		},
	}

	err := root.Execute([]string{"metrcs"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown subcommand")
	}
	if !strings.Contains(err.Error(), "did you mean \"metrics\"") {
		t.Errorf("error = %q, want suggestion for 'metrics'", err.Error())
	}
}

func TestCommand_Execute_UnknownSubcommandNoSuggestion(t *testing.T) {
	root := &Command{
		Name: "sentinel",
		Subcommands: []*Command{
			{Name: "metrics"},
			{Name: "rules"},
		},
	}

	err := root.Execute([]string{"zzzzzzz"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown subcommand")
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %q, should not contain suggestion for distant input", err.Error())
	}
}

func TestCommand_Execute_HelpFlag(t *testing.T) {
	for _, helpArg := range []string{"-h", "--help", "help"} {
		t.Run(helpArg, func(t *testing.T) {
			root := &Command{
				Name:    "sentinel",
				Summary: "Security monitoring client",
				Subcommands: []*Command{
					{Name: "metrics", Summary: "Metric history"},
				},
			}

			if err := root.Execute([]string{helpArg}); err != nil {
				t.Errorf("Execute(%q) error: %v", helpArg, err)
			}
		})
	}
}

func TestCommand_Execute_NoArgsShowsHelp(t *testing.T) {
	root := &Command{
		Name: "sentinel",
		Subcommands: []*Command{
			{Name: "metrics", Summary: "Metric history"},
		},
	}

	err := root.Execute([]string{})
	if err == nil {
		t.Fatal("Execute() = nil, want error for missing subcommand")
	}
	if !strings.Contains(err.Error(), "subcommand required") {
		t.Errorf("error = %q, want 'subcommand required'", err.Error())
	}
}

func TestCommand_PrintHelp(t *testing.T) {
	command := &Command{
		Name:        "sentinel",
		Description: "Security monitoring dashboard client.",
		Subcommands: []*Command{
			{Name: "metrics", Summary: "List and collect system metrics"},
			{Name: "rules", Summary: "Manage automation rules"},
		},
		Examples: []Example{
			{Description: "Show recent samples", Command: "sentinel metrics list"},
		},
	}

	var buffer bytes.Buffer
	command.PrintHelp(&buffer)
	output := buffer.String()

	for _, want := range []string{
		"Security monitoring dashboard client.",
		"metrics",
		"List and collect system metrics",
		"rules",
		"sentinel metrics list",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("help output missing %q:\n%s", want, output)
		}
	}
}
