// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/cybertiba/sentinel/api"
	"github.com/cybertiba/sentinel/cmd/sentinel/cli"
)

// LogoutCommand returns the "logout" command.
func LogoutCommand() *cli.Command {
	var app cli.AppConfig

	return &cli.Command{
		Name:    "logout",
		Summary: "Discard the persisted session",
		Description: `Discard the persisted session and remove the session file.

Logout is local only: the backend is not contacted and outstanding
tokens are left to expire on their own. Running logout without a
session is not an error.`,
		Usage: "sentinel logout",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("logout", pflag.ContinueOnError)
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
			a.Store.Logout()
			fmt.Printf("Logged out; removed %s\n", api.SessionFilePath())
			return nil
		},
	}
}
