// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/cybertiba/sentinel/cmd/sentinel/cli"
)

// WhoamiCommand returns the "whoami" command.
func WhoamiCommand() *cli.Command {
	var app cli.AppConfig
	var verify bool

	return &cli.Command{
		Name:    "whoami",
		Summary: "Show the current session",
		Description: `Show the account held by the persisted session.

By default the session file is reported as-is without contacting the
backend. With --verify, the profile endpoint is called so an expired
token is refreshed (or the stale session rejected) before reporting.`,
		Usage: "sentinel whoami [--verify]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("whoami", pflag.ContinueOnError)
			app.AddFlags(flagSet)
			flagSet.BoolVar(&verify, "verify", false, "validate the session against the backend")
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

			user := a.Store.CurrentUser()
			if verify {
				ctx, cancel := a.Context()
				defer cancel()
				user, err = a.Store.Profile(ctx)
				if err != nil {
					return cli.Notice(err)
				}
			}

			fmt.Printf("%s <%s>\n", user.Username, user.Email)
			if user.Phone != "" {
				fmt.Printf("Phone: %s\n", user.Phone)
			}
			return nil
		},
	}
}
