// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/cybertiba/sentinel/api"
	"github.com/cybertiba/sentinel/cmd/sentinel/cli"
)

// LoginCommand returns the "login" command.
func LoginCommand() *cli.Command {
	var app cli.AppConfig
	var passwordFile string

	return &cli.Command{
		Name:    "login",
		Summary: "Authenticate and persist a session",
		Description: `Authenticate against the backend with an email address and password.

On success the token pair and account record are written to the session
file, so subsequent commands run authenticated without prompting. The
password is read interactively with echo disabled unless --password-file
is given.`,
		Usage: "sentinel login <email> [--password-file <path>]",
		Examples: []cli.Example{
			{
				Description: "Log in interactively",
				Command:     "sentinel login analyst@cybertiba.ke",
			},
			{
				Description: "Log in non-interactively for scripting",
				Command:     "sentinel login analyst@cybertiba.ke --password-file ~/.sentinel-pass",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("login", pflag.ContinueOnError)
			app.AddFlags(flagSet)
			flagSet.StringVar(&passwordFile, "password-file", "", "read the password from this file instead of prompting")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one argument: the account email")
			}
			email := args[0]

			password, err := cli.ReadPassword("Password", passwordFile)
			if err != nil {
				return err
			}

			a, err := app.Build()
			if err != nil {
				return err
			}
			ctx, cancel := a.Context()
			defer cancel()

			if err := a.Store.Login(ctx, api.Credentials{Email: email, Password: password}); err != nil {
				fmt.Fprintln(os.Stderr, a.Store.LastError())
				return &cli.ExitError{Code: 1}
			}

			user := a.Store.CurrentUser()
			fmt.Printf("Logged in as %s <%s>\n", user.Username, user.Email)
			fmt.Printf("Session saved to %s\n", api.SessionFilePath())
			return nil
		},
	}
}
