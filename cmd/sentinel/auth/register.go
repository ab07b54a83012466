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

// RegisterCommand returns the "register" command.
func RegisterCommand() *cli.Command {
	var app cli.AppConfig
	var (
		username     string
		phone        string
		passwordFile string
	)

	return &cli.Command{
		Name:    "register",
		Summary: "Create a new account",
		Description: `Create a new account on the backend.

The password is prompted twice and the confirmation must match before
any request is sent. Registration does not log the new account in; run
"sentinel login" afterwards.`,
		Usage: "sentinel register <email> --username <name> [--phone <number>]",
		Examples: []cli.Example{
			{
				Description: "Register a new analyst account",
				Command:     "sentinel register analyst@cybertiba.ke --username analyst",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("register", pflag.ContinueOnError)
			app.AddFlags(flagSet)
			flagSet.StringVar(&username, "username", "", "account username (required)")
			flagSet.StringVar(&phone, "phone", "", "contact phone number")
			flagSet.StringVar(&passwordFile, "password-file", "", "read the password from this file instead of prompting")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one argument: the account email")
			}
			if username == "" {
				return fmt.Errorf("--username is required")
			}
			email := args[0]

			password, err := cli.ReadPassword("Password", passwordFile)
			if err != nil {
				return err
			}
			confirmation := password
			if passwordFile == "" {
				confirmation, err = cli.ReadPassword("Confirm password", "")
				if err != nil {
					return err
				}
			}
			if confirmation != password {
				return fmt.Errorf("passwords do not match")
			}

			a, err := app.Build()
			if err != nil {
				return err
			}
			ctx, cancel := a.Context()
			defer cancel()

			user, err := a.Store.Register(ctx, api.Registration{
				Email:     email,
				Username:  username,
				Password:  password,
				Password2: confirmation,
				Phone:     phone,
			})
			if err != nil {
				fmt.Fprintln(os.Stderr, a.Store.LastError())
				return &cli.ExitError{Code: 1}
			}

			fmt.Printf("Account created: %s <%s>\n", user.Username, user.Email)
			fmt.Println("Run \"sentinel login\" to start a session.")
			return nil
		},
	}
}
