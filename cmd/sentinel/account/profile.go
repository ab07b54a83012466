// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

// Package account implements the "profile" command group for viewing
// and editing the authenticated account.
package account

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/cybertiba/sentinel/api"
	"github.com/cybertiba/sentinel/cmd/sentinel/cli"
)

// ProfileCommand returns the "profile" parent command.
func ProfileCommand() *cli.Command {
	return &cli.Command{
		Name:    "profile",
		Summary: "View and edit the account profile",
		Subcommands: []*cli.Command{
			profileShowCommand(),
			profileUpdateCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "Show the current profile",
				Command:     "sentinel profile show",
			},
			{
				Description: "Change the contact phone number",
				Command:     "sentinel profile update --phone +254700000000",
			},
		},
	}
}

func profileShowCommand() *cli.Command {
	var app cli.AppConfig
	var jsonOutput bool

	return &cli.Command{
		Name:    "show",
		Summary: "Show the account profile",
		Description: `Fetch and show the account profile from the backend. Unlike
"whoami", this always contacts the backend rather than reading the
session file.`,
		Usage: "sentinel profile show [--json]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("profile show", pflag.ContinueOnError)
			app.AddFlags(flagSet)
			flagSet.BoolVar(&jsonOutput, "json", false, "emit JSON instead of text")
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

			user, err := a.Store.Profile(ctx)
			if err != nil {
				return cli.Notice(err)
			}

			if jsonOutput {
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				return encoder.Encode(user)
			}

			fmt.Printf("Username: %s\n", user.Username)
			fmt.Printf("Email:    %s\n", user.Email)
			if user.Phone != "" {
				fmt.Printf("Phone:    %s\n", user.Phone)
			}
			return nil
		},
	}
}

func profileUpdateCommand() *cli.Command {
	var app cli.AppConfig
	var (
		flagSet  *pflag.FlagSet
		username string
		email    string
		phone    string
	)

	return &cli.Command{
		Name:    "update",
		Summary: "Edit the account profile",
		Description: `Update profile fields. Unspecified flags keep their current
values. The persisted session is updated with the saved profile.`,
		Usage: "sentinel profile update [--username <name>] [--email <address>] [--phone <number>]",
		Flags: func() *pflag.FlagSet {
			flagSet = pflag.NewFlagSet("profile update", pflag.ContinueOnError)
			app.AddFlags(flagSet)
			flagSet.StringVar(&username, "username", "", "new username")
			flagSet.StringVar(&email, "email", "", "new email address")
			flagSet.StringVar(&phone, "phone", "", "new phone number (pass an empty value to clear)")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}
			if !flagSet.Changed("username") && !flagSet.Changed("email") && !flagSet.Changed("phone") {
				return fmt.Errorf("nothing to update: pass at least one of --username, --email, --phone")
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

			current, err := a.Store.Profile(ctx)
			if err != nil {
				return cli.Notice(err)
			}

			update := api.ProfileUpdate{
				Username: current.Username,
				Email:    current.Email,
				Phone:    current.Phone,
			}
			if flagSet.Changed("username") {
				update.Username = username
			}
			if flagSet.Changed("email") {
				update.Email = email
			}
			if flagSet.Changed("phone") {
				update.Phone = phone
			}

			user, err := a.Store.UpdateProfile(ctx, update)
			if err != nil {
				return cli.Notice(err)
			}
			fmt.Printf("Profile saved: %s <%s>\n", user.Username, user.Email)
			return nil
		},
	}
}
