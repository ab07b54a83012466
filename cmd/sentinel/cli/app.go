// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/pflag"

	"github.com/cybertiba/sentinel/api"
	"github.com/cybertiba/sentinel/lib/cache"
	"github.com/cybertiba/sentinel/lib/clock"
	"github.com/cybertiba/sentinel/lib/config"
)

// App assembles the client stack for a command: configuration, HTTP
// client, response cache, and session store. It is constructed once at
// the application root and passed to whatever issues backend calls —
// there is no package-level session state.
type App struct {
	Config config.Config
	Client *api.Client
	Store  *api.Store
	Logger *slog.Logger
}

// AppConfig holds the shared flags for commands that talk to the
// backend.
//
// Usage pattern:
//
//	var app cli.AppConfig
//	command := &cli.Command{
//	    Flags: func() *pflag.FlagSet {
//	        fs := pflag.NewFlagSet("mycommand", pflag.ContinueOnError)
//	        app.AddFlags(fs)
//	        return fs
//	    },
//	    Run: func(args []string) error {
//	        a, err := app.Build()
//	        ...
//	    },
//	}
type AppConfig struct {
	ConfigFile string
	BaseURL    string
	Verbose    bool
}

// AddFlags registers --config, --backend, and --verbose on the given
// flag set.
func (c *AppConfig) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&c.ConfigFile, "config", "", "path to config file (default: $SENTINEL_CONFIG or ~/.config/sentinel/config.yaml)")
	flagSet.StringVar(&c.BaseURL, "backend", "", "backend base URL (overrides config file)")
	flagSet.BoolVar(&c.Verbose, "verbose", false, "enable debug logging")
}

// Build loads the configuration, constructs the client stack, and
// rehydrates any persisted session. The restored token is not
// validated — an expired one is discovered and refreshed on first use.
func (c *AppConfig) Build() (*App, error) {
	configuration, err := config.Load(c.ConfigFile)
	if err != nil {
		return nil, err
	}
	if c.BaseURL != "" {
		configuration.API.BaseURL = c.BaseURL
	}

	level := slog.LevelWarn
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	client, err := api.NewClient(api.ClientConfig{
		BaseURL:    configuration.API.BaseURL,
		HTTPClient: &http.Client{Timeout: configuration.API.Timeout()},
		Logger:     logger,
		Cache:      cache.New(clock.Real()),
		MetricsTTL: configuration.Cache.MetricsTTL(),
		RulesTTL:   configuration.Cache.RulesTTL(),
	})
	if err != nil {
		return nil, err
	}

	store, err := api.NewStore(api.StoreConfig{Client: client, Logger: logger})
	if err != nil {
		return nil, err
	}
	if err := store.Initialize(); err != nil {
		return nil, err
	}

	return &App{
		Config: configuration,
		Client: client,
		Store:  store,
		Logger: logger,
	}, nil
}

// RequireAuth returns a clear error directing the user to "sentinel
// login" when no session is held.
func (a *App) RequireAuth() error {
	if !a.Store.IsAuthenticated() {
		return fmt.Errorf("no session found at %s — run \"sentinel login\" first", api.SessionFilePath())
	}
	return nil
}

// Context returns a context bounded by the configured request timeout.
func (a *App) Context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), a.Config.API.Timeout())
}

// Notice prints a classified, user-facing message for a failed backend
// call and returns an ExitError so main does not repeat the raw error.
func Notice(err error) error {
	fmt.Fprintln(os.Stderr, api.Notice(err))
	return &ExitError{Code: 1}
}
