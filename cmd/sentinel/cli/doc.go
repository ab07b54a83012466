// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command framework for the sentinel binary:
// a tree of Commands with structured help, typo suggestions, and flag
// parsing, plus the App wiring that assembles the client stack
// (config, HTTP client, response cache, session store) for commands
// that talk to the backend.
package cli
