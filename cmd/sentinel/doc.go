// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

// Sentinel is the terminal client for the CyberTiba security-monitoring
// service. It provides subcommands for account sessions (login, register,
// logout, whoami), system metrics and reachability probes (metrics, ping),
// automation rules and their action log (rules, logs), profile management
// (profile), and the full-screen dashboard TUI (dashboard).
package main
