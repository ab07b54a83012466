// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

// Package api is the client for the CyberTiba monitoring backend.
//
// Client performs the HTTP calls: it attaches the current bearer token,
// classifies error responses into user-facing notices, and on a 401
// asks the session store to refresh the access token and retries the
// request exactly once. Store is the single source of truth for the
// current session (user, token pair, authenticated flag); it persists a
// snapshot to disk so a restart picks up where the last run left off.
//
// Read-heavy endpoints (metric history, rule lists) go through an
// in-memory response cache with a bounded freshness window; everything
// else hits the network directly.
package api
