// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

// Package monitoring implements the "metrics" and "ping" command
// groups: listing the collected history and triggering new samples or
// reachability probes.
package monitoring
