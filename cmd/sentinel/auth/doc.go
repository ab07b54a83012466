// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

// Package auth implements the session commands: login, register,
// logout, and whoami.
package auth
