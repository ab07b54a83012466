// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

// Package automation implements the "rules" and "logs" command groups
// for managing threshold rules and reviewing the actions they took.
package automation
