// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

// Package dashui implements the interactive dashboard TUI. Built on
// bubbletea (Elm architecture), it renders the monitoring pages as
// tabs — Dashboard, Monitoring, Automation, Profile — with login and
// register forms shown while no session is held.
//
// The model owns no network goroutines: every backend call runs as a
// tea.Cmd and delivers its result back through the message loop. A
// periodic tick refreshes the visible tab through the client's
// response cache, so switching tabs quickly does not hammer the
// backend.
package dashui
