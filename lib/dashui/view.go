// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the active screen.
func (m *Model) View() string {
	switch m.view {
	case ViewLogin:
		return m.renderAuthForm("Sentinel — Sign In",
			m.login.inputs, m.login.notice,
			"enter: sign in · "+switchToRegisterKey+": create account · ctrl+c: quit")
	case ViewRegister:
		return m.renderAuthForm("Sentinel — Create Account",
			m.register.inputs, m.register.notice,
			"enter: create · esc: back to sign in · ctrl+c: quit")
	}

	var sections []string
	sections = append(sections, m.renderTabBar())

	switch m.tab {
	case TabDashboard:
		sections = append(sections, m.renderDashboard())
	case TabMonitoring:
		sections = append(sections, m.renderMonitoring())
	case TabAutomation:
		sections = append(sections, m.renderAutomation())
	case TabProfile:
		sections = append(sections, m.renderProfile())
	}

	sections = append(sections, m.renderStatusBar())
	return strings.Join(sections, "\n")
}

// renderTabBar renders the tab strip with the active tab highlighted.
func (m *Model) renderTabBar() string {
	activeStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(m.theme.SelectedForeground).
		Background(m.theme.SelectedBackground).
		Padding(0, 1)
	inactiveStyle := lipgloss.NewStyle().
		Foreground(m.theme.FaintText).
		Padding(0, 1)

	tabs := make([]string, tabCount)
	for i := 0; i < tabCount; i++ {
		tab := Tab(i)
		label := fmt.Sprintf("%d %s", i+1, tab)
		if tab == m.tab {
			tabs[i] = activeStyle.Render(label)
		} else {
			tabs[i] = inactiveStyle.Render(label)
		}
	}

	user := ""
	if m.profile != nil {
		user = lipgloss.NewStyle().Foreground(m.theme.FaintText).Render(m.profile.Username)
	}
	bar := strings.Join(tabs, " ")
	if user != "" {
		gap := m.width - lipgloss.Width(bar) - lipgloss.Width(user) - 1
		if gap > 0 {
			bar += strings.Repeat(" ", gap) + user
		}
	}
	return bar + "\n"
}

// renderStatusBar renders the bottom line: transient notices on the
// left, the key help for the visible tab on the right.
func (m *Model) renderStatusBar() string {
	helpStyle := lipgloss.NewStyle().Foreground(m.theme.HelpText)

	left := ""
	switch {
	case m.notice != "":
		style := lipgloss.NewStyle().Foreground(m.theme.NoticeSuccess)
		if m.noticeIsError {
			style = lipgloss.NewStyle().Foreground(m.theme.NoticeError)
		}
		left = style.Render(m.notice)
	case m.busy:
		left = helpStyle.Render("loading…")
	}

	right := helpStyle.Render(m.tabHelp())
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m *Model) tabHelp() string {
	if m.rule != nil || m.ping != nil || m.edit != nil {
		return "enter: submit · esc: cancel"
	}
	switch m.tab {
	case TabMonitoring:
		return "j/k: scroll · c: collect · p: ping · r: refresh · q: quit"
	case TabAutomation:
		return "n: new · e: edit · space: toggle · d: delete · r: refresh · q: quit"
	case TabProfile:
		return "e: edit · ctrl+l: log out · q: quit"
	default:
		return "1-4: tabs · r: refresh · q: quit"
	}
}
