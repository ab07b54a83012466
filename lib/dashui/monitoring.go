// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cybertiba/sentinel/api"
)

// monitoringRows is how many rows each of the two tables shows.
const monitoringRows = 8

// pingForm is the single-field target entry opened with "p".
type pingForm struct {
	input  textinput.Model
	notice string
}

func newPingForm() *pingForm {
	input := textinput.New()
	input.Placeholder = "target IP address"
	input.CharLimit = 45
	input.Focus()
	return &pingForm{input: input}
}

func (f *pingForm) update(message tea.Msg) tea.Cmd {
	var command tea.Cmd
	f.input, command = f.input.Update(message)
	return command
}

// handleMonitoringKeys handles the Monitoring tab's action keys and
// cursor movement through the metric history.
func (m *Model) handleMonitoringKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, m.keys.Up):
		if m.metricCursor > 0 {
			m.metricCursor--
		}
		return m, nil
	case key.Matches(message, m.keys.Down):
		if m.metricCursor < len(m.metrics)-1 {
			m.metricCursor++
		}
		return m, nil
	case key.Matches(message, m.keys.Collect):
		return m, m.collectMetrics()
	case key.Matches(message, m.keys.Ping):
		m.ping = newPingForm()
		return m, textinput.Blink
	}
	return m, nil
}

// updatePingForm routes input while the ping form is open.
func (m *Model) updatePingForm(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	form := m.ping
	switch message.String() {
	case "esc":
		m.ping = nil
		return m, nil
	case "enter":
		ip := strings.TrimSpace(form.input.Value())
		if net.ParseIP(ip) == nil {
			form.notice = fmt.Sprintf("Invalid IP address: %q", ip)
			return m, nil
		}
		m.ping = nil
		return m, m.runPing(ip)
	}
	return m, form.update(message)
}

func (m *Model) collectMetrics() tea.Cmd {
	m.busy = true
	client := m.client
	return func() tea.Msg {
		message, err := client.CollectMetrics(context.Background())
		return actionMsg{message: message, reload: []Tab{TabMonitoring}, err: err}
	}
}

func (m *Model) runPing(ip string) tea.Cmd {
	m.busy = true
	client := m.client
	return func() tea.Msg {
		message, err := client.RunPing(context.Background(), ip)
		return actionMsg{message: message, reload: []Tab{TabMonitoring}, err: err}
	}
}

// renderMonitoring renders the metric history and probe results side
// by side, plus the ping form when open.
func (m *Model) renderMonitoring() string {
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(m.theme.HeaderForeground)

	metricRows := make([][]string, len(m.metrics))
	for i, metric := range m.metrics {
		metricRows[i] = []string{
			metric.Timestamp.Local().Format(time.TimeOnly),
			fmt.Sprintf("%.1f%%", metric.CPUUsage),
			fmt.Sprintf("%.1f%%", metric.MemoryUsage),
			fmt.Sprintf("%.1f%%", metric.DiskUsage),
		}
	}
	selected := m.metricCursor
	if len(metricRows) == 0 {
		selected = -1
	}
	metricsTable := renderTable(m.theme, []column{
		{header: "TIME", width: 8},
		{header: "CPU", width: 7},
		{header: "MEMORY", width: 7},
		{header: "DISK", width: 7},
	}, metricRows, selected, monitoringRows)

	pingRows := make([][]string, len(m.pings))
	for i, ping := range m.pings {
		status := "unreachable"
		latency := "-"
		if ping.Reachable {
			status = "reachable"
			latency = fmt.Sprintf("%.1f ms", ping.Latency)
		}
		pingRows[i] = []string{
			ping.Timestamp.Local().Format(time.TimeOnly),
			ping.TargetIP,
			status,
			latency,
		}
	}
	pingsTable := renderTable(m.theme, []column{
		{header: "TIME", width: 8},
		{header: "TARGET", width: 15},
		{header: "STATUS", width: 11},
		{header: "LATENCY", width: 9},
	}, pingRows, -1, monitoringRows)

	spark := ""
	if len(m.metrics) > 0 {
		labelStyle := lipgloss.NewStyle().Foreground(m.theme.FaintText)
		spark = labelStyle.Render("cpu ") + Sparkline(history(m.metrics, func(metric api.SystemMetric) float64 { return metric.CPUUsage }), sparklineWidth) + "\n" +
			labelStyle.Render("mem ") + Sparkline(history(m.metrics, func(metric api.SystemMetric) float64 { return metric.MemoryUsage }), sparklineWidth) + "\n"
	}

	left := sectionStyle.Render("Metric history") + "\n" + spark + metricsTable
	right := sectionStyle.Render("Ping tests") + "\n" + pingsTable
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right)

	if m.ping != nil {
		form := "Ping target: " + m.ping.input.View()
		if m.ping.notice != "" {
			form += "\n" + lipgloss.NewStyle().Foreground(m.theme.NoticeError).Render(m.ping.notice)
		}
		body += "\n\n" + form
	}
	return body
}
