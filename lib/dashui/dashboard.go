// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/cybertiba/sentinel/api"
	"github.com/cybertiba/sentinel/lib/trend"
)

// sparklineWidth is the column count of each stat card's history
// strip.
const sparklineWidth = 30

// renderDashboard renders the stat cards: system health, one card per
// resource with current usage, change since the previous sample, and
// a sparkline of the history.
func (m *Model) renderDashboard() string {
	if m.stats == nil {
		return lipgloss.NewStyle().Foreground(m.theme.FaintText).
			Render("No metric samples yet. Press c on the Monitoring tab to collect one.")
	}
	stats := m.stats

	healthStyle := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Good)
	if stats.Health == api.HealthWarning {
		healthStyle = lipgloss.NewStyle().Bold(true).Foreground(m.theme.Warning)
	}
	header := fmt.Sprintf("System health: %s   %d samples, updated %s ago",
		healthStyle.Render(string(stats.Health)),
		stats.Samples,
		updateAge(time.Since(stats.LastUpdate)))

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		m.statCard("CPU", stats.CPUUsage, stats.CPUChange, stats.CPUTrend(), history(m.metrics, func(metric api.SystemMetric) float64 { return metric.CPUUsage })),
		" ",
		m.statCard("Memory", stats.MemoryUsage, stats.MemoryChange, stats.MemoryTrend(), history(m.metrics, func(metric api.SystemMetric) float64 { return metric.MemoryUsage })),
		" ",
		m.statCard("Disk", stats.DiskUsage, stats.DiskChange, stats.DiskTrend(), history(m.metrics, func(metric api.SystemMetric) float64 { return metric.DiskUsage })),
	)

	body := header + "\n\n" + cards
	if len(m.rules) > 0 {
		body += "\n\n" + m.renderRecentRules()
	}
	return body
}

// recentRuleCount bounds the rule summary under the stat cards.
const recentRuleCount = 5

// renderRecentRules renders a compact summary of the newest rules so
// the dashboard shows what automation is armed without switching tabs.
func (m *Model) renderRecentRules() string {
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(m.theme.HeaderForeground)
	mutedStyle := lipgloss.NewStyle().Foreground(m.theme.Muted)
	normalStyle := lipgloss.NewStyle().Foreground(m.theme.NormalText)

	lines := []string{sectionStyle.Render("Automation rules")}
	for i, rule := range m.rules {
		if i == recentRuleCount {
			lines = append(lines, mutedStyle.Render(fmt.Sprintf("… and %d more", len(m.rules)-recentRuleCount)))
			break
		}
		line := fmt.Sprintf("%s over %.1f → %s", rule.Condition.Label(), rule.Threshold, rule.Action.Label())
		if rule.Active {
			lines = append(lines, normalStyle.Render(line))
		} else {
			lines = append(lines, mutedStyle.Render(line+" (inactive)"))
		}
	}
	return strings.Join(lines, "\n")
}

// statCard renders one bordered resource card.
func (m *Model) statCard(name string, usage float64, change int, direction trend.Direction, values []float64) string {
	theme := m.theme
	nameStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground)
	usageStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.UsageColor(usage))

	changeColor := theme.FaintText
	switch direction {
	case trend.Up:
		changeColor = theme.Warning
	case trend.Down:
		changeColor = theme.Good
	}
	changeStyle := lipgloss.NewStyle().Foreground(changeColor)

	var body strings.Builder
	body.WriteString(nameStyle.Render(name))
	body.WriteByte('\n')
	body.WriteString(usageStyle.Render(fmt.Sprintf("%.1f%%", usage)))
	body.WriteString("  ")
	body.WriteString(changeStyle.Render(fmt.Sprintf("%s %+d%%", direction.Arrow(), change)))
	body.WriteByte('\n')
	body.WriteString(lipgloss.NewStyle().Foreground(theme.UsageColor(usage)).Render(Sparkline(values, sparklineWidth)))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.BorderColor).
		Padding(0, 1).
		Render(body.String())
}

// history extracts one resource's series oldest-first, the order
// Sparkline wants. The backend returns samples newest first.
func history(metrics []api.SystemMetric, value func(api.SystemMetric) float64) []float64 {
	values := make([]float64, len(metrics))
	for i, metric := range metrics {
		values[len(metrics)-1-i] = value(metric)
	}
	return values
}

// updateAge formats a sample age compactly ("14s", "3m", "2h").
func updateAge(age time.Duration) string {
	switch {
	case age < time.Minute:
		return fmt.Sprintf("%ds", int(age.Seconds()))
	case age < time.Hour:
		return fmt.Sprintf("%dm", int(age.Minutes()))
	default:
		return fmt.Sprintf("%dh", int(age.Hours()))
	}
}
