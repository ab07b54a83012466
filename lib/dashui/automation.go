// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cybertiba/sentinel/api"
)

// automationRows is how many rows the rule and log tables show.
const automationRows = 8

// ruleForm edits a new or existing automation rule. Condition and
// action are cycled through their vocabularies with the left/right
// keys; threshold is free-form numeric entry.
type ruleForm struct {
	editID    int // 0 for a new rule
	condition int // index into api.Conditions
	action    int // index into api.Actions
	active    bool
	threshold textinput.Model
	focus     int
	notice    string
}

const (
	ruleFieldCondition = iota
	ruleFieldThreshold
	ruleFieldAction
	ruleFieldActive
	ruleFieldCount
)

func newRuleForm(rule *api.AutomationRule) *ruleForm {
	threshold := textinput.New()
	threshold.Placeholder = "threshold"
	threshold.CharLimit = 6

	form := &ruleForm{active: true, threshold: threshold}
	if rule != nil {
		form.editID = rule.ID
		form.active = rule.Active
		form.threshold.SetValue(strconv.FormatFloat(rule.Threshold, 'f', -1, 64))
		for i, condition := range api.Conditions {
			if condition == rule.Condition {
				form.condition = i
			}
		}
		for i, action := range api.Actions {
			if action == rule.Action {
				form.action = i
			}
		}
	}
	return form
}

func (f *ruleForm) update(message tea.Msg) tea.Cmd {
	if f.focus != ruleFieldThreshold {
		return nil
	}
	var command tea.Cmd
	f.threshold, command = f.threshold.Update(message)
	return command
}

func (f *ruleForm) setFocus(index int) {
	f.focus = (index + ruleFieldCount) % ruleFieldCount
	if f.focus == ruleFieldThreshold {
		f.threshold.Focus()
	} else {
		f.threshold.Blur()
	}
}

// draft validates the form and builds the request payload.
func (f *ruleForm) draft() (api.RuleDraft, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(f.threshold.Value()), 64)
	if err != nil {
		return api.RuleDraft{}, fmt.Errorf("threshold must be a number")
	}
	return api.RuleDraft{
		Condition: api.Conditions[f.condition],
		Threshold: value,
		Action:    api.Actions[f.action],
		Active:    f.active,
	}, nil
}

// handleAutomationKeys handles the Automation tab's cursor and rule
// actions.
func (m *Model) handleAutomationKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, m.keys.Up):
		if m.ruleCursor > 0 {
			m.ruleCursor--
		}
		return m, nil
	case key.Matches(message, m.keys.Down):
		if m.ruleCursor < len(m.rules)-1 {
			m.ruleCursor++
		}
		return m, nil

	case key.Matches(message, m.keys.NewRule):
		m.rule = newRuleForm(nil)
		return m, nil

	case key.Matches(message, m.keys.EditRule):
		if rule := m.selectedRule(); rule != nil {
			m.rule = newRuleForm(rule)
		}
		return m, nil

	case key.Matches(message, m.keys.ToggleRule):
		if rule := m.selectedRule(); rule != nil {
			draft := api.RuleDraft{
				Condition: rule.Condition,
				Threshold: rule.Threshold,
				Action:    rule.Action,
				Active:    !rule.Active,
			}
			return m, m.saveRule(rule.ID, draft)
		}
		return m, nil

	case key.Matches(message, m.keys.DeleteRule):
		if rule := m.selectedRule(); rule != nil {
			return m, m.deleteRule(rule.ID)
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) selectedRule() *api.AutomationRule {
	if m.ruleCursor < 0 || m.ruleCursor >= len(m.rules) {
		return nil
	}
	return &m.rules[m.ruleCursor]
}

// updateRuleForm routes input while the rule form is open.
func (m *Model) updateRuleForm(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	form := m.rule
	switch message.String() {
	case "esc":
		m.rule = nil
		return m, nil

	case "tab", "down":
		form.setFocus(form.focus + 1)
		return m, nil
	case "shift+tab", "up":
		form.setFocus(form.focus - 1)
		return m, nil

	case "left", "right":
		delta := 1
		if message.String() == "left" {
			delta = -1
		}
		switch form.focus {
		case ruleFieldCondition:
			form.condition = (form.condition + delta + len(api.Conditions)) % len(api.Conditions)
		case ruleFieldAction:
			form.action = (form.action + delta + len(api.Actions)) % len(api.Actions)
		case ruleFieldActive:
			form.active = !form.active
		}
		if form.focus != ruleFieldThreshold {
			return m, nil
		}

	case " ":
		if form.focus == ruleFieldActive {
			form.active = !form.active
			return m, nil
		}

	case "enter":
		draft, err := form.draft()
		if err != nil {
			form.notice = err.Error()
			return m, nil
		}
		id := form.editID
		m.rule = nil
		return m, m.saveRule(id, draft)
	}
	return m, form.update(message)
}

// saveRule creates (id == 0) or updates a rule and reloads the tab.
func (m *Model) saveRule(id int, draft api.RuleDraft) tea.Cmd {
	m.busy = true
	client := m.client
	return func() tea.Msg {
		var err error
		verb := "updated"
		if id == 0 {
			_, err = client.CreateRule(context.Background(), draft)
			verb = "created"
		} else {
			_, err = client.UpdateRule(context.Background(), id, draft)
		}
		return actionMsg{
			message: fmt.Sprintf("Rule %s: %s over %.1f", verb, draft.Condition.Label(), draft.Threshold),
			reload:  []Tab{TabAutomation},
			err:     err,
		}
	}
}

func (m *Model) deleteRule(id int) tea.Cmd {
	m.busy = true
	client := m.client
	return func() tea.Msg {
		err := client.DeleteRule(context.Background(), id)
		return actionMsg{
			message: fmt.Sprintf("Rule %d deleted", id),
			reload:  []Tab{TabAutomation},
			err:     err,
		}
	}
}

// renderAutomation renders the rule table, the action log, and the
// rule form when open.
func (m *Model) renderAutomation() string {
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(m.theme.HeaderForeground)
	mutedStyle := lipgloss.NewStyle().Foreground(m.theme.Muted)

	ruleRows := make([][]string, len(m.rules))
	for i, rule := range m.rules {
		state := "active"
		if !rule.Active {
			state = mutedStyle.Render("inactive")
		}
		ruleRows[i] = []string{
			strconv.Itoa(rule.ID),
			rule.Condition.Label(),
			fmt.Sprintf("%.1f", rule.Threshold),
			rule.Action.Label(),
			state,
		}
	}
	selected := m.ruleCursor
	if len(m.rules) == 0 {
		selected = -1
	}
	rulesTable := renderTable(m.theme, []column{
		{header: "ID", width: 4},
		{header: "CONDITION", width: 22},
		{header: "THRESHOLD", width: 9},
		{header: "ACTION", width: 16},
		{header: "STATE", width: 8},
	}, ruleRows, selected, automationRows)

	logRows := make([][]string, len(m.logs))
	for i, entry := range m.logs {
		logRows[i] = []string{
			entry.Timestamp.Local().Format(time.TimeOnly),
			entry.Condition,
			fmt.Sprintf("%.1f", entry.Value),
			entry.ActionTaken,
		}
	}
	logsTable := renderTable(m.theme, []column{
		{header: "TIME", width: 8},
		{header: "CONDITION", width: 14},
		{header: "VALUE", width: 6},
		{header: "ACTION", width: 16},
	}, logRows, -1, automationRows)

	body := sectionStyle.Render("Automation rules") + "\n" + rulesTable +
		"\n" + sectionStyle.Render("Action log") + "\n" + logsTable

	if m.rule != nil {
		body += "\n\n" + m.renderRuleForm()
	}
	return body
}

// renderRuleForm renders the open rule editor with the focused field
// highlighted.
func (m *Model) renderRuleForm() string {
	form := m.rule
	theme := m.theme
	labelStyle := lipgloss.NewStyle().Foreground(theme.FieldLabel)
	focusedStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.FieldFocused)
	normalStyle := lipgloss.NewStyle().Foreground(theme.NormalText)

	render := func(field int, value string) string {
		if form.focus == field {
			return focusedStyle.Render("‹" + value + "›")
		}
		return normalStyle.Render(value)
	}

	title := "New rule"
	if form.editID != 0 {
		title = fmt.Sprintf("Edit rule %d", form.editID)
	}

	active := "yes"
	if !form.active {
		active = "no"
	}

	lines := []string{
		lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground).Render(title),
		labelStyle.Render("Condition: ") + render(ruleFieldCondition, api.Conditions[form.condition].Label()),
		labelStyle.Render("Threshold: ") + form.threshold.View(),
		labelStyle.Render("Action:    ") + render(ruleFieldAction, api.Actions[form.action].Label()),
		labelStyle.Render("Active:    ") + render(ruleFieldActive, active),
	}
	if form.notice != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.NoticeError).Render(form.notice))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.BorderColor).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}
