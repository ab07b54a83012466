// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cybertiba/sentinel/api"
)

// profileForm edits the account's username, email, and phone.
type profileForm struct {
	inputs []textinput.Model
	focus  int
	notice string
}

const (
	profileFieldUsername = iota
	profileFieldEmail
	profileFieldPhone
)

func newProfileForm(user *api.User) *profileForm {
	placeholders := []string{"username", "email", "phone"}
	inputs := make([]textinput.Model, len(placeholders))
	for i, placeholder := range placeholders {
		input := textinput.New()
		input.Placeholder = placeholder
		input.CharLimit = 120
		inputs[i] = input
	}
	if user != nil {
		inputs[profileFieldUsername].SetValue(user.Username)
		inputs[profileFieldEmail].SetValue(user.Email)
		inputs[profileFieldPhone].SetValue(user.Phone)
	}
	inputs[0].Focus()
	return &profileForm{inputs: inputs}
}

func (f *profileForm) update(message tea.Msg) tea.Cmd {
	var command tea.Cmd
	f.inputs[f.focus], command = f.inputs[f.focus].Update(message)
	return command
}

func (f *profileForm) setFocus(index int) {
	f.focus = (index + len(f.inputs)) % len(f.inputs)
	for i := range f.inputs {
		if i == f.focus {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}

// handleProfileKeys handles the Profile tab's action keys.
func (m *Model) handleProfileKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(message, m.keys.EditProfile) {
		m.edit = newProfileForm(m.profile)
		return m, textinput.Blink
	}
	return m, nil
}

// updateProfileForm routes input while the profile editor is open.
func (m *Model) updateProfileForm(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	form := m.edit
	switch message.String() {
	case "esc":
		m.edit = nil
		return m, nil

	case "tab", "down":
		form.setFocus(form.focus + 1)
		return m, nil
	case "shift+tab", "up":
		form.setFocus(form.focus - 1)
		return m, nil

	case "enter":
		if form.focus < len(form.inputs)-1 {
			form.setFocus(form.focus + 1)
			return m, nil
		}
		update := api.ProfileUpdate{
			Username: strings.TrimSpace(form.inputs[profileFieldUsername].Value()),
			Email:    strings.TrimSpace(form.inputs[profileFieldEmail].Value()),
			Phone:    strings.TrimSpace(form.inputs[profileFieldPhone].Value()),
		}
		if update.Username == "" || update.Email == "" {
			form.notice = "Username and email are required."
			return m, nil
		}
		m.edit = nil
		return m, m.saveProfile(update)
	}
	return m, form.update(message)
}

func (m *Model) saveProfile(update api.ProfileUpdate) tea.Cmd {
	m.busy = true
	store := m.store
	return func() tea.Msg {
		_, err := store.UpdateProfile(context.Background(), update)
		return actionMsg{
			message: "Profile saved",
			reload:  []Tab{TabProfile},
			err:     err,
		}
	}
}

// renderProfile renders the account record, or the editor when open.
func (m *Model) renderProfile() string {
	theme := m.theme

	if m.edit != nil {
		labelStyle := lipgloss.NewStyle().Foreground(theme.FieldLabel)
		lines := []string{
			lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground).Render("Edit profile"),
			labelStyle.Render("Username: ") + m.edit.inputs[profileFieldUsername].View(),
			labelStyle.Render("Email:    ") + m.edit.inputs[profileFieldEmail].View(),
			labelStyle.Render("Phone:    ") + m.edit.inputs[profileFieldPhone].View(),
		}
		if m.edit.notice != "" {
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.NoticeError).Render(m.edit.notice))
		}
		return lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.BorderColor).
			Padding(0, 1).
			Render(strings.Join(lines, "\n"))
	}

	if m.profile == nil {
		return lipgloss.NewStyle().Foreground(theme.FaintText).Render("Loading profile…")
	}

	labelStyle := lipgloss.NewStyle().Foreground(theme.FaintText)
	valueStyle := lipgloss.NewStyle().Foreground(theme.NormalText)
	phone := m.profile.Phone
	if phone == "" {
		phone = "—"
	}
	lines := []string{
		labelStyle.Render("Username: ") + valueStyle.Render(m.profile.Username),
		labelStyle.Render("Email:    ") + valueStyle.Render(m.profile.Email),
		labelStyle.Render("Phone:    ") + valueStyle.Render(phone),
	}
	return strings.Join(lines, "\n")
}
