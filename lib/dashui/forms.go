// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cybertiba/sentinel/api"
)

// switchToRegisterKey moves from the login form to the register form.
// A plain letter cannot serve here because the fields capture text.
const switchToRegisterKey = "ctrl+r"

// loginForm is the email/password entry shown while no session is
// held.
type loginForm struct {
	theme  Theme
	inputs []textinput.Model
	focus  int
	notice string
}

const (
	loginFieldEmail = iota
	loginFieldPassword
)

func newLoginForm(theme Theme) *loginForm {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 120
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 120
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return &loginForm{
		theme:  theme,
		inputs: []textinput.Model{email, password},
	}
}

func (f *loginForm) focusCmd() tea.Cmd {
	return textinput.Blink
}

// update forwards a message to the focused input.
func (f *loginForm) update(message tea.Msg) tea.Cmd {
	var command tea.Cmd
	f.inputs[f.focus], command = f.inputs[f.focus].Update(message)
	return command
}

func (f *loginForm) setFocus(index int) {
	f.focus = (index + len(f.inputs)) % len(f.inputs)
	for i := range f.inputs {
		if i == f.focus {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}

// updateLoginView handles keys on the login screen.
func (m *Model) updateLoginView(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	form := m.login
	switch message.String() {
	case switchToRegisterKey:
		m.view = ViewRegister
		m.register = newRegisterForm(m.theme)
		return m, m.register.focusCmd()

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
		return m, m.submitLogin()
	}
	return m, form.update(message)
}

// submitLogin validates locally and issues the login call.
func (m *Model) submitLogin() tea.Cmd {
	form := m.login
	email := strings.TrimSpace(form.inputs[loginFieldEmail].Value())
	password := form.inputs[loginFieldPassword].Value()
	if email == "" || password == "" {
		form.notice = "Email and password are required."
		return nil
	}
	form.notice = ""
	m.busy = true

	store := m.store
	return func() tea.Msg {
		err := store.Login(context.Background(), api.Credentials{
			Email:    email,
			Password: password,
		})
		return authMsg{err: err}
	}
}

// registerForm is the account-creation entry.
type registerForm struct {
	theme  Theme
	inputs []textinput.Model
	focus  int
	notice string
}

const (
	registerFieldEmail = iota
	registerFieldUsername
	registerFieldPhone
	registerFieldPassword
	registerFieldConfirm
)

func newRegisterForm(theme Theme) *registerForm {
	placeholders := []string{"email", "username", "phone (optional)", "password", "confirm password"}
	inputs := make([]textinput.Model, len(placeholders))
	for i, placeholder := range placeholders {
		input := textinput.New()
		input.Placeholder = placeholder
		input.CharLimit = 120
		if i >= registerFieldPassword {
			input.EchoMode = textinput.EchoPassword
			input.EchoCharacter = '•'
		}
		inputs[i] = input
	}
	inputs[0].Focus()
	return &registerForm{theme: theme, inputs: inputs}
}

func (f *registerForm) focusCmd() tea.Cmd {
	return textinput.Blink
}

func (f *registerForm) update(message tea.Msg) tea.Cmd {
	var command tea.Cmd
	f.inputs[f.focus], command = f.inputs[f.focus].Update(message)
	return command
}

func (f *registerForm) setFocus(index int) {
	f.focus = (index + len(f.inputs)) % len(f.inputs)
	for i := range f.inputs {
		if i == f.focus {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}

// updateRegisterView handles keys on the register screen. Escape
// returns to the login form.
func (m *Model) updateRegisterView(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	form := m.register
	switch message.String() {
	case "esc":
		m.view = ViewLogin
		m.login = newLoginForm(m.theme)
		m.register = nil
		return m, m.login.focusCmd()

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
		return m, m.submitRegister()
	}
	return m, form.update(message)
}

// submitRegister validates locally — including the password
// confirmation, which never reaches the backend when it mismatches —
// and issues the register call.
func (m *Model) submitRegister() tea.Cmd {
	form := m.register
	registration := api.Registration{
		Email:     strings.TrimSpace(form.inputs[registerFieldEmail].Value()),
		Username:  strings.TrimSpace(form.inputs[registerFieldUsername].Value()),
		Phone:     strings.TrimSpace(form.inputs[registerFieldPhone].Value()),
		Password:  form.inputs[registerFieldPassword].Value(),
		Password2: form.inputs[registerFieldConfirm].Value(),
	}
	if registration.Email == "" || registration.Username == "" || registration.Password == "" {
		form.notice = "Email, username, and password are required."
		return nil
	}
	if registration.Password != registration.Password2 {
		form.notice = "Passwords do not match."
		return nil
	}
	form.notice = ""
	m.busy = true

	store := m.store
	return func() tea.Msg {
		_, err := store.Register(context.Background(), registration)
		return authMsg{register: true, err: err}
	}
}

// handleAuthResult applies a completed login or register attempt. The
// attempt's form may have been dismissed while the request was in
// flight (escape returns to the login view immediately), so the result
// lands on whichever auth form is active rather than the one that
// issued it.
func (m *Model) handleAuthResult(message authMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	if message.err != nil {
		// The store recorded the classified message.
		notice := m.store.LastError()
		if notice == "" {
			notice = api.Notice(message.err)
		}
		switch {
		case message.register && m.register != nil:
			m.register.notice = notice
		case !message.register && m.login != nil:
			m.login.notice = notice
		case m.register != nil:
			m.register.notice = notice
		case m.login != nil:
			m.login.notice = notice
		default:
			return m, m.setNotice(notice, true)
		}
		return m, nil
	}

	if message.register {
		// Registration does not authenticate; return to login with a
		// success note.
		m.view = ViewLogin
		m.login = newLoginForm(m.theme)
		m.login.notice = "Account created. Please log in."
		m.register = nil
		return m, m.login.focusCmd()
	}

	m.view = ViewMain
	m.tab = TabDashboard
	m.profile = m.store.CurrentUser()
	m.login = nil
	return m, m.fetchTab(TabDashboard, false)
}

// renderAuthForm renders a centered bordered form with a title, the
// fields, a notice line, and a help line.
func (m *Model) renderAuthForm(title string, inputs []textinput.Model, notice, help string) string {
	theme := m.theme
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground)
	noticeStyle := lipgloss.NewStyle().Foreground(theme.NoticeError)
	if strings.HasPrefix(notice, "Account created") || strings.HasPrefix(notice, "Logged out") {
		noticeStyle = lipgloss.NewStyle().Foreground(theme.NoticeSuccess)
	}
	helpStyle := lipgloss.NewStyle().Foreground(theme.HelpText)

	var body strings.Builder
	body.WriteString(titleStyle.Render(title))
	body.WriteString("\n\n")
	for i := range inputs {
		body.WriteString(inputs[i].View())
		body.WriteByte('\n')
	}
	if notice != "" {
		body.WriteByte('\n')
		body.WriteString(noticeStyle.Render(notice))
		body.WriteByte('\n')
	}
	body.WriteByte('\n')
	body.WriteString(helpStyle.Render(help))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.BorderColor).
		Padding(1, 2).
		Render(body.String())

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}
