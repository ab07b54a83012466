// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cybertiba/sentinel/api"
)

// View identifies the top-level screen.
type View int

const (
	// ViewLogin shows the login form. Active whenever no session is
	// held, including after a failed token refresh mid-session.
	ViewLogin View = iota
	// ViewRegister shows the account-creation form.
	ViewRegister
	// ViewMain shows the tabbed dashboard.
	ViewMain
)

// Tab identifies which dashboard page is visible.
type Tab int

const (
	TabDashboard Tab = iota
	TabMonitoring
	TabAutomation
	TabProfile
)

// tabCount is the number of tabs cycled by the next-tab key.
const tabCount = 4

func (t Tab) String() string {
	switch t {
	case TabDashboard:
		return "Dashboard"
	case TabMonitoring:
		return "Monitoring"
	case TabAutomation:
		return "Automation"
	case TabProfile:
		return "Profile"
	default:
		return "?"
	}
}

// defaultRefreshInterval is how often the visible tab refetches its
// data. Fetches go through the client cache, so the interval mainly
// bounds staleness of the Dashboard and Monitoring pages.
const defaultRefreshInterval = 30 * time.Second

// noticeFadeDelay is how long a transient status-bar notice stays
// visible.
const noticeFadeDelay = 5 * time.Second

// Messages delivered through the bubbletea loop.

// refreshTickMsg drives the periodic refetch of the visible tab.
type refreshTickMsg struct{}

// noticeFadeMsg clears a transient status-bar notice.
type noticeFadeMsg struct{ generation int }

// metricsMsg carries the metric history (Dashboard and Monitoring).
type metricsMsg struct {
	metrics []api.SystemMetric
	err     error
}

// pingsMsg carries the probe history (Monitoring).
type pingsMsg struct {
	pings []api.PingResult
	err   error
}

// rulesMsg carries the rule list (Automation).
type rulesMsg struct {
	rules []api.AutomationRule
	err   error
}

// logsMsg carries the action log (Automation).
type logsMsg struct {
	logs []api.ActionLog
	err  error
}

// profileMsg carries the account record (Profile).
type profileMsg struct {
	user *api.User
	err  error
}

// authMsg reports a completed login or register attempt. The store
// already holds the outcome; err only signals that it failed.
type authMsg struct {
	register bool
	err      error
}

// actionMsg reports a completed mutation (collect, ping, rule change,
// profile save) with the acknowledgment to show in the status bar.
type actionMsg struct {
	message string
	reload  []Tab
	err     error
}

// Config assembles a dashboard model. Client and Store are required.
type Config struct {
	Client *api.Client
	Store  *api.Store
	Logger *slog.Logger

	// RefreshInterval overrides the periodic refetch interval.
	// Zero means the default of 30 seconds.
	RefreshInterval time.Duration
}

// Model is the bubbletea model for the dashboard TUI.
type Model struct {
	client  *api.Client
	store   *api.Store
	logger  *slog.Logger
	keys    KeyMap
	theme   Theme
	refresh time.Duration

	width  int
	height int

	view View
	tab  Tab

	metrics []api.SystemMetric
	stats   *api.DashboardStats
	pings   []api.PingResult
	rules   []api.AutomationRule
	logs    []api.ActionLog
	profile *api.User

	metricCursor int
	ruleCursor   int

	login    *loginForm
	register *registerForm
	rule     *ruleForm
	ping     *pingForm
	edit     *profileForm

	notice           string
	noticeIsError    bool
	noticeGeneration int
	busy             bool
}

// New builds the dashboard model. The initial view depends on the
// store: a restored session lands on the Dashboard tab, otherwise the
// login form is shown.
func New(config Config) *Model {
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	refresh := config.RefreshInterval
	if refresh <= 0 {
		refresh = defaultRefreshInterval
	}

	model := &Model{
		client:  config.Client,
		store:   config.Store,
		logger:  logger,
		keys:    DefaultKeyMap,
		theme:   DefaultTheme,
		refresh: refresh,
		view:    ViewLogin,
	}
	if config.Store.IsAuthenticated() {
		model.view = ViewMain
		model.profile = config.Store.CurrentUser()
	} else {
		model.login = newLoginForm(model.theme)
	}
	return model
}

// Init starts the refresh cycle and loads the first tab.
func (m *Model) Init() tea.Cmd {
	commands := []tea.Cmd{m.scheduleRefresh()}
	if m.view == ViewMain {
		commands = append(commands, m.fetchTab(m.tab, false))
	} else {
		commands = append(commands, m.login.focusCmd())
	}
	return tea.Batch(commands...)
}

func (m *Model) scheduleRefresh() tea.Cmd {
	return tea.Tick(m.refresh, func(time.Time) tea.Msg {
		return refreshTickMsg{}
	})
}

// Update routes messages: window sizing, the refresh tick, data
// results, then keyboard input by view and active form.
func (m *Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		m.width = message.Width
		m.height = message.Height
		return m, nil

	case refreshTickMsg:
		commands := []tea.Cmd{m.scheduleRefresh()}
		if m.view == ViewMain {
			commands = append(commands, m.fetchTab(m.tab, false))
		}
		return m, tea.Batch(commands...)

	case noticeFadeMsg:
		if message.generation == m.noticeGeneration {
			m.notice = ""
		}
		return m, nil

	case metricsMsg:
		m.busy = false
		if message.err != nil {
			return m, m.reportError(message.err)
		}
		m.metrics = message.metrics
		m.stats = api.ComputeStats(message.metrics)
		if m.metricCursor >= len(m.metrics) {
			m.metricCursor = len(m.metrics) - 1
		}
		if m.metricCursor < 0 {
			m.metricCursor = 0
		}
		return m, nil

	case pingsMsg:
		m.busy = false
		if message.err != nil {
			return m, m.reportError(message.err)
		}
		m.pings = message.pings
		return m, nil

	case rulesMsg:
		m.busy = false
		if message.err != nil {
			return m, m.reportError(message.err)
		}
		m.rules = message.rules
		if m.ruleCursor >= len(m.rules) {
			m.ruleCursor = len(m.rules) - 1
		}
		if m.ruleCursor < 0 {
			m.ruleCursor = 0
		}
		return m, nil

	case logsMsg:
		m.busy = false
		if message.err != nil {
			return m, m.reportError(message.err)
		}
		m.logs = message.logs
		return m, nil

	case profileMsg:
		m.busy = false
		if message.err != nil {
			return m, m.reportError(message.err)
		}
		m.profile = message.user
		return m, nil

	case authMsg:
		return m.handleAuthResult(message)

	case actionMsg:
		m.busy = false
		if message.err != nil {
			return m, m.reportError(message.err)
		}
		commands := []tea.Cmd{m.setNotice(message.message, false)}
		for _, tab := range message.reload {
			commands = append(commands, m.fetchTab(tab, true))
		}
		return m, tea.Batch(commands...)

	case tea.KeyMsg:
		return m.handleKey(message)
	}

	return m, m.updateActiveForm(message)
}

// handleKey routes a keypress to the active form or the main-view
// bindings.
func (m *Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Quit always works outside text entry; inside a form only
	// ctrl+c quits so "q" can be typed.
	if message.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.view {
	case ViewLogin:
		return m.updateLoginView(message)
	case ViewRegister:
		return m.updateRegisterView(message)
	}

	// A form on the main view captures all input.
	if m.rule != nil {
		return m.updateRuleForm(message)
	}
	if m.ping != nil {
		return m.updatePingForm(message)
	}
	if m.edit != nil {
		return m.updateProfileForm(message)
	}

	switch {
	case key.Matches(message, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(message, m.keys.Logout):
		m.store.Logout()
		m.switchToLogin("Logged out.")
		return m, m.login.focusCmd()

	case key.Matches(message, m.keys.TabDashboard):
		return m, m.switchTab(TabDashboard)
	case key.Matches(message, m.keys.TabMonitoring):
		return m, m.switchTab(TabMonitoring)
	case key.Matches(message, m.keys.TabAutomation):
		return m, m.switchTab(TabAutomation)
	case key.Matches(message, m.keys.TabProfile):
		return m, m.switchTab(TabProfile)
	case key.Matches(message, m.keys.NextTab):
		return m, m.switchTab((m.tab + 1) % tabCount)

	case key.Matches(message, m.keys.Refresh):
		return m, m.fetchTab(m.tab, true)
	}

	switch m.tab {
	case TabMonitoring:
		return m.handleMonitoringKeys(message)
	case TabAutomation:
		return m.handleAutomationKeys(message)
	case TabProfile:
		return m.handleProfileKeys(message)
	}
	return m, nil
}

// switchTab changes the visible tab and fetches its data through the
// cache, so flipping between tabs inside a TTL window is free.
func (m *Model) switchTab(tab Tab) tea.Cmd {
	m.tab = tab
	return m.fetchTab(tab, false)
}

// fetchTab issues the backend calls backing a tab. forced bypasses
// the response cache.
func (m *Model) fetchTab(tab Tab, forced bool) tea.Cmd {
	m.busy = true
	switch tab {
	case TabDashboard:
		return tea.Batch(m.fetchMetrics(forced), m.fetchRules(forced))
	case TabMonitoring:
		return tea.Batch(m.fetchMetrics(forced), m.fetchPings())
	case TabAutomation:
		return tea.Batch(m.fetchRules(forced), m.fetchLogs())
	case TabProfile:
		return m.fetchProfile()
	}
	m.busy = false
	return nil
}

func (m *Model) fetchMetrics(forced bool) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		fetch := client.CachedMetrics
		if forced {
			fetch = client.Metrics
		}
		metrics, err := fetch(context.Background(), 0)
		return metricsMsg{metrics: metrics, err: err}
	}
}

func (m *Model) fetchPings() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		pings, err := client.Pings(context.Background(), 0)
		return pingsMsg{pings: pings, err: err}
	}
}

func (m *Model) fetchRules(forced bool) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		fetch := client.CachedRules
		if forced {
			fetch = client.Rules
		}
		rules, err := fetch(context.Background(), 0)
		return rulesMsg{rules: rules, err: err}
	}
}

func (m *Model) fetchLogs() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		logs, err := client.ActionLogs(context.Background(), 0)
		return logsMsg{logs: logs, err: err}
	}
}

func (m *Model) fetchProfile() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		user, err := store.Profile(context.Background())
		return profileMsg{user: user, err: err}
	}
}

// reportError shows a classified notice for a failed call. If the
// store lost the session while we were on the main view (refresh
// failure forced a logout), drop back to the login form.
func (m *Model) reportError(err error) tea.Cmd {
	m.logger.Warn("backend call failed", "error", err)
	if m.view == ViewMain && !m.store.IsAuthenticated() {
		m.switchToLogin("Session expired. Please log in again.")
		return m.login.focusCmd()
	}
	return m.setNotice(api.Notice(err), true)
}

// setNotice shows a transient status-bar notice and schedules its
// fade. The generation counter keeps an old fade from clearing a
// newer notice.
func (m *Model) setNotice(text string, isError bool) tea.Cmd {
	m.notice = text
	m.noticeIsError = isError
	m.noticeGeneration++
	generation := m.noticeGeneration
	return tea.Tick(noticeFadeDelay, func(time.Time) tea.Msg {
		return noticeFadeMsg{generation: generation}
	})
}

// switchToLogin resets to the login form, discarding page data from
// the previous session.
func (m *Model) switchToLogin(notice string) {
	m.view = ViewLogin
	m.tab = TabDashboard
	m.metrics = nil
	m.stats = nil
	m.pings = nil
	m.rules = nil
	m.logs = nil
	m.profile = nil
	m.metricCursor = 0
	m.ruleCursor = 0
	m.rule = nil
	m.ping = nil
	m.edit = nil
	m.login = newLoginForm(m.theme)
	m.login.notice = notice
	m.register = nil
}

// updateActiveForm forwards non-key messages (cursor blinks) to
// whichever form is active.
func (m *Model) updateActiveForm(message tea.Msg) tea.Cmd {
	switch {
	case m.view == ViewLogin && m.login != nil:
		return m.login.update(message)
	case m.view == ViewRegister && m.register != nil:
		return m.register.update(message)
	case m.rule != nil:
		return m.rule.update(message)
	case m.ping != nil:
		return m.ping.update(message)
	case m.edit != nil:
		return m.edit.update(message)
	}
	return nil
}
