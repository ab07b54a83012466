// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cybertiba/sentinel/api"
)

// newTestModel builds a model backed by a real client and store. The
// base URL points nowhere; tests that use it never touch the network.
func newTestModel(t *testing.T) *Model {
	t.Helper()
	client, err := api.NewClient(api.ClientConfig{
		BaseURL: "http://127.0.0.1:1",
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}
	store, err := api.NewStore(api.StoreConfig{
		Client: client,
		Path:   filepath.Join(t.TempDir(), "session.json"),
	})
	if err != nil {
		t.Fatalf("NewStore() error: %v", err)
	}
	return New(Config{Client: client, Store: store})
}

func TestHistory_ReversesNewestFirst(t *testing.T) {
	metrics := []api.SystemMetric{
		{CPUUsage: 30}, // newest
		{CPUUsage: 20},
		{CPUUsage: 10}, // oldest
	}

	values := history(metrics, func(metric api.SystemMetric) float64 { return metric.CPUUsage })
	want := []float64{10, 20, 30}
	if len(values) != len(want) {
		t.Fatalf("got %d values, want %d", len(values), len(want))
	}
	for i := range want {
		if values[i] != want[i] {
			t.Errorf("values[%d] = %v, want %v", i, values[i], want[i])
		}
	}
}

func TestUpdateAge(t *testing.T) {
	tests := []struct {
		age  time.Duration
		want string
	}{
		{14 * time.Second, "14s"},
		{3 * time.Minute, "3m"},
		{90 * time.Minute, "1h"},
		{26 * time.Hour, "26h"},
	}

	for _, test := range tests {
		if got := updateAge(test.age); got != test.want {
			t.Errorf("updateAge(%v) = %q, want %q", test.age, got, test.want)
		}
	}
}

func TestSubmitRegister_PasswordMismatchStaysLocal(t *testing.T) {
	// A mismatched confirmation is rejected before any request is
	// issued: the command is nil and the form shows the notice.
	model := &Model{theme: DefaultTheme, view: ViewRegister}
	model.register = newRegisterForm(model.theme)
	model.register.inputs[registerFieldEmail].SetValue("analyst@cybertiba.ke")
	model.register.inputs[registerFieldUsername].SetValue("analyst")
	model.register.inputs[registerFieldPassword].SetValue("secret123")
	model.register.inputs[registerFieldConfirm].SetValue("secret124")

	if cmd := model.submitRegister(); cmd != nil {
		t.Fatal("submitRegister() issued a command for mismatched passwords")
	}
	if model.register.notice != "Passwords do not match." {
		t.Errorf("notice = %q, want mismatch message", model.register.notice)
	}
}

func TestSubmitRegister_RequiredFields(t *testing.T) {
	model := &Model{theme: DefaultTheme, view: ViewRegister}
	model.register = newRegisterForm(model.theme)
	model.register.inputs[registerFieldEmail].SetValue("analyst@cybertiba.ke")

	if cmd := model.submitRegister(); cmd != nil {
		t.Fatal("submitRegister() issued a command with missing fields")
	}
	if model.register.notice == "" {
		t.Error("expected a validation notice for missing fields")
	}
}

func TestSubmitLogin_RequiredFields(t *testing.T) {
	model := &Model{theme: DefaultTheme, view: ViewLogin}
	model.login = newLoginForm(model.theme)
	model.login.inputs[loginFieldEmail].SetValue("analyst@cybertiba.ke")

	if cmd := model.submitLogin(); cmd != nil {
		t.Fatal("submitLogin() issued a command with an empty password")
	}
	if model.login.notice == "" {
		t.Error("expected a validation notice for the empty password")
	}
}

func TestSwitchToLogin_DropsSessionData(t *testing.T) {
	model := &Model{theme: DefaultTheme, view: ViewMain, tab: TabAutomation}
	model.metrics = []api.SystemMetric{{CPUUsage: 50}}
	model.rules = []api.AutomationRule{{ID: 1}}
	model.profile = &api.User{Username: "analyst"}
	model.rule = newRuleForm(nil)

	model.switchToLogin("Session expired. Please log in again.")

	if model.view != ViewLogin {
		t.Errorf("view = %v, want ViewLogin", model.view)
	}
	if model.tab != TabDashboard {
		t.Errorf("tab = %v, want TabDashboard", model.tab)
	}
	if model.metrics != nil || model.rules != nil || model.profile != nil || model.rule != nil {
		t.Error("page data survived the switch to the login view")
	}
	if model.login == nil || model.login.notice != "Session expired. Please log in again." {
		t.Error("login form missing its expiry notice")
	}
}

func TestAuthResult_AfterRegisterFormDismissed(t *testing.T) {
	model := newTestModel(t)
	model.view = ViewRegister
	model.register = newRegisterForm(model.theme)
	model.login = nil

	// Escape returns to the login view while the register request is
	// still in flight.
	updated, _ := model.updateRegisterView(tea.KeyMsg{Type: tea.KeyEsc})
	model = updated.(*Model)
	if model.register != nil {
		t.Fatal("register form survived escape")
	}

	updated, _ = model.Update(authMsg{register: true, err: errors.New("email already registered")})
	model = updated.(*Model)

	if model.view != ViewLogin {
		t.Errorf("view = %v, want ViewLogin", model.view)
	}
	if model.login == nil || model.login.notice == "" {
		t.Error("late register failure should surface on the login form")
	}
}

func TestMonitoringCursor_ScrollsMetricHistory(t *testing.T) {
	model := newTestModel(t)
	model.view = ViewMain
	model.tab = TabMonitoring

	base := time.Date(2026, 8, 30, 10, 0, 0, 0, time.Local)
	metrics := make([]api.SystemMetric, 20)
	for i := range metrics {
		metrics[i] = api.SystemMetric{Timestamp: base.Add(time.Duration(i) * time.Minute)}
	}
	model.metrics = metrics

	down := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")}
	for i := 0; i < 12; i++ {
		model.handleMonitoringKeys(down)
	}
	if model.metricCursor != 12 {
		t.Fatalf("metricCursor = %d, want 12", model.metricCursor)
	}

	// The window follows the cursor past the first page of rows.
	output := model.renderMonitoring()
	if !strings.Contains(output, "10:12:00") {
		t.Error("selected row missing from the rendered window")
	}
	if strings.Contains(output, "10:00:00") {
		t.Error("window did not scroll past the oldest rows")
	}

	// A shorter refetch clamps the cursor back into range.
	updated, _ := model.Update(metricsMsg{metrics: metrics[:5]})
	model = updated.(*Model)
	if model.metricCursor != 4 {
		t.Errorf("metricCursor = %d after shrink, want 4", model.metricCursor)
	}
}

func TestRuleForm_Draft(t *testing.T) {
	form := newRuleForm(nil)
	form.threshold.SetValue("92.5")
	form.condition = 1 // MEMORY_HIGH
	form.action = 2    // LOG_ONLY

	draft, err := form.draft()
	if err != nil {
		t.Fatalf("draft() error: %v", err)
	}
	if draft.Condition != api.ConditionMemoryHigh {
		t.Errorf("condition = %q, want MEMORY_HIGH", draft.Condition)
	}
	if draft.Threshold != 92.5 {
		t.Errorf("threshold = %v, want 92.5", draft.Threshold)
	}
	if draft.Action != api.ActionLogOnly {
		t.Errorf("action = %q, want LOG_ONLY", draft.Action)
	}
	if !draft.Active {
		t.Error("new rules should default to active")
	}
}

func TestRuleForm_DraftRejectsBadThreshold(t *testing.T) {
	form := newRuleForm(nil)
	form.threshold.SetValue("ninety")

	if _, err := form.draft(); err == nil {
		t.Fatal("draft() accepted a non-numeric threshold")
	}
}

func TestRuleForm_PrefillsExistingRule(t *testing.T) {
	rule := &api.AutomationRule{
		ID:        7,
		Condition: api.ConditionDiskHigh,
		Threshold: 85,
		Action:    api.ActionBlockIP,
		Active:    false,
	}
	form := newRuleForm(rule)

	if form.editID != 7 {
		t.Errorf("editID = %d, want 7", form.editID)
	}
	draft, err := form.draft()
	if err != nil {
		t.Fatalf("draft() error: %v", err)
	}
	if draft.Condition != rule.Condition || draft.Action != rule.Action ||
		draft.Threshold != rule.Threshold || draft.Active != rule.Active {
		t.Errorf("draft = %+v, want the original rule's fields", draft)
	}
}
