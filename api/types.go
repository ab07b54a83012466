// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package api

import "time"

// User is the backend's account record.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
}

// Credentials is the login request payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the new-account request payload. Password2 must
// repeat Password; the backend rejects mismatches with a field error.
type Registration struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
	Phone     string `json:"phone,omitempty"`
}

// ProfileUpdate carries the editable profile fields.
type ProfileUpdate struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
}

// SystemMetric is one resource-usage sample. The backend returns the
// history newest-first: index 0 is the latest sample.
type SystemMetric struct {
	ID          int       `json:"id"`
	CPUUsage    float64   `json:"cpu_usage"`
	MemoryUsage float64   `json:"memory_usage"`
	DiskUsage   float64   `json:"disk_usage"`
	Timestamp   time.Time `json:"timestamp"`
}

// PingResult is one reachability probe. Latency is zero when the
// target was unreachable.
type PingResult struct {
	ID        int       `json:"id"`
	TargetIP  string    `json:"target_ip"`
	Reachable bool      `json:"reachable"`
	Latency   float64   `json:"latency"`
	Timestamp time.Time `json:"timestamp"`
}

// RuleCondition identifies what an automation rule watches.
type RuleCondition string

const (
	ConditionCPUHigh      RuleCondition = "CPU_HIGH"
	ConditionMemoryHigh   RuleCondition = "MEMORY_HIGH"
	ConditionDiskHigh     RuleCondition = "DISK_HIGH"
	ConditionIPSuspicious RuleCondition = "IP_SUSPICIOUS"
)

// Conditions lists the rule conditions in display order.
var Conditions = []RuleCondition{
	ConditionCPUHigh,
	ConditionMemoryHigh,
	ConditionDiskHigh,
	ConditionIPSuspicious,
}

// Label returns the human-readable condition name.
func (c RuleCondition) Label() string {
	switch c {
	case ConditionCPUHigh:
		return "High CPU Usage"
	case ConditionMemoryHigh:
		return "High Memory Usage"
	case ConditionDiskHigh:
		return "High Disk Usage"
	case ConditionIPSuspicious:
		return "Suspicious IP Detected"
	default:
		return string(c)
	}
}

// RuleAction identifies what a triggered rule does.
type RuleAction string

const (
	ActionEmailAlert RuleAction = "EMAIL_ALERT"
	ActionBlockIP    RuleAction = "BLOCK_IP"
	ActionLogOnly    RuleAction = "LOG_ONLY"
)

// Actions lists the rule actions in display order.
var Actions = []RuleAction{ActionEmailAlert, ActionBlockIP, ActionLogOnly}

// Label returns the human-readable action name.
func (a RuleAction) Label() string {
	switch a {
	case ActionEmailAlert:
		return "Send Email Alert"
	case ActionBlockIP:
		return "Block IP"
	case ActionLogOnly:
		return "Log Only"
	default:
		return string(a)
	}
}

// AutomationRule is a stored threshold rule.
type AutomationRule struct {
	ID        int           `json:"id"`
	Condition RuleCondition `json:"condition"`
	Threshold float64       `json:"threshold"`
	Action    RuleAction    `json:"action"`
	Active    bool          `json:"active"`
}

// RuleDraft is the create/update payload for an automation rule.
type RuleDraft struct {
	Condition RuleCondition `json:"condition"`
	Threshold float64       `json:"threshold"`
	Action    RuleAction    `json:"action"`
	Active    bool          `json:"active"`
}

// ActionLog records one executed rule action.
type ActionLog struct {
	ID          int       `json:"id"`
	Condition   string    `json:"condition"`
	Value       float64   `json:"value"`
	ActionTaken string    `json:"action_taken"`
	Timestamp   time.Time `json:"timestamp"`
}

// authResponse is the login response: a token pair plus the account
// record embedded by the backend's token serializer.
type authResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
	User    User   `json:"user"`
}

// refreshResponse carries the replacement access token.
type refreshResponse struct {
	Access string `json:"access"`
}

// messageResponse is the acknowledgment shape for trigger endpoints
// (metric collection, ping tests).
type messageResponse struct {
	Message string `json:"message"`
}
