// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
)

func apiError(statusCode int, body string) *APIError {
	apiErr := &APIError{StatusCode: statusCode, Method: http.MethodGet, Path: "/api/test/"}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &fields); err == nil {
		apiErr.Fields = fields
	}
	return apiErr
}

func TestFieldExtraction(t *testing.T) {
	apiErr := apiError(400, `{"email": ["account with this email already exists"], "detail": "ignored"}`)

	// Lists yield their first element; plain strings pass through;
	// absent fields yield "".
	if got := apiErr.Field("email"); got != "account with this email already exists" {
		t.Errorf("Field(email) = %q", got)
	}
	if got := apiErr.Field("detail"); got != "ignored" {
		t.Errorf("Field(detail) = %q", got)
	}
	if got := apiErr.Field("username"); got != "" {
		t.Errorf("Field(username) = %q, want empty", got)
	}
}

func TestMessagePriorityOrder(t *testing.T) {
	// The first extractor with a non-empty result wins, regardless of
	// what later fields hold.
	apiErr := apiError(400, `{"password": ["too short"], "non_field_errors": ["other"], "detail": "general"}`)
	got := apiErr.Message("Registration failed", "email", "username", "password", "password2", "non_field_errors", "detail")
	if got != "too short" {
		t.Errorf("Message = %q, want %q", got, "too short")
	}

	// Nothing matches: the fallback applies.
	empty := apiError(400, `{}`)
	got = empty.Message("Registration failed", "email", "username", "password")
	if got != "Registration failed" {
		t.Errorf("Message fallback = %q", got)
	}
}

func TestNotice(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"connectivity", &ConnectivityError{Err: errors.New("dial tcp: refused")}, "Network error. Please check your connection."},
		{"bad request with detail", apiError(400, `{"detail": "IP is required"}`), "IP is required"},
		{"bad request with error field", apiError(400, `{"error": "IP is required"}`), "IP is required"},
		{"bad request without detail", apiError(400, ``), "Bad request"},
		{"forbidden", apiError(403, `{"detail": "ignored for 403"}`), "Access forbidden"},
		{"not found", apiError(404, ``), "Resource not found"},
		{"rate limited", apiError(429, ``), "Too many requests. Please try again later."},
		{"server error", apiError(500, ``), "Server error. Please try again later."},
		{"bad gateway", apiError(502, ``), "Server error occurred"},
		{"plain error", errors.New("boom"), "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Notice(tt.err); got != tt.want {
				t.Errorf("Notice = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsStatus(t *testing.T) {
	err := error(apiError(404, ``))
	if !IsStatus(err, http.StatusNotFound) {
		t.Error("IsStatus(404 error, 404) = false")
	}
	if IsStatus(err, http.StatusForbidden) {
		t.Error("IsStatus(404 error, 403) = true")
	}
	if IsStatus(errors.New("plain"), http.StatusNotFound) {
		t.Error("IsStatus(plain error) = true")
	}
}
