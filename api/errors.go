// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ConnectivityError wraps a request that produced no HTTP response at
// all: DNS failure, refused connection, or the client-side timeout.
type ConnectivityError struct {
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("api: no response from server: %v", e.Err)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// APIError is a structured error response from the backend. Callers
// use errors.As to extract it:
//
//	var apiErr *api.APIError
//	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound { ... }
type APIError struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int
	// Method and Path identify the failed request.
	Method string
	Path   string
	// Fields is the decoded response body. The backend returns either
	// {"detail": "..."} or a validation map from field name to a list
	// of messages. Nil when the body was not a JSON object.
	Fields map[string]json.RawMessage
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %s %s returned %d: %s", e.Method, e.Path, e.StatusCode, e.Message("", "detail", "error", "message"))
}

// Field returns the message stored under name: a plain string, or the
// first element of a list of strings (the backend's validation errors
// come as lists). Returns "" when the field is absent or neither shape.
func (e *APIError) Field(name string) string {
	raw, ok := e.Fields[name]
	if !ok {
		return ""
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return single
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return list[0]
	}
	return ""
}

// Message applies the named field extractors in order and returns the
// first non-empty result, falling back to fallback. This is how the
// client picks the most specific server-provided message out of the
// several shapes the backend uses.
func (e *APIError) Message(fallback string, fields ...string) string {
	for _, name := range fields {
		if message := e.Field(name); message != "" {
			return message
		}
	}
	return fallback
}

// Notice returns the user-facing notification for this error: the
// server-provided detail when present, otherwise a default string for
// the status class.
func (e *APIError) Notice() string {
	serverMessage := e.Message("", "detail", "error", "message")
	switch {
	case e.StatusCode == http.StatusBadRequest:
		if serverMessage != "" {
			return serverMessage
		}
		return "Bad request"
	case e.StatusCode == http.StatusUnauthorized:
		if serverMessage != "" {
			return serverMessage
		}
		return "Authentication required"
	case e.StatusCode == http.StatusForbidden:
		return "Access forbidden"
	case e.StatusCode == http.StatusNotFound:
		return "Resource not found"
	case e.StatusCode == http.StatusTooManyRequests:
		return "Too many requests. Please try again later."
	case e.StatusCode == http.StatusInternalServerError:
		return "Server error. Please try again later."
	case e.StatusCode > http.StatusInternalServerError:
		return "Server error occurred"
	default:
		if serverMessage != "" {
			return serverMessage
		}
		return fmt.Sprintf("Request failed (%d)", e.StatusCode)
	}
}

// Notice returns the user-facing notification for any client error:
// the connectivity message for no-response failures, the status-class
// message for backend errors, and the raw error text otherwise.
func Notice(err error) string {
	var connErr *ConnectivityError
	if errors.As(err, &connErr) {
		return "Network error. Please check your connection."
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Notice()
	}
	return err.Error()
}

// IsStatus reports whether err is an *APIError with the given HTTP
// status code.
func IsStatus(err error, statusCode int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == statusCode
}
