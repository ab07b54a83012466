// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync"
)

// State is the store's authentication state.
type State int

const (
	// Anonymous means no session is held. Initial state.
	Anonymous State = iota
	// Authenticating means a login or register exchange is in flight.
	Authenticating
	// Authenticated means a token pair and user record are held.
	Authenticated
	// Refreshing means a 401 triggered a token refresh that has not
	// resolved yet.
	Refreshing
)

// String returns the lowercase state name for logging.
func (s State) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	case Refreshing:
		return "refreshing"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Session is the persisted snapshot: who the user is and the token
// pair proving it. Written on every mutation, removed on logout.
type Session struct {
	User          *User  `json:"user"`
	AccessToken   string `json:"access_token"`
	RefreshToken  string `json:"refresh_token"`
	Authenticated bool   `json:"is_authenticated"`
}

// SessionFilePath returns the path of the session snapshot. Checks the
// SENTINEL_SESSION_FILE environment variable first, then falls back to
// ~/.config/sentinel/session.json.
func SessionFilePath() string {
	if envPath := os.Getenv("SENTINEL_SESSION_FILE"); envPath != "" {
		return envPath
	}

	configDirectory := os.Getenv("XDG_CONFIG_HOME")
	if configDirectory == "" {
		homeDirectory, err := os.UserHomeDir()
		if err != nil {
			// Fallback — this should rarely happen.
			return filepath.Join("/tmp", "sentinel-session.json")
		}
		configDirectory = filepath.Join(homeDirectory, ".config")
	}
	return filepath.Join(configDirectory, "sentinel", "session.json")
}

// StoreConfig holds configuration for creating a Store.
type StoreConfig struct {
	// Client performs the store's HTTP exchanges. Required. The store
	// registers itself as the client's Authenticator.
	Client *Client
	// Path is the session snapshot file. If empty, SessionFilePath()
	// is used.
	Path string
	// Logger is used for structured logging. If nil, the client's
	// logger is used.
	Logger *slog.Logger
}

// Store is the single source of truth for the current session. At most
// one Session exists per Store; pages and commands read it through the
// accessors and only the store's own operations mutate it.
type Store struct {
	client *Client
	path   string
	logger *slog.Logger

	mu        sync.Mutex
	state     State
	session   Session
	lastError string
}

// NewStore creates a Store and wires it into the client as its
// Authenticator.
func NewStore(config StoreConfig) (*Store, error) {
	if config.Client == nil {
		return nil, fmt.Errorf("api: Client is required")
	}
	path := config.Path
	if path == "" {
		path = SessionFilePath()
	}
	logger := config.Logger
	if logger == nil {
		logger = config.Client.logger
	}
	store := &Store{
		client: config.Client,
		path:   path,
		logger: logger,
	}
	config.Client.SetAuthenticator(store)
	return store, nil
}

// Initialize rehydrates the session from the persisted snapshot. A
// missing snapshot leaves the store Anonymous; no error. The restored
// token is not validated against the server — an expired token is
// discovered on the first 401 and recovered through refresh.
func (s *Store) Initialize() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("api: reading session file %s: %w", s.path, err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return fmt.Errorf("api: parsing session file %s: %w", s.path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = session
	if session.Authenticated && session.AccessToken != "" {
		s.state = Authenticated
	}
	return nil
}

// Login exchanges credentials for a token pair and the user record.
// On failure the session stays unauthenticated and the extracted
// server message is recorded for the UI.
func (s *Store) Login(ctx context.Context, credentials Credentials) error {
	s.setState(Authenticating)

	body, err := s.client.send(ctx, http.MethodPost, pathLogin, nil, credentials)
	if err != nil {
		message := loginErrorMessage(err)
		s.failAuth(message)
		return fmt.Errorf("api: login: %w", err)
	}

	var auth authResponse
	if err := json.Unmarshal(body, &auth); err != nil {
		s.failAuth("Login failed")
		return fmt.Errorf("api: parsing login response: %w", err)
	}

	s.mu.Lock()
	s.session = Session{
		User:          &auth.User,
		AccessToken:   auth.Access,
		RefreshToken:  auth.Refresh,
		Authenticated: true,
	}
	s.state = Authenticated
	s.lastError = ""
	s.persistLocked()
	s.mu.Unlock()

	s.logger.Info("logged in", "user", auth.User.Username)
	return nil
}

// Register submits new-account data. Success does not authenticate —
// the caller logs in afterwards. On failure the first field-specific
// validation message is recorded, checking email, username, password,
// password2, then the general fields, in that priority order.
func (s *Store) Register(ctx context.Context, registration Registration) (*User, error) {
	s.setState(Authenticating)

	body, err := s.client.send(ctx, http.MethodPost, pathRegister, nil, registration)
	if err != nil {
		s.settle(registerErrorMessage(err))
		return nil, fmt.Errorf("api: register: %w", err)
	}

	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		s.settle("Registration failed")
		return nil, fmt.Errorf("api: parsing register response: %w", err)
	}

	s.settle("")

	s.logger.Info("registered account", "user", user.Username)
	return &user, nil
}

// RefreshAccessToken exchanges the held refresh token for a new access
// token. With no refresh token, or when the exchange fails, the
// session is cleared (forced logout) and the error reports why. On
// success only the access token changes.
//
// Concurrent 401s may each call this independently; the mutations are
// serialized under the store's lock but the network exchanges are not
// deduplicated.
func (s *Store) RefreshAccessToken(ctx context.Context) error {
	s.mu.Lock()
	refreshToken := s.session.RefreshToken
	if refreshToken == "" {
		s.mu.Unlock()
		s.Logout()
		return fmt.Errorf("api: no refresh token held")
	}
	s.state = Refreshing
	s.mu.Unlock()

	body, err := s.client.send(ctx, http.MethodPost, pathRefresh, nil, map[string]string{"refresh": refreshToken})
	if err != nil {
		s.Logout()
		return fmt.Errorf("api: token refresh: %w", err)
	}

	var refreshed refreshResponse
	if err := json.Unmarshal(body, &refreshed); err != nil || refreshed.Access == "" {
		s.Logout()
		return fmt.Errorf("api: token refresh returned no access token")
	}

	s.mu.Lock()
	s.session.AccessToken = refreshed.Access
	s.session.Authenticated = true
	s.state = Authenticated
	s.persistLocked()
	s.mu.Unlock()

	s.logger.Debug("access token refreshed")
	return nil
}

// Logout clears the in-memory session, removes the persisted snapshot,
// and drops any cached responses. Idempotent.
func (s *Store) Logout() {
	s.mu.Lock()
	s.session = Session{}
	s.state = Anonymous
	s.lastError = ""
	s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("removing session file", "path", s.path, "error", err)
	}
	s.client.InvalidateCache()
}

// Profile fetches the current account record from the backend.
func (s *Store) Profile(ctx context.Context) (*User, error) {
	var user User
	if err := s.client.get(ctx, pathProfile, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile submits updated profile fields and replaces the stored
// user record on success.
func (s *Store) UpdateProfile(ctx context.Context, update ProfileUpdate) (*User, error) {
	body, err := s.client.do(ctx, http.MethodPut, pathProfile, nil, update)
	if err != nil {
		s.recordError(profileErrorMessage(err))
		return nil, fmt.Errorf("api: profile update: %w", err)
	}

	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("api: parsing profile response: %w", err)
	}

	s.mu.Lock()
	s.session.User = &user
	s.lastError = ""
	if s.session.Authenticated {
		s.persistLocked()
	}
	s.mu.Unlock()
	return &user, nil
}

// AccessToken returns the current access token, or "" when anonymous.
// Part of the Authenticator interface.
func (s *Store) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.AccessToken
}

// State returns the current authentication state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IsAuthenticated reports whether a session is held.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Authenticated
}

// CurrentUser returns a copy of the stored user record, or nil when
// anonymous.
func (s *Store) CurrentUser() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session.User == nil {
		return nil
	}
	user := *s.session.User
	return &user
}

// LastError returns the most recent human-readable auth error, or ""
// after a successful operation.
func (s *Store) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

func (s *Store) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.lastError = ""
	s.mu.Unlock()
}

// failAuth records a failed login: the session is cleared and the
// message is kept for the UI.
func (s *Store) failAuth(message string) {
	s.mu.Lock()
	s.state = Anonymous
	s.session = Session{}
	s.lastError = message
	s.mu.Unlock()
}

// settle ends a register exchange: the state returns to whatever the
// held session implies. Registering does not touch an existing login.
func (s *Store) settle(message string) {
	s.mu.Lock()
	if s.session.Authenticated {
		s.state = Authenticated
	} else {
		s.state = Anonymous
	}
	s.lastError = message
	s.mu.Unlock()
}

func (s *Store) recordError(message string) {
	s.mu.Lock()
	s.lastError = message
	s.mu.Unlock()
}

// persistLocked writes the session snapshot. Called with s.mu held. A
// write failure does not undo the in-memory state — the session is
// still live for this process — but it is logged loudly since the next
// run will not see it.
func (s *Store) persistLocked() {
	data, err := json.MarshalIndent(s.session, "", "  ")
	if err != nil {
		s.logger.Error("marshaling session", "error", err)
		return
	}
	data = append(data, '\n')

	directory := filepath.Dir(s.path)
	if err := os.MkdirAll(directory, 0700); err != nil {
		s.logger.Error("creating session directory", "path", directory, "error", err)
		return
	}
	// 0600: the snapshot contains the token pair.
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		s.logger.Error("writing session file", "path", s.path, "error", err)
	}
}

// loginErrorMessage extracts the user-facing message for a failed
// login: the server detail, the first non-field error, or a default.
func loginErrorMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message("Login failed", "detail", "non_field_errors")
	}
	return Notice(err)
}

// registerErrorMessage extracts the most field-specific validation
// message available from a failed registration.
func registerErrorMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message("Registration failed",
			"email", "username", "password", "password2", "non_field_errors", "detail")
	}
	return Notice(err)
}

func profileErrorMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message("Profile update failed", "detail")
	}
	return Notice(err)
}
