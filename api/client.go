// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cybertiba/sentinel/lib/cache"
)

// Backend endpoint paths.
const (
	pathLogin    = "/api/users/login/"
	pathRegister = "/api/users/register/"
	pathRefresh  = "/api/users/refresh/"
	pathProfile  = "/api/users/profile/"
	pathMetrics  = "/api/monitoring/metrics/"
	pathCollect  = "/api/monitoring/collect/"
	pathPings    = "/api/monitoring/pings/"
	pathPing     = "/api/monitoring/ping/"
	pathRules    = "/api/automation/rules/"
	pathLogs     = "/api/automation/logs/"
)

// DefaultTimeout is the request ceiling when the config does not set
// one. A backend that has not answered by then is treated as
// unreachable.
const DefaultTimeout = 30 * time.Second

// maxResponseSize bounds response body reads so a misbehaving server
// cannot exhaust memory. Backend responses are small JSON documents;
// the limit is generous.
const maxResponseSize int64 = 16 << 20

// Authenticator supplies the bearer token for outgoing requests and
// handles 401 recovery. Implemented by Store; nil disables both.
type Authenticator interface {
	// AccessToken returns the current access token, or "" when no
	// session is held.
	AccessToken() string

	// RefreshAccessToken exchanges the refresh token for a new access
	// token. On any failure the session is cleared before the error
	// is returned.
	RefreshAccessToken(ctx context.Context) error
}

// ClientConfig holds configuration for creating a Client.
type ClientConfig struct {
	// BaseURL is the backend root (e.g., "http://127.0.0.1:8000").
	BaseURL string
	// HTTPClient is used for all requests. If nil, a client with
	// DefaultTimeout is used.
	HTTPClient *http.Client
	// Logger is used for structured logging. If nil, slog.Default()
	// is used.
	Logger *slog.Logger
	// Cache backs the cached read paths. If nil, caching is disabled
	// and cached reads always hit the network.
	Cache *cache.Cache
	// MetricsTTL and RulesTTL bound the staleness of the cached read
	// paths. Zero values take the cache package defaults.
	MetricsTTL time.Duration
	RulesTTL   time.Duration
}

// Client performs HTTP calls against the monitoring backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	cache      *cache.Cache
	metricsTTL time.Duration
	rulesTTL   time.Duration
	auth       Authenticator
}

// NewClient creates a Client from config.
func NewClient(config ClientConfig) (*Client, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("api: BaseURL is required")
	}
	if _, err := url.Parse(config.BaseURL); err != nil {
		return nil, fmt.Errorf("api: invalid BaseURL %q: %w", config.BaseURL, err)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	metricsTTL := config.MetricsTTL
	if metricsTTL == 0 {
		metricsTTL = cache.DefaultMetricsTTL
	}
	rulesTTL := config.RulesTTL
	if rulesTTL == 0 {
		rulesTTL = cache.DefaultRulesTTL
	}

	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
		cache:      config.Cache,
		metricsTTL: metricsTTL,
		rulesTTL:   rulesTTL,
	}, nil
}

// SetAuthenticator wires the session store into the client. Called by
// NewStore; subsequent requests carry the store's token and recover
// from 401s through it.
func (c *Client) SetAuthenticator(auth Authenticator) { c.auth = auth }

// InvalidateCache drops all cached responses. Called at logout and
// after mutations that change what the read endpoints would return.
func (c *Client) InvalidateCache() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// do performs a request with 401 recovery: a response of 401 to a
// request not already flagged as a retry triggers one token refresh
// through the Authenticator and, if that succeeds, one re-issue of the
// original request with the new token. The refresh call itself goes
// through send directly, so the cycle can never loop.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, requestBody any) ([]byte, error) {
	responseBody, err := c.send(ctx, method, path, query, requestBody)
	if err == nil {
		return responseBody, nil
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnauthorized || c.auth == nil {
		return responseBody, err
	}

	if refreshErr := c.auth.RefreshAccessToken(ctx); refreshErr != nil {
		// The store has already cleared the session. Surface the
		// original 401 — the refresh failure is its consequence.
		c.logger.Warn("token refresh failed", "method", method, "path", path, "error", refreshErr)
		return responseBody, err
	}

	c.logger.Debug("retrying after token refresh", "method", method, "path", path)
	return c.send(ctx, method, path, query, requestBody)
}

// send performs one HTTP request and returns the response body. On
// 2xx, returns the body. On an HTTP error status, returns the body
// alongside an *APIError. Transport failures return a
// *ConnectivityError.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, requestBody any) ([]byte, error) {
	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return nil, fmt.Errorf("api: encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("api: creating request: %w", err)
	}
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if c.auth != nil {
		if token := c.auth.AccessToken(); token != "" {
			request.Header.Set("Authorization", "Bearer "+token)
		}
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, &ConnectivityError{Err: err}
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(io.LimitReader(response.Body, maxResponseSize))
	if err != nil {
		return nil, &ConnectivityError{Err: err}
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return responseBody, nil
	}

	apiErr := &APIError{
		StatusCode: response.StatusCode,
		Method:     method,
		Path:       path,
	}
	// Validation errors and detail messages arrive as a JSON object.
	// Anything else (HTML error pages, empty bodies) leaves Fields nil
	// and the status-class default message applies.
	var fields map[string]json.RawMessage
	if jsonErr := json.Unmarshal(responseBody, &fields); jsonErr == nil {
		apiErr.Fields = fields
	}
	return responseBody, apiErr
}

// get performs a GET and decodes the response into result.
func (c *Client) get(ctx context.Context, path string, query url.Values, result any) error {
	body, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("api: parsing %s response: %w", path, err)
	}
	return nil
}

// limitQuery builds the ?limit= query shared by the list endpoints.
// limit <= 0 means no bound.
func limitQuery(limit int) url.Values {
	if limit <= 0 {
		return nil
	}
	return url.Values{"limit": {strconv.Itoa(limit)}}
}

// Metrics fetches the metric history, newest first.
func (c *Client) Metrics(ctx context.Context, limit int) ([]SystemMetric, error) {
	var metrics []SystemMetric
	if err := c.get(ctx, pathMetrics, limitQuery(limit), &metrics); err != nil {
		return nil, err
	}
	return metrics, nil
}

// CachedMetrics is Metrics through the response cache. A fresh entry
// within the metrics TTL is served without a network call.
func (c *Client) CachedMetrics(ctx context.Context, limit int) ([]SystemMetric, error) {
	return cachedList[SystemMetric](ctx, c, pathMetrics, limitQuery(limit), c.metricsTTL)
}

// CollectMetrics asks the backend to record a fresh sample now.
func (c *Client) CollectMetrics(ctx context.Context) (string, error) {
	body, err := c.do(ctx, http.MethodPost, pathCollect, nil, nil)
	if err != nil {
		return "", err
	}
	var ack messageResponse
	if err := json.Unmarshal(body, &ack); err != nil {
		return "", fmt.Errorf("api: parsing collect response: %w", err)
	}
	// A new sample makes the cached history stale immediately.
	c.InvalidateCache()
	return ack.Message, nil
}

// Pings fetches the ping-test history, newest first.
func (c *Client) Pings(ctx context.Context, limit int) ([]PingResult, error) {
	var pings []PingResult
	if err := c.get(ctx, pathPings, limitQuery(limit), &pings); err != nil {
		return nil, err
	}
	return pings, nil
}

// RunPing asks the backend to probe the given target IP.
func (c *Client) RunPing(ctx context.Context, ip string) (string, error) {
	body, err := c.do(ctx, http.MethodPost, pathPing, nil, map[string]string{"ip": ip})
	if err != nil {
		return "", err
	}
	var ack messageResponse
	if err := json.Unmarshal(body, &ack); err != nil {
		return "", fmt.Errorf("api: parsing ping response: %w", err)
	}
	return ack.Message, nil
}

// Rules fetches the automation rules.
func (c *Client) Rules(ctx context.Context, limit int) ([]AutomationRule, error) {
	var rules []AutomationRule
	if err := c.get(ctx, pathRules, limitQuery(limit), &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

// CachedRules is Rules through the response cache.
func (c *Client) CachedRules(ctx context.Context, limit int) ([]AutomationRule, error) {
	return cachedList[AutomationRule](ctx, c, pathRules, limitQuery(limit), c.rulesTTL)
}

// CreateRule stores a new automation rule and returns it with its
// assigned ID.
func (c *Client) CreateRule(ctx context.Context, draft RuleDraft) (*AutomationRule, error) {
	body, err := c.do(ctx, http.MethodPost, pathRules, nil, draft)
	if err != nil {
		return nil, err
	}
	var rule AutomationRule
	if err := json.Unmarshal(body, &rule); err != nil {
		return nil, fmt.Errorf("api: parsing rule response: %w", err)
	}
	c.InvalidateCache()
	return &rule, nil
}

// UpdateRule replaces the rule with the given ID.
func (c *Client) UpdateRule(ctx context.Context, id int, draft RuleDraft) (*AutomationRule, error) {
	body, err := c.do(ctx, http.MethodPut, rulePath(id), nil, draft)
	if err != nil {
		return nil, err
	}
	var rule AutomationRule
	if err := json.Unmarshal(body, &rule); err != nil {
		return nil, fmt.Errorf("api: parsing rule response: %w", err)
	}
	c.InvalidateCache()
	return &rule, nil
}

// DeleteRule removes the rule with the given ID.
func (c *Client) DeleteRule(ctx context.Context, id int) error {
	if _, err := c.do(ctx, http.MethodDelete, rulePath(id), nil, nil); err != nil {
		return err
	}
	c.InvalidateCache()
	return nil
}

// ActionLogs fetches the executed-action history, newest first.
func (c *Client) ActionLogs(ctx context.Context, limit int) ([]ActionLog, error) {
	var logs []ActionLog
	if err := c.get(ctx, pathLogs, limitQuery(limit), &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

func rulePath(id int) string {
	return fmt.Sprintf("%s%d/", pathRules, id)
}

// cachedList serves a list endpoint through the cache: a fresh cached
// payload is decoded and returned without a network call; otherwise
// the response is fetched, stored under the request signature for ttl,
// and returned.
func cachedList[T any](ctx context.Context, c *Client, path string, query url.Values, ttl time.Duration) ([]T, error) {
	if c.cache == nil {
		var items []T
		if err := c.get(ctx, path, query, &items); err != nil {
			return nil, err
		}
		return items, nil
	}

	key := cache.Key(path, query)
	if payload, ok := c.cache.Get(key); ok {
		var items []T
		if err := json.Unmarshal(payload, &items); err == nil {
			return items, nil
		}
		// An undecodable cached payload is dropped and refetched.
		c.logger.Warn("discarding corrupt cache entry", "key", key)
	}

	body, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("api: parsing %s response: %w", path, err)
	}
	c.cache.Set(key, body, ttl)
	return items, nil
}
