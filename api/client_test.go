// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cybertiba/sentinel/lib/cache"
	"github.com/cybertiba/sentinel/lib/clock"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestClient builds a Client and Store against the given server,
// with the session snapshot in a temp directory.
func newTestClient(t *testing.T, serverURL string, responseCache *cache.Cache) (*Client, *Store) {
	t.Helper()
	client, err := NewClient(ClientConfig{
		BaseURL: serverURL,
		Logger:  testLogger(),
		Cache:   responseCache,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	store, err := NewStore(StoreConfig{
		Client: client,
		Path:   filepath.Join(t.TempDir(), "session.json"),
	})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return client, store
}

// seedSession persists a snapshot and rehydrates the store from it.
func seedSession(t *testing.T, store *Store, accessToken, refreshToken string) {
	t.Helper()
	session := Session{
		User:          &User{ID: 1, Username: "demo", Email: "demo@cybertiba.ke"},
		AccessToken:   accessToken,
		RefreshToken:  refreshToken,
		Authenticated: true,
	}
	data, err := json.Marshal(session)
	if err != nil {
		t.Fatalf("marshal session: %v", err)
	}
	if err := os.WriteFile(store.path, data, 0600); err != nil {
		t.Fatalf("write session: %v", err)
	}
	if err := store.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
}

func TestNewClient(t *testing.T) {
	t.Run("requires base URL", func(t *testing.T) {
		if _, err := NewClient(ClientConfig{}); err == nil {
			t.Fatal("expected error for empty BaseURL")
		}
	})
	t.Run("strips trailing slash", func(t *testing.T) {
		client, err := NewClient(ClientConfig{BaseURL: "http://localhost:8000/", Logger: testLogger()})
		if err != nil {
			t.Fatalf("NewClient: %v", err)
		}
		if client.baseURL != "http://localhost:8000" {
			t.Errorf("baseURL = %q", client.baseURL)
		}
	})
}

func TestRefreshAndRetry(t *testing.T) {
	t.Run("single 401 triggers one refresh and one retry", func(t *testing.T) {
		var metricsCalls, refreshCalls int
		mux := http.NewServeMux()
		mux.HandleFunc("/api/monitoring/metrics/", func(writer http.ResponseWriter, request *http.Request) {
			metricsCalls++
			if request.Header.Get("Authorization") != "Bearer fresh-token" {
				writer.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(writer).Encode(map[string]string{"detail": "Given token not valid for any token type"})
				return
			}
			json.NewEncoder(writer).Encode([]SystemMetric{{ID: 1, CPUUsage: 42.0}})
		})
		mux.HandleFunc("/api/users/refresh/", func(writer http.ResponseWriter, request *http.Request) {
			refreshCalls++
			var body map[string]string
			json.NewDecoder(request.Body).Decode(&body)
			if body["refresh"] != "refresh-token" {
				t.Errorf("refresh payload = %v", body)
			}
			json.NewEncoder(writer).Encode(map[string]string{"access": "fresh-token"})
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		client, store := newTestClient(t, server.URL, nil)
		seedSession(t, store, "stale-token", "refresh-token")

		metrics, err := client.Metrics(context.Background(), 0)
		if err != nil {
			t.Fatalf("Metrics: %v", err)
		}
		if len(metrics) != 1 || metrics[0].CPUUsage != 42.0 {
			t.Errorf("metrics = %+v", metrics)
		}
		if refreshCalls != 1 {
			t.Errorf("refresh calls = %d, want 1", refreshCalls)
		}
		if metricsCalls != 2 {
			t.Errorf("metrics calls = %d, want 2", metricsCalls)
		}
		if store.AccessToken() != "fresh-token" {
			t.Errorf("access token = %q, want the refreshed one", store.AccessToken())
		}
	})

	t.Run("refresh failure forces logout with no retry", func(t *testing.T) {
		var metricsCalls, refreshCalls int
		mux := http.NewServeMux()
		mux.HandleFunc("/api/monitoring/metrics/", func(writer http.ResponseWriter, request *http.Request) {
			metricsCalls++
			writer.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(writer).Encode(map[string]string{"detail": "token expired"})
		})
		mux.HandleFunc("/api/users/refresh/", func(writer http.ResponseWriter, request *http.Request) {
			refreshCalls++
			writer.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(writer).Encode(map[string]string{"detail": "refresh token expired"})
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		client, store := newTestClient(t, server.URL, nil)
		seedSession(t, store, "stale-token", "dead-refresh-token")

		_, err := client.Metrics(context.Background(), 0)
		if err == nil {
			t.Fatal("expected error")
		}
		if !IsStatus(err, http.StatusUnauthorized) {
			t.Errorf("error = %v, want 401", err)
		}
		if refreshCalls != 1 {
			t.Errorf("refresh calls = %d, want 1", refreshCalls)
		}
		if metricsCalls != 1 {
			t.Errorf("metrics calls = %d, want 1 (no retry)", metricsCalls)
		}
		if store.IsAuthenticated() {
			t.Error("store still authenticated after failed refresh")
		}
		if _, err := os.Stat(store.path); !os.IsNotExist(err) {
			t.Error("session snapshot survived the forced logout")
		}
	})

	t.Run("persistent 401 refreshes at most once", func(t *testing.T) {
		var metricsCalls, refreshCalls int
		mux := http.NewServeMux()
		mux.HandleFunc("/api/monitoring/metrics/", func(writer http.ResponseWriter, request *http.Request) {
			metricsCalls++
			writer.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(writer).Encode(map[string]string{"detail": "still not valid"})
		})
		mux.HandleFunc("/api/users/refresh/", func(writer http.ResponseWriter, request *http.Request) {
			refreshCalls++
			json.NewEncoder(writer).Encode(map[string]string{"access": "fresh-token"})
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		client, store := newTestClient(t, server.URL, nil)
		seedSession(t, store, "stale-token", "refresh-token")

		if _, err := client.Metrics(context.Background(), 0); err == nil {
			t.Fatal("expected error")
		}
		if refreshCalls != 1 {
			t.Errorf("refresh calls = %d, want exactly 1", refreshCalls)
		}
		if metricsCalls != 2 {
			t.Errorf("metrics calls = %d, want 2 (original plus one retry)", metricsCalls)
		}
	})
}

func TestConnectivityFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	serverURL := server.URL
	server.Close()

	client, err := NewClient(ClientConfig{BaseURL: serverURL, Logger: testLogger()})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	_, err = client.Metrics(context.Background(), 0)
	if err == nil {
		t.Fatal("expected error against a closed server")
	}
	if got := Notice(err); got != "Network error. Please check your connection." {
		t.Errorf("Notice = %q", got)
	}
}

func TestCachedMetrics(t *testing.T) {
	var calls int
	mux := http.NewServeMux()
	mux.HandleFunc("/api/monitoring/metrics/", func(writer http.ResponseWriter, request *http.Request) {
		calls++
		json.NewEncoder(writer).Encode([]SystemMetric{{ID: calls, CPUUsage: 50.0}})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	fake := clock.Fake(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	client, _ := newTestClient(t, server.URL, cache.New(fake))

	ctx := context.Background()
	if _, err := client.CachedMetrics(ctx, 20); err != nil {
		t.Fatalf("CachedMetrics: %v", err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}

	// Inside the freshness window: served from cache.
	fake.Advance(59 * time.Second)
	metrics, err := client.CachedMetrics(ctx, 20)
	if err != nil {
		t.Fatalf("CachedMetrics: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (cache hit)", calls)
	}
	if metrics[0].ID != 1 {
		t.Errorf("served metric ID = %d, want the cached 1", metrics[0].ID)
	}

	// Past the window: refetched.
	fake.Advance(2 * time.Second)
	metrics, err = client.CachedMetrics(ctx, 20)
	if err != nil {
		t.Fatalf("CachedMetrics: %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2 (refetch)", calls)
	}
	if metrics[0].ID != 2 {
		t.Errorf("served metric ID = %d, want the fresh 2", metrics[0].ID)
	}

	// The uncached path always hits the network.
	if _, err := client.Metrics(ctx, 20); err != nil {
		t.Fatalf("Metrics: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3 (bypass)", calls)
	}
}

func TestRuleMutationsInvalidateCache(t *testing.T) {
	var listCalls int
	mux := http.NewServeMux()
	mux.HandleFunc("/api/automation/rules/", func(writer http.ResponseWriter, request *http.Request) {
		switch request.Method {
		case http.MethodGet:
			listCalls++
			json.NewEncoder(writer).Encode([]AutomationRule{{ID: 1, Condition: ConditionCPUHigh, Threshold: 90, Action: ActionEmailAlert, Active: true}})
		case http.MethodPost:
			json.NewEncoder(writer).Encode(AutomationRule{ID: 2, Condition: ConditionDiskHigh, Threshold: 85, Action: ActionLogOnly, Active: true})
		}
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	fake := clock.Fake(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	client, _ := newTestClient(t, server.URL, cache.New(fake))
	ctx := context.Background()

	if _, err := client.CachedRules(ctx, 0); err != nil {
		t.Fatalf("CachedRules: %v", err)
	}
	if _, err := client.CachedRules(ctx, 0); err != nil {
		t.Fatalf("CachedRules: %v", err)
	}
	if listCalls != 1 {
		t.Fatalf("list calls = %d, want 1", listCalls)
	}

	// Creating a rule changes what the list returns: the cached copy
	// must not be served afterwards.
	if _, err := client.CreateRule(ctx, RuleDraft{Condition: ConditionDiskHigh, Threshold: 85, Action: ActionLogOnly, Active: true}); err != nil {
		t.Fatalf("CreateRule: %v", err)
	}
	if _, err := client.CachedRules(ctx, 0); err != nil {
		t.Fatalf("CachedRules: %v", err)
	}
	if listCalls != 2 {
		t.Errorf("list calls = %d, want 2 after invalidation", listCalls)
	}
}
