// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"testing"
	"time"

	"github.com/cybertiba/sentinel/lib/trend"
)

func TestComputeStats(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("change and trend from the two latest samples", func(t *testing.T) {
		stats := ComputeStats([]SystemMetric{
			{CPUUsage: 85.2, MemoryUsage: 60.0, DiskUsage: 40.0, Timestamp: now},
			{CPUUsage: 80.0, MemoryUsage: 75.0, DiskUsage: 40.0, Timestamp: now.Add(-time.Minute)},
		})
		if stats == nil {
			t.Fatal("ComputeStats returned nil")
		}
		if stats.CPUChange != 6 {
			t.Errorf("CPUChange = %d, want 6", stats.CPUChange)
		}
		if stats.CPUTrend() != trend.Up {
			t.Errorf("CPUTrend = %v, want up", stats.CPUTrend())
		}
		if stats.MemoryChange != -20 {
			t.Errorf("MemoryChange = %d, want -20", stats.MemoryChange)
		}
		if stats.MemoryTrend() != trend.Down {
			t.Errorf("MemoryTrend = %v, want down", stats.MemoryTrend())
		}
		if stats.DiskTrend() != trend.Flat {
			t.Errorf("DiskTrend = %v, want flat", stats.DiskTrend())
		}
		if !stats.LastUpdate.Equal(now) {
			t.Errorf("LastUpdate = %v, want %v", stats.LastUpdate, now)
		}
	})

	t.Run("health classification", func(t *testing.T) {
		good := ComputeStats([]SystemMetric{{CPUUsage: 79.9, MemoryUsage: 79.9}})
		if good.Health != HealthGood {
			t.Errorf("Health = %q, want %q", good.Health, HealthGood)
		}
		warnCPU := ComputeStats([]SystemMetric{{CPUUsage: 85.2, MemoryUsage: 20.0}})
		if warnCPU.Health != HealthWarning {
			t.Errorf("Health = %q, want %q", warnCPU.Health, HealthWarning)
		}
		warnMemory := ComputeStats([]SystemMetric{{CPUUsage: 20.0, MemoryUsage: 80.0}})
		if warnMemory.Health != HealthWarning {
			t.Errorf("Health = %q, want %q", warnMemory.Health, HealthWarning)
		}
	})

	t.Run("single sample has zero change", func(t *testing.T) {
		stats := ComputeStats([]SystemMetric{{CPUUsage: 50.0}})
		if stats.CPUChange != 0 || stats.MemoryChange != 0 || stats.DiskChange != 0 {
			t.Errorf("changes = %d/%d/%d, want 0/0/0", stats.CPUChange, stats.MemoryChange, stats.DiskChange)
		}
	})

	t.Run("empty history", func(t *testing.T) {
		if stats := ComputeStats(nil); stats != nil {
			t.Errorf("ComputeStats(nil) = %+v, want nil", stats)
		}
	})
}
