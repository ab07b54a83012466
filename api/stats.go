// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"time"

	"github.com/cybertiba/sentinel/lib/trend"
)

// Health classifies the latest sample for the dashboard header.
type Health string

const (
	// HealthGood means CPU and memory are both under the warning
	// threshold.
	HealthGood Health = "Good"
	// HealthWarning means at least one of them is at or above it.
	HealthWarning Health = "Warning"
)

// healthThreshold is the usage percentage at which a resource is
// considered under pressure.
const healthThreshold = 80.0

// DashboardStats are the figures on the dashboard stat cards, computed
// from the two most recent samples.
type DashboardStats struct {
	Health Health

	CPUUsage    float64
	MemoryUsage float64
	DiskUsage   float64

	CPUChange    int
	MemoryChange int
	DiskChange   int

	Samples    int
	LastUpdate time.Time
}

// CPUTrend returns the direction of the CPU change.
func (s *DashboardStats) CPUTrend() trend.Direction { return trend.Classify(s.CPUChange) }

// MemoryTrend returns the direction of the memory change.
func (s *DashboardStats) MemoryTrend() trend.Direction { return trend.Classify(s.MemoryChange) }

// DiskTrend returns the direction of the disk change.
func (s *DashboardStats) DiskTrend() trend.Direction { return trend.Classify(s.DiskChange) }

// ComputeStats derives the dashboard figures from a newest-first
// metric history. Returns nil for an empty history. With a single
// sample all changes are zero.
func ComputeStats(metrics []SystemMetric) *DashboardStats {
	if len(metrics) == 0 {
		return nil
	}
	latest := metrics[0]

	stats := &DashboardStats{
		Health:      HealthGood,
		CPUUsage:    latest.CPUUsage,
		MemoryUsage: latest.MemoryUsage,
		DiskUsage:   latest.DiskUsage,
		Samples:     len(metrics),
		LastUpdate:  latest.Timestamp,
	}
	if latest.CPUUsage >= healthThreshold || latest.MemoryUsage >= healthThreshold {
		stats.Health = HealthWarning
	}

	if len(metrics) > 1 {
		previous := metrics[1]
		stats.CPUChange = trend.Change(latest.CPUUsage, previous.CPUUsage)
		stats.MemoryChange = trend.Change(latest.MemoryUsage, previous.MemoryUsage)
		stats.DiskChange = trend.Change(latest.DiskUsage, previous.DiskUsage)
	}
	return stats
}
