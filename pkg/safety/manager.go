/*
Copyright 2026 The Generic Autoscaler Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package safety implements the SafetyManager: the cooldown ledger and
// rate-limit guard that sit between a policy's raw desired replica count
// and the replica count the reconciler is actually allowed to apply.
package safety

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"sigs.k8s.io/controller-runtime/pkg/log"

	"k8s.io/utils/clock"
)

// Direction is which way a scale would move.
type Direction string

const (
	// DirectionUp is a scale-up move (desired > current).
	DirectionUp Direction = "up"
	// DirectionDown is a scale-down move (desired < current).
	DirectionDown Direction = "down"
)

// defaultCooldownSeconds is used whenever a configured cooldown string
// fails to parse, after logging the parse error.
const defaultCooldownSeconds = 300

// Config carries the safety parameters taken from GeneralScalerSpec.Safety.
type Config struct {
	MaxScaleRate      int32
	ScaleUpCooldown   string
	ScaleDownCooldown string
}

// Manager tracks, per scaler key, the last time a scale operation was
// applied, and enforces cooldown windows and rate limits against that
// ledger. A missing ledger entry means "never scaled" and is always
// permitted.
type Manager struct {
	mu     sync.Mutex
	ledger map[string]time.Time
	clock  clock.Clock
}

// NewManager returns a Manager driven by the real wall clock.
func NewManager() *Manager {
	return NewManagerWithClock(clock.RealClock{})
}

// NewManagerWithClock returns a Manager driven by c, for deterministic
// tests against a clock.Clock (or clock/testing.FakeClock).
func NewManagerWithClock(c clock.Clock) *Manager {
	return &Manager{
		ledger: make(map[string]time.Time),
		clock:  c,
	}
}

// CanScale reports whether key is outside its cooldown window for the
// given direction. A key with no recorded scale is always allowed.
func (m *Manager) CanScale(key string, cfg Config, direction Direction) bool {
	m.mu.Lock()
	last, ok := m.ledger[key]
	m.mu.Unlock()

	if !ok {
		return true
	}

	cooldownStr := cfg.ScaleUpCooldown
	if direction == DirectionDown {
		cooldownStr = cfg.ScaleDownCooldown
	}

	cooldown := parseDuration(cooldownStr)
	elapsed := m.clock.Since(last)
	return elapsed >= cooldown
}

// ApplyRateLimits clamps desired to within cfg.MaxScaleRate replicas of
// current. A zero or negative MaxScaleRate disables rate limiting.
func ApplyRateLimits(current, desired int, cfg Config) int {
	if cfg.MaxScaleRate <= 0 || desired == current {
		return desired
	}

	rate := int(cfg.MaxScaleRate)
	if desired > current+rate {
		return current + rate
	}
	if desired < current-rate {
		return current - rate
	}
	return desired
}

// RecordScaleOperation marks key as scaled at the current clock time. This
// must only be called after a scale mutation actually takes effect — never
// for a desired count that rate limiting collapsed back to current.
func (m *Manager) RecordScaleOperation(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ledger[key] = m.clock.Now()
}

// parseDuration parses the "<int>[smhd]" cooldown grammar used throughout
// GeneralScalerSpec.Safety. A malformed value logs an error and falls back
// to defaultCooldownSeconds rather than failing the reconcile.
func parseDuration(s string) time.Duration {
	if len(s) < 2 {
		log.Log.Error(fmt.Errorf("cooldown %q too short", s), "using default cooldown")
		return defaultCooldownSeconds * time.Second
	}

	unit := s[len(s)-1]
	var multiplier int64
	switch unit {
	case 's':
		multiplier = 1
	case 'm':
		multiplier = 60
	case 'h':
		multiplier = 3600
	case 'd':
		multiplier = 86400
	default:
		log.Log.Error(fmt.Errorf("cooldown %q has unrecognized unit %q", s, unit), "using default cooldown")
		return defaultCooldownSeconds * time.Second
	}

	n, err := strconv.ParseInt(s[:len(s)-1], 10, 64)
	if err != nil || n < 0 {
		log.Log.Error(fmt.Errorf("cooldown %q has invalid numeric part: %w", s, err), "using default cooldown")
		return defaultCooldownSeconds * time.Second
	}

	return time.Duration(n*multiplier) * time.Second
}
