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

package safety

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	clocktesting "k8s.io/utils/clock/testing"
)

func TestApplyRateLimits_ScaleUp(t *testing.T) {
	desired := ApplyRateLimits(5, 10, Config{MaxScaleRate: 2})
	assert.Equal(t, 7, desired)
}

func TestApplyRateLimits_ScaleDown(t *testing.T) {
	desired := ApplyRateLimits(10, 2, Config{MaxScaleRate: 2})
	assert.Equal(t, 8, desired)
}

func TestApplyRateLimits_NoOpWhenUnchanged(t *testing.T) {
	desired := ApplyRateLimits(5, 5, Config{MaxScaleRate: 2})
	assert.Equal(t, 5, desired)
}

func TestApplyRateLimits_DisabledWhenZero(t *testing.T) {
	desired := ApplyRateLimits(5, 50, Config{MaxScaleRate: 0})
	assert.Equal(t, 50, desired)
}

func TestCanScale_NeverScaledIsAlwaysAllowed(t *testing.T) {
	m := NewManagerWithClock(clocktesting.NewFakeClock(time.Unix(100, 0)))
	allowed := m.CanScale("default/web", Config{ScaleUpCooldown: "30s", ScaleDownCooldown: "30s"}, DirectionUp)
	assert.True(t, allowed)
}

func TestCanScale_CooldownActive(t *testing.T) {
	fc := clocktesting.NewFakeClock(time.Unix(100, 0))
	m := NewManagerWithClock(fc)

	m.RecordScaleOperation("default/web")
	fc.SetTime(time.Unix(120, 0))

	allowed := m.CanScale("default/web", Config{ScaleUpCooldown: "30s", ScaleDownCooldown: "30s"}, DirectionUp)
	assert.False(t, allowed)
}

func TestCanScale_CooldownExpired(t *testing.T) {
	fc := clocktesting.NewFakeClock(time.Unix(100, 0))
	m := NewManagerWithClock(fc)

	m.RecordScaleOperation("default/web")
	fc.SetTime(time.Unix(131, 0))

	allowed := m.CanScale("default/web", Config{ScaleUpCooldown: "30s", ScaleDownCooldown: "30s"}, DirectionUp)
	assert.True(t, allowed)
}

func TestCanScale_UsesDirectionSpecificCooldown(t *testing.T) {
	fc := clocktesting.NewFakeClock(time.Unix(100, 0))
	m := NewManagerWithClock(fc)

	m.RecordScaleOperation("default/web")
	fc.SetTime(time.Unix(105, 0))

	cfg := Config{ScaleUpCooldown: "5m", ScaleDownCooldown: "1s"}
	assert.False(t, m.CanScale("default/web", cfg, DirectionUp))
	assert.True(t, m.CanScale("default/web", cfg, DirectionDown))
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 30*time.Second, parseDuration("30s"))
	assert.Equal(t, 5*time.Minute, parseDuration("5m"))
	assert.Equal(t, 2*time.Hour, parseDuration("2h"))
	assert.Equal(t, 3*24*time.Hour, parseDuration("3d"))
	assert.Equal(t, defaultCooldownSeconds*time.Second, parseDuration("garbage"))
	assert.Equal(t, defaultCooldownSeconds*time.Second, parseDuration(""))
	assert.Equal(t, defaultCooldownSeconds*time.Second, parseDuration("5"))
}
