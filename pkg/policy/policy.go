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

// Package policy implements the PolicyEngine: the arithmetic that maps a
// scaler's current replica count and collected metric samples to a desired
// replica count, bounded by the scaler's configured replica window (the
// cost policy's scale-down branch is floored at the minimum only).
package policy

import "context"

// Bounds is the [Min, Max] replica window a policy's output is clamped to.
type Bounds struct {
	Min int
	Max int
}

// Clamp constrains desired to [b.Min, b.Max].
func (b Bounds) Clamp(desired int) int {
	if desired < b.Min {
		return b.Min
	}
	if desired > b.Max {
		return b.Max
	}
	return desired
}

// Config carries the policy-specific parameters taken from
// GeneralScalerSpec.Policy. A nil field means "use the type's documented
// default"; Policy implementations are responsible for defaulting.
type Config struct {
	// SLOTarget is the slo policy's target aggregated-metric value.
	SLOTarget *float64
	// MaxCostPerReplica is the cost policy's per-replica cost ceiling.
	MaxCostPerReplica *float64
}

// Input is everything a Policy needs to compute a desired replica count.
type Input struct {
	Current int
	Samples []float64
	Config  Config
	Bounds  Bounds
}

// Policy is the capability every scaling policy implements: turn an Input
// into a desired replica count. Each implementation applies Input.Bounds
// itself: SLOPolicy clamps to [Min, Max]; CostPolicy caps scale-up at Max
// and floors scale-down at Min only.
type Policy interface {
	// Name is the registry key, e.g. "slo" or "cost".
	Name() string
	// Compute returns the desired replica count for the given input.
	Compute(ctx context.Context, input Input) int
}

// Mean returns the arithmetic mean of samples, or 0 for an empty slice.
func Mean(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += s
	}
	return sum / float64(len(samples))
}
