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

package policy

import "context"

// SLOPolicy scales proportionally to how far the aggregated metric sits
// from its target: desired = current * (mean(samples) / target).
//
// The product truncates toward zero rather than rounding: a metric just
// above its target leaves a small replica count unchanged, and a metric
// just below its target drops a replica.
type SLOPolicy struct{}

// Name implements Policy.
func (p *SLOPolicy) Name() string { return "slo" }

// Compute implements Policy.
func (p *SLOPolicy) Compute(_ context.Context, input Input) int {
	target := 80.0
	if input.Config.SLOTarget != nil {
		target = *input.Config.SLOTarget
	}

	m := Mean(input.Samples)

	ratio := 1.0
	if target > 0 {
		ratio = m / target
	}

	raw := int(float64(input.Current) * ratio)
	return input.Bounds.Clamp(raw)
}
