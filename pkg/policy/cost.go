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

// CostPolicy scales against a per-replica cost ceiling rather than an SLO
// target: it compares the current cost-per-replica (mean(samples) /
// current) against MaxCostPerReplica and scales up when the fleet is
// running hotter than it can afford, down when it has slack, and leaves
// replicas alone in between.
//
// Scale-up rounds the required replica count up (a fleet that needs 11.2
// replicas' worth of capacity gets 12), and is capped at maxReplicas.
// Scale-down rounds down against a more conservative 0.8x cost ceiling and
// is floored at minReplicas only. It has no maxReplicas cap, so its result
// can exceed maxReplicas (current=100, mean=200, maxCost=5 yields 50).
type CostPolicy struct{}

// Name implements Policy.
func (p *CostPolicy) Name() string { return "cost" }

// Compute implements Policy.
func (p *CostPolicy) Compute(_ context.Context, input Input) int {
	maxCost := 5.0
	if input.Config.MaxCostPerReplica != nil {
		maxCost = *input.Config.MaxCostPerReplica
	}
	if maxCost <= 0 {
		return input.Current
	}

	m := Mean(input.Samples)

	var costPerReplica float64
	if input.Current > 0 {
		costPerReplica = m / float64(input.Current)
	}

	switch {
	case costPerReplica > maxCost:
		q := m / maxCost
		raw := int(q)
		if q > float64(raw) {
			raw++
		}
		if raw > input.Bounds.Max {
			raw = input.Bounds.Max
		}
		return raw

	case costPerReplica < 0.5*maxCost:
		raw := int(m / (0.8 * maxCost))
		if raw < input.Bounds.Min {
			raw = input.Bounds.Min
		}
		return raw

	default:
		return input.Current
	}
}
