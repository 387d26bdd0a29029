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

package v1alpha1

import (
	"fmt"
)

// Validate validates the GeneralScaler.
func (s *GeneralScaler) Validate() error {
	if err := s.Spec.Validate(); err != nil {
		return fmt.Errorf("spec validation failed: %w", err)
	}
	return nil
}

// Validate validates the GeneralScalerSpec.
func (s *GeneralScalerSpec) Validate() error {
	if s.TargetRef.Name == "" {
		return fmt.Errorf("targetRef.name is required")
	}

	if s.MaxReplicas <= 0 {
		return fmt.Errorf("maxReplicas must be greater than 0")
	}
	if s.MinReplicas < 0 {
		return fmt.Errorf("minReplicas cannot be negative")
	}
	if s.MinReplicas > s.MaxReplicas {
		return fmt.Errorf("minReplicas cannot be greater than maxReplicas")
	}

	if len(s.Metrics) == 0 {
		return fmt.Errorf("at least one metric source is required")
	}
	for i, m := range s.Metrics {
		if m.Plugin == "" {
			return fmt.Errorf("metrics[%d].plugin is required", i)
		}
	}

	if err := s.Policy.Validate(); err != nil {
		return fmt.Errorf("policy validation failed: %w", err)
	}

	return nil
}

// Validate validates the PolicySpec.
func (p *PolicySpec) Validate() error {
	switch p.Type {
	case "", "slo", "cost":
		return nil
	default:
		return fmt.Errorf("policy.type must be \"slo\" or \"cost\", got %q", p.Type)
	}
}

// Default replica bounds, cooldowns and rate limit applied by SetDefaults.
const (
	DefaultMinReplicas      = 1
	DefaultMaxReplicas      = 10
	DefaultSLOTarget        = 80.0
	DefaultMaxCostPerReplic = 5.0
	DefaultMaxScaleRate     = 2
	DefaultCooldown         = "5m"
)

// SetDefaults fills in the documented defaults for any field left zero.
func (s *GeneralScaler) SetDefaults() {
	if s.Spec.MinReplicas == 0 {
		s.Spec.MinReplicas = DefaultMinReplicas
	}
	if s.Spec.MaxReplicas == 0 {
		s.Spec.MaxReplicas = DefaultMaxReplicas
	}
	if s.Spec.Policy.Type == "" {
		s.Spec.Policy.Type = "slo"
	}
	if s.Spec.Policy.SLOTarget == nil {
		v := DefaultSLOTarget
		s.Spec.Policy.SLOTarget = &v
	}
	if s.Spec.Policy.MaxCostPerReplica == nil {
		v := DefaultMaxCostPerReplic
		s.Spec.Policy.MaxCostPerReplica = &v
	}
	if s.Spec.Safety.MaxScaleRate == 0 {
		s.Spec.Safety.MaxScaleRate = DefaultMaxScaleRate
	}
	if s.Spec.Safety.ScaleUpCooldown == "" {
		s.Spec.Safety.ScaleUpCooldown = DefaultCooldown
	}
	if s.Spec.Safety.ScaleDownCooldown == "" {
		s.Spec.Safety.ScaleDownCooldown = DefaultCooldown
	}
}

// Key returns the scaler key used throughout the reconciler and cooldown
// ledger: "<namespace>/<name>".
func (s *GeneralScaler) Key() string {
	return s.Namespace + "/" + s.Name
}
