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

import (
	"context"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

// Engine dispatches a scaling decision to the Policy registered under a
// scaler's configured policy type.
type Engine struct {
	registry *Registry
}

// NewEngine returns an Engine backed by DefaultRegistry.
func NewEngine() *Engine {
	return &Engine{registry: DefaultRegistry}
}

// NewEngineWithRegistry returns an Engine backed by a custom Registry, for
// tests that want to exercise a policy set in isolation.
func NewEngineWithRegistry(r *Registry) *Engine {
	return &Engine{registry: r}
}

// Has reports whether policyType is registered in the engine's registry.
func (e *Engine) Has(policyType string) bool {
	return e.registry.Has(policyType)
}

// Compute resolves policyType in the engine's registry and returns its
// desired replica count. An unknown policy type is not an error: it is
// logged as a warning and the current replica count is returned unchanged,
// leaving the scaler where it is rather than failing the reconcile.
func (e *Engine) Compute(ctx context.Context, policyType string, input Input) int {
	p, err := e.registry.Get(policyType)
	if err != nil {
		log.FromContext(ctx).Info("unknown policy type, leaving replica count unchanged",
			"policyType", policyType, "current", input.Current)
		return input.Current
	}
	return p.Compute(ctx, input)
}
