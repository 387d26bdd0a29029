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
	"fmt"
	"sort"
	"sync"
)

// Typed registry errors, mirroring the taxonomy used throughout this module.
var (
	ErrPolicyNotFound          = fmt.Errorf("policy not found")
	ErrPolicyAlreadyRegistered = fmt.Errorf("policy already registered")
	ErrInvalidPolicyName       = fmt.Errorf("invalid policy name")
)

// Registry is a thread-safe name-keyed store of Policy implementations.
type Registry struct {
	mu       sync.RWMutex
	policies map[string]Policy
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{policies: make(map[string]Policy)}
}

// Register adds p under p.Name(). It returns ErrPolicyAlreadyRegistered if
// the name is already taken, and ErrInvalidPolicyName for an empty name.
func (r *Registry) Register(p Policy) error {
	name := p.Name()
	if name == "" {
		return ErrInvalidPolicyName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.policies[name]; exists {
		return fmt.Errorf("%w: %q", ErrPolicyAlreadyRegistered, name)
	}
	r.policies[name] = p
	return nil
}

// MustRegister panics if Register fails. Intended for package init().
func (r *Registry) MustRegister(p Policy) {
	if err := r.Register(p); err != nil {
		panic(err)
	}
}

// Get looks up a policy by name.
func (r *Registry) Get(name string) (Policy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.policies[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrPolicyNotFound, name)
	}
	return p, nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.policies[name]
	return ok
}

// List returns the registered policy names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.policies))
	for name := range r.policies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry is the process-wide registry populated by this package's
// init() with the built-in slo and cost policies.
var DefaultRegistry = NewRegistry()

func init() {
	DefaultRegistry.MustRegister(&SLOPolicy{})
	DefaultRegistry.MustRegister(&CostPolicy{})
}

// Register adds p to DefaultRegistry.
func Register(p Policy) error { return DefaultRegistry.Register(p) }

// Get looks up a policy by name in DefaultRegistry.
func Get(name string) (Policy, error) { return DefaultRegistry.Get(name) }

// List returns the names registered in DefaultRegistry.
func List() []string { return DefaultRegistry.List() }
