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

// Package metrics implements the MetricPlugin dispatch surface: the
// pluggable metric sources a GeneralScaler reads samples from, plus the
// Prometheus exporter the controller itself is observed through.
package metrics

import "context"

// MetricPlugin is the capability every metric source implements: collect
// one sample given a scaler's per-source configuration.
type MetricPlugin interface {
	// Name is the registry key this plugin is dispatched under, e.g.
	// "prometheus" or "redis".
	Name() string
	// GetMetric returns a single metric sample for the given config. An
	// error here is not fatal to the reconcile: the caller skips the
	// sample and continues with the remaining configured sources.
	GetMetric(ctx context.Context, config map[string]string) (float64, error)
}
