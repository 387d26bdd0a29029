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
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:printcolumn:name="Target",type=string,JSONPath=`.spec.targetRef.name`
// +kubebuilder:printcolumn:name="Min",type=integer,JSONPath=`.spec.minReplicas`
// +kubebuilder:printcolumn:name="Max",type=integer,JSONPath=`.spec.maxReplicas`
// +kubebuilder:printcolumn:name="Current",type=integer,JSONPath=`.status.currentReplicas`
// +kubebuilder:printcolumn:name="Age",type=date,JSONPath=`.metadata.creationTimestamp`

// GeneralScaler is the cluster-wide-listed, namespaced custom resource
// that declares one autoscaling policy over one target workload.
type GeneralScaler struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   GeneralScalerSpec   `json:"spec,omitempty"`
	Status GeneralScalerStatus `json:"status,omitempty"`
}

// GeneralScalerSpec defines the desired autoscaling behavior.
type GeneralScalerSpec struct {
	// TargetRef identifies the Deployment, in the scaler's own namespace,
	// whose replica count this scaler controls.
	TargetRef TargetRef `json:"targetRef"`

	// MinReplicas is the lower bound on the replica count.
	// +kubebuilder:default=1
	// +kubebuilder:validation:Minimum=1
	MinReplicas int32 `json:"minReplicas,omitempty"`

	// MaxReplicas is the upper bound on the replica count.
	// +kubebuilder:default=10
	// +kubebuilder:validation:Minimum=1
	MaxReplicas int32 `json:"maxReplicas,omitempty"`

	// Metrics is the ordered list of metric sources consulted on each
	// reconcile. An empty or fully-failed list aborts the reconcile
	// without mutation.
	Metrics []MetricSource `json:"metrics,omitempty"`

	// Policy selects the arithmetic used to turn samples into a desired
	// replica count.
	Policy PolicySpec `json:"policy,omitempty"`

	// Safety bounds how aggressively the scaler is allowed to act.
	// +optional
	Safety SafetySpec `json:"safety,omitempty"`
}

// TargetRef references the target Deployment to scale.
type TargetRef struct {
	// Name of the target Deployment, in the scaler's own namespace.
	Name string `json:"name"`
}

// MetricSource is one entry in spec.metrics: a plugin name plus its
// free-form, plugin-specific configuration.
type MetricSource struct {
	// Plugin is the registered metric plugin name, e.g. "prometheus" or
	// "redis".
	Plugin string `json:"plugin"`

	// Config is opaque to everything except the named plugin.
	// +optional
	Config map[string]string `json:"config,omitempty"`
}

// PolicySpec selects and parameterizes the scaling policy.
type PolicySpec struct {
	// Type is "slo" or "cost".
	// +kubebuilder:validation:Enum=slo;cost
	Type string `json:"type,omitempty"`

	// SLOTarget is the target aggregated-metric value for the slo policy.
	// +optional
	SLOTarget *float64 `json:"sloTarget,omitempty"`

	// MaxCostPerReplica is the ceiling on cost-per-replica for the cost
	// policy.
	// +optional
	MaxCostPerReplica *float64 `json:"maxCostPerReplica,omitempty"`
}

// SafetySpec configures the cooldown and rate-limit guards.
type SafetySpec struct {
	// MaxScaleRate is the maximum replica delta applied in one mutation.
	// +kubebuilder:default=2
	MaxScaleRate int32 `json:"maxScaleRate,omitempty"`

	// ScaleUpCooldown is a duration string of the form "<int>{s,m,h,d}".
	// +kubebuilder:default="5m"
	ScaleUpCooldown string `json:"scaleUpCooldown,omitempty"`

	// ScaleDownCooldown is a duration string of the form "<int>{s,m,h,d}".
	// +kubebuilder:default="5m"
	ScaleDownCooldown string `json:"scaleDownCooldown,omitempty"`
}

// GeneralScalerStatus is the observed state, written back after each
// reconcile.
type GeneralScalerStatus struct {
	// CurrentReplicas is the replica count requested of the target as of
	// the last reconcile.
	CurrentReplicas int32 `json:"currentReplicas,omitempty"`

	// LastScaleTime is the timestamp of the last successful scale
	// mutation, RFC-3339 UTC.
	// +optional
	LastScaleTime *metav1.Time `json:"lastScaleTime,omitempty"`

	// Conditions holds the single "Ready" condition described in the data
	// model.
	// +optional
	Conditions []metav1.Condition `json:"conditions,omitempty"`
}

// Condition reasons written to status.conditions[type=Ready].reason.
const (
	ReasonScalingApplied = "ScalingApplied"
	ReasonCooldownActive = "CooldownActive"
)

// ConditionTypeReady is the single condition type this scaler reports.
const ConditionTypeReady = "Ready"

// +kubebuilder:object:root=true

// GeneralScalerList contains a list of GeneralScaler.
type GeneralScalerList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []GeneralScaler `json:"items"`
}
