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

// Package controller implements the GeneralScaler reconcile pipeline and
// the tick loop that drives it.
package controller

import (
	corev1 "k8s.io/api/core/v1"
	"k8s.io/client-go/tools/record"

	autoscalingv1alpha1 "github.com/KushagraAgrawal29/generic-autoscaler/api/v1alpha1"
)

const (
	// ReasonScaledUp indicates the target was scaled up.
	ReasonScaledUp = "ScaledUp"
	// ReasonScaledDown indicates the target was scaled down.
	ReasonScaledDown = "ScaledDown"
	// ReasonScalingFailed indicates a scaling mutation failed.
	ReasonScalingFailed = "ScalingFailed"
	// ReasonMetricsFailed indicates a metric plugin failed to collect a sample.
	ReasonMetricsFailed = "MetricsCollectionFailed"
	// ReasonTargetNotFound indicates the scale target Deployment was not found.
	ReasonTargetNotFound = "TargetNotFound"
	// ReasonCooldown indicates a scale was skipped because of an active cooldown.
	ReasonCooldown = "CooldownActive"
	// ReasonUnknownPolicy indicates the scaler's configured policy type is not registered.
	ReasonUnknownPolicy = "UnknownPolicy"
)

// EventRecorder wraps the Kubernetes event recorder with the reasons this
// controller emits, so call sites never construct event strings directly.
type EventRecorder struct {
	recorder record.EventRecorder
}

// NewEventRecorder returns an EventRecorder backed by recorder. A nil
// recorder is valid; every Record* method becomes a no-op.
func NewEventRecorder(recorder record.EventRecorder) *EventRecorder {
	return &EventRecorder{recorder: recorder}
}

// RecordScaleUp records a scale up event.
func (e *EventRecorder) RecordScaleUp(scaler *autoscalingv1alpha1.GeneralScaler, from, to int32) {
	if e.recorder == nil {
		return
	}
	e.recorder.Eventf(scaler, corev1.EventTypeNormal, ReasonScaledUp,
		"Scaled Deployment/%s from %d to %d replicas", scaler.Spec.TargetRef.Name, from, to)
}

// RecordScaleDown records a scale down event.
func (e *EventRecorder) RecordScaleDown(scaler *autoscalingv1alpha1.GeneralScaler, from, to int32) {
	if e.recorder == nil {
		return
	}
	e.recorder.Eventf(scaler, corev1.EventTypeNormal, ReasonScaledDown,
		"Scaled Deployment/%s from %d to %d replicas", scaler.Spec.TargetRef.Name, from, to)
}

// RecordScalingFailed records a scaling mutation failure.
func (e *EventRecorder) RecordScalingFailed(scaler *autoscalingv1alpha1.GeneralScaler, err error) {
	if e.recorder == nil {
		return
	}
	e.recorder.Eventf(scaler, corev1.EventTypeWarning, ReasonScalingFailed,
		"Failed to scale Deployment/%s: %v", scaler.Spec.TargetRef.Name, err)
}

// RecordMetricsFailed records a metric plugin collection failure.
func (e *EventRecorder) RecordMetricsFailed(scaler *autoscalingv1alpha1.GeneralScaler, plugin string, err error) {
	if e.recorder == nil {
		return
	}
	e.recorder.Eventf(scaler, corev1.EventTypeWarning, ReasonMetricsFailed,
		"Metric plugin %q failed to collect a sample: %v", plugin, err)
}

// RecordTargetNotFound records a missing target Deployment.
func (e *EventRecorder) RecordTargetNotFound(scaler *autoscalingv1alpha1.GeneralScaler, err error) {
	if e.recorder == nil {
		return
	}
	e.recorder.Eventf(scaler, corev1.EventTypeWarning, ReasonTargetNotFound,
		"Target Deployment/%s not found: %v", scaler.Spec.TargetRef.Name, err)
}

// RecordCooldown records that a scale was skipped because of an active cooldown.
func (e *EventRecorder) RecordCooldown(scaler *autoscalingv1alpha1.GeneralScaler, direction string) {
	if e.recorder == nil {
		return
	}
	e.recorder.Eventf(scaler, corev1.EventTypeNormal, ReasonCooldown,
		"Scaling %s skipped, cooldown active", direction)
}

// RecordUnknownPolicy records a warning event when the scaler's configured
// policy type is not registered.
func (e *EventRecorder) RecordUnknownPolicy(scaler *autoscalingv1alpha1.GeneralScaler, policyType string) {
	if e.recorder == nil {
		return
	}
	e.recorder.Eventf(scaler, corev1.EventTypeWarning, ReasonUnknownPolicy,
		"spec.policy.type=%q is not registered; replica count left unchanged", policyType)
}
