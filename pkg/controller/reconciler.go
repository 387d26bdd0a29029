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

package controller

import (
	"context"
	"fmt"
	"time"

	appsv1 "k8s.io/api/apps/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/log"

	autoscalingv1alpha1 "github.com/KushagraAgrawal29/generic-autoscaler/api/v1alpha1"
	"github.com/KushagraAgrawal29/generic-autoscaler/pkg/metrics"
	"github.com/KushagraAgrawal29/generic-autoscaler/pkg/policy"
	"github.com/KushagraAgrawal29/generic-autoscaler/pkg/safety"
)

// Error taxonomy labels, used both for structured logging and the
// generalscaler_reconcile_errors_total metric's error_type label.
const (
	errTypeConfiguration = "ConfigurationError"
	errTypeTargetMissing = "TargetMissing"
	errTypeOrchestrator  = "OrchestratorError"
	errTypePlugin        = "PluginError"
)

// Reconciler runs the per-scaler pipeline: read target, collect metrics,
// compute desired replicas, gate on cooldown, rate limit, mutate, and patch
// status. PolicyEngine, the metric plugin registry, and SafetyManager are
// injected collaborators constructed once at startup, not re-created per
// reconcile.
type Reconciler struct {
	Client        client.Client
	Policy        *policy.Engine
	MetricPlugins *metrics.Registry
	Safety        *safety.Manager
	EventRecorder *EventRecorder
}

// NewReconciler returns a Reconciler wired to its collaborators. A nil
// MetricPlugins falls back to metrics.DefaultRegistry.
func NewReconciler(c client.Client, eng *policy.Engine, plugins *metrics.Registry, safetyMgr *safety.Manager, recorder *EventRecorder) *Reconciler {
	if plugins == nil {
		plugins = metrics.DefaultRegistry
	}
	return &Reconciler{
		Client:        c,
		Policy:        eng,
		MetricPlugins: plugins,
		Safety:        safetyMgr,
		EventRecorder: recorder,
	}
}

// ReconcileScaler runs one full pass of the 9-step pipeline for scaler.
// It never returns an error for conditions the taxonomy treats as
// per-scaler log-and-skip (configuration errors, a missing target, plugin
// failures, status-patch failures); it returns an error only for an
// orchestrator failure on the mutation itself, which the tick loop
// aggregates but does not let abort other scalers' reconciles.
func (r *Reconciler) ReconcileScaler(ctx context.Context, scaler *autoscalingv1alpha1.GeneralScaler) error {
	logger := log.FromContext(ctx).WithValues("scaler", scaler.Key())
	logger.Info("🔄 reconciling scaler")

	start := time.Now()
	defer func() {
		metrics.RecordReconcileLatency(scaler.Namespace, scaler.Spec.Policy.Type, time.Since(start).Seconds())
	}()

	// Step 1: parse identity, default, and validate.
	if scaler.Spec.TargetRef.Name == "" {
		logger.Error(fmt.Errorf("targetRef.name is empty"), "❌ configuration error, skipping")
		metrics.RecordReconcileError(scaler.Namespace, scaler.Spec.Policy.Type, errTypeConfiguration)
		return nil
	}
	scaler.SetDefaults()
	if !r.Policy.Has(scaler.Spec.Policy.Type) {
		r.EventRecorder.RecordUnknownPolicy(scaler, scaler.Spec.Policy.Type)
	}
	if err := scaler.Validate(); err != nil {
		logger.Error(err, "❌ configuration error, skipping")
		metrics.RecordReconcileError(scaler.Namespace, scaler.Spec.Policy.Type, errTypeConfiguration)
		return nil
	}

	// Step 2: read target.
	deployment := &appsv1.Deployment{}
	err := r.Client.Get(ctx, types.NamespacedName{Namespace: scaler.Namespace, Name: scaler.Spec.TargetRef.Name}, deployment)
	if apierrors.IsNotFound(err) {
		logger.Info("❌ target missing, skipping", "target", scaler.Spec.TargetRef.Name)
		r.EventRecorder.RecordTargetNotFound(scaler, err)
		metrics.RecordReconcileError(scaler.Namespace, scaler.Spec.Policy.Type, errTypeTargetMissing)
		return nil
	}
	if err != nil {
		logger.Error(err, "💥 orchestrator error reading target, skipping")
		metrics.RecordReconcileError(scaler.Namespace, scaler.Spec.Policy.Type, errTypeOrchestrator)
		return nil
	}

	current := int32(1)
	if deployment.Spec.Replicas != nil {
		current = *deployment.Spec.Replicas
	}
	logger.Info("🎯 target info", "target", scaler.Spec.TargetRef.Name, "currentReplicas", current)

	// Step 3: collect metrics.
	samples := make([]float64, 0, len(scaler.Spec.Metrics))
	for _, ms := range scaler.Spec.Metrics {
		plugin, err := r.MetricPlugins.Get(ms.Plugin)
		if err != nil {
			logger.Info("⚠️ unknown metric plugin, skipping source", "plugin", ms.Plugin)
			metrics.RecordReconcileError(scaler.Namespace, scaler.Spec.Policy.Type, errTypeConfiguration)
			continue
		}

		v, err := plugin.GetMetric(ctx, ms.Config)
		if err != nil {
			logger.Info("⚠️ metric plugin failed, omitting sample", "plugin", ms.Plugin, "error", err.Error())
			r.EventRecorder.RecordMetricsFailed(scaler, ms.Plugin, err)
			metrics.RecordReconcileError(scaler.Namespace, scaler.Spec.Policy.Type, errTypePlugin)
			continue
		}

		logger.V(1).Info("📊 collected metric sample", "plugin", ms.Plugin, "value", v)
		metrics.RecordMetricValues(scaler.Namespace, scaler.Spec.Policy.Type, ms.Plugin, v, policyTarget(scaler))
		samples = append(samples, v)
	}

	if len(samples) == 0 {
		logger.Info("⚠️ no metric samples collected, skipping mutation")
		return nil
	}

	// Step 4: compute desired replicas.
	bounds := policy.Bounds{Min: int(scaler.Spec.MinReplicas), Max: int(scaler.Spec.MaxReplicas)}
	desired := int32(r.Policy.Compute(ctx, scaler.Spec.Policy.Type, policy.Input{
		Current: int(current),
		Samples: samples,
		Config: policy.Config{
			SLOTarget:         scaler.Spec.Policy.SLOTarget,
			MaxCostPerReplica: scaler.Spec.Policy.MaxCostPerReplica,
		},
		Bounds: bounds,
	}))

	// Step 5: no-op fast path.
	if desired == current {
		metrics.RecordScalingDecision(scaler.Namespace, scaler.Spec.Policy.Type, "none")
		r.patchStatus(ctx, scaler, current, desired, autoscalingv1alpha1.ReasonScalingApplied, false, deployment.UID)
		return nil
	}

	// Step 6: cooldown gate.
	direction := safety.DirectionUp
	if desired < current {
		direction = safety.DirectionDown
	}
	safetyCfg := safety.Config{
		MaxScaleRate:      scaler.Spec.Safety.MaxScaleRate,
		ScaleUpCooldown:   scaler.Spec.Safety.ScaleUpCooldown,
		ScaleDownCooldown: scaler.Spec.Safety.ScaleDownCooldown,
	}
	if !r.Safety.CanScale(scaler.Key(), safetyCfg, direction) {
		logger.Info("⏳ cooldown active, skipping scale", "direction", direction)
		r.EventRecorder.RecordCooldown(scaler, string(direction))
		metrics.RecordCooldownStatus(scaler.Namespace, scaler.Spec.Policy.Type, true)
		r.patchStatus(ctx, scaler, current, desired, autoscalingv1alpha1.ReasonCooldownActive, false, deployment.UID)
		return nil
	}
	metrics.RecordCooldownStatus(scaler.Namespace, scaler.Spec.Policy.Type, false)

	// Step 7: rate limit.
	limited := int32(safety.ApplyRateLimits(int(current), int(desired), safetyCfg))
	logger.Info("📏 rate limit applied", "desired", desired, "limited", limited)

	// Step 8: mutate.
	mutated := false
	if limited != current {
		deployment.Spec.Replicas = &limited
		if err := r.Client.Update(ctx, deployment); err != nil {
			logger.Error(err, "💥 failed to scale target")
			r.EventRecorder.RecordScalingFailed(scaler, err)
			metrics.RecordReconcileError(scaler.Namespace, scaler.Spec.Policy.Type, errTypeOrchestrator)
			return err
		}

		r.Safety.RecordScaleOperation(scaler.Key())
		mutated = true
		metrics.RecordLastScaleTime(scaler.Namespace, scaler.Spec.Policy.Type, float64(time.Now().Unix()))

		logger.Info("📝 scale recorded", "from", current, "to", limited)
		if limited > current {
			r.EventRecorder.RecordScaleUp(scaler, current, limited)
			metrics.RecordScalingDecision(scaler.Namespace, scaler.Spec.Policy.Type, "up")
		} else {
			r.EventRecorder.RecordScaleDown(scaler, current, limited)
			metrics.RecordScalingDecision(scaler.Namespace, scaler.Spec.Policy.Type, "down")
		}
	}

	// Step 9: status.
	r.patchStatus(ctx, scaler, limited, desired, autoscalingv1alpha1.ReasonScalingApplied, mutated, deployment.UID)
	return nil
}

// patchStatus writes the scaler's status subresource. Failures here are
// warnings only — the scale mutation, if any, already happened and is the
// source of truth. desired is the policy engine's pre-rate-limit output,
// recorded alongside replicas (the actually-applied count) so the exporter's
// desired-vs-current gauges stay distinct.
func (r *Reconciler) patchStatus(ctx context.Context, scaler *autoscalingv1alpha1.GeneralScaler, replicas, desired int32, reason string, scaled bool, targetUID types.UID) {
	logger := log.FromContext(ctx)

	scaler.Status.CurrentReplicas = replicas
	if scaled {
		now := metav1.Now()
		scaler.Status.LastScaleTime = &now
	}

	setReadyCondition(scaler, reason, fmt.Sprintf("Target %s currently at %d replicas.", targetUID, replicas))
	metrics.RecordReplicaCounts(scaler.Namespace, scaler.Spec.Policy.Type, scaler.Spec.TargetRef.Name, replicas, desired)

	if err := r.Client.Status().Update(ctx, scaler); err != nil {
		logger.Info("⚠️ status patch failed", "error", err.Error())
	}
}

// policyTarget returns the configured target value relevant to scaler's
// policy type, for the metric-value gauge's "target" label.
func policyTarget(scaler *autoscalingv1alpha1.GeneralScaler) float64 {
	if scaler.Spec.Policy.Type == "cost" {
		if scaler.Spec.Policy.MaxCostPerReplica != nil {
			return *scaler.Spec.Policy.MaxCostPerReplica
		}
		return 0
	}
	if scaler.Spec.Policy.SLOTarget != nil {
		return *scaler.Spec.Policy.SLOTarget
	}
	return 0
}

// setReadyCondition finds-or-appends the scaler's single Ready condition.
func setReadyCondition(scaler *autoscalingv1alpha1.GeneralScaler, reason, message string) {
	condition := metav1.Condition{
		Type:               autoscalingv1alpha1.ConditionTypeReady,
		Status:             metav1.ConditionTrue,
		LastTransitionTime: metav1.Now(),
		Reason:             reason,
		Message:            message,
	}

	for i, c := range scaler.Status.Conditions {
		if c.Type == autoscalingv1alpha1.ConditionTypeReady {
			scaler.Status.Conditions[i] = condition
			return
		}
	}
	scaler.Status.Conditions = append(scaler.Status.Conditions, condition)
}
