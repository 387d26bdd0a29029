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
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appsv1 "k8s.io/api/apps/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	"k8s.io/utils/clock"
	faketesting "k8s.io/utils/clock/testing"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	autoscalingv1alpha1 "github.com/KushagraAgrawal29/generic-autoscaler/api/v1alpha1"
	"github.com/KushagraAgrawal29/generic-autoscaler/pkg/metrics"
	"github.com/KushagraAgrawal29/generic-autoscaler/pkg/policy"
	"github.com/KushagraAgrawal29/generic-autoscaler/pkg/safety"
)

// stubPlugin returns a fixed value or error, standing in for a real metric
// plugin so reconciler tests don't depend on Prometheus or Redis.
type stubPlugin struct {
	name  string
	value float64
	err   error
}

func (s *stubPlugin) Name() string { return s.name }

func (s *stubPlugin) GetMetric(_ context.Context, _ map[string]string) (float64, error) {
	return s.value, s.err
}

func newTestScheme(t *testing.T) *runtime.Scheme {
	t.Helper()
	scheme := runtime.NewScheme()
	require.NoError(t, clientgoscheme.AddToScheme(scheme))
	require.NoError(t, autoscalingv1alpha1.AddToScheme(scheme))
	return scheme
}

func newTestReconciler(t *testing.T, plugins map[string]metrics.MetricPlugin, c clock.Clock, objs ...client.Object) *Reconciler {
	t.Helper()
	scheme := newTestScheme(t)

	cl := fake.NewClientBuilder().
		WithScheme(scheme).
		WithStatusSubresource(&autoscalingv1alpha1.GeneralScaler{}).
		WithObjects(objs...).
		Build()

	registry := metrics.NewRegistry()
	for _, p := range plugins {
		require.NoError(t, registry.Register(p))
	}

	if c == nil {
		c = clock.RealClock{}
	}

	return NewReconciler(cl, policy.NewEngine(), registry, safety.NewManagerWithClock(c), NewEventRecorder(nil))
}

func baseScaler() *autoscalingv1alpha1.GeneralScaler {
	return &autoscalingv1alpha1.GeneralScaler{
		ObjectMeta: metav1.ObjectMeta{Name: "web", Namespace: "default"},
		Spec: autoscalingv1alpha1.GeneralScalerSpec{
			TargetRef:   autoscalingv1alpha1.TargetRef{Name: "web-deployment"},
			MinReplicas: 1,
			MaxReplicas: 10,
			Metrics: []autoscalingv1alpha1.MetricSource{
				{Plugin: "cpu"},
			},
			Policy: autoscalingv1alpha1.PolicySpec{Type: "slo"},
			Safety: autoscalingv1alpha1.SafetySpec{
				MaxScaleRate:      100,
				ScaleUpCooldown:   "5m",
				ScaleDownCooldown: "5m",
			},
		},
	}
}

func deploymentWithReplicas(n int32) *appsv1.Deployment {
	return &appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{Name: "web-deployment", Namespace: "default"},
		Spec:       appsv1.DeploymentSpec{Replicas: &n},
	}
}

func TestReconcileScaler_MissingTargetRefIsConfigurationError(t *testing.T) {
	scaler := baseScaler()
	scaler.Spec.TargetRef.Name = ""

	r := newTestReconciler(t, map[string]metrics.MetricPlugin{"cpu": &stubPlugin{name: "cpu", value: 80}}, nil)

	err := r.ReconcileScaler(context.Background(), scaler)
	assert.NoError(t, err)
	assert.Equal(t, int32(0), scaler.Status.CurrentReplicas)
}

func TestReconcileScaler_TargetMissingSkipsWithoutStatusUpdate(t *testing.T) {
	scaler := baseScaler()
	r := newTestReconciler(t, map[string]metrics.MetricPlugin{"cpu": &stubPlugin{name: "cpu", value: 80}}, nil)

	err := r.ReconcileScaler(context.Background(), scaler)
	assert.NoError(t, err)
	assert.Equal(t, int32(0), scaler.Status.CurrentReplicas)
	assert.Empty(t, scaler.Status.Conditions)
}

func TestReconcileScaler_NoSamplesSkipsWithoutMutation(t *testing.T) {
	scaler := baseScaler()
	deployment := deploymentWithReplicas(2)

	r := newTestReconciler(t, map[string]metrics.MetricPlugin{
		"cpu": &stubPlugin{name: "cpu", err: errors.New("scrape failed")},
	}, nil, deployment)

	err := r.ReconcileScaler(context.Background(), scaler)
	require.NoError(t, err)

	got := &appsv1.Deployment{}
	require.NoError(t, r.Client.Get(context.Background(), types.NamespacedName{Namespace: "default", Name: "web-deployment"}, got))
	assert.Equal(t, int32(2), *got.Spec.Replicas)
}

func TestReconcileScaler_NoOpWhenDesiredEqualsCurrent(t *testing.T) {
	scaler := baseScaler()
	// slo default target 80, sample 80 => ratio 1 => desired == current.
	deployment := deploymentWithReplicas(3)

	r := newTestReconciler(t, map[string]metrics.MetricPlugin{"cpu": &stubPlugin{name: "cpu", value: 80}}, nil, deployment, scaler)

	err := r.ReconcileScaler(context.Background(), scaler)
	require.NoError(t, err)

	assert.Equal(t, int32(3), scaler.Status.CurrentReplicas)
	require.Len(t, scaler.Status.Conditions, 1)
	assert.Equal(t, autoscalingv1alpha1.ReasonScalingApplied, scaler.Status.Conditions[0].Reason)
	assert.Nil(t, scaler.Status.LastScaleTime)
}

func TestReconcileScaler_ScalesUpAndRecordsLastScaleTime(t *testing.T) {
	scaler := baseScaler()
	deployment := deploymentWithReplicas(2)
	fc := faketesting.NewFakeClock(time.Now())

	r := newTestReconciler(t, map[string]metrics.MetricPlugin{"cpu": &stubPlugin{name: "cpu", value: 160}}, fc, deployment, scaler)

	err := r.ReconcileScaler(context.Background(), scaler)
	require.NoError(t, err)

	got := &appsv1.Deployment{}
	require.NoError(t, r.Client.Get(context.Background(), types.NamespacedName{Namespace: "default", Name: "web-deployment"}, got))
	assert.Equal(t, int32(4), *got.Spec.Replicas)

	assert.Equal(t, int32(4), scaler.Status.CurrentReplicas)
	assert.NotNil(t, scaler.Status.LastScaleTime)

	// Immediately after a scale-up the cooldown window must still be active.
	assert.False(t, r.Safety.CanScale(scaler.Key(), safety.Config{ScaleUpCooldown: "5m", ScaleDownCooldown: "5m"}, safety.DirectionUp))
}

func TestReconcileScaler_CooldownBlocksScale(t *testing.T) {
	scaler := baseScaler()
	scaler.Spec.Safety.ScaleUpCooldown = "5m"
	deployment := deploymentWithReplicas(2)
	fc := faketesting.NewFakeClock(time.Now())

	r := newTestReconciler(t, map[string]metrics.MetricPlugin{"cpu": &stubPlugin{name: "cpu", value: 160}}, fc, deployment, scaler)

	// Pre-record a very recent scale so the cooldown gate is still active.
	r.Safety.RecordScaleOperation(scaler.Key())

	err := r.ReconcileScaler(context.Background(), scaler)
	require.NoError(t, err)

	got := &appsv1.Deployment{}
	require.NoError(t, r.Client.Get(context.Background(), types.NamespacedName{Namespace: "default", Name: "web-deployment"}, got))
	assert.Equal(t, int32(2), *got.Spec.Replicas, "cooldown must block the mutation")

	assert.Equal(t, int32(2), scaler.Status.CurrentReplicas)
	require.Len(t, scaler.Status.Conditions, 1)
	assert.Equal(t, autoscalingv1alpha1.ReasonCooldownActive, scaler.Status.Conditions[0].Reason)
}

func TestReconcileScaler_RateLimitCapsScale(t *testing.T) {
	scaler := baseScaler()
	scaler.Spec.Safety.MaxScaleRate = 1
	deployment := deploymentWithReplicas(2)

	r := newTestReconciler(t, map[string]metrics.MetricPlugin{"cpu": &stubPlugin{name: "cpu", value: 160}}, nil, deployment, scaler)

	err := r.ReconcileScaler(context.Background(), scaler)
	require.NoError(t, err)

	got := &appsv1.Deployment{}
	require.NoError(t, r.Client.Get(context.Background(), types.NamespacedName{Namespace: "default", Name: "web-deployment"}, got))
	assert.Equal(t, int32(3), *got.Spec.Replicas, "desired 4 must be capped to current+1")
}

func TestReconcileScaler_UnknownPluginIsSkippedNotFatal(t *testing.T) {
	scaler := baseScaler()
	scaler.Spec.Metrics = []autoscalingv1alpha1.MetricSource{
		{Plugin: "does-not-exist"},
		{Plugin: "cpu"},
	}
	deployment := deploymentWithReplicas(2)

	r := newTestReconciler(t, map[string]metrics.MetricPlugin{"cpu": &stubPlugin{name: "cpu", value: 80}}, nil, deployment, scaler)

	err := r.ReconcileScaler(context.Background(), scaler)
	require.NoError(t, err)
	assert.Equal(t, int32(2), scaler.Status.CurrentReplicas)
}

func TestReconcileScaler_UnknownPolicyTypeIsConfigurationError(t *testing.T) {
	scaler := baseScaler()
	scaler.Spec.Policy.Type = "predictive"
	deployment := deploymentWithReplicas(3)

	r := newTestReconciler(t, map[string]metrics.MetricPlugin{"cpu": &stubPlugin{name: "cpu", value: 160}}, nil, deployment, scaler)

	err := r.ReconcileScaler(context.Background(), scaler)
	require.NoError(t, err)
	assert.Empty(t, scaler.Status.Conditions, "an unknown policy type is a configuration error: no status update attempted")

	got := &appsv1.Deployment{}
	require.NoError(t, r.Client.Get(context.Background(), types.NamespacedName{Namespace: "default", Name: "web-deployment"}, got))
	assert.Equal(t, int32(3), *got.Spec.Replicas, "target must not be touched")
}

func TestReconcileScaler_AppliesSpecDefaultsBeforeComputingBounds(t *testing.T) {
	scaler := baseScaler()
	// Zero out everything SetDefaults is responsible for filling in.
	scaler.Spec.MinReplicas = 0
	scaler.Spec.MaxReplicas = 0
	scaler.Spec.Safety = autoscalingv1alpha1.SafetySpec{}
	deployment := deploymentWithReplicas(2)

	r := newTestReconciler(t, map[string]metrics.MetricPlugin{"cpu": &stubPlugin{name: "cpu", value: 160}}, nil, deployment, scaler)

	err := r.ReconcileScaler(context.Background(), scaler)
	require.NoError(t, err)

	got := &appsv1.Deployment{}
	require.NoError(t, r.Client.Get(context.Background(), types.NamespacedName{Namespace: "default", Name: "web-deployment"}, got))
	assert.Equal(t, int32(4), *got.Spec.Replicas, "undefaulted bounds/rate-limit must not clamp the scaler to 0 replicas")
	assert.Equal(t, int32(10), scaler.Spec.MaxReplicas, "SetDefaults must have run before Step 4's bounds were built")
}
