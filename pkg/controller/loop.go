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
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/log"

	autoscalingv1alpha1 "github.com/KushagraAgrawal29/generic-autoscaler/api/v1alpha1"
	"github.com/KushagraAgrawal29/generic-autoscaler/pkg/metrics"
)

// defaultTickInterval is the fixed pause between ticks when listing
// succeeds.
const defaultTickInterval = 30 * time.Second

// defaultBackoffInterval is the pause after a tick that failed to list
// scalers, before the next tick is attempted.
const defaultBackoffInterval = 10 * time.Second

// Loop drives the fixed-interval tick that lists every GeneralScaler and
// fans its reconcile out across the pack, mirroring the asyncio
// gather-then-sleep loop this controller was distilled from.
type Loop struct {
	Client          client.Client
	Reconciler      *Reconciler
	TickInterval    time.Duration
	BackoffInterval time.Duration
}

// NewLoop returns a Loop with the default 30s tick / 10s backoff.
func NewLoop(c client.Client, r *Reconciler) *Loop {
	return &Loop{
		Client:          c,
		Reconciler:      r,
		TickInterval:    defaultTickInterval,
		BackoffInterval: defaultBackoffInterval,
	}
}

// Run blocks until ctx is cancelled, ticking at l.TickInterval. A single
// scaler's reconcile error never stops the rest of the tick's fan-out
// (invariant: one scaler's failure must not affect another's reconcile);
// a failure to list scalers at all backs off and retries the whole tick.
func (l *Loop) Run(ctx context.Context) {
	logger := log.FromContext(ctx)
	logger.Info("🚀 starting controller loop", "tickInterval", l.TickInterval, "backoffInterval", l.BackoffInterval)

	interval := l.TickInterval
	if interval <= 0 {
		interval = defaultTickInterval
	}
	backoff := l.BackoffInterval
	if backoff <= 0 {
		backoff = defaultBackoffInterval
	}

	for {
		select {
		case <-ctx.Done():
			logger.Info("controller loop stopping")
			return
		default:
		}

		wait := interval
		if err := l.tick(ctx); err != nil {
			metrics.RecordTickError()
			logger.Error(err, "💥 error in controller loop")
			wait = backoff
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}
	}
}

// tick lists every GeneralScaler and reconciles each one concurrently. It
// returns an error only when the list itself fails; per-scaler reconcile
// errors are aggregated into one summary log line and never propagate.
func (l *Loop) tick(ctx context.Context) error {
	tickID := uuid.New().String()
	logger := log.FromContext(ctx).WithValues("tick", tickID)
	ctx = log.IntoContext(ctx, logger)

	start := time.Now()
	defer func() {
		metrics.RecordTickDuration(time.Since(start).Seconds())
	}()

	var list autoscalingv1alpha1.GeneralScalerList
	if err := l.Client.List(ctx, &list); err != nil {
		return err
	}
	logger.Info("🔍 found scalers to reconcile", "count", len(list.Items))

	// A plain errgroup.Group (the zero value, not errgroup.WithContext)
	// never cancels a shared context when a goroutine returns an error;
	// Wait() only waits for every goroutine to finish. Each reconcile
	// goroutine also always returns nil to the group itself and instead
	// records its real error in errs[i], so a failing scaler can never
	// stop another scaler's reconcile from running in the same tick.
	errs := make([]error, len(list.Items))
	var g errgroup.Group
	for i := range list.Items {
		i, scaler := i, &list.Items[i]
		g.Go(func() error {
			errs[i] = l.Reconciler.ReconcileScaler(ctx, scaler)
			return nil
		})
	}
	_ = g.Wait()

	if summary := multierr.Combine(errs...); summary != nil {
		logger.Info("⚠️ some scalers failed to reconcile this tick", "error", summary.Error())
	}
	return nil
}
