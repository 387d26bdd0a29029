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

// Package main is the entry point for the generic-autoscaler controller.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/runtime"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"
	"k8s.io/client-go/kubernetes"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	typedcorev1 "k8s.io/client-go/kubernetes/typed/core/v1"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/record"

	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/healthz"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	autoscalingv1alpha1 "github.com/KushagraAgrawal29/generic-autoscaler/api/v1alpha1"
	"github.com/KushagraAgrawal29/generic-autoscaler/pkg/controller"
	"github.com/KushagraAgrawal29/generic-autoscaler/pkg/metrics"
	"github.com/KushagraAgrawal29/generic-autoscaler/pkg/policy"
	"github.com/KushagraAgrawal29/generic-autoscaler/pkg/safety"
)

var (
	scheme   = runtime.NewScheme()
	setupLog = ctrl.Log.WithName("setup")
)

func init() {
	utilruntime.Must(clientgoscheme.AddToScheme(scheme))
	utilruntime.Must(autoscalingv1alpha1.AddToScheme(scheme))
}

// stringListDiff returns elements in 'after' that are not in 'before' (set difference).
func stringListDiff(before, after []string) []string {
	beforeSet := make(map[string]struct{}, len(before))
	for _, s := range before {
		beforeSet[s] = struct{}{}
	}

	var diff []string
	for _, s := range after {
		if _, exists := beforeSet[s]; !exists {
			diff = append(diff, s)
		}
	}
	return diff
}

func main() {
	var metricsAddr string
	var prometheusAddr string
	var redisAddr string
	var pluginDir string
	var tickInterval time.Duration
	var backoffInterval time.Duration

	flag.StringVar(&metricsAddr, "metrics-bind-address", ":8080", "The address the metrics and health endpoints bind to.")
	flag.StringVar(&prometheusAddr, "prometheus-address", "", "The address of the Prometheus server backing the prometheus metric plugin.")
	flag.StringVar(&redisAddr, "redis-address", "redis-service:6379", "The default address used by the redis metric plugin.")
	flag.StringVar(&pluginDir, "plugin-dir", "", "Directory containing custom metric plugins (.so files).")
	flag.DurationVar(&tickInterval, "tick-interval", 30*time.Second, "Interval between controller ticks.")
	flag.DurationVar(&backoffInterval, "backoff-interval", 10*time.Second, "Backoff after a tick fails to list scalers.")

	opts := zap.Options{Development: true}
	opts.BindFlags(flag.CommandLine)
	flag.Parse()

	ctrl.SetLogger(zap.New(zap.UseFlagOptions(&opts)))

	cfg := ctrl.GetConfigOrDie()

	c, err := client.New(cfg, client.Options{Scheme: scheme})
	if err != nil {
		setupLog.Error(err, "unable to create client")
		os.Exit(1)
	}

	eventRecorder := controller.NewEventRecorder(newEventBroadcasterRecorder(cfg))

	pluginRegistry := metrics.NewRegistry()
	if err := pluginRegistry.Register(metrics.NewPrometheusPlugin(prometheusAddr)); err != nil {
		setupLog.Error(err, "unable to register prometheus metric plugin")
		os.Exit(1)
	}
	if err := pluginRegistry.Register(metrics.NewRedisPlugin(redisAddr)); err != nil {
		setupLog.Error(err, "unable to register redis metric plugin")
		os.Exit(1)
	}

	if pluginDir != "" {
		setupLog.Info("loading custom metric plugins", "directory", pluginDir)
		pluginsBefore := pluginRegistry.List()
		if err := metrics.LoadAndRegisterDynamicPlugins(pluginDir, pluginRegistry); err != nil {
			setupLog.Error(err, "failed to load some metric plugins, continuing with the available set")
		}
		pluginsAfter := pluginRegistry.List()
		setupLog.Info("metric plugins added from plugin directory", "plugins", stringListDiff(pluginsBefore, pluginsAfter))
		setupLog.Info("registered metric plugins", "plugins", pluginsAfter)
	}

	reconciler := controller.NewReconciler(c, policy.NewEngine(), pluginRegistry, safety.NewManager(), eventRecorder)
	loop := controller.NewLoop(c, reconciler)
	loop.TickInterval = tickInterval
	loop.BackoffInterval = backoffInterval

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", healthzHandler)
	mux.HandleFunc("/readyz", healthzHandler)

	server := &http.Server{Addr: metricsAddr, Handler: mux}
	go func() {
		setupLog.Info("serving metrics and health endpoints", "address", metricsAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			setupLog.Error(err, "metrics server exited unexpectedly")
		}
	}()

	ctx := ctrl.SetupSignalHandler()

	setupLog.Info("starting controller loop")
	loop.Run(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)
}

// healthzHandler reuses controller-runtime's liveness/readiness check,
// since this controller runs its own tick loop rather than a manager.
func healthzHandler(w http.ResponseWriter, r *http.Request) {
	if err := healthz.Ping(r); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// newEventBroadcasterRecorder builds a client-go event recorder without
// pulling in the full controller-runtime manager.
func newEventBroadcasterRecorder(cfg *rest.Config) record.EventRecorder {
	clientset, err := kubernetes.NewForConfig(cfg)
	if err != nil {
		setupLog.Error(err, "unable to create clientset for event recording, events will be dropped")
		return nil
	}

	broadcaster := record.NewBroadcaster()
	broadcaster.StartRecordingToSink(&typedcorev1.EventSinkImpl{Interface: clientset.CoreV1().Events("")})
	return broadcaster.NewRecorder(scheme, corev1.EventSource{Component: "generalscaler-controller"})
}
