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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedisPlugin_Name(t *testing.T) {
	p := NewRedisPlugin("")
	assert.Equal(t, "redis", p.Name())
}

func TestRedisPlugin_UnreachableHostFallsBackToStub(t *testing.T) {
	// No Redis server is running at this address in the test environment,
	// so GetMetric must degrade to the documented stub value rather than
	// erroring out the whole reconcile.
	p := NewRedisPlugin("127.0.0.1:1")

	v, err := p.GetMetric(context.Background(), map[string]string{"queue_name": "jobs"})
	assert.NoError(t, err)
	assert.Equal(t, 10.0, v)
}

func TestRedisPlugin_UsesConfigHostOverDefault(t *testing.T) {
	p := NewRedisPlugin("default-host:6379")

	v, err := p.GetMetric(context.Background(), map[string]string{
		"host":       "127.0.0.1:1",
		"queue_name": "jobs",
	})
	assert.NoError(t, err)
	assert.Equal(t, 10.0, v)
}
