//go:build linux || darwin

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
	"fmt"
	"os"
	"path/filepath"
	"plugin"
)

// DynamicPluginSymbolName is the symbol name a .so plugin must export.
const DynamicPluginSymbolName = "MetricPlugin"

// ErrDynamicPluginNotFound is returned when a plugin file cannot be found.
type ErrDynamicPluginNotFound struct {
	Path string
}

func (e ErrDynamicPluginNotFound) Error() string {
	return fmt.Sprintf("plugin not found: path=%q", e.Path)
}

// ErrDynamicPluginLoadFailed is returned when a plugin fails to load.
type ErrDynamicPluginLoadFailed struct {
	Path  string
	Cause error
}

func (e ErrDynamicPluginLoadFailed) Error() string {
	return fmt.Sprintf("failed to load plugin: path=%q, error=%q", e.Path, e.Cause)
}

// ErrDynamicPluginSymbolNotFound is returned when the MetricPlugin symbol is
// not found.
type ErrDynamicPluginSymbolNotFound struct {
	Path string
}

func (e ErrDynamicPluginSymbolNotFound) Error() string {
	return fmt.Sprintf("plugin missing %s symbol: path=%q", DynamicPluginSymbolName, e.Path)
}

// ErrDynamicPluginInterfaceMismatch is returned when the symbol doesn't
// implement MetricPlugin.
type ErrDynamicPluginInterfaceMismatch struct {
	Path string
}

func (e ErrDynamicPluginInterfaceMismatch) Error() string {
	return fmt.Sprintf("plugin %s does not implement MetricPlugin: path=%q", DynamicPluginSymbolName, e.Path)
}

// LoadDynamicPlugin loads a single .so plugin from path. The plugin must
// export a symbol named "MetricPlugin" that implements the MetricPlugin
// interface.
func LoadDynamicPlugin(path string) (MetricPlugin, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, ErrDynamicPluginNotFound{Path: path}
	}

	p, err := plugin.Open(path)
	if err != nil {
		return nil, ErrDynamicPluginLoadFailed{Path: path, Cause: err}
	}

	sym, err := p.Lookup(DynamicPluginSymbolName)
	if err != nil {
		return nil, ErrDynamicPluginSymbolNotFound{Path: path}
	}

	pl, ok := sym.(MetricPlugin)
	if !ok {
		plPtr, ok := sym.(*MetricPlugin)
		if !ok {
			return nil, ErrDynamicPluginInterfaceMismatch{Path: path}
		}
		pl = *plPtr
	}

	return pl, nil
}

// LoadDynamicPlugins loads every .so file in dir.
func LoadDynamicPlugins(dir string) ([]MetricPlugin, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("plugin directory not found: path=%q", dir)
		}
		return nil, fmt.Errorf("failed to stat plugin directory %q: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("plugin path is not a directory: path=%q", dir)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*.so"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob plugins: %w", err)
	}

	var plugins []MetricPlugin
	var loadErrors []error

	for _, path := range matches {
		p, err := LoadDynamicPlugin(path)
		if err != nil {
			loadErrors = append(loadErrors, err)
			continue
		}
		plugins = append(plugins, p)
	}

	if len(loadErrors) > 0 {
		return plugins, fmt.Errorf("failed to load %d plugin(s): %v", len(loadErrors), loadErrors)
	}

	return plugins, nil
}

// LoadAndRegisterDynamicPlugins loads every .so plugin in dir and registers
// each one in registry. Plugins that fail to load do not prevent the
// successfully loaded ones from being registered.
func LoadAndRegisterDynamicPlugins(dir string, registry *Registry) error {
	plugins, err := LoadDynamicPlugins(dir)
	if err != nil && len(plugins) == 0 {
		return err
	}

	var registrationErrors []error
	for _, p := range plugins {
		if err := registry.Register(p); err != nil {
			registrationErrors = append(registrationErrors, err)
		}
	}

	if len(registrationErrors) > 0 {
		return fmt.Errorf("failed to register %d plugin(s): %v", len(registrationErrors), registrationErrors)
	}

	return nil
}
