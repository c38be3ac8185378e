package commands

import (
	"sync"
)

// Plugin mutates a command definition before the registry is built. A
// plugin may add option defaults, wrap the input transform or stash
// configuration in the definition's Meta. Plugins compose left to
// right: a later plugin sees every change an earlier one made.
type Plugin func(def *Definition, opts map[string]interface{}) error

type pluginKey struct {
	name    string
	adapter string
}

// PluginRegistry maps plugin names to descriptors, scoped per adapter.
// A plugin registered with an empty adapter identifier applies to every
// adapter that has no more specific entry.
type PluginRegistry struct {
	mu      sync.RWMutex
	entries map[pluginKey]Plugin
}

// NewPluginRegistry creates an empty plugin registry.
func NewPluginRegistry() *PluginRegistry {
	return &PluginRegistry{
		entries: make(map[pluginKey]Plugin),
	}
}

// Register installs a plugin under the given name for one adapter. Pass
// an empty adapter identifier to register the plugin for all adapters.
func (r *PluginRegistry) Register(name, adapterID string, plugin Plugin) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[pluginKey{name: name, adapter: adapterID}] = plugin
}

// Fetch returns the plugin registered under the name for the adapter,
// falling back to the adapter-agnostic entry when present.
func (r *PluginRegistry) Fetch(name, adapterID string) (Plugin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if plugin, exists := r.entries[pluginKey{name: name, adapter: adapterID}]; exists {
		return plugin, nil
	}
	if plugin, exists := r.entries[pluginKey{name: name}]; exists {
		return plugin, nil
	}
	return nil, &PluginNotFoundError{Name: name, Adapter: adapterID}
}
