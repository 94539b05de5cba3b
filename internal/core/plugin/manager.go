package plugin

import (
	"fmt"
	"sync"

	"github.com/caldera-engine/caldera/internal/core/blob"
	"github.com/caldera-engine/caldera/internal/core/observability/log"
)

// Factory builds a plugin against a host. Factories are registered by
// name; Load resolves through this table since Go has no portable dynamic
// plugin loading.
type Factory func(host Host) (Plugin, error)

var (
	factoryMu sync.RWMutex
	factories = make(map[string]Factory)
)

// RegisterFactory makes a plugin loadable by name. Usually called from an
// init func in the plugin's package.
func RegisterFactory(name string, f Factory) {
	factoryMu.Lock()
	factories[name] = f
	factoryMu.Unlock()
}

// Manager owns every active plugin in registration order. Registration
// order drives scene creation, update dispatch, and serialization order,
// so it never changes after Add.
type Manager struct {
	host    Host
	log     log.Log
	plugins []Plugin
}

func NewManager(host Host) *Manager {
	return &Manager{host: host, log: host.Log()}
}

// Add appends a plugin to the registry.
func (m *Manager) Add(p Plugin) {
	m.plugins = append(m.plugins, p)
	m.log.Info("plugin registered",
		log.String("plugin", p.Name()),
		log.Uint32("id", NameHash(p.Name())))
}

// Load creates a plugin through its registered factory and adds it.
func (m *Manager) Load(name string) (Plugin, error) {
	factoryMu.RLock()
	f, ok := factories[name]
	factoryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlugin, name)
	}
	p, err := f(m.host)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrCreateFailed, name, err)
	}
	m.Add(p)
	return p, nil
}

// Plugins returns the registry in registration order. Callers must not
// mutate the returned slice.
func (m *Manager) Plugins() []Plugin { return m.plugins }

// Get finds a plugin by its hashed name.
func (m *Manager) Get(nameHash uint32) Plugin {
	for _, p := range m.plugins {
		if NameHash(p.Name()) == nameHash {
			return p
		}
	}
	return nil
}

// Update drives per-plugin logic independent of any scene.
func (m *Manager) Update(dt float64) {
	for _, p := range m.plugins {
		p.Update(dt)
	}
}

// Serialize writes every plugin's own state in registration order.
func (m *Manager) Serialize(out *blob.OutputBlob) {
	for _, p := range m.plugins {
		p.Serialize(out)
	}
}

// Deserialize reads plugin state in the exact order Serialize wrote it.
// The active plugin set must match the one that produced the stream.
func (m *Manager) Deserialize(in *blob.InputBlob) error {
	for _, p := range m.plugins {
		if err := p.Deserialize(in); err != nil {
			return fmt.Errorf("plugin %q: %w", p.Name(), err)
		}
	}
	return nil
}

// Destroy tears down plugins in reverse registration order and empties
// the registry.
func (m *Manager) Destroy() {
	for i := len(m.plugins) - 1; i >= 0; i-- {
		m.plugins[i].Destroy()
	}
	m.plugins = nil
}
