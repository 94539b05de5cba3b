// Package resource implements the engine-owned resource manager: a
// ref-counted table of file-backed resources keyed by interned path,
// loaded through the asynchronous file system. Streaming and per-format
// parsing live outside the core; this layer only owns identity, state,
// and raw bytes.
package resource

import (
	"sync"

	"github.com/caldera-engine/caldera/internal/core/fs"
	"github.com/caldera-engine/caldera/internal/core/observability/log"
	"github.com/caldera-engine/caldera/internal/core/path"
)

type State uint8

const (
	StateEmpty State = iota
	StateLoading
	StateReady
	StateFailed
)

// Resource is one file-backed asset. Data is valid only in StateReady.
type Resource struct {
	Path  path.Path
	state State
	data  []byte
	refs  int
}

func (r *Resource) State() State { return r.state }
func (r *Resource) Data() []byte { return r.data }
func (r *Resource) IsReady() bool {
	return r.state == StateReady
}

// Manager deduplicates and ref-counts resources. Completion callbacks run
// inside the file system's per-frame async drain, so state transitions
// happen on the frame loop goroutine.
type Manager struct {
	mu        sync.Mutex
	fs        fs.FileSystem
	paths     *path.Manager
	log       log.Log
	resources map[uint64]*Resource
}

func NewManager(fsys fs.FileSystem, paths *path.Manager, logger log.Log) *Manager {
	return &Manager{
		fs:        fsys,
		paths:     paths,
		log:       logger,
		resources: make(map[uint64]*Resource),
	}
}

// Load returns the resource for the path, starting an async read on first
// use. Each Load takes a reference.
func (m *Manager) Load(p string) *Resource {
	interned := m.paths.Intern(p)

	m.mu.Lock()
	if r, ok := m.resources[interned.Hash]; ok {
		r.refs++
		m.mu.Unlock()
		return r
	}
	r := &Resource{Path: interned, state: StateLoading, refs: 1}
	m.resources[interned.Hash] = r
	m.mu.Unlock()

	m.fs.ReadAsync(p, func(_ string, data []byte, err error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		if err != nil {
			r.state = StateFailed
			m.log.Error("resource load failed", log.String("path", p), log.Error(err))
			return
		}
		r.data = data
		r.state = StateReady
	})
	return r
}

// Get returns a resource without loading or taking a reference.
func (m *Manager) Get(p string) (*Resource, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.resources[m.paths.Intern(p).Hash]
	return r, ok
}

// Unload drops one reference; the last reference releases the data.
func (m *Manager) Unload(r *Resource) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.refs > 0 {
		r.refs--
	}
	if r.refs == 0 {
		r.data = nil
		r.state = StateEmpty
		delete(m.resources, r.Path.Hash)
	}
}
