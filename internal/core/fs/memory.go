package fs

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

var _ Device = (*MemoryDevice)(nil)

// MemoryDevice keeps files in process memory, keyed by path hash. It layers
// in front of the disk device in the engine's default stack so anything
// written during a session shadows its on-disk counterpart.
type MemoryDevice struct {
	mu    sync.RWMutex
	files map[uint64][]byte
}

func NewMemoryDevice() *MemoryDevice {
	return &MemoryDevice{files: make(map[uint64][]byte)}
}

func (d *MemoryDevice) Name() string { return "memory" }

func (d *MemoryDevice) ReadFile(path string) ([]byte, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	data, ok := d.files[xxhash.Sum64String(path)]
	if !ok {
		return nil, ErrFileNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (d *MemoryDevice) WriteFile(path string, data []byte) error {
	stored := make([]byte, len(data))
	copy(stored, data)
	d.mu.Lock()
	d.files[xxhash.Sum64String(path)] = stored
	d.mu.Unlock()
	return nil
}

func (d *MemoryDevice) Close() error {
	d.mu.Lock()
	d.files = make(map[uint64][]byte)
	d.mu.Unlock()
	return nil
}
