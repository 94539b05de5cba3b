// Package path interns resource path strings. Interned paths compare by a
// 64-bit hash instead of by string, and the whole table travels at the
// front of the save stream so handles stay stable across a load.
package path

import (
	"github.com/cespare/xxhash/v2"

	"github.com/caldera-engine/caldera/internal/core/blob"
)

// Path is an interned path string.
type Path struct {
	Hash uint64
	str  string
}

func (p Path) String() string { return p.str }
func (p Path) IsEmpty() bool  { return p.Hash == 0 && p.str == "" }

// Manager owns the interning table. It is engine-scoped, not a process
// global; every engine carries its own.
type Manager struct {
	byHash map[uint64]Path
	order  []uint64
}

func NewManager() *Manager {
	return &Manager{byHash: make(map[uint64]Path)}
}

// Intern registers the path string if unseen and returns its handle.
func (m *Manager) Intern(s string) Path {
	h := xxhash.Sum64String(s)
	if p, ok := m.byHash[h]; ok {
		return p
	}
	p := Path{Hash: h, str: s}
	m.byHash[h] = p
	m.order = append(m.order, h)
	return p
}

// Lookup resolves a previously interned hash.
func (m *Manager) Lookup(hash uint64) (Path, bool) {
	p, ok := m.byHash[hash]
	return p, ok
}

// Len returns the number of interned paths.
func (m *Manager) Len() int { return len(m.order) }

// Serialize writes the table in interning order.
func (m *Manager) Serialize(out *blob.OutputBlob) {
	out.WriteUint32(uint32(len(m.order)))
	for _, h := range m.order {
		out.WriteString(m.byHash[h].str)
	}
}

// Deserialize replaces the table with the one read from the stream.
func (m *Manager) Deserialize(in *blob.InputBlob) error {
	count, err := in.ReadUint32()
	if err != nil {
		return err
	}
	m.byHash = make(map[uint64]Path, count)
	m.order = m.order[:0]
	for i := uint32(0); i < count; i++ {
		s, err := in.ReadString()
		if err != nil {
			return err
		}
		m.Intern(s)
	}
	return nil
}
