package path

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/caldera-engine/caldera/internal/core/blob"
)

func TestManager_InternDedup(t *testing.T) {
	m := NewManager()

	a := m.Intern("models/crate.msh")
	b := m.Intern("models/crate.msh")
	c := m.Intern("textures/crate.dds")

	require.Equal(t, a, b)
	require.NotEqual(t, a.Hash, c.Hash)
	require.Equal(t, 2, m.Len())

	got, ok := m.Lookup(a.Hash)
	require.True(t, ok)
	require.Equal(t, "models/crate.msh", got.String())
}

func TestManager_SerializeRoundTrip(t *testing.T) {
	m := NewManager()
	m.Intern("a")
	m.Intern("b")
	m.Intern("c")

	out := blob.NewOutput()
	m.Serialize(out)

	restored := NewManager()
	require.NoError(t, restored.Deserialize(blob.NewInput(out.Bytes())))
	require.Equal(t, 3, restored.Len())

	// Interning order survives the round trip.
	second := blob.NewOutput()
	restored.Serialize(second)
	require.Equal(t, out.Bytes(), second.Bytes())
}
