package universe

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/caldera-engine/caldera/internal/core/blob"
)

func TestUniverse_EntityLifecycle(t *testing.T) {
	u := New()

	a := u.CreateEntity()
	b := u.CreateEntity()
	require.NotEqual(t, a, b)
	require.True(t, u.IsAlive(a))
	require.Equal(t, 2, u.EntityCount())

	u.DestroyEntity(a)
	require.False(t, u.IsAlive(a))
	require.Equal(t, 1, u.EntityCount())

	// Destroyed slots are reused.
	c := u.CreateEntity()
	require.Equal(t, a, c)
	require.Equal(t, Vec3{}, u.Position(c))
}

func TestUniverse_PositionAndName(t *testing.T) {
	u := New()
	e := u.CreateEntity()

	u.SetPosition(e, Vec3{X: 1, Y: 2, Z: 3})
	u.SetName(e, "player")
	require.Equal(t, Vec3{X: 1, Y: 2, Z: 3}, u.Position(e))
	require.Equal(t, "player", u.Name(e))

	// Writes to dead entities are ignored.
	u.DestroyEntity(e)
	u.SetPosition(e, Vec3{X: 9})
	require.Equal(t, Vec3{}, u.Position(e))
	require.Equal(t, "", u.Name(e))
}

func TestUniverse_SerializeRoundTrip(t *testing.T) {
	u := New()
	a := u.CreateEntity()
	b := u.CreateEntity()
	c := u.CreateEntity()
	u.DestroyEntity(b)
	u.SetPosition(a, Vec3{X: 1.5})
	u.SetPosition(c, Vec3{Z: -2})
	u.SetName(a, "camera")

	out := blob.NewOutput()
	u.Serialize(out)

	restored := New()
	require.NoError(t, restored.Deserialize(blob.NewInput(out.Bytes())))

	require.Equal(t, u.ID(), restored.ID())
	require.Equal(t, u.EntityCount(), restored.EntityCount())
	require.True(t, restored.IsAlive(a))
	require.False(t, restored.IsAlive(b))
	require.Equal(t, Vec3{X: 1.5}, restored.Position(a))
	require.Equal(t, Vec3{Z: -2}, restored.Position(c))
	require.Equal(t, "camera", restored.Name(a))

	// Freed slots are still reusable after a load.
	require.Equal(t, b, restored.CreateEntity())
}

func TestTypeFromName_StableIDs(t *testing.T) {
	require.Equal(t, TypeFromName("renderable"), TypeFromName("renderable"))
	require.NotEqual(t, TypeFromName("renderable"), TypeFromName("camera"))
}
