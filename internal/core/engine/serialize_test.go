package engine

import (
	"hash/crc32"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/caldera-engine/caldera/internal/core/blob"
	"github.com/caldera-engine/caldera/internal/core/render"
	"github.com/caldera-engine/caldera/internal/core/universe"
)

// populate fills the active universe with representative state across the
// universe, hierarchy, render scene, and fake plugin scenes.
func populate(t *testing.T, e *Engine, a, b *fakePlugin) {
	t.Helper()
	u := e.Universe()

	root := u.CreateEntity()
	child := u.CreateEntity()
	u.SetName(root, "level")
	u.SetPosition(child, universe.Vec3{X: 4, Y: 5, Z: 6})
	e.Hierarchy().SetParent(child, root)

	rs := e.SceneByComponentType(render.TypeRenderable).(*render.Scene)
	rs.SetCamera(root, 75)
	rs.CreateRenderable(child, "models/crate.msh")

	a.scene.state = "physics-world"
	b.scene.state = "audio-banks"

	e.PathManager().Intern("models/crate.msh")
}

func TestEngine_SerializeRoundTrip(t *testing.T) {
	var trace []string
	e, a, b := newTestEngine(t, &trace)
	e.CreateUniverse()
	populate(t, e, a, b)

	out := blob.NewOutput()
	crc := e.Serialize(out)
	require.NotZero(t, crc)

	savedID := e.Universe().ID()
	root := universe.Entity(0)
	child := universe.Entity(1)

	// Load into a freshly created universe with the identical plugin set.
	e.DestroyUniverse()
	e.CreateUniverse()
	require.NoError(t, e.Deserialize(blob.NewInput(out.Bytes())))

	u := e.Universe()
	require.Equal(t, savedID, u.ID())
	require.Equal(t, "level", u.Name(root))
	require.Equal(t, universe.Vec3{X: 4, Y: 5, Z: 6}, u.Position(child))
	require.Equal(t, root, e.Hierarchy().Parent(child))

	rs := e.SceneByComponentType(render.TypeRenderable).(*render.Scene)
	cam, fov := rs.Camera()
	require.Equal(t, root, cam)
	require.Equal(t, 75.0, fov)
	model, ok := rs.Renderable(child)
	require.True(t, ok)
	require.Equal(t, "models/crate.msh", model)

	require.Equal(t, "physics-world", a.scene.state)
	require.Equal(t, "audio-banks", b.scene.state)

	// Re-serializing reproduces the identical stream and CRC.
	second := blob.NewOutput()
	require.Equal(t, crc, e.Serialize(second))
	require.Equal(t, out.Bytes(), second.Bytes())
}

func TestEngine_SerializeCRCCoversIntegrityWindow(t *testing.T) {
	var trace []string
	e, a, b := newTestEngine(t, &trace)
	e.CreateUniverse()
	defer e.DestroyUniverse()
	populate(t, e, a, b)

	out := blob.NewOutput()
	crc := e.Serialize(out)

	// The window starts right after the header and path table: flipping a
	// header byte must not change the CRC recomputed over the window.
	data := out.Bytes()
	pathTableEnd := headerSize
	in := blob.NewInput(data[headerSize:])
	count, err := in.ReadUint32()
	require.NoError(t, err)
	pathTableEnd += 4
	for i := uint32(0); i < count; i++ {
		s, err := in.ReadString()
		require.NoError(t, err)
		pathTableEnd += 4 + len(s)
	}
	require.Equal(t, crc, crc32.ChecksumIEEE(data[pathTableEnd:]))
}

func TestEngine_DeserializeBadMagic(t *testing.T) {
	var trace []string
	e, _, _ := newTestEngine(t, &trace)
	e.CreateUniverse()
	defer e.DestroyUniverse()

	out := blob.NewOutput()
	out.WriteUint32(0x7f7f7f7f)
	out.WriteInt32(serializedVersionLatest)
	out.WriteUint32(0)
	out.WriteString("trailing garbage")

	in := blob.NewInput(out.Bytes())
	require.ErrorIs(t, e.Deserialize(in), ErrBadMagic)
	// Nothing past the magic word was consumed.
	require.Equal(t, 4, in.Pos())
}

func TestEngine_DeserializeFutureVersion(t *testing.T) {
	var trace []string
	e, _, _ := newTestEngine(t, &trace)
	e.CreateUniverse()
	defer e.DestroyUniverse()

	out := blob.NewOutput()
	out.WriteUint32(serializedEngineMagic)
	out.WriteInt32(serializedVersionLatest + 1)
	out.WriteUint32(0)

	require.ErrorIs(t, e.Deserialize(blob.NewInput(out.Bytes())), ErrUnsupportedVersion)
}

func TestEngine_DeserializeTruncatedStream(t *testing.T) {
	var trace []string
	e, a, b := newTestEngine(t, &trace)
	e.CreateUniverse()
	defer e.DestroyUniverse()
	populate(t, e, a, b)

	out := blob.NewOutput()
	e.Serialize(out)

	truncated := out.Bytes()[:out.Size()/2]
	require.ErrorIs(t, e.Deserialize(blob.NewInput(truncated)), blob.ErrOutOfData)
}
