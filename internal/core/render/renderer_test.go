package render

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/caldera-engine/caldera/internal/core/blob"
	"github.com/caldera-engine/caldera/internal/core/fs"
	"github.com/caldera-engine/caldera/internal/core/job"
	"github.com/caldera-engine/caldera/internal/core/observability/log"
	"github.com/caldera-engine/caldera/internal/core/path"
	"github.com/caldera-engine/caldera/internal/core/plugin"
	"github.com/caldera-engine/caldera/internal/core/resource"
	"github.com/caldera-engine/caldera/internal/core/universe"
)

type testHost struct {
	fsys      fs.FileSystem
	resources *resource.Manager
}

func (h *testHost) Log() log.Log                       { return log.Nop() }
func (h *testHost) FileSystem() fs.FileSystem          { return h.fsys }
func (h *testHost) ResourceManager() *resource.Manager { return h.resources }
func (h *testHost) JobManager() *job.Manager           { return nil }
func (h *testHost) BasePath() string                   { return "." }

func newTestHost(t *testing.T) *testHost {
	t.Helper()
	mem := fs.NewMemoryDevice()
	require.NoError(t, mem.WriteFile("pipelines/main.pln", []byte("pipeline")))

	fsys := fs.New()
	fsys.Mount(mem)
	require.NoError(t, fsys.SetDefaultDevice("memory"))
	require.NoError(t, fsys.SetSaveDevice("memory"))
	t.Cleanup(func() { _ = fsys.Close() })

	return &testHost{
		fsys:      fsys,
		resources: resource.NewManager(fsys, path.NewManager(), log.Nop()),
	}
}

func TestRenderer_CreateRequiresHost(t *testing.T) {
	_, err := NewInstance(nil)
	require.ErrorIs(t, err, ErrNilHost)

	r, err := NewInstance(newTestHost(t))
	require.NoError(t, err)
	require.NoError(t, r.Create())
	defer r.Destroy()

	require.Equal(t, PluginName, r.Name())
	w, h := r.Viewport()
	require.Equal(t, uint32(1280), w)
	require.Equal(t, uint32(720), h)
}

func TestRenderer_SceneOwnsRenderComponentTypes(t *testing.T) {
	r, err := NewInstance(newTestHost(t))
	require.NoError(t, err)
	require.NoError(t, r.Create())
	defer r.Destroy()

	u := universe.New()
	s := r.CreateScene(u)
	require.True(t, s.OwnsComponentType(TypeRenderable))
	require.True(t, s.OwnsComponentType(TypeCamera))
	require.False(t, s.OwnsComponentType(universe.TypeFromName("physics-body")))
	require.Equal(t, plugin.Plugin(r), s.Plugin())
}

func TestScene_SerializeRoundTrip(t *testing.T) {
	r, err := NewInstance(newTestHost(t))
	require.NoError(t, err)
	require.NoError(t, r.Create())
	defer r.Destroy()

	u := universe.New()
	s := r.CreateScene(u).(*Scene)

	cam := u.CreateEntity()
	crate := u.CreateEntity()
	s.SetCamera(cam, 60)
	s.CreateRenderable(crate, "models/crate.msh")

	out := blob.NewOutput()
	r.Serialize(out)
	s.Serialize(out)

	restored := r.CreateScene(u).(*Scene)
	in := blob.NewInput(out.Bytes())
	require.NoError(t, r.Deserialize(in))
	require.NoError(t, restored.Deserialize(in))

	gotCam, fov := restored.Camera()
	require.Equal(t, cam, gotCam)
	require.Equal(t, 60.0, fov)
	model, ok := restored.Renderable(crate)
	require.True(t, ok)
	require.Equal(t, "models/crate.msh", model)
}

func TestScene_UpdateCountsFrames(t *testing.T) {
	r, err := NewInstance(newTestHost(t))
	require.NoError(t, err)
	require.NoError(t, r.Create())
	defer r.Destroy()

	s := r.CreateScene(universe.New()).(*Scene)
	s.Update(0.016)
	s.Update(0.016)
	require.Equal(t, uint64(2), s.Frames())
}
