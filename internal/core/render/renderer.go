// Package render implements the renderer as a built-in plugin. The engine
// instantiates it during phase-two creation and registers it into the
// plugin manager like any external plugin. The drawing pipeline itself is
// not part of the core; this layer owns the renderer's scene state and its
// slot in the save stream.
package render

import (
	"errors"

	"github.com/caldera-engine/caldera/internal/core/blob"
	"github.com/caldera-engine/caldera/internal/core/observability/log"
	"github.com/caldera-engine/caldera/internal/core/plugin"
	"github.com/caldera-engine/caldera/internal/core/resource"
	"github.com/caldera-engine/caldera/internal/core/universe"
)

// PluginName is the renderer's registry name; plugin.NameHash(PluginName)
// is its 32-bit id.
const PluginName = "renderer"

const pipelinePath = "pipelines/main.pln"

var (
	ErrNilHost           = errors.New("render: nil host")
	ErrNoResourceManager = errors.New("render: host has no resource manager")
)

var _ plugin.Plugin = (*Renderer)(nil)

// Renderer is the built-in rendering plugin.
type Renderer struct {
	host     plugin.Host
	log      log.Log
	pipeline *resource.Resource
	editor   any

	width  uint32
	height uint32
}

// NewInstance builds the renderer against the engine host. The instance is
// unusable until Create succeeds.
func NewInstance(host plugin.Host) (*Renderer, error) {
	if host == nil {
		return nil, ErrNilHost
	}
	return &Renderer{
		host:   host,
		log:    host.Log().With(log.String("plugin", PluginName)),
		width:  1280,
		height: 720,
	}, nil
}

// Create finishes renderer setup: it requests the pipeline description
// through the resource manager. A failure here is fatal to engine creation.
func (r *Renderer) Create() error {
	rm := r.host.ResourceManager()
	if rm == nil {
		return ErrNoResourceManager
	}
	r.pipeline = rm.Load(pipelinePath)
	r.log.Info("renderer created",
		log.Uint32("width", r.width),
		log.Uint32("height", r.height))
	return nil
}

// DestroyInstance releases everything Create acquired.
func (r *Renderer) DestroyInstance() {
	if r.pipeline != nil {
		r.host.ResourceManager().Unload(r.pipeline)
		r.pipeline = nil
	}
}

func (r *Renderer) Name() string { return PluginName }

func (r *Renderer) CreateScene(u *universe.Universe) plugin.Scene {
	return &Scene{
		renderer:    r,
		u:           u,
		renderables: make(map[universe.Entity]string),
		camera:      universe.InvalidEntity,
	}
}

func (r *Renderer) DestroyScene(s plugin.Scene) {
	if sc, ok := s.(*Scene); ok && sc.renderer == r {
		sc.renderables = nil
		sc.order = nil
	}
}

func (r *Renderer) Update(dt float64) { _ = dt }

func (r *Renderer) SetEditor(editor any) { r.editor = editor }

// Resize sets the viewport the renderer persists in the save stream.
func (r *Renderer) Resize(width, height uint32) {
	r.width = width
	r.height = height
}

func (r *Renderer) Viewport() (uint32, uint32) { return r.width, r.height }

func (r *Renderer) Serialize(out *blob.OutputBlob) {
	out.WriteUint32(r.width)
	out.WriteUint32(r.height)
}

func (r *Renderer) Deserialize(in *blob.InputBlob) error {
	var err error
	if r.width, err = in.ReadUint32(); err != nil {
		return err
	}
	r.height, err = in.ReadUint32()
	return err
}

func (r *Renderer) Destroy() {
	r.DestroyInstance()
}
