package render

import (
	"github.com/caldera-engine/caldera/internal/core/blob"
	"github.com/caldera-engine/caldera/internal/core/plugin"
	"github.com/caldera-engine/caldera/internal/core/universe"
)

// Component types owned by the render scene.
var (
	TypeRenderable = universe.TypeFromName("renderable")
	TypeCamera     = universe.TypeFromName("camera")
)

var _ plugin.Scene = (*Scene)(nil)

// Scene holds the renderer's per-universe state: which entities are drawn
// and through which camera. It keeps updating while the game is paused so
// visuals refresh with simulation frozen.
type Scene struct {
	renderer *Renderer
	u        *universe.Universe

	renderables map[universe.Entity]string
	order       []universe.Entity
	camera      universe.Entity
	fov         float64
	frames      uint64
}

func (s *Scene) OwnsComponentType(t universe.ComponentType) bool {
	return t == TypeRenderable || t == TypeCamera
}

func (s *Scene) Plugin() plugin.Plugin { return s.renderer }

func (s *Scene) Update(dt float64) {
	_ = dt
	s.frames++
}

// Frames counts how many times the scene has refreshed.
func (s *Scene) Frames() uint64 { return s.frames }

// CreateRenderable attaches a model to an entity.
func (s *Scene) CreateRenderable(e universe.Entity, model string) {
	if !s.u.IsAlive(e) {
		return
	}
	if _, ok := s.renderables[e]; !ok {
		s.order = append(s.order, e)
	}
	s.renderables[e] = model
}

func (s *Scene) Renderable(e universe.Entity) (string, bool) {
	model, ok := s.renderables[e]
	return model, ok
}

// SetCamera picks the entity the scene renders through.
func (s *Scene) SetCamera(e universe.Entity, fov float64) {
	s.camera = e
	s.fov = fov
}

func (s *Scene) Camera() (universe.Entity, float64) { return s.camera, s.fov }

func (s *Scene) Serialize(out *blob.OutputBlob) {
	out.WriteInt32(int32(s.camera))
	out.WriteFloat64(s.fov)
	out.WriteUint32(uint32(len(s.order)))
	for _, e := range s.order {
		out.WriteInt32(int32(e))
		out.WriteString(s.renderables[e])
	}
}

func (s *Scene) Deserialize(in *blob.InputBlob) error {
	camera, err := in.ReadInt32()
	if err != nil {
		return err
	}
	s.camera = universe.Entity(camera)
	if s.fov, err = in.ReadFloat64(); err != nil {
		return err
	}
	count, err := in.ReadUint32()
	if err != nil {
		return err
	}
	s.renderables = make(map[universe.Entity]string, count)
	s.order = s.order[:0]
	for i := uint32(0); i < count; i++ {
		e, err := in.ReadInt32()
		if err != nil {
			return err
		}
		model, err := in.ReadString()
		if err != nil {
			return err
		}
		s.renderables[universe.Entity(e)] = model
		s.order = append(s.order, universe.Entity(e))
	}
	return nil
}
