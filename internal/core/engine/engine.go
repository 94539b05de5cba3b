// Package engine implements the top-level façade that owns the scene
// graph, the plugin registry, the frame-update loop, and the versioned
// save codec. One external goroutine drives it: construction, universe
// lifecycle, Update, and serialize/deserialize must never run
// concurrently with each other.
package engine

import (
	"fmt"

	"github.com/caldera-engine/caldera/internal/core/fs"
	"github.com/caldera-engine/caldera/internal/core/input"
	"github.com/caldera-engine/caldera/internal/core/job"
	"github.com/caldera-engine/caldera/internal/core/observability/log"
	"github.com/caldera-engine/caldera/internal/core/path"
	"github.com/caldera-engine/caldera/internal/core/plugin"
	"github.com/caldera-engine/caldera/internal/core/render"
	"github.com/caldera-engine/caldera/internal/core/resource"
	"github.com/caldera-engine/caldera/internal/core/timer"
	"github.com/caldera-engine/caldera/internal/core/universe"
)

// fpsSampleWindow is how many live frames pass between fps resamples.
const fpsSampleWindow = 30

var _ plugin.Host = (*Engine)(nil)

// Engine composes every core subsystem. Construct with New, drive with
// Update once per frame, tear down with Destroy.
type Engine struct {
	cfg Config
	log log.Log

	fsys       fs.FileSystem
	memDevice  *fs.MemoryDevice
	diskDevice *fs.DiskDevice
	ownsFS     bool

	paths     *path.Manager
	resources *resource.Manager
	jobs      *job.Manager
	plugins   *plugin.Manager
	renderer  *render.Renderer
	input     *input.System

	universe  *universe.Universe
	hierarchy *universe.Hierarchy
	scenes    []plugin.Scene

	frameTimer *timer.Timer
	fpsTimer   *timer.Timer
	fpsFrame   int
	fps        float64
	lastDelta  float64

	editor any
}

// Option tweaks construction.
type Option func(*Engine)

// WithFileSystem injects a file system instead of the engine-owned
// memory+disk stack. The caller keeps ownership: Destroy will not close it.
func WithFileSystem(fsys fs.FileSystem) Option {
	return func(e *Engine) { e.fsys = fsys }
}

// WithLogger injects the logging sink.
func WithLogger(l log.Log) Option {
	return func(e *Engine) { e.log = l }
}

// New builds an engine in two phases. Phase one wires the file system,
// resource manager, job manager, and timers. Phase two instantiates the
// plugin manager, the renderer (registered as a built-in plugin), and the
// input subsystem. Any phase-two failure destroys the partial engine and
// returns an error: a partially constructed engine is never handed out.
func New(cfg Config, opts ...Option) (*Engine, error) {
	cfg.ApplyDefaults()
	e := &Engine{cfg: cfg}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = log.New(log.ParseLevel(cfg.LogLevel))
	}

	if e.fsys == nil {
		e.memDevice = fs.NewMemoryDevice()
		e.diskDevice = fs.NewDiskDevice(cfg.BasePath)
		f := fs.New()
		f.Mount(e.memDevice)
		f.Mount(e.diskDevice)
		if err := f.SetDefaultDevice(cfg.DefaultDevice); err != nil {
			return nil, err
		}
		if err := f.SetSaveDevice(cfg.SaveDevice); err != nil {
			return nil, err
		}
		e.fsys = f
		e.ownsFS = true
	}

	e.paths = path.NewManager()
	e.resources = resource.NewManager(e.fsys, e.paths, e.log)
	e.jobs = job.NewManager(cfg.Workers, e.log)
	e.frameTimer = timer.New()
	e.fpsTimer = timer.New()

	if err := e.create(); err != nil {
		e.Destroy()
		return nil, err
	}
	e.log.Info("engine created", log.String("base_path", cfg.BasePath))
	return e, nil
}

// create is construction phase two.
func (e *Engine) create() error {
	e.plugins = plugin.NewManager(e)

	renderer, err := render.NewInstance(e)
	if err != nil {
		return fmt.Errorf("engine: renderer instance: %w", err)
	}
	if err := renderer.Create(); err != nil {
		renderer.DestroyInstance()
		return fmt.Errorf("engine: renderer create: %w", err)
	}
	e.renderer = renderer
	e.plugins.Add(renderer)

	in, err := input.NewSystem(e.log)
	if err != nil {
		return fmt.Errorf("engine: input system: %w", err)
	}
	e.input = in
	return nil
}

// Destroy tears the engine down in fixed reverse order: timers, plugin
// manager (all plugins including the renderer), input subsystem, job
// manager, and finally the owned file-system devices. Injected file
// systems are left untouched.
func (e *Engine) Destroy() {
	e.frameTimer = nil
	e.fpsTimer = nil
	if e.plugins != nil {
		e.plugins.Destroy()
		e.plugins = nil
		e.renderer = nil
	}
	if e.input != nil {
		e.input.Destroy()
		e.input = nil
	}
	if e.jobs != nil {
		e.jobs.Close()
	}
	if e.ownsFS && e.fsys != nil {
		if err := e.fsys.Close(); err != nil {
			e.log.Error("file system close failed", log.Error(err))
		}
		e.fsys = nil
		e.memDevice = nil
		e.diskDevice = nil
	}
}

// plugin.Host implementation.

func (e *Engine) Log() log.Log                       { return e.log }
func (e *Engine) FileSystem() fs.FileSystem          { return e.fsys }
func (e *Engine) ResourceManager() *resource.Manager { return e.resources }
func (e *Engine) JobManager() *job.Manager           { return e.jobs }
func (e *Engine) BasePath() string                   { return e.cfg.BasePath }

// Accessors.

func (e *Engine) Renderer() *render.Renderer     { return e.renderer }
func (e *Engine) PluginManager() *plugin.Manager { return e.plugins }
func (e *Engine) InputSystem() *input.System     { return e.input }
func (e *Engine) PathManager() *path.Manager     { return e.paths }
func (e *Engine) Universe() *universe.Universe   { return e.universe }
func (e *Engine) Hierarchy() *universe.Hierarchy { return e.hierarchy }
func (e *Engine) Scenes() []plugin.Scene         { return e.scenes }
func (e *Engine) LastTimeDelta() float64         { return e.lastDelta }
func (e *Engine) FPS() float64                   { return e.fps }

// SetEditor stores the external editor back-reference and fans it out to
// every registered plugin.
func (e *Engine) SetEditor(editor any) {
	e.editor = editor
	for _, p := range e.plugins.Plugins() {
		p.SetEditor(editor)
	}
}

func (e *Engine) Editor() any { return e.editor }

// LoadPlugin creates and registers a plugin by name.
func (e *Engine) LoadPlugin(name string) (plugin.Plugin, error) {
	return e.plugins.Load(name)
}

// CreateUniverse allocates the scene-graph root and its hierarchy, then
// asks every registered plugin, in registration order, for a scene. Scenes
// join the registry in that same order.
func (e *Engine) CreateUniverse() *universe.Universe {
	e.universe = universe.New()
	e.hierarchy = universe.NewHierarchy(e.universe)
	for _, p := range e.plugins.Plugins() {
		if s := p.CreateScene(e.universe); s != nil {
			e.scenes = append(e.scenes, s)
		}
	}
	e.log.Info("universe created",
		log.String("universe", e.universe.ID().String()),
		log.Int("scenes", len(e.scenes)))
	return e.universe
}

// DestroyUniverse destroys scenes in exact reverse creation order, each
// through the plugin that created it, then the hierarchy, then the
// universe. Calling it with no active universe is a programmer error and
// panics.
func (e *Engine) DestroyUniverse() {
	if e.universe == nil {
		panic("engine: DestroyUniverse called with no active universe")
	}
	for i := len(e.scenes) - 1; i >= 0; i-- {
		s := e.scenes[i]
		s.Plugin().DestroyScene(s)
	}
	e.scenes = nil
	e.hierarchy = nil
	e.universe = nil
	e.log.Info("universe destroyed")
}

// SceneByComponentType routes a component type to the scene owning it.
func (e *Engine) SceneByComponentType(t universe.ComponentType) plugin.Scene {
	for _, s := range e.scenes {
		if s.OwnsComponentType(t) {
			return s
		}
	}
	return nil
}

// Scene finds a scene by the hashed name of its owning plugin.
func (e *Engine) Scene(nameHash uint32) plugin.Scene {
	for _, s := range e.scenes {
		if plugin.NameHash(s.Plugin().Name()) == nameHash {
			return s
		}
	}
	return nil
}

// Update runs one frame. forcedDelta >= 0 selects forced mode: the frame
// time is the caller's, scaled by timeMultiplier, and fps derives directly
// from it. forcedDelta < 0 selects live mode: the frame timer measures the
// delta and fps is resampled every fpsSampleWindow frames. When the game
// is not running only the renderer's scene keeps updating. Every frame
// ends by draining pending async file-system completions exactly once.
func (e *Engine) Update(isGameRunning bool, timeMultiplier, forcedDelta float64) {
	var dt float64
	if forcedDelta >= 0 {
		dt = forcedDelta * timeMultiplier
		e.fpsFrame = 0
		if dt == 0 {
			e.fps = 0
		} else {
			e.fps = 1.0 / dt
		}
		e.fpsTimer.Tick()
	} else {
		e.fpsFrame++
		if e.fpsFrame == fpsSampleWindow {
			e.fps = fpsSampleWindow / e.fpsTimer.Tick()
			e.fpsFrame = 0
		}
		dt = e.frameTimer.Tick() * timeMultiplier
	}
	e.lastDelta = dt

	if isGameRunning {
		e.updateGame(dt)
	} else {
		for _, s := range e.scenes {
			if s.Plugin() == e.renderer {
				s.Update(dt)
			}
		}
	}
	e.fsys.UpdateAsyncTransactions()
}

func (e *Engine) updateGame(dt float64) {
	for _, s := range e.scenes {
		s.Update(dt)
	}
	e.plugins.Update(dt)
	e.input.Update(dt)
}
