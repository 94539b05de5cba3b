// Package plugin defines the extension contracts the engine façade calls
// through, and the ordered registry that owns every active plugin.
package plugin

import (
	"hash/crc32"

	"github.com/caldera-engine/caldera/internal/core/blob"
	"github.com/caldera-engine/caldera/internal/core/fs"
	"github.com/caldera-engine/caldera/internal/core/job"
	"github.com/caldera-engine/caldera/internal/core/observability/log"
	"github.com/caldera-engine/caldera/internal/core/resource"
	"github.com/caldera-engine/caldera/internal/core/universe"
)

// Host is the slice of the engine a plugin is allowed to see.
type Host interface {
	Log() log.Log
	FileSystem() fs.FileSystem
	ResourceManager() *resource.Manager
	JobManager() *job.Manager
	BasePath() string
}

// Plugin is one polymorphic extension unit. A plugin contributes at most
// one Scene per Universe and may hook per-frame update and serialization
// independent of any scene.
type Plugin interface {
	// Name identifies the plugin; NameHash(Name()) is its 32-bit id.
	Name() string

	// CreateScene returns the plugin's scene for the universe, or nil if
	// the plugin contributes none.
	CreateScene(u *universe.Universe) Scene

	// DestroyScene tears down a scene this plugin created. A plugin must
	// never be handed a scene created by another plugin.
	DestroyScene(s Scene)

	Update(dt float64)
	SetEditor(editor any)

	Serialize(out *blob.OutputBlob)
	Deserialize(in *blob.InputBlob) error

	Destroy()
}

// Scene is per-plugin simulation state attached to one Universe.
type Scene interface {
	// OwnsComponentType reports whether this scene manages components of
	// the given type.
	OwnsComponentType(t universe.ComponentType) bool

	// Plugin returns the plugin that created this scene.
	Plugin() Plugin

	Update(dt float64)

	Serialize(out *blob.OutputBlob)
	Deserialize(in *blob.InputBlob) error
}

// NameHash maps a plugin name to its 32-bit id.
func NameHash(name string) uint32 {
	return crc32.ChecksumIEEE([]byte(name))
}
