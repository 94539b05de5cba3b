package plugin

import "github.com/caldera-engine/caldera/internal/core/universe"

// ComponentUID addresses one component instance: the entity it sits on,
// its type, the owning scene, and the index inside that scene's store.
type ComponentUID struct {
	Entity universe.Entity
	Type   universe.ComponentType
	Scene  Scene
	Index  int
}

// InvalidComponent is the null component reference.
var InvalidComponent = ComponentUID{Entity: universe.InvalidEntity, Index: -1}

func (c ComponentUID) IsValid() bool { return c.Index >= 0 }
