package universe

import "github.com/caldera-engine/caldera/internal/core/blob"

// Hierarchy indexes parent/child relationships over one Universe. It is a
// 1:1 companion: the façade creates it right after the Universe and
// destroys it right before.
type Hierarchy struct {
	u       *Universe
	parents map[Entity]Entity
	// attach order, kept so serialization is deterministic
	order []Entity
}

func NewHierarchy(u *Universe) *Hierarchy {
	return &Hierarchy{
		u:       u,
		parents: make(map[Entity]Entity),
	}
}

// SetParent attaches child under parent. InvalidEntity detaches.
func (h *Hierarchy) SetParent(child, parent Entity) {
	if !h.u.IsAlive(child) {
		return
	}
	if parent == InvalidEntity {
		if _, ok := h.parents[child]; ok {
			delete(h.parents, child)
			for i, e := range h.order {
				if e == child {
					h.order = append(h.order[:i], h.order[i+1:]...)
					break
				}
			}
		}
		return
	}
	if !h.u.IsAlive(parent) {
		return
	}
	if _, ok := h.parents[child]; !ok {
		h.order = append(h.order, child)
	}
	h.parents[child] = parent
}

// Parent returns the parent of child, or InvalidEntity.
func (h *Hierarchy) Parent(child Entity) Entity {
	if p, ok := h.parents[child]; ok {
		return p
	}
	return InvalidEntity
}

// Children collects the direct children of parent in attach order.
func (h *Hierarchy) Children(parent Entity) []Entity {
	var out []Entity
	for _, child := range h.order {
		if h.parents[child] == parent {
			out = append(out, child)
		}
	}
	return out
}

// Len returns the number of parented entities.
func (h *Hierarchy) Len() int { return len(h.order) }

func (h *Hierarchy) Serialize(out *blob.OutputBlob) {
	out.WriteUint32(uint32(len(h.order)))
	for _, child := range h.order {
		out.WriteInt32(int32(child))
		out.WriteInt32(int32(h.parents[child]))
	}
}

func (h *Hierarchy) Deserialize(in *blob.InputBlob) error {
	count, err := in.ReadUint32()
	if err != nil {
		return err
	}
	h.parents = make(map[Entity]Entity, count)
	h.order = h.order[:0]
	for i := uint32(0); i < count; i++ {
		child, err := in.ReadInt32()
		if err != nil {
			return err
		}
		parent, err := in.ReadInt32()
		if err != nil {
			return err
		}
		h.parents[Entity(child)] = Entity(parent)
		h.order = append(h.order, Entity(child))
	}
	return nil
}
