// Package universe holds the scene-graph root for one gameplay session
// and the parent/child hierarchy index bound to it. Both are created and
// destroyed exclusively by the engine façade.
package universe

import (
	"hash/crc32"

	"github.com/google/uuid"

	"github.com/caldera-engine/caldera/internal/core/blob"
)

// Entity identifies one object in a Universe. Values are slot indices and
// stay stable across a serialize/deserialize round trip.
type Entity int32

const InvalidEntity Entity = -1

// ComponentType is the 32-bit identifier of a component kind.
type ComponentType uint32

// TypeFromName hashes a component type name to its 32-bit id.
func TypeFromName(name string) ComponentType {
	return ComponentType(crc32.ChecksumIEEE([]byte(name)))
}

// Vec3 is an entity position.
type Vec3 struct {
	X, Y, Z float64
}

// Universe is the scene-graph root: an entity allocator plus the stores
// every scene hangs its components off.
type Universe struct {
	id        uuid.UUID
	alive     []bool
	positions []Vec3
	names     map[Entity]string
	freeList  []Entity
}

func New() *Universe {
	return &Universe{
		id:    uuid.New(),
		names: make(map[Entity]string),
	}
}

// ID identifies the session this universe belongs to.
func (u *Universe) ID() uuid.UUID { return u.id }

// CreateEntity allocates an entity, reusing destroyed slots first.
func (u *Universe) CreateEntity() Entity {
	if n := len(u.freeList); n > 0 {
		e := u.freeList[n-1]
		u.freeList = u.freeList[:n-1]
		u.alive[e] = true
		u.positions[e] = Vec3{}
		return e
	}
	e := Entity(len(u.alive))
	u.alive = append(u.alive, true)
	u.positions = append(u.positions, Vec3{})
	return e
}

func (u *Universe) DestroyEntity(e Entity) {
	if !u.IsAlive(e) {
		return
	}
	u.alive[e] = false
	delete(u.names, e)
	u.freeList = append(u.freeList, e)
}

func (u *Universe) IsAlive(e Entity) bool {
	return e >= 0 && int(e) < len(u.alive) && u.alive[e]
}

// EntityCount returns the number of live entities.
func (u *Universe) EntityCount() int {
	return len(u.alive) - len(u.freeList)
}

func (u *Universe) SetPosition(e Entity, p Vec3) {
	if u.IsAlive(e) {
		u.positions[e] = p
	}
}

func (u *Universe) Position(e Entity) Vec3 {
	if !u.IsAlive(e) {
		return Vec3{}
	}
	return u.positions[e]
}

func (u *Universe) SetName(e Entity, name string) {
	if u.IsAlive(e) {
		u.names[e] = name
	}
}

func (u *Universe) Name(e Entity) string { return u.names[e] }

// Serialize writes the full slot table so entity values survive a load.
func (u *Universe) Serialize(out *blob.OutputBlob) {
	id, _ := u.id.MarshalBinary()
	out.WriteRaw(id)
	out.WriteUint32(uint32(len(u.alive)))
	for i, alive := range u.alive {
		out.WriteBool(alive)
		if alive {
			p := u.positions[i]
			out.WriteFloat64(p.X)
			out.WriteFloat64(p.Y)
			out.WriteFloat64(p.Z)
		}
	}
	out.WriteUint32(uint32(len(u.names)))
	for i := range u.alive {
		e := Entity(i)
		if name, ok := u.names[e]; ok {
			out.WriteInt32(int32(e))
			out.WriteString(name)
		}
	}
}

// Deserialize replaces the universe contents with the stream's.
func (u *Universe) Deserialize(in *blob.InputBlob) error {
	rawID, err := in.ReadRaw(16)
	if err != nil {
		return err
	}
	if err = u.id.UnmarshalBinary(rawID); err != nil {
		return err
	}

	slots, err := in.ReadUint32()
	if err != nil {
		return err
	}
	u.alive = make([]bool, slots)
	u.positions = make([]Vec3, slots)
	u.freeList = u.freeList[:0]
	for i := uint32(0); i < slots; i++ {
		alive, err := in.ReadBool()
		if err != nil {
			return err
		}
		u.alive[i] = alive
		if !alive {
			u.freeList = append(u.freeList, Entity(i))
			continue
		}
		var p Vec3
		if p.X, err = in.ReadFloat64(); err != nil {
			return err
		}
		if p.Y, err = in.ReadFloat64(); err != nil {
			return err
		}
		if p.Z, err = in.ReadFloat64(); err != nil {
			return err
		}
		u.positions[i] = p
	}

	nameCount, err := in.ReadUint32()
	if err != nil {
		return err
	}
	u.names = make(map[Entity]string, nameCount)
	for i := uint32(0); i < nameCount; i++ {
		e, err := in.ReadInt32()
		if err != nil {
			return err
		}
		name, err := in.ReadString()
		if err != nil {
			return err
		}
		u.names[Entity(e)] = name
	}
	return nil
}
