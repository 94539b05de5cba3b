package engine

import (
	"fmt"
	"hash/crc32"

	"github.com/caldera-engine/caldera/internal/core/blob"
	"github.com/caldera-engine/caldera/internal/core/observability/log"
)

// serializedEngineMagic is the first four bytes of every save stream.
const serializedEngineMagic uint32 = 0x434c4452 // "CLDR"

// Save versions are append-only: never remove or reorder entries.
const (
	serializedVersionBase int32 = iota

	serializedVersionLatest // must be the last one
)

// headerSize covers magic, version, and the reserved checksum slot.
const headerSize = 12

// Serialize writes the whole engine state: header, path table, then — in
// fixed positional order — universe, hierarchy, renderer, plugin manager,
// and every active scene in registration order. It returns a CRC32 over
// every byte after the path table; the caller persists it out-of-band
// (for example as a file trailer). The header's reserved slot stays
// unpopulated: the writer does no self-verification.
func (e *Engine) Serialize(out *blob.OutputBlob) uint32 {
	out.WriteUint32(serializedEngineMagic)
	out.WriteInt32(serializedVersionLatest)
	out.WriteUint32(0) // reserved for an embedded checksum

	e.paths.Serialize(out)
	pos := out.Size()

	e.universe.Serialize(out)
	e.hierarchy.Serialize(out)
	e.renderer.Serialize(out)
	e.plugins.Serialize(out)
	for _, s := range e.scenes {
		s.Serialize(out)
	}

	crc := crc32.ChecksumIEEE(out.Bytes()[pos:])
	e.log.Debug("engine serialized",
		log.Int("bytes", out.Size()),
		log.Uint32("crc", crc))
	return crc
}

// Deserialize reads a stream produced by Serialize. The caller must
// already hold a universe created with the identical plugin and scene set,
// in identical order; that precondition is not checked and a mismatch
// corrupts the remainder of the read. A failed deserialize can leave the
// universe partially populated — discard and recreate it.
func (e *Engine) Deserialize(in *blob.InputBlob) error {
	magic, err := in.ReadUint32()
	if err != nil {
		return err
	}
	if magic != serializedEngineMagic {
		e.log.Error("wrong or corrupted save stream", log.Uint32("magic", magic))
		return ErrBadMagic
	}
	version, err := in.ReadInt32()
	if err != nil {
		return err
	}
	if version > serializedVersionLatest {
		e.log.Error("unsupported save version", log.Int("version", int(version)))
		return ErrUnsupportedVersion
	}
	if _, err = in.ReadUint32(); err != nil { // reserved slot, never inspected
		return err
	}

	if err = e.paths.Deserialize(in); err != nil {
		return fmt.Errorf("engine: path table: %w", err)
	}
	if err = e.universe.Deserialize(in); err != nil {
		return fmt.Errorf("engine: universe: %w", err)
	}
	if err = e.hierarchy.Deserialize(in); err != nil {
		return fmt.Errorf("engine: hierarchy: %w", err)
	}
	if err = e.renderer.Deserialize(in); err != nil {
		return fmt.Errorf("engine: renderer: %w", err)
	}
	if err = e.plugins.Deserialize(in); err != nil {
		return fmt.Errorf("engine: plugin manager: %w", err)
	}
	for _, s := range e.scenes {
		if err = s.Deserialize(in); err != nil {
			return fmt.Errorf("engine: scene %q: %w", s.Plugin().Name(), err)
		}
	}
	return nil
}
