// Package blob implements the positional binary stream the engine's save
// format is built on. The stream is little-endian and carries no field
// tags or type information: readers must consume values in exactly the
// order writers produced them.
package blob

import (
	"encoding/binary"
	"errors"
	"math"
)

var ErrOutOfData = errors.New("blob: read past end of stream")

// OutputBlob is an append-only binary writer.
type OutputBlob struct {
	data []byte
}

func NewOutput() *OutputBlob {
	return &OutputBlob{data: make([]byte, 0, 256)}
}

// Bytes returns the written stream. The slice aliases the blob's buffer.
func (b *OutputBlob) Bytes() []byte { return b.data }

// Size returns the number of bytes written so far.
func (b *OutputBlob) Size() int { return len(b.data) }

func (b *OutputBlob) WriteRaw(p []byte) {
	b.data = append(b.data, p...)
}

func (b *OutputBlob) WriteBool(v bool) {
	if v {
		b.data = append(b.data, 1)
	} else {
		b.data = append(b.data, 0)
	}
}

func (b *OutputBlob) WriteUint32(v uint32) {
	b.data = binary.LittleEndian.AppendUint32(b.data, v)
}

func (b *OutputBlob) WriteInt32(v int32) {
	b.WriteUint32(uint32(v))
}

func (b *OutputBlob) WriteUint64(v uint64) {
	b.data = binary.LittleEndian.AppendUint64(b.data, v)
}

func (b *OutputBlob) WriteFloat64(v float64) {
	b.WriteUint64(math.Float64bits(v))
}

// WriteString writes a uint32 byte length followed by the raw bytes.
func (b *OutputBlob) WriteString(s string) {
	b.WriteUint32(uint32(len(s)))
	b.data = append(b.data, s...)
}

// InputBlob is a positional reader over a stream produced by OutputBlob.
type InputBlob struct {
	data []byte
	pos  int
}

func NewInput(data []byte) *InputBlob {
	return &InputBlob{data: data}
}

// Pos returns the current read offset.
func (b *InputBlob) Pos() int { return b.pos }

// Rest returns the number of unread bytes.
func (b *InputBlob) Rest() int { return len(b.data) - b.pos }

func (b *InputBlob) ReadRaw(n int) ([]byte, error) {
	if b.pos+n > len(b.data) {
		return nil, ErrOutOfData
	}
	p := b.data[b.pos : b.pos+n]
	b.pos += n
	return p, nil
}

func (b *InputBlob) ReadBool() (bool, error) {
	p, err := b.ReadRaw(1)
	if err != nil {
		return false, err
	}
	return p[0] != 0, nil
}

func (b *InputBlob) ReadUint32() (uint32, error) {
	p, err := b.ReadRaw(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(p), nil
}

func (b *InputBlob) ReadInt32() (int32, error) {
	v, err := b.ReadUint32()
	return int32(v), err
}

func (b *InputBlob) ReadUint64() (uint64, error) {
	p, err := b.ReadRaw(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(p), nil
}

func (b *InputBlob) ReadFloat64() (float64, error) {
	v, err := b.ReadUint64()
	return math.Float64frombits(v), err
}

func (b *InputBlob) ReadString() (string, error) {
	n, err := b.ReadUint32()
	if err != nil {
		return "", err
	}
	p, err := b.ReadRaw(int(n))
	if err != nil {
		return "", err
	}
	return string(p), nil
}
