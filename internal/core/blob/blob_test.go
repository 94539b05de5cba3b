package blob

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBlob_RoundTrip(t *testing.T) {
	out := NewOutput()
	out.WriteUint32(0xdeadbeef)
	out.WriteInt32(-42)
	out.WriteBool(true)
	out.WriteFloat64(3.5)
	out.WriteString("models/crate.msh")
	out.WriteUint64(1 << 40)
	out.WriteRaw([]byte{1, 2, 3})

	in := NewInput(out.Bytes())

	u, err := in.ReadUint32()
	require.NoError(t, err)
	require.Equal(t, uint32(0xdeadbeef), u)

	i, err := in.ReadInt32()
	require.NoError(t, err)
	require.Equal(t, int32(-42), i)

	bv, err := in.ReadBool()
	require.NoError(t, err)
	require.True(t, bv)

	f, err := in.ReadFloat64()
	require.NoError(t, err)
	require.Equal(t, 3.5, f)

	s, err := in.ReadString()
	require.NoError(t, err)
	require.Equal(t, "models/crate.msh", s)

	u64, err := in.ReadUint64()
	require.NoError(t, err)
	require.Equal(t, uint64(1<<40), u64)

	raw, err := in.ReadRaw(3)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, raw)

	require.Equal(t, 0, in.Rest())
}

func TestBlob_ReadPastEnd(t *testing.T) {
	out := NewOutput()
	out.WriteUint32(7)

	in := NewInput(out.Bytes())
	_, err := in.ReadUint64()
	require.ErrorIs(t, err, ErrOutOfData)

	// A failed read must not advance the position.
	require.Equal(t, 0, in.Pos())

	v, err := in.ReadUint32()
	require.NoError(t, err)
	require.Equal(t, uint32(7), v)
}

func TestBlob_StringLengthBeyondStream(t *testing.T) {
	out := NewOutput()
	out.WriteUint32(1000) // claims 1000 bytes, stream has none

	in := NewInput(out.Bytes())
	_, err := in.ReadString()
	require.ErrorIs(t, err, ErrOutOfData)
}
