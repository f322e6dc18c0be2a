package binario

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_BigEndian(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewWriter(buf, binary.BigEndian)

	require.NoError(t, w.WriteUint8(0x01))
	require.NoError(t, w.WriteUint16(0x0203))
	require.NoError(t, w.WriteUint32(0x04050607))
	require.NoError(t, w.WriteTrint(0xFF080910))

	want := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x10}
	assert.Equal(t, want, buf.Bytes())
	assert.Equal(t, len(want), w.Written())
}

func TestReadWrite(t *testing.T) {
	tests := map[string]binary.ByteOrder{
		"BigEndian":    binary.BigEndian,
		"LittleEndian": binary.LittleEndian,
	}

	for name, order := range tests {
		t.Run(name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			w := NewWriter(buf, order)

			require.NoError(t, w.WriteUint8(200))
			require.NoError(t, w.WriteUint16(32767))
			require.NoError(t, w.WriteUint32(0xDEADBEEF))
			require.NoError(t, w.WriteTrint(0x01ABCDEF))

			r := NewReader(buf, order)

			u8, err := r.ReadUint8()
			require.NoError(t, err)
			assert.Equal(t, uint8(200), u8)

			u16, err := r.ReadUint16()
			require.NoError(t, err)
			assert.Equal(t, uint16(32767), u16)

			u32, err := r.ReadUint32()
			require.NoError(t, err)
			assert.Equal(t, uint32(0xDEADBEEF), u32)

			trint, err := r.ReadTrint()
			require.NoError(t, err)
			assert.Equal(t, uint32(0xABCDEF), trint)
		})
	}
}

func TestReader_ShortRead(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x01}), binary.BigEndian)

	_, err := r.ReadUint16()
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	_, err = r.ReadUint8()
	assert.ErrorIs(t, err, io.EOF)
}
