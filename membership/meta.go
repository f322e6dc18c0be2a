package membership

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/maxpoletaev/kivigrid/internal/binario"
	"github.com/maxpoletaev/kivigrid/memberset"
)

// metaSize is the length of the node metadata: a big-endian u16 mini-id.
const metaSize = 2

var ErrInvalidMeta = errors.New("invalid node meta")

// EncodeMeta returns the node metadata announcing the mini-id.
func EncodeMeta(id memberset.ID) []byte {
	buf := bytes.NewBuffer(make([]byte, 0, metaSize))

	// Writes to bytes.Buffer never fail.
	_ = binario.NewWriter(buf, binary.BigEndian).WriteUint16(uint16(id))

	return buf.Bytes()
}

// DecodeMeta extracts the mini-id from node metadata. Trailing bytes are
// ignored so that newer nodes can append fields.
func DecodeMeta(meta []byte) (memberset.ID, error) {
	if len(meta) < metaSize {
		return memberset.NoID, fmt.Errorf("%w: %d bytes", ErrInvalidMeta, len(meta))
	}

	v, err := binario.NewReader(bytes.NewReader(meta), binary.BigEndian).ReadUint16()
	if err != nil {
		return memberset.NoID, fmt.Errorf("%w: %v", ErrInvalidMeta, err)
	}

	id := memberset.ID(v)
	if !id.Valid() {
		return memberset.NoID, fmt.Errorf("%w: mini-id %d out of range", ErrInvalidMeta, v)
	}

	return id, nil
}
