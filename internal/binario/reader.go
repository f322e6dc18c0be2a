package binario

import (
	"encoding/binary"
	"io"
)

// Reader is a sequential reader of fixed-width integers. Short reads are
// reported as io.ErrUnexpectedEOF.
type Reader struct {
	byteOrder binary.ByteOrder
	reader    io.Reader
	buf       [4]byte
}

func NewReader(reader io.Reader, byteOrder binary.ByteOrder) *Reader {
	return &Reader{
		reader:    reader,
		byteOrder: byteOrder,
	}
}

func (r *Reader) read(b []byte) error {
	_, err := io.ReadFull(r.reader, b)
	return err
}

func (r *Reader) ReadUint8() (uint8, error) {
	if err := r.read(r.buf[:1]); err != nil {
		return 0, err
	}

	return r.buf[0], nil
}

func (r *Reader) ReadUint16() (uint16, error) {
	if err := r.read(r.buf[:2]); err != nil {
		return 0, err
	}

	return r.byteOrder.Uint16(r.buf[:2]), nil
}

func (r *Reader) ReadUint32() (uint32, error) {
	if err := r.read(r.buf[:4]); err != nil {
		return 0, err
	}

	return r.byteOrder.Uint32(r.buf[:4]), nil
}

func (r *Reader) ReadTrint() (uint32, error) {
	r.buf = [4]byte{}

	if r.byteOrder == binary.LittleEndian {
		if err := r.read(r.buf[:3]); err != nil {
			return 0, err
		}
	} else {
		if err := r.read(r.buf[1:4]); err != nil {
			return 0, err
		}
	}

	return r.byteOrder.Uint32(r.buf[:4]), nil
}
