package binario

import (
	"encoding/binary"
	"io"
)

// MaxTrint is the largest value representable by a trint.
const MaxTrint = 0xFFFFFF

// Writer is a sequential writer of fixed-width integers.
type Writer struct {
	writer    io.Writer
	byteOrder binary.ByteOrder
	buf       [4]byte
	written   int
}

func NewWriter(writer io.Writer, byteOrder binary.ByteOrder) *Writer {
	return &Writer{
		writer:    writer,
		byteOrder: byteOrder,
	}
}

func (w *Writer) write(b []byte) error {
	n, err := w.writer.Write(b)
	w.written += n

	return err
}

func (w *Writer) WriteUint8(value uint8) error {
	w.buf[0] = value
	return w.write(w.buf[:1])
}

func (w *Writer) WriteUint16(value uint16) error {
	w.byteOrder.PutUint16(w.buf[:2], value)
	return w.write(w.buf[:2])
}

func (w *Writer) WriteUint32(value uint32) error {
	w.byteOrder.PutUint32(w.buf[:4], value)
	return w.write(w.buf[:4])
}

// WriteTrint writes the low 24 bits of the value as three bytes. Higher
// bits are silently dropped, so counters wrap around to zero eventually.
func (w *Writer) WriteTrint(value uint32) error {
	w.byteOrder.PutUint32(w.buf[:4], value&MaxTrint)

	if w.byteOrder == binary.LittleEndian {
		return w.write(w.buf[:3])
	}

	return w.write(w.buf[1:4])
}

// Written returns the total number of bytes written so far.
func (w *Writer) Written() int {
	return w.written
}
