package memberset

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/maxpoletaev/kivigrid/internal/binario"
)

// Encoding is one of the wire representations of a member set. The caller
// picks one based on the expected number of members.
//
//	One:  u8 count (0 or 1), then the u16 id if count is 1
//	Few:  u8 count, then count u16 ids in ascending order
//	Many: u16 word count, then that many u32 bitset words
//
// Integers are big-endian. The message id variants append a trint (the low
// 24 bits of the value) per member in ascending id order. Many also writes a
// u16 member count in front of the trints.
type Encoding uint8

const (
	EncodingOne Encoding = iota + 1
	EncodingFew
	EncodingMany
)

// MaxFewMembers is the capacity of the few encoding.
const MaxFewMembers = 255

func (e Encoding) String() string {
	switch e {
	case EncodingOne:
		return "one"
	case EncodingFew:
		return "few"
	case EncodingMany:
		return "many"
	default:
		return fmt.Sprintf("Encoding(%d)", e)
	}
}

// ParseEncoding returns the encoding with the given name.
func ParseEncoding(name string) (Encoding, error) {
	for _, e := range []Encoding{EncodingOne, EncodingFew, EncodingMany} {
		if e.String() == name {
			return e, nil
		}
	}

	return 0, fmt.Errorf("%w: unknown encoding %q", ErrIllegalArgument, name)
}

// ChooseEncoding returns the most compact encoding able to hold size members.
func ChooseEncoding(size int) Encoding {
	switch {
	case size <= 1:
		return EncodingOne
	case size <= MaxFewMembers:
		return EncodingFew
	default:
		return EncodingMany
	}
}

// Payload is a decoded member set.
type Payload struct {
	IDs        []ID
	MessageIDs []uint32
}

// Words returns the bitset representation of the payload ids.
func (p *Payload) Words() []uint32 {
	return wordsFromIDs(p.IDs)
}

// Decode reads a member set written with the given encoding. If
// withMessageIDs is set, the trailing message ids are read as well.
func Decode(r io.Reader, enc Encoding, withMessageIDs bool) (*Payload, error) {
	br := newReader(r)

	var (
		ids []ID
		err error
	)

	switch enc {
	case EncodingOne:
		ids, err = decodeOne(br)
	case EncodingFew:
		ids, err = decodeFew(br)
	case EncodingMany:
		var words []uint32
		if words, err = decodeMany(br); err == nil {
			b := bitSet{words: words}
			ids = b.ids()
		}
	default:
		return nil, fmt.Errorf("%w: unknown encoding %d", ErrIllegalArgument, enc)
	}

	if err != nil {
		return nil, err
	}

	p := &Payload{IDs: ids}

	if withMessageIDs {
		if enc == EncodingMany {
			if err := decodeMemberCount(br, len(ids)); err != nil {
				return nil, err
			}
		}

		if p.MessageIDs, err = decodeTrints(br, len(ids)); err != nil {
			return nil, err
		}
	}

	return p, nil
}

func newWriter(w io.Writer) *binario.Writer {
	return binario.NewWriter(w, binary.BigEndian)
}

func newReader(r io.Reader) *binario.Reader {
	return binario.NewReader(r, binary.BigEndian)
}

func encodeOne(bw *binario.Writer, ids []ID) error {
	if len(ids) > 1 {
		panic(fmt.Sprintf("memberset: %d members do not fit the one encoding", len(ids)))
	}

	if err := bw.WriteUint8(uint8(len(ids))); err != nil {
		return err
	}

	if len(ids) == 1 {
		return bw.WriteUint16(uint16(ids[0]))
	}

	return nil
}

func encodeFew(bw *binario.Writer, ids []ID) error {
	if len(ids) > MaxFewMembers {
		panic(fmt.Sprintf("memberset: %d members exceed the few encoding limit", len(ids)))
	}

	if err := bw.WriteUint8(uint8(len(ids))); err != nil {
		return err
	}

	for _, id := range ids {
		if err := bw.WriteUint16(uint16(id)); err != nil {
			return err
		}
	}

	return nil
}

func encodeMany(bw *binario.Writer, words []uint32) error {
	n := WordCount(words)

	if err := bw.WriteUint16(uint16(n)); err != nil {
		return err
	}

	for _, w := range words[:n] {
		if err := bw.WriteUint32(w); err != nil {
			return err
		}
	}

	return nil
}

func encodeTrints(bw *binario.Writer, values []uint32) error {
	for _, v := range values {
		if err := bw.WriteTrint(v); err != nil {
			return err
		}
	}

	return nil
}

func readID(br *binario.Reader) (ID, error) {
	v, err := br.ReadUint16()
	if err != nil {
		return NoID, err
	}

	id := ID(v)
	if !id.Valid() {
		return NoID, fmt.Errorf("%w: invalid member id %d", ErrCorrupted, v)
	}

	return id, nil
}

func decodeOne(br *binario.Reader) ([]ID, error) {
	count, err := br.ReadUint8()
	if err != nil {
		return nil, err
	}

	switch count {
	case 0:
		return []ID{}, nil
	case 1:
		id, err := readID(br)
		if err != nil {
			return nil, err
		}

		return []ID{id}, nil
	default:
		return nil, fmt.Errorf("%w: one encoding with %d members", ErrCorrupted, count)
	}
}

func decodeFew(br *binario.Reader) ([]ID, error) {
	count, err := br.ReadUint8()
	if err != nil {
		return nil, err
	}

	ids := make([]ID, 0, count)

	for i := 0; i < int(count); i++ {
		id, err := readID(br)
		if err != nil {
			return nil, err
		}

		if len(ids) > 0 && id <= ids[len(ids)-1] {
			return nil, fmt.Errorf("%w: ids are not in ascending order", ErrCorrupted)
		}

		ids = append(ids, id)
	}

	return ids, nil
}

func decodeMany(br *binario.Reader) ([]uint32, error) {
	n, err := br.ReadUint16()
	if err != nil {
		return nil, err
	}

	if int(n) > maxWords {
		return nil, fmt.Errorf("%w: %d bitset words", ErrCorrupted, n)
	}

	words := make([]uint32, n)

	for i := range words {
		if words[i], err = br.ReadUint32(); err != nil {
			return nil, err
		}
	}

	// The top bit of the last possible word would be id MaxID+1.
	if int(n) == maxWords && words[n-1]&(1<<31) != 0 {
		return nil, fmt.Errorf("%w: member id out of range", ErrCorrupted)
	}

	return words, nil
}

func decodeMemberCount(br *binario.Reader, want int) error {
	count, err := br.ReadUint16()
	if err != nil {
		return err
	}

	if int(count) != want {
		return fmt.Errorf("%w: member count %d does not match bitset (%d)", ErrCorrupted, count, want)
	}

	return nil
}

func decodeTrints(br *binario.Reader, n int) ([]uint32, error) {
	values := make([]uint32, n)

	for i := range values {
		v, err := br.ReadTrint()
		if err != nil {
			return nil, err
		}

		values[i] = v
	}

	return values, nil
}

func writeOne(w io.Writer, ids []ID) error {
	return encodeOne(newWriter(w), ids)
}

func writeFew(w io.Writer, ids []ID) error {
	return encodeFew(newWriter(w), ids)
}

func writeMany(w io.Writer, words []uint32) error {
	return encodeMany(newWriter(w), words)
}
