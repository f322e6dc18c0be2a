package memberset

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// protoIDsField is the field number of the member ids in the message
//
//	message MemberSet {
//	  repeated uint32 ids = 1;
//	}
const protoIDsField protowire.Number = 1

// MarshalProto encodes the set ids as a MemberSet protobuf message, so it
// can be embedded into other messages as a bytes field.
func MarshalProto(s Set) []byte {
	ids := s.IDs()
	if len(ids) == 0 {
		return nil
	}

	var packed []byte
	for _, id := range ids {
		packed = protowire.AppendVarint(packed, uint64(id))
	}

	b := protowire.AppendTag(nil, protoIDsField, protowire.BytesType)

	return protowire.AppendBytes(b, packed)
}

// UnmarshalProto decodes the ids of a MemberSet protobuf message. Both packed
// and unpacked forms are accepted, unknown fields are skipped.
func UnmarshalProto(b []byte) ([]ID, error) {
	var ids []ID

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protoError(n)
		}

		b = b[n:]

		switch {
		case num == protoIDsField && typ == protowire.BytesType:
			packed, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protoError(n)
			}

			b = b[n:]

			for len(packed) > 0 {
				v, m := protowire.ConsumeVarint(packed)
				if m < 0 {
					return nil, protoError(m)
				}

				packed = packed[m:]

				id, err := protoID(v)
				if err != nil {
					return nil, err
				}

				ids = append(ids, id)
			}

		case num == protoIDsField && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, protoError(n)
			}

			b = b[n:]

			id, err := protoID(v)
			if err != nil {
				return nil, err
			}

			ids = append(ids, id)

		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, protoError(n)
			}

			b = b[n:]
		}
	}

	return ids, nil
}

func protoID(v uint64) (ID, error) {
	if v == 0 || v > uint64(MaxID) {
		return NoID, fmt.Errorf("%w: invalid member id %d", ErrCorrupted, v)
	}

	return ID(v), nil
}

func protoError(n int) error {
	return fmt.Errorf("%w: %v", ErrCorrupted, protowire.ParseError(n))
}
