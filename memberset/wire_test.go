package memberset

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite_Bytes(t *testing.T) {
	tests := map[string]struct {
		set   Set
		write func(s Set, buf *bytes.Buffer) error
		want  []byte
	}{
		"EmptyOne": {
			set:   Empty(),
			write: func(s Set, buf *bytes.Buffer) error { return s.WriteOne(buf) },
			want:  []byte{0x00},
		},
		"EmptyFew": {
			set:   Empty(),
			write: func(s Set, buf *bytes.Buffer) error { return s.WriteFew(buf) },
			want:  []byte{0x00},
		},
		"EmptyMany": {
			set:   Empty(),
			write: func(s Set, buf *bytes.Buffer) error { return s.WriteMany(buf) },
			want:  []byte{0x00, 0x00},
		},
		"SingleOne": {
			set:   NewSingle(newMember(258)),
			write: func(s Set, buf *bytes.Buffer) error { return s.WriteOne(buf) },
			want:  []byte{0x01, 0x01, 0x02},
		},
		"LiteFew": {
			set:   NewLite(7),
			write: func(s Set, buf *bytes.Buffer) error { return s.WriteFew(buf) },
			want:  []byte{0x01, 0x00, 0x07},
		},
		"ActualFew": {
			set:   mustActual(300, 2),
			write: func(s Set, buf *bytes.Buffer) error { return s.WriteFew(buf) },
			want:  []byte{0x02, 0x00, 0x02, 0x01, 0x2c},
		},
		"ActualMany": {
			set:   mustActual(1, 33),
			write: func(s Set, buf *bytes.Buffer) error { return s.WriteMany(buf) },
			want: []byte{
				0x00, 0x02,
				0x00, 0x00, 0x00, 0x01,
				0x00, 0x00, 0x00, 0x01,
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			require.NoError(t, tt.write(tt.set, buf))
			assert.Equal(t, tt.want, buf.Bytes())
		})
	}
}

func TestWriteMany_TrimsTrailingWords(t *testing.T) {
	s := mustActual(1, 100)
	_, _ = s.Remove(100)

	buf := &bytes.Buffer{}
	require.NoError(t, s.WriteMany(buf))

	assert.Equal(t, []byte{0x00, 0x01, 0x00, 0x00, 0x00, 0x01}, buf.Bytes())
}

func TestWriteOne_TooManyMembers(t *testing.T) {
	s := mustActual(1, 2)

	assert.Panics(t, func() {
		_ = s.WriteOne(&bytes.Buffer{})
	})
}

func TestWriteFew_TooManyMembers(t *testing.T) {
	s := mustActual()
	for id := ID(1); id <= MaxFewMembers+1; id++ {
		_, _ = s.Add(newMember(id))
	}

	assert.Panics(t, func() {
		_ = s.WriteFew(&bytes.Buffer{})
	})
}

func TestActual_ReadRoundTrip(t *testing.T) {
	live := mustActual(1, 2, 31, 32, 33, 500, MaxID)

	tests := map[string]struct {
		ids   []ID
		write func(s *ActualSet, buf *bytes.Buffer) error
		read  func(s *ActualSet, buf *bytes.Buffer) error
	}{
		"One": {
			ids:   []ID{500},
			write: func(s *ActualSet, buf *bytes.Buffer) error { return s.WriteOne(buf) },
			read:  func(s *ActualSet, buf *bytes.Buffer) error { return s.ReadOne(buf, live) },
		},
		"Few": {
			ids:   []ID{1, 32, 33, MaxID},
			write: func(s *ActualSet, buf *bytes.Buffer) error { return s.WriteFew(buf) },
			read:  func(s *ActualSet, buf *bytes.Buffer) error { return s.ReadFew(buf, live) },
		},
		"Many": {
			ids:   []ID{1, 2, 31, 32, 33, 500, MaxID},
			write: func(s *ActualSet, buf *bytes.Buffer) error { return s.WriteMany(buf) },
			read:  func(s *ActualSet, buf *bytes.Buffer) error { return s.ReadMany(buf, live) },
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			src := mustActual(tt.ids...)

			buf := &bytes.Buffer{}
			require.NoError(t, tt.write(src, buf))

			dst := mustActual()
			require.NoError(t, tt.read(dst, buf))

			assert.Equal(t, tt.ids, dst.IDs())
			assert.Zero(t, buf.Len())

			for _, id := range tt.ids {
				got, err := dst.Member(id)
				require.NoError(t, err)

				want, _ := live.Member(id)
				assert.Same(t, want, got)
			}
		})
	}
}

func TestActual_ReadUnresolved(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, mustActual(4).WriteOne(buf))

	s := mustActual()
	err := s.ReadOne(buf, mustActual(5))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.True(t, s.IsEmpty())
}

func TestLite_ReadRoundTrip(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, mustActual(12).WriteFew(buf))

	s := NewLite(NoID)
	require.NoError(t, s.ReadFew(buf))
	assert.Equal(t, []ID{12}, s.IDs())

	assert.ErrorIs(t, s.ReadMany(buf), ErrEncodingUnsupported)
}

func TestDecode(t *testing.T) {
	tests := map[string]struct {
		enc            Encoding
		withMessageIDs bool
		input          []byte
		want           *Payload
		wantErr        error
	}{
		"OneEmpty": {
			enc:   EncodingOne,
			input: []byte{0x00},
			want:  &Payload{IDs: []ID{}},
		},
		"OneWithMessageID": {
			enc:            EncodingOne,
			withMessageIDs: true,
			input:          []byte{0x01, 0x00, 0x09, 0xab, 0xcd, 0xef},
			want:           &Payload{IDs: []ID{9}, MessageIDs: []uint32{0xabcdef}},
		},
		"FewWithMessageID": {
			enc:            EncodingFew,
			withMessageIDs: true,
			input: []byte{
				0x02, 0x00, 0x01, 0x00, 0x03,
				0x00, 0x00, 0x01,
				0x00, 0x00, 0x02,
			},
			want: &Payload{IDs: []ID{1, 3}, MessageIDs: []uint32{1, 2}},
		},
		"ManyWithMessageID": {
			enc:            EncodingMany,
			withMessageIDs: true,
			input: []byte{
				0x00, 0x01, 0x80, 0x00, 0x00, 0x01,
				0x00, 0x02,
				0x00, 0x00, 0x0a,
				0x00, 0x00, 0x0b,
			},
			want: &Payload{IDs: []ID{1, 32}, MessageIDs: []uint32{10, 11}},
		},
		"OneTooMany": {
			enc:     EncodingOne,
			input:   []byte{0x02, 0x00, 0x01, 0x00, 0x02},
			wantErr: ErrCorrupted,
		},
		"FewZeroID": {
			enc:     EncodingFew,
			input:   []byte{0x01, 0x00, 0x00},
			wantErr: ErrCorrupted,
		},
		"FewOutOfRange": {
			enc:     EncodingFew,
			input:   []byte{0x01, 0x80, 0x00},
			wantErr: ErrCorrupted,
		},
		"FewUnordered": {
			enc:     EncodingFew,
			input:   []byte{0x02, 0x00, 0x05, 0x00, 0x03},
			wantErr: ErrCorrupted,
		},
		"FewDuplicate": {
			enc:     EncodingFew,
			input:   []byte{0x02, 0x00, 0x05, 0x00, 0x05},
			wantErr: ErrCorrupted,
		},
		"ManyTooManyWords": {
			enc:     EncodingMany,
			input:   []byte{0x04, 0x01},
			wantErr: ErrCorrupted,
		},
		"ManyCountMismatch": {
			enc:            EncodingMany,
			withMessageIDs: true,
			input:          []byte{0x00, 0x01, 0x00, 0x00, 0x00, 0x01, 0x00, 0x02},
			wantErr:        ErrCorrupted,
		},
		"UnknownEncoding": {
			enc:     Encoding(9),
			input:   []byte{0x00},
			wantErr: ErrIllegalArgument,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := Decode(bytes.NewReader(tt.input), tt.enc, tt.withMessageIDs)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecode_Truncated(t *testing.T) {
	tests := map[string]struct {
		enc   Encoding
		input []byte
	}{
		"OneMissingID":  {enc: EncodingOne, input: []byte{0x01, 0x00}},
		"FewMissingIDs": {enc: EncodingFew, input: []byte{0x02, 0x00, 0x01}},
		"ManyNoWords":   {enc: EncodingMany, input: []byte{0x00, 0x02, 0x00, 0x00, 0x00, 0x01}},
		"Nothing":       {enc: EncodingMany, input: nil},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(bytes.NewReader(tt.input), tt.enc, false)
			assert.Error(t, err)
		})
	}
}

func TestDecode_LastWordTopBit(t *testing.T) {
	input := []byte{0x04, 0x00}
	input = append(input, make([]byte, 4*(maxWords-1))...)
	input = append(input, 0x80, 0x00, 0x00, 0x00)

	_, err := Decode(bytes.NewReader(input), EncodingMany, false)
	assert.ErrorIs(t, err, ErrCorrupted)

	input[len(input)-4] = 0x40

	p, err := Decode(bytes.NewReader(input), EncodingMany, false)
	require.NoError(t, err)
	assert.Equal(t, []ID{MaxID}, p.IDs)
	assert.Len(t, p.Words(), maxWords)
}

func TestChooseEncoding(t *testing.T) {
	tests := map[string]struct {
		size int
		want Encoding
	}{
		"Zero":     {size: 0, want: EncodingOne},
		"One":      {size: 1, want: EncodingOne},
		"Two":      {size: 2, want: EncodingFew},
		"FewLimit": {size: MaxFewMembers, want: EncodingFew},
		"Overflow": {size: MaxFewMembers + 1, want: EncodingMany},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, ChooseEncoding(tt.size))
		})
	}
}

func TestParseEncoding(t *testing.T) {
	for _, enc := range []Encoding{EncodingOne, EncodingFew, EncodingMany} {
		got, err := ParseEncoding(enc.String())
		require.NoError(t, err)
		assert.Equal(t, enc, got)
	}

	_, err := ParseEncoding("lots")
	assert.ErrorIs(t, err, ErrIllegalArgument)
	assert.Equal(t, "Encoding(7)", Encoding(7).String())
}
