package memberset

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLite_Empty(t *testing.T) {
	s := NewLite(NoID)

	assert.True(t, s.IsEmpty())
	assert.Equal(t, 0, s.Size())
	assert.Equal(t, NoID, s.FirstID())
	assert.Empty(t, s.IDs())
	assert.False(t, s.Contains(NoID))
}

func TestLite_Add(t *testing.T) {
	s := NewLite(NoID)

	added, err := s.Add(newMember(5))
	require.NoError(t, err)
	assert.True(t, added)

	added, err = s.AddID(5)
	require.NoError(t, err)
	assert.False(t, added)

	_, err = s.AddID(7)
	assert.ErrorIs(t, err, ErrSingletonHeld)

	_, err = s.AddID(NoID)
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = s.Add(nil)
	assert.ErrorIs(t, err, ErrNilMember)

	assert.Equal(t, KindLite, s.Kind())
	assert.True(t, s.Contains(5))
	assert.Equal(t, ID(5), s.LastID())
	assert.Equal(t, ID(5), s.RandomID())
}

func TestLite_NoMemberRefs(t *testing.T) {
	s := NewLite(3)

	_, err := s.Member(3)
	assert.ErrorIs(t, err, ErrNoMemberRefs)

	_, err = s.Members(nil)
	assert.ErrorIs(t, err, ErrNoMemberRefs)

	err = s.Range(func(m *Member) bool { return true })
	assert.ErrorIs(t, err, ErrUnsupported)

	it := s.Iterator()
	require.True(t, it.HasNext())
	assert.Equal(t, ID(3), it.Next())

	_, err = it.Member()
	assert.ErrorIs(t, err, ErrNoMemberRefs)
}

func TestLite_CopyFrom(t *testing.T) {
	s := NewLite(1)

	require.NoError(t, s.CopyFrom(mustActual(9)))
	assert.Equal(t, []ID{9}, s.IDs())

	require.NoError(t, s.CopyFrom(Empty()))
	assert.True(t, s.IsEmpty())

	err := s.CopyFrom(mustActual(1, 2))
	assert.ErrorIs(t, err, ErrIllegalArgument)
	assert.True(t, s.IsEmpty())
}

func TestLite_BulkOperations(t *testing.T) {
	s := NewLite(NoID)

	changed, err := s.AddAll(NewLite(4))
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = s.RetainAll(mustActual(4))
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = s.RemoveAll(mustActual(4))
	require.NoError(t, err)
	assert.True(t, changed)

	_, _ = s.AddID(2)
	changed, err = s.RetainAll(Empty())
	require.NoError(t, err)
	assert.True(t, changed)

	_, _ = s.AddID(2)
	require.NoError(t, s.Clear())
	assert.True(t, s.IsEmpty())

	removed, err := s.Remove(2)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestLite_Wire(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, NewLite(300).WriteOne(buf))
	assert.Equal(t, []byte{1, 0x01, 0x2C}, buf.Bytes())

	s := NewLite(NoID)
	require.NoError(t, s.ReadOne(buf))
	assert.Equal(t, []ID{300}, s.IDs())

	assert.ErrorIs(t, s.WriteMany(buf), ErrEncodingUnsupported)
	assert.ErrorIs(t, s.ReadMany(buf), ErrEncodingUnsupported)
}

func TestNewLite_InvalidID(t *testing.T) {
	assert.Panics(t, func() {
		NewLite(MaxID + 1)
	})
}
