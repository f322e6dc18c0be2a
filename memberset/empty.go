package memberset

import (
	"io"
	"sync"
)

var (
	emptyOnce sync.Once
	emptySet  *EmptySet
)

// EmptySet is an immutable set that never holds any member.
type EmptySet struct {
	barrier
}

// Empty returns the process-wide empty set.
func Empty() *EmptySet {
	emptyOnce.Do(func() {
		emptySet = &EmptySet{}
	})

	return emptySet
}

func (s *EmptySet) Kind() Kind { return KindEmpty }

func (s *EmptySet) Add(m *Member) (bool, error) { return false, ErrImmutable }

func (s *EmptySet) AddAll(other Set) (bool, error) { return false, ErrImmutable }

func (s *EmptySet) Remove(id ID) (bool, error) { return false, ErrImmutable }

func (s *EmptySet) RemoveAll(other Set) (bool, error) { return false, ErrImmutable }

func (s *EmptySet) RetainAll(other Set) (bool, error) { return false, ErrImmutable }

// Clear is a no-op, the set is always empty.
func (s *EmptySet) Clear() error { return nil }

func (s *EmptySet) Contains(id ID) bool { return false }

// ContainsAll reports true only for other empty sets.
func (s *EmptySet) ContainsAll(other Set) bool { return other.IsEmpty() }

func (s *EmptySet) Size() int { return 0 }

func (s *EmptySet) IsEmpty() bool { return true }

func (s *EmptySet) FirstID() ID { return NoID }

func (s *EmptySet) LastID() ID { return NoID }

func (s *EmptySet) RandomID() ID { return NoID }

func (s *EmptySet) IDs() []ID { return []ID{} }

func (s *EmptySet) Words() []uint32 { return []uint32{} }

func (s *EmptySet) Member(id ID) (*Member, error) { return nil, ErrNotFound }

func (s *EmptySet) Members(dst []*Member) ([]*Member, error) {
	return copyMembers(dst, nil), nil
}

func (s *EmptySet) Range(fn func(m *Member) bool) error { return nil }

func (s *EmptySet) Iterator() *Iterator {
	return newIterator(nil, s.Member)
}

func (s *EmptySet) WriteOne(w io.Writer) error { return writeOne(w, nil) }

func (s *EmptySet) WriteFew(w io.Writer) error { return writeFew(w, nil) }

func (s *EmptySet) WriteMany(w io.Writer) error { return writeMany(w, nil) }

func (s *EmptySet) String() string { return "{}" }
