package memberset

import (
	"fmt"
	"io"
	"sync"
)

// SingleSet holds at most one member. It can be switched to read-only mode,
// after which every mutator fails. Read-only mode cannot be left.
type SingleSet struct {
	barrier
	mut      sync.Mutex
	member   *Member
	readOnly bool
}

// NewSingle returns a set holding m, or an empty set if m is nil.
func NewSingle(m *Member) *SingleSet {
	if m != nil && !m.ID.Valid() {
		panic(fmt.Sprintf("memberset: invalid member id %d", m.ID))
	}

	return &SingleSet{member: m}
}

func (s *SingleSet) Kind() Kind { return KindSingle }

// ReadOnly reports whether the set rejects mutations.
func (s *SingleSet) ReadOnly() bool {
	s.mut.Lock()
	defer s.mut.Unlock()

	return s.readOnly
}

// SetReadOnly switches the set to read-only mode. Switching a read-only set
// back is refused with ErrReadOnly and leaves the set read-only.
func (s *SingleSet) SetReadOnly(readOnly bool) error {
	s.mut.Lock()
	defer s.mut.Unlock()

	if s.readOnly && !readOnly {
		return ErrReadOnly
	}

	s.readOnly = readOnly

	return nil
}

// Check returns ErrReadOnly if the set cannot be modified.
func (s *SingleSet) Check() error {
	s.mut.Lock()
	defer s.mut.Unlock()

	return s.checkLocked()
}

func (s *SingleSet) checkLocked() error {
	if s.readOnly {
		return ErrReadOnly
	}

	return nil
}

func (s *SingleSet) Add(m *Member) (bool, error) {
	if err := checkMember(m); err != nil {
		return false, err
	}

	s.mut.Lock()
	defer s.mut.Unlock()

	if err := s.checkLocked(); err != nil {
		return false, err
	}

	return s.addLocked(m)
}

func (s *SingleSet) addLocked(m *Member) (bool, error) {
	switch {
	case s.member == nil:
		s.member = m
		return true, nil
	case s.member.ID == m.ID:
		return false, nil
	default:
		return false, fmt.Errorf("%w: holds %d, adding %d", ErrSingletonHeld, s.member.ID, m.ID)
	}
}

func (s *SingleSet) AddAll(other Set) (bool, error) {
	members, err := other.Members(nil)
	if err != nil {
		return false, err
	}

	s.mut.Lock()
	defer s.mut.Unlock()

	if err := s.checkLocked(); err != nil {
		return false, err
	}

	changed := false

	for _, m := range members {
		added, err := s.addLocked(m)
		if err != nil {
			return changed, err
		}

		changed = changed || added
	}

	return changed, nil
}

func (s *SingleSet) Remove(id ID) (bool, error) {
	s.mut.Lock()
	defer s.mut.Unlock()

	if err := s.checkLocked(); err != nil {
		return false, err
	}

	if s.member == nil || s.member.ID != id {
		return false, nil
	}

	s.member = nil

	return true, nil
}

func (s *SingleSet) RemoveAll(other Set) (bool, error) {
	return s.removeIf(other.Contains)
}

func (s *SingleSet) RetainAll(other Set) (bool, error) {
	return s.removeIf(func(id ID) bool {
		return !other.Contains(id)
	})
}

// removeIf evaluates cond outside of the lock, so it may lock other sets.
func (s *SingleSet) removeIf(cond func(id ID) bool) (bool, error) {
	s.mut.Lock()
	current, err := s.member, s.checkLocked()
	s.mut.Unlock()

	if err != nil {
		return false, err
	}

	if current == nil || !cond(current.ID) {
		return false, nil
	}

	s.mut.Lock()
	defer s.mut.Unlock()

	if err := s.checkLocked(); err != nil {
		return false, err
	}

	// The member might have been replaced in the meantime.
	if s.member != current {
		return false, nil
	}

	s.member = nil

	return true, nil
}

func (s *SingleSet) Clear() error {
	s.mut.Lock()
	defer s.mut.Unlock()

	if err := s.checkLocked(); err != nil {
		return err
	}

	s.member = nil

	return nil
}

func (s *SingleSet) current() *Member {
	s.mut.Lock()
	defer s.mut.Unlock()

	return s.member
}

func (s *SingleSet) id() ID {
	if m := s.current(); m != nil {
		return m.ID
	}

	return NoID
}

func (s *SingleSet) Contains(id ID) bool {
	return id != NoID && s.id() == id
}

func (s *SingleSet) ContainsAll(other Set) bool {
	return containsAllSingle(s.id(), other)
}

func (s *SingleSet) Size() int {
	if s.current() == nil {
		return 0
	}

	return 1
}

func (s *SingleSet) IsEmpty() bool { return s.current() == nil }

func (s *SingleSet) FirstID() ID { return s.id() }

func (s *SingleSet) LastID() ID { return s.id() }

func (s *SingleSet) RandomID() ID { return s.id() }

func (s *SingleSet) IDs() []ID { return singleIDs(s.id()) }

func (s *SingleSet) Words() []uint32 { return wordsFromIDs(s.IDs()) }

func (s *SingleSet) Member(id ID) (*Member, error) {
	if m := s.current(); m != nil && m.ID == id {
		return m, nil
	}

	return nil, ErrNotFound
}

func (s *SingleSet) Members(dst []*Member) ([]*Member, error) {
	var members []*Member
	if m := s.current(); m != nil {
		members = []*Member{m}
	}

	return copyMembers(dst, members), nil
}

func (s *SingleSet) Range(fn func(m *Member) bool) error {
	if m := s.current(); m != nil {
		fn(m)
	}

	return nil
}

func (s *SingleSet) Iterator() *Iterator {
	return newIterator(s.IDs(), s.Member)
}

func (s *SingleSet) WriteOne(w io.Writer) error { return writeOne(w, s.IDs()) }

func (s *SingleSet) WriteFew(w io.Writer) error { return writeFew(w, s.IDs()) }

// WriteMany is not supported, single sets never need the bitset form.
func (s *SingleSet) WriteMany(w io.Writer) error { return ErrEncodingUnsupported }

// ReadOne reads a member written with the one encoding and adds it to the set.
func (s *SingleSet) ReadOne(r io.Reader, resolver Resolver) error {
	return s.read(r, EncodingOne, resolver)
}

// ReadFew reads members written with the few encoding and adds them to the
// set. More than one decoded member fails with ErrSingletonHeld.
func (s *SingleSet) ReadFew(r io.Reader, resolver Resolver) error {
	return s.read(r, EncodingFew, resolver)
}

func (s *SingleSet) ReadMany(r io.Reader, resolver Resolver) error {
	return ErrEncodingUnsupported
}

func (s *SingleSet) read(r io.Reader, enc Encoding, resolver Resolver) error {
	p, err := Decode(r, enc, false)
	if err != nil {
		return err
	}

	members, err := resolveAll(p.IDs, resolver)
	if err != nil {
		return err
	}

	s.mut.Lock()
	defer s.mut.Unlock()

	if err := s.checkLocked(); err != nil {
		return err
	}

	for _, m := range members {
		if _, err := s.addLocked(m); err != nil {
			return err
		}
	}

	return nil
}

func (s *SingleSet) String() string { return formatIDs(s.IDs()) }

func singleIDs(id ID) []ID {
	if id == NoID {
		return []ID{}
	}

	return []ID{id}
}

func containsAllSingle(id ID, other Set) bool {
	switch other.Size() {
	case 0:
		return true
	case 1:
		return id != NoID && other.Contains(id)
	default:
		return false
	}
}
