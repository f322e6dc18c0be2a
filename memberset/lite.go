package memberset

import (
	"fmt"
	"io"
	"sync"
)

// LiteSet holds at most one member id. It keeps no member references, so
// it cannot resolve or enumerate members.
type LiteSet struct {
	barrier
	mut sync.Mutex
	id  ID
}

// NewLite returns a set holding the id. NewLite(NoID) is an empty set.
func NewLite(id ID) *LiteSet {
	if id != NoID && !id.Valid() {
		panic(fmt.Sprintf("memberset: invalid member id %d", id))
	}

	return &LiteSet{id: id}
}

func (s *LiteSet) Kind() Kind { return KindLite }

func (s *LiteSet) Add(m *Member) (bool, error) {
	if err := checkMember(m); err != nil {
		return false, err
	}

	return s.AddID(m.ID)
}

// AddID adds the member id.
func (s *LiteSet) AddID(id ID) (bool, error) {
	if !id.Valid() {
		return false, fmt.Errorf("%w: %d", ErrInvalidID, id)
	}

	s.mut.Lock()
	defer s.mut.Unlock()

	return s.addLocked(id)
}

func (s *LiteSet) addLocked(id ID) (bool, error) {
	switch s.id {
	case NoID:
		s.id = id
		return true, nil
	case id:
		return false, nil
	default:
		return false, fmt.Errorf("%w: holds %d, adding %d", ErrSingletonHeld, s.id, id)
	}
}

func (s *LiteSet) AddAll(other Set) (bool, error) {
	ids := other.IDs()

	s.mut.Lock()
	defer s.mut.Unlock()

	changed := false

	for _, id := range ids {
		added, err := s.addLocked(id)
		if err != nil {
			return changed, err
		}

		changed = changed || added
	}

	return changed, nil
}

func (s *LiteSet) Remove(id ID) (bool, error) {
	s.mut.Lock()
	defer s.mut.Unlock()

	if id == NoID || s.id != id {
		return false, nil
	}

	s.id = NoID

	return true, nil
}

func (s *LiteSet) RemoveAll(other Set) (bool, error) {
	if id := s.current(); id != NoID && other.Contains(id) {
		return s.Remove(id)
	}

	return false, nil
}

func (s *LiteSet) RetainAll(other Set) (bool, error) {
	if id := s.current(); id != NoID && !other.Contains(id) {
		return s.Remove(id)
	}

	return false, nil
}

func (s *LiteSet) Clear() error {
	s.mut.Lock()
	s.id = NoID
	s.mut.Unlock()

	return nil
}

// CopyFrom replaces the contents of the set with the contents of other,
// which must hold at most one member.
func (s *LiteSet) CopyFrom(other Set) error {
	ids := other.IDs()
	if len(ids) > 1 {
		return fmt.Errorf("%w: source holds %d members", ErrTooManyMembers, len(ids))
	}

	s.mut.Lock()
	defer s.mut.Unlock()

	s.id = NoID
	if len(ids) == 1 {
		s.id = ids[0]
	}

	return nil
}

func (s *LiteSet) current() ID {
	s.mut.Lock()
	defer s.mut.Unlock()

	return s.id
}

func (s *LiteSet) Contains(id ID) bool {
	return id != NoID && s.current() == id
}

func (s *LiteSet) ContainsAll(other Set) bool {
	return containsAllSingle(s.current(), other)
}

func (s *LiteSet) Size() int {
	if s.current() == NoID {
		return 0
	}

	return 1
}

func (s *LiteSet) IsEmpty() bool { return s.current() == NoID }

func (s *LiteSet) FirstID() ID { return s.current() }

func (s *LiteSet) LastID() ID { return s.current() }

func (s *LiteSet) RandomID() ID { return s.current() }

func (s *LiteSet) IDs() []ID { return singleIDs(s.current()) }

func (s *LiteSet) Words() []uint32 { return wordsFromIDs(s.IDs()) }

func (s *LiteSet) Member(id ID) (*Member, error) { return nil, ErrNoMemberRefs }

func (s *LiteSet) Members(dst []*Member) ([]*Member, error) { return nil, ErrNoMemberRefs }

func (s *LiteSet) Range(fn func(m *Member) bool) error { return ErrNoMemberRefs }

// Iterator returns an iterator over the ids. Resolving members through it
// fails with ErrNoMemberRefs.
func (s *LiteSet) Iterator() *Iterator {
	return newIterator(s.IDs(), s.Member)
}

func (s *LiteSet) WriteOne(w io.Writer) error { return writeOne(w, s.IDs()) }

func (s *LiteSet) WriteFew(w io.Writer) error { return writeFew(w, s.IDs()) }

func (s *LiteSet) WriteMany(w io.Writer) error { return ErrEncodingUnsupported }

// ReadOne reads an id written with the one encoding and adds it to the set.
func (s *LiteSet) ReadOne(r io.Reader) error {
	return s.read(r, EncodingOne)
}

// ReadFew reads ids written with the few encoding and adds them to the set.
func (s *LiteSet) ReadFew(r io.Reader) error {
	return s.read(r, EncodingFew)
}

func (s *LiteSet) ReadMany(r io.Reader) error {
	return ErrEncodingUnsupported
}

func (s *LiteSet) read(r io.Reader, enc Encoding) error {
	p, err := Decode(r, enc, false)
	if err != nil {
		return err
	}

	s.mut.Lock()
	defer s.mut.Unlock()

	for _, id := range p.IDs {
		if _, err := s.addLocked(id); err != nil {
			return err
		}
	}

	return nil
}

func (s *LiteSet) String() string { return formatIDs(s.IDs()) }
