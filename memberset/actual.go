package memberset

import (
	"io"
	"sync"
	"sync/atomic"
)

// ActualSet is a general purpose set that owns references to its members.
// All mutations are serialized by a per-set lock, while Size is lock-free.
type ActualSet struct {
	barrier
	mut   sync.RWMutex
	slots slots
	count atomic.Int32
}

// NewActual returns a set holding the given members.
func NewActual(members ...*Member) (*ActualSet, error) {
	s := &ActualSet{}

	for _, m := range members {
		if _, err := s.Add(m); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (s *ActualSet) Kind() Kind { return KindActual }

func (s *ActualSet) Add(m *Member) (bool, error) {
	if err := checkMember(m); err != nil {
		return false, err
	}

	s.mut.Lock()
	defer s.mut.Unlock()

	return s.putLocked(m), nil
}

func (s *ActualSet) putLocked(m *Member) bool {
	if !s.slots.put(m) {
		return false
	}

	s.count.Add(1)

	return true
}

func (s *ActualSet) AddAll(other Set) (bool, error) {
	members, err := other.Members(nil)
	if err != nil {
		return false, err
	}

	return s.addMembers(members)
}

func (s *ActualSet) addMembers(members []*Member) (bool, error) {
	for _, m := range members {
		if err := checkMember(m); err != nil {
			return false, err
		}
	}

	s.mut.Lock()
	defer s.mut.Unlock()

	changed := false

	for _, m := range members {
		if s.putLocked(m) {
			changed = true
		}
	}

	return changed, nil
}

func (s *ActualSet) Remove(id ID) (bool, error) {
	s.mut.Lock()
	defer s.mut.Unlock()

	if !s.slots.drop(id) {
		return false, nil
	}

	s.count.Add(-1)

	return true, nil
}

func (s *ActualSet) RemoveAll(other Set) (bool, error) {
	words := other.Words()

	s.mut.Lock()
	defer s.mut.Unlock()

	dropped := s.slots.subtract(words)
	s.count.Add(-int32(dropped))

	return dropped > 0, nil
}

func (s *ActualSet) RetainAll(other Set) (bool, error) {
	words := other.Words()

	s.mut.Lock()
	defer s.mut.Unlock()

	dropped := s.slots.retain(words)
	s.count.Add(-int32(dropped))

	return dropped > 0, nil
}

func (s *ActualSet) Clear() error {
	s.mut.Lock()
	defer s.mut.Unlock()

	s.slots.reset()
	s.count.Store(0)

	return nil
}

func (s *ActualSet) Contains(id ID) bool {
	s.mut.RLock()
	defer s.mut.RUnlock()

	return s.slots.bits.test(id)
}

func (s *ActualSet) ContainsAll(other Set) bool {
	words := other.Words()

	s.mut.RLock()
	defer s.mut.RUnlock()

	return s.slots.bits.containsAll(words)
}

// Size returns the number of members without taking the lock.
func (s *ActualSet) Size() int {
	return int(s.count.Load())
}

func (s *ActualSet) IsEmpty() bool {
	return s.Size() == 0
}

func (s *ActualSet) FirstID() ID {
	s.mut.RLock()
	defer s.mut.RUnlock()

	return s.slots.bits.first()
}

func (s *ActualSet) LastID() ID {
	s.mut.RLock()
	defer s.mut.RUnlock()

	return s.slots.bits.last()
}

func (s *ActualSet) RandomID() ID {
	s.mut.RLock()
	defer s.mut.RUnlock()

	return s.slots.bits.random()
}

func (s *ActualSet) IDs() []ID {
	s.mut.RLock()
	defer s.mut.RUnlock()

	return s.slots.bits.ids()
}

func (s *ActualSet) Words() []uint32 {
	s.mut.RLock()
	defer s.mut.RUnlock()

	return s.slots.bits.snapshot()
}

// WordCount returns the number of bitset words in use.
func (s *ActualSet) WordCount() int {
	s.mut.RLock()
	defer s.mut.RUnlock()

	return s.slots.bits.wordCount()
}

func (s *ActualSet) Member(id ID) (*Member, error) {
	s.mut.RLock()
	defer s.mut.RUnlock()

	if m := s.slots.get(id); m != nil {
		return m, nil
	}

	return nil, ErrNotFound
}

func (s *ActualSet) Members(dst []*Member) ([]*Member, error) {
	s.mut.RLock()
	defer s.mut.RUnlock()

	return copyMembers(dst, s.slots.list(nil)), nil
}

func (s *ActualSet) list() []*Member {
	s.mut.RLock()
	defer s.mut.RUnlock()

	return s.slots.list(nil)
}

func (s *ActualSet) Range(fn func(m *Member) bool) error {
	rangeMembers(s.list(), fn)
	return nil
}

func (s *ActualSet) Iterator() *Iterator {
	return newIterator(s.IDs(), s.Member)
}

// Clone returns an independent copy of the set sharing the member references.
func (s *ActualSet) Clone() *ActualSet {
	s.mut.RLock()
	defer s.mut.RUnlock()

	clone := &ActualSet{slots: s.slots.clone()}
	clone.count.Store(s.count.Load())

	return clone
}

func (s *ActualSet) WriteOne(w io.Writer) error { return writeOne(w, s.IDs()) }

func (s *ActualSet) WriteFew(w io.Writer) error { return writeFew(w, s.IDs()) }

func (s *ActualSet) WriteMany(w io.Writer) error { return writeMany(w, s.Words()) }

// ReadOne reads a set written with the one encoding and adds the decoded
// members, looked up by the resolver.
func (s *ActualSet) ReadOne(r io.Reader, resolver Resolver) error {
	return s.read(r, EncodingOne, resolver)
}

func (s *ActualSet) ReadFew(r io.Reader, resolver Resolver) error {
	return s.read(r, EncodingFew, resolver)
}

func (s *ActualSet) ReadMany(r io.Reader, resolver Resolver) error {
	return s.read(r, EncodingMany, resolver)
}

func (s *ActualSet) read(r io.Reader, enc Encoding, resolver Resolver) error {
	p, err := Decode(r, enc, false)
	if err != nil {
		return err
	}

	members, err := resolveAll(p.IDs, resolver)
	if err != nil {
		return err
	}

	_, err = s.addMembers(members)

	return err
}

func (s *ActualSet) String() string { return formatIDs(s.IDs()) }
