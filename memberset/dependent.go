package memberset

import (
	"fmt"
	"io"
	"sync"

	"github.com/maxpoletaev/kivigrid/internal/generic"
)

// DependentSet is a subset view of a base set owned elsewhere. It tracks ids
// only and resolves members through the base. Members removed from the base
// disappear from the view lazily: every operation that reports the size or
// scans the whole set calls Sync first, point lookups check the base directly.
//
// The set also keeps an outbound message id per member, used to address
// point-to-point packets. Zero means no message id is known.
//
// Lock order is always the dependent set first, then the base.
type DependentSet struct {
	barrier
	mut        sync.Mutex
	base       Set
	bits       bitSet
	messageIDs []uint32
}

// NewDependent returns an empty view over base. The base cannot be changed
// afterwards.
func NewDependent(base Set) *DependentSet {
	if base == nil {
		panic("memberset: dependent set requires a base set")
	}

	return &DependentSet{base: base}
}

func (s *DependentSet) Kind() Kind { return KindDependent }

// Base returns the set this view depends on.
func (s *DependentSet) Base() Set { return s.base }

// Sync removes the members that are no longer present in the base set.
// Calling it repeatedly without base mutations in between is a no-op.
func (s *DependentSet) Sync() {
	s.mut.Lock()
	defer s.mut.Unlock()

	s.syncLocked()
}

func (s *DependentSet) syncLocked() {
	s.bits.retain(s.base.Words(), s.resetMessageIDLocked)
}

// withBase runs fn for every member of the view while holding the view
// lock, after syncing with the base. It is the only place where both locks
// are held at the same time.
func (s *DependentSet) withBase(fn func(m *Member)) error {
	s.mut.Lock()
	defer s.mut.Unlock()

	s.syncLocked()

	return s.base.Range(func(m *Member) bool {
		if s.bits.test(m.ID) {
			fn(m)
		}

		return true
	})
}

func (s *DependentSet) Add(m *Member) (bool, error) {
	if err := checkMember(m); err != nil {
		return false, err
	}

	return s.AddID(m.ID)
}

// AddID adds the member id. The id does not have to be present in the base
// yet, but it is dropped on the next sync if it is still missing there.
func (s *DependentSet) AddID(id ID) (bool, error) {
	if !id.Valid() {
		return false, fmt.Errorf("%w: %d", ErrInvalidID, id)
	}

	s.mut.Lock()
	defer s.mut.Unlock()

	return s.bits.set(id), nil
}

func (s *DependentSet) AddAll(other Set) (bool, error) {
	ids := other.IDs()

	s.mut.Lock()
	defer s.mut.Unlock()

	changed := false

	for _, id := range ids {
		if s.bits.set(id) {
			changed = true
		}
	}

	return changed, nil
}

func (s *DependentSet) Remove(id ID) (bool, error) {
	s.mut.Lock()
	defer s.mut.Unlock()

	if !s.bits.clear(id) {
		return false, nil
	}

	s.resetMessageIDLocked(id)

	return true, nil
}

func (s *DependentSet) RemoveAll(other Set) (bool, error) {
	words := other.Words()

	s.mut.Lock()
	defer s.mut.Unlock()

	return s.bits.subtract(words, s.resetMessageIDLocked), nil
}

func (s *DependentSet) RetainAll(other Set) (bool, error) {
	words := other.Words()

	s.mut.Lock()
	defer s.mut.Unlock()

	return s.bits.retain(words, s.resetMessageIDLocked), nil
}

func (s *DependentSet) Clear() error {
	s.mut.Lock()
	defer s.mut.Unlock()

	s.bits.reset()
	s.messageIDs = nil

	return nil
}

// Contains checks the local bit and then confirms the member with the base,
// which avoids a full sync for a single lookup.
func (s *DependentSet) Contains(id ID) bool {
	s.mut.Lock()
	local := s.bits.test(id)
	s.mut.Unlock()

	return local && s.base.Contains(id)
}

func (s *DependentSet) ContainsAll(other Set) bool {
	words := other.Words()

	s.mut.Lock()
	defer s.mut.Unlock()

	s.syncLocked()

	return s.bits.containsAll(words)
}

func (s *DependentSet) Size() int {
	s.mut.Lock()
	defer s.mut.Unlock()

	s.syncLocked()

	return s.bits.count()
}

func (s *DependentSet) IsEmpty() bool {
	return s.Size() == 0
}

func (s *DependentSet) FirstID() ID {
	s.mut.Lock()
	defer s.mut.Unlock()

	s.syncLocked()

	return s.bits.first()
}

func (s *DependentSet) LastID() ID {
	s.mut.Lock()
	defer s.mut.Unlock()

	s.syncLocked()

	return s.bits.last()
}

func (s *DependentSet) RandomID() ID {
	s.mut.Lock()
	defer s.mut.Unlock()

	s.syncLocked()

	return s.bits.random()
}

func (s *DependentSet) IDs() []ID {
	s.mut.Lock()
	defer s.mut.Unlock()

	s.syncLocked()

	return s.bits.ids()
}

func (s *DependentSet) Words() []uint32 {
	s.mut.Lock()
	defer s.mut.Unlock()

	s.syncLocked()

	return s.bits.snapshot()
}

// Member returns the member from the base set.
func (s *DependentSet) Member(id ID) (*Member, error) {
	if !s.Contains(id) {
		return nil, ErrNotFound
	}

	return s.base.Member(id)
}

func (s *DependentSet) list() ([]*Member, error) {
	var members []*Member

	err := s.withBase(func(m *Member) {
		members = append(members, m)
	})

	return members, err
}

func (s *DependentSet) Members(dst []*Member) ([]*Member, error) {
	members, err := s.list()
	if err != nil {
		return nil, err
	}

	return copyMembers(dst, members), nil
}

func (s *DependentSet) Range(fn func(m *Member) bool) error {
	members, err := s.list()
	if err != nil {
		return err
	}

	rangeMembers(members, fn)

	return nil
}

func (s *DependentSet) Iterator() *Iterator {
	return newIterator(s.IDs(), s.Member)
}

// Clone returns a copy with its own bits and message ids. The base set is
// shared with the original.
func (s *DependentSet) Clone() *DependentSet {
	s.mut.Lock()
	defer s.mut.Unlock()

	messageIDs := make([]uint32, len(s.messageIDs))
	copy(messageIDs, s.messageIDs)

	return &DependentSet{
		base:       s.base,
		bits:       s.bits.clone(),
		messageIDs: messageIDs,
	}
}

// MessageID returns the outbound message id of the member, or zero if none
// is known. The value is not guaranteed to be non-zero even for a valid
// member, since it wraps around when written to the wire.
func (s *DependentSet) MessageID(id ID) uint32 {
	s.mut.Lock()
	defer s.mut.Unlock()

	if int(id) < len(s.messageIDs) {
		return s.messageIDs[id]
	}

	return 0
}

// SetMessageID records the outbound message id of the member.
func (s *DependentSet) SetMessageID(id ID, msgID uint32) error {
	if !id.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidID, id)
	}

	s.mut.Lock()
	defer s.mut.Unlock()

	s.setMessageIDLocked(id, msgID)

	return nil
}

func (s *DependentSet) setMessageIDLocked(id ID, msgID uint32) {
	i := int(id)

	if i >= len(s.messageIDs) {
		if msgID == 0 {
			return
		}

		messageIDs := make([]uint32, generic.Max(i+i/2, i+4))
		copy(messageIDs, s.messageIDs)
		s.messageIDs = messageIDs
	}

	s.messageIDs[i] = msgID
}

func (s *DependentSet) resetMessageIDLocked(id ID) {
	s.setMessageIDLocked(id, 0)
}

// snapshot syncs the view and captures ids, words and message ids at once.
func (s *DependentSet) snapshot() ([]ID, []uint32, []uint32) {
	s.mut.Lock()
	defer s.mut.Unlock()

	s.syncLocked()

	ids := s.bits.ids()
	messageIDs := make([]uint32, len(ids))

	for i, id := range ids {
		if int(id) < len(s.messageIDs) {
			messageIDs[i] = s.messageIDs[id]
		}
	}

	return ids, s.bits.snapshot(), messageIDs
}

func (s *DependentSet) WriteOne(w io.Writer) error { return writeOne(w, s.IDs()) }

func (s *DependentSet) WriteFew(w io.Writer) error { return writeFew(w, s.IDs()) }

func (s *DependentSet) WriteMany(w io.Writer) error { return writeMany(w, s.Words()) }

// WriteOneWithMessageID writes the one encoding followed by the message id
// of the member, if any.
func (s *DependentSet) WriteOneWithMessageID(w io.Writer) error {
	ids, _, messageIDs := s.snapshot()
	bw := newWriter(w)

	if err := encodeOne(bw, ids); err != nil {
		return err
	}

	return encodeTrints(bw, messageIDs)
}

// WriteFewWithMessageID writes the few encoding followed by a message id per
// member. The set must not hold more than MaxFewMembers members.
func (s *DependentSet) WriteFewWithMessageID(w io.Writer) error {
	ids, _, messageIDs := s.snapshot()
	bw := newWriter(w)

	if err := encodeFew(bw, ids); err != nil {
		return err
	}

	return encodeTrints(bw, messageIDs)
}

// WriteManyWithMessageID writes the bitset followed by the member count and
// a message id per member in ascending id order.
func (s *DependentSet) WriteManyWithMessageID(w io.Writer) error {
	ids, words, messageIDs := s.snapshot()
	bw := newWriter(w)

	if err := encodeMany(bw, words); err != nil {
		return err
	}

	if err := bw.WriteUint16(uint16(len(ids))); err != nil {
		return err
	}

	return encodeTrints(bw, messageIDs)
}

func (s *DependentSet) ReadOne(r io.Reader) error {
	return s.read(r, EncodingOne, false)
}

func (s *DependentSet) ReadFew(r io.Reader) error {
	return s.read(r, EncodingFew, false)
}

func (s *DependentSet) ReadMany(r io.Reader) error {
	return s.read(r, EncodingMany, false)
}

func (s *DependentSet) ReadOneWithMessageID(r io.Reader) error {
	return s.read(r, EncodingOne, true)
}

func (s *DependentSet) ReadFewWithMessageID(r io.Reader) error {
	return s.read(r, EncodingFew, true)
}

func (s *DependentSet) ReadManyWithMessageID(r io.Reader) error {
	return s.read(r, EncodingMany, true)
}

func (s *DependentSet) read(r io.Reader, enc Encoding, withMessageIDs bool) error {
	p, err := Decode(r, enc, withMessageIDs)
	if err != nil {
		return err
	}

	s.mut.Lock()
	defer s.mut.Unlock()

	for i, id := range p.IDs {
		s.bits.set(id)

		if withMessageIDs {
			s.setMessageIDLocked(id, p.MessageIDs[i])
		}
	}

	return nil
}

func (s *DependentSet) String() string { return formatIDs(s.IDs()) }
