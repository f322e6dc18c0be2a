package memberset

// slots keeps the bitset and the member references of an ActualSet in one
// place. A bit is set if and only if the slot at id-1 holds a member; the
// only mutators are put, drop, retain, subtract and reset, all of which
// update both halves.
type slots struct {
	bits    bitSet
	members []*Member
}

func (s *slots) put(m *Member) bool {
	if !s.bits.set(m.ID) {
		return false
	}

	i := int(m.ID) - 1
	if i >= len(s.members) {
		members := make([]*Member, i+2)
		copy(members, s.members)
		s.members = members
	}

	s.members[i] = m

	return true
}

func (s *slots) drop(id ID) bool {
	if !s.bits.clear(id) {
		return false
	}

	s.members[id-1] = nil

	return true
}

func (s *slots) get(id ID) *Member {
	if !s.bits.test(id) {
		return nil
	}

	return s.members[id-1]
}

func (s *slots) retain(keep []uint32) int {
	dropped := 0

	s.bits.retain(keep, func(id ID) {
		s.members[id-1] = nil
		dropped++
	})

	return dropped
}

func (s *slots) subtract(other []uint32) int {
	dropped := 0

	s.bits.subtract(other, func(id ID) {
		s.members[id-1] = nil
		dropped++
	})

	return dropped
}

// list appends the members in ascending id order.
func (s *slots) list(dst []*Member) []*Member {
	s.bits.each(func(id ID) bool {
		dst = append(dst, s.members[id-1])
		return true
	})

	return dst
}

func (s *slots) reset() {
	s.bits.reset()
	s.members = nil
}

func (s *slots) clone() slots {
	members := make([]*Member, len(s.members))
	copy(members, s.members)

	return slots{
		bits:    s.bits.clone(),
		members: members,
	}
}
