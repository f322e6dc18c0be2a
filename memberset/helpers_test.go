package memberset

import "fmt"

func newMember(id ID) *Member {
	return &Member{
		ID:   id,
		Name: fmt.Sprintf("node-%d", id),
		Addr: fmt.Sprintf("10.0.0.%d:7946", id%250),
	}
}

// mustActual builds an actual set with freshly created members.
func mustActual(ids ...ID) *ActualSet {
	s := &ActualSet{}

	for _, id := range ids {
		if _, err := s.Add(newMember(id)); err != nil {
			panic(err)
		}
	}

	return s
}

func memberIDs(members []*Member) []ID {
	ids := make([]ID, len(members))
	for i, m := range members {
		ids[i] = m.ID
	}

	return ids
}
