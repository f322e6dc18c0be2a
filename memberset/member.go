package memberset

import "fmt"

// ID is a mini-id of a cluster member. It is unique within a membership view.
// Zero is reserved for "no member" and is never a member of any set.
type ID uint16

const (
	// NoID is the sentinel for an absent member.
	NoID ID = 0
	// MaxID is the largest mini-id the cluster hands out.
	MaxID ID = 32767
)

func (id ID) String() string {
	return fmt.Sprintf("%d", id)
}

// Valid reports whether the id can be a set member.
func (id ID) Valid() bool {
	return id >= 1 && id <= MaxID
}

type Member struct {
	// ID is the mini-id of the node.
	ID ID
	// Name is the unique human-readable name of the node.
	Name string
	// Addr is the address the node is reachable at.
	Addr string
}

// WordIndex returns the index of the bitset word holding the member.
func (m *Member) WordIndex() int {
	return WordIndex(m.ID)
}

// BitMask returns the bit of the member within its bitset word.
func (m *Member) BitMask() uint32 {
	return BitMask(m.ID)
}

func (m *Member) String() string {
	return fmt.Sprintf("Member(id=%d, name=%s, addr=%s)", m.ID, m.Name, m.Addr)
}
