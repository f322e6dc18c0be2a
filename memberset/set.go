// Package memberset implements sets of cluster members keyed by their
// mini-ids. The variants trade generality for footprint: EmptySet is an
// immutable singleton, SingleSet and LiteSet hold at most one member,
// ActualSet owns any number of members, and DependentSet is a view that never
// reports members missing from its base set.
//
// All variants are safe for concurrent use. Sets can be written to the wire
// in one of three encodings, see Encoding.
package memberset

import (
	"fmt"
	"io"
	"strings"
)

// Kind identifies a member set variant.
type Kind uint8

const (
	KindEmpty Kind = iota + 1
	KindSingle
	KindLite
	KindActual
	KindDependent
)

var kindNames = map[Kind]string{
	KindEmpty:     "empty",
	KindSingle:    "single",
	KindLite:      "lite",
	KindActual:    "actual",
	KindDependent: "dependent",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("Kind(%d)", k)
}

// ParseKind returns the kind with the given name.
func ParseKind(name string) (Kind, error) {
	for kind, n := range kindNames {
		if n == name {
			return kind, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Resolver maps mini-ids to members. Any Set is a Resolver for its own
// members; the membership view is the usual one.
type Resolver interface {
	Member(id ID) (*Member, error)
}

// Set is the common contract of all member set variants.
type Set interface {
	fmt.Stringer
	Resolver

	Kind() Kind

	// Add adds the member and reports whether the set changed.
	Add(m *Member) (bool, error)
	AddAll(other Set) (bool, error)
	// Remove removes the member with the id and reports whether the set changed.
	Remove(id ID) (bool, error)
	RemoveAll(other Set) (bool, error)
	RetainAll(other Set) (bool, error)
	Clear() error

	Contains(id ID) bool
	ContainsAll(other Set) bool
	Size() int
	IsEmpty() bool

	// FirstID and LastID return the lowest and the highest id, or NoID.
	FirstID() ID
	LastID() ID
	// RandomID returns an arbitrary member id, or NoID if the set is empty.
	RandomID() ID
	// IDs returns the member ids in ascending order.
	IDs() []ID
	// Words returns a copy of the bitset with trailing zero words trimmed.
	Words() []uint32

	// Members copies the members into dst in ascending id order. If dst is
	// too short, a new slice is allocated. If dst is longer than needed, the
	// element following the last member is set to nil. The returned slice
	// holds exactly the members.
	Members(dst []*Member) ([]*Member, error)
	// Range calls fn for each member in ascending id order until fn returns
	// false. The members are captured before the first call, so fn may
	// access the set.
	Range(fn func(m *Member) bool) error
	Iterator() *Iterator

	WriteOne(w io.Writer) error
	WriteFew(w io.Writer) error
	WriteMany(w io.Writer) error

	WriteBarrier()
	ReadBarrier() uint32
}

// copyMembers implements the reusable slice contract of Set.Members.
func copyMembers(dst, src []*Member) []*Member {
	if len(dst) < len(src) {
		dst = make([]*Member, len(src))
	}

	copy(dst, src)

	if len(dst) > len(src) {
		dst[len(src)] = nil
	}

	return dst[:len(src)]
}

func rangeMembers(members []*Member, fn func(m *Member) bool) {
	for _, m := range members {
		if !fn(m) {
			return
		}
	}
}

func formatIDs(ids []ID) string {
	b := strings.Builder{}

	b.WriteString("{")

	for i, id := range ids {
		if i > 0 {
			b.WriteString(",")
		}

		b.WriteString(id.String())
	}

	b.WriteString("}")

	return b.String()
}

func checkMember(m *Member) error {
	if m == nil {
		return ErrNilMember
	}

	if !m.ID.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidID, m.ID)
	}

	return nil
}

// resolveAll maps ids to members, failing on the first id the resolver
// does not know.
func resolveAll(ids []ID, resolver Resolver) ([]*Member, error) {
	members := make([]*Member, 0, len(ids))

	for _, id := range ids {
		m, err := resolver.Member(id)
		if err != nil {
			return nil, fmt.Errorf("resolve member %d: %w", id, err)
		}

		members = append(members, m)
	}

	return members, nil
}

var (
	_ Set = (*EmptySet)(nil)
	_ Set = (*SingleSet)(nil)
	_ Set = (*LiteSet)(nil)
	_ Set = (*ActualSet)(nil)
	_ Set = (*DependentSet)(nil)
)
