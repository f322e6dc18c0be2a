package memberset

import (
	"math/bits"
	"math/rand"
	"sync/atomic"

	"github.com/maxpoletaev/kivigrid/internal/generic"
)

// barrier publishes the contents of a set from one goroutine to another.
// The writer calls WriteBarrier after populating the set, the reader calls
// ReadBarrier before looking at it. Both touch the same atomic word, which
// gives a happens-before edge once the reader observes the writer's update.
type barrier struct {
	seq atomic.Uint32
}

// WriteBarrier publishes all preceding writes to the set.
func (b *barrier) WriteBarrier() {
	b.seq.Add(1)
}

// ReadBarrier makes writes published by WriteBarrier visible to the caller.
// It returns the number of barriers observed so far.
func (b *barrier) ReadBarrier() uint32 {
	return b.seq.Load()
}

// bitSet is the intrinsic bitset shared by the bitset-backed variants. It is
// not synchronized, the owning set guards it.
type bitSet struct {
	words []uint32
}

// set adds the id and reports whether the bit was previously clear. The
// word slice grows to exactly the words needed to hold the id.
func (b *bitSet) set(id ID) bool {
	i := WordIndex(id)

	if i >= len(b.words) {
		words := make([]uint32, i+1)
		copy(words, b.words)
		b.words = words
	}

	mask := BitMask(id)
	if b.words[i]&mask != 0 {
		return false
	}

	b.words[i] |= mask

	return true
}

func (b *bitSet) clear(id ID) bool {
	if !b.test(id) {
		return false
	}

	b.words[WordIndex(id)] &^= BitMask(id)

	return true
}

func (b *bitSet) test(id ID) bool {
	if !id.Valid() {
		return false
	}

	i := WordIndex(id)

	return i < len(b.words) && b.words[i]&BitMask(id) != 0
}

func (b *bitSet) count() int {
	n := 0
	for _, w := range b.words {
		n += bits.OnesCount32(w)
	}

	return n
}

func (b *bitSet) wordCount() int {
	return WordCount(b.words)
}

func (b *bitSet) first() ID {
	for i, w := range b.words {
		if w != 0 {
			return idAt(i, bits.TrailingZeros32(w))
		}
	}

	return NoID
}

func (b *bitSet) last() ID {
	for i := len(b.words) - 1; i >= 0; i-- {
		if w := b.words[i]; w != 0 {
			return idAt(i, 31-bits.LeadingZeros32(w))
		}
	}

	return NoID
}

// each calls fn for every id in ascending order until fn returns false.
func (b *bitSet) each(fn func(id ID) bool) {
	for i, w := range b.words {
		for w != 0 {
			if !fn(idAt(i, bits.TrailingZeros32(w))) {
				return
			}

			w &= w - 1
		}
	}
}

func (b *bitSet) ids() []ID {
	ids := make([]ID, 0, b.count())

	b.each(func(id ID) bool {
		ids = append(ids, id)
		return true
	})

	return ids
}

// random returns a uniformly chosen id, or NoID if the set is empty.
func (b *bitSet) random() ID {
	n := b.count()
	if n == 0 {
		return NoID
	}

	var (
		target = rand.Intn(n)
		found  = NoID
	)

	b.each(func(id ID) bool {
		if target == 0 {
			found = id
			return false
		}

		target--

		return true
	})

	return found
}

// snapshot returns a copy of the words with trailing zero words trimmed.
func (b *bitSet) snapshot() []uint32 {
	n := b.wordCount()
	words := make([]uint32, n)
	copy(words, b.words[:n])

	return words
}

func (b *bitSet) containsAll(other []uint32) bool {
	for i, w := range other {
		var mine uint32
		if i < len(b.words) {
			mine = b.words[i]
		}

		if w&^mine != 0 {
			return false
		}
	}

	return true
}

// retain keeps only the ids present in keep and calls dropped for every id
// it removed. It reports whether anything changed.
func (b *bitSet) retain(keep []uint32, dropped func(id ID)) bool {
	changed := false

	for i, w := range b.words {
		var k uint32
		if i < len(keep) {
			k = keep[i]
		}

		if removed := w &^ k; removed != 0 {
			b.words[i] = w & k
			changed = true
			notifyDropped(i, removed, dropped)
		}
	}

	return changed
}

// subtract removes the ids present in other, calling dropped for each.
func (b *bitSet) subtract(other []uint32, dropped func(id ID)) bool {
	changed := false

	n := generic.Min(len(b.words), len(other))

	for i := 0; i < n; i++ {
		w := b.words[i]

		if removed := w & other[i]; removed != 0 {
			b.words[i] = w &^ removed
			changed = true
			notifyDropped(i, removed, dropped)
		}
	}

	return changed
}

func (b *bitSet) reset() {
	b.words = nil
}

func (b *bitSet) clone() bitSet {
	words := make([]uint32, len(b.words))
	copy(words, b.words)

	return bitSet{words: words}
}

func notifyDropped(word int, removed uint32, dropped func(id ID)) {
	if dropped == nil {
		return
	}

	for removed != 0 {
		dropped(idAt(word, bits.TrailingZeros32(removed)))
		removed &= removed - 1
	}
}

// wordsFromIDs builds a trimmed bitset from a list of valid ids.
func wordsFromIDs(ids []ID) []uint32 {
	var b bitSet
	for _, id := range ids {
		b.set(id)
	}

	return b.snapshot()
}
