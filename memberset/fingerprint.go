package memberset

import (
	"encoding/binary"

	"github.com/twmb/murmur3"
)

// Fingerprint returns a hash of the set membership. Two sets holding the
// same ids have the same fingerprint regardless of their kind.
func Fingerprint(s Set) uint64 {
	return FingerprintWords(s.Words())
}

// FingerprintWords hashes a bitset. Trailing zero words are ignored.
func FingerprintWords(words []uint32) uint64 {
	n := WordCount(words)
	buf := make([]byte, 4*n)

	for i, w := range words[:n] {
		binary.BigEndian.PutUint32(buf[i*4:], w)
	}

	return murmur3.Sum64(buf)
}
