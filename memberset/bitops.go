package memberset

// WordIndex returns the offset of the 32-bit word that holds the id.
// The id must be valid.
func WordIndex(id ID) int {
	return int(id-1) >> 5
}

// BitMask returns the mask of the id within its word. The id must be valid.
func BitMask(id ID) uint32 {
	return 1 << (uint32(id-1) & 31)
}

// WordCount returns the number of words up to and including the highest
// non-zero one.
func WordCount(words []uint32) int {
	for i := len(words) - 1; i >= 0; i-- {
		if words[i] != 0 {
			return i + 1
		}
	}

	return 0
}

// maxWords is the number of words needed to hold every valid id.
var maxWords = WordIndex(MaxID) + 1

func idAt(word, bit int) ID {
	return ID(word<<5 + bit + 1)
}
