package memberset

import "github.com/maxpoletaev/kivigrid/internal/binario"

const trintRange = binario.MaxTrint + 1

// ExpandTrint restores a full 32-bit counter from its truncated 24-bit form.
// Of all values sharing the low 24 bits with trint, it picks the one closest
// to ref, which is usually the last full value seen from the same sender.
func ExpandTrint(trint, ref uint32) uint32 {
	diff := int32((trint - ref) & binario.MaxTrint)
	if diff >= trintRange/2 {
		diff -= trintRange
	}

	return ref + uint32(diff)
}
