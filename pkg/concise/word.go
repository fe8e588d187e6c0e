package concise

// Word layout (32 bits):
//
//	1 xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx   literal: low 31 bits are one block
//	00 fffff ccccccccccccccccccccccccc  zero sequence: (c+1) blocks of zeros
//	01 fffff ccccccccccccccccccccccccc  one sequence: (c+1) blocks of ones
//
// The 5-bit f field is the "flip" extension over plain WAH: when nonzero,
// bit (f-1) of the sequence's first block has the opposite value of the run.
// In WAH mode f is always zero.
const (
	// maxLiteralLength is the number of payload bits per block.
	maxLiteralLength = 31

	literalBit      = uint32(0x80000000)
	allZerosLiteral = uint32(0x80000000)
	allOnesLiteral  = uint32(0xFFFFFFFF)

	// oneSequenceBit tells the two run types apart in bits 31-30: 01 for a
	// one sequence, 00 for a zero sequence.
	oneSequenceBit = uint32(0x40000000)

	// sequenceCountMask selects the 25-bit block counter of a sequence word.
	sequenceCountMask = uint32(0x01FFFFFF)

	// MaxAllowedInteger is the largest storable element: the 25-bit counter
	// addresses 2^25 blocks of 31 bits, plus the 31 bits of a final literal.
	MaxAllowedInteger = maxLiteralLength*(1<<25) + 30
)

// isLiteral reports whether w is a literal word.
func isLiteral(w uint32) bool {
	return w&0x80000000 != 0
}

// isZeroSequence reports whether w encodes a run of all-zero blocks.
func isZeroSequence(w uint32) bool {
	return w&0xC0000000 == 0
}

// isOneSequence reports whether w encodes a run of all-one blocks.
func isOneSequence(w uint32) bool {
	return w&0xC0000000 == oneSequenceBit
}

// isSequenceWithNoBits reports whether w is a sequence whose flip field is
// zero, i.e. a pure run with no exception bit in its first block.
func isSequenceWithNoBits(w uint32) bool {
	return w&0xBE000000 == 0
}

// sequenceCount returns the counter of a sequence word. The run spans
// sequenceCount(w)+1 blocks.
func sequenceCount(w uint32) uint32 {
	return w & sequenceCountMask
}

// flippedBit returns the in-block position of a sequence's flipped bit, or -1
// when the flip field is zero.
func flippedBit(w uint32) int {
	return int((w>>25)&0x1F) - 1
}

// literalBits strips the marker bit from a literal word.
func literalBits(w uint32) uint32 {
	return w &^ literalBit
}

// containsOnlyOneBit reports whether exactly one bit of v is set.
func containsOnlyOneBit(v uint32) bool {
	return v != 0 && v&(v-1) == 0
}

// sequenceLiteral is the saturated literal image of a sequence's uniform
// blocks: all zeros for a zero run, all ones for a one run.
func sequenceLiteral(w uint32) uint32 {
	if isZeroSequence(w) {
		return allZerosLiteral
	}
	return allOnesLiteral
}

// firstBlockLiteral expands the first block of w to a literal word. For a
// literal it is the word itself; for a flip-carrying sequence it is the
// saturated literal with the flipped bit toggled.
func firstBlockLiteral(w uint32) uint32 {
	if isLiteral(w) {
		return w
	}
	f := flippedBit(w)
	if f < 0 {
		return sequenceLiteral(w)
	}
	if isZeroSequence(w) {
		return allZerosLiteral | 1<<uint(f)
	}
	return allOnesLiteral &^ (1 << uint(f))
}
