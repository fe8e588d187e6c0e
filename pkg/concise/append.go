package concise

import "math/bits"

// appendWord places w after the current last word.
func (s *Set) appendWord(w uint32) {
	s.words = append(s.words, w)
}

// appendLiteral appends one literal block, folding it into the previous word
// whenever the canonicalization rules allow:
//
//   - an all-zero literal extends a zero run (or starts one together with a
//     preceding all-zero literal, or with a preceding one-bit literal via the
//     flip promotion);
//   - symmetrically for an all-one literal with one runs.
//
// A run whose 25-bit counter is saturated cannot absorb another block: the
// increment would overflow into the flip field. The block is appended as a
// new word instead. The element domain spans one block more than a single
// sequence word can hold, so a full-domain run legitimately ends this way.
func (s *Set) appendLiteral(w uint32) {
	if len(s.words) == 0 {
		s.words = append(s.words, w)
		return
	}
	n := len(s.words) - 1
	prev := s.words[n]
	switch w {
	case allZerosLiteral:
		switch {
		case prev == allZerosLiteral:
			s.words[n] = 1
		case isZeroSequence(prev):
			if sequenceCount(prev) == sequenceCountMask {
				s.appendWord(w)
			} else {
				s.words[n]++
			}
		case !s.wah && containsOnlyOneBit(literalBits(prev)):
			s.words[n] = 1 | uint32(1+bits.TrailingZeros32(prev))<<25
		default:
			s.appendWord(w)
		}
	case allOnesLiteral:
		switch {
		case prev == allOnesLiteral:
			s.words[n] = oneSequenceBit | 1
		case isOneSequence(prev):
			if sequenceCount(prev) == sequenceCountMask {
				s.appendWord(w)
			} else {
				s.words[n]++
			}
		case !s.wah && containsOnlyOneBit(^prev):
			s.words[n] = oneSequenceBit | 1 | uint32(1+bits.TrailingZeros32(^prev))<<25
		default:
			s.appendWord(w)
		}
	default:
		s.appendWord(w)
	}
}

// appendFill appends length uniform blocks of the given sequence type
// (0 for zeros, oneSequenceBit for ones), merging with the previous word
// where possible. length must be at least 1. A fill that would push a
// counter past its 25-bit limit saturates the current word and carries the
// remaining blocks into a fresh one.
func (s *Set) appendFill(length uint32, fillType uint32) {
	fillType &= oneSequenceBit
	if length == 1 {
		if fillType == 0 {
			s.appendLiteral(allZerosLiteral)
		} else {
			s.appendLiteral(allOnesLiteral)
		}
		return
	}
	if len(s.words) == 0 {
		s.words = append(s.words, fillType|(length-1))
		return
	}
	n := len(s.words) - 1
	prev := s.words[n]
	if isLiteral(prev) {
		var head uint32
		switch {
		case fillType == 0 && prev == allZerosLiteral:
			head = 0
		case fillType == oneSequenceBit && prev == allOnesLiteral:
			head = oneSequenceBit
		case !s.wah && fillType == 0 && containsOnlyOneBit(literalBits(prev)):
			head = uint32(1+bits.TrailingZeros32(prev)) << 25
		case !s.wah && fillType == oneSequenceBit && containsOnlyOneBit(^prev):
			head = oneSequenceBit | uint32(1+bits.TrailingZeros32(^prev))<<25
		default:
			s.appendWord(fillType | (length - 1))
			return
		}
		// the absorbed literal becomes the run's first block
		if length > sequenceCountMask {
			s.words[n] = head | sequenceCountMask
			s.appendFill(length-sequenceCountMask, fillType)
		} else {
			s.words[n] = head | length
		}
		return
	}
	// The flip bit, if any, lives in the run's first block; extending the
	// run at its tail is always safe as long as the counter has room.
	if (isZeroSequence(prev) && fillType == 0) || (isOneSequence(prev) && fillType == oneSequenceBit) {
		room := sequenceCountMask - sequenceCount(prev)
		if length > room {
			s.words[n] += room
			s.appendWord(fillType | (length - room - 1))
		} else {
			s.words[n] += length
		}
		return
	}
	s.appendWord(fillType | (length - 1))
}

// appendBit appends element e, which must be greater than last. It bridges
// the gap with a zero fill and sets the bit in the final literal block.
func (s *Set) appendBit(e int) {
	if len(s.words) == 0 {
		zeroBlocks := uint32(e / maxLiteralLength)
		if zeroBlocks > 0 {
			s.appendFill(zeroBlocks, 0)
		}
		s.appendLiteral(literalBit | 1<<uint(e%maxLiteralLength))
		s.last = e
		s.size = 1
		return
	}
	// bit position of e relative to the start of last's block
	bit := s.last%maxLiteralLength + e - s.last
	if bit >= maxLiteralLength {
		zeroBlocks := uint32(bit/maxLiteralLength - 1)
		bit %= maxLiteralLength
		if zeroBlocks > 0 {
			s.appendFill(zeroBlocks, 0)
		}
		s.appendLiteral(literalBit | 1<<uint(bit))
	} else {
		// same block as last: the final word is a literal by invariant
		n := len(s.words) - 1
		s.words[n] |= 1 << uint(bit)
		if s.words[n] == allOnesLiteral {
			s.words = s.words[:n]
			s.appendLiteral(allOnesLiteral)
		}
	}
	s.last = e
	if s.size >= 0 {
		s.size++
	}
}
