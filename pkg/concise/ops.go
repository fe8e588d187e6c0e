package concise

import "math/bits"

// binaryOp selects the per-literal action of a set operation. The high bit of
// every combined word is forced so results stay literals.
type binaryOp uint8

const (
	opAND binaryOp = iota
	opOR
	opXOR
	opANDNOT
)

func (op binaryOp) combine(a, b uint32) uint32 {
	switch op {
	case opAND:
		return a & b
	case opOR:
		return a | b
	case opXOR:
		return literalBit | (a ^ b)
	default: // opANDNOT
		return literalBit | (a &^ b)
	}
}

// Union returns a fresh set holding every element of s or other.
func (s *Set) Union(other *Set) *Set {
	return s.operate(other, opOR)
}

// Intersection returns a fresh set holding the elements common to s and
// other.
func (s *Set) Intersection(other *Set) *Set {
	return s.operate(other, opAND)
}

// Difference returns a fresh set holding the elements of s not in other.
func (s *Set) Difference(other *Set) *Set {
	return s.operate(other, opANDNOT)
}

// SymmetricDifference returns a fresh set holding the elements in exactly one
// of s and other.
func (s *Set) SymmetricDifference(other *Set) *Set {
	return s.operate(other, opXOR)
}

// operate computes s <op> other into a fresh set, merging the two word
// streams in lock-step.
func (s *Set) operate(other *Set, op binaryOp) *Set {
	// empty operands
	if len(s.words) == 0 || len(other.words) == 0 {
		switch op {
		case opAND:
			return s.empty()
		case opOR, opXOR:
			if len(s.words) == 0 {
				return other.Clone()
			}
			return s.Clone()
		default: // opANDNOT
			return s.Clone()
		}
	}

	if res := combineDisjoint(op, s, other); res != nil {
		return res
	}

	res := s.empty()
	res.words = make([]uint32, 0, resultCapacity(s, other))

	a := newWordCursor(s)
	b := newWordCursor(other)
	aMore, bMore := true, true
	for {
		if !a.isLiteral && !b.isLiteral {
			k := min(a.count, b.count)
			res.appendFill(k, fillTypeOf(op.combine(a.word, b.word)))
			aMore = a.prepareNext(k)
			bMore = b.prepareNext(k)
		} else {
			res.appendLiteral(op.combine(a.word, b.word))
			aMore = a.prepareNext(1)
			bMore = b.prepareNext(1)
		}
		if !aMore || !bMore {
			break
		}
	}

	res.size = -1
	invalidLast := true
	switch op {
	case opAND:
		// drop both tails
	case opOR:
		if aMore {
			res.flushCursor(a)
		}
		if bMore {
			res.flushCursor(b)
		}
		res.last = max(s.last, other.last)
		invalidLast = false
	case opXOR:
		if aMore {
			res.flushCursor(a)
		}
		if bMore {
			res.flushCursor(b)
		}
		if s.last != other.last {
			res.last = max(s.last, other.last)
			invalidLast = false
		}
	default: // opANDNOT
		if aMore {
			res.flushCursor(a)
		}
		if s.last > other.last {
			res.last = s.last
			invalidLast = false
		}
	}

	res.trimZeros()
	if len(res.words) == 0 {
		return res
	}
	if invalidLast {
		res.updateLast()
	}
	res.compact()
	return res
}

// fillTypeOf maps a saturated literal onto its sequence type.
func fillTypeOf(lit uint32) uint32 {
	if lit == allOnesLiteral {
		return oneSequenceBit
	}
	return 0
}

// resultCapacity sizes the result array: never more than both operands plus
// slack, never more than the decoded block span allows.
func resultCapacity(a, b *Set) int {
	blocks := max(a.last, b.last)/maxLiteralLength + 1
	if a.wah {
		blocks *= 2
	}
	return min(len(a.words)+len(b.words)+3, blocks+1)
}

// flushCursor appends the remaining events of c, starting from its current
// (possibly partially consumed) event. Only valid when the other operand is
// exhausted and the operator passes the tail through unchanged.
func (res *Set) flushCursor(c *wordCursor) {
	for {
		if c.isLiteral {
			res.appendLiteral(c.word)
		} else {
			res.appendFill(c.count, fillTypeOf(c.word))
		}
		if !c.prepareNext(c.blocks()) {
			return
		}
	}
}

// combineDisjoint handles the case where one operand's first word is a pure
// run wide enough to cover the whole of the other operand. It returns nil
// when no fast answer applies.
func combineDisjoint(op binaryOp, a, b *Set) *Set {
	// a's first word covers b
	if isSequenceWithNoBits(a.words[0]) &&
		maxLiteralLength*int(sequenceCount(a.words[0])+1) > b.last {
		if isZeroSequence(a.words[0]) {
			// a and b share no element
			switch op {
			case opAND:
				return a.empty()
			case opANDNOT:
				return a.Clone()
			}
		} else {
			// every element of b is in a's opening run
			switch op {
			case opAND:
				return b.Clone()
			case opOR:
				return a.Clone()
			}
		}
	}
	// b's first word covers a
	if isSequenceWithNoBits(b.words[0]) &&
		maxLiteralLength*int(sequenceCount(b.words[0])+1) > a.last {
		if isZeroSequence(b.words[0]) {
			switch op {
			case opAND:
				return a.empty()
			case opANDNOT:
				return a.Clone()
			}
		} else {
			switch op {
			case opAND:
				return a.Clone()
			case opOR:
				return b.Clone()
			case opANDNOT:
				return a.empty()
			}
		}
	}
	return nil
}

// replaceWith swaps s's contents for those of r, reporting whether the word
// image changed.
func (s *Set) replaceWith(r *Set) bool {
	changed := s.last != r.last || len(s.words) != len(r.words)
	if !changed {
		for i, w := range s.words {
			if r.words[i] != w {
				changed = true
				break
			}
		}
	}
	s.words = r.words
	s.last = r.last
	s.size = r.size
	return changed
}

// AddAll adds every element of other, reporting whether s changed.
func (s *Set) AddAll(other *Set) bool {
	s.modCount++
	if other == nil || len(other.words) == 0 {
		return false
	}
	return s.replaceWith(s.operate(other, opOR))
}

// RemoveAll removes every element of other, reporting whether s changed.
func (s *Set) RemoveAll(other *Set) bool {
	s.modCount++
	if other == nil || len(other.words) == 0 || len(s.words) == 0 {
		return false
	}
	return s.replaceWith(s.operate(other, opANDNOT))
}

// RetainAll drops every element not in other, reporting whether s changed.
func (s *Set) RetainAll(other *Set) bool {
	s.modCount++
	if len(s.words) == 0 {
		return false
	}
	if other == nil || len(other.words) == 0 {
		s.reset()
		return true
	}
	return s.replaceWith(s.operate(other, opAND))
}

// IntersectionSize counts |s ∩ other| without materializing the result.
func (s *Set) IntersectionSize(other *Set) int {
	if len(s.words) == 0 || len(other.words) == 0 {
		return 0
	}
	n := 0
	a := newWordCursor(s)
	b := newWordCursor(other)
	for {
		var aMore, bMore bool
		if !a.isLiteral && !b.isLiteral {
			k := min(a.count, b.count)
			if a.word&b.word == allOnesLiteral {
				n += maxLiteralLength * int(k)
			}
			aMore = a.prepareNext(k)
			bMore = b.prepareNext(k)
		} else {
			n += bits.OnesCount32(a.word & b.word &^ literalBit)
			aMore = a.prepareNext(1)
			bMore = b.prepareNext(1)
		}
		if !aMore || !bMore {
			return n
		}
	}
}

// UnionSize counts |s ∪ other|.
func (s *Set) UnionSize(other *Set) int {
	return s.Size() + other.Size() - s.IntersectionSize(other)
}

// DifferenceSize counts |s \ other|.
func (s *Set) DifferenceSize(other *Set) int {
	return s.Size() - s.IntersectionSize(other)
}

// SymmetricDifferenceSize counts |s Δ other|.
func (s *Set) SymmetricDifferenceSize(other *Set) int {
	return s.Size() + other.Size() - 2*s.IntersectionSize(other)
}

// ComplementSize counts the elements of [0, last] not in s.
func (s *Set) ComplementSize() int {
	if len(s.words) == 0 {
		return 0
	}
	return s.last + 1 - s.Size()
}

// ContainsAll reports whether every element of other is in s.
func (s *Set) ContainsAll(other *Set) bool {
	if other == nil || len(other.words) == 0 {
		return true
	}
	if len(s.words) == 0 || other.last > s.last {
		return false
	}
	a := newWordCursor(s)
	b := newWordCursor(other)
	for {
		var aMore, bMore bool
		if !a.isLiteral && !b.isLiteral {
			if b.word == allOnesLiteral && a.word != allOnesLiteral {
				return false
			}
			k := min(a.count, b.count)
			aMore = a.prepareNext(k)
			bMore = b.prepareNext(k)
		} else {
			if b.word&^a.word&^literalBit != 0 {
				return false
			}
			aMore = a.prepareNext(1)
			bMore = b.prepareNext(1)
		}
		if !aMore || !bMore {
			// other.last <= s.last: any unseen tail of other is zeros
			return true
		}
	}
}

// ContainsAny reports whether s and other share at least one element.
func (s *Set) ContainsAny(other *Set) bool {
	if s == other {
		return len(s.words) != 0
	}
	if len(s.words) == 0 || other == nil || len(other.words) == 0 {
		return false
	}
	a := newWordCursor(s)
	b := newWordCursor(other)
	for {
		var aMore, bMore bool
		if !a.isLiteral && !b.isLiteral {
			if a.word&b.word == allOnesLiteral {
				return true
			}
			k := min(a.count, b.count)
			aMore = a.prepareNext(k)
			bMore = b.prepareNext(k)
		} else {
			if a.word&b.word&^literalBit != 0 {
				return true
			}
			aMore = a.prepareNext(1)
			bMore = b.prepareNext(1)
		}
		if !aMore || !bMore {
			return false
		}
	}
}

// Intersects is an alias for ContainsAny.
func (s *Set) Intersects(other *Set) bool {
	return s.ContainsAny(other)
}

// ContainsAtLeast reports whether s and other share at least n elements.
// It panics with ErrInvalidArgument when n < 1.
func (s *Set) ContainsAtLeast(other *Set, n int) bool {
	if n < 1 {
		panic(ErrInvalidArgument)
	}
	if len(s.words) == 0 || other == nil || len(other.words) == 0 {
		return false
	}
	seen := 0
	a := newWordCursor(s)
	b := newWordCursor(other)
	for {
		var aMore, bMore bool
		if !a.isLiteral && !b.isLiteral {
			k := min(a.count, b.count)
			if a.word&b.word == allOnesLiteral {
				seen += maxLiteralLength * int(k)
			}
			aMore = a.prepareNext(k)
			bMore = b.prepareNext(k)
		} else {
			seen += bits.OnesCount32(a.word & b.word &^ literalBit)
			aMore = a.prepareNext(1)
			bMore = b.prepareNext(1)
		}
		if seen >= n {
			return true
		}
		if !aMore || !bMore {
			return false
		}
	}
}

// JaccardSimilarity is |s ∩ other| / |s ∪ other|, with 1 for two empty sets.
func (s *Set) JaccardSimilarity(other *Set) float64 {
	inter := s.IntersectionSize(other)
	union := s.Size() + other.Size() - inter
	if union == 0 {
		return 1
	}
	return float64(inter) / float64(union)
}

// JaccardDistance is 1 - JaccardSimilarity.
func (s *Set) JaccardDistance(other *Set) float64 {
	return 1 - s.JaccardSimilarity(other)
}

// Equal reports whether two sets have equal last and identical word prefixes.
// For two sets in the same encoding mode this is the same as holding the same
// elements; a WAH set and a CONCISE set with the same elements are equal only
// when their words coincide.
func (s *Set) Equal(other *Set) bool {
	if s == other {
		return true
	}
	if other == nil || s.last != other.last || len(s.words) != len(other.words) {
		return false
	}
	for i, w := range s.words {
		if other.words[i] != w {
			return false
		}
	}
	return true
}

// Hash folds the word prefix into a 32-bit value.
func (s *Set) Hash() uint32 {
	h := uint32(1)
	for _, w := range s.words {
		h = (h << 5) - h + w
	}
	return h
}

// Compare orders sets as ascending sequences read from the most significant
// element: the set with the greater maximum is greater; ties walk the block
// images downward.
func (s *Set) Compare(other *Set) int {
	if len(s.words) == 0 && len(other.words) == 0 {
		return 0
	}
	if len(s.words) == 0 {
		return -1
	}
	if len(other.words) == 0 {
		return 1
	}
	if s.last != other.last {
		if s.last < other.last {
			return -1
		}
		return 1
	}
	// equal last: both span the same number of blocks
	a := newReverseWordCursor(s)
	b := newReverseWordCursor(other)
	for {
		var aMore, bMore bool
		if !a.isLiteral && !b.isLiteral {
			if a.word != b.word {
				if a.word == allOnesLiteral {
					return 1
				}
				return -1
			}
			k := min(a.count, b.count)
			aMore = a.prepareNext(k)
			bMore = b.prepareNext(k)
		} else {
			av := a.word &^ literalBit
			bv := b.word &^ literalBit
			if av != bv {
				if av > bv {
					return 1
				}
				return -1
			}
			aMore = a.prepareNext(1)
			bMore = b.prepareNext(1)
		}
		if !aMore || !bMore {
			return 0
		}
	}
}
