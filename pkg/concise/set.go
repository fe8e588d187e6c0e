// Package concise implements the CONCISE compressed bitmap: a set of
// non-negative integers stored as a run-length-encoded array of 32-bit words.
//
// Each 31-bit block of the conceptual dense bitmap is held either in a
// literal word or folded into a sequence word covering a run of identical
// blocks. A sequence may carry a single "flipped" bit inside its first block,
// the extension CONCISE adds over WAH. All set algebra (union, intersection,
// difference, symmetric difference, complement) runs directly on the
// compressed form.
//
// Sets are not safe for concurrent use. Iterators are fail-fast: any
// structural mutation invalidates them.
package concise

import (
	"fmt"
	"math/bits"
	"strings"
)

// Set is a compressed bitmap over [0, MaxAllowedInteger].
// The zero value is not usable; call New, NewWAH or From.
type Set struct {
	// words holds the used prefix of the encoding; len(words) == 0 means
	// the set is empty.
	words []uint32

	// last caches the maximum element, -1 when empty.
	last int

	// size caches the cardinality, -1 when it must be recomputed.
	size int

	// wah disables the flip-bit extension, reducing the codec to plain
	// WAH semantics.
	wah bool

	// modCount bumps on every structural mutation; live iterators compare
	// it against their captured value.
	modCount uint32
}

// New returns an empty CONCISE set.
func New() *Set {
	return &Set{last: -1, size: 0}
}

// NewWAH returns an empty set restricted to WAH encoding (no flip bits).
func NewWAH() *Set {
	return &Set{last: -1, size: 0, wah: true}
}

// From builds a CONCISE set from the given elements. The input may be
// unsorted and contain duplicates.
func From(elems ...int) *Set {
	s := New()
	s.AddMany(elems...)
	return s
}

// empty returns a new empty set with the same encoding mode as s.
func (s *Set) empty() *Set {
	return &Set{last: -1, size: 0, wah: s.wah}
}

// Clone returns an independent copy of s.
func (s *Set) Clone() *Set {
	c := &Set{last: s.last, size: s.size, wah: s.wah}
	if len(s.words) > 0 {
		c.words = make([]uint32, len(s.words))
		copy(c.words, s.words)
	}
	return c
}

// IsEmpty reports whether the set has no elements.
func (s *Set) IsEmpty() bool {
	return len(s.words) == 0
}

// Size returns the number of elements, recomputing the cached value from the
// word array when necessary.
func (s *Set) Size() int {
	if len(s.words) == 0 {
		return 0
	}
	if s.size < 0 {
		n := 0
		for _, w := range s.words {
			switch {
			case isLiteral(w):
				n += bits.OnesCount32(literalBits(w))
			case isZeroSequence(w):
				if flippedBit(w) >= 0 {
					n++
				}
			default:
				n += maxLiteralLength * int(sequenceCount(w)+1)
				if flippedBit(w) >= 0 {
					n--
				}
			}
		}
		s.size = n
	}
	return s.size
}

// Clear removes all elements.
func (s *Set) Clear() {
	s.modCount++
	s.reset()
}

func (s *Set) reset() {
	s.words = nil
	s.last = -1
	s.size = 0
}

// First returns the minimum element. It panics with ErrNoSuchElement on an
// empty set.
func (s *Set) First() int {
	if len(s.words) == 0 {
		panic(ErrNoSuchElement)
	}
	base := 0
	for _, w := range s.words {
		switch {
		case isLiteral(w):
			if b := literalBits(w); b != 0 {
				return base + bits.TrailingZeros32(b)
			}
			base += maxLiteralLength
		case isZeroSequence(w):
			if f := flippedBit(w); f >= 0 {
				return base + f
			}
			base += maxLiteralLength * int(sequenceCount(w)+1)
		default:
			if f := flippedBit(w); f == 0 {
				return base + 1
			}
			return base
		}
	}
	// unreachable on a canonical set: the last word always carries a bit
	panic(ErrNoSuchElement)
}

// Last returns the maximum element. It panics with ErrNoSuchElement on an
// empty set.
func (s *Set) Last() int {
	if len(s.words) == 0 {
		panic(ErrNoSuchElement)
	}
	return s.last
}

// SimulatesWAH reports whether the set uses plain WAH encoding.
func (s *Set) SimulatesWAH() bool {
	return s.wah
}

// WordCount returns the number of 32-bit words in the compressed form.
func (s *Set) WordCount() int {
	return len(s.words)
}

// BitmapCompressionRatio is the size of the compressed form relative to the
// dense bitmap covering [0, last]: used words over ceil((last+1)/32).
func (s *Set) BitmapCompressionRatio() float64 {
	if len(s.words) == 0 {
		return 0
	}
	return float64(len(s.words)) / float64(s.last/32+1)
}

// CollectionCompressionRatio is the size of the compressed form relative to
// an integer list of the elements: used words over cardinality.
func (s *Set) CollectionCompressionRatio() float64 {
	if len(s.words) == 0 {
		return 0
	}
	return float64(len(s.words)) / float64(s.Size())
}

// updateLast recomputes last from the word array. The caller guarantees the
// set is non-empty and canonical (no trailing zero words).
func (s *Set) updateLast() {
	s.last = 0
	for _, w := range s.words {
		if isLiteral(w) {
			s.last += maxLiteralLength
		} else {
			s.last += maxLiteralLength * int(sequenceCount(w)+1)
		}
	}
	w := s.words[len(s.words)-1]
	if isLiteral(w) {
		s.last -= bits.LeadingZeros32(literalBits(w))
	} else {
		s.last--
	}
}

// trimZeros strips trailing words that carry no set bit: all-zero literals
// and pure zero sequences are dropped; a trailing zero sequence with a flip
// bit collapses to the one-bit literal of its first block.
func (s *Set) trimZeros() {
	for n := len(s.words); n > 0; n = len(s.words) {
		w := s.words[n-1]
		switch {
		case w == allZerosLiteral:
			s.words = s.words[:n-1]
		case isZeroSequence(w):
			if s.wah || isSequenceWithNoBits(w) {
				s.words = s.words[:n-1]
			} else {
				s.words[n-1] = firstBlockLiteral(w)
				return
			}
		default:
			return
		}
	}
	s.reset()
}

// compact releases slack capacity when the backing array has grown past twice
// the used prefix.
func (s *Set) compact() {
	if cap(s.words) > 2*len(s.words) {
		w := make([]uint32, len(s.words))
		copy(w, s.words)
		s.words = w
	}
}

// String renders the elements in ascending order, e.g. "{3, 5, 31}".
func (s *Set) String() string {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	for it := s.Iterator(); it.HasNext(); {
		if !first {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d", it.Next())
		first = false
	}
	b.WriteByte('}')
	return b.String()
}

// DebugInfo returns a word-by-word decode of the compressed form.
func (s *Set) DebugInfo() string {
	var b strings.Builder
	fmt.Fprintf(&b, "size: %d, last: %d, words: %d, wah: %v\n",
		s.Size(), s.last, len(s.words), s.wah)
	for i, w := range s.words {
		switch {
		case isLiteral(w):
			fmt.Fprintf(&b, "%4d: %08X literal  bits=%031b\n", i, w, literalBits(w))
		case isZeroSequence(w):
			fmt.Fprintf(&b, "%4d: %08X zero-seq blocks=%d flip=%d\n",
				i, w, sequenceCount(w)+1, flippedBit(w))
		default:
			fmt.Fprintf(&b, "%4d: %08X one-seq  blocks=%d flip=%d\n",
				i, w, sequenceCount(w)+1, flippedBit(w))
		}
	}
	return b.String()
}
