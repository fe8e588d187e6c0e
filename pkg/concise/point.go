package concise

import (
	"math/bits"
	"slices"
)

func checkElement(e int) {
	if e < 0 || e > MaxAllowedInteger {
		panic(ErrOutOfRange)
	}
}

// Contains reports whether e is in the set. Elements outside the valid
// domain are simply absent.
func (s *Set) Contains(e int) bool {
	if len(s.words) == 0 || e < 0 || e > s.last {
		return false
	}
	block := e / maxLiteralLength
	bit := uint(e % maxLiteralLength)
	for _, w := range s.words {
		if isLiteral(w) {
			if block == 0 {
				return w&(1<<bit) != 0
			}
			block--
		} else {
			n := int(sequenceCount(w)) + 1
			if block < n {
				flipped := block == 0 && flippedBit(w) == int(bit)
				if isZeroSequence(w) {
					return flipped
				}
				return !flipped
			}
			block -= n
		}
	}
	return false
}

// Add inserts e, reporting whether the set changed. It panics with
// ErrOutOfRange when e is outside [0, MaxAllowedInteger].
func (s *Set) Add(e int) bool {
	s.modCount++
	checkElement(e)
	if e > s.last {
		s.appendBit(e)
		return true
	}
	block := e / maxLiteralLength
	bit := uint(e % maxLiteralLength)
	for i := 0; i < len(s.words); i++ {
		w := s.words[i]
		if isLiteral(w) {
			if block == 0 {
				if w&(1<<bit) != 0 {
					return false
				}
				// Flip in place only when the grown literal cannot merge
				// with its neighbours.
				bc := bits.OnesCount32(literalBits(w))
				if (!s.wah && bc >= maxLiteralLength-2) || (s.wah && bc >= maxLiteralLength-1) {
					break
				}
				s.words[i] = w | 1<<bit
				if s.size >= 0 {
					s.size++
				}
				return true
			}
			block--
		} else {
			n := int(sequenceCount(w)) + 1
			if block < n {
				hole := block == 0 && flippedBit(w) == int(bit)
				if isOneSequence(w) && !hole {
					return false
				}
				if isZeroSequence(w) && hole {
					return false
				}
				break
			}
			block -= n
		}
	}
	// hard case: union with the singleton {e}
	t := s.empty()
	t.appendBit(e)
	s.replaceWith(s.operate(t, opOR))
	return true
}

// Remove deletes e, reporting whether the set changed. It panics with
// ErrOutOfRange when e is outside [0, MaxAllowedInteger].
func (s *Set) Remove(e int) bool {
	s.modCount++
	checkElement(e)
	if len(s.words) == 0 || e > s.last {
		return false
	}
	block := e / maxLiteralLength
	bit := uint(e % maxLiteralLength)
	for i := 0; i < len(s.words); i++ {
		w := s.words[i]
		if isLiteral(w) {
			if block == 0 {
				if w&(1<<bit) == 0 {
					return false
				}
				// Clear in place only when the shrunk literal cannot merge
				// with its neighbours.
				bc := bits.OnesCount32(literalBits(w))
				if (!s.wah && bc <= 2) || (s.wah && bc <= 1) {
					break
				}
				s.words[i] = w &^ (1 << bit)
				if s.size >= 0 {
					s.size--
				}
				if e == s.last {
					s.updateLast()
				}
				return true
			}
			block--
		} else {
			n := int(sequenceCount(w)) + 1
			if block < n {
				hole := block == 0 && flippedBit(w) == int(bit)
				if isZeroSequence(w) && !hole {
					return false
				}
				if isOneSequence(w) && hole {
					return false
				}
				break
			}
			block -= n
		}
	}
	// hard case: difference with the singleton {e}
	t := s.empty()
	t.appendBit(e)
	s.replaceWith(s.operate(t, opANDNOT))
	return true
}

// Flip toggles membership of e.
func (s *Set) Flip(e int) {
	if !s.Add(e) {
		s.Remove(e)
	}
}

// nthSetBit returns the position of the (n+1)-th set bit of v. The caller
// guarantees v has more than n set bits.
func nthSetBit(v uint32, n int) int {
	for ; n > 0; n-- {
		v &= v - 1
	}
	return bits.TrailingZeros32(v)
}

// Get returns the i-th smallest element. It panics with ErrOutOfRange when i
// is outside [0, Size()).
func (s *Set) Get(i int) int {
	if i < 0 {
		panic(ErrOutOfRange)
	}
	base := 0
	pos := i
	for _, w := range s.words {
		switch {
		case isLiteral(w):
			c := bits.OnesCount32(literalBits(w))
			if pos < c {
				return base + nthSetBit(literalBits(w), pos)
			}
			pos -= c
			base += maxLiteralLength
		case isZeroSequence(w):
			if f := flippedBit(w); f >= 0 {
				if pos == 0 {
					return base + f
				}
				pos--
			}
			base += maxLiteralLength * int(sequenceCount(w)+1)
		default:
			n := int(sequenceCount(w)) + 1
			f := flippedBit(w)
			c := maxLiteralLength * n
			if f >= 0 {
				c--
			}
			if pos < c {
				if f < 0 || pos < f {
					return base + pos
				}
				return base + pos + 1
			}
			pos -= c
			base += maxLiteralLength * n
		}
	}
	panic(ErrOutOfRange)
}

// IndexOf returns the rank of e within the set (the number of smaller
// elements), or -1 when e is absent. It panics with ErrOutOfRange when e is
// outside the valid domain.
func (s *Set) IndexOf(e int) int {
	checkElement(e)
	if len(s.words) == 0 || e > s.last {
		return -1
	}
	block := e / maxLiteralLength
	bit := e % maxLiteralLength
	idx := 0
	for _, w := range s.words {
		if isLiteral(w) {
			if block == 0 {
				if w&(1<<uint(bit)) == 0 {
					return -1
				}
				return idx + bits.OnesCount32(literalBits(w)&(1<<uint(bit)-1))
			}
			block--
			idx += bits.OnesCount32(literalBits(w))
		} else {
			n := int(sequenceCount(w)) + 1
			f := flippedBit(w)
			if isZeroSequence(w) {
				if block < n {
					if block == 0 && f == bit {
						return idx
					}
					return -1
				}
				if f >= 0 {
					idx++
				}
			} else {
				if block < n {
					if block == 0 && f == bit {
						return -1
					}
					off := block*maxLiteralLength + bit
					if f >= 0 && f < off {
						off--
					}
					return idx + off
				}
				idx += maxLiteralLength * n
				if f >= 0 {
					idx--
				}
			}
			block -= n
		}
	}
	return -1
}

// Complement replaces the set with its complement over [0, last].
func (s *Set) Complement() {
	s.modCount++
	if len(s.words) == 0 {
		return
	}
	if s.last == 0 {
		s.reset()
		return
	}
	if s.size >= 0 {
		s.size = s.last + 1 - s.size
	}
	for i, w := range s.words {
		if isLiteral(w) {
			s.words[i] = allZerosLiteral | ^w
		} else {
			s.words[i] = w ^ oneSequenceBit
		}
	}
	// drop the complemented bits above the old maximum
	n := len(s.words) - 1
	if isLiteral(s.words[n]) {
		s.words[n] &= allZerosLiteral | 0xFFFFFFFF>>uint(maxLiteralLength-s.last%maxLiteralLength)
	}
	s.trimZeros()
	if len(s.words) == 0 {
		return
	}
	s.updateLast()
}

// Complemented returns the complement over [0, last] as a fresh set.
func (s *Set) Complemented() *Set {
	c := s.Clone()
	c.Complement()
	return c
}

func checkRangeBounds(from, to int) {
	checkElement(from)
	checkElement(to)
	if from > to {
		panic(ErrInvalidArgument)
	}
}

// rangeSet builds the inclusive range [from, to] by complementing around the
// endpoints.
func rangeSet(from, to int, wah bool) *Set {
	t := &Set{last: -1, size: 0, wah: wah}
	t.appendBit(to)
	t.Complement() // [0, to-1]
	t.appendBit(to)
	if from > 0 {
		head := &Set{last: -1, size: 0, wah: wah}
		head.appendBit(from - 1)
		head.Complement() // [0, from-2]
		head.appendBit(from - 1)
		t.RemoveAll(head)
	}
	return t
}

// FillRange adds every element of the inclusive range [from, to].
func (s *Set) FillRange(from, to int) {
	checkRangeBounds(from, to)
	if from == to {
		s.Add(from)
		return
	}
	s.AddAll(rangeSet(from, to, s.wah))
}

// ClearRange removes every element of the inclusive range [from, to].
func (s *Set) ClearRange(from, to int) {
	checkRangeBounds(from, to)
	if from == to {
		s.Remove(from)
		return
	}
	s.RemoveAll(rangeSet(from, to, s.wah))
}

// AddMany inserts the given elements, which may be unsorted and duplicated.
// It reports whether the set changed.
func (s *Set) AddMany(elems ...int) bool {
	if len(elems) == 0 {
		return false
	}
	sorted := make([]int, len(elems))
	copy(sorted, elems)
	slices.Sort(sorted)
	changed := false
	prev := -1
	for _, e := range sorted {
		if e == prev {
			continue
		}
		prev = e
		if s.Add(e) {
			changed = true
		}
	}
	return changed
}

// ToSlice returns the elements in ascending order.
func (s *Set) ToSlice() []int {
	out := make([]int, 0, s.Size())
	for it := s.Iterator(); it.HasNext(); {
		out = append(out, it.Next())
	}
	return out
}

// ToArray fills buf with the elements in ascending order and returns the
// filled prefix. It panics with ErrInvalidArgument when buf is smaller than
// Size().
func (s *Set) ToArray(buf []int) []int {
	n := s.Size()
	if len(buf) < n {
		panic(ErrInvalidArgument)
	}
	i := 0
	for it := s.Iterator(); it.HasNext(); i++ {
		buf[i] = it.Next()
	}
	return buf[:n]
}
