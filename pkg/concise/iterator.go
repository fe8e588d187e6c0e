package concise

import "math/bits"

// Iterator yields the elements of a set in ascending order. It is fail-fast:
// Next panics with ErrConcurrentModification once the owning set mutates.
type Iterator struct {
	s        *Set
	cur      *wordCursor
	base     int    // absolute index of the current block's first bit
	bit      uint   // next in-block bit to examine
	buffered int    // next element, -1 when not yet located
	done     bool
	modCount uint32
}

// Iterator returns a forward iterator over the set bits.
func (s *Set) Iterator() *Iterator {
	it := &Iterator{s: s, buffered: -1, modCount: s.modCount}
	if len(s.words) == 0 {
		it.done = true
		return it
	}
	it.cur = newWordCursor(s)
	return it
}

// HasNext reports whether another element remains.
func (it *Iterator) HasNext() bool {
	return it.peek()
}

// Next returns the next element in ascending order. It panics with
// ErrNoSuchElement past the end and with ErrConcurrentModification when the
// set has mutated since the iterator was created.
func (it *Iterator) Next() int {
	if it.modCount != it.s.modCount {
		panic(ErrConcurrentModification)
	}
	if !it.peek() {
		panic(ErrNoSuchElement)
	}
	v := it.buffered
	it.buffered = -1
	return v
}

// peek locates the next element, buffering it.
func (it *Iterator) peek() bool {
	if it.buffered >= 0 {
		return true
	}
	for !it.done {
		switch {
		case it.cur.isLiteral:
			rem := literalBits(it.cur.word) >> it.bit
			if rem != 0 {
				b := it.bit + uint(bits.TrailingZeros32(rem))
				it.buffered = it.base + int(b)
				it.bit = b + 1
				return true
			}
			it.advanceBlocks(1)
		case it.cur.word == allZerosLiteral:
			// whole zero run in one step
			it.advanceBlocks(it.cur.count)
		default: // one fill
			if it.bit < maxLiteralLength {
				it.buffered = it.base + int(it.bit)
				it.bit++
				return true
			}
			it.advanceBlocks(1)
		}
	}
	return false
}

func (it *Iterator) advanceBlocks(k uint32) {
	it.base += maxLiteralLength * int(k)
	it.bit = 0
	if !it.cur.prepareNext(k) {
		it.done = true
	}
}

// SkipAllBefore advances the iterator so that the next element returned is
// the least element >= e (or the iterator is exhausted). Whole sequences are
// jumped via their block counts.
func (it *Iterator) SkipAllBefore(e int) {
	if it.done || e <= 0 {
		return
	}
	if it.buffered >= 0 {
		if it.buffered >= e {
			return
		}
		it.buffered = -1
	}
	if e > it.s.last {
		it.done = true
		return
	}
	if e <= it.base+int(it.bit) {
		return
	}
	delta := e/maxLiteralLength - it.base/maxLiteralLength
	for delta > 0 && !it.done {
		if it.cur.isLiteral {
			it.advanceBlocks(1)
			delta--
		} else {
			k := min(uint32(delta), it.cur.count)
			it.advanceBlocks(k)
			delta -= int(k)
		}
	}
	if it.done {
		return
	}
	it.bit = uint(e % maxLiteralLength)
}

// ReverseIterator yields the elements of a set in descending order, with the
// same fail-fast behavior as Iterator.
type ReverseIterator struct {
	s        *Set
	cur      *reverseWordCursor
	base     int // absolute index of the current block's first bit
	bit      int // next in-block bit to examine, counting down; -1 = exhausted
	buffered int
	done     bool
	modCount uint32
}

// ReverseIterator returns an iterator over the set bits from the maximum
// element downward.
func (s *Set) ReverseIterator() *ReverseIterator {
	it := &ReverseIterator{s: s, buffered: -1, modCount: s.modCount}
	if len(s.words) == 0 {
		it.done = true
		return it
	}
	it.cur = newReverseWordCursor(s)
	it.base = maxLiteralLength * (s.last / maxLiteralLength)
	it.bit = maxLiteralLength - 1
	return it
}

// HasNext reports whether another element remains.
func (it *ReverseIterator) HasNext() bool {
	return it.peek()
}

// Next returns the next element in descending order.
func (it *ReverseIterator) Next() int {
	if it.modCount != it.s.modCount {
		panic(ErrConcurrentModification)
	}
	if !it.peek() {
		panic(ErrNoSuchElement)
	}
	v := it.buffered
	it.buffered = -1
	return v
}

func (it *ReverseIterator) peek() bool {
	if it.buffered >= 0 {
		return true
	}
	for !it.done {
		switch {
		case it.cur.isLiteral:
			if it.bit >= 0 {
				rem := literalBits(it.cur.word) & (uint32(1)<<uint(it.bit+1) - 1)
				if rem != 0 {
					b := bits.Len32(rem) - 1
					it.buffered = it.base + b
					it.bit = b - 1
					return true
				}
			}
			it.retreatBlocks(1)
		case it.cur.word == allZerosLiteral:
			it.retreatBlocks(it.cur.count)
		default: // one fill
			if it.bit >= 0 {
				it.buffered = it.base + it.bit
				it.bit--
				return true
			}
			it.retreatBlocks(1)
		}
	}
	return false
}

func (it *ReverseIterator) retreatBlocks(k uint32) {
	it.base -= maxLiteralLength * int(k)
	it.bit = maxLiteralLength - 1
	if !it.cur.prepareNext(k) {
		it.done = true
	}
}

// SkipAllBefore advances the iterator past every element greater than e, so
// that the next element returned is the greatest element <= e (or the
// iterator is exhausted).
func (it *ReverseIterator) SkipAllBefore(e int) {
	if it.done {
		return
	}
	if it.buffered >= 0 {
		if it.buffered <= e {
			return
		}
		it.buffered = -1
	}
	if e < 0 {
		it.done = true
		return
	}
	if e >= it.base+it.bit {
		return
	}
	delta := it.base/maxLiteralLength - e/maxLiteralLength
	for delta > 0 && !it.done {
		if it.cur.isLiteral {
			it.retreatBlocks(1)
			delta--
		} else {
			k := min(uint32(delta), it.cur.count)
			it.retreatBlocks(k)
			delta -= int(k)
		}
	}
	if it.done {
		return
	}
	it.bit = e % maxLiteralLength
}
