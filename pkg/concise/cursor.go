package concise

// wordCursor walks a set's words from the least significant end, yielding a
// stream of block events. An event is either a single literal block or a fill
// of count identical blocks. A sequence word carrying a flip bit produces two
// events: the first block as a literal, then the remaining blocks as a pure
// fill. (In WAH mode no word carries a flip, so every sequence is one event.)
type wordCursor struct {
	words []uint32

	i int // index of the next word to load

	isLiteral bool   // current event is a single literal block
	word      uint32 // literal image of the current event (saturated for fills)
	count     uint32 // blocks remaining in the current event

	pending     uint32 // pure-fill blocks still owed by a flip-carrying word
	pendingWord uint32
}

// newWordCursor positions a cursor on the first event of s. The caller
// guarantees s is non-empty.
func newWordCursor(s *Set) *wordCursor {
	c := &wordCursor{words: s.words}
	c.load()
	return c
}

// load makes the next event current. It returns false when the cursor is
// drained.
func (c *wordCursor) load() bool {
	if c.pending > 0 {
		c.isLiteral = false
		c.word = sequenceLiteral(c.pendingWord)
		c.count = c.pending
		c.pending = 0
		return true
	}
	if c.i >= len(c.words) {
		return false
	}
	w := c.words[c.i]
	c.i++
	if isLiteral(w) {
		c.isLiteral = true
		c.word = w
		c.count = 1
		return true
	}
	total := sequenceCount(w) + 1
	if flippedBit(w) >= 0 {
		c.isLiteral = true
		c.word = firstBlockLiteral(w)
		c.count = 1
		if total > 1 {
			c.pending = total - 1
			c.pendingWord = w
		}
		return true
	}
	c.isLiteral = false
	c.word = sequenceLiteral(w)
	c.count = total
	return true
}

// prepareNext consumes k blocks of the current event (k must not exceed
// count; literals use k=1) and loads the following event once the current one
// is exhausted. It returns false when the cursor is drained.
func (c *wordCursor) prepareNext(k uint32) bool {
	c.count -= k
	if c.count > 0 {
		return true
	}
	return c.load()
}

// blocks returns the block width of the current event.
func (c *wordCursor) blocks() uint32 {
	if c.isLiteral {
		return 1
	}
	return c.count
}

// reverseWordCursor is the mirror of wordCursor: it walks the words from the
// most significant end. The uniform tail of a flip-carrying sequence is
// yielded before (that is, above) its first-block literal.
type reverseWordCursor struct {
	words []uint32

	i int // index of the next word to load, moving down

	isLiteral bool
	word      uint32
	count     uint32

	pendingLiteral uint32 // first block of a flip-carrying word, owed last
	hasPending     bool
}

// newReverseWordCursor positions a cursor on the topmost event of s. The
// caller guarantees s is non-empty.
func newReverseWordCursor(s *Set) *reverseWordCursor {
	c := &reverseWordCursor{words: s.words, i: len(s.words) - 1}
	c.load()
	return c
}

func (c *reverseWordCursor) load() bool {
	if c.hasPending {
		c.isLiteral = true
		c.word = c.pendingLiteral
		c.count = 1
		c.hasPending = false
		return true
	}
	if c.i < 0 {
		return false
	}
	w := c.words[c.i]
	c.i--
	if isLiteral(w) {
		c.isLiteral = true
		c.word = w
		c.count = 1
		return true
	}
	total := sequenceCount(w) + 1
	if flippedBit(w) >= 0 {
		if total > 1 {
			c.isLiteral = false
			c.word = sequenceLiteral(w)
			c.count = total - 1
			c.pendingLiteral = firstBlockLiteral(w)
			c.hasPending = true
		} else {
			c.isLiteral = true
			c.word = firstBlockLiteral(w)
			c.count = 1
		}
		return true
	}
	c.isLiteral = false
	c.word = sequenceLiteral(w)
	c.count = total
	return true
}

// prepareNext consumes k blocks from the top of the current event and loads
// the following (lower) event once it is exhausted. It returns false when the
// cursor is drained.
func (c *reverseWordCursor) prepareNext(k uint32) bool {
	c.count -= k
	if c.count > 0 {
		return true
	}
	return c.load()
}
