package concise

import "math/bits"

// WordKind labels the three word encodings for introspection consumers.
type WordKind uint8

const (
	WordLiteral WordKind = iota
	WordZeroSequence
	WordOneSequence
)

func (k WordKind) String() string {
	switch k {
	case WordLiteral:
		return "literal"
	case WordZeroSequence:
		return "zero-seq"
	default:
		return "one-seq"
	}
}

// WordInfo is the decoded view of one compressed word.
type WordInfo struct {
	Index    int    // position in the word array
	Image    uint32 // raw word
	Kind     WordKind
	Blocks   int    // 31-bit blocks the word covers
	Flip     int    // in-block flip position, -1 when absent
	Payload  uint32 // literal membership bits (literals only)
	FirstBit int    // absolute index of the word's first bit
	SetBits  int    // elements contributed by the word
}

// Words returns a copy of the compressed word array.
func (s *Set) Words() []uint32 {
	out := make([]uint32, len(s.words))
	copy(out, s.words)
	return out
}

// WordInfos decodes every word of the compressed form.
func (s *Set) WordInfos() []WordInfo {
	out := make([]WordInfo, 0, len(s.words))
	base := 0
	for i, w := range s.words {
		info := WordInfo{Index: i, Image: w, FirstBit: base, Flip: -1}
		switch {
		case isLiteral(w):
			info.Kind = WordLiteral
			info.Blocks = 1
			info.Payload = literalBits(w)
			info.SetBits = bits.OnesCount32(info.Payload)
		case isZeroSequence(w):
			info.Kind = WordZeroSequence
			info.Blocks = int(sequenceCount(w) + 1)
			info.Flip = flippedBit(w)
			if info.Flip >= 0 {
				info.SetBits = 1
			}
		default:
			info.Kind = WordOneSequence
			info.Blocks = int(sequenceCount(w) + 1)
			info.Flip = flippedBit(w)
			info.SetBits = maxLiteralLength * info.Blocks
			if info.Flip >= 0 {
				info.SetBits--
			}
		}
		base += maxLiteralLength * info.Blocks
		out = append(out, info)
	}
	return out
}
