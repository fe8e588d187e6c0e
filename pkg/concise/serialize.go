package concise

import (
	"encoding/binary"
	"fmt"
)

// Serialized layout: a one-byte version tag, a one-byte flag field (bit 0 =
// WAH mode), the used word count, then the words, all big-endian. Transient
// fields (size, last, modCount) are recomputed on load.
const serialVersion = 1

const headerLen = 6

// MarshalBinary implements encoding.BinaryMarshaler.
func (s *Set) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 0, headerLen+4*len(s.words))
	var flags byte
	if s.wah {
		flags |= 1
	}
	buf = append(buf, serialVersion, flags)
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(s.words)))
	for _, w := range s.words {
		buf = binary.BigEndian.AppendUint32(buf, w)
	}
	return buf, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (s *Set) UnmarshalBinary(data []byte) error {
	if len(data) < headerLen {
		return fmt.Errorf("concise: truncated header (%d bytes)", len(data))
	}
	if data[0] != serialVersion {
		return fmt.Errorf("concise: unsupported version %d", data[0])
	}
	n := int(binary.BigEndian.Uint32(data[2:headerLen]))
	if len(data) != headerLen+4*n {
		return fmt.Errorf("concise: word count %d does not match payload of %d bytes",
			n, len(data)-headerLen)
	}
	s.modCount++
	s.wah = data[1]&1 != 0
	if n == 0 {
		s.reset()
		return nil
	}
	words := make([]uint32, n)
	for i := range words {
		words[i] = binary.BigEndian.Uint32(data[headerLen+4*i:])
	}
	// invariant: the last word is a literal with a set bit or a one-sequence
	w := words[n-1]
	if w == allZerosLiteral || isZeroSequence(w) {
		return fmt.Errorf("concise: non-canonical trailing word %08X", w)
	}
	s.words = words
	s.size = -1
	s.updateLast()
	return nil
}
