package core

import (
	"encoding/binary"

	"github.com/go-crypt/x/blake2b"
)

// ID is a deterministic 64-bit identifier derived from record content.
type ID uint64

// IDFromContent hashes text with BLAKE2b so that identical content always
// produces the same ID.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Bytes returns the big-endian encoding of the ID, suitable for use inside
// lexicographically ordered store keys.
func (id ID) Bytes() []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(id))
	return buf
}
