package token

import (
	"crypto/sha256"
	"encoding/binary"
)

// Index is the 128-bit composite key identifying a token within a single
// owner's deposit table: the high word derives from the issuing authority,
// the low word is the packed symbol. At most one deposit entry may exist per
// (owner, Index) pair.
type Index struct {
	Hi uint64
	Lo uint64
}

// IndexOf computes the composite index for a token identity. The authority is
// folded to 64 bits through SHA-256 so arbitrary account names fit the fixed
// layout.
func IndexOf(t TokenIdentity) Index {
	sum := sha256.Sum256([]byte(t.Authority))
	return Index{
		Hi: binary.BigEndian.Uint64(sum[:8]),
		Lo: t.Symbol.Raw(),
	}
}

// Bytes returns the big-endian 16-byte representation used in state keys.
func (i Index) Bytes() [16]byte {
	var out [16]byte
	binary.BigEndian.PutUint64(out[:8], i.Hi)
	binary.BigEndian.PutUint64(out[8:], i.Lo)
	return out
}
