// Package keylet derives the fixed 256-bit state keys for every record kind.
// Each record family gets its own space byte so keys from different tables can
// never collide even for identical field values.
package keylet

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/swapnode/swapd/internal/core/token"
)

// Space identifiers for key generation.
const (
	spacePool    uint16 = 'p' // pool / pair record, one per liquidity symbol
	spaceDeposit uint16 = 'x' // custodial deposit entry, per (owner, token)
	spaceBalance uint16 = 'b' // liquidity token balance, per (owner, symbol)
)

// Keylet is an addressable location in exchange state.
type Keylet struct {
	Space uint16
	Key   [32]byte
}

// indexHash computes a key by hashing the space identifier and field data.
func indexHash(space uint16, data ...[]byte) [32]byte {
	h := sha256.New()
	var spaceBytes [2]byte
	binary.BigEndian.PutUint16(spaceBytes[:], space)
	h.Write(spaceBytes[:])
	for _, d := range data {
		h.Write(d)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func uint64Bytes(v uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return b[:]
}

// Pool returns the keylet of the pool record for a liquidity symbol code.
func Pool(code token.SymbolCode) Keylet {
	return Keylet{
		Space: spacePool,
		Key:   indexHash(spacePool, uint64Bytes(uint64(code))),
	}
}

// Deposit returns the keylet of an owner's custodial entry for a token. The
// composite token index is part of the key material, which is what makes the
// (owner, token) pair unique by construction.
func Deposit(owner string, t token.TokenIdentity) Keylet {
	idx := token.IndexOf(t).Bytes()
	return Keylet{
		Space: spaceDeposit,
		Key:   indexHash(spaceDeposit, []byte(owner), idx[:], []byte(t.Authority)),
	}
}

// Balance returns the keylet of an owner's liquidity token balance.
func Balance(owner string, code token.SymbolCode) Keylet {
	return Keylet{
		Space: spaceBalance,
		Key:   indexHash(spaceBalance, []byte(owner), uint64Bytes(uint64(code))),
	}
}
