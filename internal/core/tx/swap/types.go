package swap

import (
	"github.com/ugorji/go/codec"

	"github.com/swapnode/swapd/internal/core/token"
)

// PoolRecord is the state entry for one trading pair. It is owned by the pair
// actions in this package; nothing else mutates it.
type PoolRecord struct {
	// Supply is the issued liquidity-token supply. Its symbol is the pool's
	// synthetic liquidity symbol.
	Supply token.Asset `json:"supply"`

	// MaxSupply is the ceiling Supply may never exceed.
	MaxSupply token.Asset `json:"max_supply"`

	// MinSupply is the floor Supply may never fall below. Pinned at creation
	// to the initial mint so the pool can never be drained to an undefined
	// price ratio.
	MinSupply int64 `json:"min_supply"`

	// Issuer created the pair and co-authorizes fee changes.
	Issuer string `json:"issuer"`

	// ReserveA and ReserveB are the pool's holdings of its two tokens.
	ReserveA token.ExtendedAsset `json:"reserve_a"`
	ReserveB token.ExtendedAsset `json:"reserve_b"`

	// FeeRate is the swap fee, in RateOf units (10_000 = 1 bp).
	FeeRate int64 `json:"fee_rate"`

	// FeeCollector receives the collector share of swap fees and the
	// liquidity fee on deposits.
	FeeCollector string `json:"fee_collector"`

	// FeeCollectorShare is the collector's cut of each swap fee, in RateOf
	// units; the remainder stays in the pool as reserve surplus.
	FeeCollectorShare int64 `json:"fee_collector_share"`
}

// DepositRecord is a custodial balance of an external token awaiting
// withdrawal or consumption by a pair action. At most one exists per
// (owner, token identity); it is erased when the balance returns to zero.
type DepositRecord struct {
	Owner   string              `json:"owner"`
	Balance token.ExtendedAsset `json:"balance"`
}

// BalanceRecord is an owner's holding of a pool's liquidity token. Erased
// when it reaches zero.
type BalanceRecord struct {
	Owner   string      `json:"owner"`
	Balance token.Asset `json:"balance"`
}

var cborHandle = func() *codec.CborHandle {
	h := new(codec.CborHandle)
	h.Canonical = true
	return h
}()

func encodeRecord(v any) ([]byte, error) {
	var out []byte
	if err := codec.NewEncoderBytes(&out, cborHandle).Encode(v); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeRecord(data []byte, v any) error {
	return codec.NewDecoderBytes(data, cborHandle).Decode(v)
}
