package swap

import "github.com/swapnode/swapd/internal/core/fixedpoint"

// Action wire names.
const (
	ActionCreatePair      = "create.pair"
	ActionSetFee          = "set.fee"
	ActionRemovePair      = "remove.pair"
	ActionAddLiquidity    = "addliquidity"
	ActionRemoveLiquidity = "remliquidity"
	ActionSwap            = "swap"
	ActionWithdraw        = "withdraw"
	ActionTransfer        = "transfer"
)

// Fee rates are expressed in units of FeePrecision/100: a rate of 10_000
// equals one basis point (0.01%).
const (
	// MinFee is the lowest pair fee a pool may be configured with: 1 bp.
	MinFee int64 = 10_000

	// MaxFee is the exclusive upper bound on a pair fee: 10%.
	MaxFee int64 = 10_000_000

	// MaxCollectorShare is the inclusive cap on the fee collector's cut: 100%.
	MaxCollectorShare int64 = fixedpoint.FeePrecision * 100

	// AddLiquidityFee is the flat fee on minted liquidity, independent of the
	// pool's own swap fee: 1 bp.
	AddLiquidityFee int64 = 10_000

	// MaxInitialReserve caps each initial reserve so the geometric-mean seed
	// keeps full precision.
	MaxInitialReserve int64 = 1_000_000_000_000_000

	// MaxMemoLen bounds transfer memos.
	MaxMemoLen = 256
)
