package swap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swapnode/swapd/internal/core/token"
	"github.com/swapnode/swapd/internal/core/tx"
)

// grownTestPool builds the EZA pool and adds bob's proportional contribution,
// leaving supply=2,200,000 rA=1,100,000 rB=4,400,000 with bob holding 199,980.
func grownTestPool(t *testing.T, engine *tx.Engine) {
	t.Helper()
	createTestPool(t, engine)
	fund(t, engine, "bob", eos(100_000))
	fund(t, engine, "bob", usd(500_000))
	res := engine.Apply(&AddLiquidity{
		User:   "bob",
		Symbol: "EZA",
		MaxA:   eos(100_000),
		MaxB:   usd(500_000),
	})
	require.Equal(t, tx.TesSUCCESS, res.Result, res.Message)
}

func ezaAsset(amount int64) token.Asset {
	return token.Asset{Amount: amount, Symbol: token.MustSymbol("EZA", 4)}
}

func TestRemoveLiquidityPaysProportionalShare(t *testing.T) {
	engine := newTestEngine(t)
	grownTestPool(t, engine)

	res := engine.Apply(&RemoveLiquidity{
		User:   "bob",
		ToSell: ezaAsset(100_000),
		MinA:   eos(50_000),
		MinB:   usd(200_000),
	})
	require.Equal(t, tx.TesSUCCESS, res.Result, res.Message)

	// 100,000/2,200,000 of each reserve.
	pool := queryPool(t, engine, "EZA")
	assert.Equal(t, int64(2_100_000), pool.Supply.Amount)
	assert.Equal(t, int64(1_050_000), pool.ReserveA.Quantity.Amount)
	assert.Equal(t, int64(4_200_000), pool.ReserveB.Quantity.Amount)
	assert.Equal(t, int64(99_980), balanceAmount(t, engine, "bob", "EZA"))

	// Payouts leave as settlements, not deposit credits.
	require.Len(t, res.Settlements, 2)
	assert.Equal(t, int64(50_000), res.Settlements[0].Asset.Quantity.Amount)
	assert.Equal(t, "bob", res.Settlements[0].To)
	assert.Equal(t, "liquidity removed", res.Settlements[0].Memo)
	assert.Equal(t, int64(200_000), res.Settlements[1].Asset.Quantity.Amount)
}

func TestRemoveLiquiditySlippage(t *testing.T) {
	engine := newTestEngine(t)
	grownTestPool(t, engine)

	// Demands more of B than the proportional payout.
	res := engine.Apply(&RemoveLiquidity{
		User:   "bob",
		ToSell: ezaAsset(100_000),
		MinA:   eos(50_000),
		MinB:   usd(200_001),
	})
	assert.Equal(t, tx.TecSLIPPAGE, res.Result)
	assert.Equal(t, "available is less than expected", res.Message)
	assert.False(t, res.Applied)
	assert.Equal(t, int64(199_980), balanceAmount(t, engine, "bob", "EZA"))
}

func TestRemoveLiquidityMinimumSupplyFloor(t *testing.T) {
	engine := newTestEngine(t)
	grownTestPool(t, engine)

	// Alice holds the whole initial mint. Selling nearly all of it would push
	// issued supply below the 2,000,000 minimum pinned at creation.
	res := engine.Apply(&RemoveLiquidity{
		User:   "alice",
		ToSell: ezaAsset(1_999_999),
		MinA:   eos(0),
		MinB:   usd(0),
	})
	assert.Equal(t, tx.TecMIN_LIQUIDITY, res.Result)
	assert.False(t, res.Applied)
	assert.Equal(t, int64(2_000_000), balanceAmount(t, engine, "alice", "EZA"))
	assert.Equal(t, int64(2_200_000), queryPool(t, engine, "EZA").Supply.Amount)
}

func TestRemoveLiquidityAtSupplyFloorBoundary(t *testing.T) {
	engine := newTestEngine(t)
	grownTestPool(t, engine)

	// Exactly down to the minimum is allowed.
	res := engine.Apply(&RemoveLiquidity{
		User:   "bob",
		ToSell: ezaAsset(199_980),
		MinA:   eos(0),
		MinB:   usd(0),
	})
	require.Equal(t, tx.TesSUCCESS, res.Result, res.Message)
	assert.Equal(t, int64(2_000_020), queryPool(t, engine, "EZA").Supply.Amount)
	assert.Equal(t, int64(0), balanceAmount(t, engine, "bob", "EZA"))
}

func TestRemoveLiquidityPrecisionMismatch(t *testing.T) {
	engine := newTestEngine(t)
	grownTestPool(t, engine)

	res := engine.Apply(&RemoveLiquidity{
		User:   "bob",
		ToSell: token.Asset{Amount: 100_000, Symbol: token.MustSymbol("EZA", 5)},
		MinA:   eos(0),
		MinB:   usd(0),
	})
	assert.Equal(t, tx.TecTOKEN_MISMATCH, res.Result)
	assert.False(t, res.Applied)
}

func TestRemoveLiquidityOverdrawnBalance(t *testing.T) {
	engine := newTestEngine(t)
	grownTestPool(t, engine)

	res := engine.Apply(&RemoveLiquidity{
		User:   "bob",
		ToSell: ezaAsset(199_981),
		MinA:   eos(0),
		MinB:   usd(0),
	})
	assert.Equal(t, tx.TecINSUFFICIENT_FUNDS, res.Result)
	assert.Equal(t, "overdrawn balance", res.Message)
}
