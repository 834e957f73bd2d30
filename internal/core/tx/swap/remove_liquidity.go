package swap

import (
	"errors"

	"github.com/swapnode/swapd/internal/core/fixedpoint"
	"github.com/swapnode/swapd/internal/core/token"
	"github.com/swapnode/swapd/internal/core/tx"
)

func init() {
	tx.Register(ActionRemoveLiquidity, func() tx.Action { return new(RemoveLiquidity) })
}

// RemoveLiquidity redeems liquidity tokens for a proportional share of both
// reserves, bounded below by the caller's slippage guards.
type RemoveLiquidity struct {
	User   string              `json:"user"`
	ToSell token.Asset         `json:"to_sell"`
	MinA   token.ExtendedAsset `json:"min_a"`
	MinB   token.ExtendedAsset `json:"min_b"`
}

func (a *RemoveLiquidity) ActionName() string { return ActionRemoveLiquidity }

func (a *RemoveLiquidity) Validate() error {
	if a.User == "" {
		return errors.New("temBAD_ACCOUNT: user is required")
	}
	if !a.ToSell.IsValid() {
		return errors.New("temBAD_AMOUNT: invalid asset")
	}
	if a.ToSell.Amount <= 0 {
		return errors.New("temBAD_AMOUNT: liquidity to sell must be positive")
	}
	if !a.MinA.IsValid() || !a.MinB.IsValid() || a.MinA.Quantity.Amount < 0 || a.MinB.Quantity.Amount < 0 {
		return errors.New("temBAD_AMOUNT: invalid slippage bound")
	}
	return nil
}

func (a *RemoveLiquidity) Apply(ctx *tx.ApplyContext) tx.Result {
	if !ctx.RequireAuth(a.User) {
		return tx.TecNO_AUTH
	}

	pool, err := loadPool(ctx, a.ToSell.Symbol.Code)
	if err != nil {
		return tx.TefINTERNAL
	}
	if pool == nil {
		return ctx.Fail(tx.TecPAIR_NOT_FOUND, "Pair token does not exist")
	}
	if a.ToSell.Symbol != pool.Supply.Symbol {
		return ctx.Fail(tx.TecTOKEN_MISMATCH, "liquidity symbol precision mismatch")
	}

	minA, minB, ok := orientToReserves(pool, a.MinA, a.MinB)
	if !ok {
		return ctx.Fail(tx.TecTOKEN_MISMATCH, "slippage bounds do not match the pool's reserves")
	}

	supply := pool.Supply.Amount
	payoutA, err := fixedpoint.Proportional(a.ToSell.Amount, pool.ReserveA.Quantity.Amount, supply)
	if err != nil {
		return ctx.Fail(tx.TecAMOUNT_TOO_LARGE, err.Error())
	}
	payoutB, err := fixedpoint.Proportional(a.ToSell.Amount, pool.ReserveB.Quantity.Amount, supply)
	if err != nil {
		return ctx.Fail(tx.TecAMOUNT_TOO_LARGE, err.Error())
	}

	if payoutA < minA.Quantity.Amount || payoutB < minB.Quantity.Amount {
		return ctx.Fail(tx.TecSLIPPAGE, "available is less than expected")
	}

	if r := subBalance(ctx, a.User, a.ToSell); !r.Success() {
		return r
	}

	newSupply := supply - a.ToSell.Amount
	if newSupply < pool.MinSupply {
		return ctx.Fail(tx.TecMIN_LIQUIDITY, "issued supply would fall below the minimum liquidity")
	}
	pool.Supply.Amount = newSupply
	pool.ReserveA.Quantity.Amount -= payoutA
	pool.ReserveB.Quantity.Amount -= payoutB
	if pool.ReserveA.Quantity.Amount <= 0 || pool.ReserveB.Quantity.Amount <= 0 {
		return ctx.Fail(tx.TecPOOL_DEPLETED, "a reserve would be drained to zero")
	}
	if err := updatePool(ctx, pool); err != nil {
		return tx.TefINTERNAL
	}

	outA := token.ExtendedAsset{
		Quantity:  token.Asset{Amount: payoutA, Symbol: pool.ReserveA.Quantity.Symbol},
		Authority: pool.ReserveA.Authority,
	}
	outB := token.ExtendedAsset{
		Quantity:  token.Asset{Amount: payoutB, Symbol: pool.ReserveB.Quantity.Symbol},
		Authority: pool.ReserveB.Authority,
	}
	ctx.Settle(outA, a.User, "liquidity removed")
	ctx.Settle(outB, a.User, "liquidity removed")
	ctx.Record("payout_a", outA.Quantity)
	ctx.Record("payout_b", outB.Quantity)
	return tx.TesSUCCESS
}
