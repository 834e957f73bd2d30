package swap

import (
	"errors"
	"fmt"

	"github.com/swapnode/swapd/internal/core/fixedpoint"
	"github.com/swapnode/swapd/internal/core/token"
	"github.com/swapnode/swapd/internal/core/tx"
)

func init() {
	tx.Register(ActionAddLiquidity, func() tx.Action { return new(AddLiquidity) })
}

// AddLiquidity mints liquidity tokens against a proportional contribution of
// both reserves. The amounts actually owed are re-derived from the minted
// liquidity, never from the caller's maxima, so any overpayment stays in the
// caller's deposit ledger.
type AddLiquidity struct {
	User   string              `json:"user"`
	Symbol string              `json:"symbol"`
	MaxA   token.ExtendedAsset `json:"max_a"`
	MaxB   token.ExtendedAsset `json:"max_b"`
}

func (a *AddLiquidity) ActionName() string { return ActionAddLiquidity }

func (a *AddLiquidity) Validate() error {
	if a.User == "" {
		return errors.New("temBAD_ACCOUNT: user is required")
	}
	if _, err := token.ParseSymbolCode(a.Symbol); err != nil {
		return fmt.Errorf("temBAD_SYMBOL: %w", err)
	}
	if !a.MaxA.IsValid() || !a.MaxB.IsValid() {
		return errors.New("temBAD_AMOUNT: invalid asset")
	}
	if a.MaxA.Quantity.Amount <= 0 || a.MaxB.Quantity.Amount <= 0 {
		return errors.New("temBAD_AMOUNT: contributions must be positive")
	}
	return nil
}

func (a *AddLiquidity) Apply(ctx *tx.ApplyContext) tx.Result {
	if !ctx.RequireAuth(a.User) {
		return tx.TecNO_AUTH
	}

	pool, err := loadPool(ctx, token.MustSymbolCode(a.Symbol))
	if err != nil {
		return tx.TefINTERNAL
	}
	if pool == nil {
		return ctx.Fail(tx.TecPAIR_NOT_FOUND, "Pair token does not exist")
	}

	maxA, maxB, ok := orientToReserves(pool, a.MaxA, a.MaxB)
	if !ok {
		return ctx.Fail(tx.TecTOKEN_MISMATCH, "contributed tokens do not match the pool's reserves")
	}

	supply := pool.Supply.Amount

	// The smaller of the two ratios wins, so neither side can be
	// over-contributed relative to the current price.
	byA, err := fixedpoint.Proportional(maxA.Quantity.Amount, supply, pool.ReserveA.Quantity.Amount)
	if err != nil {
		return ctx.Fail(tx.TecAMOUNT_TOO_LARGE, err.Error())
	}
	byB, err := fixedpoint.Proportional(maxB.Quantity.Amount, supply, pool.ReserveB.Quantity.Amount)
	if err != nil {
		return ctx.Fail(tx.TecAMOUNT_TOO_LARGE, err.Error())
	}
	liquidity := byA
	if byB < liquidity {
		liquidity = byB
	}
	if liquidity <= 0 {
		return ctx.Fail(tx.TecFEE_TOO_SMALL, "contribution below the minimum transactable size")
	}

	owedA, err := fixedpoint.Proportional(liquidity, pool.ReserveA.Quantity.Amount, supply)
	if err != nil {
		return ctx.Fail(tx.TecAMOUNT_TOO_LARGE, err.Error())
	}
	owedB, err := fixedpoint.Proportional(liquidity, pool.ReserveB.Quantity.Amount, supply)
	if err != nil {
		return ctx.Fail(tx.TecAMOUNT_TOO_LARGE, err.Error())
	}

	// The liquidity fee is taken out of the mint itself: the collector
	// receives its share in liquidity tokens before reserves are updated,
	// and the user receives the net mint.
	fee, err := fixedpoint.RateOf(liquidity, AddLiquidityFee)
	if err != nil {
		return ctx.Fail(tx.TecAMOUNT_TOO_LARGE, err.Error())
	}
	if fee == 0 {
		return ctx.Fail(tx.TecFEE_TOO_SMALL, "liquidity fee rounds to zero")
	}

	if r := debitDeposit(ctx, a.User, token.ExtendedAsset{
		Quantity:  token.Asset{Amount: owedA, Symbol: pool.ReserveA.Quantity.Symbol},
		Authority: pool.ReserveA.Authority,
	}); !r.Success() {
		return r
	}
	if r := debitDeposit(ctx, a.User, token.ExtendedAsset{
		Quantity:  token.Asset{Amount: owedB, Symbol: pool.ReserveB.Quantity.Symbol},
		Authority: pool.ReserveB.Authority,
	}); !r.Success() {
		return r
	}

	newSupply := supply + liquidity
	if newSupply > pool.MaxSupply.Amount || newSupply < supply {
		return ctx.Fail(tx.TecSUPPLY_OVERFLOW, "issued supply would exceed the maximum supply")
	}
	if pool.ReserveA.Quantity.Amount+owedA > token.MaxAmount ||
		pool.ReserveB.Quantity.Amount+owedB > token.MaxAmount {
		return ctx.Fail(tx.TecAMOUNT_TOO_LARGE, "amount too large")
	}

	if r := addBalance(ctx, a.User, token.Asset{Amount: liquidity - fee, Symbol: pool.Supply.Symbol}); !r.Success() {
		return r
	}
	if r := addBalance(ctx, pool.FeeCollector, token.Asset{Amount: fee, Symbol: pool.Supply.Symbol}); !r.Success() {
		return r
	}

	pool.Supply.Amount = newSupply
	pool.ReserveA.Quantity.Amount += owedA
	pool.ReserveB.Quantity.Amount += owedB
	if err := updatePool(ctx, pool); err != nil {
		return tx.TefINTERNAL
	}

	ctx.Record("minted", token.Asset{Amount: liquidity - fee, Symbol: pool.Supply.Symbol})
	ctx.Record("liquidity_fee", token.Asset{Amount: fee, Symbol: pool.Supply.Symbol})
	ctx.Record("owed_a", token.Asset{Amount: owedA, Symbol: pool.ReserveA.Quantity.Symbol})
	ctx.Record("owed_b", token.Asset{Amount: owedB, Symbol: pool.ReserveB.Quantity.Symbol})
	ctx.Record("refund_a", token.Asset{Amount: maxA.Quantity.Amount - owedA, Symbol: pool.ReserveA.Quantity.Symbol})
	ctx.Record("refund_b", token.Asset{Amount: maxB.Quantity.Amount - owedB, Symbol: pool.ReserveB.Quantity.Symbol})
	return tx.TesSUCCESS
}
