package swap

import (
	"errors"
	"fmt"

	"github.com/swapnode/swapd/internal/core/fixedpoint"
	"github.com/swapnode/swapd/internal/core/token"
	"github.com/swapnode/swapd/internal/core/tx"
)

func init() {
	tx.Register(ActionSwap, func() tx.Action { return new(Swap) })
}

// Swap exchanges one reserve token for the other at the constant-product
// price. The caller names the exact output and bounds the input; the required
// input is solved from the current reserves.
type Swap struct {
	User        string              `json:"user"`
	PairSymbol  string              `json:"pair_symbol"`
	MaxIn       token.ExtendedAsset `json:"max_in"`
	ExpectedOut token.ExtendedAsset `json:"expected_out"`
}

func (a *Swap) ActionName() string { return ActionSwap }

func (a *Swap) Validate() error {
	if a.User == "" {
		return errors.New("temBAD_ACCOUNT: user is required")
	}
	if _, err := token.ParseSymbolCode(a.PairSymbol); err != nil {
		return fmt.Errorf("temBAD_SYMBOL: %w", err)
	}
	if !a.MaxIn.IsValid() || !a.ExpectedOut.IsValid() {
		return errors.New("temBAD_AMOUNT: invalid asset")
	}
	if a.MaxIn.Quantity.Amount <= 0 || a.ExpectedOut.Quantity.Amount <= 0 {
		return errors.New("temBAD_AMOUNT: amounts must be positive")
	}
	if a.MaxIn.Token().Equal(a.ExpectedOut.Token()) {
		return errors.New("temBAD_TOKENS: cannot swap a token for itself")
	}
	return nil
}

func (a *Swap) Apply(ctx *tx.ApplyContext) tx.Result {
	if !ctx.RequireAuth(a.User) {
		return tx.TecNO_AUTH
	}

	pool, err := loadPool(ctx, token.MustSymbolCode(a.PairSymbol))
	if err != nil {
		return tx.TefINTERNAL
	}
	if pool == nil {
		return ctx.Fail(tx.TecPAIR_NOT_FOUND, "Pair token does not exist")
	}

	// Resolve orientation: the input must match one reserve and the output
	// the other; any other pairing is a mismatch.
	var reserveIn, reserveOut *token.ExtendedAsset
	switch {
	case a.MaxIn.Token().Equal(pool.ReserveA.Token()) && a.ExpectedOut.Token().Equal(pool.ReserveB.Token()):
		reserveIn, reserveOut = &pool.ReserveA, &pool.ReserveB
	case a.MaxIn.Token().Equal(pool.ReserveB.Token()) && a.ExpectedOut.Token().Equal(pool.ReserveA.Token()):
		reserveIn, reserveOut = &pool.ReserveB, &pool.ReserveA
	default:
		return ctx.Fail(tx.TecTOKEN_MISMATCH, "swapped tokens do not match the pool's reserves")
	}

	expectedOut := a.ExpectedOut.Quantity.Amount
	if expectedOut >= reserveOut.Quantity.Amount {
		return ctx.Fail(tx.TecPOOL_DEPLETED, "requested output exceeds the pool reserve")
	}

	// Constant-product formula solved for the input given the desired output.
	in, err := fixedpoint.Proportional(expectedOut, reserveIn.Quantity.Amount, reserveOut.Quantity.Amount)
	if err != nil {
		return ctx.Fail(tx.TecAMOUNT_TOO_LARGE, err.Error())
	}
	if in > a.MaxIn.Quantity.Amount {
		return ctx.Fail(tx.TecSLIPPAGE, "available is less than expected")
	}

	fee, err := fixedpoint.RateOf(in, pool.FeeRate)
	if err != nil {
		return ctx.Fail(tx.TecAMOUNT_TOO_LARGE, err.Error())
	}
	if fee == 0 {
		return ctx.Fail(tx.TecFEE_TOO_SMALL, "swap fee rounds to zero")
	}
	collectorShare, err := fixedpoint.RateOf(fee, pool.FeeCollectorShare)
	if err != nil {
		return ctx.Fail(tx.TecAMOUNT_TOO_LARGE, err.Error())
	}

	if r := debitDeposit(ctx, a.User, token.ExtendedAsset{
		Quantity:  token.Asset{Amount: in + fee, Symbol: reserveIn.Quantity.Symbol},
		Authority: reserveIn.Authority,
	}); !r.Success() {
		return r
	}

	// The collector's cut leaves the pool; the rest of the fee stays in the
	// in-side reserve as surplus for liquidity providers.
	retained := fee - collectorShare
	if reserveIn.Quantity.Amount+in+retained > token.MaxAmount {
		return ctx.Fail(tx.TecAMOUNT_TOO_LARGE, "amount too large")
	}
	reserveIn.Quantity.Amount += in + retained
	reserveOut.Quantity.Amount -= expectedOut

	if reserveIn.Quantity.Amount <= 0 || reserveOut.Quantity.Amount <= 0 {
		return ctx.Fail(tx.TecPOOL_DEPLETED, "a reserve would fall below its floor")
	}

	// Reserve floors: at the post-swap price ratio, redeeming the minimum
	// issued supply must still pay out at least one unit of each reserve.
	floorIn, err := fixedpoint.Proportional(pool.MinSupply, reserveIn.Quantity.Amount, pool.Supply.Amount)
	if err != nil {
		return ctx.Fail(tx.TecAMOUNT_TOO_LARGE, err.Error())
	}
	floorOut, err := fixedpoint.Proportional(pool.MinSupply, reserveOut.Quantity.Amount, pool.Supply.Amount)
	if err != nil {
		return ctx.Fail(tx.TecAMOUNT_TOO_LARGE, err.Error())
	}
	if floorIn < 1 || floorOut < 1 {
		return ctx.Fail(tx.TecPOOL_DEPLETED, "a reserve would fall below its floor")
	}

	if err := updatePool(ctx, pool); err != nil {
		return tx.TefINTERNAL
	}

	out := token.ExtendedAsset{
		Quantity:  token.Asset{Amount: expectedOut, Symbol: reserveOut.Quantity.Symbol},
		Authority: reserveOut.Authority,
	}
	ctx.Settle(out, a.User, "swap")
	if collectorShare > 0 {
		ctx.Settle(token.ExtendedAsset{
			Quantity:  token.Asset{Amount: collectorShare, Symbol: reserveIn.Quantity.Symbol},
			Authority: reserveIn.Authority,
		}, pool.FeeCollector, "swap fee")
	}

	ctx.Record("in", token.Asset{Amount: in, Symbol: reserveIn.Quantity.Symbol})
	ctx.Record("fee", token.Asset{Amount: fee, Symbol: reserveIn.Quantity.Symbol})
	ctx.Record("collector_share", token.Asset{Amount: collectorShare, Symbol: reserveIn.Quantity.Symbol})
	ctx.Record("out", out.Quantity)
	ctx.Record("refund", token.Asset{Amount: a.MaxIn.Quantity.Amount - in, Symbol: reserveIn.Quantity.Symbol})
	return tx.TesSUCCESS
}
