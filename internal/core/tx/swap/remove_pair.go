package swap

import (
	"errors"
	"fmt"

	"github.com/swapnode/swapd/internal/core/token"
	"github.com/swapnode/swapd/internal/core/tx"
)

func init() {
	tx.Register(ActionRemovePair, func() tx.Action { return new(RemovePair) })
}

// RemovePair dissolves a pair. The holder must own the entire issued supply:
// removing a pool while anyone else holds liquidity tokens would strand their
// claim, so anything less fails.
type RemovePair struct {
	Symbol string `json:"symbol"`
	Holder string `json:"holder"`
}

func (a *RemovePair) ActionName() string { return ActionRemovePair }

func (a *RemovePair) Validate() error {
	if _, err := token.ParseSymbolCode(a.Symbol); err != nil {
		return fmt.Errorf("temBAD_SYMBOL: %w", err)
	}
	if a.Holder == "" {
		return errors.New("temBAD_ACCOUNT: holder is required")
	}
	return nil
}

func (a *RemovePair) Apply(ctx *tx.ApplyContext) tx.Result {
	code := token.MustSymbolCode(a.Symbol)
	pool, err := loadPool(ctx, code)
	if err != nil {
		return tx.TefINTERNAL
	}
	if pool == nil {
		return ctx.Fail(tx.TecPAIR_NOT_FOUND, "Pair token does not exist")
	}

	if !ctx.RequireAuth(ctx.Config.OwnerAccount) || !ctx.RequireAuth(a.Holder) {
		return tx.TecNO_AUTH
	}

	balance, err := readBalance(ctx, a.Holder, code)
	if err != nil {
		return tx.TefINTERNAL
	}
	if balance == nil {
		return ctx.Fail(tx.TecNO_ENTRY, "user balance not found")
	}
	if balance.Balance.Amount != pool.Supply.Amount {
		return ctx.Fail(tx.TecPARTIAL_SUPPLY,
			"liquidity holder must own the entire issued supply")
	}

	if r := subBalance(ctx, a.Holder, pool.Supply); !r.Success() {
		return r
	}
	if err := erasePool(ctx, code); err != nil {
		return tx.TefINTERNAL
	}

	ctx.Settle(pool.ReserveA, a.Holder, "pair removed")
	ctx.Settle(pool.ReserveB, a.Holder, "pair removed")
	ctx.Record("reserve_a", pool.ReserveA)
	ctx.Record("reserve_b", pool.ReserveB)
	return tx.TesSUCCESS
}
