package swap

import (
	"fmt"

	"github.com/swapnode/swapd/internal/core/token"
	"github.com/swapnode/swapd/internal/core/tx"
)

func init() {
	tx.Register(ActionSetFee, func() tx.Action { return new(SetFee) })
}

// SetFee updates a pair's fee configuration in place. Reserves and supply are
// untouched.
type SetFee struct {
	Symbol            string `json:"symbol"`
	FeeRate           int64  `json:"fee_rate"`
	FeeCollector      string `json:"fee_collector"`
	FeeCollectorShare int64  `json:"fee_collector_share"`
}

func (a *SetFee) ActionName() string { return ActionSetFee }

func (a *SetFee) Validate() error {
	if _, err := token.ParseSymbolCode(a.Symbol); err != nil {
		return fmt.Errorf("temBAD_SYMBOL: %w", err)
	}
	return validateFeeParams(a.FeeRate, a.FeeCollectorShare, a.FeeCollector)
}

func (a *SetFee) Apply(ctx *tx.ApplyContext) tx.Result {
	pool, err := loadPool(ctx, token.MustSymbolCode(a.Symbol))
	if err != nil {
		return tx.TefINTERNAL
	}
	if pool == nil {
		return ctx.Fail(tx.TecPAIR_NOT_FOUND, "Pair token does not exist")
	}

	if !ctx.RequireAuth(ctx.Config.OwnerAccount) || !ctx.RequireAuth(pool.Issuer) {
		return tx.TecNO_AUTH
	}

	pool.FeeRate = a.FeeRate
	pool.FeeCollector = a.FeeCollector
	pool.FeeCollectorShare = a.FeeCollectorShare
	if err := updatePool(ctx, pool); err != nil {
		return tx.TefINTERNAL
	}
	return tx.TesSUCCESS
}
