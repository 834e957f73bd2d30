package swap

import (
	"errors"

	"github.com/swapnode/swapd/internal/core/token"
	"github.com/swapnode/swapd/internal/core/tx"
)

func init() {
	tx.Register(ActionTransfer, func() tx.Action { return new(Transfer) })
}

// Transfer moves liquidity tokens between two users inside the exchange.
type Transfer struct {
	From     string      `json:"from"`
	To       string      `json:"to"`
	Quantity token.Asset `json:"quantity"`
	Memo     string      `json:"memo"`
}

func (a *Transfer) ActionName() string { return ActionTransfer }

func (a *Transfer) Validate() error {
	if a.From == "" || a.To == "" {
		return errors.New("temBAD_ACCOUNT: from and to are required")
	}
	if a.From == a.To {
		return errors.New("temREDUNDANT: cannot transfer to self")
	}
	if !a.Quantity.IsValid() {
		return errors.New("temBAD_AMOUNT: invalid quantity")
	}
	if a.Quantity.Amount <= 0 {
		return errors.New("temBAD_AMOUNT: must transfer positive quantity")
	}
	if len(a.Memo) > MaxMemoLen {
		return errors.New("temMALFORMED: memo has more than 256 bytes")
	}
	return nil
}

func (a *Transfer) Apply(ctx *tx.ApplyContext) tx.Result {
	// Only liquidity tokens of a live pool are transferable here.
	pool, err := loadPool(ctx, a.Quantity.Symbol.Code)
	if err != nil {
		return tx.TefINTERNAL
	}
	if pool == nil {
		return ctx.Fail(tx.TecPAIR_NOT_FOUND, "Pair token does not exist")
	}
	if a.Quantity.Symbol != pool.Supply.Symbol {
		return ctx.Fail(tx.TecTOKEN_MISMATCH, "liquidity symbol precision mismatch")
	}

	if !ctx.RequireAuth(a.From) {
		return tx.TecNO_AUTH
	}

	if r := subBalance(ctx, a.From, a.Quantity); !r.Success() {
		return r
	}
	return addBalance(ctx, a.To, a.Quantity)
}
