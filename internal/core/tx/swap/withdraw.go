package swap

import (
	"errors"

	"github.com/swapnode/swapd/internal/core/keylet"
	"github.com/swapnode/swapd/internal/core/token"
	"github.com/swapnode/swapd/internal/core/tx"
)

func init() {
	tx.Register(ActionWithdraw, func() tx.Action { return new(Withdraw) })
}

// Withdraw returns a user's entire custodial balance of one token. The entry
// is always erased; amounts below one minimal unit are dropped rather than
// transferred.
type Withdraw struct {
	User       string              `json:"user"`
	WithdrawTo string              `json:"withdraw_to"`
	Token      token.TokenIdentity `json:"token"`
}

func (a *Withdraw) ActionName() string { return ActionWithdraw }

func (a *Withdraw) Validate() error {
	if a.User == "" || a.WithdrawTo == "" {
		return errors.New("temBAD_ACCOUNT: user and destination are required")
	}
	if !a.Token.IsValid() {
		return errors.New("temBAD_SYMBOL: invalid token identity")
	}
	return nil
}

func (a *Withdraw) Apply(ctx *tx.ApplyContext) tx.Result {
	if !ctx.RequireAuth(a.User) {
		return tx.TecNO_AUTH
	}

	record, err := readDeposit(ctx, a.User, a.Token)
	if err != nil {
		return tx.TefINTERNAL
	}
	if record == nil {
		return ctx.Fail(tx.TecNO_ENTRY, "Token not found")
	}

	if err := ctx.View.Erase(keylet.Deposit(a.User, a.Token)); err != nil {
		return tx.TefINTERNAL
	}

	// Settle drops sub-unit amounts on its own.
	ctx.Settle(record.Balance, a.WithdrawTo, "withdraw")
	ctx.Record("withdrawn", record.Balance)
	return tx.TesSUCCESS
}
