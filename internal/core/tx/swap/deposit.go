package swap

import (
	"errors"

	"github.com/swapnode/swapd/internal/core/token"
	"github.com/swapnode/swapd/internal/core/tx"
)

func init() {
	tx.Register(tx.DepositNoticeName, func() tx.Action { return new(DepositNotice) })
}

// DepositNotice credits a sender's custodial entry when the external ledger
// notifies the exchange of an incoming transfer. The engine has already
// filtered out notifications that do not concern the exchange account; no
// further authorization applies, the funds have already moved.
type DepositNotice struct {
	From  string              `json:"from"`
	Asset token.ExtendedAsset `json:"asset"`
	Memo  string              `json:"memo"`
}

func (a *DepositNotice) ActionName() string { return tx.DepositNoticeName }

func (a *DepositNotice) Validate() error {
	if a.From == "" {
		return errors.New("temBAD_ACCOUNT: sender is required")
	}
	if a.Asset.Quantity.Amount <= 0 {
		return errors.New("temBAD_AMOUNT: Token amount must be positive")
	}
	if !a.Asset.IsValid() {
		return errors.New("temBAD_AMOUNT: invalid asset")
	}
	return nil
}

func (a *DepositNotice) Apply(ctx *tx.ApplyContext) tx.Result {
	return creditDeposit(ctx, a.From, a.Asset)
}
