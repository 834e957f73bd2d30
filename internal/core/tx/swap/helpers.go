package swap

import (
	"fmt"

	"github.com/swapnode/swapd/internal/core/keylet"
	"github.com/swapnode/swapd/internal/core/token"
	"github.com/swapnode/swapd/internal/core/tx"
)

// loadPool reads the pool record for a liquidity symbol code. Returns nil
// without error when the pool does not exist.
func loadPool(ctx *tx.ApplyContext, code token.SymbolCode) (*PoolRecord, error) {
	data, err := ctx.View.Read(keylet.Pool(code))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	pool := new(PoolRecord)
	if err := decodeRecord(data, pool); err != nil {
		return nil, err
	}
	return pool, nil
}

func insertPool(ctx *tx.ApplyContext, pool *PoolRecord) error {
	data, err := encodeRecord(pool)
	if err != nil {
		return err
	}
	return ctx.View.Insert(keylet.Pool(pool.Supply.Symbol.Code), data)
}

func updatePool(ctx *tx.ApplyContext, pool *PoolRecord) error {
	data, err := encodeRecord(pool)
	if err != nil {
		return err
	}
	return ctx.View.Update(keylet.Pool(pool.Supply.Symbol.Code), data)
}

func erasePool(ctx *tx.ApplyContext, code token.SymbolCode) error {
	return ctx.View.Erase(keylet.Pool(code))
}

// applyDepositDelta adds a signed extended asset to an owner's custodial
// entry, creating it on first credit and erasing it when the balance returns
// to exactly zero. Debits that exceed the balance fail the action.
func applyDepositDelta(ctx *tx.ApplyContext, owner string, delta token.ExtendedAsset) tx.Result {
	if !delta.IsValid() {
		return ctx.Fail(tx.TemMALFORMED, "invalid asset")
	}

	k := keylet.Deposit(owner, delta.Token())
	data, err := ctx.View.Read(k)
	if err != nil {
		return tx.TefINTERNAL
	}

	if data == nil {
		if delta.Quantity.Amount <= 0 {
			return ctx.Fail(tx.TecINSUFFICIENT_FUNDS, "Insufficient funds")
		}
		encoded, err := encodeRecord(&DepositRecord{Owner: owner, Balance: delta})
		if err != nil {
			return tx.TefINTERNAL
		}
		if err := ctx.View.Insert(k, encoded); err != nil {
			return tx.TefINTERNAL
		}
		return tx.TesSUCCESS
	}

	record := new(DepositRecord)
	if err := decodeRecord(data, record); err != nil {
		return tx.TefINTERNAL
	}

	sum := record.Balance.Quantity.Amount + delta.Quantity.Amount
	if sum == 0 {
		if err := ctx.View.Erase(k); err != nil {
			return tx.TefINTERNAL
		}
		return tx.TesSUCCESS
	}
	if sum < 0 {
		return ctx.Fail(tx.TecINSUFFICIENT_FUNDS, fmt.Sprintf(
			"Insufficient funds, you have %s, but need %s",
			record.Balance.Quantity, delta.Quantity.Negated()))
	}
	if sum > token.MaxAmount {
		return ctx.Fail(tx.TecAMOUNT_TOO_LARGE, "amount too large")
	}

	record.Balance.Quantity.Amount = sum
	encoded, err := encodeRecord(record)
	if err != nil {
		return tx.TefINTERNAL
	}
	if err := ctx.View.Update(k, encoded); err != nil {
		return tx.TefINTERNAL
	}
	return tx.TesSUCCESS
}

// creditDeposit adds to an owner's custodial entry.
func creditDeposit(ctx *tx.ApplyContext, owner string, value token.ExtendedAsset) tx.Result {
	return applyDepositDelta(ctx, owner, value)
}

// debitDeposit removes from an owner's custodial entry, checking funds.
func debitDeposit(ctx *tx.ApplyContext, owner string, value token.ExtendedAsset) tx.Result {
	return applyDepositDelta(ctx, owner, value.Negated())
}

// readDeposit returns an owner's custodial entry, or nil when absent.
func readDeposit(ctx *tx.ApplyContext, owner string, t token.TokenIdentity) (*DepositRecord, error) {
	data, err := ctx.View.Read(keylet.Deposit(owner, t))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	record := new(DepositRecord)
	if err := decodeRecord(data, record); err != nil {
		return nil, err
	}
	return record, nil
}

// addBalance credits an owner's liquidity token balance, creating the entry
// on first credit.
func addBalance(ctx *tx.ApplyContext, owner string, value token.Asset) tx.Result {
	k := keylet.Balance(owner, value.Symbol.Code)
	data, err := ctx.View.Read(k)
	if err != nil {
		return tx.TefINTERNAL
	}

	if data == nil {
		encoded, err := encodeRecord(&BalanceRecord{Owner: owner, Balance: value})
		if err != nil {
			return tx.TefINTERNAL
		}
		if err := ctx.View.Insert(k, encoded); err != nil {
			return tx.TefINTERNAL
		}
		return tx.TesSUCCESS
	}

	record := new(BalanceRecord)
	if err := decodeRecord(data, record); err != nil {
		return tx.TefINTERNAL
	}
	sum := record.Balance.Amount + value.Amount
	if sum > token.MaxAmount {
		return ctx.Fail(tx.TecAMOUNT_TOO_LARGE, "amount too large")
	}
	record.Balance.Amount = sum
	encoded, err := encodeRecord(record)
	if err != nil {
		return tx.TefINTERNAL
	}
	if err := ctx.View.Update(k, encoded); err != nil {
		return tx.TefINTERNAL
	}
	return tx.TesSUCCESS
}

// subBalance debits an owner's liquidity token balance, erasing the entry
// when it reaches exactly zero.
func subBalance(ctx *tx.ApplyContext, owner string, value token.Asset) tx.Result {
	k := keylet.Balance(owner, value.Symbol.Code)
	data, err := ctx.View.Read(k)
	if err != nil {
		return tx.TefINTERNAL
	}
	if data == nil {
		return ctx.Fail(tx.TecNO_ENTRY, "user balance not found")
	}

	record := new(BalanceRecord)
	if err := decodeRecord(data, record); err != nil {
		return tx.TefINTERNAL
	}
	if record.Balance.Amount < value.Amount {
		return ctx.Fail(tx.TecINSUFFICIENT_FUNDS, "overdrawn balance")
	}

	if record.Balance.Amount == value.Amount {
		if err := ctx.View.Erase(k); err != nil {
			return tx.TefINTERNAL
		}
		return tx.TesSUCCESS
	}

	record.Balance.Amount -= value.Amount
	encoded, err := encodeRecord(record)
	if err != nil {
		return tx.TefINTERNAL
	}
	if err := ctx.View.Update(k, encoded); err != nil {
		return tx.TefINTERNAL
	}
	return tx.TesSUCCESS
}

// readBalance returns an owner's liquidity balance record, or nil when absent.
func readBalance(ctx *tx.ApplyContext, owner string, code token.SymbolCode) (*BalanceRecord, error) {
	data, err := ctx.View.Read(keylet.Balance(owner, code))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	record := new(BalanceRecord)
	if err := decodeRecord(data, record); err != nil {
		return nil, err
	}
	return record, nil
}

// validateFeeParams checks fee configuration bounds shared by create.pair and
// set.fee.
func validateFeeParams(feeRate, collectorShare int64, collector string) error {
	if feeRate < MinFee || feeRate >= MaxFee {
		return fmt.Errorf("temBAD_FEE: fee rate %d outside [%d, %d)", feeRate, MinFee, MaxFee)
	}
	if collectorShare < 0 || collectorShare > MaxCollectorShare {
		return fmt.Errorf("temBAD_FEE: collector share %d outside [0, %d]", collectorShare, MaxCollectorShare)
	}
	if collector == "" {
		return fmt.Errorf("temBAD_ACCOUNT: fee collector account is required")
	}
	return nil
}

// orientToReserves maps a pair of extended assets onto the pool's reserve
// order. Either orientation is accepted; any other pairing is a mismatch.
func orientToReserves(pool *PoolRecord, first, second token.ExtendedAsset) (a, b token.ExtendedAsset, ok bool) {
	switch {
	case first.Token().Equal(pool.ReserveA.Token()) && second.Token().Equal(pool.ReserveB.Token()):
		return first, second, true
	case first.Token().Equal(pool.ReserveB.Token()) && second.Token().Equal(pool.ReserveA.Token()):
		return second, first, true
	default:
		return token.ExtendedAsset{}, token.ExtendedAsset{}, false
	}
}
