package swap

import (
	"github.com/swapnode/swapd/internal/core/keylet"
	"github.com/swapnode/swapd/internal/core/state"
	"github.com/swapnode/swapd/internal/core/token"
)

// Read-only queries over a base view, for the RPC layer. These never go
// through an ApplyStateTable; the engine serializes writers, and readers see
// the last committed state.

// QueryPool returns the pool record for a liquidity symbol code, or nil when
// no such pair exists.
func QueryPool(view state.View, code token.SymbolCode) (*PoolRecord, error) {
	data, err := view.Read(keylet.Pool(code))
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

// QueryDeposit returns an owner's custodial entry for a token, or nil when
// absent.
func QueryDeposit(view state.View, owner string, t token.TokenIdentity) (*DepositRecord, error) {
	data, err := view.Read(keylet.Deposit(owner, t))
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

// QueryBalance returns an owner's liquidity token balance, or nil when absent.
func QueryBalance(view state.View, owner string, code token.SymbolCode) (*BalanceRecord, error) {
	data, err := view.Read(keylet.Balance(owner, code))
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
