package swap

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/swapnode/swapd/internal/core/state"
	"github.com/swapnode/swapd/internal/core/token"
	"github.com/swapnode/swapd/internal/core/tx"
	"github.com/swapnode/swapd/internal/storage/keyValueDb/memory"
)

const (
	selfAccount  = "swap.pools"
	ownerAccount = "swap.owner"
)

var (
	eosToken = token.TokenIdentity{Authority: "eos.token", Symbol: token.MustSymbol("EOS", 4)}
	usdToken = token.TokenIdentity{Authority: "usd.token", Symbol: token.MustSymbol("USD", 4)}
)

func eos(amount int64) token.ExtendedAsset { return token.NewExtendedAsset(amount, eosToken) }
func usd(amount int64) token.ExtendedAsset { return token.NewExtendedAsset(amount, usdToken) }

func newTestEngine(t *testing.T) *tx.Engine {
	t.Helper()
	view := state.NewKVView(memory.NewDB())
	auth := tx.AuthorizerFunc(func(string) error { return nil })
	return tx.NewEngine(view, auth, tx.EngineConfig{
		SelfAccount:  selfAccount,
		OwnerAccount: ownerAccount,
	}, zap.NewNop())
}

// fund credits a user's deposit ledger through the incoming-transfer path.
func fund(t *testing.T, engine *tx.Engine, user string, asset token.ExtendedAsset) {
	t.Helper()
	res, relevant := engine.OnIncomingTransfer(user, selfAccount, asset, "deposit")
	require.True(t, relevant)
	require.Equal(t, tx.TesSUCCESS, res.Result, res.Message)
}

// createTestPool funds alice and creates the EZA pool: 1,000,000 EOS against
// 4,000,000 USD, 1% swap fee with a 50% collector share. Initial mint is
// sqrt(4*10^12) = 2,000,000 EZA to alice.
func createTestPool(t *testing.T, engine *tx.Engine) {
	t.Helper()
	fund(t, engine, "alice", eos(1_000_000))
	fund(t, engine, "alice", usd(4_000_000))

	res := engine.Apply(&CreatePair{
		Issuer:            "alice",
		NewSymbol:         "EZA",
		InitialA:          eos(1_000_000),
		InitialB:          usd(4_000_000),
		FeeRate:           1_000_000, // 1%
		FeeCollector:      "fees",
		FeeCollectorShare: 50_000_000, // 50%
	})
	require.Equal(t, tx.TesSUCCESS, res.Result, res.Message)
	require.True(t, res.Applied)
}

func queryPool(t *testing.T, engine *tx.Engine, symbol string) *PoolRecord {
	t.Helper()
	pool, err := QueryPool(engine.View(), token.MustSymbolCode(symbol))
	require.NoError(t, err)
	require.NotNil(t, pool)
	return pool
}

func depositAmount(t *testing.T, engine *tx.Engine, user string, tok token.TokenIdentity) int64 {
	t.Helper()
	record, err := QueryDeposit(engine.View(), user, tok)
	require.NoError(t, err)
	if record == nil {
		return 0
	}
	return record.Balance.Quantity.Amount
}

func balanceAmount(t *testing.T, engine *tx.Engine, user, symbol string) int64 {
	t.Helper()
	record, err := QueryBalance(engine.View(), user, token.MustSymbolCode(symbol))
	require.NoError(t, err)
	if record == nil {
		return 0
	}
	return record.Balance.Amount
}
