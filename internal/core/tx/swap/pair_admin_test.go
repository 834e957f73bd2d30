package swap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/swapnode/swapd/internal/core/state"
	"github.com/swapnode/swapd/internal/core/token"
	"github.com/swapnode/swapd/internal/core/tx"
	"github.com/swapnode/swapd/internal/storage/keyValueDb/memory"
)

func TestSetFeeUpdatesConfiguration(t *testing.T) {
	engine := newTestEngine(t)
	createTestPool(t, engine)

	res := engine.Apply(&SetFee{
		Symbol:            "EZA",
		FeeRate:           2_000_000,
		FeeCollector:      "treasury",
		FeeCollectorShare: 10_000_000,
	})
	require.Equal(t, tx.TesSUCCESS, res.Result, res.Message)

	pool := queryPool(t, engine, "EZA")
	assert.Equal(t, int64(2_000_000), pool.FeeRate)
	assert.Equal(t, "treasury", pool.FeeCollector)
	assert.Equal(t, int64(10_000_000), pool.FeeCollectorShare)

	// Reserves and supply are untouched.
	assert.Equal(t, int64(2_000_000), pool.Supply.Amount)
	assert.Equal(t, int64(1_000_000), pool.ReserveA.Quantity.Amount)
}

func TestSetFeeUnknownPair(t *testing.T) {
	engine := newTestEngine(t)

	res := engine.Apply(&SetFee{
		Symbol:            "NOPE",
		FeeRate:           MinFee,
		FeeCollector:      "fees",
		FeeCollectorShare: 0,
	})
	assert.Equal(t, tx.TecPAIR_NOT_FOUND, res.Result)
	assert.Equal(t, "Pair token does not exist", res.Message)
}

func TestRemovePairReturnsReserves(t *testing.T) {
	engine := newTestEngine(t)
	createTestPool(t, engine)

	res := engine.Apply(&RemovePair{Symbol: "EZA", Holder: "alice"})
	require.Equal(t, tx.TesSUCCESS, res.Result, res.Message)

	pool, err := QueryPool(engine.View(), token.MustSymbolCode("EZA"))
	require.NoError(t, err)
	assert.Nil(t, pool)
	assert.Equal(t, int64(0), balanceAmount(t, engine, "alice", "EZA"))

	require.Len(t, res.Settlements, 2)
	assert.Equal(t, int64(1_000_000), res.Settlements[0].Asset.Quantity.Amount)
	assert.Equal(t, int64(4_000_000), res.Settlements[1].Asset.Quantity.Amount)
	assert.Equal(t, "alice", res.Settlements[0].To)
	assert.Equal(t, "pair removed", res.Settlements[0].Memo)
}

func TestRemovePairRequiresFullSupply(t *testing.T) {
	engine := newTestEngine(t)
	createTestPool(t, engine)

	// Alice gives part of the supply away; she can no longer dissolve the pair.
	res := engine.Apply(&Transfer{From: "alice", To: "bob", Quantity: ezaAsset(1)})
	require.Equal(t, tx.TesSUCCESS, res.Result, res.Message)

	res = engine.Apply(&RemovePair{Symbol: "EZA", Holder: "alice"})
	assert.Equal(t, tx.TecPARTIAL_SUPPLY, res.Result)
	assert.False(t, res.Applied)
	assert.NotNil(t, queryPool(t, engine, "EZA"))
}

func TestRemovePairNoBalance(t *testing.T) {
	engine := newTestEngine(t)
	createTestPool(t, engine)

	res := engine.Apply(&RemovePair{Symbol: "EZA", Holder: "carol"})
	assert.Equal(t, tx.TecNO_ENTRY, res.Result)
	assert.Equal(t, "user balance not found", res.Message)
}

func TestPairAdminRequiresAuthorization(t *testing.T) {
	// An authorizer that only vouches for bob.
	view := state.NewKVView(memory.NewDB())
	auth := tx.AuthorizerFunc(func(account string) error {
		if account != "bob" {
			return errors.New("not authorized")
		}
		return nil
	})
	engine := tx.NewEngine(view, auth, tx.EngineConfig{
		SelfAccount:  selfAccount,
		OwnerAccount: ownerAccount,
	}, zap.NewNop())

	fund(t, engine, "alice", eos(1_000_000))
	fund(t, engine, "alice", usd(4_000_000))

	res := engine.Apply(&CreatePair{
		Issuer:            "alice",
		NewSymbol:         "EZA",
		InitialA:          eos(1_000_000),
		InitialB:          usd(4_000_000),
		FeeRate:           MinFee,
		FeeCollector:      "fees",
		FeeCollectorShare: 0,
	})
	assert.Equal(t, tx.TecNO_AUTH, res.Result)
	assert.False(t, res.Applied)
	assert.Equal(t, int64(1_000_000), depositAmount(t, engine, "alice", eosToken))
}
