package swap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swapnode/swapd/internal/core/token"
	"github.com/swapnode/swapd/internal/core/tx"
)

func TestCreatePairValidation(t *testing.T) {
	valid := func() *CreatePair {
		return &CreatePair{
			Issuer:            "alice",
			NewSymbol:         "EZA",
			InitialA:          eos(1_000_000),
			InitialB:          usd(4_000_000),
			FeeRate:           MinFee,
			FeeCollector:      "fees",
			FeeCollectorShare: 0,
		}
	}
	tests := []struct {
		name   string
		mutate func(*CreatePair)
		errMsg string
	}{
		{name: "missing issuer", mutate: func(a *CreatePair) { a.Issuer = "" }, errMsg: "issuer is required"},
		{name: "bad symbol", mutate: func(a *CreatePair) { a.NewSymbol = "eza!" }, errMsg: "invalid symbol code"},
		{name: "zero reserve", mutate: func(a *CreatePair) { a.InitialA = eos(0) }, errMsg: "must be positive"},
		{name: "negative reserve", mutate: func(a *CreatePair) { a.InitialB = usd(-1) }, errMsg: "must be positive"},
		{name: "reserve at ceiling", mutate: func(a *CreatePair) { a.InitialA = eos(MaxInitialReserve) }, errMsg: "sanity ceiling"},
		{name: "same token twice", mutate: func(a *CreatePair) { a.InitialB = eos(2) }, errMsg: "different tokens"},
		{name: "fee below minimum", mutate: func(a *CreatePair) { a.FeeRate = MinFee - 1 }, errMsg: "temBAD_FEE"},
		{name: "fee at maximum", mutate: func(a *CreatePair) { a.FeeRate = MaxFee }, errMsg: "temBAD_FEE"},
		{name: "collector share too large", mutate: func(a *CreatePair) { a.FeeCollectorShare = MaxCollectorShare + 1 }, errMsg: "temBAD_FEE"},
		{name: "missing collector", mutate: func(a *CreatePair) { a.FeeCollector = "" }, errMsg: "fee collector account is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action := valid()
			tt.mutate(action)
			err := action.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
	require.NoError(t, valid().Validate())
}

func TestCreatePairMintsGeometricMean(t *testing.T) {
	engine := newTestEngine(t)
	createTestPool(t, engine)

	pool := queryPool(t, engine, "EZA")
	assert.Equal(t, int64(2_000_000), pool.Supply.Amount)
	assert.Equal(t, int64(2_000_000), pool.MinSupply)
	assert.Equal(t, token.MaxAmount, pool.MaxSupply.Amount)
	assert.Equal(t, uint8(4), pool.Supply.Symbol.Precision)
	assert.Equal(t, "alice", pool.Issuer)
	assert.Equal(t, int64(1_000_000), pool.ReserveA.Quantity.Amount)
	assert.Equal(t, int64(4_000_000), pool.ReserveB.Quantity.Amount)

	// The initial mint goes to the issuer; both deposits are consumed in full.
	assert.Equal(t, int64(2_000_000), balanceAmount(t, engine, "alice", "EZA"))
	assert.Equal(t, int64(0), depositAmount(t, engine, "alice", eosToken))
	assert.Equal(t, int64(0), depositAmount(t, engine, "alice", usdToken))
}

func TestCreatePairPrecisionMean(t *testing.T) {
	engine := newTestEngine(t)
	btcToken := token.TokenIdentity{Authority: "btc.token", Symbol: token.MustSymbol("BTC", 8)}
	fund(t, engine, "alice", token.NewExtendedAsset(9_000_000, btcToken))
	fund(t, engine, "alice", usd(4_000_000))

	res := engine.Apply(&CreatePair{
		Issuer:            "alice",
		NewSymbol:         "BZU",
		InitialA:          token.NewExtendedAsset(9_000_000, btcToken),
		InitialB:          usd(4_000_000),
		FeeRate:           MinFee,
		FeeCollector:      "fees",
		FeeCollectorShare: 0,
	})
	require.Equal(t, tx.TesSUCCESS, res.Result, res.Message)

	// floor((8+4)/2) = 6, mint = sqrt(9e6 * 4e6) = 6,000,000.
	pool := queryPool(t, engine, "BZU")
	assert.Equal(t, uint8(6), pool.Supply.Symbol.Precision)
	assert.Equal(t, int64(6_000_000), pool.Supply.Amount)
}

func TestCreatePairDuplicateSymbol(t *testing.T) {
	engine := newTestEngine(t)
	createTestPool(t, engine)

	fund(t, engine, "bob", eos(100))
	fund(t, engine, "bob", usd(100))
	res := engine.Apply(&CreatePair{
		Issuer:            "bob",
		NewSymbol:         "EZA",
		InitialA:          eos(100),
		InitialB:          usd(100),
		FeeRate:           MinFee,
		FeeCollector:      "fees",
		FeeCollectorShare: 0,
	})
	assert.Equal(t, tx.TecPAIR_EXISTS, res.Result)
	assert.Equal(t, "Token with symbol already exists", res.Message)
	assert.False(t, res.Applied)

	// Bob's deposits are untouched by the failed call.
	assert.Equal(t, int64(100), depositAmount(t, engine, "bob", eosToken))
	assert.Equal(t, int64(100), depositAmount(t, engine, "bob", usdToken))
}

func TestCreatePairInsufficientDeposit(t *testing.T) {
	engine := newTestEngine(t)
	fund(t, engine, "alice", eos(1_000_000))
	// No USD deposit at all.

	res := engine.Apply(&CreatePair{
		Issuer:            "alice",
		NewSymbol:         "EZA",
		InitialA:          eos(1_000_000),
		InitialB:          usd(4_000_000),
		FeeRate:           MinFee,
		FeeCollector:      "fees",
		FeeCollectorShare: 0,
	})
	assert.Equal(t, tx.TecINSUFFICIENT_FUNDS, res.Result)
	assert.False(t, res.Applied)

	// The EOS debit from the same call was rolled back.
	assert.Equal(t, int64(1_000_000), depositAmount(t, engine, "alice", eosToken))

	pool, err := QueryPool(engine.View(), token.MustSymbolCode("EZA"))
	require.NoError(t, err)
	assert.Nil(t, pool)
}
