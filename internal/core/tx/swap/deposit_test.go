package swap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swapnode/swapd/internal/core/token"
	"github.com/swapnode/swapd/internal/core/tx"
)

func TestDepositsAccumulateInOneEntry(t *testing.T) {
	engine := newTestEngine(t)

	fund(t, engine, "bob", eos(100))
	fund(t, engine, "bob", eos(200))

	// Two deposits of the same token land in a single entry.
	assert.Equal(t, int64(300), depositAmount(t, engine, "bob", eosToken))

	// A different authority with the same symbol is a separate token, and a
	// separate entry.
	other := token.TokenIdentity{Authority: "other.token", Symbol: eosToken.Symbol}
	fund(t, engine, "bob", token.NewExtendedAsset(50, other))
	assert.Equal(t, int64(300), depositAmount(t, engine, "bob", eosToken))
	assert.Equal(t, int64(50), depositAmount(t, engine, "bob", other))
}

func TestDepositRejectsNonPositiveAmount(t *testing.T) {
	engine := newTestEngine(t)

	res, relevant := engine.OnIncomingTransfer("bob", selfAccount, eos(0), "")
	require.True(t, relevant)
	assert.Equal(t, tx.TemMALFORMED, res.Result)
	assert.Contains(t, res.Message, "Token amount must be positive")

	res, relevant = engine.OnIncomingTransfer("bob", selfAccount, eos(-5), "")
	require.True(t, relevant)
	assert.Equal(t, tx.TemMALFORMED, res.Result)
}

func TestIncomingTransferFiltering(t *testing.T) {
	engine := newTestEngine(t)

	// Not addressed to the exchange account: ignored, no error.
	_, relevant := engine.OnIncomingTransfer("bob", "carol", eos(100), "")
	assert.False(t, relevant)

	// The exchange's own outbound transfers echo back; also ignored.
	_, relevant = engine.OnIncomingTransfer(selfAccount, selfAccount, eos(100), "")
	assert.False(t, relevant)

	assert.Equal(t, int64(0), depositAmount(t, engine, "bob", eosToken))
}

func TestWithdrawReturnsEntireBalance(t *testing.T) {
	engine := newTestEngine(t)
	fund(t, engine, "bob", eos(500))

	res := engine.Apply(&Withdraw{User: "bob", WithdrawTo: "bob", Token: eosToken})
	require.Equal(t, tx.TesSUCCESS, res.Result, res.Message)

	require.Len(t, res.Settlements, 1)
	assert.Equal(t, int64(500), res.Settlements[0].Asset.Quantity.Amount)
	assert.Equal(t, "bob", res.Settlements[0].To)
	assert.Equal(t, "withdraw", res.Settlements[0].Memo)

	// The entry is gone; a second withdraw finds nothing.
	assert.Equal(t, int64(0), depositAmount(t, engine, "bob", eosToken))
	res = engine.Apply(&Withdraw{User: "bob", WithdrawTo: "bob", Token: eosToken})
	assert.Equal(t, tx.TecNO_ENTRY, res.Result)
	assert.Equal(t, "Token not found", res.Message)
}

func TestTransferLiquidityTokens(t *testing.T) {
	engine := newTestEngine(t)
	createTestPool(t, engine)

	res := engine.Apply(&Transfer{
		From:     "alice",
		To:       "bob",
		Quantity: ezaAsset(500),
		Memo:     "gift",
	})
	require.Equal(t, tx.TesSUCCESS, res.Result, res.Message)
	assert.Equal(t, int64(1_999_500), balanceAmount(t, engine, "alice", "EZA"))
	assert.Equal(t, int64(500), balanceAmount(t, engine, "bob", "EZA"))
}

func TestTransferValidation(t *testing.T) {
	tests := []struct {
		name   string
		action *Transfer
		errMsg string
	}{
		{
			name:   "to self",
			action: &Transfer{From: "bob", To: "bob", Quantity: ezaAsset(1)},
			errMsg: "cannot transfer to self",
		},
		{
			name:   "non-positive quantity",
			action: &Transfer{From: "alice", To: "bob", Quantity: ezaAsset(0)},
			errMsg: "must transfer positive quantity",
		},
		{
			name:   "oversized memo",
			action: &Transfer{From: "alice", To: "bob", Quantity: ezaAsset(1), Memo: string(make([]byte, MaxMemoLen+1))},
			errMsg: "memo has more than 256 bytes",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.action.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestTransferUnknownLiquiditySymbol(t *testing.T) {
	engine := newTestEngine(t)

	res := engine.Apply(&Transfer{
		From:     "alice",
		To:       "bob",
		Quantity: token.Asset{Amount: 1, Symbol: token.MustSymbol("NOPE", 4)},
	})
	assert.Equal(t, tx.TecPAIR_NOT_FOUND, res.Result)
}
