package swap

import (
	"errors"
	"fmt"

	"github.com/swapnode/swapd/internal/core/fixedpoint"
	"github.com/swapnode/swapd/internal/core/token"
	"github.com/swapnode/swapd/internal/core/tx"
)

func init() {
	tx.Register(ActionCreatePair, func() tx.Action { return new(CreatePair) })
}

// CreatePair creates a new trading pair: it seeds the two reserves from the
// issuer's deposits and mints the initial liquidity supply as the geometric
// mean of the reserve amounts.
type CreatePair struct {
	Issuer            string              `json:"issuer"`
	NewSymbol         string              `json:"new_symbol"`
	InitialA          token.ExtendedAsset `json:"initial_a"`
	InitialB          token.ExtendedAsset `json:"initial_b"`
	FeeRate           int64               `json:"fee_rate"`
	FeeCollector      string              `json:"fee_collector"`
	FeeCollectorShare int64               `json:"fee_collector_share"`
}

func (a *CreatePair) ActionName() string { return ActionCreatePair }

func (a *CreatePair) Validate() error {
	if a.Issuer == "" {
		return errors.New("temBAD_ACCOUNT: issuer is required")
	}
	if _, err := token.ParseSymbolCode(a.NewSymbol); err != nil {
		return fmt.Errorf("temBAD_SYMBOL: %w", err)
	}
	if !a.InitialA.IsValid() || !a.InitialB.IsValid() {
		return errors.New("temBAD_AMOUNT: invalid asset")
	}
	if a.InitialA.Quantity.Amount <= 0 || a.InitialB.Quantity.Amount <= 0 {
		return errors.New("temBAD_AMOUNT: initial reserves must be positive")
	}
	if a.InitialA.Quantity.Amount >= MaxInitialReserve || a.InitialB.Quantity.Amount >= MaxInitialReserve {
		return errors.New("temBAD_AMOUNT: initial reserve exceeds sanity ceiling")
	}
	if a.InitialA.Token().Equal(a.InitialB.Token()) {
		return errors.New("temBAD_TOKENS: reserves must be different tokens")
	}
	return validateFeeParams(a.FeeRate, a.FeeCollectorShare, a.FeeCollector)
}

func (a *CreatePair) Apply(ctx *tx.ApplyContext) tx.Result {
	if !ctx.RequireAuth(ctx.Config.OwnerAccount) || !ctx.RequireAuth(a.Issuer) {
		return tx.TecNO_AUTH
	}

	code := token.MustSymbolCode(a.NewSymbol)
	existing, err := loadPool(ctx, code)
	if err != nil {
		return tx.TefINTERNAL
	}
	if existing != nil {
		return ctx.Fail(tx.TecPAIR_EXISTS, "Token with symbol already exists")
	}

	// The synthetic liquidity token precision is the floor mean of the two
	// reserve precisions.
	precision := (a.InitialA.Quantity.Symbol.Precision + a.InitialB.Quantity.Symbol.Precision) / 2
	liquiditySymbol := token.Symbol{Code: code, Precision: precision}

	mint, err := fixedpoint.SqrtProduct(a.InitialA.Quantity.Amount, a.InitialB.Quantity.Amount)
	if err != nil {
		return ctx.Fail(tx.TecAMOUNT_TOO_LARGE, err.Error())
	}
	if mint <= 0 {
		return ctx.Fail(tx.TecFEE_TOO_SMALL, "initial liquidity rounds to zero")
	}

	if r := debitDeposit(ctx, a.Issuer, a.InitialA); !r.Success() {
		return r
	}
	if r := debitDeposit(ctx, a.Issuer, a.InitialB); !r.Success() {
		return r
	}
	if r := addBalance(ctx, a.Issuer, token.Asset{Amount: mint, Symbol: liquiditySymbol}); !r.Success() {
		return r
	}

	pool := &PoolRecord{
		Supply:            token.Asset{Amount: mint, Symbol: liquiditySymbol},
		MaxSupply:         token.Asset{Amount: token.MaxAmount, Symbol: liquiditySymbol},
		MinSupply:         mint,
		Issuer:            a.Issuer,
		ReserveA:          a.InitialA,
		ReserveB:          a.InitialB,
		FeeRate:           a.FeeRate,
		FeeCollector:      a.FeeCollector,
		FeeCollectorShare: a.FeeCollectorShare,
	}
	if err := insertPool(ctx, pool); err != nil {
		return tx.TefINTERNAL
	}

	ctx.Record("minted", token.Asset{Amount: mint, Symbol: liquiditySymbol})
	return tx.TesSUCCESS
}
