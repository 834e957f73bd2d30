package tx

import (
	"github.com/swapnode/swapd/internal/core/state"
	"github.com/swapnode/swapd/internal/core/token"
)

// Authorizer is the identity collaborator: it answers whether the named
// account has authorized the call currently being processed.
type Authorizer interface {
	RequireAuth(account string) error
}

// AuthorizerFunc adapts a function to the Authorizer interface.
type AuthorizerFunc func(account string) error

func (f AuthorizerFunc) RequireAuth(account string) error {
	return f(account)
}

// Settlement is an outbound transfer instruction emitted by a successful
// action. The external transfer mechanism executes it; the engine only records
// the exact amount owed.
type Settlement struct {
	Asset token.ExtendedAsset `json:"asset"`
	To    string              `json:"to"`
	Memo  string              `json:"memo"`
}

// EngineConfig holds the accounts and fee bounds the engine operates under.
type EngineConfig struct {
	// SelfAccount is the exchange's own account on the external ledger.
	SelfAccount string

	// OwnerAccount must co-authorize pair administration actions.
	OwnerAccount string
}

// ApplyContext carries everything an action needs while applying: the tracked
// state view, the authorization collaborator, the engine configuration, and
// collectors for settlement instructions and the receipt.
type ApplyContext struct {
	View   *state.ApplyStateTable
	Auth   Authorizer
	Config EngineConfig

	settlements   []Settlement
	receipt       map[string]any
	failureReason string
}

// Fail records a descriptive failure reason and passes the result code
// through, so call sites read `return ctx.Fail(code, reason)`.
func (ctx *ApplyContext) Fail(r Result, reason string) Result {
	ctx.failureReason = reason
	return r
}

// FailureReason returns the recorded descriptive reason, or empty.
func (ctx *ApplyContext) FailureReason() string {
	return ctx.failureReason
}

// RequireAuth fails the action when the account has not authorized the call.
func (ctx *ApplyContext) RequireAuth(account string) bool {
	if ctx.Auth == nil {
		return false
	}
	return ctx.Auth.RequireAuth(account) == nil
}

// Settle schedules an outbound transfer of the exact asset amount. Amounts
// below one minimal unit are dropped; nothing can be transferred for them.
func (ctx *ApplyContext) Settle(asset token.ExtendedAsset, to, memo string) {
	if asset.Quantity.Amount < 1 {
		return
	}
	ctx.settlements = append(ctx.settlements, Settlement{Asset: asset, To: to, Memo: memo})
}

// Record adds a key to the action receipt returned to the caller.
func (ctx *ApplyContext) Record(key string, value any) {
	if ctx.receipt == nil {
		ctx.receipt = make(map[string]any)
	}
	ctx.receipt[key] = value
}

// Settlements returns the scheduled transfer instructions.
func (ctx *ApplyContext) Settlements() []Settlement {
	return ctx.settlements
}

// Receipt returns the accumulated receipt fields.
func (ctx *ApplyContext) Receipt() map[string]any {
	return ctx.receipt
}
