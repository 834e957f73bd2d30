package tx

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/swapnode/swapd/internal/core/state"
	"github.com/swapnode/swapd/internal/core/token"
)

// DepositNoticeName is the registered name of the inbound-transfer credit
// action the engine dispatches notifications to.
const DepositNoticeName = "deposit.notice"

// ApplyResult contains the outcome of applying an action.
type ApplyResult struct {
	// Result is the action result code.
	Result Result

	// Applied indicates whether state was committed.
	Applied bool

	// Message is a human-readable result or validation message.
	Message string

	// Settlements are the outbound transfer instructions the external
	// transfer mechanism must execute. Empty unless Applied.
	Settlements []Settlement

	// Receipt carries action-specific output fields (minted amounts, refunds,
	// payouts). Nil unless Applied.
	Receipt map[string]any
}

// Engine applies actions to exchange state. The host serializes calls: the
// engine mutex guarantees each action's read-modify-write runs alone, and the
// ApplyStateTable guarantees a failed action leaves no partial writes.
type Engine struct {
	mu     sync.Mutex
	base   state.View
	auth   Authorizer
	config EngineConfig
	log    *zap.Logger
}

func NewEngine(base state.View, auth Authorizer, config EngineConfig, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{base: base, auth: auth, config: config, log: log}
}

// Config returns the engine configuration.
func (e *Engine) Config() EngineConfig {
	return e.config
}

// View returns the base state view for read-only queries.
func (e *Engine) View() state.View {
	return e.base
}

// Apply validates and applies a single action. Any failed check aborts the
// whole call: tentative mutations are discarded with the state table.
func (e *Engine) Apply(action Action) ApplyResult {
	if err := action.Validate(); err != nil {
		return ApplyResult{Result: TemMALFORMED, Message: err.Error()}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	table := state.NewApplyStateTable(e.base)
	ctx := &ApplyContext{
		View:   table,
		Auth:   e.auth,
		Config: e.config,
	}

	result := action.Apply(ctx)
	if !result.Success() {
		message := ctx.FailureReason()
		if message == "" {
			message = result.Message()
		}
		e.log.Debug("action rejected",
			zap.String("action", action.ActionName()),
			zap.String("result", result.String()),
			zap.String("reason", message))
		return ApplyResult{Result: result, Message: message}
	}

	if err := table.Commit(); err != nil {
		e.log.Error("state commit failed",
			zap.String("action", action.ActionName()),
			zap.Error(err))
		return ApplyResult{Result: TefINTERNAL, Message: TefINTERNAL.Message()}
	}

	e.log.Info("action applied",
		zap.String("action", action.ActionName()),
		zap.Int("settlements", len(ctx.Settlements())))

	return ApplyResult{
		Result:      result,
		Applied:     true,
		Message:     result.Message(),
		Settlements: ctx.Settlements(),
		Receipt:     ctx.Receipt(),
	}
}

// OnIncomingTransfer is the inbound interface of the external token-transfer
// collaborator. Notifications that do not concern the exchange account are
// ignored without error; everything else credits the sender's deposit entry.
func (e *Engine) OnIncomingTransfer(from, to string, asset token.ExtendedAsset, memo string) (ApplyResult, bool) {
	if to != e.config.SelfAccount || from == e.config.SelfAccount {
		return ApplyResult{}, false
	}

	params, err := json.Marshal(map[string]any{
		"from":  from,
		"asset": asset,
		"memo":  memo,
	})
	if err != nil {
		return ApplyResult{Result: TefINTERNAL, Message: TefINTERNAL.Message()}, true
	}

	action, err := FromJSON(DepositNoticeName, params)
	if err != nil {
		return ApplyResult{Result: TefINTERNAL, Message: err.Error()}, true
	}
	return e.Apply(action), true
}
