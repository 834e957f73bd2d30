package jsonrpc

import (
	"encoding/json"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/swapnode/swapd/internal/core/token"
	"github.com/swapnode/swapd/internal/core/tx"
	"github.com/swapnode/swapd/internal/core/tx/swap"
)

// Handler dispatches exchange JSON-RPC methods to the engine.
type Handler struct {
	engine    *tx.Engine
	poolCache *lru.Cache[token.SymbolCode, *swap.PoolRecord]
	feed      *Feed
	log       *zap.Logger

	methods map[string]func(json.RawMessage) (any, *Error)
}

// NewHandler builds a handler around the engine. feed may be nil when no
// settlement subscribers are served.
func NewHandler(engine *tx.Engine, poolCacheSize int, feed *Feed, log *zap.Logger) (*Handler, error) {
	cache, err := lru.New[token.SymbolCode, *swap.PoolRecord](poolCacheSize)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	h := &Handler{
		engine:    engine,
		poolCache: cache,
		feed:      feed,
		log:       log,
	}
	h.methods = map[string]func(json.RawMessage) (any, *Error){
		"submit":          h.handleSubmit,
		"transfer_notice": h.handleTransferNotice,
		"pool_info":       h.handlePoolInfo,
		"deposit":         h.handleDeposit,
		"balance":         h.handleBalance,
		"server_info":     h.handleServerInfo,
	}
	return h, nil
}

// Handle dispatches one method call.
func (h *Handler) Handle(method string, params json.RawMessage) (any, *Error) {
	fn, ok := h.methods[method]
	if !ok {
		return nil, &Error{Code: codeMethodNotFound, Message: fmt.Sprintf("method %q not found", method)}
	}
	return fn(params)
}

// submitResult is the submit/transfer_notice response body.
type submitResult struct {
	Result      string          `json:"result"`
	Applied     bool            `json:"applied"`
	Message     string          `json:"message,omitempty"`
	Settlements []tx.Settlement `json:"settlements,omitempty"`
	Receipt     map[string]any  `json:"receipt,omitempty"`
}

func (h *Handler) finish(name string, res tx.ApplyResult) any {
	if res.Applied {
		// Writes may have touched any pool; cached records are stale.
		h.poolCache.Purge()
		if h.feed != nil && len(res.Settlements) > 0 {
			h.feed.Broadcast(SettlementEvent{Action: name, Settlements: res.Settlements})
		}
	}
	return submitResult{
		Result:      res.Result.String(),
		Applied:     res.Applied,
		Message:     res.Message,
		Settlements: res.Settlements,
		Receipt:     res.Receipt,
	}
}

func (h *Handler) handleSubmit(params json.RawMessage) (any, *Error) {
	var req struct {
		Action string          `json:"action"`
		Params json.RawMessage `json:"params"`
	}
	if err := json.Unmarshal(params, &req); err != nil {
		return nil, &Error{Code: codeInvalidParams, Message: err.Error()}
	}

	action, err := tx.FromJSON(req.Action, req.Params)
	if err != nil {
		return nil, &Error{Code: codeInvalidParams, Message: err.Error()}
	}
	return h.finish(req.Action, h.engine.Apply(action)), nil
}

func (h *Handler) handleTransferNotice(params json.RawMessage) (any, *Error) {
	var req struct {
		From  string              `json:"from"`
		To    string              `json:"to"`
		Asset token.ExtendedAsset `json:"asset"`
		Memo  string              `json:"memo"`
	}
	if err := json.Unmarshal(params, &req); err != nil {
		return nil, &Error{Code: codeInvalidParams, Message: err.Error()}
	}

	res, relevant := h.engine.OnIncomingTransfer(req.From, req.To, req.Asset, req.Memo)
	if !relevant {
		return map[string]any{"ignored": true}, nil
	}
	return h.finish(tx.DepositNoticeName, res), nil
}

func (h *Handler) handlePoolInfo(params json.RawMessage) (any, *Error) {
	var req struct {
		Code token.SymbolCode `json:"code"`
	}
	if err := json.Unmarshal(params, &req); err != nil {
		return nil, &Error{Code: codeInvalidParams, Message: err.Error()}
	}

	if pool, ok := h.poolCache.Get(req.Code); ok {
		return pool, nil
	}
	pool, err := swap.QueryPool(h.engine.View(), req.Code)
	if err != nil {
		h.log.Error("pool query failed", zap.Stringer("code", req.Code), zap.Error(err))
		return nil, &Error{Code: codeInternalError, Message: "query failed"}
	}
	if pool == nil {
		return nil, &Error{Code: codeInvalidParams, Message: "Pair token does not exist"}
	}
	h.poolCache.Add(req.Code, pool)
	return pool, nil
}

func (h *Handler) handleDeposit(params json.RawMessage) (any, *Error) {
	var req struct {
		Owner string              `json:"owner"`
		Token token.TokenIdentity `json:"token"`
	}
	if err := json.Unmarshal(params, &req); err != nil {
		return nil, &Error{Code: codeInvalidParams, Message: err.Error()}
	}

	record, err := swap.QueryDeposit(h.engine.View(), req.Owner, req.Token)
	if err != nil {
		h.log.Error("deposit query failed", zap.String("owner", req.Owner), zap.Error(err))
		return nil, &Error{Code: codeInternalError, Message: "query failed"}
	}
	if record == nil {
		return nil, &Error{Code: codeInvalidParams, Message: "Token not found"}
	}
	return record, nil
}

func (h *Handler) handleBalance(params json.RawMessage) (any, *Error) {
	var req struct {
		Owner string           `json:"owner"`
		Code  token.SymbolCode `json:"code"`
	}
	if err := json.Unmarshal(params, &req); err != nil {
		return nil, &Error{Code: codeInvalidParams, Message: err.Error()}
	}

	record, err := swap.QueryBalance(h.engine.View(), req.Owner, req.Code)
	if err != nil {
		h.log.Error("balance query failed", zap.String("owner", req.Owner), zap.Error(err))
		return nil, &Error{Code: codeInternalError, Message: "query failed"}
	}
	if record == nil {
		return nil, &Error{Code: codeInvalidParams, Message: "user balance not found"}
	}
	return record, nil
}

func (h *Handler) handleServerInfo(json.RawMessage) (any, *Error) {
	cfg := h.engine.Config()
	return map[string]any{
		"self_account":  cfg.SelfAccount,
		"owner_account": cfg.OwnerAccount,
		"actions":       tx.RegisteredActions(),
	}, nil
}
