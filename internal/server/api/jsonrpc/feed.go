package jsonrpc

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/swapnode/swapd/internal/core/tx"
)

// SettlementEvent is pushed to websocket subscribers whenever an applied
// action schedules outbound transfers.
type SettlementEvent struct {
	Action      string          `json:"action"`
	Settlements []tx.Settlement `json:"settlements"`
}

// Feed fans settlement events out to websocket subscribers. Subscribers are
// best-effort: a slow or broken connection is dropped, never waited on.
type Feed struct {
	upgrader websocket.Upgrader
	log      *zap.Logger

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

func NewFeed(log *zap.Logger) *Feed {
	if log == nil {
		log = zap.NewNop()
	}
	return &Feed{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		log:     log,
		clients: make(map[*websocket.Conn]struct{}),
	}
}

func (f *Feed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		f.log.Debug("websocket upgrade failed", zap.Error(err))
		return
	}

	f.mu.Lock()
	f.clients[conn] = struct{}{}
	f.mu.Unlock()
	f.log.Debug("settlement subscriber connected", zap.String("remote", conn.RemoteAddr().String()))

	// Subscribers only listen. Drain the read side to notice disconnects.
	go func() {
		defer f.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Broadcast sends the event to every subscriber, dropping any that fail.
func (f *Feed) Broadcast(event SettlementEvent) {
	f.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(f.clients))
	for c := range f.clients {
		conns = append(conns, c)
	}
	f.mu.Unlock()

	for _, c := range conns {
		if err := c.WriteJSON(event); err != nil {
			f.log.Debug("dropping settlement subscriber", zap.Error(err))
			f.drop(c)
		}
	}
}

// Close disconnects all subscribers.
func (f *Feed) Close() {
	f.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(f.clients))
	for c := range f.clients {
		conns = append(conns, c)
	}
	f.clients = make(map[*websocket.Conn]struct{})
	f.mu.Unlock()

	for _, c := range conns {
		c.Close()
	}
}

func (f *Feed) drop(conn *websocket.Conn) {
	f.mu.Lock()
	delete(f.clients, conn)
	f.mu.Unlock()
	conn.Close()
}
