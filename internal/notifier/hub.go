package notifier

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/eduhub/eduhub-backend/internal/config"
)

const writeTimeout = 10 * time.Second

// Hub pushes notifications to connected WebSocket clients. Delivery is
// best-effort: a user without an open connection misses the push, and
// publish failures never propagate to callers.
//
// Fan-out goes through Redis pub/sub so every server instance sees
// every notification regardless of which instance holds the socket.
type Hub struct {
	rdb *redis.Client
	log zerolog.Logger

	mu    sync.RWMutex
	conns map[int]map[*websocket.Conn]struct{}
}

func NewHub(rdb *redis.Client, log zerolog.Logger) *Hub {
	return &Hub{
		rdb:   rdb,
		log:   log.With().Str("component", "notifier").Logger(),
		conns: make(map[int]map[*websocket.Conn]struct{}),
	}
}

// ─── Connection registry ────────────────────────────────────────────

// Attach registers a connection for a user. A user may hold several
// connections (multiple tabs/devices).
func (h *Hub) Attach(userID int, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.conns[userID] == nil {
		h.conns[userID] = make(map[*websocket.Conn]struct{})
	}
	h.conns[userID][conn] = struct{}{}
}

// Detach removes a connection. The caller closes the socket.
func (h *Hub) Detach(userID int, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if set := h.conns[userID]; set != nil {
		delete(set, conn)
		if len(set) == 0 {
			delete(h.conns, userID)
		}
	}
}

// ─── Publish side ───────────────────────────────────────────────────

// Notify publishes a notification for one user. Failures are logged
// and swallowed: a missed push never affects the triggering operation.
func (h *Hub) Notify(ctx context.Context, userID int, n Notification) {
	if n.SentAt.IsZero() {
		n.SentAt = time.Now()
	}

	raw, err := json.Marshal(n)
	if err != nil {
		h.log.Error().Err(err).Int("user_id", userID).Msg("marshal notification failed")
		return
	}

	if err := h.rdb.Publish(ctx, config.CacheKey.UserNotifyChannel(userID), raw).Err(); err != nil {
		h.log.Warn().Err(err).Int("user_id", userID).Msg("publish notification failed")
	}
}

// ─── Subscribe side ─────────────────────────────────────────────────

// Start subscribes to all user notification channels and forwards each
// message to that user's local connections. Run it in its own
// goroutine; it returns when ctx is cancelled.
func (h *Hub) Start(ctx context.Context) {
	sub := h.rdb.PSubscribe(ctx, config.CacheKey.UserNotifyPattern())
	defer sub.Close()

	h.log.Info().Msg("Notifier hub started")

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			h.log.Info().Msg("Shutdown requested. Notifier hub stopping")
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			h.deliver(userIDFromChannel(msg.Channel), []byte(msg.Payload))
		}
	}
}

func (h *Hub) deliver(userID int, raw []byte) {
	if userID == 0 {
		return
	}

	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.conns[userID]))
	for conn := range h.conns[userID] {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, raw); err != nil {
			h.log.Debug().Err(err).Int("user_id", userID).Msg("write failed, dropping connection")
			h.Detach(userID, conn)
			conn.Close()
		}
	}
}

// userIDFromChannel extracts N from "user:N:notify".
func userIDFromChannel(channel string) int {
	parts := strings.Split(channel, ":")
	if len(parts) != 3 {
		return 0
	}
	id, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0
	}
	return id
}
