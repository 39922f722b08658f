// Package events fans wallet events out to websocket subscribers and
// stands in for the approval window host.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"glin-wallet/internal/core/domain"
	"glin-wallet/internal/core/ports"
	"glin-wallet/pkg/logger"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	sendBuffer     = 64
	maxInboundSize = 4 * 1024

	DefaultPingInterval = 30 * time.Second
	DefaultPongWait     = 5 * time.Second
)

var (
	_ ports.EventPublisher = (*Hub)(nil)
	_ ports.WindowManager  = (*Hub)(nil)
)

// ErrNoWindowHost is returned by OpenApproval when no extension surface is
// subscribed to show the approval.
var ErrNoWindowHost = errors.New("no extension surface connected to host the approval window")

// dappEvents are the only events a page provider may observe.
var dappEvents = map[string]bool{
	domain.EventAccountsChanged: true,
	domain.EventChainChanged:    true,
	domain.EventDisconnect:      true,
	domain.EventLocked:          true,
}

// Subscriber describes who is on the other end of a socket. Extension
// surfaces see every event; a dapp sees only provider events addressed to
// everyone or to its own origin.
type Subscriber struct {
	Extension bool
	Origin    string
}

func (s Subscriber) wants(ev domain.Event) bool {
	if s.Extension {
		return true
	}
	if !dappEvents[ev.Name] {
		return false
	}
	return ev.Origin == "" || ev.Origin == s.Origin
}

type outbound struct {
	payload []byte
	// last closes the socket once payload is written.
	last bool
}

type client struct {
	sub  Subscriber
	conn *websocket.Conn
	send chan outbound
	once sync.Once
	done chan struct{}
}

func (c *client) stop() {
	c.once.Do(func() { close(c.done) })
}

// Hub implements ports.EventPublisher and ports.WindowManager.
type Hub struct {
	log          zerolog.Logger
	upgrader     websocket.Upgrader
	pingInterval time.Duration
	pongWait     time.Duration

	mu      sync.RWMutex
	clients map[*client]struct{}
	windows map[string]uuid.UUID // window id -> pending request id

	onWindowClosed func(windowID string)
}

// NewHub creates an empty hub. Origin checks happen in the HTTP layer
// before Serve is called, so the upgrader accepts any origin.
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		log: logger.Component(log, "events"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		pingInterval: DefaultPingInterval,
		pongWait:     DefaultPongWait,
		clients:      make(map[*client]struct{}),
		windows:      make(map[string]uuid.UUID),
	}
}

// SetPingInterval changes the keepalive cadence for sockets opened later.
func (h *Hub) SetPingInterval(interval, pongWait time.Duration) {
	h.pingInterval = interval
	h.pongWait = pongWait
}

// OnWindowClosed registers fn to be told about approval windows that went
// away because their host disconnected.
func (h *Hub) OnWindowClosed(fn func(windowID string)) {
	h.mu.Lock()
	h.onWindowClosed = fn
	h.mu.Unlock()
}

// Publish delivers ev to every interested subscriber without blocking. A
// subscriber whose buffer is full is dropped.
func (h *Hub) Publish(ev domain.Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		h.log.Error().Err(err).Str("event", ev.Name).Msg("failed to encode event")
		return
	}

	h.mu.RLock()
	var slow []*client
	delivered := 0
	for c := range h.clients {
		if !c.sub.wants(ev) {
			continue
		}
		// A dapp told it is disconnected gets nothing further.
		last := !c.sub.Extension && ev.Name == domain.EventDisconnect && ev.Origin == c.sub.Origin
		select {
		case c.send <- outbound{payload: payload, last: last}:
			delivered++
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.log.Warn().Str("origin", c.sub.Origin).Msg("dropping slow event subscriber")
		c.stop()
	}
	h.log.Debug().Str("event", ev.Name).Str("origin", ev.Origin).Int("delivered", delivered).Msg("event published")
}

// Serve upgrades the request and streams events to it until either side
// closes. It blocks for the life of the socket.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, sub Subscriber) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	conn.SetReadLimit(maxInboundSize)

	c := &client{
		sub:  sub,
		conn: conn,
		send: make(chan outbound, sendBuffer),
		done: make(chan struct{}),
	}
	h.register(c)
	defer h.unregister(c)

	go h.readPump(c)
	h.writePump(c)
	return nil
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	h.log.Debug().Bool("extension", c.sub.Extension).Str("origin", c.sub.Origin).Int("subscribers", n).Msg("event subscriber joined")
}

// unregister drops c. When the last extension surface leaves, every open
// approval window is reported closed.
func (h *Hub) unregister(c *client) {
	c.stop()
	_ = c.conn.Close()

	h.mu.Lock()
	delete(h.clients, c)
	var orphaned []string
	if c.sub.Extension && h.extensionCountLocked() == 0 {
		for id := range h.windows {
			orphaned = append(orphaned, id)
		}
		h.windows = make(map[string]uuid.UUID)
	}
	notify := h.onWindowClosed
	h.mu.Unlock()

	if notify != nil {
		for _, id := range orphaned {
			notify(id)
		}
	}
}

func (h *Hub) extensionCountLocked() int {
	n := 0
	for c := range h.clients {
		if c.sub.Extension {
			n++
		}
	}
	return n
}

// readPump discards inbound frames; it exists to service pongs and notice
// a closed socket.
func (h *Hub) readPump(c *client) {
	defer c.stop()

	_ = c.conn.SetReadDeadline(time.Now().Add(h.pingInterval + h.pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(h.pingInterval + h.pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(h.pongWait))
			return
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(h.pongWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg.payload); err != nil {
				return
			}
			if msg.last {
				c.stop()
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(h.pongWait)); err != nil {
				return
			}
		}
	}
}

// OpenApproval hands a window id to the extension surfaces. The approval
// itself is shown in response to the approvalRequested event, which
// carries the id.
func (h *Hub) OpenApproval(_ context.Context, request domain.PendingRequestInfo) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.extensionCountLocked() == 0 {
		return "", ErrNoWindowHost
	}
	id := uuid.NewString()
	h.windows[id] = request.ID
	return id, nil
}

// Close forgets windowID. Closing an unknown window is not an error.
func (h *Hub) Close(_ context.Context, windowID string) error {
	h.mu.Lock()
	delete(h.windows, windowID)
	h.mu.Unlock()
	return nil
}

// Stats reports current subscriber and window counts.
func (h *Hub) Stats() (extensions, dapps, windows int) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		if c.sub.Extension {
			extensions++
		} else {
			dapps++
		}
	}
	return extensions, dapps, len(h.windows)
}

// Shutdown disconnects every subscriber.
func (h *Hub) Shutdown() {
	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.stop()
	}
}
