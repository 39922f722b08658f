package chain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	// maxMessageSize bounds a single node response. Runtime metadata is
	// never requested, so responses stay small.
	maxMessageSize = 4 * 1024 * 1024

	subscriptionBuffer = 32
	writeWait          = 10 * time.Second
)

// errConnClosed is returned for calls made on, or interrupted by, a closed
// connection.
var errConnClosed = errors.New("chain connection closed")

// RPCError is a JSON-RPC error object returned by the node.
type RPCError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	if len(e.Data) > 0 {
		return fmt.Sprintf("rpc error %d: %s: %s", e.Code, e.Message, strings.Trim(string(e.Data), `"`))
	}
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      uint64        `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type rpcNotification struct {
	Subscription json.RawMessage `json:"subscription"`
	Result       json.RawMessage `json:"result"`
}

// rpcMessage is either a response (ID set) or a subscription notification
// (Method and Params set).
type rpcMessage struct {
	ID     *uint64          `json:"id"`
	Result json.RawMessage  `json:"result"`
	Error  *RPCError        `json:"error"`
	Method string           `json:"method"`
	Params *rpcNotification `json:"params"`
}

type pendingCall struct {
	done chan *rpcMessage
	// sub, when set, is registered under the returned subscription id
	// before the response is handed back, so no notification is missed.
	sub chan json.RawMessage
}

// rpcConn multiplexes JSON-RPC calls and subscriptions over one websocket.
type rpcConn struct {
	ws  *websocket.Conn
	log zerolog.Logger

	writeMu sync.Mutex

	mu      sync.Mutex
	nextID  uint64
	pending map[uint64]*pendingCall
	subs    map[string]chan json.RawMessage
	err     error

	closed chan struct{}
}

func newRPCConn(ws *websocket.Conn, log zerolog.Logger) *rpcConn {
	ws.SetReadLimit(maxMessageSize)
	c := &rpcConn{
		ws:      ws,
		log:     log,
		pending: make(map[uint64]*pendingCall),
		subs:    make(map[string]chan json.RawMessage),
		closed:  make(chan struct{}),
	}
	go c.readLoop()
	return c
}

// call performs one request and decodes its result into out (if non-nil).
func (c *rpcConn) call(ctx context.Context, method string, params []interface{}, out interface{}) error {
	raw, err := c.roundTrip(ctx, method, params, nil)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s result: %w", method, err)
	}
	return nil
}

// subscription is a live server-side subscription.
type subscription struct {
	id     string
	events <-chan json.RawMessage
}

func (c *rpcConn) subscribe(ctx context.Context, method string, params []interface{}) (*subscription, error) {
	ch := make(chan json.RawMessage, subscriptionBuffer)
	raw, err := c.roundTrip(ctx, method, params, ch)
	if err != nil {
		return nil, err
	}
	return &subscription{id: subscriptionKey(raw), events: ch}, nil
}

// unsubscribe stops routing notifications for sub and tells the node.
func (c *rpcConn) unsubscribe(ctx context.Context, method string, sub *subscription) {
	c.mu.Lock()
	if c.subs != nil {
		delete(c.subs, sub.id)
	}
	c.mu.Unlock()

	if err := c.call(ctx, method, []interface{}{sub.id}, nil); err != nil && !errors.Is(err, errConnClosed) {
		c.log.Debug().Err(err).Str("subscription", sub.id).Msg("unsubscribe failed")
	}
}

func (c *rpcConn) roundTrip(ctx context.Context, method string, params []interface{}, sub chan json.RawMessage) (json.RawMessage, error) {
	if params == nil {
		params = []interface{}{}
	}

	c.mu.Lock()
	if c.pending == nil {
		c.mu.Unlock()
		return nil, errConnClosed
	}
	c.nextID++
	id := c.nextID
	pc := &pendingCall{done: make(chan *rpcMessage, 1), sub: sub}
	c.pending[id] = pc
	c.mu.Unlock()

	req := rpcRequest{JSONRPC: "2.0", ID: id, Method: method, Params: params}
	if err := c.write(ctx, req); err != nil {
		c.forget(id)
		return nil, fmt.Errorf("send %s: %w", method, err)
	}

	select {
	case msg := <-pc.done:
		if msg.Error != nil {
			return nil, msg.Error
		}
		return msg.Result, nil
	case <-c.closed:
		return nil, errConnClosed
	case <-ctx.Done():
		c.forget(id)
		return nil, fmt.Errorf("%s: %w", method, ctx.Err())
	}
}

func (c *rpcConn) write(ctx context.Context, req rpcRequest) error {
	deadline := time.Now().Add(writeWait)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.ws.SetWriteDeadline(deadline)
	return c.ws.WriteJSON(req)
}

func (c *rpcConn) forget(id uint64) {
	c.mu.Lock()
	if c.pending != nil {
		delete(c.pending, id)
	}
	c.mu.Unlock()
}

func (c *rpcConn) readLoop() {
	var err error
	defer func() { c.shutdown(err) }()

	for {
		var payload []byte
		_, payload, err = c.ws.ReadMessage()
		if err != nil {
			return
		}

		var msg rpcMessage
		if jerr := json.Unmarshal(payload, &msg); jerr != nil {
			c.log.Warn().Err(jerr).Msg("discarding malformed node message")
			continue
		}
		c.dispatch(&msg)
	}
}

func (c *rpcConn) dispatch(msg *rpcMessage) {
	if msg.ID != nil {
		c.mu.Lock()
		pc, ok := c.pending[*msg.ID]
		delete(c.pending, *msg.ID)
		if ok && pc.sub != nil && msg.Error == nil {
			c.subs[subscriptionKey(msg.Result)] = pc.sub
		}
		c.mu.Unlock()

		if ok {
			pc.done <- msg
		}
		return
	}

	if msg.Params == nil {
		return
	}
	key := subscriptionKey(msg.Params.Subscription)

	c.mu.Lock()
	ch, ok := c.subs[key]
	c.mu.Unlock()
	if !ok {
		c.log.Debug().Str("method", msg.Method).Str("subscription", key).Msg("notification for unknown subscription")
		return
	}

	select {
	case ch <- msg.Params.Result:
	default:
		c.log.Warn().Str("method", msg.Method).Str("subscription", key).Msg("subscription buffer full, dropping notification")
	}
}

// shutdown runs once, on the read loop, after the socket failed or was
// closed. Only the read loop sends on subscription channels, so closing
// them here is safe.
func (c *rpcConn) shutdown(err error) {
	c.mu.Lock()
	c.err = err
	for _, ch := range c.subs {
		close(ch)
	}
	c.subs = nil
	c.pending = nil
	c.mu.Unlock()

	_ = c.ws.Close()
	close(c.closed)

	if err != nil && !isClosedConnError(err) {
		c.log.Warn().Err(err).Msg("chain connection lost")
	}
}

// Close closes the socket and waits for the read loop to drain.
func (c *rpcConn) Close() error {
	err := c.ws.Close()
	<-c.closed
	if isClosedConnError(err) {
		return nil
	}
	return err
}

func (c *rpcConn) isClosed() bool {
	select {
	case <-c.closed:
		return true
	default:
		return false
	}
}

func subscriptionKey(raw json.RawMessage) string {
	return strings.Trim(strings.TrimSpace(string(raw)), `"`)
}

func isClosedConnError(err error) bool {
	if err == nil {
		return false
	}
	str := err.Error()
	if strings.Contains(str, "use of closed network connection") ||
		strings.Contains(str, "connection reset by peer") ||
		strings.Contains(str, "broken pipe") {
		return true
	}
	return websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway)
}
