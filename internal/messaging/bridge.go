// Package messaging is the client half of the message envelope protocol. A
// Bridge stamps each request with a fresh id, keeps it in a pending table
// and completes it exactly once: with the daemon's response, a transport
// failure, or a timeout.
package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"glin-wallet/pkg/apperror"
	"glin-wallet/pkg/logger"
	"glin-wallet/pkg/response"

	"github.com/rs/zerolog"
)

// Default waits before a pending request fails with a timeout.
const (
	DefaultTimeout = 30 * time.Second // popup, approval window, CLI
	PageTimeout    = 60 * time.Second // page provider
)

// Request is the envelope sent to the daemon.
type Request struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"timestamp"`
	Origin    string          `json:"origin,omitempty"`
}

// Response is the envelope the daemon answers with. Data is left raw so
// callers decode it into the shape they expect.
type Response struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	RequestID string          `json:"requestId"`
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data,omitempty"`
	Error     string          `json:"error,omitempty"`
	Code      string          `json:"code,omitempty"`
	Timestamp int64           `json:"timestamp"`
}

// ResponseError is an ERROR envelope returned by the daemon.
type ResponseError struct {
	Code    string
	Message string
}

func (e *ResponseError) Error() string {
	if e.Message == "" {
		return "Unknown error"
	}
	return e.Message
}

// Transport carries one request to the daemon and returns its response.
type Transport interface {
	RoundTrip(ctx context.Context, req Request) (*Response, error)
}

type result struct {
	resp *Response
	err  error
}

// Bridge correlates requests with their responses.
type Bridge struct {
	transport Transport
	timeout   time.Duration
	log       zerolog.Logger

	mu      sync.Mutex
	pending map[string]chan result
}

// NewBridge creates a bridge. A non-positive timeout means DefaultTimeout.
func NewBridge(transport Transport, timeout time.Duration, log zerolog.Logger) *Bridge {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Bridge{
		transport: transport,
		timeout:   timeout,
		log:       logger.Component(log, "bridge"),
		pending:   make(map[string]chan result),
	}
}

// Pending returns the number of requests still awaiting completion.
func (b *Bridge) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}

// Send posts a message and waits for its response. On success the response
// data is decoded into out when out is non-nil. An ERROR envelope comes back
// as *ResponseError; an unanswered request fails with a timeout error naming
// msgType.
func (b *Bridge) Send(ctx context.Context, msgType string, payload, out interface{}) error {
	resp, err := b.Call(ctx, msgType, payload)
	if err != nil {
		return err
	}
	if out == nil || len(resp.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", msgType, err)
	}
	return nil
}

// Call is Send without decoding. The returned response is always a success.
func (b *Bridge) Call(ctx context.Context, msgType string, payload interface{}) (*Response, error) {
	req := Request{
		ID:        response.NextID(),
		Type:      msgType,
		Timestamp: time.Now().UnixMilli(),
	}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s payload: %w", msgType, err)
		}
		req.Payload = raw
	}

	done := b.register(req.ID)

	// The round trip is not tied to the wait: a late answer is dropped by
	// Deliver instead of racing the timeout.
	go func() {
		resp, err := b.transport.RoundTrip(context.WithoutCancel(ctx), req)
		if err != nil {
			b.fail(req.ID, err)
			return
		}
		if resp.RequestID == "" {
			resp.RequestID = req.ID
		}
		if resp.RequestID != req.ID {
			b.fail(req.ID, fmt.Errorf("response for %q answered request %q", resp.RequestID, req.ID))
			return
		}
		b.Deliver(resp)
	}()

	timer := time.NewTimer(b.timeout)
	defer timer.Stop()

	select {
	case r := <-done:
		if r.err != nil {
			return nil, r.err
		}
		if !r.resp.Success {
			return nil, &ResponseError{Code: r.resp.Code, Message: r.resp.Error}
		}
		return r.resp, nil
	case <-timer.C:
		b.forget(req.ID)
		return nil, apperror.ErrTimeout(msgType)
	case <-ctx.Done():
		b.forget(req.ID)
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, apperror.ErrTimeout(msgType)
		}
		return nil, ctx.Err()
	}
}

// Deliver completes the pending request resp answers. It reports false when
// no such request is pending, which is the case for duplicates and for
// answers that arrive after a timeout.
func (b *Bridge) Deliver(resp *Response) bool {
	ch := b.take(resp.RequestID)
	if ch == nil {
		b.log.Debug().Str("request_id", resp.RequestID).Msg("dropping response with no pending request")
		return false
	}
	ch <- result{resp: resp}
	return true
}

func (b *Bridge) fail(id string, err error) {
	if ch := b.take(id); ch != nil {
		ch <- result{err: err}
	}
}

func (b *Bridge) register(id string) chan result {
	ch := make(chan result, 1)
	b.mu.Lock()
	b.pending[id] = ch
	b.mu.Unlock()
	return ch
}

// take removes and returns the waiter for id. Only one caller ever gets it.
func (b *Bridge) take(id string) chan result {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch, ok := b.pending[id]
	if !ok {
		return nil
	}
	delete(b.pending, id)
	return ch
}

func (b *Bridge) forget(id string) {
	b.take(id)
}
