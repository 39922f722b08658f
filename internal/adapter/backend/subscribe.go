package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"glin-wallet/internal/core/domain"
	"glin-wallet/pkg/apperror"

	"github.com/gorilla/websocket"
)

type subscribeMessage struct {
	Type    string `json:"type"`
	Address string `json:"address"`
}

type pushMessage struct {
	Type        string            `json:"type"`
	Transaction remoteTransaction `json:"transaction"`
}

// SubscribeTransactions streams pushed transfers for address to handler. A
// dropped socket is redialed after the reconnect wait. It returns ctx.Err()
// once ctx ends.
func (c *Client) SubscribeTransactions(ctx context.Context, address string, handler func(domain.Transaction)) error {
	if c.wsURL == "" {
		return apperror.ErrBackendRequest("Backend push socket is not configured", nil)
	}

	log := c.log.With().Str("address", address).Logger()
	for {
		err := c.streamOnce(ctx, address, handler)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Warn().Err(err).Dur("retry_in", c.reconnectWait).Msg("transaction socket closed, reconnecting")

		timer := time.NewTimer(c.reconnectWait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// streamOnce runs one socket session until it fails or ctx ends.
func (c *Client) streamOnce(ctx context.Context, address string, handler func(domain.Transaction)) error {
	header := http.Header{}
	if tok := c.token(); tok != "" {
		header.Set("Authorization", "Bearer "+tok)
	}

	conn, _, err := c.wsDialer.DialContext(ctx, c.wsURL, header)
	if err != nil {
		return fmt.Errorf("dial transaction socket: %w", err)
	}
	defer conn.Close()

	// Unblock ReadMessage when the caller gives up.
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
			_ = conn.Close()
		case <-stop:
		}
	}()

	if err := conn.WriteJSON(subscribeMessage{Type: "subscribe", Address: address}); err != nil {
		return fmt.Errorf("send subscribe: %w", err)
	}
	c.log.Debug().Str("address", address).Msg("transaction socket subscribed")

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		var msg pushMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			c.log.Warn().Err(err).Msg("discarding malformed push message")
			continue
		}
		if msg.Type != "transaction" || msg.Transaction.Hash == "" {
			continue
		}
		handler(msg.Transaction.toDomain(address, c.ss58Prefix))
	}
}
