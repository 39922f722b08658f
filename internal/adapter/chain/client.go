// Package chain talks to a GLIN node over its JSON-RPC websocket.
package chain

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"sync"
	"time"

	"glin-wallet/config"
	"glin-wallet/internal/core/domain"
	"glin-wallet/internal/core/ports"
	"glin-wallet/pkg/apperror"
	"glin-wallet/pkg/logger"
	"glin-wallet/pkg/ss58"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

var _ ports.ChainClient = (*Client)(nil)

var errNotConnected = errors.New("chain client is not connected")

// Options configures every client built by a Dialer.
type Options struct {
	CallIndex         [2]byte
	CheckMetadataHash bool
	RequestTimeout    time.Duration
	// WSDialer defaults to websocket.DefaultDialer.
	WSDialer *websocket.Dialer
}

// OptionsFromConfig reads the chain section.
func OptionsFromConfig(cfg config.ChainConfig) (Options, error) {
	idx, err := cfg.CallIndex()
	if err != nil {
		return Options{}, err
	}
	return Options{
		CallIndex:         idx,
		CheckMetadataHash: cfg.CheckMetadataHash,
		RequestTimeout:    cfg.RequestTimeout,
	}, nil
}

// NewDialer returns a ports.ChainDialer producing unconnected clients.
func NewDialer(opts Options, log zerolog.Logger) ports.ChainDialer {
	return func(endpoint string) ports.ChainClient {
		return NewClient(endpoint, opts, log)
	}
}

// Client implements ports.ChainClient for one endpoint.
type Client struct {
	endpoint string
	opts     Options
	log      zerolog.Logger

	mu      sync.RWMutex
	conn    *rpcConn
	runtime runtimeInfo
}

// NewClient creates a client bound to endpoint. Connect must be called
// before any query.
func NewClient(endpoint string, opts Options, log zerolog.Logger) *Client {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 30 * time.Second
	}
	if opts.WSDialer == nil {
		opts.WSDialer = websocket.DefaultDialer
	}
	return &Client{
		endpoint: endpoint,
		opts:     opts,
		log:      logger.Component(log, "chain").With().Str("endpoint", endpoint).Logger(),
	}
}

func (c *Client) Endpoint() string { return c.endpoint }

func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.conn != nil && !c.conn.isClosed()
}

// Connect dials the node and reads the genesis hash and runtime versions.
// It is a no-op on a live connection.
func (c *Client) Connect(ctx context.Context) error {
	if c.IsConnected() {
		return nil
	}

	ws, _, err := c.opts.WSDialer.DialContext(ctx, c.endpoint, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", c.endpoint, err)
	}
	conn := newRPCConn(ws, c.log)

	rt, err := c.fetchRuntime(ctx, conn)
	if err != nil {
		_ = conn.Close()
		return err
	}

	c.mu.Lock()
	if c.conn != nil && !c.conn.isClosed() {
		c.mu.Unlock()
		_ = conn.Close()
		return nil
	}
	c.conn = conn
	c.runtime = rt
	c.mu.Unlock()

	c.log.Debug().
		Str("genesis", "0x"+hex.EncodeToString(rt.genesisHash[:])).
		Uint32("spec_version", rt.specVersion).
		Uint32("tx_version", rt.transactionVersion).
		Msg("chain runtime loaded")
	return nil
}

func (c *Client) fetchRuntime(ctx context.Context, conn *rpcConn) (runtimeInfo, error) {
	var rt runtimeInfo

	var genesis string
	if err := c.callOn(ctx, conn, "chain_getBlockHash", []interface{}{0}, &genesis); err != nil {
		return rt, fmt.Errorf("fetch genesis hash: %w", err)
	}
	raw, err := decodeHex(genesis)
	if err != nil || len(raw) != 32 {
		return rt, fmt.Errorf("unexpected genesis hash %q", genesis)
	}
	copy(rt.genesisHash[:], raw)

	var version struct {
		SpecVersion        uint32 `json:"specVersion"`
		TransactionVersion uint32 `json:"transactionVersion"`
	}
	if err := c.callOn(ctx, conn, "state_getRuntimeVersion", nil, &version); err != nil {
		return rt, fmt.Errorf("fetch runtime version: %w", err)
	}
	rt.specVersion = version.SpecVersion
	rt.transactionVersion = version.TransactionVersion
	return rt, nil
}

// Disconnect closes the socket. Calling it twice is harmless.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()

	if conn == nil {
		return nil
	}
	return conn.Close()
}

// GetBalance reads System.Account for address. An account the chain has
// never seen has zero balances.
func (c *Client) GetBalance(ctx context.Context, address string) (domain.Balance, error) {
	pub, _, err := ss58.Decode(address)
	if err != nil {
		return domain.Balance{}, apperror.ErrInvalidAddress()
	}
	conn, _, err := c.session()
	if err != nil {
		return domain.Balance{}, err
	}

	key := "0x" + hex.EncodeToString(systemAccountKey(pub))
	var value *string
	if err := c.callOn(ctx, conn, "state_getStorage", []interface{}{key}, &value); err != nil {
		return domain.Balance{}, fmt.Errorf("read account storage: %w", err)
	}

	var raw []byte
	if value != nil {
		if raw, err = decodeHex(*value); err != nil {
			return domain.Balance{}, fmt.Errorf("decode account storage: %w", err)
		}
	}
	balance, err := decodeAccountBalance(raw)
	if err != nil {
		return domain.Balance{}, fmt.Errorf("decode account info: %w", err)
	}
	return balance, nil
}

// EstimateFee asks the node for the partial fee of a transfer from from,
// using a placeholder signature of the right size.
func (c *Client) EstimateFee(ctx context.Context, from, to string, amount *big.Int) (*big.Int, error) {
	fromPub, _, err := ss58.Decode(from)
	if err != nil {
		return nil, apperror.ErrInvalidAddress()
	}
	toPub, _, err := ss58.Decode(to)
	if err != nil {
		return nil, apperror.ErrInvalidAddress()
	}
	conn, _, err := c.session()
	if err != nil {
		return nil, err
	}

	nonce, err := c.accountNonce(ctx, conn, from)
	if err != nil {
		return nil, err
	}
	ext := signedExtensions{nonce: nonce, checkMetadataHash: c.opts.CheckMetadataHash}
	call, err := transferCall(c.opts.CallIndex, toPub, amount)
	if err != nil {
		return nil, fmt.Errorf("encode call: %w", err)
	}
	extrinsic, err := encodeExtrinsic(fromPub, make([]byte, 64), call, ext)
	if err != nil {
		return nil, fmt.Errorf("encode extrinsic: %w", err)
	}

	var info struct {
		PartialFee json.RawMessage `json:"partialFee"`
	}
	hexExt := "0x" + hex.EncodeToString(extrinsic)
	if err := c.callOn(ctx, conn, "payment_queryInfo", []interface{}{hexExt}, &info); err != nil {
		return nil, fmt.Errorf("query fee: %w", err)
	}
	fee, err := parseBalanceNumber(info.PartialFee)
	if err != nil {
		return nil, fmt.Errorf("decode partial fee: %w", err)
	}
	return fee, nil
}

// Transfer signs a keep-alive transfer and submits it with a status watch.
// It returns once the node accepted the extrinsic; onStatus then reports
// inclusion, finalization or failure from a background goroutine.
func (c *Client) Transfer(ctx context.Context, signer ports.Signer, to string, amount *big.Int, onStatus func(domain.TransactionUpdate)) (string, error) {
	toPub, _, err := ss58.Decode(to)
	if err != nil {
		return "", apperror.ErrInvalidAddress()
	}
	if amount == nil || amount.Sign() <= 0 {
		return "", apperror.ErrInvalidAmount()
	}
	conn, rt, err := c.session()
	if err != nil {
		return "", err
	}

	nonce, err := c.accountNonce(ctx, conn, signer.Address())
	if err != nil {
		return "", err
	}

	ext := signedExtensions{nonce: nonce, checkMetadataHash: c.opts.CheckMetadataHash}
	call, err := transferCall(c.opts.CallIndex, toPub, amount)
	if err != nil {
		return "", fmt.Errorf("encode call: %w", err)
	}
	payload, err := signingPayload(call, ext, rt)
	if err != nil {
		return "", fmt.Errorf("encode signing payload: %w", err)
	}
	signature, err := signer.Sign(payload)
	if err != nil {
		return "", fmt.Errorf("sign extrinsic: %w", err)
	}
	extrinsic, err := encodeExtrinsic(signer.PublicKey(), signature, call, ext)
	if err != nil {
		return "", fmt.Errorf("encode extrinsic: %w", err)
	}
	sum := extrinsicHash(extrinsic)
	hash := "0x" + hex.EncodeToString(sum[:])

	// The hash is known before anything is sent, so the caller can key its
	// record on it even if the submission outcome is never observed.
	if onStatus != nil {
		onStatus(domain.TransactionUpdate{Status: domain.TransactionStatusPending, Hash: hash})
	}

	cctx, cancel := context.WithTimeout(ctx, c.opts.RequestTimeout)
	defer cancel()
	sub, err := conn.subscribe(cctx, "author_submitAndWatchExtrinsic", []interface{}{"0x" + hex.EncodeToString(extrinsic)})
	if err != nil {
		return "", fmt.Errorf("submit extrinsic: %w", err)
	}

	c.log.Debug().Str("hash", hash).Uint64("nonce", nonce).Msg("extrinsic submitted")
	go c.watchExtrinsic(conn, sub, hash, onStatus)
	return hash, nil
}

// extrinsicStatus is one author_extrinsicUpdate payload: either a bare
// string ("ready", "future", "dropped", "invalid") or a single-key object.
type extrinsicStatus struct {
	state string
	block string
}

func parseExtrinsicStatus(raw json.RawMessage) (extrinsicStatus, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return extrinsicStatus{state: s}, nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return extrinsicStatus{}, err
	}
	for k, v := range obj {
		st := extrinsicStatus{state: k}
		_ = json.Unmarshal(v, &st.block) // only inBlock, finalized and friends carry a hash
		return st, nil
	}
	return extrinsicStatus{}, errors.New("empty extrinsic status")
}

func (c *Client) watchExtrinsic(conn *rpcConn, sub *subscription, hash string, onStatus func(domain.TransactionUpdate)) {
	log := c.log.With().Str("hash", hash).Logger()
	report := func(u domain.TransactionUpdate) {
		u.Hash = hash
		if onStatus != nil {
			onStatus(u)
		}
	}

	for raw := range sub.events {
		st, err := parseExtrinsicStatus(raw)
		if err != nil {
			log.Warn().Err(err).Msg("unreadable extrinsic status")
			continue
		}

		switch st.state {
		case "ready", "future", "broadcast", "retracted":
			log.Debug().Str("state", st.state).Msg("extrinsic status")
		case "inBlock":
			report(domain.TransactionUpdate{
				Status:      domain.TransactionStatusPending,
				BlockHash:   st.block,
				BlockNumber: c.blockNumber(conn, st.block),
			})
		case "finalized":
			report(domain.TransactionUpdate{
				Status:      domain.TransactionStatusSuccess,
				BlockHash:   st.block,
				BlockNumber: c.blockNumber(conn, st.block),
			})
			c.stopWatch(conn, sub)
			return
		case "dropped", "invalid", "usurped", "finalityTimeout":
			report(domain.TransactionUpdate{
				Status: domain.TransactionStatusFailed,
				Err:    fmt.Errorf("extrinsic %s", st.state),
			})
			c.stopWatch(conn, sub)
			return
		default:
			log.Debug().Str("state", st.state).Msg("ignoring unknown extrinsic status")
		}
	}
	log.Warn().Msg("connection closed before the extrinsic was finalized")
}

func (c *Client) stopWatch(conn *rpcConn, sub *subscription) {
	ctx, cancel := context.WithTimeout(context.Background(), c.opts.RequestTimeout)
	defer cancel()
	conn.unsubscribe(ctx, "author_unwatchExtrinsic", sub)
}

// blockNumber looks up a block header; nil when it cannot be read.
func (c *Client) blockNumber(conn *rpcConn, blockHash string) *int64 {
	ctx, cancel := context.WithTimeout(context.Background(), c.opts.RequestTimeout)
	defer cancel()

	var header struct {
		Number string `json:"number"`
	}
	if err := c.callOn(ctx, conn, "chain_getHeader", []interface{}{blockHash}, &header); err != nil {
		c.log.Debug().Err(err).Str("block", blockHash).Msg("block header lookup failed")
		return nil
	}
	n, err := strconv.ParseInt(strings.TrimPrefix(header.Number, "0x"), 16, 64)
	if err != nil {
		return nil
	}
	return &n
}

func (c *Client) accountNonce(ctx context.Context, conn *rpcConn, address string) (uint64, error) {
	var nonce uint64
	if err := c.callOn(ctx, conn, "system_accountNextIndex", []interface{}{address}, &nonce); err != nil {
		return 0, fmt.Errorf("fetch account nonce: %w", err)
	}
	return nonce, nil
}

// session snapshots the live connection and runtime.
func (c *Client) session() (*rpcConn, runtimeInfo, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.conn == nil || c.conn.isClosed() {
		return nil, runtimeInfo{}, apperror.ErrNetworkUnavailable(errNotConnected)
	}
	return c.conn, c.runtime, nil
}

// callOn bounds every call by the request timeout.
func (c *Client) callOn(ctx context.Context, conn *rpcConn, method string, params []interface{}, out interface{}) error {
	cctx, cancel := context.WithTimeout(ctx, c.opts.RequestTimeout)
	defer cancel()
	err := conn.call(cctx, method, params, out)
	if errors.Is(err, errConnClosed) {
		return apperror.ErrNetworkUnavailable(err)
	}
	return err
}

func decodeHex(s string) ([]byte, error) {
	return hex.DecodeString(strings.TrimPrefix(s, "0x"))
}

// parseBalanceNumber accepts a decimal string, a 0x-prefixed hex string or
// a bare JSON number.
func parseBalanceNumber(raw json.RawMessage) (*big.Int, error) {
	s := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	if s == "" || s == "null" {
		return nil, errors.New("missing value")
	}
	v := new(big.Int)
	var ok bool
	if strings.HasPrefix(s, "0x") {
		_, ok = v.SetString(s[2:], 16)
	} else {
		_, ok = v.SetString(s, 10)
	}
	if !ok {
		return nil, fmt.Errorf("not an integer: %q", s)
	}
	return v, nil
}
