package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// TransactionType describes the direction of a transfer relative to the wallet.
type TransactionType string

const (
	TransactionTypeSend    TransactionType = "send"
	TransactionTypeReceive TransactionType = "receive"
	TransactionTypeFaucet  TransactionType = "faucet"
)

// TransactionStatus represents the lifecycle state of a transaction.
type TransactionStatus string

const (
	TransactionStatusPending TransactionStatus = "pending"
	TransactionStatusSuccess TransactionStatus = "success"
	TransactionStatusFailed  TransactionStatus = "failed"
)

// TransactionMetadata holds chain-side details reported by history sync.
type TransactionMetadata struct {
	Method         string `json:"method,omitempty"`
	ExtrinsicIndex *int   `json:"extrinsicIndex,omitempty"`
	BlockHash      string `json:"blockHash,omitempty"`
	ErrorMessage   string `json:"errorMessage,omitempty"`
}

// Transaction is a cached view of a chain transfer. Hash is empty until the
// chain client reports the submitted extrinsic.
type Transaction struct {
	ID          uuid.UUID            `json:"id"`
	Hash        string               `json:"hash"`
	From        string               `json:"from"`
	To          string               `json:"to"`
	Amount      string               `json:"amount"` // planck
	Fee         string               `json:"fee"`
	Status      TransactionStatus    `json:"status"`
	BlockNumber *int64               `json:"blockNumber,omitempty"`
	Timestamp   time.Time            `json:"timestamp"`
	Type        TransactionType      `json:"type"`
	Metadata    *TransactionMetadata `json:"metadata,omitempty"`
}

// IsTerminal returns true if the transaction is in a final state.
func (t *Transaction) IsTerminal() bool {
	return t.Status == TransactionStatusSuccess || t.Status == TransactionStatusFailed
}

// TransactionUpdate is a status change for a submitted extrinsic.
type TransactionUpdate struct {
	Status      TransactionStatus
	Hash        string
	BlockHash   string
	BlockNumber *int64
	Err         error
}

func (u TransactionUpdate) MarshalJSON() ([]byte, error) {
	out := struct {
		Status      TransactionStatus `json:"status,omitempty"`
		Hash        string            `json:"hash,omitempty"`
		BlockHash   string            `json:"blockHash,omitempty"`
		BlockNumber *int64            `json:"blockNumber,omitempty"`
		Error       string            `json:"error,omitempty"`
	}{
		Status:      u.Status,
		Hash:        u.Hash,
		BlockHash:   u.BlockHash,
		BlockNumber: u.BlockNumber,
	}
	if u.Err != nil {
		out.Error = u.Err.Error()
	}
	return json.Marshal(out)
}
