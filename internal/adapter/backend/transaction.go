package backend

import (
	"encoding/hex"
	"strings"
	"time"

	"glin-wallet/internal/core/domain"
	"glin-wallet/pkg/ss58"
)

// remoteTransaction is a transfer as the backend indexer reports it.
type remoteTransaction struct {
	Hash           string  `json:"hash"`
	BlockNumber    *int64  `json:"blockNumber"`
	BlockHash      string  `json:"blockHash"`
	Timestamp      string  `json:"timestamp"`
	ExtrinsicIndex *int    `json:"extrinsicIndex"`
	FromAddress    string  `json:"fromAddress"`
	ToAddress      string  `json:"toAddress"`
	Amount         string  `json:"amount"`
	Fee            *string `json:"fee"`
	Method         string  `json:"method"`
	Status         string  `json:"status"`
	ErrorMessage   *string `json:"errorMessage"`
}

// toDomain converts rt as seen from owner's account. Hex account ids are
// re-encoded as SS58 so records key the same way as local transfers.
func (rt remoteTransaction) toDomain(owner string, prefix uint16) domain.Transaction {
	tx := domain.Transaction{
		Hash:        rt.Hash,
		From:        normalizeAddress(rt.FromAddress, prefix),
		To:          normalizeAddress(rt.ToAddress, prefix),
		Amount:      rt.Amount,
		Fee:         "0",
		Status:      normalizeStatus(rt.Status),
		BlockNumber: rt.BlockNumber,
		Timestamp:   parseTimestamp(rt.Timestamp),
		Metadata: &domain.TransactionMetadata{
			Method:         rt.Method,
			ExtrinsicIndex: rt.ExtrinsicIndex,
			BlockHash:      rt.BlockHash,
		},
	}
	if rt.Fee != nil && *rt.Fee != "" {
		tx.Fee = *rt.Fee
	}
	if rt.ErrorMessage != nil {
		tx.Metadata.ErrorMessage = *rt.ErrorMessage
	}
	if tx.Amount == "" {
		tx.Amount = "0"
	}

	owner = normalizeAddress(owner, prefix)
	switch {
	case strings.Contains(strings.ToLower(rt.Method), "faucet"):
		tx.Type = domain.TransactionTypeFaucet
	case tx.From == owner:
		tx.Type = domain.TransactionTypeSend
	default:
		tx.Type = domain.TransactionTypeReceive
	}
	return tx
}

func normalizeAddress(addr string, prefix uint16) string {
	if !strings.HasPrefix(addr, "0x") {
		return addr
	}
	pub, err := hex.DecodeString(addr[2:])
	if err != nil || len(pub) != 32 {
		return addr
	}
	return ss58.Encode(pub, prefix)
}

func normalizeStatus(s string) domain.TransactionStatus {
	switch domain.TransactionStatus(s) {
	case domain.TransactionStatusSuccess, domain.TransactionStatusFailed:
		return domain.TransactionStatus(s)
	}
	return domain.TransactionStatusPending
}

func parseTimestamp(s string) time.Time {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC()
	}
	return time.Now().UTC()
}
