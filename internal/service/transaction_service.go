package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"glin-wallet/internal/core/domain"
	"glin-wallet/internal/core/ports"
	"glin-wallet/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

const (
	syncPageSize = 100
	maxSyncPages = 20
)

var _ ports.TransactionHistory = (*TransactionService)(nil)

// TransactionService implements ports.TransactionHistory. It serves the
// local transaction table and merges the backend's history into it.
type TransactionService struct {
	repo    ports.TransactionRepository
	backend ports.BackendClient
	log     zerolog.Logger

	// One sync in flight per address.
	syncs singleflight.Group

	subsWG sync.WaitGroup
}

// NewTransactionService creates a new TransactionService. backend may be
// nil, in which case only local records are served.
func NewTransactionService(
	repo ports.TransactionRepository,
	backend ports.BackendClient,
	log zerolog.Logger,
) *TransactionService {
	return &TransactionService{
		repo:    repo,
		backend: backend,
		log:     log,
	}
}

// GetTransactions syncs address with the backend, then lists it from the
// local store newest first. A failed sync still serves the cache.
func (s *TransactionService) GetTransactions(ctx context.Context, address string, limit, offset int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}

	if s.backend != nil && offset == 0 {
		if _, err := s.Sync(ctx, address); err != nil {
			s.log.Warn().Err(err).Str("address", address).Msg("transaction sync failed, serving cache")
		}
	}

	txs, _, err := s.repo.ListByAddress(ctx, ports.TransactionListParams{
		Address: address,
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list transactions: %w", err))
	}
	if txs == nil {
		txs = []domain.Transaction{}
	}
	return txs, nil
}

// Sync pulls the backend history for address and upserts it by hash.
// Concurrent calls for the same address share one pull. It returns the
// number of records merged.
func (s *TransactionService) Sync(ctx context.Context, address string) (int, error) {
	if s.backend == nil {
		return 0, nil
	}

	ch := s.syncs.DoChan(address, func() (interface{}, error) {
		return s.pull(context.WithoutCancel(ctx), address)
	})

	select {
	case <-ctx.Done():
		return 0, apperror.ErrTimeout("GET_TRANSACTION_HISTORY")
	case res := <-ch:
		if res.Err != nil {
			return 0, res.Err
		}
		return res.Val.(int), nil
	}
}

func (s *TransactionService) pull(ctx context.Context, address string) (int, error) {
	start := time.Now()
	merged := 0

	for page := 0; page < maxSyncPages; page++ {
		remote, err := s.backend.GetTransactions(ctx, address, syncPageSize, page*syncPageSize)
		if err != nil {
			return merged, passThrough(err, "fetch backend transactions")
		}

		for i := range remote {
			if err := s.merge(ctx, &remote[i]); err != nil {
				return merged, err
			}
			merged++
		}
		if len(remote) < syncPageSize {
			break
		}
	}

	s.log.Debug().
		Str("address", address).
		Int("merged", merged).
		Dur("elapsed", time.Since(start)).
		Msg("transaction history synced")
	return merged, nil
}

// merge upserts tx. Records without a hash cannot be keyed and are skipped.
func (s *TransactionService) merge(ctx context.Context, tx *domain.Transaction) error {
	if tx.Hash == "" {
		return nil
	}
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	if tx.Status == "" {
		tx.Status = domain.TransactionStatusPending
	}
	if tx.Fee == "" {
		tx.Fee = "0"
	}
	if err := s.repo.Upsert(ctx, tx); err != nil {
		return apperror.InternalError(fmt.Errorf("upsert transaction %s: %w", tx.Hash, err))
	}
	return nil
}

// Subscribe starts a backend push subscription for address. Each update is
// merged into the store before handler sees it. The subscription runs
// until the returned cancel is called or ctx ends.
func (s *TransactionService) Subscribe(ctx context.Context, address string, handler func(domain.Transaction)) (func(), error) {
	if s.backend == nil {
		return nil, apperror.ErrBackendRequest("Transaction history is not configured", nil)
	}

	subCtx, cancel := context.WithCancel(ctx)

	s.subsWG.Add(1)

	go func() {
		defer s.subsWG.Done()
		err := s.backend.SubscribeTransactions(subCtx, address, func(tx domain.Transaction) {
			mctx, mcancel := context.WithTimeout(subCtx, statusUpdateTimeout)
			defer mcancel()
			if err := s.merge(mctx, &tx); err != nil {
				s.log.Warn().Err(err).Str("hash", tx.Hash).Msg("failed to store pushed transaction")
			}
			if handler != nil {
				handler(tx)
			}
		})
		if err != nil && subCtx.Err() == nil {
			s.log.Warn().Err(err).Str("address", address).Msg("transaction subscription ended")
		}
	}()

	s.log.Debug().Str("address", address).Msg("transaction subscription opened")
	return cancel, nil
}

// Wait blocks until every subscription goroutine has returned.
func (s *TransactionService) Wait() {
	s.subsWG.Wait()
}
