package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/veloralabs/storefront_api/internal/repository"
)

// TransactionSweepWorker marks long-pending transactions as failed on a fixed interval.
type TransactionSweepWorker struct {
	trxRepo    *repository.TransactionRepository
	interval   time.Duration
	maxPending time.Duration
}

// NewTransactionSweepWorker constructs a TransactionSweepWorker.
func NewTransactionSweepWorker(trxRepo *repository.TransactionRepository, interval, maxPending time.Duration) *TransactionSweepWorker {
	return &TransactionSweepWorker{
		trxRepo:    trxRepo,
		interval:   interval,
		maxPending: maxPending,
	}
}

// Start begins the sweep loop and listens for context cancellation.
func (w *TransactionSweepWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Dur("max_pending", w.maxPending).Msg("Starting transaction sweep worker")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Transaction sweep worker stopped")
			return
		}
	}
}

func (w *TransactionSweepWorker) run(ctx context.Context) {
	failed, err := w.trxRepo.FailStalePending(ctx, w.maxPending)
	if err != nil {
		log.Error().Err(err).Msg("Failed to sweep stale pending transactions")
		return
	}
	if failed > 0 {
		log.Warn().Int64("count", failed).Msg("Marked stale pending transactions as failed")
	}
}
