package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/veloralabs/storefront_api/internal/service"
)

// OfferExpiryWorker deactivates offers past their validity window on a fixed interval.
type OfferExpiryWorker struct {
	offerService *service.OfferService
	interval     time.Duration
}

// NewOfferExpiryWorker constructs an OfferExpiryWorker.
func NewOfferExpiryWorker(offerService *service.OfferService, interval time.Duration) *OfferExpiryWorker {
	return &OfferExpiryWorker{
		offerService: offerService,
		interval:     interval,
	}
}

// Start begins the expiry loop and listens for context cancellation.
func (w *OfferExpiryWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("Starting offer expiry worker")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Offer expiry worker stopped")
			return
		}
	}
}

func (w *OfferExpiryWorker) run(ctx context.Context) {
	expired, err := w.offerService.ExpireOutdated(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to expire outdated offers")
		return
	}
	if expired > 0 {
		log.Info().Int64("count", expired).Msg("Deactivated expired offers")
	}
}
