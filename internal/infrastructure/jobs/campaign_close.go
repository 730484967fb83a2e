package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"crowdfund.backend/pkg/logger"
)

const closeBatchSize = 100

// CloseAnnouncer emits the close event for campaigns whose deadline has passed
type CloseAnnouncer interface {
	AnnounceClosed(ctx context.Context, limit int) (int, error)
}

// CampaignCloseJob periodically announces campaigns that stopped accepting contributions.
// Effective state is computed on every read, so the job only feeds the event log.
type CampaignCloseJob struct {
	ledger   CloseAnnouncer
	interval time.Duration
	stop     chan struct{}
}

func NewCampaignCloseJob(ledger CloseAnnouncer, interval time.Duration) *CampaignCloseJob {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &CampaignCloseJob{
		ledger:   ledger,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

func (j *CampaignCloseJob) Start(ctx context.Context) {
	logger.Info(ctx, "campaign close job started", zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "campaign close job stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "campaign close job stopped")
			return
		case <-ticker.C:
			j.announceClosed(ctx)
		}
	}
}

func (j *CampaignCloseJob) Stop() {
	close(j.stop)
}

func (j *CampaignCloseJob) announceClosed(ctx context.Context) {
	// Drain in batches so a backlog after downtime clears in one tick.
	for {
		n, err := j.ledger.AnnounceClosed(ctx, closeBatchSize)
		if err != nil {
			logger.Error(ctx, "announce closed campaigns failed", zap.Error(err))
			return
		}
		if n > 0 {
			logger.Info(ctx, "announced closed campaigns", zap.Int("count", n))
		}
		if n < closeBatchSize || ctx.Err() != nil {
			return
		}
	}
}
