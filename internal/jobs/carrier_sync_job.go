package jobs

import (
	"context"
	"errors"
	"log/slog"

	"shop/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// CarrierSyncJob periodically re-drives carrier cancellation for cancelled
// orders whose first carrier call failed. Runs every minute; the carrier's
// idempotent cancel semantics make repeated passes safe.
type CarrierSyncJob struct {
	handler commands.SyncCarrierCancellationsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewCarrierSyncJob creates a new job for carrier cancellation reconciliation.
func NewCarrierSyncJob(handler commands.SyncCarrierCancellationsCommandHandler, logger *slog.Logger) *CarrierSyncJob {
	return &CarrierSyncJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "carrier_sync_job"),
	}
}

// Start begins the carrier sync job to run every minute.
func (j *CarrierSyncJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewSyncCarrierCancellationsCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			// Only log errors that are not expected business scenarios
			if !errors.Is(err, commands.ErrNoOrdersAwaitingSync) {
				j.logger.ErrorContext(ctx, "Carrier sync job failed", "error", err)
			}
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Carrier sync job started (running every minute)")
	return nil
}

// Stop stops the carrier sync job.
func (j *CarrierSyncJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Carrier sync job stopped")
}
