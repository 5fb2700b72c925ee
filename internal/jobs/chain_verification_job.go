package jobs

import (
	"context"
	"errors"
	"log/slog"

	"provenance/internal/core/domain/services"
	"provenance/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// ChainVerificationJob periodically re-verifies the audit chain held in
// memory. A violation means a block was altered after it was appended; the
// job cannot repair the chain, it raises the alarm.
type ChainVerificationJob struct {
	auditLedger *services.AuditLedger
	cron        *cron.Cron
	logger      *slog.Logger
}

// NewChainVerificationJob creates a job that verifies the audit chain every
// 30 seconds.
func NewChainVerificationJob(auditLedger *services.AuditLedger, logger *slog.Logger) *ChainVerificationJob {
	return &ChainVerificationJob{
		auditLedger: auditLedger,
		cron:        cron.New(cron.WithSeconds()),
		logger:      logger.With("component", "chain_verification_job"),
	}
}

// Start begins the periodic verification.
func (j *ChainVerificationJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()

		if err := j.auditLedger.Verify(); err != nil {
			var integrityErr *errs.ChainIntegrityError
			if errors.As(err, &integrityErr) {
				j.logger.ErrorContext(ctx, "Audit chain integrity violated",
					"block_index", integrityErr.Index,
					"check", integrityErr.Check)
				return
			}
			j.logger.ErrorContext(ctx, "Chain verification failed", "error", err)
			return
		}

		if length, err := j.auditLedger.Length(); err == nil {
			j.logger.DebugContext(ctx, "Audit chain verified", "length", length)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Chain verification job started (running every 30 seconds)")
	return nil
}

// Stop stops the verification job.
func (j *ChainVerificationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Chain verification job stopped")
}
