package jobs

import (
	"fmt"
	"log/slog"

	"provenance/internal/core/domain/services"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	chainVerificationJob *ChainVerificationJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(auditLedger *services.AuditLedger, logger *slog.Logger) *JobManager {
	return &JobManager{
		chainVerificationJob: NewChainVerificationJob(auditLedger, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.chainVerificationJob.Start(); err != nil {
		return fmt.Errorf("failed to start chain verification job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.chainVerificationJob.Stop()
}
