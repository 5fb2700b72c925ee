// Package jobs provides scheduled background tasks for the custody tracker.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. ChainVerificationJob - Runs every 30 seconds to re-verify the in-memory
// audit chain and raise the alarm if a block no longer matches its recorded
// hash or its link to the previous block.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(auditLedger, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Integrity violations are logged with the failing block index and the check
// that failed. The job never mutates the chain; recovery is an operator
// decision.
package jobs
