// Package services contains domain services: operations that span multiple
// aggregates or hold process-wide domain state.
//
// AuditLedger is the single writer of the hash-linked audit chain. It keeps
// the chain in memory, derives each new block from the current tip under a
// lock, and extends the chain only after the caller has durably persisted
// the block.
package services
