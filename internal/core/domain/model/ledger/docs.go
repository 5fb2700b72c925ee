// Package ledger contains the hash-linked audit chain's building block.
//
// A Block commits to its index, timestamp, payload and predecessor hash, so
// every recorded event is tamper-evident: changing any stored block breaks
// either its own hash or the link from its successor. The chain itself is
// managed by the AuditLedger domain service.
package ledger
