// Package product implements the custody state machine: the Product aggregate
// whose status advances monotonically along a fixed total order, the explicit
// rank table and role/sequence constraints governing transitions, and the
// append-only HistoryEvent records mirroring the audit ledger.
//
// Custody reassignment happens only at the two hand-off statuses
// (ReadyForShipping and DeliveredToRetailer); everywhere else a transition
// leaves the custodian unchanged.
package product
