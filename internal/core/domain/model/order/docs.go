// Package order implements the bottom-up order negotiation state machine:
// downstream roles request custody from their immediate upstream role
// (retailer→distributor, distributor→manufacturer) before a hand-off occurs.
//
// Order acceptance emits a TransferHint consumed by the custody machine's
// caller; the hand-off itself is never automated.
package order
