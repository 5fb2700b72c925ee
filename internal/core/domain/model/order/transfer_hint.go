package order

import "provenance/internal/core/domain/model/kernel"

// NextActionCustodianTransfer is the advisory action name carried by a
// TransferHint when an order is accepted.
const NextActionCustodianTransfer = "redirect_to_custodian_transfer"

// TransferPrefill carries the values a caller should prefill into the custody
// transfer that follows an accepted order: the requested product and the
// requester who should become the next custodian.
type TransferPrefill struct {
	ProductID          kernel.UUID
	TransferToUsername string
}

// TransferHint is emitted when an order transitions to Accepted. It is
// advisory only: the custody state machine is never invoked automatically.
// The recipient performs the actual transfer as a separate, explicit
// operation.
type TransferHint struct {
	NextAction string
	Prefill    TransferPrefill
}

// NewTransferHint builds the hint for an accepted order.
func NewTransferHint(productID kernel.UUID, transferToUsername string) TransferHint {
	return TransferHint{
		NextAction: NextActionCustodianTransfer,
		Prefill: TransferPrefill{
			ProductID:          productID,
			TransferToUsername: transferToUsername,
		},
	}
}
