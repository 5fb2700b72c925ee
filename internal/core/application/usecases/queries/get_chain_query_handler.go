package queries

import (
	"context"
	"errors"

	"provenance/internal/core/domain/services"
	"provenance/internal/pkg/errs"
)

// GetChainQueryHandler reads the audit chain from the ledger service and
// verifies it. Integrity violations are reported in the response, never as a
// handler error: the chain is still returned so operators can inspect it.
type GetChainQueryHandler struct {
	auditLedger *services.AuditLedger
}

// NewGetChainQueryHandler creates a handler for chain retrieval.
func NewGetChainQueryHandler(auditLedger *services.AuditLedger) GetChainQueryHandler {
	return GetChainQueryHandler{auditLedger: auditLedger}
}

// Handle executes the query: snapshot the chain, verify it, report both.
func (h GetChainQueryHandler) Handle(_ context.Context, query GetChainQuery) (GetChainQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetChainQueryResponse{}, err
	}

	blocks, err := h.auditLedger.Blocks()
	if err != nil {
		return GetChainQueryResponse{}, err
	}

	response := GetChainQueryResponse{
		Blocks: make([]BlockResponse, 0, len(blocks)),
		Length: len(blocks),
		Valid:  true,
	}
	for _, block := range blocks {
		response.Blocks = append(response.Blocks, BlockResponse{
			Index:        block.Index(),
			Timestamp:    block.Timestamp(),
			Data:         block.Data(),
			PreviousHash: block.PreviousHash(),
			Hash:         block.Hash(),
		})
	}

	if verifyErr := h.auditLedger.Verify(); verifyErr != nil {
		var integrityErr *errs.ChainIntegrityError
		if !errors.As(verifyErr, &integrityErr) {
			return GetChainQueryResponse{}, verifyErr
		}
		response.Valid = false
		response.Message = integrityErr.Error()
	}

	return response, nil
}
