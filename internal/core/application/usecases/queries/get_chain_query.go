// Package queries contains read-only operations over the system state.
// Implements the Query side of the CQRS architecture: handlers read either
// the in-memory audit chain or the database directly, bypassing the
// aggregates.
package queries

import (
	"errors"

	"provenance/internal/pkg/guard"
)

var (
	ErrGetChainQueryIsNotConstructed = errors.New(
		"GetChainQuery must be created via NewGetChainQuery constructor",
	)
)

// GetChainQuery retrieves the full audit chain together with the outcome of
// an integrity verification run.
type GetChainQuery struct {
	guard guard.ConstructorGuard
}

// NewGetChainQuery creates a query to retrieve the audit chain.
func NewGetChainQuery() GetChainQuery {
	return GetChainQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetChainQuery) Validate() error {
	return q.guard.Validate(ErrGetChainQueryIsNotConstructed)
}

// BlockResponse is the read-side shape of a single audit block.
type BlockResponse struct {
	Index        int
	Timestamp    float64
	Data         map[string]any
	PreviousHash string
	Hash         string
}

// GetChainQueryResponse carries the chain and its verification outcome.
// Valid is false when verification found a violation; Message then names the
// first failing block and check.
type GetChainQueryResponse struct {
	Blocks  []BlockResponse
	Length  int
	Valid   bool
	Message string
}
