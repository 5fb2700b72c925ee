package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"provenance/internal/core/domain/model/ledger"
	"provenance/internal/pkg/errs"
)

// ErrLedgerNotInitialized is returned when the ledger is used before
// Initialize has loaded or synthesized the chain.
var ErrLedgerNotInitialized = errors.New("audit ledger is not initialized")

// BlockStore is the persistence the ledger loads its chain from at startup.
// Appends go through the persist callback passed to Append instead, so the
// caller controls which transaction the block write joins.
type BlockStore interface {
	GetAllOrdered(ctx context.Context) ([]ledger.Block, error)
}

// AuditLedger is the domain service owning the append-only hash chain.
//
// It keeps the full chain in memory and serializes every append: each new
// block's index and previous hash are derived from the current tip under a
// single lock, so concurrent appends always produce a linear chain.
//
// An append is all-or-nothing. The caller passes a persist callback that
// durably stores the block (typically inside the caller's transaction,
// committing it); the in-memory chain is extended only after that callback
// returns nil. A failed persist leaves the chain exactly as it was.
//
// Business rules:
//   - Blocks are never modified or removed once appended
//   - The first block is always the genesis block at index 0
//   - Verification never repairs storage; it only reports the first
//     violation
type AuditLedger struct {
	mu          sync.Mutex
	chain       []ledger.Block
	initialized bool

	// now is the clock used for new block timestamps
	now func() time.Time
}

// NewAuditLedger creates an AuditLedger that stamps blocks with the system
// clock. The ledger is unusable until Initialize has run.
func NewAuditLedger() *AuditLedger {
	return &AuditLedger{now: time.Now}
}

// NewAuditLedgerWithClock creates an AuditLedger with an injected clock.
func NewAuditLedgerWithClock(now func() time.Time) (*AuditLedger, error) {
	if now == nil {
		return nil, errs.NewValueIsRequiredError("now")
	}
	return &AuditLedger{now: now}, nil
}

// Initialize loads the stored chain into memory. When the store is empty, or
// its earliest block does not carry index 0, a genesis block is synthesized,
// persisted through the callback and placed at the head of the chain ahead of
// whatever was stored. Initialize is idempotent.
func (l *AuditLedger) Initialize(ctx context.Context, store BlockStore, persistGenesis func(context.Context, ledger.Block) error) error {
	if store == nil {
		return errs.NewValueIsRequiredError("store")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.initialized {
		return nil
	}

	stored, err := store.GetAllOrdered(ctx)
	if err != nil {
		return err
	}

	if len(stored) == 0 || stored[0].Index() != 0 {
		genesis, err := ledger.NewGenesisBlock(epochSeconds(l.now()))
		if err != nil {
			return err
		}
		if persistGenesis != nil {
			if err := persistGenesis(ctx, genesis); err != nil {
				return err
			}
		}
		stored = append([]ledger.Block{genesis}, stored...)
	}

	l.chain = stored
	l.initialized = true
	return nil
}

// Append creates the next block for the given payload and extends the chain.
//
// The block's index and previous hash come from the current tip. Before the
// chain is extended, the persist callback must durably store the block; the
// caller is expected to write the block and commit its unit of work inside
// the callback, so the in-memory chain never runs ahead of storage. When the
// callback fails, the chain is left untouched and the error is returned.
func (l *AuditLedger) Append(ctx context.Context, payload map[string]any, persist func(context.Context, ledger.Block) error) (ledger.Block, error) {
	if payload == nil {
		return ledger.Block{}, errs.NewValueIsRequiredError("payload")
	}
	if persist == nil {
		return ledger.Block{}, errs.NewValueIsRequiredError("persist")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.initialized {
		return ledger.Block{}, ErrLedgerNotInitialized
	}

	tip := l.chain[len(l.chain)-1]
	block, err := ledger.NewBlock(tip.Index()+1, epochSeconds(l.now()), payload, tip.Hash())
	if err != nil {
		return ledger.Block{}, err
	}

	if err := persist(ctx, block); err != nil {
		return ledger.Block{}, err
	}

	l.chain = append(l.chain, block)
	return block, nil
}

// Verify walks the chain from the block after genesis and checks, for each
// block, that its stored hash matches a recomputation and that its previous
// hash equals the predecessor's hash. It returns a ChainIntegrityError for
// the FIRST violating block, or nil when the whole chain is intact.
func (l *AuditLedger) Verify() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.initialized {
		return ErrLedgerNotInitialized
	}

	for i := 1; i < len(l.chain); i++ {
		block := l.chain[i]

		recomputed, err := block.ComputeHash()
		if err != nil {
			return err
		}
		if block.Hash() != recomputed {
			return errs.NewChainIntegrityError(block.Index(), errs.CheckHashMismatch)
		}
		if block.PreviousHash() != l.chain[i-1].Hash() {
			return errs.NewChainIntegrityError(block.Index(), errs.CheckPreviousHashMismatch)
		}
	}
	return nil
}

// Blocks returns a snapshot of the full chain in order.
func (l *AuditLedger) Blocks() ([]ledger.Block, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.initialized {
		return nil, ErrLedgerNotInitialized
	}

	snapshot := make([]ledger.Block, len(l.chain))
	copy(snapshot, l.chain)
	return snapshot, nil
}

// BlocksForProduct returns, in chain order, the blocks whose payload's
// "product_id" equals the given identifier.
func (l *AuditLedger) BlocksForProduct(productID string) ([]ledger.Block, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.initialized {
		return nil, ErrLedgerNotInitialized
	}

	var matched []ledger.Block
	for _, block := range l.chain {
		if id, ok := block.Data()["product_id"].(string); ok && id == productID {
			matched = append(matched, block)
		}
	}
	return matched, nil
}

// Length returns the number of blocks in the chain, genesis included.
func (l *AuditLedger) Length() (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.initialized {
		return 0, ErrLedgerNotInitialized
	}
	return len(l.chain), nil
}

// epochSeconds converts a time to fractional epoch seconds, the timestamp
// format blocks hash over.
func epochSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
