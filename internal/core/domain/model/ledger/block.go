package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"provenance/internal/pkg/errs"
)

var (
	// ErrBlockIsNotConstructed is returned when a Block instance was not
	// created through the NewBlock or RestoreBlock factory methods.
	ErrBlockIsNotConstructed = errors.New("Block must be created via NewBlock constructor")
)

// GenesisPreviousHash is the previous-hash value of the genesis block.
const GenesisPreviousHash = "0"

// Event type tags carried in a block's payload under the "type" key.
const (
	EventTypeGenesis            = "genesis"
	EventTypeProductCreated     = "create_product"
	EventTypeStatusUpdated      = "status_update"
	EventTypeCustodyTransferred = "custody_transfer"
	EventTypeProductDeleted     = "delete_product"
	EventTypeUserDeleted        = "delete_user"
	EventTypeOrderCreated       = "order_created"
	EventTypeOrderStatusUpdated = "order_status_updated"
)

// Block is a single immutable entry of the audit ledger. Each block commits
// to its position, creation time, payload and predecessor through its hash,
// so altering any stored block is detectable by recomputation.
//
// Blocks are value objects: once constructed they are never mutated.
type Block struct {
	// index is the zero-based position of the block in the chain
	index int

	// timestamp is the block's creation time as fractional epoch seconds
	timestamp float64

	// data is the event payload recorded by the block
	data map[string]any

	// previousHash is the hash of the preceding block ("0" for genesis)
	previousHash string

	// hash is the block's own hash over index, timestamp, data and
	// previousHash
	hash string

	// isConstructed ensures the block was created via a factory method
	isConstructed bool
}

// NewBlock creates a block at the given position, linking to the predecessor
// through previousHash, and computes its hash. The payload must be
// JSON-serializable.
func NewBlock(index int, timestamp float64, data map[string]any, previousHash string) (Block, error) {
	if index < 0 {
		return Block{}, errs.NewValueIsInvalidErrorWithCause("index",
			fmt.Errorf("index must not be negative, got %d", index))
	}
	if previousHash == "" {
		return Block{}, errs.NewValueIsRequiredError("previousHash")
	}
	if data == nil {
		return Block{}, errs.NewValueIsRequiredError("data")
	}

	hash, err := computeHash(index, timestamp, data, previousHash)
	if err != nil {
		return Block{}, err
	}

	return Block{
		index:         index,
		timestamp:     timestamp,
		data:          copyPayload(data),
		previousHash:  previousHash,
		hash:          hash,
		isConstructed: true,
	}, nil
}

// NewGenesisBlock creates the fixed first block of a chain at index 0 with a
// {"type": "genesis"} payload and the sentinel previous hash.
func NewGenesisBlock(timestamp float64) (Block, error) {
	return NewBlock(0, timestamp, map[string]any{"type": EventTypeGenesis}, GenesisPreviousHash)
}

// RestoreBlock reconstructs a Block from persistence. The stored hash is
// taken as-is and NOT recomputed: verification is a separate, explicit
// operation, so tampered rows restore fine and fail Verify later.
func RestoreBlock(index int, timestamp float64, data map[string]any, previousHash, hash string) (Block, error) {
	if index < 0 {
		return Block{}, errs.NewValueIsInvalidErrorWithCause("index",
			fmt.Errorf("index must not be negative, got %d", index))
	}
	if hash == "" {
		return Block{}, errs.NewValueIsRequiredError("hash")
	}
	if previousHash == "" {
		return Block{}, errs.NewValueIsRequiredError("previousHash")
	}

	return Block{
		index:         index,
		timestamp:     timestamp,
		data:          copyPayload(data),
		previousHash:  previousHash,
		hash:          hash,
		isConstructed: true,
	}, nil
}

// Validate ensures the Block instance was properly constructed.
func (b Block) Validate() error {
	if !b.isConstructed {
		return ErrBlockIsNotConstructed
	}
	return nil
}

// Index returns the block's zero-based position in the chain.
func (b Block) Index() int {
	return b.index
}

// Timestamp returns the block's creation time as fractional epoch seconds.
func (b Block) Timestamp() float64 {
	return b.timestamp
}

// Data returns a copy of the block's payload. The copy keeps callers from
// mutating the payload the hash commits to.
func (b Block) Data() map[string]any {
	return copyPayload(b.data)
}

// EventType returns the payload's "type" tag, or the empty string when the
// payload carries none.
func (b Block) EventType() string {
	if t, ok := b.data["type"].(string); ok {
		return t
	}
	return ""
}

// PreviousHash returns the hash of the preceding block.
func (b Block) PreviousHash() string {
	return b.previousHash
}

// Hash returns the block's own hash.
func (b Block) Hash() string {
	return b.hash
}

// ComputeHash recomputes the block's hash from its fields. A mismatch with
// Hash() means the block's content was altered after creation.
func (b Block) ComputeHash() (string, error) {
	return computeHash(b.index, b.timestamp, b.data, b.previousHash)
}

// DataJSON returns the payload serialized to canonical JSON, suitable for
// persistence.
func (b Block) DataJSON() ([]byte, error) {
	return json.Marshal(b.data)
}

// computeHash hashes the concatenation of the block's index, timestamp,
// canonical-JSON payload and previous hash with SHA-256.
//
// encoding/json marshals map keys in sorted order, which makes the payload
// encoding canonical: the same payload always hashes to the same value.
func computeHash(index int, timestamp float64, data map[string]any, previousHash string) (string, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause("data", err)
	}

	var input []byte
	input = strconv.AppendInt(input, int64(index), 10)
	input = strconv.AppendFloat(input, timestamp, 'f', -1, 64)
	input = append(input, payload...)
	input = append(input, previousHash...)

	sum := sha256.Sum256(input)
	return hex.EncodeToString(sum[:]), nil
}

func copyPayload(data map[string]any) map[string]any {
	if data == nil {
		return nil
	}
	c := make(map[string]any, len(data))
	for k, v := range data {
		c[k] = v
	}
	return c
}
