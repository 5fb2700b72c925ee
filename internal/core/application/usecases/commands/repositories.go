// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"provenance/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ProductRepoFactory provides access to the product repository within a transaction.
	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// HistoryRepoFactory provides access to the history repository within a transaction.
	HistoryRepoFactory interface {
		HistoryRepository() ports.HistoryRepository
	}

	// BlockRepoFactory provides access to the block repository within a transaction.
	BlockRepoFactory interface {
		BlockRepository() ports.BlockRepository
	}

	// IdentityRepoFactory provides access to the identity repository within a transaction.
	IdentityRepoFactory interface {
		IdentityRepository() ports.IdentityRepository
	}

	// ProductUoW manages transactions for product lifecycle operations.
	// Every product mutation also writes a history event and an audit block.
	ProductUoW interface {
		TxManager
		ProductRepoFactory
		HistoryRepoFactory
		BlockRepoFactory
	}

	// ProductUoWFactory creates new product unit of work instances.
	ProductUoWFactory interface {
		Create() ProductUoW
	}

	// CustodyUoW manages transactions for custody transitions, which may
	// additionally resolve the receiving custodian through the identity
	// repository.
	CustodyUoW interface {
		TxManager
		ProductRepoFactory
		HistoryRepoFactory
		BlockRepoFactory
		IdentityRepoFactory
	}

	// CustodyUoWFactory creates new custody unit of work instances.
	CustodyUoWFactory interface {
		Create() CustodyUoW
	}

	// OrderUoW manages transactions for order operations: orders reference
	// products, resolve recipients through the identity repository and write
	// audit blocks.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		ProductRepoFactory
		IdentityRepoFactory
		BlockRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// DirectoryUoW manages transactions for identity removal, which cascades
	// over the identity's products and their histories.
	DirectoryUoW interface {
		TxManager
		IdentityRepoFactory
		ProductRepoFactory
		HistoryRepoFactory
		BlockRepoFactory
	}

	// DirectoryUoWFactory creates new directory unit of work instances.
	DirectoryUoWFactory interface {
		Create() DirectoryUoW
	}
)
