package storage

import (
	"context"

	"github.com/dshills/orderbot/pkg/types"
)

// Storage defines the interface for the catalog and the order ledger
type Storage interface {
	Catalog
	Ledger

	// Catalog seeding
	CountCategories(ctx context.Context) (int, error)
	CreateCategory(ctx context.Context, category *types.Category) error
	CreateProduct(ctx context.Context, product *types.Product) error

	// Database operations
	Close() error
	BeginTx(ctx context.Context) (Tx, error)
}

// Catalog is the read-only view of categories and products used by the
// conversation flow.
type Catalog interface {
	ListCategories(ctx context.Context) ([]types.Category, error)
	GetCategory(ctx context.Context, categoryID int64) (*types.Category, error)
	ListProducts(ctx context.Context, categoryID int64) ([]types.Product, error)
	GetProduct(ctx context.Context, productID int64) (*types.Product, error)
}

// Ledger is the append-only order log. Orders are never updated or deleted
// through this interface.
type Ledger interface {
	CreateOrder(ctx context.Context, order *types.Order) error
	ListOrders(ctx context.Context) ([]types.Order, error)
	ListRecentOrders(ctx context.Context, limit int) ([]types.Order, error)
	CountOrders(ctx context.Context) (int, error)
}

// Tx represents a database transaction
type Tx interface {
	Commit() error
	Rollback() error
	Storage // Embed Storage interface for transaction operations
}
