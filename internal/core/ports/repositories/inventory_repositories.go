package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/goldvault/goldvault/internal/core/domain"
)

// InventoryReader defines read operations for inventory data
type InventoryReader interface {
	// FindItemByID retrieves a specific inventory item by its unique identifier.
	FindItemByID(ctx context.Context, itemID string) (*domain.InventoryItem, error)

	// FindItemByRFID retrieves an item by its RFID EPC code.
	FindItemByRFID(ctx context.Context, rfidCode string) (*domain.InventoryItem, error)

	// FindItemsByIDs retrieves multiple items keyed by ID.
	FindItemsByIDs(ctx context.Context, itemIDs []string) (map[string]domain.InventoryItem, error)

	// ListItems retrieves items, optionally restricted to active ones.
	ListItems(ctx context.Context, activeOnly bool, limit int, offset int) ([]domain.InventoryItem, error)
}

// InventoryWriter defines write operations for inventory data
type InventoryWriter interface {
	// SaveItem persists a new inventory item.
	SaveItem(ctx context.Context, item domain.InventoryItem) error

	// UpdateItem updates mutable item details. Purity must not change.
	UpdateItem(ctx context.Context, item domain.InventoryItem) error

	// CorrectStock sets an item's mass to the value established by a physical
	// stock count.
	CorrectStock(ctx context.Context, itemID string, mass decimal.Decimal, now time.Time) error

	// DeactivateItem marks an item as inactive.
	DeactivateItem(ctx context.Context, itemID string, now time.Time) error
}

// InventoryRepositoryFacade combines all inventory-related repository interfaces
type InventoryRepositoryFacade interface {
	InventoryReader
	InventoryWriter
}
