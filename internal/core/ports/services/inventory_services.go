package services

import (
	"context"

	"github.com/goldvault/goldvault/internal/core/domain"
	"github.com/goldvault/goldvault/internal/dto"
)

// InventoryReaderSvc defines read operations for inventory data
type InventoryReaderSvc interface {
	// GetItemByID retrieves a specific inventory item.
	GetItemByID(ctx context.Context, itemID string) (*domain.InventoryItem, error)

	// GetItemByRFID resolves an RFID EPC code to an inventory item.
	GetItemByRFID(ctx context.Context, rfidCode string) (*domain.InventoryItem, error)

	// ListItems retrieves a paginated list of items.
	ListItems(ctx context.Context, activeOnly bool, limit int, offset int) ([]domain.InventoryItem, error)
}

// InventoryWriterSvc defines write operations for inventory data
type InventoryWriterSvc interface {
	// CreateItem persists a new inventory item.
	CreateItem(ctx context.Context, req dto.CreateInventoryItemRequest) (*domain.InventoryItem, error)

	// UpdateItem updates mutable item details; purity is immutable.
	UpdateItem(ctx context.Context, itemID string, req dto.UpdateInventoryItemRequest) (*domain.InventoryItem, error)

	// CorrectStock re-sets an item's mass from a physical stock count.
	CorrectStock(ctx context.Context, itemID string, req dto.StockCorrectionRequest) (*domain.InventoryItem, error)

	// DeactivateItem marks an item as inactive.
	DeactivateItem(ctx context.Context, itemID string) error
}

// InventorySvcFacade combines all inventory service interfaces
type InventorySvcFacade interface {
	InventoryReaderSvc
	InventoryWriterSvc
}
