package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/goldvault/goldvault/internal/core/domain"
)

// CreateInventoryItemRequest defines the data needed to create an item.
// Purity is fixed here for the life of the item.
type CreateInventoryItemRequest struct {
	Name      string          `json:"name" binding:"required"`
	Category  string          `json:"category" binding:"required"`
	Barcode   string          `json:"barcode"`
	RFIDCode  string          `json:"rfidCode"`
	MassGrams decimal.Decimal `json:"massGrams" binding:"required"`
	Purity    decimal.Decimal `json:"purity" binding:"required"`
	Location  string          `json:"location"`
}

// UpdateInventoryItemRequest defines mutable item fields. Purity is absent on
// purpose: it cannot change after creation.
type UpdateInventoryItemRequest struct {
	Name     *string `json:"name"`
	Category *string `json:"category"`
	Barcode  *string `json:"barcode"`
	RFIDCode *string `json:"rfidCode"`
	Location *string `json:"location"`
}

// StockCorrectionRequest re-sets an item's mass from a physical count.
type StockCorrectionRequest struct {
	MassGrams decimal.Decimal `json:"massGrams" binding:"required"`
	Note      string          `json:"note"`
}

// InventoryItemResponse defines the data returned for an inventory item.
type InventoryItemResponse struct {
	ItemID    string          `json:"itemID"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Barcode   string          `json:"barcode"`
	RFIDCode  string          `json:"rfidCode"`
	MassGrams decimal.Decimal `json:"massGrams"`
	Purity    decimal.Decimal `json:"purity"`
	IsActive  bool            `json:"isActive"`
	Location  string          `json:"location"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ListItemsParams defines query parameters for listing inventory items.
type ListItemsParams struct {
	ActiveOnly bool `form:"activeOnly,default=false"`
	Limit      int  `form:"limit,default=20"`
	Offset     int  `form:"offset,default=0"`
}

// ListItemsResponse wraps the list of inventory items.
type ListItemsResponse struct {
	Items []InventoryItemResponse `json:"items"`
}

// ToInventoryItemResponse converts a domain.InventoryItem.
func ToInventoryItemResponse(item *domain.InventoryItem) InventoryItemResponse {
	return InventoryItemResponse{
		ItemID:    item.ItemID,
		Name:      item.Name,
		Category:  item.Category,
		Barcode:   item.Barcode,
		RFIDCode:  item.RFIDCode,
		MassGrams: item.MassGrams,
		Purity:    item.Purity,
		IsActive:  item.IsActive,
		Location:  item.Location,
		CreatedAt: item.CreatedAt,
	}
}

// ToInventoryItemResponses converts a slice of domain.InventoryItem.
func ToInventoryItemResponses(items []domain.InventoryItem) []InventoryItemResponse {
	responses := make([]InventoryItemResponse, len(items))
	for i, item := range items {
		responses[i] = ToInventoryItemResponse(&item)
	}
	return responses
}
