package domain

import "github.com/shopspring/decimal"

// InventoryItem is a physical stocked item. Purity is set at creation and is
// immutable for the life of the item. Mass changes through stock-count
// corrections and through transaction processing when a sale or collection
// references the item.
type InventoryItem struct {
	ItemID    string          `json:"itemID"` // Primary Key (UUID)
	Name      string          `json:"name"`
	Category  string          `json:"category"` // e.g. bracelet, coin, necklace
	Barcode   string          `json:"barcode"`  // Nullable visual barcode (EAN)
	RFIDCode  string          `json:"rfidCode"` // Nullable RFID EPC code
	MassGrams decimal.Decimal `json:"massGrams"`
	Purity    decimal.Decimal `json:"purity"` // fraction, e.g. 0.916 for 22k
	IsActive  bool            `json:"isActive"`
	Location  string          `json:"location"` // e.g. SHOWCASE, SAFE, DEPOT
	AuditFields
}
