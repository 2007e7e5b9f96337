package models

import "github.com/shopspring/decimal"

// InventoryItem represents a row in the inventory_items table.
type InventoryItem struct {
	ItemID    string          `db:"item_id"`
	Name      string          `db:"name"`
	Category  string          `db:"category"`
	Barcode   string          `db:"barcode"`
	RFIDCode  string          `db:"rfid_code"`
	MassGrams decimal.Decimal `db:"mass_grams"`
	Purity    decimal.Decimal `db:"purity"`
	IsActive  bool            `db:"is_active"`
	Location  string          `db:"location"`
	AuditFields
}
