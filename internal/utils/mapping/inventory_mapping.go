package mapping

import (
	"github.com/goldvault/goldvault/internal/core/domain"
	"github.com/goldvault/goldvault/internal/models"
)

// ToModelInventoryItem converts a domain item to an inventory row.
func ToModelInventoryItem(d domain.InventoryItem) models.InventoryItem {
	return models.InventoryItem{
		ItemID:      d.ItemID,
		Name:        d.Name,
		Category:    d.Category,
		Barcode:     d.Barcode,
		RFIDCode:    d.RFIDCode,
		MassGrams:   d.MassGrams,
		Purity:      d.Purity,
		IsActive:    d.IsActive,
		Location:    d.Location,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInventoryItem converts an inventory row to the domain item.
func ToDomainInventoryItem(m models.InventoryItem) domain.InventoryItem {
	return domain.InventoryItem{
		ItemID:      m.ItemID,
		Name:        m.Name,
		Category:    m.Category,
		Barcode:     m.Barcode,
		RFIDCode:    m.RFIDCode,
		MassGrams:   m.MassGrams,
		Purity:      m.Purity,
		IsActive:    m.IsActive,
		Location:    m.Location,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainInventoryItemSlice converts inventory rows to domain items.
func ToDomainInventoryItemSlice(ms []models.InventoryItem) []domain.InventoryItem {
	ds := make([]domain.InventoryItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInventoryItem(m)
	}
	return ds
}
