package mapping

import (
	"github.com/goldvault/goldvault/internal/core/domain"
	"github.com/goldvault/goldvault/internal/models"
)

// ToModelTransaction converts a domain record to a transaction row. Empty
// customer and item references become NULLs.
func ToModelTransaction(d domain.TransactionRecord) models.Transaction {
	m := models.Transaction{
		TransactionID:  d.TransactionID,
		Direction:      string(d.Direction),
		Channel:        string(d.Channel),
		Quantity:       d.Quantity,
		GoldEquivalent: d.GoldEquivalent,
		Description:    d.Description,
		CreatedAt:      d.CreatedAt,
	}
	if d.CustomerID != "" {
		customerID := d.CustomerID
		m.CustomerID = &customerID
	}
	if d.ItemID != "" {
		itemID := d.ItemID
		m.ItemID = &itemID
	}
	return m
}

// ToDomainTransaction converts a transaction row to the domain record.
func ToDomainTransaction(m models.Transaction) domain.TransactionRecord {
	d := domain.TransactionRecord{
		TransactionID:  m.TransactionID,
		Direction:      domain.Direction(m.Direction),
		Channel:        domain.BalanceChannel(m.Channel),
		Quantity:       m.Quantity,
		GoldEquivalent: m.GoldEquivalent,
		Description:    m.Description,
		CreatedAt:      m.CreatedAt,
	}
	if m.CustomerID != nil {
		d.CustomerID = *m.CustomerID
	}
	if m.ItemID != nil {
		d.ItemID = *m.ItemID
	}
	return d
}

// ToDomainTransactionSlice converts transaction rows to domain records.
func ToDomainTransactionSlice(ms []models.Transaction) []domain.TransactionRecord {
	ds := make([]domain.TransactionRecord, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
