package mapping

import (
	"github.com/goldvault/goldvault/internal/core/domain"
	"github.com/goldvault/goldvault/internal/models"
)

// ToModelCustomer combines a domain customer and its balance into one row.
func ToModelCustomer(c domain.Customer, b domain.AccountBalance) models.Customer {
	return models.Customer{
		CustomerID:     c.CustomerID,
		FullName:       c.FullName,
		Phone:          c.Phone,
		Notes:          c.Notes,
		BalanceGold:    b.Gold,
		BalanceLocal:   b.Local,
		BalanceForeign: b.Foreign,
		AuditFields:    ToModelAuditFields(c.AuditFields),
	}
}

// ToDomainCustomer converts a customer row to the domain customer.
func ToDomainCustomer(m models.Customer) domain.Customer {
	return domain.Customer{
		CustomerID:  m.CustomerID,
		FullName:    m.FullName,
		Phone:       m.Phone,
		Notes:       m.Notes,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBalance extracts the three-channel balance from a customer row.
func ToDomainBalance(m models.Customer) domain.AccountBalance {
	return domain.AccountBalance{
		CustomerID:  m.CustomerID,
		Gold:        m.BalanceGold,
		Local:       m.BalanceLocal,
		Foreign:     m.BalanceForeign,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCustomerSlice converts customer rows to domain customers.
func ToDomainCustomerSlice(ms []models.Customer) []domain.Customer {
	ds := make([]domain.Customer, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCustomer(m)
	}
	return ds
}
