package domain

import "github.com/shopspring/decimal"

// Customer represents a ledger customer of the store.
type Customer struct {
	CustomerID string `json:"customerID"` // Primary Key (UUID)
	FullName   string `json:"fullName"`
	Phone      string `json:"phone"`
	Notes      string `json:"notes"` // Nullable
	AuditFields
}

// AccountBalance is a customer's three-channel balance sheet. Each channel is
// an independent signed quantity: negative means the business owes the
// customer, positive means the customer owes the business. Created as all
// zeroes alongside the customer; mutated only by applying a computed
// BalanceDelta.
type AccountBalance struct {
	CustomerID string          `json:"customerID"`
	Gold       decimal.Decimal `json:"gold"`    // Fine-gold grams (purity-adjusted)
	Local      decimal.Decimal `json:"local"`   // Local currency
	Foreign    decimal.Decimal `json:"foreign"` // Foreign currency
	AuditFields
}

// ZeroBalance returns a fresh all-zero balance for a new customer.
func ZeroBalance(customerID string) AccountBalance {
	return AccountBalance{
		CustomerID: customerID,
		Gold:       decimal.Zero,
		Local:      decimal.Zero,
		Foreign:    decimal.Zero,
	}
}

// Apply returns the balance produced by adding delta to b. The receiver is
// not modified.
func (b AccountBalance) Apply(delta BalanceDelta) AccountBalance {
	b.Gold = b.Gold.Add(delta.Gold)
	b.Local = b.Local.Add(delta.Local)
	b.Foreign = b.Foreign.Add(delta.Foreign)
	return b
}
