package models

import "github.com/shopspring/decimal"

// Customer represents a row in the customers table. The three balance columns
// live on the same row so a balance read is a single-row lookup and a balance
// update is a single-row write inside the ledger transaction.
type Customer struct {
	CustomerID     string          `db:"customer_id"`
	FullName       string          `db:"full_name"`
	Phone          string          `db:"phone"`
	Notes          string          `db:"notes"`
	BalanceGold    decimal.Decimal `db:"balance_gold"`
	BalanceLocal   decimal.Decimal `db:"balance_local"`
	BalanceForeign decimal.Decimal `db:"balance_foreign"`
	AuditFields
}
