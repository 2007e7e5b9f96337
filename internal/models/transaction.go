package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a row in the transactions audit table. Rows are
// insert-only; customer_id is NULL for vault movements.
type Transaction struct {
	TransactionID  string          `db:"transaction_id"`
	CustomerID     *string         `db:"customer_id"`
	Direction      string          `db:"direction"`
	Channel        string          `db:"channel"`
	Quantity       decimal.Decimal `db:"quantity"`
	GoldEquivalent decimal.Decimal `db:"gold_equivalent"`
	Description    string          `db:"description"`
	ItemID         *string         `db:"item_id"`
	CreatedAt      time.Time       `db:"created_at"`
}
