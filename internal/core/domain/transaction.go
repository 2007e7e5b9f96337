package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction indicates which way value moves between the store and a customer.
type Direction string

const (
	// Sale hands goods or cash to the customer: the customer ends up owing
	// the store, so the affected balance channel is debited.
	Sale Direction = "SALE"
	// Collection takes goods or cash in from the customer and credits the
	// affected balance channel.
	Collection Direction = "COLLECTION"

	// VaultIn and VaultOut are customer-less cash-drawer movements. They only
	// ever appear on TransactionRecord, never on a TransactionIntent.
	VaultIn  Direction = "VAULT_IN"
	VaultOut Direction = "VAULT_OUT"
)

// BalanceChannel identifies one of the three independent balance tracks.
type BalanceChannel string

const (
	ChannelGold    BalanceChannel = "GOLD"
	ChannelLocal   BalanceChannel = "LOCAL"
	ChannelForeign BalanceChannel = "FOREIGN"
)

// TransactionIntent is an unvalidated, unpersisted description of a requested
// transaction. The ledger processor consumes it and produces a
// TransactionRecord plus the deltas to apply.
type TransactionIntent struct {
	Direction   Direction        `json:"direction"`
	Channel     BalanceChannel   `json:"channel"`
	Quantity    decimal.Decimal  `json:"quantity"` // grams for GOLD, amount otherwise
	Purity      *decimal.Decimal `json:"purity"`   // required for GOLD when no linked item supplies it
	ItemID      string           `json:"itemID"`   // optional linked inventory item
	Description string           `json:"description"`
}

// TransactionRecord is an immutable audit-trail entry. Records are created
// once per processed intent and never mutated or deleted. The balance channel
// is always stored explicitly, never inferred from the description.
type TransactionRecord struct {
	TransactionID  string          `json:"transactionID"` // Primary Key (UUID)
	CustomerID     string          `json:"customerID"`    // empty for vault movements
	Direction      Direction       `json:"direction"`
	Channel        BalanceChannel  `json:"channel"`
	Quantity       decimal.Decimal `json:"quantity"`
	GoldEquivalent decimal.Decimal `json:"goldEquivalent"` // zero for non-gold channels
	Description    string          `json:"description"`
	ItemID         string          `json:"itemID"` // optional linked inventory item
	CreatedAt      time.Time       `json:"createdAt"`
}

// BalanceDelta is the signed change a processed intent makes to each balance
// channel. Exactly one channel is non-zero for a single intent; a batch sums
// per channel.
type BalanceDelta struct {
	Gold    decimal.Decimal `json:"gold"`
	Local   decimal.Decimal `json:"local"`
	Foreign decimal.Decimal `json:"foreign"`
}

// ZeroDelta returns an all-zero balance delta.
func ZeroDelta() BalanceDelta {
	return BalanceDelta{Gold: decimal.Zero, Local: decimal.Zero, Foreign: decimal.Zero}
}

// Add returns the channel-wise sum of d and other.
func (d BalanceDelta) Add(other BalanceDelta) BalanceDelta {
	return BalanceDelta{
		Gold:    d.Gold.Add(other.Gold),
		Local:   d.Local.Add(other.Local),
		Foreign: d.Foreign.Add(other.Foreign),
	}
}

// InventoryDelta is the mass change a processed intent makes to a linked
// inventory item. Negative on a sale, positive on a collection.
type InventoryDelta struct {
	ItemID string          `json:"itemID"`
	Mass   decimal.Decimal `json:"mass"`
}

// ProcessResult is the full output of processing one intent. The caller must
// persist all three parts as a single atomic unit.
type ProcessResult struct {
	Record         TransactionRecord `json:"record"`
	BalanceDelta   BalanceDelta      `json:"balanceDelta"`
	InventoryDelta *InventoryDelta   `json:"inventoryDelta,omitempty"`
}

// BatchResult is the output of processing an ordered sequence of intents for
// one customer as a single checkout. TotalBalanceDelta is the channel-wise
// sum of all per-intent deltas.
type BatchResult struct {
	Records           []TransactionRecord `json:"records"`
	TotalBalanceDelta BalanceDelta        `json:"totalBalanceDelta"`
	InventoryDeltas   []InventoryDelta    `json:"inventoryDeltas"`
}
