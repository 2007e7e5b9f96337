// Package ledger implements the transaction processor: given a transaction
// intent and the customer's current balance, it computes the balance delta,
// the optional inventory delta, and the immutable audit record. It is pure
// computation with no shared state; callers persist the output atomically.
package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/goldvault/goldvault/internal/apperrors"
	"github.com/goldvault/goldvault/internal/core/domain"
	"github.com/goldvault/goldvault/internal/core/moneymath"
)

// one is the signed multiplier magnitude; a sale debits, a collection credits.
var one = decimal.NewFromInt(1)

// multiplier maps a direction onto the sign applied uniformly across all
// three balance channels: SALE -> -1, COLLECTION -> +1.
func multiplier(d domain.Direction) (decimal.Decimal, error) {
	switch d {
	case domain.Sale:
		return one.Neg(), nil
	case domain.Collection:
		return one, nil
	default:
		return decimal.Zero, fmt.Errorf("%w: got %q", apperrors.ErrInvalidDirection, d)
	}
}

// resolvePurity picks the purity for a gold intent, preferring the intent's
// explicit value over the linked item's.
func resolvePurity(intent domain.TransactionIntent, item *domain.InventoryItem) (decimal.Decimal, error) {
	if intent.Purity != nil {
		return *intent.Purity, nil
	}
	if item != nil && !item.Purity.IsZero() {
		return item.Purity, nil
	}
	return decimal.Zero, apperrors.ErrMissingPurity
}

// autoDescription fills an empty description from the direction and channel,
// matching what the store staff expect to read on a statement line.
func autoDescription(intent domain.TransactionIntent) string {
	if intent.Description != "" {
		return intent.Description
	}
	switch intent.Channel {
	case domain.ChannelGold:
		if intent.Direction == domain.Sale {
			return "Gold sale"
		}
		return "Gold collection"
	case domain.ChannelForeign:
		if intent.Direction == domain.Sale {
			return "Foreign currency sale"
		}
		return "Foreign currency purchase"
	default:
		if intent.Direction == domain.Sale {
			return "Cash payment"
		}
		return "Cash collection"
	}
}

// Process validates an intent against the current balance and optional linked
// inventory item, and computes the deltas and the transaction record.
//
// A rejected intent produces no output at all; the caller applies the whole
// result as one atomic unit or nothing.
func Process(intent domain.TransactionIntent, balance domain.AccountBalance, item *domain.InventoryItem) (domain.ProcessResult, error) {
	return process(intent, balance, item, time.Now().UTC())
}

func process(intent domain.TransactionIntent, balance domain.AccountBalance, item *domain.InventoryItem, now time.Time) (domain.ProcessResult, error) {
	mult, err := multiplier(intent.Direction)
	if err != nil {
		return domain.ProcessResult{}, err
	}

	if intent.Quantity.LessThanOrEqual(decimal.Zero) {
		return domain.ProcessResult{}, fmt.Errorf("%w: got %s", apperrors.ErrInvalidAmount, intent.Quantity)
	}

	switch intent.Channel {
	case domain.ChannelGold, domain.ChannelLocal, domain.ChannelForeign:
	default:
		return domain.ProcessResult{}, fmt.Errorf("%w: unknown balance channel %q", apperrors.ErrValidation, intent.Channel)
	}

	delta := domain.ZeroDelta()
	goldEq := decimal.Zero

	if intent.Channel == domain.ChannelGold {
		purity, err := resolvePurity(intent, item)
		if err != nil {
			return domain.ProcessResult{}, err
		}
		goldEq = moneymath.GoldEquivalent(intent.Quantity, purity)
		delta.Gold = goldEq.Mul(mult)
	} else {
		amount := intent.Quantity.Mul(mult)
		if intent.Channel == domain.ChannelLocal {
			delta.Local = amount
		} else {
			delta.Foreign = amount
		}
	}

	result := domain.ProcessResult{
		Record: domain.TransactionRecord{
			TransactionID:  uuid.NewString(),
			CustomerID:     balance.CustomerID,
			Direction:      intent.Direction,
			Channel:        intent.Channel,
			Quantity:       intent.Quantity,
			GoldEquivalent: goldEq,
			Description:    autoDescription(intent),
			ItemID:         intent.ItemID,
			CreatedAt:      now,
		},
		BalanceDelta: delta,
	}

	if intent.ItemID != "" {
		if item == nil {
			return domain.ProcessResult{}, fmt.Errorf("%w: inventory item %s", apperrors.ErrNotFound, intent.ItemID)
		}
		massDelta := intent.Quantity.Mul(mult) // negative on sale, positive on collection
		projected := item.MassGrams.Add(massDelta)
		if projected.IsNegative() {
			return domain.ProcessResult{}, fmt.Errorf("%w: item %s has %s g, sale needs %s g",
				apperrors.ErrInsufficientStock, item.ItemID, item.MassGrams, intent.Quantity)
		}
		result.InventoryDelta = &domain.InventoryDelta{ItemID: item.ItemID, Mass: massDelta}
	}

	return result, nil
}

// ProcessBatch processes an ordered sequence of intents for one customer as a
// single checkout. Each intent carries its own balance channel; the summed
// delta is order-independent, but stock checks run against a running
// projected mass per item so two lines referencing the same item accumulate.
//
// The batch is all-or-nothing: the first failing intent rejects the whole
// batch with no partial output.
func ProcessBatch(intents []domain.TransactionIntent, balance domain.AccountBalance, catalog map[string]domain.InventoryItem) (domain.BatchResult, error) {
	now := time.Now().UTC()

	result := domain.BatchResult{
		Records:           make([]domain.TransactionRecord, 0, len(intents)),
		TotalBalanceDelta: domain.ZeroDelta(),
	}

	// Projected masses, so sequential lines against one item see each
	// other's effect rather than the original snapshot.
	projected := make(map[string]decimal.Decimal, len(catalog))

	for i, intent := range intents {
		var item *domain.InventoryItem
		if intent.ItemID != "" {
			cat, ok := catalog[intent.ItemID]
			if !ok {
				return domain.BatchResult{}, fmt.Errorf("%w: inventory item %s (line %d)", apperrors.ErrNotFound, intent.ItemID, i+1)
			}
			if mass, ok := projected[intent.ItemID]; ok {
				cat.MassGrams = mass
			}
			item = &cat
		}

		single, err := process(intent, balance, item, now)
		if err != nil {
			return domain.BatchResult{}, fmt.Errorf("line %d: %w", i+1, err)
		}

		result.Records = append(result.Records, single.Record)
		result.TotalBalanceDelta = result.TotalBalanceDelta.Add(single.BalanceDelta)
		if single.InventoryDelta != nil {
			result.InventoryDeltas = append(result.InventoryDeltas, *single.InventoryDelta)
			projected[single.InventoryDelta.ItemID] = item.MassGrams.Add(single.InventoryDelta.Mass)
		}
	}

	return result, nil
}
