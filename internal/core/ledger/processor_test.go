package ledger_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goldvault/goldvault/internal/apperrors"
	"github.com/goldvault/goldvault/internal/core/domain"
	"github.com/goldvault/goldvault/internal/core/ledger"
	"github.com/goldvault/goldvault/internal/core/moneymath"
)

func decimalPtr(s string) *decimal.Decimal {
	d := moneymath.MustFromString(s)
	return &d
}

func testBalance() domain.AccountBalance {
	return domain.ZeroBalance(uuid.NewString())
}

func TestProcess_GoldSale(t *testing.T) {
	balance := testBalance()
	intent := domain.TransactionIntent{
		Direction: domain.Sale,
		Channel:   domain.ChannelGold,
		Quantity:  moneymath.MustFromString("10"),
		Purity:    decimalPtr("0.916"),
	}

	result, err := ledger.Process(intent, balance, nil)
	require.NoError(t, err)

	// 10 g at 0.916 debits 9.16 g fine gold.
	assert.True(t, result.BalanceDelta.Gold.Equal(moneymath.MustFromString("-9.16")), "got %s", result.BalanceDelta.Gold)
	assert.True(t, result.BalanceDelta.Local.IsZero())
	assert.True(t, result.BalanceDelta.Foreign.IsZero())

	assert.Equal(t, balance.CustomerID, result.Record.CustomerID)
	assert.Equal(t, domain.Sale, result.Record.Direction)
	assert.True(t, result.Record.GoldEquivalent.Equal(moneymath.MustFromString("9.16")))
	assert.NotEmpty(t, result.Record.TransactionID)
	assert.Equal(t, "Gold sale", result.Record.Description)
	assert.Nil(t, result.InventoryDelta)
}

func TestProcess_LocalCollection(t *testing.T) {
	intent := domain.TransactionIntent{
		Direction: domain.Collection,
		Channel:   domain.ChannelLocal,
		Quantity:  moneymath.MustFromString("500"),
	}

	result, err := ledger.Process(intent, testBalance(), nil)
	require.NoError(t, err)

	assert.True(t, result.BalanceDelta.Local.Equal(moneymath.MustFromString("500")))
	assert.True(t, result.BalanceDelta.Gold.IsZero())
	assert.True(t, result.Record.GoldEquivalent.IsZero())
	assert.Equal(t, "Cash collection", result.Record.Description)
}

func TestProcess_ForeignSale(t *testing.T) {
	intent := domain.TransactionIntent{
		Direction: domain.Sale,
		Channel:   domain.ChannelForeign,
		Quantity:  moneymath.MustFromString("120.50"),
	}

	result, err := ledger.Process(intent, testBalance(), nil)
	require.NoError(t, err)

	assert.True(t, result.BalanceDelta.Foreign.Equal(moneymath.MustFromString("-120.50")))
	assert.True(t, result.BalanceDelta.Local.IsZero())
}

func TestProcess_CustomDescriptionKept(t *testing.T) {
	intent := domain.TransactionIntent{
		Direction:   domain.Collection,
		Channel:     domain.ChannelLocal,
		Quantity:    moneymath.MustFromString("100"),
		Description: "Monthly installment",
	}

	result, err := ledger.Process(intent, testBalance(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Monthly installment", result.Record.Description)
}

func TestProcess_PurityFromItem(t *testing.T) {
	item := &domain.InventoryItem{
		ItemID:    uuid.NewString(),
		MassGrams: moneymath.MustFromString("50"),
		Purity:    moneymath.MustFromString("0.75"),
	}
	intent := domain.TransactionIntent{
		Direction: domain.Sale,
		Channel:   domain.ChannelGold,
		Quantity:  moneymath.MustFromString("4"),
		ItemID:    item.ItemID,
	}

	result, err := ledger.Process(intent, testBalance(), item)
	require.NoError(t, err)

	assert.True(t, result.BalanceDelta.Gold.Equal(moneymath.MustFromString("-3")))
	require.NotNil(t, result.InventoryDelta)
	assert.True(t, result.InventoryDelta.Mass.Equal(moneymath.MustFromString("-4")))
}

func TestProcess_IntentPurityWinsOverItem(t *testing.T) {
	item := &domain.InventoryItem{
		ItemID:    uuid.NewString(),
		MassGrams: moneymath.MustFromString("50"),
		Purity:    moneymath.MustFromString("0.75"),
	}
	intent := domain.TransactionIntent{
		Direction: domain.Sale,
		Channel:   domain.ChannelGold,
		Quantity:  moneymath.MustFromString("10"),
		Purity:    decimalPtr("0.916"),
		ItemID:    item.ItemID,
	}

	result, err := ledger.Process(intent, testBalance(), item)
	require.NoError(t, err)
	assert.True(t, result.BalanceDelta.Gold.Equal(moneymath.MustFromString("-9.16")))
}

func TestProcess_CollectionRestocksItem(t *testing.T) {
	item := &domain.InventoryItem{
		ItemID:    uuid.NewString(),
		MassGrams: moneymath.MustFromString("2"),
		Purity:    moneymath.MustFromString("0.916"),
	}
	intent := domain.TransactionIntent{
		Direction: domain.Collection,
		Channel:   domain.ChannelGold,
		Quantity:  moneymath.MustFromString("5"),
		ItemID:    item.ItemID,
	}

	result, err := ledger.Process(intent, testBalance(), item)
	require.NoError(t, err)
	require.NotNil(t, result.InventoryDelta)
	assert.True(t, result.InventoryDelta.Mass.Equal(moneymath.MustFromString("5")))
	assert.True(t, result.BalanceDelta.Gold.Equal(moneymath.MustFromString("4.58")))
}

func TestProcess_StockBoundary(t *testing.T) {
	item := &domain.InventoryItem{
		ItemID:    uuid.NewString(),
		MassGrams: moneymath.MustFromString("10"),
		Purity:    moneymath.MustFromString("0.916"),
	}

	// Selling exactly the whole stock is allowed.
	intent := domain.TransactionIntent{
		Direction: domain.Sale,
		Channel:   domain.ChannelGold,
		Quantity:  moneymath.MustFromString("10"),
		ItemID:    item.ItemID,
	}
	result, err := ledger.Process(intent, testBalance(), item)
	require.NoError(t, err)
	assert.True(t, result.InventoryDelta.Mass.Equal(moneymath.MustFromString("-10")))

	// One hundredth of a gram more is not.
	intent.Quantity = moneymath.MustFromString("10.01")
	_, err = ledger.Process(intent, testBalance(), item)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientStock)
}

func TestProcess_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		intent  domain.TransactionIntent
		item    *domain.InventoryItem
		wantErr error
	}{
		{
			name: "unknown direction",
			intent: domain.TransactionIntent{
				Direction: domain.Direction("TRANSFER"),
				Channel:   domain.ChannelLocal,
				Quantity:  moneymath.MustFromString("10"),
			},
			wantErr: apperrors.ErrInvalidDirection,
		},
		{
			name: "vault direction not processable",
			intent: domain.TransactionIntent{
				Direction: domain.VaultIn,
				Channel:   domain.ChannelLocal,
				Quantity:  moneymath.MustFromString("10"),
			},
			wantErr: apperrors.ErrInvalidDirection,
		},
		{
			name: "zero quantity",
			intent: domain.TransactionIntent{
				Direction: domain.Sale,
				Channel:   domain.ChannelLocal,
				Quantity:  decimal.Zero,
			},
			wantErr: apperrors.ErrInvalidAmount,
		},
		{
			name: "negative quantity",
			intent: domain.TransactionIntent{
				Direction: domain.Collection,
				Channel:   domain.ChannelGold,
				Quantity:  moneymath.MustFromString("-5"),
				Purity:    decimalPtr("0.916"),
			},
			wantErr: apperrors.ErrInvalidAmount,
		},
		{
			name: "unknown channel",
			intent: domain.TransactionIntent{
				Direction: domain.Sale,
				Channel:   domain.BalanceChannel("CRYPTO"),
				Quantity:  moneymath.MustFromString("10"),
			},
			wantErr: apperrors.ErrValidation,
		},
		{
			name: "gold without purity",
			intent: domain.TransactionIntent{
				Direction: domain.Sale,
				Channel:   domain.ChannelGold,
				Quantity:  moneymath.MustFromString("10"),
			},
			wantErr: apperrors.ErrMissingPurity,
		},
		{
			name: "item reference without item",
			intent: domain.TransactionIntent{
				Direction: domain.Sale,
				Channel:   domain.ChannelLocal,
				Quantity:  moneymath.MustFromString("10"),
				ItemID:    uuid.NewString(),
			},
			wantErr: apperrors.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ledger.Process(tt.intent, testBalance(), tt.item)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestProcessBatch_MixedChannels(t *testing.T) {
	balance := testBalance()
	intents := []domain.TransactionIntent{
		{Direction: domain.Sale, Channel: domain.ChannelGold, Quantity: moneymath.MustFromString("10"), Purity: decimalPtr("0.916")},
		{Direction: domain.Collection, Channel: domain.ChannelLocal, Quantity: moneymath.MustFromString("500")},
		{Direction: domain.Collection, Channel: domain.ChannelForeign, Quantity: moneymath.MustFromString("100")},
	}

	result, err := ledger.ProcessBatch(intents, balance, nil)
	require.NoError(t, err)

	require.Len(t, result.Records, 3)
	assert.True(t, result.TotalBalanceDelta.Gold.Equal(moneymath.MustFromString("-9.16")))
	assert.True(t, result.TotalBalanceDelta.Local.Equal(moneymath.MustFromString("500")))
	assert.True(t, result.TotalBalanceDelta.Foreign.Equal(moneymath.MustFromString("100")))
}

func TestProcessBatch_DeltaOrderIndependent(t *testing.T) {
	balance := testBalance()
	a := domain.TransactionIntent{Direction: domain.Sale, Channel: domain.ChannelGold, Quantity: moneymath.MustFromString("3"), Purity: decimalPtr("0.916")}
	b := domain.TransactionIntent{Direction: domain.Collection, Channel: domain.ChannelGold, Quantity: moneymath.MustFromString("7"), Purity: decimalPtr("0.75")}

	forward, err := ledger.ProcessBatch([]domain.TransactionIntent{a, b}, balance, nil)
	require.NoError(t, err)
	backward, err := ledger.ProcessBatch([]domain.TransactionIntent{b, a}, balance, nil)
	require.NoError(t, err)

	assert.True(t, forward.TotalBalanceDelta.Gold.Equal(backward.TotalBalanceDelta.Gold))
}

func TestProcessBatch_RunningStockPerItem(t *testing.T) {
	itemID := uuid.NewString()
	catalog := map[string]domain.InventoryItem{
		itemID: {
			ItemID:    itemID,
			MassGrams: moneymath.MustFromString("10"),
			Purity:    moneymath.MustFromString("0.916"),
		},
	}

	// Two 6 g lines against a 10 g item: the first fits, the second must see
	// the projected 4 g remainder and fail.
	intents := []domain.TransactionIntent{
		{Direction: domain.Sale, Channel: domain.ChannelGold, Quantity: moneymath.MustFromString("6"), ItemID: itemID},
		{Direction: domain.Sale, Channel: domain.ChannelGold, Quantity: moneymath.MustFromString("6"), ItemID: itemID},
	}

	_, err := ledger.ProcessBatch(intents, testBalance(), catalog)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "line 2")
}

func TestProcessBatch_RestockThenSell(t *testing.T) {
	itemID := uuid.NewString()
	catalog := map[string]domain.InventoryItem{
		itemID: {
			ItemID:    itemID,
			MassGrams: moneymath.MustFromString("2"),
			Purity:    moneymath.MustFromString("0.916"),
		},
	}

	// A collection line restocks the item, so a later oversized sale fits.
	intents := []domain.TransactionIntent{
		{Direction: domain.Collection, Channel: domain.ChannelGold, Quantity: moneymath.MustFromString("8"), ItemID: itemID},
		{Direction: domain.Sale, Channel: domain.ChannelGold, Quantity: moneymath.MustFromString("9"), ItemID: itemID},
	}

	result, err := ledger.ProcessBatch(intents, testBalance(), catalog)
	require.NoError(t, err)
	require.Len(t, result.InventoryDeltas, 2)
	assert.True(t, result.InventoryDeltas[0].Mass.Equal(moneymath.MustFromString("8")))
	assert.True(t, result.InventoryDeltas[1].Mass.Equal(moneymath.MustFromString("-9")))
}

func TestProcessBatch_AllOrNothing(t *testing.T) {
	intents := []domain.TransactionIntent{
		{Direction: domain.Collection, Channel: domain.ChannelLocal, Quantity: moneymath.MustFromString("100")},
		{Direction: domain.Sale, Channel: domain.ChannelLocal, Quantity: decimal.Zero},
	}

	result, err := ledger.ProcessBatch(intents, testBalance(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)
	assert.Empty(t, result.Records)
}

func TestProcessBatch_UnknownItem(t *testing.T) {
	intents := []domain.TransactionIntent{
		{Direction: domain.Sale, Channel: domain.ChannelLocal, Quantity: moneymath.MustFromString("10"), ItemID: uuid.NewString()},
	}

	_, err := ledger.ProcessBatch(intents, testBalance(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestProcessBatch_Empty(t *testing.T) {
	result, err := ledger.ProcessBatch(nil, testBalance(), nil)
	require.NoError(t, err)
	assert.Empty(t, result.Records)
	assert.True(t, result.TotalBalanceDelta.Gold.IsZero())
}
