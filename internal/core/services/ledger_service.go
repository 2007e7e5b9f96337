package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/goldvault/goldvault/internal/apperrors"
	"github.com/goldvault/goldvault/internal/core/domain"
	"github.com/goldvault/goldvault/internal/core/ledger"
	portsrepo "github.com/goldvault/goldvault/internal/core/ports/repositories"
	portssvc "github.com/goldvault/goldvault/internal/core/ports/services"
	"github.com/goldvault/goldvault/internal/dto"
)

// ledgerService orchestrates the transaction processor: it loads the current
// balance and any linked inventory items, runs the pure processor, and hands
// the result to the repository for atomic persistence. The processor itself
// never touches storage.
type ledgerService struct {
	BaseService
	ledgerRepo    portsrepo.LedgerRepositoryFacade
	customerRepo  portsrepo.CustomerRepositoryFacade
	inventoryRepo portsrepo.InventoryRepositoryFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, customerRepo portsrepo.CustomerRepositoryFacade, inventoryRepo portsrepo.InventoryRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo:    ledgerRepo,
		customerRepo:  customerRepo,
		inventoryRepo: inventoryRepo,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) ProcessIntent(ctx context.Context, customerID string, req dto.TransactionIntentRequest) (*domain.ProcessResult, error) {
	balance, err := s.customerRepo.GetBalance(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load balance for customer %s: %w", customerID, err)
	}

	intent := req.ToIntent()

	var item *domain.InventoryItem
	if intent.ItemID != "" {
		item, err = s.inventoryRepo.FindItemByID(ctx, intent.ItemID)
		if err != nil {
			return nil, fmt.Errorf("failed to load linked item %s: %w", intent.ItemID, err)
		}
	}

	result, err := ledger.Process(intent, *balance, item)
	if err != nil {
		s.LogDebug(ctx, "Intent rejected",
			slog.String("customer_id", customerID),
			slog.String("direction", string(intent.Direction)),
			slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.ledgerRepo.ApplyProcessResult(ctx, result); err != nil {
		s.LogError(ctx, err, "Failed to apply process result", slog.String("customer_id", customerID))
		return nil, fmt.Errorf("failed to persist transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction processed",
		slog.String("customer_id", customerID),
		slog.String("transaction_id", result.Record.TransactionID),
		slog.String("channel", string(result.Record.Channel)))
	return &result, nil
}

func (s *ledgerService) ProcessCheckout(ctx context.Context, customerID string, req dto.CheckoutRequest) (*domain.BatchResult, error) {
	balance, err := s.customerRepo.GetBalance(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load balance for customer %s: %w", customerID, err)
	}

	intents := make([]domain.TransactionIntent, len(req.Intents))
	itemIDs := make([]string, 0, len(req.Intents))
	for i, r := range req.Intents {
		intents[i] = r.ToIntent()
		if intents[i].ItemID != "" {
			itemIDs = append(itemIDs, intents[i].ItemID)
		}
	}

	catalog := map[string]domain.InventoryItem{}
	if len(itemIDs) > 0 {
		catalog, err = s.inventoryRepo.FindItemsByIDs(ctx, itemIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to load linked items: %w", err)
		}
	}

	result, err := ledger.ProcessBatch(intents, *balance, catalog)
	if err != nil {
		s.LogDebug(ctx, "Checkout rejected",
			slog.String("customer_id", customerID),
			slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.ledgerRepo.ApplyBatchResult(ctx, result); err != nil {
		s.LogError(ctx, err, "Failed to apply checkout result", slog.String("customer_id", customerID))
		return nil, fmt.Errorf("failed to persist checkout: %w", err)
	}

	s.LogInfo(ctx, "Checkout processed",
		slog.String("customer_id", customerID),
		slog.Int("lines", len(result.Records)))
	return &result, nil
}

func (s *ledgerService) ListTransactions(ctx context.Context, customerID string, limit int, offset int) ([]domain.TransactionRecord, error) {
	return s.ledgerRepo.ListTransactionsByCustomer(ctx, customerID, limit, offset)
}

// RecordVaultMovement appends a customer-less cash-drawer record. Vault
// movements touch no customer balance; they exist purely in the audit trail.
func (s *ledgerService) RecordVaultMovement(ctx context.Context, req dto.VaultMovementRequest) (*domain.TransactionRecord, error) {
	direction := domain.Direction(req.Direction)
	if direction != domain.VaultIn && direction != domain.VaultOut {
		return nil, fmt.Errorf("%w: got %q", apperrors.ErrInvalidDirection, req.Direction)
	}
	if req.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: got %s", apperrors.ErrInvalidAmount, req.Quantity)
	}

	description := req.Description
	if description == "" {
		if direction == domain.VaultIn {
			description = "Vault deposit"
		} else {
			description = "Vault withdrawal"
		}
	}

	record := domain.TransactionRecord{
		TransactionID:  uuid.NewString(),
		Direction:      direction,
		Channel:        domain.BalanceChannel(req.Channel),
		Quantity:       req.Quantity,
		GoldEquivalent: decimal.Zero,
		Description:    description,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.ledgerRepo.AppendVaultRecord(ctx, record); err != nil {
		s.LogError(ctx, err, "Failed to append vault record")
		return nil, fmt.Errorf("failed to persist vault movement: %w", err)
	}
	return &record, nil
}

func (s *ledgerService) ListVaultTransactions(ctx context.Context, limit int, offset int) ([]domain.TransactionRecord, error) {
	return s.ledgerRepo.ListVaultTransactions(ctx, limit, offset)
}
