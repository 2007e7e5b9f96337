package services

import (
	"context"

	"github.com/goldvault/goldvault/internal/core/domain"
	"github.com/goldvault/goldvault/internal/dto"
)

// LedgerProcessorSvc processes transaction intents against customer balances
// and persists the result atomically.
type LedgerProcessorSvc interface {
	// ProcessIntent validates and applies a single transaction intent.
	ProcessIntent(ctx context.Context, customerID string, req dto.TransactionIntentRequest) (*domain.ProcessResult, error)

	// ProcessCheckout validates and applies an ordered batch of intents for
	// one customer as a single checkout.
	ProcessCheckout(ctx context.Context, customerID string, req dto.CheckoutRequest) (*domain.BatchResult, error)
}

// VaultSvc records customer-less cash-drawer movements in the audit trail.
type VaultSvc interface {
	// RecordVaultMovement appends a vault deposit or withdrawal record.
	RecordVaultMovement(ctx context.Context, req dto.VaultMovementRequest) (*domain.TransactionRecord, error)

	// ListVaultTransactions retrieves vault movements, newest first.
	ListVaultTransactions(ctx context.Context, limit int, offset int) ([]domain.TransactionRecord, error)
}

// LedgerReaderSvc defines read access to the transaction audit trail.
type LedgerReaderSvc interface {
	// ListTransactions retrieves a customer's records, newest first.
	ListTransactions(ctx context.Context, customerID string, limit int, offset int) ([]domain.TransactionRecord, error)
}

// LedgerSvcFacade combines all ledger service interfaces
type LedgerSvcFacade interface {
	LedgerProcessorSvc
	LedgerReaderSvc
	VaultSvc
}
