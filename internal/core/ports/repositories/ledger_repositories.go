package repositories

import (
	"context"

	"github.com/goldvault/goldvault/internal/core/domain"
)

// LedgerWriter persists processor output. Each Apply method must write the
// transaction record(s), the balance delta, and any inventory delta inside a
// single database transaction: all visible or none.
type LedgerWriter interface {
	// ApplyProcessResult atomically persists one processed intent.
	ApplyProcessResult(ctx context.Context, result domain.ProcessResult) error

	// ApplyBatchResult atomically persists a whole checkout batch.
	ApplyBatchResult(ctx context.Context, result domain.BatchResult) error

	// AppendVaultRecord persists a customer-less vault movement record.
	AppendVaultRecord(ctx context.Context, record domain.TransactionRecord) error
}

// LedgerReader defines read operations over the transaction audit trail.
type LedgerReader interface {
	// ListTransactionsByCustomer retrieves a customer's records, newest first.
	ListTransactionsByCustomer(ctx context.Context, customerID string, limit int, offset int) ([]domain.TransactionRecord, error)

	// ListVaultTransactions retrieves customer-less vault movements, newest first.
	ListVaultTransactions(ctx context.Context, limit int, offset int) ([]domain.TransactionRecord, error)
}

// LedgerRepositoryFacade combines ledger read and write interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
