package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/goldvault/goldvault/internal/apperrors"
	"github.com/goldvault/goldvault/internal/core/domain"
	portsrepo "github.com/goldvault/goldvault/internal/core/ports/repositories"
	"github.com/goldvault/goldvault/internal/models"
	"github.com/goldvault/goldvault/internal/utils/mapping"
)

// PgxLedgerRepository persists processor output. The record insert, the
// balance update, and the inventory update always travel in one database
// transaction: either the whole result becomes visible or none of it does.
type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryFacade
var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

const insertTransactionQuery = `
	INSERT INTO transactions (transaction_id, customer_id, direction, channel, quantity, gold_equivalent, description, item_id, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
`

// ApplyProcessResult atomically persists one processed intent.
func (r *PgxLedgerRepository) ApplyProcessResult(ctx context.Context, result domain.ProcessResult) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertRecord(ctx, tx, result.Record); err != nil {
		return err
	}
	if err := applyBalanceDelta(ctx, tx, result.Record.CustomerID, result.BalanceDelta); err != nil {
		return err
	}
	if result.InventoryDelta != nil {
		if err := applyInventoryDelta(ctx, tx, *result.InventoryDelta); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// ApplyBatchResult atomically persists a whole checkout batch.
func (r *PgxLedgerRepository) ApplyBatchResult(ctx context.Context, result domain.BatchResult) error {
	if len(result.Records) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	for _, record := range result.Records {
		if err := insertRecord(ctx, tx, record); err != nil {
			return err
		}
	}
	// All records in a batch share one customer; the summed delta is applied once.
	if err := applyBalanceDelta(ctx, tx, result.Records[0].CustomerID, result.TotalBalanceDelta); err != nil {
		return err
	}
	for _, delta := range result.InventoryDeltas {
		if err := applyInventoryDelta(ctx, tx, delta); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// AppendVaultRecord persists a customer-less vault movement. No balance or
// inventory is touched, so no surrounding transaction is needed.
func (r *PgxLedgerRepository) AppendVaultRecord(ctx context.Context, record domain.TransactionRecord) error {
	m := mapping.ToModelTransaction(record)
	_, err := r.Pool.Exec(ctx, insertTransactionQuery,
		m.TransactionID,
		m.CustomerID,
		m.Direction,
		m.Channel,
		m.Quantity,
		m.GoldEquivalent,
		m.Description,
		m.ItemID,
		m.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert vault record "+m.TransactionID, err)
	}
	return nil
}

func insertRecord(ctx context.Context, tx pgx.Tx, record domain.TransactionRecord) error {
	m := mapping.ToModelTransaction(record)
	_, err := tx.Exec(ctx, insertTransactionQuery,
		m.TransactionID,
		m.CustomerID,
		m.Direction,
		m.Channel,
		m.Quantity,
		m.GoldEquivalent,
		m.Description,
		m.ItemID,
		m.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert transaction "+m.TransactionID, err)
	}
	return nil
}

// applyBalanceDelta locks the customer row and adds the delta to all three
// channels in place.
func applyBalanceDelta(ctx context.Context, tx pgx.Tx, customerID string, delta domain.BalanceDelta) error {
	var exists bool
	err := tx.QueryRow(ctx, `SELECT TRUE FROM customers WHERE customer_id = $1 FOR UPDATE;`, customerID).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, customerID)
		}
		return apperrors.NewAppError(500, "failed to lock customer "+customerID, err)
	}

	query := `
		UPDATE customers
		SET balance_gold = balance_gold + $2,
		    balance_local = balance_local + $3,
		    balance_foreign = balance_foreign + $4,
		    last_updated_at = NOW()
		WHERE customer_id = $1;
	`
	if _, err := tx.Exec(ctx, query, customerID, delta.Gold, delta.Local, delta.Foreign); err != nil {
		return apperrors.NewAppError(500, "failed to update balance for customer "+customerID, err)
	}
	return nil
}

// applyInventoryDelta locks the item row, applies the mass delta, and guards
// the non-negative stock invariant a second time under the row lock in case
// stock moved between processing and persisting.
func applyInventoryDelta(ctx context.Context, tx pgx.Tx, delta domain.InventoryDelta) error {
	var mass decimal.Decimal
	err := tx.QueryRow(ctx, `SELECT mass_grams FROM inventory_items WHERE item_id = $1 FOR UPDATE;`, delta.ItemID).Scan(&mass)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: inventory item %s", apperrors.ErrNotFound, delta.ItemID)
		}
		return apperrors.NewAppError(500, "failed to lock inventory item "+delta.ItemID, err)
	}

	if mass.Add(delta.Mass).IsNegative() {
		return fmt.Errorf("%w: item %s", apperrors.ErrInsufficientStock, delta.ItemID)
	}

	query := `
		UPDATE inventory_items
		SET mass_grams = mass_grams + $2, last_updated_at = NOW()
		WHERE item_id = $1;
	`
	if _, err := tx.Exec(ctx, query, delta.ItemID, delta.Mass); err != nil {
		return apperrors.NewAppError(500, "failed to update mass for item "+delta.ItemID, err)
	}
	return nil
}

func (r *PgxLedgerRepository) ListTransactionsByCustomer(ctx context.Context, customerID string, limit int, offset int) ([]domain.TransactionRecord, error) {
	query := `
		SELECT transaction_id, customer_id, direction, channel, quantity, gold_equivalent, description, item_id, created_at
		FROM transactions
		WHERE customer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`
	return r.listTransactions(ctx, query, customerID, limit, offset)
}

func (r *PgxLedgerRepository) ListVaultTransactions(ctx context.Context, limit int, offset int) ([]domain.TransactionRecord, error) {
	query := `
		SELECT transaction_id, customer_id, direction, channel, quantity, gold_equivalent, description, item_id, created_at
		FROM transactions
		WHERE customer_id IS NULL
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2;
	`
	return r.listTransactions(ctx, query, limit, offset)
}

func (r *PgxLedgerRepository) listTransactions(ctx context.Context, query string, args ...any) ([]domain.TransactionRecord, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var ms []models.Transaction
	for rows.Next() {
		var m models.Transaction
		err := rows.Scan(
			&m.TransactionID,
			&m.CustomerID,
			&m.Direction,
			&m.Channel,
			&m.Quantity,
			&m.GoldEquivalent,
			&m.Description,
			&m.ItemID,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating transaction rows: %w", err)
	}
	return mapping.ToDomainTransactionSlice(ms), nil
}
