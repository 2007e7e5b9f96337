package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/goldvault/goldvault/internal/apperrors"
	"github.com/goldvault/goldvault/internal/core/domain"
	portsrepo "github.com/goldvault/goldvault/internal/core/ports/repositories"
	"github.com/goldvault/goldvault/internal/models"
	"github.com/goldvault/goldvault/internal/utils/mapping"
)

type PgxCustomerRepository struct {
	BaseRepository
}

func newPgxCustomerRepository(pool *pgxpool.Pool) portsrepo.CustomerRepositoryFacade {
	return &PgxCustomerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxCustomerRepository implements portsrepo.CustomerRepositoryFacade
var _ portsrepo.CustomerRepositoryFacade = (*PgxCustomerRepository)(nil)

const customerColumns = `customer_id, full_name, phone, notes, balance_gold, balance_local, balance_foreign, created_at, last_updated_at`

func scanCustomer(row pgx.Row) (models.Customer, error) {
	var m models.Customer
	err := row.Scan(
		&m.CustomerID,
		&m.FullName,
		&m.Phone,
		&m.Notes,
		&m.BalanceGold,
		&m.BalanceLocal,
		&m.BalanceForeign,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

// SaveCustomer inserts the customer row together with its starting balance.
// The balance columns live on the same row, so the customer and its zero
// balance come into existence in one statement.
func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer, balance domain.AccountBalance) error {
	m := mapping.ToModelCustomer(customer, balance)
	query := `
		INSERT INTO customers (customer_id, full_name, phone, notes, balance_gold, balance_local, balance_foreign, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CustomerID,
		m.FullName,
		m.Phone,
		m.Notes,
		m.BalanceGold,
		m.BalanceLocal,
		m.BalanceForeign,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save customer: %w", err)
	}
	return nil
}

func (r *PgxCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	query := `
		UPDATE customers
		SET full_name = $2, phone = $3, notes = $4, last_updated_at = $5
		WHERE customer_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		customer.CustomerID,
		customer.FullName,
		customer.Phone,
		customer.Notes,
		customer.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update customer %s: %w", customer.CustomerID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1;`
	m, err := scanCustomer(r.Pool.QueryRow(ctx, query, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find customer %s: %w", customerID, err)
	}
	customer := mapping.ToDomainCustomer(m)
	return &customer, nil
}

func (r *PgxCustomerRepository) ListCustomers(ctx context.Context, limit int, offset int) ([]domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY full_name LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	var ms []models.Customer
	for rows.Next() {
		m, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating customer rows: %w", err)
	}
	return mapping.ToDomainCustomerSlice(ms), nil
}

func (r *PgxCustomerRepository) GetBalance(ctx context.Context, customerID string) (*domain.AccountBalance, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1;`
	m, err := scanCustomer(r.Pool.QueryRow(ctx, query, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get balance for customer %s: %w", customerID, err)
	}
	balance := mapping.ToDomainBalance(m)
	return &balance, nil
}
