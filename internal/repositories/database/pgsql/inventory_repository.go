package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/goldvault/goldvault/internal/apperrors"
	"github.com/goldvault/goldvault/internal/core/domain"
	portsrepo "github.com/goldvault/goldvault/internal/core/ports/repositories"
	"github.com/goldvault/goldvault/internal/models"
	"github.com/goldvault/goldvault/internal/utils/mapping"
)

type PgxInventoryRepository struct {
	BaseRepository
}

func newPgxInventoryRepository(pool *pgxpool.Pool) portsrepo.InventoryRepositoryFacade {
	return &PgxInventoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxInventoryRepository implements portsrepo.InventoryRepositoryFacade
var _ portsrepo.InventoryRepositoryFacade = (*PgxInventoryRepository)(nil)

const itemColumns = `item_id, name, category, barcode, rfid_code, mass_grams, purity, is_active, location, created_at, last_updated_at`

func scanItem(row pgx.Row) (models.InventoryItem, error) {
	var m models.InventoryItem
	err := row.Scan(
		&m.ItemID,
		&m.Name,
		&m.Category,
		&m.Barcode,
		&m.RFIDCode,
		&m.MassGrams,
		&m.Purity,
		&m.IsActive,
		&m.Location,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

func (r *PgxInventoryRepository) SaveItem(ctx context.Context, item domain.InventoryItem) error {
	m := mapping.ToModelInventoryItem(item)
	query := `
		INSERT INTO inventory_items (item_id, name, category, barcode, rfid_code, mass_grams, purity, is_active, location, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ItemID,
		m.Name,
		m.Category,
		m.Barcode,
		m.RFIDCode,
		m.MassGrams,
		m.Purity,
		m.IsActive,
		m.Location,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save inventory item: %w", err)
	}
	return nil
}

// UpdateItem updates mutable columns. Purity is intentionally absent from the
// SET list: it is immutable for the life of the item.
func (r *PgxInventoryRepository) UpdateItem(ctx context.Context, item domain.InventoryItem) error {
	query := `
		UPDATE inventory_items
		SET name = $2, category = $3, barcode = $4, rfid_code = $5, location = $6, last_updated_at = $7
		WHERE item_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		item.ItemID,
		item.Name,
		item.Category,
		item.Barcode,
		item.RFIDCode,
		item.Location,
		item.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update inventory item %s: %w", item.ItemID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxInventoryRepository) CorrectStock(ctx context.Context, itemID string, mass decimal.Decimal, now time.Time) error {
	query := `
		UPDATE inventory_items
		SET mass_grams = $2, last_updated_at = $3
		WHERE item_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, itemID, mass, now)
	if err != nil {
		return fmt.Errorf("failed to correct stock for item %s: %w", itemID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxInventoryRepository) DeactivateItem(ctx context.Context, itemID string, now time.Time) error {
	query := `
		UPDATE inventory_items
		SET is_active = FALSE, last_updated_at = $2
		WHERE item_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, itemID, now)
	if err != nil {
		return fmt.Errorf("failed to deactivate inventory item %s: %w", itemID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxInventoryRepository) FindItemByID(ctx context.Context, itemID string) (*domain.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE item_id = $1;`
	m, err := scanItem(r.Pool.QueryRow(ctx, query, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find inventory item %s: %w", itemID, err)
	}
	item := mapping.ToDomainInventoryItem(m)
	return &item, nil
}

func (r *PgxInventoryRepository) FindItemByRFID(ctx context.Context, rfidCode string) (*domain.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE rfid_code = $1;`
	m, err := scanItem(r.Pool.QueryRow(ctx, query, rfidCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find inventory item by rfid %s: %w", rfidCode, err)
	}
	item := mapping.ToDomainInventoryItem(m)
	return &item, nil
}

func (r *PgxInventoryRepository) FindItemsByIDs(ctx context.Context, itemIDs []string) (map[string]domain.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE item_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to find inventory items: %w", err)
	}
	defer rows.Close()

	items := make(map[string]domain.InventoryItem, len(itemIDs))
	for rows.Next() {
		m, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory row: %w", err)
		}
		items[m.ItemID] = mapping.ToDomainInventoryItem(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating inventory rows: %w", err)
	}
	return items, nil
}

func (r *PgxInventoryRepository) ListItems(ctx context.Context, activeOnly bool, limit int, offset int) ([]domain.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY name LIMIT $1 OFFSET $2;`

	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory items: %w", err)
	}
	defer rows.Close()

	var ms []models.InventoryItem
	for rows.Next() {
		m, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating inventory rows: %w", err)
	}
	return mapping.ToDomainInventoryItemSlice(ms), nil
}
