package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/goldvault/goldvault/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	customerRepo := newPgxCustomerRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool)
	inventoryRepo := newPgxInventoryRepository(dbPool)

	return portsrepo.RepositoryProvider{
		CustomerRepo:  customerRepo,
		LedgerRepo:    ledgerRepo,
		InventoryRepo: inventoryRepo,
	}
}
