package services

import (
	portsrepo "github.com/goldvault/goldvault/internal/core/ports/repositories"
	portssvc "github.com/goldvault/goldvault/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Customer = NewCustomerService(repos.CustomerRepo)
	container.Inventory = NewInventoryService(repos.InventoryRepo)
	container.Ledger = NewLedgerService(repos.LedgerRepo, repos.CustomerRepo, repos.InventoryRepo)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.CustomerSvcFacade  = (*customerService)(nil)
	_ portssvc.LedgerSvcFacade    = (*ledgerService)(nil)
	_ portssvc.InventorySvcFacade = (*inventoryService)(nil)
)
