package repositories

import (
	"context"

	"github.com/goldvault/goldvault/internal/core/domain"
)

// CustomerReader defines read operations for customer data
type CustomerReader interface {
	// FindCustomerByID retrieves a specific customer by its unique identifier.
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)

	// ListCustomers retrieves customers ordered by name.
	ListCustomers(ctx context.Context, limit int, offset int) ([]domain.Customer, error)

	// GetBalance retrieves the three-channel balance for a customer.
	GetBalance(ctx context.Context, customerID string) (*domain.AccountBalance, error)
}

// CustomerWriter defines write operations for customer data
type CustomerWriter interface {
	// SaveCustomer persists a new customer together with its zero balance row.
	SaveCustomer(ctx context.Context, customer domain.Customer, balance domain.AccountBalance) error

	// UpdateCustomer updates an existing customer's details.
	UpdateCustomer(ctx context.Context, customer domain.Customer) error
}

// CustomerRepositoryFacade combines all customer-related repository interfaces
type CustomerRepositoryFacade interface {
	CustomerReader
	CustomerWriter
}
