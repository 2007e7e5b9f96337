package services

import (
	"context"

	"github.com/goldvault/goldvault/internal/core/domain"
	"github.com/goldvault/goldvault/internal/dto"
)

// CustomerReaderSvc defines read operations for customer data
type CustomerReaderSvc interface {
	// GetCustomerByID retrieves a specific customer by its ID.
	GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)

	// ListCustomers retrieves a paginated list of customers.
	ListCustomers(ctx context.Context, limit int, offset int) ([]domain.Customer, error)

	// GetBalance retrieves the customer's three-channel balance.
	GetBalance(ctx context.Context, customerID string) (*domain.AccountBalance, error)
}

// CustomerWriterSvc defines write operations for customer data
type CustomerWriterSvc interface {
	// CreateCustomer persists a new customer with an all-zero balance.
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*domain.Customer, error)

	// UpdateCustomer updates customer details.
	UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest) (*domain.Customer, error)
}

// CustomerSvcFacade combines all customer service interfaces
type CustomerSvcFacade interface {
	CustomerReaderSvc
	CustomerWriterSvc
}
