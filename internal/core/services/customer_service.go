package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/goldvault/goldvault/internal/core/domain"
	portsrepo "github.com/goldvault/goldvault/internal/core/ports/repositories"
	portssvc "github.com/goldvault/goldvault/internal/core/ports/services"
	"github.com/goldvault/goldvault/internal/dto"
)

// customerService provides customer registry operations. Creating a customer
// creates its zero balance in the same repository call, so a customer never
// exists without a balance row.
type customerService struct {
	BaseService
	customerRepo portsrepo.CustomerRepositoryFacade
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(customerRepo portsrepo.CustomerRepositoryFacade) portssvc.CustomerSvcFacade {
	return &customerService{customerRepo: customerRepo}
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

func (s *customerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*domain.Customer, error) {
	now := time.Now().UTC()
	customer := domain.Customer{
		CustomerID: uuid.NewString(),
		FullName:   req.FullName,
		Phone:      req.Phone,
		Notes:      req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	balance := domain.ZeroBalance(customer.CustomerID)
	balance.AuditFields = customer.AuditFields

	if err := s.customerRepo.SaveCustomer(ctx, customer, balance); err != nil {
		s.LogError(ctx, err, "Failed to save customer")
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	s.LogInfo(ctx, "Customer created", slog.String("customer_id", customer.CustomerID))
	return &customer, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		customer.FullName = *req.FullName
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if req.Notes != nil {
		customer.Notes = *req.Notes
	}
	customer.LastUpdatedAt = time.Now().UTC()

	if err := s.customerRepo.UpdateCustomer(ctx, *customer); err != nil {
		s.LogError(ctx, err, "Failed to update customer", slog.String("customer_id", customerID))
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}
	return customer, nil
}

func (s *customerService) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	return s.customerRepo.FindCustomerByID(ctx, customerID)
}

func (s *customerService) ListCustomers(ctx context.Context, limit int, offset int) ([]domain.Customer, error) {
	return s.customerRepo.ListCustomers(ctx, limit, offset)
}

func (s *customerService) GetBalance(ctx context.Context, customerID string) (*domain.AccountBalance, error) {
	return s.customerRepo.GetBalance(ctx, customerID)
}
