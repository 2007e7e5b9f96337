package dto

import (
	"time"

	"github.com/goldvault/goldvault/internal/core/domain"
	"github.com/goldvault/goldvault/internal/core/moneymath"
)

// CreateCustomerRequest defines the data needed to create a new customer.
type CreateCustomerRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Phone    string `json:"phone"`
	Notes    string `json:"notes"`
}

// UpdateCustomerRequest defines the data allowed for updating a customer.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateCustomerRequest struct {
	FullName *string `json:"fullName"`
	Phone    *string `json:"phone"`
	Notes    *string `json:"notes"`
}

// CustomerResponse defines the data returned for a customer.
type CustomerResponse struct {
	CustomerID string    `json:"customerID"`
	FullName   string    `json:"fullName"`
	Phone      string    `json:"phone"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"createdAt"`
}

// BalanceResponse renders a customer's three-channel balance with
// fixed-precision display strings alongside the exact values.
type BalanceResponse struct {
	CustomerID   string `json:"customerID"`
	Gold         string `json:"gold"`    // fine-gold grams, 2 decimal places
	Local        string `json:"local"`   // local currency, 2 decimal places
	Foreign      string `json:"foreign"` // foreign currency, 2 decimal places
	GoldExact    string `json:"goldExact"`
	LocalExact   string `json:"localExact"`
	ForeignExact string `json:"foreignExact"`
}

// ListCustomersParams defines query parameters for listing customers.
type ListCustomersParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListCustomersResponse wraps the list of customers.
type ListCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
}

// ToCustomerResponse converts a domain.Customer to CustomerResponse.
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID: c.CustomerID,
		FullName:   c.FullName,
		Phone:      c.Phone,
		Notes:      c.Notes,
		CreatedAt:  c.CreatedAt,
	}
}

// ToCustomerResponses converts a slice of domain.Customer.
func ToCustomerResponses(customers []domain.Customer) []CustomerResponse {
	responses := make([]CustomerResponse, len(customers))
	for i, c := range customers {
		responses[i] = ToCustomerResponse(&c)
	}
	return responses
}

// ToBalanceResponse converts a domain.AccountBalance to BalanceResponse.
func ToBalanceResponse(b *domain.AccountBalance) BalanceResponse {
	return BalanceResponse{
		CustomerID:   b.CustomerID,
		Gold:         moneymath.ToFixed(b.Gold, 2),
		Local:        moneymath.ToFixed(b.Local, 2),
		Foreign:      moneymath.ToFixed(b.Foreign, 2),
		GoldExact:    b.Gold.String(),
		LocalExact:   b.Local.String(),
		ForeignExact: b.Foreign.String(),
	}
}
