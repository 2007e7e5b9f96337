package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/goldvault/goldvault/internal/core/domain"
)

// TransactionIntentRequest defines one requested sale or collection.
// Quantity is grams for the GOLD channel, a currency amount otherwise.
// Purity is required for GOLD unless the linked item supplies it.
type TransactionIntentRequest struct {
	Direction   string           `json:"direction" binding:"required,oneof=SALE COLLECTION"`
	Channel     string           `json:"channel" binding:"required,oneof=GOLD LOCAL FOREIGN"`
	Quantity    decimal.Decimal  `json:"quantity" binding:"required"`
	Purity      *decimal.Decimal `json:"purity"`
	ItemID      string           `json:"itemID"`
	Description string           `json:"description"`
}

// ToIntent converts the request into a domain intent.
func (r TransactionIntentRequest) ToIntent() domain.TransactionIntent {
	return domain.TransactionIntent{
		Direction:   domain.Direction(r.Direction),
		Channel:     domain.BalanceChannel(r.Channel),
		Quantity:    r.Quantity,
		Purity:      r.Purity,
		ItemID:      r.ItemID,
		Description: r.Description,
	}
}

// CheckoutRequest is an ordered batch of intents confirmed as one checkout.
type CheckoutRequest struct {
	Intents []TransactionIntentRequest `json:"intents" binding:"required,min=1,dive"`
}

// VaultMovementRequest records a customer-less cash-drawer movement.
type VaultMovementRequest struct {
	Direction   string          `json:"direction" binding:"required,oneof=VAULT_IN VAULT_OUT"`
	Channel     string          `json:"channel" binding:"required,oneof=GOLD LOCAL FOREIGN"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	Description string          `json:"description"`
}

// TransactionRecordResponse defines the data returned for an audit record.
type TransactionRecordResponse struct {
	TransactionID  string          `json:"transactionID"`
	CustomerID     string          `json:"customerID,omitempty"`
	Direction      string          `json:"direction"`
	Channel        string          `json:"channel"`
	Quantity       decimal.Decimal `json:"quantity"`
	GoldEquivalent decimal.Decimal `json:"goldEquivalent"`
	Description    string          `json:"description"`
	ItemID         string          `json:"itemID,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ProcessResultResponse is returned after a single intent is applied.
type ProcessResultResponse struct {
	Record       TransactionRecordResponse `json:"record"`
	BalanceDelta domain.BalanceDelta       `json:"balanceDelta"`
}

// CheckoutResultResponse is returned after a checkout batch is applied.
type CheckoutResultResponse struct {
	Records           []TransactionRecordResponse `json:"records"`
	TotalBalanceDelta domain.BalanceDelta         `json:"totalBalanceDelta"`
}

// ListTransactionsParams defines query parameters for listing audit records.
type ListTransactionsParams struct {
	Limit  int `form:"limit,default=50"`
	Offset int `form:"offset,default=0"`
}

// ListTransactionsResponse wraps the list of audit records.
type ListTransactionsResponse struct {
	Transactions []TransactionRecordResponse `json:"transactions"`
}

// ToTransactionRecordResponse converts a domain.TransactionRecord.
func ToTransactionRecordResponse(r *domain.TransactionRecord) TransactionRecordResponse {
	return TransactionRecordResponse{
		TransactionID:  r.TransactionID,
		CustomerID:     r.CustomerID,
		Direction:      string(r.Direction),
		Channel:        string(r.Channel),
		Quantity:       r.Quantity,
		GoldEquivalent: r.GoldEquivalent,
		Description:    r.Description,
		ItemID:         r.ItemID,
		CreatedAt:      r.CreatedAt,
	}
}

// ToProcessResultResponse converts a domain.ProcessResult.
func ToProcessResultResponse(r *domain.ProcessResult) ProcessResultResponse {
	return ProcessResultResponse{
		Record:       ToTransactionRecordResponse(&r.Record),
		BalanceDelta: r.BalanceDelta,
	}
}

// ToCheckoutResultResponse converts a domain.BatchResult.
func ToCheckoutResultResponse(r *domain.BatchResult) CheckoutResultResponse {
	return CheckoutResultResponse{
		Records:           ToTransactionRecordResponses(r.Records),
		TotalBalanceDelta: r.TotalBalanceDelta,
	}
}

// ToTransactionRecordResponses converts a slice of domain.TransactionRecord.
func ToTransactionRecordResponses(records []domain.TransactionRecord) []TransactionRecordResponse {
	responses := make([]TransactionRecordResponse, len(records))
	for i, r := range records {
		responses[i] = ToTransactionRecordResponse(&r)
	}
	return responses
}
