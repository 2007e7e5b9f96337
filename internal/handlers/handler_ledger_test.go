package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/goldvault/goldvault/internal/apperrors"
	"github.com/goldvault/goldvault/internal/core/domain"
	"github.com/goldvault/goldvault/internal/core/moneymath"
	portssvc "github.com/goldvault/goldvault/internal/core/ports/services"
	"github.com/goldvault/goldvault/internal/dto"
	"github.com/goldvault/goldvault/internal/handlers"
	"github.com/goldvault/goldvault/internal/platform/config"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) ProcessIntent(ctx context.Context, customerID string, req dto.TransactionIntentRequest) (*domain.ProcessResult, error) {
	args := m.Called(ctx, customerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProcessResult), args.Error(1)
}

func (m *MockLedgerService) ProcessCheckout(ctx context.Context, customerID string, req dto.CheckoutRequest) (*domain.BatchResult, error) {
	args := m.Called(ctx, customerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BatchResult), args.Error(1)
}

func (m *MockLedgerService) ListTransactions(ctx context.Context, customerID string, limit int, offset int) ([]domain.TransactionRecord, error) {
	args := m.Called(ctx, customerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransactionRecord), args.Error(1)
}

func (m *MockLedgerService) RecordVaultMovement(ctx context.Context, req dto.VaultMovementRequest) (*domain.TransactionRecord, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionRecord), args.Error(1)
}

func (m *MockLedgerService) ListVaultTransactions(ctx context.Context, limit int, offset int) ([]domain.TransactionRecord, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransactionRecord), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Test Suite ---
type LedgerHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockLedgerService *MockLedgerService
}

func (suite *LedgerHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockLedgerService = new(MockLedgerService)

	cfg := &config.Config{RateLimit: "1000-M"}
	services := &portssvc.ServiceContainer{Ledger: suite.mockLedgerService}
	handlers.RegisterRoutes(suite.router, cfg, services, handlers.DeviceReaders{})
}

func (suite *LedgerHandlerTestSuite) postJSON(url string, body any) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	suite.Require().NoError(err)

	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *LedgerHandlerTestSuite) TestProcessIntent_Success() {
	customerID := uuid.NewString()
	result := &domain.ProcessResult{
		Record: domain.TransactionRecord{
			TransactionID: uuid.NewString(),
			CustomerID:    customerID,
			Direction:     domain.Sale,
			Channel:       domain.ChannelGold,
			Quantity:      moneymath.MustFromString("10"),
			CreatedAt:     time.Now(),
		},
		BalanceDelta: domain.BalanceDelta{Gold: moneymath.MustFromString("-9.16")},
	}

	suite.mockLedgerService.On("ProcessIntent",
		mock.Anything,
		customerID,
		mock.MatchedBy(func(r dto.TransactionIntentRequest) bool {
			return r.Direction == "SALE" && r.Channel == "GOLD"
		}),
	).Return(result, nil).Once()

	w := suite.postJSON(fmt.Sprintf("/api/v1/customers/%s/transactions", customerID), gin.H{
		"direction": "SALE",
		"channel":   "GOLD",
		"quantity":  "10",
		"purity":    "0.916",
	})

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.ProcessResultResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(result.Record.TransactionID, resp.Record.TransactionID)

	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestProcessIntent_BadDirection() {
	// Binding rejects the unknown direction before the service is reached.
	w := suite.postJSON(fmt.Sprintf("/api/v1/customers/%s/transactions", uuid.NewString()), gin.H{
		"direction": "TRANSFER",
		"channel":   "GOLD",
		"quantity":  "10",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "ProcessIntent", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerHandlerTestSuite) TestProcessIntent_InsufficientStock() {
	customerID := uuid.NewString()

	suite.mockLedgerService.On("ProcessIntent", mock.Anything, customerID, mock.Anything).
		Return(nil, fmt.Errorf("%w: item x", apperrors.ErrInsufficientStock)).Once()

	w := suite.postJSON(fmt.Sprintf("/api/v1/customers/%s/transactions", customerID), gin.H{
		"direction": "SALE",
		"channel":   "GOLD",
		"quantity":  "10",
		"purity":    "0.916",
	})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestProcessIntent_MissingPurity() {
	customerID := uuid.NewString()

	suite.mockLedgerService.On("ProcessIntent", mock.Anything, customerID, mock.Anything).
		Return(nil, apperrors.ErrMissingPurity).Once()

	w := suite.postJSON(fmt.Sprintf("/api/v1/customers/%s/transactions", customerID), gin.H{
		"direction": "SALE",
		"channel":   "GOLD",
		"quantity":  "10",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestProcessCheckout_Success() {
	customerID := uuid.NewString()
	result := &domain.BatchResult{
		Records: []domain.TransactionRecord{
			{TransactionID: uuid.NewString(), CustomerID: customerID},
			{TransactionID: uuid.NewString(), CustomerID: customerID},
		},
		TotalBalanceDelta: domain.BalanceDelta{Local: moneymath.MustFromString("500")},
	}

	suite.mockLedgerService.On("ProcessCheckout", mock.Anything, customerID, mock.Anything).
		Return(result, nil).Once()

	w := suite.postJSON(fmt.Sprintf("/api/v1/customers/%s/checkout", customerID), gin.H{
		"intents": []gin.H{
			{"direction": "SALE", "channel": "GOLD", "quantity": "10", "purity": "0.916"},
			{"direction": "COLLECTION", "channel": "LOCAL", "quantity": "500"},
		},
	})

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.CheckoutResultResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Records, 2)
}

func (suite *LedgerHandlerTestSuite) TestProcessCheckout_EmptyBatch() {
	w := suite.postJSON(fmt.Sprintf("/api/v1/customers/%s/checkout", uuid.NewString()), gin.H{
		"intents": []gin.H{},
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "ProcessCheckout", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerHandlerTestSuite) TestRecordVaultMovement_Success() {
	record := &domain.TransactionRecord{
		TransactionID: uuid.NewString(),
		Direction:     domain.VaultIn,
		Channel:       domain.ChannelLocal,
		Quantity:      moneymath.MustFromString("1000"),
		Description:   "Vault deposit",
		CreatedAt:     time.Now(),
	}

	suite.mockLedgerService.On("RecordVaultMovement", mock.Anything, mock.MatchedBy(func(r dto.VaultMovementRequest) bool {
		return r.Direction == "VAULT_IN"
	})).Return(record, nil).Once()

	w := suite.postJSON("/api/v1/vault/transactions", gin.H{
		"direction": "VAULT_IN",
		"channel":   "LOCAL",
		"quantity":  "1000",
	})

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.TransactionRecordResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Empty(resp.CustomerID)
	suite.Equal("VAULT_IN", resp.Direction)
}

func (suite *LedgerHandlerTestSuite) TestListTransactions_Success() {
	customerID := uuid.NewString()
	records := []domain.TransactionRecord{
		{TransactionID: uuid.NewString(), CustomerID: customerID, Direction: domain.Sale, Channel: domain.ChannelGold},
	}

	suite.mockLedgerService.On("ListTransactions", mock.Anything, customerID, 50, 0).
		Return(records, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/customers/%s/transactions", customerID), nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ListTransactionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Transactions, 1)
}

func (suite *LedgerHandlerTestSuite) TestDeviceRoutes_NotConfigured() {
	// No reader was wired in SetupTest, every device route must 503.
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/devices/scale/status", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusServiceUnavailable, w.Code)
}

func TestLedgerHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerHandlerTestSuite))
}
