package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/goldvault/goldvault/internal/apperrors"
	"github.com/goldvault/goldvault/internal/core/domain"
	"github.com/goldvault/goldvault/internal/core/moneymath"
	portssvc "github.com/goldvault/goldvault/internal/core/ports/services"
	"github.com/goldvault/goldvault/internal/core/services"
	"github.com/goldvault/goldvault/internal/dto"
)

type CustomerServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCustomerRepository
	service  portssvc.CustomerSvcFacade
}

func (suite *CustomerServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCustomerRepository)
	suite.service = services.NewCustomerService(suite.mockRepo)
}

func (suite *CustomerServiceTestSuite) TestCreateCustomer_Success() {
	ctx := context.Background()
	req := dto.CreateCustomerRequest{
		FullName: "Ayşe Yılmaz",
		Phone:    "+90 555 000 0000",
	}

	// The customer and its zero balance must be saved together.
	suite.mockRepo.On("SaveCustomer", ctx,
		mock.AnythingOfType("domain.Customer"),
		mock.MatchedBy(func(b domain.AccountBalance) bool {
			return b.Gold.IsZero() && b.Local.IsZero() && b.Foreign.IsZero()
		}),
	).Return(nil).Once()

	created, err := suite.service.CreateCustomer(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.CustomerID)
	suite.Equal(req.FullName, created.FullName)
	suite.Equal(req.Phone, created.Phone)
	suite.WithinDuration(time.Now(), created.CreatedAt, time.Second)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CustomerServiceTestSuite) TestCreateCustomer_SaveError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockRepo.On("SaveCustomer", ctx, mock.AnythingOfType("domain.Customer"), mock.AnythingOfType("domain.AccountBalance")).
		Return(expectedErr).Once()

	created, err := suite.service.CreateCustomer(ctx, dto.CreateCustomerRequest{FullName: "Test"})

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, expectedErr)
}

func (suite *CustomerServiceTestSuite) TestUpdateCustomer_PartialPatch() {
	ctx := context.Background()
	customerID := uuid.NewString()
	existing := &domain.Customer{
		CustomerID: customerID,
		FullName:   "Old Name",
		Phone:      "123",
		Notes:      "keep these",
	}
	newName := "New Name"

	suite.mockRepo.On("FindCustomerByID", ctx, customerID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateCustomer", ctx, mock.MatchedBy(func(c domain.Customer) bool {
		return c.FullName == newName && c.Phone == "123" && c.Notes == "keep these"
	})).Return(nil).Once()

	updated, err := suite.service.UpdateCustomer(ctx, customerID, dto.UpdateCustomerRequest{FullName: &newName})

	suite.Require().NoError(err)
	suite.Equal(newName, updated.FullName)
	suite.Equal("123", updated.Phone)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CustomerServiceTestSuite) TestUpdateCustomer_NotFound() {
	ctx := context.Background()
	customerID := uuid.NewString()

	suite.mockRepo.On("FindCustomerByID", ctx, customerID).Return(nil, apperrors.ErrNotFound).Once()

	updated, err := suite.service.UpdateCustomer(ctx, customerID, dto.UpdateCustomerRequest{})

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateCustomer", mock.Anything, mock.Anything)
}

func (suite *CustomerServiceTestSuite) TestGetBalance() {
	ctx := context.Background()
	customerID := uuid.NewString()
	balance := &domain.AccountBalance{
		CustomerID: customerID,
		Gold:       moneymath.MustFromString("-9.16"),
		Local:      moneymath.MustFromString("500"),
	}

	suite.mockRepo.On("GetBalance", ctx, customerID).Return(balance, nil).Once()

	got, err := suite.service.GetBalance(ctx, customerID)

	suite.Require().NoError(err)
	suite.Equal(balance, got)
}

func (suite *CustomerServiceTestSuite) TestListCustomers() {
	ctx := context.Background()
	expected := []domain.Customer{{CustomerID: uuid.NewString(), FullName: "A"}}

	suite.mockRepo.On("ListCustomers", ctx, 20, 0).Return(expected, nil).Once()

	got, err := suite.service.ListCustomers(ctx, 20, 0)

	suite.Require().NoError(err)
	suite.Equal(expected, got)
}

func TestCustomerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CustomerServiceTestSuite))
}
