package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/goldvault/goldvault/internal/apperrors"
	portssvc "github.com/goldvault/goldvault/internal/core/ports/services"
	"github.com/goldvault/goldvault/internal/dto"
	"github.com/goldvault/goldvault/internal/middleware"
)

// customerHandler handles HTTP requests related to customers.
type customerHandler struct {
	customerService portssvc.CustomerSvcFacade
}

func newCustomerHandler(cs portssvc.CustomerSvcFacade) *customerHandler {
	return &customerHandler{
		customerService: cs,
	}
}

// registerCustomerRoutes registers all customer-related routes.
func registerCustomerRoutes(rg *gin.RouterGroup, customerService portssvc.CustomerSvcFacade) {
	h := newCustomerHandler(customerService)

	customers := rg.Group("/customers")
	{
		customers.POST("", h.createCustomer)
		customers.GET("", h.listCustomers)
		customers.GET("/:customerID", h.getCustomer)
		customers.PUT("/:customerID", h.updateCustomer)
		customers.GET("/:customerID/balance", h.getBalance)
	}
}

func (h *customerHandler) createCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for create customer request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received request to create customer", slog.String("full_name", req.FullName))

	created, err := h.customerService.CreateCustomer(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Duplicate customer", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": "Customer already exists"})
			return
		}
		logger.Error("Failed to create customer in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create customer"})
		return
	}

	logger.Info("Customer created successfully", slog.String("customer_id", created.CustomerID))
	c.JSON(http.StatusCreated, dto.ToCustomerResponse(created))
}

func (h *customerHandler) getCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("customerID")

	customer, err := h.customerService.GetCustomerByID(c.Request.Context(), customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Customer not found", slog.String("customer_id", customerID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		} else {
			logger.Error("Failed to get customer from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve customer"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

func (h *customerHandler) listCustomers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListCustomersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for listCustomers", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	customers, err := h.customerService.ListCustomers(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list customers from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list customers"})
		return
	}

	c.JSON(http.StatusOK, dto.ListCustomersResponse{Customers: dto.ToCustomerResponses(customers)})
}

func (h *customerHandler) updateCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("customerID")

	var req dto.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateCustomer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received request to update customer", slog.String("customer_id", customerID))

	updated, err := h.customerService.UpdateCustomer(c.Request.Context(), customerID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Customer not found for update", slog.String("customer_id", customerID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		} else {
			logger.Error("Failed to update customer in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update customer"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCustomerResponse(updated))
}

func (h *customerHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("customerID")

	balance, err := h.customerService.GetBalance(c.Request.Context(), customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Customer not found for balance", slog.String("customer_id", customerID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		} else {
			logger.Error("Failed to get balance from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve balance"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceResponse(balance))
}
