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

// ledgerHandler handles HTTP requests for transaction processing, the audit
// trail, and vault movements.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{
		ledgerService: ls,
	}
}

// registerLedgerRoutes registers transaction and vault routes.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	customers := rg.Group("/customers")
	{
		customers.POST("/:customerID/transactions", h.processIntent)
		customers.GET("/:customerID/transactions", h.listTransactions)
		customers.POST("/:customerID/checkout", h.processCheckout)
	}

	vault := rg.Group("/vault")
	{
		vault.POST("/transactions", h.recordVaultMovement)
		vault.GET("/transactions", h.listVaultTransactions)
	}
}

// processingStatus maps ledger processing failures to HTTP status codes.
func processingStatus(err error) (int, string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, "Customer or item not found"
	case errors.Is(err, apperrors.ErrInsufficientStock):
		return http.StatusConflict, "Insufficient stock"
	case errors.Is(err, apperrors.ErrInvalidAmount),
		errors.Is(err, apperrors.ErrInvalidDirection),
		errors.Is(err, apperrors.ErrMissingPurity),
		errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "Failed to process transaction"
	}
}

func (h *ledgerHandler) processIntent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("customerID")

	var req dto.TransactionIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for processIntent", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received transaction intent",
		slog.String("customer_id", customerID),
		slog.String("direction", req.Direction),
		slog.String("channel", req.Channel))

	result, err := h.ledgerService.ProcessIntent(c.Request.Context(), customerID, req)
	if err != nil {
		status, msg := processingStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to process intent", slog.String("error", err.Error()))
		} else {
			logger.Warn("Transaction intent rejected", slog.String("error", err.Error()))
		}
		c.JSON(status, gin.H{"error": msg})
		return
	}

	logger.Info("Transaction applied", slog.String("transaction_id", result.Record.TransactionID))
	c.JSON(http.StatusCreated, dto.ToProcessResultResponse(result))
}

func (h *ledgerHandler) processCheckout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("customerID")

	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for processCheckout", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received checkout",
		slog.String("customer_id", customerID),
		slog.Int("line_count", len(req.Intents)))

	result, err := h.ledgerService.ProcessCheckout(c.Request.Context(), customerID, req)
	if err != nil {
		status, msg := processingStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to process checkout", slog.String("error", err.Error()))
		} else {
			logger.Warn("Checkout rejected", slog.String("error", err.Error()))
		}
		c.JSON(status, gin.H{"error": msg})
		return
	}

	logger.Info("Checkout applied", slog.Int("record_count", len(result.Records)))
	c.JSON(http.StatusCreated, dto.ToCheckoutResultResponse(result))
}

func (h *ledgerHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("customerID")

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for listTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	records, err := h.ledgerService.ListTransactions(c.Request.Context(), customerID, params.Limit, params.Offset)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Customer not found for transaction list", slog.String("customer_id", customerID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		logger.Error("Failed to list transactions from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		return
	}

	c.JSON(http.StatusOK, dto.ListTransactionsResponse{Transactions: dto.ToTransactionRecordResponses(records)})
}

func (h *ledgerHandler) recordVaultMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.VaultMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for recordVaultMovement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received vault movement",
		slog.String("direction", req.Direction),
		slog.String("channel", req.Channel))

	record, err := h.ledgerService.RecordVaultMovement(c.Request.Context(), req)
	if err != nil {
		status, msg := processingStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to record vault movement", slog.String("error", err.Error()))
		} else {
			logger.Warn("Vault movement rejected", slog.String("error", err.Error()))
		}
		c.JSON(status, gin.H{"error": msg})
		return
	}

	logger.Info("Vault movement recorded", slog.String("transaction_id", record.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionRecordResponse(record))
}

func (h *ledgerHandler) listVaultTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for listVaultTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	records, err := h.ledgerService.ListVaultTransactions(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list vault transactions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list vault transactions"})
		return
	}

	c.JSON(http.StatusOK, dto.ListTransactionsResponse{Transactions: dto.ToTransactionRecordResponses(records)})
}
