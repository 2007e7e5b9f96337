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

// inventoryHandler handles HTTP requests related to inventory items.
type inventoryHandler struct {
	inventoryService portssvc.InventorySvcFacade
}

func newInventoryHandler(is portssvc.InventorySvcFacade) *inventoryHandler {
	return &inventoryHandler{
		inventoryService: is,
	}
}

// registerInventoryRoutes registers all inventory-related routes. RFID lookup
// lives outside /items to keep the item path parameter unambiguous.
func registerInventoryRoutes(rg *gin.RouterGroup, inventoryService portssvc.InventorySvcFacade) {
	h := newInventoryHandler(inventoryService)

	items := rg.Group("/items")
	{
		items.POST("", h.createItem)
		items.GET("", h.listItems)
		items.GET("/:itemID", h.getItem)
		items.PUT("/:itemID", h.updateItem)
		items.POST("/:itemID/stock-correction", h.correctStock)
		items.DELETE("/:itemID", h.deactivateItem)
	}

	rg.GET("/rfid/:code", h.getItemByRFID)
}

func (h *inventoryHandler) createItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for create item request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received request to create item", slog.String("name", req.Name))

	created, err := h.inventoryService.CreateItem(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Item rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Duplicate item", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": "Item already exists"})
			return
		}
		logger.Error("Failed to create item in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create item"})
		return
	}

	logger.Info("Item created successfully", slog.String("item_id", created.ItemID))
	c.JSON(http.StatusCreated, dto.ToInventoryItemResponse(created))
}

func (h *inventoryHandler) getItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	itemID := c.Param("itemID")

	item, err := h.inventoryService.GetItemByID(c.Request.Context(), itemID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Item not found", slog.String("item_id", itemID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		} else {
			logger.Error("Failed to get item from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve item"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToInventoryItemResponse(item))
}

func (h *inventoryHandler) getItemByRFID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := c.Param("code")

	item, err := h.inventoryService.GetItemByRFID(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("No item for RFID code", slog.String("rfid_code", code))
			c.JSON(http.StatusNotFound, gin.H{"error": "No item with this RFID code"})
		} else {
			logger.Error("Failed to resolve RFID code", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve RFID code"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToInventoryItemResponse(item))
}

func (h *inventoryHandler) listItems(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListItemsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for listItems", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	items, err := h.inventoryService.ListItems(c.Request.Context(), params.ActiveOnly, params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list items from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list items"})
		return
	}

	c.JSON(http.StatusOK, dto.ListItemsResponse{Items: dto.ToInventoryItemResponses(items)})
}

func (h *inventoryHandler) updateItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	itemID := c.Param("itemID")

	var req dto.UpdateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateItem", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updated, err := h.inventoryService.UpdateItem(c.Request.Context(), itemID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Item not found for update", slog.String("item_id", itemID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		} else {
			logger.Error("Failed to update item in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update item"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToInventoryItemResponse(updated))
}

func (h *inventoryHandler) correctStock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	itemID := c.Param("itemID")

	var req dto.StockCorrectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for correctStock", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received stock correction", slog.String("item_id", itemID))

	updated, err := h.inventoryService.CorrectStock(c.Request.Context(), itemID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Item not found for stock correction", slog.String("item_id", itemID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Stock correction rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to correct stock in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to correct stock"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToInventoryItemResponse(updated))
}

func (h *inventoryHandler) deactivateItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	itemID := c.Param("itemID")

	logger.Info("Received request to deactivate item", slog.String("item_id", itemID))

	if err := h.inventoryService.DeactivateItem(c.Request.Context(), itemID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Item not found for deactivation", slog.String("item_id", itemID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		} else {
			logger.Error("Failed to deactivate item in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate item"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
