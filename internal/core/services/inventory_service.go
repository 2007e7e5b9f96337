package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/goldvault/goldvault/internal/apperrors"
	"github.com/goldvault/goldvault/internal/core/domain"
	portsrepo "github.com/goldvault/goldvault/internal/core/ports/repositories"
	portssvc "github.com/goldvault/goldvault/internal/core/ports/services"
	"github.com/goldvault/goldvault/internal/dto"
)

// inventoryService provides inventory registry operations.
type inventoryService struct {
	BaseService
	inventoryRepo portsrepo.InventoryRepositoryFacade
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(inventoryRepo portsrepo.InventoryRepositoryFacade) portssvc.InventorySvcFacade {
	return &inventoryService{inventoryRepo: inventoryRepo}
}

var _ portssvc.InventorySvcFacade = (*inventoryService)(nil)

func (s *inventoryService) CreateItem(ctx context.Context, req dto.CreateInventoryItemRequest) (*domain.InventoryItem, error) {
	if req.MassGrams.IsNegative() {
		return nil, fmt.Errorf("%w: mass must not be negative", apperrors.ErrValidation)
	}
	if req.Purity.LessThanOrEqual(decimal.Zero) || req.Purity.GreaterThan(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("%w: purity must be a fraction in (0, 1]", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	item := domain.InventoryItem{
		ItemID:    uuid.NewString(),
		Name:      req.Name,
		Category:  req.Category,
		Barcode:   req.Barcode,
		RFIDCode:  req.RFIDCode,
		MassGrams: req.MassGrams,
		Purity:    req.Purity,
		IsActive:  true,
		Location:  req.Location,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.inventoryRepo.SaveItem(ctx, item); err != nil {
		s.LogError(ctx, err, "Failed to save inventory item")
		return nil, fmt.Errorf("failed to create inventory item: %w", err)
	}

	s.LogInfo(ctx, "Inventory item created", slog.String("item_id", item.ItemID))
	return &item, nil
}

func (s *inventoryService) UpdateItem(ctx context.Context, itemID string, req dto.UpdateInventoryItemRequest) (*domain.InventoryItem, error) {
	item, err := s.inventoryRepo.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Barcode != nil {
		item.Barcode = *req.Barcode
	}
	if req.RFIDCode != nil {
		item.RFIDCode = *req.RFIDCode
	}
	if req.Location != nil {
		item.Location = *req.Location
	}
	item.LastUpdatedAt = time.Now().UTC()

	if err := s.inventoryRepo.UpdateItem(ctx, *item); err != nil {
		s.LogError(ctx, err, "Failed to update inventory item", slog.String("item_id", itemID))
		return nil, fmt.Errorf("failed to update inventory item: %w", err)
	}
	return item, nil
}

// CorrectStock overwrites an item's mass with the result of a physical count.
func (s *inventoryService) CorrectStock(ctx context.Context, itemID string, req dto.StockCorrectionRequest) (*domain.InventoryItem, error) {
	if req.MassGrams.IsNegative() {
		return nil, fmt.Errorf("%w: corrected mass must not be negative", apperrors.ErrValidation)
	}

	item, err := s.inventoryRepo.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.inventoryRepo.CorrectStock(ctx, itemID, req.MassGrams, now); err != nil {
		s.LogError(ctx, err, "Failed to correct stock", slog.String("item_id", itemID))
		return nil, fmt.Errorf("failed to correct stock: %w", err)
	}

	s.LogInfo(ctx, "Stock corrected",
		slog.String("item_id", itemID),
		slog.String("old_mass", item.MassGrams.String()),
		slog.String("new_mass", req.MassGrams.String()))

	item.MassGrams = req.MassGrams
	item.LastUpdatedAt = now
	return item, nil
}

func (s *inventoryService) DeactivateItem(ctx context.Context, itemID string) error {
	return s.inventoryRepo.DeactivateItem(ctx, itemID, time.Now().UTC())
}

func (s *inventoryService) GetItemByID(ctx context.Context, itemID string) (*domain.InventoryItem, error) {
	return s.inventoryRepo.FindItemByID(ctx, itemID)
}

func (s *inventoryService) GetItemByRFID(ctx context.Context, rfidCode string) (*domain.InventoryItem, error) {
	return s.inventoryRepo.FindItemByRFID(ctx, rfidCode)
}

func (s *inventoryService) ListItems(ctx context.Context, activeOnly bool, limit int, offset int) ([]domain.InventoryItem, error) {
	return s.inventoryRepo.ListItems(ctx, activeOnly, limit, offset)
}
