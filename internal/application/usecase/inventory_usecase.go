package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clix-soa/allocation-api/internal/application/dto"
	"github.com/clix-soa/allocation-api/internal/domain"
	"github.com/clix-soa/allocation-api/internal/domain/entity"
	"github.com/clix-soa/allocation-api/internal/domain/repository"
)

// InventoryUseCase casos de uso CRUD para ítems de inventario.
type InventoryUseCase struct {
	repo repository.InventoryRepository
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(repo repository.InventoryRepository) *InventoryUseCase {
	return &InventoryUseCase{repo: repo}
}

// Create crea un ítem de inventario. El código de producto es único.
func (uc *InventoryUseCase) Create(ctx context.Context, in dto.CreateInventoryRequest) (*dto.InventoryResponse, error) {
	if in.ProductCode == "" || in.ProductName == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByProductCode(ctx, in.ProductCode)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	unit := in.Unit
	if unit == "" {
		unit = "pieces"
	}
	now := time.Now()
	item := &entity.Inventory{
		ID:                uuid.New().String(),
		ProductCode:       in.ProductCode,
		ProductName:       in.ProductName,
		Category:          in.Category,
		Size:              in.Size,
		AvailableQuantity: in.AvailableQuantity,
		ReservedQuantity:  0,
		Unit:              unit,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return toInventoryResponse(item), nil
}

// GetByID obtiene un ítem por ID.
func (uc *InventoryUseCase) GetByID(ctx context.Context, id string) (*dto.InventoryResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return toInventoryResponse(item), nil
}

// GetByProductCode obtiene un ítem por código de producto.
func (uc *InventoryUseCase) GetByProductCode(ctx context.Context, code string) (*dto.InventoryResponse, error) {
	item, err := uc.repo.GetByProductCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return toInventoryResponse(item), nil
}

// List lista ítems, opcionalmente filtrados por categoría.
func (uc *InventoryUseCase) List(ctx context.Context, category string, page dto.PageRequest) ([]*dto.InventoryResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, category, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InventoryResponse, 0, len(list))
	for _, item := range list {
		out = append(out, toInventoryResponse(item))
	}
	return out, nil
}

// Update actualiza un ítem. La cantidad disponible puede ajustarse a mano;
// la reservada solo la toca el motor de asignación.
func (uc *InventoryUseCase) Update(ctx context.Context, id string, in dto.UpdateInventoryRequest) (*dto.InventoryResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if in.ProductName != "" {
		item.ProductName = in.ProductName
	}
	if in.Category != "" {
		item.Category = in.Category
	}
	if in.Size != "" {
		item.Size = in.Size
	}
	if in.Unit != "" {
		item.Unit = in.Unit
	}
	if in.AvailableQuantity >= 0 {
		item.AvailableQuantity = in.AvailableQuantity
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return toInventoryResponse(item), nil
}

// Delete elimina un ítem de inventario.
func (uc *InventoryUseCase) Delete(ctx context.Context, id string) error {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

func toInventoryResponse(i *entity.Inventory) *dto.InventoryResponse {
	return &dto.InventoryResponse{
		ID:                i.ID,
		ProductCode:       i.ProductCode,
		ProductName:       i.ProductName,
		Category:          i.Category,
		Size:              i.Size,
		AvailableQuantity: i.AvailableQuantity,
		ReservedQuantity:  i.ReservedQuantity,
		FreeStock:         i.FreeStock(),
		Unit:              i.Unit,
		UpdatedAt:         i.UpdatedAt,
	}
}
