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

// CustomerUseCase casos de uso CRUD para clientes.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create crea un nuevo cliente (estado inicial: active).
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	creditPeriod := in.CreditPeriodDays
	if creditPeriod <= 0 {
		creditPeriod = 30
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:               uuid.New().String(),
		Name:             in.Name,
		Contact:          in.Contact,
		Email:            in.Email,
		Address:          in.Address,
		Status:           entity.CustomerStatusActive,
		CreditLimit:      in.CreditLimit,
		CreditPeriodDays: creditPeriod,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetByID obtiene un cliente por ID.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return toCustomerResponse(customer), nil
}

// List lista clientes con paginación.
func (uc *CustomerUseCase) List(ctx context.Context, page dto.PageRequest) ([]*dto.CustomerResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

// Update actualiza los datos de un cliente.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		customer.Name = in.Name
	}
	if in.Status != "" {
		customer.Status = in.Status
	}
	if in.Contact != "" {
		customer.Contact = in.Contact
	}
	if in.Email != "" {
		customer.Email = in.Email
	}
	if in.Address != "" {
		customer.Address = in.Address
	}
	if !in.CreditLimit.IsZero() {
		customer.CreditLimit = in.CreditLimit
	}
	if in.CreditPeriodDays > 0 {
		customer.CreditPeriodDays = in.CreditPeriodDays
	}
	customer.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// Delete elimina un cliente.
func (uc *CustomerUseCase) Delete(ctx context.Context, id string) error {
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:               c.ID,
		Name:             c.Name,
		Contact:          c.Contact,
		Email:            c.Email,
		Address:          c.Address,
		Status:           c.Status,
		CreditLimit:      c.CreditLimit,
		CreditPeriodDays: c.CreditPeriodDays,
		CreatedAt:        c.CreatedAt,
	}
}
