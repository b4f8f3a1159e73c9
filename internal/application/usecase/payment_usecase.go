package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/clix-soa/allocation-api/internal/application/dto"
	"github.com/clix-soa/allocation-api/internal/domain"
	"github.com/clix-soa/allocation-api/internal/domain/entity"
	"github.com/clix-soa/allocation-api/internal/domain/repository"
)

// PaymentUseCase casos de uso CRUD para pagos. El motor de scoring consume
// estos registros como historial inmutable.
type PaymentUseCase struct {
	paymentRepo  repository.PaymentRepository
	customerRepo repository.CustomerRepository
}

// NewPaymentUseCase construye el caso de uso.
func NewPaymentUseCase(paymentRepo repository.PaymentRepository, customerRepo repository.CustomerRepository) *PaymentUseCase {
	return &PaymentUseCase{paymentRepo: paymentRepo, customerRepo: customerRepo}
}

// Create registra un pago de un cliente.
func (uc *PaymentUseCase) Create(ctx context.Context, in dto.CreatePaymentRequest) (*dto.PaymentResponse, error) {
	if in.CustomerID == "" || in.Amount.LessThanOrEqual(decimal.Zero) || in.DueDate.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.customerRepo.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	status := in.Status
	if status == "" {
		status = entity.PaymentStatusPending
	}
	payment := &entity.Payment{
		ID:              uuid.New().String(),
		CustomerID:      in.CustomerID,
		PaymentDate:     in.PaymentDate,
		Amount:          in.Amount,
		DueDate:         in.DueDate,
		Status:          status,
		PaymentMethod:   in.PaymentMethod,
		ReferenceNumber: in.ReferenceNumber,
		Notes:           in.Notes,
		CreatedAt:       time.Now(),
	}
	if err := uc.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}
	return toPaymentResponse(payment), nil
}

// GetByID obtiene un pago por ID.
func (uc *PaymentUseCase) GetByID(ctx context.Context, id string) (*dto.PaymentResponse, error) {
	payment, err := uc.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domain.ErrNotFound
	}
	return toPaymentResponse(payment), nil
}

// List lista pagos filtrados por cliente y/o estado.
func (uc *PaymentUseCase) List(ctx context.Context, customerID, status string, page dto.PageRequest) ([]*dto.PaymentResponse, error) {
	page.DefaultPage()
	list, err := uc.paymentRepo.List(ctx, customerID, status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PaymentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPaymentResponse(p))
	}
	return out, nil
}

// Update actualiza un pago (típicamente para marcarlo paid/overdue).
func (uc *PaymentUseCase) Update(ctx context.Context, id string, in dto.UpdatePaymentRequest) (*dto.PaymentResponse, error) {
	payment, err := uc.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domain.ErrNotFound
	}
	if !in.PaymentDate.IsZero() {
		payment.PaymentDate = in.PaymentDate
	}
	if in.Amount.GreaterThan(decimal.Zero) {
		payment.Amount = in.Amount
	}
	if in.Status != "" {
		payment.Status = in.Status
	}
	if in.PaymentMethod != "" {
		payment.PaymentMethod = in.PaymentMethod
	}
	if in.Notes != "" {
		payment.Notes = in.Notes
	}
	if err := uc.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}
	return toPaymentResponse(payment), nil
}

// Delete elimina un pago.
func (uc *PaymentUseCase) Delete(ctx context.Context, id string) error {
	payment, err := uc.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if payment == nil {
		return domain.ErrNotFound
	}
	return uc.paymentRepo.Delete(ctx, id)
}

func toPaymentResponse(p *entity.Payment) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		ID:              p.ID,
		CustomerID:      p.CustomerID,
		PaymentDate:     p.PaymentDate,
		Amount:          p.Amount,
		DueDate:         p.DueDate,
		Status:          p.Status,
		PaymentMethod:   p.PaymentMethod,
		ReferenceNumber: p.ReferenceNumber,
		Notes:           p.Notes,
	}
}
