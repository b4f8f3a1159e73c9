package repository

import (
	"context"

	"github.com/clix-soa/allocation-api/internal/domain/entity"
)

// PaymentRepository define el puerto de persistencia para Payment.
// El motor de scoring solo lee; la escritura es para el CRUD externo.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetByID(ctx context.Context, id string) (*entity.Payment, error)
	ListByCustomer(ctx context.Context, customerID string) ([]entity.Payment, error)
	List(ctx context.Context, customerID, status string, limit, offset int) ([]*entity.Payment, error)
	Update(ctx context.Context, payment *entity.Payment) error
	Delete(ctx context.Context, id string) error
}
