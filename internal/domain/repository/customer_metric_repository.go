package repository

import (
	"context"

	"github.com/clix-soa/allocation-api/internal/domain/entity"
)

// CustomerMetricRepository define el puerto de persistencia para los puntajes
// calculados. Upsert sobreescribe la fila existente del cliente (nunca duplica).
type CustomerMetricRepository interface {
	GetByCustomer(ctx context.Context, customerID string) (*entity.CustomerMetric, error)
	Upsert(ctx context.Context, metric *entity.CustomerMetric) error
}
