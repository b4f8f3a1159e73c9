package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de pago.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusOverdue = "overdue"
	PaymentStatusPartial = "partial"
)

// Payment es un registro histórico de pago de un cliente. Inmutable para el
// motor de scoring: se lee para calcular puntajes, nunca se crea desde ahí.
type Payment struct {
	ID              string
	CustomerID      string
	PaymentDate     time.Time
	Amount          decimal.Decimal
	DueDate         time.Time
	Status          string // pending | paid | overdue | partial
	PaymentMethod   string
	ReferenceNumber string
	Notes           string
	CreatedAt       time.Time
}

// DaysLate devuelve los días completos entre la fecha de pago y el vencimiento
// (negativo si pagó antes del vencimiento).
func (p Payment) DaysLate() int {
	return int(p.PaymentDate.Sub(p.DueDate).Hours() / 24)
}
