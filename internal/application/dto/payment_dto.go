package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePaymentRequest registro de un pago.
type CreatePaymentRequest struct {
	CustomerID      string          `json:"customer_id"`
	PaymentDate     time.Time       `json:"payment_date"`
	Amount          decimal.Decimal `json:"amount"`
	DueDate         time.Time       `json:"due_date"`
	Status          string          `json:"status"`
	PaymentMethod   string          `json:"payment_method"`
	ReferenceNumber string          `json:"reference_number"`
	Notes           string          `json:"notes"`
}

// UpdatePaymentRequest actualización de un pago (estado, fecha, monto).
type UpdatePaymentRequest struct {
	PaymentDate   time.Time       `json:"payment_date"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"payment_method"`
	Notes         string          `json:"notes"`
}

// PaymentResponse representación HTTP de un pago.
type PaymentResponse struct {
	ID              string          `json:"id"`
	CustomerID      string          `json:"customer_id"`
	PaymentDate     time.Time       `json:"payment_date"`
	Amount          decimal.Decimal `json:"amount"`
	DueDate         time.Time       `json:"due_date"`
	Status          string          `json:"status"`
	PaymentMethod   string          `json:"payment_method,omitempty"`
	ReferenceNumber string          `json:"reference_number,omitempty"`
	Notes           string          `json:"notes,omitempty"`
}
