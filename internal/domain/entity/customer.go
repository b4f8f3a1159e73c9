package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de cliente.
const (
	CustomerStatusActive   = "active"
	CustomerStatusInactive = "inactive"
)

// Customer representa un cliente que compite por stock en las corridas de asignación.
// CreditPeriodDays es el plazo de pago pactado; el motor de scoring lo lee, nunca lo escribe.
type Customer struct {
	ID               string
	Name             string
	Contact          string
	Email            string
	Address          string
	Status           string // active | inactive
	CreditLimit      decimal.Decimal
	CreditPeriodDays int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
