package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCustomerRequest alta de cliente.
type CreateCustomerRequest struct {
	Name             string          `json:"name"`
	Contact          string          `json:"contact"`
	Email            string          `json:"email"`
	Address          string          `json:"address"`
	CreditLimit      decimal.Decimal `json:"credit_limit"`
	CreditPeriodDays int             `json:"credit_period_days"`
}

// UpdateCustomerRequest actualización parcial de cliente.
type UpdateCustomerRequest struct {
	Name             string          `json:"name"`
	Contact          string          `json:"contact"`
	Email            string          `json:"email"`
	Address          string          `json:"address"`
	Status           string          `json:"status"`
	CreditLimit      decimal.Decimal `json:"credit_limit"`
	CreditPeriodDays int             `json:"credit_period_days"`
}

// CustomerResponse representación HTTP de un cliente.
type CustomerResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Contact          string          `json:"contact,omitempty"`
	Email            string          `json:"email,omitempty"`
	Address          string          `json:"address,omitempty"`
	Status           string          `json:"status"`
	CreditLimit      decimal.Decimal `json:"credit_limit"`
	CreditPeriodDays int             `json:"credit_period_days"`
	CreatedAt        time.Time       `json:"created_at"`
}
