package entity

import "time"

// CustomerMetric guarda los puntajes calculados de un cliente (uno a uno con
// Customer). Se sobreescribe en cada recálculo, nunca se duplica.
// Todos los puntajes están en el rango [0,100].
type CustomerMetric struct {
	ID         string
	CustomerID string

	TotalOrders           int
	TotalOrderValue       float64
	PaymentFrequencyScore float64
	CreditPeriodScore     float64
	PerformanceScore      float64
	OverallScore          float64

	OnTimePaymentPercentage float64
	AverageDaysToPayment    float64
	OverdueCount            int
	TotalPayments           int

	LastCalculated time.Time
	UpdatedAt      time.Time
}
