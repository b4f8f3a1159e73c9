package dto

import "time"

// CustomerMetricResponse puntajes calculados de un cliente.
type CustomerMetricResponse struct {
	CustomerID string `json:"customer_id"`

	PaymentFrequencyScore float64 `json:"payment_frequency_score"`
	CreditPeriodScore     float64 `json:"credit_period_score"`
	PerformanceScore      float64 `json:"performance_score"`
	OverallScore          float64 `json:"overall_score"`

	TotalOrders             int     `json:"total_orders"`
	TotalOrderValue         float64 `json:"total_order_value"`
	TotalPayments           int     `json:"total_payments"`
	OverdueCount            int     `json:"overdue_count"`
	OnTimePaymentPercentage float64 `json:"on_time_payment_percentage"`
	AverageDaysToPayment    float64 `json:"average_days_to_payment"`

	LastCalculated time.Time `json:"last_calculated"`
}
