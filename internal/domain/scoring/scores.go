// Package scoring implementa las fórmulas puras de puntaje de clientes
// (servicios de dominio, sin I/O). Todos los puntajes viven en [0,100].
package scoring

import (
	"math"

	"github.com/clix-soa/allocation-api/internal/domain/entity"
)

// Weights pondera los sub-puntajes en el puntaje global.
// StockAvailability está declarado en la configuración original pero la fórmula
// nunca lo aplica; se conserva como campo reservado para mantener paridad de
// comportamiento (ver DESIGN.md).
type Weights struct {
	Performance       float64
	PaymentFrequency  float64
	CreditPeriod      float64
	StockAvailability float64 // reservado, no participa en OverallScore
}

// DefaultWeights pesos por defecto del algoritmo.
func DefaultWeights() Weights {
	return Weights{
		Performance:       0.30,
		PaymentFrequency:  0.25,
		CreditPeriod:      0.25,
		StockAvailability: 0.20,
	}
}

// PaymentFrequencyScore puntúa la frecuencia de pago sobre los pagos con
// estado "paid": 70% porcentaje a tiempo + 30% penalización por días promedio
// de atraso (2 puntos por día, piso en 0). Sin pagos "paid" el puntaje es 0.
func PaymentFrequencyScore(payments []entity.Payment) float64 {
	var paid []entity.Payment
	for _, p := range payments {
		if p.Status == entity.PaymentStatusPaid {
			paid = append(paid, p)
		}
	}
	if len(paid) == 0 {
		return 0
	}

	onTime := 0
	totalDays := 0
	for _, p := range paid {
		if !p.PaymentDate.After(p.DueDate) {
			onTime++
		}
		totalDays += p.DaysLate()
	}
	onTimePct := float64(onTime) / float64(len(paid)) * 100
	avgDays := float64(totalDays) / float64(len(paid))

	onTimeScore := onTimePct * 0.7
	daysScore := math.Max(0, 100-math.Abs(avgDays)*2) * 0.3

	return clamp(onTimeScore + daysScore)
}

// CreditPeriodScore puntúa el cumplimiento del plazo de crédito sobre TODOS
// los pagos del cliente: resta 0.6 puntos por cada punto porcentual de pagos
// vencidos y hasta 30 puntos por días promedio de mora. Sin historial de
// pagos devuelve 50 (neutral: no castiga clientes nuevos).
func CreditPeriodScore(payments []entity.Payment) float64 {
	if len(payments) == 0 {
		return 50
	}

	overdueCount := 0
	lateDays := 0
	lateCount := 0
	for _, p := range payments {
		if p.Status == entity.PaymentStatusOverdue {
			overdueCount++
		}
		if p.PaymentDate.After(p.DueDate) {
			lateDays += p.DaysLate()
			lateCount++
		}
	}
	overduePct := float64(overdueCount) / float64(len(payments)) * 100

	var avgOverdueDays float64
	if lateCount > 0 {
		avgOverdueDays = float64(lateDays) / float64(lateCount)
	}

	baseScore := 100 - overduePct*0.6
	daysPenalty := math.Min(30, avgOverdueDays*0.5)

	return clamp(baseScore - daysPenalty)
}

// PerformanceScore puntúa el desempeño de órdenes del cliente:
// 30% cantidad de órdenes (10 órdenes = 100), 40% tasa de cumplimiento,
// 30% volumen asignado acumulado (1000 unidades = 100).
// Sin órdenes el puntaje es 0.
func PerformanceScore(orders []entity.Order) float64 {
	if len(orders) == 0 {
		return 0
	}

	fulfilled := 0
	var totalValue float64
	for _, o := range orders {
		if o.Status == entity.OrderStatusFulfilled {
			fulfilled++
		}
		totalValue += o.TotalQuantity
	}
	fulfillmentPct := float64(fulfilled) / float64(len(orders)) * 100

	orderCountScore := math.Min(100, float64(len(orders))/10*100) * 0.3
	fulfillmentScore := fulfillmentPct * 0.4
	valueScore := math.Min(100, totalValue/1000*100) * 0.3

	return clamp(orderCountScore + fulfillmentScore + valueScore)
}

// OverallScore combina los sub-puntajes con los pesos configurados.
// Nótese que StockAvailability no entra en la suma.
func OverallScore(w Weights, performance, paymentFrequency, creditPeriod float64) float64 {
	return performance*w.Performance +
		paymentFrequency*w.PaymentFrequency +
		creditPeriod*w.CreditPeriod
}

func clamp(v float64) float64 {
	return math.Min(100, math.Max(0, v))
}
