package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/clix-soa/allocation-api/internal/domain/entity"
)

var base = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

// paidPayment construye un pago "paid" pagado daysLate días después del
// vencimiento (negativo = pagó antes).
func paidPayment(daysLate int) entity.Payment {
	return entity.Payment{
		Status:      entity.PaymentStatusPaid,
		DueDate:     base,
		PaymentDate: base.AddDate(0, 0, daysLate),
	}
}

func TestPaymentFrequencyScore(t *testing.T) {
	t.Run("sin pagos paid devuelve cero", func(t *testing.T) {
		assert.Zero(t, PaymentFrequencyScore(nil))
		assert.Zero(t, PaymentFrequencyScore([]entity.Payment{
			{Status: entity.PaymentStatusPending, DueDate: base},
			{Status: entity.PaymentStatusOverdue, DueDate: base},
		}))
	})

	t.Run("pago exacto al vencimiento puntua 100", func(t *testing.T) {
		// onTime 100% -> 70; cero días de atraso -> 30
		assert.InDelta(t, 100, PaymentFrequencyScore([]entity.Payment{paidPayment(0)}), 1e-9)
	})

	t.Run("pago 10 dias tarde", func(t *testing.T) {
		// onTime 0% -> 0; (100 - 10*2) * 0.3 = 24
		assert.InDelta(t, 24, PaymentFrequencyScore([]entity.Payment{paidPayment(10)}), 1e-9)
	})

	t.Run("pagar muy temprano tambien penaliza el promedio", func(t *testing.T) {
		// onTime 100% -> 70; |avg -20| * 2 = 40 -> (100-40)*0.3 = 18
		assert.InDelta(t, 88, PaymentFrequencyScore([]entity.Payment{paidPayment(-20)}), 1e-9)
	})

	t.Run("mezcla de a tiempo y tardio", func(t *testing.T) {
		// onTime 50% -> 35; avg (0 + 10)/2 = 5 -> (100-10)*0.3 = 27
		score := PaymentFrequencyScore([]entity.Payment{paidPayment(0), paidPayment(10)})
		assert.InDelta(t, 62, score, 1e-9)
	})

	t.Run("atraso extremo no baja de cero el componente de dias", func(t *testing.T) {
		// avg 100 días -> max(0, 100-200) = 0; queda solo onTime 0
		assert.InDelta(t, 0, PaymentFrequencyScore([]entity.Payment{paidPayment(100)}), 1e-9)
	})
}

func TestCreditPeriodScore(t *testing.T) {
	t.Run("sin historial devuelve 50 neutral", func(t *testing.T) {
		assert.InDelta(t, 50, CreditPeriodScore(nil), 1e-9)
	})

	t.Run("historial limpio puntua 100", func(t *testing.T) {
		assert.InDelta(t, 100, CreditPeriodScore([]entity.Payment{paidPayment(0), paidPayment(-3)}), 1e-9)
	})

	t.Run("mitad vencidos", func(t *testing.T) {
		payments := []entity.Payment{
			paidPayment(0),
			{Status: entity.PaymentStatusOverdue, DueDate: base}, // sin fecha de pago
		}
		// overdue 50% -> 100 - 30 = 70; sin días de mora registrados
		assert.InDelta(t, 70, CreditPeriodScore(payments), 1e-9)
	})

	t.Run("mora prolongada acota la penalizacion de dias en 30", func(t *testing.T) {
		payments := []entity.Payment{paidPayment(200)} // pagado tardísimo, no overdue
		// overdue 0% -> base 100; min(30, 200*0.5) = 30
		assert.InDelta(t, 70, CreditPeriodScore(payments), 1e-9)
	})

	t.Run("todo vencido no baja de cero", func(t *testing.T) {
		payments := []entity.Payment{
			{Status: entity.PaymentStatusOverdue, DueDate: base, PaymentDate: base.AddDate(0, 0, 90)},
			{Status: entity.PaymentStatusOverdue, DueDate: base, PaymentDate: base.AddDate(0, 0, 90)},
		}
		// overdue 100% -> 40; penalización de días 30 -> 10
		assert.InDelta(t, 10, CreditPeriodScore(payments), 1e-9)
	})
}

func TestPerformanceScore(t *testing.T) {
	t.Run("sin ordenes devuelve cero", func(t *testing.T) {
		assert.Zero(t, PerformanceScore(nil))
	})

	t.Run("historial parcial", func(t *testing.T) {
		orders := []entity.Order{
			{Status: entity.OrderStatusFulfilled, TotalQuantity: 200},
			{Status: entity.OrderStatusFulfilled, TotalQuantity: 200},
			{Status: entity.OrderStatusPending, TotalQuantity: 100},
			{Status: entity.OrderStatusAllocated, TotalQuantity: 0},
			{Status: entity.OrderStatusCancelled, TotalQuantity: 0},
		}
		// count: 5/10 -> 50*0.3 = 15; fulfilled 40% -> 16; valor 500/1000 -> 50*0.3 = 15
		assert.InDelta(t, 46, PerformanceScore(orders), 1e-9)
	})

	t.Run("historial perfecto puntua 100", func(t *testing.T) {
		orders := make([]entity.Order, 10)
		for i := range orders {
			orders[i] = entity.Order{Status: entity.OrderStatusFulfilled, TotalQuantity: 100}
		}
		assert.InDelta(t, 100, PerformanceScore(orders), 1e-9)
	})

	t.Run("volumen y cantidad saturan en 100", func(t *testing.T) {
		orders := make([]entity.Order, 50)
		for i := range orders {
			orders[i] = entity.Order{Status: entity.OrderStatusFulfilled, TotalQuantity: 10000}
		}
		assert.InDelta(t, 100, PerformanceScore(orders), 1e-9)
	})
}

func TestOverallScore(t *testing.T) {
	w := DefaultWeights()

	// El peso de stock (0.20) está reservado y no participa: subpuntajes
	// perfectos suman 0.80, no 1.00.
	assert.InDelta(t, 80, OverallScore(w, 100, 100, 100), 1e-9)
	assert.Zero(t, OverallScore(w, 0, 0, 0))
	assert.InDelta(t, 0.30*50+0.25*60+0.25*70, OverallScore(w, 50, 60, 70), 1e-9)
}
