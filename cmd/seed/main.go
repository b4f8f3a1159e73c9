// seed puebla la base con un juego de datos de demostración: clientes con
// distintos perfiles de pago, ítems de inventario, órdenes pendientes y un
// usuario admin. Pensado para probar corridas de asignación en local.
//
// Uso: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/clix-soa/allocation-api/internal/domain/entity"
	"github.com/clix-soa/allocation-api/internal/infrastructure/postgres"
	"github.com/clix-soa/allocation-api/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fail("cargar configuración", err)
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fail("conexión a PostgreSQL", err)
	}
	defer pool.Close()

	customerRepo := postgres.NewCustomerRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	now := time.Now()

	// Clientes con perfiles de pago distintos (bueno, tardío, excelente, moroso)
	customers := []*entity.Customer{
		newCustomer("ABC Textiles Ltd", "9876543210", "abc@textiles.com", "123 Textile Street, Mumbai", 500000, 30, now),
		newCustomer("XYZ Garments", "9876543211", "xyz@garments.com", "456 Garment Road, Delhi", 300000, 45, now),
		newCustomer("Premium Innerwear Co", "9876543212", "premium@innerwear.com", "789 Fashion Avenue, Bangalore", 750000, 30, now),
		newCustomer("Budget Wear Solutions", "9876543213", "budget@wear.com", "321 Economy Lane, Chennai", 200000, 60, now),
	}
	for _, c := range customers {
		if err := customerRepo.Create(ctx, c); err != nil {
			fail("crear cliente "+c.Name, err)
		}
	}
	fmt.Printf("creados %d clientes\n", len(customers))

	items := []*entity.Inventory{
		newItem("INW-M-001", "Men's Cotton Briefs - White", "Men", 5000, now),
		newItem("INW-M-002", "Men's Cotton Briefs - Black", "Men", 4500, now),
		newItem("INW-W-001", "Women's Cotton Panties - White", "Women", 6000, now),
		newItem("INW-W-002", "Women's Cotton Panties - Black", "Women", 5500, now),
		newItem("INW-K-001", "Kids Cotton Underwear - White", "Kids", 3000, now),
	}
	for _, it := range items {
		if err := inventoryRepo.Create(ctx, it); err != nil {
			fail("crear ítem "+it.ProductCode, err)
		}
	}
	fmt.Printf("creados %d ítems de inventario\n", len(items))

	// Órdenes pendientes compitiendo por el mismo stock
	type line struct {
		item *entity.Inventory
		qty  float64
	}
	orderDefs := []struct {
		customer *entity.Customer
		lines    []line
	}{
		{customers[0], []line{{items[0], 1000}, {items[1], 800}}},
		{customers[1], []line{{items[2], 1200}, {items[3], 1000}}},
		{customers[2], []line{{items[0], 1500}, {items[1], 1200}, {items[2], 2000}}},
		{customers[3], []line{{items[4], 500}}},
	}
	for _, def := range orderDefs {
		order := &entity.Order{
			ID:         uuid.New().String(),
			CustomerID: def.customer.ID,
			OrderDate:  now.AddDate(0, 0, -5),
			Status:     entity.OrderStatusPending,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		for _, l := range def.lines {
			order.Items = append(order.Items, entity.OrderItem{
				ID:                uuid.New().String(),
				OrderID:           order.ID,
				InventoryID:       l.item.ID,
				RequestedQuantity: l.qty,
				CreatedAt:         now,
			})
		}
		if err := orderRepo.Create(ctx, order); err != nil {
			fail("crear orden de "+def.customer.Name, err)
		}
	}
	fmt.Printf("creadas %d órdenes pendientes\n", len(orderDefs))

	// Historial de pagos: a tiempo, tardíos y vencidos
	payments := []struct {
		customer *entity.Customer
		amount   float64
		dueDays  int // días atrás del vencimiento
		paidDays int // días atrás del pago (0 = sin pagar)
		status   string
	}{
		{customers[0], 50000, 30, 28, entity.PaymentStatusPaid},
		{customers[0], 75000, 15, 14, entity.PaymentStatusPaid},
		{customers[1], 40000, 45, 50, entity.PaymentStatusPaid},
		{customers[1], 60000, 20, 25, entity.PaymentStatusPaid},
		{customers[2], 100000, 30, 28, entity.PaymentStatusPaid},
		{customers[2], 120000, 10, 8, entity.PaymentStatusPaid},
		{customers[3], 25000, 20, 0, entity.PaymentStatusOverdue},
	}
	for _, p := range payments {
		payment := &entity.Payment{
			ID:         uuid.New().String(),
			CustomerID: p.customer.ID,
			Amount:     decimal.NewFromFloat(p.amount),
			DueDate:    now.AddDate(0, 0, -p.dueDays),
			Status:     p.status,
			CreatedAt:  now,
		}
		if p.paidDays > 0 {
			payment.PaymentDate = now.AddDate(0, 0, -p.paidDays)
		}
		if err := paymentRepo.Create(ctx, payment); err != nil {
			fail("crear pago de "+p.customer.Name, err)
		}
	}
	fmt.Printf("creados %d pagos\n", len(payments))

	// Usuario admin de demo
	hash, err := bcrypt.GenerateFromPassword([]byte("admin12345"), bcrypt.DefaultCost)
	if err != nil {
		fail("hashear password", err)
	}
	admin := &entity.User{
		ID:           uuid.New().String(),
		Email:        "admin@allocation.local",
		PasswordHash: string(hash),
		Name:         "Admin",
		Role:         entity.RoleAdmin,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		fail("crear usuario admin", err)
	}
	fmt.Println("usuario admin@allocation.local creado (password: admin12345)")
	fmt.Println("datos de demostración listos")
}

func newCustomer(name, contact, email, address string, creditLimit float64, creditDays int, now time.Time) *entity.Customer {
	return &entity.Customer{
		ID:               uuid.New().String(),
		Name:             name,
		Contact:          contact,
		Email:            email,
		Address:          address,
		Status:           entity.CustomerStatusActive,
		CreditLimit:      decimal.NewFromFloat(creditLimit),
		CreditPeriodDays: creditDays,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func newItem(code, name, category string, available float64, now time.Time) *entity.Inventory {
	return &entity.Inventory{
		ID:                uuid.New().String(),
		ProductCode:       code,
		ProductName:       name,
		Category:          category,
		AvailableQuantity: available,
		Unit:              "pieces",
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func fail(msg string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	os.Exit(1)
}
