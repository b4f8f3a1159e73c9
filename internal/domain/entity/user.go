package entity

import "time"

// Roles de usuario de la API.
const (
	RoleAdmin    = "admin"
	RoleOperador = "operador"
)

// User usuario de la aplicación (autenticación y RBAC).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string // admin | operador
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
