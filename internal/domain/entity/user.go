package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"    // todas las tiendas, todas las operaciones
	RoleOperator = "operator" // envía documentos y consulta estado
	RoleAuditor  = "auditor"  // solo lectura: ping, estado y log de auditoría
)

// User operador del conector. StoreID vacío = acceso a todas las tiendas.
type User struct {
	ID           string
	StoreID      string
	Email        string
	PasswordHash string // bcrypt
	Name         string
	Role         string
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
