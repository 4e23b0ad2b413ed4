package entity

import "time"

// Roles válidos para User. La pertenencia se guarda en user_roles, nunca
// como columna del usuario: IsAdmin siempre se deriva consultando roles.
const (
	RoleAdmin = "admin"
)

// User representa una cuenta del subsistema de identidad.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	CreatedDate  time.Time
	ModifiedDate time.Time
}
