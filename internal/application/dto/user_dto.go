package dto

import (
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
	"github.com/jhoicas/Clientes-api/internal/domain/result"
)

// UserDto salida de un usuario (sin hash de contraseña). IsAdmin se deriva
// de la pertenencia al rol, no es un campo almacenado.
type UserDto struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

// NewUserDto proyecta la entidad al DTO con la bandera de admin resuelta.
func NewUserDto(u *entity.User, isAdmin bool) UserDto {
	return UserDto{ID: u.ID, Email: u.Email, IsAdmin: isAdmin}
}

// CreateUserDto entrada para crear un usuario (password en texto, se
// hashea en el servicio).
type CreateUserDto struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"isAdmin"`
}

// Validate comprobaciones de contrato.
func (d CreateUserDto) Validate() result.Status {
	return result.Merge(
		result.FailIf(d.Email == "", result.Validation("email", "Email is required.")),
		result.FailIf(d.Password == "", result.Validation("password", "Password is required.")),
	)
}

// UpdateUserDto entrada para actualizar un usuario; todos los campos son
// opcionales. IsAdmin en nil significa "no cambiar el rol".
type UpdateUserDto struct {
	NewEmail    string `json:"newEmail"`
	NewPassword string `json:"newPassword"`
	IsAdmin     *bool  `json:"isAdmin"`
}

// RegisterRequest entrada para registro (auth).
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate comprobaciones de contrato.
func (d RegisterRequest) Validate() result.Status {
	return result.Merge(
		result.FailIf(d.Email == "", result.Validation("email", "Email is required.")),
		result.FailIf(d.Password == "", result.Validation("password", "Password is required.")),
	)
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse salida con el token JWT y el usuario autenticado.
type LoginResponse struct {
	Token string  `json:"token"`
	User  UserDto `json:"user"`
}
