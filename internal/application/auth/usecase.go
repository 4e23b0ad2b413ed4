// Package auth implementa registro, login y arranque de la cuenta admin.
package auth

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Clientes-api/internal/application"
	"github.com/jhoicas/Clientes-api/internal/application/dto"
	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
	"github.com/jhoicas/Clientes-api/internal/domain/repository"
	"github.com/jhoicas/Clientes-api/internal/domain/result"
	"github.com/jhoicas/Clientes-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	users  repository.UserRepository
	ids    application.IDGenerator
	jwtCfg JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(users repository.UserRepository, ids application.IDGenerator, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{users: users, ids: ids, jwtCfg: jwtCfg}
}

// Register crea una cuenta nueva: hashea la contraseña con bcrypt y
// persiste. Un email ya registrado produce un conflicto.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) result.Result[dto.UserDto] {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return result.Fail[dto.UserDto](result.Unknown(err))
	}
	now := time.Now().UTC()
	user := &entity.User{
		ID:           uc.ids.NewID(),
		Email:        in.Email,
		PasswordHash: string(hash),
		CreatedDate:  now,
		ModifiedDate: now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return result.Fail[dto.UserDto](result.Conflict("A user with that email already exists."))
		}
		return result.Fail[dto.UserDto](result.Unknown(err))
	}
	return result.Ok(dto.NewUserDto(user, false))
}

// Login verifica email y contraseña, genera el JWT y devuelve token +
// usuario. Las credenciales inválidas no distinguen entre cuenta
// inexistente y contraseña errónea.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) result.Result[dto.LoginResponse] {
	user, err := uc.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return result.Fail[dto.LoginResponse](result.Unknown(err))
	}
	if user == nil {
		return result.Fail[dto.LoginResponse](result.AccessDenied("Invalid email or password."))
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return result.Fail[dto.LoginResponse](result.AccessDenied("Invalid email or password."))
	}
	isAdmin, err := uc.users.HasRole(ctx, user.ID, entity.RoleAdmin)
	if err != nil {
		return result.Fail[dto.LoginResponse](result.Unknown(err))
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, isAdmin, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return result.Fail[dto.LoginResponse](result.Unknown(err))
	}
	return result.Ok(dto.LoginResponse{
		Token: token,
		User:  dto.NewUserDto(user, isAdmin),
	})
}

// EnsureAdmin garantiza que exista la cuenta admin de arranque. La
// invariante "no borrar el último admin" necesita al menos un admin;
// esta siembra es idempotente y no toca cuentas existentes salvo el rol.
func (uc *AuthUseCase) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" {
		return nil
	}
	existing, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing == nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		existing = &entity.User{
			ID:           uc.ids.NewID(),
			Email:        email,
			PasswordHash: string(hash),
			CreatedDate:  now,
			ModifiedDate: now,
		}
		if err := uc.users.Create(ctx, existing); err != nil {
			return err
		}
	}
	return uc.users.AssignRole(ctx, existing.ID, entity.RoleAdmin)
}
