package repository

import (
	"context"

	"github.com/jhoicas/Clientes-api/internal/domain/entity"
)

// UserRepository puerto de persistencia del subsistema de identidad.
// A diferencia del repositorio genérico, sus operaciones son inmediatas y
// atómicas (semántica de framework de identidad externo): no pasan por la
// unidad de trabajo.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context, skip, take int) ([]*entity.User, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id string) error

	// Primitivas de rol, análogas a add/remove-role del framework de
	// identidad. AssignRole es idempotente.
	AssignRole(ctx context.Context, userID, role string) error
	RemoveRole(ctx context.Context, userID, role string) error
	HasRole(ctx context.Context, userID, role string) (bool, error)
	CountInRole(ctx context.Context, role string) (int64, error)
	// IDsInRole devuelve los ids de los usuarios con el rol, para resolver
	// la bandera de admin de una página entera sin consultar por usuario.
	IDsInRole(ctx context.Context, role string) (map[string]struct{}, error)
}
