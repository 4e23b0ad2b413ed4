package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
)

// UserRepository adaptador de identidad sobre users y user_roles.
// Operaciones inmediatas contra el pool: no participan en la unidad de
// trabajo del resto del dominio.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository crea el repositorio de usuarios.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = "id, email, password_hash, created_date, modified_date"

// Create inserta el usuario. Email duplicado se traduce a domain.ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	query := fmt.Sprintf(`
		INSERT INTO users (%s)
		VALUES ($1, $2, $3, $4, $5)`, userColumns)
	_, err := r.pool.Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.CreatedDate, user.ModifiedDate)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("crear usuario: %w", domain.ErrDuplicate)
		}
		return fmt.Errorf("crear usuario: %w", err)
	}
	return nil
}

// GetByID devuelve el usuario o nil si no existe.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE id = $1", userColumns)
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

// GetByEmail devuelve el usuario o nil si no existe.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE email = $1", userColumns)
	return r.scanOne(r.pool.QueryRow(ctx, query, email))
}

// List devuelve una página de usuarios ordenada por id.
func (r *UserRepository) List(ctx context.Context, skip, take int) ([]*entity.User, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM users ORDER BY id ASC OFFSET $1 LIMIT $2", userColumns)
	rows, err := r.pool.Query(ctx, query, skip, take)
	if err != nil {
		return nil, fmt.Errorf("listar usuarios: %w", err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedDate, &u.ModifiedDate); err != nil {
			return nil, fmt.Errorf("escanear usuario: %w", err)
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}

// Count devuelve el total de usuarios.
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, "SELECT count(*) FROM users").Scan(&count); err != nil {
		return 0, fmt.Errorf("contar usuarios: %w", err)
	}
	return count, nil
}

// Update reescribe los campos mutables del usuario.
func (r *UserRepository) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users
		SET email = $2, password_hash = $3, modified_date = $4
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.ModifiedDate)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("actualizar usuario: %w", domain.ErrDuplicate)
		}
		return fmt.Errorf("actualizar usuario: %w", err)
	}
	return nil
}

// Delete elimina el usuario; sus roles caen por cascada.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.pool.Exec(ctx, "DELETE FROM users WHERE id = $1", id); err != nil {
		return fmt.Errorf("eliminar usuario: %w", err)
	}
	return nil
}

// AssignRole concede el rol. Idempotente: asignar un rol ya concedido no
// es un error.
func (r *UserRepository) AssignRole(ctx context.Context, userID, role string) error {
	query := `
		INSERT INTO user_roles (user_id, role)
		VALUES ($1, $2)
		ON CONFLICT (user_id, role) DO NOTHING`
	if _, err := r.pool.Exec(ctx, query, userID, role); err != nil {
		return fmt.Errorf("asignar rol: %w", err)
	}
	return nil
}

// RemoveRole retira el rol.
func (r *UserRepository) RemoveRole(ctx context.Context, userID, role string) error {
	query := "DELETE FROM user_roles WHERE user_id = $1 AND role = $2"
	if _, err := r.pool.Exec(ctx, query, userID, role); err != nil {
		return fmt.Errorf("retirar rol: %w", err)
	}
	return nil
}

// HasRole indica si el usuario tiene el rol.
func (r *UserRepository) HasRole(ctx context.Context, userID, role string) (bool, error) {
	var has bool
	query := "SELECT EXISTS (SELECT 1 FROM user_roles WHERE user_id = $1 AND role = $2)"
	if err := r.pool.QueryRow(ctx, query, userID, role).Scan(&has); err != nil {
		return false, fmt.Errorf("consultar rol: %w", err)
	}
	return has, nil
}

// CountInRole devuelve cuántos usuarios tienen el rol.
func (r *UserRepository) CountInRole(ctx context.Context, role string) (int64, error) {
	var count int64
	query := "SELECT count(*) FROM user_roles WHERE role = $1"
	if err := r.pool.QueryRow(ctx, query, role).Scan(&count); err != nil {
		return 0, fmt.Errorf("contar rol: %w", err)
	}
	return count, nil
}

// IDsInRole devuelve el conjunto de ids de usuarios con el rol.
func (r *UserRepository) IDsInRole(ctx context.Context, role string) (map[string]struct{}, error) {
	rows, err := r.pool.Query(ctx, "SELECT user_id FROM user_roles WHERE role = $1", role)
	if err != nil {
		return nil, fmt.Errorf("listar rol: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("escanear rol: %w", err)
		}
		ids[id] = struct{}{}
	}
	return ids, rows.Err()
}

func (r *UserRepository) scanOne(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedDate, &u.ModifiedDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("escanear usuario: %w", err)
	}
	return &u, nil
}
