package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
)

// UserRepository adaptador de identidad en memoria. Igual que el de base
// de datos, sus operaciones son inmediatas: no pasan por la unidad de
// trabajo.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]entity.User
	roles map[string]map[string]struct{} // userID -> conjunto de roles
}

// NewUserRepository crea el repositorio vacío.
func NewUserRepository() *UserRepository {
	return &UserRepository{
		users: make(map[string]entity.User),
		roles: make(map[string]map[string]struct{}),
	}
}

// Create inserta el usuario; email o id repetidos son duplicado.
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; ok {
		return fmt.Errorf("crear usuario: %w", domain.ErrDuplicate)
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return fmt.Errorf("crear usuario: %w", domain.ErrDuplicate)
		}
	}
	r.users[user.ID] = *user
	return nil
}

// GetByID devuelve el usuario o nil si no existe.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// GetByEmail devuelve el usuario o nil si no existe.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

// List devuelve una página de usuarios ordenada por id.
func (r *UserRepository) List(ctx context.Context, skip, take int) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	if skip >= len(ids) {
		return nil, nil
	}
	ids = ids[skip:]
	if take < len(ids) {
		ids = ids[:take]
	}

	list := make([]*entity.User, 0, len(ids))
	for _, id := range ids {
		u := r.users[id]
		list = append(list, &u)
	}
	return list, nil
}

// Count devuelve el total de usuarios.
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.users)), nil
}

// Update reescribe el usuario; cambiar a un email ya en uso es duplicado.
func (r *UserRepository) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, u := range r.users {
		if id != user.ID && u.Email == user.Email {
			return fmt.Errorf("actualizar usuario: %w", domain.ErrDuplicate)
		}
	}
	r.users[user.ID] = *user
	return nil
}

// Delete elimina el usuario y sus roles.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	delete(r.roles, id)
	return nil
}

// AssignRole concede el rol; idempotente.
func (r *UserRepository) AssignRole(ctx context.Context, userID, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.roles[userID]
	if !ok {
		set = make(map[string]struct{})
		r.roles[userID] = set
	}
	set[role] = struct{}{}
	return nil
}

// RemoveRole retira el rol.
func (r *UserRepository) RemoveRole(ctx context.Context, userID, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if set, ok := r.roles[userID]; ok {
		delete(set, role)
	}
	return nil
}

// HasRole indica si el usuario tiene el rol.
func (r *UserRepository) HasRole(ctx context.Context, userID, role string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	set, ok := r.roles[userID]
	if !ok {
		return false, nil
	}
	_, has := set[role]
	return has, nil
}

// CountInRole devuelve cuántos usuarios tienen el rol.
func (r *UserRepository) CountInRole(ctx context.Context, role string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var count int64
	for _, set := range r.roles {
		if _, ok := set[role]; ok {
			count++
		}
	}
	return count, nil
}

// IDsInRole devuelve el conjunto de ids de usuarios con el rol.
func (r *UserRepository) IDsInRole(ctx context.Context, role string) (map[string]struct{}, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make(map[string]struct{})
	for id, set := range r.roles {
		if _, ok := set[role]; ok {
			ids[id] = struct{}{}
		}
	}
	return ids, nil
}
