package memory

import (
	"cmp"
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/internal/domain/repository"
)

// Repository implementación genérica del puerto de escritura sobre un
// Store. Las escrituras se encolan en la unidad de trabajo como cierres
// que leen el estado de la entidad al momento del SaveChanges.
type Repository[E repository.Entity[K], K cmp.Ordered] struct {
	name  string
	store *Store[E, K]
	uow   *UnitOfWork
}

// NewRepository construye el repositorio y adscribe el almacén a la
// unidad de trabajo.
func NewRepository[E repository.Entity[K], K cmp.Ordered](name string, store *Store[E, K], uow *UnitOfWork) *Repository[E, K] {
	Attach(uow, store)
	return &Repository[E, K]{name: name, store: store, uow: uow}
}

// Count devuelve el total de entidades.
func (r *Repository[E, K]) Count(ctx context.Context) (int64, error) {
	return int64(r.store.Len()), nil
}

// CountWhere devuelve el total de entidades que cumplen el filtro.
func (r *Repository[E, K]) CountWhere(ctx context.Context, filter repository.Filter[E]) (int64, error) {
	var count int64
	for _, e := range r.store.All() {
		if filter.Match(e) {
			count++
		}
	}
	return count, nil
}

// Exists indica si alguna entidad cumple el filtro.
func (r *Repository[E, K]) Exists(ctx context.Context, filter repository.Filter[E]) (bool, error) {
	for _, e := range r.store.All() {
		if filter.Match(e) {
			return true, nil
		}
	}
	return false, nil
}

// GetAll devuelve todas las entidades ordenadas por id.
func (r *Repository[E, K]) GetAll(ctx context.Context) ([]E, error) {
	return r.store.All(), nil
}

// GetPage devuelve una página ordenada.
func (r *Repository[E, K]) GetPage(ctx context.Context, skip, take int, order *repository.Order[E]) ([]E, error) {
	return page(r.store.All(), skip, take, order), nil
}

// GetPageWhere variante filtrada de GetPage.
func (r *Repository[E, K]) GetPageWhere(ctx context.Context, filter repository.Filter[E], skip, take int, order *repository.Order[E]) ([]E, error) {
	var matched []E
	for _, e := range r.store.All() {
		if filter.Match(e) {
			matched = append(matched, e)
		}
	}
	return page(matched, skip, take, order), nil
}

// GetByID devuelve la entidad o el cero de E si no existe. El id cero
// corta en corto.
func (r *Repository[E, K]) GetByID(ctx context.Context, id K) (E, error) {
	var zero E
	var zeroID K
	if id == zeroID {
		return zero, nil
	}
	e, ok := r.store.Get(id)
	if !ok {
		return zero, nil
	}
	return e, nil
}

// Find devuelve las entidades que cumplen el filtro, ordenadas por id.
func (r *Repository[E, K]) Find(ctx context.Context, filter repository.Filter[E]) ([]E, error) {
	var matched []E
	for _, e := range r.store.All() {
		if filter.Match(e) {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

// Add encola la inserción; un id ya existente al guardar es duplicado.
func (r *Repository[E, K]) Add(ctx context.Context, e E) error {
	id := e.ID()
	r.uow.enqueue(func() (int64, error) {
		if r.store.Has(id) {
			return 0, fmt.Errorf("guardar cambios: %w", domain.ErrDuplicate)
		}
		r.store.Put(id, e)
		return 1, nil
	}, r.trackKey(id))
	return nil
}

// AddRange encola la inserción de varias entidades.
func (r *Repository[E, K]) AddRange(ctx context.Context, es []E) error {
	for _, e := range es {
		if err := r.Add(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

// Update encola la reescritura; no-op si la entidad ya está rastreada.
func (r *Repository[E, K]) Update(ctx context.Context, e E) error {
	id := e.ID()
	key := r.trackKey(id)
	if r.uow.isTracked(key) {
		return nil
	}
	r.uow.enqueue(func() (int64, error) {
		r.store.Put(id, e)
		return 1, nil
	}, key)
	return nil
}

// UpdateRange encola la reescritura de varias entidades.
func (r *Repository[E, K]) UpdateRange(ctx context.Context, es []E) error {
	for _, e := range es {
		if err := r.Update(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

// Delete encola el borrado de la entidad.
func (r *Repository[E, K]) Delete(ctx context.Context, e E) error {
	id := e.ID()
	r.uow.enqueue(func() (int64, error) {
		if r.store.Delete(id) {
			return 1, nil
		}
		return 0, nil
	}, r.trackKey(id))
	return nil
}

// DeleteRange encola el borrado de varias entidades.
func (r *Repository[E, K]) DeleteRange(ctx context.Context, es []E) error {
	for _, e := range es {
		if err := r.Delete(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

// DeleteRangeByIDs busca las entidades existentes por id y encola su
// borrado; ids ausentes se ignoran.
func (r *Repository[E, K]) DeleteRangeByIDs(ctx context.Context, ids []K) error {
	var found []E
	for _, id := range ids {
		if e, ok := r.store.Get(id); ok {
			found = append(found, e)
		}
	}
	return r.DeleteRange(ctx, found)
}

func (r *Repository[E, K]) trackKey(id K) string {
	return fmt.Sprintf("%s\x00%v", r.name, id)
}

// page ordena y recorta una lista según skip/take.
func page[E any](list []E, skip, take int, order *repository.Order[E]) []E {
	if order != nil && order.Less != nil {
		sort.SliceStable(list, func(i, j int) bool {
			if order.Descending {
				return order.Less(list[j], list[i])
			}
			return order.Less(list[i], list[j])
		})
	}
	if skip >= len(list) {
		return nil
	}
	list = list[skip:]
	if take < len(list) {
		list = list[:take]
	}
	return list
}
