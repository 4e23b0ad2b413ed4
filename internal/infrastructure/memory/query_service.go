package memory

import (
	"cmp"
	"context"

	"github.com/jhoicas/Clientes-api/internal/domain/repository"
)

// QueryService lecturas de solo proyección sobre un Store. Lee el estado
// confirmado del almacén: no ve las escrituras pendientes de ninguna
// unidad de trabajo.
type QueryService[E repository.Entity[K], K cmp.Ordered, D any] struct {
	store   *Store[E, K]
	project func(E) D
}

// NewQueryService construye el servicio de consulta con su proyección.
func NewQueryService[E repository.Entity[K], K cmp.Ordered, D any](store *Store[E, K], project func(E) D) *QueryService[E, K, D] {
	return &QueryService[E, K, D]{store: store, project: project}
}

// Count devuelve el total de entidades.
func (s *QueryService[E, K, D]) Count(ctx context.Context) (int64, error) {
	return int64(s.store.Len()), nil
}

// CountWhere devuelve el total de entidades que cumplen el filtro.
func (s *QueryService[E, K, D]) CountWhere(ctx context.Context, filter repository.Filter[E]) (int64, error) {
	var count int64
	for _, e := range s.store.All() {
		if filter.Match(e) {
			count++
		}
	}
	return count, nil
}

// Exists indica si alguna entidad cumple el filtro.
func (s *QueryService[E, K, D]) Exists(ctx context.Context, filter repository.Filter[E]) (bool, error) {
	for _, e := range s.store.All() {
		if filter.Match(e) {
			return true, nil
		}
	}
	return false, nil
}

// GetAll devuelve todas las proyecciones ordenadas por id.
func (s *QueryService[E, K, D]) GetAll(ctx context.Context) ([]D, error) {
	return s.projectAll(s.store.All()), nil
}

// GetPage devuelve una página proyectada.
func (s *QueryService[E, K, D]) GetPage(ctx context.Context, skip, take int, order *repository.Order[E]) ([]D, error) {
	return s.projectAll(page(s.store.All(), skip, take, order)), nil
}

// GetPageWhere variante filtrada de GetPage.
func (s *QueryService[E, K, D]) GetPageWhere(ctx context.Context, filter repository.Filter[E], skip, take int, order *repository.Order[E]) ([]D, error) {
	var matched []E
	for _, e := range s.store.All() {
		if filter.Match(e) {
			matched = append(matched, e)
		}
	}
	return s.projectAll(page(matched, skip, take, order)), nil
}

// GetByID devuelve la proyección o nil si no existe.
func (s *QueryService[E, K, D]) GetByID(ctx context.Context, id K) (*D, error) {
	var zeroID K
	if id == zeroID {
		return nil, nil
	}
	e, ok := s.store.Get(id)
	if !ok {
		return nil, nil
	}
	d := s.project(e)
	return &d, nil
}

// Find devuelve las proyecciones que cumplen el filtro.
func (s *QueryService[E, K, D]) Find(ctx context.Context, filter repository.Filter[E]) ([]D, error) {
	var matched []E
	for _, e := range s.store.All() {
		if filter.Match(e) {
			matched = append(matched, e)
		}
	}
	return s.projectAll(matched), nil
}

func (s *QueryService[E, K, D]) projectAll(es []E) []D {
	var list []D
	for _, e := range es {
		list = append(list, s.project(e))
	}
	return list
}
