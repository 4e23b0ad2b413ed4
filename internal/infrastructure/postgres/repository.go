package postgres

import (
	"cmp"
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Clientes-api/internal/domain/repository"
)

// Repository implementación genérica del puerto de escritura sobre pgx.
// Las lecturas salen por el querier de la unidad de trabajo (ven la
// transacción abierta); las escrituras solo encolan SQL preparado en el
// changeset y nada llega a la base hasta SaveChanges.
type Repository[E repository.Entity[K], K cmp.Ordered] struct {
	table Table[E, K]
	uow   *UnitOfWork
}

// NewRepository construye el repositorio atado a una unidad de trabajo.
func NewRepository[E repository.Entity[K], K cmp.Ordered](table Table[E, K], uow *UnitOfWork) *Repository[E, K] {
	return &Repository[E, K]{table: table, uow: uow}
}

// Count devuelve el total de entidades.
func (r *Repository[E, K]) Count(ctx context.Context) (int64, error) {
	var count int64
	query := fmt.Sprintf("SELECT count(*) FROM %s", r.table.Name)
	if err := r.uow.querier().QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count %s: %w", r.table.Name, err)
	}
	return count, nil
}

// CountWhere devuelve el total de entidades que cumplen el filtro.
func (r *Repository[E, K]) CountWhere(ctx context.Context, filter repository.Filter[E]) (int64, error) {
	var count int64
	query := fmt.Sprintf("SELECT count(*) FROM %s WHERE %s", r.table.Name, filter.Where)
	if err := r.uow.querier().QueryRow(ctx, query, filter.Args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count %s: %w", r.table.Name, err)
	}
	return count, nil
}

// Exists indica si alguna entidad cumple el filtro.
func (r *Repository[E, K]) Exists(ctx context.Context, filter repository.Filter[E]) (bool, error) {
	var exists bool
	query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE %s)", r.table.Name, filter.Where)
	if err := r.uow.querier().QueryRow(ctx, query, filter.Args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists %s: %w", r.table.Name, err)
	}
	return exists, nil
}

// GetAll devuelve todas las entidades ordenadas por id.
func (r *Repository[E, K]) GetAll(ctx context.Context) ([]E, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s %s",
		r.table.columnList(), r.table.Name, r.table.orderClause(nil),
	)
	return scanList(ctx, r.uow.querier(), r.table, query)
}

// GetPage devuelve una página: ordena y aplica skip/take (offset).
func (r *Repository[E, K]) GetPage(ctx context.Context, skip, take int, order *repository.Order[E]) ([]E, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s %s OFFSET $1 LIMIT $2",
		r.table.columnList(), r.table.Name, r.table.orderClause(order),
	)
	return scanList(ctx, r.uow.querier(), r.table, query, skip, take)
}

// GetPageWhere variante filtrada de GetPage.
func (r *Repository[E, K]) GetPageWhere(ctx context.Context, filter repository.Filter[E], skip, take int, order *repository.Order[E]) ([]E, error) {
	n := len(filter.Args)
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s %s OFFSET $%d LIMIT $%d",
		r.table.columnList(), r.table.Name, filter.Where, r.table.orderClause(order), n+1, n+2,
	)
	args := append(append([]any{}, filter.Args...), skip, take)
	return scanList(ctx, r.uow.querier(), r.table, query, args...)
}

// GetByID devuelve la entidad o el cero de E si no existe. El id cero corta
// en corto sin tocar el almacenamiento.
func (r *Repository[E, K]) GetByID(ctx context.Context, id K) (E, error) {
	var zero E
	var zeroID K
	if id == zeroID {
		return zero, nil
	}
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1",
		r.table.columnList(), r.table.Name, r.table.IDColumn,
	)
	e, err := r.table.Scan(r.uow.querier().QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, nil
		}
		return zero, fmt.Errorf("get %s by id: %w", r.table.Name, err)
	}
	return e, nil
}

// Find devuelve las entidades que cumplen el filtro.
func (r *Repository[E, K]) Find(ctx context.Context, filter repository.Filter[E]) ([]E, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s %s",
		r.table.columnList(), r.table.Name, filter.Where, r.table.orderClause(nil),
	)
	return scanList(ctx, r.uow.querier(), r.table, query, filter.Args...)
}

// Add encola la inserción de la entidad. Los valores se leen al aplicar el
// changeset, así una mutación posterior viaja con la inserción pendiente.
func (r *Repository[E, K]) Add(ctx context.Context, e E) error {
	r.uow.enqueue(r.table.insertSQL(), func() []any { return r.table.Values(e) }, r.trackKey(e.ID()))
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

// Update encola la actualización completa de la entidad; si ya está
// rastreada en la unidad de trabajo es un no-op.
func (r *Repository[E, K]) Update(ctx context.Context, e E) error {
	key := r.trackKey(e.ID())
	if r.uow.isTracked(key) {
		return nil
	}
	r.uow.enqueue(r.table.updateSQL(), func() []any { return r.table.Values(e) }, key)
	return nil
}

// UpdateRange encola la actualización de varias entidades.
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
	r.uow.enqueue(r.table.deleteSQL(), func() []any { return []any{e.ID()} }, r.trackKey(e.ID()))
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

// DeleteRangeByIDs busca las entidades por id y encola su borrado: dos
// viajes al almacenamiento, no un borrado masivo por conjunto de ids.
func (r *Repository[E, K]) DeleteRangeByIDs(ctx context.Context, ids []K) error {
	if len(ids) == 0 {
		return nil
	}
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = ANY($1)",
		r.table.columnList(), r.table.Name, r.table.IDColumn,
	)
	found, err := scanList(ctx, r.uow.querier(), r.table, query, ids)
	if err != nil {
		return err
	}
	return r.DeleteRange(ctx, found)
}

// trackKey clave de rastreo de la entidad dentro de la unidad de trabajo.
func (r *Repository[E, K]) trackKey(id K) string {
	return fmt.Sprintf("%s\x00%v", r.table.Name, id)
}

// scanList ejecuta una consulta y reconstruye la lista de entidades.
func scanList[E repository.Entity[K], K cmp.Ordered](
	ctx context.Context,
	q Querier,
	table Table[E, K],
	query string,
	args ...any,
) ([]E, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table.Name, err)
	}
	defer rows.Close()

	var list []E
	for rows.Next() {
		e, err := table.Scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", table.Name, err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}
