package postgres

import (
	"cmp"
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Clientes-api/internal/domain/repository"
)

// QueryService lecturas de solo proyección directas al pool. No pasa por
// la unidad de trabajo: nunca ve escrituras pendientes ni transacciones
// abiertas, y nada de lo que devuelve queda rastreado.
type QueryService[E repository.Entity[K], K cmp.Ordered, D any] struct {
	pool    *pgxpool.Pool
	table   Table[E, K]
	project func(E) D
}

// NewQueryService construye el servicio de consulta con su proyección.
func NewQueryService[E repository.Entity[K], K cmp.Ordered, D any](
	pool *pgxpool.Pool,
	table Table[E, K],
	project func(E) D,
) *QueryService[E, K, D] {
	return &QueryService[E, K, D]{pool: pool, table: table, project: project}
}

// Count devuelve el total de entidades.
func (s *QueryService[E, K, D]) Count(ctx context.Context) (int64, error) {
	var count int64
	query := fmt.Sprintf("SELECT count(*) FROM %s", s.table.Name)
	if err := s.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count %s: %w", s.table.Name, err)
	}
	return count, nil
}

// CountWhere devuelve el total de entidades que cumplen el filtro.
func (s *QueryService[E, K, D]) CountWhere(ctx context.Context, filter repository.Filter[E]) (int64, error) {
	var count int64
	query := fmt.Sprintf("SELECT count(*) FROM %s WHERE %s", s.table.Name, filter.Where)
	if err := s.pool.QueryRow(ctx, query, filter.Args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count %s: %w", s.table.Name, err)
	}
	return count, nil
}

// Exists indica si alguna entidad cumple el filtro.
func (s *QueryService[E, K, D]) Exists(ctx context.Context, filter repository.Filter[E]) (bool, error) {
	var exists bool
	query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE %s)", s.table.Name, filter.Where)
	if err := s.pool.QueryRow(ctx, query, filter.Args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists %s: %w", s.table.Name, err)
	}
	return exists, nil
}

// GetAll devuelve todas las proyecciones ordenadas por id.
func (s *QueryService[E, K, D]) GetAll(ctx context.Context) ([]D, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s %s",
		s.table.columnList(), s.table.Name, s.table.orderClause(nil),
	)
	return s.list(ctx, query)
}

// GetPage devuelve una página proyectada.
func (s *QueryService[E, K, D]) GetPage(ctx context.Context, skip, take int, order *repository.Order[E]) ([]D, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s %s OFFSET $1 LIMIT $2",
		s.table.columnList(), s.table.Name, s.table.orderClause(order),
	)
	return s.list(ctx, query, skip, take)
}

// GetPageWhere variante filtrada de GetPage.
func (s *QueryService[E, K, D]) GetPageWhere(ctx context.Context, filter repository.Filter[E], skip, take int, order *repository.Order[E]) ([]D, error) {
	n := len(filter.Args)
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s %s OFFSET $%d LIMIT $%d",
		s.table.columnList(), s.table.Name, filter.Where, s.table.orderClause(order), n+1, n+2,
	)
	args := append(append([]any{}, filter.Args...), skip, take)
	return s.list(ctx, query, args...)
}

// GetByID devuelve la proyección o nil si no existe.
func (s *QueryService[E, K, D]) GetByID(ctx context.Context, id K) (*D, error) {
	var zeroID K
	if id == zeroID {
		return nil, nil
	}
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1",
		s.table.columnList(), s.table.Name, s.table.IDColumn,
	)
	e, err := s.table.Scan(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s by id: %w", s.table.Name, err)
	}
	d := s.project(e)
	return &d, nil
}

// Find devuelve las proyecciones que cumplen el filtro.
func (s *QueryService[E, K, D]) Find(ctx context.Context, filter repository.Filter[E]) ([]D, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s %s",
		s.table.columnList(), s.table.Name, filter.Where, s.table.orderClause(nil),
	)
	return s.list(ctx, query, filter.Args...)
}

func (s *QueryService[E, K, D]) list(ctx context.Context, query string, args ...any) ([]D, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", s.table.Name, err)
	}
	defer rows.Close()

	var list []D
	for rows.Next() {
		e, err := s.table.Scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", s.table.Name, err)
		}
		list = append(list, s.project(e))
	}
	return list, rows.Err()
}
