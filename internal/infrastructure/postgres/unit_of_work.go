package postgres

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/internal/domain/repository"
)

var _ repository.UnitOfWork = (*UnitOfWork)(nil)

// change una mutación pendiente preparada por un repositorio. Los
// argumentos se resuelven al aplicar, no al encolar: las mutaciones hechas
// a una entidad rastreada después de Add viajan con su sentencia pendiente.
type change struct {
	sql  string
	args func() []any
}

// UnitOfWork acumula las mutaciones encoladas por los repositorios y las
// persiste en bloque en SaveChanges. Su ámbito es una operación lógica
// (una petición); el mutex solo protege su propio changeset.
type UnitOfWork struct {
	pool *pgxpool.Pool

	mu      sync.Mutex
	pending []change
	tracked map[string]struct{}
	tx      pgx.Tx
}

// NewUnitOfWork construye la unidad de trabajo sobre el pool.
func NewUnitOfWork(pool *pgxpool.Pool) *UnitOfWork {
	return &UnitOfWork{pool: pool, tracked: make(map[string]struct{})}
}

// querier devuelve el ejecutor actual: la transacción abierta si la hay,
// si no el pool. Las lecturas de los repositorios pasan por aquí para ver
// los datos dentro de la transacción.
func (u *UnitOfWork) querier() Querier {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.tx != nil {
		return u.tx
	}
	return u.pool
}

// enqueue registra una mutación pendiente y marca la clave como rastreada.
func (u *UnitOfWork) enqueue(sql string, args func() []any, trackKey string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.pending = append(u.pending, change{sql: sql, args: args})
	if trackKey != "" {
		u.tracked[trackKey] = struct{}{}
	}
}

// isTracked indica si la clave ya tiene una mutación pendiente (entidad
// "attached": un Update posterior es no-op).
func (u *UnitOfWork) isTracked(trackKey string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	_, ok := u.tracked[trackKey]
	return ok
}

// SaveChanges persiste las mutaciones pendientes y devuelve el número de
// registros afectados. Sin llamada no hay escritura: el no-op es silencioso.
func (u *UnitOfWork) SaveChanges(ctx context.Context) (int64, error) {
	u.mu.Lock()
	pending := u.pending
	u.pending = nil
	u.tracked = make(map[string]struct{})
	tx := u.tx
	u.mu.Unlock()

	if len(pending) == 0 {
		return 0, nil
	}

	if tx != nil {
		return applyChanges(ctx, tx, pending)
	}

	// Sin transacción explícita: una transacción implícita por guardado.
	implicit, err := u.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = implicit.Rollback(ctx) }()

	affected, err := applyChanges(ctx, implicit, pending)
	if err != nil {
		return 0, err
	}
	if err := implicit.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}
	return affected, nil
}

// applyChanges ejecuta las mutaciones en orden sobre el ejecutor dado.
func applyChanges(ctx context.Context, q Querier, pending []change) (int64, error) {
	var affected int64
	for _, c := range pending {
		tag, err := q.Exec(ctx, c.sql, c.args()...)
		if err != nil {
			if isUniqueViolation(err) {
				return 0, fmt.Errorf("guardar cambios: %w", domain.ErrDuplicate)
			}
			return 0, fmt.Errorf("guardar cambios: %w", err)
		}
		affected += tag.RowsAffected()
	}
	return affected, nil
}

// BeginTransaction abre una transacción; no-op si ya hay una abierta.
func (u *UnitOfWork) BeginTransaction(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.tx != nil {
		return nil
	}
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	u.tx = tx
	return nil
}

// CommitTransaction confirma la transacción abierta; no-op si no hay.
func (u *UnitOfWork) CommitTransaction(ctx context.Context) error {
	u.mu.Lock()
	tx := u.tx
	u.tx = nil
	u.mu.Unlock()
	if tx == nil {
		return nil
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RollbackTransaction revierte la transacción abierta; no-op si no hay.
func (u *UnitOfWork) RollbackTransaction(ctx context.Context) error {
	u.mu.Lock()
	tx := u.tx
	u.tx = nil
	u.mu.Unlock()
	if tx == nil {
		return nil
	}
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("rollback transaction: %w", err)
	}
	return nil
}

// Close libera la unidad de trabajo; una transacción abandonada se
// revierte sin confirmar.
func (u *UnitOfWork) Close(ctx context.Context) error {
	return u.RollbackTransaction(ctx)
}
