package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Clientes-api/internal/domain/entity"
)

// execRecorder captura las sentencias aplicadas sin base de datos real.
type execRecorder struct {
	sqls []string
	args [][]any
}

func (r *execRecorder) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	r.sqls = append(r.sqls, sql)
	r.args = append(r.args, args)
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (r *execRecorder) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (r *execRecorder) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

// Los valores de una entidad encolada se resuelven al aplicar el changeset:
// la mutación posterior a Add viaja con la inserción pendiente, y por eso el
// Update de la entidad rastreada puede ser no-op sin perder cambios.
func TestRepository_AddResuelveValoresAlAplicar(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	uow := NewUnitOfWork(nil)
	repo := NewRepository(CustomerTable(), uow)

	c := entity.RehydrateCustomer("c1", "Ana", "ana@example.com", nil, nil, now, now)
	require.NoError(t, repo.Add(ctx, c))
	c.UpdateName("Ana María")
	require.NoError(t, repo.Update(ctx, c))

	rec := &execRecorder{}
	affected, err := applyChanges(ctx, rec, uow.pending)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	require.Len(t, rec.args, 1, "la entidad rastreada no encola una segunda sentencia")
	assert.Contains(t, rec.sqls[0], "INSERT INTO customers")
	assert.Equal(t, "Ana María", rec.args[0][1])
}

// Delete encolado antes de mutar la entidad sigue borrando por el id
// capturado: el id es inmutable y se lee también al aplicar.
func TestRepository_DeleteResuelveIDAlAplicar(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	uow := NewUnitOfWork(nil)
	repo := NewRepository(CustomerTable(), uow)

	c := entity.RehydrateCustomer("c9", "Luis", "luis@example.com", nil, nil, now, now)
	require.NoError(t, repo.Delete(ctx, c))

	rec := &execRecorder{}
	_, err := applyChanges(ctx, rec, uow.pending)
	require.NoError(t, err)
	require.Len(t, rec.args, 1)
	assert.Contains(t, rec.sqls[0], "DELETE FROM customers")
	assert.Equal(t, []any{"c9"}, rec.args[0])
}
