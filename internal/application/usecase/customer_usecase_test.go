package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Clientes-api/internal/application/dto"
	"github.com/jhoicas/Clientes-api/internal/application/usecase"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
	"github.com/jhoicas/Clientes-api/internal/domain/result"
	"github.com/jhoicas/Clientes-api/internal/infrastructure/memory"
)

// seqIDs generador determinista para los tests.
type seqIDs struct{ n int }

func (s *seqIDs) NewID() string {
	s.n++
	return fmt.Sprintf("id-%03d", s.n)
}

func cloneCustomer(c *entity.Customer) *entity.Customer {
	return entity.RehydrateCustomer(
		c.ID(), c.Name(), c.Email(), c.Number(), c.Notes(),
		c.CreatedDate(), c.ModifiedDate(),
	)
}

func newCustomerService() *usecase.CustomerAppService {
	store := memory.NewStore[*entity.Customer, string](cloneCustomer)
	newScope := func() usecase.CustomerScope {
		uow := memory.NewUnitOfWork()
		return usecase.CustomerScope{
			Repo: memory.NewRepository("customers", store, uow),
			UoW:  uow,
		}
	}
	query := memory.NewQueryService(store, dto.NewCustomerDto)
	return usecase.NewCustomerAppService(newScope, query, &seqIDs{}, dto.NewCustomerDto)
}

func customerInput(name string) dto.CreateUpdateCustomerDto {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return dto.CreateUpdateCustomerDto{
		Name:         name,
		Email:        name + "@example.com",
		CreatedDate:  now,
		ModifiedDate: now,
	}
}

func intPtr(n int) *int { return &n }

func TestCustomerService_CreateYGet(t *testing.T) {
	ctx := context.Background()
	svc := newCustomerService()

	created := svc.Create(ctx, customerInput("Ana"))
	require.False(t, created.IsFailed())
	assert.NotEmpty(t, created.Value().ID)
	assert.Equal(t, "Ana", created.Value().Name)

	got := svc.Get(ctx, created.Value().ID)
	require.False(t, got.IsFailed())
	assert.Equal(t, created.Value(), got.Value())
}

func TestCustomerService_Get_NoExiste(t *testing.T) {
	ctx := context.Background()
	svc := newCustomerService()

	res := svc.Get(ctx, "fantasma")
	require.True(t, res.IsFailed())
	require.Len(t, res.Errors(), 1)
	nf, ok := res.Errors()[0].(*result.NotFoundError)
	require.True(t, ok)
	assert.Equal(t, "Customer with ID 'fantasma' was not found.", nf.Message)
}

// Una lista vacía responde total cero e items [] (nunca null).
func TestCustomerService_List_Vacia(t *testing.T) {
	ctx := context.Background()
	svc := newCustomerService()

	res := svc.List(ctx, nil, nil)
	require.False(t, res.IsFailed())
	assert.Equal(t, int64(0), res.Value().TotalCount)
	assert.NotNil(t, res.Value().Items)
	assert.Empty(t, res.Value().Items)
}

// El total refleja el conjunto completo aunque la página sea parcial.
func TestCustomerService_List_TotalConPaginaParcial(t *testing.T) {
	ctx := context.Background()
	svc := newCustomerService()

	for _, name := range []string{"Ana", "Luis", "Marta"} {
		require.False(t, svc.Create(ctx, customerInput(name)).IsFailed())
	}

	res := svc.List(ctx, intPtr(0), intPtr(2))
	require.False(t, res.IsFailed())
	assert.Equal(t, int64(3), res.Value().TotalCount)
	assert.Len(t, res.Value().Items, 2)
}

func TestCustomerService_List_PaginacionInvalida(t *testing.T) {
	ctx := context.Background()
	svc := newCustomerService()

	res := svc.List(ctx, intPtr(-1), intPtr(101))
	require.True(t, res.IsFailed())
	require.Len(t, res.Errors(), 2)
	for _, e := range res.Errors() {
		assert.Equal(t, result.KindValidation, e.Kind())
	}
}

func TestCustomerService_Update_ActualizaTodosLosCampos(t *testing.T) {
	ctx := context.Background()
	svc := newCustomerService()

	created := svc.Create(ctx, customerInput("Ana"))
	require.False(t, created.IsFailed())

	in := customerInput("Ana María")
	number := "3001234567"
	in.Number = &number

	updated := svc.Update(ctx, created.Value().ID, in)
	require.False(t, updated.IsFailed())
	assert.Equal(t, "Ana María", updated.Value().Name)
	require.NotNil(t, updated.Value().Number)
	assert.Equal(t, number, *updated.Value().Number)

	// La actualización quedó persistida, no solo en el DTO devuelto.
	got := svc.Get(ctx, created.Value().ID)
	require.False(t, got.IsFailed())
	assert.Equal(t, updated.Value(), got.Value())
}

// Aplicar dos veces la misma actualización deja el mismo estado.
func TestCustomerService_Update_Idempotente(t *testing.T) {
	ctx := context.Background()
	svc := newCustomerService()

	created := svc.Create(ctx, customerInput("Ana"))
	require.False(t, created.IsFailed())

	in := customerInput("Ana María")
	first := svc.Update(ctx, created.Value().ID, in)
	require.False(t, first.IsFailed())
	second := svc.Update(ctx, created.Value().ID, in)
	require.False(t, second.IsFailed())
	assert.Equal(t, first.Value(), second.Value())
}

func TestCustomerService_Update_NoExiste(t *testing.T) {
	ctx := context.Background()
	svc := newCustomerService()

	res := svc.Update(ctx, "fantasma", customerInput("Ana"))
	require.True(t, res.IsFailed())
	assert.Equal(t, result.KindNotFound, res.Errors()[0].Kind())
}

func TestCustomerService_Delete(t *testing.T) {
	ctx := context.Background()
	svc := newCustomerService()

	created := svc.Create(ctx, customerInput("Ana"))
	require.False(t, created.IsFailed())

	st := svc.Delete(ctx, created.Value().ID)
	require.False(t, st.IsFailed())

	got := svc.Get(ctx, created.Value().ID)
	assert.True(t, got.IsFailed())

	// Borrar de nuevo reporta NotFound, no éxito silencioso.
	st = svc.Delete(ctx, created.Value().ID)
	require.True(t, st.IsFailed())
	assert.Equal(t, result.KindNotFound, st.Errors()[0].Kind())
}

// Escenario de extremo a extremo: alta, lectura, edición y baja.
func TestCustomerService_CicloCompleto(t *testing.T) {
	ctx := context.Background()
	svc := newCustomerService()

	created := svc.Create(ctx, customerInput("Ana"))
	require.False(t, created.IsFailed())
	id := created.Value().ID

	listed := svc.List(ctx, nil, nil)
	require.False(t, listed.IsFailed())
	assert.Equal(t, int64(1), listed.Value().TotalCount)

	updated := svc.Update(ctx, id, customerInput("Ana María"))
	require.False(t, updated.IsFailed())

	require.False(t, svc.Delete(ctx, id).IsFailed())

	listed = svc.List(ctx, nil, nil)
	require.False(t, listed.IsFailed())
	assert.Equal(t, int64(0), listed.Value().TotalCount)
}
