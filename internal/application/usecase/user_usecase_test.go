package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Clientes-api/internal/application/dto"
	"github.com/jhoicas/Clientes-api/internal/application/usecase"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
	"github.com/jhoicas/Clientes-api/internal/domain/repository"
	"github.com/jhoicas/Clientes-api/internal/domain/result"
	"github.com/jhoicas/Clientes-api/internal/infrastructure/memory"
)

func newUserFixture(t *testing.T) (*usecase.UserAccountService, repository.UserRepository) {
	t.Helper()
	users := memory.NewUserRepository()
	svc := usecase.NewUserAccountService(users, &seqIDs{})
	return svc, users
}

// seedUser inserta directamente una cuenta y devuelve su id.
func seedUser(t *testing.T, users repository.UserRepository, id, email string, admin bool) string {
	t.Helper()
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, users.Create(ctx, &entity.User{
		ID: id, Email: email, PasswordHash: string(hash),
		CreatedDate: now, ModifiedDate: now,
	}))
	if admin {
		require.NoError(t, users.AssignRole(ctx, id, entity.RoleAdmin))
	}
	return id
}

func firstError(t *testing.T, errs []result.Error) result.Error {
	t.Helper()
	require.NotEmpty(t, errs)
	return errs[0]
}

func TestGetCurrentUser(t *testing.T) {
	ctx := context.Background()
	svc, users := newUserFixture(t)
	seedUser(t, users, "u1", "ana@example.com", true)

	res := svc.GetCurrentUser(ctx, "u1")
	require.False(t, res.IsFailed())
	assert.Equal(t, "ana@example.com", res.Value().Email)
	assert.True(t, res.Value().IsAdmin)
}

func TestGetCurrentUser_SinAutenticar(t *testing.T) {
	ctx := context.Background()
	svc, _ := newUserFixture(t)

	res := svc.GetCurrentUser(ctx, "")
	require.True(t, res.IsFailed())
	err := firstError(t, res.Errors())
	assert.Equal(t, result.KindAccessDenied, err.Kind())
	assert.Equal(t, "User is not authenticated.", err.Error())
}

// Un no-admin no puede listar, crear, leer, editar ni borrar cuentas.
func TestOperacionesAdmin_BloqueadasParaNoAdmin(t *testing.T) {
	ctx := context.Background()
	svc, users := newUserFixture(t)
	seedUser(t, users, "u1", "normal@example.com", false)
	seedUser(t, users, "u2", "otro@example.com", false)

	assertDenied := func(t *testing.T, errs []result.Error) {
		err := firstError(t, errs)
		assert.Equal(t, result.KindAccessDenied, err.Kind())
		assert.Equal(t, "User is not an admin.", err.Error())
	}

	t.Run("list", func(t *testing.T) {
		assertDenied(t, svc.ListUsers(ctx, "u1", nil, nil).Errors())
	})
	t.Run("create", func(t *testing.T) {
		in := dto.CreateUserDto{Email: "nuevo@example.com", Password: "secret123"}
		assertDenied(t, svc.CreateUser(ctx, "u1", in).Errors())
	})
	t.Run("get", func(t *testing.T) {
		assertDenied(t, svc.GetUserByID(ctx, "u1", "u2").Errors())
	})
	t.Run("update", func(t *testing.T) {
		assertDenied(t, svc.UpdateUser(ctx, "u1", "u2", dto.UpdateUserDto{}).Errors())
	})
	t.Run("delete", func(t *testing.T) {
		assertDenied(t, svc.DeleteUser(ctx, "u1", "u2").Errors())
	})
}

// La paginación se valida antes que la autorización: un no-admin con
// parámetros inválidos recibe los errores de validación.
func TestListUsers_ValidaPaginacionAntesQueAutorizacion(t *testing.T) {
	ctx := context.Background()
	svc, users := newUserFixture(t)
	seedUser(t, users, "u1", "normal@example.com", false)

	res := svc.ListUsers(ctx, "u1", intPtr(-1), nil)
	require.True(t, res.IsFailed())
	assert.Equal(t, result.KindValidation, firstError(t, res.Errors()).Kind())
}

func TestListUsers_MarcaAdminsDeLaPagina(t *testing.T) {
	ctx := context.Background()
	svc, users := newUserFixture(t)
	seedUser(t, users, "u1", "root@example.com", true)
	seedUser(t, users, "u2", "normal@example.com", false)

	res := svc.ListUsers(ctx, "u1", nil, nil)
	require.False(t, res.IsFailed())
	assert.Equal(t, int64(2), res.Value().TotalCount)
	require.Len(t, res.Value().Items, 2)

	flags := map[string]bool{}
	for _, u := range res.Value().Items {
		flags[u.ID] = u.IsAdmin
	}
	assert.True(t, flags["u1"])
	assert.False(t, flags["u2"])
}

func TestCreateUser_ConRolAdmin(t *testing.T) {
	ctx := context.Background()
	svc, users := newUserFixture(t)
	seedUser(t, users, "u1", "root@example.com", true)

	res := svc.CreateUser(ctx, "u1", dto.CreateUserDto{
		Email: "nuevo@example.com", Password: "secret123", IsAdmin: true,
	})
	require.False(t, res.IsFailed())
	assert.True(t, res.Value().IsAdmin)

	isAdmin, err := users.HasRole(ctx, res.Value().ID, entity.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, isAdmin)
}

func TestCreateUser_EmailDuplicado(t *testing.T) {
	ctx := context.Background()
	svc, users := newUserFixture(t)
	seedUser(t, users, "u1", "root@example.com", true)

	res := svc.CreateUser(ctx, "u1", dto.CreateUserDto{
		Email: "root@example.com", Password: "secret123",
	})
	require.True(t, res.IsFailed())
	err := firstError(t, res.Errors())
	assert.Equal(t, result.KindConflict, err.Kind())
	assert.Equal(t, "A user with that email already exists.", err.Error())
}

// failingRoleRepo fuerza el fallo de AssignRole para ejercitar la
// compensación de CreateUser.
type failingRoleRepo struct {
	repository.UserRepository
}

func (r *failingRoleRepo) AssignRole(ctx context.Context, userID, role string) error {
	return errors.New("role store unavailable")
}

func TestCreateUser_CompensaSiFallaElRol(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUserRepository()
	wrapped := &failingRoleRepo{UserRepository: users}
	svc := usecase.NewUserAccountService(wrapped, &seqIDs{})

	seedUser(t, users, "u1", "root@example.com", true)

	res := svc.CreateUser(ctx, "u1", dto.CreateUserDto{
		Email: "nuevo@example.com", Password: "secret123", IsAdmin: true,
	})
	require.True(t, res.IsFailed())

	// La cuenta a medio crear no debe quedar en el almacenamiento.
	ghost, err := users.GetByEmail(ctx, "nuevo@example.com")
	require.NoError(t, err)
	assert.Nil(t, ghost)
}

func TestGetUserByID_NoExiste(t *testing.T) {
	ctx := context.Background()
	svc, users := newUserFixture(t)
	seedUser(t, users, "u1", "root@example.com", true)

	res := svc.GetUserByID(ctx, "u1", "fantasma")
	require.True(t, res.IsFailed())
	err := firstError(t, res.Errors())
	assert.Equal(t, result.KindNotFound, err.Kind())
	assert.Equal(t, "User not found.", err.Error())
}

func TestUpdateUser_CambiaEmailYPromueve(t *testing.T) {
	ctx := context.Background()
	svc, users := newUserFixture(t)
	seedUser(t, users, "u1", "root@example.com", true)
	seedUser(t, users, "u2", "normal@example.com", false)

	isAdmin := true
	res := svc.UpdateUser(ctx, "u1", "u2", dto.UpdateUserDto{
		NewEmail: "renombrado@example.com", IsAdmin: &isAdmin,
	})
	require.False(t, res.IsFailed())
	assert.Equal(t, "renombrado@example.com", res.Value().Email)
	assert.True(t, res.Value().IsAdmin)
}

// Un admin no puede quitarse su propio rol.
func TestUpdateUser_AutoDemocionProhibida(t *testing.T) {
	ctx := context.Background()
	svc, users := newUserFixture(t)
	seedUser(t, users, "u1", "root@example.com", true)

	notAdmin := false
	res := svc.UpdateUser(ctx, "u1", "u1", dto.UpdateUserDto{IsAdmin: &notAdmin})
	require.True(t, res.IsFailed())
	err := firstError(t, res.Errors())
	assert.Equal(t, result.KindConflict, err.Kind())
	assert.Equal(t, "Users cannot remove their own admin role.", err.Error())

	// El rol sigue intacto.
	isAdmin, hasErr := users.HasRole(ctx, "u1", entity.RoleAdmin)
	require.NoError(t, hasErr)
	assert.True(t, isAdmin)
}

// Sí puede quitarle el rol a OTRO admin.
func TestUpdateUser_DemocionDeOtroAdmin(t *testing.T) {
	ctx := context.Background()
	svc, users := newUserFixture(t)
	seedUser(t, users, "u1", "root@example.com", true)
	seedUser(t, users, "u2", "otro-admin@example.com", true)

	notAdmin := false
	res := svc.UpdateUser(ctx, "u1", "u2", dto.UpdateUserDto{IsAdmin: &notAdmin})
	require.False(t, res.IsFailed())
	assert.False(t, res.Value().IsAdmin)
}

func TestDeleteUser_AutoBorradoProhibido(t *testing.T) {
	ctx := context.Background()
	svc, users := newUserFixture(t)
	seedUser(t, users, "u1", "root@example.com", true)

	st := svc.DeleteUser(ctx, "u1", "u1")
	require.True(t, st.IsFailed())
	err := firstError(t, st.Errors())
	assert.Equal(t, result.KindConflict, err.Kind())
	assert.Equal(t, "Users cannot delete their own account.", err.Error())
}

func TestDeleteUser_AdminBorraOtroAdmin(t *testing.T) {
	ctx := context.Background()
	svc, users := newUserFixture(t)
	seedUser(t, users, "u1", "root@example.com", true)
	seedUser(t, users, "u2", "segundo@example.com", true)

	// Con dos admins se puede borrar uno.
	require.False(t, svc.DeleteUser(ctx, "u2", "u1").IsFailed())

	ghost, err := users.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, ghost)
}

// lowAdminCountRepo simula el recuento rezagado de admins que la
// protección del último admin está pensada para atrapar.
type lowAdminCountRepo struct {
	repository.UserRepository
}

func (r *lowAdminCountRepo) CountInRole(ctx context.Context, role string) (int64, error) {
	return 1, nil
}

func TestDeleteUser_UltimoAdminProtegido(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUserRepository()
	svc := usecase.NewUserAccountService(&lowAdminCountRepo{UserRepository: users}, &seqIDs{})

	seedUser(t, users, "u1", "root@example.com", true)
	seedUser(t, users, "u2", "segundo@example.com", true)

	st := svc.DeleteUser(ctx, "u2", "u1")
	require.True(t, st.IsFailed())
	err := firstError(t, st.Errors())
	assert.Equal(t, result.KindConflict, err.Kind())
	assert.Equal(t, "Cannot delete the last admin user.", err.Error())

	// La cuenta sigue existiendo.
	intact, getErr := users.GetByID(ctx, "u1")
	require.NoError(t, getErr)
	assert.NotNil(t, intact)
}
