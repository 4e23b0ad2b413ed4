package auth_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Clientes-api/internal/application/auth"
	"github.com/jhoicas/Clientes-api/internal/application/dto"
	"github.com/jhoicas/Clientes-api/internal/application/usecase"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
	"github.com/jhoicas/Clientes-api/internal/domain/repository"
	"github.com/jhoicas/Clientes-api/internal/domain/result"
	"github.com/jhoicas/Clientes-api/internal/infrastructure/memory"
	pkgjwt "github.com/jhoicas/Clientes-api/pkg/jwt"
)

type seqIDs struct{ n int }

func (s *seqIDs) NewID() string {
	s.n++
	return fmt.Sprintf("id-%03d", s.n)
}

var testCfg = auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "clientes-api-test"}

func newAuthFixture() (*auth.AuthUseCase, repository.UserRepository) {
	users := memory.NewUserRepository()
	return auth.NewAuthUseCase(users, &seqIDs{}, testCfg), users
}

func TestRegisterYLogin(t *testing.T) {
	ctx := context.Background()
	uc, _ := newAuthFixture()

	reg := uc.Register(ctx, dto.RegisterRequest{Email: "ana@example.com", Password: "secret123"})
	require.False(t, reg.IsFailed())
	assert.False(t, reg.Value().IsAdmin)

	login := uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "secret123"})
	require.False(t, login.IsFailed())
	assert.NotEmpty(t, login.Value().Token)
	assert.Equal(t, reg.Value().ID, login.Value().User.ID)

	// El token lleva la identidad correcta.
	userID, email, isAdmin, err := pkgjwt.Parse(testCfg.Secret, login.Value().Token)
	require.NoError(t, err)
	assert.Equal(t, reg.Value().ID, userID)
	assert.Equal(t, "ana@example.com", email)
	assert.False(t, isAdmin)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	ctx := context.Background()
	uc, _ := newAuthFixture()

	require.False(t, uc.Register(ctx, dto.RegisterRequest{Email: "ana@example.com", Password: "secret123"}).IsFailed())

	res := uc.Register(ctx, dto.RegisterRequest{Email: "ana@example.com", Password: "otra-clave"})
	require.True(t, res.IsFailed())
	assert.Equal(t, result.KindConflict, res.Errors()[0].Kind())
}

// Cuenta inexistente y contraseña errónea responden el mismo mensaje.
func TestLogin_CredencialesInvalidas(t *testing.T) {
	ctx := context.Background()
	uc, _ := newAuthFixture()

	require.False(t, uc.Register(ctx, dto.RegisterRequest{Email: "ana@example.com", Password: "secret123"}).IsFailed())

	badPassword := uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "incorrecta"})
	require.True(t, badPassword.IsFailed())

	noAccount := uc.Login(ctx, dto.LoginRequest{Email: "nadie@example.com", Password: "secret123"})
	require.True(t, noAccount.IsFailed())

	assert.Equal(t, badPassword.Errors()[0].Error(), noAccount.Errors()[0].Error())
	assert.Equal(t, result.KindAccessDenied, badPassword.Errors()[0].Kind())
}

func TestEnsureAdmin_Idempotente(t *testing.T) {
	ctx := context.Background()
	uc, users := newAuthFixture()

	require.NoError(t, uc.EnsureAdmin(ctx, "root@example.com", "secret123"))
	require.NoError(t, uc.EnsureAdmin(ctx, "root@example.com", "secret123"))

	admin, err := users.GetByEmail(ctx, "root@example.com")
	require.NoError(t, err)
	require.NotNil(t, admin)

	isAdmin, err := users.HasRole(ctx, admin.ID, entity.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, isAdmin)

	count, err := users.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

// EnsureAdmin promueve una cuenta existente sin tocar su contraseña.
func TestEnsureAdmin_PromueveCuentaExistente(t *testing.T) {
	ctx := context.Background()
	uc, _ := newAuthFixture()

	reg := uc.Register(ctx, dto.RegisterRequest{Email: "ana@example.com", Password: "secret123"})
	require.False(t, reg.IsFailed())

	require.NoError(t, uc.EnsureAdmin(ctx, "ana@example.com", "ignorada"))

	login := uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "secret123"})
	require.False(t, login.IsFailed(), "la contraseña original sigue vigente")
	assert.True(t, login.Value().User.IsAdmin)
}

// La cuenta sembrada puede operar el servicio de cuentas como admin.
func TestEnsureAdmin_HabilitaOperacionesAdmin(t *testing.T) {
	ctx := context.Background()
	uc, users := newAuthFixture()

	require.NoError(t, uc.EnsureAdmin(ctx, "root@example.com", "secret123"))
	admin, err := users.GetByEmail(ctx, "root@example.com")
	require.NoError(t, err)

	svc := usecase.NewUserAccountService(users, &seqIDs{})
	res := svc.ListUsers(ctx, admin.ID, nil, nil)
	require.False(t, res.IsFailed())
	assert.Equal(t, int64(1), res.Value().TotalCount)
}
