package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Activos-api/internal/application/auth"
	"github.com/jhoicas/Activos-api/internal/application/dto"
	"github.com/jhoicas/Activos-api/internal/domain"
	"github.com/jhoicas/Activos-api/internal/testutil/memstore"
	pkgjwt "github.com/jhoicas/Activos-api/pkg/jwt"
)

const secret = "test-secret"

func newAuth() *auth.AuthUseCase {
	return auth.NewAuthUseCase(memstore.New().Users(), auth.JWTConfig{Secret: secret, Issuer: "activos-test"})
}

func TestRegisterYLogin(t *testing.T) {
	uc := newAuth()
	ctx := context.Background()

	u, err := uc.RegisterUser(ctx, dto.CreateUserRequest{Email: "Ana@Empresa.com", Password: "s3cret-pass", Role: "it_staff"})
	require.NoError(t, err)
	assert.Equal(t, "ana@empresa.com", u.Email)
	assert.Equal(t, "it_staff", u.Role)

	_, err = uc.RegisterUser(ctx, dto.CreateUserRequest{Email: "ana@empresa.com", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@empresa.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	id, email, role, err := pkgjwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)
	assert.Equal(t, "ana@empresa.com", email)
	assert.Equal(t, "it_staff", role)

	me, err := uc.Me(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, u.ID, me.ID)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc := newAuth()
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.CreateUserRequest{Email: "ana@empresa.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@empresa.com", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@empresa.com", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "no se revela si el usuario existe")
}

func TestRegister_RolPorDefectoEInvalido(t *testing.T) {
	uc := newAuth()
	ctx := context.Background()

	u, err := uc.RegisterUser(ctx, dto.CreateUserRequest{Email: "v@empresa.com", Password: "12345678"})
	require.NoError(t, err)
	assert.Equal(t, "viewer", u.Role)

	_, err = uc.RegisterUser(ctx, dto.CreateUserRequest{Email: "x@empresa.com", Password: "12345678", Role: "root"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterUser(ctx, dto.CreateUserRequest{Email: "y@empresa.com", Password: "corta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEnsureAdmin_Idempotente(t *testing.T) {
	uc := newAuth()
	ctx := context.Background()

	created, err := uc.EnsureAdmin(ctx, "admin@empresa.com", "admin-pass", "Admin")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = uc.EnsureAdmin(ctx, "admin@empresa.com", "admin-pass", "Admin")
	require.NoError(t, err)
	assert.False(t, created)

	created, err = uc.EnsureAdmin(ctx, "", "", "")
	require.NoError(t, err)
	assert.False(t, created)
}
