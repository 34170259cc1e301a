package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-paraguay/internal/application/dto"
	"github.com/jhoicas/pos-paraguay/internal/domain"
	"github.com/jhoicas/pos-paraguay/internal/domain/entity"
	"github.com/jhoicas/pos-paraguay/internal/infrastructure/memory"
	"github.com/jhoicas/pos-paraguay/pkg/jwt"
)

var testCfg = JWTConfig{Secret: "clave-de-prueba", ExpMinutes: 60, Issuer: "pos-paraguay"}

func newUseCase() *UseCase {
	return New(memory.NewTxRunner(memory.NewStore()), testCfg)
}

func TestRegister(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	user, err := uc.Register(ctx, dto.RegisterUserRequest{
		Username: "vendedor1", Password: "secreta123", FullName: "Pedro Ortiz",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleVendedor, user.Role)
	assert.True(t, user.Active)
	// La contraseña jamás se guarda en claro.
	assert.NotEqual(t, "secreta123", user.PasswordHash)
	assert.NotEmpty(t, user.PasswordHash)

	// Username repetido es duplicado.
	_, err = uc.Register(ctx, dto.RegisterUserRequest{
		Username: "vendedor1", Password: "otra-clave",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestRegisterValidaciones(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterUserRequest{Username: "", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Register(ctx, dto.RegisterUserRequest{Username: "corto", Password: "12345"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Register(ctx, dto.RegisterUserRequest{
		Username: "raro", Password: "secreta123", Role: "superusuario",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	registered, err := uc.Register(ctx, dto.RegisterUserRequest{
		Username: "admin1", Password: "secreta123", Role: entity.RoleAdmin,
	})
	require.NoError(t, err)

	resp, err := uc.Login(ctx, dto.LoginRequest{Username: "admin1", Password: "secreta123"})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, resp.UserID)
	assert.Equal(t, entity.RoleAdmin, resp.Role)

	// El token emitido se verifica con el mismo secreto.
	claims, err := jwt.Parse(testCfg.Secret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.UserID)
	assert.Equal(t, "admin1", claims.Username)
	assert.Equal(t, entity.RoleAdmin, claims.Role)

	// Y rechaza otro secreto.
	_, err = jwt.Parse("otro-secreto", resp.Token)
	assert.Error(t, err)
}

func TestLoginCredencialesInvalidas(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterUserRequest{Username: "cajero1", Password: "secreta123"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "cajero1", Password: "equivocada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "inexistente", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
