package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/chamstek/factory-ops/internal/application/auth"
	"github.com/chamstek/factory-ops/internal/application/dto"
	"github.com/chamstek/factory-ops/internal/domain"
	pkgjwt "github.com/chamstek/factory-ops/pkg/jwt"
)

func buildAuthUseCase(t *testing.T, passphrase string) *auth.AuthUseCase {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(passphrase), bcrypt.MinCost)
	require.NoError(t, err)
	return auth.NewAuthUseCase(auth.Config{
		PassphraseHash: string(hash),
		JWTSecret:      "test-secret",
		ExpMinutes:     60,
		Issuer:         "factory-ops-test",
	})
}

func TestLogin_FraseCorrectaGeneraToken(t *testing.T) {
	uc := buildAuthUseCase(t, "clave-de-planta")

	out, err := uc.Login(dto.LoginRequest{Passphrase: "clave-de-planta", Operator: "turno-a"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)
	assert.Equal(t, "turno-a", out.Operator)

	operator, err := pkgjwt.Parse("test-secret", out.Token)
	require.NoError(t, err)
	assert.Equal(t, "turno-a", operator)
}

func TestLogin_OperadorPorDefecto(t *testing.T) {
	uc := buildAuthUseCase(t, "clave-de-planta")

	out, err := uc.Login(dto.LoginRequest{Passphrase: "clave-de-planta"})
	require.NoError(t, err)
	assert.Equal(t, "planta", out.Operator)
}

func TestLogin_FraseIncorrecta(t *testing.T) {
	uc := buildAuthUseCase(t, "clave-de-planta")

	_, err := uc.Login(dto.LoginRequest{Passphrase: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_FraseVacia(t *testing.T) {
	uc := buildAuthUseCase(t, "clave-de-planta")

	_, err := uc.Login(dto.LoginRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
