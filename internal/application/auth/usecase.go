package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/chamstek/factory-ops/internal/application/dto"
	"github.com/chamstek/factory-ops/internal/domain"
	"github.com/chamstek/factory-ops/pkg/jwt"
)

// Config acceso por frase de paso compartida más parámetros del token.
type Config struct {
	PassphraseHash string // hash bcrypt de la frase de paso
	JWTSecret      string
	ExpMinutes     int
	Issuer         string
}

// AuthUseCase puerta de entrada de planta: una frase de paso compartida
// para todos los operadores. El token resultante solo identifica al
// operador declarado; no hay cuentas ni roles.
type AuthUseCase struct {
	cfg Config
}

// NewAuthUseCase construye el caso de uso.
func NewAuthUseCase(cfg Config) *AuthUseCase {
	return &AuthUseCase{cfg: cfg}
}

// Login compara la frase de paso contra el hash bcrypt configurado y
// genera el token Bearer.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Passphrase == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := bcrypt.CompareHashAndPassword([]byte(uc.cfg.PassphraseHash), []byte(in.Passphrase)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	operator := in.Operator
	if operator == "" {
		operator = "planta"
	}
	token, err := jwt.Generate(uc.cfg.JWTSecret, operator, uc.cfg.Issuer, uc.cfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, Operator: operator}, nil
}
