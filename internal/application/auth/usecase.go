package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/loop2cod/hs-accounts/internal/application/dto"
	"github.com/loop2cod/hs-accounts/internal/domain"
	"github.com/loop2cod/hs-accounts/pkg/jwt"
)

// JWTConfig token generation settings.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase is the single-operator PIN login. The shop has one owner, not
// user accounts: a correct PIN yields a bearer token for the session.
type UseCase struct {
	pinHash []byte
	jwtCfg  JWTConfig
}

// New builds the use case from a bcrypt PIN hash. Use HashPin when only the
// plain PIN is configured.
func New(pinHash string, jwtCfg JWTConfig) (*UseCase, error) {
	if pinHash == "" {
		return nil, fmt.Errorf("auth: PIN hash not configured")
	}
	if jwtCfg.Secret == "" {
		return nil, fmt.Errorf("auth: JWT secret not configured")
	}
	return &UseCase{pinHash: []byte(pinHash), jwtCfg: jwtCfg}, nil
}

// HashPin derives a bcrypt hash from a plain PIN (startup convenience for
// dev environments configured with AUTH_PIN instead of AUTH_PIN_HASH).
func HashPin(pin string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Login verifies the PIN and issues a JWT.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.PIN == "" {
		return nil, domain.Validationf("pin required")
	}
	if err := bcrypt.CompareHashAndPassword(uc.pinHash, []byte(in.PIN)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, ExpiresIn: uc.jwtCfg.ExpMinutes * 60}, nil
}
