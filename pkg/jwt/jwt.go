package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Subject of every issued token. There is a single operator; the token only
// proves the PIN was presented, it carries no per-user identity.
const SubjectOperator = "operator"

// Claims are the standard JWT claims; nothing application-specific is
// carried beyond the fixed subject.
type Claims struct {
	jwt.RegisteredClaims
}

// Generate signs an HS256 token for the operator session.
func Generate(secret, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: empty secret")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   SubjectOperator,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse validates the token. Returns an error if it is invalid, expired or
// signed with the wrong method or key.
func Parse(secret, tokenString string) error {
	if secret == "" {
		return fmt.Errorf("jwt: empty secret")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return fmt.Errorf("invalid claims")
	}
	if claims.Subject != SubjectOperator {
		return fmt.Errorf("unexpected subject %q", claims.Subject)
	}
	return nil
}
