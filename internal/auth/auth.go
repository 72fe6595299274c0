// internal/auth/auth.go
//
// Account helpers: signup validation, bcrypt hashing and HS256 JWTs.
//
// Tokens carry the user id and username. They are accepted from either an
// "Authorization: Bearer" header or the auth cookie (see httpserver).

package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidSignup = errors.New("invalid signup")
	ErrInvalidToken  = errors.New("invalid token")
)

// TokenConfig controls JWT signing.
type TokenConfig struct {
	Secret  string
	Expires time.Duration
}

// Claims identifies the user behind a token.
type Claims struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// NormalizeUsername trims whitespace; adjust here if you want stricter rules.
func NormalizeUsername(u string) string {
	return strings.TrimSpace(u)
}

// ValidateSignup enforces basic username/password rules.
func ValidateSignup(u, p string) error {
	if len(u) < 3 || len(u) > 24 {
		return fmt.Errorf("%w: username must be 3–24 chars", ErrInvalidSignup)
	}
	for _, r := range u {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return fmt.Errorf("%w: username: letters, numbers, underscore only", ErrInvalidSignup)
		}
	}
	if len(p) < 8 || len(p) > 100 {
		return fmt.Errorf("%w: password must be 8–100 chars", ErrInvalidSignup)
	}
	return nil
}

// HashPassword returns the bcrypt hash of pw.
func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost) // cost=10
	return string(b), err
}

// CheckPassword reports whether pw matches the bcrypt hash.
func CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// Sign issues a token for the user valid from now until now+cfg.Expires.
func Sign(cfg TokenConfig, c Claims, now time.Time) (string, time.Time, error) {
	exp := now.Add(cfg.Expires)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       c.ID,
		"username": c.Username,
		"exp":      exp.Unix(),
		"iat":      now.Unix(),
	})
	ss, err := token.SignedString([]byte(cfg.Secret))
	return ss, exp, err
}

// Parse verifies a token against cfg at the given time.
func Parse(cfg TokenConfig, tokenStr string, now time.Time) (Claims, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}
	id, _ := claims["id"].(string)
	username, _ := claims["username"].(string)
	if id == "" || username == "" {
		return Claims{}, ErrInvalidToken
	}
	return Claims{ID: id, Username: username}, nil
}
