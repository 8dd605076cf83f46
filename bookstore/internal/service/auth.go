package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenTTL = 12 * time.Hour

type AdminClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Authenticator issues and checks admin tokens for the single configured
// admin account.
type Authenticator struct {
	user     string
	passHash []byte
	secret   []byte
	ttl      time.Duration
}

func NewAuthenticator(user, password, secret string, ttl time.Duration) (*Authenticator, error) {
	if user == "" || password == "" {
		return nil, errors.New("admin user and password are required")
	}
	if secret == "" {
		return nil, errors.New("JWT secret is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &Authenticator{
		user:     user,
		passHash: hash,
		secret:   []byte(secret),
		ttl:      ttl,
	}, nil
}

// Verify checks admin credentials without issuing a token.
func (a *Authenticator) Verify(user, pass string) error {
	if subtle.ConstantTimeCompare([]byte(user), []byte(a.user)) != 1 {
		return AuthError{Msg: "unauthorized"}
	}
	if err := bcrypt.CompareHashAndPassword(a.passHash, []byte(pass)); err != nil {
		return AuthError{Msg: "unauthorized"}
	}
	return nil
}

func (a *Authenticator) Login(user, pass string) (string, error) {
	if err := a.Verify(user, pass); err != nil {
		return "", err
	}

	now := time.Now()
	claims := AdminClaims{
		Username: user,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user,
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

func (a *Authenticator) ValidateToken(tokenString string) (AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(token *jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return AdminClaims{}, AuthError{Msg: "unauthorized"}
	}

	claims, ok := token.Claims.(*AdminClaims)
	if !ok || !token.Valid {
		return AdminClaims{}, AuthError{Msg: "unauthorized"}
	}
	return *claims, nil
}

// Context helpers

type claimsKey struct{}

func ContextWithClaims(ctx context.Context, claims AdminClaims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

func ClaimsFromContext(ctx context.Context) (AdminClaims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(AdminClaims)
	return claims, ok
}
