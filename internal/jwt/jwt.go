package jwt

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken wraps every verification failure.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the payload of an access token. The subject holds the user id.
type Claims struct {
	Email string `json:"email"`
	gojwt.RegisteredClaims
}

// Identity is what a verified token resolves to.
type Identity struct {
	UserID int64
	Email  string
}

// JWTService signs and verifies HS256 access tokens.
type JWTService struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

// NewJWTService fails when the secret is empty or the lifetime is not positive.
func NewJWTService(secret string, lifetime time.Duration) (*JWTService, error) {
	if secret == "" {
		return nil, errors.New("jwt: signing secret is required")
	}
	if lifetime <= 0 {
		return nil, errors.New("jwt: token lifetime must be positive")
	}
	return &JWTService{
		secret:   []byte(secret),
		lifetime: lifetime,
		now:      time.Now,
	}, nil
}

// GenerateToken issues a token for the user that expires after the configured
// lifetime.
func (s *JWTService) GenerateToken(userID int64, email string) (string, error) {
	now := s.now()
	claims := Claims{
		Email: email,
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(s.lifetime)),
		},
	}

	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

// ValidateToken checks signature, algorithm and expiry, then resolves the
// subject to a user id. No store lookup happens here.
func (s *JWTService) ValidateToken(tokenString string) (*Identity, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	keyFunc := func(*gojwt.Token) (any, error) {
		return s.secret, nil
	}

	var claims Claims
	_, err := gojwt.ParseWithClaims(tokenString, &claims, keyFunc,
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
		gojwt.WithExpirationRequired(),
		gojwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID < 1 {
		return nil, fmt.Errorf("%w: bad subject %q", ErrInvalidToken, claims.Subject)
	}

	return &Identity{UserID: userID, Email: claims.Email}, nil
}
