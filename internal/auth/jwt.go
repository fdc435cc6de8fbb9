package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Ponloe/skymesh-core/internal/users"
)

// tokenTTL is fixed. There is no refresh-token concept: a token expires one
// hour after issuance and cannot be renewed or revoked.
const tokenTTL = time.Hour

// minKeyBytes mirrors the HS256 requirement of a 256-bit key.
const minKeyBytes = 32

var ErrKeyTooShort = fmt.Errorf("jwt signing key must be at least %d bytes", minKeyBytes)

type Claims struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Role     string    `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies bearer tokens with a shared HS256 secret.
type Issuer struct {
	secret   []byte
	issuer   string
	audience string
}

// NewIssuer fails when the secret is shorter than 32 UTF-8 bytes. This is a
// configuration error and should abort startup, not surface per request.
func NewIssuer(secret, issuer, audience string) (*Issuer, error) {
	if len([]byte(secret)) < minKeyBytes {
		return nil, ErrKeyTooShort
	}
	return &Issuer{secret: []byte(secret), issuer: issuer, audience: audience}, nil
}

func (i *Issuer) GenerateToken(u *users.User) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		UserID:   u.ID,
		Username: u.Username,
		Role:     u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.Username,
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	if i.audience != "" {
		claims.Audience = jwt.ClaimStrings{i.audience}
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// ParseToken verifies signature, algorithm, expiry and, when configured,
// issuer and audience. Expired tokens are rejected.
func (i *Issuer) ParseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256"})}
	if i.issuer != "" {
		opts = append(opts, jwt.WithIssuer(i.issuer))
	}
	if i.audience != "" {
		opts = append(opts, jwt.WithAudience(i.audience))
	}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return i.secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	return claims, nil
}
