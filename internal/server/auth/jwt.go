// Package auth implements the authentication and authorization core:
// bcrypt credentials, HS256 access tokens, the role-based access policy and
// the request gate composing them.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/userhub/internal/common"
	"github.com/dmitrijs2005/userhub/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the registered claim set plus the account role.
// Subject holds the account identifier.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// TokenService issues and verifies signed access tokens. The secret and
// validity duration are fixed at construction; there is no rotation and no
// server-side revocation, tokens simply expire.
type TokenService struct {
	secretKey        []byte
	validityDuration time.Duration
}

func NewTokenService(secretKey []byte, validityDuration time.Duration) *TokenService {
	return &TokenService{secretKey: secretKey, validityDuration: validityDuration}
}

// Issue mints a token binding the account id and role, valid from now until
// now+TTL.
func (s *TokenService) Issue(accountID string, role models.Role) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.validityDuration)),
		},
		Role: string(role),
	})

	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("error signing token: %w", err)
	}

	return tokenString, nil
}

// Verify checks the signature and claims and resolves the caller. Expiry is
// reported as common.ErrTokenExpired; every other defect (bad signature,
// malformed payload, unexpected algorithm, unknown role, missing subject)
// collapses to common.ErrInvalidToken. There is no partially valid outcome.
func (s *TokenService) Verify(tokenString string) (Caller, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Caller{}, common.ErrTokenExpired
		}
		return Caller{}, common.ErrInvalidToken
	}
	if !token.Valid {
		return Caller{}, common.ErrInvalidToken
	}

	if claims.Subject == "" {
		return Caller{}, common.ErrInvalidToken
	}
	role, err := models.ParseRole(claims.Role)
	if err != nil {
		return Caller{}, common.ErrInvalidToken
	}

	return Caller{AccountID: claims.Subject, Role: role}, nil
}
