package auth

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"coopsave/entity"
)

// TokenTTL caps access-token lifetime at 4 hours.
const TokenTTL = 4 * time.Hour

// Claims is the credential context extracted from a bearer token.
type Claims struct {
	UserID string `json:"userId"`
	Scope  string `json:"scope"`
	jwt.RegisteredClaims
}

// Secret returns the HMAC signing key from JWT_SECRET (fallback to dev default).
func Secret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-insecure-secret-change"
	}
	return []byte(secret)
}

// SignToken mints an HS256 access token carrying the user id and scope.
func SignToken(userID uuid.UUID, scope entity.Role) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID.String(),
		Scope:  string(scope),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(Secret())
}

// ParseToken verifies signature, not-before and expiry, and returns the claims.
func ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return Secret(), nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}
