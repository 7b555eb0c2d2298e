package identity

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// Config holds session token settings.
type Config struct {
	Secret   string        `env:"AUTH_TOKEN_SECRET,required"`              // HMAC signing secret.
	TokenTTL time.Duration `env:"AUTH_TOKEN_TTL" envDefault:"24h"`         // Access token lifetime.
	Issuer   string        `env:"AUTH_TOKEN_ISSUER" envDefault:"gadisewa"` // Token issuer claim.
}

// Claims are the session token claims. GarageID pins the token to the
// scope the credential was verified in; the auth middleware rejects any
// token presented against a different scope.
type Claims struct {
	UserID   uuid.UUID  `json:"user_id"`
	Email    string     `json:"email"`
	GarageID *uuid.UUID `json:"garage_id,omitempty"`
	Role     string     `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies session tokens.
type TokenIssuer struct {
	cfg Config
}

func NewTokenIssuer(cfg Config) *TokenIssuer {
	return &TokenIssuer{cfg: cfg}
}

// Issue signs a token for the principal, carrying its scope.
func (t *TokenIssuer) Issue(u *User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   u.ID,
		Email:    u.Email,
		GarageID: u.GarageID,
		Role:     u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.cfg.Issuer,
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.cfg.TokenTTL)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(t.cfg.Secret))
}

// Verify parses and validates a token, returning its claims.
func (t *TokenIssuer) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(t.cfg.Secret), nil
	})
	if err != nil {
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
