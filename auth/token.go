package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/upb/eventflow/models"
)

const (
	// TokenTTL is the validity window of every issued token
	TokenTTL = 10 * 24 * time.Hour

	// DefaultSecret is the development-only signing secret used when JWT_SECRET is unset
	DefaultSecret = "your-very-secure-256-bit-secret-key-change-this-in-production-12345678"

	minSecretLength = 32
	roleClaim       = "role"
)

// Claims are the JWT claims carried by an identity token
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenCodec issues and verifies signed identity tokens
type TokenCodec struct {
	key    []byte
	now    func() time.Time
	parser *jwt.Parser
}

// CodecOption configures a TokenCodec
type CodecOption func(*TokenCodec)

// WithClock overrides the time source used for issuance and expiry checks
func WithClock(now func() time.Time) CodecOption {
	return func(c *TokenCodec) {
		c.now = now
	}
}

// NewTokenCodec creates a TokenCodec signing with the given secret.
// The secret is copied; later changes to the caller's slice have no effect.
func NewTokenCodec(secret []byte, opts ...CodecOption) (*TokenCodec, error) {
	if len(secret) < minSecretLength {
		return nil, ErrWeakSecret
	}

	c := &TokenCodec{
		key: append([]byte(nil), secret...),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)

	return c, nil
}

// Issue creates a token for the subject valid for TokenTTL from now
func (c *TokenCodec) Issue(subjectID int, role models.UserRole) (string, error) {
	if !role.IsValid() {
		return "", fmt.Errorf("cannot issue token for unknown role %q", role)
	}

	now := c.now()
	claims := Claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(subjectID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the token and returns the identity it carries.
// Every failure wraps ErrInvalidToken.
func (c *TokenCodec) Verify(tokenString string) (Identity, error) {
	claims := &Claims{}
	token, err := c.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return c.key, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, fmt.Errorf("%w: token expired", ErrInvalidToken)
		}
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	subjectID, err := strconv.Atoi(claims.Subject)
	if err != nil || subjectID <= 0 {
		return Identity{}, fmt.Errorf("%w: unparseable subject", ErrInvalidToken)
	}

	role, ok := models.ParseUserRole(claims.Role)
	if !ok {
		return Identity{}, fmt.Errorf("%w: missing or unknown %s claim", ErrInvalidToken, roleClaim)
	}

	return Identity{SubjectID: subjectID, Role: role}, nil
}
