package supabase

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	audience      = "authenticated"
	defaultLeeway = 30 * time.Second
)

// Verifier turns a bearer token into an Identity.
type Verifier interface {
	Verify(token string) (*Identity, error)
}

// JWTVerifier validates platform access tokens either with the shared HS256
// secret or with keys published on the JWKS endpoint.
type JWTVerifier struct {
	parser  *jwt.Parser
	keyfunc jwt.Keyfunc
}

// NewHMACVerifier verifies tokens signed with the project JWT secret.
func NewHMACVerifier(secret string) (*JWTVerifier, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must be set")
	}
	key := []byte(secret)
	return &JWTVerifier{
		parser: newParser(jwt.SigningMethodHS256.Name),
		keyfunc: func(token *jwt.Token) (interface{}, error) {
			return key, nil
		},
	}, nil
}

// NewJWKSVerifier verifies asymmetric tokens against the published key set.
func NewJWKSVerifier(jwksURL string) (*JWTVerifier, error) {
	if jwksURL == "" {
		return nil, errors.New("jwks url must be set")
	}
	k, err := keyfunc.NewDefault([]string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("failed to init JWKS keyfunc: %w", err)
	}
	return &JWTVerifier{
		parser:  newParser(jwt.SigningMethodES256.Name, jwt.SigningMethodRS256.Name),
		keyfunc: k.Keyfunc,
	}, nil
}

// NewVerifier prefers the JWKS endpoint when both are configured.
func NewVerifier(jwtSecret, jwksURL string) (*JWTVerifier, error) {
	if jwksURL != "" {
		return NewJWKSVerifier(jwksURL)
	}
	return NewHMACVerifier(jwtSecret)
}

func newParser(methods ...string) *jwt.Parser {
	return jwt.NewParser(
		jwt.WithValidMethods(methods),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(defaultLeeway),
	)
}

func (v *JWTVerifier) Verify(tokenString string) (*Identity, error) {
	token, err := v.parser.Parse(strings.TrimSpace(tokenString), v.keyfunc)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	sub, _ := claims["sub"].(string)
	id, err := uuid.Parse(sub)
	if err != nil {
		return nil, fmt.Errorf("token subject is not a user id: %w", err)
	}

	identity := &Identity{
		ID:        id.String(),
		Email:     readString(claims, "email"),
		Role:      readString(claims, "role"),
		SessionID: readString(claims, "session_id"),
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		identity.ExpiresAt = exp.Time
	}
	return identity, nil
}

func readString(claims jwt.MapClaims, key string) string {
	if s, ok := claims[key].(string); ok {
		return s
	}
	return ""
}
