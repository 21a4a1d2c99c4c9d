package supabase

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "super-secret-jwt-token-with-at-least-32-characters"

func sign(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"sub":        "5b0b2f1e-6d3c-4f59-9a43-1d2a0b8e7c11",
		"email":      "ana@example.com",
		"role":       "authenticated",
		"aud":        "authenticated",
		"session_id": "sess-1",
		"exp":        time.Now().Add(time.Hour).Unix(),
	}
}

func TestHMACVerifier(t *testing.T) {
	v, err := NewHMACVerifier(testSecret)
	require.NoError(t, err)

	identity, err := v.Verify(sign(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims()))
	require.NoError(t, err)
	assert.Equal(t, "5b0b2f1e-6d3c-4f59-9a43-1d2a0b8e7c11", identity.ID)
	assert.Equal(t, "ana@example.com", identity.Email)
	assert.Equal(t, "sess-1", identity.Session().ID)
	assert.False(t, identity.ExpiresAt.IsZero())
}

func TestHMACVerifierRejects(t *testing.T) {
	v, err := NewHMACVerifier(testSecret)
	require.NoError(t, err)

	expired := validClaims()
	expired["exp"] = time.Now().Add(-time.Hour).Unix()

	wrongAud := validClaims()
	wrongAud["aud"] = "anon"

	badSub := validClaims()
	badSub["sub"] = "not-a-uuid"

	noExp := validClaims()
	delete(noExp, "exp")

	tests := map[string]string{
		"wrong secret": sign(t, jwt.SigningMethodHS256, []byte("another-secret-another-secret-123"), validClaims()),
		"expired":      sign(t, jwt.SigningMethodHS256, []byte(testSecret), expired),
		"audience":     sign(t, jwt.SigningMethodHS256, []byte(testSecret), wrongAud),
		"subject":      sign(t, jwt.SigningMethodHS256, []byte(testSecret), badSub),
		"no expiry":    sign(t, jwt.SigningMethodHS256, []byte(testSecret), noExp),
		"garbage":      "not.a.jwt",
		"alg none":     sign(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, validClaims()),
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			identity, err := v.Verify(token)
			assert.Error(t, err)
			assert.Nil(t, identity)
		})
	}
}

func TestNewVerifierRequiresKeyMaterial(t *testing.T) {
	_, err := NewVerifier("", "")
	assert.Error(t, err)
}

func TestProjectRef(t *testing.T) {
	ref, hosted := projectRef("https://abcd1234.supabase.co/")
	assert.True(t, hosted)
	assert.Equal(t, "abcd1234", ref)

	_, hosted = projectRef("http://localhost:54321")
	assert.False(t, hosted)
}
