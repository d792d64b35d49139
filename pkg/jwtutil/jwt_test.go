package jwtutil

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newKeyPair(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func TestGenerateAndVerifyRoundTrip(t *testing.T) {
	key := newKeyPair(t)
	gen := NewGenerator(key, "dstra", "dstra-web", "kid-1", time.Hour)
	ver := NewVerifier(&key.PublicKey, "dstra", "dstra-web")
	ver.AddKey("kid-1", &key.PublicKey)

	token, jti, err := gen.Generate("u1", "ada@example.com", "student", "laptop")
	require.NoError(t, err)
	require.NotEmpty(t, jti)

	claims, err := ver.ParseAndValidate(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "student", claims.Role)
	assert.Equal(t, "laptop", claims.Device)
	assert.Equal(t, jti, claims.ID)
	assert.Equal(t, "u1", claims.Subject)
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	gen := NewGenerator(newKeyPair(t), "dstra", "dstra-web", "", time.Hour)
	other := newKeyPair(t)
	ver := NewVerifier(&other.PublicKey, "dstra", "dstra-web")

	token, _, err := gen.Generate("u1", "ada@example.com", "student", "")
	require.NoError(t, err)

	_, err = ver.ParseAndValidate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	key := newKeyPair(t)
	gen := NewGenerator(key, "dstra", "dstra-web", "", -time.Minute)
	ver := NewVerifier(&key.PublicKey, "dstra", "dstra-web")

	token, _, err := gen.Generate("u1", "ada@example.com", "student", "")
	require.NoError(t, err)

	_, err = ver.ParseAndValidate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongAudience(t *testing.T) {
	key := newKeyPair(t)
	gen := NewGenerator(key, "dstra", "some-other-app", "", time.Hour)
	ver := NewVerifier(&key.PublicKey, "dstra", "dstra-web")

	token, _, err := gen.Generate("u1", "ada@example.com", "student", "")
	require.NoError(t, err)

	_, err = ver.ParseAndValidate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	key := newKeyPair(t)
	ver := NewVerifier(&key.PublicKey, "dstra", "dstra-web")

	_, err := ver.ParseAndValidate("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
