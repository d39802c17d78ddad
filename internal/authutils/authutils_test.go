package authutils

import (
	"context"
	"errors"
	"testing"
	"time"

	"troubleshoot-titans/internal/models"

	"firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

func TestJWTVerifier(t *testing.T) {
	v, err := NewJWTVerifier(testSecret, nil)
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("valid token", func(t *testing.T) {
		token, err := GenerateToken(testSecret, "user-1", "Alex", time.Hour)
		require.NoError(t, err)

		session, err := v.VerifyToken(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", session.UserID)
		assert.Equal(t, "Alex", session.DisplayName)
		assert.Equal(t, ProviderJWT, session.Provider)
	})

	t.Run("subject fallback", func(t *testing.T) {
		claims := jwt.RegisteredClaims{Subject: "user-2", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		session, err := v.VerifyToken(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, "user-2", session.UserID)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := GenerateToken(testSecret, "user-1", "Alex", -time.Minute)
		require.NoError(t, err)
		_, err = v.VerifyToken(ctx, token)
		assert.ErrorIs(t, err, models.ErrTokenExpired)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := GenerateToken("other-secret", "user-1", "Alex", time.Hour)
		require.NoError(t, err)
		_, err = v.VerifyToken(ctx, token)
		assert.ErrorIs(t, err, models.ErrTokenInvalid)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := v.VerifyToken(ctx, "not-a-token")
		assert.ErrorIs(t, err, models.ErrTokenMalformed)
	})

	t.Run("missing user id", func(t *testing.T) {
		claims := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)
		_, err = v.VerifyToken(ctx, token)
		assert.ErrorIs(t, err, models.ErrTokenInvalid)
	})

	t.Run("empty secret", func(t *testing.T) {
		_, err := NewJWTVerifier("", nil)
		assert.Error(t, err)
	})
}

type fakeIDTokenVerifier struct {
	token *auth.Token
	err   error
}

func (f fakeIDTokenVerifier) VerifyIDToken(context.Context, string) (*auth.Token, error) {
	return f.token, f.err
}

func TestFirebaseVerifier(t *testing.T) {
	ctx := context.Background()

	t.Run("maps claims to session", func(t *testing.T) {
		v := newFirebaseVerifier(fakeIDTokenVerifier{token: &auth.Token{
			UID:    "fb-uid",
			Claims: map[string]interface{}{"name": "Sam", "email": "sam@example.com"},
		}}, zap.NewNop())

		session, err := v.VerifyToken(ctx, "id-token")
		require.NoError(t, err)
		assert.Equal(t, &models.Session{
			UserID:      "fb-uid",
			DisplayName: "Sam",
			Email:       "sam@example.com",
			Provider:    ProviderFirebase,
		}, session)
	})

	t.Run("verification error", func(t *testing.T) {
		v := newFirebaseVerifier(fakeIDTokenVerifier{err: errors.New("bad signature")}, zap.NewNop())
		_, err := v.VerifyToken(ctx, "id-token")
		assert.ErrorIs(t, err, models.ErrTokenInvalid)
	})
}
