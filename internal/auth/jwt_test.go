// AngelaMos | 2026
// jwt_test.go

package auth

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/steinfletcher/apitest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/journal-backend/internal/core"
)

func TestJWTManager_FromGeneratedKeyFiles(t *testing.T) {
	dir := t.TempDir()
	cfg := testJWTConfig()
	cfg.PrivateKeyPath = filepath.Join(dir, "private.pem")
	cfg.PublicKeyPath = filepath.Join(dir, "public.pem")

	require.NoError(t, GenerateKeyPair(cfg.PrivateKeyPath, cfg.PublicKeyPath))

	m, err := NewJWTManager(cfg)
	require.NoError(t, err)
	assert.Len(t, m.GetKeyID(), 8)

	userID := uuid.New()
	token, expiresAt, err := m.CreateAccessToken(userID)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(cfg.AccessTokenExpire), expiresAt, time.Minute)

	got, err := m.VerifyAccessToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestJWTManager_Expired(t *testing.T) {
	cfg := testJWTConfig()
	cfg.AccessTokenExpire = -time.Minute
	m := newTestJWT(t, cfg)

	token, _, err := m.CreateAccessToken(uuid.New())
	require.NoError(t, err)

	_, err = m.VerifyAccessToken(context.Background(), token)
	assert.ErrorIs(t, err, core.ErrTokenExpired)
}

func TestJWTManager_RejectsForeignKey(t *testing.T) {
	issuer := newTestJWT(t, testJWTConfig())
	verifier := newTestJWT(t, testJWTConfig())

	token, _, err := issuer.CreateAccessToken(uuid.New())
	require.NoError(t, err)

	_, err = verifier.VerifyAccessToken(context.Background(), token)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestJWKSHandler(t *testing.T) {
	m := newTestJWT(t, testJWTConfig())

	var set struct {
		Keys []map[string]any `json:"keys"`
	}
	apitest.Handler(m.GetJWKSHandler()).
		Get("/.well-known/jwks.json").
		Expect(t).
		Status(http.StatusOK).
		Header("Content-Type", "application/json").
		End().
		JSON(&set)

	require.Len(t, set.Keys, 1)
	assert.Equal(t, "EC", set.Keys[0]["kty"])
	assert.Equal(t, m.GetKeyID(), set.Keys[0]["kid"])
	assert.NotContains(t, set.Keys[0], "d")
}
