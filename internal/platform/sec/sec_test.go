// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/lotmarket/internal/platform/sec"
)

func newTokenService(t *testing.T, secret string, ttl time.Duration) *sec.TokenService {
	t.Helper()
	service, err := sec.NewTokenService(sec.TokenConfig{Secret: secret, TimeToLive: ttl, Issuer: "lotmarket"})
	require.NoError(t, err)
	return service
}

func TestTokenService_RoundTrip(t *testing.T) {
	service := newTokenService(t, "secret", time.Hour)
	assert.Equal(t, time.Hour, service.TimeToLive())

	token, err := service.GenerateToken("user-1", "a@b.co")
	require.NoError(t, err)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "a@b.co", claims.Email)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestTokenService_Rejects(t *testing.T) {
	issuer := newTokenService(t, "secret", time.Minute)
	token, err := issuer.GenerateToken("user-1", "a@b.co")
	require.NoError(t, err)

	t.Run("wrong_secret", func(t *testing.T) {
		other := newTokenService(t, "another-secret", time.Minute)
		_, err := other.VerifyToken(token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		verifier := newTokenService(t, "secret", time.Minute)
		verifier.SetClock(func() time.Time { return time.Now().Add(2 * time.Minute) })
		_, err := verifier.VerifyToken(token)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := issuer.VerifyToken("not.a.token")
		assert.Error(t, err)
	})
}

func TestNewTokenService_RequiresSettings(t *testing.T) {
	_, err := sec.NewTokenService(sec.TokenConfig{Secret: "", TimeToLive: time.Hour})
	assert.Error(t, err)

	_, err = sec.NewTokenService(sec.TokenConfig{Secret: "s", TimeToLive: 0})
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	first, err := sec.HashPassword("correct horse")
	require.NoError(t, err)
	second, err := sec.HashPassword("correct horse")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NotEqual(t, "correct horse", first)
	assert.True(t, sec.CheckPasswordHash("correct horse", first))
	assert.False(t, sec.CheckPasswordHash("wrong horse", first))
	assert.False(t, sec.CheckPasswordHash("correct horse", "not-a-bcrypt-hash"))
}
