package session_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ajosh-NyxBar/SkillSwap/internal/models"
	"github.com/Ajosh-NyxBar/SkillSwap/internal/session"
)

func mintToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{"user_id": 1}
	if !exp.IsZero() {
		claims["exp"] = exp.Unix()
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

// TestSaveLoadClear walks the full lifecycle: save, reload from disk through
// a fresh store, then clear.
func TestSaveLoadClear(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := session.NewStore(path)
	sess := &session.Session{
		Token: mintToken(t, time.Now().Add(time.Hour)),
		User:  models.User{ID: 42, Username: "ana"},
	}

	// Act + Assert - save and read back in memory
	require.NoError(t, store.Save(sess))
	assert.Equal(t, sess.Token, store.Token())

	// A fresh store sees the same session from disk.
	reloaded := session.NewStore(path)
	got, err := reloaded.Load()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, uint(42), got.User.ID)
	assert.Equal(t, sess.Token, reloaded.Token())

	// Clear removes both memory and file.
	require.NoError(t, reloaded.Clear())
	assert.Nil(t, reloaded.Current())
	again, err := session.NewStore(path).Load()
	require.NoError(t, err)
	assert.Nil(t, again)
}

// TestLoadMissingFile verifies a missing session file means logged out, not
// an error.
func TestLoadMissingFile(t *testing.T) {
	store := session.NewStore(filepath.Join(t.TempDir(), "absent.json"))

	sess, err := store.Load()

	require.NoError(t, err)
	assert.Nil(t, sess)
}

// TestClearIdempotent verifies clearing a never-saved session succeeds.
func TestClearIdempotent(t *testing.T) {
	store := session.NewStore(filepath.Join(t.TempDir(), "absent.json"))

	assert.NoError(t, store.Clear())
}

// TestExpired covers the expiry cases: no session, live token, expired
// token, token without exp and garbage.
func TestExpired(t *testing.T) {
	now := time.Now()

	t.Run("no session", func(t *testing.T) {
		store := session.NewStore(filepath.Join(t.TempDir(), "s.json"))
		assert.True(t, store.Expired(now))
	})

	t.Run("live token", func(t *testing.T) {
		store := session.NewStore(filepath.Join(t.TempDir(), "s.json"))
		require.NoError(t, store.Save(&session.Session{Token: mintToken(t, now.Add(time.Hour))}))
		assert.False(t, store.Expired(now))
	})

	t.Run("expired token", func(t *testing.T) {
		store := session.NewStore(filepath.Join(t.TempDir(), "s.json"))
		require.NoError(t, store.Save(&session.Session{Token: mintToken(t, now.Add(-time.Hour))}))
		assert.True(t, store.Expired(now))
	})

	t.Run("no exp claim counts as live", func(t *testing.T) {
		store := session.NewStore(filepath.Join(t.TempDir(), "s.json"))
		require.NoError(t, store.Save(&session.Session{Token: mintToken(t, time.Time{})}))
		assert.False(t, store.Expired(now))
	})

	t.Run("garbage token", func(t *testing.T) {
		store := session.NewStore(filepath.Join(t.TempDir(), "s.json"))
		require.NoError(t, store.Save(&session.Session{Token: "not-a-jwt"}))
		assert.True(t, store.Expired(now))
	})
}
