package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("REQUEST_TIMEOUT", "")
	t.Setenv("APP_ENV", "")

	c, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "5175", c.Port)
	assert.Equal(t, ":5175", c.Addr())
	assert.Equal(t, "memory", c.StoreDriver)
	assert.Equal(t, "hangman_player", c.CookieName)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.False(t, c.Production())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_SECRET", "s3cret-for-prod")
	t.Setenv("REQUEST_TIMEOUT", "3s")
	t.Setenv("WORDS_FILE", "/tmp/words.json")

	c, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":8080", c.Addr())
	assert.Equal(t, "sqlite", c.StoreDriver)
	assert.True(t, c.Production())
	assert.Equal(t, 3*time.Second, c.RequestTimeout)
	assert.Equal(t, "/tmp/words.json", c.WordsFile)
}

func TestFromEnvRejectsUnknownStore(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")

	_, err := FromEnv()
	assert.Error(t, err)
}

func TestFromEnvRejectsDevSecretInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_SECRET", "")

	_, err := FromEnv()
	assert.ErrorContains(t, err, "SESSION_SECRET")

	t.Setenv("SESSION_SECRET", DevSessionSecret)
	_, err = FromEnv()
	assert.Error(t, err)

	t.Setenv("APP_ENV", "development")
	_, err = FromEnv()
	assert.NoError(t, err)
}
