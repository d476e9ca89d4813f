package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NewConfig_defaults(t *testing.T) {
	conf, err := NewConfig()
	require.NoError(t, err)

	assert.True(t, conf.Debug)
	assert.Equal(t, "DEV", conf.Env)
	assert.Equal(t, "EduCRM", conf.AppName)
	assert.Equal(t, 24*time.Hour, conf.Server.JWTExpirationDelta)
	assert.Equal(t, ":8000", conf.ServerAddress())
	assert.Equal(t, "localhost:5432", conf.DatabaseAddress())
	// a debug fallback key is provided so DEV works out of the box
	assert.NotEmpty(t, conf.SecretKey)
}

func Test_NewConfig_env(t *testing.T) {
	t.Setenv("ENV", "TEST")
	t.Setenv("TEST_SECRETKEY", "from-env")
	t.Setenv("TEST_SERVER_PORT", "9000")

	conf, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "TEST", conf.Env)
	assert.True(t, conf.TestMode)
	assert.Equal(t, "from-env", conf.SecretKey)
	assert.Equal(t, 9000, conf.Server.Port)
}
