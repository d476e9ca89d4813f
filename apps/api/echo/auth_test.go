package echoapi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvillarreal/educrm/core/user"
)

func Test_TokenService_roundTrip(t *testing.T) {
	ts := NewTokenService(newTestConfig())
	usr := user.User{ID: 42, Email: "ana@uni.edu", Role: user.RoleAdmin}

	token, err := ts.Generate(ts.Claims(usr))
	require.NoError(t, err)

	claims, err := ts.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "ana@uni.edu", claims.Email)
	assert.Equal(t, user.RoleAdmin, claims.Role)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, 42, id)
}

func Test_TokenService_expiry(t *testing.T) {
	ts := NewTokenService(newTestConfig())
	usr := user.User{ID: 1, Email: "ana@uni.edu", Role: user.RoleProfesor}

	token, err := ts.Generate(ts.Claims(usr))
	require.NoError(t, err)

	// still valid just before the deadline
	ts.nowFunc = func() time.Time { return time.Now().Add(23 * time.Hour) }
	_, err = ts.Parse(token)
	assert.NoError(t, err)

	ts.nowFunc = func() time.Time { return time.Now().Add(25 * time.Hour) }
	_, err = ts.Parse(token)
	assert.ErrorIs(t, err, errTokenExpired)
}

func Test_TokenService_invalid(t *testing.T) {
	ts := NewTokenService(newTestConfig())
	usr := user.User{ID: 1, Email: "ana@uni.edu", Role: user.RoleProfesor}

	token, err := ts.Generate(ts.Claims(usr))
	require.NoError(t, err)

	t.Run("garbage", func(t *testing.T) {
		_, err := ts.Parse("not.a.token")
		assert.ErrorIs(t, err, errTokenInvalid)
	})

	t.Run("tampered payload", func(t *testing.T) {
		_, err := ts.Parse(token[:len(token)-3] + "xxx")
		assert.ErrorIs(t, err, errTokenInvalid)
	})

	t.Run("wrong key", func(t *testing.T) {
		other := newTestConfig()
		other.SecretKey = "another-secret-key"
		_, err := NewTokenService(other).Parse(token)
		assert.ErrorIs(t, err, errTokenInvalid)
	})
}
