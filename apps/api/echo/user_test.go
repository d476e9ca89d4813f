package echoapi

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvillarreal/educrm/core/user"
)

func Test_register(t *testing.T) {
	app := setup(t)

	body := marshallObj(t, map[string]string{
		"email":    "ana@uni.edu",
		"password": "s3cret",
		"name":     "Ana",
	})
	req, rec := newRequest(http.MethodPost, "/api/auth/register", body)
	app.server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	got := decodeBody(t, rec)
	assert.Equal(t, "Usuario registrado exitosamente", got["message"])
	assert.NotEmpty(t, got["access_token"])

	usr := got["user"].(map[string]interface{})
	assert.Equal(t, "profesor", usr["role"])
	assert.Equal(t, true, usr["is_active"])
	// the hash never crosses the boundary
	assert.NotContains(t, usr, "password_hash")
	assert.NotContains(t, rec.Body.String(), "s3cret")
}

func Test_register_validation(t *testing.T) {
	app := setup(t)
	app.createUser(t, "ana@uni.edu", user.RoleProfesor)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing fields", map[string]string{"email": "x@uni.edu"}},
		{"bad email", map[string]string{"email": "nope", "password": "p", "name": "N"}},
		{"duplicate email", map[string]string{"email": "ana@uni.edu", "password": "p", "name": "N"}},
		{"bad role", map[string]string{"email": "y@uni.edu", "password": "p", "name": "N", "role": "root"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/api/auth/register", marshallObj(t, tt.body))
			app.server.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func Test_login(t *testing.T) {
	app := setup(t)
	app.createUser(t, "ana@uni.edu", user.RoleAdmin)

	t.Run("ok", func(t *testing.T) {
		body := marshallObj(t, map[string]string{"email": "ana@uni.edu", "password": "s3cret"})
		req, rec := newRequest(http.MethodPost, "/api/auth/login", body)
		app.server.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		got := decodeBody(t, rec)
		assert.Equal(t, "Login exitoso", got["message"])
		assert.NotEmpty(t, got["token"])
	})

	t.Run("wrong password", func(t *testing.T) {
		body := marshallObj(t, map[string]string{"email": "ana@uni.edu", "password": "wrong"})
		req, rec := newRequest(http.MethodPost, "/api/auth/login", body)
		app.server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "invalid credentials", decodeBody(t, rec)["error"])
	})

	t.Run("unknown email", func(t *testing.T) {
		body := marshallObj(t, map[string]string{"email": "nadie@uni.edu", "password": "s3cret"})
		req, rec := newRequest(http.MethodPost, "/api/auth/login", body)
		app.server.ServeHTTP(rec, req)

		// indistinguishable from a wrong password
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "invalid credentials", decodeBody(t, rec)["error"])
	})

	t.Run("inactive account", func(t *testing.T) {
		usr := app.createUser(t, "inactivo@uni.edu", user.RoleProfesor)
		inactive := false
		_, err := app.usrSvc.Update(context.Background(), usr.ID, user.UpdateUser{IsActive: &inactive})
		require.NoError(t, err)

		body := marshallObj(t, map[string]string{"email": "inactivo@uni.edu", "password": "s3cret"})
		req, rec := newRequest(http.MethodPost, "/api/auth/login", body)
		app.server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "account is inactive", decodeBody(t, rec)["error"])
	})
}

func Test_authMiddleware_failures(t *testing.T) {
	app := setup(t)
	usr := app.createUser(t, "ana@uni.edu", user.RoleAdmin)

	t.Run("missing token", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/api/auth/profile")
		app.server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "token required", decodeBody(t, rec)["error"])
	})

	t.Run("invalid token", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/api/auth/profile", "garbage")
		app.server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "invalid token", decodeBody(t, rec)["error"])
	})

	t.Run("expired token", func(t *testing.T) {
		app.tokenSvc.expiration = -time.Hour
		expired, err := app.tokenSvc.Generate(app.tokenSvc.Claims(usr))
		require.NoError(t, err)
		app.tokenSvc.expiration = 24 * time.Hour

		req, rec := newAuthRequest(http.MethodGet, "/api/auth/profile", expired)
		app.server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "token expired", decodeBody(t, rec)["error"])
	})
}

func Test_profile_and_verify(t *testing.T) {
	app := setup(t)
	usr := app.createUser(t, "ana@uni.edu", user.RoleAdmin)
	token := app.getToken(t, usr)

	t.Run("profile", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/api/auth/profile", token)
		app.server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ana@uni.edu", decodeBody(t, rec)["email"])
	})

	t.Run("verify", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/api/auth/verify", token)
		app.server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, decodeBody(t, rec)["valid"])
	})

	t.Run("vanished account is a 404, not a 401", func(t *testing.T) {
		victim := app.createUser(t, "victim@uni.edu", user.RoleProfesor)
		victimToken := app.getToken(t, victim)
		require.NoError(t, app.usrSvc.Delete(context.Background(), usr.ID, victim.ID))

		req, rec := newAuthRequest(http.MethodGet, "/api/auth/profile", victimToken)
		app.server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "user not found", decodeBody(t, rec)["error"])
	})
}

func Test_users_query_permissions(t *testing.T) {
	app := setup(t)
	superadmin := app.createUser(t, "root@uni.edu", user.RoleSuperadmin)
	admin := app.createUser(t, "admin@uni.edu", user.RoleAdmin)
	profesor := app.createUser(t, "prof@uni.edu", user.RoleProfesor)
	asistente := app.createUser(t, "asis@uni.edu", user.RoleAsistente)

	tests := []struct {
		name     string
		usr      user.User
		wantCode int
	}{
		{"superadmin", superadmin, http.StatusOK},
		{"admin", admin, http.StatusOK},
		{"profesor", profesor, http.StatusForbidden},
		{"asistente", asistente, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, "/api/users", app.getToken(t, tt.usr))
			app.server.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode == http.StatusForbidden {
				assert.Equal(t, "permission denied", decodeBody(t, rec)["error"])
			}
		})
	}
}

func Test_users_create_permissions(t *testing.T) {
	app := setup(t)
	superadmin := app.createUser(t, "root@uni.edu", user.RoleSuperadmin)
	admin := app.createUser(t, "admin@uni.edu", user.RoleAdmin)

	body := marshallObj(t, map[string]string{
		"email":    "nuevo@uni.edu",
		"password": "s3cret",
		"name":     "Nuevo",
		"role":     "asistente",
	})

	t.Run("admin may not create", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/api/users", app.getToken(t, admin), body)
		app.server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("superadmin creates", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/api/users", app.getToken(t, superadmin), body)
		app.server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code)
		got := decodeBody(t, rec)
		assert.Equal(t, "Usuario creado exitosamente", got["message"])
		assert.Equal(t, "asistente", got["user"].(map[string]interface{})["role"])
	})
}

func Test_requireAction_liveIdentity(t *testing.T) {
	app := setup(t)
	superadmin := app.createUser(t, "root@uni.edu", user.RoleSuperadmin)

	t.Run("deleted account's token stops working", func(t *testing.T) {
		ghost := app.createUser(t, "ghost@uni.edu", user.RoleSuperadmin)
		ghostToken := app.getToken(t, ghost)
		victim := app.createUser(t, "victim@uni.edu", user.RoleProfesor)
		require.NoError(t, app.usrSvc.Delete(context.Background(), superadmin.ID, ghost.ID))

		req, rec := newAuthRequest(http.MethodGet, "/api/users", ghostToken)
		app.server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "invalid token", decodeBody(t, rec)["error"])

		body := marshallObj(t, map[string]string{
			"email": "intruso@uni.edu", "password": "p", "name": "Intruso", "role": "admin",
		})
		req, rec = newAuthRequest(http.MethodPost, "/api/users", ghostToken, body)
		app.server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		_, err := app.usrSvc.GetByEmail(context.Background(), "intruso@uni.edu")
		assert.ErrorIs(t, err, user.ErrNotFound)

		req, rec = newAuthRequest(http.MethodDelete, fmt.Sprintf("/api/users/%d", victim.ID), ghostToken)
		app.server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		_, err = app.usrSvc.GetByID(context.Background(), victim.ID)
		assert.NoError(t, err)

		req, rec = newAuthRequest(http.MethodGet, "/api/students", ghostToken)
		app.server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("demotion takes effect before token expiry", func(t *testing.T) {
		demoted := app.createUser(t, "demoted@uni.edu", user.RoleAdmin)
		oldToken := app.getToken(t, demoted)
		_, err := app.usrSvc.Update(context.Background(), demoted.ID, user.UpdateUser{Role: user.RoleProfesor})
		require.NoError(t, err)

		// the stored role decides, not the role baked into the token
		req, rec := newAuthRequest(http.MethodGet, "/api/users", oldToken)
		app.server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "permission denied", decodeBody(t, rec)["error"])
	})
}

func Test_users_update(t *testing.T) {
	app := setup(t)
	superadmin := app.createUser(t, "root@uni.edu", user.RoleSuperadmin)
	victim := app.createUser(t, "ana@uni.edu", user.RoleProfesor)
	token := app.getToken(t, superadmin)

	body := marshallObj(t, map[string]string{"role": "admin"})
	req, rec := newAuthRequest(http.MethodPut, fmt.Sprintf("/api/users/%d", victim.ID), token, body)
	app.server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody(t, rec)
	usr := got["user"].(map[string]interface{})
	assert.Equal(t, "admin", usr["role"])
	// untouched fields survive
	assert.Equal(t, "ana@uni.edu", usr["email"])

	t.Run("unknown user", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, "/api/users/999", token, body)
		app.server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func Test_users_delete(t *testing.T) {
	app := setup(t)
	superadmin := app.createUser(t, "root@uni.edu", user.RoleSuperadmin)
	victim := app.createUser(t, "ana@uni.edu", user.RoleProfesor)
	token := app.getToken(t, superadmin)

	t.Run("self-delete is blocked", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, fmt.Sprintf("/api/users/%d", superadmin.ID), token)
		app.server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "you cannot delete your own account", decodeBody(t, rec)["error"])
	})

	t.Run("delete", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, fmt.Sprintf("/api/users/%d", victim.ID), token)
		app.server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Usuario eliminado exitosamente", decodeBody(t, rec)["message"])

		_, err := app.usrSvc.GetByID(context.Background(), victim.ID)
		assert.ErrorIs(t, err, user.ErrNotFound)
	})
}
