package Controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminLoginWithCorrectSecret(t *testing.T) {
	app := newTestApp(t)
	headers := app.login(t)
	assert.NotEmpty(t, headers["Authorization"])
}

func TestAdminLoginWithWrongSecret(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, "POST", "/admin/login", map[string]string{"secret": "wrong"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(t, "POST", "/admin/login", map[string]string{"secret": ""}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, "GET", "/admin/orders", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(t, "GET", "/admin/orders", nil, map[string]string{"Authorization": "Bearer garbage"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminLogoutRevokesToken(t *testing.T) {
	app := newTestApp(t)
	headers := app.login(t)

	w := app.do(t, "GET", "/admin/orders", nil, headers)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, "POST", "/admin/logout", nil, headers)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, "GET", "/admin/orders", nil, headers)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
