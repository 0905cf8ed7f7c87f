package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T, ok bool) (*Handler, *Gate) {
	t.Helper()
	v := new(mockVerifier)
	v.On("VerifyAdminCredentials", mock.Anything, mock.Anything, mock.Anything).Return(ok, nil)
	gate := NewGate(v, NewMemorySessions(), nil, nil)
	return NewHandler(gate, true), gate
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookie {
			return c
		}
	}
	return nil
}

func TestHandler_LoginSetsBrowserSessionCookie(t *testing.T) {
	h, gate := newTestHandler(t, true)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"admin@expo.edu","password":"s3cret"}`))
	h.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Zero(t, cookie.MaxAge, "no max-age: the cookie must not outlive the browsing session")
	assert.True(t, cookie.Expires.IsZero())
	assert.Equal(t, LoggedIn, gate.State(req.Context(), cookie.Value))
}

func TestHandler_LoginDenied(t *testing.T) {
	h, _ := newTestHandler(t, false)

	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"admin@expo.edu","password":"bad"}`)))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"access denied"}`, rec.Body.String())
	assert.Nil(t, sessionCookie(rec))
}

func TestHandler_LoginBadBody(t *testing.T) {
	h, _ := newTestHandler(t, true)

	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`not json`)))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"","password":""}`)))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_SessionAndLogout(t *testing.T) {
	h, _ := newTestHandler(t, true)

	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"admin@expo.edu","password":"s3cret"}`)))
	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
	req.AddCookie(cookie)
	h.Session(rec, req)
	assert.JSONEq(t, `{"authenticated":true}`, rec.Body.String())

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(cookie)
	h.Logout(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	cleared := sessionCookie(rec)
	require.NotNil(t, cleared)
	assert.Equal(t, -1, cleared.MaxAge)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
	req.AddCookie(cookie)
	h.Session(rec, req)
	assert.JSONEq(t, `{"authenticated":false}`, rec.Body.String())
}
