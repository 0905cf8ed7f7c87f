package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caffeinepub/national-level-project-expo-2026-sub000/internal/auth"
	"github.com/caffeinepub/national-level-project-expo-2026-sub000/internal/lookup"
	"github.com/caffeinepub/national-level-project-expo-2026-sub000/internal/metrics"
	"github.com/caffeinepub/national-level-project-expo-2026-sub000/internal/registration"
	"github.com/caffeinepub/national-level-project-expo-2026-sub000/internal/store"
)

const (
	adminEmail    = "admin@expo.edu"
	adminPassword = "expo-2026"
	ashaJSON      = `{"fullName":"Asha Rao","email":"asha@x.edu","phoneNumber":"+91 90000 00001","collegeName":"ABC College","department":"CSE","projectTitle":"Smart Irrigation","category":"Agriculture Tech","abstract":"..."}`
)

func newTestServer(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()
	ctx := context.Background()
	st, err := store.NewSQLiteStore(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, st.SeedAdmin(ctx, adminEmail, adminPassword))

	m := metrics.New()
	svc := registration.NewService(st, registration.WithMetrics(m))
	gate := auth.NewGate(st, auth.NewMemorySessions(), m, nil)

	srv := httptest.NewServer(NewRouter(Deps{
		Gate:          gate,
		Auth:          auth.NewHandler(gate, false),
		Registrations: registration.NewHandler(svc, time.UTC, nil),
		Lookup:        lookup.NewHandler(svc, m, nil),
		Metrics:       m,
	}))
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return srv, &http.Client{Jar: jar}
}

func do(t *testing.T, c *http.Client, method, url, body string) (int, string) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, r)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(data)
}

func TestRouter_SubmitLookupDeleteScenario(t *testing.T) {
	srv, c := newTestServer(t)

	code, body := do(t, c, http.MethodPost, srv.URL+"/api/registrations", ashaJSON)
	require.Equal(t, http.StatusCreated, code, body)
	assert.JSONEq(t, `{"id":1}`, body)

	code, body = do(t, c, http.MethodGet, srv.URL+"/api/registrations/lookup?email=asha@x.edu", "")
	require.Equal(t, http.StatusOK, code)
	var found struct {
		Found        bool `json:"found"`
		Registration struct {
			ID           int64  `json:"id"`
			ProjectTitle string `json:"projectTitle"`
		} `json:"registration"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &found))
	assert.True(t, found.Found)
	assert.EqualValues(t, 1, found.Registration.ID)
	assert.Equal(t, "Smart Irrigation", found.Registration.ProjectTitle)

	code, _ = do(t, c, http.MethodPost, srv.URL+"/api/auth/login", `{"email":"`+adminEmail+`","password":"`+adminPassword+`"}`)
	require.Equal(t, http.StatusOK, code)

	code, body = do(t, c, http.MethodGet, srv.URL+"/api/auth/session", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"authenticated":true}`, body)

	code, body = do(t, c, http.MethodGet, srv.URL+"/api/admin/registrations/count", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"count":1}`, body)

	code, _ = do(t, c, http.MethodDelete, srv.URL+"/api/admin/registrations/1", "")
	require.Equal(t, http.StatusOK, code)

	code, body = do(t, c, http.MethodGet, srv.URL+"/api/registrations/lookup?email=asha@x.edu", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"found":false}`, body)

	code, _ = do(t, c, http.MethodDelete, srv.URL+"/api/admin/registrations/1", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestRouter_AdminRoutesNeedSession(t *testing.T) {
	srv, c := newTestServer(t)

	for _, path := range []string{
		"/api/admin/registrations",
		"/api/admin/registrations/count",
		"/api/admin/registrations/categories",
		"/api/admin/registrations/export.csv",
	} {
		code, body := do(t, c, http.MethodGet, srv.URL+path, "")
		assert.Equal(t, http.StatusUnauthorized, code, path)
		assert.JSONEq(t, `{"error":"not authenticated"}`, body, path)
	}

	code, _ := do(t, c, http.MethodPost, srv.URL+"/api/auth/login", `{"email":"`+adminEmail+`","password":"wrong"}`)
	require.Equal(t, http.StatusUnauthorized, code)
	code, _ = do(t, c, http.MethodGet, srv.URL+"/api/admin/registrations", "")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestRouter_LogoutEndsAdminAccess(t *testing.T) {
	srv, c := newTestServer(t)

	code, _ := do(t, c, http.MethodPost, srv.URL+"/api/auth/login", `{"email":"`+adminEmail+`","password":"`+adminPassword+`"}`)
	require.Equal(t, http.StatusOK, code)
	code, _ = do(t, c, http.MethodGet, srv.URL+"/api/admin/registrations", "")
	require.Equal(t, http.StatusOK, code)

	code, _ = do(t, c, http.MethodPost, srv.URL+"/api/auth/logout", "")
	require.Equal(t, http.StatusOK, code)
	code, _ = do(t, c, http.MethodGet, srv.URL+"/api/admin/registrations", "")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestRouter_LookupRejectsMalformedEmail(t *testing.T) {
	srv, c := newTestServer(t)

	code, body := do(t, c, http.MethodGet, srv.URL+"/api/registrations/lookup?email=foo@bar", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.JSONEq(t, `{"error":"enter a valid email address"}`, body)
}

func TestRouter_SubmitMissingFields(t *testing.T) {
	srv, c := newTestServer(t)

	code, body := do(t, c, http.MethodPost, srv.URL+"/api/registrations", `{"fullName":"Asha Rao"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, body, `"validation failed"`)
}

func TestRouter_ExportCSV(t *testing.T) {
	srv, c := newTestServer(t)

	code, _ := do(t, c, http.MethodPost, srv.URL+"/api/registrations", ashaJSON)
	require.Equal(t, http.StatusCreated, code)
	code, _ = do(t, c, http.MethodPost, srv.URL+"/api/auth/login", `{"email":"`+adminEmail+`","password":"`+adminPassword+`"}`)
	require.Equal(t, http.StatusOK, code)

	resp, err := c.Get(srv.URL + "/api/admin/registrations/export.csv")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment; filename=registrations_")

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "ID,Full Name,Email,Phone Number,College Name,Department,Project Title,Category,Abstract,Registered At", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "1,Asha Rao,asha@x.edu,+91 90000 00001,ABC College,CSE,Smart Irrigation,Agriculture Tech,...,"))
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	srv, c := newTestServer(t)

	code, body := do(t, c, http.MethodGet, srv.URL+"/health", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"status":"ok"}`, body)

	do(t, c, http.MethodPost, srv.URL+"/api/registrations", ashaJSON)
	code, body = do(t, c, http.MethodGet, srv.URL+"/metrics", "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `expo_registration_submissions_total{outcome="ok"} 1`)
}
