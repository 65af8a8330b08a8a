package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-lmsportal/internal/app/models"
	"github.com/FACorreiaa/go-lmsportal/internal/app/session/sessiontest"
)

type backend struct {
	*httptest.Server
	listCalls atomic.Int32
}

func newBackend(t *testing.T, loginToken string) *backend {
	t.Helper()
	b := &backend{}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Invalid credentials"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": loginToken,
			"user_id":      "u1",
			"email":        body.Email,
			"full_name":    "Ada Admin",
			"role":         "admin",
		})
	})
	mux.HandleFunc("GET /users", func(w http.ResponseWriter, r *http.Request) {
		b.listCalls.Add(1)
		_, _ = w.Write([]byte(`{"data":[
			{"id":"u1","full_name":"Ada Lovelace","email":"ada@lms.test","role":"admin"},
			{"id":"u2","full_name":"Bob Student","email":"bob@lms.test","role":"student"}
		]}`))
	})
	mux.HandleFunc("GET /courses", func(w http.ResponseWriter, r *http.Request) {
		b.listCalls.Add(1)
		_, _ = w.Write([]byte(`[{"id":"c1","course_name":"Algorithms","course_code":"CS201","credits":6,"semester":3,"department":"d1"}]`))
	})
	mux.HandleFunc("GET /departments", func(w http.ResponseWriter, r *http.Request) {
		b.listCalls.Add(1)
		_, _ = w.Write([]byte(`[{"id":"d1","name":"Computer Science","code":"CS","faculty":"Engineering"}]`))
	})
	b.Server = httptest.NewServer(mux)
	t.Cleanup(b.Close)
	return b
}

func run(t *testing.T, apiURL, dir string, args ...string) (string, error) {
	t.Helper()
	pterm.DisableStyling()

	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--api-url", apiURL, "--config-dir", dir}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeToken(t *testing.T, dir, token string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "token"), []byte(token), 0o600))
}

func TestLogin_StoresTokenAndStatusReadsIt(t *testing.T) {
	token := sessiontest.Token(t, "u1", "ada@lms.test", "Ada Admin", models.RoleAdmin)
	b := newBackend(t, token)
	dir := t.TempDir()

	out, err := run(t, b.URL, dir, "login", "--email", "ada@lms.test", "--password", "secret")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as Ada Admin (admin)")

	stored, err := os.ReadFile(filepath.Join(dir, "token"))
	require.NoError(t, err)
	assert.Equal(t, token, string(stored))

	out, err = run(t, b.URL, dir, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "ada@lms.test")
	assert.Contains(t, out, "admin")
}

func TestLogin_RejectedKeepsStoreEmpty(t *testing.T) {
	b := newBackend(t, "unused")
	dir := t.TempDir()

	_, err := run(t, b.URL, dir, "login", "--email", "ada@lms.test", "--password", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid email or password")

	_, statErr := os.Stat(filepath.Join(dir, "token"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestLogout_RemovesToken(t *testing.T) {
	dir := t.TempDir()
	writeToken(t, dir, sessiontest.Token(t, "u1", "ada@lms.test", "Ada", models.RoleAdmin))

	_, err := run(t, "http://127.0.0.1:1", dir, "logout")
	require.NoError(t, err)

	_, err = run(t, "http://127.0.0.1:1", dir, "status")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
}

func TestUsersList_RequiresLogin(t *testing.T) {
	b := newBackend(t, "unused")

	_, err := run(t, b.URL, t.TempDir(), "users", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
	assert.Zero(t, b.listCalls.Load())
}

func TestUsersList_NonAdminNeverReachesBackend(t *testing.T) {
	b := newBackend(t, "unused")
	dir := t.TempDir()
	writeToken(t, dir, sessiontest.Token(t, "s1", "sam@lms.test", "Sam", models.RoleStudent))

	_, err := run(t, b.URL, dir, "users", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires the admin role")
	assert.Zero(t, b.listCalls.Load())
}

func TestUsersList_Filter(t *testing.T) {
	b := newBackend(t, "unused")
	dir := t.TempDir()
	writeToken(t, dir, sessiontest.Token(t, "u1", "ada@lms.test", "Ada", models.RoleAdmin))

	out, err := run(t, b.URL, dir, "users", "list", "--filter", "BOB")
	require.NoError(t, err)
	assert.Contains(t, out, "Bob Student")
	assert.NotContains(t, out, "Ada Lovelace")
}

func TestCoursesList_JoinsDepartmentNames(t *testing.T) {
	b := newBackend(t, "unused")
	dir := t.TempDir()
	writeToken(t, dir, sessiontest.Token(t, "u1", "ada@lms.test", "Ada", models.RoleAdmin))

	out, err := run(t, b.URL, dir, "courses", "list", "--filter", "computer")
	require.NoError(t, err)
	assert.Contains(t, out, "CS201")
	assert.Contains(t, out, "Computer Science")
	assert.Equal(t, int32(2), b.listCalls.Load())
}

func TestDepartmentsList_NoMatches(t *testing.T) {
	b := newBackend(t, "unused")
	dir := t.TempDir()
	writeToken(t, dir, sessiontest.Token(t, "u1", "ada@lms.test", "Ada", models.RoleAdmin))

	out, err := run(t, b.URL, dir, "departments", "list", "--filter", "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No departments found")
}
