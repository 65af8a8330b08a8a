package session

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore("")
	_, ok := s.Get()
	assert.False(t, ok)

	require.NoError(t, s.Set("abc"))
	token, ok := s.Get()
	assert.True(t, ok)
	assert.Equal(t, "abc", token)

	require.NoError(t, s.Clear())
	_, ok = s.Get()
	assert.False(t, ok)
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	first, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Set("persisted-token"))

	info, err := os.Stat(filepath.Join(dir, tokenFile))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	second, err := NewFileStore(dir)
	require.NoError(t, err)
	token, ok := second.Get()
	assert.True(t, ok)
	assert.Equal(t, "persisted-token", token)

	require.NoError(t, second.Clear())
	_, ok = first.Get()
	assert.False(t, ok)
	assert.NoError(t, second.Clear(), "clearing twice is not an error")
}

func newCookieRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware(CookieOptions{Secret: "0123456789abcdef0123456789abcdef", MaxAge: time.Hour}))
	r.GET("/set", func(c *gin.Context) {
		_ = NewCookieStore(c).Set("cookie-token")
		AddFlash(c, "success", "Saved")
		c.Status(http.StatusNoContent)
	})
	r.GET("/get", func(c *gin.Context) {
		token, ok := NewCookieStore(c).Get()
		if !ok {
			c.String(http.StatusOK, "none")
			return
		}
		c.String(http.StatusOK, token)
	})
	r.GET("/flash", func(c *gin.Context) {
		flashes := TakeFlashes(c)
		if len(flashes) == 0 {
			c.String(http.StatusOK, "none")
			return
		}
		c.String(http.StatusOK, flashes[0].Kind+":"+flashes[0].Message)
	})
	r.GET("/clear", func(c *gin.Context) {
		_ = NewCookieStore(c).Clear()
		c.Status(http.StatusNoContent)
	})
	return r
}

func do(r http.Handler, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCookieStore_SurvivesReload(t *testing.T) {
	r := newCookieRouter()

	w := do(r, "/get", nil)
	assert.Equal(t, "none", w.Body.String())

	w = do(r, "/set", nil)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1, "token and flash share one session cookie")
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	w = do(r, "/get", cookies)
	assert.Equal(t, "cookie-token", w.Body.String())

	w = do(r, "/flash", cookies)
	assert.Equal(t, "success:Saved", w.Body.String())

	w = do(r, "/clear", cookies)
	require.Len(t, w.Result().Cookies(), 1)
	cleared := w.Result().Cookies()
	require.NotEmpty(t, cleared)
	w = do(r, "/get", cleared)
	assert.Equal(t, "none", w.Body.String())
}

func TestCookieStore_LoginThenRedirectSendsOneCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware(CookieOptions{Secret: "0123456789abcdef0123456789abcdef", MaxAge: time.Hour}))
	r.Use(func(c *gin.Context) {
		http.SetCookie(c.Writer, &http.Cookie{Name: "other", Value: "kept"})
		c.Next()
	})
	r.POST("/login", func(c *gin.Context) {
		require.NoError(t, NewCookieStore(c).Set("login-token"))
		AddFlash(c, "success", "Welcome back")
		c.Redirect(http.StatusSeeOther, "/admin")
	})
	r.GET("/admin", func(c *gin.Context) {
		token, _ := NewCookieStore(c).Get()
		flashes := TakeFlashes(c)
		require.Len(t, flashes, 1)
		c.String(http.StatusOK, token+"|"+flashes[0].Message)
	})

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusSeeOther, w.Code)

	var session []*http.Cookie
	names := map[string]int{}
	for _, ck := range w.Result().Cookies() {
		names[ck.Name]++
		if ck.Name == CookieName {
			session = append(session, ck)
		}
	}
	assert.Equal(t, 1, names[CookieName])
	assert.Equal(t, 1, names["other"], "unrelated cookies survive")

	w = do(r, "/admin", session)
	assert.Equal(t, "login-token|Welcome back", w.Body.String())
}
