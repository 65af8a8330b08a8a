// Package domaintest runs portal handlers against a fake LMS backend.
package domaintest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"

	"github.com/FACorreiaa/go-lmsportal/internal/app/middleware"
	"github.com/FACorreiaa/go-lmsportal/internal/app/models"
	"github.com/FACorreiaa/go-lmsportal/internal/app/session"
	"github.com/FACorreiaa/go-lmsportal/internal/app/session/sessiontest"
	"github.com/FACorreiaa/go-lmsportal/internal/pkg/apiclient"
)

const secret = "domaintest-secret-0123456789abcdef"

// Call is one request the backend received.
type Call struct {
	Method string
	Path   string
	Auth   string
	Body   string
}

// Backend is a fake LMS REST API recording every call.
type Backend struct {
	*httptest.Server
	mux   *http.ServeMux
	mu    sync.Mutex
	calls []Call
}

func NewBackend(t testing.TB) *Backend {
	t.Helper()
	b := &Backend{mux: http.NewServeMux()}
	b.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		b.mu.Lock()
		b.calls = append(b.calls, Call{Method: r.Method, Path: r.URL.Path, Auth: r.Header.Get("Authorization"), Body: string(body)})
		b.mu.Unlock()
		r.Body = io.NopCloser(strings.NewReader(string(body)))
		b.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(b.Close)
	return b
}

// JSON answers pattern (e.g. "GET /users") with a fixed status and body.
func (b *Backend) JSON(pattern string, status int, body string) {
	b.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	})
}

func (b *Backend) Handle(pattern string, h http.HandlerFunc) {
	b.mux.HandleFunc(pattern, h)
}

func (b *Backend) Calls() []Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Call(nil), b.calls...)
}

// Count returns how many calls matched method and path.
func (b *Backend) Count(method, path string) int {
	n := 0
	for _, c := range b.Calls() {
		if c.Method == method && c.Path == path {
			n++
		}
	}
	return n
}

func (b *Backend) Reset() {
	b.mu.Lock()
	b.calls = nil
	b.mu.Unlock()
}

// Client is an API client pointed at the fake backend.
func (b *Backend) Client() *apiclient.Client {
	return apiclient.New(b.URL, nil, apiclient.WithHTTPClient(b.Server.Client()))
}

// NewRouter builds a gin engine with the portal's session plumbing in front
// of the fake backend, plus a /__seed route for planting a token.
func NewRouter(t testing.TB, b *Backend) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(session.Middleware(session.CookieOptions{Secret: secret, MaxAge: time.Hour}))
	r.GET("/__seed", func(c *gin.Context) {
		_ = session.NewCookieStore(c).Set(c.Query("token"))
		c.Status(http.StatusNoContent)
	})
	r.Use(middleware.SessionMiddleware(b.Client(), nil))
	return r
}

// LoginAs plants a token for the given identity and returns its cookies.
func LoginAs(t testing.TB, r http.Handler, id string, role models.Role) []*http.Cookie {
	t.Helper()
	token := sessiontest.Token(t, id, id+"@uni.edu", strings.ToUpper(id[:1])+id[1:], role)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/__seed?token="+url.QueryEscape(token), nil))
	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("seeding the session produced no cookie")
	}
	return cookies
}

// Request describes one browser request.
type Request struct {
	Method  string
	Path    string
	Form    url.Values
	Cookies []*http.Cookie
	HTMX    bool
}

func Do(r http.Handler, req Request) *httptest.ResponseRecorder {
	if req.Method == "" {
		req.Method = http.MethodGet
	}
	var body io.Reader
	if req.Form != nil {
		body = strings.NewReader(req.Form.Encode())
	}
	hr := httptest.NewRequest(req.Method, req.Path, body)
	if req.Form != nil {
		hr.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, c := range req.Cookies {
		hr.AddCookie(c)
	}
	if req.HTMX {
		hr.Header.Set("HX-Request", "true")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, hr)
	return w
}

func Get(r http.Handler, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	return Do(r, Request{Path: path, Cookies: cookies})
}

func Post(r http.Handler, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	if form == nil {
		form = url.Values{}
	}
	return Do(r, Request{Method: http.MethodPost, Path: path, Form: form, Cookies: cookies})
}

// Doc parses a recorded HTML response.
func Doc(t testing.TB, w *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(w.Body.String()))
	if err != nil {
		t.Fatalf("failed to parse response HTML: %v", err)
	}
	return doc
}

// Merge returns later cookies over earlier ones by name.
func Merge(base []*http.Cookie, updates ...[]*http.Cookie) []*http.Cookie {
	byName := map[string]*http.Cookie{}
	var order []string
	for _, set := range append([][]*http.Cookie{base}, updates...) {
		for _, c := range set {
			if _, ok := byName[c.Name]; !ok {
				order = append(order, c.Name)
			}
			byName[c.Name] = c
		}
	}
	out := make([]*http.Cookie, 0, len(order))
	for _, name := range order {
		out = append(out, byName[name])
	}
	return out
}

// Rows parses a partial whose body is bare table rows. Rows outside a
// table would be dropped by the HTML parser, so they are wrapped first.
func Rows(t testing.TB, w *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<table><tbody>" + w.Body.String() + "</tbody></table>"))
	if err != nil {
		t.Fatalf("failed to parse response HTML: %v", err)
	}
	return doc
}
