package user

import (
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-lmsportal/internal/app/domain"
	"github.com/FACorreiaa/go-lmsportal/internal/app/domain/domaintest"
	"github.com/FACorreiaa/go-lmsportal/internal/app/middleware"
	"github.com/FACorreiaa/go-lmsportal/internal/app/models"
)

const usersJSON = `[
	{"id":"u1","full_name":"Ada Admin","email":"ada@uni.edu","role":"admin","created_at":"2024-01-02T10:00:00"},
	{"_id":"u2","full_name":"Lee Lecturer","email":"lee@uni.edu","role":"lecturer"},
	{"id":"u3","full_name":"Sam Student","email":"sam@uni.edu","role":"student"}
]`

type fixture struct {
	r       *gin.Engine
	backend *domaintest.Backend
	cookies []*http.Cookie
}

func setup(t *testing.T) *fixture {
	t.Helper()
	backend := domaintest.NewBackend(t)
	r := domaintest.NewRouter(t, backend)
	h := NewUserHandlers(domain.NewBaseHandler(nil, false), time.Minute)
	g := r.Group(basePath, middleware.RequireRole(models.RoleAdmin))
	g.GET("", h.List)
	g.GET("/rows", h.Rows)
	g.GET("/new", h.NewForm)
	g.POST("", h.Create)
	g.GET("/:id/edit", h.EditForm)
	g.POST("/:id", h.Update)
	g.GET("/:id/delete", h.ConfirmDelete)
	g.POST("/:id/delete", h.Delete)
	return &fixture{r: r, backend: backend, cookies: domaintest.LoginAs(t, r, "admin1", models.RoleAdmin)}
}

func TestList_RendersUsers(t *testing.T) {
	f := setup(t)
	f.backend.JSON("GET /users", http.StatusOK, usersJSON)

	w := domaintest.Get(f.r, basePath, f.cookies)
	require.Equal(t, http.StatusOK, w.Code)

	doc := domaintest.Doc(t, w)
	rows := doc.Find("#" + rowsID + " tr.user-row")
	require.Equal(t, 3, rows.Length())
	id, _ := rows.Eq(1).Attr("data-id")
	assert.Equal(t, "u2", id, "_id is accepted")
	assert.Contains(t, rows.Eq(0).Text(), "2024-01-02")
	assert.Equal(t, 0, doc.Find(".load-error").Length())

	calls := f.backend.Calls()
	require.Len(t, calls, 1)
	assert.True(t, strings.HasPrefix(calls[0].Auth, "Bearer "))
}

func TestList_LoadFailureShowsErrorAndToast(t *testing.T) {
	f := setup(t)
	f.backend.JSON("GET /users", http.StatusInternalServerError, `{"detail":"boom"}`)

	w := domaintest.Get(f.r, basePath, f.cookies)
	require.Equal(t, http.StatusOK, w.Code)

	doc := domaintest.Doc(t, w)
	assert.Equal(t, 1, doc.Find(".load-error").Length())
	assert.Equal(t, 0, doc.Find("tr.user-row").Length())
	assert.Equal(t, msgLoadFailed, doc.Find("#toasts .toast[data-kind=error]").Text())
}

func TestRows_FilterUsesLoadedCollection(t *testing.T) {
	f := setup(t)
	f.backend.JSON("GET /users", http.StatusOK, usersJSON)

	domaintest.Get(f.r, basePath, f.cookies)
	require.Equal(t, 1, f.backend.Count(http.MethodGet, "/users"))

	for q, want := range map[string]int{"lec": 1, "UNI.EDU": 3, "": 3, "nobody": 0, "student": 1} {
		w := domaintest.Do(f.r, domaintest.Request{Path: basePath + "/rows?q=" + url.QueryEscape(q), Cookies: f.cookies, HTMX: true})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, want, domaintest.Rows(t, w).Find("tr.user-row").Length(), "q=%q", q)
	}
	assert.Equal(t, 1, f.backend.Count(http.MethodGet, "/users"), "filtering never refetches")
}

func TestRows_EmptyResult(t *testing.T) {
	f := setup(t)
	f.backend.JSON("GET /users", http.StatusOK, usersJSON)

	w := domaintest.Do(f.r, domaintest.Request{Path: basePath + "/rows?q=zzz", Cookies: f.cookies, HTMX: true})
	assert.Equal(t, "No users found.", strings.TrimSpace(domaintest.Rows(t, w).Find("tr.empty-row").Text()))
}

func TestCreate_InvalidInputNeverReachesBackend(t *testing.T) {
	f := setup(t)

	form := url.Values{
		"full_name": {"New Person"},
		"email":     {"new@uni.edu"},
		"password":  {"weakpass"},
		"role":      {"student"},
		"year":      {"0"},
		"semester":  {"1"},
	}
	w := domaintest.Do(f.r, domaintest.Request{Method: http.MethodPost, Path: basePath, Form: form, Cookies: f.cookies, HTMX: true})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Empty(t, f.backend.Calls())
	doc := domaintest.Doc(t, w)
	assert.NotEmpty(t, doc.Find(".field-error[data-field=password]").Text())
	assert.Equal(t, "Year must be a positive number", doc.Find(".field-error[data-field=year]").Text())
	v, _ := doc.Find("input[name=full_name]").Attr("value")
	assert.Equal(t, "New Person", v)
}

func TestCreate_SuccessReloadsAndClosesForm(t *testing.T) {
	f := setup(t)
	f.backend.JSON("GET /users", http.StatusOK, usersJSON)
	f.backend.JSON("POST /users/create", http.StatusCreated, `{"id":"u4"}`)

	domaintest.Get(f.r, basePath, f.cookies)

	form := url.Values{
		"full_name":      {"Lin Lecturer"},
		"email":          {"lin@uni.edu"},
		"password":       {"Secret1"},
		"role":           {"lecturer"},
		"department":     {"d1"},
		"specialization": {"Databases"},
		"year":           {"3"},
	}
	w := domaintest.Do(f.r, domaintest.Request{Method: http.MethodPost, Path: basePath, Form: form, Cookies: f.cookies, HTMX: true})
	require.Equal(t, http.StatusOK, w.Code)

	var body string
	for _, c := range f.backend.Calls() {
		if c.Method == http.MethodPost && c.Path == "/users/create" {
			body = c.Body
		}
	}
	assert.Contains(t, body, `"role":"lecturer"`)
	assert.Contains(t, body, `"specialization":"Databases"`)
	assert.NotContains(t, body, `"year"`, "year is for students only")
	assert.Equal(t, 2, f.backend.Count(http.MethodGet, "/users"), "the collection is reloaded")

	doc := domaintest.Doc(t, w)
	assert.Equal(t, 0, doc.Find(".modal").Length(), "the form is gone")
	assert.Contains(t, w.Body.String(), `hx-swap-oob="innerHTML"`)
	assert.Equal(t, msgCreated, doc.Find("#toasts .toast[data-kind=success]").Text())
}

func TestCreate_BackendRejectionKeepsForm(t *testing.T) {
	f := setup(t)
	f.backend.JSON("POST /users/create", http.StatusConflict, `{"detail":"Email already registered"}`)

	form := url.Values{
		"full_name":        {"Ada Again"},
		"email":            {"ada@uni.edu"},
		"password":         {"Secret1"},
		"confirm_password": {"Secret1"},
		"role":             {"admin"},
	}
	w := domaintest.Do(f.r, domaintest.Request{Method: http.MethodPost, Path: basePath, Form: form, Cookies: f.cookies, HTMX: true})

	assert.Equal(t, http.StatusConflict, w.Code)
	doc := domaintest.Doc(t, w)
	assert.Equal(t, "Email already registered", doc.Find(".form-error").Text())
	v, _ := doc.Find("input[name=email]").Attr("value")
	assert.Equal(t, "ada@uni.edu", v)
	assert.Equal(t, 0, f.backend.Count(http.MethodGet, "/users"), "nothing is reloaded")
}

func TestUpdate_SendsPayload(t *testing.T) {
	f := setup(t)
	f.backend.JSON("GET /users", http.StatusOK, usersJSON)
	f.backend.JSON("PUT /users/u3", http.StatusOK, `{}`)

	w := domaintest.Do(f.r, domaintest.Request{Path: basePath + "/u3/edit", Cookies: f.cookies, HTMX: true})
	require.Equal(t, http.StatusOK, w.Code)
	v, _ := domaintest.Doc(t, w).Find("input[name=full_name]").Attr("value")
	assert.Equal(t, "Sam Student", v)

	form := url.Values{"full_name": {"Sam Scholar"}, "email": {"sam@uni.edu"}, "role": {"student"}}
	w = domaintest.Do(f.r, domaintest.Request{Method: http.MethodPost, Path: basePath + "/u3", Form: form, Cookies: f.cookies, HTMX: true})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, f.backend.Count(http.MethodPut, "/users/u3"))
	assert.Equal(t, msgUpdated, domaintest.Doc(t, w).Find("#toasts .toast[data-kind=success]").Text())
}

func TestEditForm_UnknownUser(t *testing.T) {
	f := setup(t)
	f.backend.JSON("GET /users", http.StatusOK, usersJSON)

	w := domaintest.Do(f.r, domaintest.Request{Path: basePath + "/missing/edit", Cookies: f.cookies, HTMX: true})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, msgNotFound, domaintest.Doc(t, w).Find("#toasts .toast").Text())
}

func TestDelete_RequiresConfirmation(t *testing.T) {
	f := setup(t)

	w := domaintest.Do(f.r, domaintest.Request{Method: http.MethodPost, Path: basePath + "/u2/delete", Form: url.Values{}, Cookies: f.cookies, HTMX: true})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, f.backend.Calls(), "no network call without confirmation")
}

func TestDelete_ConfirmDialog(t *testing.T) {
	f := setup(t)
	f.backend.JSON("GET /users", http.StatusOK, usersJSON)

	w := domaintest.Do(f.r, domaintest.Request{Path: basePath + "/u2/delete", Cookies: f.cookies, HTMX: true})
	require.Equal(t, http.StatusOK, w.Code)
	doc := domaintest.Doc(t, w)
	action, _ := doc.Find("form.confirm-form").Attr("hx-post")
	assert.Equal(t, basePath+"/u2/delete", action)
	assert.Contains(t, doc.Find(".modal p").Text(), "Lee Lecturer")
	assert.Equal(t, 0, f.backend.Count(http.MethodDelete, "/users/u2"))
}

func TestDelete_ConfirmedReloads(t *testing.T) {
	f := setup(t)
	var deleted atomic.Bool
	f.backend.Handle("GET /users", func(w http.ResponseWriter, r *http.Request) {
		body := usersJSON
		if deleted.Load() {
			body = `[{"id":"u1","full_name":"Ada Admin","email":"ada@uni.edu","role":"admin"}]`
		}
		_, _ = w.Write([]byte(body))
	})
	f.backend.Handle("DELETE /users/u2", func(w http.ResponseWriter, r *http.Request) {
		deleted.Store(true)
		w.WriteHeader(http.StatusNoContent)
	})

	domaintest.Get(f.r, basePath, f.cookies)
	w := domaintest.Do(f.r, domaintest.Request{Method: http.MethodPost, Path: basePath + "/u2/delete", Form: url.Values{"confirm": {"yes"}}, Cookies: f.cookies, HTMX: true})
	require.Equal(t, http.StatusOK, w.Code)

	doc := domaintest.Rows(t, w)
	assert.Equal(t, 1, doc.Find("tr.user-row").Length())
	assert.Equal(t, msgDeleted, doc.Find("#toasts .toast[data-kind=success]").Text())
	assert.Equal(t, 2, f.backend.Count(http.MethodGet, "/users"))
}

func TestDelete_FailureLeavesRowsUntouched(t *testing.T) {
	f := setup(t)
	f.backend.JSON("GET /users", http.StatusOK, usersJSON)
	f.backend.JSON("DELETE /users/u2", http.StatusInternalServerError, `{"detail":"db down"}`)

	domaintest.Get(f.r, basePath, f.cookies)
	w := domaintest.Do(f.r, domaintest.Request{Method: http.MethodPost, Path: basePath + "/u2/delete", Form: url.Values{"confirm": {"yes"}}, Cookies: f.cookies, HTMX: true})
	require.Equal(t, http.StatusOK, w.Code)

	doc := domaintest.Rows(t, w)
	assert.Equal(t, 3, doc.Find("tr.user-row").Length(), "prior rows are shown again")
	assert.Equal(t, msgDeleteFailed, doc.Find("#toasts .toast[data-kind=error]").Text())
	assert.Equal(t, 1, f.backend.Count(http.MethodGet, "/users"), "no reload after a failed write")
}

func TestUsers_NonAdminIsSentHome(t *testing.T) {
	f := setup(t)
	student := domaintest.LoginAs(t, f.r, "s1", models.RoleStudent)

	w := domaintest.Get(f.r, basePath, student)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Empty(t, f.backend.Calls())
}
