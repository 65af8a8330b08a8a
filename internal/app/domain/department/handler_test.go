package department

import (
	"net/http"
	"net/url"
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

const departmentsJSON = `{"data":[
	{"id":"d1","name":"Computer Science","code":"CS","faculty":"Engineering","description":"Computing"},
	{"_id":"d2","name":"Mathematics","code":"MA","faculty":"Science"},
	{"id":"d3","name":"Philosophy","code":"PH","faculty":"Arts"}
]}`

type fixture struct {
	r       *gin.Engine
	backend *domaintest.Backend
	cookies []*http.Cookie
}

func setup(t *testing.T) *fixture {
	t.Helper()
	backend := domaintest.NewBackend(t)
	r := domaintest.NewRouter(t, backend)
	h := NewDepartmentHandlers(domain.NewBaseHandler(nil, false), time.Minute)
	admin := r.Group("/admin", middleware.RequireRole(models.RoleAdmin))
	g := admin.Group("/departments")
	g.GET("", h.List)
	g.GET("/rows", h.Rows)
	g.GET("/new", h.NewForm)
	g.POST("", h.Create)
	g.GET("/:id/edit", h.EditForm)
	g.POST("/:id", h.Update)
	g.GET("/:id/delete", h.ConfirmDelete)
	g.POST("/:id/delete", h.Delete)
	admin.GET("/enrollment", h.EnrollmentPage)
	admin.POST("/enrollment", h.Enroll)
	return &fixture{r: r, backend: backend, cookies: domaintest.LoginAs(t, r, "admin1", models.RoleAdmin)}
}

func TestFields(t *testing.T) {
	d := models.Department{Name: "Mathematics", Code: "MA", Faculty: "Science", Description: "numbers"}
	assert.Equal(t, []string{"Mathematics", "MA", "Science"}, Fields(d))
}

func TestList_AndFilterByFaculty(t *testing.T) {
	f := setup(t)
	f.backend.JSON("GET /departments", http.StatusOK, departmentsJSON)

	w := domaintest.Get(f.r, basePath, f.cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, domaintest.Doc(t, w).Find("tr.department-row").Length())

	w = domaintest.Do(f.r, domaintest.Request{Path: basePath + "/rows?q=science", Cookies: f.cookies, HTMX: true})
	rows := domaintest.Rows(t, w).Find("tr.department-row")
	assert.Equal(t, 2, rows.Length(), "name Computer Science and faculty Science")

	w = domaintest.Do(f.r, domaintest.Request{Path: basePath + "/rows?q=numbers", Cookies: f.cookies, HTMX: true})
	assert.Equal(t, 0, domaintest.Rows(t, w).Find("tr.department-row").Length(), "description is not searched")
	assert.Equal(t, 1, f.backend.Count(http.MethodGet, "/departments"))
}

func TestList_Failure(t *testing.T) {
	f := setup(t)
	f.backend.JSON("GET /departments", http.StatusInternalServerError, `{"message":"nope"}`)

	doc := domaintest.Doc(t, domaintest.Get(f.r, basePath, f.cookies))
	assert.Equal(t, 1, doc.Find(".load-error").Length())
	assert.Equal(t, msgLoadFailed, doc.Find("#toasts .toast[data-kind=error]").Text())
}

func TestCreate(t *testing.T) {
	f := setup(t)
	f.backend.JSON("GET /departments", http.StatusOK, departmentsJSON)
	f.backend.JSON("POST /departments", http.StatusCreated, `{"id":"d9"}`)

	w := domaintest.Do(f.r, domaintest.Request{Method: http.MethodPost, Path: basePath, Form: url.Values{"name": {""}, "code": {""}}, Cookies: f.cookies, HTMX: true})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	doc := domaintest.Doc(t, w)
	assert.Equal(t, "Department name is required", doc.Find(".field-error[data-field=name]").Text())
	assert.Equal(t, "Department code is required", doc.Find(".field-error[data-field=code]").Text())
	assert.Empty(t, f.backend.Calls())

	form := url.Values{"name": {" Physics "}, "code": {"PHY"}, "faculty": {"Science"}}
	w = domaintest.Do(f.r, domaintest.Request{Method: http.MethodPost, Path: basePath, Form: form, Cookies: f.cookies, HTMX: true})
	require.Equal(t, http.StatusOK, w.Code)
	calls := f.backend.Calls()
	require.Len(t, calls, 2)
	assert.JSONEq(t, `{"name":"Physics","code":"PHY","faculty":"Science","description":""}`, calls[0].Body)
	assert.Equal(t, "/departments", calls[1].Path)
	assert.Equal(t, msgCreated, domaintest.Doc(t, w).Find("#toasts .toast[data-kind=success]").Text())
}

func TestUpdate_BackendErrorKeepsInput(t *testing.T) {
	f := setup(t)
	f.backend.JSON("GET /departments", http.StatusOK, departmentsJSON)
	f.backend.JSON("PUT /departments/d2", http.StatusBadRequest, `{"detail":"Code already in use"}`)

	w := domaintest.Do(f.r, domaintest.Request{Path: basePath + "/d2/edit", Cookies: f.cookies, HTMX: true})
	v, _ := domaintest.Doc(t, w).Find("input[name=code]").Attr("value")
	assert.Equal(t, "MA", v)

	w = domaintest.Do(f.r, domaintest.Request{Method: http.MethodPost, Path: basePath + "/d2", Form: url.Values{"name": {"Maths"}, "code": {"CS"}}, Cookies: f.cookies, HTMX: true})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	doc := domaintest.Doc(t, w)
	assert.Equal(t, "Code already in use", doc.Find(".form-error").Text())
	v, _ = doc.Find("input[name=name]").Attr("value")
	assert.Equal(t, "Maths", v)
	assert.Equal(t, 1, f.backend.Count(http.MethodGet, "/departments"))
}

func TestDelete(t *testing.T) {
	f := setup(t)
	f.backend.JSON("GET /departments", http.StatusOK, departmentsJSON)
	f.backend.JSON("DELETE /departments/d3", http.StatusNoContent, ``)

	domaintest.Get(f.r, basePath, f.cookies)

	w := domaintest.Do(f.r, domaintest.Request{Method: http.MethodPost, Path: basePath + "/d3/delete", Form: url.Values{"confirm": {"no"}}, Cookies: f.cookies, HTMX: true})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, f.backend.Count(http.MethodDelete, "/departments/d3"))

	w = domaintest.Do(f.r, domaintest.Request{Method: http.MethodPost, Path: basePath + "/d3/delete", Form: url.Values{"confirm": {"yes"}}, Cookies: f.cookies, HTMX: true})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, f.backend.Count(http.MethodDelete, "/departments/d3"))
	assert.Equal(t, 2, f.backend.Count(http.MethodGet, "/departments"))
	assert.Equal(t, msgDeleted, domaintest.Rows(t, w).Find("#toasts .toast[data-kind=success]").Text())
}

func TestEnrollment(t *testing.T) {
	f := setup(t)
	f.backend.JSON("GET /departments", http.StatusOK, departmentsJSON)
	f.backend.JSON("POST /departments/d1/enroll/s42", http.StatusOK, `{"message":"ok"}`)

	w := domaintest.Get(f.r, enrollmentPath, f.cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 4, domaintest.Doc(t, w).Find("select[name=department_id] option").Length())

	w = domaintest.Do(f.r, domaintest.Request{Method: http.MethodPost, Path: enrollmentPath, Form: url.Values{"department_id": {"d1"}, "student_id": {"   "}}, Cookies: f.cookies, HTMX: true})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "Please enter a student ID", domaintest.Doc(t, w).Find(".field-error[data-field=student_id]").Text())
	assert.Equal(t, 0, f.backend.Count(http.MethodPost, "/departments/d1/enroll/s42"))

	w = domaintest.Do(f.r, domaintest.Request{Method: http.MethodPost, Path: enrollmentPath, Form: url.Values{"department_id": {"d1"}, "student_id": {" s42 "}}, Cookies: f.cookies, HTMX: true})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, f.backend.Count(http.MethodPost, "/departments/d1/enroll/s42"), "the id is trimmed")
	doc := domaintest.Doc(t, w)
	assert.Equal(t, msgEnrolled, doc.Find("#toasts .toast[data-kind=success]").Text())
	v, _ := doc.Find("input[name=student_id]").Attr("value")
	assert.Empty(t, v, "the form is cleared")
}

func TestEnrollment_FailureKeepsForm(t *testing.T) {
	f := setup(t)
	f.backend.JSON("GET /departments", http.StatusOK, departmentsJSON)
	f.backend.JSON("POST /departments/d2/enroll/nobody", http.StatusNotFound, `{"detail":"Student not found"}`)

	w := domaintest.Do(f.r, domaintest.Request{Method: http.MethodPost, Path: enrollmentPath, Form: url.Values{"department_id": {"d2"}, "student_id": {"nobody"}}, Cookies: f.cookies, HTMX: true})

	assert.Equal(t, http.StatusNotFound, w.Code)
	doc := domaintest.Doc(t, w)
	assert.Equal(t, msgEnrollFailed, doc.Find("#toasts .toast[data-kind=error]").Text())
	v, _ := doc.Find("input[name=student_id]").Attr("value")
	assert.Equal(t, "nobody", v)
	_, selected := doc.Find("select[name=department_id] option[value=d2]").Attr("selected")
	assert.True(t, selected)
}
