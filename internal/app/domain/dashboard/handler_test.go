package dashboard

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-lmsportal/internal/app/domain"
	"github.com/FACorreiaa/go-lmsportal/internal/app/domain/domaintest"
	"github.com/FACorreiaa/go-lmsportal/internal/app/domain/statistics"
	"github.com/FACorreiaa/go-lmsportal/internal/app/middleware"
	"github.com/FACorreiaa/go-lmsportal/internal/app/models"
)

func setup(t *testing.T) (*gin.Engine, *domaintest.Backend) {
	t.Helper()
	backend := domaintest.NewBackend(t)
	r := domaintest.NewRouter(t, backend)
	h := NewDashboardHandlers(domain.NewBaseHandler(nil, false), statistics.NewService(nil), time.Minute)
	r.GET("/dashboard", middleware.RequireSession(middleware.Policy{}), h.Dashboard)
	r.GET("/admin", middleware.RequireRole(models.RoleAdmin), h.Admin)
	r.GET("/lecturer", middleware.RequireRole(models.RoleLecturer), h.Lecturer)
	r.GET("/student", middleware.RequireRole(models.RoleStudent), h.Student)
	r.GET("/student/rows", middleware.RequireRole(models.RoleStudent), h.StudentRows)
	return r, backend
}

func TestDashboard_DispatchesByRole(t *testing.T) {
	r, _ := setup(t)

	for role, want := range map[models.Role]string{
		models.RoleAdmin:    "/admin",
		models.RoleLecturer: "/lecturer",
		models.RoleStudent:  "/student",
	} {
		w := domaintest.Get(r, "/dashboard", domaintest.LoginAs(t, r, "x"+string(role), role))
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, want, w.Header().Get("Location"), string(role))
	}

	w := domaintest.Get(r, "/dashboard", nil)
	assert.Equal(t, middleware.LoginPath, w.Header().Get("Location"))
}

func TestAdmin_CountsAndRecentUsers(t *testing.T) {
	r, backend := setup(t)
	backend.JSON("GET /users", http.StatusOK, `[
		{"id":"a1","full_name":"Ada","email":"ada@uni.edu","role":"admin","created_at":"2024-05-01T08:00:00Z"},
		{"id":"l1","full_name":"Lee","email":"lee@uni.edu","role":"lecturer","created_at":"2024-05-03"},
		{"id":"s1","full_name":"Sam","email":"sam@uni.edu","role":"student"},
		{"id":"s2","full_name":"Sue","email":"sue@uni.edu","role":"student","created_at":"2024-05-02T08:00:00"}
	]`)
	backend.JSON("GET /courses", http.StatusOK, `{"data":[{"id":"c1"},{"id":"c2"},{"id":"c3"}]}`)
	backend.JSON("GET /departments", http.StatusOK, `[{"id":"d1"}]`)

	w := domaintest.Get(r, "/admin", domaintest.LoginAs(t, r, "ada", models.RoleAdmin))
	require.Equal(t, http.StatusOK, w.Code)

	doc := domaintest.Doc(t, w)
	stat := func(label string) string {
		return doc.Find(".stat-card[data-label=" + label + "] .stat-value").Text()
	}
	assert.Equal(t, "2", stat("Students"))
	assert.Equal(t, "1", stat("Lecturers"))
	assert.Equal(t, "3", stat("Courses"))
	assert.Equal(t, "1", stat("Departments"))

	recent := doc.Find("tr.recent-user")
	require.Equal(t, 4, recent.Length())
	first, _ := recent.First().Attr("data-id")
	last, _ := recent.Last().Attr("data-id")
	assert.Equal(t, "l1", first)
	assert.Equal(t, "s1", last, "undated users come last")
	assert.Contains(t, doc.Text(), "Welcome back, Ada!")
}

func TestAdmin_FailureShowsToast(t *testing.T) {
	r, backend := setup(t)
	backend.JSON("GET /users", http.StatusOK, `[]`)
	backend.JSON("GET /courses", http.StatusInternalServerError, `{"detail":"boom"}`)
	backend.JSON("GET /departments", http.StatusOK, `[]`)

	w := domaintest.Get(r, "/admin", domaintest.LoginAs(t, r, "ada", models.RoleAdmin))
	require.Equal(t, http.StatusOK, w.Code)

	doc := domaintest.Doc(t, w)
	assert.Equal(t, 0, doc.Find(".stat-card").Length())
	assert.Equal(t, 1, doc.Find(".load-error").Length())
	assert.Equal(t, msgMetricsFailed, doc.Find("#toasts .toast[data-kind=error]").Text())
}

func TestLecturer_ListsOwnCourses(t *testing.T) {
	r, backend := setup(t)
	backend.JSON("GET /courses/me", http.StatusOK, `[{"id":"c1","course_name":"Databases","course_code":"CS201","credits":6,"semester":3}]`)

	w := domaintest.Get(r, "/lecturer", domaintest.LoginAs(t, r, "lee", models.RoleLecturer))
	require.Equal(t, http.StatusOK, w.Code)

	rows := domaintest.Doc(t, w).Find("tr.lecturer-course")
	require.Equal(t, 1, rows.Length())
	assert.Contains(t, rows.Text(), "Databases")
	assert.Equal(t, 1, backend.Count(http.MethodGet, "/courses/me"))
}

func TestStudent_ListsAndFiltersEnrolledCourses(t *testing.T) {
	r, backend := setup(t)
	backend.JSON("GET /courses/student/sam/courses", http.StatusOK, `[
		{"course_id":"c1","course_code":"CS201","course_name":"Databases","credits":6,"semester":"Fall"},
		{"course_id":"c2","course_code":"MA101","course_name":"Calculus","credits":5,"semester":2,"lecturer_name":"Dr. Lee","last_accessed":"2024-05-01"}
	]`)
	cookies := domaintest.LoginAs(t, r, "sam", models.RoleStudent)

	w := domaintest.Get(r, "/student", cookies)
	require.Equal(t, http.StatusOK, w.Code)
	rows := domaintest.Doc(t, w).Find("tr.enrolled-course")
	require.Equal(t, 2, rows.Length())
	assert.Contains(t, rows.First().Text(), "Assigned Lecturer")
	assert.Contains(t, rows.First().Text(), "Never")

	w = domaintest.Do(r, domaintest.Request{Path: "/student/rows?q=ma1", Cookies: cookies, HTMX: true})
	filtered := domaintest.Rows(t, w).Find("tr.enrolled-course")
	require.Equal(t, 1, filtered.Length())
	id, _ := filtered.Attr("data-id")
	assert.Equal(t, "c2", id)
	assert.Equal(t, 1, backend.Count(http.MethodGet, "/courses/student/sam/courses"))
}

func TestStudent_LecturerIsSentHome(t *testing.T) {
	r, backend := setup(t)

	w := domaintest.Get(r, "/student", domaintest.LoginAs(t, r, "lee", models.RoleLecturer))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Empty(t, backend.Calls())
}
