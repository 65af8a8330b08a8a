package dashboard

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-lmsportal/internal/app/crud"
	"github.com/FACorreiaa/go-lmsportal/internal/app/domain"
	"github.com/FACorreiaa/go-lmsportal/internal/app/domain/statistics"
	"github.com/FACorreiaa/go-lmsportal/internal/app/middleware"
	"github.com/FACorreiaa/go-lmsportal/internal/app/models"
)

const (
	msgMetricsFailed  = "Failed to load dashboard metrics."
	msgLecturerFailed = "Failed to load your courses."
	msgStudentFailed  = "Could not load your courses."
)

// DashboardHandlers serves the three role dashboards.
type DashboardHandlers struct {
	*domain.BaseHandler
	stats    statistics.Service
	enrolled *crud.Snapshots[models.EnrolledCourse]
}

func NewDashboardHandlers(base *domain.BaseHandler, stats statistics.Service, ttl time.Duration) *DashboardHandlers {
	return &DashboardHandlers{
		BaseHandler: base,
		stats:       stats,
		enrolled:    crud.NewSnapshots[models.EnrolledCourse]("enrolled", ttl),
	}
}

// Dashboard sends the user to their role's home.
func (h *DashboardHandlers) Dashboard(c *gin.Context) {
	sess := h.Session(c)
	if sess == nil {
		h.Redirect(c, middleware.LoginPath)
		return
	}
	h.Redirect(c, sess.Role.HomePath())
}

func (h *DashboardHandlers) Admin(c *gin.Context) {
	overview, err := h.stats.AdminOverview(c.Request.Context(), h.API(c))
	if err != nil {
		if h.ExpiredSession(c, err) {
			return
		}
		h.Failure(c, msgMetricsFailed)
	}
	h.RenderPage(c, "Admin dashboard", "Dashboard", AdminView(h.Session(c), overview))
}

func (h *DashboardHandlers) Lecturer(c *gin.Context) {
	courses, err := h.stats.LecturerCourses(c.Request.Context(), h.API(c))
	if err != nil {
		if h.ExpiredSession(c, err) {
			return
		}
		h.Failure(c, msgLecturerFailed)
	}
	h.RenderPage(c, "Lecturer dashboard", "Dashboard", LecturerView(h.Session(c), courses, err != nil))
}

func (h *DashboardHandlers) studentLoader(c *gin.Context) crud.Loader[models.EnrolledCourse] {
	api := h.API(c)
	id := h.Owner(c)
	return func(ctx context.Context) ([]models.EnrolledCourse, error) {
		return h.stats.StudentCourses(ctx, api, id)
	}
}

func (h *DashboardHandlers) Student(c *gin.Context) {
	page := h.enrolled.Fetch(c.Request.Context(), h.Owner(c), h.studentLoader(c)).WithQuery(c.Query("q"), StudentFields)
	if page.Status == crud.Failed {
		if h.ExpiredSession(c, page.Err) {
			return
		}
		h.Logger.Warn("Failed to load student courses", zap.Error(page.Err))
		h.Failure(c, msgStudentFailed)
	}
	h.RenderPage(c, "Student dashboard", "Dashboard", StudentView(h.Session(c), page))
}

// StudentRows filters the student's enrolled courses.
func (h *DashboardHandlers) StudentRows(c *gin.Context) {
	page := h.enrolled.Lookup(c.Request.Context(), h.Owner(c), h.studentLoader(c)).WithQuery(c.Query("q"), StudentFields)
	if page.Status == crud.Failed {
		h.Failure(c, msgStudentFailed)
	}
	h.RenderPartial(c, http.StatusOK, StudentRows(page))
}
