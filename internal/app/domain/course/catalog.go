package course

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-lmsportal/internal/app/crud"
	"github.com/FACorreiaa/go-lmsportal/internal/app/models"
)

const (
	msgCatalogFailed = "Failed to load courses."
	msgEnrolled      = "Enrolled successfully"
	msgEnrollFailed  = "Enrollment failed"
)

func (h *CourseHandlers) catalogLoader(c *gin.Context) crud.Loader[models.Course] {
	api := h.API(c)
	return func(ctx context.Context) ([]models.Course, error) {
		return api.ListCourses(ctx)
	}
}

// Catalog lists every course for a student, marking the enrolled ones.
func (h *CourseHandlers) Catalog(c *gin.Context) {
	page := h.catalog.Fetch(c.Request.Context(), h.Owner(c), h.catalogLoader(c)).WithQuery(c.Query("q"), CatalogFields)
	if page.Status == crud.Failed {
		if h.ExpiredSession(c, page.Err) {
			return
		}
		h.Logger.Warn("Failed to load catalog", zap.Error(page.Err))
		h.Failure(c, msgCatalogFailed)
	}
	h.RenderPage(c, "Course catalog", "Catalog", CatalogView(page))
}

func (h *CourseHandlers) CatalogRows(c *gin.Context) {
	page := h.catalog.Lookup(c.Request.Context(), h.Owner(c), h.catalogLoader(c)).WithQuery(c.Query("q"), CatalogFields)
	if page.Status == crud.Failed {
		h.Failure(c, msgCatalogFailed)
	}
	h.RenderPartial(c, http.StatusOK, CatalogRows(page))
}

// Enroll signs the student up for a course and reloads the catalog.
func (h *CourseHandlers) Enroll(c *gin.Context) {
	owner := h.Owner(c)
	id := c.Param("id")
	api := h.API(c)
	page, err := h.catalog.Mutate(c.Request.Context(), owner, func(ctx context.Context) error {
		return api.Enroll(ctx, id)
	}, h.catalogLoader(c))
	if err != nil {
		if h.ExpiredSession(c, err) {
			return
		}
		h.BackendError(c, "enroll", err, msgEnrollFailed)
		h.Failure(c, msgEnrollFailed)
		h.RenderPartial(c, http.StatusOK, CatalogRows(h.catalog.Current(owner)))
		return
	}
	h.Logger.Info("Student enrolled in course", zap.String("courseID", id), zap.String("studentID", owner))
	h.Success(c, msgEnrolled)
	if page.Status == crud.Failed {
		h.Failure(c, msgCatalogFailed)
	}
	h.RenderPartial(c, http.StatusOK, CatalogRows(page))
}
