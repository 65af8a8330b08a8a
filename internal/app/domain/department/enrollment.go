package department

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-lmsportal/internal/app/crud"
	"github.com/FACorreiaa/go-lmsportal/internal/app/domain"
	"github.com/FACorreiaa/go-lmsportal/internal/app/forms"
	"github.com/FACorreiaa/go-lmsportal/internal/app/models"
)

// EnrollmentPage shows the department select and student id form.
func (h *DepartmentHandlers) EnrollmentPage(c *gin.Context) {
	page := h.departments.Lookup(c.Request.Context(), h.Owner(c), h.loader(c))
	formErr := ""
	if page.Status == crud.Failed {
		if h.ExpiredSession(c, page.Err) {
			return
		}
		h.Failure(c, msgLoadFailed)
		formErr = msgLoadFailed
	}
	h.RenderPage(c, "Enrollment", "Enrollment", EnrollmentView(page.Items, forms.Enrollment{}, nil, formErr))
}

// Enroll places a student in a department. The form is cleared on success
// and kept on failure.
func (h *DepartmentHandlers) Enroll(c *gin.Context) {
	depts := h.departments.Current(h.Owner(c)).Items
	var f forms.Enrollment
	if err := c.ShouldBind(&f); err != nil {
		h.RenderPageStatus(c, http.StatusBadRequest, "Enrollment", "Enrollment", EnrollmentView(depts, f, nil, "Invalid form submission"))
		return
	}
	f = f.Normalize()
	if errs := forms.FieldErrors(f.Validate()); len(errs) > 0 {
		h.RenderPageStatus(c, http.StatusUnprocessableEntity, "Enrollment", "Enrollment", EnrollmentView(depts, f, errs, ""))
		return
	}

	if err := h.API(c).EnrollStudent(c.Request.Context(), f.DepartmentID, f.StudentID); err != nil {
		if h.ExpiredSession(c, err) {
			return
		}
		h.BackendError(c, "enroll student", err, msgEnrollFailed)
		h.Failure(c, msgEnrollFailed)
		h.RenderPageStatus(c, domain.FailureStatus(err), "Enrollment", "Enrollment", EnrollmentView(h.departmentsFor(c, depts), f, nil, ""))
		return
	}
	h.Logger.Info("Student enrolled in department", zap.String("departmentID", f.DepartmentID), zap.String("studentID", f.StudentID))
	h.Success(c, msgEnrolled)
	h.RenderPage(c, "Enrollment", "Enrollment", EnrollmentView(h.departmentsFor(c, depts), forms.Enrollment{}, nil, ""))
}

// departmentsFor refills the select when this session holds no snapshot.
func (h *DepartmentHandlers) departmentsFor(c *gin.Context, held []models.Department) []models.Department {
	if len(held) > 0 {
		return held
	}
	return h.departments.Lookup(c.Request.Context(), h.Owner(c), h.loader(c)).Items
}
