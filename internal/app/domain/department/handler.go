package department

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-lmsportal/internal/app/components"
	"github.com/FACorreiaa/go-lmsportal/internal/app/crud"
	"github.com/FACorreiaa/go-lmsportal/internal/app/domain"
	"github.com/FACorreiaa/go-lmsportal/internal/app/forms"
	"github.com/FACorreiaa/go-lmsportal/internal/app/models"
)

const (
	msgLoadFailed   = "Failed to load departments."
	msgCreated      = "Department created."
	msgUpdated      = "Department updated."
	msgDeleted      = "Department deleted."
	msgDeleteFailed = "Failed to delete department."
	msgNotFound     = "Department not found."
	msgUnconfirmed  = "Deletion was not confirmed."
	msgEnrolled     = "Student successfully enrolled in the department!"
	msgEnrollFailed = "Failed to enroll student. Please check the ID and try again."
)

// DepartmentHandlers serves department management and student enrollment.
type DepartmentHandlers struct {
	*domain.BaseHandler
	departments *crud.Snapshots[models.Department]
}

func NewDepartmentHandlers(base *domain.BaseHandler, ttl time.Duration) *DepartmentHandlers {
	return &DepartmentHandlers{
		BaseHandler: base,
		departments: crud.NewSnapshots[models.Department]("departments", ttl),
	}
}

func (h *DepartmentHandlers) loader(c *gin.Context) crud.Loader[models.Department] {
	api := h.API(c)
	return func(ctx context.Context) ([]models.Department, error) {
		return api.ListDepartments(ctx)
	}
}

func (h *DepartmentHandlers) List(c *gin.Context) {
	page := h.departments.Fetch(c.Request.Context(), h.Owner(c), h.loader(c)).WithQuery(c.Query("q"), Fields)
	if page.Status == crud.Failed {
		if h.ExpiredSession(c, page.Err) {
			return
		}
		h.Logger.Warn("Failed to load departments", zap.Error(page.Err))
		h.Failure(c, msgLoadFailed)
	}
	h.RenderPage(c, "Departments", "Departments", ListView(page))
}

func (h *DepartmentHandlers) Rows(c *gin.Context) {
	page := h.departments.Lookup(c.Request.Context(), h.Owner(c), h.loader(c)).WithQuery(c.Query("q"), Fields)
	if page.Status == crud.Failed {
		h.Failure(c, msgLoadFailed)
	}
	h.RenderPartial(c, http.StatusOK, Rows(page))
}

func (h *DepartmentHandlers) NewForm(c *gin.Context) {
	h.RenderPartial(c, http.StatusOK, FormView("", forms.Department{}, nil, ""))
}

func (h *DepartmentHandlers) EditForm(c *gin.Context) {
	d, ok := h.find(c)
	if !ok {
		return
	}
	h.RenderPartial(c, http.StatusOK, FormView(d.ID, forms.DepartmentFrom(d), nil, ""))
}

func (h *DepartmentHandlers) Create(c *gin.Context) {
	h.save(c, "")
}

func (h *DepartmentHandlers) Update(c *gin.Context) {
	h.save(c, c.Param("id"))
}

// save creates when id is empty and updates otherwise.
func (h *DepartmentHandlers) save(c *gin.Context, id string) {
	var f forms.Department
	if err := c.ShouldBind(&f); err != nil {
		h.RenderPartial(c, http.StatusBadRequest, FormView(id, f, nil, "Invalid form submission"))
		return
	}
	if errs := forms.FieldErrors(f.Validate()); len(errs) > 0 {
		h.RenderPartial(c, http.StatusUnprocessableEntity, FormView(id, f, errs, ""))
		return
	}

	api := h.API(c)
	op, okMsg := "create department", msgCreated
	write := func(ctx context.Context) error { return api.CreateDepartment(ctx, f.Payload()) }
	if id != "" {
		op, okMsg = "update department", msgUpdated
		write = func(ctx context.Context) error { return api.UpdateDepartment(ctx, id, f.Payload()) }
	}

	page, err := h.departments.Mutate(c.Request.Context(), h.Owner(c), write, h.loader(c))
	if err != nil {
		if h.ExpiredSession(c, err) {
			return
		}
		msg := h.BackendError(c, op, err, "Failed to save department.")
		h.RenderPartial(c, domain.FailureStatus(err), FormView(id, f, nil, msg))
		return
	}
	h.notifyReload(c, page, okMsg)
	h.RenderPartial(c, http.StatusOK, rowsOOB(page))
}

func (h *DepartmentHandlers) ConfirmDelete(c *gin.Context) {
	d, ok := h.find(c)
	if !ok {
		return
	}
	h.RenderPartial(c, http.StatusOK, DeleteView(d))
}

func (h *DepartmentHandlers) Delete(c *gin.Context) {
	owner := h.Owner(c)
	if !crud.Confirmed(c) {
		h.Failure(c, msgUnconfirmed)
		h.RenderPartial(c, http.StatusBadRequest, Rows(h.departments.Current(owner)))
		return
	}

	id := c.Param("id")
	api := h.API(c)
	page, err := h.departments.Mutate(c.Request.Context(), owner, func(ctx context.Context) error {
		return api.DeleteDepartment(ctx, id)
	}, h.loader(c))
	if err != nil {
		if h.ExpiredSession(c, err) {
			return
		}
		h.BackendError(c, "delete department", err, msgDeleteFailed)
		h.Failure(c, msgDeleteFailed)
		h.RenderPartial(c, http.StatusOK, Rows(h.departments.Current(owner)), components.CloseModal())
		return
	}
	h.Logger.Info("Department deleted", zap.String("departmentID", id))
	h.notifyReload(c, page, msgDeleted)
	h.RenderPartial(c, http.StatusOK, Rows(page), components.CloseModal())
}

func (h *DepartmentHandlers) notifyReload(c *gin.Context, page crud.Page[models.Department], msg string) {
	h.Success(c, msg)
	if page.Status == crud.Failed {
		h.Logger.Warn("Failed to reload departments", zap.Error(page.Err))
		h.Failure(c, msgLoadFailed)
	}
}

func (h *DepartmentHandlers) find(c *gin.Context) (models.Department, bool) {
	id := c.Param("id")
	page := h.departments.Lookup(c.Request.Context(), h.Owner(c), h.loader(c))
	for _, d := range page.Items {
		if d.ID == id {
			return d, true
		}
	}
	h.Failure(c, msgNotFound)
	h.RenderPartial(c, http.StatusNotFound)
	return models.Department{}, false
}
