package course

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/go-lmsportal/internal/app/crud"
	"github.com/FACorreiaa/go-lmsportal/internal/app/domain"
	"github.com/FACorreiaa/go-lmsportal/internal/app/forms"
	"github.com/FACorreiaa/go-lmsportal/internal/app/models"
	"github.com/FACorreiaa/go-lmsportal/internal/pkg/apiclient"
)

const (
	msgLoadFailed    = "Failed to load courses or departments."
	msgOptionsFailed = "Failed to load departments or lecturers."
	msgCreated       = "Course created successfully."
	msgUpdated       = "Course updated successfully."
	msgDeleted       = "Course deleted successfully."
	msgDeleteFailed  = "Failed to delete course."
	msgAssigned      = "Lecturer assigned successfully"
	msgAssignFailed  = "Failed to assign lecturer"
	msgNotFound      = "Course not found."
	msgUnconfirmed   = "Deletion was not confirmed."
)

// Row is a course joined with its department's display name.
type Row struct {
	models.Course
	DepartmentName string
}

// Options are the select choices of the course forms.
type Options struct {
	Departments []models.Department
	Lecturers   []models.User
}

// CourseHandlers serves the admin course pages and the student catalog.
type CourseHandlers struct {
	*domain.BaseHandler
	rows        *crud.Snapshots[Row]
	departments *crud.Snapshots[models.Department]
	lecturers   *crud.Snapshots[models.User]
	catalog     *crud.Snapshots[models.Course]
}

func NewCourseHandlers(base *domain.BaseHandler, ttl time.Duration) *CourseHandlers {
	return &CourseHandlers{
		BaseHandler: base,
		rows:        crud.NewSnapshots[Row]("courses", ttl),
		departments: crud.NewSnapshots[models.Department]("course-departments", ttl),
		lecturers:   crud.NewSnapshots[models.User]("course-lecturers", ttl),
		catalog:     crud.NewSnapshots[models.Course]("catalog", ttl),
	}
}

// JoinDepartments resolves each course's department id to a name. Unknown
// ids are shown as given.
func JoinDepartments(courses []models.Course, depts []models.Department) []Row {
	names := models.DepartmentNames(depts)
	rows := make([]Row, 0, len(courses))
	for _, c := range courses {
		name, ok := names[c.Department]
		if !ok {
			name = c.Department
		}
		if name == "" {
			name = "Unassigned"
		}
		rows = append(rows, Row{Course: c, DepartmentName: name})
	}
	return rows
}

// loader fetches courses and departments together; the page waits for both
// and fails if either does.
func (h *CourseHandlers) loader(c *gin.Context) crud.Loader[Row] {
	api := h.API(c)
	owner := h.Owner(c)
	return func(ctx context.Context) ([]Row, error) {
		var (
			courses []models.Course
			depts   []models.Department
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			courses, err = api.ListCourses(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			depts, err = api.ListDepartments(gctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
		h.departments.Put(owner, depts)
		return JoinDepartments(courses, depts), nil
	}
}

// options loads the form choices concurrently, reusing what this session
// already fetched.
func (h *CourseHandlers) options(c *gin.Context) (Options, error) {
	api := h.API(c)
	owner := h.Owner(c)
	var opts Options
	g, gctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		p := h.departments.Lookup(gctx, owner, api.ListDepartments)
		opts.Departments = p.Items
		if p.Status == crud.Failed {
			return fmt.Errorf("failed to load departments: %w", p.Err)
		}
		return nil
	})
	g.Go(func() error {
		p := h.lecturers.Lookup(gctx, owner, api.ListLecturers)
		opts.Lecturers = p.Items
		if p.Status == crud.Failed {
			return fmt.Errorf("failed to load lecturers: %w", p.Err)
		}
		return nil
	})
	err := g.Wait()
	return opts, err
}

func (h *CourseHandlers) List(c *gin.Context) {
	page := h.rows.Fetch(c.Request.Context(), h.Owner(c), h.loader(c)).WithQuery(c.Query("q"), Fields)
	if page.Status == crud.Failed {
		if h.ExpiredSession(c, page.Err) {
			return
		}
		h.Logger.Warn("Failed to load courses", zap.Error(page.Err))
		h.Failure(c, msgLoadFailed)
	}
	h.RenderPage(c, "Courses", "Courses", ListView(page))
}

// Rows answers the filter box from the last loaded collection.
func (h *CourseHandlers) Rows(c *gin.Context) {
	page := h.rows.Lookup(c.Request.Context(), h.Owner(c), h.loader(c)).WithQuery(c.Query("q"), Fields)
	if page.Status == crud.Failed {
		h.Failure(c, msgLoadFailed)
	}
	h.RenderPartial(c, http.StatusOK, Rows(page))
}

func (h *CourseHandlers) NewForm(c *gin.Context) {
	opts, formErr := h.formOptions(c)
	h.RenderPartial(c, http.StatusOK, FormView("", forms.Course{Semester: 1}, opts, nil, formErr))
}

func (h *CourseHandlers) EditForm(c *gin.Context) {
	row, ok := h.find(c)
	if !ok {
		return
	}
	opts, formErr := h.formOptions(c)
	h.RenderPartial(c, http.StatusOK, FormView(row.ID, forms.CourseFrom(row.Course), opts, nil, formErr))
}

func (h *CourseHandlers) formOptions(c *gin.Context) (Options, string) {
	opts, err := h.options(c)
	if err != nil {
		h.Logger.Warn("Failed to load course form options", zap.Error(err))
		return opts, msgOptionsFailed
	}
	return opts, ""
}

func (h *CourseHandlers) Create(c *gin.Context) {
	h.save(c, "", "create course", msgCreated, func(api *apiclient.Client, f forms.Course) func(context.Context) error {
		return func(ctx context.Context) error { return api.CreateCourse(ctx, f.Payload()) }
	})
}

func (h *CourseHandlers) Update(c *gin.Context) {
	id := c.Param("id")
	h.save(c, id, "update course", msgUpdated, func(api *apiclient.Client, f forms.Course) func(context.Context) error {
		return func(ctx context.Context) error { return api.UpdateCourse(ctx, id, f.Payload()) }
	})
}

func (h *CourseHandlers) save(c *gin.Context, id, op, okMsg string, write func(*apiclient.Client, forms.Course) func(context.Context) error) {
	var f forms.Course
	if err := c.ShouldBind(&f); err != nil {
		opts, _ := h.formOptions(c)
		h.RenderPartial(c, http.StatusBadRequest, FormView(id, f, opts, nil, "Invalid form submission"))
		return
	}
	if errs := forms.FieldErrors(f.Validate()); len(errs) > 0 {
		opts, _ := h.formOptions(c)
		h.RenderPartial(c, http.StatusUnprocessableEntity, FormView(id, f, opts, errs, ""))
		return
	}

	page, err := h.rows.Mutate(c.Request.Context(), h.Owner(c), write(h.API(c), f), h.loader(c))
	if err != nil {
		if h.ExpiredSession(c, err) {
			return
		}
		msg := h.BackendError(c, op, err, "Failed to save course.")
		opts, _ := h.formOptions(c)
		h.RenderPartial(c, domain.FailureStatus(err), FormView(id, f, opts, nil, msg))
		return
	}
	h.notifyReload(c, page, okMsg)
	h.RenderPartial(c, http.StatusOK, rowsOOB(page))
}

func (h *CourseHandlers) AssignForm(c *gin.Context) {
	row, ok := h.find(c)
	if !ok {
		return
	}
	opts, formErr := h.formOptions(c)
	h.RenderPartial(c, http.StatusOK, AssignView(row, forms.AssignLecturer{LecturerID: row.LecturerID}, opts.Lecturers, nil, formErr))
}

// Assign sets a course's lecturer.
func (h *CourseHandlers) Assign(c *gin.Context) {
	row, ok := h.find(c)
	if !ok {
		return
	}
	var f forms.AssignLecturer
	_ = c.ShouldBind(&f)
	if errs := forms.FieldErrors(f.Validate()); len(errs) > 0 {
		opts, _ := h.formOptions(c)
		h.RenderPartial(c, http.StatusUnprocessableEntity, AssignView(row, f, opts.Lecturers, errs, ""))
		return
	}

	api := h.API(c)
	page, err := h.rows.Mutate(c.Request.Context(), h.Owner(c), func(ctx context.Context) error {
		return api.AssignLecturer(ctx, row.ID, f.LecturerID)
	}, h.loader(c))
	if err != nil {
		if h.ExpiredSession(c, err) {
			return
		}
		msg := h.BackendError(c, "assign lecturer", err, msgAssignFailed)
		h.Failure(c, msgAssignFailed)
		opts, _ := h.formOptions(c)
		h.RenderPartial(c, domain.FailureStatus(err), AssignView(row, f, opts.Lecturers, nil, msg))
		return
	}
	h.notifyReload(c, page, msgAssigned)
	h.RenderPartial(c, http.StatusOK, rowsOOB(page))
}

func (h *CourseHandlers) ConfirmDelete(c *gin.Context) {
	row, ok := h.find(c)
	if !ok {
		return
	}
	h.RenderPartial(c, http.StatusOK, DeleteView(row))
}

func (h *CourseHandlers) Delete(c *gin.Context) {
	owner := h.Owner(c)
	if !crud.Confirmed(c) {
		h.Failure(c, msgUnconfirmed)
		h.RenderPartial(c, http.StatusBadRequest, Rows(h.rows.Current(owner)))
		return
	}

	id := c.Param("id")
	api := h.API(c)
	page, err := h.rows.Mutate(c.Request.Context(), owner, func(ctx context.Context) error {
		return api.DeleteCourse(ctx, id)
	}, h.loader(c))
	if err != nil {
		if h.ExpiredSession(c, err) {
			return
		}
		h.BackendError(c, "delete course", err, msgDeleteFailed)
		h.Failure(c, msgDeleteFailed)
		h.RenderPartial(c, http.StatusOK, Rows(h.rows.Current(owner)), closeModal())
		return
	}
	h.Logger.Info("Course deleted", zap.String("courseID", id))
	h.notifyReload(c, page, msgDeleted)
	h.RenderPartial(c, http.StatusOK, Rows(page), closeModal())
}

func (h *CourseHandlers) notifyReload(c *gin.Context, page crud.Page[Row], msg string) {
	h.Success(c, msg)
	if page.Status == crud.Failed {
		h.Logger.Warn("Failed to reload courses", zap.Error(page.Err))
		h.Failure(c, msgLoadFailed)
	}
}

func (h *CourseHandlers) find(c *gin.Context) (Row, bool) {
	id := c.Param("id")
	page := h.rows.Lookup(c.Request.Context(), h.Owner(c), h.loader(c))
	for _, r := range page.Items {
		if r.ID == id {
			return r, true
		}
	}
	h.Failure(c, msgNotFound)
	h.RenderPartial(c, http.StatusNotFound)
	return Row{}, false
}
