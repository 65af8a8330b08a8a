package user

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-lmsportal/internal/app/crud"
	"github.com/FACorreiaa/go-lmsportal/internal/app/domain"
	"github.com/FACorreiaa/go-lmsportal/internal/app/forms"
	"github.com/FACorreiaa/go-lmsportal/internal/app/models"
)

const (
	msgLoadFailed   = "Failed to load users."
	msgCreated      = "User registered successfully."
	msgUpdated      = "User updated successfully."
	msgDeleted      = "User deleted successfully."
	msgDeleteFailed = "Failed to delete user."
	msgNotFound     = "User not found."
	msgUnconfirmed  = "Deletion was not confirmed."
)

// UserHandlers serves the admin's user management pages.
type UserHandlers struct {
	*domain.BaseHandler
	users *crud.Snapshots[models.User]
}

func NewUserHandlers(base *domain.BaseHandler, ttl time.Duration) *UserHandlers {
	return &UserHandlers{
		BaseHandler: base,
		users:       crud.NewSnapshots[models.User]("users", ttl),
	}
}

func (h *UserHandlers) loader(c *gin.Context) crud.Loader[models.User] {
	api := h.API(c)
	return func(ctx context.Context) ([]models.User, error) {
		return api.ListUsers(ctx)
	}
}

// List renders the users page from a fresh fetch.
func (h *UserHandlers) List(c *gin.Context) {
	page := h.users.Fetch(c.Request.Context(), h.Owner(c), h.loader(c)).WithQuery(c.Query("q"), Fields)
	if page.Status == crud.Failed {
		if h.ExpiredSession(c, page.Err) {
			return
		}
		h.Logger.Warn("Failed to load users", zap.Error(page.Err))
		h.Failure(c, msgLoadFailed)
	}
	h.RenderPage(c, "Users", "Users", ListView(page))
}

// Rows answers the filter box. It narrows the last loaded collection and
// only fetches when nothing is held for this session.
func (h *UserHandlers) Rows(c *gin.Context) {
	page := h.users.Lookup(c.Request.Context(), h.Owner(c), h.loader(c)).WithQuery(c.Query("q"), Fields)
	if page.Status == crud.Failed {
		h.Failure(c, msgLoadFailed)
	}
	h.RenderPartial(c, http.StatusOK, Rows(page))
}

func (h *UserHandlers) NewForm(c *gin.Context) {
	h.RenderPartial(c, http.StatusOK, RegisterView(forms.RegisterUser{Role: models.RoleStudent}, nil, ""))
}

// Create registers a user. Invalid input never reaches the backend.
func (h *UserHandlers) Create(c *gin.Context) {
	var f forms.RegisterUser
	if err := c.ShouldBind(&f); err != nil {
		h.Logger.Warn("Failed to bind register form", zap.Error(err))
		h.RenderPartial(c, http.StatusBadRequest, RegisterView(f, nil, "Invalid form submission"))
		return
	}
	if errs := forms.FieldErrors(f.Validate()); len(errs) > 0 {
		h.RenderPartial(c, http.StatusUnprocessableEntity, RegisterView(f, errs, ""))
		return
	}

	api := h.API(c)
	page, err := h.users.Mutate(c.Request.Context(), h.Owner(c), func(ctx context.Context) error {
		return api.CreateUser(ctx, f.Payload())
	}, h.loader(c))
	if err != nil {
		if h.ExpiredSession(c, err) {
			return
		}
		msg := h.BackendError(c, "create user", err, "Failed to register user.")
		h.RenderPartial(c, domain.FailureStatus(err), RegisterView(f, nil, msg))
		return
	}
	h.Logger.Info("User registered", zap.String("role", string(f.Role)))
	h.afterWrite(c, page, msgCreated)
}

func (h *UserHandlers) EditForm(c *gin.Context) {
	u, ok := h.find(c)
	if !ok {
		return
	}
	f := forms.EditUser{FullName: u.FullName, Email: u.Email, Role: u.Role}
	h.RenderPartial(c, http.StatusOK, EditView(u.ID, f, nil, ""))
}

func (h *UserHandlers) Update(c *gin.Context) {
	id := c.Param("id")
	var f forms.EditUser
	if err := c.ShouldBind(&f); err != nil {
		h.RenderPartial(c, http.StatusBadRequest, EditView(id, f, nil, "Invalid form submission"))
		return
	}
	if errs := forms.FieldErrors(f.Validate()); len(errs) > 0 {
		h.RenderPartial(c, http.StatusUnprocessableEntity, EditView(id, f, errs, ""))
		return
	}

	api := h.API(c)
	page, err := h.users.Mutate(c.Request.Context(), h.Owner(c), func(ctx context.Context) error {
		return api.UpdateUser(ctx, id, f.Payload())
	}, h.loader(c))
	if err != nil {
		if h.ExpiredSession(c, err) {
			return
		}
		msg := h.BackendError(c, "update user", err, "Failed to update user.")
		h.RenderPartial(c, domain.FailureStatus(err), EditView(id, f, nil, msg))
		return
	}
	h.afterWrite(c, page, msgUpdated)
}

func (h *UserHandlers) ConfirmDelete(c *gin.Context) {
	u, ok := h.find(c)
	if !ok {
		return
	}
	h.RenderPartial(c, http.StatusOK, DeleteView(u))
}

// Delete removes a user once the dialog confirmed it. A failure leaves the
// rows as they were.
func (h *UserHandlers) Delete(c *gin.Context) {
	owner := h.Owner(c)
	if !crud.Confirmed(c) {
		h.Failure(c, msgUnconfirmed)
		h.RenderPartial(c, http.StatusBadRequest, Rows(h.users.Current(owner)))
		return
	}

	id := c.Param("id")
	api := h.API(c)
	page, err := h.users.Mutate(c.Request.Context(), owner, func(ctx context.Context) error {
		return api.DeleteUser(ctx, id)
	}, h.loader(c))
	if err != nil {
		if h.ExpiredSession(c, err) {
			return
		}
		h.BackendError(c, "delete user", err, msgDeleteFailed)
		h.Failure(c, msgDeleteFailed)
		h.RenderPartial(c, http.StatusOK, Rows(h.users.Current(owner)), closeModal())
		return
	}
	h.Logger.Info("User deleted", zap.String("userID", id))
	h.notifyReload(c, page, msgDeleted)
	h.RenderPartial(c, http.StatusOK, Rows(page), closeModal())
}

// afterWrite answers a successful form submission: the modal empties and
// the table body is replaced out of band.
func (h *UserHandlers) afterWrite(c *gin.Context, page crud.Page[models.User], msg string) {
	h.notifyReload(c, page, msg)
	h.RenderPartial(c, http.StatusOK, rowsOOB(page))
}

func (h *UserHandlers) notifyReload(c *gin.Context, page crud.Page[models.User], msg string) {
	h.Success(c, msg)
	if page.Status == crud.Failed {
		h.Logger.Warn("Failed to reload users", zap.Error(page.Err))
		h.Failure(c, msgLoadFailed)
	}
}

func (h *UserHandlers) find(c *gin.Context) (models.User, bool) {
	id := c.Param("id")
	page := h.users.Lookup(c.Request.Context(), h.Owner(c), h.loader(c))
	for _, u := range page.Items {
		if u.ID == id {
			return u, true
		}
	}
	h.Failure(c, msgNotFound)
	h.RenderPartial(c, http.StatusNotFound)
	return models.User{}, false
}
