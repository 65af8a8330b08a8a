package settings

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-lmsportal/internal/app/domain"
	"github.com/FACorreiaa/go-lmsportal/internal/app/domain/profiles"
	"github.com/FACorreiaa/go-lmsportal/internal/app/forms"
	"github.com/FACorreiaa/go-lmsportal/internal/app/middleware"
)

const (
	msgChanged      = "Password changed. Login again"
	msgChangeFailed = "Password change failed!"
)

type SettingsHandlers struct {
	*domain.BaseHandler
}

func NewSettingsHandlers(base *domain.BaseHandler) *SettingsHandlers {
	return &SettingsHandlers{BaseHandler: base}
}

// ChangePassword updates the password and, on success, ends the session so
// the user signs in again with the new one.
func (h *SettingsHandlers) ChangePassword(c *gin.Context) {
	var f forms.ChangePassword
	if err := c.ShouldBind(&f); err != nil {
		h.RenderPartial(c, http.StatusBadRequest, profiles.PasswordSection(f, nil, "Invalid form submission"))
		return
	}
	if errs := forms.FieldErrors(f.Validate()); len(errs) > 0 {
		h.RenderPartial(c, http.StatusUnprocessableEntity, profiles.PasswordSection(f, errs, ""))
		return
	}

	sess := h.Session(c)
	if err := h.API(c).ChangePassword(c.Request.Context(), f.Payload()); err != nil {
		if h.ExpiredSession(c, err) {
			return
		}
		msg := h.BackendError(c, "change password", err, msgChangeFailed)
		h.Failure(c, msgChangeFailed)
		h.RenderPartial(c, domain.FailureStatus(err), profiles.PasswordSection(forms.ChangePassword{}, nil, msg))
		return
	}

	h.Logger.Info("Password changed", zap.String("userID", sess.ID))
	if mgr := middleware.GetManagerFromContext(c); mgr != nil {
		if err := mgr.Logout(); err != nil {
			h.Logger.Error("Failed to clear session", zap.Error(err))
		}
	}
	h.Success(c, msgChanged)
	h.Redirect(c, middleware.LoginPath)
}
