package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-lmsportal/internal/app/domain"
	"github.com/FACorreiaa/go-lmsportal/internal/app/forms"
	"github.com/FACorreiaa/go-lmsportal/internal/app/middleware"
	"github.com/FACorreiaa/go-lmsportal/internal/app/observability/metrics"
)

type AuthHandlers struct {
	*domain.BaseHandler
}

func NewAuthHandlers(base *domain.BaseHandler) *AuthHandlers {
	return &AuthHandlers{BaseHandler: base}
}

// LoginPage shows the sign-in form, or sends a logged-in user home.
func (h *AuthHandlers) LoginPage(c *gin.Context) {
	if s := h.Session(c); s != nil {
		h.Redirect(c, s.Role.HomePath())
		return
	}
	h.RenderPage(c, "Sign in", "Sign in", LoginView(forms.Login{}, nil, ""))
}

// Login validates the form locally, then exchanges the credentials for a
// token and sends the user to their role's dashboard.
func (h *AuthHandlers) Login(c *gin.Context) {
	var f forms.Login
	if err := c.ShouldBind(&f); err != nil {
		h.Logger.Warn("Failed to bind login form", zap.Error(err))
		h.recordAttempt(c, "bad_request")
		h.RenderPageStatus(c, http.StatusBadRequest, "Sign in", "Sign in", LoginView(f, nil, "Invalid form submission"))
		return
	}

	if errs := forms.FieldErrors(f.Validate()); len(errs) > 0 {
		h.recordAttempt(c, "invalid")
		h.RenderPageStatus(c, http.StatusUnprocessableEntity, "Sign in", "Sign in", LoginView(f, errs, ""))
		return
	}

	mgr := middleware.GetManagerFromContext(c)
	sess, err := mgr.Login(c.Request.Context(), f.Email, f.Password)
	if err != nil {
		h.recordAttempt(c, "rejected")
		msg := h.BackendError(c, "login", err, "Login failed")
		h.RenderPageStatus(c, domain.FailureStatus(err), "Sign in", "Sign in", LoginView(f, nil, msg))
		return
	}

	h.recordAttempt(c, "success")
	h.Logger.Info("User signed in", zap.String("userID", sess.ID), zap.String("role", string(sess.Role)))
	h.Redirect(c, sess.Role.HomePath())
}

// Logout forgets the credential. The backend is not told.
func (h *AuthHandlers) Logout(c *gin.Context) {
	if mgr := middleware.GetManagerFromContext(c); mgr != nil {
		if err := mgr.Logout(); err != nil {
			h.Logger.Error("Failed to clear session", zap.Error(err))
		}
	}
	h.Success(c, "You have been signed out.")
	h.Redirect(c, middleware.LoginPath)
}

func (h *AuthHandlers) recordAttempt(c *gin.Context, outcome string) {
	metrics.Get().LoginAttemptsTotal.Add(c.Request.Context(), 1,
		metric.WithAttributes(attribute.String("outcome", outcome)))
}
