package middleware

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/FACorreiaa/go-lmsportal/internal/app/models"
	"github.com/FACorreiaa/go-lmsportal/internal/app/observability/metrics"
)

const (
	LoginPath = "/login"
	HomePath  = "/"
)

// Policy describes who may see a route. An empty RequiredRole admits any
// logged-in session.
type Policy struct {
	RequiredRole models.Role
}

// Decision is the outcome of evaluating a Policy.
type Decision int

const (
	Allow Decision = iota
	RedirectLogin
	RedirectHome
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect_login"
	case RedirectHome:
		return "redirect_home"
	}
	return "unknown"
}

// Target is where a redirecting decision sends the user.
func (d Decision) Target() string {
	switch d {
	case RedirectLogin:
		return LoginPath
	case RedirectHome:
		return HomePath
	}
	return ""
}

// Evaluate decides access for sess. It only gates navigation; the backend
// authorizes every call on its own.
func Evaluate(sess *models.Session, p Policy) Decision {
	if sess == nil {
		return RedirectLogin
	}
	if p.RequiredRole != "" && sess.Role != p.RequiredRole {
		return RedirectHome
	}
	return Allow
}

// RequireSession guards a route group. It must run after SessionMiddleware.
func RequireSession(p Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		d := Evaluate(GetSessionFromContext(c), p)
		metrics.Get().GuardDecisionsTotal.Add(c.Request.Context(), 1, metric.WithAttributes(
			attribute.String("decision", d.String()),
			attribute.String("required_role", string(p.RequiredRole)),
		))
		if d != Allow {
			handleAuthRedirect(c, d.Target())
			return
		}
		c.Next()
	}
}

// RequireRole is RequireSession for a single role.
func RequireRole(role models.Role) gin.HandlerFunc {
	return RequireSession(Policy{RequiredRole: role})
}
