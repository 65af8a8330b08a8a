package home

import (
	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"

	"github.com/FACorreiaa/go-lmsportal/internal/app/components"
	"github.com/FACorreiaa/go-lmsportal/internal/app/domain"
	"github.com/FACorreiaa/go-lmsportal/internal/app/models"
)

type HomeHandlers struct {
	*domain.BaseHandler
}

func NewHomeHandlers(base *domain.BaseHandler) *HomeHandlers {
	return &HomeHandlers{BaseHandler: base}
}

func (h *HomeHandlers) ShowHomePage(c *gin.Context) {
	user := h.Session(c)
	if user != nil {
		h.RenderPage(c, "Welcome", "Home", WelcomeBack(user))
		return
	}
	h.RenderPage(c, "Welcome", "Home", PublicLanding())
}

// PublicLanding introduces the portal to anonymous visitors.
func PublicLanding() templ.Component {
	return components.Func(func(b *components.Builder) {
		b.Open("section", "id", "landing", "class", "py-16 text-center")
		b.Elem("h1", "Learning Management System", "class", "text-4xl font-bold")
		b.Elem("p", "Courses, departments and enrollment for students, lecturers and administrators in one place.", "class", "mx-auto mt-4 max-w-xl text-gray-600")
		b.Open("div", "class", "mt-8")
		b.Component(components.Button(components.ButtonProps{Href: "/login", Size: components.SizeLg, Label: "Sign in"}))
		b.Close("div")
		b.Close("section")
	})
}

// WelcomeBack points a logged-in user at their dashboard.
func WelcomeBack(s *models.Session) templ.Component {
	return components.Func(func(b *components.Builder) {
		name := s.FullName
		if name == "" {
			name = s.Email
		}
		b.Open("section", "id", "welcome", "class", "py-16 text-center")
		b.Elem("h1", "Welcome back, "+name, "class", "text-3xl font-bold")
		b.Elem("p", "Signed in as "+components.RoleLabel(s.Role)+".", "class", "mt-2 text-gray-600")
		b.Open("div", "class", "mt-8")
		b.Component(components.Button(components.ButtonProps{Href: s.Role.HomePath(), Size: components.SizeLg, Label: "Go to dashboard"}))
		b.Close("div")
		b.Close("section")
	})
}
