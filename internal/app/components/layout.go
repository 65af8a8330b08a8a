package components

import (
	"github.com/a-h/templ"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/FACorreiaa/go-lmsportal/internal/app/models"
)

const (
	htmxSrc     = "https://unpkg.com/htmx.org@2.0.4"
	tailwindSrc = "https://cdn.tailwindcss.com"
)

var titleCaser = cases.Title(language.English)

// RoleLabel is the display form of a role.
func RoleLabel(r models.Role) string {
	return titleCaser.String(string(r))
}

// Layout renders the full page shell around data.Content.
func Layout(data models.LayoutTempl) templ.Component {
	return Func(func(b *Builder) {
		b.Raw("<!DOCTYPE html>")
		b.Open("html", "lang", "en")
		b.Open("head")
		b.Void("meta", "charset", "utf-8")
		b.Void("meta", "name", "viewport", "content", "width=device-width, initial-scale=1")
		b.Elem("title", data.Title+" | LMS Portal")
		b.Open("script", "src", tailwindSrc)
		b.Close("script")
		b.Open("script", "src", htmxSrc)
		b.Close("script")
		b.Void("link", "rel", "stylesheet", "href", "/assets/css/app.css")
		b.Open("script", "src", "/assets/js/app.js", "defer", "")
		b.Close("script")
		b.Close("head")

		b.Open("body", "class", "min-h-screen bg-gray-50 text-gray-900")
		b.Component(Navbar(data.Nav, data.ActiveNav, data.User))
		b.Component(Toasts(data.Toasts, false))
		b.Open("main", "id", "content", "class", "mx-auto max-w-6xl px-4 py-8")
		b.Component(data.Content)
		b.Close("main")
		b.Close("body")
		b.Close("html")
	})
}

// Navbar renders the top navigation and, when logged in, the user menu.
func Navbar(nav models.Navigation, active string, user *models.Session) templ.Component {
	return Func(func(b *Builder) {
		b.Open("header", "class", "border-b bg-white")
		b.Open("nav", "class", "mx-auto flex max-w-6xl items-center justify-between px-4 py-3")
		b.Elem("a", "LMS Portal", "href", "/", "class", "text-lg font-semibold text-indigo-600")

		b.Open("ul", "class", "flex items-center gap-4")
		for _, item := range nav.Items {
			class := If(item.Name == active, "font-semibold text-indigo-600", "text-gray-600 hover:text-gray-900")
			b.Open("li")
			attrs := []string{"href", item.URL, "class", class}
			if item.Name == active {
				attrs = append(attrs, "aria-current", "page")
			}
			b.Elem("a", item.Name, attrs...)
			b.Close("li")
		}
		b.Close("ul")

		if user != nil {
			b.Open("div", "class", "flex items-center gap-3", "id", "user-menu")
			b.Elem("span", displayName(user), "class", "text-sm text-gray-700")
			b.Elem("span", RoleLabel(user.Role), "class", "rounded bg-indigo-50 px-2 py-0.5 text-xs text-indigo-700", "data-role", string(user.Role))
			b.Open("form", "method", "post", "action", "/logout")
			b.Component(Button(ButtonProps{Type: TypeSubmit, Variant: VariantOutline, Size: SizeSm, Label: "Sign out"}))
			b.Close("form")
			b.Close("div")
		}
		b.Close("nav")
		b.Close("header")
	})
}

func displayName(s *models.Session) string {
	if s.FullName != "" {
		return s.FullName
	}
	if s.Email != "" {
		return s.Email
	}
	return s.ID
}
