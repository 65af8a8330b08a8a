package models

import "github.com/a-h/templ"

type NavItem struct {
	Name string
	URL  string
	Icon string
}

type Navigation struct {
	Items []NavItem
}

// Toast is a one-shot notification carried across a redirect.
type Toast struct {
	Kind    string // success | error | info
	Message string
}

type LayoutTempl struct {
	Title     string
	User      *Session
	Nav       Navigation
	ActiveNav string
	Toasts    []Toast
	Content   templ.Component
}

var AdminNav = Navigation{
	Items: []NavItem{
		{Name: "Dashboard", URL: "/admin"},
		{Name: "Users", URL: "/admin/users"},
		{Name: "Courses", URL: "/admin/courses"},
		{Name: "Departments", URL: "/admin/departments"},
		{Name: "Enrollment", URL: "/admin/enrollment"},
		{Name: "Profile", URL: "/profile"},
	},
}

var LecturerNav = Navigation{
	Items: []NavItem{
		{Name: "Dashboard", URL: "/lecturer"},
		{Name: "Profile", URL: "/profile"},
	},
}

var StudentNav = Navigation{
	Items: []NavItem{
		{Name: "Dashboard", URL: "/student"},
		{Name: "Catalog", URL: "/student/catalog"},
		{Name: "Profile", URL: "/profile"},
	},
}

var OfflineNav = Navigation{
	Items: []NavItem{
		{Name: "Home", URL: "/"},
		{Name: "Sign in", URL: "/login"},
	},
}

// NavFor picks the navigation for the current session.
func NavFor(s *Session) Navigation {
	if s == nil {
		return OfflineNav
	}
	switch s.Role {
	case RoleAdmin:
		return AdminNav
	case RoleLecturer:
		return LecturerNav
	case RoleStudent:
		return StudentNav
	}
	return OfflineNav
}
