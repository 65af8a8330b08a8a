package user

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/FACorreiaa/go-lmsportal/internal/app/components"
	"github.com/FACorreiaa/go-lmsportal/internal/app/crud"
	"github.com/FACorreiaa/go-lmsportal/internal/app/forms"
	"github.com/FACorreiaa/go-lmsportal/internal/app/models"
)

const (
	basePath = "/admin/users"
	rowsID   = "users-rows"
)

var headers = []string{"Name", "Email", "Role", "Created", ""}

// Fields are what the filter box matches on.
func Fields(u models.User) []string {
	return []string{u.FullName, u.Email, string(u.Role)}
}

func ListView(page crud.Page[models.User]) templ.Component {
	failed := ""
	if page.Status == crud.Failed {
		failed = msgLoadFailed
	}
	return components.ListPage(components.ListPageProps{
		Title:       "Users",
		Subtitle:    "Register, edit and remove portal accounts.",
		AddLabel:    "Register user",
		AddURL:      basePath + "/new",
		SearchURL:   basePath + "/rows",
		Placeholder: "Filter by name, email or role",
		Query:       page.Query,
		Headers:     headers,
		TbodyID:     rowsID,
		Failed:      failed,
		Rows:        Rows(page),
	})
}

// Rows renders the visible users as table rows.
func Rows(page crud.Page[models.User]) templ.Component {
	return components.Func(func(b *components.Builder) {
		if page.Empty() {
			msg := "No users found."
			if page.Status == crud.Failed {
				msg = msgLoadFailed
			}
			b.Component(components.EmptyRow(len(headers), msg))
			return
		}
		for _, u := range page.Visible {
			b.Open("tr", "class", "user-row", "data-id", u.ID)
			components.Cell(b, u.FullName)
			components.Cell(b, u.Email)
			components.Cell(b, components.RoleLabel(u.Role))
			created := "-"
			if u.CreatedAt != nil {
				created = u.CreatedAt.Format("2006-01-02")
			}
			components.Cell(b, created)
			b.Component(components.RowActions(basePath+"/"+u.ID+"/edit", basePath+"/"+u.ID+"/delete"))
			b.Close("tr")
		}
	})
}

func rowsOOB(page crud.Page[models.User]) templ.Component {
	return components.RowsOOB(rowsID, Rows(page))
}

func closeModal() templ.Component { return components.CloseModal() }

func formAttrs(action string) []string {
	return []string{
		"hx-post", action,
		"hx-target", "#" + components.ModalID,
		"hx-swap", "innerHTML",
		"class", "user-form space-y-4",
		"novalidate", "",
	}
}

// RegisterView is the create-user form. Department and specialization
// apply to lecturers and students; year and semester to students.
func RegisterView(f forms.RegisterUser, errs forms.Errors, formErr string) templ.Component {
	return components.Modal("Register user", components.Func(func(b *components.Builder) {
		b.Component(components.FormError(formErr))
		b.Open("form", formAttrs(basePath)...)
		b.Component(components.Field(components.FieldProps{Label: "Full name", Name: "full_name", Value: f.FullName, Error: errs.Get("full_name"), Required: true}))
		b.Component(components.Field(components.FieldProps{Label: "Email", Name: "email", Type: "email", Value: f.Email, Error: errs.Get("email"), Required: true}))
		b.Component(components.Field(components.FieldProps{Label: "Password", Name: "password", Type: "password", Error: errs.Get("password"), Required: true}))
		b.Component(components.Field(components.FieldProps{Label: "Confirm password (admins)", Name: "confirm_password", Type: "password", Error: errs.Get("confirm_password")}))
		b.Component(components.Select(components.SelectProps{
			Label: "Role", Name: "role", Options: components.RoleOptions(),
			Selected: string(f.Role), Error: errs.Get("role"),
		}))
		b.Component(components.Field(components.FieldProps{Label: "Department", Name: "department", Value: f.Department, Error: errs.Get("department")}))
		b.Component(components.Field(components.FieldProps{Label: "Specialization (lecturers)", Name: "specialization", Value: f.Specialization}))
		b.Open("div", "class", "grid grid-cols-2 gap-4")
		b.Component(components.Field(components.FieldProps{Label: "Year (students)", Name: "year", Type: "number", Value: number(f.Year), Error: errs.Get("year")}))
		b.Component(components.Field(components.FieldProps{Label: "Semester (students)", Name: "semester", Type: "number", Value: number(f.Semester), Error: errs.Get("semester")}))
		b.Close("div")
		b.Component(components.Button(components.ButtonProps{Type: components.TypeSubmit, Label: "Register"}))
		b.Close("form")
	}))
}

func EditView(id string, f forms.EditUser, errs forms.Errors, formErr string) templ.Component {
	return components.Modal("Edit user", components.Func(func(b *components.Builder) {
		b.Component(components.FormError(formErr))
		b.Open("form", formAttrs(basePath+"/"+id)...)
		b.Component(components.Field(components.FieldProps{Label: "Full name", Name: "full_name", Value: f.FullName, Error: errs.Get("full_name"), Required: true}))
		b.Component(components.Field(components.FieldProps{Label: "Email", Name: "email", Type: "email", Value: f.Email, Error: errs.Get("email"), Required: true}))
		b.Component(components.Select(components.SelectProps{
			Label: "Role", Name: "role", Options: components.RoleOptions(),
			Selected: string(f.Role), Error: errs.Get("role"),
		}))
		b.Component(components.Button(components.ButtonProps{Type: components.TypeSubmit, Label: "Save"}))
		b.Close("form")
	}))
}

func DeleteView(u models.User) templ.Component {
	return components.ConfirmDialog(components.ConfirmProps{
		Title:   "Delete user",
		Message: "Delete " + u.FullName + " (" + u.Email + ")? This cannot be undone.",
		Action:  basePath + "/" + u.ID + "/delete",
		Target:  "#" + rowsID,
	})
}

func number(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
