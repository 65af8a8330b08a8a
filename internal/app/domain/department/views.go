package department

import (
	"github.com/a-h/templ"

	"github.com/FACorreiaa/go-lmsportal/internal/app/components"
	"github.com/FACorreiaa/go-lmsportal/internal/app/crud"
	"github.com/FACorreiaa/go-lmsportal/internal/app/forms"
	"github.com/FACorreiaa/go-lmsportal/internal/app/models"
)

const (
	basePath       = "/admin/departments"
	enrollmentPath = "/admin/enrollment"
	rowsID         = "departments-rows"
	enrollmentID   = "enrollment-form"
)

var headers = []string{"Code", "Name", "Faculty", "Description", ""}

func Fields(d models.Department) []string {
	return []string{d.Name, d.Code, d.Faculty}
}

func ListView(page crud.Page[models.Department]) templ.Component {
	failed := ""
	if page.Status == crud.Failed {
		failed = msgLoadFailed
	}
	return components.ListPage(components.ListPageProps{
		Title:       "Departments",
		AddLabel:    "New department",
		AddURL:      basePath + "/new",
		SearchURL:   basePath + "/rows",
		Placeholder: "Filter by name, code or faculty",
		Query:       page.Query,
		Headers:     headers,
		TbodyID:     rowsID,
		Failed:      failed,
		Rows:        Rows(page),
	})
}

func Rows(page crud.Page[models.Department]) templ.Component {
	return components.Func(func(b *components.Builder) {
		if page.Empty() {
			msg := "No departments found."
			if page.Status == crud.Failed {
				msg = msgLoadFailed
			}
			b.Component(components.EmptyRow(len(headers), msg))
			return
		}
		for _, d := range page.Visible {
			b.Open("tr", "class", "department-row", "data-id", d.ID)
			components.Cell(b, d.Code)
			components.Cell(b, d.Name)
			components.Cell(b, d.Faculty)
			components.Cell(b, d.Description)
			b.Component(components.RowActions(basePath+"/"+d.ID+"/edit", basePath+"/"+d.ID+"/delete"))
			b.Close("tr")
		}
	})
}

func rowsOOB(page crud.Page[models.Department]) templ.Component {
	return components.RowsOOB(rowsID, Rows(page))
}

func FormView(id string, f forms.Department, errs forms.Errors, formErr string) templ.Component {
	title, action := "New department", basePath
	if id != "" {
		title, action = "Edit department", basePath+"/"+id
	}
	return components.Modal(title, components.Func(func(b *components.Builder) {
		b.Component(components.FormError(formErr))
		b.Open("form",
			"hx-post", action,
			"hx-target", "#"+components.ModalID,
			"hx-swap", "innerHTML",
			"class", "department-form space-y-4",
			"novalidate", "",
		)
		b.Component(components.Field(components.FieldProps{Label: "Name", Name: "name", Value: f.Name, Error: errs.Get("name"), Required: true}))
		b.Component(components.Field(components.FieldProps{Label: "Code", Name: "code", Value: f.Code, Error: errs.Get("code"), Required: true}))
		b.Component(components.Field(components.FieldProps{Label: "Faculty", Name: "faculty", Value: f.Faculty}))
		b.Component(components.Field(components.FieldProps{Label: "Description", Name: "description", Value: f.Description}))
		b.Component(components.Button(components.ButtonProps{Type: components.TypeSubmit, Label: "Save"}))
		b.Close("form")
	}))
}

func DeleteView(d models.Department) templ.Component {
	return components.ConfirmDialog(components.ConfirmProps{
		Title:   "Delete department",
		Message: "Delete " + d.Name + "? Courses and students referencing it keep the stale id.",
		Action:  basePath + "/" + d.ID + "/delete",
		Target:  "#" + rowsID,
	})
}

// EnrollmentView is the admin's place-a-student form.
func EnrollmentView(depts []models.Department, f forms.Enrollment, errs forms.Errors, formErr string) templ.Component {
	options := make([]components.Option, 0, len(depts))
	for _, d := range depts {
		options = append(options, components.Option{Value: d.ID, Label: d.Name})
	}
	return components.Func(func(b *components.Builder) {
		b.Component(components.PageHeader("Enroll student", "Place a student in a department.", nil))
		b.Open("section", "id", enrollmentID, "class", "max-w-lg rounded-lg border bg-white p-6")
		b.Component(components.FormError(formErr))
		b.Open("form",
			"method", "post",
			"action", enrollmentPath,
			"hx-post", enrollmentPath,
			"hx-target", "#"+enrollmentID,
			"hx-select", "#"+enrollmentID,
			"hx-swap", "outerHTML",
			"class", "space-y-4",
			"novalidate", "",
		)
		b.Component(components.Select(components.SelectProps{
			Label: "Department", Name: "department_id", Options: options,
			Selected: f.DepartmentID, Empty: "Select a department", Error: errs.Get("department_id"),
		}))
		b.Component(components.Field(components.FieldProps{
			Label: "Student ID", Name: "student_id", Value: f.StudentID,
			Placeholder: "e.g. 64f1c0...", Error: errs.Get("student_id"), Required: true,
		}))
		b.Component(components.Button(components.ButtonProps{Type: components.TypeSubmit, Label: "Enroll"}))
		b.Close("form")
		b.Close("section")
	})
}
