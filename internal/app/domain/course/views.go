package course

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/FACorreiaa/go-lmsportal/internal/app/components"
	"github.com/FACorreiaa/go-lmsportal/internal/app/crud"
	"github.com/FACorreiaa/go-lmsportal/internal/app/forms"
	"github.com/FACorreiaa/go-lmsportal/internal/app/models"
)

const (
	basePath      = "/admin/courses"
	rowsID        = "courses-rows"
	catalogPath   = "/student/catalog"
	catalogRowsID = "catalog-rows"
)

var (
	headers        = []string{"Code", "Name", "Department", "Credits", "Semester", ""}
	catalogHeaders = []string{"Code", "Name", "Credits", "Semester", ""}
)

// Fields are what the admin filter matches on.
func Fields(r Row) []string {
	return []string{r.Name, r.Code, r.DepartmentName}
}

func CatalogFields(c models.Course) []string {
	return []string{c.Name, c.Code}
}

func ListView(page crud.Page[Row]) templ.Component {
	failed := ""
	if page.Status == crud.Failed {
		failed = msgLoadFailed
	}
	return components.ListPage(components.ListPageProps{
		Title:       "Courses",
		Subtitle:    "Manage the course catalog and its lecturers.",
		AddLabel:    "New course",
		AddURL:      basePath + "/new",
		SearchURL:   basePath + "/rows",
		Placeholder: "Filter by name, code or department",
		Query:       page.Query,
		Headers:     headers,
		TbodyID:     rowsID,
		Failed:      failed,
		Rows:        Rows(page),
	})
}

func Rows(page crud.Page[Row]) templ.Component {
	return components.Func(func(b *components.Builder) {
		if page.Empty() {
			msg := "No courses found."
			if page.Status == crud.Failed {
				msg = msgLoadFailed
			}
			b.Component(components.EmptyRow(len(headers), msg))
			return
		}
		for _, r := range page.Visible {
			b.Open("tr", "class", "course-row", "data-id", r.ID)
			components.Cell(b, r.Code)
			components.Cell(b, r.Name)
			components.Cell(b, r.DepartmentName)
			components.Cell(b, strconv.Itoa(r.Credits))
			components.Cell(b, strconv.Itoa(r.Semester))
			assign := components.Button(components.ButtonProps{
				Variant: components.VariantGhost, Size: components.SizeSm, Label: "Lecturer",
				Attributes: templ.Attributes{"hx-get": basePath + "/" + r.ID + "/lecturer", "hx-target": "#" + components.ModalID},
			})
			b.Component(components.RowActions(basePath+"/"+r.ID+"/edit", basePath+"/"+r.ID+"/delete", assign))
			b.Close("tr")
		}
	})
}

func rowsOOB(page crud.Page[Row]) templ.Component {
	return components.RowsOOB(rowsID, Rows(page))
}

func closeModal() templ.Component { return components.CloseModal() }

func departmentOptions(depts []models.Department) []components.Option {
	out := make([]components.Option, 0, len(depts))
	for _, d := range depts {
		out = append(out, components.Option{Value: d.ID, Label: d.Name + " (" + d.Code + ")"})
	}
	return out
}

func lecturerOptions(users []models.User) []components.Option {
	out := make([]components.Option, 0, len(users))
	for _, u := range users {
		out = append(out, components.Option{Value: u.ID, Label: u.FullName})
	}
	return out
}

// FormView is the create form when id is empty, the edit form otherwise.
func FormView(id string, f forms.Course, opts Options, errs forms.Errors, formErr string) templ.Component {
	title, action := "New course", basePath
	if id != "" {
		title, action = "Edit course", basePath+"/"+id
	}
	return components.Modal(title, components.Func(func(b *components.Builder) {
		b.Component(components.FormError(formErr))
		b.Open("form",
			"hx-post", action,
			"hx-target", "#"+components.ModalID,
			"hx-swap", "innerHTML",
			"class", "course-form space-y-4",
			"novalidate", "",
		)
		b.Component(components.Field(components.FieldProps{Label: "Course name", Name: "course_name", Value: f.Name, Error: errs.Get("course_name"), Required: true}))
		b.Component(components.Field(components.FieldProps{Label: "Course code", Name: "course_code", Value: f.Code, Error: errs.Get("course_code"), Required: true}))
		b.Open("div", "class", "grid grid-cols-2 gap-4")
		b.Component(components.Field(components.FieldProps{Label: "Credits", Name: "credits", Type: "number", Value: strconv.Itoa(f.Credits), Error: errs.Get("credits")}))
		b.Component(components.Field(components.FieldProps{Label: "Semester", Name: "semester", Type: "number", Value: strconv.Itoa(f.Semester), Error: errs.Get("semester")}))
		b.Close("div")
		b.Component(components.Select(components.SelectProps{
			Label: "Department", Name: "department", Options: departmentOptions(opts.Departments),
			Selected: f.Department, Empty: "Select a department", Error: errs.Get("department"),
		}))
		b.Component(components.Select(components.SelectProps{
			Label: "Lecturer", Name: "lecturer_id", Options: lecturerOptions(opts.Lecturers),
			Selected: f.LecturerID, Empty: "Unassigned",
		}))
		b.Component(components.Button(components.ButtonProps{Type: components.TypeSubmit, Label: "Save"}))
		b.Close("form")
	}))
}

func AssignView(r Row, f forms.AssignLecturer, lecturers []models.User, errs forms.Errors, formErr string) templ.Component {
	return components.Modal("Assign lecturer", components.Func(func(b *components.Builder) {
		b.Elem("p", r.Code+" "+r.Name, "class", "mb-4 text-sm text-gray-600")
		b.Component(components.FormError(formErr))
		b.Open("form",
			"hx-post", basePath+"/"+r.ID+"/lecturer",
			"hx-target", "#"+components.ModalID,
			"hx-swap", "innerHTML",
			"class", "assign-form space-y-4",
		)
		b.Component(components.Select(components.SelectProps{
			Label: "Lecturer", Name: "lecturer_id", Options: lecturerOptions(lecturers),
			Selected: f.LecturerID, Empty: "Assign lecturer", Error: errs.Get("lecturer_id"),
		}))
		b.Component(components.Button(components.ButtonProps{Type: components.TypeSubmit, Label: "Assign"}))
		b.Close("form")
	}))
}

func DeleteView(r Row) templ.Component {
	return components.ConfirmDialog(components.ConfirmProps{
		Title:   "Delete course",
		Message: "Delete " + r.Code + " " + r.Name + "? This cannot be undone.",
		Action:  basePath + "/" + r.ID + "/delete",
		Target:  "#" + rowsID,
	})
}

// CatalogView is the student's course catalog.
func CatalogView(page crud.Page[models.Course]) templ.Component {
	failed := ""
	if page.Status == crud.Failed {
		failed = msgCatalogFailed
	}
	return components.ListPage(components.ListPageProps{
		Title:       "Course catalog",
		Subtitle:    "Browse the courses on offer and enroll.",
		SearchURL:   catalogPath + "/rows",
		Placeholder: "Filter by name or code",
		Query:       page.Query,
		Headers:     catalogHeaders,
		TbodyID:     catalogRowsID,
		Failed:      failed,
		Rows:        CatalogRows(page),
	})
}

func CatalogRows(page crud.Page[models.Course]) templ.Component {
	return components.Func(func(b *components.Builder) {
		if page.Empty() {
			msg := "No courses found."
			if page.Status == crud.Failed {
				msg = msgCatalogFailed
			}
			b.Component(components.EmptyRow(len(catalogHeaders), msg))
			return
		}
		for _, c := range page.Visible {
			b.Open("tr", "class", "catalog-row", "data-id", c.ID, "data-enrolled", strconv.FormatBool(c.IsEnrolled))
			components.Cell(b, c.Code)
			components.Cell(b, c.Name)
			components.Cell(b, strconv.Itoa(c.Credits))
			components.Cell(b, strconv.Itoa(c.Semester))
			b.Open("td", "class", "px-4 py-2 text-right")
			if c.IsEnrolled {
				b.Component(components.Button(components.ButtonProps{Size: components.SizeSm, Label: "Enrolled", Disabled: true}))
			} else {
				b.Component(components.Button(components.ButtonProps{
					Size: components.SizeSm, Label: "Enroll",
					Attributes: templ.Attributes{
						"hx-post":   catalogPath + "/" + c.ID + "/enroll",
						"hx-target": "#" + catalogRowsID,
						"hx-swap":   "innerHTML",
					},
				}))
			}
			b.Close("td")
			b.Close("tr")
		}
	})
}
