package dashboard

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/FACorreiaa/go-lmsportal/internal/app/components"
	"github.com/FACorreiaa/go-lmsportal/internal/app/crud"
	"github.com/FACorreiaa/go-lmsportal/internal/app/models"
)

const studentRowsID = "student-courses"

var studentHeaders = []string{"Code", "Course", "Credits", "Semester", "Lecturer", "Last accessed"}

func StudentFields(c models.EnrolledCourse) []string {
	return []string{c.Name, c.Code}
}

func greeting(s *models.Session) string {
	if s == nil || s.FullName == "" {
		return "Welcome back!"
	}
	return "Welcome back, " + s.FullName + "!"
}

// AdminView shows the system counts and newest accounts. A nil overview
// means the metrics could not be loaded.
func AdminView(s *models.Session, o *models.AdminOverview) templ.Component {
	return components.Func(func(b *components.Builder) {
		b.Component(components.PageHeader("Admin Dashboard", greeting(s)+" Here's what's happening in your system today.", nil))
		if o == nil {
			b.Component(components.ErrorState(msgMetricsFailed))
			return
		}
		b.Open("div", "class", "mb-8 grid grid-cols-2 gap-4 md:grid-cols-4")
		b.Component(components.StatCard("Students", o.Stats.Students))
		b.Component(components.StatCard("Lecturers", o.Stats.Lecturers))
		b.Component(components.StatCard("Courses", o.Stats.Courses))
		b.Component(components.StatCard("Departments", o.Stats.Departments))
		b.Close("div")

		b.Elem("h2", "Recent users", "class", "mb-2 text-lg font-semibold")
		b.Component(components.Table([]string{"Name", "Email", "Role", "Joined"}, "recent-users", components.Func(func(b *components.Builder) {
			if len(o.RecentUsers) == 0 {
				b.Component(components.EmptyRow(4, "No recent users found."))
				return
			}
			for _, u := range o.RecentUsers {
				b.Open("tr", "class", "recent-user", "data-id", u.ID)
				components.Cell(b, u.FullName)
				components.Cell(b, u.Email)
				components.Cell(b, components.RoleLabel(u.Role))
				joined := "-"
				if u.CreatedAt != nil {
					joined = u.CreatedAt.Format("Jan 2, 2006")
				}
				components.Cell(b, joined)
				b.Close("tr")
			}
		})))
	})
}

func LecturerView(s *models.Session, courses []models.Course, failed bool) templ.Component {
	return components.Func(func(b *components.Builder) {
		b.Component(components.PageHeader("Lecturer Dashboard", greeting(s), nil))
		if failed {
			b.Component(components.ErrorState(msgLecturerFailed))
		}
		b.Component(components.Table([]string{"Code", "Course", "Credits", "Semester"}, "lecturer-courses", components.Func(func(b *components.Builder) {
			if len(courses) == 0 {
				b.Component(components.EmptyRow(4, "No courses assigned yet."))
				return
			}
			for _, c := range courses {
				b.Open("tr", "class", "lecturer-course", "data-id", c.ID)
				components.Cell(b, c.Code)
				components.Cell(b, c.Name)
				components.Cell(b, strconv.Itoa(c.Credits))
				components.Cell(b, strconv.Itoa(c.Semester))
				b.Close("tr")
			}
		})))
	})
}

func StudentView(s *models.Session, page crud.Page[models.EnrolledCourse]) templ.Component {
	return components.Func(func(b *components.Builder) {
		b.Component(components.PageHeader("Student Dashboard", greeting(s), components.Button(components.ButtonProps{
			Variant: components.VariantOutline, Label: "Browse catalog", Href: "/student/catalog",
		})))
		b.Open("div", "class", "mb-4 flex items-center gap-4")
		b.Component(components.Search(components.SearchProps{
			URL: "/student/rows", Target: "#" + studentRowsID,
			Placeholder: "Search my enrolled courses...", Value: page.Query,
		}))
		b.Component(components.LoadingIndicator(studentRowsID + "-loading"))
		b.Close("div")
		if page.Status == crud.Failed {
			b.Component(components.ErrorState(msgStudentFailed))
		}
		b.Component(components.Table(studentHeaders, studentRowsID, StudentRows(page)))
	})
}

func StudentRows(page crud.Page[models.EnrolledCourse]) templ.Component {
	return components.Func(func(b *components.Builder) {
		if page.Empty() {
			msg := "No enrolled courses found."
			if page.Status == crud.Failed {
				msg = msgStudentFailed
			}
			b.Component(components.EmptyRow(len(studentHeaders), msg))
			return
		}
		for _, c := range page.Visible {
			b.Open("tr", "class", "enrolled-course", "data-id", c.ID)
			components.Cell(b, c.Code)
			components.Cell(b, c.Name)
			components.Cell(b, strconv.Itoa(c.Credits))
			components.Cell(b, c.Semester)
			components.Cell(b, c.LecturerName)
			components.Cell(b, c.LastAccessed)
			b.Close("tr")
		}
	})
}
