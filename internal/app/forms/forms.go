// Package forms binds and validates the portal's HTML forms before anything
// is sent to the backend.
package forms

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/FACorreiaa/go-lmsportal/internal/app/models"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Errors maps a form field name to its message.
type Errors map[string]string

func (e Errors) Get(field string) string { return e[field] }

// FieldErrors flattens a validation error into per-field messages. Errors
// that are not field errors land under "form".
func FieldErrors(err error) Errors {
	if err == nil {
		return nil
	}
	out := Errors{}
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		for field, ferr := range verrs {
			out[field] = ferr.Error()
		}
		return out
	}
	out["form"] = err.Error()
	return out
}

// Login is the sign-in form.
type Login struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

func (f Login) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Email,
			validation.Required.Error("Email is required"),
			validation.Match(emailPattern).Error("Invalid email format"),
		),
		validation.Field(&f.Password,
			validation.Required.Error("Password is required"),
			validation.RuneLength(6, 0).Error("Password must be at least 6 characters"),
		),
	)
}

// RegisterUser is the admin's create-user form. Which extra fields matter
// depends on the role.
type RegisterUser struct {
	FullName        string      `form:"full_name" json:"full_name"`
	Email           string      `form:"email" json:"email"`
	Password        string      `form:"password" json:"password"`
	ConfirmPassword string      `form:"confirm_password" json:"confirm_password"`
	Role            models.Role `form:"role" json:"role"`
	Department      string      `form:"department" json:"department"`
	Specialization  string      `form:"specialization" json:"specialization"`
	Year            int         `form:"year" json:"year"`
	Semester        int         `form:"semester" json:"semester"`
}

func (f RegisterUser) Validate() error {
	var confirmRules, yearRules, semesterRules []validation.Rule
	if f.Role == models.RoleAdmin {
		confirmRules = append(confirmRules, validation.By(equals(f.Password, "Password confirmation mismatch")))
	}
	if f.Role == models.RoleStudent {
		yearRules = positive("Year must be a positive number")
		semesterRules = positive("Semester must be a positive number")
	}
	return validation.ValidateStruct(&f,
		validation.Field(&f.FullName, validation.Required.Error("Full name is required")),
		validation.Field(&f.Email,
			validation.Required.Error("Email is required"),
			validation.Match(emailPattern).Error("Invalid email format"),
		),
		validation.Field(&f.Password,
			validation.Required.Error("Password is required"),
			validation.By(strongPassword),
		),
		validation.Field(&f.ConfirmPassword, confirmRules...),
		validation.Field(&f.Role, validation.Required.Error("Role is required"), validation.By(validRole)),
		validation.Field(&f.Year, yearRules...),
		validation.Field(&f.Semester, semesterRules...),
	)
}

// Payload shapes the backend body for the chosen role.
func (f RegisterUser) Payload() models.CreateUserPayload {
	p := models.CreateUserPayload{
		FullName: strings.TrimSpace(f.FullName),
		Email:    strings.TrimSpace(f.Email),
		Password: f.Password,
		Role:     f.Role,
	}
	switch f.Role {
	case models.RoleLecturer:
		p.Department = f.Department
		p.Specialization = f.Specialization
	case models.RoleStudent:
		p.Department = f.Department
		p.Year = f.Year
		p.Semester = f.Semester
	}
	return p
}

// EditUser is the admin's update-user form.
type EditUser struct {
	FullName string      `form:"full_name" json:"full_name"`
	Email    string      `form:"email" json:"email"`
	Role     models.Role `form:"role" json:"role"`
}

func (f EditUser) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.FullName, validation.Required.Error("Full name is required")),
		validation.Field(&f.Email,
			validation.Required.Error("Email is required"),
			validation.Match(emailPattern).Error("Invalid email format"),
		),
		validation.Field(&f.Role, validation.Required.Error("Role is required"), validation.By(validRole)),
	)
}

func (f EditUser) Payload() models.UpdateUserPayload {
	return models.UpdateUserPayload{FullName: strings.TrimSpace(f.FullName), Email: strings.TrimSpace(f.Email), Role: f.Role}
}

// ChangePassword is the profile's password form.
type ChangePassword struct {
	CurrentPassword string `form:"current_password" json:"current_password"`
	NewPassword     string `form:"new_password" json:"new_password"`
	ConfirmPassword string `form:"confirm_password" json:"confirm_password"`
}

func (f ChangePassword) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.CurrentPassword, validation.Required.Error("Current password is required")),
		validation.Field(&f.NewPassword, validation.Required.Error("New password is required")),
		validation.Field(&f.ConfirmPassword,
			validation.Required.Error("Please confirm the new password"),
			validation.By(equals(f.NewPassword, "Passwords do not match")),
		),
	)
}

func (f ChangePassword) Payload() models.PasswordChange {
	return models.PasswordChange{CurrentPassword: f.CurrentPassword, NewPassword: f.NewPassword}
}

// Profile is the display-name form.
type Profile struct {
	FullName string `form:"full_name" json:"full_name"`
}

func (f Profile) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.FullName, validation.Required.Error("Full name is required")),
	)
}

func (f Profile) Payload() models.ProfileUpdate {
	return models.ProfileUpdate{FullName: strings.TrimSpace(f.FullName)}
}

// Enrollment places a student in a department.
type Enrollment struct {
	DepartmentID string `form:"department_id" json:"department_id"`
	StudentID    string `form:"student_id" json:"student_id"`
}

// Normalize trims the student id as typed.
func (f Enrollment) Normalize() Enrollment {
	f.StudentID = strings.TrimSpace(f.StudentID)
	return f
}

func (f Enrollment) Validate() error {
	f = f.Normalize()
	return validation.ValidateStruct(&f,
		validation.Field(&f.DepartmentID, validation.Required.Error("Please select a department")),
		validation.Field(&f.StudentID, validation.Required.Error("Please enter a student ID")),
	)
}

// Course is the admin's course create/edit form.
type Course struct {
	Name       string `form:"course_name" json:"course_name"`
	Code       string `form:"course_code" json:"course_code"`
	Credits    int    `form:"credits" json:"credits"`
	Semester   int    `form:"semester" json:"semester"`
	Department string `form:"department" json:"department"`
	LecturerID string `form:"lecturer_id" json:"lecturer_id"`
}

func CourseFrom(c models.Course) Course {
	return Course{
		Name:       c.Name,
		Code:       c.Code,
		Credits:    c.Credits,
		Semester:   c.Semester,
		Department: c.Department,
		LecturerID: c.LecturerID,
	}
}

func (f Course) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required.Error("Course name is required")),
		validation.Field(&f.Code, validation.Required.Error("Course code is required")),
		validation.Field(&f.Credits, validation.Min(0).Error("Credits cannot be negative")),
		validation.Field(&f.Semester, positive("Semester must be at least 1")...),
	)
}

func (f Course) Payload() models.CoursePayload {
	return models.CoursePayload{
		Name:       strings.TrimSpace(f.Name),
		Code:       strings.TrimSpace(f.Code),
		Credits:    f.Credits,
		Semester:   f.Semester,
		Department: f.Department,
		LecturerID: f.LecturerID,
	}
}

// AssignLecturer picks the lecturer of a course.
type AssignLecturer struct {
	LecturerID string `form:"lecturer_id" json:"lecturer_id"`
}

func (f AssignLecturer) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.LecturerID, validation.Required.Error("Please select a lecturer")),
	)
}

// Department is the admin's department create/edit form.
type Department struct {
	Name        string `form:"name" json:"name"`
	Code        string `form:"code" json:"code"`
	Faculty     string `form:"faculty" json:"faculty"`
	Description string `form:"description" json:"description"`
}

func DepartmentFrom(d models.Department) Department {
	return Department{Name: d.Name, Code: d.Code, Faculty: d.Faculty, Description: d.Description}
}

func (f Department) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required.Error("Department name is required")),
		validation.Field(&f.Code, validation.Required.Error("Department code is required")),
	)
}

func (f Department) Payload() models.DepartmentPayload {
	return models.DepartmentPayload{
		Name:        strings.TrimSpace(f.Name),
		Code:        strings.TrimSpace(f.Code),
		Faculty:     strings.TrimSpace(f.Faculty),
		Description: strings.TrimSpace(f.Description),
	}
}

// strongPassword wants six or more characters with a lower, an upper and a digit.
func strongPassword(value interface{}) error {
	s, _ := value.(string)
	var lower, upper, digit bool
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if len([]rune(s)) < 6 || !lower || !upper || !digit {
		return errors.New("Weak password. Use at least 6 characters, including uppercase, lowercase, and a number.")
	}
	return nil
}

// positive rejects zero as well as negatives; Min alone lets zero through.
func positive(msg string) []validation.Rule {
	return []validation.Rule{validation.Required.Error(msg), validation.Min(1).Error(msg)}
}

func validRole(value interface{}) error {
	r, _ := value.(models.Role)
	if r == "" || r.Valid() {
		return nil
	}
	return errors.New("Unknown role")
}

// equals checks that a field matches want.
func equals(want, msg string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if s != want {
			return errors.New(msg)
		}
		return nil
	}
}
