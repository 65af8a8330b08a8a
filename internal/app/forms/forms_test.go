package forms

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-lmsportal/internal/app/models"
)

func TestLogin_Validate(t *testing.T) {
	tests := []struct {
		name   string
		form   Login
		fields []string
	}{
		{"valid", Login{Email: "a@b.com", Password: "secret"}, nil},
		{"short password", Login{Email: "a@b.com", Password: "men"}, []string{"password"}},
		{"bad email", Login{Email: "a@b", Password: "secret1"}, []string{"email"}},
		{"spaces in email", Login{Email: "a b@c.com", Password: "secret1"}, []string{"email"}},
		{"empty", Login{}, []string{"email", "password"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := FieldErrors(tt.form.Validate())
			if tt.fields == nil {
				assert.Empty(t, errs)
				return
			}
			for _, f := range tt.fields {
				assert.NotEmpty(t, errs.Get(f), "expected an error for %s", f)
			}
			assert.Len(t, errs, len(tt.fields))
		})
	}
	assert.Equal(t, "Password must be at least 6 characters",
		FieldErrors(Login{Email: "a@b.com", Password: "men"}.Validate()).Get("password"))
}

func TestRegisterUser_Validate(t *testing.T) {
	base := RegisterUser{FullName: "Ana", Email: "ana@uni.edu", Password: "Passw0rd", Role: models.RoleLecturer}
	require.NoError(t, base.Validate())

	weak := base
	weak.Password = "password"
	assert.Contains(t, FieldErrors(weak.Validate()).Get("password"), "Weak password")

	admin := base
	admin.Role = models.RoleAdmin
	admin.ConfirmPassword = "Passw0rd!"
	assert.Equal(t, "Password confirmation mismatch", FieldErrors(admin.Validate()).Get("confirm_password"))
	admin.ConfirmPassword = admin.Password
	assert.NoError(t, admin.Validate())

	student := base
	student.Role = models.RoleStudent
	errs := FieldErrors(student.Validate())
	assert.NotEmpty(t, errs.Get("year"))
	assert.NotEmpty(t, errs.Get("semester"))
	student.Year, student.Semester = 2, 1
	assert.NoError(t, student.Validate())

	bogus := base
	bogus.Role = "janitor"
	assert.Equal(t, "Unknown role", FieldErrors(bogus.Validate()).Get("role"))
}

func TestRegisterUser_PayloadByRole(t *testing.T) {
	f := RegisterUser{
		FullName: " Ana ", Email: "ana@uni.edu", Password: "Passw0rd",
		Department: "d1", Specialization: "AI", Year: 2, Semester: 1,
	}

	f.Role = models.RoleAdmin
	p := f.Payload()
	assert.Equal(t, "Ana", p.FullName)
	assert.Empty(t, p.Department)
	assert.Zero(t, p.Year)

	f.Role = models.RoleLecturer
	p = f.Payload()
	assert.Equal(t, "d1", p.Department)
	assert.Equal(t, "AI", p.Specialization)
	assert.Zero(t, p.Year)

	f.Role = models.RoleStudent
	p = f.Payload()
	assert.Empty(t, p.Specialization)
	assert.Equal(t, 2, p.Year)
	assert.Equal(t, 1, p.Semester)
}

func TestChangePassword_Validate(t *testing.T) {
	f := ChangePassword{CurrentPassword: "old", NewPassword: "NewPass1", ConfirmPassword: "NewPass2"}
	assert.Equal(t, "Passwords do not match", FieldErrors(f.Validate()).Get("confirm_password"))

	f.ConfirmPassword = f.NewPassword
	assert.NoError(t, f.Validate())

	assert.Len(t, FieldErrors(ChangePassword{}.Validate()), 3)
}

func TestEnrollment_Validate(t *testing.T) {
	errs := FieldErrors(Enrollment{DepartmentID: "d1", StudentID: "   "}.Validate())
	assert.Equal(t, "Please enter a student ID", errs.Get("student_id"))

	errs = FieldErrors(Enrollment{StudentID: "s1"}.Validate())
	assert.Equal(t, "Please select a department", errs.Get("department_id"))

	f := Enrollment{DepartmentID: "d1", StudentID: "  s1 "}
	assert.NoError(t, f.Validate())
	assert.Equal(t, "s1", f.Normalize().StudentID)
}

func TestCourseAndDepartment_Validate(t *testing.T) {
	errs := FieldErrors(Course{Credits: -1}.Validate())
	assert.NotEmpty(t, errs.Get("course_name"))
	assert.NotEmpty(t, errs.Get("course_code"))
	assert.NotEmpty(t, errs.Get("credits"))
	assert.NotEmpty(t, errs.Get("semester"))

	assert.NoError(t, Course{Name: "Physics", Code: "PHY101", Semester: 1}.Validate())

	errs = FieldErrors(Department{Faculty: "Science"}.Validate())
	assert.Len(t, errs, 2)
	assert.NoError(t, Department{Name: "Physics", Code: "PHY"}.Validate())
}

func TestFieldErrors_NonValidationError(t *testing.T) {
	errs := FieldErrors(errors.New("boom"))
	assert.Equal(t, "boom", errs.Get("form"))
	assert.Nil(t, FieldErrors(nil))
}
