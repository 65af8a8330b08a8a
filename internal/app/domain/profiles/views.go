package profiles

import (
	"github.com/a-h/templ"

	"github.com/FACorreiaa/go-lmsportal/internal/app/components"
	"github.com/FACorreiaa/go-lmsportal/internal/app/forms"
	"github.com/FACorreiaa/go-lmsportal/internal/app/models"
)

const (
	infoID     = "profile-info"
	passwordID = "profile-password"
)

func ProfilePage(s *models.Session, f forms.Profile, errs forms.Errors, formErr string) templ.Component {
	return components.Func(func(b *components.Builder) {
		b.Component(components.PageHeader("Profile Settings", "Manage your profile and security preferences", nil))
		b.Open("div", "class", "grid gap-8 xl:grid-cols-2")
		b.Component(InfoSection(s, f, errs, formErr))
		b.Component(PasswordSection(forms.ChangePassword{}, nil, ""))
		b.Close("div")
	})
}

// InfoSection is the name form; it replaces itself on submit.
func InfoSection(s *models.Session, f forms.Profile, errs forms.Errors, formErr string) templ.Component {
	return components.Func(func(b *components.Builder) {
		b.Open("section", "id", infoID, "class", "h-fit rounded-lg border bg-white p-8")
		b.Elem("h2", "Profile Information", "class", "mb-6 text-xl font-semibold")
		b.Component(components.FormError(formErr))
		b.Open("form",
			"hx-post", "/profile",
			"hx-target", "#"+infoID,
			"hx-swap", "outerHTML",
			"class", "space-y-4",
			"novalidate", "",
		)
		email := ""
		if s != nil {
			email = s.Email
		}
		b.Component(components.Field(components.FieldProps{Label: "Email", Name: "email", Type: "email", Value: email, Disabled: true}))
		b.Elem("p", "Email cannot be changed", "class", "text-xs text-gray-400")
		b.Component(components.Field(components.FieldProps{Label: "Full name", Name: "full_name", Value: f.FullName, Error: errs.Get("full_name"), Required: true}))
		b.Component(components.Button(components.ButtonProps{Type: components.TypeSubmit, Label: "Save Changes"}))
		b.Close("form")
		b.Close("section")
	})
}

// PasswordSection is the change-password form.
func PasswordSection(f forms.ChangePassword, errs forms.Errors, formErr string) templ.Component {
	return components.Func(func(b *components.Builder) {
		b.Open("section", "id", passwordID, "class", "h-fit rounded-lg border bg-white p-8")
		b.Elem("h2", "Change Password", "class", "mb-6 text-xl font-semibold")
		b.Component(components.FormError(formErr))
		b.Open("form",
			"hx-post", "/profile/password",
			"hx-target", "#"+passwordID,
			"hx-swap", "outerHTML",
			"class", "space-y-4",
			"novalidate", "",
		)
		b.Component(components.Field(components.FieldProps{Label: "Current password", Name: "current_password", Type: "password", Error: errs.Get("current_password"), Required: true}))
		b.Component(components.Field(components.FieldProps{Label: "New password", Name: "new_password", Type: "password", Error: errs.Get("new_password"), Required: true}))
		b.Component(components.Field(components.FieldProps{Label: "Confirm new password", Name: "confirm_password", Type: "password", Error: errs.Get("confirm_password"), Required: true}))
		b.Component(components.Button(components.ButtonProps{Type: components.TypeSubmit, Label: "Update Password"}))
		b.Close("form")
		b.Close("section")
	})
}
