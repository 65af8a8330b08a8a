package auth

import (
	"github.com/a-h/templ"

	"github.com/FACorreiaa/go-lmsportal/internal/app/components"
	"github.com/FACorreiaa/go-lmsportal/internal/app/forms"
)

const formID = "login-form"

// LoginView is the sign-in card. It swaps itself on HTMX submissions.
func LoginView(f forms.Login, errs forms.Errors, formErr string) templ.Component {
	return components.Func(func(b *components.Builder) {
		b.Open("section", "id", formID, "class", "mx-auto mt-12 max-w-md rounded-lg border bg-white p-8 shadow-sm")
		b.Elem("h1", "Sign in", "class", "mb-1 text-2xl font-semibold")
		b.Elem("p", "Use your university account.", "class", "mb-6 text-sm text-gray-500")
		b.Component(components.FormError(formErr))
		b.Open("form",
			"method", "post",
			"action", "/login",
			"hx-post", "/login",
			"hx-target", "#"+formID,
			"hx-swap", "outerHTML",
			"class", "mt-4 space-y-4",
			"novalidate", "",
		)
		b.Component(components.Field(components.FieldProps{
			Label: "Email", Name: "email", Type: "email", Value: f.Email,
			Placeholder: "you@university.edu", Error: errs.Get("email"), Required: true,
		}))
		b.Component(components.Field(components.FieldProps{
			Label: "Password", Name: "password", Type: "password",
			Error: errs.Get("password"), Required: true,
		}))
		b.Component(components.Button(components.ButtonProps{Type: components.TypeSubmit, Label: "Sign in", Class: "w-full"}))
		b.Close("form")
		b.Close("section")
	})
}
