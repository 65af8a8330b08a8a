package components

import (
	"github.com/a-h/templ"

	"github.com/FACorreiaa/go-lmsportal/internal/app/models"
)

const ToastsID = "toasts"

// Toasts renders the notification region. With oob set it replaces the
// region on an HTMX partial response.
func Toasts(toasts []models.Toast, oob bool) templ.Component {
	return Func(func(b *Builder) {
		attrs := []string{"id", ToastsID, "class", "fixed right-4 top-4 z-50 flex flex-col gap-2", "aria-live", "polite"}
		if oob {
			attrs = append(attrs, "hx-swap-oob", "true")
		}
		b.Open("div", attrs...)
		for _, t := range toasts {
			b.Open("div", "class", "toast rounded-md px-4 py-3 text-sm shadow "+toastClass(t.Kind), "role", "status", "data-kind", t.Kind)
			b.Text(t.Message)
			b.Close("div")
		}
		b.Close("div")
	})
}

func toastClass(kind string) string {
	switch kind {
	case "success":
		return "bg-green-600 text-white"
	case "error":
		return "bg-red-600 text-white"
	}
	return "bg-gray-800 text-white"
}
