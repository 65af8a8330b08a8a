package components

import (
	"github.com/a-h/templ"
)

// ModalID is the container the entity forms and confirmations render into.
const ModalID = "modal"

// ModalSlot is the empty container placed once per page.
func ModalSlot() templ.Component {
	return Func(func(b *Builder) {
		b.Open("div", "id", ModalID)
		b.Close("div")
	})
}

// Modal wraps content in an overlay; closing it empties the slot.
func Modal(title string, content templ.Component) templ.Component {
	return Func(func(b *Builder) {
		b.Open("div", "class", "modal fixed inset-0 z-40 flex items-center justify-center bg-black/40", "role", "dialog", "aria-modal", "true")
		b.Open("div", "class", "w-full max-w-lg rounded-lg bg-white p-6 shadow-lg")
		b.Open("div", "class", "mb-4 flex items-center justify-between")
		b.Elem("h2", title, "class", "text-lg font-semibold")
		b.Elem("button", "Close", "type", "button", "class", "modal-close text-sm text-gray-500", "onclick", "document.getElementById('"+ModalID+"').innerHTML=''")
		b.Close("div")
		b.Component(content)
		b.Close("div")
		b.Close("div")
	})
}

type ConfirmProps struct {
	Title   string
	Message string
	// Action receives the confirming POST.
	Action string
	// Target is replaced with the response, usually the table body.
	Target string
}

// ConfirmDialog asks before a destructive action. Only its form posts the
// confirm field; anything else posting to Action is treated as unconfirmed.
func ConfirmDialog(p ConfirmProps) templ.Component {
	return Modal(p.Title, Func(func(b *Builder) {
		b.Elem("p", p.Message, "class", "mb-6 text-sm text-gray-600")
		b.Open("form", "class", "confirm-form flex justify-end gap-2", "hx-post", p.Action, "hx-target", p.Target, "hx-swap", "innerHTML")
		b.Void("input", "type", "hidden", "name", "confirm", "value", "yes")
		b.Component(Button(ButtonProps{
			Variant:    VariantOutline,
			Label:      "Cancel",
			Attributes: templ.Attributes{"onclick": "document.getElementById('" + ModalID + "').innerHTML=''"},
		}))
		b.Component(Button(ButtonProps{Type: TypeSubmit, Variant: VariantDestructive, Label: "Delete"}))
		b.Close("form")
	}))
}

// CloseModal empties the modal slot out of band.
func CloseModal() templ.Component {
	return Func(func(b *Builder) {
		b.Open("div", "id", ModalID, "hx-swap-oob", "true")
		b.Close("div")
	})
}
