package components

import (
	"github.com/a-h/templ"

	"github.com/FACorreiaa/go-lmsportal/internal/app/models"
)

type FieldProps struct {
	Label       string
	Name        string
	Type        string
	Value       string
	Placeholder string
	Error       string
	Required    bool
	Disabled    bool
}

// Field renders a labelled input with its inline error.
func Field(p FieldProps) templ.Component {
	if p.Type == "" {
		p.Type = "text"
	}
	return Func(func(b *Builder) {
		id := "field-" + p.Name
		b.Open("div", "class", "space-y-1")
		b.Elem("label", p.Label, "for", id, "class", "block text-sm font-medium text-gray-700")
		attrs := []string{
			"id", id,
			"name", p.Name,
			"type", p.Type,
			"class", "block w-full rounded-md border px-3 py-2 text-sm " + If(p.Error != "", "border-red-500", "border-gray-300"),
		}
		if p.Type != "password" {
			attrs = append(attrs, "value", p.Value)
		}
		if p.Placeholder != "" {
			attrs = append(attrs, "placeholder", p.Placeholder)
		}
		if p.Required {
			attrs = append(attrs, "required", "")
		}
		if p.Disabled {
			attrs = append(attrs, "disabled", "")
		}
		b.Void("input", attrs...)
		if p.Error != "" {
			b.Elem("p", p.Error, "class", "field-error text-xs text-red-600", "data-field", p.Name)
		}
		b.Close("div")
	})
}

type Option struct {
	Value string
	Label string
}

type SelectProps struct {
	Label    string
	Name     string
	Options  []Option
	Selected string
	Empty    string
	Error    string
	Attrs    templ.Attributes
}

// Select renders a labelled dropdown. Empty, when set, adds a blank first option.
func Select(p SelectProps) templ.Component {
	return Func(func(b *Builder) {
		id := "field-" + p.Name
		b.Open("div", "class", "space-y-1")
		b.Elem("label", p.Label, "for", id, "class", "block text-sm font-medium text-gray-700")
		b.OpenWith("select", p.Attrs, "id", id, "name", p.Name, "class", "block w-full rounded-md border border-gray-300 px-3 py-2 text-sm")
		if p.Empty != "" {
			b.Elem("option", p.Empty, "value", "")
		}
		for _, o := range p.Options {
			if o.Value == p.Selected {
				b.Elem("option", o.Label, "value", o.Value, "selected", "")
				continue
			}
			b.Elem("option", o.Label, "value", o.Value)
		}
		b.Close("select")
		if p.Error != "" {
			b.Elem("p", p.Error, "class", "field-error text-xs text-red-600", "data-field", p.Name)
		}
		b.Close("div")
	})
}

// FormError renders a form-level error banner; nothing when msg is empty.
func FormError(msg string) templ.Component {
	return Func(func(b *Builder) {
		if msg == "" {
			return
		}
		b.Elem("div", msg, "class", "form-error rounded-md bg-red-50 px-3 py-2 text-sm text-red-700", "role", "alert")
	})
}

// RoleOptions lists the portal roles for a select.
func RoleOptions() []Option {
	out := make([]Option, 0, len(models.Roles))
	for _, r := range models.Roles {
		out = append(out, Option{Value: string(r), Label: RoleLabel(r)})
	}
	return out
}
