package components

import (
	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"
)

type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
	VariantOutline     Variant = "outline"
	VariantGhost       Variant = "ghost"
	VariantLink        Variant = "link"
)

type Size string

const (
	SizeDefault Size = "default"
	SizeSm      Size = "sm"
	SizeLg      Size = "lg"
)

type Type string

const (
	TypeButton Type = "button"
	TypeSubmit Type = "submit"
	TypeReset  Type = "reset"
)

type ButtonProps struct {
	ID         string
	Class      string
	Attributes templ.Attributes
	Variant    Variant
	Size       Size
	Href       string
	Type       Type
	Label      string
	Disabled   bool
}

// Button renders a <button>, or an <a> when Href is set.
func Button(props ...ButtonProps) templ.Component {
	var p ButtonProps
	if len(props) > 0 {
		p = props[0]
	}
	if p.Type == "" {
		p.Type = TypeButton
	}
	class := twmerge.Merge(
		"inline-flex items-center justify-center gap-2 rounded-md text-sm font-medium transition-colors focus-visible:outline-none focus-visible:ring-2 disabled:pointer-events-none disabled:opacity-50",
		p.variantClasses(),
		p.sizeClasses(),
		p.Class,
	)

	return Func(func(b *Builder) {
		attrs := []string{"class", class}
		if p.ID != "" {
			attrs = append(attrs, "id", p.ID)
		}
		if p.Href != "" && !p.Disabled {
			b.OpenWith("a", p.Attributes, append(attrs, "href", p.Href)...)
			b.Text(p.Label)
			b.Close("a")
			return
		}
		attrs = append(attrs, "type", string(p.Type))
		extra := templ.Attributes{}
		for k, v := range p.Attributes {
			extra[k] = v
		}
		if p.Disabled {
			extra["disabled"] = true
		}
		b.OpenWith("button", extra, attrs...)
		b.Text(p.Label)
		b.Close("button")
	})
}

func (p ButtonProps) variantClasses() string {
	switch p.Variant {
	case VariantDestructive:
		return "bg-destructive text-white hover:bg-red-700"
	case VariantOutline:
		return "border border-gray-300 bg-white hover:bg-gray-50"
	case VariantGhost:
		return "hover:bg-gray-100"
	case VariantLink:
		return "text-indigo-600 underline-offset-4 hover:underline"
	}
	return "bg-indigo-600 text-white hover:bg-indigo-700"
}

func (p ButtonProps) sizeClasses() string {
	switch p.Size {
	case SizeSm:
		return "h-8 px-3 text-xs"
	case SizeLg:
		return "h-10 px-8"
	}
	return "h-9 px-4 py-2"
}
