package components

import (
	"strconv"

	"github.com/a-h/templ"
)

// SearchProps wires a filter box to a rows endpoint.
type SearchProps struct {
	URL         string
	Target      string
	Placeholder string
	Value       string
}

// Search filters as the user types; the rows endpoint answers from the
// last loaded collection.
func Search(p SearchProps) templ.Component {
	return Func(func(b *Builder) {
		b.Void("input",
			"type", "search",
			"name", "q",
			"value", p.Value,
			"placeholder", p.Placeholder,
			"class", "w-full max-w-sm rounded-md border border-gray-300 px-3 py-2 text-sm",
			"hx-get", p.URL,
			"hx-trigger", "input changed, search",
			"hx-target", p.Target,
			"hx-swap", "innerHTML",
			"hx-indicator", p.Target+"-loading",
		)
	})
}

// Table renders a table shell; body renders the <tr> rows into tbodyID.
func Table(headers []string, tbodyID string, body templ.Component) templ.Component {
	return Func(func(b *Builder) {
		b.Open("div", "class", "overflow-x-auto rounded-lg border bg-white")
		b.Open("table", "class", "min-w-full divide-y divide-gray-200 text-sm")
		b.Open("thead", "class", "bg-gray-50")
		b.Open("tr")
		for _, h := range headers {
			b.Elem("th", h, "class", "px-4 py-2 text-left font-medium text-gray-600")
		}
		b.Close("tr")
		b.Close("thead")
		b.Open("tbody", "id", tbodyID, "class", "divide-y divide-gray-100")
		b.Component(body)
		b.Close("tbody")
		b.Close("table")
		b.Close("div")
	})
}

// EmptyRow fills a table body that has nothing to show.
func EmptyRow(cols int, msg string) templ.Component {
	return Func(func(b *Builder) {
		b.Open("tr", "class", "empty-row")
		b.Elem("td", msg, "colspan", strconv.Itoa(cols), "class", "px-4 py-6 text-center text-gray-500")
		b.Close("tr")
	})
}

// Cell writes one text cell.
func Cell(b *Builder, text string) {
	b.Elem("td", text, "class", "px-4 py-2")
}

// LoadingIndicator is shown by htmx while a request with hx-indicator runs.
func LoadingIndicator(id string) templ.Component {
	return Func(func(b *Builder) {
		b.Elem("div", "Loading...", "id", id, "class", "htmx-indicator text-sm text-gray-500", "role", "status")
	})
}

// ErrorState is the failed-load indicator.
func ErrorState(msg string) templ.Component {
	return Func(func(b *Builder) {
		b.Open("div", "class", "load-error rounded-md border border-red-200 bg-red-50 p-4 text-sm text-red-700", "role", "alert")
		b.Text(msg)
		b.Close("div")
	})
}

// PageHeader renders a title with an optional action on the right.
func PageHeader(title, subtitle string, action templ.Component) templ.Component {
	return Func(func(b *Builder) {
		b.Open("div", "class", "mb-6 flex items-center justify-between gap-4")
		b.Open("div")
		b.Elem("h1", title, "class", "text-2xl font-semibold")
		if subtitle != "" {
			b.Elem("p", subtitle, "class", "text-sm text-gray-500")
		}
		b.Close("div")
		b.Component(action)
		b.Close("div")
	})
}

// StatCard is a single dashboard figure.
func StatCard(label string, value int) templ.Component {
	return Func(func(b *Builder) {
		b.Open("div", "class", "stat-card rounded-lg border bg-white p-4", "data-label", label)
		b.Elem("p", label, "class", "text-sm text-gray-500")
		b.Elem("p", strconv.Itoa(value), "class", "stat-value text-2xl font-semibold")
		b.Close("div")
	})
}

// RowsOOB replaces a table body's rows out of band after a write.
func RowsOOB(tbodyID string, rows templ.Component) templ.Component {
	return Func(func(b *Builder) {
		b.Open("template")
		b.Open("tbody", "id", tbodyID, "hx-swap-oob", "innerHTML")
		b.Component(rows)
		b.Close("tbody")
		b.Close("template")
	})
}

// RowActions renders the edit and delete buttons of a row. Both open in
// the modal slot.
func RowActions(editURL, deleteURL string, extra ...templ.Component) templ.Component {
	return Func(func(b *Builder) {
		b.Open("td", "class", "px-4 py-2 text-right whitespace-nowrap")
		for _, c := range extra {
			b.Component(c)
		}
		b.Component(Button(ButtonProps{
			Variant: VariantGhost, Size: SizeSm, Label: "Edit",
			Attributes: templ.Attributes{"hx-get": editURL, "hx-target": "#" + ModalID},
		}))
		b.Component(Button(ButtonProps{
			Variant: VariantGhost, Size: SizeSm, Label: "Delete", Class: "text-red-600",
			Attributes: templ.Attributes{"hx-get": deleteURL, "hx-target": "#" + ModalID},
		}))
		b.Close("td")
	})
}

// ListPageProps lays out an entity list page.
type ListPageProps struct {
	Title       string
	Subtitle    string
	AddLabel    string
	AddURL      string
	SearchURL   string
	Placeholder string
	Query       string
	Headers     []string
	TbodyID     string
	Failed      string
	Rows        templ.Component
}

// ListPage is the shared shell of the admin list pages: header, filter box,
// loading and error indicators, table and modal slot.
func ListPage(p ListPageProps) templ.Component {
	return Func(func(b *Builder) {
		var add templ.Component
		if p.AddURL != "" {
			add = Button(ButtonProps{
				Label:      p.AddLabel,
				Attributes: templ.Attributes{"hx-get": p.AddURL, "hx-target": "#" + ModalID},
			})
		}
		b.Component(PageHeader(p.Title, p.Subtitle, add))
		b.Open("div", "class", "mb-4 flex items-center gap-4")
		b.Component(Search(SearchProps{URL: p.SearchURL, Target: "#" + p.TbodyID, Placeholder: p.Placeholder, Value: p.Query}))
		b.Component(LoadingIndicator(p.TbodyID + "-loading"))
		b.Close("div")
		if p.Failed != "" {
			b.Component(ErrorState(p.Failed))
		}
		b.Component(Table(p.Headers, p.TbodyID, p.Rows))
		b.Component(ModalSlot())
	})
}
