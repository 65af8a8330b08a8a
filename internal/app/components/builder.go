// Package components renders the portal's shared HTML building blocks.
package components

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/a-h/templ"
)

// Builder accumulates escaped HTML for a component. The first error from a
// nested component is kept and returned when rendering finishes.
type Builder struct {
	sb  strings.Builder
	ctx context.Context
	err error
}

// Func turns a builder callback into a templ component.
func Func(fn func(b *Builder)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		b := &Builder{ctx: ctx}
		fn(b)
		if b.err != nil {
			return b.err
		}
		_, err := io.WriteString(w, b.sb.String())
		return err
	})
}

// Raw writes trusted markup as-is.
func (b *Builder) Raw(parts ...string) {
	for _, p := range parts {
		b.sb.WriteString(p)
	}
}

// Text writes escaped text.
func (b *Builder) Text(s string) {
	b.sb.WriteString(templ.EscapeString(s))
}

func (b *Builder) Textf(format string, args ...any) {
	b.Text(fmt.Sprintf(format, args...))
}

// Open writes a start tag; attrs are name/value pairs.
func (b *Builder) Open(tag string, attrs ...string) {
	b.sb.WriteString("<" + tag)
	for i := 0; i+1 < len(attrs); i += 2 {
		b.attr(attrs[i], attrs[i+1])
	}
	b.sb.WriteString(">")
}

// OpenWith is Open plus an attribute map, written in name order.
func (b *Builder) OpenWith(tag string, extra templ.Attributes, attrs ...string) {
	b.sb.WriteString("<" + tag)
	for i := 0; i+1 < len(attrs); i += 2 {
		b.attr(attrs[i], attrs[i+1])
	}
	names := make([]string, 0, len(extra))
	for name := range extra {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		switch v := extra[name].(type) {
		case bool:
			if v {
				b.sb.WriteString(" " + name)
			}
		default:
			b.attr(name, fmt.Sprint(v))
		}
	}
	b.sb.WriteString(">")
}

func (b *Builder) Close(tag string) {
	b.sb.WriteString("</" + tag + ">")
}

// Elem writes a complete element with escaped text content.
func (b *Builder) Elem(tag, text string, attrs ...string) {
	b.Open(tag, attrs...)
	b.Text(text)
	b.Close(tag)
}

// Void writes an element without content, e.g. input.
func (b *Builder) Void(tag string, attrs ...string) {
	b.Open(tag, attrs...)
}

// Component renders a nested component in place.
func (b *Builder) Component(c templ.Component) {
	if c == nil || b.err != nil {
		return
	}
	if err := c.Render(b.ctx, &b.sb); err != nil {
		b.err = err
	}
}

func (b *Builder) attr(name, value string) {
	b.sb.WriteString(" " + name + `="` + templ.EscapeString(value) + `"`)
}

// Text renders plain escaped text as a component.
func Text(s string) templ.Component {
	return Func(func(b *Builder) { b.Text(s) })
}

// If picks between two class strings.
func If(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}
