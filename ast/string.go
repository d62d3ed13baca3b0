package ast

import (
	"strconv"
	"strings"
)

// String is a quoted literal match. Content holds the literal's decoded
// value — the parser already resolves `\"`, `\\`, and `\'` into their
// plain characters (spec.md §3.1: "literal content (unescaped)") — and
// Format re-escapes only what double-quoted emission requires.
type String struct {
	base
	Content string
}

func NewString(content string) *String {
	return &String{base: base{valid: true}, Content: content}
}

func (s *String) isPrimary() {}

func (s *String) Children() []Node { return nil }

func (s *String) Format(Options) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s.Content {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func (s *String) String() string { return s.Format(DefaultOptions()) }

func (s *String) Dump(indent string) string {
	return indent + "STRING " + s.Format(DefaultOptions()) + "\n"
}

// Reference is a rule reference, `name` or the bound form `var:name`.
type Reference struct {
	base
	Name     string
	Variable string // bound variable name, or "" when unbound
}

func NewReference(name string) *Reference {
	return &Reference{base: base{valid: true}, Name: name}
}

func (r *Reference) isPrimary() {}

func (r *Reference) Children() []Node { return nil }

func (r *Reference) Format(Options) string {
	if r.Variable != "" {
		return r.Variable + ":" + r.Name
	}
	return r.Name
}

func (r *Reference) String() string { return r.Format(DefaultOptions()) }

func (r *Reference) Dump(indent string) string {
	return indent + "REFERENCE " + r.Format(DefaultOptions()) + "\n"
}

// Dot is the wildcard `.`, matching any single character.
type Dot struct {
	base
}

func NewDot() *Dot { return &Dot{base: base{valid: true}} }

func (d *Dot) isPrimary() {}

func (d *Dot) Children() []Node { return nil }

func (d *Dot) Format(Options) string { return "." }

func (d *Dot) String() string { return "." }

func (d *Dot) Dump(indent string) string { return indent + "DOT\n" }

// Backref is a numeric backreference `\N` to the Nth Capture in the
// enclosing rule.
type Backref struct {
	base
	Index int
}

func NewBackref(index int) *Backref {
	return &Backref{base: base{valid: true}, Index: index}
}

func (b *Backref) isPrimary() {}

func (b *Backref) Children() []Node { return nil }

func (b *Backref) Format(Options) string {
	return "\\" + strconv.Itoa(b.Index)
}

func (b *Backref) String() string { return b.Format(DefaultOptions()) }

func (b *Backref) Dump(indent string) string {
	return indent + "BACKREF " + strconv.Itoa(b.Index) + "\n"
}
