package ast

import "strings"

// GrammarItem is the closed set of things that can appear at the top
// level of a Grammar: Directive and Rule.
type GrammarItem interface {
	Node
	isGrammarItem()
}

// Grammar is the AST root. It holds the grammar's directives and rules
// in declaration order, plus an optional trailing verbatim Code block
// appended to the generated parser.
type Grammar struct {
	base
	Items []GrammarItem
	Code  *Code
}

func NewGrammar() *Grammar {
	return &Grammar{base: base{valid: true}}
}

// Rules returns Items filtered down to just the Rule nodes, preserving
// declaration order.
func (g *Grammar) Rules() []*Rule {
	var rs []*Rule
	for _, it := range g.Items {
		if r, ok := it.(*Rule); ok {
			rs = append(rs, r)
		}
	}
	return rs
}

// Directives returns Items filtered down to just the Directive nodes.
func (g *Grammar) Directives() []*Directive {
	var ds []*Directive
	for _, it := range g.Items {
		if d, ok := it.(*Directive); ok {
			ds = append(ds, d)
		}
	}
	return ds
}

// StartRule returns the first declared Rule, which spec.md §3.2 names as
// the start rule: it is never removed by the optimizer regardless of
// reference count.
func (g *Grammar) StartRule() *Rule {
	rs := g.Rules()
	if len(rs) == 0 {
		return nil
	}
	return rs[0]
}

// RuleByName looks up a rule by its declared name.
func (g *Grammar) RuleByName(name string) *Rule {
	for _, r := range g.Rules() {
		if r.Name == name {
			return r
		}
	}
	return nil
}

// RemoveItem deletes item from Items, used by the optimizer's
// inline_rules pass which iterates rules last-to-first.
func (g *Grammar) RemoveItem(item GrammarItem) {
	for i, it := range g.Items {
		if it == item {
			g.Items = append(g.Items[:i], g.Items[i+1:]...)
			return
		}
	}
}

func (g *Grammar) Children() []Node {
	children := make([]Node, 0, len(g.Items)+1)
	for _, it := range g.Items {
		children = append(children, it)
	}
	if g.Code != nil {
		children = append(children, g.Code)
	}
	return children
}

func (g *Grammar) Format(opts Options) string {
	var b strings.Builder
	for _, d := range g.Directives() {
		b.WriteString(d.Format(opts))
	}
	for _, r := range g.Rules() {
		b.WriteString(r.Format(opts))
	}
	if g.Code != nil {
		b.WriteString(g.Code.Format(opts))
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func (g *Grammar) String() string { return g.Format(DefaultOptions()) }

func (g *Grammar) Dump(indent string) string {
	var b strings.Builder
	b.WriteString(indent + "GRAMMAR\n")
	for _, it := range g.Items {
		b.WriteString(it.Dump(indent + "  "))
	}
	if g.Code != nil {
		b.WriteString(g.Code.Dump(indent + "  "))
	}
	return b.String()
}

// Directive is a `%name value` or `%name { code }` top-level annotation.
type Directive struct {
	base
	Name   string
	Value  string
	IsCode bool
}

// NewDirective builds a valid Directive named name; callers set Value and
// IsCode directly once the parser knows which form it matched.
func NewDirective(name string) *Directive {
	return &Directive{base: base{valid: true}, Name: name}
}

func (d *Directive) isGrammarItem() {}

func (d *Directive) Children() []Node { return nil }

func (d *Directive) Format(opts Options) string {
	var b strings.Builder
	b.WriteString(formatComments(d, ""))
	b.WriteString("%")
	b.WriteString(d.Name)
	if d.IsCode {
		b.WriteString(" ")
		b.WriteString(formatSourceBlock(d.Value, 4))
	} else {
		b.WriteString(" ")
		b.WriteString(d.Value)
	}
	b.WriteString("\n\n")
	return b.String()
}

func (d *Directive) String() string { return d.Format(DefaultOptions()) }

func (d *Directive) Dump(indent string) string {
	return indent + "DIRECTIVE " + d.Name + " " + d.Value + "\n"
}

// Code is the verbatim source block trailing a Grammar, introduced by a
// `%%` marker and copied into the generated parser unmodified.
type Code struct {
	base
	Source string
}

func NewCode(source string) *Code {
	return &Code{base: base{valid: true}, Source: source}
}

func (c *Code) Children() []Node { return nil }

func (c *Code) Format(Options) string {
	return "%%\n" + strings.TrimSpace(c.Source) + "\n"
}

func (c *Code) String() string { return c.Format(DefaultOptions()) }

func (c *Code) Dump(indent string) string {
	return indent + "CODE\n"
}
