package ast

// Group is a non-capturing `(...)` wrapping an Alternation.
type Group struct {
	base
	Body *Alternation
}

func NewGroup(body *Alternation) *Group {
	g := &Group{base: base{valid: true}, Body: body}
	body.SetParent(g)
	return g
}

func (g *Group) isPrimary() {}

func (g *Group) Children() []Node { return []Node{g.Body} }

// HasSingleSequence reports whether the group's body has exactly one
// alternative, the precondition remove_unnecessary_groups requires
// before it will touch a Group at all.
func (g *Group) HasSingleSequence() bool { return len(g.Body.Sequences) == 1 }

func (g *Group) Format(opts Options) string {
	return "(" + g.Body.Format(opts) + ")"
}

func (g *Group) String() string { return g.Format(DefaultOptions()) }

func (g *Group) Dump(indent string) string {
	return indent + "GROUP\n" + g.Body.Dump(indent+"  ")
}

// Capture is `<...>`, a Group that additionally exposes the matched
// text to semantic actions.
type Capture struct {
	base
	Body *Alternation
}

func NewCapture(body *Alternation) *Capture {
	c := &Capture{base: base{valid: true}, Body: body}
	body.SetParent(c)
	return c
}

func (c *Capture) isPrimary() {}

func (c *Capture) Children() []Node { return []Node{c.Body} }

func (c *Capture) Format(opts Options) string {
	return "<" + c.Body.Format(opts) + ">"
}

func (c *Capture) String() string { return c.Format(DefaultOptions()) }

func (c *Capture) Dump(indent string) string {
	return indent + "CAPTURE\n" + c.Body.Dump(indent+"  ")
}
