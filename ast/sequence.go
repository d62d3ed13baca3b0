package ast

import "strings"

// Sequence is juxtaposition `A B C`; every Term must match in order.
// spec.md §3.2 requires at least one Term.
type Sequence struct {
	base
	Terms []*Term
}

func NewSequence(terms ...*Term) *Sequence {
	s := &Sequence{base: base{valid: true}, Terms: terms}
	for _, t := range terms {
		t.SetParent(s)
	}
	return s
}

func (s *Sequence) Children() []Node {
	children := make([]Node, len(s.Terms))
	for i, t := range s.Terms {
		children[i] = t
	}
	return children
}

// IndexOf returns the position of t within Terms, or -1.
func (s *Sequence) IndexOf(t *Term) int {
	for i, term := range s.Terms {
		if term == t {
			return i
		}
	}
	return -1
}

func (s *Sequence) Format(opts Options) string {
	var b strings.Builder
	b.WriteString(formatComments(s, ""))
	for i, t := range s.Terms {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(t.Format(opts))
	}
	return b.String()
}

func (s *Sequence) String() string { return s.Format(DefaultOptions()) }

func (s *Sequence) Dump(indent string) string {
	var b strings.Builder
	b.WriteString(indent + "SEQUENCE\n")
	for _, t := range s.Terms {
		b.WriteString(t.Dump(indent + "  "))
	}
	return b.String()
}
