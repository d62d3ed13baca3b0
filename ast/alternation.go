package ast

import "strings"

// Alternation is an ordered choice `A / B / C`; the first Sequence that
// matches wins. spec.md §3.2 requires it to always hold at least one
// Sequence.
type Alternation struct {
	base
	Sequences []*Sequence
}

func NewAlternation(sequences ...*Sequence) *Alternation {
	a := &Alternation{base: base{valid: true}, Sequences: sequences}
	for _, s := range sequences {
		s.SetParent(a)
	}
	return a
}

func (a *Alternation) Children() []Node {
	children := make([]Node, len(a.Sequences))
	for i, s := range a.Sequences {
		children[i] = s
	}
	return children
}

// isWrapped reports whether this Alternation should emit in multi-line
// form: only the top-level Alternation of a Rule ever wraps, matching
// the original's `parent->is<Rule>()` guard — a nested Alternation
// inside a Group or Capture always stays inline regardless of its
// sequence count.
func (a *Alternation) isWrapped(opts Options) bool {
	if a.Parent() == nil {
		return false
	}
	_, isRuleBody := a.Parent().(*Rule)
	return isRuleBody && len(a.Sequences) > opts.WrapLimit
}

func (a *Alternation) Format(opts Options) string {
	delim := " / "
	if a.isWrapped(opts) {
		delim = "\n    / "
	}
	var b strings.Builder
	for i, s := range a.Sequences {
		if i > 0 {
			b.WriteString(delim)
		}
		b.WriteString(s.Format(opts))
	}
	if a.IsPostComment() {
		b.WriteString(formatPostComment(a, ""))
	}
	return b.String()
}

func (a *Alternation) String() string { return a.Format(DefaultOptions()) }

func (a *Alternation) Dump(indent string) string {
	var b strings.Builder
	b.WriteString(indent + "ALTERNATION\n")
	for _, s := range a.Sequences {
		b.WriteString(s.Dump(indent + "  "))
	}
	return b.String()
}
