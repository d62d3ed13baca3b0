package ast

// Primary is the closed, nine-kind tagged union for the atomic match
// expression inside a Term: String, Reference, CharacterClass, Dot,
// Backref, Action, Group, Capture, Expand. It is modeled as a marker
// interface rather than a base-class-with-virtual-dispatch hierarchy
// because the set is closed and the optimizer pattern-matches on it
// constantly (spec.md §9 Design Notes).
type Primary interface {
	Node
	isPrimary()
}

// Term is one unit within a Sequence: an optional & or ! prefix predicate,
// the Primary match expression, and an optional ?, *, or + quantifier.
type Term struct {
	base
	Prefix     byte // 0, '&', or '!'
	Quantifier byte // 0, '?', '*', or '+'
	Primary    Primary
}

func NewTerm(primary Primary) *Term {
	t := &Term{base: base{valid: true}, Primary: primary}
	primary.SetParent(t)
	return t
}

func (t *Term) Children() []Node {
	if t.Primary == nil {
		return nil
	}
	return []Node{t.Primary}
}

// IsPlain reports whether t has no prefix and no quantifier — the
// "adjacent-plain" qualification concat_strings and remove_unnecessary_groups
// both use.
func (t *Term) IsPlain() bool {
	return t.Prefix == 0 && t.Quantifier == 0
}

func (t *Term) Format(opts Options) string {
	s := ""
	if t.Prefix != 0 {
		s += string(t.Prefix)
	}
	s += t.Primary.Format(opts)
	if t.Quantifier != 0 {
		s += string(t.Quantifier)
	}
	return s
}

func (t *Term) String() string { return t.Format(DefaultOptions()) }

func (t *Term) Dump(indent string) string {
	head := indent + "TERM"
	if t.Prefix != 0 {
		head += " prefix=" + string(t.Prefix)
	}
	if t.Quantifier != 0 {
		head += " quant=" + string(t.Quantifier)
	}
	return head + "\n" + t.Primary.Dump(indent+"  ")
}
