package ast

import "github.com/pegformat/pegof/pegerr"

// CloneAlternation returns a deep, fully independent copy of a, used by
// the optimizer's inline_rules pass to give each inlined reference site
// its own subtree rather than aliasing one rule body across every call
// site that references it. Comments are not carried over: the source
// Rule is deleted once all its reference sites are inlined, so there is
// no single emitted location left for a harvested comment to attach to.
func CloneAlternation(a *Alternation) *Alternation {
	seqs := make([]*Sequence, len(a.Sequences))
	for i, s := range a.Sequences {
		seqs[i] = cloneSequence(s)
	}
	return NewAlternation(seqs...)
}

func cloneSequence(s *Sequence) *Sequence {
	terms := make([]*Term, len(s.Terms))
	for i, t := range s.Terms {
		terms[i] = cloneTerm(t)
	}
	return NewSequence(terms...)
}

func cloneTerm(t *Term) *Term {
	nt := NewTerm(clonePrimary(t.Primary))
	nt.Prefix = t.Prefix
	nt.Quantifier = t.Quantifier
	return nt
}

func clonePrimary(p Primary) Primary {
	switch v := p.(type) {
	case *String:
		return NewString(v.Content)
	case *Reference:
		r := NewReference(v.Name)
		r.Variable = v.Variable
		return r
	case *Dot:
		return NewDot()
	case *Backref:
		return NewBackref(v.Index)
	case *CharacterClass:
		if v.IsDot() {
			return NewDotClass()
		}
		tokens := append([]Range(nil), v.Tokens...)
		return NewCharacterClass(tokens, v.Negation, v.LeadingDash)
	case *Group:
		return NewGroup(CloneAlternation(v.Body))
	case *Capture:
		return NewCapture(CloneAlternation(v.Body))
	case *Action:
		return NewAction(v.Source)
	case *Expand:
		return NewExpand(v.Source)
	default:
		panic(&pegerr.InternalConsistencyError{Message: "clonePrimary: unrecognized Primary kind"})
	}
}
