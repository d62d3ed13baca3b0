package optimizer

import "github.com/pegformat/pegof/ast"

// RemoveUnnecessaryGroups implements spec.md §4.3.3: for every Term whose
// Primary is a non-capturing Group with exactly one Sequence, either
// splice the Group's Terms into the enclosing Sequence (when this Term
// carries no prefix and no quantifier) or, when the Group's single
// Sequence is itself a single Term, replace this Term's Primary outright
// while keeping its own prefix/quantifier. `(A B)* C` is left alone: a
// quantifier over a multi-term group has no single-Term equivalent.
// Captures, and Groups with more than one Sequence, are never touched.
func (o *Optimizer) RemoveUnnecessaryGroups() int {
	count := 0
	ast.Map(o.g, func(n ast.Node) bool {
		term, ok := n.(*ast.Term)
		if !ok {
			return false
		}
		group, ok := term.Primary.(*ast.Group)
		if !ok || !group.HasSingleSequence() {
			return false
		}
		inner := group.Body.Sequences[0]

		if term.IsPlain() {
			seq, ok := ast.GetParent[*ast.Sequence](term)
			if !ok {
				return false
			}
			idx := seq.IndexOf(term)
			if idx < 0 {
				return false
			}
			spliced := make([]*ast.Term, 0, len(seq.Terms)-1+len(inner.Terms))
			spliced = append(spliced, seq.Terms[:idx]...)
			spliced = append(spliced, inner.Terms...)
			spliced = append(spliced, seq.Terms[idx+1:]...)
			for _, t := range inner.Terms {
				t.SetParent(seq)
			}
			seq.Terms = spliced
			count++
			return true
		}

		if len(inner.Terms) == 1 {
			term.Primary = inner.Terms[0].Primary
			term.Primary.SetParent(term)
			count++
			return true
		}

		return false
	})
	if count > 0 {
		o.log.Trace().Int("changed", count).Msg("remove_unnecessary_groups")
	}
	return count
}
