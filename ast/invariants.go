package ast

import (
	"fmt"

	"github.com/agnivade/levenshtein"

	"github.com/pegformat/pegof/pegerr"
)

// CheckInvariants verifies the five structural properties spec.md §8
// requires to hold after every optimizer pass and at the end of the
// pipeline. A violation of invariant 1-4 is always a bug in this tool's
// own tree surgery, never bad input, so it is reported as an
// InternalConsistencyError. Invariant 5 (an unresolved Reference) can
// legitimately come from a malformed grammar, so it is reported as a
// ParseError instead, with a Levenshtein-nearest rule name offered as a
// hint the way a typo-tolerant compiler would.
func CheckInvariants(g *Grammar) error {
	if err := checkParents(g, nil); err != nil {
		return err
	}
	if err := checkAlternationsAndSequences(g); err != nil {
		return err
	}
	if err := checkCharacterClasses(g); err != nil {
		return err
	}
	if g.StartRule() == nil {
		return &pegerr.InternalConsistencyError{Message: "grammar has no start rule"}
	}
	if err := checkReferences(g); err != nil {
		return err
	}
	return nil
}

func checkParents(n Node, parent Node) error {
	if n.Parent() != parent {
		return &pegerr.InternalConsistencyError{Message: fmt.Sprintf("node %T has the wrong parent link", n)}
	}
	for _, c := range n.Children() {
		if err := checkParents(c, n); err != nil {
			return err
		}
	}
	return nil
}

func checkAlternationsAndSequences(g *Grammar) error {
	var failure error
	Map(g, func(n Node) bool {
		switch v := n.(type) {
		case *Alternation:
			if len(v.Sequences) == 0 {
				failure = &pegerr.InternalConsistencyError{Message: "Alternation has zero Sequences"}
			}
		case *Sequence:
			if len(v.Terms) == 0 {
				failure = &pegerr.InternalConsistencyError{Message: "Sequence has zero Terms"}
			}
		}
		return false
	})
	return failure
}

func checkCharacterClasses(g *Grammar) error {
	var failure error
	Map(g, func(n Node) bool {
		cc, ok := n.(*CharacterClass)
		if !ok || cc.IsDot() {
			return false
		}
		for i := 1; i < len(cc.Tokens); i++ {
			prev, cur := cc.Tokens[i-1], cc.Tokens[i]
			if prev.Lo > prev.Hi || cur.Lo <= prev.Hi+1 {
				failure = &pegerr.InternalConsistencyError{
					Message: fmt.Sprintf("CharacterClass tokens are not sorted, non-overlapping, and non-touching: %v", cc.Tokens),
				}
				return false
			}
		}
		return false
	})
	return failure
}

func checkReferences(g *Grammar) error {
	names := make([]string, 0, len(g.Rules()))
	for _, r := range g.Rules() {
		names = append(names, r.Name)
	}

	var failure error
	Map(g, func(n Node) bool {
		if failure != nil {
			return false
		}
		ref, ok := n.(*Reference)
		if !ok {
			return false
		}
		if g.RuleByName(ref.Name) != nil {
			return false
		}
		hint := nearestName(ref.Name, names)
		detail := fmt.Sprintf("rule %q is never defined", ref.Name)
		if hint != "" {
			detail += fmt.Sprintf(", did you mean %q?", hint)
		}
		failure = &pegerr.ParseError{
			Pos:      pegerr.Position{Line: ref.Pos().Line, Col: ref.Pos().Col},
			Expected: "a defined rule name",
			Actual:   ref.Name,
			Detail:   detail,
		}
		return false
	})
	return failure
}

// nearestName returns the candidate closest to name by edit distance,
// or "" if candidates is empty or nothing is reasonably close.
func nearestName(name string, candidates []string) string {
	best := ""
	bestDist := -1
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(name, c)
		if bestDist == -1 || d < bestDist {
			best, bestDist = c, d
		}
	}
	if bestDist < 0 || bestDist > len(name)/2+2 {
		return ""
	}
	return best
}
