package optimizer

import "github.com/pegformat/pegof/ast"

// NormalizeCharacterClasses sorts and folds the token list of every
// CharacterClass (spec.md §4.3.1), rebuilding Content from the result.
// It never restructures the tree, only a node's own fields, so the walk
// callback always returns false.
func (o *Optimizer) NormalizeCharacterClasses() int {
	if o.cfg.NoCharClass {
		return 0
	}
	count := 0
	ast.Map(o.g, func(n ast.Node) bool {
		cc, ok := n.(*ast.CharacterClass)
		if !ok || cc.IsDot() {
			return false
		}
		if cc.Normalize() {
			count++
		}
		return false
	})
	if count > 0 {
		o.log.Trace().Int("changed", count).Msg("normalize_character_classes")
	}
	return count
}

// SingleCharCharacterClasses demotes a CharacterClass holding exactly one
// single-character token into a String on its enclosing Term, toggling
// that Term's negation prefix when the class was negated (spec.md
// §4.3.4). A `&`-prefixed Term is left untouched: the toggle has no
// sound interpretation against an existing `&`, so this pass
// conservatively skips it, per DESIGN.md's Open Question resolution.
func (o *Optimizer) SingleCharCharacterClasses() int {
	if o.cfg.NoSingleChar {
		return 0
	}
	count := 0
	ast.Map(o.g, func(n ast.Node) bool {
		cc, ok := n.(*ast.CharacterClass)
		if !ok {
			return false
		}
		ch, ok := cc.SingleCharValue()
		if !ok {
			return false
		}
		term, ok := ast.GetParent[*ast.Term](cc)
		if !ok {
			return false
		}
		if term.Prefix == '&' {
			return false
		}
		if cc.Negation {
			if term.Prefix == '!' {
				term.Prefix = 0
			} else {
				term.Prefix = '!'
			}
		}
		str := ast.NewString(string(ch))
		term.Primary = str
		str.SetParent(term)
		count++
		return true
	})
	if count > 0 {
		o.log.Trace().Int("changed", count).Msg("single_char_character_classes")
	}
	return count
}
