package optimizer

import "github.com/pegformat/pegof/ast"

// InlineRules implements spec.md §4.3.2. It iterates rules from last to
// first (so an earlier rule's elimination never shifts the index of one
// still to be examined), skipping the start rule, any rule whose body
// has more than one Sequence, and any rule that references itself. A
// rule is inlined only when its reference-site count is nonzero and at
// most inline-limit (or terminal-inline-limit, when the rule's body is a
// single Term). Every reference site's Term then gets its own deep
// copy of the rule's body wrapped in a non-capturing Group — the Group
// keeps `remove_unnecessary_groups` responsible for stripping redundant
// parens rather than duplicating that logic here — and the rule itself
// is then deleted.
func (o *Optimizer) InlineRules() int {
	if o.cfg.NoInline {
		return 0
	}
	count := 0
	rules := o.g.Rules()
	start := o.g.StartRule()

	for i := len(rules) - 1; i >= 0; i-- {
		rule := rules[i]
		if rule == start {
			continue
		}
		if len(rule.Body.Sequences) > 1 {
			continue
		}
		if rule.IsRecursive() {
			continue
		}

		refs := ast.FindAll[*ast.Reference](o.g, func(ref *ast.Reference) bool {
			return ref.Name == rule.Name
		})

		limit := o.cfg.InlineLimit
		if rule.IsTerminal() {
			limit = o.cfg.TerminalInlineLimit
		}
		if len(refs) == 0 || len(refs) > limit {
			continue
		}

		for _, ref := range refs {
			dest, ok := ast.GetParent[*ast.Term](ref)
			if !ok {
				continue
			}
			group := ast.NewGroup(ast.CloneAlternation(rule.Body))
			dest.Primary = group
			group.SetParent(dest)
		}

		o.g.RemoveItem(rule)
		count++
	}

	if count > 0 {
		o.log.Trace().Int("inlined", count).Msg("inline_rules")
	}
	return count
}
