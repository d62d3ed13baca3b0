package optimizer

import "github.com/pegformat/pegof/ast"

// ConcatStrings implements spec.md §4.3.5: within each Sequence, scan
// right to left and merge any run of adjacent plain (no prefix, no
// quantifier) String terms into the leftmost one, dropping the rest.
// The right-to-left scan with a running "previous adjacent string"
// pointer mirrors original_source/optimizer.cc exactly, including
// resetting the chain the moment a non-qualifying Term is seen.
func (o *Optimizer) ConcatStrings() int {
	if o.cfg.NoConcat {
		return 0
	}
	count := 0
	ast.Map(o.g, func(n ast.Node) bool {
		seq, ok := n.(*ast.Sequence)
		if !ok {
			return false
		}
		changed := false
		var prev *ast.String
		prevIndex := -1
		for i := len(seq.Terms) - 1; i >= 0; i-- {
			t := seq.Terms[i]
			if str, ok := t.Primary.(*ast.String); ok && t.IsPlain() {
				if prev != nil {
					str.Content += prev.Content
					seq.Terms = append(seq.Terms[:prevIndex], seq.Terms[prevIndex+1:]...)
					count++
					changed = true
				}
				prev = str
				prevIndex = i
				continue
			}
			prev = nil
		}
		return changed
	})
	if count > 0 {
		o.log.Trace().Int("merged", count).Msg("concat_strings")
	}
	return count
}
