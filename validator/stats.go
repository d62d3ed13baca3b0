package validator

import (
	"strings"

	"github.com/pegformat/pegof/ast"
)

// Stats is the byte/line/rule/term count spec.md §4.4 computes over a
// grammar source (and, with Rules and Terms left at zero, over
// generated C source).
type Stats struct {
	Bytes int
	Lines int
	Rules int
	Terms int
}

// ComputeStats measures text, the rendering of g produced by Format,
// alongside g's own rule and term counts.
func ComputeStats(g *ast.Grammar, text string) Stats {
	return Stats{
		Bytes: len(text),
		Lines: strings.Count(text, "\n") + 1,
		Rules: len(g.Rules()),
		Terms: len(ast.FindAll[*ast.Term](g, func(*ast.Term) bool { return true })),
	}
}

// computeTextStats measures a plain text source that has no grammar
// structure to report rule/term counts for, such as PackCC's generated
// C output.
func computeTextStats(text string) Stats {
	return Stats{Bytes: len(text), Lines: strings.Count(text, "\n") + 1}
}
