package optimizer_test

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/pegformat/pegof/ast"
	"github.com/pegformat/pegof/config"
	"github.com/pegformat/pegof/optimizer"
	"github.com/pegformat/pegof/parser"
)

func mustParse(t *testing.T, src string) *ast.Grammar {
	t.Helper()
	g, err := parser.ParseString(src)
	if err != nil {
		t.Fatalf("ParseString(%q): %v", src, err)
	}
	return g
}

func format(g *ast.Grammar) string {
	return g.Format(ast.DefaultOptions())
}

// TestOptimizeScenarios covers spec.md §8's concrete-scenarios table.
func TestOptimizeScenarios(t *testing.T) {
	tests := []struct {
		name string
		src  string
		cfg  func(config.Snapshot) config.Snapshot
		want string
	}{
		{
			name: "concat adjacent strings",
			src:  "A <- \"a\" \"b\" \"c\"\n",
			want: "A <- \"abc\"\n",
		},
		{
			name: "touching singleton tokens fold into a range",
			src:  "A <- [abc]\n",
			want: "A <- [a-c]\n",
		},
		{
			name: "single-char class demotes to string",
			src:  "A <- [a]\n",
			want: "A <- \"a\"\n",
		},
		{
			name: "negated single-char class demotes and toggles prefix",
			src:  "A <- [^x]\n",
			want: "A <- !\"x\"\n",
		},
		{
			name: "terminal rule inlines at both reference sites",
			src:  "A <- B B\nB <- \"x\"\n",
			cfg: func(c config.Snapshot) config.Snapshot {
				c.InlineLimit = 2
				c.NoConcat = true
				return c
			},
			want: "A <- \"x\" \"x\"\n",
		},
		{
			name: "plain term group splices into enclosing sequence",
			src:  "A <- (B C) D\n",
			want: "A <- B C D\n",
		},
		{
			name: "quantified multi-term group is left alone",
			src:  "A <- (B C)* D\n",
			want: "A <- (B C)* D\n",
		},
		{
			name: "inverted range normalizes to canonical order",
			src:  "A <- [c-a]\n",
			want: "A <- [a-c]\n",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			g := mustParse(t, test.src)
			cfg := config.Defaults()
			if test.cfg != nil {
				cfg = test.cfg(cfg)
			}
			optimizer.New(g, cfg, zerolog.Nop()).Optimize()
			got := format(g)
			if got != test.want {
				t.Fatalf("optimize(%q) = %q, want %q", test.src, got, test.want)
			}
		})
	}
}

// TestInlineLimitZeroDisablesInlining covers the boundary case from
// spec.md §8: inline-limit=0 must block inlining regardless of
// reference count.
func TestInlineLimitZeroDisablesInlining(t *testing.T) {
	g := mustParse(t, "A <- B\nB <- \"x\"\n")
	cfg := config.Defaults()
	cfg.InlineLimit = 0
	cfg.TerminalInlineLimit = 0
	optimizer.New(g, cfg, zerolog.Nop()).Optimize()
	if g.RuleByName("B") == nil {
		t.Fatalf("rule B was inlined despite inline-limit=0: %s", format(g))
	}
}

// TestSelfReferentialSingleUseRuleNotInlined covers the boundary case
// from spec.md §8: a rule that references itself is never inlined, even
// when it also has exactly one external reference site.
func TestSelfReferentialSingleUseRuleNotInlined(t *testing.T) {
	g := mustParse(t, "A <- B\nB <- \"x\" B?\n")
	cfg := config.Defaults()
	cfg.InlineLimit = 2
	optimizer.New(g, cfg, zerolog.Nop()).Optimize()
	if g.RuleByName("B") == nil {
		t.Fatalf("self-referential rule B was inlined: %s", format(g))
	}
}

// TestWrapLimitOne forces multi-line emission for any rule with two or
// more alternatives, the boundary case spec.md §8 names.
func TestWrapLimitOne(t *testing.T) {
	g := mustParse(t, "A <- \"a\" / \"b\"\n")
	optimizer.New(g, config.Defaults(), zerolog.Nop()).Optimize()
	got := g.Format(ast.Options{WrapLimit: 1})
	want := "A <-\n    \"a\"\n    / \"b\"\n"
	if got != want {
		t.Fatalf("wrap-limit=1 format = %q, want %q", got, want)
	}
}

// TestDisablingAllPassesLeavesAstUnchanged covers spec.md §8's
// round-trip law: disabling every pass yields output identical to the
// un-optimized parse.
// remove_unnecessary_groups has no disabling flag of its own (spec.md
// §6's configuration table), so this source deliberately contains no
// group at all: otherwise group removal — which always runs — would be
// a fifth change source this law can't speak to.
func TestDisablingAllPassesLeavesAstUnchanged(t *testing.T) {
	src := "B <- \"x\"\nA <- \"a\" \"b\" B\n"
	before := mustParse(t, src)
	wantUnchanged := format(before)

	g := mustParse(t, src)
	cfg := config.Snapshot{
		WrapLimit:           4,
		NoConcat:            true,
		NoCharClass:         true,
		NoSingleChar:        true,
		NoInline:            true,
		InlineLimit:         1,
		TerminalInlineLimit: 3,
	}
	changed := optimizer.New(g, cfg, zerolog.Nop()).Optimize()
	if changed != 0 {
		t.Fatalf("expected zero changes with every pass disabled, got %d", changed)
	}
	if got := format(g); got != wantUnchanged {
		t.Fatalf("disabled-pass output = %q, want unchanged %q", got, wantUnchanged)
	}
}

// TestOptimizeIdempotent covers spec.md §8's idempotence law:
// optimize(optimize(g)) == optimize(g).
func TestOptimizeIdempotent(t *testing.T) {
	src := "B <- \"x\"\nA <- \"a\" \"b\" (B \"c\") / [a] / [d-b]\n"
	g1 := mustParse(t, src)
	optimizer.New(g1, config.Defaults(), zerolog.Nop()).Optimize()
	once := format(g1)

	g2 := mustParse(t, once)
	optimizer.New(g2, config.Defaults(), zerolog.Nop()).Optimize()
	twice := format(g2)

	if once != twice {
		t.Fatalf("optimize is not idempotent: once=%q twice=%q", once, twice)
	}
}

// TestOptimizeInvariants checks the structural invariants spec.md §8
// requires after optimization: parent-pointer consistency, non-empty
// Alternation/Sequence, sorted non-overlapping non-touching
// CharacterClass tokens, start-rule presence.
func TestOptimizeInvariants(t *testing.T) {
	src := "Start <- A+ / \"lit\" \"eral\"\nA <- \"a\" (B)\nB <- [a-m] [n-z] [^0-9]\n"
	g := mustParse(t, src)
	optimizer.New(g, config.Defaults(), zerolog.Nop()).Optimize()

	if g.StartRule() == nil || g.StartRule().Name != "Start" {
		t.Fatalf("start rule missing or renamed after optimization")
	}

	checkParents(t, g, nil)

	alts := ast.FindAll[*ast.Alternation](g, func(*ast.Alternation) bool { return true })
	for _, a := range alts {
		if len(a.Sequences) == 0 {
			t.Fatalf("Alternation with zero Sequences survived optimization")
		}
	}
	seqs := ast.FindAll[*ast.Sequence](g, func(*ast.Sequence) bool { return true })
	for _, s := range seqs {
		if len(s.Terms) == 0 {
			t.Fatalf("Sequence with zero Terms survived optimization")
		}
	}

	classes := ast.FindAll[*ast.CharacterClass](g, func(*ast.CharacterClass) bool { return true })
	for _, cc := range classes {
		if cc.IsDot() {
			continue
		}
		for i, tok := range cc.Tokens {
			if tok.Lo > tok.Hi {
				t.Fatalf("token %d of %s is not in Lo<=Hi order", i, cc.Format(ast.DefaultOptions()))
			}
			if i > 0 && cc.Tokens[i-1].Hi+1 >= tok.Lo {
				t.Fatalf("tokens %d and %d of %s overlap or touch", i-1, i, cc.Format(ast.DefaultOptions()))
			}
		}
	}

	refs := ast.FindAll[*ast.Reference](g, func(*ast.Reference) bool { return true })
	for _, ref := range refs {
		if g.RuleByName(ref.Name) == nil {
			t.Fatalf("Reference %q targets a non-existent rule after optimization", ref.Name)
		}
	}
}

func checkParents(t *testing.T, n ast.Node, expectedParent ast.Node) {
	t.Helper()
	if n.Parent() != expectedParent {
		t.Fatalf("node %T has parent %v, want %v", n, n.Parent(), expectedParent)
	}
	for _, c := range n.Children() {
		checkParents(t, c, n)
	}
}
