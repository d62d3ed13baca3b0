package ast_test

import (
	"strings"
	"testing"

	"github.com/pegformat/pegof/ast"
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

func TestCheckInvariantsAcceptsWellFormedGrammar(t *testing.T) {
	g := mustParse(t, "Start <- A \"x\"\nA <- [a-z]\n")
	if err := ast.CheckInvariants(g); err != nil {
		t.Fatalf("CheckInvariants rejected a well-formed grammar: %v", err)
	}
}

func TestCheckInvariantsCatchesUnresolvedReference(t *testing.T) {
	g := mustParse(t, "Start <- Helpr\n")
	err := ast.CheckInvariants(g)
	if err == nil {
		t.Fatalf("CheckInvariants accepted a grammar referencing an undefined rule")
	}
	if !strings.Contains(err.Error(), "Helpr") {
		t.Fatalf("error %v does not mention the offending reference", err)
	}
}

func TestCheckInvariantsSuggestsNearestRuleName(t *testing.T) {
	g := mustParse(t, "Start <- Helper\nHelpr <- \"x\"\n")
	err := ast.CheckInvariants(g)
	if err == nil {
		t.Fatalf("CheckInvariants accepted a grammar referencing an undefined rule")
	}
	if !strings.Contains(err.Error(), `"Helpr"`) {
		t.Fatalf("error %v does not suggest the nearest defined rule name", err)
	}
}

func TestCheckInvariantsDetectsMissingStartRule(t *testing.T) {
	g := ast.NewGrammar()
	if err := ast.CheckInvariants(g); err == nil {
		t.Fatalf("CheckInvariants accepted a grammar with no rules at all")
	}
}
