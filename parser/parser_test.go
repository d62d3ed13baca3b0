package parser

import (
	"strings"
	"testing"

	"github.com/pegformat/pegof/ast"
	"github.com/pegformat/pegof/pegerr"
)

func TestParseString(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		want    string // expected canonical Format() output
	}{
		{
			caption: "single rule with a plain sequence",
			src:     `a <- "x" "y"`,
			want:    "a <- \"x\" \"y\"\n",
		},
		{
			caption: "alternation of two sequences",
			src:     `a <- "x" / "y"`,
			want:    "a <- \"x\" / \"y\"\n",
		},
		{
			caption: "quantifiers and prefixes",
			src:     `a <- &"x" !"y" "z"* "w"+ "v"?`,
			want:    "a <- &\"x\" !\"y\" \"z\"* \"w\"+ \"v\"?\n",
		},
		{
			caption: "character class with a range",
			src:     `a <- [a-zA-Z_]`,
			want:    "a <- [a-zA-Z_]\n",
		},
		{
			caption: "negated character class with leading dash",
			src:     `a <- [^-0-9]`,
			want:    "a <- [^-0-9]\n",
		},
		{
			caption: "dot wildcard",
			src:     `a <- .`,
			want:    "a <- .\n",
		},
		{
			caption: "backreference",
			src:     `a <- <"x"> \1`,
			want:    "a <- <\"x\"> \\1\n",
		},
		{
			caption: "bound reference",
			src:     `a <- x:b`,
			want:    "a <- x:b\n",
		},
		{
			caption: "group and capture",
			src:     `a <- ("x" / "y") <"z">`,
			want:    "a <- (\"x\" / \"y\") <\"z\">\n",
		},
		{
			caption: "inline action",
			src:     `a <- "x" { push(1) }`,
			want:    "a <- \"x\" { push(1) }\n",
		},
		{
			caption: "expand block",
			src:     `a <- v:b $ { use(v) }`,
			want:    "a <- v:b $ { use(v) }\n",
		},
		{
			caption: "directive with a string value",
			src:     `%package "foo"`,
			want:    "%package \"foo\"\n",
		},
		{
			caption: "directive with a code value",
			src:     "%header { import \"fmt\" }",
			want:    "%header { import \"fmt\" }\n",
		},
		{
			caption: "trailing code block",
			src:     "a <- \"x\"\n%%\nfunc helper() {}\n",
			want:    "a <- \"x\"\n\n%%\nfunc helper() {}\n",
		},
	}
	for _, test := range tests {
		t.Run(test.caption, func(t *testing.T) {
			g, err := ParseString(test.src)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := g.Format(ast.DefaultOptions())
			if got != test.want {
				t.Fatalf("unexpected format output\nwant:\n%s\ngot:\n%s", test.want, got)
			}
		})
	}
}

func TestParseStringRuleShape(t *testing.T) {
	g, err := ParseString(`start <- a b
a <- "x"
b <- [0-9]+
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rules := g.Rules()
	if len(rules) != 3 {
		t.Fatalf("unexpected rule count: want 3, got %d", len(rules))
	}
	if g.StartRule().Name != "start" {
		t.Fatalf("unexpected start rule: want start, got %s", g.StartRule().Name)
	}
	if g.RuleByName("b") == nil {
		t.Fatalf("rule b not found")
	}

	body := rules[0].Body
	if len(body.Sequences) != 1 || len(body.Sequences[0].Terms) != 2 {
		t.Fatalf("unexpected shape for rule start: %+v", body)
	}
	refA, ok := body.Sequences[0].Terms[0].Primary.(*ast.Reference)
	if !ok || refA.Name != "a" {
		t.Fatalf("unexpected first term of rule start: %+v", body.Sequences[0].Terms[0].Primary)
	}

	cc, ok := rules[2].Body.Sequences[0].Terms[0].Primary.(*ast.CharacterClass)
	if !ok {
		t.Fatalf("expected a character class in rule b, got %T", rules[2].Body.Sequences[0].Terms[0].Primary)
	}
	if len(cc.Tokens) != 1 || cc.Tokens[0].Lo != '0' || cc.Tokens[0].Hi != '9' {
		t.Fatalf("unexpected character class tokens: %+v", cc.Tokens)
	}
	if rules[2].Body.Sequences[0].Terms[0].Quantifier != '+' {
		t.Fatalf("expected '+' quantifier on rule b's term")
	}
}

func TestParseStringComments(t *testing.T) {
	g, err := ParseString(`
# a comment before the rule
a <- "x" # trailing on the only sequence
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := g.RuleByName("a")
	if r == nil {
		t.Fatalf("rule a not found")
	}
	if len(r.Comments()) != 1 || r.Comments()[0] != "a comment before the rule" {
		t.Fatalf("unexpected leading comments: %+v", r.Comments())
	}
	if !r.Body.IsPostComment() {
		t.Fatalf("expected the rule body's alternation to carry a post-comment")
	}
	if len(r.Body.Comments()) != 1 || r.Body.Comments()[0] != "trailing on the only sequence" {
		t.Fatalf("unexpected trailing comment: %+v", r.Body.Comments())
	}
}

func TestParseStringSyntaxError(t *testing.T) {
	_, err := ParseString(`a <- "x" /`)
	if err == nil {
		t.Fatalf("expected a syntax error")
	}
	var parseErr *pegerr.ParseError
	if pe, ok := err.(*pegerr.ParseError); ok {
		parseErr = pe
	} else {
		t.Fatalf("expected a *pegerr.ParseError, got %T", err)
	}
	if parseErr.Pos.Line == 0 {
		t.Fatalf("expected a non-zero line in the error position")
	}
}

func TestParseStringRejectsTrailingGarbage(t *testing.T) {
	_, err := ParseString(`a <- "x"` + "\n" + `)`)
	if err == nil {
		t.Fatalf("expected a syntax error for the unexpected ')'")
	}
	if !strings.Contains(err.Error(), "syntax error") {
		t.Fatalf("unexpected error message: %v", err)
	}
}

func TestUnescapeString(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: `hello`, want: "hello"},
		{raw: `a\nb`, want: "a\nb"},
		{raw: `a\tb`, want: "a\tb"},
		{raw: `a\"b`, want: `a"b`},
		{raw: `a\\b`, want: `a\b`},
		{raw: `a\'b`, want: `a'b`},
		{raw: `\u00e9`, want: "\u00e9"},
	}
	for _, test := range tests {
		got := unescapeString(test.raw)
		if got != test.want {
			t.Errorf("unescapeString(%q): want %q, got %q", test.raw, test.want, got)
		}
	}
}

func TestParseClassTokens(t *testing.T) {
	tests := []struct {
		content string
		want    []ast.Range
	}{
		{content: "a", want: []ast.Range{{Lo: 'a', Hi: 'a'}}},
		{content: "a-z", want: []ast.Range{{Lo: 'a', Hi: 'z'}}},
		{content: "a-zA-Z0-9_", want: []ast.Range{
			{Lo: 'a', Hi: 'z'}, {Lo: 'A', Hi: 'Z'}, {Lo: '0', Hi: '9'}, {Lo: '_', Hi: '_'},
		}},
		{content: "-", want: []ast.Range{{Lo: '-', Hi: '-'}}},
	}
	for _, test := range tests {
		got, err := parseClassTokens(test.content)
		if err != nil {
			t.Fatalf("parseClassTokens(%q): unexpected error: %v", test.content, err)
		}
		if len(got) != len(test.want) {
			t.Fatalf("parseClassTokens(%q): want %+v, got %+v", test.content, test.want, got)
		}
		for i := range got {
			if got[i] != test.want[i] {
				t.Fatalf("parseClassTokens(%q): want %+v, got %+v", test.content, test.want, got)
			}
		}
	}
}
