// Package parser implements the hand-written recursive-descent PEG
// grammar parser spec.md §4.1 describes: a single mutable cursor over
// the source text, checkpoint/rollback on every nonterminal, and
// comments harvested (never discarded) ahead of whatever production
// next claims them.
//
// Failure is fatal and unrecovered: this is a formatter over
// presumed-valid input, not a language server, so the first
// unclassifiable top-level construct aborts the whole parse with a
// ParseError carrying a translated line/column.
package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/pegformat/pegof/ast"
	"github.com/pegformat/pegof/pegerr"
)

// Parse reads a complete PEG grammar from src and returns its AST, or
// the first ParseError encountered.
func Parse(src io.Reader) (g *ast.Grammar, retErr error) {
	b, err := io.ReadAll(src)
	if err != nil {
		return nil, &pegerr.IoError{Op: "read grammar source", Err: err}
	}
	return ParseString(string(b))
}

// ParseString is Parse over an already-materialized source string.
func ParseString(src string) (g *ast.Grammar, retErr error) {
	p := &parser{s: newScanner(src)}

	defer func() {
		if r := recover(); r != nil {
			err, ok := r.(error)
			if !ok {
				panic(r)
			}
			retErr = err
		}
	}()

	return p.parseGrammar(), nil
}

type parser struct {
	s *scanner
}

func (p *parser) fail(expected, actual, detail string) {
	pos := p.s.pos_()
	panic(&pegerr.ParseError{
		Pos:      pegerr.Position{Line: pos.Line, Col: pos.Col},
		Expected: expected,
		Actual:   actual,
		Detail:   detail,
	})
}

func (p *parser) describeCursor() string {
	if p.s.isEOF() {
		return "end of input"
	}
	r, _ := p.s.current()
	return fmt.Sprintf("%q", r)
}

// parseGrammar implements `Grammar := (Directive | Rule)* Code?`.
func (p *parser) parseGrammar() *ast.Grammar {
	g := ast.NewGrammar()
	for {
		p.s.harvestComments()
		if p.s.isEOF() {
			break
		}
		if p.s.matchLiteral("%%") {
			g.Code = p.parseCode()
			g.Code.SetParent(g)
			p.s.harvestComments()
			break
		}
		if d := p.tryParseDirective(); d != nil {
			d.SetParent(g)
			g.Items = append(g.Items, d)
			continue
		}
		if r := p.tryParseRule(); r != nil {
			r.SetParent(g)
			g.Items = append(g.Items, r)
			continue
		}
		p.fail("a directive, a rule, or '%%'", p.describeCursor(), "")
	}
	if !p.s.isEOF() {
		p.fail("end of input", p.describeCursor(), "trailing content after grammar")
	}
	return g
}

func (p *parser) parseCode() *ast.Code {
	rest := p.s.src[p.s.pos:]
	p.s.pos = len(p.s.src)
	return ast.NewCode(rest)
}

// tryParseDirective implements `Directive := '%' Ident (String | CodeBlock)`.
func (p *parser) tryParseDirective() *ast.Directive {
	save := p.s.save()
	p.s.harvestComments()
	startPos := p.s.pos_()
	if !p.s.matchLiteral("%") {
		p.s.rollback(save)
		return nil
	}
	p.s.skipSpace()
	name, ok := p.s.matchIdentifier()
	if !ok {
		p.s.rollback(save)
		return nil
	}
	p.s.skipSpace()

	d := ast.NewDirective(name)
	p.s.takeComments(d)

	if code, ok := p.s.matchCode(); ok {
		d.IsCode = true
		d.Value = code
	} else if str, ok := p.parseRawString(); ok {
		// Directive.Value holds the literal form re-emitted verbatim by
		// Format, so the quote delimiters stripped by parseRawString are
		// restored here.
		d.Value = `"` + str + `"`
	} else {
		p.s.rollback(save)
		return nil
	}
	d.SetPos(startPos)
	return d
}

// tryParseRule implements `Rule := Ident '<-' Alternation`.
func (p *parser) tryParseRule() *ast.Rule {
	save := p.s.save()
	p.s.harvestComments()
	startPos := p.s.pos_()
	name, ok := p.s.matchIdentifier()
	if !ok {
		p.s.rollback(save)
		return nil
	}
	p.s.skipSpace()
	if !p.s.matchLiteral("<-") {
		p.s.rollback(save)
		return nil
	}
	// The rule's own leading comments were already harvested into
	// pendingComments before its name was matched; claim them now, before
	// parsing the body, so the first Sequence of the Alternation doesn't
	// steal them via its own takeComments call.
	leading := p.s.drainComments()
	alt := p.parseAlternation(true)
	if alt == nil {
		p.fail("an alternation", p.describeCursor(), "rule '"+name+"' has no body")
	}
	r := ast.NewRule(name, alt)
	r.SetPos(startPos)
	if len(leading) > 0 {
		r.SetComments(leading)
	}
	return r
}

// parseAlternation implements `Alternation := Sequence ('/' Sequence)*`.
// topLevel marks whether this Alternation is a Rule body, which is the
// only position where a trailing comment attaches as the Alternation's
// post-comment (spec.md §4.1: "Trailing comments on the last
// alternative of a Rule attach to that Sequence rather than the next
// node" combined with §4.2 comment-attachment rule 3).
func (p *parser) parseAlternation(topLevel bool) *ast.Alternation {
	p.s.skipSpace()
	first := p.parseSequence()
	if first == nil {
		return nil
	}
	sequences := []*ast.Sequence{first}
	for {
		save := p.s.save()
		p.s.skipSpace()
		if !p.s.matchLiteral("/") {
			p.s.rollback(save)
			break
		}
		s := p.parseSequence()
		if s == nil {
			p.fail("a sequence", p.describeCursor(), "'/' must be followed by an alternative")
		}
		sequences = append(sequences, s)
	}
	alt := ast.NewAlternation(sequences...)
	if topLevel {
		trailing := p.peekTrailingComment()
		if trailing != "" {
			alt.SetComments([]string{trailing})
			alt.SetPostComment(true)
		}
	}
	return alt
}

// peekTrailingComment consumes a line comment that follows the end of an
// alternation on the same line, without harvesting it as a leading
// comment for whatever comes next.
func (p *parser) peekTrailingComment() string {
	save := p.s.save()
	// Only horizontal whitespace, not a newline, may separate the
	// alternation from its trailing comment.
	for !p.s.isEOF() {
		r, w := p.s.current()
		if r == ' ' || r == '\t' {
			p.s.pos += w
			continue
		}
		break
	}
	if !p.s.matchLiteral("#") {
		p.s.rollback(save)
		return ""
	}
	start := p.s.pos
	for !p.s.isEOF() {
		r, w := p.s.current()
		if r == '\n' {
			break
		}
		p.s.pos += w
	}
	text := p.s.src[start:p.s.pos]
	return strings.TrimSpace(text)
}

// parseSequence implements `Sequence := Term+`.
func (p *parser) parseSequence() *ast.Sequence {
	save := p.s.save()
	p.s.harvestComments()
	var terms []*ast.Term
	for {
		t := p.parseTerm()
		if t == nil {
			break
		}
		terms = append(terms, t)
	}
	if len(terms) == 0 {
		p.s.rollback(save)
		return nil
	}
	seq := ast.NewSequence(terms...)
	p.s.takeComments(seq)
	return seq
}

// parseTerm implements `Term := Prefix? Primary Quantifier?`.
func (p *parser) parseTerm() *ast.Term {
	save := p.s.save()
	p.s.skipSpace()

	var prefix byte
	if p.s.matchRune('&') {
		prefix = '&'
	} else if p.s.matchRune('!') {
		prefix = '!'
	}
	p.s.skipSpace()

	primary := p.parsePrimary()
	if primary == nil {
		p.s.rollback(save)
		return nil
	}

	var quant byte
	switch {
	case p.s.matchRune('?'):
		quant = '?'
	case p.s.matchRune('*'):
		quant = '*'
	case p.s.matchRune('+'):
		quant = '+'
	}

	t := ast.NewTerm(primary)
	t.Prefix = prefix
	t.Quantifier = quant
	return t
}

// parsePrimary implements the Primary production.
func (p *parser) parsePrimary() ast.Primary {
	if str, ok := p.parseRawString(); ok {
		return ast.NewString(unescapeString(str))
	}
	if cc := p.tryParseCharClass(); cc != nil {
		return cc
	}
	if p.s.matchRune('.') {
		return ast.NewDot()
	}
	if br := p.tryParseBackref(); br != nil {
		return br
	}
	if g := p.tryParseGroup(); g != nil {
		return g
	}
	if c := p.tryParseCapture(); c != nil {
		return c
	}
	if a := p.tryParseAction(); a != nil {
		return a
	}
	if e := p.tryParseExpand(); e != nil {
		return e
	}
	if ref := p.tryParseReference(); ref != nil {
		return ref
	}
	return nil
}

func (p *parser) parseRawString() (string, bool) {
	return p.s.matchQuoted('"', '"')
}

func (p *parser) tryParseCharClass() *ast.CharacterClass {
	save := p.s.save()
	if !p.s.matchRune('[') {
		return nil
	}
	negation := p.s.matchRune('^')
	leadingDash := p.s.matchRune('-')
	start := p.s.pos
	for {
		if p.s.isEOF() {
			p.s.rollback(save)
			return nil
		}
		if p.s.matchRune(']') {
			break
		}
		r, w := p.s.current()
		if r == '\\' {
			p.s.pos += w
			if p.s.isEOF() {
				p.s.rollback(save)
				return nil
			}
			_, w2 := p.s.current()
			p.s.pos += w2
			continue
		}
		p.s.pos += w
	}
	end := p.s.pos - 1
	raw := p.s.src[start:end]
	tokens, err := parseClassTokens(unescapeString(raw))
	if err != nil {
		p.fail("a valid character class", raw, err.Error())
	}
	return ast.NewCharacterClass(tokens, negation, leadingDash)
}

func (p *parser) tryParseBackref() *ast.Backref {
	save := p.s.save()
	if !p.s.matchRune('\\') {
		return nil
	}
	n, ok := p.s.matchNumber()
	if !ok {
		p.s.rollback(save)
		return nil
	}
	return ast.NewBackref(n)
}

func (p *parser) tryParseGroup() *ast.Group {
	save := p.s.save()
	if !p.s.matchRune('(') {
		return nil
	}
	alt := p.parseAlternation(false)
	if alt == nil {
		p.s.rollback(save)
		return nil
	}
	p.s.skipSpace()
	if !p.s.matchRune(')') {
		p.fail("')'", p.describeCursor(), "unclosed group")
	}
	return ast.NewGroup(alt)
}

func (p *parser) tryParseCapture() *ast.Capture {
	save := p.s.save()
	if !p.s.matchRune('<') {
		return nil
	}
	alt := p.parseAlternation(false)
	if alt == nil {
		p.s.rollback(save)
		return nil
	}
	p.s.skipSpace()
	if !p.s.matchRune('>') {
		p.fail("'>'", p.describeCursor(), "unclosed capture")
	}
	return ast.NewCapture(alt)
}

func (p *parser) tryParseAction() *ast.Action {
	save := p.s.save()
	code, ok := p.s.matchCode()
	if !ok {
		p.s.rollback(save)
		return nil
	}
	return ast.NewAction(code)
}

func (p *parser) tryParseExpand() *ast.Expand {
	save := p.s.save()
	if !p.s.matchRune('$') {
		return nil
	}
	p.s.skipSpace()
	code, ok := p.s.matchCode()
	if !ok {
		p.s.rollback(save)
		return nil
	}
	return ast.NewExpand(code)
}

func (p *parser) tryParseReference() *ast.Reference {
	startPos := p.s.pos_()
	save := p.s.save()
	name, ok := p.s.matchIdentifier()
	if !ok {
		p.s.rollback(save)
		return nil
	}
	inner := p.s.save()
	if p.s.matchRune(':') {
		second, ok := p.s.matchIdentifier()
		if ok {
			ref := ast.NewReference(second)
			ref.Variable = name
			ref.SetPos(startPos)
			return ref
		}
		p.s.rollback(inner)
	}
	// A bare identifier immediately followed by '<-' is the next rule's
	// LHS, not a reference inside the current one: Sequence has no
	// explicit terminator, so without this lookahead a rule's body would
	// swallow the following rule's name as one more Term.
	if p.startsNextRule() {
		p.s.rollback(save)
		return nil
	}
	ref := ast.NewReference(name)
	ref.SetPos(startPos)
	return ref
}

func (p *parser) startsNextRule() bool {
	save := p.s.save()
	defer p.s.rollback(save)
	p.s.skipSpace()
	return p.s.matchLiteral("<-")
}
