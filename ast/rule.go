package ast

import "strings"

// Rule is a named nonterminal definition `Name <- Alternation`.
type Rule struct {
	base
	Name string
	Body *Alternation
}

func NewRule(name string, body *Alternation) *Rule {
	r := &Rule{base: base{valid: true}, Name: name, Body: body}
	body.SetParent(r)
	return r
}

func (r *Rule) isGrammarItem() {}

func (r *Rule) Children() []Node {
	if r.Body == nil {
		return nil
	}
	return []Node{r.Body}
}

func (r *Rule) Format(opts Options) string {
	var b strings.Builder
	b.WriteString(formatComments(r, ""))
	b.WriteString(r.Name)
	b.WriteString(" <-")
	if len(r.Body.Sequences) > opts.WrapLimit {
		b.WriteString("\n    ")
	} else {
		b.WriteString(" ")
	}
	b.WriteString(r.Body.Format(opts))
	b.WriteString("\n\n")
	return b.String()
}

func (r *Rule) String() string { return r.Format(DefaultOptions()) }

func (r *Rule) Dump(indent string) string {
	return indent + "RULE " + r.Name + "\n" + r.Body.Dump(indent+"  ")
}

// IsTerminal reports whether the rule body is a single Term — the
// "terminal-class rule" case inline_rules charges against
// terminal-inline-limit rather than inline-limit.
func (r *Rule) IsTerminal() bool {
	return len(r.Body.Sequences) == 1 && len(r.Body.Sequences[0].Terms) == 1
}

// IsRecursive reports whether any Reference inside the rule's body names
// the rule itself.
func (r *Rule) IsRecursive() bool {
	refs := FindAll[*Reference](r.Body, func(ref *Reference) bool {
		return ref.Name == r.Name
	})
	return len(refs) > 0
}
