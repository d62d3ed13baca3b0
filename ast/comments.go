package ast

import "strings"

// formatComments renders n's attached comment lines as `# text` lines
// indented by indent, one per line, each terminated with a newline. It
// returns "" when n has no comments.
//
// Comment attachment follows spec.md §4.2: comments gathered immediately
// before a Rule attach to that Rule; comments between sequences of an
// Alternation attach to the following Sequence; a comment after the last
// Sequence of a top-level Alternation attaches as a post-comment (see
// IsPostComment) and is emitted without a trailing newline, at the end
// of the alternation's last line. Comments on a Sequence inside a Group
// or Capture are emitted with no indentation of their own; they are not
// indented to match the enclosing construct.
func formatComments(n Node, indent string) string {
	if len(n.Comments()) == 0 {
		return ""
	}
	var b strings.Builder
	for _, c := range n.Comments() {
		b.WriteString(indent)
		b.WriteString("# ")
		b.WriteString(c)
		b.WriteString("\n")
	}
	return b.String()
}

// formatPostComment renders n's comments the way a post-comment on the
// last Sequence of a top-level Alternation is emitted: inline, with no
// trailing newline of its own.
func formatPostComment(n Node, indent string) string {
	if len(n.Comments()) == 0 {
		return ""
	}
	var parts []string
	for _, c := range n.Comments() {
		parts = append(parts, "# "+c)
	}
	return " " + strings.Join(parts, " ")
}
