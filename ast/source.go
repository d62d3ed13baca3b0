package ast

import "strings"

// formatSourceBlock renders an inline PEG code block (the payload of a
// Directive, Action, or Expand) as canonical PEG syntax, without any
// leading separator — callers that need a gap before the opening brace
// (Directive after its name, Expand after `$`) add their own single
// space; Term's enclosing Sequence already supplies the gap before an
// Action.
//
// Per spec.md §4.2: a single-line block emits as `{ body }`. A
// multi-line block has its minimum leading-whitespace stripped from
// every non-blank line, then every line re-prefixed with baseIndent
// spaces (4 inside a Directive, 8 inside an Action/Expand) — matching
// original_source/ast.cc's reindent(). The closing brace is flush-left
// for a Directive and indented four spaces otherwise, mirroring
// original_source/format_source's `is_directive ? "" : "    "`.
func formatSourceBlock(source string, baseIndent int) string {
	trimmed := strings.TrimSpace(source)
	if !strings.Contains(trimmed, "\n") {
		return "{ " + trimmed + " }"
	}

	lines := strings.Split(source, "\n")
	minIndent := -1
	var kept []string
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := leadingWhitespaceCount(line)
		if minIndent == -1 || indent < minIndent {
			minIndent = indent
		}
		kept = append(kept, line)
	}
	if minIndent < 0 {
		minIndent = 0
	}

	pad := strings.Repeat(" ", baseIndent)
	var b strings.Builder
	b.WriteString("{\n")
	for _, line := range kept {
		stripped := line
		if len(line) >= minIndent {
			stripped = line[minIndent:]
		}
		b.WriteString(pad)
		b.WriteString(strings.TrimRight(stripped, " \t\r"))
		b.WriteString("\n")
	}
	if baseIndent == 4 {
		b.WriteString("}")
	} else {
		b.WriteString("    }")
	}
	return b.String()
}

func leadingWhitespaceCount(line string) int {
	n := 0
	for n < len(line) && (line[n] == ' ' || line[n] == '\t') {
		n++
	}
	return n
}
