package parser

import (
	"strconv"
	"strings"

	"github.com/pegformat/pegof/ast"
)

// unescapeString decodes the backslash escapes PEG string and
// character-class literals share: the common C-style single-character
// escapes, \uXXXX, and a bare backslash-quote sequence folding down to
// the quote character itself (matching original_source/ast.cc's
// handling of `\'` inside double-quoted strings — spec.md §3.1 only
// requires the decoded value, not which escapes produce it).
func unescapeString(raw string) string {
	var b strings.Builder
	r := []rune(raw)
	for i := 0; i < len(r); i++ {
		c := r[i]
		if c != '\\' || i == len(r)-1 {
			b.WriteRune(c)
			continue
		}
		i++
		switch r[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'v':
			b.WriteByte('\v')
		case 'f':
			b.WriteByte('\f')
		case '\\':
			b.WriteByte('\\')
		case '"':
			b.WriteByte('"')
		case '\'':
			b.WriteByte('\'')
		case 'u':
			if i+4 < len(r) {
				if n, err := strconv.ParseInt(string(r[i+1:i+5]), 16, 32); err == nil {
					b.WriteRune(rune(n))
					i += 4
					continue
				}
			}
			b.WriteRune(r[i])
		default:
			b.WriteRune(r[i])
		}
	}
	return b.String()
}

// parseClassTokens splits the already-unescaped content of a character
// class into its [lo, hi] token ranges, treating a `-` that is neither
// the first nor the last rune of a token as the range operator — the
// same token grammar original_source/ast/character_class.cc's
// parse_content implements. An inverted range (e.g. `c-a`) is stored
// exactly as written, Lo and Hi unswapped: the parser preserves the
// grammar's raw surface form, and it is the optimizer's
// normalize_character_classes pass (ast.CharacterClass.Normalize) that
// puts each token back into Lo <= Hi order, per spec.md §8 scenario 8.
func parseClassTokens(content string) ([]ast.Range, error) {
	runes := []rune(content)
	var tokens []ast.Range
	for i := 0; i < len(runes); {
		lo := runes[i]
		if i+2 < len(runes) && runes[i+1] == '-' {
			hi := runes[i+2]
			tokens = append(tokens, ast.Range{Lo: lo, Hi: hi})
			i += 3
			continue
		}
		tokens = append(tokens, ast.Range{Lo: lo, Hi: lo})
		i++
	}
	return tokens, nil
}
