package parser

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pegformat/pegof/ast"
)

// scanner is the character-level cursor spec.md §4.1 describes: a single
// mutable byte offset into the source, plus the comment text harvested
// but not yet attached to a node.
type scanner struct {
	src             string
	pos             int
	idx             *positionIndex
	pendingComments []string
}

func newScanner(src string) *scanner {
	return &scanner{src: src, idx: newPositionIndex(src)}
}

// state is a save-point: a save captures pos and the length of the
// pending-comment buffer; a rollback restores both.
type state struct {
	pos        int
	commentLen int
}

func (s *scanner) save() state {
	return state{pos: s.pos, commentLen: len(s.pendingComments)}
}

func (s *scanner) rollback(st state) {
	s.pos = st.pos
	s.pendingComments = s.pendingComments[:st.commentLen]
}

func (s *scanner) pos_() ast.Position {
	line, col := s.idx.lineCol(s.pos)
	return ast.Position{Line: line, Col: col}
}

func (s *scanner) isEOF() bool { return s.pos >= len(s.src) }

func (s *scanner) current() (rune, int) {
	if s.isEOF() {
		return 0, 0
	}
	return utf8.DecodeRuneInString(s.src[s.pos:])
}

func (s *scanner) matchAny() bool {
	if s.isEOF() {
		return false
	}
	_, w := s.current()
	s.pos += w
	return true
}

// skipSpace advances over horizontal and vertical whitespace only — not
// comments, which harvestComments (collecting their text) handles.
func (s *scanner) skipSpace() {
	for !s.isEOF() {
		r, w := s.current()
		if !unicode.IsSpace(r) {
			return
		}
		s.pos += w
	}
}

// harvestComments repeatedly skips whitespace and consumes line (`#
// ... \n`) and block (`/* ... */`) comments, appending their trimmed
// text to pendingComments, until neither whitespace nor a comment
// remains at the cursor. Per spec.md §4.1, comments are never
// discarded: they stay in pendingComments until a production claims
// them via takeComments.
func (s *scanner) harvestComments() {
	for {
		before := s.pos
		s.skipSpace()
		if s.matchLineComment() {
			continue
		}
		if s.matchBlockComment() {
			continue
		}
		if s.pos == before {
			return
		}
	}
}

func (s *scanner) matchLineComment() bool {
	if !s.matchLiteral("#") {
		return false
	}
	start := s.pos
	for !s.isEOF() {
		r, w := s.current()
		if r == '\n' {
			break
		}
		s.pos += w
	}
	text := strings.TrimSpace(s.src[start:s.pos])
	s.pendingComments = append(s.pendingComments, text)
	return true
}

func (s *scanner) matchBlockComment() bool {
	if !s.matchLiteral("/*") {
		return false
	}
	start := s.pos
	for {
		if s.isEOF() {
			break
		}
		if strings.HasPrefix(s.src[s.pos:], "*/") {
			text := strings.TrimSpace(s.src[start:s.pos])
			s.pendingComments = append(s.pendingComments, text)
			s.pos += 2
			return true
		}
		_, w := s.current()
		s.pos += w
	}
	text := strings.TrimSpace(s.src[start:s.pos])
	s.pendingComments = append(s.pendingComments, text)
	return true
}

// takeComments drains pendingComments, attaching them to n.
func (s *scanner) takeComments(n ast.Node) {
	if len(s.pendingComments) == 0 {
		return
	}
	n.SetComments(s.pendingComments)
	s.pendingComments = nil
}

// drainComments clears pendingComments and returns what it held, for
// callers that need to claim a comment on behalf of a node that does
// not exist yet (e.g. a Rule, whose header is parsed before its body).
func (s *scanner) drainComments() []string {
	if len(s.pendingComments) == 0 {
		return nil
	}
	c := s.pendingComments
	s.pendingComments = nil
	return c
}

// matchLiteral matches the exact literal str at the cursor, advancing
// past it on success.
func (s *scanner) matchLiteral(str string) bool {
	if strings.HasPrefix(s.src[s.pos:], str) {
		s.pos += len(str)
		return true
	}
	return false
}

// matchRune matches a single literal rune at the cursor.
func (s *scanner) matchRune(r rune) bool {
	cur, w := s.current()
	if w > 0 && cur == r {
		s.pos += w
		return true
	}
	return false
}

var identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*`)

func (s *scanner) matchIdentifier() (string, bool) {
	loc := identifierRe.FindString(s.src[s.pos:])
	if loc == "" {
		return "", false
	}
	s.pos += len(loc)
	return loc, true
}

var numberRe = regexp.MustCompile(`^[0-9]+`)

func (s *scanner) matchNumber() (int, bool) {
	m := numberRe.FindString(s.src[s.pos:])
	if m == "" {
		return 0, false
	}
	s.pos += len(m)
	n := 0
	for _, r := range m {
		n = n*10 + int(r-'0')
	}
	return n, true
}

// matchQuoted consumes a balanced bracketed form delimited by open and
// close, honoring `\`-escapes for the close character, and returns the
// raw (still-escaped) content between the delimiters.
func (s *scanner) matchQuoted(open, close rune) (string, bool) {
	save := s.save()
	if !s.matchRune(open) {
		return "", false
	}
	start := s.pos
	for {
		if s.isEOF() {
			s.rollback(save)
			return "", false
		}
		r, w := s.current()
		if r == '\\' {
			s.pos += w
			if s.isEOF() {
				s.rollback(save)
				return "", false
			}
			s.matchAny()
			continue
		}
		if r == close {
			content := s.src[start:s.pos]
			s.pos += w
			return content, true
		}
		s.pos += w
	}
}

// matchCode consumes a brace-delimited inline source block, tracking
// nested braces and skipping over braces that occur inside a quoted
// string or a comment within the block, and returns the text between
// (not including) the outermost braces.
func (s *scanner) matchCode() (string, bool) {
	save := s.save()
	if !s.matchRune('{') {
		return "", false
	}
	start := s.pos
	depth := 1
	for depth > 0 {
		if s.isEOF() {
			s.rollback(save)
			return "", false
		}
		r, w := s.current()
		switch r {
		case '{':
			depth++
			s.pos += w
		case '}':
			depth--
			s.pos += w
		case '"', '\'':
			s.pos += w
			s.skipCodeQuoted(r)
		case '/':
			if strings.HasPrefix(s.src[s.pos:], "//") {
				for !s.isEOF() {
					rr, ww := s.current()
					if rr == '\n' {
						break
					}
					s.pos += ww
				}
			} else if strings.HasPrefix(s.src[s.pos:], "/*") {
				s.pos += 2
				for !s.isEOF() && !strings.HasPrefix(s.src[s.pos:], "*/") {
					_, ww := s.current()
					s.pos += ww
				}
				if !s.isEOF() {
					s.pos += 2
				}
			} else {
				s.pos += w
			}
		default:
			s.pos += w
		}
	}
	end := s.pos - 1 // exclude the closing brace
	return s.src[start:end], true
}

func (s *scanner) skipCodeQuoted(quote rune) {
	for !s.isEOF() {
		r, w := s.current()
		if r == '\\' {
			s.pos += w
			s.matchAny()
			continue
		}
		s.pos += w
		if r == quote {
			return
		}
	}
}
