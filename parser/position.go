package parser

import (
	"sort"
	"unicode/utf8"
)

// positionIndex maps a byte offset into source to a 1-based line/column
// pair, using a cached sorted list of newline offsets and a binary
// search — the same strategy spec.md §4.1 calls for ("the parser
// reports the byte offset translated to line/column via a cached
// newline index").
type positionIndex struct {
	src        string
	newlineAt  []int
}

func newPositionIndex(src string) *positionIndex {
	idx := &positionIndex{src: src}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			idx.newlineAt = append(idx.newlineAt, i)
		}
	}
	return idx
}

func (idx *positionIndex) lineCol(offset int) (line, col int) {
	// line = number of newlines strictly before offset, 1-based.
	n := sort.SearchInts(idx.newlineAt, offset)
	line = n + 1
	lineStart := 0
	if n > 0 {
		lineStart = idx.newlineAt[n-1] + 1
	}
	col = utf8.RuneCountInString(idx.src[lineStart:offset]) + 1
	return line, col
}
