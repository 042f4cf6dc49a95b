package source

import (
	"errors"
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/lucasmrdt/epitech-styling-code/internal/types"
)

// ErrOffsetOutOfRange is returned when an offset or position does not fall
// inside the indexed text.
var ErrOffsetOutOfRange = errors.New("offset out of range")

// Position is a zero-based line and rune column.
type Position struct {
	Line int
	Col  int
}

// Index maps byte offsets of a text to line/column positions and back.
type Index struct {
	text       string
	lineStarts []int
}

// NewIndex records the start offset of every line of text.
func NewIndex(text string) *Index {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Index{text: text, lineStarts: starts}
}

// Position returns the line/column of a byte offset. The offset equal to the
// text length is valid and designates the end of the text.
func (x *Index) Position(offset int) (Position, error) {
	if len(x.text) == 0 || offset < 0 || offset > len(x.text) {
		return Position{}, fmt.Errorf("%w: %d (text length %d)", ErrOffsetOutOfRange, offset, len(x.text))
	}
	// number of line starts <= offset, minus the implicit start of line 0
	line := sort.SearchInts(x.lineStarts, offset+1) - 1
	start := x.lineStarts[line]
	return Position{Line: line, Col: utf8.RuneCountInString(x.text[start:offset])}, nil
}

// Offset returns the byte offset of a line/column position.
func (x *Index) Offset(line, col int) (int, error) {
	if line < 0 || line >= len(x.lineStarts) || col < 0 {
		return 0, fmt.Errorf("%w: line %d col %d", ErrOffsetOutOfRange, line, col)
	}
	end := len(x.text)
	if line+1 < len(x.lineStarts) {
		end = x.lineStarts[line+1] - 1
	}
	offset := x.lineStarts[line]
	for n := 0; n < col; n++ {
		if offset >= end {
			return 0, fmt.Errorf("%w: line %d col %d", ErrOffsetOutOfRange, line, col)
		}
		_, size := utf8.DecodeRuneInString(x.text[offset:end])
		offset += size
	}
	return offset, nil
}

// Span converts the byte range [start, end) into a Span.
func (x *Index) Span(start, end int) (types.Span, error) {
	from, err := x.Position(start)
	if err != nil {
		return types.Span{}, err
	}
	to, err := x.Position(end)
	if err != nil {
		return types.Span{}, err
	}
	return types.Span{
		StartLine: from.Line,
		StartCol:  from.Col,
		EndLine:   to.Line,
		EndCol:    to.Col,
	}, nil
}

// LineCount returns the number of lines of the indexed text.
func (x *Index) LineCount() int {
	return len(x.lineStarts)
}
