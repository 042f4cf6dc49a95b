package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucasmrdt/epitech-styling-code/internal/types"
)

func TestIndex_Position(t *testing.T) {
	index := NewIndex("ab\ncd\n")

	tests := []struct {
		name   string
		offset int
		want   Position
	}{
		{name: "start of text", offset: 0, want: Position{Line: 0, Col: 0}},
		{name: "on the newline", offset: 2, want: Position{Line: 0, Col: 2}},
		{name: "after the newline", offset: 3, want: Position{Line: 1, Col: 0}},
		{name: "middle of second line", offset: 4, want: Position{Line: 1, Col: 1}},
		{name: "end of text", offset: 6, want: Position{Line: 2, Col: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := index.Position(tt.offset)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIndex_PositionCountsRunes(t *testing.T) {
	index := NewIndex("é = 1;\nx")

	pos, err := index.Position(len("é "))
	require.NoError(t, err)
	assert.Equal(t, Position{Line: 0, Col: 2}, pos)

	pos, err = index.Position(len("é = 1;\n"))
	require.NoError(t, err)
	assert.Equal(t, Position{Line: 1, Col: 0}, pos)
}

func TestIndex_PositionOutOfRange(t *testing.T) {
	_, err := NewIndex("abc").Position(4)
	assert.ErrorIs(t, err, ErrOffsetOutOfRange)

	_, err = NewIndex("abc").Position(-1)
	assert.ErrorIs(t, err, ErrOffsetOutOfRange)

	_, err = NewIndex("").Position(0)
	assert.ErrorIs(t, err, ErrOffsetOutOfRange)
}

func TestIndex_Offset(t *testing.T) {
	index := NewIndex("ab\nçd\n")

	off, err := index.Offset(1, 1)
	require.NoError(t, err)
	assert.Equal(t, len("ab\nç"), off)

	off, err = index.Offset(0, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, off, "end of line is addressable")

	_, err = index.Offset(0, 3)
	assert.ErrorIs(t, err, ErrOffsetOutOfRange)

	_, err = index.Offset(3, 0)
	assert.ErrorIs(t, err, ErrOffsetOutOfRange)
}

func TestIndex_OffsetRoundTrip(t *testing.T) {
	text := "int\tmain(void)\n{\n    return (0);\n}\n"
	index := NewIndex(text)

	for offset := 0; offset <= len(text); offset++ {
		pos, err := index.Position(offset)
		require.NoError(t, err)
		back, err := index.Offset(pos.Line, pos.Col)
		require.NoError(t, err)
		assert.Equal(t, offset, back)
	}
}

func TestIndex_Span(t *testing.T) {
	index := NewIndex("ab\ncd\nef")

	span, err := index.Span(1, 7)
	require.NoError(t, err)
	assert.Equal(t, types.Span{StartLine: 0, StartCol: 1, EndLine: 2, EndCol: 1}, span)
	assert.Equal(t, 3, index.LineCount())
}
