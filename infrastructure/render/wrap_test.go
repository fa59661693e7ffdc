package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// charWidth measures 10 units per rune, which makes expected widths easy to
// reason about in tests.
func charWidth(s string) float64 { return float64(len(s)) * 10 }

func TestWrapLinesRespectsWidth(t *testing.T) {
	lines := WrapLines(charWidth, "the quick brown fox jumps over the lazy dog", 150)
	require.NotEmpty(t, lines)
	for _, line := range lines {
		assert.LessOrEqual(t, charWidth(line), 150.0, "line %q too wide", line)
	}
	assert.Equal(t, "the quick brown fox jumps over the lazy dog", strings.Join(lines, " "))
}

func TestWrapLinesKeepsParagraphBreaks(t *testing.T) {
	lines := WrapLines(charWidth, "first verse\r\nsecond verse", 1000)
	assert.Equal(t, []string{"first verse", "second verse"}, lines)
}

func TestWrapLinesOverWideWordStandsAlone(t *testing.T) {
	lines := WrapLines(charWidth, "a supercalifragilistic b", 100)
	require.Len(t, lines, 3)
	assert.Equal(t, "supercalifragilistic", lines[1])
	assert.Greater(t, charWidth(lines[1]), 100.0)
}

func TestWrapLinesIdempotent(t *testing.T) {
	first := WrapLines(charWidth, "one two three four five six seven eight nine ten", 120)
	second := WrapLines(charWidth, strings.Join(first, "\n"), 120)
	assert.Equal(t, first, second)
}

func TestWrapLinesEmptyInput(t *testing.T) {
	assert.Empty(t, WrapLines(charWidth, "", 100))
	assert.Empty(t, WrapLines(charWidth, "   \n  ", 100))
}
