package knowledge

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitText_ShortTextIsOneChunk(t *testing.T) {
	assert.Equal(t, []string{"Pool opens at 7am."}, SplitText("  Pool opens at 7am.  ", 700, 100))
	assert.Nil(t, SplitText("   ", 700, 100))
}

func TestSplitText_SizeAndOverlap(t *testing.T) {
	words := make([]string, 400)
	for i := range words {
		words[i] = "room"
	}
	text := strings.Join(words, " ") // 1999 runes

	chunks := SplitText(text, 700, 100)
	require.Greater(t, len(chunks), 2)
	for _, c := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(c), 700)
		assert.False(t, strings.HasPrefix(c, " "))
	}

	// Consecutive chunks share text because of the overlap.
	tail := chunks[0][len(chunks[0])-20:]
	assert.Contains(t, chunks[1], strings.TrimSpace(tail))
}

func TestSplitText_NoWhitespace(t *testing.T) {
	text := strings.Repeat("é", 1500)
	chunks := SplitText(text, 700, 100)
	require.Len(t, chunks, 3)
	assert.Equal(t, 700, utf8.RuneCountInString(chunks[0]))
	assert.Equal(t, 700, utf8.RuneCountInString(chunks[1]))
	assert.Equal(t, 300, utf8.RuneCountInString(chunks[2]))
}

func TestSplitText_BadOverlapIgnored(t *testing.T) {
	text := strings.Repeat("a", 25)
	chunks := SplitText(text, 10, 10)
	assert.Equal(t, []string{strings.Repeat("a", 10), strings.Repeat("a", 10), strings.Repeat("a", 5)}, chunks)
}
