package extract

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func words(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "w%d ", i)
	}
	return b.String()
}

func TestOverlapTokens(t *testing.T) {
	assert.Equal(t, 100, overlapTokens(1000))
	assert.Equal(t, 200, overlapTokens(2000))
	assert.Equal(t, 0, overlapTokens(100))
}

func TestSplitTokensBoundAndOverlap(t *testing.T) {
	chunks := splitTokens(words(2500), 1000)
	require.Len(t, chunks, 3)

	for _, c := range chunks {
		assert.LessOrEqual(t, len(strings.Fields(c.Text)), 1000)
	}

	// consecutive chunks overlap by exactly 100 tokens
	first := strings.Fields(chunks[0].Text)
	second := strings.Fields(chunks[1].Text)
	assert.Equal(t, first[len(first)-100:], second[:100])

	// the last chunk may be shorter
	last := strings.Fields(chunks[2].Text)
	assert.Equal(t, 700, len(last))
}

func TestSplitTokensSingleChunk(t *testing.T) {
	chunks := splitTokens(words(50), 1000)
	require.Len(t, chunks, 1)
	assert.Equal(t, 0, chunks[0].Index)
	assert.Equal(t, 50, len(strings.Fields(chunks[0].Text)))
}

func TestSplitTokensEmpty(t *testing.T) {
	assert.Nil(t, splitTokens("   \n\t ", 1000))
}

func TestSplitTokensDeterministic(t *testing.T) {
	text := words(3210)
	a := splitTokens(text, 1000)
	b := splitTokens(text, 1000)
	assert.Equal(t, a, b)
}
