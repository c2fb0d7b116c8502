package extract

import (
	"math"
	"strings"

	"bookvault/internal/domain"
)

// overlapTokens is 10% of the budget, rounded to a multiple of 100. For the
// default budget of 2000 tokens this comes out to 200.
func overlapTokens(maxTokens int) int {
	return int(math.Round(float64(maxTokens)*0.10/100.0)) * 100
}

// splitTokens splits text into chunks of at most maxTokens whitespace
// tokens, with consecutive chunks overlapping by overlapTokens(maxTokens).
// A pure function of its input: re-running it over the same text yields the
// same chunk sequence.
func splitTokens(text string, maxTokens int) []domain.Chunk {
	if maxTokens <= 0 {
		maxTokens = 2000
	}
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return nil
	}
	overlap := overlapTokens(maxTokens)
	if overlap >= maxTokens {
		overlap = 0
	}

	var chunks []domain.Chunk
	i := 0
	idx := 0
	for i < len(tokens) {
		end := i + maxTokens
		if end > len(tokens) {
			end = len(tokens)
		}
		chunks = append(chunks, domain.Chunk{
			Text:  strings.Join(tokens[i:end], " "),
			Index: idx,
		})
		if end == len(tokens) {
			break
		}
		i = end - overlap
		idx++
	}
	return chunks
}
