package text

import "fmt"

// DefaultChunkSize is the number of runes per chunk used when no size is configured.
const DefaultChunkSize = 3000

// Chunk splits s into consecutive, non-overlapping pieces of maxChunkSize runes.
// The last piece holds the remainder and is never empty. Boundaries are purely positional:
// a piece may end in the middle of a word or sentence.
//
// Concatenating the result always yields s. An empty s yields nil, and an s no longer than
// maxChunkSize yields a single element.
//
// maxChunkSize must be positive; Chunk panics otherwise.
func Chunk(s string, maxChunkSize int) []string {
	if maxChunkSize <= 0 {
		panic(fmt.Sprintf("text: chunk size must be positive, got %d", maxChunkSize))
	}
	if s == "" {
		return nil
	}

	chunks := make([]string, 0, ChunkCount(CountRunes(s), maxChunkSize))
	start, n := 0, 0
	for i := range s {
		if n == maxChunkSize {
			chunks = append(chunks, s[start:i])
			start, n = i, 0
		}
		n++
	}
	return append(chunks, s[start:])
}

// ChunkCount returns how many chunks Chunk produces for a text of length runes.
func ChunkCount(length, maxChunkSize int) int {
	if length <= 0 || maxChunkSize <= 0 {
		return 0
	}
	return (length + maxChunkSize - 1) / maxChunkSize
}
