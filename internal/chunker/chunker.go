package chunker

import (
	"strings"

	"github.com/nguyentantai21042004/lecture-notes/internal/model"
)

// Split breaks transcript text into ordered chunks of at most budget bytes
// each, cutting only at sentence boundaries. A sentence that alone exceeds
// the budget is split on whitespace; a single word longer than the budget
// is kept whole in its own oversized chunk rather than truncated.
//
// Chunk ranges are contiguous, non-overlapping, and cover the whole input,
// so the original text is reconstructable from the ranges. Identical input
// and budget always produce identical boundaries.
func Split(text string, budget int) []model.Chunk {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if budget <= 0 {
		budget = len(text)
	}

	units := sentenceRanges(text)

	// Break units that cannot fit the budget on their own.
	bounded := make([][2]int, 0, len(units))
	for _, u := range units {
		if u[1]-u[0] <= budget {
			bounded = append(bounded, u)
			continue
		}
		bounded = append(bounded, splitOnWhitespace(text, u, budget)...)
	}

	var chunks []model.Chunk
	start := 0
	end := 0
	for _, u := range bounded {
		if u[1]-start > budget && end > start {
			chunks = appendChunk(chunks, text, start, end)
			start = end
		}
		end = u[1]
	}
	if end > start {
		chunks = appendChunk(chunks, text, start, end)
	}

	return chunks
}

func appendChunk(chunks []model.Chunk, text string, start, end int) []model.Chunk {
	return append(chunks, model.Chunk{
		Index: len(chunks),
		Text:  strings.TrimSpace(text[start:end]),
		Start: start,
		End:   end,
	})
}

// sentenceRanges returns contiguous [start,end) ranges covering text, one
// per sentence or paragraph unit. Trailing whitespace belongs to the unit
// it follows.
func sentenceRanges(text string) [][2]int {
	var ranges [][2]int
	start := 0
	i := 0

	for i < len(text) {
		switch text[i] {
		case '.', '!', '?':
			j := i + 1
			for j < len(text) && isCloser(text[j]) {
				j++
			}
			if j >= len(text) || isSpace(text[j]) {
				for j < len(text) && isSpace(text[j]) {
					j++
				}
				ranges = append(ranges, [2]int{start, j})
				start, i = j, j
				continue
			}
			i = j
		case '\n':
			// A blank line ends the unit even without punctuation.
			if i+1 < len(text) && text[i+1] == '\n' {
				j := i + 1
				for j < len(text) && isSpace(text[j]) {
					j++
				}
				ranges = append(ranges, [2]int{start, j})
				start, i = j, j
				continue
			}
			i++
		default:
			i++
		}
	}

	if start < len(text) {
		ranges = append(ranges, [2]int{start, len(text)})
	}
	return ranges
}

// splitOnWhitespace cuts an oversized unit into budget-sized pieces at
// whitespace. A word longer than the budget becomes its own piece.
func splitOnWhitespace(text string, unit [2]int, budget int) [][2]int {
	var pieces [][2]int
	pos := unit[0]

	for pos < unit[1] {
		limit := pos + budget
		if limit >= unit[1] {
			pieces = append(pieces, [2]int{pos, unit[1]})
			break
		}

		cut := -1
		for j := limit; j > pos; j-- {
			if isSpace(text[j-1]) {
				cut = j
				break
			}
		}
		if cut <= pos {
			// No whitespace inside the window: take the whole word.
			cut = limit
			for cut < unit[1] && !isSpace(text[cut]) {
				cut++
			}
			for cut < unit[1] && isSpace(text[cut]) {
				cut++
			}
		}
		pieces = append(pieces, [2]int{pos, cut})
		pos = cut
	}

	return pieces
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isCloser(c byte) bool {
	switch c {
	case '.', '!', '?', '"', '\'', ')', ']':
		return true
	}
	return false
}
