package assembler

import (
	"sort"
	"strings"
	"time"

	"github.com/nguyentantai21042004/lecture-notes/internal/model"
)

// summaryTolerance is how far past the word target a merged summary may
// run before it is cut back to a sentence boundary.
const summaryTolerance = 10 // percent

// Assemble merges the ordered partial artifacts into a single artifact.
// Partials from failed chunks are empty and contribute nothing; the
// resulting artifact is flagged partial when any chunk failed or any
// field ended up empty. Assemble is deterministic and idempotent on
// already-deduplicated input.
func (a *implAssembler) Assemble(partials []model.PartialContent, failedChunks int, videoDuration time.Duration) *model.ProcessedContent {
	content := &model.ProcessedContent{
		Summary:            a.mergeSummaries(partials),
		KeyConcepts:        a.mergeConcepts(partials),
		Chapters:           a.mergeChapters(partials, videoDuration),
		MainTopics:         mergeLists(partials, pickTopics, a.limits.MainTopics),
		LearningObjectives: mergeLists(partials, pickObjectives, a.limits.LearningObjectives),
		ReviewQuestions:    mergeLists(partials, pickQuestions, a.limits.ReviewQuestions),
	}

	content.Status = model.StatusComplete
	if failedChunks > 0 || a.hasEmptyField(content) {
		content.Status = model.StatusPartial
	}

	return content
}

func (a *implAssembler) hasEmptyField(c *model.ProcessedContent) bool {
	return c.Summary == "" ||
		len(c.KeyConcepts) == 0 ||
		len(c.Chapters) == 0 ||
		len(c.MainTopics) == 0 ||
		len(c.LearningObjectives) == 0 ||
		len(c.ReviewQuestions) == 0
}

// mergeSummaries concatenates the partial summaries in chunk order and
// compresses the result to the configured word target, cutting only at
// sentence boundaries.
func (a *implAssembler) mergeSummaries(partials []model.PartialContent) string {
	var parts []string
	for _, p := range partials {
		if p.Summary != "" {
			parts = append(parts, p.Summary)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return compressToWords(strings.Join(parts, " "), a.limits.SummaryWords)
}

// compressToWords trims text to at most target words plus tolerance,
// keeping whole sentences. A single sentence over the limit is word-cut.
func compressToWords(text string, target int) string {
	if target <= 0 {
		return text
	}
	limit := target + target*summaryTolerance/100

	words := strings.Fields(text)
	if len(words) <= limit {
		return text
	}

	var out []string
	count := 0
	for _, sentence := range splitSentences(text) {
		n := len(strings.Fields(sentence))
		if count+n > limit {
			break
		}
		out = append(out, sentence)
		count += n
	}
	if len(out) == 0 {
		return strings.Join(words[:target], " ")
	}
	return strings.TrimSpace(strings.Join(out, " "))
}

func splitSentences(text string) []string {
	var sentences []string
	start := 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '.' || c == '!' || c == '?' {
			end := i + 1
			if end >= len(text) || text[end] == ' ' || text[end] == '\n' {
				sentences = append(sentences, strings.TrimSpace(text[start:end]))
				start = end
			}
		}
	}
	if start < len(text) {
		if s := strings.TrimSpace(text[start:]); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// mergeConcepts unions concepts across chunks, deduplicating by
// normalized term and keeping the highest importance rank on conflict.
// The result is sorted by importance descending with first-appearance
// order breaking ties, then capped.
func (a *implAssembler) mergeConcepts(partials []model.PartialContent) []model.KeyConcept {
	var merged []model.KeyConcept
	index := make(map[string]int)

	for _, p := range partials {
		for _, c := range p.KeyConcepts {
			key := model.NormalizeTerm(c.Term)
			if key == "" {
				continue
			}
			if at, ok := index[key]; ok {
				if c.ImportanceRank > merged[at].ImportanceRank {
					merged[at].ImportanceRank = c.ImportanceRank
					merged[at].Explanation = c.Explanation
				}
				continue
			}
			index[key] = len(merged)
			merged = append(merged, c)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].ImportanceRank > merged[j].ImportanceRank
	})

	if a.limits.KeyConcepts > 0 && len(merged) > a.limits.KeyConcepts {
		merged = merged[:a.limits.KeyConcepts]
	}
	return merged
}

// mergeChapters concatenates chapters in chunk order, clamps offsets to
// the video duration, sorts by offset, and while the count exceeds the
// target merges the adjacent pair carrying the least summary text rather
// than dropping chapters.
func (a *implAssembler) mergeChapters(partials []model.PartialContent, videoDuration time.Duration) []model.Chapter {
	var chapters []model.Chapter
	for _, p := range partials {
		for _, ch := range p.Chapters {
			if ch.Start < 0 {
				ch.Start = 0
			}
			if videoDuration > 0 && ch.Start > videoDuration {
				ch.Start = videoDuration
			}
			chapters = append(chapters, ch)
		}
	}

	sort.SliceStable(chapters, func(i, j int) bool {
		return chapters[i].Start < chapters[j].Start
	})

	for a.limits.Chapters > 0 && len(chapters) > a.limits.Chapters {
		chapters = mergeAdjacentPair(chapters)
	}
	return chapters
}

// mergeAdjacentPair folds the neighboring pair with the least combined
// summary text into one chapter, keeping the earlier offset.
func mergeAdjacentPair(chapters []model.Chapter) []model.Chapter {
	best := 0
	bestLen := -1
	for i := 0; i+1 < len(chapters); i++ {
		l := len(chapters[i].Summary) + len(chapters[i+1].Summary)
		if bestLen == -1 || l < bestLen {
			best = i
			bestLen = l
		}
	}

	merged := model.Chapter{
		Title:   joinNonEmpty(chapters[best].Title, chapters[best+1].Title, " / "),
		Start:   chapters[best].Start,
		Summary: joinNonEmpty(chapters[best].Summary, chapters[best+1].Summary, " "),
	}

	out := make([]model.Chapter, 0, len(chapters)-1)
	out = append(out, chapters[:best]...)
	out = append(out, merged)
	out = append(out, chapters[best+2:]...)
	return out
}

func joinNonEmpty(a, b, sep string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + sep + b
	}
}

func pickTopics(p model.PartialContent) []string     { return p.MainTopics }
func pickObjectives(p model.PartialContent) []string { return p.LearningObjectives }
func pickQuestions(p model.PartialContent) []string  { return p.ReviewQuestions }

// mergeLists unions list fields in first-seen order with
// case/whitespace-insensitive deduplication, capped at limit.
func mergeLists(partials []model.PartialContent, pick func(model.PartialContent) []string, limit int) []string {
	var out []string
	seen := make(map[string]bool)

	for _, p := range partials {
		for _, item := range pick(p) {
			key := model.NormalizeTerm(item)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, item)
			if limit > 0 && len(out) == limit {
				return out
			}
		}
	}
	return out
}
