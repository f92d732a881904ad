package processor

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nguyentantai21042004/lecture-notes/internal/model"
)

// modelResponse is the shape the prompt asks for. Fields the model omits
// simply stay empty; extra fields are ignored.
type modelResponse struct {
	Summary            string             `json:"summary"`
	KeyConcepts        []model.KeyConcept `json:"key_concepts"`
	Chapters           []responseChapter  `json:"chapters"`
	MainTopics         []string           `json:"main_topics"`
	LearningObjectives []string           `json:"learning_objectives"`
	ReviewQuestions    []string           `json:"review_questions"`
}

type responseChapter struct {
	Title        string  `json:"title"`
	StartSeconds float64 `json:"start_seconds"`
	Summary      string  `json:"summary"`
}

// parsePartial extracts the structured fields from a raw model response.
// Models occasionally wrap the JSON in fences or prose, so parsing starts
// at the first opening brace and decodes a single value. Anything that
// does not yield at least one populated field is a malformed response.
func parsePartial(raw string) (model.PartialContent, error) {
	var partial model.PartialContent

	idx := strings.IndexByte(raw, '{')
	if idx < 0 {
		return partial, fmt.Errorf("%w: no JSON object in response", ErrMalformedResponse)
	}

	dec := json.NewDecoder(strings.NewReader(raw[idx:]))
	var resp modelResponse
	if err := dec.Decode(&resp); err != nil {
		return partial, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	partial.Summary = strings.TrimSpace(resp.Summary)

	for _, c := range resp.KeyConcepts {
		c.Term = strings.TrimSpace(c.Term)
		c.Explanation = strings.TrimSpace(c.Explanation)
		if c.Term == "" {
			continue
		}
		partial.KeyConcepts = append(partial.KeyConcepts, c)
	}

	for _, ch := range resp.Chapters {
		title := strings.TrimSpace(ch.Title)
		if title == "" {
			continue
		}
		partial.Chapters = append(partial.Chapters, model.Chapter{
			Title:   title,
			Start:   time.Duration(ch.StartSeconds * float64(time.Second)),
			Summary: strings.TrimSpace(ch.Summary),
		})
	}

	partial.MainTopics = cleanList(resp.MainTopics)
	partial.LearningObjectives = cleanList(resp.LearningObjectives)
	partial.ReviewQuestions = cleanList(resp.ReviewQuestions)

	if partial.Empty() {
		return model.PartialContent{}, fmt.Errorf("%w: response carries no usable fields", ErrMalformedResponse)
	}

	return partial, nil
}

func cleanList(items []string) []string {
	var out []string
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
