package processor

import (
	"fmt"
	"time"

	"github.com/nguyentantai21042004/lecture-notes/internal/model"
)

const promptTemplate = `You are an expert at turning lecture transcripts into structured study notes.

Video title: %s
This is part %d of %d of the transcript. It starts at %s into the video.

Analyze the transcript excerpt below and respond with ONE JSON object and nothing else, in exactly this shape:

{
  "summary": "concise summary of this part, at most %d words",
  "key_concepts": [
    {"term": "concept name", "explanation": "clear explanation", "importance_rank": 7}
  ],
  "chapters": [
    {"title": "descriptive section title", "start_seconds": 0, "summary": "2-3 sentence summary"}
  ],
  "main_topics": ["topic in 2-5 words"],
  "learning_objectives": ["Students will be able to ..."],
  "review_questions": ["question testing understanding?"]
}

Rules:
- importance_rank is an integer from 1 (minor) to 10 (central to the lecture).
- Extract at most %d key concepts, %d chapters, %d main topics, %d learning objectives and %d review questions from this part.
- start_seconds is measured from the beginning of the whole video; this part starts at second %d.
- Start each learning objective with an action verb.
- Do not wrap the JSON in markdown fences or add commentary.

Transcript excerpt:
---
%s
---`

func buildPrompt(video *model.VideoInfo, chunk model.Chunk, totalChunks int, opts Options) string {
	title := ""
	if video != nil {
		title = video.Title
	}
	return fmt.Sprintf(promptTemplate,
		title,
		chunk.Index+1, totalChunks,
		formatOffset(chunk.Offset),
		opts.SummaryLength,
		opts.KeyConcepts, opts.Chapters, opts.MainTopics, opts.LearningObjectives, opts.ReviewQuestions,
		int(chunk.Offset/time.Second),
		chunk.Text,
	)
}

func formatOffset(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", int(d.Hours()), int(d.Minutes())%60, int(d.Seconds())%60)
}
