package processor

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
	"github.com/nguyentantai21042004/lecture-notes/internal/model"
)

// fakeBackend returns canned responses per call, in order.
type fakeBackend struct {
	responses []string
	errs      []error
	calls     int
}

func (f *fakeBackend) Complete(ctx context.Context, prompt string) (string, error) {
	i := f.calls
	f.calls++
	if i >= len(f.responses) {
		i = len(f.responses) - 1
	}
	if f.errs != nil && f.errs[i] != nil {
		return "", f.errs[i]
	}
	return f.responses[i], nil
}

func testOpts() Options {
	return Options{
		SummaryLength:      100,
		Chapters:           5,
		KeyConcepts:        10,
		MainTopics:         8,
		LearningObjectives: 6,
		ReviewQuestions:    8,
		MaxAttempts:        3,
		InitialBackoff:     time.Millisecond,
		MaxBackoff:         5 * time.Millisecond,
		RequestTimeout:     time.Second,
	}
}

func goodResponse(summary string) string {
	return fmt.Sprintf(`{
		"summary": %q,
		"key_concepts": [{"term": "pivot", "explanation": "partition element", "importance_rank": 8}],
		"chapters": [{"title": "Intro", "start_seconds": 0, "summary": "opening"}],
		"main_topics": ["sorting"],
		"learning_objectives": ["Students will be able to explain quicksort"],
		"review_questions": ["What is a pivot?"]
	}`, summary)
}

func chunks(n int) []model.Chunk {
	out := make([]model.Chunk, n)
	for i := range out {
		out[i] = model.Chunk{Index: i, Text: fmt.Sprintf("chunk %d text", i)}
	}
	return out
}

func TestProcessAllChunksSucceed(t *testing.T) {
	backend := &fakeBackend{responses: []string{goodResponse("part one"), goodResponse("part two")}}
	proc := New(backend, testOpts(), logger.New("error"))

	result, err := proc.Process(context.Background(), &model.VideoInfo{Title: "Lecture"}, chunks(2))
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(result.Partials) != 2 {
		t.Fatalf("got %d partials, want 2", len(result.Partials))
	}
	if len(result.Failed) != 0 {
		t.Errorf("Failed = %v, want none", result.Failed)
	}
	if result.Partials[0].Summary != "part one" || result.Partials[1].Summary != "part two" {
		t.Errorf("partials out of order: %q, %q", result.Partials[0].Summary, result.Partials[1].Summary)
	}
	if result.Attempts != 2 {
		t.Errorf("Attempts = %d, want 2", result.Attempts)
	}
}

func TestProcessRetriesMalformedThenSucceeds(t *testing.T) {
	backend := &fakeBackend{responses: []string{"sorry, I cannot do that", goodResponse("recovered")}}
	proc := New(backend, testOpts(), logger.New("error"))

	result, err := proc.Process(context.Background(), nil, chunks(1))
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if backend.calls != 2 {
		t.Errorf("backend calls = %d, want 2", backend.calls)
	}
	if result.Partials[0].Summary != "recovered" {
		t.Errorf("Summary = %q, want recovered", result.Partials[0].Summary)
	}
	if result.Attempts != 2 {
		t.Errorf("Attempts = %d, want 2", result.Attempts)
	}
}

func TestProcessAllChunksFailed(t *testing.T) {
	backend := &fakeBackend{
		responses: []string{""},
		errs:      []error{errors.New("429 rate limited")},
	}
	proc := New(backend, testOpts(), logger.New("error"))

	result, err := proc.Process(context.Background(), nil, chunks(2))
	if result != nil {
		t.Error("expected no result when all chunks fail")
	}

	var allFailed *AllChunksFailedError
	if !errors.As(err, &allFailed) {
		t.Fatalf("error = %v, want AllChunksFailedError", err)
	}
	if allFailed.Chunks != 2 {
		t.Errorf("Chunks = %d, want 2", allFailed.Chunks)
	}
	// 2 chunks x 3 attempts, all transient
	if backend.calls != 6 {
		t.Errorf("backend calls = %d, want 6", backend.calls)
	}
}

func TestProcessPartialFailureNeverBlocksRemaining(t *testing.T) {
	// Chunk order: chunk 0 succeeds, chunk 1 fails all 3 attempts,
	// chunk 2 succeeds.
	backend := &fakeBackend{
		responses: []string{
			goodResponse("one"),
			"", "", "",
			goodResponse("three"),
		},
		errs: []error{
			nil,
			errors.New("quota exceeded"), errors.New("quota exceeded"), errors.New("quota exceeded"),
			nil,
		},
	}
	proc := New(backend, testOpts(), logger.New("error"))

	result, err := proc.Process(context.Background(), nil, chunks(3))
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(result.Failed) != 1 || result.Failed[0] != 1 {
		t.Errorf("Failed = %v, want [1]", result.Failed)
	}
	if !result.Partials[1].Empty() {
		t.Error("failed chunk should leave an empty partial")
	}
	if result.Partials[0].Summary != "one" || result.Partials[2].Summary != "three" {
		t.Errorf("surviving partials wrong: %q, %q", result.Partials[0].Summary, result.Partials[2].Summary)
	}
}

func TestProcessNonTransientFailsChunkImmediately(t *testing.T) {
	backend := &fakeBackend{
		responses: []string{"", goodResponse("two")},
		errs:      []error{errors.New("API key not valid"), nil},
	}
	proc := New(backend, testOpts(), logger.New("error"))

	result, err := proc.Process(context.Background(), nil, chunks(2))
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(result.Failed) != 1 || result.Failed[0] != 0 {
		t.Errorf("Failed = %v, want [0]", result.Failed)
	}
	// No retries for a non-transient error.
	if backend.calls != 2 {
		t.Errorf("backend calls = %d, want 2", backend.calls)
	}
}

func TestParsePartial(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"clean json", goodResponse("ok"), false},
		{"json in markdown fence", "```json\n" + goodResponse("ok") + "\n```", false},
		{"json after prose", "Here are your notes:\n" + goodResponse("ok"), false},
		{"no json", "I could not process this transcript.", true},
		{"broken json", `{"summary": "unterminated`, true},
		{"empty object", `{}`, true},
		{"only whitespace fields", `{"summary": "  ", "main_topics": ["  "]}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parsePartial(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parsePartial() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrMalformedResponse) {
				t.Errorf("error = %v, want ErrMalformedResponse", err)
			}
		})
	}
}

func TestParsePartialFields(t *testing.T) {
	partial, err := parsePartial(goodResponse("the summary"))
	if err != nil {
		t.Fatalf("parsePartial() error = %v", err)
	}
	if partial.Summary != "the summary" {
		t.Errorf("Summary = %q", partial.Summary)
	}
	if len(partial.KeyConcepts) != 1 || partial.KeyConcepts[0].Term != "pivot" || partial.KeyConcepts[0].ImportanceRank != 8 {
		t.Errorf("KeyConcepts = %+v", partial.KeyConcepts)
	}
	if len(partial.Chapters) != 1 || partial.Chapters[0].Start != 0 || partial.Chapters[0].Title != "Intro" {
		t.Errorf("Chapters = %+v", partial.Chapters)
	}
	if len(partial.ReviewQuestions) != 1 {
		t.Errorf("ReviewQuestions = %+v", partial.ReviewQuestions)
	}
}

func TestParsePartialDropsEmptyEntries(t *testing.T) {
	raw := `{
		"summary": "s",
		"key_concepts": [{"term": "", "explanation": "orphan", "importance_rank": 1}, {"term": "real", "explanation": "kept", "importance_rank": 2}],
		"chapters": [{"title": "", "start_seconds": 10, "summary": "dropped"}],
		"main_topics": ["", "kept topic", "   "]
	}`
	partial, err := parsePartial(raw)
	if err != nil {
		t.Fatalf("parsePartial() error = %v", err)
	}
	if len(partial.KeyConcepts) != 1 || partial.KeyConcepts[0].Term != "real" {
		t.Errorf("KeyConcepts = %+v", partial.KeyConcepts)
	}
	if len(partial.Chapters) != 0 {
		t.Errorf("Chapters = %+v, want empty", partial.Chapters)
	}
	if len(partial.MainTopics) != 1 || partial.MainTopics[0] != "kept topic" {
		t.Errorf("MainTopics = %+v", partial.MainTopics)
	}
}

func TestRetryDoAttemptCount(t *testing.T) {
	rc := retryConfig{MaxAttempts: 4, InitialWait: time.Millisecond, MaxWait: 2 * time.Millisecond, Multiplier: 2.0}

	calls := 0
	_, attempts, err := retryDo(context.Background(), rc, isTransient, func() (string, error) {
		calls++
		if calls < 3 {
			return "", fmt.Errorf("%w: junk", ErrMalformedResponse)
		}
		return "done", nil
	})
	if err != nil {
		t.Fatalf("retryDo() error = %v", err)
	}
	if attempts != 3 || calls != 3 {
		t.Errorf("attempts = %d, calls = %d, want 3", attempts, calls)
	}
}

func TestRetryDoContextCancelled(t *testing.T) {
	rc := retryConfig{MaxAttempts: 5, InitialWait: 50 * time.Millisecond, MaxWait: time.Second, Multiplier: 2.0}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := retryDo(ctx, rc, isTransient, func() (string, error) {
		return "", errors.New("429")
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"malformed response", fmt.Errorf("chunk: %w", ErrMalformedResponse), true},
		{"deadline", context.DeadlineExceeded, true},
		{"rate limit text", errors.New("googleapi: Error 429: quota exceeded"), true},
		{"resource exhausted", errors.New("rpc error: RESOURCE_EXHAUSTED"), true},
		{"auth error", errors.New("API key not valid"), false},
		{"plain error", errors.New("something else"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isTransient(tt.err); got != tt.want {
				t.Errorf("isTransient(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
