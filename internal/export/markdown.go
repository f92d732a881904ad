package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/nguyentantai21042004/lecture-notes/internal/model"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Export writes the notes into the configured directory, one Markdown
// file per video plus an optional DOCX rendition.
func (e *implExporter) Export(ctx context.Context, video *model.VideoInfo, content *model.ProcessedContent) ([]string, error) {
	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	base := baseName(video)
	var paths []string

	mdPath := filepath.Join(e.dir, base+".md")
	if err := os.WriteFile(mdPath, []byte(renderMarkdown(video, content)), 0644); err != nil {
		return nil, fmt.Errorf("write markdown: %w", err)
	}
	e.logger.Info(ctx, "Wrote notes: %s", mdPath)
	paths = append(paths, mdPath)

	if e.docx {
		docxPath := filepath.Join(e.dir, base+".docx")
		if err := writeDocx(video, content, docxPath); err != nil {
			return paths, fmt.Errorf("write docx: %w", err)
		}
		e.logger.Info(ctx, "Wrote notes: %s", docxPath)
		paths = append(paths, docxPath)
	}

	return paths, nil
}

func baseName(video *model.VideoInfo) string {
	name := strings.TrimSpace(video.Title)
	if name == "" {
		name = video.ID
	}
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_")
	if len(name) > 120 {
		name = name[:120]
	}
	return name
}

func renderMarkdown(video *model.VideoInfo, content *model.ProcessedContent) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", video.Title)
	fmt.Fprintf(&b, "_%s_\n\n", time.Now().Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "- Channel: %s\n", video.Channel)
	fmt.Fprintf(&b, "- Duration: %s\n", formatDuration(video.Duration))
	fmt.Fprintf(&b, "- URL: https://www.youtube.com/watch?v=%s\n", video.ID)
	if content.Status == model.StatusPartial {
		b.WriteString("- Status: partial (some transcript sections could not be processed)\n")
	}
	b.WriteString("\n## Summary\n\n")
	b.WriteString(content.Summary)
	b.WriteString("\n")

	writeListSection(&b, "Learning Objectives", content.LearningObjectives)
	writeListSection(&b, "Main Topics", content.MainTopics)

	if len(content.KeyConcepts) > 0 {
		b.WriteString("\n## Key Concepts\n\n")
		for _, c := range content.KeyConcepts {
			fmt.Fprintf(&b, "- **%s**: %s\n", c.Term, c.Explanation)
		}
	}

	if len(content.Chapters) > 0 {
		b.WriteString("\n## Chapters\n")
		for _, ch := range content.Chapters {
			fmt.Fprintf(&b, "\n### %s - %s\n\n%s\n", formatDuration(ch.Start), ch.Title, ch.Summary)
		}
	}

	writeListSection(&b, "Review Questions", content.ReviewQuestions)

	return b.String()
}

func writeListSection(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n## %s\n\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	if d >= time.Hour {
		return fmt.Sprintf("%d:%02d:%02d", int(d.Hours()), int(d.Minutes())%60, int(d.Seconds())%60)
	}
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
