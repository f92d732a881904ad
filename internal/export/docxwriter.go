package export

import (
	"fmt"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/nguyentantai21042004/lecture-notes/internal/model"
)

const (
	fontName = "Times New Roman"
	fontSize = 13
)

// writeDocx renders the notes as a styled docx document.
func writeDocx(video *model.VideoInfo, content *model.ProcessedContent, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addStyledRun(doc.AddParagraph(""), video.Title, true, 16)
	addPlainRun(doc.AddParagraph(""), fmt.Sprintf("Channel: %s  |  Duration: %s", video.Channel, formatDuration(video.Duration)))
	addPlainRun(doc.AddParagraph(""), "https://www.youtube.com/watch?v="+video.ID)

	addSectionHeading(doc, "Summary")
	addPlainRun(doc.AddParagraph(""), content.Summary)

	if len(content.LearningObjectives) > 0 {
		addSectionHeading(doc, "Learning Objectives")
		addBullets(doc, content.LearningObjectives)
	}

	if len(content.MainTopics) > 0 {
		addSectionHeading(doc, "Main Topics")
		addBullets(doc, content.MainTopics)
	}

	if len(content.KeyConcepts) > 0 {
		addSectionHeading(doc, "Key Concepts")
		for _, c := range content.KeyConcepts {
			p := doc.AddParagraph("")
			p.AddText("• "+c.Term+": ").Font(fontName).Size(fontSize).Color("000000").Bold(true)
			p.AddText(c.Explanation).Font(fontName).Size(fontSize).Color("000000")
		}
	}

	if len(content.Chapters) > 0 {
		addSectionHeading(doc, "Chapters")
		for _, ch := range content.Chapters {
			addStyledRun(doc.AddParagraph(""), fmt.Sprintf("%s - %s", formatDuration(ch.Start), ch.Title), true, 14)
			if ch.Summary != "" {
				addPlainRun(doc.AddParagraph(""), ch.Summary)
			}
		}
	}

	if len(content.ReviewQuestions) > 0 {
		addSectionHeading(doc, "Review Questions")
		addBullets(doc, content.ReviewQuestions)
	}

	if content.Status == model.StatusPartial {
		addPlainRun(doc.AddParagraph(""), "Note: these notes are partial; some transcript sections could not be processed.")
	}

	return doc.SaveTo(outputPath)
}

func addSectionHeading(doc *docx.RootDoc, title string) {
	doc.AddParagraph("")
	addStyledRun(doc.AddParagraph(""), title, true, 15)
}

func addBullets(doc *docx.RootDoc, items []string) {
	for _, item := range items {
		addPlainRun(doc.AddParagraph(""), "• "+item)
	}
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

func addPlainRun(p *docx.Paragraph, text string) {
	p.AddText(text).Font(fontName).Size(fontSize).Color("000000")
}
