package notion

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jomei/notionapi"

	"github.com/nguyentantai21042004/lecture-notes/internal/model"
)

// Notion rejects rich text runs longer than 2000 characters. The limit
// counts characters, not bytes.
const maxRichTextLen = 2000

// CreatePage writes the artifact as a new page in the configured database
// and returns the page URL. Only the title property is set on the
// database row; everything else goes into the page body so the client
// works with any database schema.
func (s *implStore) CreatePage(ctx context.Context, video *model.VideoInfo, content *model.ProcessedContent) (string, error) {
	title := strings.ReplaceAll(s.titleTemplate, "{title}", video.Title)

	req := &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: s.databaseID,
		},
		Properties: notionapi.Properties{
			"Name": notionapi.TitleProperty{
				Title: richText(title),
			},
		},
		Children: s.pageBlocks(video, content),
	}

	page, err := s.client.Page.Create(ctx, req)
	if err != nil {
		return "", &PersistenceError{Err: fmt.Errorf("create page: %w", err)}
	}

	s.logger.Info(ctx, "Created Notion page: %s", page.URL)
	return page.URL, nil
}

func (s *implStore) pageBlocks(video *model.VideoInfo, content *model.ProcessedContent) []notionapi.Block {
	var blocks []notionapi.Block

	blocks = append(blocks, heading1(video.Title))
	blocks = append(blocks, paragraph(videoMetadata(video)))

	blocks = append(blocks, heading2("Summary"))
	blocks = append(blocks, paragraph(content.Summary))

	if len(content.LearningObjectives) > 0 {
		blocks = append(blocks, heading2("Learning Objectives"))
		for _, obj := range content.LearningObjectives {
			blocks = append(blocks, bullet(obj))
		}
	}

	if len(content.MainTopics) > 0 {
		blocks = append(blocks, heading2("Main Topics"))
		for _, topic := range content.MainTopics {
			blocks = append(blocks, bullet(topic))
		}
	}

	if len(content.KeyConcepts) > 0 {
		blocks = append(blocks, heading2("Key Concepts"))
		for _, c := range content.KeyConcepts {
			blocks = append(blocks, bullet(fmt.Sprintf("%s: %s", c.Term, c.Explanation)))
		}
	}

	if len(content.Chapters) > 0 {
		blocks = append(blocks, heading2("Chapters"))
		for _, ch := range content.Chapters {
			blocks = append(blocks, heading3(fmt.Sprintf("%s - %s", formatTimestamp(ch.Start), ch.Title)))
			if ch.Summary != "" {
				blocks = append(blocks, paragraph(ch.Summary))
			}
		}
	}

	if len(content.ReviewQuestions) > 0 {
		blocks = append(blocks, heading2("Review Questions"))
		for _, q := range content.ReviewQuestions {
			blocks = append(blocks, bullet(q))
		}
	}

	if content.Status == model.StatusPartial {
		blocks = append(blocks, paragraph("Note: these notes are partial; some transcript sections could not be processed."))
	}

	return blocks
}

func videoMetadata(video *model.VideoInfo) string {
	parts := []string{
		"Channel: " + video.Channel,
		"Duration: " + formatTimestamp(video.Duration),
		"URL: https://www.youtube.com/watch?v=" + video.ID,
	}
	return strings.Join(parts, "\n")
}

func formatTimestamp(d time.Duration) string {
	d = d.Round(time.Second)
	if d >= time.Hour {
		return fmt.Sprintf("%d:%02d:%02d", int(d.Hours()), int(d.Minutes())%60, int(d.Seconds())%60)
	}
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

func richText(text string) []notionapi.RichText {
	if utf8.RuneCountInString(text) > maxRichTextLen {
		text = string([]rune(text)[:maxRichTextLen])
	}
	return []notionapi.RichText{
		{Text: &notionapi.Text{Content: text}},
	}
}

func heading1(text string) notionapi.Block {
	return notionapi.Heading1Block{
		BasicBlock: basicBlock(notionapi.BlockTypeHeading1),
		Heading1:   notionapi.Heading{RichText: richText(text)},
	}
}

func heading2(text string) notionapi.Block {
	return notionapi.Heading2Block{
		BasicBlock: basicBlock(notionapi.BlockTypeHeading2),
		Heading2:   notionapi.Heading{RichText: richText(text)},
	}
}

func heading3(text string) notionapi.Block {
	return notionapi.Heading3Block{
		BasicBlock: basicBlock(notionapi.BlockTypeHeading3),
		Heading3:   notionapi.Heading{RichText: richText(text)},
	}
}

func paragraph(text string) notionapi.Block {
	return notionapi.ParagraphBlock{
		BasicBlock: basicBlock(notionapi.BlockTypeParagraph),
		Paragraph:  notionapi.Paragraph{RichText: richText(text)},
	}
}

func bullet(text string) notionapi.Block {
	return notionapi.BulletedListItemBlock{
		BasicBlock:       basicBlock(notionapi.BlockTypeBulletedListItem),
		BulletedListItem: notionapi.ListItem{RichText: richText(text)},
	}
}

func basicBlock(blockType notionapi.BlockType) notionapi.BasicBlock {
	return notionapi.BasicBlock{
		Object: notionapi.ObjectTypeBlock,
		Type:   blockType,
	}
}
