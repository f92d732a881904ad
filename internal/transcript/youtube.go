package transcript

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/nguyentantai21042004/lecture-notes/internal/model"
)

var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([^&\n?#/]+)`),
	regexp.MustCompile(`youtube\.com/watch\?.*v=([^&\n?#/]+)`),
	regexp.MustCompile(`^([A-Za-z0-9_-]{11})$`),
}

// ExtractVideoID resolves a YouTube URL or bare video ID to the video ID.
func ExtractVideoID(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	for _, re := range videoIDPatterns {
		if m := re.FindStringSubmatch(ref); m != nil {
			return m[1], nil
		}
	}
	return "", fmt.Errorf("could not extract video ID from %q", ref)
}

// captionTrack mirrors one entry of captionTracks in the player response.
// Kind is "asr" for auto-generated tracks and empty for manual ones.
type captionTrack struct {
	BaseURL        string `json:"baseUrl"`
	LanguageCode   string `json:"languageCode"`
	Kind           string `json:"kind"`
	IsTranslatable bool   `json:"isTranslatable"`
	Name           struct {
		SimpleText string `json:"simpleText"`
	} `json:"name"`
}

type captionList struct {
	PlayerCaptionsTracklistRenderer struct {
		CaptionTracks []captionTrack `json:"captionTracks"`
	} `json:"playerCaptionsTracklistRenderer"`
}

type videoDetails struct {
	VideoID       string `json:"videoId"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	LengthSeconds string `json:"lengthSeconds"`
}

// selection is the outcome of the fallback order applied to the available
// tracks: the chosen track, the language/kind the caller will observe, and
// a translation target when the track must be machine-translated.
type selection struct {
	track       captionTrack
	language    string
	kind        model.SourceKind
	translateTo string
}

// selectTrack applies the fallback order: exact preferred-language match
// (manual over auto within the language), then any manual track, then any
// auto-generated track, then a translatable track machine-translated into
// fallbackLang.
func selectTrack(tracks []captionTrack, preferred, fallbackLang string) (selection, bool) {
	if preferred != "" {
		var match *captionTrack
		for i, t := range tracks {
			if !strings.EqualFold(t.LanguageCode, preferred) {
				continue
			}
			if t.Kind != "asr" {
				match = &tracks[i]
				break
			}
			if match == nil {
				match = &tracks[i]
			}
		}
		if match != nil {
			return selection{track: *match, language: match.LanguageCode, kind: kindOf(*match)}, true
		}
	}

	for _, t := range tracks {
		if t.Kind != "asr" {
			return selection{track: t, language: t.LanguageCode, kind: model.SourceManual}, true
		}
	}

	for _, t := range tracks {
		if t.Kind == "asr" {
			return selection{track: t, language: t.LanguageCode, kind: model.SourceAutoGenerated}, true
		}
	}

	for _, t := range tracks {
		if t.IsTranslatable {
			return selection{track: t, language: fallbackLang, kind: model.SourceTranslated, translateTo: fallbackLang}, true
		}
	}

	return selection{}, false
}

func kindOf(t captionTrack) model.SourceKind {
	if t.Kind == "asr" {
		return model.SourceAutoGenerated
	}
	return model.SourceManual
}

func (s *implSource) Fetch(ctx context.Context, videoRef, preferredLanguage string) (*model.Transcript, *model.VideoInfo, error) {
	videoID, err := ExtractVideoID(videoRef)
	if err != nil {
		return nil, nil, err
	}

	body, err := s.fetchWatchPage(ctx, videoID)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch watch page for %s: %w", videoID, err)
	}

	info := parseVideoInfo(body, videoID)

	tracks, err := parseCaptionTracks(body)
	if err != nil {
		return nil, nil, &UnavailableError{VideoID: videoID, Reason: err.Error()}
	}
	if len(tracks) == 0 {
		return nil, nil, &UnavailableError{VideoID: videoID, Reason: "video has no caption tracks"}
	}

	sel, ok := selectTrack(tracks, preferredLanguage, s.fallbackLang)
	if !ok {
		return nil, nil, &UnavailableError{VideoID: videoID, Reason: "no caption track is usable or translatable"}
	}

	if preferredLanguage != "" && !strings.EqualFold(sel.language, preferredLanguage) {
		s.logger.Warn(ctx, "Transcript in %q not available for %s, falling back to %q (%s)",
			preferredLanguage, videoID, sel.language, sel.kind)
	}

	segments, err := s.fetchTimedText(ctx, sel)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch transcript for %s: %w", videoID, err)
	}
	if len(segments) == 0 {
		return nil, nil, &UnavailableError{VideoID: videoID, Reason: "selected caption track is empty"}
	}

	s.logger.Info(ctx, "Fetched transcript for %s: language=%s kind=%s segments=%d",
		videoID, sel.language, sel.kind, len(segments))

	return &model.Transcript{
		VideoID:  videoID,
		Language: sel.language,
		Kind:     sel.kind,
		Segments: segments,
	}, info, nil
}

func (s *implSource) fetchWatchPage(ctx context.Context, videoID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		"https://www.youtube.com/watch?v="+url.QueryEscape(videoID), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept-Language", "en-US")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// extractJSONAfter decodes the single JSON value following marker in body.
// The decoder stops at the value's end, so trailing page content is fine.
func extractJSONAfter(body, marker string) (json.RawMessage, bool) {
	idx := strings.Index(body, marker)
	if idx < 0 {
		return nil, false
	}
	dec := json.NewDecoder(strings.NewReader(body[idx+len(marker):]))
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, false
	}
	return raw, true
}

func parseCaptionTracks(body string) ([]captionTrack, error) {
	raw, ok := extractJSONAfter(body, `"captions":`)
	if !ok {
		return nil, fmt.Errorf("no captions data in watch page")
	}
	var captions captionList
	if err := json.Unmarshal(raw, &captions); err != nil {
		return nil, fmt.Errorf("parse captions data: %w", err)
	}
	return captions.PlayerCaptionsTracklistRenderer.CaptionTracks, nil
}

func parseVideoInfo(body, videoID string) *model.VideoInfo {
	info := &model.VideoInfo{ID: videoID, Title: videoID}

	raw, ok := extractJSONAfter(body, `"videoDetails":`)
	if !ok {
		return info
	}
	var details videoDetails
	if err := json.Unmarshal(raw, &details); err != nil {
		return info
	}

	if details.Title != "" {
		info.Title = details.Title
	}
	info.Channel = details.Author
	if secs, err := strconv.Atoi(details.LengthSeconds); err == nil {
		info.Duration = time.Duration(secs) * time.Second
	}
	return info
}

type timedText struct {
	XMLName xml.Name `xml:"transcript"`
	Texts   []struct {
		Start float64 `xml:"start,attr"`
		Dur   float64 `xml:"dur,attr"`
		Body  string  `xml:",chardata"`
	} `xml:"text"`
}

func (s *implSource) fetchTimedText(ctx context.Context, sel selection) ([]model.TranscriptSegment, error) {
	trackURL := sel.track.BaseURL
	if sel.translateTo != "" {
		sep := "?"
		if strings.Contains(trackURL, "?") {
			sep = "&"
		}
		trackURL += sep + "tlang=" + url.QueryEscape(sel.translateTo)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, trackURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return parseTimedText(body)
}

// parseTimedText converts timedtext XML into ordered segments with
// strictly increasing offsets. Entries that repeat or rewind an offset
// are folded into the preceding segment so no caption text is lost.
func parseTimedText(data []byte) ([]model.TranscriptSegment, error) {
	var doc timedText
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse timedtext: %w", err)
	}

	segments := make([]model.TranscriptSegment, 0, len(doc.Texts))
	prev := time.Duration(-1)
	for _, t := range doc.Texts {
		text := strings.TrimSpace(html.UnescapeString(t.Body))
		if text == "" {
			continue
		}
		start := time.Duration(t.Start * float64(time.Second))
		if start <= prev {
			last := &segments[len(segments)-1]
			last.Text += " " + text
			continue
		}
		segments = append(segments, model.TranscriptSegment{Start: start, Text: text})
		prev = start
	}

	return segments, nil
}
