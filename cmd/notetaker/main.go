package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/nguyentantai21042004/lecture-notes/internal/assembler"
	"github.com/nguyentantai21042004/lecture-notes/internal/config"
	"github.com/nguyentantai21042004/lecture-notes/internal/export"
	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
	"github.com/nguyentantai21042004/lecture-notes/internal/notion"
	"github.com/nguyentantai21042004/lecture-notes/internal/pipeline"
	"github.com/nguyentantai21042004/lecture-notes/internal/processor"
	"github.com/nguyentantai21042004/lecture-notes/internal/transcript"
	"github.com/nguyentantai21042004/lecture-notes/internal/watcher"
)

func main() {
	var (
		configPath    = flag.String("config", "", "path to YAML config file")
		lang          = flag.String("lang", "", "preferred transcript language (overrides config)")
		title         = flag.String("title", "", "override the video title in the notes")
		summaryLength = flag.Int("summary-length", 0, "target summary length in words (overrides config)")
		chapters      = flag.Int("chapters", 0, "max chapters (overrides config)")
		concepts      = flag.Int("concepts", 0, "max key concepts (overrides config)")
		noNotion      = flag.Bool("no-notion", false, "skip Notion persistence for this run")
		outputDir     = flag.String("output", "", "local export directory (overrides config)")
		watchMode     = flag.Bool("watch", false, "watch a drop directory for .txt job files")
	)
	flag.Usage = usage
	flag.Parse()

	// Secrets land in the environment before config is read
	_ = godotenv.Load()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	applyFlags(cfg, *summaryLength, *chapters, *concepts, *noNotion, *outputDir)

	ctx := context.Background()
	log := logger.New(cfg.Logging.Level)

	nt := buildNotetaker(cfg, log)

	if *watchMode {
		runWatch(ctx, cfg, nt, log, *lang)
		return
	}

	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}

	result, err := nt.Process(ctx, pipeline.Request{
		VideoRef: flag.Arg(0),
		Language: *lang,
		Title:    *title,
	})
	if err != nil {
		log.Error(ctx, "Run failed: %v", err)
		os.Exit(1)
	}
	report(ctx, log, result)
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	if _, err := os.Stat("config.yaml"); err == nil {
		return config.Load("config.yaml")
	}
	return config.FromEnv()
}

// applyFlags lets per-run flags win over the config file.
func applyFlags(cfg *config.Config, summaryLength, chapters, concepts int, noNotion bool, outputDir string) {
	if summaryLength > 0 {
		cfg.Notes.SummaryLength = summaryLength
	}
	if chapters > 0 {
		cfg.Notes.Chapters = chapters
	}
	if concepts > 0 {
		cfg.Notes.KeyConcepts = concepts
	}
	if noNotion {
		cfg.Notion.Enabled = false
	}
	if outputDir != "" {
		cfg.Export.Dir = outputDir
	}
}

func buildNotetaker(cfg *config.Config, log logger.Logger) pipeline.Notetaker {
	source := transcript.New(
		cfg.YouTube.FallbackLanguage,
		time.Duration(cfg.YouTube.TimeoutSeconds)*time.Second,
		log,
	)

	backend := processor.NewGeminiBackend(cfg.Gemini.APIKeys, cfg.Gemini.Model, log)
	proc := processor.New(backend, processor.Options{
		SummaryLength:      cfg.Notes.SummaryLength,
		Chapters:           cfg.Notes.Chapters,
		KeyConcepts:        cfg.Notes.KeyConcepts,
		MainTopics:         cfg.Notes.MainTopics,
		LearningObjectives: cfg.Notes.LearningObjectives,
		ReviewQuestions:    cfg.Notes.ReviewQuestions,
		MaxAttempts:        cfg.Gemini.MaxAttempts,
		InitialBackoff:     time.Duration(cfg.Gemini.InitialBackoffMillis) * time.Millisecond,
		MaxBackoff:         time.Duration(cfg.Gemini.MaxBackoffMillis) * time.Millisecond,
		RequestTimeout:     time.Duration(cfg.Gemini.RequestTimeoutSeconds) * time.Second,
	}, log)

	asm := assembler.New(assembler.Limits{
		SummaryWords:       cfg.Notes.SummaryLength,
		Chapters:           cfg.Notes.Chapters,
		KeyConcepts:        cfg.Notes.KeyConcepts,
		MainTopics:         cfg.Notes.MainTopics,
		LearningObjectives: cfg.Notes.LearningObjectives,
		ReviewQuestions:    cfg.Notes.ReviewQuestions,
	}, log)

	var store notion.Store
	if cfg.Notion.Enabled {
		store = notion.New(cfg.Notion.Token, cfg.Notion.DatabaseID, cfg.Notion.TitleTemplate, log)
	}

	exporter := export.New(cfg.Export.Dir, cfg.Export.Docx, log)

	return pipeline.New(cfg, source, proc, asm, store, exporter, log)
}

func runWatch(ctx context.Context, cfg *config.Config, nt pipeline.Notetaker, log logger.Logger, lang string) {
	if cfg.Watch.Input == "" {
		fmt.Fprintln(os.Stderr, "watch mode needs watch.input in the config file")
		os.Exit(1)
	}
	if err := os.MkdirAll(cfg.Watch.Input, 0755); err != nil {
		log.Error(ctx, "Failed to create watch directory: %v", err)
		os.Exit(1)
	}

	handler := func(ctx context.Context, videoRef string) error {
		result, err := nt.Process(ctx, pipeline.Request{VideoRef: videoRef, Language: lang})
		if err != nil {
			return err
		}
		report(ctx, log, result)
		return nil
	}

	w, err := watcher.New(cfg.Watch.Input, handler, log, cfg.Watch.MaxConcurrent)
	if err != nil {
		log.Error(ctx, "Failed to create watcher: %v", err)
		os.Exit(1)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := w.Start(ctx); err != nil && err != context.Canceled {
			errChan <- err
		}
	}()

	log.Info(ctx, "========================================")
	log.Info(ctx, "Lecture notetaker is ready!")
	log.Info(ctx, "Monitoring: %s", cfg.Watch.Input)
	log.Info(ctx, "Output: %s", cfg.Export.Dir)
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Watcher error: %v", err)
	}

	log.Info(ctx, "Shutting down gracefully...")
	cancel()
}

func report(ctx context.Context, log logger.Logger, result *pipeline.Result) {
	status := "complete"
	if result.Content != nil {
		status = string(result.Content.Status)
	}
	log.Info(ctx, "Notes for %s (%s): %s", result.Video.ID, result.Video.Title, status)
	if result.FailedChunks > 0 {
		log.Warn(ctx, "%d chunk(s) failed and are missing from the notes", result.FailedChunks)
	}
	if result.NotionURL != "" {
		log.Info(ctx, "Notion page: %s", result.NotionURL)
	}
	for _, p := range result.ExportPaths {
		log.Info(ctx, "Exported: %s", p)
	}
	if result.PersistErr != nil {
		log.Warn(ctx, "Notes were generated but not persisted: %v", result.PersistErr)
		log.Warn(ctx, "The local export above can be uploaded manually")
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: notetaker [flags] <video URL or ID>
       notetaker -watch [flags]

Turns a lecture video's transcript into structured study notes.

Flags:
`)
	flag.PrintDefaults()
}
