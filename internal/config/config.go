package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	YouTube YouTubeConfig `yaml:"youtube"`
	Gemini  GeminiConfig  `yaml:"gemini"`
	Notes   NotesConfig   `yaml:"notes"`
	Notion  NotionConfig  `yaml:"notion"`
	Export  ExportConfig  `yaml:"export"`
	Watch   WatchConfig   `yaml:"watch"`
	Logging LoggingConfig `yaml:"logging"`
}

type YouTubeConfig struct {
	Language         string `yaml:"language"`          // preferred transcript language
	FallbackLanguage string `yaml:"fallback_language"` // translation target when no track fits
	TimeoutSeconds   int    `yaml:"timeout_seconds"`
}

type GeminiConfig struct {
	Model                 string   `yaml:"model"`
	APIKeys               []string `yaml:"api_keys"`
	MaxAttempts           int      `yaml:"max_attempts"`
	InitialBackoffMillis  int      `yaml:"initial_backoff_millis"`
	MaxBackoffMillis      int      `yaml:"max_backoff_millis"`
	RequestTimeoutSeconds int      `yaml:"request_timeout_seconds"`
}

type NotesConfig struct {
	ChunkSize          int `yaml:"chunk_size"`     // characters per model call
	SummaryLength      int `yaml:"summary_length"` // words
	Chapters           int `yaml:"chapters"`
	KeyConcepts        int `yaml:"key_concepts"`
	MainTopics         int `yaml:"main_topics"`
	LearningObjectives int `yaml:"learning_objectives"`
	ReviewQuestions    int `yaml:"review_questions"`
}

type NotionConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Token         string `yaml:"token"`
	DatabaseID    string `yaml:"database_id"`
	TitleTemplate string `yaml:"title_template"`
}

type ExportConfig struct {
	Dir  string `yaml:"dir"`
	Docx bool   `yaml:"docx"`
}

type WatchConfig struct {
	Input         string `yaml:"input"`
	MaxConcurrent int    `yaml:"max_concurrent"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads the YAML config file, applies environment overrides for
// secrets, and fills in defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a config without a YAML file, from environment variables
// and defaults only.
func FromEnv() (*Config, error) {
	var cfg Config
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnv overrides secrets from the environment. Keys in the environment
// always win over keys committed to a config file.
func (c *Config) applyEnv() {
	if keys := os.Getenv("GEMINI_API_KEYS"); keys != "" {
		c.Gemini.APIKeys = nil
		for _, k := range strings.Split(keys, ",") {
			if k = strings.TrimSpace(k); k != "" {
				c.Gemini.APIKeys = append(c.Gemini.APIKeys, k)
			}
		}
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" && len(c.Gemini.APIKeys) == 0 {
		c.Gemini.APIKeys = []string{key}
	}
	if token := os.Getenv("NOTION_TOKEN"); token != "" {
		c.Notion.Token = token
	}
	if db := os.Getenv("NOTION_DATABASE_ID"); db != "" {
		c.Notion.DatabaseID = db
	}
}

func (c *Config) Validate() error {
	if len(c.Gemini.APIKeys) == 0 {
		return fmt.Errorf("gemini.api_keys is required (or set GEMINI_API_KEYS)")
	}
	if c.Notion.Enabled {
		if c.Notion.Token == "" {
			return fmt.Errorf("notion.token is required when notion is enabled (or set NOTION_TOKEN)")
		}
		if c.Notion.DatabaseID == "" {
			return fmt.Errorf("notion.database_id is required when notion is enabled (or set NOTION_DATABASE_ID)")
		}
	}

	if c.YouTube.Language == "" {
		c.YouTube.Language = "en"
	}
	if c.YouTube.FallbackLanguage == "" {
		c.YouTube.FallbackLanguage = "en"
	}
	if c.YouTube.TimeoutSeconds == 0 {
		c.YouTube.TimeoutSeconds = 20
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Gemini.MaxAttempts == 0 {
		c.Gemini.MaxAttempts = 3
	}
	if c.Gemini.InitialBackoffMillis == 0 {
		c.Gemini.InitialBackoffMillis = 500
	}
	if c.Gemini.MaxBackoffMillis == 0 {
		c.Gemini.MaxBackoffMillis = 10000
	}
	if c.Gemini.RequestTimeoutSeconds == 0 {
		c.Gemini.RequestTimeoutSeconds = 60
	}
	if c.Notes.ChunkSize == 0 {
		c.Notes.ChunkSize = 4000
	}
	if c.Notes.SummaryLength == 0 {
		c.Notes.SummaryLength = 300
	}
	if c.Notes.Chapters == 0 {
		c.Notes.Chapters = 5
	}
	if c.Notes.KeyConcepts == 0 {
		c.Notes.KeyConcepts = 10
	}
	if c.Notes.MainTopics == 0 {
		c.Notes.MainTopics = 8
	}
	if c.Notes.LearningObjectives == 0 {
		c.Notes.LearningObjectives = 6
	}
	if c.Notes.ReviewQuestions == 0 {
		c.Notes.ReviewQuestions = 8
	}
	if c.Notion.TitleTemplate == "" {
		c.Notion.TitleTemplate = "{title} - Lecture Notes"
	}
	if c.Export.Dir == "" {
		c.Export.Dir = "notes"
	}
	if c.Watch.MaxConcurrent == 0 {
		c.Watch.MaxConcurrent = 2
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}
