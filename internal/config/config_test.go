package config

import (
	"os"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: Config{
				Gemini: GeminiConfig{
					APIKeys: []string{"key-1"},
				},
			},
			wantErr: false,
		},
		{
			name:    "missing api keys",
			config:  Config{},
			wantErr: true,
		},
		{
			name: "notion enabled without token",
			config: Config{
				Gemini: GeminiConfig{
					APIKeys: []string{"key-1"},
				},
				Notion: NotionConfig{
					Enabled:    true,
					DatabaseID: "db-1",
				},
			},
			wantErr: true,
		},
		{
			name: "notion enabled without database",
			config: Config{
				Gemini: GeminiConfig{
					APIKeys: []string{"key-1"},
				},
				Notion: NotionConfig{
					Enabled: true,
					Token:   "secret",
				},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{
		Gemini: GeminiConfig{APIKeys: []string{"key-1"}},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Gemini.Model != "gemini-2.5-flash" {
		t.Errorf("Model = %v, want gemini-2.5-flash", cfg.Gemini.Model)
	}
	if cfg.Gemini.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %v, want 3", cfg.Gemini.MaxAttempts)
	}
	if cfg.Notes.ChunkSize != 4000 {
		t.Errorf("ChunkSize = %v, want 4000", cfg.Notes.ChunkSize)
	}
	if cfg.Notes.SummaryLength != 300 {
		t.Errorf("SummaryLength = %v, want 300", cfg.Notes.SummaryLength)
	}
	if cfg.Notes.KeyConcepts != 10 {
		t.Errorf("KeyConcepts = %v, want 10", cfg.Notes.KeyConcepts)
	}
	if cfg.YouTube.Language != "en" {
		t.Errorf("Language = %v, want en", cfg.YouTube.Language)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Level = %v, want info", cfg.Logging.Level)
	}
}

func TestLoad(t *testing.T) {
	// Create a temporary config file
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	content := `
youtube:
  language: "es"

gemini:
  model: "gemini-2.5-pro"
  api_keys:
    - "key-1"
    - "key-2"

notes:
  chunk_size: 6000
  summary_length: 200
  chapters: 4

logging:
  level: "debug"
`

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	// Test loading
	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.YouTube.Language != "es" {
		t.Errorf("Language = %v, want %v", cfg.YouTube.Language, "es")
	}
	if cfg.Gemini.Model != "gemini-2.5-pro" {
		t.Errorf("Model = %v, want %v", cfg.Gemini.Model, "gemini-2.5-pro")
	}
	if len(cfg.Gemini.APIKeys) != 2 {
		t.Errorf("APIKeys count = %v, want 2", len(cfg.Gemini.APIKeys))
	}
	if cfg.Notes.ChunkSize != 6000 {
		t.Errorf("ChunkSize = %v, want 6000", cfg.Notes.ChunkSize)
	}
	// Defaults still applied for unset fields
	if cfg.Notes.KeyConcepts != 10 {
		t.Errorf("KeyConcepts = %v, want 10", cfg.Notes.KeyConcepts)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	content := `
gemini:
  api_keys:
    - "file-key"

notion:
  enabled: true
  database_id: "file-db"
`
	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	t.Setenv("GEMINI_API_KEYS", "env-key-1, env-key-2")
	t.Setenv("NOTION_TOKEN", "env-token")
	t.Setenv("NOTION_DATABASE_ID", "env-db")

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.Gemini.APIKeys) != 2 || cfg.Gemini.APIKeys[0] != "env-key-1" {
		t.Errorf("APIKeys = %v, want env keys", cfg.Gemini.APIKeys)
	}
	if cfg.Notion.Token != "env-token" {
		t.Errorf("Token = %v, want env-token", cfg.Notion.Token)
	}
	if cfg.Notion.DatabaseID != "env-db" {
		t.Errorf("DatabaseID = %v, want env-db", cfg.Notion.DatabaseID)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}
