package common

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearLLMEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"OPENAI_API_KEY", "OPENAI_MODEL", "DOCANALYZER_LLM_API_KEY", "DOCANALYZER_LLM_MODEL", "GOOGLE_CLOUD_PROJECT"} {
		t.Setenv(k, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearLLMEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.OCR.DPI != 300 || cfg.LLM.Model != "gpt-4o-mini" || cfg.LLM.Timeout != 45*time.Second {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if !cfg.Estate.VisionDateFallback || cfg.Docs.TaxDir != "docs/tax" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	clearLLMEnv(t)
	path := filepath.Join(t.TempDir(), "docanalyzer.yaml")
	yaml := `
ocr:
  dpi: 200
  engine: gosseract
llm:
  provider: vertex
  vertex_project: my-project
  timeout: 10s
tax:
  all_pages: true
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DOCANALYZER_OCR_DPI", "150")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.OCR.DPI != 150 {
		t.Errorf("env should override file: dpi = %d", cfg.OCR.DPI)
	}
	if cfg.OCR.Engine != "gosseract" || cfg.LLM.Provider != "vertex" || cfg.LLM.VertexProject != "my-project" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.LLM.Timeout != 10*time.Second || !cfg.Tax.AllPages {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.LLM.APIKey != "sk-test" {
		t.Errorf("api key = %q", cfg.LLM.APIKey)
	}
}

func TestLoadConfigBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("ocr: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); !IsInput(err) {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		needLLM bool
		wantErr string
	}{
		{name: "defaults without llm", mutate: func(*Config) {}},
		{name: "missing api key", mutate: func(*Config) {}, needLLM: true, wantErr: "OPENAI_API_KEY"},
		{name: "api key set", mutate: func(c *Config) { c.LLM.APIKey = "sk" }, needLLM: true},
		{name: "vertex needs project", mutate: func(c *Config) { c.LLM.Provider = "vertex" }, needLLM: true, wantErr: "llm.vertex_project"},
		{name: "bad engine", mutate: func(c *Config) { c.OCR.Engine = "abbyy" }, wantErr: "ocr.engine"},
		{name: "bad dpi", mutate: func(c *Config) { c.OCR.DPI = 0 }, wantErr: "ocr.dpi"},
		{name: "bad confidence", mutate: func(c *Config) { c.OCR.MinWordConfidence = 101 }, wantErr: "ocr.min_word_confidence"},
		{name: "zero confidence", mutate: func(c *Config) { c.OCR.MinWordConfidence = 0 }, wantErr: "ocr.min_word_confidence"},
		{name: "bad log level", mutate: func(c *Config) { c.Log.Level = "loud" }, wantErr: "log.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate(tt.needLLM)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !IsInput(err) || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected input error mentioning %q, got %v", tt.wantErr, err)
			}
		})
	}
}
