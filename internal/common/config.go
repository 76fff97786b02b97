package common

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	OCR    OCRConfig    `mapstructure:"ocr" yaml:"ocr"`
	LLM    LLMConfig    `mapstructure:"llm" yaml:"llm"`
	Estate EstateConfig `mapstructure:"estate" yaml:"estate"`
	Tax    TaxConfig    `mapstructure:"tax" yaml:"tax"`
	Docs   DocsConfig   `mapstructure:"docs" yaml:"docs"`
	Log    LogConfig    `mapstructure:"log" yaml:"log"`
}

// OCRConfig holds rendering and OCR configuration
type OCRConfig struct {
	Engine            string `mapstructure:"engine" yaml:"engine"` // "tesseract" (cli) | "gosseract"
	Pdftotext         string `mapstructure:"pdftotext" yaml:"pdftotext"`
	Pdftoppm          string `mapstructure:"pdftoppm" yaml:"pdftoppm"`
	Tesseract         string `mapstructure:"tesseract" yaml:"tesseract"`
	TesseractLang     string `mapstructure:"lang" yaml:"lang"`
	TessdataDir       string `mapstructure:"tessdata_dir" yaml:"tessdata_dir"`
	DPI               int    `mapstructure:"dpi" yaml:"dpi"`
	PSM               int    `mapstructure:"psm" yaml:"psm"`
	OEM               int    `mapstructure:"oem" yaml:"oem"`
	MinWordConfidence int    `mapstructure:"min_word_confidence" yaml:"min_word_confidence"`
}

// LLMConfig holds LLM-related configuration
type LLMConfig struct {
	Provider       string        `mapstructure:"provider" yaml:"provider"` // "openai" | "vertex"
	Model          string        `mapstructure:"model" yaml:"model"`
	APIKey         string        `mapstructure:"api_key" yaml:"api_key"`
	BaseURL        string        `mapstructure:"base_url" yaml:"base_url"`
	Temperature    float64       `mapstructure:"temperature" yaml:"temperature"`
	Timeout        time.Duration `mapstructure:"timeout" yaml:"timeout"`
	VertexProject  string        `mapstructure:"vertex_project" yaml:"vertex_project"`
	VertexLocation string        `mapstructure:"vertex_location" yaml:"vertex_location"`
}

// EstateConfig holds estate extraction behavior flags
type EstateConfig struct {
	VisionDateFallback bool `mapstructure:"vision_date_fallback" yaml:"vision_date_fallback"`
	VisionDPI          int  `mapstructure:"vision_dpi" yaml:"vision_dpi"`
	SummaryMaxWords    int  `mapstructure:"summary_max_words" yaml:"summary_max_words"`
}

// TaxConfig holds tax extraction configuration
type TaxConfig struct {
	CatalogPath string `mapstructure:"catalog" yaml:"catalog"`
	AllPages    bool   `mapstructure:"all_pages" yaml:"all_pages"`
}

// DocsConfig holds the folders listed by the list command
type DocsConfig struct {
	EstateDir string `mapstructure:"estate_dir" yaml:"estate_dir"`
	TaxDir    string `mapstructure:"tax_dir" yaml:"tax_dir"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	JSON  bool   `mapstructure:"json" yaml:"json"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		OCR: OCRConfig{
			Engine:            "tesseract",
			Pdftotext:         "pdftotext",
			Pdftoppm:          "pdftoppm",
			Tesseract:         "tesseract",
			TesseractLang:     "eng",
			DPI:               300,
			MinWordConfidence: 50,
		},
		LLM: LLMConfig{
			Provider:       "openai",
			Model:          "gpt-4o-mini",
			Temperature:    0.0,
			Timeout:        45 * time.Second,
			VertexLocation: "us-central1",
		},
		Estate: EstateConfig{
			VisionDateFallback: true,
			VisionDPI:          200,
			SummaryMaxWords:    100,
		},
		Docs: DocsConfig{
			EstateDir: "docs/estate",
			TaxDir:    "docs/tax",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads defaults, then the optional config file, then environment variables.
// Environment variables use the DOCANALYZER_ prefix (DOCANALYZER_OCR_DPI=200); the
// OPENAI_API_KEY, OPENAI_MODEL and TESSDATA_PREFIX variables are honored as well.
func LoadConfig(cfgFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix("DOCANALYZER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("llm.api_key", "DOCANALYZER_LLM_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("llm.model", "DOCANALYZER_LLM_MODEL", "OPENAI_MODEL")
	_ = v.BindEnv("ocr.tessdata_dir", "DOCANALYZER_OCR_TESSDATA_DIR", "TESSDATA_PREFIX")
	_ = v.BindEnv("llm.vertex_project", "DOCANALYZER_LLM_VERTEX_PROJECT", "GOOGLE_CLOUD_PROJECT")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("docanalyzer")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.docanalyzer")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, NewConfigError(fmt.Sprintf("read config file %q", v.ConfigFileUsed()), err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, NewConfigError("decode config", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("ocr.engine", d.OCR.Engine)
	v.SetDefault("ocr.pdftotext", d.OCR.Pdftotext)
	v.SetDefault("ocr.pdftoppm", d.OCR.Pdftoppm)
	v.SetDefault("ocr.tesseract", d.OCR.Tesseract)
	v.SetDefault("ocr.lang", d.OCR.TesseractLang)
	v.SetDefault("ocr.tessdata_dir", d.OCR.TessdataDir)
	v.SetDefault("ocr.dpi", d.OCR.DPI)
	v.SetDefault("ocr.psm", d.OCR.PSM)
	v.SetDefault("ocr.oem", d.OCR.OEM)
	v.SetDefault("ocr.min_word_confidence", d.OCR.MinWordConfidence)

	v.SetDefault("llm.provider", d.LLM.Provider)
	v.SetDefault("llm.model", d.LLM.Model)
	v.SetDefault("llm.api_key", d.LLM.APIKey)
	v.SetDefault("llm.base_url", d.LLM.BaseURL)
	v.SetDefault("llm.temperature", d.LLM.Temperature)
	v.SetDefault("llm.timeout", d.LLM.Timeout)
	v.SetDefault("llm.vertex_project", d.LLM.VertexProject)
	v.SetDefault("llm.vertex_location", d.LLM.VertexLocation)

	v.SetDefault("estate.vision_date_fallback", d.Estate.VisionDateFallback)
	v.SetDefault("estate.vision_dpi", d.Estate.VisionDPI)
	v.SetDefault("estate.summary_max_words", d.Estate.SummaryMaxWords)

	v.SetDefault("tax.catalog", d.Tax.CatalogPath)
	v.SetDefault("tax.all_pages", d.Tax.AllPages)

	v.SetDefault("docs.estate_dir", d.Docs.EstateDir)
	v.SetDefault("docs.tax_dir", d.Docs.TaxDir)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.json", d.Log.JSON)
}

// Validate validates the loaded configuration. needLLM is set when the run will call the LLM.
func (c *Config) Validate(needLLM bool) error {
	v := NewValidator().
		Field("ocr.engine", c.OCR.Engine, OneOf("tesseract", "gosseract")).
		Field("ocr.dpi", c.OCR.DPI, Positive).
		Field("ocr.min_word_confidence", c.OCR.MinWordConfidence, IntRange(1, 100)).
		Field("llm.provider", c.LLM.Provider, OneOf("openai", "vertex")).
		Field("log.level", strings.ToLower(c.Log.Level), OneOf("debug", "info", "warn", "error"))

	if needLLM {
		switch c.LLM.Provider {
		case "openai":
			v.Field("llm.api_key (OPENAI_API_KEY)", c.LLM.APIKey, Required)
		case "vertex":
			v.Field("llm.vertex_project", c.LLM.VertexProject, Required).
				Field("llm.vertex_location", c.LLM.VertexLocation, Required)
		}
	}
	if c.Estate.VisionDateFallback {
		v.Field("estate.vision_dpi", c.Estate.VisionDPI, Positive)
	}
	return ValidateAndReturnError(v)
}
