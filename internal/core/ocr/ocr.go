package ocr

import (
	"context"
	"log/slog"

	"github.com/joseph-ayodele/docanalyzer/internal/entity"
)

const (
	EngineTesseract = "tesseract"
	EngineGosseract = "gosseract"
)

type Config struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	TesseractLang string // default "eng"
	TessdataDir   string
	DPI           int // rasterization DPI, default 300
	MaxPages      int // 0 = no limit

	PSM int // page segmentation mode; 0 leaves tesseract's default
	OEM int // 1 = LSTM; leave 0 to use default

	// MinWordConfidence drops words tesseract is less sure about (1..100); zero means the default, 50.
	MinWordConfidence float64

	// TempDir is where page images are rendered; empty uses os.TempDir.
	TempDir string
}

// Recognizer turns a rendered page into word tokens.
type Recognizer interface {
	Recognize(ctx context.Context, page Page) ([]entity.Token, error)
}

// Extractor wraps the poppler and tesseract command line tools.
type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

// Option customizes an Extractor.
type Option func(*Extractor)

// WithRunner swaps the command runner, mostly for tests.
func WithRunner(r Runner) Option {
	return func(e *Extractor) { e.runner = r }
}

func NewExtractor(cfg Config, logger *slog.Logger, opts ...Option) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "eng"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	if cfg.MinWordConfidence <= 0 {
		cfg.MinWordConfidence = 50
	}
	e := &Extractor{cfg: cfg, runner: ExecRunner{}, logger: logger}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the effective configuration with defaults applied.
func (e *Extractor) Config() Config { return e.cfg }
