package tax

import (
	"context"
	"log/slog"
	"time"

	"github.com/joseph-ayodele/docanalyzer/internal/common"
	"github.com/joseph-ayodele/docanalyzer/internal/core/match"
	"github.com/joseph-ayodele/docanalyzer/internal/core/ocr"
	"github.com/joseph-ayodele/docanalyzer/internal/entity"
)

// Renderer rasterizes PDF pages.
type Renderer interface {
	RenderPages(ctx context.Context, pdfPath string, dpi, maxPages int) (ocr.Pages, error)
}

type Config struct {
	DPI      int  // default 300
	AllPages bool // false reads the first page only
}

// Extractor reads tax-form amounts: render, OCR, then match labels against the catalog.
type Extractor struct {
	cfg        Config
	renderer   Renderer
	recognizer ocr.Recognizer
	matcher    *match.Matcher
	catalog    []entity.FieldDefinition
	logger     *slog.Logger
}

func NewExtractor(cfg Config, renderer Renderer, recognizer ocr.Recognizer, catalog []entity.FieldDefinition, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	if len(catalog) == 0 {
		catalog = match.DefaultTaxCatalog()
	}
	return &Extractor{
		cfg:        cfg,
		renderer:   renderer,
		recognizer: recognizer,
		matcher:    match.NewMatcher(logger),
		catalog:    catalog,
		logger:     logger,
	}
}

// ExtractFile OCRs the document and returns one field per catalog entry.
func (e *Extractor) ExtractFile(ctx context.Context, pdfPath string) (entity.TaxResult, error) {
	logger := common.LoggerFromContext(ctx, e.logger)
	start := time.Now()

	maxPages := 1
	if e.cfg.AllPages {
		maxPages = 0
	}
	pages, err := e.renderer.RenderPages(ctx, pdfPath, e.cfg.DPI, maxPages)
	if err != nil {
		return entity.TaxResult{}, err
	}
	defer func() {
		if err := pages.Release(); err != nil {
			logger.Warn("tax.render.cleanup_failed", "error", err)
		}
	}()

	var tokens []entity.Token
	for _, p := range pages {
		toks, err := e.recognizer.Recognize(ctx, p)
		if err != nil {
			return entity.TaxResult{}, err
		}
		logger.Debug("tax.ocr.page", "page", p.Index, "tokens", len(toks))
		tokens = append(tokens, toks...)
	}
	if len(tokens) == 0 {
		return entity.TaxResult{}, common.NewInputError("OCR found no text in the document", nil)
	}

	fields, err := e.matcher.Match(tokens, e.catalog)
	if err != nil {
		return entity.TaxResult{}, err
	}

	matched := 0
	for _, f := range fields {
		if f.Confidence == entity.ConfidenceMatched {
			matched++
		}
	}
	logger.Info("tax.match.ok",
		"path", pdfPath,
		"pages", len(pages),
		"tokens", len(tokens),
		"fields", len(fields),
		"matched", matched,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return entity.TaxResult{Fields: fields}, nil
}
