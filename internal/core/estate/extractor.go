package estate

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joseph-ayodele/docanalyzer/internal/common"
	"github.com/joseph-ayodele/docanalyzer/internal/core/llm"
	"github.com/joseph-ayodele/docanalyzer/internal/core/ocr"
	"github.com/joseph-ayodele/docanalyzer/internal/entity"
)

var estateSchema = sync.OnceValues(func() (*llm.Schema, error) {
	return llm.CompileSchema("estate", llm.BuildEstateJSONSchema(entity.EstateKeys))
})

type Config struct {
	// VisionDateFallback asks the vision model for a signing date when the text pass found none.
	VisionDateFallback bool
	VisionDPI          int     // default 200
	CropFraction       float64 // bottom share of the page sent to vision, default 0.35
	MaxVisionWidth     int     // crops wider than this are scaled down, default 1600
	SummaryMaxWords    int     // default 100
}

// DocumentSource is the text and raster view of a PDF.
type DocumentSource interface {
	ExtractText(ctx context.Context, pdfPath string) (string, int, error)
	RenderPage(ctx context.Context, pdfPath string, pageIndex, dpi int) (ocr.Page, error)
}

// Extractor turns the text of an estate document into an EstateRecord with one LLM call.
type Extractor struct {
	cfg       Config
	completer llm.Completer
	docs      DocumentSource
	pageCount func(pdfPath string) (int, error)
	logger    *slog.Logger
}

// Option customizes an Extractor.
type Option func(*Extractor)

// WithPageCounter replaces the pdfcpu page counter, mostly for tests.
func WithPageCounter(fn func(pdfPath string) (int, error)) Option {
	return func(e *Extractor) { e.pageCount = fn }
}

func NewExtractor(cfg Config, completer llm.Completer, docs DocumentSource, logger *slog.Logger, opts ...Option) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.VisionDPI <= 0 {
		cfg.VisionDPI = 200
	}
	if cfg.CropFraction <= 0 || cfg.CropFraction > 1 {
		cfg.CropFraction = 0.35
	}
	if cfg.MaxVisionWidth <= 0 {
		cfg.MaxVisionWidth = 1600
	}
	if cfg.SummaryMaxWords <= 0 {
		cfg.SummaryMaxWords = 100
	}
	e := &Extractor{cfg: cfg, completer: completer, docs: docs, pageCount: ocr.PageCount, logger: logger}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract asks the LLM for the estate fields of fullText. Every key must come
// back; nothing is guessed when one is missing.
func (e *Extractor) Extract(ctx context.Context, fullText string) (entity.EstateRecord, error) {
	logger := common.LoggerFromContext(ctx, e.logger)
	if strings.TrimSpace(fullText) == "" {
		return entity.EstateRecord{}, common.NewInputError("document text is empty", nil)
	}

	fields, raw, err := e.completer.Complete(ctx, llm.CompletionRequest{
		System:     llm.EstateSystemPrompt,
		Prompt:     llm.BuildEstatePrompt(entity.EstateKeys, fullText),
		SchemaKeys: entity.EstateKeys,
	})
	if err != nil {
		if !common.IsExternalService(err) {
			err = common.NewExternalServiceError("llm call failed", err)
		}
		return entity.EstateRecord{}, err
	}

	schema, err := estateSchema()
	if err != nil {
		return entity.EstateRecord{}, fmt.Errorf("estate schema: %w", err)
	}
	if err := schema.Validate(raw); err != nil {
		logger.Error("estate.extract.schema_failed", "error", err, "content", string(raw))
		return entity.EstateRecord{}, common.NewSchemaError("llm reply does not carry every estate field", err)
	}

	pages, err := parsePageCount(fields[entity.KeyPageCount])
	if err != nil {
		return entity.EstateRecord{}, common.NewSchemaError("page_count is not a number", err)
	}

	rec := entity.EstateRecord{
		Title:        fields[entity.KeyTitle],
		DocumentDate: fields[entity.KeyDocumentDate],
		ClientName:   fields[entity.KeyClientName],
		GoverningLaw: fields[entity.KeyGoverningLaw],
		AgentName:    fields[entity.KeyAgentName],
		Summary:      fields[entity.KeySummary],
		PageCount:    pages,
	}
	if words := strings.Fields(rec.Summary); len(words) > e.cfg.SummaryMaxWords {
		logger.Warn("estate.extract.summary_truncated", "words", len(words), "max_words", e.cfg.SummaryMaxWords)
		rec.Summary = strings.Join(words[:e.cfg.SummaryMaxWords], " ")
	}
	return rec, nil
}

// ExtractFile reads the PDF's text layer, runs Extract, and takes the page
// count from the PDF itself. An empty document date triggers the vision
// fallback when it is enabled.
func (e *Extractor) ExtractFile(ctx context.Context, pdfPath string) (entity.EstateRecord, error) {
	logger := common.LoggerFromContext(ctx, e.logger)
	start := time.Now()

	pages, err := e.pageCount(pdfPath)
	if err != nil {
		return entity.EstateRecord{}, err
	}
	text, _, err := e.docs.ExtractText(ctx, pdfPath)
	if err != nil {
		return entity.EstateRecord{}, err
	}

	rec, err := e.Extract(ctx, text)
	if err != nil {
		return entity.EstateRecord{}, err
	}
	if rec.PageCount != pages {
		logger.Debug("estate.extract.page_count_override", "llm", rec.PageCount, "pdf", pages)
	}
	rec.PageCount = pages

	if rec.DocumentDate == "" && e.cfg.VisionDateFallback {
		date, err := e.searchDate(ctx, pdfPath, pages)
		if err != nil {
			return entity.EstateRecord{}, err
		}
		rec.DocumentDate = date
	}

	logger.Info("estate.extract.ok",
		"path", pdfPath,
		"pages", pages,
		"has_date", rec.DocumentDate != "",
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return rec, nil
}

// searchDate renders each page, crops the signature area, and asks the vision
// model for a date. The first reply containing a date wins.
func (e *Extractor) searchDate(ctx context.Context, pdfPath string, pages int) (string, error) {
	logger := common.LoggerFromContext(ctx, e.logger)
	prompt := llm.VisionDatePrompt()

	for i := 0; i < pages; i++ {
		img, err := e.pageImage(ctx, pdfPath, i)
		if err != nil {
			return "", err
		}
		reply, err := e.completer.Vision(ctx, prompt, img, "image/png")
		if err != nil {
			return "", err
		}
		if date := FindDate(reply); date != "" {
			logger.Info("estate.vision_date.found", "page", i, "date", date)
			return date, nil
		}
	}
	logger.Info("estate.vision_date.none", "pages", pages)
	return "", nil
}

func (e *Extractor) pageImage(ctx context.Context, pdfPath string, index int) ([]byte, error) {
	page, err := e.docs.RenderPage(ctx, pdfPath, index, e.cfg.VisionDPI)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := page.Release(); err != nil {
			common.LoggerFromContext(ctx, e.logger).Warn("estate.render.cleanup_failed", "path", page.Path, "error", err)
		}
	}()

	data, err := os.ReadFile(page.Path)
	if err != nil {
		return nil, fmt.Errorf("read rendered page: %w", err)
	}
	cropped, err := ocr.CropBottom(data, e.cfg.CropFraction, e.cfg.MaxVisionWidth)
	if err != nil {
		return nil, common.NewInputError(fmt.Sprintf("page %d image unusable", index+1), err)
	}
	return cropped, nil
}

// parsePageCount accepts "", "4", "4.0" or "4 pages".
func parsePageCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f), nil
	}
	if fields := strings.Fields(s); len(fields) > 1 {
		if n, err := strconv.Atoi(fields[0]); err == nil {
			return n, nil
		}
	}
	return 0, fmt.Errorf("unparsable page count %q", s)
}
