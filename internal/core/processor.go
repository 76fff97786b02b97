package core

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joseph-ayodele/docanalyzer/constants"
	"github.com/joseph-ayodele/docanalyzer/internal/common"
	"github.com/joseph-ayodele/docanalyzer/internal/core/ocr"
	"github.com/joseph-ayodele/docanalyzer/internal/entity"
)

// EstateExtractor reads an estate document into its structured record.
type EstateExtractor interface {
	ExtractFile(ctx context.Context, pdfPath string) (entity.EstateRecord, error)
}

// TaxExtractor reads the catalog amounts from a tax document.
type TaxExtractor interface {
	ExtractFile(ctx context.Context, pdfPath string) (entity.TaxResult, error)
}

// Result carries exactly one of Estate or Tax, matching Kind.
type Result struct {
	Kind   constants.DocType
	Path   string
	Estate *entity.EstateRecord
	Tax    *entity.TaxResult
}

// Payload returns the populated record.
func (r Result) Payload() any {
	if r.Estate != nil {
		return r.Estate
	}
	return r.Tax
}

// Processor validates the input file and dispatches it to the extractor for its document type.
type Processor struct {
	logger    *slog.Logger
	estate    EstateExtractor
	tax       TaxExtractor
	pageCount func(pdfPath string) (int, error)
}

func NewProcessor(logger *slog.Logger, estate EstateExtractor, tax TaxExtractor) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		logger:    logger,
		estate:    estate,
		tax:       tax,
		pageCount: ocr.PageCount,
	}
}

// Process runs one document through the pipeline for kind. Nothing partial is
// returned on error.
func (p *Processor) Process(ctx context.Context, kind constants.DocType, pdfPath string) (Result, error) {
	ctx = common.WithRunID(ctx)
	ctx = common.WithLogger(ctx, p.logger.With("kind", string(kind)))
	logger := common.LoggerFromContext(ctx, p.logger).With("path", pdfPath)
	start := time.Now()

	if err := p.validateFile(pdfPath); err != nil {
		logger.Error("processor.validate.failed", "err", err)
		return Result{}, err
	}

	res := Result{Kind: kind, Path: pdfPath}
	switch kind {
	case constants.Estate:
		if p.estate == nil {
			return Result{}, common.NewConfigError("estate extractor is not configured", nil)
		}
		rec, err := p.estate.ExtractFile(ctx, pdfPath)
		if err != nil {
			logger.Error("processor.estate.failed", "err", err)
			return Result{}, err
		}
		res.Estate = &rec
	case constants.Tax:
		if p.tax == nil {
			return Result{}, common.NewConfigError("tax extractor is not configured", nil)
		}
		tr, err := p.tax.ExtractFile(ctx, pdfPath)
		if err != nil {
			logger.Error("processor.tax.failed", "err", err)
			return Result{}, err
		}
		res.Tax = &tr
	default:
		return Result{}, common.NewInputError(fmt.Sprintf("unknown document type %q", kind), nil)
	}

	logger.Info("processor.done", "elapsed_ms", time.Since(start).Milliseconds())
	return res, nil
}

// validateFile checks the path exists, is a regular .pdf file, and parses as a PDF.
func (p *Processor) validateFile(pdfPath string) error {
	info, err := os.Stat(pdfPath)
	if err != nil {
		return common.NewInputError(fmt.Sprintf("cannot open %s", pdfPath), err)
	}
	if info.IsDir() {
		return common.NewInputError(fmt.Sprintf("%s is a directory", pdfPath), nil)
	}
	if !constants.IsAllowedExt(filepath.Ext(pdfPath)) {
		return common.NewInputError(fmt.Sprintf("%s is not a PDF file", filepath.Base(pdfPath)), nil)
	}
	if _, err := p.pageCount(pdfPath); err != nil {
		return err
	}
	return nil
}
