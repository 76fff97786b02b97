package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/joseph-ayodele/docanalyzer/constants"
	"github.com/joseph-ayodele/docanalyzer/internal/common"
	"github.com/joseph-ayodele/docanalyzer/internal/core"
	"github.com/joseph-ayodele/docanalyzer/internal/core/estate"
	"github.com/joseph-ayodele/docanalyzer/internal/core/llm"
	"github.com/joseph-ayodele/docanalyzer/internal/core/llm/openai"
	"github.com/joseph-ayodele/docanalyzer/internal/core/llm/vertex"
	"github.com/joseph-ayodele/docanalyzer/internal/core/match"
	"github.com/joseph-ayodele/docanalyzer/internal/core/ocr"
	"github.com/joseph-ayodele/docanalyzer/internal/core/tax"
	"github.com/joseph-ayodele/docanalyzer/internal/entity"
)

func newOCR(c *common.Config) *ocr.Extractor {
	return ocr.NewExtractor(ocr.Config{
		Pdftotext:         c.OCR.Pdftotext,
		Pdftoppm:          c.OCR.Pdftoppm,
		Tesseract:         c.OCR.Tesseract,
		TesseractLang:     c.OCR.TesseractLang,
		TessdataDir:       c.OCR.TessdataDir,
		DPI:               c.OCR.DPI,
		PSM:               c.OCR.PSM,
		OEM:               c.OCR.OEM,
		MinWordConfidence: float64(c.OCR.MinWordConfidence),
	}, logger)
}

// newCompleter builds the configured LLM backend. The returned close func is never nil.
func newCompleter(ctx context.Context, c *common.Config) (llm.Completer, func() error, error) {
	switch strings.ToLower(c.LLM.Provider) {
	case "", "openai":
		client := openai.NewClient(openai.Config{
			APIKey:      c.LLM.APIKey,
			BaseURL:     c.LLM.BaseURL,
			Model:       c.LLM.Model,
			Temperature: c.LLM.Temperature,
			Timeout:     c.LLM.Timeout,
		}, logger)
		return client, func() error { return nil }, nil
	case "vertex":
		model := c.LLM.Model
		if model == openai.DefaultModel {
			model = ""
		}
		client, err := vertex.NewClient(ctx, vertex.Config{
			Project:     c.LLM.VertexProject,
			Location:    c.LLM.VertexLocation,
			Model:       model,
			Temperature: c.LLM.Temperature,
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		return client, client.Close, nil
	}
	return nil, nil, common.NewConfigError(fmt.Sprintf("unknown llm provider %q", c.LLM.Provider), nil)
}

// loadCatalog returns the catalog at path, or the built-in tax catalog when path is empty.
func loadCatalog(path string) ([]entity.FieldDefinition, error) {
	if path == "" {
		return match.DefaultTaxCatalog(), nil
	}
	return match.LoadCatalog(path)
}

// newProcessor wires only the pieces kind needs, so a tax run never asks for an API key.
func newProcessor(ctx context.Context, c *common.Config, kind constants.DocType) (*core.Processor, func() error, error) {
	if err := c.Validate(kind == constants.Estate); err != nil {
		return nil, nil, err
	}
	ocrx := newOCR(c)

	switch kind {
	case constants.Estate:
		completer, closeFn, err := newCompleter(ctx, c)
		if err != nil {
			return nil, nil, err
		}
		ex := estate.NewExtractor(estate.Config{
			VisionDateFallback: c.Estate.VisionDateFallback,
			VisionDPI:          c.Estate.VisionDPI,
			SummaryMaxWords:    c.Estate.SummaryMaxWords,
		}, completer, ocrx, logger)
		return core.NewProcessor(logger, ex, nil), closeFn, nil

	case constants.Tax:
		recognizer, err := ocr.NewRecognizer(c.OCR.Engine, ocrx, logger)
		if err != nil {
			return nil, nil, err
		}
		catalog, err := loadCatalog(c.Tax.CatalogPath)
		if err != nil {
			return nil, nil, err
		}
		ex := tax.NewExtractor(tax.Config{
			DPI:      c.OCR.DPI,
			AllPages: c.Tax.AllPages,
		}, ocrx, recognizer, catalog, logger)
		return core.NewProcessor(logger, nil, ex), func() error { return nil }, nil
	}
	return nil, nil, common.NewInputError(fmt.Sprintf("unknown document type %q", kind), nil)
}
