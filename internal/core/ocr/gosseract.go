//go:build gosseract

package ocr

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/otiai10/gosseract/v2"

	"github.com/joseph-ayodele/docanalyzer/internal/common"
	"github.com/joseph-ayodele/docanalyzer/internal/entity"
)

// tessClient is the part of *gosseract.Client the engine drives.
type tessClient interface {
	SetTessdataPrefix(prefix string) error
	SetLanguage(langs ...string) error
	SetPageSegMode(mode gosseract.PageSegMode) error
	SetVariable(key gosseract.SettableVariable, value string) error
	SetImage(imagepath string) error
	GetBoundingBoxesVerbose() ([]gosseract.BoundingBox, error)
	Close() error
}

// GosseractEngine recognizes words in-process through libtesseract.
type GosseractEngine struct {
	cfg           Config
	logger        *slog.Logger
	clientFactory func() tessClient
}

func NewGosseractEngine(cfg Config, logger *slog.Logger) *GosseractEngine {
	if logger == nil {
		logger = slog.Default()
	}
	return &GosseractEngine{
		cfg:           cfg,
		logger:        logger,
		clientFactory: func() tessClient { return gosseract.NewClient() },
	}
}

// NewRecognizer picks the OCR engine named in cfg.
func NewRecognizer(engine string, ex *Extractor, logger *slog.Logger) (Recognizer, error) {
	switch engine {
	case "", EngineTesseract:
		return ex, nil
	case EngineGosseract:
		return NewGosseractEngine(ex.Config(), logger), nil
	default:
		return nil, common.NewConfigError("unknown ocr engine "+engine, nil)
	}
}

func (g *GosseractEngine) Recognize(ctx context.Context, page Page) ([]entity.Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	c := g.clientFactory()
	defer func() { _ = c.Close() }()

	if g.cfg.TessdataDir != "" {
		if err := c.SetTessdataPrefix(g.cfg.TessdataDir); err != nil {
			return nil, common.NewExternalServiceError("gosseract tessdata", err)
		}
	}
	if err := c.SetLanguage(g.cfg.TesseractLang); err != nil {
		return nil, common.NewExternalServiceError("gosseract language", err)
	}
	if g.cfg.PSM > 0 {
		if err := c.SetPageSegMode(gosseract.PageSegMode(g.cfg.PSM)); err != nil {
			return nil, common.NewExternalServiceError("gosseract psm", err)
		}
	}
	if page.DPI > 0 {
		if err := c.SetVariable("user_defined_dpi", strconv.Itoa(page.DPI)); err != nil {
			return nil, common.NewExternalServiceError("gosseract dpi", err)
		}
	}
	if err := c.SetImage(page.Path); err != nil {
		return nil, common.NewExternalServiceError("gosseract set image", err)
	}

	// The verbose call is the one that fills in block, paragraph and line numbers.
	boxes, err := c.GetBoundingBoxesVerbose()
	if err != nil {
		return nil, common.NewExternalServiceError("gosseract recognize", err)
	}

	tokens := make([]entity.Token, 0, len(boxes))
	for _, b := range boxes {
		if b.Word == "" || b.Confidence < g.cfg.MinWordConfidence {
			continue
		}
		tokens = append(tokens, entity.Token{
			Text:      b.Word,
			X:         b.Box.Min.X,
			Y:         b.Box.Min.Y,
			Width:     b.Box.Dx(),
			Height:    b.Box.Dy(),
			PageIndex: page.Index,
			Block:     b.BlockNum,
			Par:       b.ParNum,
			Line:      b.LineNum,
			Conf:      b.Confidence,
		})
	}
	g.logger.Debug("ocr.recognize.ok",
		"engine", EngineGosseract,
		"page", page.Index,
		"tokens", len(tokens),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return tokens, nil
}
