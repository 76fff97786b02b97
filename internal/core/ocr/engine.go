//go:build !gosseract

package ocr

import (
	"log/slog"

	"github.com/joseph-ayodele/docanalyzer/internal/common"
)

// NewRecognizer picks the OCR engine named in cfg. The in-process engine
// needs the binary to be built with -tags gosseract.
func NewRecognizer(engine string, ex *Extractor, logger *slog.Logger) (Recognizer, error) {
	switch engine {
	case "", EngineTesseract:
		return ex, nil
	case EngineGosseract:
		return nil, common.NewConfigError("ocr engine gosseract requires building with -tags gosseract", nil)
	default:
		return nil, common.NewConfigError("unknown ocr engine "+engine, nil)
	}
}
