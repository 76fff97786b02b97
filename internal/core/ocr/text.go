package ocr

import (
	"context"
	"strings"
	"time"

	"github.com/joseph-ayodele/docanalyzer/internal/common"
)

// PageSeparator is what pdftotext writes between pages.
const PageSeparator = "\f"

// ExtractText returns the text layer of a PDF with pages joined by a form feed.
// A PDF without any text layer is an input error.
func (e *Extractor) ExtractText(ctx context.Context, pdfPath string) (string, int, error) {
	start := time.Now()

	// pdftotext -layout -enc UTF-8 -eol unix <path> -
	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, e.logger, "-layout", "-enc", "UTF-8", "-eol", "unix", pdfPath, "-")
	if err != nil {
		return "", 0, toolError(ctx, e.cfg.Pdftotext, errb, err)
	}

	raw := strings.TrimRight(string(out), PageSeparator+"\n ")
	pages := 1 + strings.Count(raw, PageSeparator)

	parts := strings.Split(raw, PageSeparator)
	for i := range parts {
		parts[i] = Normalize(parts[i])
	}
	text := strings.TrimSpace(strings.Join(parts, PageSeparator))
	if strings.Trim(text, PageSeparator+" \n") == "" {
		return "", pages, common.NewInputError("no text layer found in "+pdfPath, nil)
	}

	e.logger.Debug("ocr.text.ok",
		"path", pdfPath,
		"pages", pages,
		"chars", len(text),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return text, pages, nil
}
