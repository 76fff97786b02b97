package ocr

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/joseph-ayodele/docanalyzer/internal/entity"
)

// tesseract TSV columns.
const (
	colLevel = iota
	colPage
	colBlock
	colPar
	colLine
	colWord
	colLeft
	colTop
	colWidth
	colHeight
	colConf
	colText
	tsvColumns
)

const levelWord = 5

// Recognize runs the tesseract CLI in TSV mode and returns the page's word tokens.
func (e *Extractor) Recognize(ctx context.Context, page Page) ([]entity.Token, error) {
	start := time.Now()

	args := []string{page.Path, "stdout", "-l", e.cfg.TesseractLang}
	if e.cfg.PSM > 0 {
		args = append(args, "--psm", strconv.Itoa(e.cfg.PSM))
	}
	if e.cfg.OEM > 0 {
		args = append(args, "--oem", strconv.Itoa(e.cfg.OEM))
	}
	if e.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", e.cfg.TessdataDir)
	}
	if page.DPI > 0 {
		args = append(args, "--dpi", strconv.Itoa(page.DPI))
	}
	args = append(args, "tsv")

	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, e.logger, args...)
	if err != nil {
		return nil, toolError(ctx, e.cfg.Tesseract, errb, err)
	}

	tokens := ParseTSV(string(out), page.Index, e.cfg.MinWordConfidence)
	e.logger.Debug("ocr.recognize.ok",
		"page", page.Index,
		"tokens", len(tokens),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return tokens, nil
}

// ParseTSV keeps word-level rows with non-blank text and conf >= minConf.
// Malformed rows are skipped.
func ParseTSV(tsv string, pageIndex int, minConf float64) []entity.Token {
	var tokens []entity.Token
	for i, ln := range strings.Split(tsv, "\n") {
		if i == 0 && strings.HasPrefix(ln, "level") {
			continue
		}
		ln = strings.TrimRight(ln, "\r")
		cols := strings.Split(ln, "\t")
		if len(cols) < tsvColumns {
			continue
		}
		if atoi(cols[colLevel]) != levelWord {
			continue
		}
		text := strings.TrimSpace(strings.Join(cols[colText:], " "))
		if text == "" {
			continue
		}
		conf, err := strconv.ParseFloat(cols[colConf], 64)
		if err != nil || conf < minConf {
			continue
		}
		tokens = append(tokens, entity.Token{
			Text:      text,
			X:         atoi(cols[colLeft]),
			Y:         atoi(cols[colTop]),
			Width:     atoi(cols[colWidth]),
			Height:    atoi(cols[colHeight]),
			PageIndex: pageIndex,
			Block:     atoi(cols[colBlock]),
			Par:       atoi(cols[colPar]),
			Line:      atoi(cols[colLine]),
			Conf:      conf,
		})
	}
	return tokens
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return -1
	}
	return n
}
