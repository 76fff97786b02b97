package ocr

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joseph-ayodele/docanalyzer/internal/common"
)

// Page is one rendered PDF page on disk.
type Page struct {
	Index int // 0-based
	Path  string
	DPI   int
	// Dir is the render directory Release removes; empty when the caller owns Path.
	Dir string
}

// Release removes the page's render directory.
func (p Page) Release() error {
	if p.Dir == "" {
		return nil
	}
	return os.RemoveAll(p.Dir)
}

// Pages is a set of rendered pages in page order.
type Pages []Page

// Release removes every page's render directory.
func (ps Pages) Release() error {
	var errs []error
	for _, p := range ps {
		errs = append(errs, p.Release())
	}
	return errors.Join(errs...)
}

// RenderPage rasterizes a single page (0-based) to PNG at the given DPI.
func (e *Extractor) RenderPage(ctx context.Context, pdfPath string, pageIndex, dpi int) (Page, error) {
	if pageIndex < 0 {
		return Page{}, common.NewInputError(fmt.Sprintf("page index %d out of range", pageIndex), nil)
	}
	if dpi <= 0 {
		dpi = e.cfg.DPI
	}
	start := time.Now()

	dir, err := os.MkdirTemp(e.cfg.TempDir, "docanalyzer-render-*")
	if err != nil {
		return Page{}, fmt.Errorf("create render dir: %w", err)
	}
	prefix := filepath.Join(dir, "page")
	n := strconv.Itoa(pageIndex + 1)

	// pdftoppm -r 300 -png -f N -l N -singlefile <in.pdf> <dir/page>
	_, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm, e.logger,
		"-r", strconv.Itoa(dpi), "-png", "-f", n, "-l", n, "-singlefile", pdfPath, prefix)
	if err != nil {
		_ = os.RemoveAll(dir)
		return Page{}, toolError(ctx, e.cfg.Pdftoppm, errb, err)
	}

	out := prefix + ".png"
	if _, statErr := os.Stat(out); statErr != nil {
		_ = os.RemoveAll(dir)
		return Page{}, common.NewExternalServiceError("pdftoppm produced no image", statErr)
	}

	e.logger.Debug("ocr.render.ok",
		"path", pdfPath,
		"page", pageIndex,
		"dpi", dpi,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return Page{Index: pageIndex, Path: out, DPI: dpi, Dir: dir}, nil
}

// RenderPages rasterizes the first maxPages pages (0 = all) in page order.
func (e *Extractor) RenderPages(ctx context.Context, pdfPath string, dpi, maxPages int) (Pages, error) {
	count, err := PageCount(pdfPath)
	if err != nil {
		return nil, err
	}
	if maxPages <= 0 {
		maxPages = e.cfg.MaxPages
	}
	if maxPages > 0 && count > maxPages {
		count = maxPages
	}

	pages := make(Pages, 0, count)
	for i := 0; i < count; i++ {
		p, err := e.RenderPage(ctx, pdfPath, i, dpi)
		if err != nil {
			_ = pages.Release()
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, nil
}
