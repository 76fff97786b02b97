package tax

import (
	"context"
	"errors"
	"testing"

	"github.com/joseph-ayodele/docanalyzer/internal/common"
	"github.com/joseph-ayodele/docanalyzer/internal/core/match"
	"github.com/joseph-ayodele/docanalyzer/internal/core/ocr"
	"github.com/joseph-ayodele/docanalyzer/internal/entity"
)

type fakeRenderer struct {
	pages    int
	maxPages int
	err      error
}

func (r *fakeRenderer) RenderPages(_ context.Context, _ string, dpi, maxPages int) (ocr.Pages, error) {
	r.maxPages = maxPages
	if r.err != nil {
		return nil, r.err
	}
	n := r.pages
	if maxPages > 0 && n > maxPages {
		n = maxPages
	}
	out := make(ocr.Pages, n)
	for i := range out {
		out[i] = ocr.Page{Index: i, DPI: dpi}
	}
	return out, nil
}

type fakeRecognizer map[int][]entity.Token

func (f fakeRecognizer) Recognize(_ context.Context, p ocr.Page) ([]entity.Token, error) {
	return f[p.Index], nil
}

func word(text string, x, y, page int) entity.Token {
	return entity.Token{Text: text, X: x, Y: y, Width: 40, Height: 20, PageIndex: page}
}

func TestExtractFileFirstPage(t *testing.T) {
	r := &fakeRenderer{pages: 2}
	rec := fakeRecognizer{
		0: {word("4", 10, 100, 0), word("$1,234.56", 900, 100, 0), word("7", 10, 200, 0), word("52,000.00", 900, 200, 0)},
		1: {word("10", 10, 100, 1), word("10.00", 900, 100, 1)},
	}
	catalog := match.DefaultTaxCatalog()
	e := NewExtractor(Config{}, r, rec, catalog, nil)

	res, err := e.ExtractFile(context.Background(), "1040.pdf")
	if err != nil {
		t.Fatalf("ExtractFile: %v", err)
	}
	if r.maxPages != 1 {
		t.Errorf("maxPages = %d, want 1", r.maxPages)
	}
	if len(res.Fields) != len(catalog) {
		t.Fatalf("got %d fields, want %d", len(res.Fields), len(catalog))
	}
	if f := res.Fields[0]; f.Confidence != entity.ConfidenceMatched || f.Amount.String() != "1234.56" {
		t.Errorf("field 4 = %+v", f)
	}
	if f := res.Fields[1]; f.Amount == nil || f.Amount.String() != "52000" {
		t.Errorf("field 7 = %+v", f)
	}
	if f := res.Fields[2]; f.Confidence != entity.ConfidenceNotFound || f.Amount != nil {
		t.Errorf("field 10 should be NOT_FOUND on the first page, got %+v", f)
	}
}

func TestExtractFileAllPages(t *testing.T) {
	r := &fakeRenderer{pages: 2}
	rec := fakeRecognizer{
		0: {word("4", 10, 100, 0)},
		1: {word("10", 10, 100, 1), word("10.00", 900, 100, 1)},
	}
	e := NewExtractor(Config{AllPages: true}, r, rec, nil, nil)

	res, err := e.ExtractFile(context.Background(), "1040.pdf")
	if err != nil {
		t.Fatalf("ExtractFile: %v", err)
	}
	if r.maxPages != 0 {
		t.Errorf("maxPages = %d, want 0", r.maxPages)
	}
	if f := res.Fields[2]; f.FieldID != "10" || f.Confidence != entity.ConfidenceMatched {
		t.Errorf("field 10 = %+v", f)
	}
}

func TestExtractFileNoTokens(t *testing.T) {
	e := NewExtractor(Config{}, &fakeRenderer{pages: 1}, fakeRecognizer{}, nil, nil)
	if _, err := e.ExtractFile(context.Background(), "blank.pdf"); !common.IsInput(err) {
		t.Fatalf("expected input error, got %v", err)
	}
}

func TestExtractFileRenderError(t *testing.T) {
	want := common.NewExternalServiceError("pdftoppm failed", errors.New("exit 1"))
	e := NewExtractor(Config{}, &fakeRenderer{err: want}, fakeRecognizer{}, nil, nil)
	if _, err := e.ExtractFile(context.Background(), "x.pdf"); !errors.Is(err, want) {
		t.Fatalf("expected render error, got %v", err)
	}
}
