//go:build gosseract

package ocr

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/otiai10/gosseract/v2"

	"github.com/joseph-ayodele/docanalyzer/internal/common"
	"github.com/joseph-ayodele/docanalyzer/internal/entity"
)

type fakeTess struct {
	boxes   []gosseract.BoundingBox
	err     error
	lang    []string
	vars    map[gosseract.SettableVariable]string
	image   string
	closed  bool
	verbose bool
}

func (f *fakeTess) SetTessdataPrefix(string) error             { return nil }
func (f *fakeTess) SetLanguage(langs ...string) error          { f.lang = langs; return nil }
func (f *fakeTess) SetPageSegMode(gosseract.PageSegMode) error { return nil }
func (f *fakeTess) SetImage(path string) error                 { f.image = path; return nil }
func (f *fakeTess) Close() error                               { f.closed = true; return nil }
func (f *fakeTess) SetVariable(k gosseract.SettableVariable, v string) error {
	if f.vars == nil {
		f.vars = map[gosseract.SettableVariable]string{}
	}
	f.vars[k] = v
	return nil
}
func (f *fakeTess) GetBoundingBoxesVerbose() ([]gosseract.BoundingBox, error) {
	f.verbose = true
	return f.boxes, f.err
}

func newFakeEngine(f *fakeTess) *GosseractEngine {
	g := NewGosseractEngine(Config{TesseractLang: "eng", MinWordConfidence: 50}, nil)
	g.clientFactory = func() tessClient { return f }
	return g
}

func TestGosseractRecognizeKeepsLineNumbers(t *testing.T) {
	f := &fakeTess{boxes: []gosseract.BoundingBox{
		{Box: image.Rect(10, 100, 30, 120), Word: "4", Confidence: 91, BlockNum: 2, ParNum: 1, LineNum: 3, WordNum: 1},
		{Box: image.Rect(900, 101, 980, 121), Word: "1,234.56", Confidence: 88, BlockNum: 2, ParNum: 1, LineNum: 3, WordNum: 2},
		{Box: image.Rect(50, 300, 60, 310), Word: "~", Confidence: 12, BlockNum: 3, ParNum: 1, LineNum: 1, WordNum: 1},
		{Box: image.Rect(70, 300, 80, 310), Word: "", Confidence: 95, BlockNum: 3, ParNum: 1, LineNum: 1, WordNum: 2},
	}}
	tokens, err := newFakeEngine(f).Recognize(context.Background(), Page{Index: 1, Path: "p.png", DPI: 300})
	if err != nil {
		t.Fatalf("Recognize: %v", err)
	}
	if !f.verbose || !f.closed || f.image != "p.png" || f.vars["user_defined_dpi"] != "300" {
		t.Errorf("client not driven as expected: %+v", f)
	}
	want := []entity.Token{
		{Text: "4", X: 10, Y: 100, Width: 20, Height: 20, PageIndex: 1, Block: 2, Par: 1, Line: 3, Conf: 91},
		{Text: "1,234.56", X: 900, Y: 101, Width: 80, Height: 20, PageIndex: 1, Block: 2, Par: 1, Line: 3, Conf: 88},
	}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(tokens), len(want), tokens)
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Errorf("token %d = %+v, want %+v", i, tokens[i], want[i])
		}
	}
}

func TestGosseractRecognizeFailureIsExternal(t *testing.T) {
	f := &fakeTess{err: errors.New("tesseract init failed")}
	if _, err := newFakeEngine(f).Recognize(context.Background(), Page{Path: "p.png"}); !common.IsExternalService(err) {
		t.Fatalf("expected external service error, got %v", err)
	}
	if !f.closed {
		t.Error("client not closed after failure")
	}
}
