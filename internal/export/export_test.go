package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/docanalyzer/constants"
	"github.com/joseph-ayodele/docanalyzer/internal/common"
	"github.com/joseph-ayodele/docanalyzer/internal/core"
	"github.com/joseph-ayodele/docanalyzer/internal/entity"
)

func taxResult() core.Result {
	a := entity.NewAmount(1234, 56)
	return core.Result{
		Kind: constants.Tax,
		Path: "docs/tax/1040.pdf",
		Tax: &entity.TaxResult{Fields: []entity.ExtractedField{
			{FieldID: "4", Amount: &a, Confidence: entity.ConfidenceMatched},
			{FieldID: "7", Confidence: entity.ConfidenceNotFound},
		}},
	}
}

func estateResult() core.Result {
	return core.Result{
		Kind: constants.Estate,
		Path: "docs/estate/poa.pdf",
		Estate: &entity.EstateRecord{
			Title:        "Durable Power of Attorney",
			DocumentDate: "March 4, 2021",
			ClientName:   "Jane Roe",
			GoverningLaw: "Texas",
			AgentName:    "John Roe",
			Summary:      "Grants John Roe authority | over finances.",
			PageCount:    3,
		},
	}
}

func TestWriteJSONTax(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatJSON, taxResult()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := `{
  "fields": [
    {
      "field_id": "4",
      "amount": 1234.56,
      "confidence": "MATCHED"
    },
    {
      "field_id": "7",
      "amount": null,
      "confidence": "NOT_FOUND"
    }
  ]
}
`
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWriteJSONEstate(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, estateResult()); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, k := range entity.EstateKeys {
		if _, ok := got[k]; !ok {
			t.Errorf("missing key %q", k)
		}
	}
	if got["page_count"] != float64(3) {
		t.Errorf("page_count = %v", got["page_count"])
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTable(&buf, taxResult()); err != nil {
		t.Fatalf("WriteTable: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"$1,235", "NOT_FOUND", "ID", "AMOUNT"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := WriteTable(&buf, estateResult()); err != nil {
		t.Fatalf("WriteTable: %v", err)
	}
	if !strings.Contains(buf.String(), "Document summary") || !strings.Contains(buf.String(), "Texas") {
		t.Errorf("estate table:\n%s", buf.String())
	}
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, taxResult()); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Tax Return")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}
	if rows[1][0] != "4" || rows[2][len(rows[2])-1] != "NOT_FOUND" {
		t.Errorf("unexpected rows %v", rows)
	}
	raw, err := f.GetCellValue("Tax Return", "B2", excelize.Options{RawCellValue: true})
	if err != nil || raw != "1234.56" {
		t.Errorf("B2 = %q, %v", raw, err)
	}
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHTML(&buf, estateResult()); err != nil {
		t.Fatalf("WriteHTML: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<table>") || !strings.Contains(out, "<td>Jane Roe</td>") {
		t.Errorf("html missing table:\n%s", out)
	}
	if !strings.Contains(out, "authority | over") {
		t.Errorf("escaped pipe not preserved:\n%s", out)
	}
}

func TestMarkdownTax(t *testing.T) {
	md := Markdown(taxResult())
	if !strings.Contains(md, "| 4 | $1,235 |") || !strings.Contains(md, "| 7 | NOT_FOUND |") {
		t.Errorf("markdown:\n%s", md)
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat(" XLSX "); err != nil || f != FormatXLSX {
		t.Errorf("ParseFormat = %q, %v", f, err)
	}
	if _, err := ParseFormat("pdf"); !common.IsInput(err) {
		t.Errorf("expected input error, got %v", err)
	}
}

func TestDefaultFilename(t *testing.T) {
	tests := []struct {
		path string
		f    Format
		want string
	}{
		{"docs/estate/poa.pdf", FormatJSON, "poa_extracted.json"},
		{"/tmp/My Return.PDF", FormatXLSX, "My Return_extracted.xlsx"},
		{"1040.pdf", FormatTable, "1040_extracted.txt"},
	}
	for _, tt := range tests {
		if got := DefaultFilename(tt.path, tt.f); got != tt.want {
			t.Errorf("DefaultFilename(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
