package export

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/joseph-ayodele/docanalyzer/internal/common"
	"github.com/joseph-ayodele/docanalyzer/internal/core"
	"github.com/joseph-ayodele/docanalyzer/internal/entity"
)

type Format string

const (
	FormatJSON  Format = "json"
	FormatTable Format = "table"
	FormatXLSX  Format = "xlsx"
	FormatHTML  Format = "html"
)

// Formats lists the supported output formats.
var Formats = []string{string(FormatJSON), string(FormatTable), string(FormatXLSX), string(FormatHTML)}

// ParseFormat accepts a format name in any case.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatJSON, FormatTable, FormatXLSX, FormatHTML:
		return f, nil
	}
	return "", common.NewInputError(fmt.Sprintf("unknown output format %q (want one of %s)", s, strings.Join(Formats, ", ")), nil)
}

// Write renders res to w in the given format.
func Write(w io.Writer, f Format, res core.Result) error {
	if res.Estate == nil && res.Tax == nil {
		return fmt.Errorf("export: empty result")
	}
	switch f {
	case FormatJSON:
		return WriteJSON(w, res)
	case FormatTable:
		return WriteTable(w, res)
	case FormatXLSX:
		return WriteXLSX(w, res)
	case FormatHTML:
		return WriteHTML(w, res)
	}
	return common.NewInputError(fmt.Sprintf("unknown output format %q", f), nil)
}

// DefaultFilename names the export of pdfPath, e.g. "will_extracted.json".
func DefaultFilename(pdfPath string, f Format) string {
	base := filepath.Base(pdfPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	ext := string(f)
	if f == FormatTable {
		ext = "txt"
	}
	return stem + "_extracted." + ext
}

// amountCell is the display value of a tax field.
func amountCell(f entity.ExtractedField) string {
	if f.Amount == nil || f.Confidence != entity.ConfidenceMatched {
		return entity.ConfidenceNotFound.String()
	}
	return f.Amount.Currency()
}
