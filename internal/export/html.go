package export

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/joseph-ayodele/docanalyzer/internal/core"
)

// WriteHTML renders the result as a Markdown report and converts it to HTML.
func WriteHTML(w io.Writer, res core.Result) error {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var buf bytes.Buffer
	if err := md.Convert([]byte(Markdown(res)), &buf); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// Markdown renders the result as a GFM document with one table.
func Markdown(res core.Result) string {
	var b strings.Builder
	if res.Path != "" {
		fmt.Fprintf(&b, "# %s\n\n", mdEscape(filepath.Base(res.Path)))
	}
	if res.Estate != nil {
		b.WriteString("| Field | Value |\n|---|---|\n")
		for _, r := range res.Estate.Rows() {
			fmt.Fprintf(&b, "| %s | %s |\n", mdEscape(r[0]), mdEscape(r[1]))
		}
		if res.Estate.Summary != "" {
			fmt.Fprintf(&b, "\n#### Document summary\n\n%s\n", mdEscape(res.Estate.Summary))
		}
		return b.String()
	}

	b.WriteString("| ID | Amount |\n|---|---:|\n")
	for _, f := range res.Tax.Fields {
		fmt.Fprintf(&b, "| %s | %s |\n", mdEscape(f.FieldID), amountCell(f))
	}
	return b.String()
}

var mdReplacer = strings.NewReplacer(
	"|", `\|`,
	"\n", " ",
	"<", "&lt;",
	">", "&gt;",
	"*", `\*`,
	"_", `\_`,
)

func mdEscape(s string) string {
	return mdReplacer.Replace(s)
}
