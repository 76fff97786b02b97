package export

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/joseph-ayodele/docanalyzer/internal/core"
)

// WriteTable prints a terminal table; the estate summary follows the table.
func WriteTable(w io.Writer, res core.Result) error {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)

	if res.Estate != nil {
		table.SetHeader([]string{"Field", "Value"})
		for _, row := range res.Estate.Rows() {
			table.Append([]string{row[0], row[1]})
		}
		table.Render()
		if res.Estate.Summary != "" {
			if _, err := fmt.Fprintf(w, "\nDocument summary\n%s\n", res.Estate.Summary); err != nil {
				return err
			}
		}
		return nil
	}

	table.SetHeader([]string{"ID", "Amount"})
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})
	for _, f := range res.Tax.Fields {
		table.Append([]string{f.FieldID, amountCell(f)})
	}
	table.Render()
	return nil
}
