package output

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// RenderTable writes headers and rows as an ASCII table.
func RenderTable(w io.Writer, headers []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(headers)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.SetHeaderLine(true)

	for _, row := range rows {
		table.Append(row)
	}

	table.Render()
}
