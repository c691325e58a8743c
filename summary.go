package netscope

import (
	"strconv"
	"strings"
)

// Row is a single line of a structure summary: a label describing a Layer (or a Recurrent, or the
// Input) and the number of parameter values it holds.
type Row struct {
	Label  string
	Params int
}

// The layout of the table given by RenderTable
const (
	labelWidth  int = 50
	paramsWidth int = 16
	tableIndent int = 3
)

// RenderTable formats the rows into a bordered table with a header and a footer giving the total
// number of parameters. Rows with no parameters leave the second column blank. The total is
// printed as given; it is not recomputed from the rows.
func RenderTable(rows []Row, total int) string {
	width := labelWidth + paramsWidth
	indent := strings.Repeat(" ", tableIndent)
	thin := strings.Repeat("-", width)
	thick := strings.Repeat("=", width)

	var sb strings.Builder
	line := func(s string) {
		sb.WriteString(indent)
		sb.WriteString(s)
		sb.WriteByte('\n')
	}

	line(thin)
	line(tableRow("Layers", "Params #"))
	line(thick)
	for i, r := range rows {
		if i > 0 {
			line(thin)
		}

		var num string
		if r.Params != 0 {
			num = strconv.Itoa(r.Params)
		}
		line(tableRow(r.Label, num))
	}
	line(thick)
	line("Total params: " + strconv.Itoa(total))

	sb.WriteString(indent)
	sb.WriteString(thin)
	return sb.String()
}

func tableRow(label, params string) string {
	return pad(label, labelWidth) + pad(params, paramsWidth)
}

// pad left-aligns s within the width. Longer strings are left as they are.
func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}

	return s + strings.Repeat(" ", width-len(s))
}
