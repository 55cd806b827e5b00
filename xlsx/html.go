package xlsx

import (
	"fmt"
	"html"
	"strings"
)

// RenderSheetHTML converts a Sheet into an HTML table fragment.
func RenderSheetHTML(s Sheet) string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf(`<div class="sheet" data-name="%s">
`, html.EscapeString(s.Name)))
	builder.WriteString(`<div style="width:100%;overflow-x:auto;">
`)
	builder.WriteString(`<table class="table">
`)

	builder.WriteString("  <thead>\n  <tr>\n")
	for _, h := range s.Header {
		builder.WriteString(fmt.Sprintf("    <th>%s</th>\n", html.EscapeString(h)))
	}
	builder.WriteString("  </tr>\n  </thead>\n")

	builder.WriteString("  <tbody>\n")
	for rowIdx, row := range s.Rows {
		builder.WriteString("  <tr>\n")
		for colIdx := 0; colIdx < len(s.Header); colIdx++ {
			// Blank cell
			if colIdx >= len(row) || row[colIdx].IsEmpty() {
				builder.WriteString("    <td></td>\n")
				continue
			}
			v := row[colIdx]
			class := "text"
			if v.Kind == KindNumber {
				class = "num"
			}
			escaped := html.EscapeString(v.String())
			// Excel stores explicit line breaks as \n; preserve them in HTML
			escaped = strings.ReplaceAll(escaped, "\n", "<br>")
			builder.WriteString(fmt.Sprintf("    <td data-row=\"%d\" data-col=\"%d\" class=\"%s\">%s</td>\n",
				rowIdx, colIdx, class, escaped))
		}
		builder.WriteString("  </tr>\n")
	}
	builder.WriteString("  </tbody>\n")
	builder.WriteString("</table>\n</div>\n</div>\n")
	return builder.String()
}
