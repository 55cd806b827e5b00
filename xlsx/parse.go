package xlsx

import (
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/unidoc/unioffice/schema/soo/sml"
	"github.com/unidoc/unioffice/spreadsheet"
	"github.com/unidoc/unioffice/spreadsheet/reference"
)

// ErrNoSheets is returned when a workbook has no worksheets.
var ErrNoSheets = errors.New("workbook has no sheets")

// ReadSheet reads an XLSX from r/size and returns the first worksheet as a
// Sheet. The first row is taken as the header.
func ReadSheet(r io.ReaderAt, size int64) (Sheet, error) {
	wb, err := spreadsheet.Read(r, size)
	if err != nil {
		return Sheet{}, errors.Wrap(err, "read workbook")
	}
	sheets := wb.Sheets()
	if len(sheets) == 0 {
		return Sheet{}, ErrNoSheets
	}
	return parseSheet(wb, sheets[0]), nil
}

func parseSheet(wb *spreadsheet.Workbook, sheet spreadsheet.Sheet) Sheet {
	out := Sheet{Name: sheet.Name()}
	date1904 := uses1904(wb)

	rows := sheet.Rows()
	if len(rows) == 0 {
		return out
	}

	// ---- header ----
	var header []string
	for _, cell := range rows[0].Cells() {
		colName, err := cell.Column()
		if err != nil {
			continue
		}
		colIdx := int(reference.ColumnToIndex(colName))
		for len(header) <= colIdx {
			header = append(header, "")
		}
		header[colIdx] = strings.TrimSpace(cell.GetFormattedValue())
	}
	out.Header = header

	// ---- body ----
	for _, row := range rows[1:] {
		vals := make(Row, len(header))
		blank := true
		for _, cell := range row.Cells() {
			colName, err := cell.Column()
			if err != nil {
				continue
			}
			colIdx := int(reference.ColumnToIndex(colName))
			if colIdx >= len(header) {
				// cells outside the header have no column name to land in
				continue
			}
			v := cellValue(wb, cell, date1904)
			if !v.IsEmpty() {
				blank = false
			}
			vals[colIdx] = v
		}
		if blank {
			continue
		}
		out.Rows = append(out.Rows, vals)
	}
	return out
}

func cellValue(wb *spreadsheet.Workbook, cell spreadsheet.Cell, date1904 bool) Value {
	if cell.IsEmpty() {
		return Empty()
	}
	x := cell.X()
	switch x.TAttr {
	case sml.ST_CellTypeS, sml.ST_CellTypeInlineStr:
		return textValue(cell.GetString())
	case sml.ST_CellTypeE:
		// #DIV/0!, #N/A and friends carry no value
		return Empty()
	case sml.ST_CellTypeStr:
		raw, err := cell.GetRawValue()
		if err != nil {
			return Empty()
		}
		return textValue(raw)
	case sml.ST_CellTypeB:
		b, err := cell.GetValueAsBool()
		if err != nil {
			return Empty()
		}
		return Bool(b)
	}

	raw, err := cell.GetRawValue()
	if err != nil || raw == "" {
		return Empty()
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return textValue(raw)
	}
	if x.SAttr != nil {
		if id, code, ok := GetNumberFormat(wb.StyleSheet, *x.SAttr); ok && IsDateFormat(id, code) {
			return Time(SerialToTime(f, date1904))
		}
	}
	return Number(f)
}

func textValue(s string) Value {
	if strings.TrimSpace(s) == "" {
		return Empty()
	}
	return Text(s)
}
