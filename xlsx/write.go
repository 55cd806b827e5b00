package xlsx

import (
	"io"

	"github.com/pkg/errors"
	"github.com/unidoc/unioffice/spreadsheet"
)

// DefaultSheetName is used when a Sheet has no name.
const DefaultSheetName = "Sheet1"

// WriteSheet writes s as a single-worksheet XLSX to w. The header is
// written as the first row.
func WriteSheet(w io.Writer, s Sheet) error {
	wb := spreadsheet.New()
	sheet := wb.AddSheet()
	name := s.Name
	if name == "" {
		name = DefaultSheetName
	}
	sheet.SetName(name)

	dateStyle := wb.StyleSheet.AddCellStyle()
	dateStyle.SetNumberFormatStandard(spreadsheet.StandardFormatDate)

	hdr := sheet.AddRow()
	for _, h := range s.Header {
		hdr.AddCell().SetString(h)
	}
	for _, r := range s.Rows {
		row := sheet.AddRow()
		for _, v := range r {
			cell := row.AddCell()
			switch v.Kind {
			case KindNumber:
				cell.SetNumber(v.Number)
			case KindText:
				cell.SetString(v.Text)
			case KindTime:
				cell.SetDate(v.Time)
				cell.SetStyle(dateStyle)
			case KindBool:
				cell.SetBool(v.Bool)
			}
		}
	}

	if err := wb.Save(w); err != nil {
		return errors.Wrap(err, "save workbook")
	}
	return nil
}
