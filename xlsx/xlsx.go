package xlsx

import (
	"math"
	"strings"
	"time"

	"github.com/unidoc/unioffice/schema/soo/sml"
	"github.com/unidoc/unioffice/spreadsheet"
)

// Helper to extract the underlying cell format XML struct from a style ID
func GetCellFormat(ss spreadsheet.StyleSheet, styleID uint32) *sml.CT_Xf {
	if ss.X() == nil || ss.X().CellXfs == nil {
		return nil
	}
	if int(styleID) >= len(ss.X().CellXfs.Xf) {
		return nil
	}
	return ss.X().CellXfs.Xf[styleID]
}

// GetNumberFormat returns the number format ID and, for custom formats, the
// format code for a style ID. ok is false when the style carries no format.
func GetNumberFormat(ss spreadsheet.StyleSheet, styleID uint32) (id uint32, code string, ok bool) {
	xf := GetCellFormat(ss, styleID)
	if xf == nil || xf.NumFmtIdAttr == nil {
		return 0, "", false
	}
	id = *xf.NumFmtIdAttr
	if nf := ss.X().NumFmts; nf != nil {
		for _, f := range nf.NumFmt {
			if f != nil && f.NumFmtIdAttr == id {
				return id, f.FormatCodeAttr, true
			}
		}
	}
	return id, "", true
}

// IsDateFormat reports whether a number format renders its value as a date or
// time. Built-in IDs are checked first, then the custom format code.
func IsDateFormat(id uint32, code string) bool {
	switch {
	case id >= 14 && id <= 22,
		id >= 27 && id <= 36,
		id >= 45 && id <= 47,
		id >= 50 && id <= 58:
		return true
	}
	if code == "" {
		return false
	}
	return hasDateTokens(code)
}

// hasDateTokens scans a format code for y/m/d/h/s outside quoted literals,
// escapes, and [..] sections (colors, conditions, elapsed time is still a time).
func hasDateTokens(code string) bool {
	code = strings.ToLower(code)
	inQuote := false
	for i := 0; i < len(code); i++ {
		ch := code[i]
		switch {
		case ch == '"':
			inQuote = !inQuote
		case inQuote:
		case ch == '\\' || ch == '_' || ch == '*':
			i++
		case ch == '[':
			end := strings.IndexByte(code[i:], ']')
			if end < 0 {
				return false
			}
			sect := code[i+1 : i+end]
			if sect == "h" || sect == "hh" || sect == "m" || sect == "mm" || sect == "s" || sect == "ss" {
				return true
			}
			i += end
		case ch == 'y' || ch == 'm' || ch == 'd' || ch == 'h' || ch == 's':
			return true
		}
	}
	return false
}

var (
	epoch1900 = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)
	epoch1904 = time.Date(1904, time.January, 1, 0, 0, 0, 0, time.UTC)
)

// SerialToTime converts an Excel serial date to a UTC time, rounded to the
// millisecond.
func SerialToTime(serial float64, date1904 bool) time.Time {
	epoch := epoch1900
	if date1904 {
		epoch = epoch1904
	}
	ms := math.Round(serial * 24 * 60 * 60 * 1000)
	return epoch.Add(time.Duration(ms) * time.Millisecond)
}

// TimeToSerial is the inverse of SerialToTime for the 1900 date system.
func TimeToSerial(t time.Time) float64 {
	d := t.Sub(epoch1900)
	return float64(d/time.Millisecond) / (24 * 60 * 60 * 1000)
}

func uses1904(wb *spreadsheet.Workbook) bool {
	x := wb.X()
	if x == nil || x.WorkbookPr == nil || x.WorkbookPr.Date1904Attr == nil {
		return false
	}
	return *x.WorkbookPr.Date1904Attr
}
