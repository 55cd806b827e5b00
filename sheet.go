package adreport

import (
	"io"

	"github.com/pkg/errors"

	"github.com/aerissecure/adreport/xlsx"
)

// RawTableFromSheet maps a worksheet onto raw records by header name.
// Missing required columns are reported up front as a *SchemaError.
func RawTableFromSheet(s xlsx.Sheet) (RawTable, error) {
	if err := CheckSchema(s.Header); err != nil {
		return RawTable{}, err
	}
	idx := make(map[string]int, len(s.Header))
	for i, h := range s.Header {
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}
	get := func(row xlsx.Row, col string) xlsx.Value {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return xlsx.Empty()
		}
		return row[i]
	}
	required := make(map[string]bool, len(RequiredColumns))
	for _, c := range RequiredColumns {
		required[c] = true
	}

	t := RawTable{
		Columns: append([]string(nil), s.Header...),
		Records: make([]RawRecord, 0, len(s.Rows)),
	}
	for _, row := range s.Rows {
		rec := RawRecord{
			Day:              get(row, ColDay),
			ReportingStarts:  get(row, ColReportingStarts),
			ReportingEnds:    get(row, ColReportingEnds),
			CampaignName:     get(row, ColCampaignName),
			Results:          get(row, ColResults),
			AmountSpent:      get(row, ColAmountSpent),
			CTR:              get(row, ColCTRLinkClick),
			LandingPageViews: get(row, ColLandingPageViews),
			LinkClicks:       get(row, ColLinkClicks),
		}
		for i, h := range s.Header {
			if h == "" || required[h] || i >= len(row) {
				continue
			}
			if rec.Extra == nil {
				rec.Extra = make(map[string]xlsx.Value)
			}
			rec.Extra[h] = row[i]
		}
		t.Records = append(t.Records, rec)
	}
	return t, nil
}

// Sheet converts the report to a worksheet with the DerivedColumns header.
func (t DerivedTable) Sheet() xlsx.Sheet {
	s := xlsx.Sheet{
		Name:   xlsx.DefaultSheetName,
		Header: append([]string(nil), DerivedColumns...),
		Rows:   make([]xlsx.Row, 0, len(t.Records)),
	}
	for _, r := range t.Records {
		s.Rows = append(s.Rows, xlsx.Row{
			xlsx.Text(r.Day),
			xlsx.Text(r.CampaignName),
			xlsx.Number(r.ADSpend),
			xlsx.Number(r.Leads),
			xlsx.Number(r.CostPerLead),
			xlsx.Text(r.CTR),
			xlsx.Number(r.LandingPageViews),
			xlsx.Number(r.MemberPassed),
			xlsx.Text(r.LPConversion),
		})
	}
	return s
}

// DerivedTableFromSheet reads back a report written by DerivedTable.Sheet.
func DerivedTableFromSheet(s xlsx.Sheet) (DerivedTable, error) {
	idx := make([]int, len(DerivedColumns))
	var missing []string
	for i, c := range DerivedColumns {
		idx[i] = s.ColumnIndex(c)
		if idx[i] < 0 {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return DerivedTable{}, &SchemaError{Missing: missing}
	}

	t := DerivedTable{Records: make([]DerivedRecord, 0, len(s.Rows))}
	for rowIdx, row := range s.Rows {
		cell := func(i int) xlsx.Value {
			if idx[i] >= len(row) {
				return xlsx.Empty()
			}
			return row[idx[i]]
		}
		var nums [5]float64
		for j, i := range []int{2, 3, 4, 6, 7} {
			n, err := numberOrZero(cell(i))
			if err != nil {
				return DerivedTable{}, &ParseError{Row: rowIdx, Column: DerivedColumns[i], Value: cell(i).String(), Err: err}
			}
			nums[j] = n
		}
		t.Records = append(t.Records, DerivedRecord{
			Day:              cell(0).String(),
			CampaignName:     cell(1).String(),
			ADSpend:          nums[0],
			Leads:            nums[1],
			CostPerLead:      nums[2],
			CTR:              cell(5).String(),
			LandingPageViews: nums[3],
			MemberPassed:     nums[4],
			LPConversion:     cell(8).String(),
		})
	}
	return t, nil
}

// ReadRawTable reads the first worksheet of an XLSX export.
func ReadRawTable(r io.ReaderAt, size int64) (RawTable, error) {
	s, err := xlsx.ReadSheet(r, size)
	if err != nil {
		return RawTable{}, err
	}
	return RawTableFromSheet(s)
}

// ReadDerivedTable reads a report workbook.
func ReadDerivedTable(r io.ReaderAt, size int64) (DerivedTable, error) {
	s, err := xlsx.ReadSheet(r, size)
	if err != nil {
		return DerivedTable{}, err
	}
	return DerivedTableFromSheet(s)
}

// WriteDerivedTable writes t as an XLSX workbook.
func WriteDerivedTable(w io.Writer, t DerivedTable) error {
	return errors.Wrap(xlsx.WriteSheet(w, t.Sheet()), "write report")
}
