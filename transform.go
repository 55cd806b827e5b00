package adreport

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/aerissecure/adreport/xlsx"
)

// Transformer derives the report from a raw export.
type Transformer struct {
	Dates   DateFormatter
	Parser  DateParser
	Percent PercentFormat
}

// NewTransformer returns a Transformer with English dates and two-decimal
// percentages.
func NewTransformer() Transformer {
	return Transformer{
		Dates:   NewDateFormatter(EnglishCalendar),
		Parser:  DateParser{Layouts: DefaultDateLayouts},
		Percent: DefaultPercent,
	}
}

// Transform derives t with NewTransformer.
func Transform(t RawTable) (DerivedTable, error) {
	return NewTransformer().Transform(t)
}

// Transform maps every raw record to a derived record. Any error aborts the
// whole table; no partial result is returned.
func (tr Transformer) Transform(t RawTable) (DerivedTable, error) {
	if err := CheckSchema(t.Columns); err != nil {
		return DerivedTable{}, err
	}
	out := DerivedTable{Records: make([]DerivedRecord, 0, len(t.Records))}
	for i, rec := range t.Records {
		d, err := tr.derive(i, rec)
		if err != nil {
			return DerivedTable{}, err
		}
		out.Records = append(out.Records, d)
	}
	return out, nil
}

// CheckSchema returns a *SchemaError naming every required column absent
// from columns.
func CheckSchema(columns []string) error {
	have := make(map[string]bool, len(columns))
	for _, c := range columns {
		have[c] = true
	}
	var missing []string
	for _, c := range RequiredColumns {
		if !have[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Missing: missing}
	}
	return nil
}

func (tr Transformer) derive(row int, rec RawRecord) (DerivedRecord, error) {
	day, err := tr.formatDate(row, ColDay, rec.Day)
	if err != nil {
		return DerivedRecord{}, err
	}
	// The reporting window is not part of the report, but a bad date there
	// still fails the row.
	if _, err := tr.formatDate(row, ColReportingStarts, rec.ReportingStarts); err != nil {
		return DerivedRecord{}, err
	}
	if _, err := tr.formatDate(row, ColReportingEnds, rec.ReportingEnds); err != nil {
		return DerivedRecord{}, err
	}

	var nums [5]float64
	for i, f := range []struct {
		col string
		v   xlsx.Value
	}{
		{ColResults, rec.Results},
		{ColAmountSpent, rec.AmountSpent},
		{ColCTRLinkClick, rec.CTR},
		{ColLandingPageViews, rec.LandingPageViews},
		{ColLinkClicks, rec.LinkClicks},
	} {
		n, err := numberOrZero(f.v)
		if err != nil {
			return DerivedRecord{}, &ParseError{Row: row, Column: f.col, Value: f.v.String(), Err: err}
		}
		nums[i] = n
	}
	leads, spend, ctr, views, clicks := nums[0], nums[1], nums[2], nums[3], nums[4]

	d := DerivedRecord{
		Day:              day,
		CampaignName:     textOrZero(rec.CampaignName),
		ADSpend:          finiteOrZero(spend),
		Leads:            finiteOrZero(leads),
		CostPerLead:      finiteOrZero(spend / leads),
		LandingPageViews: finiteOrZero(views),
		MemberPassed:     finiteOrZero(views / clicks * 100),
		CTR:              tr.Percent.Render(finiteOrZero(ctr)),
		LPConversion:     tr.Percent.Render(finiteOrZero(leads / views * 100)),
	}
	return d, nil
}

func (tr Transformer) formatDate(row int, col string, v xlsx.Value) (string, error) {
	t, err := tr.Parser.Parse(v)
	if err != nil {
		return "", &ParseError{Row: row, Column: col, Value: v.String(), Err: err}
	}
	return tr.Dates.Format(t), nil
}

// numberOrZero reads a numeric cell. Blank cells are 0; numeric text is
// accepted.
func numberOrZero(v xlsx.Value) (float64, error) {
	switch v.Kind {
	case xlsx.KindEmpty:
		return 0, nil
	case xlsx.KindNumber:
		return v.Number, nil
	case xlsx.KindBool:
		if v.Bool {
			return 1, nil
		}
		return 0, nil
	case xlsx.KindText:
		s := strings.TrimSpace(strings.ReplaceAll(v.Text, ",", ""))
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, errors.Wrap(err, "not a number")
		}
		return f, nil
	}
	return 0, errors.Errorf("unexpected %s value", v.Kind)
}

func textOrZero(v xlsx.Value) string {
	if v.IsEmpty() {
		return "0"
	}
	return v.String()
}

// finiteOrZero maps ±Inf and NaN (x/0, 0/0) to 0.
func finiteOrZero(f float64) float64 {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0
	}
	return f
}
