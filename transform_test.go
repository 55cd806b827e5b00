package adreport

import (
	"fmt"
	"math"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aerissecure/adreport/xlsx"
)

func date(y int, m time.Month, d int) xlsx.Value {
	return xlsx.Time(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func rawTable(recs ...RawRecord) RawTable {
	return RawTable{
		Columns: append([]string{"Ad set name"}, RequiredColumns...),
		Records: recs,
	}
}

func exampleRecord() RawRecord {
	return RawRecord{
		Day:              date(2024, time.March, 6),
		ReportingStarts:  date(2024, time.March, 1),
		ReportingEnds:    date(2024, time.March, 31),
		CampaignName:     xlsx.Text("Spring Leads"),
		Results:          xlsx.Number(10),
		AmountSpent:      xlsx.Number(500),
		CTR:              xlsx.Number(0.05),
		LandingPageViews: xlsx.Number(200),
		LinkClicks:       xlsx.Number(100),
		Extra:            map[string]xlsx.Value{"Ad set name": xlsx.Text("set A")},
	}
}

func TestTransformExample(t *testing.T) {
	out, err := Transform(rawTable(exampleRecord()))
	require.NoError(t, err)
	require.Equal(t, 1, out.Len())

	assert.Equal(t, DerivedRecord{
		Day:              "6 Mar (Wed)",
		CampaignName:     "Spring Leads",
		ADSpend:          500,
		Leads:            10,
		CostPerLead:      50,
		CTR:              "0.05%",
		LandingPageViews: 200,
		MemberPassed:     200,
		LPConversion:     "5.00%",
	}, out.Records[0])
}

func TestTransformMissingResults(t *testing.T) {
	rec := exampleRecord()
	rec.Results = xlsx.Empty()

	out, err := Transform(rawTable(rec))
	require.NoError(t, err)
	r := out.Records[0]
	assert.Equal(t, 0.0, r.Leads)
	assert.Equal(t, 0.0, r.CostPerLead)
	assert.Equal(t, "0.00%", r.LPConversion)
}

func TestTransformZeroDenominators(t *testing.T) {
	rec := exampleRecord()
	rec.Results = xlsx.Number(0)
	rec.AmountSpent = xlsx.Number(0)
	rec.LandingPageViews = xlsx.Number(0)
	rec.LinkClicks = xlsx.Empty()
	rec.CTR = xlsx.Empty()
	rec.CampaignName = xlsx.Empty()

	out, err := Transform(rawTable(rec))
	require.NoError(t, err)
	r := out.Records[0]
	assert.Equal(t, 0.0, r.CostPerLead)  // 0/0
	assert.Equal(t, 0.0, r.MemberPassed) // 0/0
	assert.Equal(t, "0.00%", r.LPConversion)
	assert.Equal(t, "0.00%", r.CTR)
	assert.Equal(t, "0", r.CampaignName)
}

func TestTransformNonZeroOverZero(t *testing.T) {
	rec := exampleRecord()
	rec.Results = xlsx.Empty()
	rec.LinkClicks = xlsx.Number(0)

	out, err := Transform(rawTable(rec))
	require.NoError(t, err)
	r := out.Records[0]
	assert.Equal(t, 0.0, r.CostPerLead)  // 500/0
	assert.Equal(t, 0.0, r.MemberPassed) // 200/0
	assert.False(t, math.IsInf(r.CostPerLead, 0))
	assert.Equal(t, "0.00%", r.LPConversion)
}

func TestTransformSchemaError(t *testing.T) {
	tbl := RawTable{Columns: []string{ColDay, ColCampaignName, ColResults}}
	_, err := Transform(tbl)
	require.Error(t, err)
	assert.True(t, IsSchemaError(err))

	var se *SchemaError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, []string{
		ColReportingStarts, ColReportingEnds, ColAmountSpent,
		ColCTRLinkClick, ColLandingPageViews, ColLinkClicks,
	}, se.Missing)
}

func TestTransformParseErrorAbortsTable(t *testing.T) {
	good := exampleRecord()
	bad := exampleRecord()
	bad.ReportingEnds = xlsx.Text("not a date")

	out, err := Transform(rawTable(good, bad, good))
	require.Error(t, err)
	assert.True(t, IsParseError(err))
	assert.Empty(t, out.Records)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 1, pe.Row)
	assert.Equal(t, ColReportingEnds, pe.Column)
}

func TestTransformMissingDayFails(t *testing.T) {
	rec := exampleRecord()
	rec.Day = xlsx.Empty()
	_, err := Transform(rawTable(rec))
	assert.True(t, IsParseError(err))
}

func TestTransformNonNumericMetric(t *testing.T) {
	rec := exampleRecord()
	rec.LinkClicks = xlsx.Text("lots")
	_, err := Transform(rawTable(rec))
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ColLinkClicks, pe.Column)
}

func TestTransformAcceptsNumericText(t *testing.T) {
	rec := exampleRecord()
	rec.Day = xlsx.Text("2024-03-07")
	rec.AmountSpent = xlsx.Text("1,000")
	rec.Results = xlsx.Text(" 8 ")

	out, err := Transform(rawTable(rec))
	require.NoError(t, err)
	assert.Equal(t, "7 Mar (Thu)", out.Records[0].Day)
	assert.Equal(t, 1000.0, out.Records[0].ADSpend)
	assert.Equal(t, 125.0, out.Records[0].CostPerLead)
	assert.Equal(t, "4.00%", out.Records[0].LPConversion)
}

func TestTransformProperties(t *testing.T) {
	lpc := regexp.MustCompile(`^\d+\.\d{2}%$`)
	var recs []RawRecord
	for i := 0; i < 40; i++ {
		rec := exampleRecord()
		rec.Day = date(2024, time.January, 1+i)
		rec.Results = xlsx.Number(float64(i % 7))
		rec.AmountSpent = xlsx.Number(float64(i) * 12.5)
		rec.LandingPageViews = xlsx.Number(float64(i % 5 * 10))
		rec.LinkClicks = xlsx.Number(float64(i % 3 * 20))
		recs = append(recs, rec)
	}

	out, err := Transform(rawTable(recs...))
	require.NoError(t, err)
	require.Equal(t, len(recs), out.Len())
	assert.Equal(t, DerivedColumns, out.Sheet().Header)

	for i, r := range out.Records {
		if r.Leads != 0 {
			assert.Equal(t, r.ADSpend/r.Leads, r.CostPerLead, "row %d", i)
		} else {
			assert.Equal(t, 0.0, r.CostPerLead, "row %d", i)
		}

		clicks := float64(i % 3 * 20)
		if clicks == 0 {
			assert.Equal(t, 0.0, r.MemberPassed, "row %d", i)
		} else {
			assert.Equal(t, r.LandingPageViews/clicks*100, r.MemberPassed, "row %d", i)
		}

		assert.Regexp(t, lpc, r.LPConversion, "row %d", i)
		if r.LandingPageViews == 0 {
			assert.Equal(t, "0.00%", r.LPConversion, "row %d", i)
		} else {
			assert.Equal(t, fmt.Sprintf("%.2f%%", r.Leads/r.LandingPageViews*100), r.LPConversion, "row %d", i)
		}
	}
}

func TestTransformPreservesOrder(t *testing.T) {
	a, b := exampleRecord(), exampleRecord()
	a.CampaignName = xlsx.Text("first")
	b.CampaignName = xlsx.Text("second")
	out, err := Transform(rawTable(a, b))
	require.NoError(t, err)
	assert.Equal(t, "first", out.Records[0].CampaignName)
	assert.Equal(t, "second", out.Records[1].CampaignName)
}
