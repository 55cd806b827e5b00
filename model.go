// Package adreport turns an ad-campaign performance export into a compact
// daily report and filters that report by weekday.
package adreport

import "github.com/aerissecure/adreport/xlsx"

// Raw column names as exported by the ads manager.
const (
	ColDay              = "Day"
	ColReportingStarts  = "Reporting starts"
	ColReportingEnds    = "Reporting ends"
	ColCampaignName     = "Campaign name"
	ColResults          = "Results"
	ColAmountSpent      = "Amount spent (INR)"
	ColCTRLinkClick     = "CTR (link click-through rate)"
	ColLandingPageViews = "Landing page views"
	ColLinkClicks       = "Link clicks"
)

// Derived column names. Day, Campaign name and Landing page views keep their
// raw names.
const (
	ColADSpend      = "AD Spend"
	ColLeads        = "No of leads"
	ColCostPerLead  = "Cost Per Lead"
	ColCTR          = "CTR"
	ColMemberPassed = "Member passed"
	ColLPConversion = "LP Conversion"
)

// RequiredColumns must all be present in a raw table.
var RequiredColumns = []string{
	ColDay,
	ColReportingStarts,
	ColReportingEnds,
	ColResults,
	ColAmountSpent,
	ColCTRLinkClick,
	ColLandingPageViews,
	ColLinkClicks,
	ColCampaignName,
}

// DerivedColumns is the fixed header of a derived table.
var DerivedColumns = []string{
	ColDay,
	ColCampaignName,
	ColADSpend,
	ColLeads,
	ColCostPerLead,
	ColCTR,
	ColLandingPageViews,
	ColMemberPassed,
	ColLPConversion,
}

// RawRecord is one row of the input export.
type RawRecord struct {
	Day              xlsx.Value
	ReportingStarts  xlsx.Value
	ReportingEnds    xlsx.Value
	CampaignName     xlsx.Value
	Results          xlsx.Value
	AmountSpent      xlsx.Value
	CTR              xlsx.Value
	LandingPageViews xlsx.Value
	LinkClicks       xlsx.Value
	Extra            map[string]xlsx.Value // columns the report drops
}

// RawTable is the input export. Columns is the header as read; Transform
// checks it against RequiredColumns.
type RawTable struct {
	Columns []string
	Records []RawRecord
}

// DerivedRecord is one row of the report.
type DerivedRecord struct {
	Day              string // e.g. "6 Mar (Wed)"
	CampaignName     string
	ADSpend          float64
	Leads            float64
	CostPerLead      float64
	CTR              string // e.g. "0.05%"
	LandingPageViews float64
	MemberPassed     float64
	LPConversion     string // e.g. "5.00%"
}

// DerivedTable is the report. Its header is always DerivedColumns.
type DerivedTable struct {
	Records []DerivedRecord
}

// Len returns the number of rows.
func (t DerivedTable) Len() int { return len(t.Records) }

// Empty reports whether the table has no rows.
func (t DerivedTable) Empty() bool { return len(t.Records) == 0 }
