package adreport

import "strconv"

// PercentFormat renders numbers that are already in percent units.
type PercentFormat struct {
	Decimals int
}

// DefaultPercent renders two decimals, e.g. "12.50%".
var DefaultPercent = PercentFormat{Decimals: 2}

// Render formats x with a fixed number of decimals and a "%" suffix.
func (p PercentFormat) Render(x float64) string {
	return strconv.FormatFloat(x, 'f', p.Decimals, 64) + "%"
}
