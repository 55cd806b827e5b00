package adreport

import "strings"

// FilterWeekday returns the rows whose Day ends with suffix, in their
// original order. Day is matched both as written and without its closing
// parenthesis, so "Wed" selects "6 Mar (Wed)" and "(Wed)" does too. The match
// is case-sensitive and literal: "n" selects both "Mon" and "Sun" rows. An
// empty result is not an error.
func FilterWeekday(t DerivedTable, suffix string) (DerivedTable, error) {
	if suffix == "" {
		return DerivedTable{}, ErrEmptySuffix
	}
	out := DerivedTable{Records: []DerivedRecord{}}
	for _, r := range t.Records {
		if dayHasSuffix(r.Day, suffix) {
			out.Records = append(out.Records, r)
		}
	}
	return out, nil
}

func dayHasSuffix(day, suffix string) bool {
	return strings.HasSuffix(day, suffix) || strings.HasSuffix(strings.TrimSuffix(day, ")"), suffix)
}
