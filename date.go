package adreport

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/aerissecure/adreport/xlsx"
)

// Calendar holds the abbreviations used to print dates. Weekdays is
// indexed Monday-first.
type Calendar struct {
	Weekdays [7]string
	Months   [12]string
}

// EnglishCalendar is the default Calendar.
var EnglishCalendar = Calendar{
	Weekdays: [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
	Months:   [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
}

// DateFormatter prints dates as "<day> <Mon> (<Dow>)", e.g. "5 Mar (Wed)".
type DateFormatter struct {
	cal Calendar
}

// NewDateFormatter returns a formatter using cal.
func NewDateFormatter(cal Calendar) DateFormatter {
	return DateFormatter{cal: cal}
}

// Format renders t.
func (f DateFormatter) Format(t time.Time) string {
	return fmt.Sprintf("%d %s (%s)", t.Day(), f.cal.Months[t.Month()-1], f.cal.Weekdays[mondayIndex(t.Weekday())])
}

// mondayIndex maps time.Weekday (Sunday = 0) to Monday = 0.
func mondayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

// DefaultDateLayouts are tried in order when a date arrives as text.
var DefaultDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
	"1/2/2006",
	"1/2/2006 15:04:05",
	"2-Jan-2006",
	"2 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// DateParser turns cell values into dates. Numbers are Excel serial dates.
type DateParser struct {
	Layouts []string
}

var errNotADate = errors.New("not a date")

// Parse returns the date held in v.
func (p DateParser) Parse(v xlsx.Value) (time.Time, error) {
	switch v.Kind {
	case xlsx.KindTime:
		return v.Time, nil
	case xlsx.KindNumber:
		return xlsx.SerialToTime(v.Number, false), nil
	case xlsx.KindText:
		s := strings.TrimSpace(v.Text)
		layouts := p.Layouts
		if layouts == nil {
			layouts = DefaultDateLayouts
		}
		for _, layout := range layouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
		return time.Time{}, errors.Wrapf(errNotADate, "no layout matches %q", s)
	case xlsx.KindEmpty:
		return time.Time{}, errors.Wrap(errNotADate, "missing value")
	}
	return time.Time{}, errors.Wrapf(errNotADate, "unexpected %s value", v.Kind)
}
