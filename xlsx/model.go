package xlsx

import (
	"fmt"
	"strconv"
	"time"
)

// Intermediate representation for a single worksheet table.

// Kind identifies which field of a Value is set.
type Kind int

const (
	KindEmpty Kind = iota
	KindNumber
	KindText
	KindTime
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	case KindTime:
		return "time"
	case KindBool:
		return "bool"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Value is a typed cell value.
type Value struct {
	Kind   Kind
	Number float64
	Text   string
	Time   time.Time
	Bool   bool
}

// Empty returns a blank cell value.
func Empty() Value { return Value{} }

// Number returns a numeric cell value.
func Number(f float64) Value { return Value{Kind: KindNumber, Number: f} }

// Text returns a string cell value.
func Text(s string) Value { return Value{Kind: KindText, Text: s} }

// Time returns a date/time cell value.
func Time(t time.Time) Value { return Value{Kind: KindTime, Time: t} }

// Bool returns a boolean cell value.
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// IsEmpty reports whether the value is blank.
func (v Value) IsEmpty() bool { return v.Kind == KindEmpty }

// String formats the value for display.
func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case KindText:
		return v.Text
	case KindTime:
		if v.Time.Hour() == 0 && v.Time.Minute() == 0 && v.Time.Second() == 0 {
			return v.Time.Format("2006-01-02")
		}
		return v.Time.Format("2006-01-02 15:04:05")
	case KindBool:
		if v.Bool {
			return "TRUE"
		}
		return "FALSE"
	}
	return ""
}

// Row is one data row; len(Row) == len(Sheet.Header).
type Row []Value

// Sheet is a header row plus data rows.
type Sheet struct {
	Name   string
	Header []string
	Rows   []Row
}

func (s Sheet) String() string {
	return fmt.Sprintf("Name: %s, Header: %v, Rows: %d", s.Name, s.Header, len(s.Rows))
}

// ColumnIndex returns the position of the named header column, or -1.
func (s Sheet) ColumnIndex(name string) int {
	for i, h := range s.Header {
		if h == name {
			return i
		}
	}
	return -1
}
