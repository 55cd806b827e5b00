package adreport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func days(ds ...string) DerivedTable {
	var t DerivedTable
	for i, d := range ds {
		t.Records = append(t.Records, DerivedRecord{Day: d, ADSpend: float64(i)})
	}
	return t
}

func TestFilterWeekday(t *testing.T) {
	tbl := days("6 Mar (Wed)", "7 Mar (Thu)")

	wed, err := FilterWeekday(tbl, "Wed")
	require.NoError(t, err)
	require.Equal(t, 1, wed.Len())
	assert.Equal(t, "6 Mar (Wed)", wed.Records[0].Day)

	fri, err := FilterWeekday(tbl, "Fri")
	require.NoError(t, err)
	assert.True(t, fri.Empty())
}

func TestFilterWeekdayLiteralSuffix(t *testing.T) {
	tbl := days("4 Mar (Mon)", "5 Mar (Tue)", "10 Mar (Sun)", "11 Mar (Mon)")

	got, err := FilterWeekday(tbl, "n")
	require.NoError(t, err)
	assert.Equal(t, []string{"4 Mar (Mon)", "10 Mar (Sun)", "11 Mar (Mon)"}, dayList(got))

	got, err = FilterWeekday(tbl, "mon")
	require.NoError(t, err)
	assert.True(t, got.Empty())

	got, err = FilterWeekday(tbl, "(Mon)")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Len())
}

func TestFilterWeekdayEmptySuffix(t *testing.T) {
	_, err := FilterWeekday(days("6 Mar (Wed)"), "")
	assert.ErrorIs(t, err, ErrEmptySuffix)
}

func TestFilterWeekdayIdempotentSubsequence(t *testing.T) {
	tbl := days("1 Mar (Fri)", "2 Mar (Sat)", "8 Mar (Fri)", "9 Mar (Sat)", "15 Mar (Fri)")

	once, err := FilterWeekday(tbl, "Fri")
	require.NoError(t, err)
	twice, err := FilterWeekday(once, "Fri")
	require.NoError(t, err)
	assert.Equal(t, once, twice)

	// order preserved: ADSpend carries the original index
	var prev float64 = -1
	for _, r := range once.Records {
		assert.Greater(t, r.ADSpend, prev)
		prev = r.ADSpend
	}
	assert.Equal(t, 3, once.Len())
}

func dayList(t DerivedTable) []string {
	var out []string
	for _, r := range t.Records {
		out = append(out, r.Day)
	}
	return out
}

func TestFilterWeekdayInsideParentheses(t *testing.T) {
	tbl := days("6 Mar (Wed)", "7 Mar (Thu)", "10 Mar (Sun)", "11 Mar (Mon)")

	wed, err := FilterWeekday(tbl, "Wed")
	require.NoError(t, err)
	assert.Equal(t, []string{"6 Mar (Wed)"}, dayList(wed))

	n, err := FilterWeekday(tbl, "n")
	require.NoError(t, err)
	assert.Equal(t, []string{"10 Mar (Sun)", "11 Mar (Mon)"}, dayList(n))

	none, err := FilterWeekday(tbl, "Mar")
	require.NoError(t, err)
	assert.True(t, none.Empty())
}
