package daterange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveNamedFilters(t *testing.T) {
	now := time.Date(2024, time.March, 15, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		filter    string
		wantStart time.Time
		wantEnd   time.Time
		wantDays  int
	}{
		{FilterToday, day(2024, time.March, 15), day(2024, time.March, 16), 1},
		{FilterYesterday, day(2024, time.March, 14), day(2024, time.March, 15), 1},
		{FilterThisMonth, day(2024, time.March, 1), day(2024, time.April, 1), 31},
		{FilterLastMonth, day(2024, time.February, 1), day(2024, time.March, 1), 29},
		{"THIS_MONTH", day(2024, time.March, 1), day(2024, time.April, 1), 31},
		{"fortnight", day(2024, time.March, 15), day(2024, time.March, 16), 1},
		{"", day(2024, time.March, 15), day(2024, time.March, 16), 1},
	}

	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			r, err := Resolve(tt.filter, "", "", now)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, r.Start)
			assert.Equal(t, tt.wantEnd, r.End)
			assert.Equal(t, tt.wantDays, r.Days())
			assert.GreaterOrEqual(t, r.Days(), 1)
		})
	}
}

func TestResolveYearBoundaries(t *testing.T) {
	jan := time.Date(2025, time.January, 1, 0, 5, 0, 0, time.UTC)

	r, err := Resolve(FilterYesterday, "", "", jan)
	require.NoError(t, err)
	assert.Equal(t, day(2024, time.December, 31), r.Start)

	r, err = Resolve(FilterLastMonth, "", "", jan)
	require.NoError(t, err)
	assert.Equal(t, day(2024, time.December, 1), r.Start)
	assert.Equal(t, day(2025, time.January, 1), r.End)

	dec := time.Date(2024, time.December, 31, 23, 0, 0, 0, time.UTC)
	r, err = Resolve(FilterThisMonth, "", "", dec)
	require.NoError(t, err)
	assert.Equal(t, day(2025, time.January, 1), r.End)
}

func TestResolveCustom(t *testing.T) {
	now := time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)

	r, err := Resolve(FilterCustom, "2024-02-10", "2024-02-20", now)
	require.NoError(t, err)
	assert.Equal(t, day(2024, time.February, 10), r.Start)
	assert.Equal(t, day(2024, time.February, 21), r.End)
	assert.Equal(t, 11, r.Days())

	r, err = Resolve(FilterCustom, "2024-02-10", "2024-02-10", now)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Days())

	invalid := [][2]string{
		{"", "2024-02-20"},
		{"2024-02-10", ""},
		{"10/02/2024", "2024-02-20"},
		{"2024-02-10", "2024-02-31"},
		{"2024-02-20", "2024-02-10"},
	}
	for _, in := range invalid {
		_, err := Resolve(FilterCustom, in[0], in[1], now)
		assert.ErrorIs(t, err, ErrInvalidRange, "start=%q end=%q", in[0], in[1])
	}
}

func TestShiftMonthsClampsDay(t *testing.T) {
	tests := []struct {
		in   time.Time
		n    int
		want time.Time
	}{
		{day(2024, time.March, 31), -1, day(2024, time.February, 29)},
		{day(2023, time.March, 31), -1, day(2023, time.February, 28)},
		{day(2024, time.January, 31), 1, day(2024, time.February, 29)},
		{day(2024, time.February, 29), 1, day(2024, time.March, 29)},
		{day(2024, time.January, 15), -1, day(2023, time.December, 15)},
		{day(2024, time.May, 31), -1, day(2024, time.April, 30)},
		{day(2024, time.April, 1), -1, day(2024, time.March, 1)},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ShiftMonths(tt.in, tt.n), "%s %+d", tt.in.Format(DateLayout), tt.n)
	}
}

func TestShiftMonthsRoundTripUpTo28(t *testing.T) {
	for d := 1; d <= 28; d++ {
		in := day(2024, time.March, d)
		assert.Equal(t, in, ShiftMonths(ShiftMonths(in, -1), 1))
	}

	lossy := ShiftMonths(ShiftMonths(day(2024, time.January, 31), 1), 1)
	assert.Equal(t, day(2024, time.March, 29), lossy)
}

func TestRangeShiftMonths(t *testing.T) {
	r := Range{Start: day(2024, time.March, 1), End: day(2024, time.April, 1)}
	prior := r.ShiftMonths(-1)
	assert.Equal(t, day(2024, time.February, 1), prior.Start)
	assert.Equal(t, day(2024, time.March, 1), prior.End)
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Today (15/03/2024)",
		Label(FilterToday, Range{Start: day(2024, time.March, 15), End: day(2024, time.March, 16)}))
	assert.Equal(t, "This Month (01/03/2024 - 31/03/2024)",
		Label(FilterThisMonth, Range{Start: day(2024, time.March, 1), End: day(2024, time.April, 1)}))
	assert.Equal(t, "Custom Range (10/02/2024 - 20/02/2024)",
		Label(FilterCustom, Range{Start: day(2024, time.February, 10), End: day(2024, time.February, 21)}))
	assert.Equal(t, "Today (15/03/2024)",
		Label("bogus", Range{Start: day(2024, time.March, 15), End: day(2024, time.March, 16)}))
}

func TestRangeContains(t *testing.T) {
	r := Range{Start: day(2024, time.March, 1), End: day(2024, time.March, 2)}
	assert.True(t, r.Contains(day(2024, time.March, 1)))
	assert.True(t, r.Contains(time.Date(2024, time.March, 1, 23, 59, 59, 0, time.UTC)))
	assert.False(t, r.Contains(day(2024, time.March, 2)))
}
