package daterange

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Filter types accepted by Resolve
const (
	FilterToday     = "today"
	FilterYesterday = "yesterday"
	FilterThisMonth = "this_month"
	FilterLastMonth = "last_month"
	FilterCustom    = "custom"
)

// DateLayout is the ISO date layout used for request parameters
const DateLayout = "2006-01-02"

const displayLayout = "02/01/2006"

// ErrInvalidRange is returned when a custom range is missing or cannot be parsed
var ErrInvalidRange = errors.New("invalid date range")

// Range is a half-open [Start, End) interval of whole days.
// End is always midnight of the day after the last included day.
type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Days returns the number of whole days covered by the range
func (r Range) Days() int {
	return int(r.End.Sub(r.Start).Hours()+12) / 24
}

// LastDay returns the last included day
func (r Range) LastDay() time.Time {
	return r.End.AddDate(0, 0, -1)
}

// Contains reports whether t falls inside the range
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// ShiftMonths moves both bounds by n calendar months, see ShiftMonths
func (r Range) ShiftMonths(n int) Range {
	return Range{Start: ShiftMonths(r.Start, n), End: ShiftMonths(r.End, n)}
}

// StartOfDay truncates t to midnight in its own location
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfMonth returns midnight of the first day of t's month
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// DaysIn returns the number of days in the given month
func DaysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

// ShiftMonths moves t by n calendar months, clamping the day of month to
// the length of the target month (Mar 31 - 1 month = Feb 28/29).
func ShiftMonths(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	day := t.Day()
	if last := DaysIn(first.Year(), first.Month(), t.Location()); day > last {
		day = last
	}
	return first.AddDate(0, 0, day-1)
}

// Resolve turns a named filter into a half-open day range relative to now.
// Unknown filter types resolve to today. Custom ranges take inclusive
// YYYY-MM-DD bounds and fail with ErrInvalidRange when either is missing,
// unparseable, or reversed.
func Resolve(filterType, startStr, endStr string, now time.Time) (Range, error) {
	today := StartOfDay(now)
	thisMonth := StartOfMonth(now)

	switch strings.ToLower(strings.TrimSpace(filterType)) {
	case FilterYesterday:
		return Range{Start: today.AddDate(0, 0, -1), End: today}, nil
	case FilterThisMonth:
		return Range{Start: thisMonth, End: thisMonth.AddDate(0, 1, 0)}, nil
	case FilterLastMonth:
		return Range{Start: thisMonth.AddDate(0, -1, 0), End: thisMonth}, nil
	case FilterCustom:
		return parseCustom(startStr, endStr, now.Location())
	default:
		return Range{Start: today, End: today.AddDate(0, 0, 1)}, nil
	}
}

func parseCustom(startStr, endStr string, loc *time.Location) (Range, error) {
	startStr = strings.TrimSpace(startStr)
	endStr = strings.TrimSpace(endStr)
	if startStr == "" || endStr == "" {
		return Range{}, fmt.Errorf("%w: start and end dates are required", ErrInvalidRange)
	}

	start, err := time.ParseInLocation(DateLayout, startStr, loc)
	if err != nil {
		return Range{}, fmt.Errorf("%w: start date %q", ErrInvalidRange, startStr)
	}
	end, err := time.ParseInLocation(DateLayout, endStr, loc)
	if err != nil {
		return Range{}, fmt.Errorf("%w: end date %q", ErrInvalidRange, endStr)
	}
	if end.Before(start) {
		return Range{}, fmt.Errorf("%w: end date is before start date", ErrInvalidRange)
	}

	return Range{Start: start, End: end.AddDate(0, 0, 1)}, nil
}

// Normalize returns the canonical filter name, mapping unknown values to today
func Normalize(filterType string) string {
	switch f := strings.ToLower(strings.TrimSpace(filterType)); f {
	case FilterToday, FilterYesterday, FilterThisMonth, FilterLastMonth, FilterCustom:
		return f
	default:
		return FilterToday
	}
}

// Title returns the human name of a filter type
func Title(filterType string) string {
	switch Normalize(filterType) {
	case FilterYesterday:
		return "Yesterday"
	case FilterThisMonth:
		return "This Month"
	case FilterLastMonth:
		return "Last Month"
	case FilterCustom:
		return "Custom Range"
	default:
		return "Today"
	}
}

// Label renders "<Title> (dd/mm/yyyy - dd/mm/yyyy)", or a single date when
// the range covers one day.
func Label(filterType string, r Range) string {
	first := r.Start.Format(displayLayout)
	last := r.LastDay().Format(displayLayout)
	if first == last {
		return fmt.Sprintf("%s (%s)", Title(filterType), first)
	}
	return fmt.Sprintf("%s (%s - %s)", Title(filterType), first, last)
}
