package domain

import (
	"fmt"
	"strings"
	"time"
)

// IntervalKind selects the calendar window used when exporting records.
type IntervalKind string

const (
	IntervalWeekly  IntervalKind = "weekly"
	IntervalMonthly IntervalKind = "monthly"
	IntervalYearly  IntervalKind = "yearly"
)

// IntervalKinds lists the accepted interval kinds in display order.
var IntervalKinds = []IntervalKind{IntervalWeekly, IntervalMonthly, IntervalYearly}

// ParseIntervalKind converts s (case-insensitive) into an IntervalKind.
func ParseIntervalKind(s string) (IntervalKind, error) {
	k := IntervalKind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("%w %q: want weekly, monthly or yearly", ErrInvalidInterval, s)
	}
	return k, nil
}

func (k IntervalKind) Valid() bool {
	switch k {
	case IntervalWeekly, IntervalMonthly, IntervalYearly:
		return true
	}
	return false
}

// ParseWeekday converts an English weekday name (case-insensitive) into a
// time.Weekday.
func ParseWeekday(s string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.ToLower(d.String()) == name {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("unknown weekday %q", s)
}

// IntervalBounds returns the first and last calendar day of the interval of
// the given kind containing now. Both are midnight in now's location.
func IntervalBounds(kind IntervalKind, now time.Time, weekStart time.Weekday) (time.Time, time.Time, error) {
	y, m, d := now.Date()
	loc := now.Location()

	switch kind {
	case IntervalWeekly:
		offset := (int(now.Weekday()) - int(weekStart) + 7) % 7
		start := time.Date(y, m, d-offset, 0, 0, 0, 0, loc)
		return start, time.Date(y, m, d-offset+6, 0, 0, 0, 0, loc), nil
	case IntervalMonthly:
		return time.Date(y, m, 1, 0, 0, 0, 0, loc), time.Date(y, m+1, 0, 0, 0, 0, 0, loc), nil
	case IntervalYearly:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, loc), time.Date(y, time.December, 31, 0, 0, 0, 0, loc), nil
	}
	return time.Time{}, time.Time{}, fmt.Errorf("%w %q", ErrInvalidInterval, kind)
}

// DatesInRange enumerates every calendar date of the interval containing now,
// ascending and inclusive, as YYYY-MM-DD strings.
func DatesInRange(kind IntervalKind, now time.Time, weekStart time.Weekday) ([]string, error) {
	start, end, err := IntervalBounds(kind, now, weekStart)
	if err != nil {
		return nil, err
	}

	var dates []string
	y, m, d := start.Date()
	for i := 0; ; i++ {
		day := time.Date(y, m, d+i, 0, 0, 0, 0, start.Location())
		if day.After(end) {
			break
		}
		dates = append(dates, DateKey(day))
	}
	return dates, nil
}
