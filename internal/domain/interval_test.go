package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIntervalKind(t *testing.T) {
	cases := map[string]IntervalKind{
		"weekly":   IntervalWeekly,
		"Monthly":  IntervalMonthly,
		" YEARLY ": IntervalYearly,
	}
	for in, want := range cases {
		got, err := ParseIntervalKind(in)
		require.NoError(t, err, "input=%q", in)
		assert.Equal(t, want, got)
	}

	_, err := ParseIntervalKind("daily")
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestParseWeekday(t *testing.T) {
	d, err := ParseWeekday("Monday")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, d)

	d, err = ParseWeekday("sunday")
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, d)

	_, err = ParseWeekday("funday")
	assert.Error(t, err)
}

func TestDatesInRange_WeeklySundayStart(t *testing.T) {
	// 2024-01-03 is a Wednesday.
	dates, err := DatesInRange(IntervalWeekly, testNow, time.Sunday)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"2023-12-31", "2024-01-01", "2024-01-02", "2024-01-03",
		"2024-01-04", "2024-01-05", "2024-01-06",
	}, dates)
}

func TestDatesInRange_WeeklyMondayStart(t *testing.T) {
	dates, err := DatesInRange(IntervalWeekly, testNow, time.Monday)
	require.NoError(t, err)
	require.Len(t, dates, 7)
	assert.Equal(t, "2024-01-01", dates[0])
	assert.Equal(t, "2024-01-07", dates[6])
}

func TestDatesInRange_WeeklyOnWeekStart(t *testing.T) {
	sunday := time.Date(2024, 1, 7, 23, 59, 0, 0, time.UTC)
	dates, err := DatesInRange(IntervalWeekly, sunday, time.Sunday)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-07", dates[0])
	assert.Equal(t, "2024-01-13", dates[6])
}

func TestDatesInRange_MonthlyLeapFebruary(t *testing.T) {
	now := time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC)
	dates, err := DatesInRange(IntervalMonthly, now, time.Sunday)
	require.NoError(t, err)
	require.Len(t, dates, 29)
	assert.Equal(t, "2024-02-01", dates[0])
	assert.Equal(t, "2024-02-29", dates[28])
}

func TestDatesInRange_Yearly(t *testing.T) {
	dates, err := DatesInRange(IntervalYearly, testNow, time.Sunday)
	require.NoError(t, err)
	require.Len(t, dates, 366)
	assert.Equal(t, "2024-01-01", dates[0])
	assert.Equal(t, "2024-12-31", dates[365])

	dates, err = DatesInRange(IntervalYearly, time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), time.Sunday)
	require.NoError(t, err)
	assert.Len(t, dates, 365)
}

func TestDatesInRange_AcrossDSTKeepsEveryDay(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	now := time.Date(2024, 3, 12, 8, 0, 0, 0, loc)
	dates, err := DatesInRange(IntervalWeekly, now, time.Sunday)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"2024-03-10", "2024-03-11", "2024-03-12", "2024-03-13",
		"2024-03-14", "2024-03-15", "2024-03-16",
	}, dates)
}

func TestIntervalBounds_InvalidKind(t *testing.T) {
	_, _, err := IntervalBounds("daily", testNow, time.Sunday)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = DatesInRange("", testNow, time.Sunday)
	assert.ErrorIs(t, err, ErrInvalidInterval)
}
