// Package report renders the text export of one item's punches over a
// calendar interval. It is pure: the current instant and week start are
// passed in by the caller.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/punchcard/internal/domain"
)

const (
	nameLabel    = "项目名称"
	recordsLabel = "打卡记录"

	// TimeLayout formats a punch within the report.
	TimeLayout = "15:04:05"
)

// Export is a rendered report ready to be saved.
type Export struct {
	Item     string
	Kind     domain.IntervalKind
	Filename string
	Content  string
	Summary  Summary

	// Path is where the report was written; set by the saver.
	Path string
}

// Summary counts what an export covers.
type Summary struct {
	From       string
	To         string
	Days       int
	ActiveDays int
	Punches    int
}

// Build renders the report of kind for item as of now.
func Build(item *domain.Item, kind domain.IntervalKind, now time.Time, weekStart time.Weekday) (*Export, error) {
	dates, err := domain.DatesInRange(kind, now, weekStart)
	if err != nil {
		return nil, err
	}
	matched := Filter(item, dates)

	return &Export{
		Item:     item.Name,
		Kind:     kind,
		Filename: Filename(item.Name, kind, now),
		Content:  Render(item, kind, matched, now.Location()),
		Summary:  Summarize(item, dates, matched),
	}, nil
}

// Filter returns the item's recorded dates that appear in dates, ascending.
func Filter(item *domain.Item, dates []string) []string {
	in := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		in[d] = struct{}{}
	}

	var matched []string
	for _, d := range item.Dates() {
		if _, ok := in[d]; ok {
			matched = append(matched, d)
		}
	}
	return matched
}

// Render writes the header followed by each matched date and its punches,
// numbered from 1 in punch order. Times are shown in loc.
func Render(item *domain.Item, kind domain.IntervalKind, matched []string, loc *time.Location) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", nameLabel, item.Name)
	fmt.Fprintf(&b, "%s (%s):\n", recordsLabel, kind)
	for _, date := range matched {
		fmt.Fprintf(&b, "%s:\n", date)
		for i, p := range item.Records[date] {
			fmt.Fprintf(&b, "    %d. %s\n", i+1, p.In(loc).Format(TimeLayout))
		}
	}
	return b.String()
}

// Filename names the export file: <item>-打卡记录-<today>-<kind>.txt.
// Path separators in the item name are replaced so the file stays in the
// export directory.
func Filename(name string, kind domain.IntervalKind, now time.Time) string {
	safe := strings.NewReplacer("/", "_", "\\", "_").Replace(name)
	return fmt.Sprintf("%s-%s-%s-%s.txt", safe, recordsLabel, domain.DateKey(now), kind)
}

// Summarize counts the punches and active days among matched dates.
func Summarize(item *domain.Item, dates, matched []string) Summary {
	s := Summary{Days: len(dates), ActiveDays: len(matched)}
	if len(dates) > 0 {
		s.From, s.To = dates[0], dates[len(dates)-1]
	}
	for _, d := range matched {
		s.Punches += len(item.Records[d])
	}
	return s
}
