package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/punchcard/internal/domain"
	"github.com/alexanderramin/punchcard/internal/report"
)

const selectedMarker = "●"

// FormatItemList renders all items with their punch counts inside a box.
// The selected item is marked.
func FormatItemList(items []*domain.Item, selected string, now time.Time) string {
	if len(items) == 0 {
		return RenderBox("Items", Dim("No items yet. Add one with: punchcard add NAME"))
	}

	headers := []string{"", "NAME", "TODAY", "TOTAL", "LAST PUNCH"}
	rows := make([][]string, 0, len(items))
	today := domain.DateKey(now)

	for _, it := range items {
		marker := " "
		name := StyleFg.Render(it.Name)
		if it.Name == selected {
			marker = StyleGreen.Render(selectedMarker)
			name = Bold(it.Name)
		}
		last, ok := it.LastPunch()
		rows = append(rows, []string{
			marker,
			name,
			countCell(len(it.Records[today])),
			fmt.Sprintf("%d", it.TotalPunches()),
			LastPunch(last, ok, now),
		})
	}

	return RenderBox("Items", RenderTable(headers, rows))
}

func countCell(n int) string {
	if n == 0 {
		return Dim("0")
	}
	return StyleGreen.Render(fmt.Sprintf("%d", n))
}

// FormatItemRecords renders every recorded date of an item, oldest first.
func FormatItemRecords(item *domain.Item, loc *time.Location) string {
	var b strings.Builder
	b.WriteString(Header(item.Name))
	b.WriteString("\n")

	dates := item.Dates()
	if len(dates) == 0 {
		b.WriteString(Dim("No punches recorded."))
		b.WriteString("\n")
		return b.String()
	}

	for _, date := range dates {
		punches := item.Records[date]
		fmt.Fprintf(&b, "%s  %s\n", StyleBlue.Render(date), Dim(Plural(len(punches), "punch", "punches")))
		b.WriteString(FormatPunches(punches, loc))
	}
	fmt.Fprintf(&b, "\n%s across %s\n", Plural(item.TotalPunches(), "punch", "punches"), Plural(len(dates), "day", "days"))
	return b.String()
}

// FormatPunches lists punch times numbered from 1.
func FormatPunches(punches []time.Time, loc *time.Location) string {
	var b strings.Builder
	for i, p := range punches {
		fmt.Fprintf(&b, "    %s %s\n", Dim(fmt.Sprintf("%d.", i+1)), p.In(loc).Format(report.TimeLayout))
	}
	return b.String()
}

// FormatPunchResult confirms a punch and shows the day's count.
func FormatPunchResult(item *domain.Item, date string) string {
	n := len(item.Records[date])
	return Success(fmt.Sprintf("Punched %s on %s (%s that day)", item.Name, date, Plural(n, "punch", "punches")))
}

// FormatExportResult describes a saved export.
func FormatExportResult(exp *report.Export) string {
	s := exp.Summary
	lines := []string{
		Success(fmt.Sprintf("Exported %s (%s)", exp.Item, exp.Kind)),
		"  " + Dim("file    ") + exp.Path,
		"  " + Dim("range   ") + s.From + " → " + s.To,
		"  " + Dim("punches ") + fmt.Sprintf("%s on %d of %d days", Plural(s.Punches, "punch", "punches"), s.ActiveDays, s.Days),
	}
	return strings.Join(lines, "\n") + "\n"
}
