package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/punchcard/internal/cli/formatter"
	"github.com/charmbracelet/lipgloss"
)

var (
	boardCursorStyle = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	boardPanelStyle  = lipgloss.NewStyle().PaddingLeft(2)
)

func (m boardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(formatter.Header("Punchcard"))
	b.WriteString("\n\n")
	b.WriteString(m.viewItems())
	b.WriteString("\n")
	b.WriteString(m.viewDay())
	b.WriteString("\n")

	switch m.mode {
	case boardAdding:
		b.WriteString(m.input.View())
		b.WriteString("\n")
		b.WriteString(formatter.Dim("enter add • esc cancel"))
	case boardConfirmDelete:
		if item := m.current(); item != nil {
			b.WriteString(formatter.Warning(fmt.Sprintf("Delete item %q and all of its punches? (y/n)", item.Name)))
		}
	default:
		if m.status != "" {
			if m.statusWarn {
				b.WriteString(formatter.Warning(m.status))
			} else {
				b.WriteString(formatter.StyleGreen.Render(m.status))
			}
			b.WriteString("\n")
		}
		b.WriteString(m.help.View(m.keys))
	}
	b.WriteString("\n")
	return b.String()
}

func (m boardModel) viewItems() string {
	if len(m.items) == 0 {
		return boardPanelStyle.Render(formatter.Dim("No items yet. Press a to add one.")) + "\n"
	}

	var b strings.Builder
	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = boardCursorStyle.Render("▸ ")
		}
		marker := "  "
		name := formatter.StyleFg.Render(item.Name)
		if item.Name == m.selected {
			marker = formatter.StyleGreen.Render("● ")
			name = formatter.Bold(item.Name)
		}
		count := len(item.Records[m.date])
		fmt.Fprintf(&b, "%s%s%s  %s\n", cursor, marker, name,
			formatter.Dim(formatter.Plural(count, "punch", "punches")))
	}
	return b.String()
}

func (m boardModel) viewDay() string {
	title := formatter.StyleBlue.Render(m.date)
	item := m.selectedItem()
	if item == nil {
		return title + "  " + formatter.Dim("no item selected") + "\n"
	}

	punches := item.PunchesOn(m.date)
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", title, formatter.Bold(item.Name))
	if len(punches) == 0 {
		b.WriteString(boardPanelStyle.Render(formatter.Dim("no punches")))
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString(formatter.FormatPunches(punches, m.app.now().Location()))
	return b.String()
}
