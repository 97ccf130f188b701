package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/punchcard/internal/cli/formatter"
	"github.com/alexanderramin/punchcard/internal/domain"
	"github.com/alexanderramin/punchcard/internal/service"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

type boardMode int

const (
	boardBrowse boardMode = iota
	boardAdding
	boardConfirmDelete
)

// boardLoadedMsg carries a fresh snapshot of the store.
type boardLoadedMsg struct {
	items    []*domain.Item
	selected string
	err      error
}

// boardResultMsg reports the outcome of an action. The board reloads after it.
type boardResultMsg struct {
	text string
	err  error
}

// boardModel is the bubbletea Model of the interactive board: the item list,
// a day cursor and the selected item's punches on that day.
type boardModel struct {
	ctx   context.Context
	app   *App
	keys  boardKeyMap
	help  help.Model
	input textinput.Model

	mode     boardMode
	items    []*domain.Item
	selected string
	cursor   int
	date     string
	loaded   bool

	status     string
	statusWarn bool
	quitting   bool
}

func newBoardModel(ctx context.Context, app *App) boardModel {
	ti := textinput.New()
	ti.Prompt = "Name: "
	ti.Placeholder = "Read 30 minutes"
	ti.CharLimit = 100

	return boardModel{
		ctx:   ctx,
		app:   app,
		keys:  defaultBoardKeyMap(),
		help:  help.New(),
		input: ti,
		date:  domain.DateKey(app.now()),
	}
}

func newBoardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Open the interactive punch board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard(cmd.Context(), app)
		},
	}
}

func runBoard(ctx context.Context, app *App) error {
	p := tea.NewProgram(newBoardModel(ctx, app), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m boardModel) Init() tea.Cmd {
	return m.reload()
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case boardLoadedMsg:
		if msg.err != nil {
			m.setStatus(msg.err)
			return m, nil
		}
		m.items = msg.items
		m.selected = msg.selected
		if !m.loaded {
			m.loaded = true
			m.cursor = max(m.indexOf(m.selected), 0)
		}
		if m.cursor >= len(m.items) {
			m.cursor = max(len(m.items)-1, 0)
		}
		return m, nil

	case boardResultMsg:
		if msg.err != nil {
			m.setStatus(msg.err)
		} else {
			m.status, m.statusWarn = msg.text, false
		}
		return m, m.reload()

	case tea.KeyMsg:
		switch m.mode {
		case boardAdding:
			return m.updateAdding(msg)
		case boardConfirmDelete:
			return m.updateConfirmDelete(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m boardModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Select):
		if item := m.current(); item != nil {
			return m, m.selectItem(item.Name)
		}
	case key.Matches(msg, m.keys.Punch):
		return m, m.punch()
	case key.Matches(msg, m.keys.Cancel):
		return m, m.cancelPunch()
	case key.Matches(msg, m.keys.PrevDay):
		m.shiftDate(-1)
	case key.Matches(msg, m.keys.NextDay):
		m.shiftDate(1)
	case key.Matches(msg, m.keys.Today):
		m.date = domain.DateKey(m.app.now())
	case key.Matches(msg, m.keys.Add):
		m.mode = boardAdding
		m.input.Reset()
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Delete):
		if m.current() != nil {
			m.mode = boardConfirmDelete
		}
	case key.Matches(msg, m.keys.Weekly):
		return m, m.export(domain.IntervalWeekly)
	case key.Matches(msg, m.keys.Monthly):
		return m, m.export(domain.IntervalMonthly)
	case key.Matches(msg, m.keys.Yearly):
		return m, m.export(domain.IntervalYearly)
	}
	return m, nil
}

func (m boardModel) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = boardBrowse
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		name := m.input.Value()
		m.mode = boardBrowse
		m.input.Blur()
		return m, m.addItem(name)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m boardModel) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = boardBrowse
	item := m.current()
	if item == nil {
		return m, nil
	}
	if strings.EqualFold(msg.String(), "y") {
		return m, m.deleteItem(item.Name)
	}
	m.status, m.statusWarn = fmt.Sprintf("Kept %s", item.Name), false
	return m, nil
}

func (m *boardModel) setStatus(err error) {
	m.statusWarn = true
	if domain.IsUserError(err) {
		m.status = alertText(err)
		return
	}
	m.status = "Error: " + err.Error()
}

func (m *boardModel) shiftDate(days int) {
	t, err := time.ParseInLocation(domain.DateLayout, m.date, m.app.now().Location())
	if err != nil {
		return
	}
	m.date = domain.DateKey(t.AddDate(0, 0, days))
}

func (m boardModel) current() *domain.Item {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return nil
	}
	return m.items[m.cursor]
}

func (m boardModel) indexOf(name string) int {
	for i, item := range m.items {
		if item.Name == name {
			return i
		}
	}
	return -1
}

func (m boardModel) selectedItem() *domain.Item {
	if i := m.indexOf(m.selected); i >= 0 {
		return m.items[i]
	}
	return nil
}

// ── commands ─────────────────────────────────────────────────────────────────

func (m boardModel) reload() tea.Cmd {
	ctx, items := m.ctx, m.app.Items
	return func() tea.Msg {
		list, err := items.List(ctx)
		if err != nil {
			return boardLoadedMsg{err: err}
		}
		selected, err := items.Selected(ctx)
		return boardLoadedMsg{items: list, selected: selected, err: err}
	}
}

func (m boardModel) selectItem(name string) tea.Cmd {
	ctx, items := m.ctx, m.app.Items
	return func() tea.Msg {
		if err := items.Select(ctx, name); err != nil {
			return boardResultMsg{err: err}
		}
		return boardResultMsg{text: fmt.Sprintf("Selected %s", name)}
	}
}

func (m boardModel) punch() tea.Cmd {
	ctx, items, selected, date := m.ctx, m.app.Items, m.selected, m.date
	return func() tea.Msg {
		item, err := items.Punch(ctx, selected, date)
		if err != nil {
			return boardResultMsg{err: err}
		}
		n := len(item.Records[date])
		return boardResultMsg{text: fmt.Sprintf("Punched %s (%s on %s)", item.Name, formatter.Plural(n, "punch", "punches"), date)}
	}
}

func (m boardModel) cancelPunch() tea.Cmd {
	ctx, items, selected, date := m.ctx, m.app.Items, m.selected, m.date
	return func() tea.Msg {
		if selected == "" {
			return boardResultMsg{err: domain.ErrNoSelection}
		}
		removed, err := items.CancelPunch(ctx, selected, date)
		if err != nil {
			return boardResultMsg{err: err}
		}
		if !removed {
			return boardResultMsg{text: fmt.Sprintf("No punch to cancel on %s", date)}
		}
		return boardResultMsg{text: fmt.Sprintf("Cancelled the last punch on %s", date)}
	}
}

func (m boardModel) addItem(name string) tea.Cmd {
	ctx, items := m.ctx, m.app.Items
	return func() tea.Msg {
		item, err := items.AddItem(ctx, name)
		if err != nil {
			return boardResultMsg{err: err}
		}
		return boardResultMsg{text: fmt.Sprintf("Added %s", item.Name)}
	}
}

// deleteItem runs after the board's own y/n prompt, so the service is told
// the answer was yes.
func (m boardModel) deleteItem(name string) tea.Cmd {
	ctx, items := m.ctx, m.app.Items
	return func() tea.Msg {
		deleted, err := items.DeleteItem(ctx, name, service.AlwaysConfirm)
		if err != nil {
			return boardResultMsg{err: err}
		}
		if !deleted {
			return boardResultMsg{text: fmt.Sprintf("%s was already gone", name)}
		}
		return boardResultMsg{text: fmt.Sprintf("Deleted %s", name)}
	}
}

func (m boardModel) export(kind domain.IntervalKind) tea.Cmd {
	ctx, exporter, selected := m.ctx, m.app.Export, m.selected
	return func() tea.Msg {
		if selected == "" {
			return boardResultMsg{err: domain.ErrNoSelection}
		}
		exp, err := exporter.ExportRecords(ctx, selected, kind)
		if err != nil {
			return boardResultMsg{err: err}
		}
		return boardResultMsg{text: fmt.Sprintf("Exported %s to %s (%s)",
			kind, exp.Path, formatter.Plural(exp.Summary.Punches, "punch", "punches"))}
	}
}
