package cli

import "github.com/charmbracelet/bubbles/key"

type boardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	Punch   key.Binding
	Cancel  key.Binding
	PrevDay key.Binding
	NextDay key.Binding
	Today   key.Binding
	Add     key.Binding
	Delete  key.Binding
	Weekly  key.Binding
	Monthly key.Binding
	Yearly  key.Binding
	Quit    key.Binding
}

func defaultBoardKeyMap() boardKeyMap {
	return boardKeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Punch:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "punch")),
		Cancel:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "cancel punch")),
		PrevDay: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "prev day")),
		NextDay: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next day")),
		Today:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Weekly:  key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "export week")),
		Monthly: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "export month")),
		Yearly:  key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "export year")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k boardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Punch, k.Cancel, k.PrevDay, k.NextDay, k.Add, k.Quit}
}

func (k boardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Punch, k.Cancel},
		{k.PrevDay, k.NextDay, k.Today},
		{k.Add, k.Delete},
		{k.Weekly, k.Monthly, k.Yearly},
		{k.Quit},
	}
}
