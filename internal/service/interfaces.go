package service

import (
	"context"

	"github.com/alexanderramin/punchcard/internal/domain"
	"github.com/alexanderramin/punchcard/internal/report"
)

const (
	// ItemsKey holds the JSON array of items.
	ItemsKey = "punchItems"
	// SelectionKey holds the name of the selected item as a JSON string.
	SelectionKey = "punchSelection"
)

// ItemService owns the ordered item collection and persists it after every
// mutation.
type ItemService interface {
	Load(ctx context.Context) error
	List(ctx context.Context) ([]*domain.Item, error)
	Get(ctx context.Context, name string) (*domain.Item, error)
	AddItem(ctx context.Context, name string) (*domain.Item, error)
	DeleteItem(ctx context.Context, name string, confirm Confirmer) (bool, error)
	Punch(ctx context.Context, selected, date string) (*domain.Item, error)
	CancelPunch(ctx context.Context, name, date string) (bool, error)
	Select(ctx context.Context, name string) error
	Selected(ctx context.Context) (string, error)
}

// ExportService renders an item's punches for an interval and saves the
// report.
type ExportService interface {
	ExportRecords(ctx context.Context, itemName string, kind domain.IntervalKind) (*report.Export, error)
}

// FileSaver stores a rendered text file and returns where it went.
type FileSaver interface {
	SaveText(ctx context.Context, filename, content string) (string, error)
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// AlwaysConfirm answers yes without asking.
var AlwaysConfirm Confirmer = ConfirmFunc(func(context.Context, string) (bool, error) { return true, nil })
