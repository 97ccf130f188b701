package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/punchcard/internal/domain"
	"github.com/alexanderramin/punchcard/internal/report"
)

type exportService struct {
	items     ItemService
	saver     FileSaver
	now       func() time.Time
	weekStart time.Weekday
	observer  UseCaseObserver
}

// NewExportService creates the exporter. now decides which week, month or
// year is exported; nil means time.Now.
func NewExportService(
	items ItemService,
	saver FileSaver,
	now func() time.Time,
	weekStart time.Weekday,
	observers ...UseCaseObserver,
) ExportService {
	if now == nil {
		now = time.Now
	}
	return &exportService{
		items:     items,
		saver:     saver,
		now:       now,
		weekStart: weekStart,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *exportService) ExportRecords(ctx context.Context, itemName string, kind domain.IntervalKind) (exp *report.Export, err error) {
	uc := startUseCase(s.observer, "export-records", map[string]any{
		"item":     itemName,
		"interval": string(kind),
	})
	defer func() { uc.finish(ctx, err) }()

	if !kind.Valid() {
		return nil, fmt.Errorf("%w %q", domain.ErrInvalidInterval, kind)
	}

	item, err := s.items.Get(ctx, itemName)
	if err != nil {
		return nil, err
	}

	exp, err = report.Build(item, kind, s.now(), s.weekStart)
	if err != nil {
		return nil, fmt.Errorf("building report: %w", err)
	}

	exp.Path, err = s.saver.SaveText(ctx, exp.Filename, exp.Content)
	if err != nil {
		return nil, fmt.Errorf("saving %s: %w", exp.Filename, err)
	}

	uc.fields["punches"] = exp.Summary.Punches
	uc.fields["path"] = exp.Path
	return exp, nil
}
