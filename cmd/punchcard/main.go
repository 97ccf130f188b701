package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alexanderramin/punchcard/internal/cli"
	"github.com/alexanderramin/punchcard/internal/config"
	"github.com/alexanderramin/punchcard/internal/db"
	"github.com/alexanderramin/punchcard/internal/repository"
	"github.com/alexanderramin/punchcard/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if cfg.LogUseCases {
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}

	items := service.NewItemService(store, nil, observer)
	if err := items.Load(ctx); err != nil {
		return err
	}
	exportTo := func(dir string) service.ExportService {
		return service.NewExportService(items, service.NewDirSaver(dir), nil, cfg.FirstWeekday, observer)
	}

	app := &cli.App{
		Items:    items,
		Export:   exportTo(cfg.ExportDir),
		ExportTo: exportTo,
		Confirm:  cli.HuhConfirmer{},
		Interactive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

// openStore opens the configured key-value backend.
func openStore(cfg *config.Config) (repository.KVStore, error) {
	switch cfg.Backend {
	case config.BackendBolt:
		store, err := repository.NewBoltKVStore(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("opening bolt store: %w", err)
		}
		return store, nil
	default:
		database, err := db.OpenDB(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}
		return repository.NewSQLiteKVStore(database), nil
	}
}
