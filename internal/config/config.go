package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexanderramin/punchcard/internal/domain"
	"github.com/sethvargo/go-envconfig"
)

// EnvPrefix is prepended to every variable name read by Load.
const EnvPrefix = "PUNCHCARD_"

type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendBolt   Backend = "bolt"
)

// Config holds the runtime settings of the punchcard binary.
type Config struct {
	// DBPath is the store file. Empty selects a backend-specific file
	// under ~/.punchcard.
	DBPath      string  `env:"DB"`
	Backend     Backend `env:"BACKEND, default=sqlite"`
	ExportDir   string  `env:"EXPORT_DIR, default=."`
	WeekStart   string  `env:"WEEK_START, default=sunday"`
	LogUseCases bool    `env:"LOG_USE_CASES, default=false"`

	// FirstWeekday is WeekStart resolved by Load.
	FirstWeekday time.Weekday
}

// Load reads configuration from PUNCHCARD_* environment variables.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration through the given lookuper, which sees
// variable names including the PUNCHCARD_ prefix.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: envconfig.PrefixLookuper(EnvPrefix, l),
	}); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	cfg.Backend = Backend(strings.ToLower(string(cfg.Backend)))
	switch cfg.Backend {
	case BackendSQLite, BackendBolt:
	default:
		return nil, fmt.Errorf("%sBACKEND %q: want sqlite or bolt", EnvPrefix, cfg.Backend)
	}

	day, err := domain.ParseWeekday(cfg.WeekStart)
	if err != nil {
		return nil, fmt.Errorf("%sWEEK_START: %w", EnvPrefix, err)
	}
	cfg.FirstWeekday = day

	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = DefaultDBPath(home, cfg.Backend)
	}

	return &cfg, nil
}

// DefaultDBPath returns the store location used when PUNCHCARD_DB is unset.
func DefaultDBPath(home string, backend Backend) string {
	name := "punchcard.db"
	if backend == BackendBolt {
		name = "punchcard.bolt"
	}
	return filepath.Join(home, ".punchcard", name)
}
