package config

import (
	"time"

	"github.com/heartmarshall/dictionary-importer/internal/domain"
)

// Config is the root importer configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Import   ImportConfig   `yaml:"import"`
	Rewrite  RewriteConfig  `yaml:"rewrite"`
	Sink     SinkConfig     `yaml:"sink"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// Input formats for a source file.
const (
	FormatJSONL = "jsonl"
	FormatDump  = "dump"
)

// SourceInput points at one raw source file.
// Format is "jsonl" (staging rows) or "dump" (plain text); empty means
// it is inferred from the file extension.
type SourceInput struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"`
}

// ImportConfig holds import pipeline settings.
type ImportConfig struct {
	Workers   int    `yaml:"workers"    env:"IMPORT_WORKERS"    env-default:"4"`
	BatchSize int    `yaml:"batch_size" env:"IMPORT_BATCH_SIZE" env-default:"200"`
	DryRun    bool   `yaml:"dry_run"    env:"IMPORT_DRY_RUN"`
	PhasesRaw string `yaml:"phases"     env:"IMPORT_PHASES"`

	// Sources maps a source code (any case) to its input file.
	Sources map[string]SourceInput `yaml:"sources"`

	// Phases is parsed from PhasesRaw during validation.
	Phases []domain.SourceCode `yaml:"-" env:"-"`
}

// Input returns the configured input for code.
func (c ImportConfig) Input(code domain.SourceCode) (SourceInput, bool) {
	for k, in := range c.Sources {
		if parsed, ok := domain.ParseSourceCode(k); ok && parsed == code {
			return in, true
		}
	}
	return SourceInput{}, false
}

// Rewrite modes.
const (
	RewriteRules = "rules"
	RewriteOff   = "off"
)

// RewriteConfig holds grammar-correction settings.
type RewriteConfig struct {
	Mode    string        `yaml:"mode"    env:"REWRITE_MODE"    env-default:"rules"`
	Locale  string        `yaml:"locale"  env:"REWRITE_LOCALE"  env-default:"en"`
	Timeout time.Duration `yaml:"timeout" env:"REWRITE_TIMEOUT" env-default:"2s"`
}

// Enabled reports whether correction runs at all.
func (c RewriteConfig) Enabled() bool { return c.Mode != RewriteOff }

// Sink kinds.
const (
	SinkPostgres = "postgres"
	SinkSQLite   = "sqlite"
	SinkNone     = "none"
)

// SinkConfig selects where parsed records are written.
type SinkConfig struct {
	Kind       string `yaml:"kind"        env:"SINK_KIND"        env-default:"postgres"`
	SQLitePath string `yaml:"sqlite_path" env:"SINK_SQLITE_PATH" env-default:"./parsed.db"`
}
