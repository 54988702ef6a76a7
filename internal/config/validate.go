package config

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/heartmarshall/dictionary-importer/internal/domain"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	switch c.Sink.Kind {
	case SinkPostgres:
		if strings.TrimSpace(c.Database.DSN) == "" {
			return fmt.Errorf("database.dsn is required for the postgres sink")
		}
	case SinkSQLite:
		if strings.TrimSpace(c.Sink.SQLitePath) == "" {
			return fmt.Errorf("sink.sqlite_path is required for the sqlite sink")
		}
	case SinkNone:
	default:
		return fmt.Errorf("sink.kind must be one of postgres, sqlite, none (got %q)", c.Sink.Kind)
	}

	if err := c.Import.validate(); err != nil {
		return fmt.Errorf("import: %w", err)
	}

	if err := c.Rewrite.validate(); err != nil {
		return fmt.Errorf("rewrite: %w", err)
	}

	return nil
}

func (c *ImportConfig) validate() error {
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be > 0 (got %d)", c.Workers)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be > 0 (got %d)", c.BatchSize)
	}

	for key, in := range c.Sources {
		if _, ok := domain.ParseSourceCode(key); !ok {
			return fmt.Errorf("sources: unknown source %q", key)
		}
		if strings.TrimSpace(in.Path) == "" {
			return fmt.Errorf("sources.%s: path is required", key)
		}
		switch in.Format {
		case "", FormatJSONL, FormatDump:
		default:
			return fmt.Errorf("sources.%s: format must be jsonl or dump (got %q)", key, in.Format)
		}
	}

	phases, err := ParsePhases(c.PhasesRaw)
	if err != nil {
		return fmt.Errorf("phases: %w", err)
	}
	c.Phases = phases

	return nil
}

func (c *RewriteConfig) validate() error {
	switch c.Mode {
	case RewriteRules, RewriteOff:
	default:
		return fmt.Errorf("mode must be rules or off (got %q)", c.Mode)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", c.Timeout)
	}
	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("locale %q: %w", c.Locale, err)
	}
	return nil
}

// ParsePhases parses a comma-separated list of source codes
// (e.g. "gut_webster,collins"). An empty string returns a nil slice,
// which means every phase.
func ParsePhases(raw string) ([]domain.SourceCode, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	phases := make([]domain.SourceCode, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		code, ok := domain.ParseSourceCode(p)
		if !ok {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnknownSource, p)
		}
		phases = append(phases, code)
	}

	return phases, nil
}
