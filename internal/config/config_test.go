package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/heartmarshall/dictionary-importer/internal/domain"
)

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
database:
  dsn: "postgres://u:p@localhost:5432/testdb"
  max_conns: 8

log:
  level: "debug"
  format: "text"

import:
  workers: 2
  batch_size: 50
  phases: "gut_webster, collins"
  sources:
    GUT_WEBSTER:
      path: "/data/webster.txt"
      format: "dump"
    collins:
      path: "/data/collins.jsonl"

rewrite:
  mode: "off"
  timeout: "500ms"

sink:
  kind: "postgres"
`

func validConfig() *Config {
	return &Config{
		Database: DatabaseConfig{DSN: "postgres://u:p@localhost:5432/testdb"},
		Log:      LogConfig{Level: "info", Format: "json"},
		Import:   ImportConfig{Workers: 4, BatchSize: 200},
		Rewrite:  RewriteConfig{Mode: RewriteRules, Locale: "en", Timeout: 2 * time.Second},
		Sink:     SinkConfig{Kind: SinkPostgres, SQLitePath: "./parsed.db"},
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Database.MaxConns != 8 {
		t.Errorf("database.max_conns = %d, want 8", cfg.Database.MaxConns)
	}
	if cfg.Database.MinConns != 2 {
		t.Errorf("database.min_conns = %d, want 2 (default)", cfg.Database.MinConns)
	}
	if cfg.Log.Format != "text" {
		t.Errorf("log.format = %q, want text", cfg.Log.Format)
	}
	if cfg.Import.Workers != 2 || cfg.Import.BatchSize != 50 {
		t.Errorf("import = %+v", cfg.Import)
	}
	want := []domain.SourceCode{domain.SourceGutenbergWebster, domain.SourceCollins}
	if len(cfg.Import.Phases) != 2 || cfg.Import.Phases[0] != want[0] || cfg.Import.Phases[1] != want[1] {
		t.Errorf("import.phases = %v, want %v", cfg.Import.Phases, want)
	}
	in, ok := cfg.Import.Input(domain.SourceCollins)
	if !ok || in.Path != "/data/collins.jsonl" || in.Format != "" {
		t.Errorf("Input(COLLINS) = %+v, %v", in, ok)
	}
	if _, ok := cfg.Import.Input(domain.SourceOxford); ok {
		t.Error("Input(OXFORD) should be absent")
	}
	if cfg.Rewrite.Enabled() {
		t.Error("rewrite should be disabled")
	}
	if cfg.Rewrite.Timeout != 500*time.Millisecond {
		t.Errorf("rewrite.timeout = %v, want 500ms", cfg.Rewrite.Timeout)
	}
	if cfg.Rewrite.Locale != "en" {
		t.Errorf("rewrite.locale = %q, want en (default)", cfg.Rewrite.Locale)
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("IMPORT_WORKERS", "16")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Import.Workers != 16 {
		t.Errorf("import.workers = %d, want 16 (ENV override)", cfg.Import.Workers)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %q, want %q (ENV override)", cfg.Log.Level, "warn")
	}
}

func TestLoad_NoFile_ENVOnly(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("DATABASE_DSN", "postgres://u:p@localhost:5432/testdb")
	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Import.Workers != 4 {
		t.Errorf("import.workers = %d, want 4 (default)", cfg.Import.Workers)
	}
	if cfg.Sink.Kind != SinkPostgres {
		t.Errorf("sink.kind = %q, want postgres (default)", cfg.Sink.Kind)
	}
	if !cfg.Rewrite.Enabled() || cfg.Rewrite.Timeout != 2*time.Second {
		t.Errorf("rewrite = %+v, want rules with 2s timeout", cfg.Rewrite)
	}
	if cfg.Import.Phases != nil {
		t.Errorf("import.phases = %v, want nil", cfg.Import.Phases)
	}
}

func TestLoad_SQLiteWithoutDSN(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, "sink:\n  kind: sqlite\n  sqlite_path: \""+filepath.Join(dir, "out.db")+"\"\n")
	t.Setenv("DATABASE_DSN", "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Sink.Kind != SinkSQLite {
		t.Errorf("sink.kind = %q, want sqlite", cfg.Sink.Kind)
	}
}

func TestLoad_OptionsRunBeforeValidation(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, "import:\n  workers: 2\n")
	t.Setenv("DATABASE_DSN", "")

	if _, err := Load(path); err == nil {
		t.Fatal("expected error: postgres sink without DSN")
	}

	cfg, err := Load(path, func(c *Config) {
		c.Sink.Kind = SinkNone
		c.Import.PhasesRaw = "oxford"
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Import.Phases) != 1 || cfg.Import.Phases[0] != domain.SourceOxford {
		t.Errorf("import.phases = %v, want [OXFORD]", cfg.Import.Phases)
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Fatal("expected error for missing explicit config path")
	}

	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for missing CONFIG_PATH file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, `{{{invalid yaml`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "postgres without dsn", mutate: func(c *Config) { c.Database.DSN = " " }, wantErr: true},
		{name: "sqlite without dsn", mutate: func(c *Config) { c.Sink.Kind = SinkSQLite; c.Database.DSN = "" }},
		{name: "sqlite without path", mutate: func(c *Config) { c.Sink.Kind = SinkSQLite; c.Sink.SQLitePath = "" }, wantErr: true},
		{name: "none sink", mutate: func(c *Config) { c.Sink.Kind = SinkNone; c.Database.DSN = "" }},
		{name: "unknown sink", mutate: func(c *Config) { c.Sink.Kind = "kafka" }, wantErr: true},
		{name: "zero workers", mutate: func(c *Config) { c.Import.Workers = 0 }, wantErr: true},
		{name: "negative batch size", mutate: func(c *Config) { c.Import.BatchSize = -1 }, wantErr: true},
		{name: "unknown source key", mutate: func(c *Config) {
			c.Import.Sources = map[string]SourceInput{"MERRIAM": {Path: "/x"}}
		}, wantErr: true},
		{name: "source without path", mutate: func(c *Config) {
			c.Import.Sources = map[string]SourceInput{"OXFORD": {}}
		}, wantErr: true},
		{name: "bad format", mutate: func(c *Config) {
			c.Import.Sources = map[string]SourceInput{"OXFORD": {Path: "/x", Format: "xml"}}
		}, wantErr: true},
		{name: "unknown phase", mutate: func(c *Config) { c.Import.PhasesRaw = "collins,merriam" }, wantErr: true},
		{name: "bad rewrite mode", mutate: func(c *Config) { c.Rewrite.Mode = "llm" }, wantErr: true},
		{name: "zero rewrite timeout", mutate: func(c *Config) { c.Rewrite.Timeout = 0 }, wantErr: true},
		{name: "bad locale", mutate: func(c *Config) { c.Rewrite.Locale = "not a locale!" }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParsePhases(t *testing.T) {
	phases, err := ParsePhases(" oxford , ,ENG_CHN ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(phases) != 2 || phases[0] != domain.SourceOxford || phases[1] != domain.SourceEngChn {
		t.Errorf("phases = %v", phases)
	}

	if phases, err := ParsePhases(""); err != nil || phases != nil {
		t.Errorf("ParsePhases(\"\") = %v, %v; want nil, nil", phases, err)
	}

	if _, err := ParsePhases("webster"); !errors.Is(err, domain.ErrUnknownSource) {
		t.Errorf("ParsePhases(webster) error = %v, want ErrUnknownSource", err)
	}
}
