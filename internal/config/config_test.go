package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/larder/larder/internal/models"
)

func TestDefault_IsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"missing household name", func(c *Config) { c.Household.Name = "" }, "household: name is required"},
		{"unknown default list", func(c *Config) { c.Lists.DefaultList = "fridge" }, "default_list"},
		{"negative expiring days", func(c *Config) { c.Lists.ExpiringSoonDays = -1 }, "expiring_soon_days"},
		{"no draft slots", func(c *Config) { c.Lists.DraftSlots = 0 }, "draft_slots"},
		{"bad cache ttl", func(c *Config) { c.Lists.CacheTTL = "soon" }, "cache_ttl"},
		{"bad color scheme", func(c *Config) { c.Display.ColorScheme = "neon" }, "color_scheme"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "log level"},
		{"missing db path", func(c *Config) { c.Database.Path = "" }, "path is required"},
		{"negative retention", func(c *Config) { c.Database.BackupRetentionDays = -1 }, "backup_retention_days"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}

	t.Run("errors are joined", func(t *testing.T) {
		cfg := Default()
		cfg.Household.Name = ""
		cfg.Database.Path = ""
		err := cfg.Validate()
		if err == nil || !strings.Contains(err.Error(), "household") || !strings.Contains(err.Error(), "database") {
			t.Errorf("expected both sections in error, got %v", err)
		}
	})
}

func TestListsConfig_Helpers(t *testing.T) {
	l := ListsConfig{DefaultList: "shopping", CacheTTL: "45s"}
	if l.DefaultListType() != models.ListShopping {
		t.Errorf("DefaultListType() = %s", l.DefaultListType())
	}
	if l.CacheTTLDuration() != 45*time.Second {
		t.Errorf("CacheTTLDuration() = %s", l.CacheTTLDuration())
	}

	l = ListsConfig{}
	if l.DefaultListType() != models.ListInventory {
		t.Errorf("empty default list should fall back to inventory, got %s", l.DefaultListType())
	}
	if l.CacheTTLDuration() != 0 {
		t.Errorf("empty ttl should be 0, got %s", l.CacheTTLDuration())
	}
}

func TestLoad_ExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")

	content := `
[household]
name = "Flat 3"

[lists]
default_list = "shopping"
expiring_soon_days = 5
`
	if err := os.WriteFile(path, []byte(content), 0640); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, used, err := Load(path, false)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if used != path {
		t.Errorf("loaded from %s, want %s", used, path)
	}
	if cfg.Household.Name != "Flat 3" {
		t.Errorf("household name = %q", cfg.Household.Name)
	}
	if cfg.Lists.ExpiringSoonDays != 5 {
		t.Errorf("expiring_soon_days = %d", cfg.Lists.ExpiringSoonDays)
	}
	if cfg.Lists.DraftSlots != 1 {
		t.Errorf("missing values should keep defaults, draft_slots = %d", cfg.Lists.DraftSlots)
	}
}

func TestLoad_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(path, []byte("[lists]\ndraft_slots = 0\n"), 0640); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	_, _, err := Load(path, false)
	if err == nil {
		t.Fatal("expected error for invalid config")
	}
	var loadErr *LoadError
	if !errors.As(err, &loadErr) || loadErr.Path != path {
		t.Errorf("expected LoadError for %s, got %v", path, err)
	}
}

func TestLoad_CreatesDefault(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Chdir(t.TempDir())

	cfg, used, err := Load("", true)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	want := filepath.Join(dir, XDGConfigSubdir, DefaultConfigFileName)
	if used != want {
		t.Errorf("default written to %s, want %s", used, want)
	}
	if cfg.Household.Name != Default().Household.Name {
		t.Errorf("unexpected household %q", cfg.Household.Name)
	}

	again, _, err := Load("", false)
	if err != nil {
		t.Fatalf("reloading written default: %v", err)
	}
	if again.Lists.CacheTTL != cfg.Lists.CacheTTL {
		t.Errorf("round trip changed cache_ttl: %q", again.Lists.CacheTTL)
	}
}

func TestEnsureLogDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)

	cfg := Default()
	path, err := EnsureLogDir(cfg)
	if err != nil {
		t.Fatalf("EnsureLogDir() error: %v", err)
	}
	if path != filepath.Join(dir, XDGConfigSubdir, "logs", "larder.log") {
		t.Errorf("unexpected log path %s", path)
	}
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Errorf("log directory not created: %v", err)
	}

	cfg.Logging.File = ""
	if path, _ := EnsureLogDir(cfg); path != "" {
		t.Errorf("empty file should disable logging, got %s", path)
	}
}

func TestEnsureDataDir_AndBackupDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)

	cfg := Default()
	dbPath, err := EnsureDataDir(cfg)
	if err != nil {
		t.Fatalf("EnsureDataDir() error: %v", err)
	}
	if filepath.Dir(dbPath) != filepath.Join(dir, XDGConfigSubdir) {
		t.Errorf("relative database path resolved to %s", dbPath)
	}

	backups, err := BackupDir(cfg)
	if err != nil {
		t.Fatalf("BackupDir() error: %v", err)
	}
	if backups != filepath.Join(dir, XDGConfigSubdir, "backups") {
		t.Errorf("unexpected backup dir %s", backups)
	}

	abs := filepath.Join(t.TempDir(), "pantry", "larder.db")
	cfg.Database.Path = abs
	if got, err := EnsureDataDir(cfg); err != nil || got != abs {
		t.Errorf("EnsureDataDir() = %s, %v; want %s", got, err, abs)
	}
	if _, err := os.Stat(filepath.Dir(abs)); err != nil {
		t.Errorf("database directory not created: %v", err)
	}
	if got, _ := BackupDir(cfg); got != filepath.Join(filepath.Dir(abs), "backups") {
		t.Errorf("backups should sit beside an absolute database, got %s", got)
	}
}
