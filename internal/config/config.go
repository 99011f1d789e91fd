// Package config provides configuration management for Larder.
// Configurations are loaded from TOML files with XDG-compliant paths.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/larder/larder/internal/models"
)

// Config holds the complete application configuration.
type Config struct {
	Household HouseholdConfig `toml:"household"`
	Lists     ListsConfig     `toml:"lists"`
	Display   DisplayConfig   `toml:"display"`
	Logging   LoggingConfig   `toml:"logging"`
	Database  DatabaseConfig  `toml:"database"`
}

// HouseholdConfig names whose larder this is.
type HouseholdConfig struct {
	Name  string `toml:"name"`
	Owner string `toml:"owner"`
}

// ListsConfig controls list behaviour.
type ListsConfig struct {
	DefaultList      string `toml:"default_list"`
	ExpiringSoonDays int    `toml:"expiring_soon_days"`
	DraftSlots       int    `toml:"draft_slots"`
	CacheTTL         string `toml:"cache_ttl"`
}

// DisplayConfig controls TUI appearance.
type DisplayConfig struct {
	ColorScheme ColorScheme `toml:"color_scheme"`
	DateFormat  string      `toml:"date_format"`
	RelativeExp bool        `toml:"relative_expiry"`
}

// ColorScheme defines the terminal color palette.
type ColorScheme string

const (
	ColorSchemeGarden ColorScheme = "garden"
	ColorSchemeAmber  ColorScheme = "amber"
	ColorSchemeMono   ColorScheme = "mono"
)

// LoggingConfig controls application logging.
type LoggingConfig struct {
	Level LogLevel `toml:"level"`
	File  string   `toml:"file"`
}

// LogLevel defines logging verbosity.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// DatabaseConfig controls SQLite database settings.
type DatabaseConfig struct {
	Path                string `toml:"path"`
	BackupIntervalHours int    `toml:"backup_interval_hours"`
	BackupRetentionDays int    `toml:"backup_retention_days"`
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Household.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("household: %w", err))
	}

	if err := c.Lists.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("lists: %w", err))
	}

	if err := c.Display.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("display: %w", err))
	}

	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("database: %w", err))
	}

	return errors.Join(errs...)
}

// Validate checks that the household configuration is valid.
func (h *HouseholdConfig) Validate() error {
	if h.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

// Validate checks that the lists configuration is valid.
func (l *ListsConfig) Validate() error {
	var errs []error

	if l.DefaultList != "" {
		if _, err := models.ParseListType(l.DefaultList); err != nil {
			errs = append(errs, fmt.Errorf("default_list: %w", err))
		}
	}

	if l.ExpiringSoonDays < 0 {
		errs = append(errs, errors.New("expiring_soon_days must be non-negative"))
	}

	if l.DraftSlots < 1 {
		errs = append(errs, errors.New("draft_slots must be at least 1"))
	}

	if l.CacheTTL != "" {
		if _, err := time.ParseDuration(l.CacheTTL); err != nil {
			errs = append(errs, fmt.Errorf("invalid cache_ttl: %w", err))
		}
	}

	return errors.Join(errs...)
}

// Validate checks that the display configuration is valid.
func (d *DisplayConfig) Validate() error {
	validSchemes := map[ColorScheme]bool{
		ColorSchemeGarden: true,
		ColorSchemeAmber:  true,
		ColorSchemeMono:   true,
	}

	if !validSchemes[d.ColorScheme] && d.ColorScheme != "" {
		return fmt.Errorf("invalid color_scheme: %s", d.ColorScheme)
	}
	return nil
}

// Validate checks that the logging configuration is valid.
func (l *LoggingConfig) Validate() error {
	validLevels := map[LogLevel]bool{
		LogLevelDebug: true,
		LogLevelInfo:  true,
		LogLevelWarn:  true,
		LogLevelError: true,
	}

	if !validLevels[l.Level] && l.Level != "" {
		return fmt.Errorf("invalid log level: %s", l.Level)
	}
	return nil
}

// Validate checks that the database configuration is valid.
func (d *DatabaseConfig) Validate() error {
	var errs []error

	if d.Path == "" {
		errs = append(errs, errors.New("path is required"))
	}

	if d.BackupIntervalHours < 0 {
		errs = append(errs, errors.New("backup_interval_hours must be non-negative"))
	}

	if d.BackupRetentionDays < 0 {
		errs = append(errs, errors.New("backup_retention_days must be non-negative"))
	}

	return errors.Join(errs...)
}

// Default returns a configuration with sensible default values.
func Default() *Config {
	return &Config{
		Household: HouseholdConfig{
			Name:  "Home",
			Owner: "",
		},
		Lists: ListsConfig{
			DefaultList:      string(models.ListInventory),
			ExpiringSoonDays: 3,
			DraftSlots:       1,
			CacheTTL:         "30s",
		},
		Display: DisplayConfig{
			ColorScheme: ColorSchemeGarden,
			DateFormat:  "2006-01-02",
			RelativeExp: true,
		},
		Logging: LoggingConfig{
			Level: LogLevelInfo,
			File:  "logs/larder.log",
		},
		Database: DatabaseConfig{
			Path:                "larder.db",
			BackupIntervalHours: 24,
			BackupRetentionDays: 14,
		},
	}
}

// DefaultListType returns the list shown at startup.
func (l *ListsConfig) DefaultListType() models.ListType {
	lt, err := models.ParseListType(l.DefaultList)
	if err != nil {
		return models.ListInventory
	}
	return lt
}

// CacheTTLDuration returns the list cache TTL. An empty value disables expiry.
func (l *ListsConfig) CacheTTLDuration() time.Duration {
	d, err := time.ParseDuration(l.CacheTTL)
	if err != nil {
		return 0
	}
	return d
}
