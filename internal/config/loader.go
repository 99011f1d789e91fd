package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	// DefaultConfigFileName is the file looked for in each search location.
	DefaultConfigFileName = "larder.toml"

	// XDGConfigSubdir is the directory under both XDG_CONFIG_HOME and
	// XDG_DATA_HOME that holds the larder's files.
	XDGConfigSubdir = "larder"

	dirMode  = 0o750
	fileMode = 0o640
)

const defaultHeader = `# Larder configuration
#
# Written with default values on first start. Edit as needed.

`

// LoadError reports which file a configuration failure came from.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading config from %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load reads the configuration. An explicit path is the only place looked
// at when given. Otherwise the XDG config file wins over ./larder.toml, and
// when neither exists the defaults are returned, written to the first
// writable candidate if createDefault is set.
//
// The returned path is empty when the defaults could not be written.
func Load(explicitPath string, createDefault bool) (*Config, string, error) {
	candidates := searchPaths(explicitPath)

	for _, path := range candidates {
		if explicitPath == "" && !fileExists(path) {
			continue
		}
		cfg, err := loadFromFile(path)
		if err != nil {
			return nil, "", &LoadError{Path: path, Err: err}
		}
		return cfg, path, nil
	}

	if !createDefault {
		return nil, "", errors.New("no configuration file found in " + strings.Join(candidates, ", "))
	}

	cfg := Default()
	for _, path := range candidates {
		if err := Save(cfg, path); err == nil {
			return cfg, path, nil
		}
	}
	return cfg, "", nil
}

// searchPaths lists the config files Load considers, most preferred first.
func searchPaths(explicitPath string) []string {
	if explicitPath != "" {
		return []string{explicitPath}
	}
	var paths []string
	if p := xdgConfigPath(); p != "" {
		paths = append(paths, p)
	}
	return append(paths, filepath.Join(".", DefaultConfigFileName))
}

// loadFromFile decodes path over the defaults, so keys the file leaves out
// keep their default values.
func loadFromFile(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Save writes cfg to path as TOML, creating the directory if needed.
func Save(cfg *Config, path string) error {
	if err := mkdirFor(path); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fileMode)
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(defaultHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("encoding TOML: %w", err)
	}
	return nil
}

func xdgConfigPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, XDGConfigSubdir, DefaultConfigFileName)
}

func xdgDataHome() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share")
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// mkdirFor creates the parent directory of path.
func mkdirFor(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, dirMode)
}

// dataPath resolves a configured path. Absolute paths are kept; relative
// ones live in the larder's XDG data directory, or the working directory
// when there is no home.
func dataPath(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	if base := xdgDataHome(); base != "" {
		return filepath.Join(base, XDGConfigSubdir, p)
	}
	return p
}

// EnsureDataDir returns the database file path and creates its directory.
// A relative path falls back to the working directory if the data directory
// cannot be created.
func EnsureDataDir(cfg *Config) (string, error) {
	path := dataPath(cfg.Database.Path)
	if err := mkdirFor(path); err != nil {
		if filepath.IsAbs(cfg.Database.Path) {
			return "", fmt.Errorf("creating database directory: %w", err)
		}
		return cfg.Database.Path, nil
	}
	return path, nil
}

// EnsureLogDir returns the log file path and creates its directory. An empty
// path means file logging is off.
func EnsureLogDir(cfg *Config) (string, error) {
	if cfg.Logging.File == "" {
		return "", nil
	}
	path := dataPath(cfg.Logging.File)
	if err := mkdirFor(path); err != nil {
		return "", fmt.Errorf("creating log directory: %w", err)
	}
	return path, nil
}

// BackupDir returns the backups directory beside the database, creating it.
func BackupDir(cfg *Config) (string, error) {
	dir := filepath.Join(filepath.Dir(dataPath(cfg.Database.Path)), "backups")
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return "", fmt.Errorf("creating backup directory: %w", err)
	}
	return dir, nil
}
