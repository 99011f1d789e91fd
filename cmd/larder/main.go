// Larder: a household inventory and shopping list manager.
//
// Tracks what is in the pantry, what needs buying, and when it expires.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/larder/larder/internal/config"
	"github.com/larder/larder/internal/database"
	"github.com/larder/larder/internal/database/seed"
	"github.com/larder/larder/internal/services/inventory"
	"github.com/larder/larder/internal/tui"
	"github.com/larder/larder/internal/util"
)

// Build information (set via ldflags)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to configuration file")
		migrateOnly = flag.Bool("migrate-only", false, "Run migrations and exit")
		seedData    = flag.Bool("seed", false, "Stock an empty larder with sample data and exit")
		showVersion = flag.Bool("version", false, "Show version and exit")
		debugMode   = flag.Bool("debug", false, "Enable debug logging")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("larder version %s (built %s)\n", Version, BuildTime)
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		// Force exit if shutdown hangs.
		time.AfterFunc(10*time.Second, func() {
			slog.Error("forced shutdown after timeout")
			os.Exit(1)
		})
	}()

	if err := run(ctx, *configPath, *migrateOnly, *seedData, *debugMode); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string, migrateOnly, seedData, debugMode bool) error {
	cfg, cfgPath, err := config.Load(configPath, true)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	closeLog, err := setupLogging(cfg, debugMode)
	if err != nil {
		return err
	}
	defer closeLog()

	slog.Info("larder starting",
		"version", Version,
		"build_time", BuildTime,
		"config_path", cfgPath,
	)

	dbPath, err := config.EnsureDataDir(cfg)
	if err != nil {
		return fmt.Errorf("ensuring data directory: %w", err)
	}

	backupDir, err := config.BackupDir(cfg)
	if err != nil {
		slog.Warn("failed to create backup directory", "error", err)
		backupDir = ""
	}

	if _, err := os.Stat(dbPath); err == nil {
		report, err := database.Recover(dbPath, backupDir)
		if err != nil {
			return fmt.Errorf("database recovery failed: %w", err)
		}
		if report.Result == database.RecoveryFromBackup {
			slog.Warn("database restored from backup", "backup", report.BackupUsed)
		} else {
			slog.Debug("database integrity verified")
		}
	}

	db, err := database.Open(dbPath, &cfg.Database, backupDir)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		slog.Info("closing database")
		if err := db.Close(); err != nil {
			slog.Error("error closing database", "error", err)
		}
	}()

	result, err := db.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	if len(result.Applied) > 0 {
		slog.Info("applied migrations",
			"count", len(result.Applied),
			"to_version", result.TargetVersion,
		)
	}

	if migrateOnly {
		slog.Info("migrations complete, exiting")
		return nil
	}

	clock := util.SystemClock{}

	if seedData {
		var count int
		if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM list_entries").Scan(&count); err == nil && count > 0 {
			slog.Warn("larder already has entries, skipping sample data", "count", count)
			return nil
		}

		svc := inventory.NewService(db.DB, clock)
		summary, err := seed.NewGenerator(svc, seed.DefaultConfig(clock.Now())).Generate(ctx)
		if err != nil {
			return fmt.Errorf("generating sample data: %w", err)
		}
		fmt.Printf("Stocked %d inventory and %d shopping entries (%d expired lots)\n",
			summary.Inventory, summary.Shopping, summary.Expired)
		return nil
	}

	tui.Version = Version
	tui.BuildTime = BuildTime

	slog.Info("starting TUI", "household", cfg.Household.Name)

	if err := tui.Run(ctx, db, cfg, clock); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	slog.Info("larder shutdown complete")
	return nil
}

// setupLogging installs the default slog logger. Logs go to the configured
// file as JSON, or to stderr as text when no file is set.
func setupLogging(cfg *config.Config, debugMode bool) (func(), error) {
	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	} else {
		switch cfg.Logging.Level {
		case config.LogLevelDebug:
			level = slog.LevelDebug
		case config.LogLevelWarn:
			level = slog.LevelWarn
		case config.LogLevelError:
			level = slog.LevelError
		}
	}
	opts := &slog.HandlerOptions{Level: level}

	logPath, err := config.EnsureLogDir(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	if logPath == "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, opts)))
		return func() {}, nil
	}

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(logFile, opts)))
	return func() { logFile.Close() }, nil
}
