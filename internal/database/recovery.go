package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// RecoveryResult is the outcome of Recover.
type RecoveryResult int

const (
	// RecoveryHealthy means the file was fine or was repaired in place.
	RecoveryHealthy RecoveryResult = iota
	// RecoveryFromBackup means the file was replaced by a backup.
	RecoveryFromBackup
	// RecoveryFailed means nothing worked.
	RecoveryFailed
)

func (r RecoveryResult) String() string {
	switch r {
	case RecoveryHealthy:
		return "healthy"
	case RecoveryFromBackup:
		return "restored_from_backup"
	case RecoveryFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// RecoveryStep records one attempted repair.
type RecoveryStep struct {
	Name      string
	Succeeded bool
	Message   string
}

// RecoveryReport describes what Recover did.
type RecoveryReport struct {
	Result     RecoveryResult
	BackupUsed string
	Steps      []RecoveryStep
}

func (r *RecoveryReport) step(name string, fn func() (string, error)) bool {
	msg, err := fn()
	s := RecoveryStep{Name: name, Succeeded: err == nil, Message: msg}
	if err != nil {
		s.Message = err.Error()
	}
	r.Steps = append(r.Steps, s)
	return s.Succeeded
}

// Recover checks the database at dbPath before it is opened. A damaged
// file first gets a WAL checkpoint and, failing that, is replaced by the
// newest backup that passes an integrity check. The damaged file is kept
// beside the original with a .corrupted suffix.
func Recover(dbPath, backupDir string) (*RecoveryReport, error) {
	report := &RecoveryReport{}

	if _, err := os.Stat(dbPath); errors.Is(err, os.ErrNotExist) {
		report.Steps = append(report.Steps, RecoveryStep{Name: "exists", Succeeded: true, Message: "first run"})
		return report, nil
	}

	if report.step("integrity", func() (string, error) { return checkFile(dbPath) }) {
		return report, nil
	}
	slog.Warn("database failed integrity check", "path", dbPath)

	if _, err := os.Stat(dbPath + "-wal"); err == nil {
		if report.step("wal_checkpoint", func() (string, error) { return checkpointFile(dbPath) }) &&
			report.step("integrity_after_wal", func() (string, error) { return checkFile(dbPath) }) {
			slog.Info("database repaired by WAL checkpoint", "path", dbPath)
			return report, nil
		}
	}

	if backupDir != "" {
		var used string
		ok := report.step("restore_backup", func() (string, error) {
			var err error
			used, err = restoreNewestBackup(dbPath, backupDir)
			return used, err
		})
		if ok {
			report.Result = RecoveryFromBackup
			report.BackupUsed = used
			slog.Info("database restored from backup", "path", dbPath, "backup", used)
			return report, nil
		}
	}

	report.Result = RecoveryFailed
	slog.Error("database recovery failed", "path", dbPath, "steps", len(report.Steps))
	return report, errors.New("database is damaged and no usable backup was found")
}

// checkFile runs an integrity check on a read-only connection.
func checkFile(path string) (string, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=ro", path))
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	rows, err := db.QueryContext(ctx, "PRAGMA integrity_check")
	if err != nil {
		return "", fmt.Errorf("running integrity check: %w", err)
	}
	defer rows.Close()

	var results []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return "", fmt.Errorf("scanning result: %w", err)
		}
		results = append(results, s)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("iterating results: %w", err)
	}

	if len(results) == 1 && results[0] == "ok" {
		return "ok", nil
	}
	return "", fmt.Errorf("integrity check failed: %s", strings.Join(results, "; "))
}

func checkpointFile(path string) (string, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?_txlock=immediate", path))
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if _, err := db.ExecContext(ctx, "PRAGMA wal_checkpoint(RESTART)"); err != nil {
		return "", fmt.Errorf("WAL checkpoint: %w", err)
	}
	return "checkpoint complete", nil
}

// restoreNewestBackup copies the newest healthy backup over dbPath and
// returns the backup it used.
func restoreNewestBackup(dbPath, backupDir string) (string, error) {
	entries, err := os.ReadDir(backupDir)
	if err != nil {
		return "", fmt.Errorf("reading backup directory: %w", err)
	}

	type candidate struct {
		path    string
		modTime time.Time
	}
	var candidates []candidate
	for _, entry := range entries {
		if entry.IsDir() || !isBackupName(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		candidates = append(candidates, candidate{filepath.Join(backupDir, entry.Name()), info.ModTime()})
	}
	if len(candidates) == 0 {
		return "", errors.New("no backups found")
	}

	slices.SortFunc(candidates, func(a, b candidate) int { return b.modTime.Compare(a.modTime) })

	for _, c := range candidates {
		if _, err := checkFile(c.path); err != nil {
			slog.Debug("skipping damaged backup", "path", c.path, "error", err)
			continue
		}

		kept := dbPath + ".corrupted." + time.Now().Format("20060102-150405")
		if err := os.Rename(dbPath, kept); err != nil {
			slog.Warn("could not keep damaged database", "path", dbPath, "error", err)
		}
		os.Remove(dbPath + "-wal")
		os.Remove(dbPath + "-shm")

		if err := copyFile(c.path, dbPath); err != nil {
			return "", fmt.Errorf("copying backup: %w", err)
		}
		return c.path, nil
	}

	return "", errors.New("no healthy backup found")
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating destination: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copying data: %w", err)
	}
	return out.Sync()
}
