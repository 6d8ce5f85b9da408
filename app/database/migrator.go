package database

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"embed"
	"encoding/hex"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"regexp"
	"sort"
	"strconv"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Migration scripts are named "<id>-<description>.sql" and applied in
// ascending id order.
var migrationNamePattern = regexp.MustCompile(`^(\d+)-(.+)\.sql$`)

type Migration struct {
	ID       int
	Filename string
	Script   string
}

// DriftError reports that the content of an already-applied migration script
// no longer matches the checksum recorded when it was applied. It is never
// auto-resolved; the run aborts.
type DriftError struct {
	Filename string
	Stored   string
	Actual   string
}

func (e *DriftError) Error() string {
	return fmt.Sprintf("migration drift detected in %s: recorded checksum %s, current checksum %s",
		e.Filename, e.Stored, e.Actual)
}

// Migrator applies schema migration scripts exactly once each, keeping a
// checksummed ledger in the _migrations table.
type Migrator struct {
	db  *DB
	fs  fs.FS
	dir string
}

// NewMigrator creates a migrator over the embedded migration scripts.
func NewMigrator(db *DB) *Migrator {
	return &Migrator{db: db, fs: migrationFS, dir: "migrations"}
}

// Run applies every pending migration in ascending id order. Already-applied
// scripts are checksum-verified against the ledger; a mismatch is a fatal
// DriftError. Each pending script executes in one transaction together with
// its ledger insert, so a failed script leaves no partial application.
// Running with no pending scripts is a no-op.
func (m *Migrator) Run(ctx context.Context) error {
	migrations, err := m.discover()
	if err != nil {
		return err
	}

	if _, err := m.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS _migrations (
			id INTEGER PRIMARY KEY,
			checksum TEXT NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("failed to ensure migration ledger: %w", err)
	}

	applied, err := m.loadLedger(ctx)
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		sum := checksum(migration.Script)

		if stored, ok := applied[migration.ID]; ok {
			if stored != sum {
				return &DriftError{Filename: migration.Filename, Stored: stored, Actual: sum}
			}
			continue
		}

		if err := m.apply(ctx, migration, sum); err != nil {
			return err
		}
		slog.Info("Applied migration", "file", migration.Filename)
	}

	return nil
}

// discover reads the migration directory and returns its scripts sorted by
// ascending id. Filenames that do not match the expected pattern, and ids
// claimed by more than one file, are errors rather than silent skips.
func (m *Migrator) discover() ([]Migration, error) {
	entries, err := fs.ReadDir(m.fs, m.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	migrations := make([]Migration, 0, len(entries))
	seen := make(map[int]string, len(entries))

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()

		match := migrationNamePattern.FindStringSubmatch(name)
		if match == nil {
			return nil, fmt.Errorf("unrecognized migration filename %q (expected <id>-<description>.sql)", name)
		}

		id, err := strconv.Atoi(match[1])
		if err != nil {
			return nil, fmt.Errorf("invalid migration id in %q: %w", name, err)
		}
		if other, ok := seen[id]; ok {
			return nil, fmt.Errorf("duplicate migration id %d: %s and %s", id, other, name)
		}
		seen[id] = name

		data, err := fs.ReadFile(m.fs, path.Join(m.dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %w", name, err)
		}

		migrations = append(migrations, Migration{ID: id, Filename: name, Script: string(data)})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].ID < migrations[j].ID
	})

	return migrations, nil
}

// loadLedger reads every applied (id, checksum) pair in one query.
func (m *Migrator) loadLedger(ctx context.Context) (map[int]string, error) {
	rows, err := m.db.QueryContext(ctx, "SELECT id, checksum FROM _migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to load migration ledger: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]string)
	for rows.Next() {
		var id int
		var sum string
		if err := rows.Scan(&id, &sum); err != nil {
			return nil, fmt.Errorf("failed to scan ledger row: %w", err)
		}
		applied[id] = sum
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger rows: %w", err)
	}

	return applied, nil
}

// apply executes a single migration script and records it in the ledger,
// both inside one transaction.
func (m *Migrator) apply(ctx context.Context, migration Migration, sum string) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for %s: %w", migration.Filename, err)
	}
	defer rollbackUnlessCommitted(tx)

	if _, err := tx.ExecContext(ctx, migration.Script); err != nil {
		return fmt.Errorf("failed to apply migration %s: %w", migration.Filename, err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO _migrations (id, checksum) VALUES (?, ?)",
		migration.ID, sum); err != nil {
		return fmt.Errorf("failed to record migration %s: %w", migration.Filename, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %s: %w", migration.Filename, err)
	}
	return nil
}

func rollbackUnlessCommitted(tx *sql.Tx) {
	_ = tx.Rollback()
}

func checksum(script string) string {
	sum := sha256.Sum256([]byte(script))
	return hex.EncodeToString(sum[:])
}
