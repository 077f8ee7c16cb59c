package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"dayssince/internal/log"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteBackend stores slots as rows of a local SQLite database. The value
// replaced by each write is kept in slot_history for recovery.
type SQLiteBackend struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens (creating if needed) the database at path and applies
// pending migrations.
func OpenSQLite(path string) (*SQLiteBackend, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, dataDirPerm); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	// WAL keeps readers (the reminder daemon) from blocking the TUI's writes.
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	db.SetMaxOpenConns(1)

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteBackend{db: db, path: path}, nil
}

// Path returns the database file path.
func (b *SQLiteBackend) Path() string {
	return b.path
}

func (b *SQLiteBackend) Read(slot Slot) ([]byte, error) {
	var data []byte
	err := b.db.QueryRow("SELECT value FROM slots WHERE name = ?", string(slot)).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading slot %s: %w", slot, err)
	}
	return data, nil
}

func (b *SQLiteBackend) Write(slot Slot, data []byte) error {
	return b.WriteSlots(map[Slot][]byte{slot: data})
}

// WriteSlots replaces every given slot in one transaction.
func (b *SQLiteBackend) WriteSlots(values map[Slot][]byte) error {
	return b.transaction(func(tx *sql.Tx) error {
		for slot, data := range values {
			if err := writeSlot(tx, slot, data); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeSlot(tx *sql.Tx, slot Slot, data []byte) error {
	if _, err := tx.Exec(`
		INSERT INTO slot_history (name, value, saved_at)
		SELECT name, value, CURRENT_TIMESTAMP FROM slots WHERE name = ?
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, saved_at = excluded.saved_at
	`, string(slot)); err != nil {
		return fmt.Errorf("saving history for slot %s: %w", slot, err)
	}

	if _, err := tx.Exec(`
		INSERT INTO slots (name, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, string(slot), data); err != nil {
		return fmt.Errorf("writing slot %s: %w", slot, err)
	}
	return nil
}

// Recover replaces an unreadable slot with its previous value when valid
// accepts it, and otherwise clears the slot.
func (b *SQLiteBackend) Recover(slot Slot, valid func([]byte) error) ([]byte, error) {
	var prev []byte
	err := b.db.QueryRow("SELECT value FROM slot_history WHERE name = ?", string(slot)).Scan(&prev)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("reading history for slot %s: %w", slot, err)
	}

	if err == nil && valid(prev) == nil {
		if _, err := b.db.Exec("UPDATE slots SET value = ?, updated_at = CURRENT_TIMESTAMP WHERE name = ?", prev, string(slot)); err != nil {
			return prev, fmt.Errorf("restoring slot %s: %w", slot, err)
		}
		log.Info("restored slot from history", "slot", slot)
		return prev, nil
	}

	if _, err := b.db.Exec("DELETE FROM slots WHERE name = ?", string(slot)); err != nil {
		return nil, fmt.Errorf("clearing slot %s: %w", slot, err)
	}
	log.Warn("cleared unreadable slot", "slot", slot)
	return nil, nil
}

func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}

// transaction runs fn in a transaction, rolling back when it fails.
func (b *SQLiteBackend) transaction(fn func(tx *sql.Tx) error) error {
	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rolling back transaction: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
