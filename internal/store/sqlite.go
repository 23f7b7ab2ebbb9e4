package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kilupskalvis/abook/internal/models"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS contacts (
		position INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		phone TEXT NOT NULL,
		email TEXT NOT NULL,
		address TEXT NOT NULL,
		tags JSON NOT NULL DEFAULT '[]'
	);
`

// sqliteBackend stores a collection as rows of a contacts table ordered by
// position.
type sqliteBackend struct{}

func openSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(1000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// notADatabase reports whether err is SQLite refusing a file that is not a
// database
func notADatabase(err error) bool {
	var serr *sqlite.Error
	return errors.As(err, &serr) && serr.Code()&0xff == sqlite3.SQLITE_NOTADB
}

func (sqliteBackend) read(ctx context.Context, path string) ([]models.Contact, error) {
	if err := exists(path); err != nil {
		return nil, err
	}

	db, err := openSQLite(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var table string
	err = db.QueryRowContext(ctx, `
		SELECT name FROM sqlite_master
		WHERE type='table' AND name='contacts'
	`).Scan(&table)
	if err == sql.ErrNoRows {
		return nil, &ConversionError{Path: path, Err: errors.New("contacts table not found")}
	}
	if notADatabase(err) {
		return nil, &ConversionError{Path: path, Err: err}
	}
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}

	rows, err := db.QueryContext(ctx, `
		SELECT name, phone, email, address, tags
		FROM contacts ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("query contacts: %w", err)
	}
	defer rows.Close()

	var recs []contactRecord
	for rows.Next() {
		var r contactRecord
		var tags string
		if err := rows.Scan(&r.Name, &r.Phone, &r.Email, &r.Address, &tags); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		if err := json.Unmarshal([]byte(tags), &r.Tags); err != nil {
			return nil, &ConversionError{Path: path, Err: fmt.Errorf("tags of %q: %w", r.Name, err)}
		}
		recs = append(recs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query contacts: %w", err)
	}
	return toContacts(path, recs)
}

func (sqliteBackend) write(ctx context.Context, path string, contacts []models.Contact) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	db, err := openSQLite(path)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM contacts"); err != nil {
		return fmt.Errorf("clear contacts: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO contacts (position, name, phone, email, address, tags)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, c := range contacts {
		tags, err := json.Marshal(c.Tags())
		if err != nil {
			return fmt.Errorf("marshal tags: %w", err)
		}
		if _, err := stmt.ExecContext(ctx, i, c.Name(), c.Phone(), c.Email(), c.Address(), string(tags)); err != nil {
			return fmt.Errorf("insert contact %q: %w", c.Name(), err)
		}
	}
	return tx.Commit()
}
