package store

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pbaille/glossary/internal/dictionary"
	"github.com/pbaille/glossary/internal/domain"
)

//go:embed schema.sql
var schema string

// builder renders statements with sqlite '?' placeholders
var builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// MemoryDSN keeps the database in process memory; it disappears on exit.
const MemoryDSN = ":memory:"

// Store holds session state: uploaded dictionary rows and generated
// glossaries. Input text is never written here.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// querier is satisfied by both *sql.DB and *sql.Tx
type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// New creates a new Store with the given database path
func New(dsn string) (*Store, error) {
	if dsn == "" {
		dsn = MemoryDSN
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// An in-memory database lives and dies with its connection.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database connection
func (s *Store) Ping() error {
	return s.db.Ping()
}

// CreateSession starts a new empty session
func (s *Store) CreateSession() (*domain.Session, error) {
	now := s.now().UTC()
	sess := &domain.Session{ID: uuid.New().String(), CreatedAt: now, TouchedAt: now}

	_, err := s.db.Exec(
		"INSERT INTO sessions (id, created_at, touched_at) VALUES (?, ?, ?)",
		sess.ID, sess.CreatedAt, sess.TouchedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	return sess, nil
}

// GetSession retrieves a session by ID
func (s *Store) GetSession(id string) (*domain.Session, error) {
	var sess domain.Session
	err := s.db.QueryRow(
		"SELECT id, created_at, touched_at FROM sessions WHERE id = ?", id,
	).Scan(&sess.ID, &sess.CreatedAt, &sess.TouchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &sess, nil
}

// TouchSession marks a session as used now
func (s *Store) TouchSession(id string) error {
	res, err := s.db.Exec("UPDATE sessions SET touched_at = ? WHERE id = ?", s.now().UTC(), id)
	if err != nil {
		return fmt.Errorf("touch session: %w", err)
	}
	return expectRow(res, "session "+id)
}

// DeleteSession drops a session and everything it holds
func (s *Store) DeleteSession(id string) error {
	res, err := s.db.Exec("DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return expectRow(res, "session "+id)
}

// PurgeIdleSessions deletes sessions not touched since before
func (s *Store) PurgeIdleSessions(before time.Time) (int64, error) {
	query, args, err := builder.Delete("sessions").
		Where(sq.Lt{"touched_at": before.UTC()}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build purge query: %w", err)
	}

	res, err := s.db.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	return res.RowsAffected()
}

// ReplaceDictionary stores an imported user dictionary for a session,
// replacing any earlier upload
func (s *Store) ReplaceDictionary(sessionID string, imp *dictionary.Import) error {
	return s.inTx(func(tx *sql.Tx) error {
		if err := requireSession(tx, sessionID); err != nil {
			return err
		}
		if err := clearDictionary(tx, sessionID); err != nil {
			return err
		}

		if _, err := tx.Exec(
			"INSERT INTO dictionary_imports (session_id, has_category) VALUES (?, ?)",
			sessionID, imp.HasCategory,
		); err != nil {
			return fmt.Errorf("insert dictionary import: %w", err)
		}

		stmt, err := tx.Prepare(
			"INSERT INTO dictionary_entries (session_id, position, abbreviation, meaning, category) VALUES (?, ?, ?, ?, ?)",
		)
		if err != nil {
			return fmt.Errorf("prepare dictionary insert: %w", err)
		}
		defer stmt.Close()

		for i, rec := range imp.Records {
			var abbr, meaning, category string
			switch r := rec.(type) {
			case dictionary.BasicRecord:
				abbr, meaning = r.Abbreviation, r.Meaning
			case dictionary.CategorizedRecord:
				abbr, meaning, category = r.Abbreviation, r.Meaning, r.Category
			default:
				continue
			}
			if _, err := stmt.Exec(sessionID, i, abbr, meaning, category); err != nil {
				return fmt.Errorf("insert dictionary entry: %w", err)
			}
		}
		return nil
	})
}

// ClearDictionary forgets a session's uploaded dictionary
func (s *Store) ClearDictionary(sessionID string) error {
	return s.inTx(func(tx *sql.Tx) error {
		if err := requireSession(tx, sessionID); err != nil {
			return err
		}
		return clearDictionary(tx, sessionID)
	})
}

// Dictionary returns a session's uploaded rows in upload order, or nil
// when nothing was uploaded
func (s *Store) Dictionary(sessionID string) ([]dictionary.Record, error) {
	if err := requireSession(s.db, sessionID); err != nil {
		return nil, err
	}

	var hasCategory bool
	err := s.db.QueryRow(
		"SELECT has_category FROM dictionary_imports WHERE session_id = ?", sessionID,
	).Scan(&hasCategory)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get dictionary import: %w", err)
	}

	query, args, err := builder.
		Select("abbreviation", "meaning", "category").
		From("dictionary_entries").
		Where(sq.Eq{"session_id": sessionID}).
		OrderBy("position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build dictionary query: %w", err)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list dictionary entries: %w", err)
	}
	defer rows.Close()

	records := []dictionary.Record{}
	for rows.Next() {
		var abbr, meaning, category string
		if err := rows.Scan(&abbr, &meaning, &category); err != nil {
			return nil, fmt.Errorf("scan dictionary entry: %w", err)
		}
		if hasCategory {
			records = append(records, dictionary.CategorizedRecord{Abbreviation: abbr, Meaning: meaning, Category: category})
		} else {
			records = append(records, dictionary.BasicRecord{Abbreviation: abbr, Meaning: meaning})
		}
	}
	return records, rows.Err()
}

// ReplaceGlossary stores a freshly generated glossary for a session
func (s *Store) ReplaceGlossary(sessionID string, entries []domain.GlossaryEntry) error {
	return s.inTx(func(tx *sql.Tx) error {
		if err := requireSession(tx, sessionID); err != nil {
			return err
		}
		if _, err := tx.Exec("DELETE FROM glossary_entries WHERE session_id = ?", sessionID); err != nil {
			return fmt.Errorf("clear glossary: %w", err)
		}

		stmt, err := tx.Prepare(
			"INSERT INTO glossary_entries (session_id, position, abbreviation, meaning, category, count) VALUES (?, ?, ?, ?, ?, ?)",
		)
		if err != nil {
			return fmt.Errorf("prepare glossary insert: %w", err)
		}
		defer stmt.Close()

		for i, e := range entries {
			if _, err := stmt.Exec(sessionID, i, e.Abbreviation, e.Meaning, e.Category, e.Count); err != nil {
				return fmt.Errorf("insert glossary entry %s: %w", e.Abbreviation, err)
			}
		}
		return nil
	})
}

// Glossary returns a session's glossary in order
func (s *Store) Glossary(sessionID string) ([]domain.GlossaryEntry, error) {
	if err := requireSession(s.db, sessionID); err != nil {
		return nil, err
	}

	query, args, err := glossarySelect().
		Where(sq.Eq{"session_id": sessionID}).
		OrderBy("position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build glossary query: %w", err)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list glossary: %w", err)
	}
	defer rows.Close()

	entries := []domain.GlossaryEntry{}
	for rows.Next() {
		var e domain.GlossaryEntry
		if err := rows.Scan(&e.Abbreviation, &e.Meaning, &e.Category, &e.Count); err != nil {
			return nil, fmt.Errorf("scan glossary entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// AddGlossaryEntry appends a user-written row to a session's glossary
func (s *Store) AddGlossaryEntry(sessionID string, e domain.GlossaryEntry) error {
	return s.inTx(func(tx *sql.Tx) error {
		if err := requireSession(tx, sessionID); err != nil {
			return err
		}

		var exists int
		err := tx.QueryRow(
			"SELECT COUNT(*) FROM glossary_entries WHERE session_id = ? AND abbreviation = ?",
			sessionID, e.Abbreviation,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("find glossary entry: %w", err)
		}
		if exists > 0 {
			return fmt.Errorf("glossary entry %s: %w", e.Abbreviation, domain.ErrAlreadyExists)
		}

		_, err = tx.Exec(`
			INSERT INTO glossary_entries (session_id, position, abbreviation, meaning, category, count)
			SELECT ?, COALESCE(MAX(position), -1) + 1, ?, ?, ?, ?
			FROM glossary_entries WHERE session_id = ?
		`, sessionID, e.Abbreviation, e.Meaning, e.Category, e.Count, sessionID)
		if err != nil {
			return fmt.Errorf("insert glossary entry: %w", err)
		}
		return nil
	})
}

// GlossaryEdit holds the fields of an edit; nil leaves a field unchanged.
type GlossaryEdit struct {
	Meaning  *string
	Category *string
}

// UpdateGlossaryEntry edits the meaning or category of one row
func (s *Store) UpdateGlossaryEntry(sessionID, abbr string, edit GlossaryEdit) (*domain.GlossaryEntry, error) {
	var out domain.GlossaryEntry
	err := s.inTx(func(tx *sql.Tx) error {
		if err := requireSession(tx, sessionID); err != nil {
			return err
		}

		key := sq.Eq{"session_id": sessionID, "abbreviation": abbr}

		update := builder.Update("glossary_entries").Where(key)
		if edit.Meaning != nil {
			update = update.Set("meaning", *edit.Meaning)
		}
		if edit.Category != nil {
			update = update.Set("category", *edit.Category)
		}
		if edit.Meaning != nil || edit.Category != nil {
			query, args, err := update.ToSql()
			if err != nil {
				return fmt.Errorf("build glossary update: %w", err)
			}
			if _, err := tx.Exec(query, args...); err != nil {
				return fmt.Errorf("update glossary entry: %w", err)
			}
		}

		query, args, err := glossarySelect().Where(key).ToSql()
		if err != nil {
			return fmt.Errorf("build glossary query: %w", err)
		}
		err = tx.QueryRow(query, args...).Scan(&out.Abbreviation, &out.Meaning, &out.Category, &out.Count)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("glossary entry %s: %w", abbr, domain.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("get glossary entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteGlossaryEntry removes one row from a session's glossary
func (s *Store) DeleteGlossaryEntry(sessionID, abbr string) error {
	return s.inTx(func(tx *sql.Tx) error {
		if err := requireSession(tx, sessionID); err != nil {
			return err
		}
		query, args, err := builder.Delete("glossary_entries").
			Where(sq.Eq{"session_id": sessionID, "abbreviation": abbr}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build glossary delete: %w", err)
		}
		res, err := tx.Exec(query, args...)
		if err != nil {
			return fmt.Errorf("delete glossary entry: %w", err)
		}
		return expectRow(res, "glossary entry "+abbr)
	})
}

func glossarySelect() sq.SelectBuilder {
	return builder.
		Select("abbreviation", "meaning", "category", "count").
		From("glossary_entries")
}

func (s *Store) inTx(fn func(tx *sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func requireSession(q querier, id string) error {
	var n int
	if err := q.QueryRow("SELECT COUNT(*) FROM sessions WHERE id = ?", id).Scan(&n); err != nil {
		return fmt.Errorf("find session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func clearDictionary(q querier, sessionID string) error {
	if _, err := q.Exec("DELETE FROM dictionary_entries WHERE session_id = ?", sessionID); err != nil {
		return fmt.Errorf("clear dictionary entries: %w", err)
	}
	if _, err := q.Exec("DELETE FROM dictionary_imports WHERE session_id = ?", sessionID); err != nil {
		return fmt.Errorf("clear dictionary import: %w", err)
	}
	return nil
}

func expectRow(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
	}
	return nil
}
