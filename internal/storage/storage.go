package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"todolist/internal/logging"
	"todolist/internal/todo"
)

var _ todo.Store = (*Store)(nil)

// Store keeps items in a private in-memory SQLite database.
// Nothing is written to disk; the data is gone once Close is called.
type Store struct {
	db   *sql.DB
	name string
	log  *slog.Logger
}

func Open(log *slog.Logger) (*Store, error) {
	if log == nil {
		log = logging.NewNop()
	}
	name := "todo-" + uuid.NewString()
	db, err := sql.Open("sqlite", memoryDSN(name))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Each connection to a mode=memory database sees its own copy,
	// so the pool must hold exactly one.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &Store{db: db, name: name, log: log}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	log.Debug("sqlite store opened", "db", name)
	return s, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS items (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	text TEXT NOT NULL,
	created_at TEXT NOT NULL
);`
	_, err := s.db.Exec(ddl)
	return err
}

func (s *Store) Add(text string) error {
	if err := todo.ValidateNew(text); err != nil {
		return err
	}
	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := s.db.Exec(`INSERT INTO items (text, created_at) VALUES (?, ?);`, text, now); err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

func (s *Store) RemoveAt(index int) error {
	return s.withRow(index, func(tx *sql.Tx, id int64) error {
		_, err := tx.Exec(`DELETE FROM items WHERE id = ?;`, id)
		return err
	})
}

func (s *Store) EditAt(index int, text string) error {
	if err := todo.ValidateEdit(text); err != nil {
		return err
	}
	return s.withRow(index, func(tx *sql.Tx, id int64) error {
		_, err := tx.Exec(`UPDATE items SET text = ? WHERE id = ?;`, text, id)
		return err
	})
}

// withRow resolves a zero-based position to its row id and runs fn in the same transaction.
func (s *Store) withRow(index int, fn func(tx *sql.Tx, id int64) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var n int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM items;`).Scan(&n); err != nil {
		return fmt.Errorf("count items: %w", err)
	}
	if err := todo.CheckIndex(index, n); err != nil {
		return err
	}
	var id int64
	if err := tx.QueryRow(`SELECT id FROM items ORDER BY id LIMIT 1 OFFSET ?;`, index).Scan(&id); err != nil {
		return fmt.Errorf("locate item %d: %w", index, err)
	}
	if err := fn(tx, id); err != nil {
		return fmt.Errorf("update item %d: %w", index, err)
	}
	return tx.Commit()
}

func (s *Store) Len() int {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM items;`).Scan(&n); err != nil {
		s.log.Error("count items", "error", err)
		return 0
	}
	return n
}

func (s *Store) Get(index int) (string, error) {
	if index < 0 {
		return "", &todo.IndexError{Index: index, Len: s.Len()}
	}
	var text string
	err := s.db.QueryRow(`SELECT text FROM items ORDER BY id LIMIT 1 OFFSET ?;`, index).Scan(&text)
	if errors.Is(err, sql.ErrNoRows) {
		return "", &todo.IndexError{Index: index, Len: s.Len()}
	}
	if err != nil {
		return "", fmt.Errorf("get item %d: %w", index, err)
	}
	return text, nil
}

func (s *Store) Items() []string {
	items, err := s.fetchItems()
	if err != nil {
		s.log.Error("fetch items", "error", err)
		return nil
	}
	return items
}

func (s *Store) Formatted() string {
	return todo.Format(s.Items())
}

func (s *Store) fetchItems() ([]string, error) {
	rows, err := s.db.Query(`SELECT text FROM items ORDER BY id;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, err
		}
		items = append(items, text)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func memoryDSN(name string) string {
	u := url.URL{
		Scheme: "file",
		Opaque: name,
	}
	q := u.Query()
	q.Set("mode", "memory")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}
