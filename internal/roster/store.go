// Package roster persists the set of classes known to the dashboard.
//
// The spreadsheets are the source of truth for which classes exist; the
// store is reconciled against them after every successful upload so that
// rows for departed classes do not linger.
package roster

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS classes (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    created_at TIMESTAMP NOT NULL
);
`

// Class is one roster entry.
type Class struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Store is the sqlite-backed class roster.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (creating if needed) the roster database at path.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{
		db:     db,
		logger: logger.With(slog.String("component", "roster_store")),
	}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// List returns every roster entry ordered by class name.
func (s *Store) List(ctx context.Context) ([]Class, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, created_at FROM classes ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []Class
	for rows.Next() {
		var c Class
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

// Reconcile aligns the roster with the classes observed in the current
// dataset: missing classes are created, classes no longer observed are
// removed. An empty observation leaves the roster untouched so a transient
// empty dataset cannot wipe it.
func (s *Store) Reconcile(ctx context.Context, observed []string) error {
	if len(observed) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	existing := make(map[string]bool)
	rows, err := tx.QueryContext(ctx, "SELECT name FROM classes")
	if err != nil {
		return err
	}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return err
		}
		existing[name] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	wanted := make(map[string]bool, len(observed))
	created := 0
	for _, name := range observed {
		wanted[name] = true
		if existing[name] {
			continue
		}
		_, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO classes (id, name, created_at) VALUES (?, ?, ?)",
			uuid.NewString(), name, time.Now().UTC())
		if err != nil {
			return err
		}
		created++
	}

	removed := 0
	for name := range existing {
		if wanted[name] {
			continue
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM classes WHERE name = ?", name); err != nil {
			return err
		}
		removed++
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	if created > 0 || removed > 0 {
		s.logger.InfoContext(ctx, "roster reconciled",
			slog.Int("created", created),
			slog.Int("removed", removed))
	}
	return nil
}
