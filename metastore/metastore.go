// Package metastore persists captured runtime metadata in SQLite, so
// classes and methods can be searched across snapshots without the runtime
// attached.
package metastore

import (
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/tliron/commonlog"
	_ "modernc.org/sqlite"

	"github.com/chazu/tether/snapshot"
)

var log = commonlog.GetLogger("tether.metastore")

// ErrSnapshotNotFound indicates the requested snapshot is not in the store.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Store is a SQLite-backed metadata index.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (creating if needed) a metadata store at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			id TEXT PRIMARY KEY,
			captured_at TEXT NOT NULL,
			digest TEXT NOT NULL,
			class_count INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS classes (
			snapshot_id TEXT NOT NULL REFERENCES snapshots(id),
			namespace TEXT NOT NULL,
			name TEXT NOT NULL,
			parent TEXT NOT NULL,
			hash TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS methods (
			snapshot_id TEXT NOT NULL REFERENCES snapshots(id),
			namespace TEXT NOT NULL,
			class_name TEXT NOT NULL,
			name TEXT NOT NULL,
			static INTEGER NOT NULL,
			signature TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS classes_by_name ON classes(name)`,
		`CREATE INDEX IF NOT EXISTS methods_by_name ON methods(name)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating schema: %w", err)
		}
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Ingest stores a snapshot and all its class and method rows. Ingesting the
// same snapshot ID again replaces its rows.
func (s *Store) Ingest(snap *snapshot.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning ingest: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		"DELETE FROM methods WHERE snapshot_id = ?",
		"DELETE FROM classes WHERE snapshot_id = ?",
		"DELETE FROM snapshots WHERE id = ?",
	} {
		if _, err := tx.Exec(stmt, snap.ID); err != nil {
			return fmt.Errorf("clearing previous rows: %w", err)
		}
	}

	digest := snap.Digest()
	_, err = tx.Exec(
		"INSERT INTO snapshots (id, captured_at, digest, class_count) VALUES (?, ?, ?, ?)",
		snap.ID, snap.CapturedAt.Format(time.RFC3339Nano), hex.EncodeToString(digest[:]), len(snap.Classes),
	)
	if err != nil {
		return fmt.Errorf("inserting snapshot: %w", err)
	}

	for i := range snap.Classes {
		c := &snap.Classes[i]
		_, err = tx.Exec(
			"INSERT INTO classes (snapshot_id, namespace, name, parent, hash) VALUES (?, ?, ?, ?, ?)",
			snap.ID, c.Namespace, c.Name, c.Parent, hex.EncodeToString(c.Hash[:]),
		)
		if err != nil {
			return fmt.Errorf("inserting class %s: %w", c.Display(), err)
		}
		for _, m := range c.Methods {
			_, err = tx.Exec(
				"INSERT INTO methods (snapshot_id, namespace, class_name, name, static, signature) VALUES (?, ?, ?, ?, ?, ?)",
				snap.ID, c.Namespace, c.Name, m.Name, boolInt(m.Static), renderSignature(m),
			)
			if err != nil {
				return fmt.Errorf("inserting method %s.%s: %w", c.Display(), m.Name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing ingest: %w", err)
	}
	log.Debugf("ingested snapshot %s (%d classes)", snap.ID, len(snap.Classes))
	return nil
}

// SnapshotRow summarizes one stored snapshot.
type SnapshotRow struct {
	ID         string
	CapturedAt time.Time
	Digest     string
	ClassCount int
}

// Snapshots lists stored snapshots, newest first.
func (s *Store) Snapshots() ([]SnapshotRow, error) {
	rows, err := s.db.Query(
		"SELECT id, captured_at, digest, class_count FROM snapshots ORDER BY captured_at DESC")
	if err != nil {
		return nil, fmt.Errorf("querying snapshots: %w", err)
	}
	defer rows.Close()

	var out []SnapshotRow
	for rows.Next() {
		var r SnapshotRow
		var at string
		if err := rows.Scan(&r.ID, &at, &r.Digest, &r.ClassCount); err != nil {
			return nil, fmt.Errorf("scanning snapshot row: %w", err)
		}
		r.CapturedAt, _ = time.Parse(time.RFC3339Nano, at)
		out = append(out, r)
	}
	return out, rows.Err()
}

// ClassRow is one class hit from a search.
type ClassRow struct {
	SnapshotID string
	Namespace  string
	Name       string
	Parent     string
	Hash       string
}

// Display returns the class display name.
func (r *ClassRow) Display() string {
	if r.Namespace == "" {
		return r.Name
	}
	return r.Namespace + "." + r.Name
}

// FindClasses searches classes across all snapshots by prefix, matched
// against both the bare name and the namespace-qualified display form, so
// "Foo", "Bar.F" and "System" all find their classes.
func (s *Store) FindClasses(prefix string) ([]ClassRow, error) {
	pat := prefix + "%"
	rows, err := s.db.Query(
		"SELECT snapshot_id, namespace, name, parent, hash FROM classes WHERE name LIKE ? OR namespace || '.' || name LIKE ? ORDER BY namespace, name",
		pat, pat)
	if err != nil {
		return nil, fmt.Errorf("querying classes: %w", err)
	}
	defer rows.Close()

	var out []ClassRow
	for rows.Next() {
		var r ClassRow
		if err := rows.Scan(&r.SnapshotID, &r.Namespace, &r.Name, &r.Parent, &r.Hash); err != nil {
			return nil, fmt.Errorf("scanning class row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// MethodRow is one method hit from a search.
type MethodRow struct {
	SnapshotID string
	Class      string
	Name       string
	Static     bool
	Signature  string
}

// FindMethods searches methods by exact name across all snapshots.
func (s *Store) FindMethods(name string) ([]MethodRow, error) {
	rows, err := s.db.Query(
		"SELECT snapshot_id, namespace, class_name, name, static, signature FROM methods WHERE name = ? ORDER BY namespace, class_name",
		name)
	if err != nil {
		return nil, fmt.Errorf("querying methods: %w", err)
	}
	defer rows.Close()

	var out []MethodRow
	for rows.Next() {
		var r MethodRow
		var ns string
		var static int
		if err := rows.Scan(&r.SnapshotID, &ns, &r.Class, &r.Name, &static, &r.Signature); err != nil {
			return nil, fmt.Errorf("scanning method row: %w", err)
		}
		if ns != "" {
			r.Class = ns + "." + r.Class
		}
		r.Static = static != 0
		out = append(out, r)
	}
	return out, rows.Err()
}

// ClassCount returns the number of class rows stored for a snapshot.
func (s *Store) ClassCount(snapshotID string) (int, error) {
	var n int
	err := s.db.QueryRow(
		"SELECT class_count FROM snapshots WHERE id = ?", snapshotID).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrSnapshotNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("querying snapshot: %w", err)
	}
	return n, nil
}

func renderSignature(m snapshot.MethodSig) string {
	return m.Name + "(" + strings.Join(m.Params, ", ") + "): " + m.Return
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
