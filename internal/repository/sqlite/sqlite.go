package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"pinboard/internal/domain"
	"pinboard/internal/repository"
)

// Repository implements repository.Repository using SQLite
type Repository struct {
	db *sql.DB
}

var _ repository.Repository = (*Repository)(nil)

// New opens (creating if needed) the database at dbPath and migrates it.
// ":memory:" gives a private in-memory database.
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}
	// SQLite serializes writers; one connection also keeps :memory: to a
	// single database.
	db.SetMaxOpenConns(1)

	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to migrate database")
	}

	return repo, nil
}

func dsn(dbPath string) string {
	if dbPath == ":memory:" || strings.HasPrefix(dbPath, "file:") {
		return dbPath
	}
	return "file:" + dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS circuits (
		name TEXT PRIMARY KEY,
		data JSON NOT NULL,
		firmware_digest TEXT,
		component_count INTEGER NOT NULL DEFAULT 0,
		saved_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS metadata (
		key TEXT PRIMARY KEY,
		value JSON NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_circuits_saved_at ON circuits(saved_at);
	`

	_, err := r.db.Exec(schema)
	return err
}

// SaveCircuit inserts or replaces the circuit stored under circuit.Name. A
// zero SavedAt is set to now.
func (r *Repository) SaveCircuit(ctx context.Context, circuit *domain.SavedCircuit) error {
	if circuit.Name == "" {
		return errors.New("circuit name is required")
	}
	if circuit.SavedAt.IsZero() {
		circuit.SavedAt = time.Now().UTC()
	}
	circuit.ComponentCount = len(circuit.Components)

	data, err := marshalComponents(circuit.Components)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO circuits (name, data, firmware_digest, component_count, saved_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			data = excluded.data,
			firmware_digest = excluded.firmware_digest,
			component_count = excluded.component_count,
			saved_at = excluded.saved_at
	`, circuit.Name, data, stringToNull(circuit.FirmwareDigest), circuit.ComponentCount, formatTime(circuit.SavedAt))
	if err != nil {
		return errors.Wrapf(err, "failed to save circuit %s", circuit.Name)
	}
	return nil
}

// GetCircuit loads a saved circuit by name
func (r *Repository) GetCircuit(ctx context.Context, name string) (*domain.SavedCircuit, error) {
	var row circuitRow
	err := r.db.QueryRowContext(ctx, `
		SELECT name, data, firmware_digest, component_count, saved_at
		FROM circuits WHERE name = ?
	`, name).Scan(row.scanArgs()...)
	if err == sql.ErrNoRows {
		return nil, errors.Wrapf(repository.ErrNotFound, "circuit %s", name)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get circuit %s", name)
	}
	return row.toDomain()
}

// ListCircuits returns summaries of all saved circuits, newest first
func (r *Repository) ListCircuits(ctx context.Context) ([]domain.CircuitSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name, firmware_digest, component_count, saved_at
		FROM circuits ORDER BY saved_at DESC, name
	`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query circuits")
	}
	defer rows.Close()

	summaries := []domain.CircuitSummary{}
	for rows.Next() {
		var (
			s       domain.CircuitSummary
			digest  sql.NullString
			savedAt string
		)
		if err := rows.Scan(&s.Name, &digest, &s.ComponentCount, &savedAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan circuit")
		}
		s.FirmwareDigest = nullToString(digest)
		if s.SavedAt, err = parseTime(savedAt); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// DeleteCircuit removes a saved circuit
func (r *Repository) DeleteCircuit(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM circuits WHERE name = ?", name)
	if err != nil {
		return errors.Wrapf(err, "failed to delete circuit %s", name)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.Wrapf(repository.ErrNotFound, "circuit %s", name)
	}
	return nil
}

// SetMeta stores value as JSON under key
func (r *Repository) SetMeta(ctx context.Context, key string, value interface{}) error {
	data, err := marshalToNull(value)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO metadata (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, data)
	if err != nil {
		return errors.Wrapf(err, "failed to set metadata %s", key)
	}
	return nil
}

// GetMeta decodes the JSON stored under key into target
func (r *Repository) GetMeta(ctx context.Context, key string, target interface{}) error {
	var value sql.NullString
	err := r.db.QueryRowContext(ctx, "SELECT value FROM metadata WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return errors.Wrapf(repository.ErrNotFound, "metadata %s", key)
	}
	if err != nil {
		return errors.Wrapf(err, "failed to get metadata %s", key)
	}
	return unmarshalJSONField(value, target)
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}
