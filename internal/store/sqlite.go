// Package store is the persistent record store backing the tracker:
// users and their logged entries, kept in SQLite.
package store

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/voltrack/voltrack/internal/domain"
	"github.com/voltrack/voltrack/internal/report"
)

//go:embed schema.sql
var schema string

// ErrNotFound is returned when a looked-up record does not exist.
var ErrNotFound = errors.New("record not found")

// Store handles database operations
type Store struct {
	db *sql.DB
}

// New creates a new Store with the given database path
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// One connection: SQLite has a single writer anyway, the pragma below
	// is per-connection, and a pooled second connection to ":memory:"
	// would be a separate empty database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	// Initialize schema
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateUser inserts a user and returns it with its assigned id.
func (s *Store) CreateUser(u domain.User) (*domain.User, error) {
	res, err := s.db.Exec(
		"INSERT INTO users (full_name, username, email, role, password_hash) VALUES (?, ?, ?, ?, ?)",
		u.FullName, u.Username, u.Email, string(u.Role), u.PasswordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	u.ID, err = res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("user id: %w", err)
	}
	return &u, nil
}

func (s *Store) userBy(where string, arg any) (*domain.User, error) {
	var u domain.User
	var role string
	err := s.db.QueryRow(
		"SELECT id, full_name, username, email, role, password_hash FROM users WHERE "+where,
		arg,
	).Scan(&u.ID, &u.FullName, &u.Username, &u.Email, &role, &u.PasswordHash)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	u.Role = domain.Role(role)
	return &u, nil
}

// GetUser retrieves a user by id.
func (s *Store) GetUser(id int64) (*domain.User, error) {
	return s.userBy("id = ?", id)
}

// GetUserByUsername retrieves a user by unique username.
func (s *Store) GetUserByUsername(username string) (*domain.User, error) {
	return s.userBy("username = ?", username)
}

// GetUserByEmail retrieves a user by unique email.
func (s *Store) GetUserByEmail(email string) (*domain.User, error) {
	return s.userBy("email = ?", email)
}

// ListUsers returns all users ordered by full name.
func (s *Store) ListUsers() ([]domain.User, error) {
	rows, err := s.db.Query(
		"SELECT id, full_name, username, email, role, password_hash FROM users ORDER BY full_name",
	)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		var role string
		if err := rows.Scan(&u.ID, &u.FullName, &u.Username, &u.Email, &role, &u.PasswordHash); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		u.Role = domain.Role(role)
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateUserProfile updates the mutable account fields.
func (s *Store) UpdateUserProfile(id int64, fullName, email string, role domain.Role) error {
	res, err := s.db.Exec(
		"UPDATE users SET full_name = ?, email = ?, role = ? WHERE id = ?",
		fullName, email, string(role), id,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return requireRow(res)
}

// UpdateUserPassword replaces a user's credential hash.
func (s *Store) UpdateUserPassword(id int64, passwordHash string) error {
	res, err := s.db.Exec("UPDATE users SET password_hash = ? WHERE id = ?", passwordHash, id)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return requireRow(res)
}

// DeleteUser removes a user and all their entries in one transaction.
// Entries go first so the foreign key never dangles.
func (s *Store) DeleteUser(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin delete user: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM entries WHERE user_id = ?", id); err != nil {
		return fmt.Errorf("delete user entries: %w", err)
	}
	res, err := tx.Exec("DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if err := requireRow(res); err != nil {
		return err
	}
	return tx.Commit()
}

// CreateEntry inserts an entry and returns it with its assigned id.
func (s *Store) CreateEntry(e domain.Entry) (*domain.Entry, error) {
	res, err := s.db.Exec(
		"INSERT INTO entries (user_id, date, event, start_time, end_time, total_hours, notes) VALUES (?, ?, ?, ?, ?, ?, ?)",
		e.UserID, e.Date, e.Event, e.StartTime, e.EndTime, e.TotalHours, e.Notes,
	)
	if err != nil {
		return nil, fmt.Errorf("insert entry: %w", err)
	}
	e.ID, err = res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("entry id: %w", err)
	}
	return &e, nil
}

// GetEntry retrieves an entry by id.
func (s *Store) GetEntry(id int64) (*domain.Entry, error) {
	var e domain.Entry
	err := s.db.QueryRow(
		"SELECT id, user_id, date, event, start_time, end_time, total_hours, notes FROM entries WHERE id = ?",
		id,
	).Scan(&e.ID, &e.UserID, &e.Date, &e.Event, &e.StartTime, &e.EndTime, &e.TotalHours, &e.Notes)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return &e, nil
}

// UpdateEntry rewrites an entry's logged fields. TotalHours must already
// be recomputed by the caller for the new date/start/end.
func (s *Store) UpdateEntry(e domain.Entry) error {
	res, err := s.db.Exec(
		"UPDATE entries SET date = ?, event = ?, start_time = ?, end_time = ?, total_hours = ?, notes = ? WHERE id = ?",
		e.Date, e.Event, e.StartTime, e.EndTime, e.TotalHours, e.Notes, e.ID,
	)
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}
	return requireRow(res)
}

// DeleteEntry removes an entry.
func (s *Store) DeleteEntry(id int64) error {
	res, err := s.db.Exec("DELETE FROM entries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return requireRow(res)
}

// ListEntriesByUser returns one user's entries, newest date first.
func (s *Store) ListEntriesByUser(userID int64) ([]domain.Entry, error) {
	return s.listEntries("WHERE user_id = ?", userID)
}

// ListEntries returns all entries, newest date first.
func (s *Store) ListEntries() ([]domain.Entry, error) {
	return s.listEntries("")
}

func (s *Store) listEntries(where string, args ...any) ([]domain.Entry, error) {
	rows, err := s.db.Query(
		"SELECT id, user_id, date, event, start_time, end_time, total_hours, notes FROM entries "+
			where+" ORDER BY date DESC, id DESC", args...,
	)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.Entry
	for rows.Next() {
		var e domain.Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Date, &e.Event, &e.StartTime, &e.EndTime, &e.TotalHours, &e.Notes); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ReportRows returns entries in [start, end] (inclusive, lexicographic on
// the zero-padded ISO date) with owner names resolved, the shape the
// aggregation engine consumes. A non-nil ownerID scopes the set to one
// user; role checks stay with the caller.
func (s *Store) ReportRows(start, end string, ownerID *int64) ([]report.Row, error) {
	query := `
		SELECT u.full_name, e.date, e.event, e.start_time, e.end_time, e.total_hours, e.notes
		FROM entries e
		JOIN users u ON u.id = e.user_id
		WHERE e.date >= ? AND e.date <= ?`
	args := []any{start, end}
	if ownerID != nil {
		query += " AND e.user_id = ?"
		args = append(args, *ownerID)
	}
	query += " ORDER BY e.date, u.full_name, e.id"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("report rows: %w", err)
	}
	defer rows.Close()

	var out []report.Row
	for rows.Next() {
		var r report.Row
		if err := rows.Scan(&r.FullName, &r.Date, &r.Event, &r.Start, &r.End, &r.Hours, &r.Notes); err != nil {
			return nil, fmt.Errorf("scan report row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
