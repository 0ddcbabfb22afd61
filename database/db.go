package database

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"lecturequizbot/models"
)

// DB handles all database operations: the user registry and the event
// log. Live quiz sessions are never persisted here.
type DB struct {
	conn *sql.DB
}

// New creates a new database connection and initializes tables
func New(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err = createTables(db); err != nil {
		return nil, err
	}

	return &DB{conn: db}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			user_id INTEGER PRIMARY KEY,
			username TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL,
			created_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			username TEXT NOT NULL DEFAULT '',
			event_type TEXT NOT NULL,
			details TEXT NOT NULL DEFAULT '',
			timestamp INTEGER NOT NULL
		)
	`)
	return err
}

// UserStatus returns the user's registry standing, or "" for a user the
// bot has never seen.
func (db *DB) UserStatus(userID int64) (models.UserStatus, error) {
	var status string
	err := db.conn.QueryRow(
		"SELECT status FROM users WHERE user_id = ?", userID,
	).Scan(&status)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return models.UserStatus(status), nil
}

// RegisterPending records a first-time user as awaiting admin approval.
// Re-registration of a known user is a no-op.
func (db *DB) RegisterPending(userID int64, username string) error {
	_, err := db.conn.Exec(
		"INSERT OR IGNORE INTO users (user_id, username, status, created_at) VALUES (?, ?, ?, ?)",
		userID, username, string(models.StatusPending), time.Now().Unix(),
	)
	return err
}

// SetUserStatus moves a user to a new registry standing.
func (db *DB) SetUserStatus(userID int64, status models.UserStatus) error {
	_, err := db.conn.Exec(
		"UPDATE users SET status = ? WHERE user_id = ?",
		string(status), userID,
	)
	return err
}

// UsersByStatus lists users with the given standing, oldest first.
func (db *DB) UsersByStatus(status models.UserStatus) ([]models.User, error) {
	rows, err := db.conn.Query(
		"SELECT user_id, username, status, created_at FROM users WHERE status = ? ORDER BY created_at ASC",
		string(status),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		var s string
		if err := rows.Scan(&u.ID, &u.Username, &s, &u.CreatedAt); err != nil {
			return nil, err
		}
		u.Status = models.UserStatus(s)
		users = append(users, u)
	}
	return users, rows.Err()
}

// CountByStatus returns the size of each registry bucket.
func (db *DB) CountByStatus() (allowed, pending, banned int, err error) {
	rows, err := db.conn.Query("SELECT status, COUNT(*) FROM users GROUP BY status")
	if err != nil {
		return 0, 0, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return 0, 0, 0, err
		}
		switch models.UserStatus(status) {
		case models.StatusAllowed:
			allowed = count
		case models.StatusPending:
			pending = count
		case models.StatusBanned:
			banned = count
		}
	}
	return allowed, pending, banned, rows.Err()
}

// LogEvent appends a record to the audit log.
func (db *DB) LogEvent(userID int64, username, eventType, details string) error {
	_, err := db.conn.Exec(
		"INSERT INTO events (user_id, username, event_type, details, timestamp) VALUES (?, ?, ?, ?, ?)",
		userID, username, eventType, details, time.Now().Unix(),
	)
	return err
}

// RecentEvents returns the user's latest audit records, newest first.
func (db *DB) RecentEvents(userID int64, limit int) ([]models.Event, error) {
	rows, err := db.conn.Query(`
		SELECT user_id, username, event_type, details, timestamp
		FROM events
		WHERE user_id = ?
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var e models.Event
		if err := rows.Scan(&e.UserID, &e.Username, &e.Type, &e.Details, &e.Timestamp); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// AnswerStats tallies the user's recorded quiz answers.
func (db *DB) AnswerStats(userID int64) (correct, incorrect int, err error) {
	err = db.conn.QueryRow(
		"SELECT COUNT(*) FROM events WHERE user_id = ? AND event_type = ? AND details = 'correct'",
		userID, models.EventQuizAnswer,
	).Scan(&correct)
	if err != nil {
		return 0, 0, err
	}

	err = db.conn.QueryRow(
		"SELECT COUNT(*) FROM events WHERE user_id = ? AND event_type = ? AND details = 'incorrect'",
		userID, models.EventQuizAnswer,
	).Scan(&incorrect)
	return correct, incorrect, err
}
