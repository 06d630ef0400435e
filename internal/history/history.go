// package history records every triggered alarm in a local SQLite database,
// so "did my alarm actually fire this morning" has an answer.
package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/charmed/internal/models"
	"github.com/desertthunder/charmed/internal/playback"
	"github.com/desertthunder/charmed/internal/shared"
)

// Entry is one row of the trigger log.
type Entry struct {
	ID           int64
	AlarmID      string
	AlarmTime    string
	PlaylistName string
	PlaylistURI  string
	Outcome      string
	Detail       string
	FiredAt      time.Time
}

// Log wraps the alarm_history table.
type Log struct {
	db *sql.DB
}

// Open opens (or creates) the history database at the given path and applies
// pending migrations.
func Open(path string) (*Log, error) {
	db, err := shared.NewDatabase(path)
	if err != nil {
		return nil, err
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Log{db: db}, nil
}

// NewLog wraps an already opened database. Used by tests and callers that
// manage the connection themselves.
func NewLog(db *sql.DB) *Log {
	return &Log{db: db}
}

// Close releases the underlying database connection.
func (l *Log) Close() error {
	return l.db.Close()
}

// Record appends a trigger to the log.
func (l *Log) Record(alarm models.Alarm, result playback.Result, firedAt time.Time) error {
	_, err := l.db.Exec(`
		INSERT INTO alarm_history (alarm_id, alarm_time, playlist_name, playlist_uri, outcome, detail, fired_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		alarm.ID,
		alarm.Time,
		alarm.PlaylistName,
		alarm.PlaylistURI,
		string(result.Outcome),
		result.Detail,
		firedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("recording trigger for alarm %s: %w", alarm.ID, err)
	}

	return nil
}

// Recent returns the most recent entries, newest first. A non-positive limit
// defaults to 20.
func (l *Log) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := l.db.Query(`
		SELECT id, alarm_id, alarm_time, playlist_name, playlist_uri, outcome, detail, fired_at
		FROM alarm_history
		ORDER BY fired_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.AlarmID, &e.AlarmTime, &e.PlaylistName, &e.PlaylistURI, &e.Outcome, &e.Detail, &e.FiredAt); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// ForAlarm returns the trigger log for one alarm, newest first.
func (l *Log) ForAlarm(alarmID string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := l.db.Query(`
		SELECT id, alarm_id, alarm_time, playlist_name, playlist_uri, outcome, detail, fired_at
		FROM alarm_history
		WHERE alarm_id = ?
		ORDER BY fired_at DESC, id DESC
		LIMIT ?`, alarmID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history for alarm %s: %w", alarmID, err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.AlarmID, &e.AlarmTime, &e.PlaylistName, &e.PlaylistURI, &e.Outcome, &e.Detail, &e.FiredAt); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
