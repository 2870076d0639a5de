package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/vovakirdan/tui-2048/internal/game"
)

// Keys of the per-size namespace besides the "<row>-<col>" cells.
const (
	keyScore     = "score"
	keyBestScore = "best-score"
	keyWin       = "win"
	keyMaxed     = "maxed"
)

// Namespace returns the preference namespace used for a grid size.
func Namespace(size int) string {
	return "base-" + strconv.Itoa(size)
}

func cellKey(row, col int) string {
	return strconv.Itoa(row) + "-" + strconv.Itoa(col)
}

// Load reads the saved game for size. It returns false if nothing was
// ever saved for that size. Missing cells read as empty.
func (s *Store) Load(size int) (game.Saved, bool, error) {
	ns := Namespace(size)

	rows, err := s.db.Query("SELECT key, value FROM prefs WHERE namespace = ?", ns)
	if err != nil {
		return game.Saved{}, false, fmt.Errorf("storage: cannot query saved game: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return game.Saved{}, false, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		values[k] = v
	}
	if err := rows.Err(); err != nil {
		return game.Saved{}, false, fmt.Errorf("storage: row iteration error: %w", err)
	}
	if len(values) == 0 {
		return game.Saved{}, false, nil
	}

	saved := game.Saved{Cells: make([][]int, size)}
	for i := range size {
		saved.Cells[i] = make([]int, size)
		for j := range size {
			if saved.Cells[i][j], err = intValue(values, cellKey(i, j)); err != nil {
				return game.Saved{}, false, err
			}
		}
	}
	if saved.Score, err = intValue(values, keyScore); err != nil {
		return game.Saved{}, false, err
	}
	if saved.BestScore, err = intValue(values, keyBestScore); err != nil {
		return game.Saved{}, false, err
	}
	if saved.AlreadyWon, err = boolValue(values, keyWin); err != nil {
		return game.Saved{}, false, err
	}
	if saved.Maxed, err = boolValue(values, keyMaxed); err != nil {
		return game.Saved{}, false, err
	}

	err = s.db.QueryRow("SELECT session_id FROM sessions WHERE namespace = ?", ns).Scan(&saved.SessionID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return game.Saved{}, false, fmt.Errorf("storage: cannot query session: %w", err)
	}

	return saved, true, nil
}

func intValue(values map[string]string, key string) (int, error) {
	v, ok := values[key]
	if !ok {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("storage: bad value for %q: %w", key, err)
	}
	return n, nil
}

func boolValue(values map[string]string, key string) (bool, error) {
	v, ok := values[key]
	if !ok {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("storage: bad value for %q: %w", key, err)
	}
	return b, nil
}

// Save replaces the saved game for size in a single transaction.
func (s *Store) Save(size int, saved game.Saved) error {
	ns := Namespace(size)

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO prefs (namespace, key, value) VALUES (?, ?, ?)
		 ON CONFLICT(namespace, key) DO UPDATE SET value = excluded.value`,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot prepare save: %w", err)
	}
	defer stmt.Close()

	put := func(key, value string) error {
		if _, err := stmt.Exec(ns, key, value); err != nil {
			return fmt.Errorf("storage: cannot save %q: %w", key, err)
		}
		return nil
	}

	for i := range size {
		for j := range size {
			v := 0
			if i < len(saved.Cells) && j < len(saved.Cells[i]) {
				v = saved.Cells[i][j]
			}
			if err := put(cellKey(i, j), strconv.Itoa(v)); err != nil {
				return err
			}
		}
	}
	if err := put(keyScore, strconv.Itoa(saved.Score)); err != nil {
		return err
	}
	if err := put(keyBestScore, strconv.Itoa(saved.BestScore)); err != nil {
		return err
	}
	if err := put(keyWin, strconv.FormatBool(saved.AlreadyWon)); err != nil {
		return err
	}
	if err := put(keyMaxed, strconv.FormatBool(saved.Maxed)); err != nil {
		return err
	}

	_, err = tx.Exec(
		`INSERT INTO sessions (namespace, session_id, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(namespace) DO UPDATE SET session_id = excluded.session_id, updated_at = CURRENT_TIMESTAMP`,
		ns, saved.SessionID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit save: %w", err)
	}
	return nil
}

// LastSaved returns when the game for size was last saved.
func (s *Store) LastSaved(size int) (time.Time, bool, error) {
	var updatedAt any
	err := s.db.QueryRow("SELECT updated_at FROM sessions WHERE namespace = ?", Namespace(size)).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("storage: cannot query session: %w", err)
	}
	return parseTimestamp(updatedAt), true, nil
}

// ClearGame deletes the saved game for size. The best score goes with it.
func (s *Store) ClearGame(size int) error {
	ns := Namespace(size)

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM prefs WHERE namespace = ?", ns); err != nil {
		return fmt.Errorf("storage: cannot clear saved game: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM sessions WHERE namespace = ?", ns); err != nil {
		return fmt.Errorf("storage: cannot clear session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit clear: %w", err)
	}
	return nil
}

// Ensure Store implements the controller's persistence port
var _ game.Persistence = (*Store)(nil)
