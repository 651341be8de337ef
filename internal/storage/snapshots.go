package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

// SavedGame describes a stored snapshot without its tiles.
type SavedGame struct {
	Owner     string
	GameID    string
	Sides     int
	Score     t2048.Score
	UpdatedAt time.Time
}

// SaveSnapshot replaces the saved game of owner for gameID.
func (s *Store) SaveSnapshot(owner, gameID string, snap t2048.Snapshot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin snapshot save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO snapshots (owner, game_id, sides, score_current, score_best, updated_at)
		 VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (owner, game_id) DO UPDATE SET
		   sides = excluded.sides,
		   score_current = excluded.score_current,
		   score_best = excluded.score_best,
		   updated_at = excluded.updated_at`,
		owner, gameID, snap.Sides, snap.Score.Current, snap.Score.Best,
	); err != nil {
		return fmt.Errorf("storage: cannot save snapshot: %w", err)
	}

	if _, err := tx.Exec(
		"DELETE FROM snapshot_tiles WHERE owner = ? AND game_id = ?",
		owner, gameID,
	); err != nil {
		return fmt.Errorf("storage: cannot replace snapshot tiles: %w", err)
	}

	stmt, err := tx.Prepare(
		"INSERT INTO snapshot_tiles (owner, game_id, i, j, value) VALUES (?, ?, ?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("storage: cannot prepare tile insert: %w", err)
	}
	defer stmt.Close()

	for c, v := range snap.Tiles {
		if _, err := stmt.Exec(owner, gameID, c.I, c.J, v); err != nil {
			return fmt.Errorf("storage: cannot save tile %s: %w", c, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot returns the saved game of owner for gameID, or nil if none.
// The snapshot is returned as stored; t2048.Restore validates it.
func (s *Store) LoadSnapshot(owner, gameID string) (*t2048.Snapshot, error) {
	snap := &t2048.Snapshot{Tiles: make(map[t2048.Coord]int)}

	err := s.db.QueryRow(
		`SELECT sides, score_current, score_best
		 FROM snapshots
		 WHERE owner = ? AND game_id = ?`,
		owner, gameID,
	).Scan(&snap.Sides, &snap.Score.Current, &snap.Score.Best)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query snapshot: %w", err)
	}

	rows, err := s.db.Query(
		"SELECT i, j, value FROM snapshot_tiles WHERE owner = ? AND game_id = ?",
		owner, gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query snapshot tiles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c t2048.Coord
		var v int
		if err := rows.Scan(&c.I, &c.J, &v); err != nil {
			return nil, fmt.Errorf("storage: cannot scan tile: %w", err)
		}
		snap.Tiles[c] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return snap, nil
}

// DeleteSnapshot removes the saved game of owner for gameID.
// Deleting a missing snapshot is not an error.
func (s *Store) DeleteSnapshot(owner, gameID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin snapshot delete: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM snapshot_tiles WHERE owner = ? AND game_id = ?", owner, gameID); err != nil {
		return fmt.Errorf("storage: cannot delete snapshot tiles: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM snapshots WHERE owner = ? AND game_id = ?", owner, gameID); err != nil {
		return fmt.Errorf("storage: cannot delete snapshot: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit snapshot delete: %w", err)
	}
	return nil
}

// SavedGames lists the snapshots stored for owner, most recent first.
func (s *Store) SavedGames(owner string) ([]SavedGame, error) {
	rows, err := s.db.Query(
		`SELECT owner, game_id, sides, score_current, score_best, updated_at
		 FROM snapshots
		 WHERE owner = ?
		 ORDER BY updated_at DESC, game_id`,
		owner,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query saved games: %w", err)
	}
	defer rows.Close()

	var games []SavedGame
	for rows.Next() {
		var g SavedGame
		var updatedAt any
		if err := rows.Scan(&g.Owner, &g.GameID, &g.Sides, &g.Score.Current, &g.Score.Best, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan saved game: %w", err)
		}
		g.UpdatedAt = parseTimestamp(updatedAt)
		games = append(games, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return games, nil
}
