package gamification

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// AddXP credits points to the user and recomputes their level in the same
// statement, returning the new totals.
func (s *Store) AddXP(userID int64, points int) (xp, level int, err error) {
	err = s.db.QueryRow(
		`UPDATE users
		 SET xp = xp + $1, level = (xp + $1) / 100 + 1, updated_at = NOW()
		 WHERE id = $2
		 RETURNING xp, level`,
		points, userID,
	).Scan(&xp, &level)
	if err != nil {
		return 0, 0, fmt.Errorf("add xp: %w", err)
	}
	return xp, level, nil
}

func (s *Store) GetProgress(userID int64) (xp, level int, err error) {
	err = s.db.QueryRow(
		`SELECT xp, level FROM users WHERE id = $1`, userID,
	).Scan(&xp, &level)
	if err != nil {
		return 0, 0, fmt.Errorf("get progress: %w", err)
	}
	return xp, level, nil
}

func (s *Store) LogXPEvent(userID int64, eventType string, points int, metadata map[string]interface{}) error {
	var metaJSON *string
	if metadata != nil {
		b, err := json.Marshal(metadata)
		if err == nil {
			m := string(b)
			metaJSON = &m
		}
	}
	_, err := s.db.Exec(
		`INSERT INTO xp_events (user_id, event_type, xp_amount, metadata)
		 VALUES ($1, $2, $3, $4)`,
		userID, eventType, points, metaJSON,
	)
	return err
}

// RecentXPEvents returns the newest XP awards for display on a progress page.
func (s *Store) RecentXPEvents(userID int64, limit int) ([]XPEvent, error) {
	rows, err := s.db.Query(
		`SELECT event_type, xp_amount, created_at
		 FROM xp_events WHERE user_id = $1
		 ORDER BY created_at DESC LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("recent xp events: %w", err)
	}
	defer rows.Close()

	var events []XPEvent
	for rows.Next() {
		var e XPEvent
		if err := rows.Scan(&e.EventType, &e.XPAmount, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan xp event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
