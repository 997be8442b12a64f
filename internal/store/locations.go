package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// LocationFix is the latest known device position for a user. The app
// posts a fresh fix every few seconds while the map is open; only the
// most recent one per user is kept.
type LocationFix struct {
	UserID     int64     `json:"user_id"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	RecordedAt time.Time `json:"recorded_at"`
}

type LocationsStore struct {
	db *pgxpool.Pool
}

func (s *LocationsStore) UpsertFix(ctx context.Context, fix *LocationFix) error {
	query := `
		INSERT INTO user_locations (user_id, latitude, longitude, recorded_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id)
		DO UPDATE SET latitude = EXCLUDED.latitude,
		              longitude = EXCLUDED.longitude,
		              recorded_at = EXCLUDED.recorded_at
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	if fix.RecordedAt.IsZero() {
		fix.RecordedAt = time.Now()
	}

	_, err := s.db.Exec(ctx, query, fix.UserID, fix.Latitude, fix.Longitude, fix.RecordedAt)
	return err
}

// LatestFixes returns the freshest fix per user, newest first. Stale
// fixes older than an hour are left out so the notifier does not ping
// users who closed the app long ago.
func (s *LocationsStore) LatestFixes(ctx context.Context) ([]LocationFix, error) {
	query := `
		SELECT user_id, latitude, longitude, recorded_at
		FROM user_locations
		WHERE recorded_at > $1
		ORDER BY recorded_at DESC
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.Query(ctx, query, time.Now().Add(-time.Hour))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fixes []LocationFix
	for rows.Next() {
		var fix LocationFix
		if err := rows.Scan(&fix.UserID, &fix.Latitude, &fix.Longitude, &fix.RecordedAt); err != nil {
			continue
		}
		fixes = append(fixes, fix)
	}
	return fixes, rows.Err()
}
