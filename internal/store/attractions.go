package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// AttractionCategories is the fixed set of categories an attraction can
// be filed under.
var AttractionCategories = []string{
	"Historical Sites",
	"Natural Attractions",
	"Cultural Attractions",
	"Entertainment Venues",
	"Religious Sites",
	"Architectural Marvels",
	"Adventure Destinations",
}

func IsValidCategory(category string) bool {
	for _, c := range AttractionCategories {
		if c == category {
			return true
		}
	}
	return false
}

// Attraction is a point-of-interest record contributed by a user.
type Attraction struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	PhotoURLs       []string  `json:"photo_urls,omitempty"`
	Latitude        float64   `json:"latitude"`
	Longitude       float64   `json:"longitude"`
	Category        string    `json:"category"`
	TicketPrice     string    `json:"ticket_price"`
	WorkingHours    string    `json:"working_hours"`
	AddedByUserID   int64     `json:"added_by_user_id"`
	CreatedAt       time.Time `json:"created_at"`
	AverageRating   float64   `json:"average_rating"`
	NumberOfReviews int       `json:"number_of_reviews"`
}

type AttractionsStore struct {
	db *pgxpool.Pool
}

// normalizePhotoURLs maps a nil slice to an empty one. A nil slice
// binds as SQL NULL, which the NOT NULL photo_urls column rejects;
// attractions are routinely created before any photo is uploaded.
func normalizePhotoURLs(urls []string) []string {
	if urls == nil {
		return []string{}
	}
	return urls
}

func (s *AttractionsStore) Create(ctx context.Context, attraction *Attraction) error {
	query := `
		INSERT INTO attractions (name, description, photo_urls, latitude, longitude, category, ticket_price, working_hours, added_by_user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	err := s.db.QueryRow(
		ctx, query,
		attraction.Name,
		attraction.Description,
		pq.Array(normalizePhotoURLs(attraction.PhotoURLs)),
		attraction.Latitude,
		attraction.Longitude,
		attraction.Category,
		attraction.TicketPrice,
		attraction.WorkingHours,
		attraction.AddedByUserID,
	).Scan(&attraction.ID, &attraction.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create attraction: %w", err)
	}
	return nil
}

func (s *AttractionsStore) GetByID(ctx context.Context, attractionID int64) (*Attraction, error) {
	query := `
		SELECT id, name, description, photo_urls, latitude, longitude, category,
		       ticket_price, working_hours, added_by_user_id, created_at,
		       average_rating, number_of_reviews
		FROM attractions
		WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var a Attraction
	err := s.db.QueryRow(ctx, query, attractionID).Scan(
		&a.ID,
		&a.Name,
		&a.Description,
		&a.PhotoURLs,
		&a.Latitude,
		&a.Longitude,
		&a.Category,
		&a.TicketPrice,
		&a.WorkingHours,
		&a.AddedByUserID,
		&a.CreatedAt,
		&a.AverageRating,
		&a.NumberOfReviews,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// GetAll returns every stored attraction. Rows that fail to scan are
// skipped so one malformed record does not block the whole batch.
func (s *AttractionsStore) GetAll(ctx context.Context) ([]Attraction, error) {
	query := `
		SELECT id, name, description, photo_urls, latitude, longitude, category,
		       ticket_price, working_hours, added_by_user_id, created_at,
		       average_rating, number_of_reviews
		FROM attractions
		ORDER BY created_at DESC
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attractions []Attraction
	for rows.Next() {
		var a Attraction
		err := rows.Scan(
			&a.ID,
			&a.Name,
			&a.Description,
			&a.PhotoURLs,
			&a.Latitude,
			&a.Longitude,
			&a.Category,
			&a.TicketPrice,
			&a.WorkingHours,
			&a.AddedByUserID,
			&a.CreatedAt,
			&a.AverageRating,
			&a.NumberOfReviews,
		)
		if err != nil {
			continue
		}
		attractions = append(attractions, a)
	}
	return attractions, rows.Err()
}

// AddPhotoURL appends a photo URL to an attraction's photo_urls array.
func (s *AttractionsStore) AddPhotoURL(ctx context.Context, attractionID int64, photoURL string) error {
	query := `
		UPDATE attractions
		SET photo_urls = array_append(photo_urls, $1)
		WHERE id = $2
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	_, err := s.db.Exec(ctx, query, photoURL, attractionID)
	if err != nil {
		return fmt.Errorf("failed to add photo URL: %w", err)
	}
	return nil
}

// RemovePhotoURL removes a specific photo URL from an attraction's photo_urls array.
func (s *AttractionsStore) RemovePhotoURL(ctx context.Context, attractionID int64, photoURL string) error {
	query := `
		UPDATE attractions
		SET photo_urls = array_remove(photo_urls, $1)
		WHERE id = $2
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	_, err := s.db.Exec(ctx, query, photoURL, attractionID)
	if err != nil {
		return fmt.Errorf("failed to remove photo URL: %w", err)
	}
	return nil
}
