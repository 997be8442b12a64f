package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Review is a user's one-off rating of an attraction. Reviews are keyed
// by (attraction_id, user_id) and immutable once submitted.
type Review struct {
	ID           int64     `json:"id"`
	AttractionID int64     `json:"attraction_id"`
	UserID       int64     `json:"user_id"`
	Rating       float64   `json:"rating"` // 0-5
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`

	// Joined fields
	UserFullName string `json:"user_full_name,omitempty"`
	AvatarURL    string `json:"avatar_url,omitempty"`
}

type ReviewsStore struct {
	db *pgxpool.Pool
}

// Create folds a new review into the attraction's running average inside
// a single transaction. The attraction row is locked for the duration of
// the read-modify-write, so concurrent submissions from different users
// cannot lose updates. A second review from the same user fails with
// ErrDuplicateReview and leaves the aggregate untouched.
func (s *ReviewsStore) Create(ctx context.Context, review *Review) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return withTx(s.db, ctx, func(tx pgx.Tx) error {
		var (
			averageRating   float64
			numberOfReviews int
		)
		err := tx.QueryRow(ctx, `
			SELECT average_rating, number_of_reviews
			FROM attractions
			WHERE id = $1
			FOR UPDATE
		`, review.AttractionID).Scan(&averageRating, &numberOfReviews)
		if err != nil {
			if err == pgx.ErrNoRows {
				return ErrNotFound
			}
			return err
		}

		var exists bool
		err = tx.QueryRow(ctx, `
			SELECT EXISTS (
			  SELECT 1 FROM reviews
			  WHERE attraction_id = $1 AND user_id = $2
			)
		`, review.AttractionID, review.UserID).Scan(&exists)
		if err != nil {
			return err
		}
		if exists {
			return ErrDuplicateReview
		}

		err = tx.QueryRow(ctx, `
			INSERT INTO reviews (attraction_id, user_id, rating, comment)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at
		`, review.AttractionID, review.UserID, review.Rating, review.Comment).
			Scan(&review.ID, &review.CreatedAt)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return ErrDuplicateReview
			}
			return err
		}

		newAverage, newCount := foldRating(averageRating, numberOfReviews, review.Rating)

		_, err = tx.Exec(ctx, `
			UPDATE attractions
			SET average_rating = $1, number_of_reviews = $2
			WHERE id = $3
		`, newAverage, newCount, review.AttractionID)
		return err
	})
}

// foldRating incorporates one more rating into a running average.
func foldRating(average float64, count int, rating float64) (float64, int) {
	newCount := count + 1
	newAverage := (average*float64(count) + rating) / float64(newCount)
	return newAverage, newCount
}

func (s *ReviewsStore) GetByAttraction(ctx context.Context, attractionID int64) ([]Review, error) {
	query := `
		SELECT r.id, r.attraction_id, r.user_id, r.rating, r.comment, r.created_at,
		       u.full_name, COALESCE(u.profile_picture_url, '')
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.attraction_id = $1
		ORDER BY r.created_at DESC
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.Query(ctx, query, attractionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []Review
	for rows.Next() {
		var review Review
		err := rows.Scan(
			&review.ID,
			&review.AttractionID,
			&review.UserID,
			&review.Rating,
			&review.Comment,
			&review.CreatedAt,
			&review.UserFullName,
			&review.AvatarURL,
		)
		if err != nil {
			continue
		}
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}

func (s *ReviewsStore) GetUserReview(ctx context.Context, attractionID, userID int64) (*Review, error) {
	query := `
		SELECT id, attraction_id, user_id, rating, comment, created_at
		FROM reviews
		WHERE attraction_id = $1 AND user_id = $2
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var review Review
	err := s.db.QueryRow(ctx, query, attractionID, userID).Scan(
		&review.ID,
		&review.AttractionID,
		&review.UserID,
		&review.Rating,
		&review.Comment,
		&review.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &review, nil
}
