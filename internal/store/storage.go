package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound          = errors.New("resource not found")
	ErrConflict          = errors.New("resource already exists")
	ErrDuplicateReview   = errors.New("user has already reviewed this attraction")
	QueryTimeoutDuration = time.Second * 5
)

type Storage struct {
	Users interface {
		Create(context.Context, pgx.Tx, *User) error
		CreateAndInvite(ctx context.Context, user *User, token string, invitationExp time.Duration) error
		Activate(ctx context.Context, token string) error
		GetByID(context.Context, int64) (*User, error)
		GetByEmail(context.Context, string) (*User, error)
		AwardPoints(ctx context.Context, userID int64, amount int) error
		Leaderboard(ctx context.Context, limit int) ([]User, error)
		SetProfile(ctx context.Context, url string, userID int64) error
		GetProfileUrl(ctx context.Context, userID int64) (string, error)
	}
	Attractions interface {
		Create(context.Context, *Attraction) error
		GetByID(context.Context, int64) (*Attraction, error)
		GetAll(context.Context) ([]Attraction, error)
		AddPhotoURL(ctx context.Context, attractionID int64, photoURL string) error
		RemovePhotoURL(ctx context.Context, attractionID int64, photoURL string) error
	}
	Reviews interface {
		Create(context.Context, *Review) error
		GetByAttraction(context.Context, int64) ([]Review, error)
		GetUserReview(ctx context.Context, attractionID, userID int64) (*Review, error)
	}
	Locations interface {
		UpsertFix(context.Context, *LocationFix) error
		LatestFixes(context.Context) ([]LocationFix, error)
	}
	PushTokens interface {
		AddOrUpdatePushToken(ctx context.Context, userID int64, token string) error
		RemovePushToken(ctx context.Context, userID int64, token string) error
		GetTokensByUserIDs(ctx context.Context, userIDs []int64) (map[int64][]string, error)
	}
}

func NewStorage(db *pgxpool.Pool) Storage {
	return Storage{
		Users:       &UsersStore{db},
		Attractions: &AttractionsStore{db},
		Reviews:     &ReviewsStore{db},
		Locations:   &LocationsStore{db},
		PushTokens:  &PushTokensStore{db},
	}
}

func withTx(db *pgxpool.Pool, ctx context.Context, fn func(pgx.Tx) error) error {
	tx, err := db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}

	defer func() {
		_ = tx.Rollback(ctx) // safe even if already committed
	}()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
