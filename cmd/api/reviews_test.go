package main

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tourister/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeReviewsStore struct {
	createErr error
	created   []*store.Review
}

func (f *fakeReviewsStore) Create(ctx context.Context, review *store.Review) error {
	if f.createErr != nil {
		return f.createErr
	}
	review.ID = int64(len(f.created) + 1)
	review.CreatedAt = time.Now()
	f.created = append(f.created, review)
	return nil
}

func (f *fakeReviewsStore) GetByAttraction(context.Context, int64) ([]store.Review, error) {
	return nil, nil
}

func (f *fakeReviewsStore) GetUserReview(context.Context, int64, int64) (*store.Review, error) {
	return nil, store.ErrNotFound
}

type fakeAttractionsStore struct {
	created []*store.Attraction
}

func (f *fakeAttractionsStore) Create(ctx context.Context, a *store.Attraction) error {
	a.ID = int64(len(f.created) + 1)
	a.CreatedAt = time.Now()
	f.created = append(f.created, a)
	return nil
}

func (f *fakeAttractionsStore) GetByID(context.Context, int64) (*store.Attraction, error) {
	return nil, store.ErrNotFound
}
func (f *fakeAttractionsStore) GetAll(context.Context) ([]store.Attraction, error) { return nil, nil }
func (f *fakeAttractionsStore) AddPhotoURL(context.Context, int64, string) error   { return nil }
func (f *fakeAttractionsStore) RemovePhotoURL(context.Context, int64, string) error {
	return nil
}

// fakePointsLedger implements the Users store with an in-memory point
// balance so award accumulation is observable.
type fakePointsLedger struct {
	points map[int64]int
}

func newFakePointsLedger() *fakePointsLedger {
	return &fakePointsLedger{points: make(map[int64]int)}
}

func (f *fakePointsLedger) AwardPoints(ctx context.Context, userID int64, amount int) error {
	f.points[userID] += amount
	return nil
}

func (f *fakePointsLedger) Create(context.Context, pgx.Tx, *store.User) error { return nil }
func (f *fakePointsLedger) CreateAndInvite(context.Context, *store.User, string, time.Duration) error {
	return nil
}
func (f *fakePointsLedger) Activate(context.Context, string) error { return nil }
func (f *fakePointsLedger) GetByID(context.Context, int64) (*store.User, error) {
	return nil, store.ErrNotFound
}
func (f *fakePointsLedger) GetByEmail(context.Context, string) (*store.User, error) {
	return nil, store.ErrNotFound
}
func (f *fakePointsLedger) Leaderboard(context.Context, int) ([]store.User, error) { return nil, nil }
func (f *fakePointsLedger) SetProfile(context.Context, string, int64) error        { return nil }
func (f *fakePointsLedger) GetProfileUrl(context.Context, int64) (string, error)   { return "", nil }

func newTestApplication(storage store.Storage) *application {
	return &application{
		logger: zap.NewNop().Sugar(),
		store:  storage,
	}
}

// authedRequest stamps the request with a logged-in user and a chi route
// parameter for the attraction ID.
func authedRequest(r *http.Request, user *store.User, attractionID string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("attractionID", attractionID)

	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	ctx = context.WithValue(ctx, userCtx, user)
	return r.WithContext(ctx)
}

func TestCreateReviewDuplicateReturnsConflict(t *testing.T) {
	ledger := newFakePointsLedger()
	app := newTestApplication(store.Storage{
		Reviews: &fakeReviewsStore{createErr: store.ErrDuplicateReview},
		Users:   ledger,
	})

	body := strings.NewReader(`{"rating": 4, "comment": "already said so"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/attractions/3/reviews", body)
	req = authedRequest(req, &store.User{ID: 7}, "3")

	rr := httptest.NewRecorder()
	app.createReviewHandler(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
	// A rejected duplicate must not earn points.
	assert.Zero(t, ledger.points[7])
}

func TestCreateReviewAwardsPoints(t *testing.T) {
	reviews := &fakeReviewsStore{}
	ledger := newFakePointsLedger()
	app := newTestApplication(store.Storage{
		Reviews: reviews,
		Users:   ledger,
	})

	body := strings.NewReader(`{"rating": 4.5, "comment": "worth the climb"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/attractions/3/reviews", body)
	req = authedRequest(req, &store.User{ID: 7}, "3")

	rr := httptest.NewRecorder()
	app.createReviewHandler(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	require.Len(t, reviews.created, 1)
	assert.Equal(t, int64(3), reviews.created[0].AttractionID)
	assert.Equal(t, int64(7), reviews.created[0].UserID)
	assert.Equal(t, pointsForReview, ledger.points[7])
}

func TestContributionPointsAccumulate(t *testing.T) {
	attractions := &fakeAttractionsStore{}
	reviews := &fakeReviewsStore{}
	ledger := newFakePointsLedger()
	app := newTestApplication(store.Storage{
		Attractions: attractions,
		Reviews:     reviews,
		Users:       ledger,
	})

	// Add an attraction: +10.
	var form bytes.Buffer
	mw := multipart.NewWriter(&form)
	require.NoError(t, mw.WriteField("name", "Nis Fortress"))
	require.NoError(t, mw.WriteField("description", "Ottoman-era fortress on the Nisava"))
	require.NoError(t, mw.WriteField("latitude", "43.3247"))
	require.NoError(t, mw.WriteField("longitude", "21.8937"))
	require.NoError(t, mw.WriteField("category", "Historical Sites"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/attractions", &form)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req = authedRequest(req, &store.User{ID: 7}, "")

	rr := httptest.NewRecorder()
	app.createAttractionHandler(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, 10, ledger.points[7])

	// Review another attraction: +5, balance reaches 15.
	body := strings.NewReader(`{"rating": 5, "comment": "stunning views"}`)
	req = httptest.NewRequest(http.MethodPost, "/v1/attractions/2/reviews", body)
	req = authedRequest(req, &store.User{ID: 7}, "2")

	rr = httptest.NewRecorder()
	app.createReviewHandler(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)

	assert.Equal(t, 15, ledger.points[7])
}
