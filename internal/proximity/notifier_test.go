package proximity

import (
	"context"
	"errors"
	"sync"
	"testing"

	"tourister/internal/deeplink"
	"tourister/internal/geo"
	"tourister/internal/store"

	"github.com/9ssi7/exponent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePushSender struct {
	mu   sync.Mutex
	err  error
	sent []*exponent.Message
}

func (f *fakePushSender) Publish(ctx context.Context, msgs []*exponent.Message) ([]*exponent.MessageResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, msgs...)
	return nil, nil
}

func (f *fakePushSender) PublishSingle(ctx context.Context, msg *exponent.Message) ([]*exponent.MessageResponse, error) {
	return f.Publish(ctx, []*exponent.Message{msg})
}

type fakeAttractions struct {
	attractions []store.Attraction
	err         error
}

func (f *fakeAttractions) Create(context.Context, *store.Attraction) error { return nil }
func (f *fakeAttractions) GetByID(context.Context, int64) (*store.Attraction, error) {
	return nil, store.ErrNotFound
}
func (f *fakeAttractions) GetAll(context.Context) ([]store.Attraction, error) {
	return f.attractions, f.err
}
func (f *fakeAttractions) AddPhotoURL(context.Context, int64, string) error    { return nil }
func (f *fakeAttractions) RemovePhotoURL(context.Context, int64, string) error { return nil }

type fakeLocations struct {
	fixes []store.LocationFix
	err   error
}

func (f *fakeLocations) UpsertFix(context.Context, *store.LocationFix) error { return nil }
func (f *fakeLocations) LatestFixes(context.Context) ([]store.LocationFix, error) {
	return f.fixes, f.err
}

type fakePushTokens struct {
	tokens map[int64][]string
}

func (f *fakePushTokens) AddOrUpdatePushToken(context.Context, int64, string) error { return nil }
func (f *fakePushTokens) RemovePushToken(context.Context, int64, string) error      { return nil }
func (f *fakePushTokens) GetTokensByUserIDs(ctx context.Context, userIDs []int64) (map[int64][]string, error) {
	return f.tokens, nil
}

func newTestNotifier(t *testing.T, attractions *fakeAttractions, locations *fakeLocations, threshold float64) (*Notifier, *fakePushSender) {
	t.Helper()

	codec, err := deeplink.NewCodec("test", 8)
	require.NoError(t, err)

	push := &fakePushSender{}
	storage := store.Storage{
		Attractions: attractions,
		Locations:   locations,
		PushTokens:  &fakePushTokens{tokens: map[int64][]string{7: {"ExponentPushToken[abc]"}}},
	}

	return NewNotifier(storage, push, codec, zap.NewNop().Sugar(), threshold), push
}

func TestCheckProximityWithinThreshold(t *testing.T) {
	attractions := []store.Attraction{
		{ID: 1, Name: "Old Bridge", Latitude: 0, Longitude: 0.01}, // ~1113 m from origin
	}

	nearby := CheckProximity(geo.Point{}, attractions, 2000)
	require.Len(t, nearby, 1)
	assert.Equal(t, int64(1), nearby[0].ID)

	nearby = CheckProximity(geo.Point{}, attractions, 500)
	assert.Empty(t, nearby)
}

func TestSweepSendsOneNotificationPerMatch(t *testing.T) {
	attractions := &fakeAttractions{attractions: []store.Attraction{
		{ID: 1, Name: "Old Bridge", Latitude: 0, Longitude: 0.01},
		{ID: 2, Name: "Far Castle", Latitude: 10, Longitude: 10},
	}}
	locations := &fakeLocations{fixes: []store.LocationFix{
		{UserID: 7, Latitude: 0, Longitude: 0},
	}}

	notifier, push := newTestNotifier(t, attractions, locations, 2000)
	notifier.Sweep(context.Background())

	require.Len(t, push.sent, 1)
	assert.Equal(t, "Attraction nearby", push.sent[0].Title)
	assert.Contains(t, push.sent[0].Body, "Old Bridge")
	assert.Equal(t, "1", push.sent[0].Data["attraction_id"])
	assert.Contains(t, push.sent[0].Data["screen"], "attractions/")
}

func TestSweepDoesNotRenotify(t *testing.T) {
	attractions := &fakeAttractions{attractions: []store.Attraction{
		{ID: 1, Name: "Old Bridge", Latitude: 0, Longitude: 0.01},
	}}
	locations := &fakeLocations{fixes: []store.LocationFix{
		{UserID: 7, Latitude: 0, Longitude: 0},
	}}

	notifier, push := newTestNotifier(t, attractions, locations, 2000)
	notifier.Sweep(context.Background())
	notifier.Sweep(context.Background())

	assert.Len(t, push.sent, 1)
}

func TestSweepRetriesAfterPushFailure(t *testing.T) {
	attractions := &fakeAttractions{attractions: []store.Attraction{
		{ID: 1, Name: "Old Bridge", Latitude: 0, Longitude: 0.01},
	}}
	locations := &fakeLocations{fixes: []store.LocationFix{
		{UserID: 7, Latitude: 0, Longitude: 0},
	}}

	notifier, push := newTestNotifier(t, attractions, locations, 2000)

	// Expo is down on the first sweep; the pair must not be consumed.
	push.err = errors.New("expo unavailable")
	notifier.Sweep(context.Background())
	assert.Empty(t, push.sent)

	push.err = nil
	notifier.Sweep(context.Background())
	require.Len(t, push.sent, 1)
	assert.Contains(t, push.sent[0].Body, "Old Bridge")
}

func TestSweepRetriesAfterTokenRegistered(t *testing.T) {
	attractions := &fakeAttractions{attractions: []store.Attraction{
		{ID: 1, Name: "Old Bridge", Latitude: 0, Longitude: 0.01},
	}}
	locations := &fakeLocations{fixes: []store.LocationFix{
		{UserID: 9, Latitude: 0, Longitude: 0},
	}}

	codec, err := deeplink.NewCodec("test", 8)
	require.NoError(t, err)

	push := &fakePushSender{}
	tokens := &fakePushTokens{tokens: map[int64][]string{}}
	storage := store.Storage{
		Attractions: attractions,
		Locations:   locations,
		PushTokens:  tokens,
	}
	notifier := NewNotifier(storage, push, codec, zap.NewNop().Sugar(), 2000)

	// No token yet: nothing goes out and the match is not consumed.
	notifier.Sweep(context.Background())
	assert.Empty(t, push.sent)

	tokens.tokens[9] = []string{"ExponentPushToken[xyz]"}
	notifier.Sweep(context.Background())
	assert.Len(t, push.sent, 1)
}

func TestSweepSkipsCycleWhenAttractionsFetchFails(t *testing.T) {
	attractions := &fakeAttractions{err: errors.New("connection refused")}
	locations := &fakeLocations{fixes: []store.LocationFix{
		{UserID: 7, Latitude: 0, Longitude: 0},
	}}

	notifier, push := newTestNotifier(t, attractions, locations, 2000)
	notifier.Sweep(context.Background())

	assert.Empty(t, push.sent)
}

func TestSweepNoFixesNoNotifications(t *testing.T) {
	attractions := &fakeAttractions{attractions: []store.Attraction{
		{ID: 1, Name: "Old Bridge", Latitude: 0, Longitude: 0.01},
	}}
	locations := &fakeLocations{}

	notifier, push := newTestNotifier(t, attractions, locations, 2000)
	notifier.Sweep(context.Background())

	assert.Empty(t, push.sent)
}
