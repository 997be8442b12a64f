package proximity

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tourister/internal/deeplink"
	"tourister/internal/geo"
	"tourister/internal/notifications"
	"tourister/internal/store"

	"go.uber.org/zap"
)

// DefaultThresholdMeters is how close a user has to be to an attraction
// before a notification is sent.
const DefaultThresholdMeters = 2000.0

// Notifier periodically sweeps the latest device location of every user
// against the full attraction set and pushes a notification for each
// attraction within the threshold distance.
type Notifier struct {
	store     store.Storage
	push      notifications.PushSender
	codec     *deeplink.Codec
	logger    *zap.SugaredLogger
	threshold float64

	mu       sync.Mutex
	notified map[string]struct{}
}

func NewNotifier(storage store.Storage, push notifications.PushSender, codec *deeplink.Codec, logger *zap.SugaredLogger, thresholdMeters float64) *Notifier {
	if thresholdMeters <= 0 {
		thresholdMeters = DefaultThresholdMeters
	}
	return &Notifier{
		store:     storage,
		push:      push,
		codec:     codec,
		logger:    logger,
		threshold: thresholdMeters,
		notified:  make(map[string]struct{}),
	}
}

// CheckProximity returns the attractions within thresholdMeters of the
// current location, in pass-through order.
func CheckProximity(current geo.Point, attractions []store.Attraction, thresholdMeters float64) []store.Attraction {
	var nearby []store.Attraction
	for _, a := range attractions {
		point := geo.Point{Latitude: a.Latitude, Longitude: a.Longitude}
		if geo.DistanceMeters(current, point) <= thresholdMeters {
			nearby = append(nearby, a)
		}
	}
	return nearby
}

// Run sweeps once immediately and then on every tick until the context
// is cancelled.
func (n *Notifier) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	n.Sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			n.logger.Infow("proximity notifier stopped")
			return
		case <-ticker.C:
			n.Sweep(ctx)
		}
	}
}

// Sweep runs one polling cycle. Fetch failures skip the cycle; the next
// tick retries. A user with no recent location fix is never matched.
func (n *Notifier) Sweep(ctx context.Context) {
	fixes, err := n.store.Locations.LatestFixes(ctx)
	if err != nil {
		n.logger.Warnw("skipping proximity sweep, cannot load location fixes", "error", err)
		return
	}
	if len(fixes) == 0 {
		return
	}

	attractions, err := n.store.Attractions.GetAll(ctx)
	if err != nil {
		n.logger.Warnw("skipping proximity sweep, cannot load attractions", "error", err)
		return
	}

	for _, fix := range fixes {
		current := geo.Point{Latitude: fix.Latitude, Longitude: fix.Longitude}
		nearby := CheckProximity(current, attractions, n.threshold)

		var fresh []store.Attraction
		for _, a := range nearby {
			if !n.alreadyNotified(fix.UserID, a.ID) {
				fresh = append(fresh, a)
			}
		}
		if len(fresh) == 0 {
			continue
		}

		tokensMap, err := n.store.PushTokens.GetTokensByUserIDs(ctx, []int64{fix.UserID})
		if err != nil {
			n.logger.Warnw("cannot load push tokens", "user_id", fix.UserID, "error", err)
			continue
		}
		tokens := tokensMap[fix.UserID]
		if len(tokens) == 0 {
			continue
		}

		for _, a := range fresh {
			code, err := n.codec.Encode(a.ID)
			if err != nil {
				n.logger.Warnw("cannot encode deep link", "attraction_id", a.ID, "error", err)
				continue
			}
			if err := notifications.SendNearbyAttraction(ctx, n.push, tokens, &a, code); err != nil {
				n.logger.Warnw("failed to push nearby-attraction notification",
					"user_id", fix.UserID, "attraction_id", a.ID, "error", err)
				continue
			}
			// Only a delivered push consumes the pair; a transient
			// failure or a missing token retries on the next sweep.
			n.markNotified(fix.UserID, a.ID)
			n.logger.Infow("nearby attraction notification sent",
				"user_id", fix.UserID, "attraction", a.Name)
		}
	}
}

// The notified set lives in memory only; a restart re-notifies, which
// beats pinging the user on every sweep.

func (n *Notifier) alreadyNotified(userID, attractionID int64) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	_, ok := n.notified[notifiedKey(userID, attractionID)]
	return ok
}

func (n *Notifier) markNotified(userID, attractionID int64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.notified[notifiedKey(userID, attractionID)] = struct{}{}
}

func notifiedKey(userID, attractionID int64) string {
	return fmt.Sprintf("%d:%d", userID, attractionID)
}
