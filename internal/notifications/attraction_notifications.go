package notifications

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"tourister/internal/store"

	"github.com/9ssi7/exponent"
)

// SendNearbyAttraction - notify a user that a stored attraction is within
// walking distance. The message carries a deep link back into the app so
// tapping it opens the attraction detail screen.
func SendNearbyAttraction(ctx context.Context, push PushSender, tokens []string, attraction *store.Attraction, code string) error {
	tokens = dedupe(tokens)
	if len(tokens) == 0 {
		return errors.New("no push tokens")
	}

	msgs := make([]*exponent.Message, 0, len(tokens))
	title := "Attraction nearby"
	body := fmt.Sprintf("%s is close to your location", attraction.Name)
	screen := fmt.Sprintf("attractions/%s", code)
	for _, t := range tokens {
		token := exponent.Token(t)
		msg := &exponent.Message{
			To:    []*exponent.Token{&token},
			Title: title,
			Body:  body,
			Data: map[string]string{
				"type":          "nearby_attraction",
				"attraction_id": strconv.FormatInt(attraction.ID, 10),
				"screen":        screen,
			},
		}
		msgs = append(msgs, msg)
	}
	_, err := push.Publish(ctx, msgs)
	if err != nil {
		return err
	}
	return nil
}
