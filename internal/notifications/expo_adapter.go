package notifications

import (
	"context"
	"errors"

	"github.com/9ssi7/exponent"
)

// ExpoAdapter satisfies PushSender with a real Expo client. The proximity
// notifier talks to this in production and to a fake in tests.
type ExpoAdapter struct {
	client *exponent.Client
}

func NewExpoAdapter(c *exponent.Client) *ExpoAdapter {
	return &ExpoAdapter{client: c}
}

func (a *ExpoAdapter) Publish(ctx context.Context, msgs []*exponent.Message) ([]*exponent.MessageResponse, error) {
	if len(msgs) == 0 {
		return nil, errors.New("no messages to publish")
	}
	return a.client.Publish(ctx, msgs)
}

func (a *ExpoAdapter) PublishSingle(ctx context.Context, msg *exponent.Message) ([]*exponent.MessageResponse, error) {
	if msg == nil {
		return nil, errors.New("nil message")
	}
	return a.client.PublishSingle(ctx, msg)
}
