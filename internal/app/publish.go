package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Publisher sends committed changes to the event bus.
type Publisher interface {
	Publish(ctx context.Context, event any) error
}

// Publish hands event to p. Failures are logged and swallowed: the write has
// already committed and the user sees its outcome either way.
func Publish(ctx context.Context, p Publisher, event any) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, event); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("event", fmt.Sprintf("%T", event)).Msg("publish event")
	}
}
