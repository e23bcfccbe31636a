package events

import (
	"context"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/rs/zerolog"

	"fyyur/internal/metrics"
)

const topicPrefix = "fyyur."

// Bus publishes events and runs the router that delivers them to handlers.
type Bus struct {
	pubSub   *gochannel.GoChannel
	eventBus *cqrs.EventBus
	router   *message.Router
}

// NewBus wires the event bus, the router and the activity handler.
// Extra handlers are registered alongside the activity handler.
func NewBus(logger zerolog.Logger, m *metrics.Metrics, extra ...cqrs.EventHandler) (*Bus, error) {
	wmLogger := NewLogger(logger)

	pubSub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64}, wmLogger)

	marshaler := cqrs.JSONMarshaler{GenerateName: cqrs.StructName}

	eventBus, err := cqrs.NewEventBusWithConfig(pubSub, cqrs.EventBusConfig{
		GeneratePublishTopic: func(params cqrs.GenerateEventPublishTopicParams) (string, error) {
			return topicPrefix + params.EventName, nil
		},
		Marshaler: marshaler,
		Logger:    wmLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating event bus: %w", err)
	}

	router, err := message.NewRouter(message.RouterConfig{}, wmLogger)
	if err != nil {
		return nil, fmt.Errorf("creating router: %w", err)
	}

	processor, err := cqrs.NewEventProcessorWithConfig(router, cqrs.EventProcessorConfig{
		GenerateSubscribeTopic: func(params cqrs.EventProcessorGenerateSubscribeTopicParams) (string, error) {
			return topicPrefix + params.EventName, nil
		},
		SubscriberConstructor: func(cqrs.EventProcessorSubscriberConstructorParams) (message.Subscriber, error) {
			return pubSub, nil
		},
		Marshaler: marshaler,
		Logger:    wmLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating event processor: %w", err)
	}

	handlers := append(NewActivity(logger, m).Handlers(), extra...)
	if err := processor.AddHandlers(handlers...); err != nil {
		return nil, fmt.Errorf("adding handlers: %w", err)
	}

	return &Bus{pubSub: pubSub, eventBus: eventBus, router: router}, nil
}

// Publish sends event to every handler subscribed to its type.
func (b *Bus) Publish(ctx context.Context, event any) error {
	return b.eventBus.Publish(ctx, event)
}

// Run delivers events until ctx is done or the bus is closed.
func (b *Bus) Run(ctx context.Context) error {
	return b.router.Run(ctx)
}

// Running is closed once handlers are subscribed.
func (b *Bus) Running() chan struct{} {
	return b.router.Running()
}

// Close stops the router and the channel.
func (b *Bus) Close() error {
	return errors.Join(b.router.Close(), b.pubSub.Close())
}

