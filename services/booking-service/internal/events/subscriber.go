package events

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	commonevents "github.com/farhanms/playfield/common/events"
	"github.com/farhanms/playfield/common/logger"
	"github.com/farhanms/playfield/common/natsjetstream"
	"github.com/farhanms/playfield/services/booking-service/internal/cache"
)

// EventSubscriber keeps the availability cache coherent: every booking or
// ground change event drops the affected ground's cached window, so the
// next availability read recomputes from the store. Subscription handles
// are retained and stopped on teardown.
type EventSubscriber struct {
	natsClient        *natsjetstream.Client
	subscriber        *natsjetstream.Subscriber
	availabilityCache *cache.AvailabilityCache
	logger            *logger.Logger

	consumeContexts []jetstream.ConsumeContext
}

func NewEventSubscriber(
	natsClient *natsjetstream.Client,
	availabilityCache *cache.AvailabilityCache,
	logger *logger.Logger,
) *EventSubscriber {
	return &EventSubscriber{
		natsClient:        natsClient,
		subscriber:        natsjetstream.NewSubscriber(natsClient),
		availabilityCache: availabilityCache,
		logger:            logger.With("component", "event-subscriber"),
	}
}

func (s *EventSubscriber) Start(ctx context.Context) error {
	s.logger.Info("Starting event subscriptions")

	if err := s.subscribeToBookingEvents(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to booking events: %w", err)
	}

	if err := s.subscribeToGroundEvents(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to ground events: %w", err)
	}

	s.logger.Info("All event subscriptions started")
	return nil
}

// Stop releases all consumer handles.
func (s *EventSubscriber) Stop() error {
	for _, cc := range s.consumeContexts {
		cc.Stop()
	}
	s.consumeContexts = nil
	return nil
}

func (s *EventSubscriber) subscribeToBookingEvents(ctx context.Context) error {
	cfg := natsjetstream.ConsumerConfig{
		StreamName:   commonevents.BookingEventsStream,
		ConsumerName: "booking-service-booking-consumer",
		Durable:      "booking-service-booking-consumer",
		AckPolicy:    "explicit",
		AckWait:      30 * time.Second,
		MaxDeliver:   5,
	}

	s.logger.Info("Subscribing to booking events",
		"stream", cfg.StreamName,
		"consumer", cfg.ConsumerName,
	)

	consumeCtx, err := s.subscriber.Subscribe(ctx, cfg, s.handleBookingEvent)
	if err != nil {
		return err
	}

	s.consumeContexts = append(s.consumeContexts, consumeCtx)
	return nil
}

func (s *EventSubscriber) subscribeToGroundEvents(ctx context.Context) error {
	cfg := natsjetstream.ConsumerConfig{
		StreamName:   commonevents.GroundEventsStream,
		ConsumerName: "booking-service-ground-consumer",
		Durable:      "booking-service-ground-consumer",
		AckPolicy:    "explicit",
		AckWait:      30 * time.Second,
		MaxDeliver:   5,
	}

	s.logger.Info("Subscribing to ground events",
		"stream", cfg.StreamName,
		"consumer", cfg.ConsumerName,
	)

	consumeCtx, err := s.subscriber.Subscribe(ctx, cfg, s.handleGroundEvent)
	if err != nil {
		return err
	}

	s.consumeContexts = append(s.consumeContexts, consumeCtx)
	return nil
}

func (s *EventSubscriber) handleBookingEvent(ctx context.Context, msg jetstream.Msg) error {
	var event commonevents.BookingEvent
	if err := natsjetstream.UnmarshalJSON(msg, &event); err != nil {
		s.logger.Error("Failed to unmarshal booking event", "error", err)
		return err
	}

	if event.GroundID == "" {
		return nil
	}

	if err := s.availabilityCache.Invalidate(ctx, event.GroundID); err != nil {
		s.logger.Warn("Failed to invalidate availability cache",
			"ground_id", event.GroundID,
			"error", err,
		)
		return err
	}

	s.logger.Debug("Availability cache invalidated",
		"ground_id", event.GroundID,
		"subject", msg.Subject(),
	)
	return nil
}

func (s *EventSubscriber) handleGroundEvent(ctx context.Context, msg jetstream.Msg) error {
	var event commonevents.GroundEvent
	if err := natsjetstream.UnmarshalJSON(msg, &event); err != nil {
		s.logger.Error("Failed to unmarshal ground event", "error", err)
		return err
	}

	if event.GroundID == "" {
		return nil
	}

	if err := s.availabilityCache.Invalidate(ctx, event.GroundID); err != nil {
		s.logger.Warn("Failed to invalidate availability cache",
			"ground_id", event.GroundID,
			"error", err,
		)
		return err
	}

	return nil
}
