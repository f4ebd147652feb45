package publisher

import (
	"context"
	"fmt"
	"time"

	commonevents "github.com/farhanms/playfield/common/events"
	"github.com/farhanms/playfield/common/logger"
	"github.com/farhanms/playfield/common/models"
	"github.com/farhanms/playfield/common/natsjetstream"
)

type EventPublisher struct {
	publisher *natsjetstream.Publisher
	logger    *logger.Logger
}

func NewEventPublisher(client *natsjetstream.Client, logger *logger.Logger) *EventPublisher {
	return &EventPublisher{
		publisher: natsjetstream.NewPublisher(client),
		logger:    logger,
	}
}

func (p *EventPublisher) PublishBookingCreated(ctx context.Context, booking *models.Booking) error {
	return p.publishBookingEvent(ctx, commonevents.BookingCreated, booking)
}

func (p *EventPublisher) PublishBookingConfirmed(ctx context.Context, booking *models.Booking) error {
	return p.publishBookingEvent(ctx, commonevents.BookingConfirmed, booking)
}

func (p *EventPublisher) PublishBookingRejected(ctx context.Context, booking *models.Booking) error {
	return p.publishBookingEvent(ctx, commonevents.BookingRejected, booking)
}

func (p *EventPublisher) PublishBookingCancelled(ctx context.Context, booking *models.Booking) error {
	return p.publishBookingEvent(ctx, commonevents.BookingCancelled, booking)
}

func (p *EventPublisher) publishBookingEvent(ctx context.Context, subject string, booking *models.Booking) error {
	event := &commonevents.BookingEvent{
		BookingID: booking.BookingId,
		GroundID:  booking.GroundId,
		UserID:    booking.UserId,
		Date:      booking.Date,
		TimeSlot:  booking.TimeSlot,
		Status:    string(booking.Status),
		TimeStamp: time.Now().Unix(),
	}

	if err := p.publisher.PublishJSON(ctx, subject, event); err != nil {
		p.logger.Error(fmt.Sprintf("Failed to publish booking event %s: %v", subject, err))
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Info(fmt.Sprintf("Published %s for booking: %s", subject, booking.BookingId))
	return nil
}

func (p *EventPublisher) PublishPaymentRecorded(ctx context.Context, payment *models.Payment) error {
	event := &commonevents.PaymentEvent{
		PaymentID:     payment.PaymentId,
		BookingID:     payment.BookingId,
		GroundID:      payment.GroundId,
		UserID:        payment.UserId,
		Method:        string(payment.Method),
		Amount:        payment.Amount,
		PaymentStatus: string(payment.Status),
		TimeStamp:     time.Now().Unix(),
	}

	if err := p.publisher.PublishJSON(ctx, commonevents.PaymentRecorded, event); err != nil {
		p.logger.Error(fmt.Sprintf("Failed to publish payment recorded event: %v", err))
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Info(fmt.Sprintf("Published payment recorded event for booking: %s", payment.BookingId))
	return nil
}

func (p *EventPublisher) PublishGroundUpdated(ctx context.Context, ground *models.Ground) error {
	return p.publishGroundEvent(ctx, commonevents.GroundUpdated, ground)
}

func (p *EventPublisher) PublishGroundDeleted(ctx context.Context, ground *models.Ground) error {
	return p.publishGroundEvent(ctx, commonevents.GroundDeleted, ground)
}

func (p *EventPublisher) publishGroundEvent(ctx context.Context, subject string, ground *models.Ground) error {
	event := &commonevents.GroundEvent{
		GroundID:  ground.GroundId,
		OwnerID:   ground.OwnerId,
		Status:    string(ground.Status),
		TimeStamp: time.Now().Unix(),
	}

	if err := p.publisher.PublishJSON(ctx, subject, event); err != nil {
		p.logger.Error(fmt.Sprintf("Failed to publish ground event %s: %v", subject, err))
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Info(fmt.Sprintf("Published %s for ground: %s", subject, ground.GroundId))
	return nil
}
