package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/farhanms/playfield/services/booking-service/internal/service"
)

type BookingScheduler struct {
	bookingService service.BookingService
}

func NewBookingScheduler(bookingService service.BookingService) *BookingScheduler {
	return &BookingScheduler{
		bookingService: bookingService,
	}
}

func (bs *BookingScheduler) ExpireStaleBookings(ctx context.Context, now time.Time) error {
	log.Println("Sweeping stale pending bookings...")

	expired, err := bs.bookingService.ExpireStaleBookings(ctx, now)
	if err != nil {
		log.Printf("Failed to sweep stale bookings : %v", err)
		return err
	}

	log.Printf("Expired %d stale bookings", expired)

	return nil
}
