package scheduler

import (
	"context"
	"log"
	"time"
)

type Scheduler struct {
	bookingScheduler *BookingScheduler
	sweepHourUTC     int
	stopChan         chan struct{}
}

func NewScheduler(
	bookingScheduler *BookingScheduler,
	sweepHourUTC int,
) *Scheduler {
	return &Scheduler{
		bookingScheduler: bookingScheduler,
		sweepHourUTC:     sweepHourUTC,
		stopChan:         make(chan struct{}),
	}
}

func (s *Scheduler) Start() {
	now := time.Now().UTC()
	nextSweep := time.Date(now.Year(), now.Month(), now.Day(), s.sweepHourUTC, 0, 0, 0, time.UTC)
	if !nextSweep.After(now) {
		nextSweep = nextSweep.AddDate(0, 0, 1)
	}
	durationUntilSweep := nextSweep.Sub(now)

	log.Printf("Next stale booking sweep scheduled at: %s (in %v)",
		nextSweep.Format("2006-01-02 15:04:05 MST"), durationUntilSweep)

	timer := time.NewTimer(durationUntilSweep)

	for {
		select {
		case <-timer.C:
			now := time.Now()
			ctx := context.Background()

			if err := s.bookingScheduler.ExpireStaleBookings(ctx, now); err != nil {
				log.Printf("ERROR: Failed to sweep stale bookings: %v", err)
			}

			timer.Reset(24 * time.Hour)

		case <-s.stopChan:
			timer.Stop()
			log.Println("Stale booking sweep scheduler stopped")
			return
		}
	}
}

func (s *Scheduler) Stop() {
	close(s.stopChan)
}
