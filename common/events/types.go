package events

const (
	// Streams
	BookingEventsStream = "BOOKING_EVENTS"
	GroundEventsStream  = "GROUND_EVENTS"

	// Events
	BookingCreated   = "events.booking.created"
	BookingConfirmed = "events.booking.confirmed"
	BookingRejected  = "events.booking.rejected"
	BookingCancelled = "events.booking.cancelled"
	PaymentRecorded  = "events.booking.paymentRecorded"

	GroundUpdated = "events.ground.updated"
	GroundDeleted = "events.ground.deleted"

	// Event Wildcards
	BookingEventsWildcard = "events.booking.*"
	GroundEventsWildcard  = "events.ground.*"
)

type BookingEvent struct {
	BookingID string `json:"booking_id"`
	GroundID  string `json:"ground_id"`
	UserID    string `json:"user_id"`
	Date      string `json:"date"`
	TimeSlot  string `json:"time_slot"`
	Status    string `json:"status"`
	TimeStamp int64  `json:"timestamp"`
}

type PaymentEvent struct {
	PaymentID     string `json:"payment_id"`
	BookingID     string `json:"booking_id"`
	GroundID      string `json:"ground_id"`
	UserID        string `json:"user_id"`
	Method        string `json:"method"`
	Amount        int64  `json:"amount"`
	PaymentStatus string `json:"payment_status"`
	TimeStamp     int64  `json:"timestamp"`
}

type GroundEvent struct {
	GroundID  string `json:"ground_id"`
	OwnerID   string `json:"owner_id"`
	Status    string `json:"status"`
	TimeStamp int64  `json:"timestamp"`
}
