package models

import (
	"fmt"
	"time"
)

// SlotClaim is a reservation marker for a (ground, date, slot) triple. It
// is written with a conditional put alongside the booking, so two players
// racing for the same freshly-freed slot cannot both win.
type SlotClaim struct {
	GroundId  string    `dynamodbav:"ground_id"`
	Date      string    `dynamodbav:"date"`
	TimeSlot  string    `dynamodbav:"time_slot"`
	BookingId string    `dynamodbav:"booking_id"`
	CreatedAt time.Time `dynamodbav:"created_at"`

	PK string `dynamodbav:"PK"`
	SK string `dynamodbav:"SK"`
}

func SlotClaimPK(groundID string) string {
	return fmt.Sprintf("GROUND#%s", groundID)
}

func SlotClaimSK(date, timeSlot string) string {
	return fmt.Sprintf("SLOT#%s#%s", date, timeSlot)
}
