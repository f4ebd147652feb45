package models

import (
	"fmt"
	"strings"
	"time"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusRejected  BookingStatus = "rejected"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusCash    PaymentStatus = "cash"
)

// BookingDateLayout is the calendar-date format used on booking records
// and slot claims.
const BookingDateLayout = "2006-01-02"

type Booking struct {
	BookingId       string        `dynamodbav:"booking_id"`
	GroundId        string        `dynamodbav:"ground_id"`
	OwnerId         string        `dynamodbav:"owner_id"`
	UserId          string        `dynamodbav:"user_id"`
	Date            string        `dynamodbav:"date"`
	TimeSlot        string        `dynamodbav:"time_slot"`
	DurationHours   int           `dynamodbav:"duration_hours"`
	TotalAmount     int64         `dynamodbav:"total_amount"`
	Status          BookingStatus `dynamodbav:"status"`
	PaymentStatus   PaymentStatus `dynamodbav:"payment_status"`
	RejectionReason string        `dynamodbav:"rejection_reason"`
	CreatedAt       time.Time     `dynamodbav:"created_at"`
	UpdatedAt       time.Time     `dynamodbav:"updated_at"`

	PK string `dynamodbav:"PK"`
	SK string `dynamodbav:"SK"`

	GSI1PK string `dynamodbav:"GSI1PK"`
	GSI1SK string `dynamodbav:"GSI1SK"`

	GSI2PK string `dynamodbav:"GSI2PK"`
	GSI2SK string `dynamodbav:"GSI2SK"`
}

// IsActive reports whether the booking still occupies its slot.
func (b *Booking) IsActive() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}

// Key handlers
func BookingPK(bookingID string) string {
	return fmt.Sprintf("BOOKING#%s", bookingID)
}

func BookingGroundGSI1PK(groundID string) string {
	return fmt.Sprintf("GROUND#%s", groundID)
}

func BookingDateGSI1SK(date, timeSlot string) string {
	return fmt.Sprintf("DATE#%s#%s", date, timeSlot)
}

func BookingUserGSI2PK(userID string) string {
	return fmt.Sprintf("USER#%s", userID)
}

func BookingCreatedGSI2SK(createdAt time.Time) string {
	return fmt.Sprintf("CREATED#%s", createdAt.UTC().Format(time.RFC3339))
}

func ExtractBookingID(pk string) (string, error) {
	if !strings.HasPrefix(pk, "BOOKING#") {
		return "", fmt.Errorf("invalid booking PK format: %s", pk)
	}
	return strings.TrimPrefix(pk, "BOOKING#"), nil
}
