package models

import (
	"fmt"
	"time"
)

type PaymentMethod string

const (
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodCash     PaymentMethod = "cash"
)

type Payment struct {
	PaymentId      string        `dynamodbav:"payment_id"`
	BookingId      string        `dynamodbav:"booking_id"`
	GroundId       string        `dynamodbav:"ground_id"`
	OwnerId        string        `dynamodbav:"owner_id"`
	UserId         string        `dynamodbav:"user_id"`
	Amount         int64         `dynamodbav:"amount"`
	Method         PaymentMethod `dynamodbav:"method"`
	TransactionRef string        `dynamodbav:"transaction_ref"`
	ProofImageURL  string        `dynamodbav:"proof_image_url"`
	Status         PaymentStatus `dynamodbav:"status"`
	CreatedAt      time.Time     `dynamodbav:"created_at"`
	UpdatedAt      time.Time     `dynamodbav:"updated_at"`

	PK string `dynamodbav:"PK"`
	SK string `dynamodbav:"SK"`
}

// PaymentCompositeID builds the deterministic payment identifier. The same
// (ground, date, slot, payer) combination always maps to the same id, so a
// repeated payment attempt overwrites the previous record.
func PaymentCompositeID(groundID, date, timeSlot, userID string) string {
	return fmt.Sprintf("%s#%s#%s#%s", groundID, date, timeSlot, userID)
}

func PaymentPK(paymentID string) string {
	return fmt.Sprintf("PAYMENT#%s", paymentID)
}
