package models

import (
	"fmt"
	"time"
)

// OwnerPaymentMethod is a payout destination an owner shows to players
// for transfer or cash payments.
type OwnerPaymentMethod struct {
	MethodId      string    `dynamodbav:"method_id"`
	OwnerId       string    `dynamodbav:"owner_id"`
	Label         string    `dynamodbav:"label"`
	AccountName   string    `dynamodbav:"account_name"`
	AccountNumber string    `dynamodbav:"account_number"`
	QRImageURL    string    `dynamodbav:"qr_image_url"`
	CreatedAt     time.Time `dynamodbav:"created_at"`

	PK string `dynamodbav:"PK"`
	SK string `dynamodbav:"SK"`
}

func PaymentMethodPK(ownerID string) string {
	return fmt.Sprintf("USER#%s", ownerID)
}

func PaymentMethodSK(methodID string) string {
	return fmt.Sprintf("PAYMETHOD#%s", methodID)
}
