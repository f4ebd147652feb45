package models

import (
	"fmt"
	"time"
)

type Review struct {
	ReviewId  string    `dynamodbav:"review_id"`
	GroundId  string    `dynamodbav:"ground_id"`
	UserId    string    `dynamodbav:"user_id"`
	Rating    int       `dynamodbav:"rating"`
	Comment   string    `dynamodbav:"comment"`
	CreatedAt time.Time `dynamodbav:"created_at"`

	PK string `dynamodbav:"PK"`
	SK string `dynamodbav:"SK"`
}

func ReviewPK(groundID string) string {
	return fmt.Sprintf("GROUND#%s", groundID)
}

func ReviewSK(reviewID string) string {
	return fmt.Sprintf("REVIEW#%s", reviewID)
}
