package models

import (
	"fmt"
	"strings"
	"time"
)

type GroundStatus string

const (
	GroundStatusOpen   GroundStatus = "open"
	GroundStatusClosed GroundStatus = "closed"
)

// WeeklyTemplate maps a weekday name ("Monday") to the ordered list of
// bookable slot labels for that day. Slot labels are opaque strings and
// are compared by exact match only.
type WeeklyTemplate map[string][]string

type Ground struct {
	GroundId       string         `dynamodbav:"ground_id"`
	Name           string         `dynamodbav:"name"`
	Address        string         `dynamodbav:"address"`
	PricePerHour   int64          `dynamodbav:"price_per_hour"`
	Facilities     []string       `dynamodbav:"facilities"`
	WeeklyTemplate WeeklyTemplate `dynamodbav:"weekly_template"`
	Status         GroundStatus   `dynamodbav:"status"`
	OwnerId        string         `dynamodbav:"owner_id"`
	ImageURLs      []string       `dynamodbav:"image_urls"`
	RatingSum      int64          `dynamodbav:"rating_sum"`
	RatingCount    int64          `dynamodbav:"rating_count"`
	CreatedAt      time.Time      `dynamodbav:"created_at"`
	UpdatedAt      time.Time      `dynamodbav:"updated_at"`

	PK string `dynamodbav:"PK"`
	SK string `dynamodbav:"SK"`

	GSI1PK string `dynamodbav:"GSI1PK"`
	GSI1SK string `dynamodbav:"GSI1SK"`
}

// Key handlers
func GroundPK(groundID string) string {
	return fmt.Sprintf("GROUND#%s", groundID)
}

func MetaSK() string {
	return "META"
}

func OwnerGSI1PK(ownerID string) string {
	return fmt.Sprintf("OWNER#%s", ownerID)
}

func GroundGSI1SK(groundID string) string {
	return fmt.Sprintf("GROUND#%s", groundID)
}

func ExtractGroundID(pk string) (string, error) {
	if !strings.HasPrefix(pk, "GROUND#") {
		return "", fmt.Errorf("invalid ground PK format: %s", pk)
	}
	return strings.TrimPrefix(pk, "GROUND#"), nil
}

// AverageRating returns the aggregated rating, 0 when unreviewed.
func (g *Ground) AverageRating() float64 {
	if g.RatingCount == 0 {
		return 0
	}
	return float64(g.RatingSum) / float64(g.RatingCount)
}
