package entities

import (
	"time"
)

// Review is customer feedback on a DJ profile. Immutable once created;
// it contributes to the profile's AvgRating aggregate.
type Review struct {
	ID           string    `json:"id" db:"id"`
	DJProfileID  string    `json:"dj_profile_id" db:"dj_profile_id"`
	CustomerID   string    `json:"customer_id" db:"customer_id"`
	CustomerName string    `json:"customer_name" db:"customer_name"`
	Rating       int       `json:"rating" db:"rating"`
	Comment      string    `json:"comment" db:"comment"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
