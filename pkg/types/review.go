package types

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID          string    `db:"id" json:"id"`
	ReviewerID  string    `db:"reviewer_id" json:"reviewerId"`
	NonprofitID string    `db:"nonprofit_id" json:"nonprofitId"`
	Rating      int       `db:"rating" json:"rating"`
	Comment     *string   `db:"comment" json:"comment,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// ClampRating forces a rating into [MinRating, MaxRating].
func ClampRating(rating int) int {
	if rating < MinRating {
		return MinRating
	}
	if rating > MaxRating {
		return MaxRating
	}
	return rating
}
