package types

import "time"

type UserType string

const (
	UserTypeVolunteer      UserType = "volunteer"
	UserTypeNonprofitAdmin UserType = "nonprofit_admin"
)

type User struct {
	ID       string  `db:"id" json:"id"`
	Email    *string `db:"email" json:"email,omitempty"`
	FullName *string `db:"full_name" json:"fullName,omitempty"`
	Phone    *string `db:"phone" json:"phone,omitempty"`
	UserType *string `db:"user_type" json:"userType,omitempty"`

	Location `json:"location"`

	PreferredCategories []string  `db:"preferred_categories" json:"preferredCategories"`
	FavoriteNonprofits  []string  `db:"favorite_nonprofits" json:"favoriteNonprofits"`
	TotalDonatedCents   int64     `db:"total_donated_cents" json:"totalDonatedCents"`
	TotalVolunteerHours float64   `db:"total_volunteer_hours" json:"totalVolunteerHours"`
	NonprofitID         *string   `db:"nonprofit_id" json:"nonprofitId,omitempty"`
	ProfileCompleted    bool      `db:"profile_completed" json:"profileCompleted"`
	CreatedAt           time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt           time.Time `db:"updated_at" json:"updatedAt"`
}

func (u *User) TotalDonated() float64 {
	return float64(u.TotalDonatedCents) / 100
}

func (u *User) IsFavorite(nonprofitID string) bool {
	for _, id := range u.FavoriteNonprofits {
		if id == nonprofitID {
			return true
		}
	}
	return false
}

// UserUpdate carries the profile fields a user may change about themselves.
// Nil fields are left untouched.
type UserUpdate struct {
	FullName            *string   `json:"fullName"`
	Phone               *string   `json:"phone"`
	Location            *Location `json:"location"`
	PreferredCategories []string  `json:"preferredCategories"`
	FavoriteNonprofits  []string  `json:"favoriteNonprofits"`
	UserType            *UserType `json:"userType"`
	NonprofitID         *string   `json:"nonprofitId"`
	ProfileCompleted    *bool     `json:"profileCompleted"`
}
