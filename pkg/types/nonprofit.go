package types

import "time"

type Nonprofit struct {
	ID               string   `db:"id" json:"id"`
	Name             string   `db:"name" json:"name"`
	Category         Category `db:"category" json:"category"`
	Description      string   `db:"description" json:"description"`
	MissionStatement *string  `db:"mission_statement" json:"missionStatement,omitempty"`
	Website          *string  `db:"website" json:"website,omitempty"`
	ContactEmail     *string  `db:"contact_email" json:"contactEmail,omitempty"`
	EIN              *string  `db:"ein" json:"ein,omitempty"`
	AdminUserID      *string  `db:"admin_user_id" json:"adminUserId,omitempty"`

	Location `json:"location"`

	TotalDonationsReceivedCents int64     `db:"total_donations_received_cents" json:"totalDonationsReceivedCents"`
	VolunteersCount             int       `db:"volunteers_count" json:"volunteersCount"`
	CreatedAt                   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt                   time.Time `db:"updated_at" json:"updatedAt"`
}
