package types

import "time"

type Opportunity struct {
	ID             string   `db:"id" json:"id"`
	NonprofitID    string   `db:"nonprofit_id" json:"nonprofitId"`
	Title          string   `db:"title" json:"title"`
	Description    string   `db:"description" json:"description"`
	Category       Category `db:"category" json:"category"`
	TimeCommitment *string  `db:"time_commitment" json:"timeCommitment,omitempty"`
	SkillsRequired []string `db:"skills_required" json:"skillsRequired"`

	Location `json:"location"`

	VolunteersNeeded   int        `db:"volunteers_needed" json:"volunteersNeeded"`
	VolunteersSignedUp int        `db:"volunteers_signed_up" json:"volunteersSignedUp"`
	IsActive           bool       `db:"is_active" json:"isActive"`
	StartDate          *time.Time `db:"start_date" json:"startDate,omitempty"`
	EndDate            *time.Time `db:"end_date" json:"endDate,omitempty"`
	CreatedAt          time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time  `db:"updated_at" json:"updatedAt"`
}

// SpotsAvailable never goes negative, even when more volunteers signed up
// than were needed.
func (o *Opportunity) SpotsAvailable() int {
	spots := o.VolunteersNeeded - o.VolunteersSignedUp
	if spots < 0 {
		return 0
	}
	return spots
}

type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

type VolunteerApplication struct {
	ID                 string            `db:"id" json:"id"`
	VolunteerID        string            `db:"volunteer_id" json:"volunteerId"`
	OpportunityID      string            `db:"opportunity_id" json:"opportunityId"`
	NonprofitID        string            `db:"nonprofit_id" json:"nonprofitId"`
	ApplicationMessage *string           `db:"application_message" json:"applicationMessage,omitempty"`
	RelevantSkills     []string          `db:"relevant_skills" json:"relevantSkills"`
	Availability       *string           `db:"availability" json:"availability,omitempty"`
	ContactPhone       *string           `db:"contact_phone" json:"contactPhone,omitempty"`
	Status             ApplicationStatus `db:"status" json:"status"`
	CreatedAt          time.Time         `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time         `db:"updated_at" json:"updatedAt"`
}
