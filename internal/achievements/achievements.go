package achievements

import "math"

type Metric string

const (
	MetricDonated Metric = "donated"
	MetricHours   Metric = "hours"
	MetricReviews Metric = "reviews"
)

type Status string

const (
	StatusCompleted  Status = "completed"
	StatusInProgress Status = "in_progress"
	StatusLocked     Status = "locked"
)

type Achievement struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Metric      Metric  `json:"metric"`
	Threshold   float64 `json:"threshold"`

	// AnyAmount marks achievements earned by any positive total rather
	// than by reaching Threshold.
	AnyAmount bool `json:"-"`
}

// Totals are the cumulative figures achievements are measured against.
type Totals struct {
	Donated float64 `json:"totalDonated"`
	Hours   float64 `json:"totalHours"`
	Reviews int     `json:"totalReviews"`
}

type Result struct {
	Achievement
	Current  float64 `json:"current"`
	Progress float64 `json:"progress"`
	Status   Status  `json:"status"`
}

// Catalogue is the fixed list of achievements in display order.
var Catalogue = []Achievement{
	{ID: "first_donation", Title: "First Step", Description: "Made your first donation", Icon: "💝", Metric: MetricDonated, AnyAmount: true},
	{ID: "helper", Title: "Helper", Description: "Donated $25 or more", Icon: "🌟", Metric: MetricDonated, Threshold: 25},
	{ID: "generous_giver", Title: "Generous Giver", Description: "Donated $100 or more", Icon: "💎", Metric: MetricDonated, Threshold: 100},
	{ID: "philanthropist", Title: "Philanthropist", Description: "Donated $1000 or more", Icon: "🏆", Metric: MetricDonated, Threshold: 1000},
	{ID: "volunteer_starter", Title: "Volunteer Starter", Description: "Completed 5 hours of volunteering", Icon: "⭐", Metric: MetricHours, Threshold: 5},
	{ID: "dedicated_volunteer", Title: "Dedicated Volunteer", Description: "Completed 25 hours of volunteering", Icon: "🌟", Metric: MetricHours, Threshold: 25},
	{ID: "volunteer_champion", Title: "Volunteer Champion", Description: "Completed 100 hours of volunteering", Icon: "🏅", Metric: MetricHours, Threshold: 100},
	{ID: "reviewer", Title: "Community Reviewer", Description: "Left 5 helpful reviews", Icon: "📝", Metric: MetricReviews, Threshold: 5},
}

// Evaluate measures every catalogue entry against totals.
func Evaluate(totals Totals) []Result {
	results := make([]Result, 0, len(Catalogue))
	for _, a := range Catalogue {
		results = append(results, a.Evaluate(totals))
	}
	return results
}

func (a Achievement) Evaluate(totals Totals) Result {
	current := sanitize(totals.value(a.Metric))

	var progress float64
	var completed bool
	switch {
	case a.AnyAmount:
		completed = current > 0
		if completed {
			progress = 100
		}
	case a.Threshold <= 0:
		completed, progress = true, 100
	default:
		completed = current >= a.Threshold
		progress = math.Min(current/a.Threshold*100, 100)
	}

	return Result{
		Achievement: a,
		Current:     current,
		Progress:    progress,
		Status:      classify(completed, progress),
	}
}

func classify(completed bool, progress float64) Status {
	switch {
	case completed:
		return StatusCompleted
	case progress > 0:
		return StatusInProgress
	default:
		return StatusLocked
	}
}

// Partition splits results into completed, in progress and locked groups,
// keeping catalogue order within each.
func Partition(results []Result) (completed, inProgress, locked []Result) {
	for _, r := range results {
		switch r.Status {
		case StatusCompleted:
			completed = append(completed, r)
		case StatusInProgress:
			inProgress = append(inProgress, r)
		default:
			locked = append(locked, r)
		}
	}
	return completed, inProgress, locked
}

func (t Totals) value(m Metric) float64 {
	switch m {
	case MetricDonated:
		return t.Donated
	case MetricHours:
		return t.Hours
	case MetricReviews:
		return float64(t.Reviews)
	}
	return 0
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
