package listing

import (
	"slices"

	"karma/pkg/types"
)

const (
	// AlertRadiusMiles bounds how far away a disaster relief opportunity
	// may be to raise an alert.
	AlertRadiusMiles = 150.0
	MaxAlerts        = 2
)

type Alert struct {
	Opportunity *types.Opportunity `json:"opportunity"`
	Distance    float64            `json:"distanceMiles"`
}

// DisasterAlerts picks the nearest active disaster relief opportunities
// within AlertRadiusMiles of origin. Opportunities at an unknown distance
// never raise an alert.
func DisasterAlerts(origin types.Location, opportunities []*types.Opportunity) []Alert {
	alerts := make([]Alert, 0, MaxAlerts)
	for _, o := range opportunities {
		if o == nil || !o.IsActive || o.Category != types.CategoryDisasterRelief {
			continue
		}

		d := distance(origin, o.Location)
		if d == nil || *d > AlertRadiusMiles {
			continue
		}

		alerts = append(alerts, Alert{Opportunity: o, Distance: *d})
	}

	slices.SortStableFunc(alerts, func(a, b Alert) int {
		return compareDistance(&a.Distance, &b.Distance)
	})

	if len(alerts) > MaxAlerts {
		alerts = alerts[:MaxAlerts]
	}

	return alerts
}
