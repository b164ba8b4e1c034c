package types

// Location is where a user, nonprofit or opportunity is. Coordinates are
// optional; a nil latitude or longitude means the position is unknown.
type Location struct {
	Latitude  *float64 `db:"latitude" json:"latitude,omitempty"`
	Longitude *float64 `db:"longitude" json:"longitude,omitempty"`
	City      *string  `db:"city" json:"city,omitempty"`
	State     *string  `db:"state" json:"state,omitempty"`
	Country   *string  `db:"country" json:"country,omitempty"`
}

func (l Location) HasCoordinates() bool {
	return l.Latitude != nil && l.Longitude != nil
}
