package domain

// Location is one of the fixed physical service points. The set is closed;
// everything location-scoped validates against it.
type Location string

const (
	LocationShatoy Location = "шатой"
	LocationGikalo Location = "гикало"
)

// AllLocations returns the closed location set in a stable order.
func AllLocations() []Location {
	return []Location{LocationShatoy, LocationGikalo}
}

func ParseLocation(s string) (Location, bool) {
	switch Location(s) {
	case LocationShatoy:
		return LocationShatoy, true
	case LocationGikalo:
		return LocationGikalo, true
	}
	return "", false
}
