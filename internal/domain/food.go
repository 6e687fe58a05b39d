package domain

import "time"

// Food is a catalog item. Stock is tracked per eligible location; InStock is
// always the OR over StockByLocation and is recomputed by the store on every
// stock write, never set on its own.
type Food struct {
	ID              string
	Name            string
	Price           float64
	Category        string
	Image           string
	Locations       []Location
	StockByLocation map[Location]bool
	InStock         bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OfferedAt reports whether the item is eligible at the given location.
func (f Food) OfferedAt(loc Location) bool {
	for _, l := range f.Locations {
		if l == loc {
			return true
		}
	}
	return false
}

// StockAt returns the per-location flag, defaulting to true when the map has
// no entry for an eligible location.
func (f Food) StockAt(loc Location) bool {
	if v, ok := f.StockByLocation[loc]; ok {
		return v
	}
	return true
}

// DerivedInStock is the OR over all per-location values.
func (f Food) DerivedInStock() bool {
	for _, v := range f.StockByLocation {
		if v {
			return true
		}
	}
	return false
}
