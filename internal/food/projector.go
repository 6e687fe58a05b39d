package food

import "radagast/internal/domain"

// Viewer is the projection context: the gate-derived actor plus, for
// customers, the location they declared in the request (untrusted input).
type Viewer struct {
	Actor            domain.Actor
	CustomerLocation *domain.Location
}

// Project maps a catalog item to the view a given viewer is allowed to see.
// Returns false when the item must be omitted from that viewer's results.
//
//   - Admin: everything, including the full per-location map.
//   - Worker: omitted unless offered at the worker's location; inStock is
//     overridden with that location's flag (the map stays visible but the
//     override is what the worker's UI should trust).
//   - Customer: omitted unless offered at the declared location (no
//     declaration means no filtering); inStock stays global so sold-out
//     items render grayed out instead of disappearing.
//
// Pure and idempotent; never mutates the input.
func Project(f domain.Food, v Viewer) (FoodView, bool) {
	view := FoodView{
		ID:              f.ID,
		Name:            f.Name,
		Price:           f.Price,
		Category:        f.Category,
		Image:           f.Image,
		Locations:       locationStrings(f.Locations),
		StockByLocation: stockMap(f.StockByLocation),
		InStock:         f.InStock,
	}

	switch v.Actor.Role {
	case domain.RoleAdmin:
		return view, true
	case domain.RoleWorker:
		if !f.OfferedAt(v.Actor.Location) {
			return FoodView{}, false
		}
		view.InStock = f.StockAt(v.Actor.Location)
		return view, true
	default:
		if v.CustomerLocation != nil && !f.OfferedAt(*v.CustomerLocation) {
			return FoodView{}, false
		}
		return view, true
	}
}

// ProjectAll filters and projects a collection, preserving input order.
func ProjectAll(foods []domain.Food, v Viewer) []FoodView {
	views := make([]FoodView, 0, len(foods))
	for _, f := range foods {
		if view, ok := Project(f, v); ok {
			views = append(views, view)
		}
	}
	return views
}

func locationStrings(locs []domain.Location) []string {
	out := make([]string, len(locs))
	for i, l := range locs {
		out[i] = string(l)
	}
	return out
}

func stockMap(stock map[domain.Location]bool) map[string]bool {
	out := make(map[string]bool, len(stock))
	for loc, v := range stock {
		out[string(loc)] = v
	}
	return out
}
