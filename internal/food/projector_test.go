package food

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"radagast/internal/domain"
)

func shawarma() domain.Food {
	return domain.Food{
		ID:        "f1",
		Name:      "Шаурма",
		Price:     250,
		Category:  "Фастфуд",
		Locations: []domain.Location{domain.LocationShatoy, domain.LocationGikalo},
		StockByLocation: map[domain.Location]bool{
			domain.LocationShatoy: false,
			domain.LocationGikalo: true,
		},
		InStock: true,
	}
}

func shatoyOnly() domain.Food {
	return domain.Food{
		ID:        "f2",
		Name:      "Жижиг-галнаш",
		Price:     400,
		Category:  "Национальная кухня",
		Locations: []domain.Location{domain.LocationShatoy},
		StockByLocation: map[domain.Location]bool{
			domain.LocationShatoy: true,
		},
		InStock: true,
	}
}

func TestProject_AdminSeesEverything(t *testing.T) {
	view, ok := Project(shawarma(), Viewer{Actor: domain.Admin()})
	require.True(t, ok)

	assert.True(t, view.InStock)
	assert.Equal(t, map[string]bool{"шатой": false, "гикало": true}, view.StockByLocation)
	assert.ElementsMatch(t, []string{"шатой", "гикало"}, view.Locations)
}

func TestProject_WorkerSeesOwnLocationStock(t *testing.T) {
	f := shawarma()

	// Sold out at шатой, so the шатой worker sees inStock=false even though
	// the global flag is true.
	view, ok := Project(f, Viewer{Actor: domain.Worker(domain.LocationShatoy)})
	require.True(t, ok)
	assert.False(t, view.InStock)

	view, ok = Project(f, Viewer{Actor: domain.Worker(domain.LocationGikalo)})
	require.True(t, ok)
	assert.True(t, view.InStock)
}

func TestProject_WorkerOmitsItemsNotOfferedAtTheirLocation(t *testing.T) {
	_, ok := Project(shatoyOnly(), Viewer{Actor: domain.Worker(domain.LocationGikalo)})
	assert.False(t, ok)

	_, ok = Project(shatoyOnly(), Viewer{Actor: domain.Worker(domain.LocationShatoy)})
	assert.True(t, ok)
}

func TestProject_CustomerKeepsGlobalStock(t *testing.T) {
	loc := domain.LocationShatoy
	view, ok := Project(shawarma(), Viewer{Actor: domain.Customer(), CustomerLocation: &loc})
	require.True(t, ok)

	// The item stays listed and keeps the global flag: a customer browsing
	// шатой still sees it because гикало has it.
	assert.True(t, view.InStock)
}

func TestProject_CustomerFilteredByDeclaredLocation(t *testing.T) {
	gikalo := domain.LocationGikalo
	_, ok := Project(shatoyOnly(), Viewer{Actor: domain.Customer(), CustomerLocation: &gikalo})
	assert.False(t, ok)

	// No declared location means no filtering.
	_, ok = Project(shatoyOnly(), Viewer{Actor: domain.Customer()})
	assert.True(t, ok)
}

func TestProjectAll_PreservesOrder(t *testing.T) {
	foods := []domain.Food{shawarma(), shatoyOnly()}

	views := ProjectAll(foods, Viewer{Actor: domain.Admin()})
	require.Len(t, views, 2)
	assert.Equal(t, "f1", views[0].ID)
	assert.Equal(t, "f2", views[1].ID)

	// The гикало worker only gets the item offered there.
	views = ProjectAll(foods, Viewer{Actor: domain.Worker(domain.LocationGikalo)})
	require.Len(t, views, 1)
	assert.Equal(t, "f1", views[0].ID)
}

func TestProject_DoesNotMutateInput(t *testing.T) {
	f := shawarma()
	_, _ = Project(f, Viewer{Actor: domain.Worker(domain.LocationShatoy)})

	assert.True(t, f.InStock)
	assert.False(t, f.StockByLocation[domain.LocationShatoy])
}
