package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFood_DerivedInStock(t *testing.T) {
	food := Food{
		Locations: []Location{LocationShatoy, LocationGikalo},
		StockByLocation: map[Location]bool{
			LocationShatoy: false,
			LocationGikalo: true,
		},
	}

	assert.True(t, food.DerivedInStock())

	food.StockByLocation[LocationGikalo] = false
	assert.False(t, food.DerivedInStock())

	food.StockByLocation[LocationShatoy] = true
	assert.True(t, food.DerivedInStock())
}

func TestFood_DerivedInStock_EmptyMap(t *testing.T) {
	food := Food{Locations: []Location{LocationShatoy}}

	assert.False(t, food.DerivedInStock())
}

func TestFood_OfferedAt(t *testing.T) {
	food := Food{Locations: []Location{LocationShatoy}}

	assert.True(t, food.OfferedAt(LocationShatoy))
	assert.False(t, food.OfferedAt(LocationGikalo))
}

func TestFood_StockAt_DefaultsTrue(t *testing.T) {
	food := Food{
		Locations:       []Location{LocationShatoy, LocationGikalo},
		StockByLocation: map[Location]bool{LocationShatoy: false},
	}

	assert.False(t, food.StockAt(LocationShatoy))
	assert.True(t, food.StockAt(LocationGikalo))
}

func TestParseLocation(t *testing.T) {
	loc, ok := ParseLocation("шатой")
	assert.True(t, ok)
	assert.Equal(t, LocationShatoy, loc)

	loc, ok = ParseLocation("гикало")
	assert.True(t, ok)
	assert.Equal(t, LocationGikalo, loc)

	_, ok = ParseLocation("грозный")
	assert.False(t, ok)

	_, ok = ParseLocation("")
	assert.False(t, ok)
}
