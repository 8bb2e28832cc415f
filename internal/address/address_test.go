package address_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rezonia/au-invoice/internal/address"
	"github.com/rezonia/au-invoice/internal/model"
)

func TestFromComponents(t *testing.T) {
	components := []address.Component{
		{LongName: "1", ShortName: "1", Types: []string{"street_number"}},
		{LongName: "George Street", ShortName: "George St", Types: []string{"route"}},
		{LongName: "Sydney", ShortName: "Sydney", Types: []string{"locality", "political"}},
		{LongName: "New South Wales", ShortName: "NSW", Types: []string{"administrative_area_level_1", "political"}},
		{LongName: "Australia", ShortName: "AU", Types: []string{"country", "political"}},
		{LongName: "2000", ShortName: "2000", Types: []string{"postal_code"}},
	}

	a := address.FromComponents(components)

	assert.Equal(t, model.Address{
		Street:   "1 George Street",
		Suburb:   "Sydney",
		State:    "NSW",
		Postcode: "2000",
	}, a)
}

func TestFromComponents_Partial(t *testing.T) {
	a := address.FromComponents([]address.Component{
		{LongName: "Collins Street", Types: []string{"route"}},
	})

	assert.Equal(t, "Collins Street", a.Street)
	assert.Empty(t, a.Suburb)
	assert.Empty(t, a.State)
	assert.Empty(t, a.Postcode)
}

func TestFromComponents_Empty(t *testing.T) {
	assert.True(t, address.FromComponents(nil).IsEmpty())
}

func TestNormalize(t *testing.T) {
	a := address.Normalize(model.Address{
		Street:   "  10 Smith St ",
		Suburb:   "Fitzroy ",
		State:    "vic",
		Postcode: "3065-AU",
	})

	assert.Equal(t, "10 Smith St", a.Street)
	assert.Equal(t, "Fitzroy", a.Suburb)
	assert.Equal(t, "VIC", a.State)
	assert.Equal(t, "3065", a.Postcode)
	assert.True(t, address.IsAustralian(a))
}

func TestIsAustralian(t *testing.T) {
	assert.False(t, address.IsAustralian(model.Address{State: "CA", Postcode: "9021"}))
	assert.False(t, address.IsAustralian(model.Address{State: "NSW", Postcode: "200"}))
}
