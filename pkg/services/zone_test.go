package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swiftship-api-io/api/pkg/apperr"
)

func TestWeightSlab(t *testing.T) {
	cases := map[float64]float64{
		0.2:  0.5,
		0.5:  0.5,
		0.51: 1.0,
		1.0:  1.0,
		1.01: 1.5,
		7.2:  7.5,
		10.0: 10.0,
	}
	for weight, slab := range cases {
		assert.Equal(t, slab, WeightSlab(weight), "weight %v", weight)
	}
}

func TestZoneResolution(t *testing.T) {
	resolver := NewZoneResolver(indiaDirectory(t))

	cases := []struct {
		name     string
		from, to string
		zone     string
	}{
		{"same city", "110001", "110092", ZoneLocal},
		{"same state", "201301", "226001", ZoneRegional},
		{"neighboring state", "110001", "122001", ZoneRegional},
		{"metro to metro", "400001", "700001", ZoneMetro},
		{"special destination", "110001", "190001", ZoneSpecial},
		{"rest of country", "302001", "600001", ZoneNational},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := resolver.Resolve(tc.from, tc.to)
			require.NoError(t, err)
			assert.Equal(t, tc.zone, result.Zone)
		})
	}
}

func TestZoneResolutionDetails(t *testing.T) {
	resolver := NewZoneResolver(indiaDirectory(t))

	result, err := resolver.Resolve("110001", "400001")
	require.NoError(t, err)
	assert.Equal(t, "New Delhi", result.Origin.City)
	assert.Equal(t, "Delhi", result.Origin.State)
	assert.Equal(t, "Mumbai", result.Destination.City)
	assert.Equal(t, "Maharashtra", result.Destination.State)
}

func TestZoneResolutionUnknownPincode(t *testing.T) {
	resolver := NewZoneResolver(indiaDirectory(t))

	_, err := resolver.Resolve("999999", "110001")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.NotFound))

	_, err = resolver.Resolve("110001", "999999")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.NotFound))
}
