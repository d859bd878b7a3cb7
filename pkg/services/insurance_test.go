package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swiftship-api-io/api/pkg/apperr"
)

func d(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func TestInsuranceNotSelectedBelowThreshold(t *testing.T) {
	premium, compensation, err := CalculateInsurancePremium(d(2000), d(0), false)
	require.NoError(t, err)
	assert.True(t, premium.IsZero())
	assert.True(t, compensation.IsZero())
}

func TestInsuranceMandatoryAboveThreshold(t *testing.T) {
	_, _, err := CalculateInsurancePremium(d(6000), d(0), false)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.Precondition))
}

func TestInsuranceHardCeiling(t *testing.T) {
	_, _, err := CalculateInsurancePremium(d(50000), d(0), true)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.Precondition))

	// Exactly at the ceiling is still insurable.
	premium, compensation, err := CalculateInsurancePremium(d(49999), d(0), true)
	require.NoError(t, err)
	assert.True(t, premium.Equal(d(1499.97)), "premium %s", premium)
	assert.True(t, compensation.Equal(d(24999.50)), "compensation %s", compensation)
}

func TestInsuranceFlatTiers(t *testing.T) {
	premium, compensation, err := CalculateInsurancePremium(d(2000), d(0), true)
	require.NoError(t, err)
	assert.True(t, premium.Equal(d(100)))
	assert.True(t, compensation.Equal(d(2000)))

	premium, compensation, err = CalculateInsurancePremium(d(2500), d(0), true)
	require.NoError(t, err)
	assert.True(t, premium.Equal(d(100)))
	assert.True(t, compensation.Equal(d(2000)), "compensation %s", compensation)
}

func TestInsuranceDeclaredValueWindow(t *testing.T) {
	// Declared value inside the window replaces the actual rate as the
	// insured value.
	premium, compensation, err := CalculateInsurancePremium(d(8000), d(2000), true)
	require.NoError(t, err)
	assert.True(t, premium.Equal(d(100)))
	assert.True(t, compensation.Equal(d(2000)))

	// Outside the window the declared value is ignored.
	premium, compensation, err = CalculateInsurancePremium(d(8000), d(6000), true)
	require.NoError(t, err)
	assert.True(t, premium.Equal(d(160)), "premium %s", premium)
	assert.True(t, compensation.Equal(d(6400)), "compensation %s", compensation)
}

func TestInsurancePercentageTiers(t *testing.T) {
	premium, compensation, err := CalculateInsurancePremium(d(6000), d(0), true)
	require.NoError(t, err)
	assert.True(t, premium.Equal(d(120)), "premium %s", premium)
	assert.True(t, compensation.Equal(d(4800)), "compensation %s", compensation)

	premium, compensation, err = CalculateInsurancePremium(d(10000), d(0), true)
	require.NoError(t, err)
	assert.True(t, premium.Equal(d(200)), "premium %s", premium)
	assert.True(t, compensation.Equal(d(8000)), "compensation %s", compensation)

	premium, compensation, err = CalculateInsurancePremium(d(13000), d(0), true)
	require.NoError(t, err)
	assert.True(t, premium.Equal(d(273)), "premium %s", premium)
	assert.True(t, compensation.Equal(d(7540)), "compensation %s", compensation)

	premium, compensation, err = CalculateInsurancePremium(d(22000), d(0), true)
	require.NoError(t, err)
	assert.True(t, premium.Equal(d(660)), "premium %s", premium)
	assert.True(t, compensation.Equal(d(11220)), "compensation %s", compensation)

	premium, compensation, err = CalculateInsurancePremium(d(27000), d(0), true)
	require.NoError(t, err)
	assert.True(t, premium.Equal(d(810)), "premium %s", premium)
	assert.True(t, compensation.Equal(d(13500)), "compensation %s", compensation)
}

func TestInsuranceScaledBandIsMonotonic(t *testing.T) {
	values := []float64{13000, 15000, 17000, 19000, 21000, 21999}

	var lastPremium, lastCompensation decimal.Decimal
	for i, v := range values {
		premium, compensation, err := CalculateInsurancePremium(d(v), d(0), true)
		require.NoError(t, err)
		if i > 0 {
			assert.True(t, premium.GreaterThan(lastPremium), "premium at %v should exceed %s", v, lastPremium)
			assert.True(t, compensation.GreaterThan(lastCompensation), "compensation at %v should exceed %s", v, lastCompensation)
		}
		lastPremium, lastCompensation = premium, compensation
	}

	// The band tops out just under the next tier's flat 3 percent.
	assert.True(t, lastPremium.LessThan(d(21999).Mul(d(0.03))))
}
