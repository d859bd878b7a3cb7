package services

import (
	"github.com/shopspring/decimal"

	"swiftship-api-io/api/pkg/apperr"
)

// Insurance policy bounds. Insurance is optional below the mandatory
// threshold, required above it, and unavailable past the hard ceiling.
var (
	insuranceMandatoryAbove = decimal.NewFromInt(5000)
	insuranceCeiling        = decimal.NewFromInt(49999)
)

// insuranceTier prices one band of the coverage table. A zero PremiumPct
// means the flat premium applies; otherwise the premium is a percentage of
// the insured value. Percentages marked with a Hi bound scale linearly
// across the band.
type insuranceTier struct {
	Lo, Hi                     int64
	FlatPremium                decimal.Decimal
	PremiumPctLo, PremiumPctHi decimal.Decimal
	CompPctLo, CompPctHi       decimal.Decimal
}

var insuranceTiers = []insuranceTier{
	{Lo: 1, Hi: 2499, FlatPremium: decimal.NewFromInt(100), CompPctLo: dec(100), CompPctHi: dec(100)},
	{Lo: 2500, Hi: 5000, FlatPremium: decimal.NewFromInt(100), CompPctLo: dec(80), CompPctHi: dec(80)},
	{Lo: 5001, Hi: 12999, PremiumPctLo: dec(2), PremiumPctHi: dec(2), CompPctLo: dec(80), CompPctHi: dec(80)},
	{Lo: 13000, Hi: 21999, PremiumPctLo: decimal.NewFromFloat(2.1), PremiumPctHi: decimal.NewFromFloat(2.9), CompPctLo: dec(58), CompPctHi: dec(78)},
	{Lo: 22000, Hi: 26999, PremiumPctLo: dec(3), PremiumPctHi: dec(3), CompPctLo: dec(51), CompPctHi: dec(55)},
	{Lo: 27000, Hi: 49999, PremiumPctLo: dec(3), PremiumPctHi: dec(3), CompPctLo: dec(50), CompPctHi: dec(50)},
}

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

// CalculateInsurancePremium prices coverage for one shipment and returns the
// premium charged and the compensation paid out on loss.
//
// The insured value is the declared value when it falls inside the
// low-value declaration window (1 to 5000), otherwise the actual rate of
// the shipment. Values above the hard ceiling cannot be shipped, and
// values above the mandatory threshold cannot opt out of coverage; both
// are client-correctable rejections.
func CalculateInsurancePremium(actualRate, declaredValue decimal.Decimal, isSelected bool) (premium, compensation decimal.Decimal, err error) {
	if actualRate.GreaterThan(insuranceCeiling) {
		return decimal.Zero, decimal.Zero,
			apperr.Newf(apperr.Precondition, "shipment value %s exceeds the maximum insurable value of %s", actualRate.String(), insuranceCeiling.String())
	}
	if !isSelected {
		if actualRate.GreaterThan(insuranceMandatoryAbove) {
			return decimal.Zero, decimal.Zero,
				apperr.Newf(apperr.Precondition, "insurance is mandatory for shipment values above %s", insuranceMandatoryAbove.String())
		}
		return decimal.Zero, decimal.Zero, nil
	}

	basis := actualRate
	if declaredValue.GreaterThanOrEqual(decimal.NewFromInt(1)) && declaredValue.LessThanOrEqual(insuranceMandatoryAbove) {
		basis = declaredValue
	}
	if basis.LessThan(decimal.NewFromInt(1)) {
		return decimal.Zero, decimal.Zero, nil
	}

	for _, tier := range insuranceTiers {
		lo, hi := decimal.NewFromInt(tier.Lo), decimal.NewFromInt(tier.Hi)
		if basis.LessThan(lo) || basis.GreaterThan(hi) {
			continue
		}

		if tier.PremiumPctLo.IsZero() {
			premium = tier.FlatPremium
		} else {
			premium = basis.Mul(lerpPct(basis, lo, hi, tier.PremiumPctLo, tier.PremiumPctHi)).Div(dec(100)).Round(2)
		}
		compensation = basis.Mul(lerpPct(basis, lo, hi, tier.CompPctLo, tier.CompPctHi)).Div(dec(100)).Round(2)
		return premium, compensation, nil
	}

	// Unreachable while the tiers span 1..ceiling contiguously.
	return decimal.Zero, decimal.Zero,
		apperr.Newf(apperr.Internal, "no insurance tier covers value %s", basis.String())
}

// lerpPct scales a percentage linearly across a tier band. Constant bands
// pass equal lo and hi percentages.
func lerpPct(value, lo, hi, pctLo, pctHi decimal.Decimal) decimal.Decimal {
	if pctLo.Equal(pctHi) {
		return pctLo
	}
	span := hi.Sub(lo)
	return pctLo.Add(value.Sub(lo).Mul(pctHi.Sub(pctLo)).Div(span))
}
