package services

import (
	"context"
	"math"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"swiftship-api-io/api/pkg/apperr"
	"swiftship-api-io/api/pkg/models"
)

// RateOriginZone is the zone_from value carried by every rate-table row. The
// tables price lanes by destination zone only, so the origin column is a
// single wildcard rather than a real zone letter.
const RateOriginZone = "z"

// WeightSlab rounds a package weight up to the next half-kilogram step.
func WeightSlab(weight float64) float64 {
	return math.Ceil(weight*2) / 2
}

// RateQuote is a fully priced shipment: base rate, insurance, and total.
type RateQuote struct {
	Rate               decimal.Decimal    `json:"rate"`
	InsurancePremium   decimal.Decimal    `json:"insurance_premium"`
	CompensationAmount decimal.Decimal    `json:"compensation_amount"`
	TotalCost          decimal.Decimal    `json:"total_cost"`
	Zone               string             `json:"zone"`
	WeightSlab         float64            `json:"weight_slab"`
	Origin             models.ZoneDetails `json:"origin"`
	Destination        models.ZoneDetails `json:"destination"`
}

// BulkQuoteResult is the per-row outcome of a bulk quote. Exactly one of
// Quote and Error is set.
type BulkQuoteResult struct {
	Quote *RateQuote `json:"quote,omitempty"`
	Error string     `json:"error,omitempty"`
}

// RateEngine resolves zones and prices shipments against the rate tables.
// A rate exists only if its exact slab row exists; there is no interpolation
// between slabs.
type RateEngine struct {
	zones *ZoneResolver
	rates RateStore
}

func NewRateEngine(zones *ZoneResolver, rates RateStore) *RateEngine {
	return &RateEngine{zones: zones, rates: rates}
}

// Quote prices a single shipment. A nil userID quotes from the platform
// default table only.
func (e *RateEngine) Quote(ctx context.Context, userID *primitive.ObjectID, req models.RateRequest) (*RateQuote, error) {
	zone, err := e.zones.Resolve(req.OriginZipCode, req.DestinationZipCode)
	if err != nil {
		return nil, err
	}

	lookup := models.RateLookup{
		ZoneFrom:      RateOriginZone,
		ZoneTo:        zone.Zone,
		WeightSlab:    WeightSlab(req.PackageWeight),
		PackageWeight: req.PackageWeight,
	}
	rates, err := e.FindBulkRates(ctx, userID, []models.RateLookup{lookup})
	if err != nil {
		return nil, err
	}
	if rates[0] == nil {
		return nil, apperr.Newf(apperr.NotFound, "no rate configured for zone %s at %.1f kg", zone.Zone, lookup.WeightSlab)
	}

	return e.buildQuote(zone, lookup.WeightSlab, *rates[0], req.DeclaredValue, req.IsInsuranceSelected)
}

// QuoteBulk prices up to the bulk cap of shipments in two rate-table queries.
// Rows fail independently; the result slice is index-aligned with the input.
func (e *RateEngine) QuoteBulk(ctx context.Context, userID *primitive.ObjectID, items []models.RateRequest) ([]BulkQuoteResult, error) {
	results := make([]BulkQuoteResult, len(items))
	zones := make([]*ZoneResult, len(items))
	lookups := make([]models.RateLookup, 0, len(items))
	lookupIdx := make([]int, 0, len(items))

	for i, item := range items {
		zone, err := e.zones.Resolve(item.OriginZipCode, item.DestinationZipCode)
		if err != nil {
			results[i] = BulkQuoteResult{Error: err.Error()}
			continue
		}
		zones[i] = zone
		lookups = append(lookups, models.RateLookup{
			ZoneFrom:      RateOriginZone,
			ZoneTo:        zone.Zone,
			WeightSlab:    WeightSlab(item.PackageWeight),
			PackageWeight: item.PackageWeight,
		})
		lookupIdx = append(lookupIdx, i)
	}

	rates, err := e.FindBulkRates(ctx, userID, lookups)
	if err != nil {
		return nil, err
	}

	for pos, rate := range rates {
		i := lookupIdx[pos]
		if rate == nil {
			results[i] = BulkQuoteResult{
				Error: apperr.Newf(apperr.NotFound, "no rate configured for zone %s at %.1f kg", zones[i].Zone, lookups[pos].WeightSlab).Error(),
			}
			continue
		}
		quote, err := e.buildQuote(zones[i], lookups[pos].WeightSlab, *rate, items[i].DeclaredValue, items[i].IsInsuranceSelected)
		if err != nil {
			results[i] = BulkQuoteResult{Error: err.Error()}
			continue
		}
		results[i] = BulkQuoteResult{Quote: quote}
	}
	return results, nil
}

// FindBulkRates resolves every lookup in one query per rate table. The result
// is index-aligned with lookups; a nil entry means no row exists for that
// exact zone and slab. User overrides win over the default table.
func (e *RateEngine) FindBulkRates(ctx context.Context, userID *primitive.ObjectID, lookups []models.RateLookup) ([]*decimal.Decimal, error) {
	results := make([]*decimal.Decimal, len(lookups))
	if len(lookups) == 0 {
		return results, nil
	}

	type slabKey struct {
		zoneTo string
		slab   float64
	}

	defaults, err := e.rates.FindDefaultRates(ctx, lookups)
	if err != nil {
		return nil, err
	}
	rateByKey := make(map[slabKey]decimal.Decimal, len(defaults))
	for _, row := range defaults {
		rateByKey[slabKey{zoneTo: row.ZoneTo, slab: row.WeightSlab}] = decimal.NewFromFloat(row.Rate)
	}

	if userID != nil {
		overrides, err := e.rates.FindUserRates(ctx, *userID, lookups)
		if err != nil {
			return nil, err
		}
		for _, row := range overrides {
			rateByKey[slabKey{zoneTo: row.ZoneTo, slab: row.WeightSlab}] = decimal.NewFromFloat(row.Rate)
		}
	}

	for i, lookup := range lookups {
		if rate, ok := rateByKey[slabKey{zoneTo: lookup.ZoneTo, slab: lookup.WeightSlab}]; ok {
			r := rate
			results[i] = &r
		}
	}
	return results, nil
}

func (e *RateEngine) buildQuote(zone *ZoneResult, slab float64, rate decimal.Decimal, declaredValue *float64, insured bool) (*RateQuote, error) {
	declared := decimal.Zero
	if declaredValue != nil {
		declared = decimal.NewFromFloat(*declaredValue)
	}
	premium, compensation, err := CalculateInsurancePremium(rate, declared, insured)
	if err != nil {
		return nil, err
	}

	return &RateQuote{
		Rate:               rate,
		InsurancePremium:   premium,
		CompensationAmount: compensation,
		TotalCost:          rate.Add(premium),
		Zone:               zone.Zone,
		WeightSlab:         slab,
		Origin:             zone.Origin,
		Destination:        zone.Destination,
	}, nil
}
