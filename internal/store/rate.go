package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"swiftship-api-io/api/internal/common"
	"swiftship-api-io/api/pkg/models"
)

// RateStore resolves rate-table rows by exact zone and slab match, one $or
// query per table regardless of batch size.
type RateStore struct{}

func slabFilters(lookups []models.RateLookup) []bson.M {
	filters := make([]bson.M, len(lookups))
	for i, l := range lookups {
		filters[i] = bson.M{
			"zone_from":   l.ZoneFrom,
			"zone_to":     l.ZoneTo,
			"weight_slab": l.WeightSlab,
		}
	}
	return filters
}

func (RateStore) FindDefaultRates(ctx context.Context, lookups []models.RateLookup) ([]models.DefaultRate, error) {
	if len(lookups) == 0 {
		return nil, nil
	}
	cursor, err := common.DefaultRateCollection.Find(ctx, bson.M{"$or": slabFilters(lookups)})
	if err != nil {
		return nil, err
	}
	var rates []models.DefaultRate
	if err := cursor.All(ctx, &rates); err != nil {
		return nil, err
	}
	return rates, nil
}

func (RateStore) FindUserRates(ctx context.Context, userID primitive.ObjectID, lookups []models.RateLookup) ([]models.UserRate, error) {
	if len(lookups) == 0 {
		return nil, nil
	}
	cursor, err := common.UserRateCollection.Find(ctx, bson.M{
		"user_id": userID,
		"$or":     slabFilters(lookups),
	})
	if err != nil {
		return nil, err
	}
	var rates []models.UserRate
	if err := cursor.All(ctx, &rates); err != nil {
		return nil, err
	}
	return rates, nil
}
