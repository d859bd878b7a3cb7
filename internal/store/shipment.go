package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"swiftship-api-io/api/internal/common"
	"swiftship-api-io/api/pkg/models"
	"swiftship-api-io/api/pkg/util"
)

// ShipmentStore is the Mongo-backed shipment persistence layer.
type ShipmentStore struct{}

func (ShipmentStore) CreateMany(ctx context.Context, shipments []models.Shipment) error {
	docs := make([]interface{}, len(shipments))
	for i, s := range shipments {
		docs[i] = s
	}
	_, err := common.ShipmentCollection.InsertMany(ctx, docs)
	return err
}

func (ShipmentStore) ListByUser(ctx context.Context, userID primitive.ObjectID, status *models.ShipmentStatus, pagination util.PaginationArgs) ([]models.Shipment, int64, error) {
	filter := bson.M{"user_id": userID}
	if status != nil {
		filter["shipment_status"] = *status
	}

	count, err := common.ShipmentCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(pagination.Skip)).
		SetLimit(int64(pagination.Limit))
	cursor, err := common.ShipmentCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	var shipments []models.Shipment
	if err := cursor.All(ctx, &shipments); err != nil {
		return nil, 0, err
	}
	return shipments, count, nil
}
