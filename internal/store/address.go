package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"swiftship-api-io/api/internal/common"
	"swiftship-api-io/api/pkg/apperr"
	"swiftship-api-io/api/pkg/models"
)

// AddressStore is the Mongo-backed address persistence layer. The unique
// index on (user_id, address_line, city, state, zip_code) with a
// case-insensitive collation turns duplicate submissions into conflicts.
type AddressStore struct{}

func (AddressStore) List(ctx context.Context, userID primitive.ObjectID, addressType *models.AddressType) ([]models.Address, error) {
	filter := bson.M{"user_id": userID}
	if addressType != nil {
		filter["type"] = *addressType
	}

	cursor, err := common.AddressCollection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var addresses []models.Address
	if err := cursor.All(ctx, &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

func (AddressStore) ListPending(ctx context.Context, userID primitive.ObjectID) ([]models.PendingAddress, error) {
	cursor, err := common.PendingAddressCollection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	var pending []models.PendingAddress
	if err := cursor.All(ctx, &pending); err != nil {
		return nil, err
	}
	return pending, nil
}

func (AddressStore) FindByIds(ctx context.Context, userID primitive.ObjectID, ids []primitive.ObjectID) ([]models.Address, error) {
	cursor, err := common.AddressCollection.Find(ctx, bson.M{
		"user_id": userID,
		"_id":     bson.M{"$in": ids},
	})
	if err != nil {
		return nil, err
	}
	var addresses []models.Address
	if err := cursor.All(ctx, &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

func (AddressStore) CreateApproved(ctx context.Context, addresses []models.Address) error {
	docs := make([]interface{}, len(addresses))
	for i, a := range addresses {
		docs[i] = a
	}
	_, err := common.AddressCollection.InsertMany(ctx, docs)
	if mongo.IsDuplicateKeyError(err) {
		return apperr.Wrap(apperr.Conflict, err, "address already exists")
	}
	return err
}

func (AddressStore) CreatePending(ctx context.Context, addresses []models.PendingAddress) error {
	docs := make([]interface{}, len(addresses))
	for i, a := range addresses {
		docs[i] = a
	}
	_, err := common.PendingAddressCollection.InsertMany(ctx, docs)
	if mongo.IsDuplicateKeyError(err) {
		return apperr.Wrap(apperr.Conflict, err, "address is already awaiting approval")
	}
	return err
}
