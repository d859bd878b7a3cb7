package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"swiftship-api-io/api/internal/common"
	"swiftship-api-io/api/pkg/apperr"
	"swiftship-api-io/api/pkg/models"
	"swiftship-api-io/api/pkg/util"
)

// WalletStore is the Mongo-backed wallet, ledger and saved-card persistence
// layer. Balance changes go through Adjust so they stay a single $inc.
type WalletStore struct{}

func (WalletStore) Get(ctx context.Context, userID primitive.ObjectID) (*models.Wallet, error) {
	var wallet models.Wallet
	err := common.WalletCollection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&wallet)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.New(apperr.NotFound, "wallet not found")
	}
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

// Adjust applies a signed delta to the balance, creating the wallet on first
// credit.
func (WalletStore) Adjust(ctx context.Context, userID primitive.ObjectID, delta decimal.Decimal) error {
	_, err := common.WalletCollection.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$inc": bson.M{"balance": util.ToDecimal128(delta)},
			"$set": bson.M{"updated_at": primitive.NewDateTimeFromTime(time.Now())},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

func (WalletStore) RecordTransaction(ctx context.Context, tx models.WalletTransaction) error {
	_, err := common.TransactionCollection.InsertOne(ctx, tx)
	return err
}

func (WalletStore) ListTransactions(ctx context.Context, userID primitive.ObjectID, pagination util.PaginationArgs) ([]models.WalletTransaction, int64, error) {
	filter := bson.M{"user_id": userID}
	count, err := common.TransactionCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(pagination.Skip)).
		SetLimit(int64(pagination.Limit))
	cursor, err := common.TransactionCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	var transactions []models.WalletTransaction
	if err := cursor.All(ctx, &transactions); err != nil {
		return nil, 0, err
	}
	return transactions, count, nil
}

func (WalletStore) CountCards(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return common.PaymentCardCollection.CountDocuments(ctx, bson.M{"user_id": userID})
}

func (WalletStore) SaveCard(ctx context.Context, card models.PaymentCard) error {
	_, err := common.PaymentCardCollection.InsertOne(ctx, card)
	return err
}

func (WalletStore) ListCards(ctx context.Context, userID primitive.ObjectID) ([]models.PaymentCard, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := common.PaymentCardCollection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	var cards []models.PaymentCard
	if err := cursor.All(ctx, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

func (WalletStore) ClearDefaultCards(ctx context.Context, userID, exceptId primitive.ObjectID) error {
	_, err := common.PaymentCardCollection.UpdateMany(ctx,
		bson.M{
			"user_id":    userID,
			"_id":        bson.M{"$ne": exceptId},
			"is_default": true,
		},
		bson.M{"$set": bson.M{"is_default": false}},
	)
	return err
}
